package config

import (
	"errors"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/feral-file/brainrot-ledger/internal/domain"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`     // Maximum number of open connections to the database
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`     // Maximum number of idle connections in the pool
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`  // Maximum amount of time a connection may be reused (e.g., "5m", "1h")
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"` // Maximum amount of time a connection may be idle (e.g., "10m", "30m")
}

// NATSConfig holds NATS JetStream configuration
type NATSConfig struct {
	URL            string        `mapstructure:"url"`
	StreamName     string        `mapstructure:"stream_name"`
	SubjectPrefix  string        `mapstructure:"subject_prefix"`
	MaxReconnects  int           `mapstructure:"max_reconnects"`
	ReconnectWait  time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName string        `mapstructure:"connection_name"`
	// DuplicateWindow is how long JetStream deduplicates relayed events by id
	DuplicateWindow time.Duration `mapstructure:"duplicate_window"`
}

// EthereumConfig holds the chain endpoint used as randomness beacon
type EthereumConfig struct {
	RPCURL               string        `mapstructure:"rpc_url"`
	BlockHeadTTL         time.Duration `mapstructure:"block_head_ttl"`
	BlockHeadStaleWindow time.Duration `mapstructure:"block_head_stale_window"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTPublicKey     string        `mapstructure:"jwt_public_key"`
	JWTIssuer        string        `mapstructure:"jwt_issuer"`
	SignatureMaxSkew time.Duration `mapstructure:"signature_max_skew"`
	ReplayCacheSize  int           `mapstructure:"replay_cache_size"`
	AllowedOrigins   []string      `mapstructure:"allowed_origins"`
}

// LedgerConfig holds the privileged addresses and token limits
type LedgerConfig struct {
	AdminAddress       string `mapstructure:"admin_address"`
	CaseEngineAddress  string `mapstructure:"case_engine_address"`
	BurnEngineAddress  string `mapstructure:"burn_engine_address"`
	UpgradeGateAddress string `mapstructure:"upgrade_gate_address"`
	MaxLevel           uint32 `mapstructure:"max_level"`
	MetadataBaseURI    string `mapstructure:"metadata_base_uri"`
}

// CaseTierConfig holds the price and the rarity weights of one case type
type CaseTierConfig struct {
	Price   string            `mapstructure:"price"` // in wei
	Weights map[string]uint64 `mapstructure:"weights"`
}

// CasesConfig holds the case catalogue
type CasesConfig struct {
	Bronze CaseTierConfig `mapstructure:"bronze"`
	Silver CaseTierConfig `mapstructure:"silver"`
	Gold   CaseTierConfig `mapstructure:"gold"`
}

// UpgradeConfig holds the level upgrade fee schedule
type UpgradeConfig struct {
	BaseFee     string `mapstructure:"base_fee"`      // in wei
	PerLevelFee string `mapstructure:"per_level_fee"` // in wei
}

// BurnConfig holds the burn-upgrade recipe parameters
type BurnConfig struct {
	InputsPerRecipe int `mapstructure:"inputs_per_recipe"`
}

// RandomnessConfig holds the randomness beacon configuration
type RandomnessConfig struct {
	Mode          string        `mapstructure:"mode"` // "chain" or "local"
	RevealDelay   uint64        `mapstructure:"reveal_delay"`
	LocalInterval time.Duration `mapstructure:"local_interval"`
	// LocalSecret seeds the local hash beacon; it must stay private in shared deployments
	LocalSecret string `mapstructure:"local_secret"`
}

// WorkerConfig holds worker pool configuration
type WorkerConfig struct {
	WorkerPoolSize  int `mapstructure:"pool_size"`
	WorkerQueueSize int `mapstructure:"queue_size"`
}

// RelayConfig holds the event relay sweeper configuration
type RelayConfig struct {
	Enabled    bool          `mapstructure:"enabled"`
	Interval   time.Duration `mapstructure:"interval"`
	BatchSize  int           `mapstructure:"batch_size"`
	MaxElapsed time.Duration `mapstructure:"max_elapsed"`
	Worker     WorkerConfig  `mapstructure:"worker"`
}

// KeeperConfig holds the case reveal keeper configuration
type KeeperConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	Interval  time.Duration `mapstructure:"interval"`
	BatchSize int           `mapstructure:"batch_size"`
	Worker    WorkerConfig  `mapstructure:"worker"`
	// Address opens purchases on behalf of their buyers; defaults to the admin address
	Address string `mapstructure:"address"`
}

// GameConfig groups the economy sections shared by every binary that runs the engines
type GameConfig struct {
	Ledger     LedgerConfig     `mapstructure:"ledger"`
	Cases      CasesConfig      `mapstructure:"cases"`
	Upgrade    UpgradeConfig    `mapstructure:"upgrade"`
	Burn       BurnConfig       `mapstructure:"burn"`
	Randomness RandomnessConfig `mapstructure:"randomness"`
	Ethereum   EthereumConfig   `mapstructure:"ethereum"`
}

// APIConfig holds configuration for API server
type APIConfig struct {
	BaseConfig `mapstructure:",squash"`
	GameConfig `mapstructure:",squash"`
	Server     ServerConfig   `mapstructure:"server"`
	Database   DatabaseConfig `mapstructure:"database"`
	Auth       AuthConfig     `mapstructure:"auth"`
}

// SweeperConfig holds configuration for the sweeper program
type SweeperConfig struct {
	BaseConfig `mapstructure:",squash"`
	GameConfig `mapstructure:",squash"`
	Database   DatabaseConfig `mapstructure:"database"`
	NATS       NATSConfig     `mapstructure:"nats"`
	Relay      RelayConfig    `mapstructure:"relay"`
	Keeper     KeeperConfig   `mapstructure:"keeper"`
}

// BootstrapConfig holds configuration for the bootstrap tool
type BootstrapConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig `mapstructure:"database"`
	Ledger     LedgerConfig   `mapstructure:"ledger"`
}

// LoadAPIConfig loads configuration for API server
func LoadAPIConfig(configFile string, envPath string) (*APIConfig, error) {
	v := configureViper("api", configFile, envPath)

	// Set defaults
	v.SetDefault("debug", false)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("server.idle_timeout", 120)
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("auth.signature_max_skew", "5m")
	v.SetDefault("auth.replay_cache_size", 100000)
	setGameDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var error viper.ConfigFileNotFoundError
		if errors.As(err, &error) {
			// Config file not found, use environment variables
		} else {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config APIConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.GameConfig.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadSweeperConfig loads configuration for the sweeper program
func LoadSweeperConfig(configFile string, envPath string) (*SweeperConfig, error) {
	v := configureViper("sweeper", configFile, envPath)

	// Set defaults
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 5)
	v.SetDefault("database.max_idle_conns", 2)
	v.SetDefault("database.conn_max_lifetime", "1h")
	v.SetDefault("database.conn_max_idle_time", "10m")
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.stream_name", "LEDGER_EVENTS")
	v.SetDefault("nats.subject_prefix", "ledger")
	v.SetDefault("nats.connection_name", "brainrot-sweeper")
	v.SetDefault("nats.duplicate_window", "2m")
	v.SetDefault("relay.enabled", true)
	v.SetDefault("relay.interval", "2s")
	v.SetDefault("relay.batch_size", 100)
	v.SetDefault("relay.max_elapsed", "30s")
	v.SetDefault("relay.worker.pool_size", 10)
	v.SetDefault("relay.worker.queue_size", 100)
	v.SetDefault("keeper.enabled", true)
	v.SetDefault("keeper.interval", "5s")
	v.SetDefault("keeper.batch_size", 50)
	v.SetDefault("keeper.worker.pool_size", 4)
	setGameDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg SweeperConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate required fields
	if cfg.Database.Host == "" {
		return nil, errors.New("database.host is required")
	}
	if cfg.Database.DBName == "" {
		return nil, errors.New("database.dbname is required")
	}
	if cfg.Relay.Enabled && cfg.NATS.URL == "" {
		return nil, errors.New("nats.url is required when relay is enabled")
	}
	if cfg.Keeper.Address != "" {
		if _, err := domain.ParseAddress(cfg.Keeper.Address); err != nil {
			return nil, fmt.Errorf("keeper.address: %w", err)
		}
	}
	if err := cfg.GameConfig.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadBootstrapConfig loads configuration for the bootstrap tool
func LoadBootstrapConfig(configFile string, envPath string) (*BootstrapConfig, error) {
	v := configureViper("bootstrap", configFile, envPath)

	// Set defaults
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("ledger.max_level", domain.DEFAULT_MAX_LEVEL)

	if err := v.ReadInConfig(); err != nil {
		var error viper.ConfigFileNotFoundError
		if errors.As(err, &error) {
			// Config file not found, use environment variables
		} else {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg BootstrapConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if _, err := cfg.Ledger.Admin(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setGameDefaults sets the defaults of the economy sections
func setGameDefaults(v *viper.Viper) {
	v.SetDefault("ledger.max_level", domain.DEFAULT_MAX_LEVEL)
	v.SetDefault("ledger.metadata_base_uri", "https://brainrot.gg/metadata/")
	v.SetDefault("cases.bronze.price", "500000000000000")   // 0.0005 ETH
	v.SetDefault("cases.silver.price", "2000000000000000")  // 0.002 ETH
	v.SetDefault("cases.gold.price", "10000000000000000")   // 0.01 ETH
	v.SetDefault("cases.bronze.weights", map[string]uint64{"common": 80, "rare": 20})
	v.SetDefault("cases.silver.weights", map[string]uint64{"rare": 70, "epic": 25, "legendary": 5})
	v.SetDefault("cases.gold.weights", map[string]uint64{"epic": 60, "legendary": 40})
	v.SetDefault("upgrade.base_fee", "0")
	v.SetDefault("upgrade.per_level_fee", "250000000000000") // 0.00025 ETH
	v.SetDefault("burn.inputs_per_recipe", domain.DEFAULT_RECIPE_INPUT)
	v.SetDefault("randomness.mode", "local")
	v.SetDefault("randomness.reveal_delay", 2)
	v.SetDefault("randomness.local_interval", "2s")
	v.SetDefault("ethereum.block_head_ttl", "12s")
	v.SetDefault("ethereum.block_head_stale_window", "60s")
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	// Load environment variables
	loadEnv(envPath, service)

	// Set config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// Search for config.yaml in multiple locations:
		// 1. Current directory
		v.AddConfigPath(".")
		// 2. Service-specific directory (e.g., cmd/sweeper/, cmd/api/)
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		// 3. Config directory
		v.AddConfigPath("config/")
	}

	// Set environment variables
	v.SetEnvPrefix("BRAINROT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind all environment variables
	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables
// This is required for viper to map env vars to config struct fields when no config file exists
func bindAllEnvVars(v *viper.Viper) {
	commonKeys := []string{
		"debug",
		"sentry_dsn",
		// Database
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// NATS
		"nats.url",
		"nats.stream_name",
		"nats.subject_prefix",
		"nats.max_reconnects",
		"nats.reconnect_wait",
		"nats.connection_name",
		"nats.duplicate_window",
		// Ethereum
		"ethereum.rpc_url",
		"ethereum.block_head_ttl",
		"ethereum.block_head_stale_window",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		// Auth
		"auth.jwt_public_key",
		"auth.jwt_issuer",
		"auth.signature_max_skew",
		"auth.replay_cache_size",
		"auth.allowed_origins",
		// Ledger
		"ledger.admin_address",
		"ledger.case_engine_address",
		"ledger.burn_engine_address",
		"ledger.upgrade_gate_address",
		"ledger.max_level",
		"ledger.metadata_base_uri",
		// Cases
		"cases.bronze.price",
		"cases.silver.price",
		"cases.gold.price",
		// Upgrade
		"upgrade.base_fee",
		"upgrade.per_level_fee",
		// Burn
		"burn.inputs_per_recipe",
		// Randomness
		"randomness.mode",
		"randomness.reveal_delay",
		"randomness.local_interval",
		"randomness.local_secret",
		// Relay sweeper
		"relay.enabled",
		"relay.interval",
		"relay.batch_size",
		"relay.max_elapsed",
		"relay.worker.pool_size",
		"relay.worker.queue_size",
		// Keeper sweeper
		"keeper.enabled",
		"keeper.interval",
		"keeper.batch_size",
		"keeper.worker.pool_size",
		"keeper.address",
	}

	for _, key := range commonKeys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	// Always try shared base first, then local, then optional per-service local.
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	// Default to config directory
	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// Admin returns the parsed admin address
func (c *LedgerConfig) Admin() (common.Address, error) {
	if c.AdminAddress == "" {
		return common.Address{}, errors.New("ledger.admin_address is required")
	}
	addr, err := domain.ParseAddress(c.AdminAddress)
	if err != nil {
		return common.Address{}, fmt.Errorf("ledger.admin_address: %w", err)
	}
	if addr == (common.Address{}) {
		return common.Address{}, fmt.Errorf("ledger.admin_address: %w: zero address", domain.ErrInvalidAddress)
	}
	return addr, nil
}

// EngineAddresses returns the configured engine addresses keyed by their config name.
// Unset addresses are omitted.
func (c *LedgerConfig) EngineAddresses() (map[string]common.Address, error) {
	raw := map[string]string{
		"case_engine":  c.CaseEngineAddress,
		"burn_engine":  c.BurnEngineAddress,
		"upgrade_gate": c.UpgradeGateAddress,
	}

	addrs := make(map[string]common.Address, len(raw))
	for name, s := range raw {
		if s == "" {
			continue
		}
		addr, err := domain.ParseAddress(s)
		if err != nil {
			return nil, fmt.Errorf("ledger.%s_address: %w", name, err)
		}
		addrs[name] = addr
	}
	return addrs, nil
}

// Caller returns the keeper address, falling back to the admin address
func (c *KeeperConfig) Caller(admin common.Address) common.Address {
	if c.Address == "" {
		return admin
	}
	return common.HexToAddress(c.Address)
}

// PriceWei returns the parsed case price
func (c *CaseTierConfig) PriceWei() (*big.Int, error) {
	return domain.ParseAmount(c.Price)
}

// Fees returns the parsed base and per-level upgrade fees
func (c *UpgradeConfig) Fees() (base *big.Int, perLevel *big.Int, err error) {
	base, err = domain.ParseAmount(c.BaseFee)
	if err != nil {
		return nil, nil, fmt.Errorf("upgrade.base_fee: %w", err)
	}
	perLevel, err = domain.ParseAmount(c.PerLevelFee)
	if err != nil {
		return nil, nil, fmt.Errorf("upgrade.per_level_fee: %w", err)
	}
	return base, perLevel, nil
}

// Validate checks the economy sections for required values
func (c *GameConfig) Validate() error {
	if _, err := c.Ledger.Admin(); err != nil {
		return err
	}
	for _, engine := range []string{c.Ledger.CaseEngineAddress, c.Ledger.BurnEngineAddress, c.Ledger.UpgradeGateAddress} {
		if engine == "" {
			return errors.New("ledger engine addresses are required")
		}
	}
	if _, err := c.Ledger.EngineAddresses(); err != nil {
		return err
	}
	if c.Burn.InputsPerRecipe < 2 {
		return errors.New("burn.inputs_per_recipe must be at least 2")
	}
	switch c.Randomness.Mode {
	case "local":
	case "chain":
		if c.Ethereum.RPCURL == "" {
			return errors.New("ethereum.rpc_url is required for chain randomness")
		}
	default:
		return fmt.Errorf("unknown randomness.mode: %q", c.Randomness.Mode)
	}
	if _, _, err := c.Upgrade.Fees(); err != nil {
		return err
	}
	return nil
}
