package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/feral-file/brainrot-ledger/internal/store/schema"
)

// ledgerLockKey is the advisory lock taken by every read-write transaction
const ledgerLockKey int64 = 0x6272_6169_6e72_6f74 // "brainrot"

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM database connection.
// It accesses the underlying *sql.DB and sets the pool configuration.
// If any of the pool settings are 0 or empty, reasonable defaults are used:
//   - MaxOpenConns: 20 (if 0)
//   - MaxIdleConns: 5 (if 0)
//   - ConnMaxLifetime: 5 minutes (if 0)
//   - ConnMaxIdleTime: 10 minutes (if 0)
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings into safe values.
//
// Defaults (when zero):
//   - MaxOpenConns: 20
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	// Ensure MaxIdleConns doesn't exceed MaxOpenConns
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// Transact runs fn inside a database transaction holding the ledger advisory lock,
// so that concurrent mutations commit in a single total order
func (s *pgStore) Transact(ctx context.Context, fn func(tx Tx) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", ledgerLockKey).Error; err != nil {
			return fmt.Errorf("failed to acquire ledger lock: %w", err)
		}
		return fn(&pgTx{db: tx})
	})
}

// View runs fn inside a read-only repeatable-read transaction
func (s *pgStore) View(ctx context.Context, fn func(tx Tx) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&pgTx{db: tx, readOnly: true})
	}, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
}

// GetUnpublishedEvents retrieves ledger events that have not been relayed yet, oldest first
func (s *pgStore) GetUnpublishedEvents(ctx context.Context, limit int) ([]schema.LedgerEvent, error) {
	var events []schema.LedgerEvent
	err := s.db.WithContext(ctx).
		Where("published_at IS NULL").
		Order("id ASC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get unpublished events: %w", err)
	}
	return events, nil
}

// MarkEventsPublished stamps the given events as published
func (s *pgStore) MarkEventsPublished(ctx context.Context, ids []uint64, publishedAt time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	err := s.db.WithContext(ctx).
		Model(&schema.LedgerEvent{}).
		Where("id IN ? AND published_at IS NULL", ids).
		Update("published_at", publishedAt).Error
	if err != nil {
		return fmt.Errorf("failed to mark events published: %w", err)
	}
	return nil
}

type pgTx struct {
	db       *gorm.DB
	readOnly bool
}

var errReadOnlyTx = errors.New("write in read-only transaction")

func (t *pgTx) writable() error {
	if t.readOnly {
		return errReadOnlyTx
	}
	return nil
}

// NextSequence increments and returns the named sequence
func (t *pgTx) NextSequence(ctx context.Context, key string) (uint64, error) {
	if err := t.writable(); err != nil {
		return 0, err
	}

	var kv schema.KeyValueStore
	err := t.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("key = ?", key).
		First(&kv).Error
	var current uint64
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		current = 0
	case err != nil:
		return 0, fmt.Errorf("failed to read sequence %s: %w", key, err)
	default:
		current, err = strconv.ParseUint(kv.Value, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("failed to parse sequence %s: %w", key, err)
		}
	}

	next := current + 1
	kv = schema.KeyValueStore{Key: key, Value: strconv.FormatUint(next, 10)}
	if err := t.db.WithContext(ctx).Save(&kv).Error; err != nil {
		return 0, fmt.Errorf("failed to write sequence %s: %w", key, err)
	}
	return next, nil
}

// GetToken retrieves a token row by id
func (t *pgTx) GetToken(ctx context.Context, id uint64) (*schema.Token, error) {
	var token schema.Token
	err := t.db.WithContext(ctx).Where("id = ?", id).First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get token: %w", err)
	}
	return &token, nil
}

// CreateToken inserts a new token row
func (t *pgTx) CreateToken(ctx context.Context, token *schema.Token) error {
	if err := t.writable(); err != nil {
		return err
	}
	if err := t.db.WithContext(ctx).Create(token).Error; err != nil {
		return fmt.Errorf("failed to create token: %w", err)
	}
	return nil
}

// UpdateToken saves the mutable columns of a token row
func (t *pgTx) UpdateToken(ctx context.Context, token *schema.Token) error {
	if err := t.writable(); err != nil {
		return err
	}
	token.UpdatedAt = time.Now().UTC()
	err := t.db.WithContext(ctx).
		Model(&schema.Token{}).
		Where("id = ?", token.ID).
		Updates(map[string]interface{}{
			"owner_address": token.OwnerAddress,
			"burned":        token.Burned,
			"burned_at":     token.BurnedAt,
			"level":         token.Level,
			"updated_at":    token.UpdatedAt,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update token: %w", err)
	}
	return nil
}

// AppendOwnedToken appends a token to the end of the owner's index
func (t *pgTx) AppendOwnedToken(ctx context.Context, owner string, tokenID uint64) error {
	if err := t.writable(); err != nil {
		return err
	}

	var count int64
	if err := t.db.WithContext(ctx).
		Model(&schema.OwnedToken{}).
		Where("owner_address = ?", owner).
		Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count owned tokens: %w", err)
	}

	row := schema.OwnedToken{OwnerAddress: owner, Position: count, TokenID: tokenID}
	if err := t.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to append owned token: %w", err)
	}
	return nil
}

// RemoveOwnedToken removes a token from the owner's index, moving the last entry into its slot
func (t *pgTx) RemoveOwnedToken(ctx context.Context, owner string, tokenID uint64) error {
	if err := t.writable(); err != nil {
		return err
	}

	var removed schema.OwnedToken
	err := t.db.WithContext(ctx).
		Where("owner_address = ? AND token_id = ?", owner, tokenID).
		First(&removed).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("token %d not indexed for owner %s", tokenID, owner)
		}
		return fmt.Errorf("failed to find owned token: %w", err)
	}

	var last schema.OwnedToken
	if err := t.db.WithContext(ctx).
		Where("owner_address = ?", owner).
		Order("position DESC").
		First(&last).Error; err != nil {
		return fmt.Errorf("failed to find last owned token: %w", err)
	}

	if err := t.db.WithContext(ctx).
		Where("owner_address = ? AND position = ?", owner, removed.Position).
		Delete(&schema.OwnedToken{}).Error; err != nil {
		return fmt.Errorf("failed to remove owned token: %w", err)
	}

	if last.Position != removed.Position {
		err := t.db.WithContext(ctx).
			Model(&schema.OwnedToken{}).
			Where("owner_address = ? AND position = ?", owner, last.Position).
			Update("position", removed.Position).Error
		if err != nil {
			return fmt.Errorf("failed to move last owned token: %w", err)
		}
	}

	return nil
}

// GetOwnedTokens retrieves the owner's index in position order
func (t *pgTx) GetOwnedTokens(ctx context.Context, owner string) ([]uint64, error) {
	var ids []uint64
	err := t.db.WithContext(ctx).
		Model(&schema.OwnedToken{}).
		Where("owner_address = ?", owner).
		Order("position ASC").
		Pluck("token_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get owned tokens: %w", err)
	}
	return ids, nil
}

// IsAuthorized looks up an authorization flag
func (t *pgTx) IsAuthorized(ctx context.Context, address string) (bool, error) {
	var auth schema.Authorization
	err := t.db.WithContext(ctx).Where("address = ?", address).First(&auth).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get authorization: %w", err)
	}
	return auth.Authorized, nil
}

// SetAuthorization writes an authorization flag
func (t *pgTx) SetAuthorization(ctx context.Context, address string, authorized bool) error {
	if err := t.writable(); err != nil {
		return err
	}
	auth := schema.Authorization{
		Address:    address,
		Authorized: authorized,
		UpdatedAt:  time.Now().UTC(),
	}
	err := t.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "address"}},
			DoUpdates: clause.AssignmentColumns([]string{"authorized", "updated_at"}),
		}).
		Create(&auth).Error
	if err != nil {
		return fmt.Errorf("failed to set authorization: %w", err)
	}
	return nil
}

// ListAuthorized lists the addresses currently authorized
func (t *pgTx) ListAuthorized(ctx context.Context) ([]string, error) {
	var addresses []string
	err := t.db.WithContext(ctx).
		Model(&schema.Authorization{}).
		Where("authorized = ?", true).
		Order("address ASC").
		Pluck("address", &addresses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list authorizations: %w", err)
	}
	return addresses, nil
}

// GetBalance retrieves an account balance
func (t *pgTx) GetBalance(ctx context.Context, address string) (*big.Int, error) {
	var account schema.Account
	err := t.db.WithContext(ctx).Where("address = ?", address).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return new(big.Int), nil
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return parseNumeric(account.Balance)
}

// SetBalance writes an account balance
func (t *pgTx) SetBalance(ctx context.Context, address string, balance *big.Int) error {
	if err := t.writable(); err != nil {
		return err
	}
	if balance.Sign() < 0 {
		return fmt.Errorf("negative balance for %s", address)
	}
	now := time.Now().UTC()
	account := schema.Account{
		Address:   address,
		Balance:   balance.String(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := t.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "address"}},
			DoUpdates: clause.AssignmentColumns([]string{"balance", "updated_at"}),
		}).
		Create(&account).Error
	if err != nil {
		return fmt.Errorf("failed to set balance: %w", err)
	}
	return nil
}

// GetListing retrieves the listing of a token
func (t *pgTx) GetListing(ctx context.Context, tokenID uint64) (*schema.Listing, error) {
	var listing schema.Listing
	err := t.db.WithContext(ctx).Where("token_id = ?", tokenID).First(&listing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}
	return &listing, nil
}

// SaveListing creates or replaces the listing of a token
func (t *pgTx) SaveListing(ctx context.Context, listing *schema.Listing) error {
	if err := t.writable(); err != nil {
		return err
	}
	err := t.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "token_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"seller_address", "price", "created_at"}),
		}).
		Create(listing).Error
	if err != nil {
		return fmt.Errorf("failed to save listing: %w", err)
	}
	return nil
}

// DeleteListing removes the listing of a token
func (t *pgTx) DeleteListing(ctx context.Context, tokenID uint64) error {
	if err := t.writable(); err != nil {
		return err
	}
	if err := t.db.WithContext(ctx).Where("token_id = ?", tokenID).Delete(&schema.Listing{}).Error; err != nil {
		return fmt.Errorf("failed to delete listing: %w", err)
	}
	return nil
}

// GetListings retrieves listings matching the filter ordered by token id
func (t *pgTx) GetListings(ctx context.Context, filter ListingFilter) ([]schema.Listing, error) {
	query := t.db.WithContext(ctx).
		Model(&schema.Listing{}).
		Select("listings.*").
		Joins("JOIN tokens ON tokens.id = listings.token_id")

	if filter.Seller != nil {
		query = query.Where("listings.seller_address = ?", *filter.Seller)
	}
	if filter.Rarity != nil {
		query = query.Where("tokens.rarity = ?", *filter.Rarity)
	}
	if filter.MinLevel != nil {
		query = query.Where("tokens.level >= ?", *filter.MinLevel)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var listings []schema.Listing
	if err := query.Order("listings.token_id ASC").Find(&listings).Error; err != nil {
		return nil, fmt.Errorf("failed to get listings: %w", err)
	}
	return listings, nil
}

// CreatePurchase inserts a new case purchase
func (t *pgTx) CreatePurchase(ctx context.Context, purchase *schema.CasePurchase) error {
	if err := t.writable(); err != nil {
		return err
	}
	if err := t.db.WithContext(ctx).Create(purchase).Error; err != nil {
		return fmt.Errorf("failed to create purchase: %w", err)
	}
	return nil
}

// GetPurchase retrieves a case purchase by id
func (t *pgTx) GetPurchase(ctx context.Context, id uint64) (*schema.CasePurchase, error) {
	var purchase schema.CasePurchase
	err := t.db.WithContext(ctx).Where("id = ?", id).First(&purchase).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get purchase: %w", err)
	}
	return &purchase, nil
}

// UpdatePurchase saves the status columns of a case purchase
func (t *pgTx) UpdatePurchase(ctx context.Context, purchase *schema.CasePurchase) error {
	if err := t.writable(); err != nil {
		return err
	}
	err := t.db.WithContext(ctx).
		Model(&schema.CasePurchase{}).
		Where("id = ?", purchase.ID).
		Updates(map[string]interface{}{
			"status":    purchase.Status,
			"token_id":  purchase.TokenID,
			"opened_at": purchase.OpenedAt,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update purchase: %w", err)
	}
	return nil
}

// GetPurchases retrieves case purchases matching the filter ordered by id
func (t *pgTx) GetPurchases(ctx context.Context, filter PurchaseFilter) ([]schema.CasePurchase, error) {
	query := t.db.WithContext(ctx).Model(&schema.CasePurchase{})

	if filter.Buyer != nil {
		query = query.Where("buyer_address = ?", *filter.Buyer)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.MaxRevealHeight != nil {
		query = query.Where("reveal_height <= ?", *filter.MaxRevealHeight)
	}
	if filter.AfterID > 0 {
		query = query.Where("id > ?", filter.AfterID)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var purchases []schema.CasePurchase
	if err := query.Order("id ASC").Find(&purchases).Error; err != nil {
		return nil, fmt.Errorf("failed to get purchases: %w", err)
	}
	return purchases, nil
}

// AppendEvent appends an event to the outbox
func (t *pgTx) AppendEvent(ctx context.Context, event *schema.LedgerEvent) error {
	if err := t.writable(); err != nil {
		return err
	}
	if err := t.db.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("failed to append event: %w", err)
	}
	return nil
}

func parseNumeric(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("invalid numeric value: %q", s)
	}
	return v, nil
}
