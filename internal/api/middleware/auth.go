package middleware

import (
	"bytes"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"

	"github.com/feral-file/brainrot-ledger/internal/adapter"
	apierrors "github.com/feral-file/brainrot-ledger/internal/api/shared/errors"
	"github.com/feral-file/brainrot-ledger/internal/domain"
	"github.com/feral-file/brainrot-ledger/internal/logger"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	AUTH_TYPE_KEY  contextKey = "auth_type"
	CALLER_KEY     contextKey = "caller"
	JWT_CLAIMS_KEY contextKey = "jwt_claims"
)

const (
	WALLET_ADDRESS_HEADER   = "X-Wallet-Address"
	WALLET_SIGNATURE_HEADER = "X-Wallet-Signature"
	WALLET_TIMESTAMP_HEADER = "X-Wallet-Timestamp"

	AUTH_TYPE_JWT    = "jwt"
	AUTH_TYPE_WALLET = "wallet"

	DEFAULT_SIGNATURE_MAX_SKEW = 5 * time.Minute
	DEFAULT_REPLAY_CACHE_SIZE  = 100_000
	MAX_SIGNED_BODY_SIZE       = 1 << 20
)

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTPublicKey string // RSA public key in PEM format
	JWTIssuer    string // Expected issuer, not checked when empty
	// SignatureMaxSkew bounds the distance between a wallet signature timestamp and now
	SignatureMaxSkew time.Duration
	// ReplayCacheSize bounds the number of remembered wallet signatures
	ReplayCacheSize int
}

// AuthResult holds the result of authentication
type AuthResult struct {
	Success  bool
	AuthType string // "jwt" or "wallet"
	Caller   common.Address
	Claims   *jwt.RegisteredClaims
	Error    error
}

// Authenticator resolves the calling wallet of a request
type Authenticator struct {
	cfg       AuthConfig
	publicKey *rsa.PublicKey
	clock     adapter.Clock

	mu   sync.Mutex
	seen *expirable.LRU[string, struct{}]
}

// NewAuthenticator creates an authenticator. JWT authentication is disabled when no public key is configured.
func NewAuthenticator(cfg AuthConfig, clock adapter.Clock) (*Authenticator, error) {
	if cfg.SignatureMaxSkew <= 0 {
		cfg.SignatureMaxSkew = DEFAULT_SIGNATURE_MAX_SKEW
	}
	if cfg.ReplayCacheSize <= 0 {
		cfg.ReplayCacheSize = DEFAULT_REPLAY_CACHE_SIZE
	}

	a := &Authenticator{
		cfg:   cfg,
		clock: clock,
		// a signature older than twice the skew is rejected on its timestamp alone
		seen: expirable.NewLRU[string, struct{}](cfg.ReplayCacheSize, nil, 2*cfg.SignatureMaxSkew),
	}

	if cfg.JWTPublicKey != "" {
		publicKey, err := parseRSAPublicKey(cfg.JWTPublicKey)
		if err != nil {
			return nil, fmt.Errorf("failed to parse RSA public key: %w", err)
		}
		a.publicKey = publicKey
	}

	return a, nil
}

// Authenticate validates the credentials of a request.
// A bearer token takes precedence over wallet signature headers.
func (a *Authenticator) Authenticate(r *http.Request) AuthResult {
	result := AuthResult{
		Success: false,
	}

	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			result.Error = errors.New("invalid Authorization header format")
			return result
		}

		claims, caller, err := a.validateJWT(parts[1])
		if err != nil {
			result.Error = err
			return result
		}
		result.Success = true
		result.AuthType = AUTH_TYPE_JWT
		result.Claims = claims
		result.Caller = caller
		return result
	}

	if r.Header.Get(WALLET_SIGNATURE_HEADER) != "" {
		caller, err := a.validateWalletSignature(r)
		if err != nil {
			result.Error = err
			return result
		}
		result.Success = true
		result.AuthType = AUTH_TYPE_WALLET
		result.Caller = caller
		return result
	}

	result.Error = errors.New("missing credentials")
	return result
}

// Auth returns a gin middleware that requires an authenticated wallet
func (a *Authenticator) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		result := a.Authenticate(c.Request)

		if !result.Success {
			logger.WarnCtx(c.Request.Context(), "Authentication failed",
				zap.Error(result.Error),
				zap.String("path", c.Request.URL.Path),
				zap.String("client_ip", c.ClientIP()),
			)
			apiErr := apierrors.NewUnauthorizedError("Authentication failed", result.Error.Error())
			c.AbortWithStatusJSON(http.StatusUnauthorized, apiErr)
			return
		}

		// Store authentication info in context
		c.Set(AUTH_TYPE_KEY, result.AuthType)
		c.Set(CALLER_KEY, result.Caller)
		if result.Claims != nil {
			c.Set(JWT_CLAIMS_KEY, result.Claims)
		}
		logger.DebugCtx(c.Request.Context(), "Authentication successful",
			zap.String("auth_type", result.AuthType),
			logger.Address("caller", result.Caller),
			zap.String("path", c.Request.URL.Path),
		)

		c.Next()
	}
}

// CallerFromContext returns the authenticated wallet of the request
func CallerFromContext(c *gin.Context) (common.Address, bool) {
	v, ok := c.Get(CALLER_KEY)
	if !ok {
		return common.Address{}, false
	}
	caller, ok := v.(common.Address)
	return caller, ok
}

// validateJWT validates a JWT token with RSA signature and returns claims and the subject wallet
func (a *Authenticator) validateJWT(tokenString string) (*jwt.RegisteredClaims, common.Address, error) {
	if a.publicKey == nil {
		return nil, common.Address{}, errors.New("JWT public key not configured")
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{"RS256", "RS384", "RS512"}),
		jwt.WithTimeFunc(a.clock.Now),
		jwt.WithExpirationRequired(),
	}
	if a.cfg.JWTIssuer != "" {
		opts = append(opts, jwt.WithIssuer(a.cfg.JWTIssuer))
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return a.publicKey, nil
	}, opts...)
	if err != nil {
		return nil, common.Address{}, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return nil, common.Address{}, errors.New("invalid token")
	}

	caller, err := domain.ParseAddress(claims.Subject)
	if err != nil {
		return nil, common.Address{}, fmt.Errorf("token subject is not a wallet address: %w", err)
	}
	return claims, caller, nil
}

// validateWalletSignature verifies an EIP-191 personal signature over the request and returns the signer.
// The signed message is "<METHOD> <PATH>\n<unix timestamp>\n<keccak256 of body, hex>".
func (a *Authenticator) validateWalletSignature(r *http.Request) (common.Address, error) {
	claimed, err := domain.ParseAddress(r.Header.Get(WALLET_ADDRESS_HEADER))
	if err != nil {
		return common.Address{}, fmt.Errorf("invalid %s header: %w", WALLET_ADDRESS_HEADER, err)
	}

	timestamp := r.Header.Get(WALLET_TIMESTAMP_HEADER)
	seconds, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return common.Address{}, fmt.Errorf("invalid %s header", WALLET_TIMESTAMP_HEADER)
	}
	skew := a.clock.Now().Sub(time.Unix(seconds, 0))
	if skew > a.cfg.SignatureMaxSkew || skew < -a.cfg.SignatureMaxSkew {
		return common.Address{}, errors.New("signature timestamp outside the allowed window")
	}

	signature, err := hexutil.Decode(r.Header.Get(WALLET_SIGNATURE_HEADER))
	if err != nil || len(signature) != crypto.SignatureLength {
		return common.Address{}, fmt.Errorf("invalid %s header", WALLET_SIGNATURE_HEADER)
	}

	body, err := readBody(r)
	if err != nil {
		return common.Address{}, err
	}

	hash := accounts.TextHash([]byte(SigningMessage(r.Method, r.URL.Path, timestamp, body)))
	sig := bytes.Clone(signature)
	if sig[crypto.RecoveryIDOffset] >= 27 {
		sig[crypto.RecoveryIDOffset] -= 27
	}
	// only the canonical low-s form is accepted so a signature has a single encoding
	sigR, sigS := new(big.Int).SetBytes(sig[:32]), new(big.Int).SetBytes(sig[32:64])
	if !crypto.ValidateSignatureValues(sig[crypto.RecoveryIDOffset], sigR, sigS, true) {
		return common.Address{}, errors.New("non-canonical signature")
	}
	pub, err := crypto.SigToPub(hash, sig)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to recover signer: %w", err)
	}
	if signer := crypto.PubkeyToAddress(*pub); signer != claimed {
		return common.Address{}, fmt.Errorf("signature does not match %s", claimed.Hex())
	}

	// keyed on what was signed, not on its encoding
	key := claimed.Hex() + ":" + common.BytesToHash(hash).Hex()
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.seen.Contains(key) {
		return common.Address{}, errors.New("signature already used")
	}
	a.seen.Add(key, struct{}{})

	return claimed, nil
}

// SigningMessage builds the message a wallet signs to authenticate a request
func SigningMessage(method, path, timestamp string, body []byte) string {
	return fmt.Sprintf("%s %s\n%s\n%s", method, path, timestamp, crypto.Keccak256Hash(body).Hex())
}

// readBody reads the request body and puts it back for the handler
func readBody(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, MAX_SIGNED_BODY_SIZE+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	if len(body) > MAX_SIGNED_BODY_SIZE {
		return nil, errors.New("request body too large")
	}
	r.Body = io.NopCloser(bytes.NewReader(body))
	return body, nil
}

// parseRSAPublicKey parses an RSA public key from PEM format
func parseRSAPublicKey(publicKeyPEM string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(publicKeyPEM))
	if block == nil {
		return nil, errors.New("failed to parse PEM block containing public key")
	}

	// Try parsing as PKIX (most common format)
	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		// Try parsing as PKCS1 format
		return x509.ParsePKCS1PublicKey(block.Bytes)
	}

	rsaKey, ok := pub.(*rsa.PublicKey)
	if !ok {
		return nil, errors.New("public key is not an RSA key")
	}

	return rsaKey, nil
}
