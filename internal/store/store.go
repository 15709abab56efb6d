package store

import (
	"context"
	"math/big"
	"time"

	"github.com/feral-file/brainrot-ledger/internal/store/schema"
)

const (
	// SequenceTokenID is the key of the token id sequence
	SequenceTokenID = "sequence:token_id"
	// SequencePurchaseID is the key of the case purchase id sequence
	SequencePurchaseID = "sequence:purchase_id"
)

// Store defines the interface for database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore,Tx=MockTx
type Store interface {
	// Transact runs fn in a serialized read-write transaction. Any error returned by fn rolls back every write.
	Transact(ctx context.Context, fn func(tx Tx) error) error
	// View runs fn against a consistent read-only snapshot
	View(ctx context.Context, fn func(tx Tx) error) error
	// GetUnpublishedEvents retrieves ledger events that have not been relayed yet, oldest first
	GetUnpublishedEvents(ctx context.Context, limit int) ([]schema.LedgerEvent, error)
	// MarkEventsPublished stamps the given events as published
	MarkEventsPublished(ctx context.Context, ids []uint64, publishedAt time.Time) error
}

// Tx defines the operations available inside a transaction
type Tx interface {
	// NextSequence increments and returns the named sequence; the first value is 1
	NextSequence(ctx context.Context, key string) (uint64, error)

	// GetToken retrieves a token row by id, burned rows included. Returns nil if it was never minted.
	GetToken(ctx context.Context, id uint64) (*schema.Token, error)
	// CreateToken inserts a new token row
	CreateToken(ctx context.Context, token *schema.Token) error
	// UpdateToken saves the mutable columns of a token row
	UpdateToken(ctx context.Context, token *schema.Token) error

	// AppendOwnedToken appends a token to the end of the owner's index
	AppendOwnedToken(ctx context.Context, owner string, tokenID uint64) error
	// RemoveOwnedToken removes a token from the owner's index, moving the last entry into its slot
	RemoveOwnedToken(ctx context.Context, owner string, tokenID uint64) error
	// GetOwnedTokens retrieves the owner's index in position order
	GetOwnedTokens(ctx context.Context, owner string) ([]uint64, error)

	// IsAuthorized looks up an authorization flag; unknown addresses are not authorized
	IsAuthorized(ctx context.Context, address string) (bool, error)
	// SetAuthorization writes an authorization flag
	SetAuthorization(ctx context.Context, address string, authorized bool) error
	// ListAuthorized lists the addresses currently authorized, sorted
	ListAuthorized(ctx context.Context) ([]string, error)

	// GetBalance retrieves an account balance; unknown accounts hold zero
	GetBalance(ctx context.Context, address string) (*big.Int, error)
	// SetBalance writes an account balance
	SetBalance(ctx context.Context, address string, balance *big.Int) error

	// GetListing retrieves the listing of a token. Returns nil if the token is not listed.
	GetListing(ctx context.Context, tokenID uint64) (*schema.Listing, error)
	// SaveListing creates or replaces the listing of a token
	SaveListing(ctx context.Context, listing *schema.Listing) error
	// DeleteListing removes the listing of a token; deleting a missing listing is a no-op
	DeleteListing(ctx context.Context, tokenID uint64) error
	// GetListings retrieves listings matching the filter ordered by token id
	GetListings(ctx context.Context, filter ListingFilter) ([]schema.Listing, error)

	// CreatePurchase inserts a new case purchase
	CreatePurchase(ctx context.Context, purchase *schema.CasePurchase) error
	// GetPurchase retrieves a case purchase by id. Returns nil if not found.
	GetPurchase(ctx context.Context, id uint64) (*schema.CasePurchase, error)
	// UpdatePurchase saves the status columns of a case purchase
	UpdatePurchase(ctx context.Context, purchase *schema.CasePurchase) error
	// GetPurchases retrieves case purchases matching the filter ordered by id
	GetPurchases(ctx context.Context, filter PurchaseFilter) ([]schema.CasePurchase, error)

	// AppendEvent appends an event to the outbox and assigns its sequence id
	AppendEvent(ctx context.Context, event *schema.LedgerEvent) error
}

// ListingFilter narrows a listings query
type ListingFilter struct {
	Seller   *string
	Rarity   *int16
	MinLevel *int64
	Limit    int
	Offset   int
}

// PurchaseFilter narrows a case purchases query
type PurchaseFilter struct {
	Buyer *string
	// Status restricts the purchase status
	Status *schema.CasePurchaseStatus
	// MaxRevealHeight keeps purchases whose reveal height is at most this value
	MaxRevealHeight *uint64
	// AfterID keeps purchases with a larger id, for keyset paging
	AfterID uint64
	Limit   int
}
