package store

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"math/big"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/feral-file/brainrot-ledger/internal/store/schema"
)

// memoryState is the whole ledger state held by the in-memory store.
// Transactions work on a clone and swap it in on commit.
type memoryState struct {
	sequences     map[string]uint64
	tokens        map[uint64]schema.Token
	owned         map[string][]uint64
	ownedAt       map[uint64]ownedSlot
	authorization map[string]bool
	balances      map[string]*big.Int
	listings      map[uint64]schema.Listing
	purchases     map[uint64]schema.CasePurchase
	events        []schema.LedgerEvent
	eventSeq      uint64
}

// ownedSlot locates a token inside its owner's enumeration
type ownedSlot struct {
	owner    string
	position int
}

func newMemoryState() *memoryState {
	return &memoryState{
		sequences:     make(map[string]uint64),
		tokens:        make(map[uint64]schema.Token),
		owned:         make(map[string][]uint64),
		ownedAt:       make(map[uint64]ownedSlot),
		authorization: make(map[string]bool),
		balances:      make(map[string]*big.Int),
		listings:      make(map[uint64]schema.Listing),
		purchases:     make(map[uint64]schema.CasePurchase),
	}
}

func (s *memoryState) clone() *memoryState {
	c := &memoryState{
		sequences:     maps.Clone(s.sequences),
		tokens:        maps.Clone(s.tokens),
		owned:         make(map[string][]uint64, len(s.owned)),
		ownedAt:       maps.Clone(s.ownedAt),
		authorization: maps.Clone(s.authorization),
		balances:      maps.Clone(s.balances),
		listings:      maps.Clone(s.listings),
		purchases:     maps.Clone(s.purchases),
		events:        slices.Clone(s.events),
		eventSeq:      s.eventSeq,
	}
	for owner, ids := range s.owned {
		c.owned[owner] = slices.Clone(ids)
	}
	return c
}

type memoryStore struct {
	mu    sync.RWMutex
	state *memoryState
}

// NewMemoryStore creates an in-memory store. Read-write transactions are serialized
// by a single lock and either commit every write or none.
func NewMemoryStore() Store {
	return &memoryStore{state: newMemoryState()}
}

// Transact runs fn against a private copy of the state and commits it only when fn succeeds
func (s *memoryStore) Transact(ctx context.Context, fn func(tx Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	work := s.state.clone()
	if err := fn(&memoryTx{state: work}); err != nil {
		return err
	}
	s.state = work
	return nil
}

// View runs fn against the committed state
func (s *memoryStore) View(ctx context.Context, fn func(tx Tx) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(&memoryTx{state: s.state, readOnly: true})
}

// GetUnpublishedEvents retrieves ledger events that have not been relayed yet, oldest first
func (s *memoryStore) GetUnpublishedEvents(ctx context.Context, limit int) ([]schema.LedgerEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var events []schema.LedgerEvent
	for _, e := range s.state.events {
		if e.PublishedAt != nil {
			continue
		}
		events = append(events, e)
		if limit > 0 && len(events) == limit {
			break
		}
	}
	return events, nil
}

// MarkEventsPublished stamps the given events as published
func (s *memoryStore) MarkEventsPublished(ctx context.Context, ids []uint64, publishedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	wanted := make(map[uint64]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	for i := range s.state.events {
		e := &s.state.events[i]
		if _, ok := wanted[e.ID]; ok && e.PublishedAt == nil {
			at := publishedAt
			e.PublishedAt = &at
		}
	}
	return nil
}

type memoryTx struct {
	state    *memoryState
	readOnly bool
}

func (t *memoryTx) writable() error {
	if t.readOnly {
		return errReadOnlyTx
	}
	return nil
}

func (t *memoryTx) NextSequence(_ context.Context, key string) (uint64, error) {
	if err := t.writable(); err != nil {
		return 0, err
	}
	t.state.sequences[key]++
	return t.state.sequences[key], nil
}

func (t *memoryTx) GetToken(_ context.Context, id uint64) (*schema.Token, error) {
	token, ok := t.state.tokens[id]
	if !ok {
		return nil, nil
	}
	return copyToken(token), nil
}

func (t *memoryTx) CreateToken(_ context.Context, token *schema.Token) error {
	if err := t.writable(); err != nil {
		return err
	}
	if _, exists := t.state.tokens[token.ID]; exists {
		return fmt.Errorf("failed to create token: duplicate id %d", token.ID)
	}
	now := time.Now().UTC()
	if token.CreatedAt.IsZero() {
		token.CreatedAt = now
	}
	token.UpdatedAt = now
	t.state.tokens[token.ID] = *copyToken(*token)
	return nil
}

func (t *memoryTx) UpdateToken(_ context.Context, token *schema.Token) error {
	if err := t.writable(); err != nil {
		return err
	}
	current, exists := t.state.tokens[token.ID]
	if !exists {
		return fmt.Errorf("failed to update token: unknown id %d", token.ID)
	}
	updated := copyToken(current)
	updated.OwnerAddress = copyString(token.OwnerAddress)
	updated.Burned = token.Burned
	updated.BurnedAt = copyTime(token.BurnedAt)
	updated.Level = token.Level
	updated.UpdatedAt = time.Now().UTC()
	t.state.tokens[token.ID] = *updated
	return nil
}

func (t *memoryTx) AppendOwnedToken(_ context.Context, owner string, tokenID uint64) error {
	if err := t.writable(); err != nil {
		return err
	}
	if _, ok := t.state.ownedAt[tokenID]; ok {
		return fmt.Errorf("failed to append owned token: token %d already indexed", tokenID)
	}
	t.state.ownedAt[tokenID] = ownedSlot{owner: owner, position: len(t.state.owned[owner])}
	t.state.owned[owner] = append(t.state.owned[owner], tokenID)
	return nil
}

func (t *memoryTx) RemoveOwnedToken(_ context.Context, owner string, tokenID uint64) error {
	if err := t.writable(); err != nil {
		return err
	}
	slot, ok := t.state.ownedAt[tokenID]
	if !ok || slot.owner != owner {
		return fmt.Errorf("token %d not indexed for owner %s", tokenID, owner)
	}
	ids := t.state.owned[owner]
	last := len(ids) - 1
	if slot.position != last {
		moved := ids[last]
		ids[slot.position] = moved
		t.state.ownedAt[moved] = ownedSlot{owner: owner, position: slot.position}
	}
	delete(t.state.ownedAt, tokenID)
	ids = ids[:last]
	if len(ids) == 0 {
		delete(t.state.owned, owner)
	} else {
		t.state.owned[owner] = ids
	}
	return nil
}

func (t *memoryTx) GetOwnedTokens(_ context.Context, owner string) ([]uint64, error) {
	return slices.Clone(t.state.owned[owner]), nil
}

func (t *memoryTx) IsAuthorized(_ context.Context, address string) (bool, error) {
	return t.state.authorization[address], nil
}

func (t *memoryTx) SetAuthorization(_ context.Context, address string, authorized bool) error {
	if err := t.writable(); err != nil {
		return err
	}
	t.state.authorization[address] = authorized
	return nil
}

func (t *memoryTx) ListAuthorized(_ context.Context) ([]string, error) {
	var addresses []string
	for address, authorized := range t.state.authorization {
		if authorized {
			addresses = append(addresses, address)
		}
	}
	sort.Strings(addresses)
	return addresses, nil
}

func (t *memoryTx) GetBalance(_ context.Context, address string) (*big.Int, error) {
	balance, ok := t.state.balances[address]
	if !ok {
		return new(big.Int), nil
	}
	return new(big.Int).Set(balance), nil
}

func (t *memoryTx) SetBalance(_ context.Context, address string, balance *big.Int) error {
	if err := t.writable(); err != nil {
		return err
	}
	if balance.Sign() < 0 {
		return fmt.Errorf("negative balance for %s", address)
	}
	t.state.balances[address] = new(big.Int).Set(balance)
	return nil
}

func (t *memoryTx) GetListing(_ context.Context, tokenID uint64) (*schema.Listing, error) {
	listing, ok := t.state.listings[tokenID]
	if !ok {
		return nil, nil
	}
	return &listing, nil
}

func (t *memoryTx) SaveListing(_ context.Context, listing *schema.Listing) error {
	if err := t.writable(); err != nil {
		return err
	}
	if _, ok := t.state.tokens[listing.TokenID]; !ok {
		return fmt.Errorf("failed to save listing: unknown token %d", listing.TokenID)
	}
	if listing.CreatedAt.IsZero() {
		listing.CreatedAt = time.Now().UTC()
	}
	t.state.listings[listing.TokenID] = *listing
	return nil
}

func (t *memoryTx) DeleteListing(_ context.Context, tokenID uint64) error {
	if err := t.writable(); err != nil {
		return err
	}
	delete(t.state.listings, tokenID)
	return nil
}

func (t *memoryTx) GetListings(_ context.Context, filter ListingFilter) ([]schema.Listing, error) {
	ids := slices.Sorted(maps.Keys(t.state.listings))

	var listings []schema.Listing
	skipped := 0
	for _, id := range ids {
		listing := t.state.listings[id]
		token := t.state.tokens[id]
		if filter.Seller != nil && listing.SellerAddress != *filter.Seller {
			continue
		}
		if filter.Rarity != nil && token.Rarity != *filter.Rarity {
			continue
		}
		if filter.MinLevel != nil && token.Level < *filter.MinLevel {
			continue
		}
		if skipped < filter.Offset {
			skipped++
			continue
		}
		listings = append(listings, listing)
		if filter.Limit > 0 && len(listings) == filter.Limit {
			break
		}
	}
	return listings, nil
}

func (t *memoryTx) CreatePurchase(_ context.Context, purchase *schema.CasePurchase) error {
	if err := t.writable(); err != nil {
		return err
	}
	if _, exists := t.state.purchases[purchase.ID]; exists {
		return fmt.Errorf("failed to create purchase: duplicate id %d", purchase.ID)
	}
	if purchase.CreatedAt.IsZero() {
		purchase.CreatedAt = time.Now().UTC()
	}
	t.state.purchases[purchase.ID] = *copyPurchase(*purchase)
	return nil
}

func (t *memoryTx) GetPurchase(_ context.Context, id uint64) (*schema.CasePurchase, error) {
	purchase, ok := t.state.purchases[id]
	if !ok {
		return nil, nil
	}
	return copyPurchase(purchase), nil
}

func (t *memoryTx) UpdatePurchase(_ context.Context, purchase *schema.CasePurchase) error {
	if err := t.writable(); err != nil {
		return err
	}
	current, ok := t.state.purchases[purchase.ID]
	if !ok {
		return fmt.Errorf("failed to update purchase: unknown id %d", purchase.ID)
	}
	current.Status = purchase.Status
	current.TokenID = copyUint64(purchase.TokenID)
	current.OpenedAt = copyTime(purchase.OpenedAt)
	t.state.purchases[purchase.ID] = current
	return nil
}

func (t *memoryTx) GetPurchases(_ context.Context, filter PurchaseFilter) ([]schema.CasePurchase, error) {
	ids := slices.Sorted(maps.Keys(t.state.purchases))

	var purchases []schema.CasePurchase
	for _, id := range ids {
		p := t.state.purchases[id]
		if filter.Buyer != nil && p.BuyerAddress != *filter.Buyer {
			continue
		}
		if filter.Status != nil && p.Status != *filter.Status {
			continue
		}
		if filter.MaxRevealHeight != nil && p.RevealHeight > *filter.MaxRevealHeight {
			continue
		}
		if p.ID <= filter.AfterID {
			continue
		}
		purchases = append(purchases, *copyPurchase(p))
		if filter.Limit > 0 && len(purchases) == filter.Limit {
			break
		}
	}
	return purchases, nil
}

func (t *memoryTx) AppendEvent(_ context.Context, event *schema.LedgerEvent) error {
	if err := t.writable(); err != nil {
		return err
	}
	for _, e := range t.state.events {
		if e.EventID == event.EventID {
			return errors.New("failed to append event: duplicate event id")
		}
	}
	t.state.eventSeq++
	event.ID = t.state.eventSeq
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	t.state.events = append(t.state.events, *event)
	return nil
}

func copyToken(t schema.Token) *schema.Token {
	t.OwnerAddress = copyString(t.OwnerAddress)
	t.BurnedAt = copyTime(t.BurnedAt)
	return &t
}

func copyPurchase(p schema.CasePurchase) *schema.CasePurchase {
	p.TokenID = copyUint64(p.TokenID)
	p.OpenedAt = copyTime(p.OpenedAt)
	return &p
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func copyUint64(u *uint64) *uint64 {
	if u == nil {
		return nil
	}
	v := *u
	return &v
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
