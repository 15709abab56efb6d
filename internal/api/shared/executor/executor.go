package executor

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/feral-file/brainrot-ledger/internal/api/shared/constants"
	"github.com/feral-file/brainrot-ledger/internal/api/shared/dto"
	"github.com/feral-file/brainrot-ledger/internal/burn"
	"github.com/feral-file/brainrot-ledger/internal/cases"
	"github.com/feral-file/brainrot-ledger/internal/domain"
	"github.com/feral-file/brainrot-ledger/internal/ledger"
	"github.com/feral-file/brainrot-ledger/internal/market"
	"github.com/feral-file/brainrot-ledger/internal/upgrade"
)

// Executor is the interface for the API executor
//
//go:generate mockgen -source=executor.go -destination=../../../mocks/mock_api_executor.go -package=mocks -mock_names=Executor=MockAPIExecutor
type Executor interface {
	// GetToken retrieves a live token
	GetToken(ctx context.Context, tokenID uint64) (*dto.TokenResponse, error)
	// GetOwnerTokens retrieves the ownership index of an address with the token records
	GetOwnerTokens(ctx context.Context, owner common.Address) (*dto.OwnerTokensResponse, error)
	// TransferToken moves a token owned by the caller
	TransferToken(ctx context.Context, caller common.Address, tokenID uint64, to common.Address) (*dto.TokenResponse, error)
	// BurnToken destroys a token as the caller
	BurnToken(ctx context.Context, caller common.Address, tokenID uint64) error

	// QuoteUpgrade returns the fee for raising a token to the target level
	QuoteUpgrade(ctx context.Context, tokenID uint64, target uint32) (*dto.UpgradeQuoteResponse, error)
	// UpgradeToken pays for and applies a level upgrade
	UpgradeToken(ctx context.Context, call domain.Call, tokenID uint64, target uint32) (*dto.TokenResponse, error)
	// BurnForUpgrade burns a recipe set and returns the replacement token
	BurnForUpgrade(ctx context.Context, call domain.Call, tokenIDs []uint64) (*dto.TokenResponse, error)

	// GetCases lists the purchasable cases
	GetCases(ctx context.Context) (*dto.CaseCatalogueResponse, error)
	// BuyCase pays for a case and records the purchase
	BuyCase(ctx context.Context, call domain.Call, caseType domain.CaseType) (*dto.CasePurchaseResponse, error)
	// GetPurchase retrieves a case purchase
	GetPurchase(ctx context.Context, purchaseID uint64) (*dto.CasePurchaseResponse, error)
	// OpenCase reveals a purchase and mints its token to the buyer
	OpenCase(ctx context.Context, call domain.Call, purchaseID uint64) (*dto.CaseOpenResponse, error)

	// GetAccount retrieves the balance and authorization of an address
	GetAccount(ctx context.Context, address common.Address) (*dto.AccountResponse, error)
	// GetAccountPurchases lists the case purchases of an address
	GetAccountPurchases(ctx context.Context, address common.Address, limit int) (*dto.CasePurchaseListResponse, error)

	// GetListings lists active listings
	GetListings(ctx context.Context, filter market.ListingFilter) (*dto.ListingListResponse, error)
	// GetListing retrieves the listing of a token
	GetListing(ctx context.Context, tokenID uint64) (*dto.ListingResponse, error)
	// CreateListing lists a token owned by the caller
	CreateListing(ctx context.Context, caller common.Address, tokenID uint64, price *big.Int) (*dto.ListingResponse, error)
	// BuyListing settles a sale
	BuyListing(ctx context.Context, call domain.Call, tokenID uint64) (*dto.SaleResponse, error)
	// CancelListing withdraws a listing
	CancelListing(ctx context.Context, caller common.Address, tokenID uint64) error

	// GetMinters lists the authorized addresses
	GetMinters(ctx context.Context) (*dto.MinterListResponse, error)
	// SetMinter changes an authorization flag as the caller
	SetMinter(ctx context.Context, caller common.Address, address common.Address, authorized bool) (*dto.MinterResponse, error)
	// Deposit credits an account as the caller
	Deposit(ctx context.Context, caller common.Address, to common.Address, amount *big.Int) (*dto.AccountResponse, error)
	// Withdraw debits an account as the caller
	Withdraw(ctx context.Context, caller common.Address, from common.Address, to common.Address, amount *big.Int) (*dto.AccountResponse, error)
}

type executor struct {
	ledger *ledger.Ledger
	cases  *cases.Engine
	gate   *upgrade.Gate
	burner *burn.Engine
	market *market.Marketplace
}

// NewExecutor creates the executor over the ledger and its engines
func NewExecutor(l *ledger.Ledger, caseEngine *cases.Engine, gate *upgrade.Gate, burner *burn.Engine, marketplace *market.Marketplace) Executor {
	return &executor{
		ledger: l,
		cases:  caseEngine,
		gate:   gate,
		burner: burner,
		market: marketplace,
	}
}

func (e *executor) GetToken(ctx context.Context, tokenID uint64) (*dto.TokenResponse, error) {
	token, err := e.ledger.GetToken(ctx, tokenID)
	if err != nil {
		return nil, err
	}
	return dto.MapTokenToDTO(token), nil
}

func (e *executor) GetOwnerTokens(ctx context.Context, owner common.Address) (*dto.OwnerTokensResponse, error) {
	resp := &dto.OwnerTokensResponse{Owner: owner.Hex()}
	err := e.ledger.Read(ctx, func(s *ledger.Session) error {
		ids, err := s.TokensOfOwner(ctx, owner)
		if err != nil {
			return err
		}
		resp.TokenIDs = ids
		resp.Tokens = make([]dto.TokenResponse, 0, len(ids))
		for _, id := range ids {
			token, err := s.GetToken(ctx, id)
			if err != nil {
				return err
			}
			resp.Tokens = append(resp.Tokens, *dto.MapTokenToDTO(token))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (e *executor) TransferToken(ctx context.Context, caller common.Address, tokenID uint64, to common.Address) (*dto.TokenResponse, error) {
	if err := e.ledger.TransferFrom(ctx, caller, tokenID, to); err != nil {
		return nil, err
	}
	return e.GetToken(ctx, tokenID)
}

func (e *executor) BurnToken(ctx context.Context, caller common.Address, tokenID uint64) error {
	return e.ledger.Burn(ctx, caller, tokenID)
}

func (e *executor) QuoteUpgrade(ctx context.Context, tokenID uint64, target uint32) (*dto.UpgradeQuoteResponse, error) {
	token, err := e.ledger.GetToken(ctx, tokenID)
	if err != nil {
		return nil, err
	}
	fee, err := e.gate.Quote(ctx, tokenID, target)
	if err != nil {
		return nil, err
	}
	return &dto.UpgradeQuoteResponse{
		TokenID:      tokenID,
		CurrentLevel: token.Level,
		TargetLevel:  target,
		FeeWei:       fee.String(),
	}, nil
}

func (e *executor) UpgradeToken(ctx context.Context, call domain.Call, tokenID uint64, target uint32) (*dto.TokenResponse, error) {
	token, err := e.gate.UpgradeLevel(ctx, call, tokenID, target)
	if err != nil {
		return nil, err
	}
	return dto.MapTokenToDTO(token), nil
}

func (e *executor) BurnForUpgrade(ctx context.Context, call domain.Call, tokenIDs []uint64) (*dto.TokenResponse, error) {
	token, err := e.burner.BurnForUpgrade(ctx, call, tokenIDs)
	if err != nil {
		return nil, err
	}
	return dto.MapTokenToDTO(token), nil
}

func (e *executor) GetCases(_ context.Context) (*dto.CaseCatalogueResponse, error) {
	return dto.MapCatalogueToDTO(e.cases.Catalogue()), nil
}

func (e *executor) BuyCase(ctx context.Context, call domain.Call, caseType domain.CaseType) (*dto.CasePurchaseResponse, error) {
	purchase, err := e.cases.BuyCase(ctx, call, caseType)
	if err != nil {
		return nil, err
	}
	return dto.MapPurchaseToDTO(purchase), nil
}

func (e *executor) GetPurchase(ctx context.Context, purchaseID uint64) (*dto.CasePurchaseResponse, error) {
	purchase, err := e.cases.GetPurchase(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	return dto.MapPurchaseToDTO(purchase), nil
}

func (e *executor) OpenCase(ctx context.Context, call domain.Call, purchaseID uint64) (*dto.CaseOpenResponse, error) {
	token, err := e.cases.OpenCase(ctx, call, purchaseID)
	if err != nil {
		return nil, err
	}
	return &dto.CaseOpenResponse{
		PurchaseID: purchaseID,
		Token:      dto.MapTokenToDTO(token),
	}, nil
}

func (e *executor) GetAccount(ctx context.Context, address common.Address) (*dto.AccountResponse, error) {
	resp := &dto.AccountResponse{Address: address.Hex()}
	err := e.ledger.Read(ctx, func(s *ledger.Session) error {
		balance, err := s.BalanceOf(ctx, address)
		if err != nil {
			return err
		}
		authorized, err := s.IsAuthorized(ctx, address)
		if err != nil {
			return err
		}
		ids, err := s.TokensOfOwner(ctx, address)
		if err != nil {
			return err
		}
		resp.BalanceWei = balance.String()
		resp.Authorized = authorized
		resp.TokenCount = len(ids)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (e *executor) GetAccountPurchases(ctx context.Context, address common.Address, limit int) (*dto.CasePurchaseListResponse, error) {
	if limit <= 0 {
		limit = constants.DEFAULT_PURCHASES_LIMIT
	}
	limit = min(limit, constants.MAX_PURCHASES_LIMIT)

	purchases, err := e.cases.PurchasesOf(ctx, address, limit)
	if err != nil {
		return nil, err
	}
	return dto.MapPurchasesToDTO(purchases), nil
}

func (e *executor) GetListings(ctx context.Context, filter market.ListingFilter) (*dto.ListingListResponse, error) {
	if filter.Limit <= 0 {
		filter.Limit = constants.DEFAULT_LISTINGS_LIMIT
	}
	filter.Limit = min(filter.Limit, constants.MAX_LISTINGS_LIMIT)
	filter.Offset = max(filter.Offset, 0)

	listings, err := e.market.Listings(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := &dto.ListingListResponse{
		Listings: make([]dto.ListingResponse, 0, len(listings)),
		Limit:    filter.Limit,
		Offset:   filter.Offset,
	}
	for i := range listings {
		resp.Listings = append(resp.Listings, *dto.MapListingToDTO(&listings[i]))
	}
	return resp, nil
}

func (e *executor) GetListing(ctx context.Context, tokenID uint64) (*dto.ListingResponse, error) {
	listing, err := e.market.GetListing(ctx, tokenID)
	if err != nil {
		return nil, err
	}
	return dto.MapListingToDTO(listing), nil
}

func (e *executor) CreateListing(ctx context.Context, caller common.Address, tokenID uint64, price *big.Int) (*dto.ListingResponse, error) {
	listing, err := e.market.List(ctx, caller, tokenID, price)
	if err != nil {
		return nil, err
	}
	return dto.MapListingToDTO(listing), nil
}

func (e *executor) BuyListing(ctx context.Context, call domain.Call, tokenID uint64) (*dto.SaleResponse, error) {
	listing, err := e.market.Buy(ctx, call, tokenID)
	if err != nil {
		return nil, err
	}
	return &dto.SaleResponse{
		TokenID:  listing.TokenID,
		Seller:   listing.Seller.Hex(),
		Buyer:    call.Caller.Hex(),
		PriceWei: listing.Price.String(),
		PaidWei:  call.AttachedValue().String(),
	}, nil
}

func (e *executor) CancelListing(ctx context.Context, caller common.Address, tokenID uint64) error {
	return e.market.Cancel(ctx, caller, tokenID)
}

func (e *executor) GetMinters(ctx context.Context) (*dto.MinterListResponse, error) {
	addrs, err := e.ledger.ListAuthorized(ctx)
	if err != nil {
		return nil, err
	}
	resp := &dto.MinterListResponse{Minters: make([]string, 0, len(addrs))}
	for _, addr := range addrs {
		resp.Minters = append(resp.Minters, addr.Hex())
	}
	return resp, nil
}

func (e *executor) SetMinter(ctx context.Context, caller common.Address, address common.Address, authorized bool) (*dto.MinterResponse, error) {
	if err := e.ledger.SetAuthorizedMinter(ctx, caller, address, authorized); err != nil {
		return nil, err
	}
	return &dto.MinterResponse{Address: address.Hex(), Authorized: authorized}, nil
}

func (e *executor) Deposit(ctx context.Context, caller common.Address, to common.Address, amount *big.Int) (*dto.AccountResponse, error) {
	if err := e.ledger.Deposit(ctx, caller, to, amount); err != nil {
		return nil, err
	}
	return e.GetAccount(ctx, to)
}

func (e *executor) Withdraw(ctx context.Context, caller common.Address, from common.Address, to common.Address, amount *big.Int) (*dto.AccountResponse, error) {
	if err := e.ledger.Withdraw(ctx, caller, from, to, amount); err != nil {
		return nil, err
	}
	return e.GetAccount(ctx, from)
}
