package dto

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/feral-file/brainrot-ledger/internal/api/shared/constants"
	apierrors "github.com/feral-file/brainrot-ledger/internal/api/shared/errors"
	"github.com/feral-file/brainrot-ledger/internal/domain"
)

// TransferRequest represents the request body for transferring a token
type TransferRequest struct {
	To string `json:"to"`
}

// Validate validates the request body and returns the recipient
func (r *TransferRequest) Validate() (common.Address, error) {
	return parseAddress("to", r.To)
}

// UpgradeRequest represents the request body for a level upgrade
type UpgradeRequest struct {
	TargetLevel uint32 `json:"target_level"`
	Value       string `json:"value"`
}

// Validate validates the request body and returns the attached value
func (r *UpgradeRequest) Validate() (*big.Int, error) {
	if r.TargetLevel == 0 {
		return nil, apierrors.NewValidationError("target_level is required")
	}
	return parseAmount("value", r.Value)
}

// BurnUpgradeRequest represents the request body for a burn-to-upgrade recipe
type BurnUpgradeRequest struct {
	TokenIDs []uint64 `json:"token_ids"`
}

// Validate validates the request body
func (r *BurnUpgradeRequest) Validate() error {
	if len(r.TokenIDs) == 0 {
		return apierrors.NewValidationError("token_ids is required")
	}
	if len(r.TokenIDs) > constants.MAX_TOKEN_IDS_PER_REQUEST {
		return apierrors.NewValidationError(fmt.Sprintf("maximum %d token ids allowed", constants.MAX_TOKEN_IDS_PER_REQUEST))
	}
	return nil
}

// BuyCaseRequest represents the request body for buying a case
type BuyCaseRequest struct {
	CaseType string `json:"case_type"`
	Value    string `json:"value"`
}

// Validate validates the request body and returns the attached value
func (r *BuyCaseRequest) Validate() (*big.Int, error) {
	if r.CaseType == "" {
		return nil, apierrors.NewValidationError("case_type is required")
	}
	return parseAmount("value", r.Value)
}

// CreateListingRequest represents the request body for listing a token
type CreateListingRequest struct {
	TokenID uint64 `json:"token_id"`
	Price   string `json:"price"`
}

// Validate validates the request body and returns the price
func (r *CreateListingRequest) Validate() (*big.Int, error) {
	if r.TokenID == 0 {
		return nil, apierrors.NewValidationError("token_id is required")
	}
	return parseAmount("price", r.Price)
}

// BuyListingRequest represents the request body for buying a listed token
type BuyListingRequest struct {
	Value string `json:"value"`
}

// Validate validates the request body and returns the attached value
func (r *BuyListingRequest) Validate() (*big.Int, error) {
	return parseAmount("value", r.Value)
}

// SetMinterRequest represents the request body for changing an authorization flag
type SetMinterRequest struct {
	Authorized *bool `json:"authorized"`
}

// Validate validates the request body
func (r *SetMinterRequest) Validate() error {
	if r.Authorized == nil {
		return apierrors.NewValidationError("authorized is required")
	}
	return nil
}

// DepositRequest represents the request body for crediting an account
type DepositRequest struct {
	Address string `json:"address"`
	Amount  string `json:"amount"`
}

// Validate validates the request body
func (r *DepositRequest) Validate() (common.Address, *big.Int, error) {
	to, err := parseAddress("address", r.Address)
	if err != nil {
		return common.Address{}, nil, err
	}
	amount, err := parseAmount("amount", r.Amount)
	if err != nil {
		return common.Address{}, nil, err
	}
	return to, amount, nil
}

// WithdrawRequest represents the request body for debiting an account
type WithdrawRequest struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount string `json:"amount"`
}

// Validate validates the request body
func (r *WithdrawRequest) Validate() (common.Address, common.Address, *big.Int, error) {
	from, err := parseAddress("from", r.From)
	if err != nil {
		return common.Address{}, common.Address{}, nil, err
	}
	to, err := parseAddress("to", r.To)
	if err != nil {
		return common.Address{}, common.Address{}, nil, err
	}
	amount, err := parseAmount("amount", r.Amount)
	if err != nil {
		return common.Address{}, common.Address{}, nil, err
	}
	return from, to, amount, nil
}

func parseAddress(field, value string) (common.Address, error) {
	if value == "" {
		return common.Address{}, apierrors.NewValidationError(field + " is required")
	}
	addr, err := domain.ParseAddress(value)
	if err != nil {
		return common.Address{}, apierrors.NewValidationError(fmt.Sprintf("invalid %s: %s", field, value))
	}
	return addr, nil
}

// parseAmount parses a decimal wei string; an empty string is zero
func parseAmount(field, value string) (*big.Int, error) {
	amount, err := domain.ParseAmount(value)
	if err != nil {
		return nil, apierrors.NewValidationError(fmt.Sprintf("invalid %s: %s", field, value))
	}
	return amount, nil
}
