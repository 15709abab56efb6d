package rest

import (
	"fmt"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"

	"github.com/feral-file/brainrot-ledger/internal/domain"
	"github.com/feral-file/brainrot-ledger/internal/market"
)

// ListListingsQueryParams holds query parameters for GET /marketplace/listings
type ListListingsQueryParams struct {
	Seller   string  `form:"seller"`
	Rarity   string  `form:"rarity"`
	MinLevel *uint32 `form:"min_level"`

	// Pagination
	Limit  int `form:"limit,default=50"`
	Offset int `form:"offset,default=0"`
}

// ToFilter validates the parameters and converts them to a marketplace filter
func (p *ListListingsQueryParams) ToFilter() (market.ListingFilter, error) {
	filter := market.ListingFilter{
		MinLevel: p.MinLevel,
		Limit:    p.Limit,
		Offset:   p.Offset,
	}
	if p.Limit < 0 || p.Offset < 0 {
		return filter, fmt.Errorf("limit and offset must not be negative")
	}
	if p.Seller != "" {
		seller, err := domain.ParseAddress(p.Seller)
		if err != nil {
			return filter, fmt.Errorf("invalid seller: %s", p.Seller)
		}
		filter.Seller = &seller
	}
	if p.Rarity != "" {
		rarity, err := domain.ParseRarity(p.Rarity)
		if err != nil {
			return filter, err
		}
		filter.Rarity = &rarity
	}
	return filter, nil
}

// ParseListListingsQuery parses query parameters for GET /marketplace/listings
func ParseListListingsQuery(c *gin.Context) (*ListListingsQueryParams, error) {
	var params ListListingsQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}
	return &params, nil
}

// UpgradeQuoteQueryParams holds query parameters for GET /tokens/:id/upgrade/quote
type UpgradeQuoteQueryParams struct {
	TargetLevel uint32 `form:"target_level" binding:"required"`
}

// PurchasesQueryParams holds query parameters for GET /accounts/:address/purchases
type PurchasesQueryParams struct {
	Limit int `form:"limit,default=50"`
}

// parseIDParam parses a positive numeric path parameter
func parseIDParam(c *gin.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s: %q", name, c.Param(name))
	}
	return id, nil
}

// parseAddressParam parses a hex address path parameter
func parseAddressParam(c *gin.Context, name string) (common.Address, error) {
	addr, err := domain.ParseAddress(c.Param(name))
	if err != nil {
		return common.Address{}, fmt.Errorf("invalid %s: %q", name, c.Param(name))
	}
	return addr, nil
}
