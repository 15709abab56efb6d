package dto

import (
	"time"

	"github.com/feral-file/brainrot-ledger/internal/domain"
)

// ListingResponse represents an active listing
type ListingResponse struct {
	TokenID  uint64    `json:"token_id"`
	Seller   string    `json:"seller"`
	PriceWei string    `json:"price_wei"`
	ListedAt time.Time `json:"listed_at"`
}

// ListingListResponse represents a page of listings
type ListingListResponse struct {
	Listings []ListingResponse `json:"listings"`
	Limit    int               `json:"limit"`
	Offset   int               `json:"offset"`
}

// SaleResponse represents a settled marketplace sale
type SaleResponse struct {
	TokenID  uint64 `json:"token_id"`
	Seller   string `json:"seller"`
	Buyer    string `json:"buyer"`
	PriceWei string `json:"price_wei"`
	PaidWei  string `json:"paid_wei"`
}

// MapListingToDTO maps a domain listing to its response
func MapListingToDTO(l *domain.Listing) *ListingResponse {
	return &ListingResponse{
		TokenID:  l.TokenID,
		Seller:   l.Seller.Hex(),
		PriceWei: l.Price.String(),
		ListedAt: l.ListedAt,
	}
}
