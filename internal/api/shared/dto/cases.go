package dto

import (
	"time"

	"github.com/feral-file/brainrot-ledger/internal/cases"
	"github.com/feral-file/brainrot-ledger/internal/domain"
)

// RewardWeightResponse is one row of a case reward table
type RewardWeightResponse struct {
	Rarity string `json:"rarity"`
	Weight uint64 `json:"weight"`
}

// CaseTierResponse represents a purchasable case
type CaseTierResponse struct {
	CaseType string                 `json:"case_type"`
	PriceWei string                 `json:"price_wei"`
	Rewards  []RewardWeightResponse `json:"rewards"`
}

// CaseCatalogueResponse lists the purchasable cases
type CaseCatalogueResponse struct {
	Cases []CaseTierResponse `json:"cases"`
}

// CasePurchaseResponse represents a case purchase
type CasePurchaseResponse struct {
	ID           uint64     `json:"id"`
	Buyer        string     `json:"buyer"`
	CaseType     string     `json:"case_type"`
	PaidWei      string     `json:"paid_wei"`
	RevealHeight uint64     `json:"reveal_height"`
	Status       string     `json:"status"`
	TokenID      *uint64    `json:"token_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	OpenedAt     *time.Time `json:"opened_at,omitempty"`
}

// CasePurchaseListResponse lists case purchases
type CasePurchaseListResponse struct {
	Purchases []CasePurchaseResponse `json:"purchases"`
}

// CaseOpenResponse represents the result of opening a case
type CaseOpenResponse struct {
	PurchaseID uint64         `json:"purchase_id"`
	Token      *TokenResponse `json:"token"`
}

// MapCatalogueToDTO maps the case catalogue to its response
func MapCatalogueToDTO(tiers []cases.Tier) *CaseCatalogueResponse {
	resp := &CaseCatalogueResponse{Cases: make([]CaseTierResponse, 0, len(tiers))}
	for _, tier := range tiers {
		rewards := make([]RewardWeightResponse, 0, len(tier.Table))
		for _, w := range tier.Table {
			rewards = append(rewards, RewardWeightResponse{Rarity: w.Rarity.String(), Weight: w.Weight})
		}
		resp.Cases = append(resp.Cases, CaseTierResponse{
			CaseType: string(tier.Type),
			PriceWei: tier.Price.String(),
			Rewards:  rewards,
		})
	}
	return resp
}

// MapPurchaseToDTO maps a domain case purchase to its response
func MapPurchaseToDTO(p *domain.CasePurchase) *CasePurchaseResponse {
	return &CasePurchaseResponse{
		ID:           p.ID,
		Buyer:        p.Buyer.Hex(),
		CaseType:     string(p.CaseType),
		PaidWei:      p.Paid.String(),
		RevealHeight: p.RevealHeight,
		Status:       string(p.Status),
		TokenID:      p.TokenID,
		CreatedAt:    p.CreatedAt,
		OpenedAt:     p.OpenedAt,
	}
}

// MapPurchasesToDTO maps a list of purchases
func MapPurchasesToDTO(purchases []domain.CasePurchase) *CasePurchaseListResponse {
	resp := &CasePurchaseListResponse{Purchases: make([]CasePurchaseResponse, 0, len(purchases))}
	for i := range purchases {
		resp.Purchases = append(resp.Purchases, *MapPurchaseToDTO(&purchases[i]))
	}
	return resp
}
