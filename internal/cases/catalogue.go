package cases

import (
	"fmt"
	"math/big"
	"sort"

	"github.com/feral-file/brainrot-ledger/internal/domain"
	"github.com/feral-file/brainrot-ledger/internal/randomness"
)

// Tier is one purchasable case: its price and its reward table
type Tier struct {
	Type  domain.CaseType
	Price *big.Int
	Table randomness.RewardTable
}

// Catalogue maps case types to their tiers
type Catalogue map[domain.CaseType]Tier

// caseOrder is the display order of the catalogue
var caseOrder = []domain.CaseType{domain.CaseBronze, domain.CaseSilver, domain.CaseGold}

// ParseTier builds a tier from a decimal wei price and rarity-name weights. Zero weights are dropped.
func ParseTier(caseType domain.CaseType, price string, weights map[string]uint64) (Tier, error) {
	amount, err := domain.ParseAmount(price)
	if err != nil {
		return Tier{}, fmt.Errorf("%s price: %w", caseType, err)
	}
	if amount.Sign() == 0 {
		return Tier{}, fmt.Errorf("%s price must be positive", caseType)
	}

	table := make(randomness.RewardTable, 0, len(weights))
	for name, weight := range weights {
		rarity, err := domain.ParseRarity(name)
		if err != nil {
			return Tier{}, fmt.Errorf("%s weights: %w", caseType, err)
		}
		if weight == 0 {
			continue
		}
		table = append(table, randomness.Weight{Rarity: rarity, Weight: weight})
	}
	sort.Slice(table, func(i, j int) bool { return table[i].Rarity < table[j].Rarity })

	if err := table.Validate(); err != nil {
		return Tier{}, fmt.Errorf("%s weights: %w", caseType, err)
	}

	return Tier{Type: caseType, Price: amount, Table: table}, nil
}

// TierSpec is the textual form of a tier: a decimal wei price and rarity-name weights
type TierSpec struct {
	Price   string
	Weights map[string]uint64
}

// ParseCatalogue builds a catalogue from textual tiers
func ParseCatalogue(specs map[domain.CaseType]TierSpec) (Catalogue, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("catalogue has no cases")
	}
	catalogue := make(Catalogue, len(specs))
	for caseType, spec := range specs {
		tier, err := ParseTier(caseType, spec.Price, spec.Weights)
		if err != nil {
			return nil, err
		}
		catalogue[caseType] = tier
	}
	return catalogue, nil
}

// DefaultCatalogue returns the standard bronze, silver and gold cases
func DefaultCatalogue() Catalogue {
	return Catalogue{
		domain.CaseBronze: {
			Type:  domain.CaseBronze,
			Price: new(big.Int).Div(domain.MilliEther(1), big.NewInt(2)),
			Table: randomness.RewardTable{
				{Rarity: domain.RarityCommon, Weight: 80},
				{Rarity: domain.RarityRare, Weight: 20},
			},
		},
		domain.CaseSilver: {
			Type:  domain.CaseSilver,
			Price: domain.MilliEther(2),
			Table: randomness.RewardTable{
				{Rarity: domain.RarityRare, Weight: 70},
				{Rarity: domain.RarityEpic, Weight: 25},
				{Rarity: domain.RarityLegendary, Weight: 5},
			},
		},
		domain.CaseGold: {
			Type:  domain.CaseGold,
			Price: domain.MilliEther(10),
			Table: randomness.RewardTable{
				{Rarity: domain.RarityEpic, Weight: 60},
				{Rarity: domain.RarityLegendary, Weight: 40},
			},
		},
	}
}

// Tiers lists the catalogue in display order
func (c Catalogue) Tiers() []Tier {
	tiers := make([]Tier, 0, len(c))
	for _, t := range caseOrder {
		if tier, ok := c[t]; ok {
			tiers = append(tiers, tier)
		}
	}
	return tiers
}
