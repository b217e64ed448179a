package costs

import (
	"sort"

	"github.com/lunaroak/tally-ho/internal/model"
)

// FeeBand is one step of the marketplace referral fee schedule. A band
// applies to prices up to MaxPrice; a zero MaxPrice means no upper bound.
type FeeBand struct {
	MaxPrice  float64 `mapstructure:"max_price"`
	Rate      float64 `mapstructure:"rate"`
	PrimeRate float64 `mapstructure:"prime_rate"`
}

// FeeSchedule is the price-banded marketplace fee table. The exact
// breakpoints are business configuration, not algorithm: they load from the
// config file and the compiled-in defaults are illustrative only.
type FeeSchedule struct {
	Bands []FeeBand `mapstructure:"bands"`
}

// Rate returns the fee percentage for the given price, selecting the Prime
// schedule when prime is set. An empty schedule charges nothing.
func (s FeeSchedule) Rate(price float64, prime bool) float64 {
	bands := make([]FeeBand, len(s.Bands))
	copy(bands, s.Bands)
	sort.Slice(bands, func(i, j int) bool {
		// Unbounded bands sort last.
		if bands[i].MaxPrice == 0 {
			return false
		}
		if bands[j].MaxPrice == 0 {
			return true
		}
		return bands[i].MaxPrice < bands[j].MaxPrice
	})

	for _, b := range bands {
		if b.MaxPrice == 0 || price <= b.MaxPrice {
			if prime {
				return sanitize(b.PrimeRate)
			}
			return sanitize(b.Rate)
		}
	}
	return 0
}

// DefaultFeeSchedule returns an illustrative referral fee table. Real
// deployments override it via the fees section of the config file.
func DefaultFeeSchedule() FeeSchedule {
	return FeeSchedule{
		Bands: []FeeBand{
			{MaxPrice: 10, Rate: 0.188, PrimeRate: 0.203},
			{MaxPrice: 25, Rate: 0.153, PrimeRate: 0.168},
			{MaxPrice: 0, Rate: 0.129, PrimeRate: 0.144},
		},
	}
}

// ShippingTier is one size/weight band of a shipping estimate table.
// MaxWeight is in kilograms and MaxLongestSide in centimetres; zero means
// unbounded, so a tier with both zero acts as the catch-all.
type ShippingTier struct {
	Name           string  `mapstructure:"name"`
	MaxWeight      float64 `mapstructure:"max_weight"`
	MaxLongestSide float64 `mapstructure:"max_longest_side"`
	Cost           float64 `mapstructure:"cost"`
}

// ShippingTierTable maps a merchant shipping group to its ordered tiers,
// cheapest and smallest first. Like the fee schedule this is configuration.
type ShippingTierTable map[string][]ShippingTier

// DefaultShippingGroup is used when a SKU has no mapping row or its group
// has no tier table of its own.
const DefaultShippingGroup = "standard"

// Estimate returns the estimated per-unit shipping cost for a product in
// the given merchant shipping group. Missing dimensions or weight select
// the most conservative (last) tier so an unknown product is never
// under-costed.
func (t ShippingTierTable) Estimate(group string, product *model.ProductMaster) float64 {
	tiers, ok := t[group]
	if !ok || len(tiers) == 0 {
		tiers = t[DefaultShippingGroup]
	}
	if len(tiers) == 0 {
		return 0
	}

	conservative := sanitize(tiers[len(tiers)-1].Cost)
	if product == nil || !product.HasDimensions() || product.Weight <= 0 {
		return conservative
	}

	longest := product.Depth
	if product.Height > longest {
		longest = product.Height
	}
	if product.Width > longest {
		longest = product.Width
	}

	for _, tier := range tiers {
		weightOK := tier.MaxWeight == 0 || product.Weight <= tier.MaxWeight
		sizeOK := tier.MaxLongestSide == 0 || longest <= tier.MaxLongestSide
		if weightOK && sizeOK {
			return sanitize(tier.Cost)
		}
	}
	return conservative
}

// DefaultShippingTiers returns an illustrative tier table covering the
// shipping groups the distributor uses.
func DefaultShippingTiers() ShippingTierTable {
	return ShippingTierTable{
		"standard": {
			{Name: "large letter", MaxWeight: 0.75, MaxLongestSide: 35, Cost: 2.10},
			{Name: "small parcel", MaxWeight: 2, MaxLongestSide: 45, Cost: 2.95},
			{Name: "medium parcel", MaxWeight: 7, MaxLongestSide: 61, Cost: 3.85},
			{Name: "large parcel", Cost: 5.50},
		},
		"heavy": {
			{Name: "heavy standard", MaxWeight: 15, MaxLongestSide: 120, Cost: 6.95},
			{Name: "heavy oversize", Cost: 9.75},
		},
	}
}
