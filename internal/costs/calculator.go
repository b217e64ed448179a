// Package costs implements the per-unit cost allocation engine: material
// cost, shipping estimate, marketplace fee, and sales VAT for a single sold
// pack.
//
// The engine is a pure function over its inputs. It never errors on missing
// or malformed domain data; incomplete inputs degrade to zero or estimated
// values so callers can still render a row and flag it as incomplete. The
// central rule, applied to every component with two possible sources, is:
// prefer the actual (ground truth) figure when one exists, fall back to the
// formula-derived estimate otherwise.
package costs

import (
	"math"

	"github.com/lunaroak/tally-ho/internal/model"
)

// StandardVATRate is the default sales VAT rate applied when no authoritative
// tax figure accompanies the order line.
const StandardVATRate = 0.20

// Options carries the per-line inputs that are not product master data.
type Options struct {
	// ActualTax is the authoritative per-unit tax from the order record.
	// When set it is used verbatim instead of the VAT estimate.
	ActualTax *float64
	// Quantity is the number of packs on the line. It does not scale the
	// breakdown (which is per pack) but is validated for caller convenience.
	Quantity int
	// IsPrime selects the Prime fee schedule.
	IsPrime bool
}

// Calculator computes per-unit cost breakdowns from product master data and
// the configured rate tables.
type Calculator struct {
	tiers   ShippingTierTable
	fees    FeeSchedule
	vatRate float64
}

// NewCalculator builds a calculator from explicit rate tables. A zero VAT
// rate falls back to the standard rate; empty tables fall back to the
// defaults so a zero-configured calculator still behaves sensibly.
func NewCalculator(fees FeeSchedule, tiers ShippingTierTable, vatRate float64) *Calculator {
	if len(fees.Bands) == 0 {
		fees = DefaultFeeSchedule()
	}
	if len(tiers) == 0 {
		tiers = DefaultShippingTiers()
	}
	if vatRate <= 0 || math.IsNaN(vatRate) || math.IsInf(vatRate, 0) {
		vatRate = StandardVATRate
	}
	return &Calculator{fees: fees, tiers: tiers, vatRate: vatRate}
}

// NewDefaultCalculator builds a calculator with the compiled-in rate tables.
func NewDefaultCalculator() *Calculator {
	return NewCalculator(DefaultFeeSchedule(), DefaultShippingTiers(), StandardVATRate)
}

// Calculate produces the per-unit cost breakdown for one sold pack.
//
// unitPrice is revenue per pack (line total already divided by quantity).
// product, mapping, and composition may each be nil when the corresponding
// collaborator has no row for the SKU; the affected components degrade to
// zero or a conservative estimate. Every output field is non-negative and
// finite.
func (c *Calculator) Calculate(
	sku string,
	unitPrice float64,
	product *model.ProductMaster,
	mapping *model.ShippingGroupMapping,
	composition *model.CompositionSummary,
	opts Options,
) model.CostBreakdown {
	_ = sku // identity only; all lookups were done by the caller

	price := sanitize(unitPrice)

	return model.CostBreakdown{
		MaterialTotalCost: c.materialCost(product, composition),
		ShippingCost:      c.shippingCost(product, mapping),
		ShippingType:      model.ShippingEstimated,
		AmazonFee:         c.marketplaceFee(price, opts.IsPrime),
		SalesVAT:          c.salesVAT(price, composition, opts.ActualTax),
	}
}

// materialCost resolves the per-pack material cost. Composition data always
// wins over the parent SKU's own cost field: for bundles the parent cost is
// frequently stale, so the summed child costs are authoritative.
func (c *Calculator) materialCost(product *model.ProductMaster, composition *model.CompositionSummary) float64 {
	if composition != nil && composition.TotalValue > 0 {
		return sanitize(composition.TotalValue)
	}
	if product == nil {
		return 0
	}
	return sanitize(product.Cost)
}

// shippingCost estimates the per-unit carrier cost from the tier table
// selected by the SKU's merchant shipping group.
func (c *Calculator) shippingCost(product *model.ProductMaster, mapping *model.ShippingGroupMapping) float64 {
	group := DefaultShippingGroup
	if mapping != nil && mapping.MerchantShippingGroup != "" {
		group = mapping.MerchantShippingGroup
	}
	return c.tiers.Estimate(group, product)
}

// marketplaceFee applies the price-banded referral fee.
func (c *Calculator) marketplaceFee(price float64, prime bool) float64 {
	return sanitize(price * c.fees.Rate(price, prime))
}

// salesVAT prefers the authoritative tax figure, then the bundle's
// aggregated child VAT, then the formula estimate from the gross price.
func (c *Calculator) salesVAT(price float64, composition *model.CompositionSummary, actualTax *float64) float64 {
	if actualTax != nil {
		return sanitize(*actualTax)
	}
	if composition != nil && composition.ChildVATTotal > 0 {
		return sanitize(composition.ChildVATTotal)
	}
	// VAT portion of a gross price: price * r / (1 + r).
	return sanitize(price * c.vatRate / (1 + c.vatRate))
}

// sanitize coerces NaN, infinities, and negatives to zero so breakdowns are
// always safe to aggregate.
func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
