package model

// ShippingType records whether a shipping cost is a formula-derived estimate
// or a ground-truth figure from a carrier record.
type ShippingType string

const (
	// ShippingEstimated marks a cost produced by the tier lookup.
	ShippingEstimated ShippingType = "Estimated"
	// ShippingActual marks a cost taken from a carrier record and
	// distributed across the order by the caller.
	ShippingActual ShippingType = "Actual"
)

// CostBreakdown is the cost engine's output for one sold pack. Every field
// is per single unit; callers multiply by quantity when aggregating.
//
// All numeric fields are guaranteed non-negative and finite.
type CostBreakdown struct {
	MaterialTotalCost float64      `json:"material_total_cost"`
	ShippingCost      float64      `json:"shipping_cost"`
	ShippingType      ShippingType `json:"shipping_type"`
	AmazonFee         float64      `json:"amazon_fee"`
	SalesVAT          float64      `json:"sales_vat"`
}

// TotalCost returns the summed per-unit cost across all components.
// VAT is included because it is collected out of the sale price.
func (c CostBreakdown) TotalCost() float64 {
	return c.MaterialTotalCost + c.ShippingCost + c.AmazonFee + c.SalesVAT
}
