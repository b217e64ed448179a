// Package aggregate implements the caller-side contracts around the cost
// engine: order and SKU rollups, the actual-shipping override, and window
// comparisons. All functions are stateless; rollups are plain sums, so they
// are associative and independent of item order.
package aggregate

import "github.com/lunaroak/tally-ho/internal/model"

// PricedItem pairs an order line with its per-unit cost breakdown.
type PricedItem struct {
	Item      model.OrderItem     `json:"item"`
	Breakdown model.CostBreakdown `json:"breakdown"`
}

// OrderRollup sums revenue, cost, and profit across all lines of an order.
func OrderRollup(items []PricedItem) model.OrderSummary {
	var summary model.OrderSummary
	for _, pi := range items {
		qty := float64(pi.Item.Quantity)
		summary.Revenue += pi.Item.UnitPrice * qty
		summary.Cost += pi.Breakdown.TotalCost() * qty
		summary.Items++
	}
	summary.Profit = summary.Revenue - summary.Cost
	return summary
}

// SKURollup sums revenue, cost, profit, units, and packs for one SKU within
// a (possibly multi-SKU) order.
func SKURollup(items []PricedItem, sku string) model.SKUSummary {
	summary := model.SKUSummary{SKU: sku}
	for _, pi := range items {
		if pi.Item.SKU != sku {
			continue
		}
		qty := float64(pi.Item.Quantity)
		summary.Revenue += pi.Item.UnitPrice * qty
		summary.Cost += pi.Breakdown.TotalCost() * qty
		summary.Units += pi.Item.Units()
		summary.Packs += pi.Item.Quantity
	}
	summary.Profit = summary.Revenue - summary.Cost
	return summary
}

// ApplyActualShipping replaces each line's estimated shipping cost with an
// even per-pack share of the order's known carrier total. The engine only
// ever produces estimates; this override is how ground truth takes
// precedence once a carrier record exists.
//
// The input slice is not modified; a new slice is returned. A non-positive
// actual total or an order with no packs returns the items unchanged.
func ApplyActualShipping(items []PricedItem, actualTotal float64) []PricedItem {
	packs := 0
	for _, pi := range items {
		packs += pi.Item.Quantity
	}

	out := make([]PricedItem, len(items))
	copy(out, items)
	if packs <= 0 || actualTotal <= 0 {
		return out
	}

	perPack := actualTotal / float64(packs)
	for i := range out {
		out[i].Breakdown.ShippingCost = perPack
		out[i].Breakdown.ShippingType = model.ShippingActual
	}
	return out
}
