package aggregate

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunaroak/tally-ho/internal/model"
)

func pricedItem(sku string, unitPrice float64, qty, bundleQty int, breakdown model.CostBreakdown) PricedItem {
	return PricedItem{
		Item: model.OrderItem{
			SKU:       sku,
			UnitPrice: unitPrice,
			Quantity:  qty,
			BundleQty: bundleQty,
		},
		Breakdown: breakdown,
	}
}

func testOrder() []PricedItem {
	return []PricedItem{
		pricedItem("OLV-500", 12.50, 2, 1, model.CostBreakdown{
			MaterialTotalCost: 4.20,
			ShippingCost:      2.10,
			ShippingType:      model.ShippingEstimated,
			AmazonFee:         1.91,
			SalesVAT:          2.08,
		}),
		pricedItem("CRT-24", 45.00, 1, 24, model.CostBreakdown{
			MaterialTotalCost: 18.00,
			ShippingCost:      6.95,
			ShippingType:      model.ShippingEstimated,
			AmazonFee:         5.81,
			SalesVAT:          7.50,
		}),
	}
}

func TestOrderRollup(t *testing.T) {
	items := testOrder()
	summary := OrderRollup(items)

	wantRevenue := 12.50*2 + 45.00
	wantCost := (4.20+2.10+1.91+2.08)*2 + (18.00 + 6.95 + 5.81 + 7.50)

	assert.InDelta(t, wantRevenue, summary.Revenue, 1e-9)
	assert.InDelta(t, wantCost, summary.Cost, 1e-9)
	assert.InDelta(t, wantRevenue-wantCost, summary.Profit, 1e-9)
	assert.Equal(t, 2, summary.Items)
}

func TestOrderRollup_OrderIndependent(t *testing.T) {
	items := testOrder()
	want := OrderRollup(items)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 5; i++ {
		shuffled := make([]PricedItem, len(items))
		copy(shuffled, items)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		got := OrderRollup(shuffled)
		assert.InDelta(t, want.Revenue, got.Revenue, 1e-9)
		assert.InDelta(t, want.Cost, got.Cost, 1e-9)
		assert.InDelta(t, want.Profit, got.Profit, 1e-9)
	}
}

func TestSKURollup_FiltersToTargetSKU(t *testing.T) {
	items := testOrder()
	summary := SKURollup(items, "CRT-24")

	assert.Equal(t, "CRT-24", summary.SKU)
	assert.InDelta(t, 45.00, summary.Revenue, 1e-9)
	assert.Equal(t, 24, summary.Units) // one pack of 24
	assert.Equal(t, 1, summary.Packs)

	missing := SKURollup(items, "NOPE")
	assert.Zero(t, missing.Revenue)
	assert.Zero(t, missing.Units)
}

func TestApplyActualShipping_OverridesEstimate(t *testing.T) {
	items := testOrder()
	estimated := OrderRollup(items)

	// 3 packs across the order, actual carrier total of 7.50.
	overridden := ApplyActualShipping(items, 7.50)
	actual := OrderRollup(overridden)

	for _, pi := range overridden {
		assert.Equal(t, model.ShippingActual, pi.Breakdown.ShippingType)
		assert.InDelta(t, 2.50, pi.Breakdown.ShippingCost, 1e-9)
	}

	// The aggregate must follow the actual figure, not the estimate.
	require.NotEqual(t, estimated.Cost, actual.Cost)
	assert.InDelta(t, estimated.Cost-(2.10*2+6.95)+7.50, actual.Cost, 1e-9)

	// Originals untouched.
	assert.Equal(t, model.ShippingEstimated, items[0].Breakdown.ShippingType)
}

func TestApplyActualShipping_NoPacks(t *testing.T) {
	out := ApplyActualShipping(nil, 10)
	assert.Empty(t, out)

	zeroQty := []PricedItem{pricedItem("X", 5, 0, 1, model.CostBreakdown{ShippingCost: 1, ShippingType: model.ShippingEstimated})}
	out = ApplyActualShipping(zeroQty, 10)
	require.Len(t, out, 1)
	assert.Equal(t, model.ShippingEstimated, out[0].Breakdown.ShippingType)
}

func TestCompareWindows(t *testing.T) {
	current := testOrder()
	previous := []PricedItem{
		pricedItem("OLV-500", 12.50, 1, 1, model.CostBreakdown{MaterialTotalCost: 4.20, ShippingCost: 2.10, AmazonFee: 1.91, SalesVAT: 2.08}),
	}

	cmp := CompareWindows(current, previous)
	assert.Greater(t, cmp.RevenueChange, 0.0)
	assert.Equal(t, 26, cmp.Current.Units)
	assert.Equal(t, 1, cmp.Previous.Units)
}

func TestCompareWindows_EmptyPrevious(t *testing.T) {
	cmp := CompareWindows(testOrder(), nil)
	assert.Zero(t, cmp.RevenueChange)
	assert.Zero(t, cmp.UnitsChange)
}
