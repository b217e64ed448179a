package aggregate

// WindowComparison summarises how one pricing window performed against the
// previous one, for the weekly comparison report.
type WindowComparison struct {
	Current       WindowTotals `json:"current"`
	Previous      WindowTotals `json:"previous"`
	RevenueChange float64      `json:"revenue_change_pct"`
	ProfitChange  float64      `json:"profit_change_pct"`
	UnitsChange   float64      `json:"units_change_pct"`
}

// WindowTotals are the figures compared between windows.
type WindowTotals struct {
	Revenue float64 `json:"revenue"`
	Profit  float64 `json:"profit"`
	Units   int     `json:"units"`
}

// CompareWindows rolls up two sets of priced items and reports the
// percentage movement between them. A zero previous figure yields a zero
// percentage rather than a division blowup.
func CompareWindows(current, previous []PricedItem) WindowComparison {
	cmp := WindowComparison{
		Current:  windowTotals(current),
		Previous: windowTotals(previous),
	}
	cmp.RevenueChange = percentChange(cmp.Previous.Revenue, cmp.Current.Revenue)
	cmp.ProfitChange = percentChange(cmp.Previous.Profit, cmp.Current.Profit)
	cmp.UnitsChange = percentChange(float64(cmp.Previous.Units), float64(cmp.Current.Units))
	return cmp
}

func windowTotals(items []PricedItem) WindowTotals {
	order := OrderRollup(items)
	totals := WindowTotals{Revenue: order.Revenue, Profit: order.Profit}
	for _, pi := range items {
		totals.Units += pi.Item.Units()
	}
	return totals
}

func percentChange(from, to float64) float64 {
	if from == 0 {
		return 0
	}
	return (to - from) / from * 100
}
