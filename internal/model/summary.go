package model

// OrderSummary is the order-level rollup of revenue, cost, and profit across
// all line items. Recomputed fresh per request; never cached.
type OrderSummary struct {
	Revenue float64 `json:"order_revenue"`
	Cost    float64 `json:"order_cost"`
	Profit  float64 `json:"order_profit"`
	Items   int     `json:"items"`
}

// SKUSummary is the rollup for a single SKU within an order, including the
// unit and pack counts the profitability screens display.
type SKUSummary struct {
	SKU     string  `json:"sku"`
	Revenue float64 `json:"sku_revenue"`
	Cost    float64 `json:"sku_cost"`
	Profit  float64 `json:"sku_profit"`
	Units   int     `json:"sku_units"`
	Packs   int     `json:"sku_packs"`
}
