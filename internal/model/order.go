package model

// OrderItem is a single sold line from a marketplace order, constructed per
// request from raw order data and never persisted.
//
// UnitPrice is the revenue for one pack: callers derive it by dividing the
// line total by the quantity before constructing the item.
type OrderItem struct {
	TaxPerUnit *float64 `json:"tax_per_unit,omitempty"`
	SKU        string   `json:"sku"`
	UnitPrice  float64  `json:"unit_price"`
	Quantity   int      `json:"quantity"`
	BundleQty  int      `json:"bundle_qty"`
	IsPrime    bool     `json:"is_prime"`
}

// Units returns the number of physical units the line represents, expanding
// packs by the bundle quantity. A missing bundle quantity counts as 1.
func (i *OrderItem) Units() int {
	bundle := i.BundleQty
	if bundle < 1 {
		bundle = 1
	}
	return i.Quantity * bundle
}
