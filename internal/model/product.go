// Package model defines the core domain types shared across the application.
package model

// ProductMaster holds the inventory system's record for a SKU: physical
// dimensions and weight used for shipping estimation, plus the unit cost
// recorded against the SKU itself.
//
// Any field may be zero when the inventory system has incomplete data;
// consumers must treat zero dimensions as "size unknown".
type ProductMaster struct {
	SKU    string  `json:"sku"`
	Depth  float64 `json:"depth"`
	Height float64 `json:"height"`
	Width  float64 `json:"width"`
	Weight float64 `json:"weight"`
	Cost   float64 `json:"cost"`
}

// HasDimensions reports whether all three dimensions are known.
func (p *ProductMaster) HasDimensions() bool {
	return p.Depth > 0 && p.Height > 0 && p.Width > 0
}

// ShippingGroupMapping associates a seller SKU with the merchant shipping
// group that selects which shipping tier table applies to it.
type ShippingGroupMapping struct {
	SellerSKU             string `json:"seller_sku"`
	MerchantShippingGroup string `json:"merchant_shipping_group"`
	ItemName              string `json:"item_name"`
}

// CompositionSummary describes a bundle SKU in terms of its children: how
// many child units make up one pack, the summed cost of those children, and
// their aggregated VAT. When present, these figures are authoritative over
// the parent SKU's own cost field.
type CompositionSummary struct {
	ParentSKU     string  `json:"parent_sku"`
	TotalQty      int     `json:"total_qty"`
	TotalValue    float64 `json:"total_value"`
	ChildVATTotal float64 `json:"child_vats"`
}
