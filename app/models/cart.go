package models

import "fmt"

// CartLine is the descriptor handed to the cart when the shopper adds
// the current selection. One line per product/variant combination; the
// ID encodes that identity so repeated adds merge instead of duplicate.
type CartLine struct {
	ID          string              `json:"id"`
	ProductID   int64               `json:"product_id"`
	VariantID   *int64              `json:"variant_id,omitempty"`
	Name        string              `json:"name"`
	SKU         string              `json:"sku"`
	Price       float64             `json:"price"`
	Currency    string              `json:"currency"`
	Image       string              `json:"image"`
	Stock       *int                `json:"stock,omitempty"`
	Attributes  []DefiningAttribute `json:"attributes,omitempty"`
}

// CartLineID builds the stable line identity: "{base}" for a plain
// product, "{base}-{variant}" when a variant is selected.
func CartLineID(productID int64, variantID *int64) string {
	if variantID == nil {
		return fmt.Sprintf("%d", productID)
	}
	return fmt.Sprintf("%d-%d", productID, *variantID)
}

// CartItem is a cart line plus the quantity the shopper holds.
type CartItem struct {
	Line     CartLine `json:"line"`
	Quantity int      `json:"quantity"`
}

func (i CartItem) Total() float64 { return i.Line.Price * float64(i.Quantity) }

// CartSummary is what the cart endpoints return.
type CartSummary struct {
	Items      []CartItem `json:"items"`
	TotalItems int        `json:"total_items"`
	Subtotal   float64    `json:"subtotal"`
	Currency   string     `json:"currency"`
}
