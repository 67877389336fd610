// Package models holds the catalog types exchanged with the upstream
// product API and the cart/report shapes derived from them. The structs
// mirror the upstream JSON payloads; anything the storefront computes
// (display states, option lists) lives in app/detail instead.
package models

// MediaKind discriminates image entries from video entries. Only IMAGE
// entries are eligible for the detail page's selected-image slot.
type MediaKind string

const (
	MediaImage MediaKind = "IMAGE"
	MediaVideo MediaKind = "VIDEO"
)

// Media is a gallery entry attached to a base product or, after
// normalization, to a variant.
type Media struct {
	ID        int64     `json:"id"`
	Kind      MediaKind `json:"file_type"`
	URL       string    `json:"url"`
	SortOrder int       `json:"sort_order"`
}

// IsImage reports whether the entry can be shown in the image slot.
func (m Media) IsImage() bool { return m.Kind == MediaImage }

// Attribute is a descriptive name/value pair on a base product. Coded
// attributes carry a machine value plus a human label; text attributes
// carry free text and an empty label.
type Attribute struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Value  string `json:"value"`
	Label  string `json:"label,omitempty"`
	IsText bool   `json:"is_text"`
}

// DisplayValue returns what a shopper should read for the attribute.
func (a Attribute) DisplayValue() string {
	if !a.IsText && a.Label != "" {
		return a.Label
	}
	return a.Value
}

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type Brand struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// BaseProduct is the canonical product record from the upstream API.
// Stock is a pointer because the upstream omits it for products whose
// inventory is tracked per variant only; nil means "not constrained at
// the base level".
type BaseProduct struct {
	ID           int64       `json:"id"`
	Name         string      `json:"name"`
	Description  string      `json:"description"`
	SKU          string      `json:"sku"`
	CostPrice    float64     `json:"cost_price"`
	SellingPrice float64     `json:"selling_price"`
	DiscountPct  float64     `json:"discount_pct"`
	Currency     string      `json:"currency,omitempty"`
	Stock        *int        `json:"stock,omitempty"`
	Media        []Media     `json:"media"`
	Attributes   []Attribute `json:"attributes"`
	Category     *Category   `json:"category,omitempty"`
	Brand        *Brand      `json:"brand,omitempty"`
}

// FirstImage returns the URL of the first IMAGE media entry, or "" when
// the gallery has none.
func (p *BaseProduct) FirstImage() string {
	for _, m := range p.Media {
		if m.IsImage() {
			return m.URL
		}
	}
	return ""
}

// DefiningAttribute identifies one axis of a variant (e.g. Size=M).
type DefiningAttribute struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// VariantMedia is a gallery entry owned by a variant. Unlike base media
// it carries a primary flag and uses display_order for sorting.
type VariantMedia struct {
	ID           int64     `json:"id"`
	Kind         MediaKind `json:"file_type"`
	URL          string    `json:"url"`
	Primary      bool      `json:"is_primary"`
	DisplayOrder int       `json:"display_order"`
}

// Variant is a purchasable configuration of a base product. The
// upstream variants endpoint serialises price and stock as JSON strings,
// hence the Flex* types.
type Variant struct {
	ID                 int64               `json:"id"`
	ProductID          int64               `json:"product_id"`
	SKU                string              `json:"sku"`
	Price              FlexFloat           `json:"price"`
	Stock              FlexInt             `json:"stock"`
	DefiningAttributes []DefiningAttribute `json:"attributes"`
	Media              []VariantMedia      `json:"media,omitempty"`
}

// NormalizedMedia converts the variant gallery into the base Media
// shape so downstream code renders one list regardless of origin.
func (v *Variant) NormalizedMedia() []Media {
	if len(v.Media) == 0 {
		return nil
	}
	out := make([]Media, 0, len(v.Media))
	for _, m := range v.Media {
		out = append(out, Media{ID: m.ID, Kind: m.Kind, URL: m.URL, SortOrder: m.DisplayOrder})
	}
	return out
}
