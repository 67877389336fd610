// Package detail implements the product detail view: one View per
// session and product, holding the loaded base product, its variants
// and the shopper's current selection. All pricing, stock, media and
// attribute resolution for the detail page happens here.
package detail

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shashiranjanraj/vitrine/app/models"
	"github.com/shashiranjanraj/vitrine/config"
)

var (
	// ErrNoProduct means no base product is loaded in the view.
	ErrNoProduct = errors.New("detail: no product loaded")
	// ErrUnknownVariant means the requested variant does not belong to
	// the loaded product.
	ErrUnknownVariant = errors.New("detail: unknown variant")
	// ErrUnknownImage means the requested URL is not part of the
	// currently shown gallery.
	ErrUnknownImage = errors.New("detail: image not in gallery")
	// ErrOutOfStock means the current selection has zero stock.
	ErrOutOfStock = errors.New("detail: out of stock")
	// ErrInsufficientStock means the requested quantity exceeds the
	// available stock of the current selection.
	ErrInsufficientStock = errors.New("detail: insufficient stock")
)

// View is the per-session state of one product detail page. It is not
// safe for concurrent use; the Store serializes access per session.
type View struct {
	base     *models.BaseProduct
	variants []models.Variant

	active   *models.Variant // nil while the base product is shown
	quantity int
	image    string
}

// NewView builds a view for a loaded product. The quantity starts at 1
// and the image slot points at the first base image (or the placeholder
// when the gallery has no images).
func NewView(base *models.BaseProduct, variants []models.Variant) *View {
	v := &View{
		base:     base,
		variants: variants,
		quantity: 1,
	}
	v.image = baseImage(base)
	return v
}

// Select activates the variant with the given ID. The quantity resets
// to 1 regardless of the previous value, and the image slot is
// re-resolved: the variant's primary image wins, then its first image,
// then the first base image, then the placeholder. Selecting an
// out-of-stock variant is allowed; only add-to-cart rejects it.
func (v *View) Select(variantID int64) error {
	if v.base == nil {
		return ErrNoProduct
	}
	for i := range v.variants {
		if v.variants[i].ID == variantID {
			v.active = &v.variants[i]
			v.quantity = 1
			v.image = v.resolveImage()
			return nil
		}
	}
	return fmt.Errorf("%w: %d", ErrUnknownVariant, variantID)
}

// Clear drops the active variant and returns the view to the plain
// base product: quantity back to 1, image re-resolved against the base
// gallery only.
func (v *View) Clear() {
	v.active = nil
	v.quantity = 1
	v.image = baseImage(v.base)
}

// ChangeQuantity adjusts the quantity by delta and returns the result.
// The value is clamped to 1 at the bottom and to the stock of the
// current selection at the top; with no stock bound it only clamps at 1.
// A zero stock bound still floors at 1, so the quantity stays pinned there.
func (v *View) ChangeQuantity(delta int) int {
	v.quantity += delta
	if bound := v.stockBound(); bound != nil && v.quantity > *bound {
		v.quantity = *bound
	}
	if v.quantity < 1 {
		v.quantity = 1
	}
	return v.quantity
}

// Quantity returns the current quantity.
func (v *View) Quantity() int { return v.quantity }

// SelectImage points the image slot at url. The URL must belong to the
// currently shown gallery (variant media when a variant with media is
// active, base media otherwise).
func (v *View) SelectImage(url string) error {
	for _, m := range v.activeMedia() {
		if m.URL == url {
			v.image = url
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownImage, url)
}

// SelectedImage returns the URL currently shown in the image slot.
func (v *View) SelectedImage() string { return v.image }

// AddToCart validates stock for the current selection and returns the
// cart line descriptor. The view itself does not hold the cart.
func (v *View) AddToCart() (models.CartLine, error) {
	if v.base == nil {
		return models.CartLine{}, ErrNoProduct
	}

	bound := v.stockBound()
	if bound != nil {
		if *bound == 0 {
			return models.CartLine{}, ErrOutOfStock
		}
		if v.quantity > *bound {
			return models.CartLine{}, fmt.Errorf("%w: want %d, have %d", ErrInsufficientStock, v.quantity, *bound)
		}
	}

	d := v.Display()
	line := models.CartLine{
		ID:        models.CartLineID(v.base.ID, d.VariantID),
		ProductID: v.base.ID,
		VariantID: d.VariantID,
		Name:      d.Name,
		SKU:       d.SKU,
		Price:     d.Price,
		Currency:  d.Currency,
		Image:     v.image,
		Stock:     bound,
	}
	if v.active != nil {
		line.Attributes = v.active.DefiningAttributes
	}
	return line, nil
}

// DisplayAttribute is one row of the attribute table. Selected marks
// rows contributed by the active variant.
type DisplayAttribute struct {
	Name     string `json:"name"`
	Value    string `json:"value"`
	Selected bool   `json:"selected"`
}

// DisplayState is the fully resolved view of the detail page. It is
// always internally consistent: either every field reflects the base
// product, or price, stock, SKU and media all come from the active
// variant together. VariantID tells which case applies.
type DisplayState struct {
	ProductID   int64              `json:"product_id"`
	VariantID   *int64             `json:"variant_id,omitempty"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	SKU         string             `json:"sku"`
	Price       float64            `json:"price"`
	DiscountPct float64            `json:"discount_pct"`
	Currency    string             `json:"currency"`
	Stock       *int               `json:"stock,omitempty"`
	Quantity    int                `json:"quantity"`
	Image       string             `json:"image"`
	Media       []models.Media     `json:"media"`
	Attributes  []DisplayAttribute `json:"attributes"`
	Options     []Option           `json:"options"`
	Category    *models.Category   `json:"category,omitempty"`
	Brand       *models.Brand      `json:"brand,omitempty"`
}

// Display projects the current state into a DisplayState. The method
// is read-only and can be called any number of times.
func (v *View) Display() DisplayState {
	d := DisplayState{
		ProductID:   v.base.ID,
		Name:        v.base.Name,
		Description: v.base.Description,
		SKU:         v.base.SKU,
		Price:       v.base.SellingPrice,
		DiscountPct: v.base.DiscountPct,
		Currency:    v.base.Currency,
		Stock:       v.base.Stock,
		Quantity:    v.quantity,
		Image:       v.image,
		Media:       v.activeMedia(),
		Attributes:  v.attributeRows(),
		Options:     v.Options(),
		Category:    v.base.Category,
		Brand:       v.base.Brand,
	}
	if d.Currency == "" {
		d.Currency = config.Currency()
	}

	if v.active != nil {
		id := v.active.ID
		stock := v.active.Stock.Int()
		d.VariantID = &id
		d.Price = v.active.Price.Float64()
		d.Stock = &stock
		d.SKU = v.active.SKU
		d.Name = variantDisplayName(v.base.Name, v.active.DefiningAttributes)
	}
	return d
}

// Option is one entry of the variant picker. The label is the value of
// the variant's first defining attribute. Out-of-stock options stay in
// the list but are flagged disabled.
type Option struct {
	VariantID int64  `json:"variant_id"`
	Label     string `json:"label"`
	Disabled  bool   `json:"disabled"`
	Selected  bool   `json:"selected"`
}

// Options returns the variant picker entries in upstream order.
func (v *View) Options() []Option {
	if len(v.variants) == 0 {
		return nil
	}
	opts := make([]Option, 0, len(v.variants))
	for i := range v.variants {
		va := &v.variants[i]
		label := va.SKU
		if len(va.DefiningAttributes) > 0 {
			label = va.DefiningAttributes[0].Value
		}
		opts = append(opts, Option{
			VariantID: va.ID,
			Label:     label,
			Disabled:  va.Stock.Int() == 0,
			Selected:  v.active != nil && v.active.ID == va.ID,
		})
	}
	return opts
}

// stockBound returns the stock limit of the current selection: the
// variant's stock when one is active, else the base stock. nil means
// no limit is known.
func (v *View) stockBound() *int {
	if v.active != nil {
		s := v.active.Stock.Int()
		return &s
	}
	if v.base == nil {
		return nil
	}
	return v.base.Stock
}

// activeMedia returns the gallery currently shown: the variant's media
// when the active variant has any, the base gallery otherwise. Variant
// entries are normalized into the base Media shape.
func (v *View) activeMedia() []models.Media {
	if v.active != nil {
		if m := v.active.NormalizedMedia(); len(m) > 0 {
			return m
		}
	}
	if v.base == nil {
		return nil
	}
	return v.base.Media
}

// attributeRows builds the attribute table: the active variant's
// defining attributes first, flagged selected, followed by all base
// attributes. Rows are never deduplicated, so a Size row from the
// variant can coexist with a Size row from the base.
func (v *View) attributeRows() []DisplayAttribute {
	var rows []DisplayAttribute
	if v.active != nil {
		for _, a := range v.active.DefiningAttributes {
			rows = append(rows, DisplayAttribute{Name: a.Name, Value: a.Value, Selected: true})
		}
	}
	for _, a := range v.base.Attributes {
		rows = append(rows, DisplayAttribute{Name: a.Name, Value: a.DisplayValue()})
	}
	return rows
}

// resolveImage applies the image preference for the active variant:
// primary variant image, then first variant image, then first base
// image, then the placeholder. Only IMAGE entries qualify.
func (v *View) resolveImage() string {
	if v.active != nil {
		var first string
		for _, m := range v.active.Media {
			if m.Kind != models.MediaImage {
				continue
			}
			if m.Primary {
				return m.URL
			}
			if first == "" {
				first = m.URL
			}
		}
		if first != "" {
			return first
		}
	}
	return baseImage(v.base)
}

// baseImage resolves the image slot against the base gallery only.
func baseImage(base *models.BaseProduct) string {
	if base != nil {
		if url := base.FirstImage(); url != "" {
			return url
		}
	}
	return config.PlaceholderImage()
}

// variantDisplayName renders "Shirt (M, Red)" from the base name and
// the variant's defining attribute values.
func variantDisplayName(name string, attrs []models.DefiningAttribute) string {
	if len(attrs) == 0 {
		return name
	}
	values := make([]string, 0, len(attrs))
	for _, a := range attrs {
		values = append(values, a.Value)
	}
	return fmt.Sprintf("%s (%s)", name, strings.Join(values, ", "))
}
