package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shashiranjanraj/vitrine/app/catalog"
	"github.com/shashiranjanraj/vitrine/app/detail"
	"github.com/shashiranjanraj/vitrine/app/models"
	"github.com/shashiranjanraj/vitrine/app/services"
	"github.com/shashiranjanraj/vitrine/pkg/logger"
	"github.com/shashiranjanraj/vitrine/pkg/metrics"
	"github.com/shashiranjanraj/vitrine/pkg/notification"
	"github.com/shashiranjanraj/vitrine/pkg/response"
	"github.com/shashiranjanraj/vitrine/pkg/session"
)

// DetailController drives the product detail page: loading a product
// into the session view, variant selection, quantity, image slot and
// add-to-cart.
type DetailController struct {
	store *detail.Store
	cart  *services.CartService
}

func NewDetailController(store *detail.Store, cart *services.CartService) *DetailController {
	return &DetailController{store: store, cart: cart}
}

// Show handles GET /api/products/{id}: fetches the product and its
// variants, installs the view for this session and returns the
// resolved display state.
func (c *DetailController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "invalid product id")
		return
	}

	sess := session.FromCtx(r)
	d, err := c.store.Load(r.Context(), sess.ID(), id)
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		response.NotFound(w)
		return
	case errors.Is(err, detail.ErrSuperseded):
		response.Error(w, http.StatusConflict, "superseded by a newer navigation")
		return
	case err != nil:
		logger.WithCtx(r.Context()).Error("detail: load failed", "product_id", id, "error", err)
		response.Error(w, http.StatusBadGateway, "product catalog is unavailable")
		return
	}

	// persist the cookie so follow-up detail operations land on the
	// same session
	sess.Set("last_product", id)
	if err := sess.Save(w); err != nil {
		logger.WithCtx(r.Context()).Warn("detail: session save", "error", err)
	}
	response.Success(w, d)
}

// Display handles GET /api/products/{id}/display: re-reads the current
// state without refetching upstream.
func (c *DetailController) Display(w http.ResponseWriter, r *http.Request) {
	sess := session.FromCtx(r)
	d, err := c.store.Display(sess.ID())
	if errors.Is(err, detail.ErrNoProduct) {
		response.NotFound(w)
		return
	}
	response.Success(w, d)
}

// SelectVariant handles POST /api/products/{id}/variant.
// Body: {"variant_id": 101}. A null or zero variant_id clears the
// selection, same as the DELETE route.
func (c *DetailController) SelectVariant(w http.ResponseWriter, r *http.Request) {
	var body struct {
		VariantID *int64 `json:"variant_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	sess := session.FromCtx(r)
	err := c.store.Do(sess.ID(), func(v *detail.View) error {
		if body.VariantID == nil || *body.VariantID == 0 {
			v.Clear()
			return nil
		}
		return v.Select(*body.VariantID)
	})
	if !c.writeViewError(w, err) {
		return
	}
	c.writeDisplay(w, sess)
}

// ClearVariant handles DELETE /api/products/{id}/variant.
func (c *DetailController) ClearVariant(w http.ResponseWriter, r *http.Request) {
	sess := session.FromCtx(r)
	err := c.store.Do(sess.ID(), func(v *detail.View) error {
		v.Clear()
		return nil
	})
	if !c.writeViewError(w, err) {
		return
	}
	c.writeDisplay(w, sess)
}

// ChangeQuantity handles POST /api/products/{id}/quantity.
// Body: {"delta": 1}.
func (c *DetailController) ChangeQuantity(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Delta int `json:"delta"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	sess := session.FromCtx(r)
	err := c.store.Do(sess.ID(), func(v *detail.View) error {
		v.ChangeQuantity(body.Delta)
		return nil
	})
	if !c.writeViewError(w, err) {
		return
	}
	c.writeDisplay(w, sess)
}

// SelectImage handles POST /api/products/{id}/image.
// Body: {"url": "b.jpg"}.
func (c *DetailController) SelectImage(w http.ResponseWriter, r *http.Request) {
	var body struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.URL == "" {
		response.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	sess := session.FromCtx(r)
	err := c.store.Do(sess.ID(), func(v *detail.View) error {
		return v.SelectImage(body.URL)
	})
	if !c.writeViewError(w, err) {
		return
	}
	c.writeDisplay(w, sess)
}

// AddToCart handles POST /api/products/{id}/cart: validates stock for
// the current selection, merges the line into the session cart and
// pushes a toast.
func (c *DetailController) AddToCart(w http.ResponseWriter, r *http.Request) {
	sess := session.FromCtx(r)

	var line models.CartLine
	var qty int
	err := c.store.Do(sess.ID(), func(v *detail.View) error {
		l, err := v.AddToCart()
		if err != nil {
			return err
		}
		line = l
		qty = v.Quantity()
		return nil
	})
	switch {
	case errors.Is(err, detail.ErrNoProduct):
		response.NotFound(w)
		return
	case errors.Is(err, detail.ErrOutOfStock):
		metrics.RecordCartAdd("out_of_stock")
		response.Error(w, http.StatusConflict, "this item is out of stock")
		return
	case errors.Is(err, detail.ErrInsufficientStock):
		metrics.RecordCartAdd("insufficient_stock")
		response.Error(w, http.StatusConflict, "not enough stock for the requested quantity")
		return
	case err != nil:
		response.Error(w, http.StatusInternalServerError, "could not add to cart")
		return
	}

	summary := c.cart.Add(sess, line, qty)
	if err := sess.Save(w); err != nil {
		logger.WithCtx(r.Context()).Warn("cart: session save", "error", err)
	}

	notification.SendAsync(sess.ID(), &services.CartToast{Line: line, Quantity: qty})
	response.Success(w, summary)
}

// writeViewError maps view errors to HTTP responses. Returns true when
// the caller may proceed to write a success body.
func (c *DetailController) writeViewError(w http.ResponseWriter, err error) bool {
	switch {
	case err == nil:
		return true
	case errors.Is(err, detail.ErrNoProduct):
		response.NotFound(w)
	case errors.Is(err, detail.ErrUnknownVariant), errors.Is(err, detail.ErrUnknownImage):
		response.Error(w, http.StatusUnprocessableEntity, err.Error())
	default:
		response.Error(w, http.StatusInternalServerError, "detail view error")
	}
	return false
}

func (c *DetailController) writeDisplay(w http.ResponseWriter, sess *session.Session) {
	d, err := c.store.Display(sess.ID())
	if err != nil {
		response.NotFound(w)
		return
	}
	response.Success(w, d)
}
