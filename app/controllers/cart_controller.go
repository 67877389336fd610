package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/vitrine/app/services"
	"github.com/shashiranjanraj/vitrine/pkg/logger"
	"github.com/shashiranjanraj/vitrine/pkg/response"
	"github.com/shashiranjanraj/vitrine/pkg/session"
)

// CartController exposes the session cart. Adding happens through the
// detail page (DetailController.AddToCart); this controller covers
// reading and editing what is already in the cart.
type CartController struct {
	cart *services.CartService
}

func NewCartController(cart *services.CartService) *CartController {
	return &CartController{cart: cart}
}

// Show handles GET /api/cart.
func (c *CartController) Show(w http.ResponseWriter, r *http.Request) {
	sess := session.FromCtx(r)
	response.Success(w, c.cart.Summary(sess))
}

// UpdateLine handles PUT /api/cart/{lineID}. Body: {"quantity": 2}.
func (c *CartController) UpdateLine(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	sess := session.FromCtx(r)
	summary := c.cart.SetQuantity(sess, chi.URLParam(r, "lineID"), body.Quantity)
	c.save(w, r, sess)
	response.Success(w, summary)
}

// RemoveLine handles DELETE /api/cart/{lineID}.
func (c *CartController) RemoveLine(w http.ResponseWriter, r *http.Request) {
	sess := session.FromCtx(r)
	summary := c.cart.Remove(sess, chi.URLParam(r, "lineID"))
	c.save(w, r, sess)
	response.Success(w, summary)
}

// Clear handles DELETE /api/cart.
func (c *CartController) Clear(w http.ResponseWriter, r *http.Request) {
	sess := session.FromCtx(r)
	c.cart.Clear(sess)
	c.save(w, r, sess)
	response.Success(w, c.cart.Summary(sess))
}

func (c *CartController) save(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	if err := sess.Save(w); err != nil {
		logger.WithCtx(r.Context()).Warn("cart: session save", "error", err)
	}
}
