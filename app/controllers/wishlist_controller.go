package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/vitrine/app/services"
	"github.com/shashiranjanraj/vitrine/pkg/logger"
	"github.com/shashiranjanraj/vitrine/pkg/notification"
	"github.com/shashiranjanraj/vitrine/pkg/response"
	"github.com/shashiranjanraj/vitrine/pkg/session"
)

type WishlistController struct {
	wishlist *services.WishlistService
}

func NewWishlistController(wishlist *services.WishlistService) *WishlistController {
	return &WishlistController{wishlist: wishlist}
}

// Index handles GET /api/wishlist.
func (c *WishlistController) Index(w http.ResponseWriter, r *http.Request) {
	sess := session.FromCtx(r)
	ids := c.wishlist.List(sess)
	if ids == nil {
		ids = []int64{}
	}
	response.Success(w, map[string]interface{}{"product_ids": ids})
}

// Toggle handles POST /api/wishlist/{id}.
func (c *WishlistController) Toggle(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "invalid product id")
		return
	}

	sess := session.FromCtx(r)
	added := c.wishlist.Toggle(sess, id)
	if err := sess.Save(w); err != nil {
		logger.WithCtx(r.Context()).Warn("wishlist: session save", "error", err)
	}

	notification.SendAsync(sess.ID(), &services.WishlistToast{ProductID: id, Added: added})
	response.Success(w, map[string]interface{}{"product_id": id, "wishlisted": added})
}
