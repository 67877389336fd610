// Package controllers contains the HTTP handlers. Controllers parse
// the request, call a service or the detail store, and write the
// response envelope; they hold no business logic of their own.
package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/vitrine/app/catalog"
	"github.com/shashiranjanraj/vitrine/app/services"
	"github.com/shashiranjanraj/vitrine/pkg/response"
)

// ProductController serves the product listing and category endpoints.
type ProductController struct {
	listing *services.ListingService
}

func NewProductController(listing *services.ListingService) *ProductController {
	return &ProductController{listing: listing}
}

// Index handles GET /api/products.
// Query params: category, search, sort (price_asc|price_desc|name), page, limit.
func (c *ProductController) Index(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := catalog.ListParams{
		Category: q.Get("category"),
		Search:   q.Get("search"),
		Sort:     q.Get("sort"),
	}
	params.Page, _ = strconv.Atoi(q.Get("page"))
	params.PerPage, _ = strconv.Atoi(q.Get("limit"))

	products, pagination, err := c.listing.List(r.Context(), params)
	if err != nil {
		response.Error(w, http.StatusBadGateway, "product catalog is unavailable")
		return
	}
	response.Paginated(w, products, pagination)
}

// Categories handles GET /api/categories.
func (c *ProductController) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := c.listing.Categories(r.Context())
	if err != nil {
		response.Error(w, http.StatusBadGateway, "product catalog is unavailable")
		return
	}
	response.Success(w, categories)
}

// productID pulls the {id} route param.
func productID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}
