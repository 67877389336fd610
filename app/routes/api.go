// Package routes wires controllers onto the router.
package routes

import (
	"net/http"

	"github.com/shashiranjanraj/vitrine/app/catalog"
	"github.com/shashiranjanraj/vitrine/app/controllers"
	"github.com/shashiranjanraj/vitrine/app/detail"
	"github.com/shashiranjanraj/vitrine/app/services"
	"github.com/shashiranjanraj/vitrine/pkg/metrics"
	"github.com/shashiranjanraj/vitrine/pkg/middleware"
	"github.com/shashiranjanraj/vitrine/pkg/router"
	"github.com/shashiranjanraj/vitrine/pkg/ws"
)

// Register builds the controller graph and mounts every route.
// toastHub must already be running.
func Register(r *router.Router, toastHub *ws.Hub) {
	client := catalog.NewClient()
	store := detail.NewStore(client)

	cartSvc := services.NewCartService()
	listingSvc := services.NewListingService(client)
	wishlistSvc := services.NewWishlistService()
	reportSvc := services.NewReportService(client)
	authSvc := services.NewAuthService()

	products := controllers.NewProductController(listingSvc)
	details := controllers.NewDetailController(store, cartSvc)
	cart := controllers.NewCartController(cartSvc)
	wishlist := controllers.NewWishlistController(wishlistSvc)
	reports := controllers.NewReportController(reportSvc)
	authCtrl := controllers.NewAuthController(authSvc)

	api := r.Group("/api")

	// catalog
	api.Get("/products", "products.index", products.Index)
	api.Get("/categories", "categories.index", products.Categories)

	// product detail page
	api.Get("/products/{id}", "products.show", details.Show)
	api.Get("/products/{id}/display", "products.display", details.Display)
	api.Post("/products/{id}/variant", "products.variant.select", details.SelectVariant)
	api.Delete("/products/{id}/variant", "products.variant.clear", details.ClearVariant)
	api.Post("/products/{id}/quantity", "products.quantity", details.ChangeQuantity)
	api.Post("/products/{id}/image", "products.image", details.SelectImage)
	api.Post("/products/{id}/cart", "products.cart.add", details.AddToCart)

	// cart
	api.Get("/cart", "cart.show", cart.Show)
	api.Put("/cart/{lineID}", "cart.update", cart.UpdateLine)
	api.Delete("/cart/{lineID}", "cart.remove", cart.RemoveLine)
	api.Delete("/cart", "cart.clear", cart.Clear)

	// wishlist
	api.Get("/wishlist", "wishlist.index", wishlist.Index)
	api.Post("/wishlist/{id}", "wishlist.toggle", wishlist.Toggle)

	// superadmin reports
	api.Post("/admin/login", "admin.login", authCtrl.Login)
	admin := api.Group("/admin", middleware.Auth, middleware.RequireRole("superadmin"))
	admin.Get("/reports/sales", "admin.reports.sales", reports.Sales)
	admin.Post("/reports/sales/export", "admin.reports.export", reports.Export)

	// infra endpoints outside the /api envelope
	r.HandleFunc("/metrics", metrics.Handler())
	r.HandleFunc("/ws/toasts", func(w http.ResponseWriter, req *http.Request) {
		ws.Upgrade(w, req, toastHub)
	})
	r.Get("/healthz", "healthz", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
}
