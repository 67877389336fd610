package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ok(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestNamedRoutes(t *testing.T) {
	r := New()
	r.Get("/products/{id}", "products.show", ok)

	path, found := r.Path("products.show")
	require.True(t, found)
	assert.Equal(t, "/products/{id}", path)

	url, err := r.URL("products.show", map[string]string{"id": "10"})
	require.NoError(t, err)
	assert.Equal(t, "/products/10", url)

	_, err = r.URL("products.show", nil)
	assert.Error(t, err, "missing params must not produce a broken URL")
}

func TestGroupPrefixAndMiddleware(t *testing.T) {
	r := New()

	var order []string
	mw := func(tag string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				order = append(order, tag)
				next.ServeHTTP(w, req)
			})
		}
	}

	api := r.Group("/api", mw("outer"))
	admin := api.Group("/admin", mw("inner"))
	admin.Get("/reports", "admin.reports", ok)

	req := httptest.NewRequest("GET", "/api/admin/reports", nil)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"outer", "inner"}, order)
}

func TestRoutesListing(t *testing.T) {
	r := New()
	r.Get("/healthz", "healthz", ok)
	r.Post("/api/login", "", ok)

	infos := r.Routes()
	require.Len(t, infos, 2)
	assert.Equal(t, RouteInfo{Method: "GET", Path: "/healthz", Name: "healthz"}, infos[0])
	assert.Equal(t, "", infos[1].Name, "unnamed routes still show up in the listing")
}

func TestMethodRouting(t *testing.T) {
	r := New()
	r.Get("/cart", "cart.show", ok)
	r.Delete("/cart", "cart.clear", ok)

	req := httptest.NewRequest("DELETE", "/cart", nil)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest("PUT", "/cart", nil)
	rec = httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
