package controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/vitrine/pkg/auth"
)

const ordersBody = `[
	{
		"id": 1, "placed_at": "2026-08-01T10:00:00Z", "total": 75,
		"lines": [{"product_id": 10, "product_name": "Shirt", "quantity": 3, "unit_price": 25, "total": 75}]
	},
	{
		"id": 2, "placed_at": "2026-08-02T12:30:00Z", "total": 9,
		"lines": [{"product_id": 11, "product_name": "Hat", "quantity": 1, "unit_price": 9, "total": 9}]
	}
]`

func newAuthedRequest(t *testing.T, method, path, token string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func superadminToken(t *testing.T) string {
	t.Helper()
	token, err := auth.GenerateToken("admin@example.com", "superadmin")
	require.NoError(t, err)
	return token
}

func TestSalesReportEndpoint(t *testing.T) {
	h, mt := storefront(t)
	mt.Stub("/admin/orders", 200, ordersBody)

	req := newAuthedRequest(t, "GET",
		"/api/admin/reports/sales?from=2026-08-01&to=2026-08-31", superadminToken(t))
	rec := serve(h, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp apiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	var report struct {
		TotalOrders  int     `json:"total_orders"`
		TotalUnits   int     `json:"total_units"`
		TotalRevenue float64 `json:"total_revenue"`
		Daily        []struct {
			Date    string  `json:"date"`
			Revenue float64 `json:"revenue"`
		} `json:"daily"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &report))
	assert.Equal(t, 2, report.TotalOrders)
	assert.Equal(t, 4, report.TotalUnits)
	assert.Equal(t, 84.0, report.TotalRevenue)
	require.Len(t, report.Daily, 2)
	assert.Equal(t, "2026-08-01", report.Daily[0].Date)
}

func TestSalesReportRejectsBadRange(t *testing.T) {
	h, _ := storefront(t)

	req := newAuthedRequest(t, "GET",
		"/api/admin/reports/sales?from=2026-08-31&to=2026-08-01", superadminToken(t))
	rec := serve(h, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req = newAuthedRequest(t, "GET",
		"/api/admin/reports/sales?from=not-a-date", superadminToken(t))
	rec = serve(h, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSalesReportUpstreamFailure(t *testing.T) {
	h, mt := storefront(t)
	mt.Fail("/admin/orders")

	req := newAuthedRequest(t, "GET",
		"/api/admin/reports/sales?from=2026-08-01&to=2026-08-31", superadminToken(t))
	rec := serve(h, req)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
