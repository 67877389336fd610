package controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/vitrine/app/routes"
	"github.com/shashiranjanraj/vitrine/pkg/httpclient"
	"github.com/shashiranjanraj/vitrine/pkg/router"
	"github.com/shashiranjanraj/vitrine/pkg/session"
	"github.com/shashiranjanraj/vitrine/pkg/testkit"
	"github.com/shashiranjanraj/vitrine/pkg/ws"
)

const productBody = `{
	"id": 10,
	"name": "Shirt",
	"sku": "SHIRT-BASE",
	"selling_price": 20,
	"stock": 5,
	"media": [{"id": 1, "file_type": "IMAGE", "url": "a.jpg"}],
	"attributes": [{"id": 1, "name": "Material", "value": "cotton", "is_text": true}]
}`

const variantsBody = `[
	{
		"id": 101, "product_id": 10, "sku": "SHIRT-M",
		"price": "25.00", "stock": "3",
		"attributes": [{"name": "Size", "value": "M"}],
		"media": [{"id": 11, "file_type": "IMAGE", "url": "b.jpg", "is_primary": true}]
	},
	{
		"id": 102, "product_id": 10, "sku": "SHIRT-L",
		"price": "30.00", "stock": "0",
		"attributes": [{"name": "Size", "value": "L"}]
	}
]`

// storefront spins up the full route table behind the session
// middleware, with the upstream API stubbed out. The returned transport
// accepts extra stubs for endpoints a test needs beyond the detail page.
func storefront(t *testing.T) (http.Handler, *testkit.MockTransport) {
	t.Helper()

	mt := testkit.NewMockTransport()
	mt.Stub("/products/10/variants", 200, variantsBody)
	mt.Stub("/products/10", 200, productBody)
	httpclient.DefaultClient.Transport = mt
	t.Cleanup(httpclient.ResetTransport)

	r := router.New()
	r.Use(session.Middleware(session.DefaultOptions()))
	hub := ws.NewHub()
	go hub.Run()
	routes.Register(r, hub)
	return r.Handler(), mt
}

type apiResponse struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func do(t *testing.T, h http.Handler, method, path, body, cookie string) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp apiResponse
	if rec.Body.Len() > 0 {
		_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	}
	return rec, resp
}

// sessionCookie extracts the vitrine session cookie from the response.
func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == "vitrine_session" {
			return c.Name + "=" + c.Value
		}
	}
	t.Fatal("no session cookie issued")
	return ""
}

func TestDetailPageFlow(t *testing.T) {
	h, _ := storefront(t)

	// load the product page
	rec, resp := do(t, h, "GET", "/api/products/10", "", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	cookie := sessionCookie(t, rec)

	var d struct {
		Name      string   `json:"name"`
		Price     float64  `json:"price"`
		VariantID *int64   `json:"variant_id"`
		Image     string   `json:"image"`
		Quantity  int      `json:"quantity"`
		Options   []struct {
			VariantID int64  `json:"variant_id"`
			Label     string `json:"label"`
			Disabled  bool   `json:"disabled"`
		} `json:"options"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &d))
	assert.Equal(t, "Shirt", d.Name)
	assert.Equal(t, 20.0, d.Price)
	assert.Nil(t, d.VariantID)
	assert.Equal(t, "a.jpg", d.Image)
	require.Len(t, d.Options, 2)
	assert.Equal(t, "M", d.Options[0].Label)
	assert.True(t, d.Options[1].Disabled)

	// select the M variant
	rec, resp = do(t, h, "POST", "/api/products/10/variant", `{"variant_id":101}`, cookie)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NoError(t, json.Unmarshal(resp.Data, &d))
	require.NotNil(t, d.VariantID)
	assert.Equal(t, int64(101), *d.VariantID)
	assert.Equal(t, "Shirt (M)", d.Name)
	assert.Equal(t, 25.0, d.Price)
	assert.Equal(t, "b.jpg", d.Image)
	assert.Equal(t, 1, d.Quantity)

	// quantity clamps at the variant stock of 3
	rec, resp = do(t, h, "POST", "/api/products/10/quantity", `{"delta":9}`, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(resp.Data, &d))
	assert.Equal(t, 3, d.Quantity)

	// add to cart
	rec, resp = do(t, h, "POST", "/api/products/10/cart", "", cookie)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var summary struct {
		Items []struct {
			Line struct {
				ID   string `json:"id"`
				Name string `json:"name"`
			} `json:"line"`
			Quantity int `json:"quantity"`
		} `json:"items"`
		Subtotal float64 `json:"subtotal"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &summary))
	require.Len(t, summary.Items, 1)
	assert.Equal(t, "10-101", summary.Items[0].Line.ID)
	assert.Equal(t, "Shirt (M)", summary.Items[0].Line.Name)
	assert.Equal(t, 3, summary.Items[0].Quantity)
	assert.Equal(t, 75.0, summary.Subtotal)

	// clearing the variant falls back to the base product
	rec, resp = do(t, h, "DELETE", "/api/products/10/variant", "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	// variant_id is omitted from the JSON when nil, so drop the stale
	// pointer from the previous decode before unmarshalling into d again
	d.VariantID = nil
	require.NoError(t, json.Unmarshal(resp.Data, &d))
	assert.Nil(t, d.VariantID)
	assert.Equal(t, 20.0, d.Price)
	assert.Equal(t, "a.jpg", d.Image)
}

func TestAddOutOfStockVariant(t *testing.T) {
	h, _ := storefront(t)

	rec, _ := do(t, h, "GET", "/api/products/10", "", "")
	cookie := sessionCookie(t, rec)

	rec, _ = do(t, h, "POST", "/api/products/10/variant", `{"variant_id":102}`, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, resp := do(t, h, "POST", "/api/products/10/cart", "", cookie)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, resp.Message, "out of stock")
}

func TestSelectUnknownVariantIs422(t *testing.T) {
	h, _ := storefront(t)

	rec, _ := do(t, h, "GET", "/api/products/10", "", "")
	cookie := sessionCookie(t, rec)

	rec, _ = do(t, h, "POST", "/api/products/10/variant", `{"variant_id":999}`, cookie)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestDetailOpsWithoutLoadedProduct(t *testing.T) {
	h, _ := storefront(t)

	rec, _ := do(t, h, "POST", "/api/products/10/variant", `{"variant_id":101}`, "")
	assert.Equal(t, http.StatusNotFound, rec.Code, "no view loaded for a fresh session")
}

func TestProductNotFoundPage(t *testing.T) {
	h, _ := storefront(t)

	rec, _ := do(t, h, "GET", "/api/products/77", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
