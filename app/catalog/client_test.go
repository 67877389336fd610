package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/vitrine/pkg/httpclient"
	"github.com/shashiranjanraj/vitrine/pkg/testkit"
)

func install(t *testing.T) *testkit.MockTransport {
	t.Helper()
	mt := testkit.NewMockTransport()
	httpclient.DefaultClient.Transport = mt
	t.Cleanup(httpclient.ResetTransport)
	return mt
}

func TestProductFetch(t *testing.T) {
	mt := install(t)
	mt.Stub("/products/10", 200, `{
		"id": 10,
		"name": "Shirt",
		"sku": "SHIRT-BASE",
		"selling_price": 20,
		"stock": 5,
		"media": [{"id": 1, "file_type": "IMAGE", "url": "a.jpg"}]
	}`)

	c := NewClient()
	p, err := c.Product(context.Background(), 10)
	require.NoError(t, err)

	assert.Equal(t, int64(10), p.ID)
	assert.Equal(t, "Shirt", p.Name)
	require.NotNil(t, p.Stock)
	assert.Equal(t, 5, *p.Stock)
	assert.Equal(t, "USD", p.Currency, "default currency applied when upstream omits one")
	assert.Equal(t, "a.jpg", p.FirstImage())
	mt.AssertAllCalled(t)
}

func TestProductNotFound(t *testing.T) {
	mt := install(t)
	mt.Stub("/products/404", 404, `{"error":"gone"}`)

	_, err := NewClient().Product(context.Background(), 404)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProductFetchFailure(t *testing.T) {
	mt := install(t)
	mt.Fail("/products/10")

	_, err := NewClient().Product(context.Background(), 10)
	assert.ErrorIs(t, err, ErrFetchFailed)
}

func TestProductUpstreamError(t *testing.T) {
	mt := install(t)
	mt.Stub("/products/10", 500, `{"error":"boom"}`)

	_, err := NewClient().Product(context.Background(), 10)
	assert.ErrorIs(t, err, ErrFetchFailed)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestVariantsParseStringNumerics(t *testing.T) {
	mt := install(t)
	mt.Stub("/products/10/variants", 200, `[
		{
			"id": 101,
			"product_id": 10,
			"sku": "SHIRT-M",
			"price": "25.00",
			"stock": "3",
			"attributes": [{"name": "Size", "value": "M"}],
			"media": [{"id": 11, "file_type": "IMAGE", "url": "b.jpg", "is_primary": true}]
		},
		{"id": 102, "product_id": 10, "sku": "SHIRT-L", "price": 30, "stock": 0}
	]`)

	vs, err := NewClient().Variants(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, vs, 2)

	// quoted and bare numerics both decode
	assert.Equal(t, 25.0, vs[0].Price.Float64())
	assert.Equal(t, 3, vs[0].Stock.Int())
	assert.Equal(t, 30.0, vs[1].Price.Float64())
	assert.Equal(t, 0, vs[1].Stock.Int())

	require.Len(t, vs[0].Media, 1)
	assert.True(t, vs[0].Media[0].Primary)
}

func TestVariantsMissingEndpointIsEmpty(t *testing.T) {
	mt := install(t)
	mt.Stub("/products/10/variants", 404, `{"error":"no variants"}`)

	vs, err := NewClient().Variants(context.Background(), 10)
	require.NoError(t, err, "404 means a plain product, not a failure")
	assert.Empty(t, vs)
}

func TestVariantsUpstreamError(t *testing.T) {
	mt := install(t)
	mt.Stub("/products/10/variants", 502, `bad gateway`)

	_, err := NewClient().Variants(context.Background(), 10)
	assert.ErrorIs(t, err, ErrFetchFailed)
}
