package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/vitrine/app/catalog"
	"github.com/shashiranjanraj/vitrine/app/models"
	"github.com/shashiranjanraj/vitrine/pkg/httpclient"
	"github.com/shashiranjanraj/vitrine/pkg/testkit"
)

const productListBody = `[
	{"id": 1, "name": "Shirt", "selling_price": 20, "category": {"id": 1, "name": "Apparel", "slug": "apparel"}},
	{"id": 2, "name": "Hat", "selling_price": 9, "category": {"id": 1, "name": "Apparel", "slug": "apparel"}},
	{"id": 3, "name": "Mug", "description": "ceramic coffee mug", "selling_price": 12, "category": {"id": 2, "name": "Home", "slug": "home"}}
]`

func listingService(t *testing.T) *ListingService {
	t.Helper()
	mt := testkit.NewMockTransport()
	mt.Stub("/products", 200, productListBody)
	httpclient.DefaultClient.Transport = mt
	t.Cleanup(httpclient.ResetTransport)
	return NewListingService(catalog.NewClient())
}

func names(products []models.BaseProduct) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.Name)
	}
	return out
}

func TestListingAll(t *testing.T) {
	svc := listingService(t)

	products, page, err := svc.List(context.Background(), catalog.ListParams{})
	require.NoError(t, err)
	assert.Len(t, products, 3)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 3, page.Total)
}

func TestListingCategoryFilter(t *testing.T) {
	svc := listingService(t)

	products, _, err := svc.List(context.Background(), catalog.ListParams{Category: "apparel"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Shirt", "Hat"}, names(products))
}

func TestListingSearchMatchesNameAndDescription(t *testing.T) {
	svc := listingService(t)

	products, _, err := svc.List(context.Background(), catalog.ListParams{Search: "coffee"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Mug"}, names(products))
}

func TestListingSort(t *testing.T) {
	svc := listingService(t)

	products, _, err := svc.List(context.Background(), catalog.ListParams{Sort: "price_asc"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Hat", "Mug", "Shirt"}, names(products))

	products, _, err = svc.List(context.Background(), catalog.ListParams{Sort: "price_desc"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Shirt", "Mug", "Hat"}, names(products))
}

func TestListingPagination(t *testing.T) {
	svc := listingService(t)

	products, page, err := svc.List(context.Background(), catalog.ListParams{Page: 2, PerPage: 2})
	require.NoError(t, err)
	assert.Len(t, products, 1)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, 3, page.Total)

	products, _, err = svc.List(context.Background(), catalog.ListParams{Page: 9, PerPage: 2})
	require.NoError(t, err)
	assert.Empty(t, products, "past-the-end page is empty, not an error")
}
