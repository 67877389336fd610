package controllers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWishlistToggle(t *testing.T) {
	h, _ := storefront(t)

	rec, resp := do(t, h, "POST", "/api/wishlist/10", "", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		ProductID  int64 `json:"product_id"`
		Wishlisted bool  `json:"wishlisted"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &body))
	assert.Equal(t, int64(10), body.ProductID)
	assert.True(t, body.Wishlisted)
}

func TestWishlistRejectsBadID(t *testing.T) {
	h, _ := storefront(t)

	rec, _ := do(t, h, "POST", "/api/wishlist/banana", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWishlistIndexEmpty(t *testing.T) {
	h, _ := storefront(t)

	rec, resp := do(t, h, "GET", "/api/wishlist", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		ProductIDs []int64 `json:"product_ids"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &body))
	assert.Empty(t, body.ProductIDs)
}
