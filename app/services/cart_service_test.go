package services

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/vitrine/app/models"
	"github.com/shashiranjanraj/vitrine/pkg/session"
)

func intp(v int) *int { return &v }

func testSession() *session.Session {
	return session.FromCtx(httptest.NewRequest("GET", "/", nil))
}

func shirtLine() models.CartLine {
	vid := int64(101)
	return models.CartLine{
		ID:        "10-101",
		ProductID: 10,
		VariantID: &vid,
		Name:      "Shirt (M)",
		SKU:       "SHIRT-M",
		Price:     25,
		Currency:  "USD",
		Stock:     intp(3),
	}
}

func TestCartAddAndSummary(t *testing.T) {
	sess := testSession()
	svc := NewCartService()

	sum := svc.Add(sess, shirtLine(), 2)
	require.Len(t, sum.Items, 1)
	assert.Equal(t, 2, sum.TotalItems)
	assert.Equal(t, 50.0, sum.Subtotal)
	assert.Equal(t, "USD", sum.Currency)
}

func TestCartAddMergesSameLine(t *testing.T) {
	sess := testSession()
	svc := NewCartService()

	svc.Add(sess, shirtLine(), 1)
	sum := svc.Add(sess, shirtLine(), 1)

	require.Len(t, sum.Items, 1, "same line ID merges")
	assert.Equal(t, 2, sum.Items[0].Quantity)
}

func TestCartAddClampsMergedQuantityToStock(t *testing.T) {
	sess := testSession()
	svc := NewCartService()

	svc.Add(sess, shirtLine(), 2)
	sum := svc.Add(sess, shirtLine(), 5)

	assert.Equal(t, 3, sum.Items[0].Quantity, "merged quantity capped at line stock")
}

func TestCartKeepsDistinctVariantLines(t *testing.T) {
	sess := testSession()
	svc := NewCartService()

	base := shirtLine()
	base.ID = "10"
	base.VariantID = nil
	base.Name = "Shirt"

	svc.Add(sess, shirtLine(), 1)
	sum := svc.Add(sess, base, 1)

	assert.Len(t, sum.Items, 2, "base line and variant line are distinct")
}

func TestCartRemove(t *testing.T) {
	sess := testSession()
	svc := NewCartService()

	svc.Add(sess, shirtLine(), 1)
	sum := svc.Remove(sess, "10-101")

	assert.Empty(t, sum.Items)
	assert.Equal(t, 0, sum.TotalItems)
}

func TestCartSetQuantity(t *testing.T) {
	sess := testSession()
	svc := NewCartService()

	svc.Add(sess, shirtLine(), 1)

	sum := svc.SetQuantity(sess, "10-101", 99)
	assert.Equal(t, 3, sum.Items[0].Quantity, "clamped to stock")

	sum = svc.SetQuantity(sess, "10-101", 0)
	assert.Equal(t, 1, sum.Items[0].Quantity, "floor of 1")
}

func TestCartSurvivesJSONRoundTrip(t *testing.T) {
	// session data comes back from Redis as []interface{} of maps; the
	// service must decode it back into typed items
	sess := testSession()
	svc := NewCartService()
	svc.Add(sess, shirtLine(), 2)

	raw, ok := sess.Get("cart")
	require.True(t, ok)
	roundTripped := jsonRoundTrip(t, raw)
	sess.Set("cart", roundTripped)

	sum := svc.Summary(sess)
	require.Len(t, sum.Items, 1)
	assert.Equal(t, "10-101", sum.Items[0].Line.ID)
	assert.Equal(t, 50.0, sum.Subtotal)
}
