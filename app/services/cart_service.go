// Package services holds the business logic sitting between the HTTP
// controllers and the catalog client / detail views.
package services

import (
	"encoding/json"

	"github.com/shashiranjanraj/vitrine/app/models"
	"github.com/shashiranjanraj/vitrine/config"
	"github.com/shashiranjanraj/vitrine/pkg/metrics"
	"github.com/shashiranjanraj/vitrine/pkg/session"
)

const cartKey = "cart"

// CartService manages the session-scoped shopping cart. The cart holds
// line descriptors produced by the detail view; lines with the same ID
// merge by quantity.
type CartService struct{}

func NewCartService() *CartService { return &CartService{} }

// Add merges the line into the cart. Quantities of an existing line
// accumulate but never exceed the line's stock bound.
func (s *CartService) Add(sess *session.Session, line models.CartLine, qty int) models.CartSummary {
	if qty < 1 {
		qty = 1
	}
	items := s.items(sess)

	merged := false
	for i := range items {
		if items[i].Line.ID == line.ID {
			items[i].Line = line // newest descriptor wins (price may have moved)
			items[i].Quantity += qty
			if line.Stock != nil && items[i].Quantity > *line.Stock {
				items[i].Quantity = *line.Stock
			}
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, models.CartItem{Line: line, Quantity: qty})
	}

	s.put(sess, items)
	metrics.RecordCartAdd("ok")
	return summarize(items)
}

// Remove drops the line with the given ID.
func (s *CartService) Remove(sess *session.Session, lineID string) models.CartSummary {
	items := s.items(sess)
	kept := items[:0]
	for _, it := range items {
		if it.Line.ID != lineID {
			kept = append(kept, it)
		}
	}
	s.put(sess, kept)
	return summarize(kept)
}

// SetQuantity overwrites the quantity of an existing line, clamped to
// [1, stock]. Unknown line IDs are ignored.
func (s *CartService) SetQuantity(sess *session.Session, lineID string, qty int) models.CartSummary {
	items := s.items(sess)
	for i := range items {
		if items[i].Line.ID != lineID {
			continue
		}
		if qty < 1 {
			qty = 1
		}
		if st := items[i].Line.Stock; st != nil && qty > *st {
			qty = *st
		}
		items[i].Quantity = qty
		break
	}
	s.put(sess, items)
	return summarize(items)
}

// Summary returns the current cart with totals.
func (s *CartService) Summary(sess *session.Session) models.CartSummary {
	return summarize(s.items(sess))
}

// Clear empties the cart.
func (s *CartService) Clear(sess *session.Session) {
	sess.Delete(cartKey)
}

// items decodes the cart out of the session. Session values round-trip
// through JSON, so the stored slice comes back as []interface{} and is
// re-marshalled into the typed shape.
func (s *CartService) items(sess *session.Session) []models.CartItem {
	raw, ok := sess.Get(cartKey)
	if !ok {
		return nil
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return nil
	}
	var items []models.CartItem
	if err := json.Unmarshal(b, &items); err != nil {
		return nil
	}
	return items
}

func (s *CartService) put(sess *session.Session, items []models.CartItem) {
	sess.Set(cartKey, items)
}

func summarize(items []models.CartItem) models.CartSummary {
	sum := models.CartSummary{
		Items:    items,
		Currency: config.Currency(),
	}
	if items == nil {
		sum.Items = []models.CartItem{}
	}
	for _, it := range items {
		sum.TotalItems += it.Quantity
		sum.Subtotal += it.Total()
		if it.Line.Currency != "" {
			sum.Currency = it.Line.Currency
		}
	}
	return sum
}
