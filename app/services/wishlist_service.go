package services

import (
	"encoding/json"

	"github.com/shashiranjanraj/vitrine/pkg/session"
)

const wishlistKey = "wishlist"

// WishlistService keeps a session-scoped set of product IDs.
type WishlistService struct{}

func NewWishlistService() *WishlistService { return &WishlistService{} }

// Toggle adds the product when absent, removes it when present.
// Returns true when the product ended up on the list.
func (s *WishlistService) Toggle(sess *session.Session, productID int64) bool {
	ids := s.List(sess)
	for i, id := range ids {
		if id == productID {
			sess.Set(wishlistKey, append(ids[:i], ids[i+1:]...))
			return false
		}
	}
	sess.Set(wishlistKey, append(ids, productID))
	return true
}

// Has reports whether the product is wishlisted.
func (s *WishlistService) Has(sess *session.Session, productID int64) bool {
	for _, id := range s.List(sess) {
		if id == productID {
			return true
		}
	}
	return false
}

// List returns the wishlisted product IDs in insertion order.
func (s *WishlistService) List(sess *session.Session) []int64 {
	raw, ok := sess.Get(wishlistKey)
	if !ok {
		return nil
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return nil
	}
	var ids []int64
	if err := json.Unmarshal(b, &ids); err != nil {
		return nil
	}
	return ids
}
