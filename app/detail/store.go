package detail

import (
	"context"
	"errors"
	"sync"

	"github.com/shashiranjanraj/vitrine/app/catalog"
	"github.com/shashiranjanraj/vitrine/app/models"
	"github.com/shashiranjanraj/vitrine/pkg/logger"
)

// ErrSuperseded means a newer load for the same session started while
// this one was in flight; the result was discarded.
var ErrSuperseded = errors.New("detail: load superseded by a newer request")

// Fetcher is the slice of the catalog client the store needs.
type Fetcher interface {
	Product(ctx context.Context, id int64) (*models.BaseProduct, error)
	Variants(ctx context.Context, productID int64) ([]models.Variant, error)
}

var _ Fetcher = (*catalog.Client)(nil)

// Store holds one detail view per session and serializes all access to
// it. Loads are guarded by a per-session generation counter: when a
// shopper navigates to a second product before the first load finishes,
// only the newest load may install its result.
type Store struct {
	client Fetcher

	mu      sync.Mutex
	entries map[string]*entry
}

type entry struct {
	gen       uint64
	productID int64
	view      *View
}

func NewStore(client Fetcher) *Store {
	return &Store{
		client:  client,
		entries: make(map[string]*entry),
	}
}

// Load fetches the product and its variants and installs a fresh view
// for the session. The product fetch is terminal on failure; a variant
// fetch failure degrades to a view without options.
func (s *Store) Load(ctx context.Context, sessionID string, productID int64) (DisplayState, error) {
	s.mu.Lock()
	e, ok := s.entries[sessionID]
	if !ok {
		e = &entry{}
		s.entries[sessionID] = e
	}
	e.gen++
	token := e.gen
	s.mu.Unlock()

	product, perr := s.client.Product(ctx, productID)

	var variants []models.Variant
	if perr == nil {
		var verr error
		variants, verr = s.client.Variants(ctx, productID)
		if verr != nil {
			logger.WithCtx(ctx).Warn("detail: variant fetch failed, showing base product only",
				"product_id", productID, "error", verr)
			variants = nil
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if e.gen != token {
		return DisplayState{}, ErrSuperseded
	}
	if perr != nil {
		e.view = nil
		e.productID = 0
		return DisplayState{}, perr
	}

	e.productID = productID
	e.view = NewView(product, variants)
	return e.view.Display(), nil
}

// Do runs fn against the session's view while holding the store lock.
// Returns ErrNoProduct when the session has no loaded view.
func (s *Store) Do(sessionID string, fn func(*View) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[sessionID]
	if !ok || e.view == nil {
		return ErrNoProduct
	}
	return fn(e.view)
}

// Display returns the current display state for the session.
func (s *Store) Display(sessionID string) (DisplayState, error) {
	var d DisplayState
	err := s.Do(sessionID, func(v *View) error {
		d = v.Display()
		return nil
	})
	return d, err
}

// Forget drops the session's view, e.g. when the session is invalidated.
func (s *Store) Forget(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, sessionID)
}
