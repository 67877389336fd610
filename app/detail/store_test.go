package detail

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/vitrine/app/catalog"
	"github.com/shashiranjanraj/vitrine/app/models"
)

// fakeFetcher serves canned products and lets tests hold individual
// Product calls open to control completion order.
type fakeFetcher struct {
	mu       sync.Mutex
	products map[int64]*models.BaseProduct
	variants map[int64][]models.Variant
	gates    map[int64]chan struct{} // Product blocks until the gate closes
	started  chan int64

	variantErr error
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		products: map[int64]*models.BaseProduct{},
		variants: map[int64][]models.Variant{},
		gates:    map[int64]chan struct{}{},
		started:  make(chan int64, 16),
	}
}

func (f *fakeFetcher) add(p *models.BaseProduct, vs ...models.Variant) {
	f.products[p.ID] = p
	f.variants[p.ID] = vs
}

func (f *fakeFetcher) gate(id int64) chan struct{} {
	ch := make(chan struct{})
	f.gates[id] = ch
	return ch
}

func (f *fakeFetcher) Product(ctx context.Context, id int64) (*models.BaseProduct, error) {
	f.mu.Lock()
	gate := f.gates[id]
	p := f.products[id]
	f.mu.Unlock()

	f.started <- id
	if gate != nil {
		<-gate
	}
	if p == nil {
		return nil, catalog.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeFetcher) Variants(ctx context.Context, productID int64) ([]models.Variant, error) {
	if f.variantErr != nil {
		return nil, f.variantErr
	}
	return f.variants[productID], nil
}

func TestStoreLoad(t *testing.T) {
	f := newFakeFetcher()
	f.add(shirt(), shirtVariants()...)
	s := NewStore(f)

	d, err := s.Load(context.Background(), "sess-1", 10)
	require.NoError(t, err)
	assert.Equal(t, int64(10), d.ProductID)
	assert.Len(t, d.Options, 2)

	// subsequent operations run against the installed view
	err = s.Do("sess-1", func(v *View) error { return v.Select(101) })
	require.NoError(t, err)

	d, err = s.Display("sess-1")
	require.NoError(t, err)
	require.NotNil(t, d.VariantID)
	assert.Equal(t, int64(101), *d.VariantID)
}

func TestStoreLoadNotFound(t *testing.T) {
	f := newFakeFetcher()
	s := NewStore(f)

	_, err := s.Load(context.Background(), "sess-1", 404)
	assert.ErrorIs(t, err, catalog.ErrNotFound)

	_, err = s.Display("sess-1")
	assert.ErrorIs(t, err, ErrNoProduct)
}

func TestStoreVariantFailureDegrades(t *testing.T) {
	f := newFakeFetcher()
	f.add(shirt())
	f.variantErr = errors.New("upstream hiccup")
	s := NewStore(f)

	d, err := s.Load(context.Background(), "sess-1", 10)
	require.NoError(t, err, "variant failure must not sink the page")
	assert.Empty(t, d.Options)
	assert.Equal(t, 20.0, d.Price)
}

func TestStoreSupersededLoadIsDiscarded(t *testing.T) {
	f := newFakeFetcher()
	f.add(shirt())
	second := &models.BaseProduct{ID: 11, Name: "Hat", SellingPrice: 9, Stock: intp(2)}
	f.add(second)

	slow := f.gate(10)
	s := NewStore(f)

	type result struct {
		d   DisplayState
		err error
	}
	firstDone := make(chan result, 1)
	go func() {
		d, err := s.Load(context.Background(), "sess-1", 10)
		firstDone <- result{d, err}
	}()
	require.Equal(t, int64(10), <-f.started, "first load in flight")

	// shopper navigates away before the first load answers
	d, err := s.Load(context.Background(), "sess-1", 11)
	<-f.started
	require.NoError(t, err)
	assert.Equal(t, int64(11), d.ProductID)

	// now the slow first load completes and must be discarded
	close(slow)
	first := <-firstDone
	assert.ErrorIs(t, first.err, ErrSuperseded)

	got, err := s.Display("sess-1")
	require.NoError(t, err)
	assert.Equal(t, int64(11), got.ProductID, "stale result must not clobber the newer page")
}

func TestStoreSessionsAreIsolated(t *testing.T) {
	f := newFakeFetcher()
	f.add(shirt(), shirtVariants()...)
	s := NewStore(f)

	_, err := s.Load(context.Background(), "sess-a", 10)
	require.NoError(t, err)
	_, err = s.Load(context.Background(), "sess-b", 10)
	require.NoError(t, err)

	require.NoError(t, s.Do("sess-a", func(v *View) error { return v.Select(101) }))

	db, err := s.Display("sess-b")
	require.NoError(t, err)
	assert.Nil(t, db.VariantID, "selection in one session must not leak into another")
}

func TestStoreForget(t *testing.T) {
	f := newFakeFetcher()
	f.add(shirt())
	s := NewStore(f)

	_, err := s.Load(context.Background(), "sess-1", 10)
	require.NoError(t, err)

	s.Forget("sess-1")
	_, err = s.Display("sess-1")
	assert.ErrorIs(t, err, ErrNoProduct)
}

func TestStoreConcurrentOps(t *testing.T) {
	f := newFakeFetcher()
	f.add(shirt(), shirtVariants()...)
	s := NewStore(f)

	_, err := s.Load(context.Background(), "sess-1", 10)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_ = s.Do("sess-1", func(v *View) error {
					v.ChangeQuantity(1)
					v.ChangeQuantity(-1)
					return nil
				})
			}
		}()
	}

	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("store ops deadlocked")
	}

	d, err := s.Display("sess-1")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, d.Quantity, 1)
}
