// Package catalog talks to the upstream product API. It is the only
// place that knows upstream URLs and payload quirks; the rest of the
// storefront works with the models package.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shashiranjanraj/vitrine/app/models"
	"github.com/shashiranjanraj/vitrine/config"
	"github.com/shashiranjanraj/vitrine/pkg/cache"
	"github.com/shashiranjanraj/vitrine/pkg/httpclient"
	"github.com/shashiranjanraj/vitrine/pkg/logger"
	"github.com/shashiranjanraj/vitrine/pkg/metrics"
)

var (
	// ErrNotFound means the upstream answered 404 for the resource.
	ErrNotFound = errors.New("catalog: not found")
	// ErrFetchFailed covers network errors and non-2xx answers other
	// than 404.
	ErrFetchFailed = errors.New("catalog: fetch failed")
)

const (
	listTTL     = 60 * time.Second
	categoryTTL = 5 * time.Minute
)

// Client fetches catalog data from the upstream API configured by
// API_BASE_URL.
type Client struct {
	base    string
	timeout time.Duration
}

func NewClient() *Client {
	return &Client{
		base:    config.APIBaseURL(),
		timeout: config.APITimeout(),
	}
}

// Product fetches a single base product. A 404 maps to ErrNotFound;
// any other failure maps to ErrFetchFailed. Both are terminal for the
// detail page.
func (c *Client) Product(ctx context.Context, id int64) (*models.BaseProduct, error) {
	start := time.Now()

	resp, err := httpclient.Get(fmt.Sprintf("%s/products/%d", c.base, id)).
		WithContext(ctx).
		Timeout(c.timeout).
		Send()
	if err != nil {
		metrics.ObserveUpstreamFetch("product", "error", start)
		return nil, fmt.Errorf("%w: product %d: %v", ErrFetchFailed, id, err)
	}
	if resp.StatusCode == http.StatusNotFound {
		metrics.ObserveUpstreamFetch("product", "not_found", start)
		return nil, fmt.Errorf("%w: product %d", ErrNotFound, id)
	}
	if !resp.OK() {
		metrics.ObserveUpstreamFetch("product", "error", start)
		return nil, fmt.Errorf("%w: product %d: status %d", ErrFetchFailed, id, resp.StatusCode)
	}

	var product models.BaseProduct
	if err := resp.JSON(&product); err != nil {
		metrics.ObserveUpstreamFetch("product", "error", start)
		return nil, fmt.Errorf("%w: product %d: %v", ErrFetchFailed, id, err)
	}
	if product.Currency == "" {
		product.Currency = config.Currency()
	}

	metrics.ObserveUpstreamFetch("product", "ok", start)
	return &product, nil
}

// Variants fetches the variant list for a product. Callers treat a
// failure here as non-fatal: the detail page degrades to a plain
// product without options.
func (c *Client) Variants(ctx context.Context, productID int64) ([]models.Variant, error) {
	start := time.Now()

	resp, err := httpclient.Get(fmt.Sprintf("%s/products/%d/variants", c.base, productID)).
		WithContext(ctx).
		Timeout(c.timeout).
		Send()
	if err != nil {
		metrics.ObserveUpstreamFetch("variants", "error", start)
		return nil, fmt.Errorf("%w: variants of %d: %v", ErrFetchFailed, productID, err)
	}
	if resp.StatusCode == http.StatusNotFound {
		// products without variants are a normal case
		metrics.ObserveUpstreamFetch("variants", "not_found", start)
		return nil, nil
	}
	if !resp.OK() {
		metrics.ObserveUpstreamFetch("variants", "error", start)
		return nil, fmt.Errorf("%w: variants of %d: status %d", ErrFetchFailed, productID, resp.StatusCode)
	}

	var variants []models.Variant
	if err := resp.JSON(&variants); err != nil {
		metrics.ObserveUpstreamFetch("variants", "error", start)
		return nil, fmt.Errorf("%w: variants of %d: %v", ErrFetchFailed, productID, err)
	}

	metrics.ObserveUpstreamFetch("variants", "ok", start)
	return variants, nil
}

// ListParams are the query parameters accepted by the product listing.
type ListParams struct {
	Category string
	Search   string
	Sort     string // price_asc | price_desc | name
	Page     int
	PerPage  int
}

// Products fetches the full product list, served from Redis when warm.
// Filtering, sorting and pagination happen in the listing service; the
// upstream endpoint returns everything.
func (c *Client) Products(ctx context.Context) ([]models.BaseProduct, error) {
	var cached []models.BaseProduct
	if cache.Get("catalog:products", &cached) {
		return cached, nil
	}

	start := time.Now()
	resp, err := httpclient.Get(c.base + "/products").
		WithContext(ctx).
		Timeout(c.timeout).
		Retry(2, 200*time.Millisecond).
		Send()
	if err != nil {
		metrics.ObserveUpstreamFetch("products", "error", start)
		return nil, fmt.Errorf("%w: products: %v", ErrFetchFailed, err)
	}
	if !resp.OK() {
		metrics.ObserveUpstreamFetch("products", "error", start)
		return nil, fmt.Errorf("%w: products: status %d", ErrFetchFailed, resp.StatusCode)
	}

	var products []models.BaseProduct
	if err := resp.JSON(&products); err != nil {
		metrics.ObserveUpstreamFetch("products", "error", start)
		return nil, fmt.Errorf("%w: products: %v", ErrFetchFailed, err)
	}
	metrics.ObserveUpstreamFetch("products", "ok", start)

	if err := cache.Set("catalog:products", products, listTTL); err != nil {
		logger.Warn("catalog: cache products", "error", err)
	}
	return products, nil
}

// Categories fetches the category tree, cached for a few minutes.
func (c *Client) Categories(ctx context.Context) ([]models.Category, error) {
	var cached []models.Category
	if cache.Get("catalog:categories", &cached) {
		return cached, nil
	}

	start := time.Now()
	resp, err := httpclient.Get(c.base + "/categories").
		WithContext(ctx).
		Timeout(c.timeout).
		Send()
	if err != nil {
		metrics.ObserveUpstreamFetch("categories", "error", start)
		return nil, fmt.Errorf("%w: categories: %v", ErrFetchFailed, err)
	}
	if !resp.OK() {
		metrics.ObserveUpstreamFetch("categories", "error", start)
		return nil, fmt.Errorf("%w: categories: status %d", ErrFetchFailed, resp.StatusCode)
	}

	var categories []models.Category
	if err := resp.JSON(&categories); err != nil {
		metrics.ObserveUpstreamFetch("categories", "error", start)
		return nil, fmt.Errorf("%w: categories: %v", ErrFetchFailed, err)
	}
	metrics.ObserveUpstreamFetch("categories", "ok", start)

	if err := cache.Set("catalog:categories", categories, categoryTTL); err != nil {
		logger.Warn("catalog: cache categories", "error", err)
	}
	return categories, nil
}

// Orders fetches completed orders within [from, to] from the upstream
// admin API. Used only by the sales reports.
func (c *Client) Orders(ctx context.Context, from, to time.Time) ([]models.Order, error) {
	q := url.Values{}
	q.Set("from", from.Format("2006-01-02"))
	q.Set("to", to.Format("2006-01-02"))

	start := time.Now()
	resp, err := httpclient.Get(c.base+"/admin/orders?"+q.Encode()).
		WithContext(ctx).
		Timeout(c.timeout).
		Retry(2, 200*time.Millisecond).
		Send()
	if err != nil {
		metrics.ObserveUpstreamFetch("orders", "error", start)
		return nil, fmt.Errorf("%w: orders: %v", ErrFetchFailed, err)
	}
	if !resp.OK() {
		metrics.ObserveUpstreamFetch("orders", "error", start)
		return nil, fmt.Errorf("%w: orders: status %d", ErrFetchFailed, resp.StatusCode)
	}

	var orders []models.Order
	if err := resp.JSON(&orders); err != nil {
		metrics.ObserveUpstreamFetch("orders", "error", start)
		return nil, fmt.Errorf("%w: orders: %v", ErrFetchFailed, err)
	}
	metrics.ObserveUpstreamFetch("orders", "ok", start)
	return orders, nil
}
