package services

import (
	"context"
	"strings"

	"github.com/shashiranjanraj/vitrine/app/catalog"
	"github.com/shashiranjanraj/vitrine/app/models"
	"github.com/shashiranjanraj/vitrine/pkg/collection"
	"github.com/shashiranjanraj/vitrine/pkg/response"
)

// ListingService applies category filtering, search, sorting and
// pagination on top of the cached upstream product list.
type ListingService struct {
	client *catalog.Client
}

func NewListingService(client *catalog.Client) *ListingService {
	return &ListingService{client: client}
}

// List returns one page of products plus pagination metadata.
func (s *ListingService) List(ctx context.Context, p catalog.ListParams) ([]models.BaseProduct, response.Pagination, error) {
	products, err := s.client.Products(ctx)
	if err != nil {
		return nil, response.Pagination{}, err
	}

	if p.Category != "" {
		products = collection.Filter(products, func(pr models.BaseProduct) bool {
			return pr.Category != nil && pr.Category.Slug == p.Category
		})
	}

	if q := strings.ToLower(strings.TrimSpace(p.Search)); q != "" {
		products = collection.Filter(products, func(pr models.BaseProduct) bool {
			return strings.Contains(strings.ToLower(pr.Name), q) ||
				strings.Contains(strings.ToLower(pr.Description), q)
		})
	}

	switch p.Sort {
	case "price_asc":
		products = collection.SortBy(products, func(a, b models.BaseProduct) bool {
			return a.SellingPrice < b.SellingPrice
		})
	case "price_desc":
		products = collection.SortBy(products, func(a, b models.BaseProduct) bool {
			return a.SellingPrice > b.SellingPrice
		})
	case "name":
		products = collection.SortBy(products, func(a, b models.BaseProduct) bool {
			return a.Name < b.Name
		})
	}

	page, perPage := p.Page, p.PerPage
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 24
	}

	total := len(products)
	paged := collection.Paginate(products, page, perPage)
	totalPages := (total + perPage - 1) / perPage

	return paged, response.Pagination{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

// Categories proxies the cached category list.
func (s *ListingService) Categories(ctx context.Context) ([]models.Category, error) {
	return s.client.Categories(ctx)
}
