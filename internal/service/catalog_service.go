package service

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"storefront/internal/domain"
	"storefront/internal/repository"

	"github.com/shopspring/decimal"
)

// ProductPage is one page of a catalog listing
type ProductPage struct {
	Products []*domain.Product
	Count    int
	Limit    int
	Offset   int
}

// CatalogService defines the read-only catalog query operations
type CatalogService interface {
	List(ctx context.Context, query domain.ProductQuery) (*ProductPage, error)
	Get(ctx context.Context, id int64) (*domain.Product, error)
	Categories(ctx context.Context) ([]domain.Category, error)
}

type catalogService struct {
	store repository.Store
}

// NewCatalogService creates a new instance of CatalogService
func NewCatalogService(store repository.Store) CatalogService {
	return &catalogService{store: store}
}

// List returns the requested page and the size of the whole filtered set
func (s *catalogService) List(ctx context.Context, query domain.ProductQuery) (*ProductPage, error) {
	if query.Limit < domain.MinLimit || query.Limit > domain.MaxLimit {
		return nil, domain.ErrInvalidLimit
	}
	if query.Offset < 0 {
		return nil, domain.ErrInvalidOffset
	}

	products, total, err := s.store.Products().List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return &ProductPage{
		Products: products,
		Count:    total,
		Limit:    query.Limit,
		Offset:   query.Offset,
	}, nil
}

// Get returns a single product or domain.ErrProductNotFound
func (s *catalogService) Get(ctx context.Context, id int64) (*domain.Product, error) {
	return s.store.Products().FindByID(ctx, id)
}

// Categories returns the distinct product categories
func (s *catalogService) Categories(ctx context.Context) ([]domain.Category, error) {
	return s.store.Categories().List(ctx)
}

// ParseProductQuery reads listing parameters from a query string.
//
// limit and offset are validated strictly. Malformed price bounds are
// dropped rather than rejected so the catalog stays browsable; an unknown
// sort field falls back to id and any order other than "desc" is ascending.
func ParseProductQuery(values url.Values) (domain.ProductQuery, error) {
	q := domain.ProductQuery{
		Filter: domain.ProductFilter{
			Category: values.Get("category"),
			Search:   values.Get("search"),
		},
		SortBy:    domain.ParseSortField(values.Get("sort_by")),
		SortOrder: domain.SortOrderAsc,
		Limit:     domain.DefaultLimit,
	}

	if strings.EqualFold(values.Get("sort_order"), "desc") {
		q.SortOrder = domain.SortOrderDesc
	}

	if raw := values.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < domain.MinLimit || limit > domain.MaxLimit {
			return q, domain.ErrInvalidLimit
		}
		q.Limit = limit
	}

	if raw := values.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return q, domain.ErrInvalidOffset
		}
		q.Offset = offset
	}

	var err error
	if q.Filter.MinPrice, err = parsePriceBound(values.Get("min_price")); err != nil {
		return q, err
	}
	if q.Filter.MaxPrice, err = parsePriceBound(values.Get("max_price")); err != nil {
		return q, err
	}

	return q, nil
}

// parsePriceBound returns nil for absent or unparsable input
func parsePriceBound(raw string) (*decimal.Decimal, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return nil, nil
	}
	if d.IsNegative() {
		return nil, domain.ErrInvalidPrice
	}
	return &d, nil
}

// PageOffsets returns the offsets of the neighbouring pages, or nil where
// no such page exists
func PageOffsets(count, limit, offset int) (next, previous *int) {
	if offset+limit < count {
		n := offset + limit
		next = &n
	}
	if offset > 0 {
		p := offset - limit
		if p < 0 {
			p = 0
		}
		previous = &p
	}
	return next, previous
}
