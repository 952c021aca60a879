package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"storefront/internal/domain"
)

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
	List(ctx context.Context, query domain.ProductQuery) ([]*domain.Product, int, error)
	Count(ctx context.Context) (int, error)
}

type productRepository struct {
	db DBTX
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(db DBTX) ProductRepository {
	return &productRepository{db: db}
}

const productColumns = `id, name, description, price, image, category`

// sortColumns whitelists ORDER BY targets
var sortColumns = map[domain.SortField]string{
	domain.SortByID:    "id",
	domain.SortByName:  "name",
	domain.SortByPrice: "price",
}

// Create inserts a new product and fills in its generated ID
func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (name, description, price, image, category)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		product.Name,
		product.Description,
		product.Price,
		product.Image,
		product.Category,
	).Scan(&product.ID)

	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

// FindByID retrieves a product by ID
func (r *productRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	product := &domain.Product{}
	err := scanProduct(r.db.QueryRowContext(ctx, query, id), product)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}

	return product, nil
}

// List returns one page of products matching the filter together with the
// number of matches before pagination. Both queries share one WHERE clause.
func (r *productRepository) List(ctx context.Context, q domain.ProductQuery) ([]*domain.Product, int, error) {
	whereClause, args := buildProductWhere(q.Filter)

	countQuery := "SELECT COUNT(*) FROM products" + whereClause
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	column, ok := sortColumns[q.SortBy]
	if !ok {
		column = "id"
	}
	order := domain.SortOrderAsc
	if q.SortOrder == domain.SortOrderDesc {
		order = domain.SortOrderDesc
	}
	orderBy := fmt.Sprintf("%s %s", column, order)
	if column != "id" {
		// equal keys must not shuffle between pages
		orderBy += ", id ASC"
	}

	argIndex := len(args) + 1
	query := fmt.Sprintf(`
		SELECT %s
		FROM products%s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, productColumns, whereClause, orderBy, argIndex, argIndex+1)

	args = append(args, q.Limit, q.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []*domain.Product{}
	for rows.Next() {
		product := &domain.Product{}
		if err := scanProduct(rows, product); err != nil {
			return nil, 0, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating products: %w", err)
	}

	return products, total, nil
}

// Count returns the number of products in the catalog
func (r *productRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return total, nil
}

// buildProductWhere turns the filter into a parameterized WHERE clause.
// Predicates are ANDed; the search term matches name OR description.
func buildProductWhere(f domain.ProductFilter) (string, []interface{}) {
	conditions := []string{}
	args := []interface{}{}

	next := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Category != "" {
		conditions = append(conditions, "category = "+next(f.Category))
	}
	if f.MinPrice != nil {
		conditions = append(conditions, "price >= "+next(*f.MinPrice))
	}
	if f.MaxPrice != nil {
		conditions = append(conditions, "price <= "+next(*f.MaxPrice))
	}
	if f.Search != "" {
		p := next("%" + escapeLike(f.Search) + "%")
		conditions = append(conditions, fmt.Sprintf("(name ILIKE %s OR description ILIKE %s)", p, p))
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes the search term match literally
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner, product *domain.Product) error {
	return row.Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.Price,
		&product.Image,
		&product.Category,
	)
}
