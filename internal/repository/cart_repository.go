package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storefront/internal/domain"
)

// ErrCartExists is returned by Create when another request already created
// the cart for the session
var ErrCartExists = errors.New("cart for session already exists")

// CartRepository defines the interface for cart and cart item data access
type CartRepository interface {
	FindBySession(ctx context.Context, sessionID string) (*domain.Cart, error)
	Create(ctx context.Context, sessionID string) (*domain.Cart, error)
	AddItem(ctx context.Context, cartID, productID int64, quantity int) (*domain.CartItem, error)
	UpdateItemQuantity(ctx context.Context, itemID, cartID int64, quantity int) (*domain.CartItem, error)
	DeleteItem(ctx context.Context, itemID, cartID int64) error
	ListLines(ctx context.Context, cartID int64) ([]domain.CartLine, error)
}

type cartRepository struct {
	db DBTX
}

// NewCartRepository creates a new instance of CartRepository
func NewCartRepository(db DBTX) CartRepository {
	return &cartRepository{db: db}
}

// FindBySession retrieves the cart owned by a session
func (r *cartRepository) FindBySession(ctx context.Context, sessionID string) (*domain.Cart, error) {
	query := `SELECT id, session_id FROM carts WHERE session_id = $1`

	cart := &domain.Cart{}
	err := r.db.QueryRowContext(ctx, query, sessionID).Scan(&cart.ID, &cart.SessionID)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCartNotFound
		}
		return nil, fmt.Errorf("failed to find cart by session: %w", err)
	}

	return cart, nil
}

// Create inserts the cart for a session. If a cart for the session already
// exists, nothing is written and ErrCartExists is returned.
func (r *cartRepository) Create(ctx context.Context, sessionID string) (*domain.Cart, error) {
	query := `
		INSERT INTO carts (session_id)
		VALUES ($1)
		ON CONFLICT (session_id) DO NOTHING
		RETURNING id, session_id
	`

	cart := &domain.Cart{}
	err := r.db.QueryRowContext(ctx, query, sessionID).Scan(&cart.ID, &cart.SessionID)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isUniqueViolation(err) {
			return nil, ErrCartExists
		}
		return nil, fmt.Errorf("failed to create cart: %w", err)
	}

	return cart, nil
}

// AddItem merge-adds a product into a cart in a single statement: a new
// line is created, or the existing line's quantity is incremented.
func (r *cartRepository) AddItem(ctx context.Context, cartID, productID int64, quantity int) (*domain.CartItem, error) {
	query := `
		INSERT INTO cart_items (cart_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (cart_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
		RETURNING id, cart_id, product_id, quantity
	`

	item := &domain.CartItem{}
	err := r.db.QueryRowContext(ctx, query, cartID, productID, quantity).Scan(
		&item.ID,
		&item.CartID,
		&item.ProductID,
		&item.Quantity,
	)

	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to add cart item: %w", err)
	}

	return item, nil
}

// UpdateItemQuantity overwrites the quantity of an item that belongs to the cart
func (r *cartRepository) UpdateItemQuantity(ctx context.Context, itemID, cartID int64, quantity int) (*domain.CartItem, error) {
	query := `
		UPDATE cart_items
		SET quantity = $3
		WHERE id = $1 AND cart_id = $2
		RETURNING id, cart_id, product_id, quantity
	`

	item := &domain.CartItem{}
	err := r.db.QueryRowContext(ctx, query, itemID, cartID, quantity).Scan(
		&item.ID,
		&item.CartID,
		&item.ProductID,
		&item.Quantity,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCartItemNotFound
		}
		return nil, fmt.Errorf("failed to update cart item: %w", err)
	}

	return item, nil
}

// DeleteItem removes an item that belongs to the cart
func (r *cartRepository) DeleteItem(ctx context.Context, itemID, cartID int64) error {
	query := `DELETE FROM cart_items WHERE id = $1 AND cart_id = $2`

	result, err := r.db.ExecContext(ctx, query, itemID, cartID)
	if err != nil {
		return fmt.Errorf("failed to delete cart item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return domain.ErrCartItemNotFound
	}

	return nil
}

// ListLines loads every item of the cart joined with its product in one query
func (r *cartRepository) ListLines(ctx context.Context, cartID int64) ([]domain.CartLine, error) {
	query := `
		SELECT ci.id, ci.cart_id, ci.product_id, ci.quantity,
		       p.id, p.name, p.description, p.price, p.image, p.category
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = $1
		ORDER BY ci.id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, cartID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart lines: %w", err)
	}
	defer rows.Close()

	lines := []domain.CartLine{}
	for rows.Next() {
		var line domain.CartLine
		err := rows.Scan(
			&line.Item.ID,
			&line.Item.CartID,
			&line.Item.ProductID,
			&line.Item.Quantity,
			&line.Product.ID,
			&line.Product.Name,
			&line.Product.Description,
			&line.Product.Price,
			&line.Product.Image,
			&line.Product.Category,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cart line: %w", err)
		}
		lines = append(lines, line)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cart lines: %w", err)
	}

	return lines, nil
}
