package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storefront/internal/domain"
	"storefront/internal/repository"

	"github.com/shopspring/decimal"
)

// maxCartCreateAttempts bounds the lookup/insert loop in GetOrCreate
const maxCartCreateAttempts = 3

// CartService defines the session cart operations. Every mutation runs in
// one transaction and returns the cart as re-read inside it.
type CartService interface {
	GetCart(ctx context.Context, sessionID string) (*domain.CartView, error)
	GetOrCreate(ctx context.Context, sessionID string) (*domain.Cart, error)
	AddItem(ctx context.Context, sessionID string, productID int64, quantity int) (*domain.CartView, error)
	UpdateItem(ctx context.Context, sessionID string, itemID int64, quantity int) (*domain.CartView, error)
	RemoveItem(ctx context.Context, sessionID string, itemID int64) (*domain.CartView, error)
}

type cartService struct {
	store repository.Store
}

// NewCartService creates a new instance of CartService
func NewCartService(store repository.Store) CartService {
	return &cartService{store: store}
}

// GetCart returns the session's cart, or the empty virtual cart if the
// session never added anything. It never creates a cart.
func (s *cartService) GetCart(ctx context.Context, sessionID string) (*domain.CartView, error) {
	if err := validateSession(sessionID); err != nil {
		return nil, err
	}

	cart, err := s.store.Carts().FindBySession(ctx, sessionID)
	if errors.Is(err, domain.ErrCartNotFound) {
		return domain.EmptyCartView(), nil
	}
	if err != nil {
		return nil, err
	}

	return loadView(ctx, s.store, cart.ID)
}

// GetOrCreate returns the session's cart, creating it on first use
func (s *cartService) GetOrCreate(ctx context.Context, sessionID string) (*domain.Cart, error) {
	if err := validateSession(sessionID); err != nil {
		return nil, err
	}

	var cart *domain.Cart
	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		var err error
		cart, err = getOrCreateCart(ctx, tx, sessionID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return cart, nil
}

// AddItem merge-adds quantity units of a product to the session's cart
func (s *cartService) AddItem(ctx context.Context, sessionID string, productID int64, quantity int) (*domain.CartView, error) {
	if err := validateSession(sessionID); err != nil {
		return nil, err
	}
	if !domain.ValidQuantity(quantity) {
		return nil, domain.ErrInvalidQuantity
	}
	if productID <= 0 {
		return nil, domain.ErrProductNotFound
	}

	var view *domain.CartView
	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		cart, err := getOrCreateCart(ctx, tx, sessionID)
		if err != nil {
			return err
		}

		if _, err := tx.Products().FindByID(ctx, productID); err != nil {
			return err
		}

		// The summed quantity is deliberately not re-clamped to 999
		if _, err := tx.Carts().AddItem(ctx, cart.ID, productID, quantity); err != nil {
			return err
		}

		view, err = loadView(ctx, tx, cart.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// UpdateItem overwrites the quantity of one item of the session's cart
func (s *cartService) UpdateItem(ctx context.Context, sessionID string, itemID int64, quantity int) (*domain.CartView, error) {
	if err := validateSession(sessionID); err != nil {
		return nil, err
	}
	if !domain.ValidQuantity(quantity) {
		return nil, domain.ErrInvalidQuantity
	}

	var view *domain.CartView
	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		cart, err := tx.Carts().FindBySession(ctx, sessionID)
		if err != nil {
			return err
		}

		if _, err := tx.Carts().UpdateItemQuantity(ctx, itemID, cart.ID, quantity); err != nil {
			return err
		}

		view, err = loadView(ctx, tx, cart.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// RemoveItem deletes one item of the session's cart
func (s *cartService) RemoveItem(ctx context.Context, sessionID string, itemID int64) (*domain.CartView, error) {
	if err := validateSession(sessionID); err != nil {
		return nil, err
	}

	var view *domain.CartView
	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		cart, err := tx.Carts().FindBySession(ctx, sessionID)
		if err != nil {
			return err
		}

		if err := tx.Carts().DeleteItem(ctx, itemID, cart.ID); err != nil {
			return err
		}

		view, err = loadView(ctx, tx, cart.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// getOrCreateCart looks the cart up and inserts it when absent. Losing the
// insert race to a concurrent request is not an error: the winner's row is
// read back instead.
func getOrCreateCart(ctx context.Context, store repository.Store, sessionID string) (*domain.Cart, error) {
	carts := store.Carts()

	for attempt := 0; attempt < maxCartCreateAttempts; attempt++ {
		cart, err := carts.FindBySession(ctx, sessionID)
		if err == nil {
			return cart, nil
		}
		if !errors.Is(err, domain.ErrCartNotFound) {
			return nil, err
		}

		cart, err = carts.Create(ctx, sessionID)
		if err == nil {
			return cart, nil
		}
		if !errors.Is(err, repository.ErrCartExists) {
			return nil, err
		}
	}

	return nil, fmt.Errorf("failed to resolve cart for session after %d attempts: %w",
		maxCartCreateAttempts, domain.ErrConflict)
}

func loadView(ctx context.Context, store repository.Store, cartID int64) (*domain.CartView, error) {
	lines, err := store.Carts().ListLines(ctx, cartID)
	if err != nil {
		return nil, err
	}
	return BuildCartView(cartID, lines), nil
}

// BuildCartView prices every line at its product's current price
func BuildCartView(cartID int64, lines []domain.CartLine) *domain.CartView {
	view := &domain.CartView{
		ID:    cartID,
		Items: make([]domain.CartItemView, 0, len(lines)),
		Total: decimal.Zero,
	}

	for _, line := range lines {
		subtotal := line.Product.Price.Mul(decimal.NewFromInt(int64(line.Item.Quantity)))
		view.Total = view.Total.Add(subtotal)
		view.Items = append(view.Items, domain.CartItemView{
			ID:           line.Item.ID,
			ProductID:    line.Item.ProductID,
			ProductName:  line.Product.Name,
			ProductPrice: line.Product.Price,
			ProductImage: line.Product.Image,
			Quantity:     line.Item.Quantity,
			Subtotal:     subtotal,
		})
	}

	return view
}

func validateSession(sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return domain.ErrMissingSession
	}
	if len(sessionID) > domain.MaxSessionIDLength {
		return domain.ErrSessionTooLong
	}
	return nil
}
