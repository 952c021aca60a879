// Package seed loads the demo catalog and creates accounts from the command line.
package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storefront/internal/domain"
	"storefront/internal/repository"
	"storefront/internal/service"

	"github.com/shopspring/decimal"
)

// MinPasswordLength matches the registration endpoint
const MinPasswordLength = 6

func strPtr(s string) *string { return &s }

// DefaultCatalog is the demo product set
func DefaultCatalog() []domain.Product {
	item := func(name, description, price, image, category string) domain.Product {
		return domain.Product{
			Name:        name,
			Description: strPtr(description),
			Price:       decimal.RequireFromString(price),
			Image:       strPtr(image),
			Category:    category,
		}
	}

	return []domain.Product{
		item("Galaxy A54 Smartphone", "6.4\" AMOLED display, 128 GB, 5G.", "349.90",
			"https://images.unsplash.com/photo-1511707171634-5f897ff02aa9?w=400", "Electronics"),
		item("ThinkPad E15 Laptop", "15.6\" FHD, Ryzen 5, 8 GB RAM, 256 GB SSD.", "549.90",
			"https://images.unsplash.com/photo-1496181133206-80ce9b88a853?w=400", "Electronics"),
		item("Sony WH-1000XM5 Headphones", "Wireless headphones with noise cancelling.", "299.90",
			"https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=400", "Electronics"),
		item("Office Chair", "Lumbar support and height adjustment.", "129.90",
			"https://images.unsplash.com/photo-1580480055273-228ff5388ef8?w=400", "Furniture"),
		item("Writing Desk", "120x60 cm desk in solid oak.", "189.90",
			"https://images.unsplash.com/photo-1518455027359-f3f8164ba6bd?w=400", "Furniture"),
		item("LED Desk Lamp", "Adjustable brightness and colour temperature.", "34.90",
			"https://images.unsplash.com/photo-1507473885765-e6ed057f782c?w=400", "Lighting"),
		item("Interior Paint, White", "10 l water-based matte paint.", "45.00",
			"https://images.unsplash.com/photo-1562259949-e8e7689d7828?w=400", "Home Improvement"),
		item("Cordless Drill", "18 V, two batteries, carrying case.", "89.50",
			"https://images.unsplash.com/photo-1504148455328-c376907d081c?w=400", "Home Improvement"),
	}
}

// Products inserts products in one transaction unless the catalog already
// has rows. It returns the number of inserted products.
func Products(ctx context.Context, store repository.Store, products []domain.Product) (int, error) {
	inserted := 0
	err := store.WithTx(ctx, func(tx repository.Store) error {
		count, err := tx.Products().Count(ctx)
		if err != nil {
			return fmt.Errorf("failed to count products: %w", err)
		}
		if count > 0 {
			return nil
		}

		for i := range products {
			p := products[i]
			if err := tx.Products().Create(ctx, &p); err != nil {
				return fmt.Errorf("failed to insert %q: %w", p.Name, err)
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

// User creates an account. An already registered email is reported through
// created=false rather than as an error.
func User(ctx context.Context, accounts service.AccountService, email, password string) (user *domain.User, created bool, err error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, false, domain.InvalidInputf("email must not be empty")
	}
	if len(password) < MinPasswordLength {
		return nil, false, domain.InvalidInputf("password must be at least %d characters", MinPasswordLength)
	}

	user, err = accounts.Register(ctx, email, password)
	if errors.Is(err, domain.ErrEmailTaken) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return user, true, nil
}
