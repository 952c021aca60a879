package transport

import (
	"context"
	"sync"
	"time"

	"storefront/internal/domain"
	"storefront/internal/service"

	"github.com/shopspring/decimal"
)

type fakeCatalog struct {
	products   []*domain.Product
	lastQuery  domain.ProductQuery
	categories []domain.Category
	err        error
}

func (f *fakeCatalog) List(ctx context.Context, q domain.ProductQuery) (*service.ProductPage, error) {
	f.lastQuery = q
	if f.err != nil {
		return nil, f.err
	}
	end := q.Offset + q.Limit
	if end > len(f.products) {
		end = len(f.products)
	}
	page := []*domain.Product{}
	if q.Offset < end {
		page = f.products[q.Offset:end]
	}
	return &service.ProductPage{Products: page, Count: len(f.products), Limit: q.Limit, Offset: q.Offset}, nil
}

func (f *fakeCatalog) Get(ctx context.Context, id int64) (*domain.Product, error) {
	for _, p := range f.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func (f *fakeCatalog) Categories(ctx context.Context) ([]domain.Category, error) {
	return f.categories, f.err
}

func catalogOf(n int) *fakeCatalog {
	f := &fakeCatalog{}
	for i := 1; i <= n; i++ {
		desc := "description"
		f.products = append(f.products, &domain.Product{
			ID:          int64(i),
			Name:        "Product",
			Description: &desc,
			Price:       decimal.RequireFromString("9.9"),
			Category:    "misc",
		})
	}
	return f
}

// fakeCarts records the calls it receives and returns a fixed view
type fakeCarts struct {
	mu       sync.Mutex
	sessions []string
	lastQty  int
	lastID   int64
	view     *domain.CartView
	err      error
}

func (f *fakeCarts) record(sessionID string) (*domain.CartView, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions = append(f.sessions, sessionID)
	if f.err != nil {
		return nil, f.err
	}
	return f.view, nil
}

func (f *fakeCarts) GetCart(ctx context.Context, sessionID string) (*domain.CartView, error) {
	return f.record(sessionID)
}

func (f *fakeCarts) GetOrCreate(ctx context.Context, sessionID string) (*domain.Cart, error) {
	return &domain.Cart{ID: 1, SessionID: sessionID}, nil
}

func (f *fakeCarts) AddItem(ctx context.Context, sessionID string, productID int64, quantity int) (*domain.CartView, error) {
	f.lastID, f.lastQty = productID, quantity
	return f.record(sessionID)
}

func (f *fakeCarts) UpdateItem(ctx context.Context, sessionID string, itemID int64, quantity int) (*domain.CartView, error) {
	f.lastID, f.lastQty = itemID, quantity
	return f.record(sessionID)
}

func (f *fakeCarts) RemoveItem(ctx context.Context, sessionID string, itemID int64) (*domain.CartView, error) {
	f.lastID = itemID
	return f.record(sessionID)
}

type fakeAccounts struct {
	users    map[string]*domain.User
	password map[string]string
	tokens   map[string]*domain.User
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{
		users:    map[string]*domain.User{},
		password: map[string]string{},
		tokens:   map[string]*domain.User{},
	}
}

func (f *fakeAccounts) Register(ctx context.Context, email, password string) (*domain.User, error) {
	if _, ok := f.users[email]; ok {
		return nil, domain.ErrEmailTaken
	}
	u := &domain.User{ID: int64(len(f.users) + 1), Email: email, CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	f.users[email] = u
	f.password[email] = password
	return u, nil
}

func (f *fakeAccounts) Login(ctx context.Context, email, password string) (string, error) {
	u, ok := f.users[email]
	if !ok || f.password[email] != password {
		return "", domain.ErrInvalidCredentials
	}
	token := "token-for-" + email
	f.tokens[token] = u
	return token, nil
}

func (f *fakeAccounts) Whoami(ctx context.Context, token string) (*domain.User, error) {
	u, ok := f.tokens[token]
	if !ok {
		return nil, domain.ErrInvalidToken
	}
	return u, nil
}

// VerifyToken lets fakeAccounts stand in as the middleware's verifier
func (f *fakeAccounts) VerifyToken(token string) (string, bool) {
	u, ok := f.tokens[token]
	if !ok {
		return "", false
	}
	return u.Email, true
}
