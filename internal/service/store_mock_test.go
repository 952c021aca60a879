package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

// memData is the shared state behind memStore. WithTx holds mu for the
// whole callback, which gives transactions serializable semantics.
type memData struct {
	mu       sync.Mutex
	nextID   int64
	products map[int64]*domain.Product
	carts    map[string]*domain.Cart
	items    map[int64]*domain.CartItem
	users    map[int64]*domain.User

	createCalls int
}

type memStore struct {
	data *memData
	inTx bool
}

func newMemStore() *memStore {
	return &memStore{data: &memData{
		products: make(map[int64]*domain.Product),
		carts:    make(map[string]*domain.Cart),
		items:    make(map[int64]*domain.CartItem),
		users:    make(map[int64]*domain.User),
	}}
}

func (s *memStore) do(fn func(d *memData)) {
	if !s.inTx {
		s.data.mu.Lock()
		defer s.data.mu.Unlock()
	}
	fn(s.data)
}

func (d *memData) id() int64 {
	d.nextID++
	return d.nextID
}

func (s *memStore) Products() repository.ProductRepository   { return memProducts{s} }
func (s *memStore) Categories() repository.CategoryRepository { return memCategories{s} }
func (s *memStore) Carts() repository.CartRepository         { return memCarts{s} }
func (s *memStore) Users() repository.UserRepository         { return memUsers{s} }

func (s *memStore) WithTx(ctx context.Context, fn func(repository.Store) error) error {
	if s.inTx {
		return fn(s)
	}
	s.data.mu.Lock()
	defer s.data.mu.Unlock()
	return fn(&memStore{data: s.data, inTx: true})
}

func (s *memStore) addProduct(p domain.Product) *domain.Product {
	var out *domain.Product
	s.do(func(d *memData) {
		p.ID = d.id()
		out = &p
		d.products[p.ID] = out
	})
	return out
}

type memProducts struct{ s *memStore }

func (r memProducts) Create(ctx context.Context, product *domain.Product) error {
	created := r.s.addProduct(*product)
	product.ID = created.ID
	return nil
}

func (r memProducts) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	var out *domain.Product
	r.s.do(func(d *memData) {
		if p, ok := d.products[id]; ok {
			cp := *p
			out = &cp
		}
	})
	if out == nil {
		return nil, domain.ErrProductNotFound
	}
	return out, nil
}

func (r memProducts) List(ctx context.Context, q domain.ProductQuery) ([]*domain.Product, int, error) {
	var all []*domain.Product
	r.s.do(func(d *memData) {
		for _, p := range d.products {
			if q.Filter.Category != "" && p.Category != q.Filter.Category {
				continue
			}
			cp := *p
			all = append(all, &cp)
		}
	})
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	total := len(all)
	if q.Offset >= total {
		return []*domain.Product{}, total, nil
	}
	end := q.Offset + q.Limit
	if end > total {
		end = total
	}
	return all[q.Offset:end], total, nil
}

func (r memProducts) Count(ctx context.Context) (int, error) {
	var n int
	r.s.do(func(d *memData) { n = len(d.products) })
	return n, nil
}

type memCategories struct{ s *memStore }

func (r memCategories) List(ctx context.Context) ([]domain.Category, error) {
	counts := map[string]int{}
	r.s.do(func(d *memData) {
		for _, p := range d.products {
			counts[p.Category]++
		}
	})
	out := make([]domain.Category, 0, len(counts))
	for name, n := range counts {
		out = append(out, domain.Category{Name: name, ProductCount: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type memCarts struct{ s *memStore }

func (r memCarts) FindBySession(ctx context.Context, sessionID string) (*domain.Cart, error) {
	var out *domain.Cart
	r.s.do(func(d *memData) {
		if c, ok := d.carts[sessionID]; ok {
			cp := *c
			out = &cp
		}
	})
	if out == nil {
		return nil, domain.ErrCartNotFound
	}
	return out, nil
}

func (r memCarts) Create(ctx context.Context, sessionID string) (*domain.Cart, error) {
	var out *domain.Cart
	var err error
	r.s.do(func(d *memData) {
		d.createCalls++
		if _, ok := d.carts[sessionID]; ok {
			err = repository.ErrCartExists
			return
		}
		c := &domain.Cart{ID: d.id(), SessionID: sessionID}
		d.carts[sessionID] = c
		cp := *c
		out = &cp
	})
	return out, err
}

func (r memCarts) AddItem(ctx context.Context, cartID, productID int64, quantity int) (*domain.CartItem, error) {
	var out *domain.CartItem
	var err error
	r.s.do(func(d *memData) {
		if _, ok := d.products[productID]; !ok {
			err = domain.ErrProductNotFound
			return
		}
		for _, it := range d.items {
			if it.CartID == cartID && it.ProductID == productID {
				it.Quantity += quantity
				cp := *it
				out = &cp
				return
			}
		}
		it := &domain.CartItem{ID: d.id(), CartID: cartID, ProductID: productID, Quantity: quantity}
		d.items[it.ID] = it
		cp := *it
		out = &cp
	})
	return out, err
}

func (r memCarts) UpdateItemQuantity(ctx context.Context, itemID, cartID int64, quantity int) (*domain.CartItem, error) {
	var out *domain.CartItem
	r.s.do(func(d *memData) {
		if it, ok := d.items[itemID]; ok && it.CartID == cartID {
			it.Quantity = quantity
			cp := *it
			out = &cp
		}
	})
	if out == nil {
		return nil, domain.ErrCartItemNotFound
	}
	return out, nil
}

func (r memCarts) DeleteItem(ctx context.Context, itemID, cartID int64) error {
	found := false
	r.s.do(func(d *memData) {
		if it, ok := d.items[itemID]; ok && it.CartID == cartID {
			delete(d.items, itemID)
			found = true
		}
	})
	if !found {
		return domain.ErrCartItemNotFound
	}
	return nil
}

func (r memCarts) ListLines(ctx context.Context, cartID int64) ([]domain.CartLine, error) {
	var lines []domain.CartLine
	r.s.do(func(d *memData) {
		for _, it := range d.items {
			if it.CartID != cartID {
				continue
			}
			lines = append(lines, domain.CartLine{Item: *it, Product: *d.products[it.ProductID]})
		}
	})
	sort.Slice(lines, func(i, j int) bool { return lines[i].Item.ID < lines[j].Item.ID })
	return lines, nil
}

type memUsers struct{ s *memStore }

func (r memUsers) Create(ctx context.Context, email, passwordHash string) (*domain.User, error) {
	var out *domain.User
	var err error
	r.s.do(func(d *memData) {
		for _, u := range d.users {
			if u.Email == email {
				err = domain.ErrEmailTaken
				return
			}
		}
		u := &domain.User{ID: d.id(), Email: email, PasswordHash: passwordHash, CreatedAt: time.Now()}
		d.users[u.ID] = u
		cp := *u
		out = &cp
	})
	return out, err
}

func (r memUsers) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var out *domain.User
	r.s.do(func(d *memData) {
		for _, u := range d.users {
			if u.Email == email {
				cp := *u
				out = &cp
			}
		}
	})
	if out == nil {
		return nil, domain.ErrUserNotFound
	}
	return out, nil
}

func (r memUsers) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	var out *domain.User
	r.s.do(func(d *memData) {
		if u, ok := d.users[id]; ok {
			cp := *u
			out = &cp
		}
	})
	if out == nil {
		return nil, domain.ErrUserNotFound
	}
	return out, nil
}
