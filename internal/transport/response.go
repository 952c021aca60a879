package transport

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"storefront/internal/domain"

	"github.com/shopspring/decimal"
)

// Money is a decimal rendered as a JSON string with two fractional digits
type Money decimal.Decimal

// MarshalJSON implements json.Marshaler
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(decimal.Decimal(m).StringFixed(2))), nil
}

// ProductSummary is a product as it appears in a listing
type ProductSummary struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Price    Money   `json:"price"`
	Image    *string `json:"image"`
	Category string  `json:"category"`
}

// ProductDetail adds the description to ProductSummary
type ProductDetail struct {
	ProductSummary
	Description *string `json:"description"`
}

// ProductPageResponse is the paginated listing envelope
type ProductPageResponse struct {
	Count    int              `json:"count"`
	Next     *string          `json:"next"`
	Previous *string          `json:"previous"`
	Results  []ProductSummary `json:"results"`
}

// CategoryResponse is one entry of the category list
type CategoryResponse struct {
	Name         string `json:"name"`
	ProductCount int    `json:"product_count"`
}

// CartItemResponse is a priced cart line
type CartItemResponse struct {
	ID           int64   `json:"id"`
	ProductID    int64   `json:"product_id"`
	ProductName  string  `json:"product_name"`
	ProductPrice Money   `json:"product_price"`
	ProductImage *string `json:"product_image"`
	Quantity     int     `json:"quantity"`
	Subtotal     Money   `json:"subtotal"`
}

// CartResponse is the full priced cart
type CartResponse struct {
	ID    int64              `json:"id"`
	Items []CartItemResponse `json:"items"`
	Total Money              `json:"total"`
}

// UserResponse is the public view of an account
type UserResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// TokenResponse is returned by a successful login
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func toProductSummary(p *domain.Product) ProductSummary {
	return ProductSummary{
		ID:       p.ID,
		Name:     p.Name,
		Price:    Money(p.Price),
		Image:    p.Image,
		Category: p.Category,
	}
}

func toProductDetail(p *domain.Product) ProductDetail {
	return ProductDetail{
		ProductSummary: toProductSummary(p),
		Description:    p.Description,
	}
}

func toCartResponse(view *domain.CartView) CartResponse {
	resp := CartResponse{
		ID:    view.ID,
		Items: make([]CartItemResponse, 0, len(view.Items)),
		Total: Money(view.Total),
	}
	for _, item := range view.Items {
		resp.Items = append(resp.Items, CartItemResponse{
			ID:           item.ID,
			ProductID:    item.ProductID,
			ProductName:  item.ProductName,
			ProductPrice: Money(item.ProductPrice),
			ProductImage: item.ProductImage,
			Quantity:     item.Quantity,
			Subtotal:     Money(item.Subtotal),
		})
	}
	return resp
}

func toUserResponse(u *domain.User) UserResponse {
	return UserResponse{ID: u.ID, Email: u.Email, CreatedAt: u.CreatedAt}
}

// pageURL returns the absolute URL of the current request with offset replaced
func pageURL(r *http.Request, offset int) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme, _, _ = strings.Cut(proto, ",")
		scheme = strings.TrimSpace(scheme)
	}

	query := r.URL.Query()
	query.Set("offset", strconv.Itoa(offset))

	u := url.URL{
		Scheme:   scheme,
		Host:     r.Host,
		Path:     r.URL.Path,
		RawQuery: query.Encode(),
	}
	return u.String()
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, domain.InvalidInputf("invalid id %q", raw)
	}
	return id, nil
}
