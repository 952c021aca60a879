package transport

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"storefront/internal/domain"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func productRouter(catalog *fakeCatalog) http.Handler {
	r := chi.NewRouter()
	NewProductHandler(catalog, zap.NewNop()).RegisterRoutes(r)
	return r
}

type pageBody struct {
	Count    int               `json:"count"`
	Next     *string           `json:"next"`
	Previous *string           `json:"previous"`
	Results  []json.RawMessage `json:"results"`
}

func getPage(t *testing.T, h http.Handler, target string, headers map[string]string) (int, pageBody) {
	t.Helper()
	req := httptest.NewRequest("GET", target, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var body pageBody
	if w.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	}
	return w.Code, body
}

func TestListProductsPaginationLinks(t *testing.T) {
	h := productRouter(catalogOf(25))

	code, body := getPage(t, h, "http://shop.test/api/products/?limit=10&offset=20&category=misc", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 25, body.Count)
	assert.Len(t, body.Results, 5)
	assert.Nil(t, body.Next, "last page has no next link")
	require.NotNil(t, body.Previous)

	prev, err := url.Parse(*body.Previous)
	require.NoError(t, err)
	assert.Equal(t, "http", prev.Scheme)
	assert.Equal(t, "shop.test", prev.Host)
	assert.Equal(t, "/api/products/", prev.Path)
	assert.Equal(t, "10", prev.Query().Get("offset"))
	assert.Equal(t, "10", prev.Query().Get("limit"))
	assert.Equal(t, "misc", prev.Query().Get("category"))

	code, body = getPage(t, h, "http://shop.test/api/products/?limit=10", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Nil(t, body.Previous, "first page has no previous link")
	require.NotNil(t, body.Next)
	next, err := url.Parse(*body.Next)
	require.NoError(t, err)
	assert.Equal(t, "10", next.Query().Get("offset"))
}

func TestListProductsHonoursForwardedProto(t *testing.T) {
	h := productRouter(catalogOf(3))

	_, body := getPage(t, h, "http://shop.test/api/products/?limit=1", map[string]string{"X-Forwarded-Proto": "https"})
	require.NotNil(t, body.Next)

	next, err := url.Parse(*body.Next)
	require.NoError(t, err)
	assert.Equal(t, "https", next.Scheme)
}

func TestListProductsResultShape(t *testing.T) {
	h := productRouter(catalogOf(1))

	_, body := getPage(t, h, "/api/products/", nil)
	require.Len(t, body.Results, 1)

	var item map[string]interface{}
	require.NoError(t, json.Unmarshal(body.Results[0], &item))
	assert.Equal(t, "9.90", item["price"], "prices are fixed two-digit strings")
	assert.NotContains(t, item, "description", "listings omit the description")
	assert.Contains(t, item, "image")
}

func TestListProductsQueryParsing(t *testing.T) {
	catalog := catalogOf(0)
	h := productRouter(catalog)

	code, _ := getPage(t, h, "/api/products/?sort_by=bogus&sort_order=DeSc&min_price=abc&max_price=5", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, domain.SortByID, catalog.lastQuery.SortBy)
	assert.Equal(t, domain.SortOrderDesc, catalog.lastQuery.SortOrder)
	assert.Nil(t, catalog.lastQuery.Filter.MinPrice)
	require.NotNil(t, catalog.lastQuery.Filter.MaxPrice)
	assert.Equal(t, "5", catalog.lastQuery.Filter.MaxPrice.String())

	for _, target := range []string{
		"/api/products/?limit=0",
		"/api/products/?limit=101",
		"/api/products/?offset=-5",
		"/api/products/?min_price=-1",
	} {
		code, _ := getPage(t, h, target, nil)
		assert.Equal(t, http.StatusBadRequest, code, target)
	}
}

func TestGetProduct(t *testing.T) {
	h := productRouter(catalogOf(2))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/api/products/2/", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var detail map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	assert.EqualValues(t, 2, detail["id"])
	assert.Equal(t, "description", detail["description"])

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/api/products/99/", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/api/products/abc/", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCategoriesAndInternalErrors(t *testing.T) {
	catalog := &fakeCatalog{categories: []domain.Category{{Name: "drinks", ProductCount: 3}}}
	h := productRouter(catalog)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/api/categories/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"name":"drinks","product_count":3}]`, w.Body.String())

	catalog.err = errors.New("db down")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/api/products/", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "db down")
}
