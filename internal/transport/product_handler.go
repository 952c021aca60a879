package transport

import (
	"net/http"

	"storefront/internal/middleware"
	"storefront/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ProductHandler handles HTTP requests for catalog reads
type ProductHandler struct {
	catalog service.CatalogService
	logger  *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(catalog service.CatalogService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// RegisterRoutes registers all catalog routes
func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{id}/", h.Get)
	})
	r.Get("/api/categories/", h.Categories)
}

// List handles the filtered, sorted, paginated product listing
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	query, err := service.ParseProductQuery(r.URL.Query())
	if err != nil {
		middleware.RespondWithDomainError(w, r, err, h.logger)
		return
	}

	page, err := h.catalog.List(r.Context(), query)
	if err != nil {
		middleware.RespondWithDomainError(w, r, err, h.logger)
		return
	}

	response := ProductPageResponse{
		Count:   page.Count,
		Results: make([]ProductSummary, 0, len(page.Products)),
	}
	for _, p := range page.Products {
		response.Results = append(response.Results, toProductSummary(p))
	}

	next, previous := service.PageOffsets(page.Count, page.Limit, page.Offset)
	if next != nil {
		u := pageURL(r, *next)
		response.Next = &u
	}
	if previous != nil {
		u := pageURL(r, *previous)
		response.Previous = &u
	}

	middleware.RespondWithJSON(w, http.StatusOK, response)
}

// Get handles a single product lookup
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithDomainError(w, r, err, h.logger)
		return
	}

	product, err := h.catalog.Get(r.Context(), id)
	if err != nil {
		middleware.RespondWithDomainError(w, r, err, h.logger)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, toProductDetail(product))
}

// Categories lists the distinct categories with their product counts
func (h *ProductHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.Categories(r.Context())
	if err != nil {
		middleware.RespondWithDomainError(w, r, err, h.logger)
		return
	}

	response := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		response = append(response, CategoryResponse{Name: c.Name, ProductCount: c.ProductCount})
	}

	middleware.RespondWithJSON(w, http.StatusOK, response)
}
