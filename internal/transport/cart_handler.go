package transport

import (
	"net/http"

	"storefront/internal/domain"
	"storefront/internal/middleware"
	"storefront/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AddItemRequest represents the add-to-cart payload
type AddItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"required,gte=1,lte=999"`
}

// UpdateItemRequest represents the quantity overwrite payload
type UpdateItemRequest struct {
	Quantity int `json:"quantity" validate:"required,gte=1,lte=999"`
}

// CartHandler handles HTTP requests for session carts
type CartHandler struct {
	carts  service.CartService
	logger *zap.Logger
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(carts service.CartService, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		carts:  carts,
		logger: logger,
	}
}

// RegisterRoutes registers all cart routes. Every route requires X-Session-ID.
func (h *CartHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/cart", func(r chi.Router) {
		r.Use(middleware.RequireSession)
		r.Get("/", h.Get)
		r.Post("/", h.AddItem)
		r.Put("/{item_id}/", h.UpdateItem)
		r.Delete("/{item_id}/", h.RemoveItem)
	})
}

// Get returns the session's cart without creating it
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := middleware.GetSessionID(r.Context())

	view, err := h.carts.GetCart(r.Context(), sessionID)
	if err != nil {
		middleware.RespondWithDomainError(w, r, err, h.logger)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, toCartResponse(view))
}

// AddItem merge-adds a product to the session's cart
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := middleware.GetSessionID(r.Context())

	var req AddItemRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Add to cart validation failed", zap.Error(err))
		middleware.RespondWithDecodeError(w, err)
		return
	}

	view, err := h.carts.AddItem(r.Context(), sessionID, req.ProductID, req.Quantity)
	if err != nil {
		middleware.RespondWithDomainError(w, r, err, h.logger)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, toCartResponse(view))
}

// UpdateItem overwrites the quantity of a cart item
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := middleware.GetSessionID(r.Context())

	itemID, err := parseItemID(r)
	if err != nil {
		middleware.RespondWithDomainError(w, r, err, h.logger)
		return
	}

	var req UpdateItemRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Update cart item validation failed", zap.Error(err))
		middleware.RespondWithDecodeError(w, err)
		return
	}

	view, err := h.carts.UpdateItem(r.Context(), sessionID, itemID, req.Quantity)
	if err != nil {
		middleware.RespondWithDomainError(w, r, err, h.logger)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, toCartResponse(view))
}

// RemoveItem deletes a cart item
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := middleware.GetSessionID(r.Context())

	itemID, err := parseItemID(r)
	if err != nil {
		middleware.RespondWithDomainError(w, r, err, h.logger)
		return
	}

	view, err := h.carts.RemoveItem(r.Context(), sessionID, itemID)
	if err != nil {
		middleware.RespondWithDomainError(w, r, err, h.logger)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, toCartResponse(view))
}

func parseItemID(r *http.Request) (int64, error) {
	id, err := parseID(chi.URLParam(r, "item_id"))
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, domain.ErrCartItemNotFound
	}
	return id, nil
}
