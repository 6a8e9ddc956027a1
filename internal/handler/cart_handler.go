package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"cocodile/internal/cart"
	"cocodile/internal/middleware"
	"cocodile/internal/model"

	"github.com/rs/zerolog"
)

// CartHandler handles cart-related HTTP requests. The bearer token doubles
// as the cart key; carts are not tied to an authenticated identity beyond
// that.
type CartHandler struct {
	service *cart.Service
	logger  zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(service *cart.Service, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		logger:  logger.With().Str("handler", "cart").Logger(),
	}
}

// addItemRequest is the payload for POST /api/cart/items.
type addItemRequest struct {
	ProductID      string                `json:"productId"`
	Quantity       int                   `json:"quantity"`
	QuantityOption *model.QuantityOption `json:"quantityOption,omitempty"`
}

// updateQuantityRequest is the payload for PUT /api/cart/items/{id}.
type updateQuantityRequest struct {
	Quantity       int                   `json:"quantity"`
	QuantityOption *model.QuantityOption `json:"quantityOption,omitempty"`
}

// checkoutRequest is the payload for POST /api/cart/checkout.
type checkoutRequest struct {
	DeliveryDate *time.Time `json:"deliveryDate,omitempty"`
	Notes        string     `json:"notes,omitempty"`
}

// Get handles GET /api/cart requests.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	token, ok := h.token(w, r)
	if !ok {
		return
	}

	view, err := h.service.Get(r.Context(), token)
	if err != nil {
		writeDomainError(w, err, "failed to retrieve cart", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// AddItem handles POST /api/cart/items requests.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	token, ok := h.token(w, r)
	if !ok {
		return
	}

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	if req.ProductID == "" {
		writeError(w, http.StatusBadRequest, "product ID is required", h.logger)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	view, err := h.service.AddItem(r.Context(), token, req.ProductID, req.Quantity, req.QuantityOption)
	if err != nil {
		writeDomainError(w, err, "failed to add item to cart", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// UpdateQuantity handles PUT /api/cart/items/{id} requests.
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	token, ok := h.token(w, r)
	if !ok {
		return
	}

	productID := r.URL.Path[len("/api/cart/items/"):]
	if productID == "" {
		writeError(w, http.StatusBadRequest, "product ID is required", h.logger)
		return
	}

	var req updateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	view, err := h.service.UpdateQuantity(r.Context(), token, productID, req.Quantity, req.QuantityOption)
	if err != nil {
		writeDomainError(w, err, "failed to update cart", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// RemoveItem handles DELETE /api/cart/items/{id} requests.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	token, ok := h.token(w, r)
	if !ok {
		return
	}

	productID := r.URL.Path[len("/api/cart/items/"):]
	if productID == "" {
		writeError(w, http.StatusBadRequest, "product ID is required", h.logger)
		return
	}

	view, err := h.service.RemoveItem(r.Context(), token, productID)
	if err != nil {
		writeDomainError(w, err, "failed to remove item from cart", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// Clear handles DELETE /api/cart requests.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	token, ok := h.token(w, r)
	if !ok {
		return
	}

	if err := h.service.Clear(r.Context(), token); err != nil {
		writeDomainError(w, err, "failed to clear cart", h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Review handles GET /api/cart/review requests. An optional delivery_date
// query parameter (RFC 3339 date) selects the delivery date for in-stock
// shipments.
func (h *CartHandler) Review(w http.ResponseWriter, r *http.Request) {
	token, ok := h.token(w, r)
	if !ok {
		return
	}

	var deliveryDate *time.Time
	if v := r.URL.Query().Get("delivery_date"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid delivery_date: expected YYYY-MM-DD", h.logger)
			return
		}
		deliveryDate = &parsed
	}

	review, err := h.service.Review(r.Context(), token, deliveryDate)
	if err != nil {
		writeDomainError(w, err, "failed to build checkout review", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, review)
}

// Checkout handles POST /api/cart/checkout requests.
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	token, ok := h.token(w, r)
	if !ok {
		return
	}

	var req checkoutRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
			return
		}
	}

	resp, err := h.service.PlaceOrder(r.Context(), token, token, req.DeliveryDate, req.Notes)
	if err != nil {
		writeDomainError(w, err, "failed to place order", h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// token pulls the bearer token set by the auth middleware. Requests
// without one never reach the handlers in the wired router, but the check
// keeps the handlers safe standalone.
func (h *CartHandler) token(w http.ResponseWriter, r *http.Request) (string, bool) {
	token, ok := middleware.TokenFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorised: missing bearer token", h.logger)
		return "", false
	}
	return token, true
}
