package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MobissOficial/mobiss-catalog/internal/service"
	"github.com/MobissOficial/mobiss-catalog/pkg/validator"
)

// CartHandler handles HTTP requests for cart endpoints.
type CartHandler struct {
	service *service.CartService
	logger  *slog.Logger
}

// NewCartHandler creates a new cart HTTP handler.
func NewCartHandler(svc *service.CartService, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		service: svc,
		logger:  logger,
	}
}

// AddLineRequest is the JSON request body for adding a product to the cart.
type AddLineRequest struct {
	ProductID string  `json:"product_id" validate:"required"`
	Color     *string `json:"color,omitempty"`
}

// SetQuantityRequest is the JSON request body for changing a line's quantity.
type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// GetCart handles GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	sid, _ := sessionIDFromContext(r.Context())

	cart, err := h.service.GetCart(r.Context(), sid)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: cart})
}

// AddLine handles POST /api/v1/cart/lines
func (h *CartHandler) AddLine(w http.ResponseWriter, r *http.Request) {
	sid, _ := sessionIDFromContext(r.Context())

	var req AddLineRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	cart, err := h.service.AddLine(r.Context(), sid, req.ProductID, req.Color)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: cart})
}

// SetQuantity handles PUT /api/v1/cart/lines/{index}
func (h *CartHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	sid, _ := sessionIDFromContext(r.Context())

	index, ok := lineIndex(w, r)
	if !ok {
		return
	}

	var req SetQuantityRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	cart, err := h.service.SetQuantity(r.Context(), sid, index, req.Quantity)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: cart})
}

// RemoveLine handles DELETE /api/v1/cart/lines/{index}
func (h *CartHandler) RemoveLine(w http.ResponseWriter, r *http.Request) {
	sid, _ := sessionIDFromContext(r.Context())

	index, ok := lineIndex(w, r)
	if !ok {
		return
	}

	cart, err := h.service.RemoveLine(r.Context(), sid, index)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: cart})
}

// Checkout handles POST /api/v1/cart/checkout
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	sid, _ := sessionIDFromContext(r.Context())

	result, err := h.service.Checkout(r.Context(), sid)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: result})
}

func lineIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := chi.URLParam(r, "index")
	index, err := strconv.Atoi(raw)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, response{
			Error: &errorResponse{Code: "INVALID_INPUT", Message: "line index must be an integer"},
		})
		return 0, false
	}
	return index, true
}

func pathParam(r *http.Request, name string) string {
	return chi.URLParam(r, name)
}
