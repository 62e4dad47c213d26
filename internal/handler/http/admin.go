package http

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/MobissOficial/mobiss-catalog/internal/domain"
	"github.com/MobissOficial/mobiss-catalog/internal/service"
	"github.com/MobissOficial/mobiss-catalog/pkg/validator"
)

// AdminHandler handles the gated catalog management endpoints.
type AdminHandler struct {
	service *service.CatalogService
	secret  string
	logger  *slog.Logger
}

// NewAdminHandler creates a new admin HTTP handler.
func NewAdminHandler(svc *service.CatalogService, secret string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		service: svc,
		secret:  secret,
		logger:  logger,
	}
}

// LoginRequest is the JSON request body for the admin login check.
type LoginRequest struct {
	Password string `json:"password" validate:"required"`
}

// Login handles POST /api/v1/admin/login. It only verifies the shared
// secret so the admin UI can gate itself; subsequent requests carry the
// secret in the X-Admin-Secret header.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	if h.secret == "" || subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.secret)) != 1 {
		writeJSON(w, http.StatusUnauthorized, response{
			Error: &errorResponse{Code: "UNAUTHORIZED", Message: "senha incorreta"},
		})
		return
	}

	writeJSON(w, http.StatusOK, response{Data: map[string]bool{"authenticated": true}})
}

// ListProducts handles GET /api/v1/admin/products (unfiltered).
func (h *AdminHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListProducts(r.Context(), domain.Filter{})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: products})
}

// DeleteProduct handles DELETE /api/v1/admin/products/{id}
func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := pathParam(r, "id")

	if err := h.service.DeleteProduct(r.Context(), id); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: map[string]string{"status": "deleted"}})
}

// Stats handles GET /api/v1/admin/stats
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: stats})
}
