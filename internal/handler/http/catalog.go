package http

import (
	"log/slog"
	"net/http"

	"github.com/MobissOficial/mobiss-catalog/internal/domain"
	"github.com/MobissOficial/mobiss-catalog/internal/service"
)

// CatalogHandler handles the public storefront endpoints.
type CatalogHandler struct {
	service *service.CatalogService
	logger  *slog.Logger
}

// NewCatalogHandler creates a new catalog HTTP handler.
func NewCatalogHandler(svc *service.CatalogService, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: svc,
		logger:  logger,
	}
}

// ListProducts handles GET /api/v1/products
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.Filter{
		Category: domain.Category(q.Get("category")),
		ModelID:  q.Get("model"),
		Search:   q.Get("search"),
	}

	products, err := h.service.ListProducts(r.Context(), filter)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: products})
}

// GetProduct handles GET /api/v1/products/{id}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := pathParam(r, "id")

	product, err := h.service.GetProduct(r.Context(), id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: product})
}

// metaResponse carries the fixed catalog enumerations the storefront
// renders its filter bar and editor forms from.
type metaResponse struct {
	Categories []domain.CategoryInfo `json:"categories"`
	Models     []domain.ModelInfo    `json:"models"`
	Tags       []string              `json:"tags"`
}

// Meta handles GET /api/v1/meta
func (h *CatalogHandler) Meta(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, response{Data: metaResponse{
		Categories: domain.Categories,
		Models:     domain.Models,
		Tags:       domain.Tags,
	}})
}
