package http

import (
	"log/slog"
	"net/http"

	"github.com/MobissOficial/mobiss-catalog/internal/editor"
	"github.com/MobissOficial/mobiss-catalog/pkg/validator"
)

// EditorHandler exposes the per-session product editor.
type EditorHandler struct {
	manager *editor.Manager
	logger  *slog.Logger
}

// NewEditorHandler creates a new editor HTTP handler.
func NewEditorHandler(manager *editor.Manager, logger *slog.Logger) *EditorHandler {
	return &EditorHandler{
		manager: manager,
		logger:  logger,
	}
}

// StartRequest is the JSON request body for opening the editor. With a
// product_id the editor opens on that product; without one it opens on
// a fresh draft.
type StartRequest struct {
	ProductID *string `json:"product_id,omitempty"`
}

// FieldsRequest carries partial field updates. Absent fields stay
// untouched; prices arrive as raw text.
type FieldsRequest struct {
	Name          *string `json:"name,omitempty"`
	Description   *string `json:"description,omitempty"`
	Category      *string `json:"category,omitempty"`
	Tag           *string `json:"tag,omitempty"`
	MagSafe       *bool   `json:"magsafe,omitempty"`
	ToggleModel   *string `json:"toggle_model,omitempty"`
	Price         *string `json:"price,omitempty"`
	OriginalPrice *string `json:"original_price,omitempty"`
}

// ImageRequest is the JSON request body for setting a photo.
type ImageRequest struct {
	Image string `json:"image" validate:"required"`
}

// VariantRequest carries partial updates for one color variant.
type VariantRequest struct {
	Name  *string `json:"name,omitempty"`
	Image *string `json:"image,omitempty"`
}

// Start handles POST /api/v1/admin/editor
func (h *EditorHandler) Start(w http.ResponseWriter, r *http.Request) {
	sid, _ := sessionIDFromContext(r.Context())

	// An empty body opens a fresh draft.
	var req StartRequest
	if r.ContentLength != 0 && !decodeJSON(w, r, &req) {
		return
	}

	if req.ProductID == nil || *req.ProductID == "" {
		draft := h.manager.StartNew(sid)
		writeJSON(w, http.StatusCreated, response{Data: draft})
		return
	}

	draft, err := h.manager.StartEdit(r.Context(), sid, *req.ProductID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, response{Data: draft})
}

// Draft handles GET /api/v1/admin/editor
func (h *EditorHandler) Draft(w http.ResponseWriter, r *http.Request) {
	sid, _ := sessionIDFromContext(r.Context())

	draft, err := h.manager.Draft(sid)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, response{Data: draft})
}

// SetFields handles PUT /api/v1/admin/editor/fields
func (h *EditorHandler) SetFields(w http.ResponseWriter, r *http.Request) {
	sid, _ := sessionIDFromContext(r.Context())

	var req FieldsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	draft, err := h.manager.SetFields(sid, editor.FieldChanges{
		Name:          req.Name,
		Description:   req.Description,
		Category:      req.Category,
		Tag:           req.Tag,
		MagSafe:       req.MagSafe,
		ToggleModel:   req.ToggleModel,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, response{Data: draft})
}

// SetImage handles PUT /api/v1/admin/editor/image
func (h *EditorHandler) SetImage(w http.ResponseWriter, r *http.Request) {
	sid, _ := sessionIDFromContext(r.Context())

	var req ImageRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	draft, err := h.manager.SetImage(sid, req.Image)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, response{Data: draft})
}

// RemoveImage handles DELETE /api/v1/admin/editor/image
func (h *EditorHandler) RemoveImage(w http.ResponseWriter, r *http.Request) {
	sid, _ := sessionIDFromContext(r.Context())

	draft, err := h.manager.RemoveImage(sid)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, response{Data: draft})
}

// AddVariant handles POST /api/v1/admin/editor/variants
func (h *EditorHandler) AddVariant(w http.ResponseWriter, r *http.Request) {
	sid, _ := sessionIDFromContext(r.Context())

	token, draft, err := h.manager.AddVariant(sid)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, response{Data: map[string]any{
		"token": token,
		"draft": draft,
	}})
}

// UpdateVariant handles PUT /api/v1/admin/editor/variants/{token}
func (h *EditorHandler) UpdateVariant(w http.ResponseWriter, r *http.Request) {
	sid, _ := sessionIDFromContext(r.Context())
	token := pathParam(r, "token")

	var req VariantRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	draft, err := h.manager.UpdateVariant(sid, token, editor.VariantChanges{
		Name:  req.Name,
		Image: req.Image,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, response{Data: draft})
}

// RemoveVariant handles DELETE /api/v1/admin/editor/variants/{token}
func (h *EditorHandler) RemoveVariant(w http.ResponseWriter, r *http.Request) {
	sid, _ := sessionIDFromContext(r.Context())
	token := pathParam(r, "token")

	draft, err := h.manager.RemoveVariant(sid, token)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, response{Data: draft})
}

// Save handles POST /api/v1/admin/editor/save
func (h *EditorHandler) Save(w http.ResponseWriter, r *http.Request) {
	sid, _ := sessionIDFromContext(r.Context())

	saved, err := h.manager.Save(r.Context(), sid)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, response{Data: saved})
}

// Cancel handles DELETE /api/v1/admin/editor
func (h *EditorHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	sid, _ := sessionIDFromContext(r.Context())

	h.manager.Cancel(sid)
	writeJSON(w, http.StatusOK, response{Data: map[string]string{"status": "cancelled"}})
}
