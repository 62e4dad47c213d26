// Package editor holds the per-session product editing state machine:
// one draft at a time, mutated locally and reconciled with the product
// store only on save.
package editor

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/MobissOficial/mobiss-catalog/internal/domain"
	"github.com/MobissOficial/mobiss-catalog/internal/repository"
	apperrors "github.com/MobissOficial/mobiss-catalog/pkg/errors"
	"github.com/MobissOficial/mobiss-catalog/pkg/money"
)

// Events receives notifications after a successful save or delete.
// Implementations must not fail the calling operation.
type Events interface {
	ProductCreated(ctx context.Context, product *domain.Product)
	ProductUpdated(ctx context.Context, product *domain.Product)
}

// FieldChanges carries partial field updates for the open draft. Nil
// pointers leave the field untouched. Price inputs arrive as raw
// strings and are parsed and rounded to cents exactly once, here.
type FieldChanges struct {
	Name          *string
	Description   *string
	Category      *string
	Tag           *string
	MagSafe       *bool
	ToggleModel   *string
	Price         *string
	OriginalPrice *string
}

// session is the editor state for one admin session. A session edits at
// most one draft at a time.
type session struct {
	mu     sync.Mutex
	draft  *domain.Product
	open   bool
	saving bool
}

// Manager owns the editor sessions and reconciles drafts with the
// product store.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*session

	store         repository.ProductRepository
	events        Events
	maxImageBytes int
	logger        *slog.Logger
}

// NewManager creates an editor manager. maxImageBytes bounds every
// inline photo accepted into a draft; the store keeps photos inside the
// product document.
func NewManager(store repository.ProductRepository, events Events, maxImageBytes int, logger *slog.Logger) *Manager {
	return &Manager{
		sessions:      make(map[string]*session),
		store:         store,
		events:        events,
		maxImageBytes: maxImageBytes,
		logger:        logger,
	}
}

func (m *Manager) session(sessionID string) *session {
	m.mu.RLock()
	s, ok := m.sessions[sessionID]
	m.mu.RUnlock()
	if ok {
		return s
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok = m.sessions[sessionID]; ok {
		return s
	}
	s = &session{}
	m.sessions[sessionID] = s
	return s
}

// StartNew opens the editor on a fresh draft with an unpersisted id.
// An already-open editor is replaced.
func (m *Manager) StartNew(sessionID string) *domain.Product {
	s := m.session(sessionID)
	s.mu.Lock()
	defer s.mu.Unlock()

	s.draft = &domain.Product{
		ID:       domain.NewDraftID(),
		Category: domain.CategoryCases,
		Models:   []string{},
	}
	s.open = true
	s.saving = false
	return copyDraft(s.draft)
}

// StartEdit opens the editor on a copy of an existing product.
func (m *Manager) StartEdit(ctx context.Context, sessionID, productID string) (*domain.Product, error) {
	product, err := m.store.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	s := m.session(sessionID)
	s.mu.Lock()
	defer s.mu.Unlock()

	s.draft = copyDraft(product)
	s.open = true
	s.saving = false
	return copyDraft(s.draft), nil
}

// Draft returns a copy of the open draft.
func (m *Manager) Draft(sessionID string) (*domain.Product, error) {
	s := m.session(sessionID)
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return nil, apperrors.NotFound("draft", sessionID)
	}
	return copyDraft(s.draft), nil
}

// Cancel closes the editor, discarding the draft.
func (m *Manager) Cancel(sessionID string) {
	s := m.session(sessionID)
	s.mu.Lock()
	defer s.mu.Unlock()

	s.draft = nil
	s.open = false
	s.saving = false
}

// SetFields applies partial field changes to the open draft.
func (m *Manager) SetFields(sessionID string, changes FieldChanges) (*domain.Product, error) {
	s := m.session(sessionID)
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return nil, apperrors.NotFound("draft", sessionID)
	}

	if changes.Category != nil {
		cat := domain.Category(*changes.Category)
		if !domain.ValidCategory(cat) {
			return nil, apperrors.InvalidInput("unknown category: " + *changes.Category)
		}
		s.draft.Category = cat
	}
	if changes.Tag != nil {
		if !domain.ValidTag(*changes.Tag) {
			return nil, apperrors.InvalidInput("unknown tag: " + *changes.Tag)
		}
		s.draft.Tag = *changes.Tag
	}
	if changes.ToggleModel != nil {
		if !domain.ValidModel(*changes.ToggleModel) {
			return nil, apperrors.InvalidInput("unknown model: " + *changes.ToggleModel)
		}
		s.draft.Models = toggleModel(s.draft.Models, *changes.ToggleModel)
	}
	if changes.Name != nil {
		s.draft.Name = *changes.Name
	}
	if changes.Description != nil {
		s.draft.Description = *changes.Description
	}
	if changes.MagSafe != nil {
		s.draft.MagSafe = *changes.MagSafe
	}
	if changes.Price != nil {
		s.draft.PriceCents = money.ParsePrice(*changes.Price)
	}
	if changes.OriginalPrice != nil {
		if *changes.OriginalPrice == "" {
			s.draft.OriginalPriceCents = nil
		} else {
			cents := money.ParsePrice(*changes.OriginalPrice)
			s.draft.OriginalPriceCents = &cents
		}
	}

	return copyDraft(s.draft), nil
}

// SetImage replaces the draft's main photo. Oversized photos are
// rejected and the current photo stays in place.
func (m *Manager) SetImage(sessionID, image string) (*domain.Product, error) {
	s := m.session(sessionID)
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return nil, apperrors.NotFound("draft", sessionID)
	}
	if len(image) > m.maxImageBytes {
		return nil, apperrors.InvalidInput("image exceeds the maximum allowed size")
	}

	s.draft.Image = image
	return copyDraft(s.draft), nil
}

// RemoveImage clears the draft's main photo.
func (m *Manager) RemoveImage(sessionID string) (*domain.Product, error) {
	s := m.session(sessionID)
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return nil, apperrors.NotFound("draft", sessionID)
	}

	s.draft.Image = ""
	return copyDraft(s.draft), nil
}

// AddVariant appends an empty color variant and returns its token.
// Tokens stay valid as the list shifts around them.
func (m *Manager) AddVariant(sessionID string) (string, *domain.Product, error) {
	s := m.session(sessionID)
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return "", nil, apperrors.NotFound("draft", sessionID)
	}

	token := uuid.New().String()
	s.draft.ColorVariants = append(s.draft.ColorVariants, domain.ColorVariant{Token: token})
	return token, copyDraft(s.draft), nil
}

// VariantChanges carries partial updates for one color variant.
type VariantChanges struct {
	Name  *string
	Image *string
}

// UpdateVariant renames or re-photographs the variant addressed by token.
func (m *Manager) UpdateVariant(sessionID, token string, changes VariantChanges) (*domain.Product, error) {
	s := m.session(sessionID)
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return nil, apperrors.NotFound("draft", sessionID)
	}

	idx := -1
	for i, v := range s.draft.ColorVariants {
		if v.Token == token {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, apperrors.NotFound("variant", token)
	}

	if changes.Image != nil && len(*changes.Image) > m.maxImageBytes {
		return nil, apperrors.InvalidInput("image exceeds the maximum allowed size")
	}

	if changes.Name != nil {
		s.draft.ColorVariants[idx].Name = *changes.Name
	}
	if changes.Image != nil {
		s.draft.ColorVariants[idx].Image = *changes.Image
	}
	return copyDraft(s.draft), nil
}

// RemoveVariant deletes the variant addressed by token. An unknown
// token is a no-op: the variant may already be gone.
func (m *Manager) RemoveVariant(sessionID, token string) (*domain.Product, error) {
	s := m.session(sessionID)
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return nil, apperrors.NotFound("draft", sessionID)
	}

	for i, v := range s.draft.ColorVariants {
		if v.Token == token {
			s.draft.ColorVariants = append(s.draft.ColorVariants[:i], s.draft.ColorVariants[i+1:]...)
			break
		}
	}
	return copyDraft(s.draft), nil
}

// Save reconciles the draft with the store: drafts are created and
// adopt the store-issued id, persisted products are updated in place.
// While a save is in flight further saves are rejected. On store
// failure the draft stays open and untouched.
func (m *Manager) Save(ctx context.Context, sessionID string) (*domain.Product, error) {
	s := m.session(sessionID)

	s.mu.Lock()
	if !s.open {
		s.mu.Unlock()
		return nil, apperrors.NotFound("draft", sessionID)
	}
	if s.saving {
		s.mu.Unlock()
		return nil, apperrors.Conflict("a save is already in progress")
	}
	if s.draft.Name == "" {
		s.mu.Unlock()
		return nil, apperrors.InvalidInput("product name is required")
	}
	s.saving = true
	draft := copyDraft(s.draft)
	s.mu.Unlock()

	saved, err := m.persist(ctx, draft)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.saving = false
	if err != nil {
		// Draft stays open for the admin to retry.
		return nil, err
	}

	s.draft = nil
	s.open = false
	return saved, nil
}

func (m *Manager) persist(ctx context.Context, draft *domain.Product) (*domain.Product, error) {
	if draft.ID.IsDraft() || draft.ID.IsZero() {
		id, err := m.store.Create(ctx, draft)
		if err != nil {
			return nil, err
		}
		draft.ID = domain.PersistedID(id)
		m.events.ProductCreated(ctx, draft)
		m.logger.InfoContext(ctx, "product created",
			slog.String("product_id", id),
			slog.String("name", draft.Name),
		)
		return draft, nil
	}

	if err := m.store.Update(ctx, draft.ID.String(), draft); err != nil {
		return nil, err
	}
	m.events.ProductUpdated(ctx, draft)
	m.logger.InfoContext(ctx, "product updated",
		slog.String("product_id", draft.ID.String()),
		slog.String("name", draft.Name),
	)
	return draft, nil
}

func toggleModel(models []string, id string) []string {
	for i, m := range models {
		if m == id {
			return append(models[:i], models[i+1:]...)
		}
	}
	return append(models, id)
}

func copyDraft(p *domain.Product) *domain.Product {
	cpy := *p
	cpy.Models = append([]string(nil), p.Models...)
	cpy.ColorVariants = append([]domain.ColorVariant(nil), p.ColorVariants...)
	cpy.Colors = append([]string(nil), p.Colors...)
	if p.OriginalPriceCents != nil {
		v := *p.OriginalPriceCents
		cpy.OriginalPriceCents = &v
	}
	return &cpy
}
