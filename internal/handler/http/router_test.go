package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MobissOficial/mobiss-catalog/internal/domain"
	"github.com/MobissOficial/mobiss-catalog/internal/editor"
	"github.com/MobissOficial/mobiss-catalog/internal/handoff"
	"github.com/MobissOficial/mobiss-catalog/internal/service"
	apperrors "github.com/MobissOficial/mobiss-catalog/pkg/errors"
	"github.com/MobissOficial/mobiss-catalog/pkg/health"
	"github.com/MobissOficial/mobiss-catalog/pkg/middleware"
)

const testSecret = "test-admin-secret"

// fakeProductRepo is an in-memory product store.
type fakeProductRepo struct {
	products map[string]*domain.Product
	order    []string
	nextID   int
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[string]*domain.Product)}
}

func (f *fakeProductRepo) ListAll(_ context.Context) ([]*domain.Product, error) {
	out := make([]*domain.Product, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, f.products[id])
	}
	return out, nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, apperrors.NotFound("product", id)
	}
	return p, nil
}

func (f *fakeProductRepo) Create(_ context.Context, product *domain.Product) (string, error) {
	f.nextID++
	id := fmt.Sprintf("stored-%d", f.nextID)
	cpy := *product
	cpy.ID = domain.PersistedID(id)
	f.products[id] = &cpy
	f.order = append(f.order, id)
	return id, nil
}

func (f *fakeProductRepo) Update(_ context.Context, id string, product *domain.Product) error {
	if _, ok := f.products[id]; !ok {
		return apperrors.NotFound("product", id)
	}
	cpy := *product
	cpy.ID = domain.PersistedID(id)
	f.products[id] = &cpy
	return nil
}

func (f *fakeProductRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.products[id]; !ok {
		return apperrors.NotFound("product", id)
	}
	delete(f.products, id)
	for i, oid := range f.order {
		if oid == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeProductRepo) seed(p *domain.Product) string {
	id, _ := f.Create(context.Background(), p)
	return id
}

// fakeCartRepo is an in-memory cart store.
type fakeCartRepo struct {
	carts map[string]*domain.Cart
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: make(map[string]*domain.Cart)}
}

func (f *fakeCartRepo) Get(_ context.Context, sessionID string) (*domain.Cart, error) {
	cart, ok := f.carts[sessionID]
	if !ok {
		return nil, apperrors.NotFound("cart", sessionID)
	}
	return cart, nil
}

func (f *fakeCartRepo) Save(_ context.Context, cart *domain.Cart) error {
	f.carts[cart.SessionID] = cart
	return nil
}

func (f *fakeCartRepo) Delete(_ context.Context, sessionID string) error {
	delete(f.carts, sessionID)
	return nil
}

type noEvents struct{}

func (noEvents) ProductCreated(context.Context, *domain.Product) {}
func (noEvents) ProductUpdated(context.Context, *domain.Product) {}
func (noEvents) ProductDeleted(context.Context, string)          {}
func (noEvents) OrderSubmitted(context.Context, *domain.Cart)    {}

type testEnv struct {
	router   http.Handler
	products *fakeProductRepo
	carts    *fakeCartRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	products := newFakeProductRepo()
	carts := newFakeCartRepo()

	catalogSvc := service.NewCatalogService(products, noEvents{}, logger)
	cartSvc := service.NewCartService(carts, products, handoff.NewDeepLinkSender("5548992082828"), noEvents{}, logger)
	editorMgr := editor.NewManager(products, noEvents{}, 2_000_000, logger)

	router := NewRouter(RouterConfig{
		CatalogService: catalogSvc,
		CartService:    cartSvc,
		EditorManager:  editorMgr,
		HealthHandler:  health.NewHandler(),
		AdminSecret:    testSecret,
		CORS:           middleware.DefaultCORSConfig(),
		Logger:         logger,
	})

	return &testEnv{router: router, products: products, carts: carts}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func sessionHeaders() map[string]string {
	return map[string]string{"X-Session-ID": "sess-1"}
}

func adminHeaders() map[string]string {
	return map[string]string{
		"X-Session-ID":   "sess-admin",
		"X-Admin-Secret": testSecret,
	}
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, dst))
}

func seedCatalog(e *testEnv) (string, string) {
	caseID := e.products.seed(&domain.Product{
		Name:       "Capinha Clear",
		Category:   domain.CategoryCases,
		Models:     []string{"16-pro"},
		PriceCents: 5000,
		ColorVariants: []domain.ColorVariant{
			{Token: "t1", Name: "Black", Image: "black.jpg"},
		},
	})
	screenID := e.products.seed(&domain.Product{
		Name:       "Película 3D",
		Category:   domain.CategoryScreen,
		Models:     []string{"all"},
		PriceCents: 3000,
	})
	return caseID, screenID
}

func TestRouter_ListProducts_Filtered(t *testing.T) {
	env := newTestEnv(t)
	seedCatalog(env)

	rec := env.do(t, http.MethodGet, "/api/v1/products?category=cases", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var products []*domain.Product
	decodeData(t, rec, &products)
	require.Len(t, products, 1)
	assert.Equal(t, "Capinha Clear", products[0].Name)
}

func TestRouter_ListProducts_SearchAndModel(t *testing.T) {
	env := newTestEnv(t)
	seedCatalog(env)

	rec := env.do(t, http.MethodGet, "/api/v1/products?model=16-pro&search=capinha", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var products []*domain.Product
	decodeData(t, rec, &products)
	assert.Len(t, products, 1)
}

func TestRouter_Meta(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/meta", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var meta metaResponse
	decodeData(t, rec, &meta)
	assert.Len(t, meta.Categories, 7)
	assert.Len(t, meta.Models, 16)
	assert.NotEmpty(t, meta.Tags)
}

func TestRouter_Cart_RequiresSessionHeader(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/cart", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_CartFlow(t *testing.T) {
	env := newTestEnv(t)
	caseID, screenID := seedCatalog(env)

	// Add the case twice (merges) and the screen protector once.
	black := "Black"
	rec := env.do(t, http.MethodPost, "/api/v1/cart/lines", AddLineRequest{ProductID: caseID, Color: &black}, sessionHeaders())
	require.Equal(t, http.StatusOK, rec.Code)
	rec = env.do(t, http.MethodPost, "/api/v1/cart/lines", AddLineRequest{ProductID: caseID, Color: &black}, sessionHeaders())
	require.Equal(t, http.StatusOK, rec.Code)
	rec = env.do(t, http.MethodPost, "/api/v1/cart/lines", AddLineRequest{ProductID: screenID}, sessionHeaders())
	require.Equal(t, http.StatusOK, rec.Code)

	var cart domain.Cart
	decodeData(t, rec, &cart)
	require.Len(t, cart.Lines, 2)
	assert.Equal(t, 2, cart.Lines[0].Quantity)
	assert.Equal(t, int64(13000), cart.TotalCents())

	// Dropping a line's quantity to zero removes it.
	rec = env.do(t, http.MethodPut, "/api/v1/cart/lines/1", SetQuantityRequest{Quantity: 0}, sessionHeaders())
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &cart)
	assert.Len(t, cart.Lines, 1)

	// A stale index is ignored.
	rec = env.do(t, http.MethodDelete, "/api/v1/cart/lines/9", nil, sessionHeaders())
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &cart)
	assert.Len(t, cart.Lines, 1)
}

func TestRouter_Checkout(t *testing.T) {
	env := newTestEnv(t)
	caseID, _ := seedCatalog(env)

	rec := env.do(t, http.MethodPost, "/api/v1/cart/lines", AddLineRequest{ProductID: caseID}, sessionHeaders())
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/v1/cart/checkout", nil, sessionHeaders())
	require.Equal(t, http.StatusOK, rec.Code)

	var result service.CheckoutResult
	decodeData(t, rec, &result)
	assert.Contains(t, result.DeepLink, "https://wa.me/5548992082828?text=")
	assert.Contains(t, result.Message, "Oi! Quero fazer um pedido:")
	assert.Equal(t, int64(5000), result.TotalCents)

	// Cart cleared after checkout.
	rec = env.do(t, http.MethodGet, "/api/v1/cart", nil, sessionHeaders())
	var cart domain.Cart
	decodeData(t, rec, &cart)
	assert.Empty(t, cart.Lines)
}

func TestRouter_Checkout_EmptyCart(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/cart/checkout", nil, sessionHeaders())
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_AdminGate(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/admin/products", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/admin/products", nil, map[string]string{"X-Admin-Secret": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/admin/products", nil, adminHeaders())
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_AdminLogin(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/admin/login", LoginRequest{Password: "wrong"}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/v1/admin/login", LoginRequest{Password: testSecret}, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_AdminStats(t *testing.T) {
	env := newTestEnv(t)
	seedCatalog(env)

	rec := env.do(t, http.MethodGet, "/api/v1/admin/stats", nil, adminHeaders())
	require.Equal(t, http.StatusOK, rec.Code)

	var stats service.CatalogStats
	decodeData(t, rec, &stats)
	assert.Equal(t, 2, stats.TotalProducts)
	assert.Equal(t, 1, stats.ByCategory["cases"])
	assert.Equal(t, 1, stats.WithPhoto)
	assert.Equal(t, 1, stats.WithoutPhoto)
}

func TestRouter_AdminDeleteProduct(t *testing.T) {
	env := newTestEnv(t)
	caseID, _ := seedCatalog(env)

	rec := env.do(t, http.MethodDelete, "/api/v1/admin/products/"+caseID, nil, adminHeaders())
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodDelete, "/api/v1/admin/products/"+caseID, nil, adminHeaders())
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_EditorFlow_CreateProduct(t *testing.T) {
	env := newTestEnv(t)

	// Open a fresh draft.
	rec := env.do(t, http.MethodPost, "/api/v1/admin/editor", nil, adminHeaders())
	require.Equal(t, http.StatusCreated, rec.Code)

	var draft domain.Product
	decodeData(t, rec, &draft)
	assert.True(t, draft.ID.IsDraft())

	// Fill in fields; the price arrives as raw text.
	rec = env.do(t, http.MethodPut, "/api/v1/admin/editor/fields", FieldsRequest{
		Name:  strField("Capinha Nova"),
		Price: strField("59,90"),
	}, adminHeaders())
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &draft)
	assert.Equal(t, int64(5990), draft.PriceCents)

	// Add and name a color variant.
	rec = env.do(t, http.MethodPost, "/api/v1/admin/editor/variants", nil, adminHeaders())
	require.Equal(t, http.StatusCreated, rec.Code)
	var added struct {
		Token string `json:"token"`
	}
	decodeData(t, rec, &added)
	require.NotEmpty(t, added.Token)

	rec = env.do(t, http.MethodPut, "/api/v1/admin/editor/variants/"+added.Token, VariantRequest{Name: strField("Azul")}, adminHeaders())
	require.Equal(t, http.StatusOK, rec.Code)

	// Save: draft becomes a persisted product with a store-issued id.
	rec = env.do(t, http.MethodPost, "/api/v1/admin/editor/save", nil, adminHeaders())
	require.Equal(t, http.StatusOK, rec.Code)

	var saved domain.Product
	decodeData(t, rec, &saved)
	assert.False(t, saved.ID.IsDraft())

	// Editor closed after save.
	rec = env.do(t, http.MethodGet, "/api/v1/admin/editor", nil, adminHeaders())
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Product now visible on the storefront.
	rec = env.do(t, http.MethodGet, "/api/v1/products?search=nova", nil, nil)
	var products []*domain.Product
	decodeData(t, rec, &products)
	require.Len(t, products, 1)
	assert.Equal(t, "Capinha Nova", products[0].Name)
}

func TestRouter_EditorFlow_EditExisting(t *testing.T) {
	env := newTestEnv(t)
	caseID, _ := seedCatalog(env)

	rec := env.do(t, http.MethodPost, "/api/v1/admin/editor", StartRequest{ProductID: &caseID}, adminHeaders())
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodPut, "/api/v1/admin/editor/fields", FieldsRequest{Name: strField("Capinha Renomeada")}, adminHeaders())
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/v1/admin/editor/save", nil, adminHeaders())
	require.Equal(t, http.StatusOK, rec.Code)

	var saved domain.Product
	decodeData(t, rec, &saved)
	assert.Equal(t, caseID, saved.ID.String())
	assert.Equal(t, "Capinha Renomeada", env.products.products[caseID].Name)
}

func TestRouter_Editor_CancelDiscardsDraft(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/admin/editor", nil, adminHeaders())
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodDelete, "/api/v1/admin/editor", nil, adminHeaders())
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/admin/editor", nil, adminHeaders())
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_HealthEndpoints(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/health/live", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/metrics", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func strField(s string) *string { return &s }
