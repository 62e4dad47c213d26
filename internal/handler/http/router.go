package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MobissOficial/mobiss-catalog/internal/editor"
	"github.com/MobissOficial/mobiss-catalog/internal/service"
	"github.com/MobissOficial/mobiss-catalog/pkg/health"
	"github.com/MobissOficial/mobiss-catalog/pkg/middleware"
)

// RouterConfig bundles the dependencies of the HTTP surface.
type RouterConfig struct {
	CatalogService *service.CatalogService
	CartService    *service.CartService
	EditorManager  *editor.Manager
	HealthHandler  *health.Handler
	AdminSecret    string
	CORS           middleware.CORSConfig
	Logger         *slog.Logger
}

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.RequestLogging(cfg.Logger))
	r.Use(middleware.PrometheusMetrics("storefront"))
	r.Use(middleware.Tracing("storefront"))
	r.Use(middleware.RequestLogger(cfg.Logger))

	// Health check endpoints
	r.Get("/health/live", cfg.HealthHandler.LivenessHandler())
	r.Get("/health/ready", cfg.HealthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	catalogHandler := NewCatalogHandler(cfg.CatalogService, cfg.Logger)
	cartHandler := NewCartHandler(cfg.CartService, cfg.Logger)
	adminHandler := NewAdminHandler(cfg.CatalogService, cfg.AdminSecret, cfg.Logger)
	editorHandler := NewEditorHandler(cfg.EditorManager, cfg.Logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		// Public storefront
		r.Get("/meta", catalogHandler.Meta)
		r.Get("/products", catalogHandler.ListProducts)
		r.Get("/products/{id}", catalogHandler.GetProduct)

		r.Route("/cart", func(r chi.Router) {
			r.Use(SessionIDFromHeader)

			r.Get("/", cartHandler.GetCart)
			r.Post("/lines", cartHandler.AddLine)
			r.Put("/lines/{index}", cartHandler.SetQuantity)
			r.Delete("/lines/{index}", cartHandler.RemoveLine)
			r.Post("/checkout", cartHandler.Checkout)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", adminHandler.Login)

			r.Group(func(r chi.Router) {
				r.Use(AdminGate(cfg.AdminSecret))

				r.Get("/products", adminHandler.ListProducts)
				r.Delete("/products/{id}", adminHandler.DeleteProduct)
				r.Get("/stats", adminHandler.Stats)

				r.Route("/editor", func(r chi.Router) {
					r.Use(SessionIDFromHeader)

					r.Post("/", editorHandler.Start)
					r.Get("/", editorHandler.Draft)
					r.Delete("/", editorHandler.Cancel)
					r.Put("/fields", editorHandler.SetFields)
					r.Put("/image", editorHandler.SetImage)
					r.Delete("/image", editorHandler.RemoveImage)
					r.Post("/variants", editorHandler.AddVariant)
					r.Put("/variants/{token}", editorHandler.UpdateVariant)
					r.Delete("/variants/{token}", editorHandler.RemoveVariant)
					r.Post("/save", editorHandler.Save)
				})
			})
		})
	})

	return r
}
