package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/MobissOficial/mobiss-catalog/internal/config"
	"github.com/MobissOficial/mobiss-catalog/internal/editor"
	"github.com/MobissOficial/mobiss-catalog/internal/event"
	"github.com/MobissOficial/mobiss-catalog/internal/handoff"
	handler "github.com/MobissOficial/mobiss-catalog/internal/handler/http"
	mongorepo "github.com/MobissOficial/mobiss-catalog/internal/repository/mongo"
	redisrepo "github.com/MobissOficial/mobiss-catalog/internal/repository/redis"
	"github.com/MobissOficial/mobiss-catalog/internal/service"
	"github.com/MobissOficial/mobiss-catalog/pkg/health"
	"github.com/MobissOficial/mobiss-catalog/pkg/httpclient"
	pkgkafka "github.com/MobissOficial/mobiss-catalog/pkg/kafka"
	"github.com/MobissOficial/mobiss-catalog/pkg/middleware"
	"github.com/MobissOficial/mobiss-catalog/pkg/tracing"
)

// App wires together all dependencies and runs the storefront service.
type App struct {
	cfg             *config.Config
	logger          *slog.Logger
	mongoClient     *mongo.Client
	rdb             *redis.Client
	producer        *pkgkafka.Producer
	httpServer      *http.Server
	tracingShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Tracing.
	traceCfg := tracing.DefaultConfig("mobiss-catalog")
	traceCfg.Environment = cfg.Environment
	traceCfg.OTLPEndpoint = cfg.OTLPEndpoint
	traceCfg.SampleRate = cfg.TraceSampleRate
	traceCfg.Enabled = cfg.TracingEnabled

	tracingShutdown, err := tracing.InitTracer(ctx, traceCfg)
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}

	// MongoDB product store.
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	if err := mongoClient.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	logger.Info("connected to MongoDB",
		slog.String("database", cfg.MongoDatabase),
	)

	// Redis cart store.
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	logger.Info("connected to Redis",
		slog.String("addr", cfg.RedisAddr),
		slog.Int("db", cfg.RedisDB),
	)

	// Kafka producer (optional).
	var producer *pkgkafka.Producer
	var eventProducer *event.Producer
	if cfg.KafkaEnabled {
		producer = pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
		eventProducer = event.NewProducer(producer, logger)
		logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))
	}
	notifier := event.NewNotifier(eventProducer, logger)

	// Repositories.
	productRepo := mongorepo.NewProductRepository(mongoClient.Database(cfg.MongoDatabase))
	cartRepo := redisrepo.NewCartRepository(rdb, cfg.CartTTLDuration())

	// Messaging handoff.
	sender := newSender(cfg, logger)

	// Services.
	catalogService := service.NewCatalogService(productRepo, notifier, logger)
	cartService := service.NewCartService(cartRepo, productRepo, sender, notifier, logger)
	editorManager := editor.NewManager(productRepo, notifier, cfg.MaxImageBytes, logger)

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.Register("mongodb", func(ctx context.Context) error {
		return mongoClient.Ping(ctx, readpref.Primary())
	})
	healthHandler.Register("redis", func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	})
	if producer != nil {
		healthHandler.Register("kafka", producer.Ping)
	}

	// HTTP router.
	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.AllowedOrigins
	corsCfg.Environment = cfg.Environment

	router := handler.NewRouter(handler.RouterConfig{
		CatalogService: catalogService,
		CartService:    cartService,
		EditorManager:  editorManager,
		HealthHandler:  healthHandler,
		AdminSecret:    cfg.AdminSecret,
		CORS:           corsCfg,
		Logger:         logger,
	})

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:             cfg,
		logger:          logger,
		mongoClient:     mongoClient,
		rdb:             rdb,
		producer:        producer,
		httpServer:      httpServer,
		tracingShutdown: tracingShutdown,
	}, nil
}

func newSender(cfg *config.Config, logger *slog.Logger) handoff.Sender {
	if cfg.HandoffMode == "cloudapi" {
		client := httpclient.New(httpclient.DefaultConfig())
		breaker := httpclient.NewCircuitBreakerClient(client,
			httpclient.DefaultCircuitBreakerConfig("whatsapp-cloudapi"), logger)
		return handoff.NewCloudAPISender(breaker, handoff.CloudAPIConfig{
			PhoneNumberID: cfg.WhatsAppPhoneID,
			Recipient:     cfg.WhatsAppNumber,
			AccessToken:   cfg.WhatsAppAccessToken,
		})
	}
	return handoff.NewDeepLinkSender(cfg.WhatsAppNumber)
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
		}
	}

	if err := a.rdb.Close(); err != nil {
		a.logger.Error("redis close error", slog.String("error", err.Error()))
	}

	if err := a.mongoClient.Disconnect(shutdownCtx); err != nil {
		a.logger.Error("mongodb disconnect error", slog.String("error", err.Error()))
	}

	if err := a.tracingShutdown(shutdownCtx); err != nil {
		a.logger.Error("tracing shutdown error", slog.String("error", err.Error()))
	}

	a.logger.Info("application shutdown complete")
	return nil
}
