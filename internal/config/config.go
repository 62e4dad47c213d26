package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/MobissOficial/mobiss-catalog/pkg/config"
)

// Config holds all configuration for the storefront service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"HTTP_PORT" envDefault:"8080"`

	// CORS
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	// MongoDB product store
	MongoURI      string `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	MongoDatabase string `env:"MONGO_DATABASE" envDefault:"mobiss"`

	// Redis cart store
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Cart TTL in hours (default: 3 days)
	CartTTL int `env:"CART_TTL_HOURS" envDefault:"72"`

	// Kafka
	KafkaEnabled bool     `env:"KAFKA_ENABLED" envDefault:"false"`
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// Admin gate
	AdminSecret string `env:"ADMIN_SECRET" envDefault:""`

	// WhatsApp handoff: "deeplink" returns a wa.me link to the client,
	// "cloudapi" delivers the message server-side.
	HandoffMode         string `env:"HANDOFF_MODE" envDefault:"deeplink"`
	WhatsAppNumber      string `env:"WHATSAPP_NUMBER" envDefault:"5548992082828"`
	WhatsAppPhoneID     string `env:"WHATSAPP_PHONE_ID" envDefault:""`
	WhatsAppAccessToken string `env:"WHATSAPP_ACCESS_TOKEN" envDefault:""`

	// Product photos are stored inline in the document store.
	MaxImageBytes int `env:"MAX_IMAGE_BYTES" envDefault:"2000000"`

	// Tracing
	TracingEnabled  bool    `env:"TRACING_ENABLED" envDefault:"false"`
	OTLPEndpoint    string  `env:"OTLP_ENDPOINT" envDefault:"localhost:4318"`
	TraceSampleRate float64 `env:"TRACE_SAMPLE_RATE" envDefault:"1.0"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.AdminSecret == "" && c.Environment != "development" {
		return fmt.Errorf("ADMIN_SECRET is required outside development")
	}
	if c.HandoffMode != "deeplink" && c.HandoffMode != "cloudapi" {
		return fmt.Errorf("invalid handoff mode: %q", c.HandoffMode)
	}
	if c.HandoffMode == "cloudapi" && (c.WhatsAppPhoneID == "" || c.WhatsAppAccessToken == "") {
		return fmt.Errorf("cloudapi handoff requires WHATSAPP_PHONE_ID and WHATSAPP_ACCESS_TOKEN")
	}
	if c.MaxImageBytes < 1 {
		return fmt.Errorf("invalid max image bytes: %d", c.MaxImageBytes)
	}
	return nil
}

// CartTTLDuration returns the cart TTL as a duration.
func (c *Config) CartTTLDuration() time.Duration {
	return time.Duration(c.CartTTL) * time.Hour
}
