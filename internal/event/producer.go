package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/MobissOficial/mobiss-catalog/internal/domain"
	pkgkafka "github.com/MobissOficial/mobiss-catalog/pkg/kafka"
)

// Kafka topic constants for storefront domain events.
const (
	TopicProductCreated = "storefront.product.created"
	TopicProductUpdated = "storefront.product.updated"
	TopicProductDeleted = "storefront.product.deleted"
	TopicOrderSubmitted = "storefront.order.submitted"
)

// Aggregate type constants.
const (
	AggregateTypeProduct = "product"
	AggregateTypeOrder   = "order"
)

// Source identifier for events originating from this service.
const SourceCatalog = "mobiss-catalog"

// ProductData is the payload for product lifecycle events.
type ProductData struct {
	ProductID  string `json:"product_id"`
	Name       string `json:"name"`
	Category   string `json:"category"`
	PriceCents int64  `json:"price_cents"`
	HasPhoto   bool   `json:"has_photo"`
}

// ProductDeletedData is the payload for a product.deleted event.
type ProductDeletedData struct {
	ProductID string `json:"product_id"`
}

// OrderLineData is a line within an order.submitted event.
type OrderLineData struct {
	ProductID      string  `json:"product_id"`
	Name           string  `json:"name"`
	Color          *string `json:"color,omitempty"`
	UnitPriceCents int64   `json:"unit_price_cents"`
	Quantity       int     `json:"quantity"`
}

// OrderSubmittedData is the payload for an order.submitted event.
type OrderSubmittedData struct {
	SessionID  string          `json:"session_id"`
	Lines      []OrderLineData `json:"lines"`
	ItemCount  int             `json:"item_count"`
	TotalCents int64           `json:"total_cents"`
}

// Producer publishes storefront domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

func productData(p *domain.Product) ProductData {
	return ProductData{
		ProductID:  p.ID.String(),
		Name:       p.Name,
		Category:   string(p.Category),
		PriceCents: p.PriceCents,
		HasPhoto:   p.ImageFor("") != "",
	}
}

// PublishProductCreated publishes a product.created event.
func (p *Producer) PublishProductCreated(ctx context.Context, product *domain.Product) error {
	event, err := pkgkafka.NewEvent(TopicProductCreated, product.ID.String(), AggregateTypeProduct, SourceCatalog, productData(product))
	if err != nil {
		return fmt.Errorf("create product.created event: %w", err)
	}
	if err := p.kafka.Publish(ctx, TopicProductCreated, event); err != nil {
		return fmt.Errorf("publish product.created event: %w", err)
	}
	return nil
}

// PublishProductUpdated publishes a product.updated event.
func (p *Producer) PublishProductUpdated(ctx context.Context, product *domain.Product) error {
	event, err := pkgkafka.NewEvent(TopicProductUpdated, product.ID.String(), AggregateTypeProduct, SourceCatalog, productData(product))
	if err != nil {
		return fmt.Errorf("create product.updated event: %w", err)
	}
	if err := p.kafka.Publish(ctx, TopicProductUpdated, event); err != nil {
		return fmt.Errorf("publish product.updated event: %w", err)
	}
	return nil
}

// PublishProductDeleted publishes a product.deleted event.
func (p *Producer) PublishProductDeleted(ctx context.Context, productID string) error {
	event, err := pkgkafka.NewEvent(TopicProductDeleted, productID, AggregateTypeProduct, SourceCatalog, ProductDeletedData{ProductID: productID})
	if err != nil {
		return fmt.Errorf("create product.deleted event: %w", err)
	}
	if err := p.kafka.Publish(ctx, TopicProductDeleted, event); err != nil {
		return fmt.Errorf("publish product.deleted event: %w", err)
	}
	return nil
}

// PublishOrderSubmitted publishes an order.submitted event.
func (p *Producer) PublishOrderSubmitted(ctx context.Context, cart *domain.Cart) error {
	lines := make([]OrderLineData, len(cart.Lines))
	for i, l := range cart.Lines {
		lines[i] = OrderLineData{
			ProductID:      l.ProductID,
			Name:           l.Name,
			Color:          l.Color,
			UnitPriceCents: l.UnitPriceCents,
			Quantity:       l.Quantity,
		}
	}

	data := OrderSubmittedData{
		SessionID:  cart.SessionID,
		Lines:      lines,
		ItemCount:  cart.ItemCount(),
		TotalCents: cart.TotalCents(),
	}

	event, err := pkgkafka.NewEvent(TopicOrderSubmitted, cart.SessionID, AggregateTypeOrder, SourceCatalog, data)
	if err != nil {
		return fmt.Errorf("create order.submitted event: %w", err)
	}
	if err := p.kafka.Publish(ctx, TopicOrderSubmitted, event); err != nil {
		return fmt.Errorf("publish order.submitted event: %w", err)
	}
	return nil
}
