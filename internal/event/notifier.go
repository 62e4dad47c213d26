package event

import (
	"context"
	"log/slog"

	"github.com/MobissOficial/mobiss-catalog/internal/domain"
)

// publisher is the subset of Producer the notifier depends on.
type publisher interface {
	PublishProductCreated(ctx context.Context, product *domain.Product) error
	PublishProductUpdated(ctx context.Context, product *domain.Product) error
	PublishProductDeleted(ctx context.Context, productID string) error
	PublishOrderSubmitted(ctx context.Context, cart *domain.Cart) error
}

// Notifier publishes events fire-and-forget: failures are logged and
// never surface to the operation that triggered them.
type Notifier struct {
	producer publisher
	logger   *slog.Logger
}

// NewNotifier wraps a producer for fire-and-forget publishing. A nil
// producer disables publishing entirely.
func NewNotifier(producer *Producer, logger *slog.Logger) *Notifier {
	if producer == nil {
		return &Notifier{logger: logger}
	}
	return &Notifier{producer: producer, logger: logger}
}

func (n *Notifier) publish(ctx context.Context, what string, fn func() error) {
	if n.producer == nil {
		return
	}
	if err := fn(); err != nil {
		n.logger.WarnContext(ctx, "event publish failed",
			slog.String("event", what),
			slog.String("error", err.Error()),
		)
	}
}

// ProductCreated publishes product.created, logging on failure.
func (n *Notifier) ProductCreated(ctx context.Context, product *domain.Product) {
	n.publish(ctx, TopicProductCreated, func() error {
		return n.producer.PublishProductCreated(ctx, product)
	})
}

// ProductUpdated publishes product.updated, logging on failure.
func (n *Notifier) ProductUpdated(ctx context.Context, product *domain.Product) {
	n.publish(ctx, TopicProductUpdated, func() error {
		return n.producer.PublishProductUpdated(ctx, product)
	})
}

// ProductDeleted publishes product.deleted, logging on failure.
func (n *Notifier) ProductDeleted(ctx context.Context, productID string) {
	n.publish(ctx, TopicProductDeleted, func() error {
		return n.producer.PublishProductDeleted(ctx, productID)
	})
}

// OrderSubmitted publishes order.submitted, logging on failure.
func (n *Notifier) OrderSubmitted(ctx context.Context, cart *domain.Cart) {
	n.publish(ctx, TopicOrderSubmitted, func() error {
		return n.producer.PublishOrderSubmitted(ctx, cart)
	})
}
