package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/MobissOficial/mobiss-catalog/internal/domain"
	"github.com/MobissOficial/mobiss-catalog/internal/handoff"
	"github.com/MobissOficial/mobiss-catalog/internal/repository"
	apperrors "github.com/MobissOficial/mobiss-catalog/pkg/errors"
	"github.com/MobissOficial/mobiss-catalog/pkg/money"
)

// orderEvents receives notifications after a submitted order.
type orderEvents interface {
	OrderSubmitted(ctx context.Context, cart *domain.Cart)
}

// CartService manages per-session carts and the checkout handoff.
type CartService struct {
	carts    repository.CartRepository
	products repository.ProductRepository
	sender   handoff.Sender
	events   orderEvents
	logger   *slog.Logger
}

// NewCartService creates a cart service.
func NewCartService(
	carts repository.CartRepository,
	products repository.ProductRepository,
	sender handoff.Sender,
	events orderEvents,
	logger *slog.Logger,
) *CartService {
	return &CartService{
		carts:    carts,
		products: products,
		sender:   sender,
		events:   events,
		logger:   logger,
	}
}

// GetCart returns the session's cart; a session with no stored cart
// gets an empty one.
func (s *CartService) GetCart(ctx context.Context, sessionID string) (*domain.Cart, error) {
	cart, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.NewCart(sessionID), nil
		}
		return nil, err
	}
	return cart, nil
}

// AddLine adds a product (optionally a specific color) to the cart.
// Price and photo are snapshotted from the product at add time; a
// matching line merges instead of appending.
func (s *CartService) AddLine(ctx context.Context, sessionID, productID string, color *string) (*domain.Cart, error) {
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	cart, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	colorName := ""
	if color != nil {
		colorName = *color
	}
	image := product.ImageFor(colorName)
	if image == "" {
		image = product.Category.Glyph()
	}

	cart.AddLine(domain.CartLine{
		ProductID:      productID,
		Name:           product.Name,
		UnitPriceCents: product.PriceCents,
		Color:          color,
		Image:          image,
		Quantity:       1,
	})

	if err := s.saveCart(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// SetQuantity updates a line's quantity; below 1 the line is removed.
func (s *CartService) SetQuantity(ctx context.Context, sessionID string, index, quantity int) (*domain.Cart, error) {
	cart, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	cart.SetQuantity(index, quantity)

	if err := s.saveCart(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveLine removes the line at index; stale indices are ignored.
func (s *CartService) RemoveLine(ctx context.Context, sessionID string, index int) (*domain.Cart, error) {
	cart, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	cart.RemoveLine(index)

	if err := s.saveCart(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartService) saveCart(ctx context.Context, cart *domain.Cart) error {
	cart.UpdatedAt = time.Now().UTC()
	return s.carts.Save(ctx, cart)
}

// CheckoutResult is returned to the shopper after checkout.
type CheckoutResult struct {
	Message    string `json:"message"`
	DeepLink   string `json:"deep_link,omitempty"`
	TotalCents int64  `json:"total_cents"`
	ItemCount  int    `json:"item_count"`
}

// Checkout composes the order message, hands it to the messaging
// channel and clears the cart. The cart is cleared no matter how the
// handoff went; an unreachable channel must not leave the shopper with
// a stuck cart.
func (s *CartService) Checkout(ctx context.Context, sessionID string) (*CheckoutResult, error) {
	cart, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, apperrors.InvalidInput("cart is empty")
	}

	message := ComposeOrderMessage(cart)
	result := &CheckoutResult{
		Message:    message,
		TotalCents: cart.TotalCents(),
		ItemCount:  cart.ItemCount(),
	}

	sendRes, err := s.sender.Send(ctx, handoff.Order{
		SessionID:  sessionID,
		Message:    message,
		TotalCents: cart.TotalCents(),
	})
	if err != nil {
		s.logger.WarnContext(ctx, "order handoff failed",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)
	} else if sendRes != nil {
		result.DeepLink = sendRes.DeepLink
	}

	s.events.OrderSubmitted(ctx, cart)

	if err := s.carts.Delete(ctx, sessionID); err != nil {
		s.logger.ErrorContext(ctx, "failed to clear cart after checkout",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "order submitted",
		slog.String("session_id", sessionID),
		slog.Int("item_count", cart.ItemCount()),
		slog.Int64("total_cents", cart.TotalCents()),
	)
	return result, nil
}

// ComposeOrderMessage renders the WhatsApp order text: a greeting, one
// line per cart entry with its quantity, color and pt-BR line total,
// and the bolded total.
func ComposeOrderMessage(cart *domain.Cart) string {
	var b strings.Builder
	b.WriteString("Oi! Quero fazer um pedido:\n\n")

	for _, line := range cart.Lines {
		fmt.Fprintf(&b, "%dx %s", line.Quantity, line.Name)
		if line.Color != nil && *line.Color != "" {
			fmt.Fprintf(&b, " (%s)", *line.Color)
		}
		fmt.Fprintf(&b, " - %s\n", money.FormatBRL(line.LineTotalCents()))
	}

	fmt.Fprintf(&b, "\n*Total: %s*", money.FormatBRL(cart.TotalCents()))
	return b.String()
}
