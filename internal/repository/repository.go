package repository

import (
	"context"

	"github.com/MobissOficial/mobiss-catalog/internal/domain"
)

// ProductRepository defines the interface for catalog persistence.
type ProductRepository interface {
	// ListAll returns every product in the catalog.
	ListAll(ctx context.Context) ([]*domain.Product, error)

	// GetByID retrieves a single product.
	GetByID(ctx context.Context, id string) (*domain.Product, error)

	// Create persists a new product and returns the store-issued identifier.
	Create(ctx context.Context, product *domain.Product) (string, error)

	// Update overwrites an existing product's data. The identifier is
	// addressed by the id argument, never carried in the payload.
	Update(ctx context.Context, id string, product *domain.Product) error

	// Delete removes a product by its identifier.
	Delete(ctx context.Context, id string) error
}

// CartRepository defines the interface for cart persistence.
type CartRepository interface {
	// Get retrieves a cart by session ID.
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)

	// Save persists a cart, overwriting any existing cart for the session.
	Save(ctx context.Context, cart *domain.Cart) error

	// Delete removes a cart by session ID.
	Delete(ctx context.Context, sessionID string) error
}
