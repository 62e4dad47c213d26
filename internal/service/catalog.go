package service

import (
	"context"
	"log/slog"

	"github.com/MobissOficial/mobiss-catalog/internal/domain"
	"github.com/MobissOficial/mobiss-catalog/internal/repository"
)

// productEvents receives notifications after catalog mutations.
type productEvents interface {
	ProductDeleted(ctx context.Context, productID string)
}

// CatalogService serves the product catalog: filtered listings for the
// storefront and management operations for the admin.
type CatalogService struct {
	products repository.ProductRepository
	events   productEvents
	logger   *slog.Logger
}

// NewCatalogService creates a catalog service.
func NewCatalogService(products repository.ProductRepository, events productEvents, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		products: products,
		events:   events,
		logger:   logger,
	}
}

// ListProducts returns the catalog filtered by category, model and
// search text. The filter dimensions combine with AND.
func (s *CatalogService) ListProducts(ctx context.Context, filter domain.Filter) ([]*domain.Product, error) {
	products, err := s.products.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return domain.FilterProducts(products, filter), nil
}

// GetProduct returns a single product.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return s.products.GetByID(ctx, id)
}

// DeleteProduct removes a product from the catalog.
func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}

	s.events.ProductDeleted(ctx, id)
	s.logger.InfoContext(ctx, "product deleted", slog.String("product_id", id))
	return nil
}

// CatalogStats summarizes the catalog for the admin dashboard.
type CatalogStats struct {
	TotalProducts int            `json:"total_products"`
	ByCategory    map[string]int `json:"by_category"`
	WithPhoto     int            `json:"with_photo"`
	WithoutPhoto  int            `json:"without_photo"`
}

// Stats computes catalog statistics.
func (s *CatalogService) Stats(ctx context.Context) (*CatalogStats, error) {
	products, err := s.products.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	stats := &CatalogStats{
		TotalProducts: len(products),
		ByCategory:    make(map[string]int),
	}
	for _, p := range products {
		stats.ByCategory[string(p.Category)]++
		if p.ImageFor("") != "" {
			stats.WithPhoto++
		} else {
			stats.WithoutPhoto++
		}
	}
	return stats, nil
}
