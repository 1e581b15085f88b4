package catalog

import (
	"context"

	productRepo "patitas/database/repository/product"
	"patitas/models"
)

// featuredCount is how many products the storefront carousel shows.
const featuredCount = 3

// CatalogService exposes storefront product reads.
type CatalogService interface {
	// ListProducts returns the full catalog.
	ListProducts(ctx context.Context) ([]models.Product, error)
	// FeaturedProducts returns the catalog's leading products for the
	// storefront carousel.
	FeaturedProducts(ctx context.Context) ([]models.Product, error)
}

// DefaultCatalogService is the production CatalogService.
type DefaultCatalogService struct {
	Repo productRepo.ProductRepository
}

// ListProducts returns the full catalog.
func (s *DefaultCatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.Repo.GetAll(ctx)
}

// FeaturedProducts returns the first products of the catalog.
func (s *DefaultCatalogService) FeaturedProducts(ctx context.Context) ([]models.Product, error) {
	products, err := s.Repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(products) > featuredCount {
		products = products[:featuredCount]
	}
	return products, nil
}
