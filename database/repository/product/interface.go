package productRepo

import (
	"context"

	"patitas/models"
)

// ProductRepository defines catalog data access.
type ProductRepository interface {
	// GetAll retrieves the full catalog.
	GetAll(ctx context.Context) ([]models.Product, error)
	// GetByIDs retrieves the products matching the given IDs.
	GetByIDs(ctx context.Context, ids []string) ([]models.Product, error)
	// Create inserts a new product record.
	Create(ctx context.Context, product *models.Product) error
}
