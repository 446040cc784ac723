package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// Create creates a new product
	Create(ctx context.Context, product *Product) error

	// Update updates an existing product
	Update(ctx context.Context, product *Product) error

	// Delete hard-deletes a product
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByID finds a product by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindAll returns products matching the filter
	FindAll(ctx context.Context, filter ProductFilter) ([]*Product, int64, error)

	// CountActiveBySupplier counts a supplier's ACTIVE products
	CountActiveBySupplier(ctx context.Context, supplierID uuid.UUID) (int64, error)

	// CountByStatus returns product counts grouped by status
	CountByStatus(ctx context.Context) (map[ProductStatus]int64, error)

	// TotalStock sums stock across all non-delisted products
	TotalStock(ctx context.Context) (int64, error)
}

// ProductFilter contains filter options for querying products
type ProductFilter struct {
	SupplierID *uuid.UUID
	Status     *ProductStatus
	Keyword    string

	SortBy    string
	SortOrder string

	Page     int
	PageSize int
}
