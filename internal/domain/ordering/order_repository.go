package ordering

import (
	"context"

	"github.com/google/uuid"
)

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// Create creates a new order
	Create(ctx context.Context, order *Order) error

	// Update updates an existing order
	Update(ctx context.Context, order *Order) error

	// FindByID finds an order by ID, logistics included
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindAll returns orders matching the filter
	FindAll(ctx context.Context, filter OrderFilter) ([]*Order, int64, error)

	// SaveShipment persists the shipped status, the logistics record, and
	// the conditional stock decrement in one transaction. It fails with
	// INSUFFICIENT_STOCK when the product no longer covers the quantity.
	SaveShipment(ctx context.Context, order *Order) error

	// CountByStatus returns order counts grouped by status
	CountByStatus(ctx context.Context) (map[OrderStatus]int64, error)

	// TotalQuantity sums ordered units across all non-rejected orders
	TotalQuantity(ctx context.Context) (int64, error)
}

// OrderFilter contains filter options for querying orders
type OrderFilter struct {
	ManufacturerID *uuid.UUID
	ProductID      *uuid.UUID
	SupplierID     *uuid.UUID
	Status         *OrderStatus

	SortBy    string
	SortOrder string

	Page     int
	PageSize int
}
