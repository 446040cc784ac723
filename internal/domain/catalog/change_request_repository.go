package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ChangeRequestRepository defines the interface for change request persistence
type ChangeRequestRepository interface {
	// Create creates a new change request
	Create(ctx context.Context, request *ProductChangeRequest) error

	// Update updates an existing change request
	Update(ctx context.Context, request *ProductChangeRequest) error

	// Delete hard-deletes a change request (supplier cancellation)
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByID finds a change request by ID
	FindByID(ctx context.Context, id uuid.UUID) (*ProductChangeRequest, error)

	// FindAll returns change requests matching the filter
	FindAll(ctx context.Context, filter ChangeRequestFilter) ([]*ProductChangeRequest, int64, error)

	// SaveApproval persists the approved request together with the product
	// it materializes (CREATE) or patches (UPDATE) in one transaction.
	SaveApproval(ctx context.Context, request *ProductChangeRequest, product *Product) error
}

// ChangeRequestFilter contains filter options for querying change requests
type ChangeRequestFilter struct {
	Status    *ChangeRequestStatus
	ProductID *uuid.UUID

	Page     int
	PageSize int
}
