package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/packsource/backend/internal/domain/catalog"
	"github.com/packsource/backend/internal/domain/identity"
	"github.com/shopspring/decimal"
)

// Actor identifies the authenticated caller for ownership checks
type Actor struct {
	ID   uuid.UUID
	Role string
}

// IsPlatform reports whether the caller audits the catalog
func (a Actor) IsPlatform() bool {
	return a.Role == string(identity.RolePlatform)
}

// IsSupplier reports whether the caller is a supplier account
func (a Actor) IsSupplier() bool {
	return a.Role == string(identity.RoleSupplier)
}

// CreateProductRequest represents a request to list a new product
type CreateProductRequest struct {
	Name            string           `json:"name" binding:"required,min=1,max=200"`
	Category        string           `json:"category" binding:"required"`
	Material        string           `json:"material" binding:"required"`
	Spec            string           `json:"spec" binding:"required"`
	Image           string           `json:"image" binding:"required"`
	Stock           *int             `json:"stock"`
	SupplierID      uuid.UUID        `json:"supplierId" binding:"required"`
	UnitPrice       *decimal.Decimal `json:"unitPrice"`
	UnitsPerPackage *int             `json:"unitsPerPackage"`
	PackageCount    *int             `json:"packageCount"`
}

// UpdateProductRequest represents a direct product update.
// Review-gated fields are present so attempts to change them can be
// detected and refused.
type UpdateProductRequest struct {
	Name            string           `json:"name" binding:"required,min=1,max=200"`
	Category        *string          `json:"category"`
	Material        *string          `json:"material"`
	Spec            *string          `json:"spec"`
	Image           string           `json:"image"`
	Stock           *int             `json:"stock"`
	UnitPrice       *decimal.Decimal `json:"unitPrice"`
	UnitsPerPackage *int             `json:"unitsPerPackage"`
	PackageCount    *int             `json:"packageCount"`
}

// UpdateProductStatusRequest moves a product through its lifecycle
type UpdateProductStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ListProductsQuery filters the product list
type ListProductsQuery struct {
	SupplierID *uuid.UUID `form:"supplierId"`
	Status     string     `form:"status"`
	Keyword    string     `form:"keyword"`
	SortBy     string     `form:"sortBy"`
	SortOrder  string     `form:"sortOrder"`
	Page       int        `form:"page"`
	PageSize   int        `form:"pageSize"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID              uuid.UUID        `json:"id"`
	Name            string           `json:"name"`
	Category        string           `json:"category"`
	Material        string           `json:"material"`
	Spec            string           `json:"spec"`
	Image           string           `json:"image"`
	Stock           int              `json:"stock"`
	SupplierID      uuid.UUID        `json:"supplierId"`
	Status          string           `json:"status"`
	UnitPrice       *decimal.Decimal `json:"unitPrice,omitempty"`
	UnitsPerPackage *int             `json:"unitsPerPackage,omitempty"`
	PackageCount    *int             `json:"packageCount,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

// ToProductResponse converts a domain product to its API representation
func ToProductResponse(product *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:              product.ID,
		Name:            product.Name,
		Category:        product.Category,
		Material:        product.Material,
		Spec:            product.Spec,
		Image:           product.Image,
		Stock:           product.Stock,
		SupplierID:      product.SupplierID,
		Status:          string(product.Status),
		UnitPrice:       product.UnitPrice,
		UnitsPerPackage: product.UnitsPerPackage,
		PackageCount:    product.PackageCount,
		CreatedAt:       product.CreatedAt,
		UpdatedAt:       product.UpdatedAt,
	}
}

// SubmitChangeRequest represents a supplier's change proposal
type SubmitChangeRequest struct {
	ProductID      *uuid.UUID             `json:"productId"`
	ChangeType     string                 `json:"changeType" binding:"required"`
	PendingChanges map[string]interface{} `json:"pendingChanges" binding:"required"`
}

// RejectChangeRequest carries the mandatory rejection reason
type RejectChangeRequest struct {
	RejectReason string `json:"rejectReason" binding:"required"`
}

// CancelChangeRequest identifies the supplier withdrawing a request
type CancelChangeRequest struct {
	SupplierID uuid.UUID `json:"supplierId" binding:"required"`
}

// ListChangeRequestsQuery filters the change request list
type ListChangeRequestsQuery struct {
	Status    string     `form:"status"`
	ProductID *uuid.UUID `form:"productId"`
	Page      int        `form:"page"`
	PageSize  int        `form:"pageSize"`
}

// ChangeRequestResponse represents a change request in API responses
type ChangeRequestResponse struct {
	ID             uuid.UUID              `json:"id"`
	ProductID      *uuid.UUID             `json:"productId,omitempty"`
	ChangeType     string                 `json:"changeType"`
	Status         string                 `json:"status"`
	PendingChanges map[string]interface{} `json:"pendingChanges"`
	ReviewedBy     *uuid.UUID             `json:"reviewedBy,omitempty"`
	ReviewedAt     *time.Time             `json:"reviewedAt,omitempty"`
	RejectReason   string                 `json:"rejectReason,omitempty"`
	CreatedAt      time.Time              `json:"createdAt"`
	UpdatedAt      time.Time              `json:"updatedAt"`
}

// ToChangeRequestResponse converts a domain change request to its API representation
func ToChangeRequestResponse(request *catalog.ProductChangeRequest) ChangeRequestResponse {
	resp := ChangeRequestResponse{
		ID:             request.ID,
		ChangeType:     string(request.ChangeType),
		Status:         string(request.Status),
		PendingChanges: request.PendingChanges,
		ReviewedBy:     request.ReviewedBy,
		ReviewedAt:     request.ReviewedAt,
		RejectReason:   request.RejectReason,
		CreatedAt:      request.CreatedAt,
		UpdatedAt:      request.UpdatedAt,
	}
	if request.ProductID != uuid.Nil {
		productID := request.ProductID
		resp.ProductID = &productID
	}
	return resp
}
