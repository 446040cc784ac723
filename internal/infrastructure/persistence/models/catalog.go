package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/packsource/backend/internal/domain/catalog"
	"github.com/packsource/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ProductModel is the persistence model for the Product domain entity.
type ProductModel struct {
	AggregateModel
	Name            string                `gorm:"type:varchar(200);not null"`
	Category        string                `gorm:"type:varchar(100)"`
	Material        string                `gorm:"type:varchar(100)"`
	Spec            string                `gorm:"type:varchar(200)"`
	Image           string                `gorm:"type:text"`
	Stock           int                   `gorm:"not null;default:0"`
	UnitPrice       *decimal.Decimal      `gorm:"type:decimal(18,4)"`
	UnitsPerPackage *int                  `gorm:""`
	PackageCount    *int                  `gorm:""`
	SupplierID      uuid.UUID             `gorm:"type:uuid;not null;index"`
	Status          catalog.ProductStatus `gorm:"type:varchar(20);not null;default:'ACTIVE';index"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product entity.
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		Name:            m.Name,
		Category:        m.Category,
		Material:        m.Material,
		Spec:            m.Spec,
		Image:           m.Image,
		Stock:           m.Stock,
		UnitPrice:       m.UnitPrice,
		UnitsPerPackage: m.UnitsPerPackage,
		PackageCount:    m.PackageCount,
		SupplierID:      m.SupplierID,
		Status:          m.Status,
	}
}

// FromDomain populates the persistence model from a domain Product entity.
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.Name = p.Name
	m.Category = p.Category
	m.Material = p.Material
	m.Spec = p.Spec
	m.Image = p.Image
	m.Stock = p.Stock
	m.UnitPrice = p.UnitPrice
	m.UnitsPerPackage = p.UnitsPerPackage
	m.PackageCount = p.PackageCount
	m.SupplierID = p.SupplierID
	m.Status = p.Status
}

// ProductModelFromDomain creates a new persistence model from a domain Product entity.
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}

// ChangeRequestModel is the persistence model for the ProductChangeRequest domain entity.
// PendingChanges is stored as a jsonb document.
type ChangeRequestModel struct {
	AggregateModel
	ProductID      *uuid.UUID                  `gorm:"type:uuid;index"`
	ChangeType     catalog.ChangeType          `gorm:"type:varchar(20);not null"`
	Status         catalog.ChangeRequestStatus `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	PendingChanges string                      `gorm:"type:jsonb;not null;default:'{}'"`
	ReviewedBy     *uuid.UUID                  `gorm:"type:uuid"`
	ReviewedAt     *time.Time
	RejectReason   string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ChangeRequestModel) TableName() string {
	return "product_change_requests"
}

// ToDomain converts the persistence model to a domain ProductChangeRequest entity.
// A malformed jsonb document yields an empty change set rather than an error.
func (m *ChangeRequestModel) ToDomain() *catalog.ProductChangeRequest {
	changes := catalog.PendingChanges{}
	if m.PendingChanges != "" {
		_ = json.Unmarshal([]byte(m.PendingChanges), &changes)
	}

	productID := uuid.Nil
	if m.ProductID != nil {
		productID = *m.ProductID
	}

	return &catalog.ProductChangeRequest{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		ProductID:      productID,
		ChangeType:     m.ChangeType,
		Status:         m.Status,
		PendingChanges: changes,
		ReviewedBy:     m.ReviewedBy,
		ReviewedAt:     m.ReviewedAt,
		RejectReason:   m.RejectReason,
	}
}

// FromDomain populates the persistence model from a domain ProductChangeRequest entity.
func (m *ChangeRequestModel) FromDomain(r *catalog.ProductChangeRequest) {
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	if r.ProductID != uuid.Nil {
		productID := r.ProductID
		m.ProductID = &productID
	} else {
		m.ProductID = nil
	}
	m.ChangeType = r.ChangeType
	m.Status = r.Status
	m.ReviewedBy = r.ReviewedBy
	m.ReviewedAt = r.ReviewedAt
	m.RejectReason = r.RejectReason

	data, err := json.Marshal(r.PendingChanges)
	if err != nil {
		data = []byte("{}")
	}
	m.PendingChanges = string(data)
}

// ChangeRequestModelFromDomain creates a new persistence model from a domain ProductChangeRequest entity.
func ChangeRequestModelFromDomain(r *catalog.ProductChangeRequest) *ChangeRequestModel {
	m := &ChangeRequestModel{}
	m.FromDomain(r)
	return m
}
