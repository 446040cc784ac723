package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/packsource/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ProductStatus represents the lifecycle status of a product
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "ACTIVE"   // Listed and orderable
	ProductStatusInactive ProductStatus = "INACTIVE" // Deactivated by the supplier
	ProductStatusDelisted ProductStatus = "DELISTED" // Delisted by the platform, terminal
)

// CanTransitionTo checks if transition to target status is allowed
func (s ProductStatus) CanTransitionTo(target ProductStatus) bool {
	switch s {
	case ProductStatusActive:
		return target == ProductStatusInactive || target == ProductStatusDelisted
	case ProductStatusInactive:
		return target == ProductStatusActive || target == ProductStatusDelisted
	case ProductStatusDelisted:
		return false
	default:
		return false
	}
}

// MaxActiveProductsPerSupplier caps how many listed products one supplier may hold
const MaxActiveProductsPerSupplier = 5

// Product represents a packaging product offered by a supplier
// It is the aggregate root for catalog operations
type Product struct {
	shared.BaseAggregateRoot
	Name            string
	Category        string
	Material        string
	Spec            string
	Image           string
	Stock           int
	UnitPrice       *decimal.Decimal
	UnitsPerPackage *int
	PackageCount    *int
	SupplierID      uuid.UUID
	Status          ProductStatus
}

// NewProduct creates a new active product for a supplier
func NewProduct(supplierID uuid.UUID, name, category, material, spec, image string) (*Product, error) {
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier ID cannot be empty")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Category:          strings.TrimSpace(category),
		Material:          strings.TrimSpace(material),
		Spec:              strings.TrimSpace(spec),
		Image:             image,
		SupplierID:        supplierID,
		Status:            ProductStatusActive,
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// SetUnitPrice sets the price of the smallest sellable unit
func (p *Product) SetUnitPrice(price *decimal.Decimal) error {
	if price != nil && price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	p.UnitPrice = price
	return nil
}

// SetPackaging sets the package arithmetic fields.
// When both are set, stock is recomputed as unitsPerPackage * packageCount.
func (p *Product) SetPackaging(unitsPerPackage, packageCount *int) error {
	if unitsPerPackage != nil && *unitsPerPackage < 1 {
		return shared.NewDomainError("INVALID_PACKAGING", "Units per package must be at least 1")
	}
	if packageCount != nil && *packageCount < 0 {
		return shared.NewDomainError("INVALID_PACKAGING", "Package count cannot be negative")
	}

	p.UnitsPerPackage = unitsPerPackage
	p.PackageCount = packageCount
	if unitsPerPackage != nil && packageCount != nil {
		p.Stock = *unitsPerPackage * *packageCount
	}

	return nil
}

// SetStock sets the stock level directly
func (p *Product) SetStock(stock int) error {
	if stock < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}
	p.Stock = stock
	return nil
}

// SensitiveFieldPatch carries proposed values for review-gated fields
type SensitiveFieldPatch struct {
	Category  *string
	Material  *string
	Spec      *string
	UnitPrice *decimal.Decimal
}

// HasChanges reports whether the patch actually changes the product
func (patch SensitiveFieldPatch) HasChanges(p *Product) bool {
	if patch.Category != nil && *patch.Category != p.Category {
		return true
	}
	if patch.Material != nil && *patch.Material != p.Material {
		return true
	}
	if patch.Spec != nil && *patch.Spec != p.Spec {
		return true
	}
	if patch.UnitPrice != nil {
		if p.UnitPrice == nil || !patch.UnitPrice.Equal(*p.UnitPrice) {
			return true
		}
	}
	return false
}

// UpdateDetails updates the directly mutable fields.
// Category, material, spec, and unit price only change through an
// approved change request. Absent packaging values leave the stored
// ones untouched; stock is recomputed only when both are supplied.
func (p *Product) UpdateDetails(name, image string, stock *int, unitsPerPackage, packageCount *int) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}

	p.Name = name
	if image != "" {
		p.Image = image
	}
	if stock != nil {
		if err := p.SetStock(*stock); err != nil {
			return err
		}
	}
	if unitsPerPackage != nil {
		if *unitsPerPackage < 1 {
			return shared.NewDomainError("INVALID_PACKAGING", "Units per package must be at least 1")
		}
		p.UnitsPerPackage = unitsPerPackage
	}
	if packageCount != nil {
		if *packageCount < 0 {
			return shared.NewDomainError("INVALID_PACKAGING", "Package count cannot be negative")
		}
		p.PackageCount = packageCount
	}
	if unitsPerPackage != nil && packageCount != nil {
		p.Stock = *unitsPerPackage * *packageCount
	}

	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// ApplyReviewedPatch applies reviewer-approved sensitive field changes
func (p *Product) ApplyReviewedPatch(patch SensitiveFieldPatch) {
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Material != nil {
		p.Material = *patch.Material
	}
	if patch.Spec != nil {
		p.Spec = *patch.Spec
	}
	if patch.UnitPrice != nil {
		p.UnitPrice = patch.UnitPrice
	}

	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// transitionTo moves the product to the target status
func (p *Product) transitionTo(target ProductStatus) error {
	if !p.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE",
			"Cannot transition product from "+string(p.Status)+" to "+string(target))
	}

	oldStatus := p.Status
	p.Status = target
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductStatusChangedEvent(p, oldStatus, target))

	return nil
}

// Activate relists an inactive product
func (p *Product) Activate() error {
	return p.transitionTo(ProductStatusActive)
}

// Deactivate takes the product off the shelf, supplier-initiated
func (p *Product) Deactivate() error {
	return p.transitionTo(ProductStatusInactive)
}

// Delist removes the product permanently, platform-initiated
func (p *Product) Delist() error {
	return p.transitionTo(ProductStatusDelisted)
}

// IsOrderable reports whether new orders may reference this product
func (p *Product) IsOrderable() bool {
	return p.Status == ProductStatusActive
}

// DecrementStock reduces stock after a shipment
func (p *Product) DecrementStock(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if p.Stock < quantity {
		return shared.NewDomainError("INSUFFICIENT_STOCK", "Not enough stock to ship this order")
	}

	p.Stock -= quantity
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}
