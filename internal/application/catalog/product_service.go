package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/packsource/backend/internal/domain/catalog"
	"github.com/packsource/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ProductService handles catalog operations
type ProductService struct {
	productRepo catalog.ProductRepository
	logger      *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository, logger *zap.Logger) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		logger:      logger,
	}
}

// Create lists a new product for a supplier, subject to the active cap
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	active, err := s.productRepo.CountActiveBySupplier(ctx, req.SupplierID)
	if err != nil {
		return nil, err
	}
	if active >= catalog.MaxActiveProductsPerSupplier {
		return nil, shared.NewDomainError("PRODUCT_LIMIT_REACHED",
			fmt.Sprintf("Supplier already has %d active products", catalog.MaxActiveProductsPerSupplier))
	}

	product, err := catalog.NewProduct(req.SupplierID, req.Name, req.Category, req.Material, req.Spec, req.Image)
	if err != nil {
		return nil, err
	}
	if err := product.SetUnitPrice(req.UnitPrice); err != nil {
		return nil, err
	}
	if req.Stock != nil {
		if err := product.SetStock(*req.Stock); err != nil {
			return nil, err
		}
	}
	if err := product.SetPackaging(req.UnitsPerPackage, req.PackageCount); err != nil {
		return nil, err
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("Product listed",
		zap.String("product_id", product.ID.String()),
		zap.String("supplier_id", product.SupplierID.String()))

	resp := ToProductResponse(product)
	return &resp, nil
}

// Get returns a single product by ID
func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := ToProductResponse(product)
	return &resp, nil
}

// List returns products matching the query
func (s *ProductService) List(ctx context.Context, query ListProductsQuery) ([]ProductResponse, int64, error) {
	filter := catalog.ProductFilter{
		SupplierID: query.SupplierID,
		Keyword:    query.Keyword,
		SortBy:     query.SortBy,
		SortOrder:  query.SortOrder,
		Page:       query.Page,
		PageSize:   query.PageSize,
	}
	if query.Status != "" {
		status := catalog.ProductStatus(query.Status)
		filter.Status = &status
	}

	products, total, err := s.productRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ProductResponse, len(products))
	for i, product := range products {
		responses[i] = ToProductResponse(product)
	}

	return responses, total, nil
}

// requireOwnership refuses suppliers acting on another supplier's product
func requireOwnership(actor Actor, product *catalog.Product) error {
	if actor.IsSupplier() && actor.ID != product.SupplierID {
		return shared.NewDomainError("FORBIDDEN", "Product belongs to another supplier")
	}
	return nil
}

// Update applies a direct update to the mutable fields.
// Attempts to change review-gated fields are refused; those go through
// a change request instead.
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest, actor Actor) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireOwnership(actor, product); err != nil {
		return nil, err
	}

	patch := catalog.SensitiveFieldPatch{
		Category:  req.Category,
		Material:  req.Material,
		Spec:      req.Spec,
		UnitPrice: req.UnitPrice,
	}
	if patch.HasChanges(product) {
		return nil, shared.NewDomainError("FORBIDDEN",
			"Category, material, spec, and unit price changes require a change request")
	}

	if err := product.UpdateDetails(req.Name, req.Image, req.Stock, req.UnitsPerPackage, req.PackageCount); err != nil {
		return nil, err
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	resp := ToProductResponse(product)
	return &resp, nil
}

// UpdateStatus moves a product through its lifecycle.
// Delisting is reserved for the platform; suppliers only toggle their
// own products.
func (s *ProductService) UpdateStatus(ctx context.Context, id uuid.UUID, req UpdateProductStatusRequest, actor Actor) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if catalog.ProductStatus(req.Status) == catalog.ProductStatusDelisted && !actor.IsPlatform() {
		return nil, shared.NewDomainError("FORBIDDEN", "Only the platform can delist a product")
	}
	if err := requireOwnership(actor, product); err != nil {
		return nil, err
	}

	switch catalog.ProductStatus(req.Status) {
	case catalog.ProductStatusActive:
		err = product.Activate()
	case catalog.ProductStatusInactive:
		err = product.Deactivate()
	case catalog.ProductStatusDelisted:
		err = product.Delist()
	default:
		err = shared.NewDomainError("VALIDATION_ERROR", "Unknown product status")
	}
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("Product status changed",
		zap.String("product_id", product.ID.String()),
		zap.String("status", string(product.Status)))

	resp := ToProductResponse(product)
	return &resp, nil
}

// Delete hard-deletes a product
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID, actor Actor) error {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := requireOwnership(actor, product); err != nil {
		return err
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Product deleted", zap.String("product_id", id.String()))

	return nil
}
