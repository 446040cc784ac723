package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/packsource/backend/internal/domain/catalog"
	"github.com/packsource/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ChangeRequestService handles the product change review workflow
type ChangeRequestService struct {
	requestRepo catalog.ChangeRequestRepository
	productRepo catalog.ProductRepository
	logger      *zap.Logger
}

// NewChangeRequestService creates a new ChangeRequestService
func NewChangeRequestService(
	requestRepo catalog.ChangeRequestRepository,
	productRepo catalog.ProductRepository,
	logger *zap.Logger,
) *ChangeRequestService {
	return &ChangeRequestService{
		requestRepo: requestRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

// Submit files a new change request for platform review
func (s *ChangeRequestService) Submit(ctx context.Context, req SubmitChangeRequest) (*ChangeRequestResponse, error) {
	productID := uuid.Nil
	if req.ProductID != nil {
		productID = *req.ProductID
	}

	if productID != uuid.Nil {
		if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("NOT_FOUND", "Product not found")
			}
			return nil, err
		}
	}

	request, err := catalog.NewChangeRequest(productID, catalog.ChangeType(req.ChangeType), req.PendingChanges)
	if err != nil {
		return nil, err
	}

	if err := s.requestRepo.Create(ctx, request); err != nil {
		return nil, err
	}

	s.logger.Info("Change request submitted",
		zap.String("request_id", request.ID.String()),
		zap.String("change_type", string(request.ChangeType)))

	resp := ToChangeRequestResponse(request)
	return &resp, nil
}

// List returns change requests matching the query
func (s *ChangeRequestService) List(ctx context.Context, query ListChangeRequestsQuery) ([]ChangeRequestResponse, int64, error) {
	filter := catalog.ChangeRequestFilter{
		ProductID: query.ProductID,
		Page:      query.Page,
		PageSize:  query.PageSize,
	}
	if query.Status != "" {
		status := catalog.ChangeRequestStatus(query.Status)
		filter.Status = &status
	}

	requests, total, err := s.requestRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ChangeRequestResponse, len(requests))
	for i, request := range requests {
		responses[i] = ToChangeRequestResponse(request)
	}

	return responses, total, nil
}

// Approve accepts a pending request. CREATE requests materialize a new
// active product, UPDATE requests patch the fields present in the
// payload. The product write and the request status change are
// persisted in one transaction.
func (s *ChangeRequestService) Approve(ctx context.Context, requestID, reviewerID uuid.UUID) error {
	request, err := s.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return err
	}

	if !request.IsPending() {
		return shared.NewDomainError("CONFLICT", "Change request has already been reviewed")
	}

	var product *catalog.Product
	switch request.ChangeType {
	case catalog.ChangeTypeCreate:
		product, err = s.materializeProduct(ctx, request)
	case catalog.ChangeTypeUpdate:
		product, err = s.patchProduct(ctx, request)
	default:
		err = shared.NewDomainError("VALIDATION_ERROR", "Unknown change type")
	}
	if err != nil {
		return err
	}

	if err := request.Approve(reviewerID); err != nil {
		return err
	}

	if err := s.requestRepo.SaveApproval(ctx, request, product); err != nil {
		return err
	}

	s.logger.Info("Change request approved",
		zap.String("request_id", request.ID.String()),
		zap.String("reviewer_id", reviewerID.String()),
		zap.String("product_id", product.ID.String()))

	return nil
}

// Reject declines a pending request with a reason
func (s *ChangeRequestService) Reject(ctx context.Context, requestID, reviewerID uuid.UUID, req RejectChangeRequest) error {
	request, err := s.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return err
	}

	if err := request.Reject(reviewerID, req.RejectReason); err != nil {
		return err
	}

	if err := s.requestRepo.Update(ctx, request); err != nil {
		return err
	}

	s.logger.Info("Change request rejected",
		zap.String("request_id", request.ID.String()),
		zap.String("reviewer_id", reviewerID.String()))

	return nil
}

// Cancel withdraws a pending request. Only the owning supplier may
// cancel, and the record is hard-deleted. Ownership is checked before
// the pending gate, so a non-owner is refused whatever the status.
func (s *ChangeRequestService) Cancel(ctx context.Context, requestID uuid.UUID, req CancelChangeRequest) error {
	request, err := s.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return err
	}

	var productSupplierID *uuid.UUID
	if request.ChangeType == catalog.ChangeTypeUpdate {
		product, err := s.productRepo.FindByID(ctx, request.ProductID)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return err
		}
		if err == nil {
			productSupplierID = &product.SupplierID
		}
	}

	if !request.BelongsToSupplier(req.SupplierID, productSupplierID) {
		return shared.NewDomainError("FORBIDDEN", "Change request belongs to another supplier")
	}

	if !request.IsPending() {
		return shared.NewDomainError("INVALID_STATE", "Only pending requests can be cancelled")
	}

	if err := s.requestRepo.Delete(ctx, requestID); err != nil {
		return err
	}

	s.logger.Info("Change request cancelled",
		zap.String("request_id", requestID.String()),
		zap.String("supplier_id", req.SupplierID.String()))

	return nil
}

// materializeProduct builds the new product proposed by a CREATE payload
func (s *ChangeRequestService) materializeProduct(ctx context.Context, request *catalog.ProductChangeRequest) (*catalog.Product, error) {
	changes := request.PendingChanges

	supplierID, ok := changes.SupplierID()
	if !ok {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Create request payload is missing the supplier ID")
	}

	active, err := s.productRepo.CountActiveBySupplier(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	if active >= catalog.MaxActiveProductsPerSupplier {
		return nil, shared.NewDomainError("PRODUCT_LIMIT_REACHED",
			fmt.Sprintf("Supplier already has %d active products", catalog.MaxActiveProductsPerSupplier))
	}

	name, category, material, spec, image := request.CreatePatch()
	product, err := catalog.NewProduct(supplierID, name, category, material, spec, image)
	if err != nil {
		return nil, err
	}

	if price, present := changes.Decimal("unitPrice"); present {
		if err := product.SetUnitPrice(price); err != nil {
			return nil, err
		}
	}
	if stock, present := changes.Int("stock"); present && stock != nil {
		if err := product.SetStock(*stock); err != nil {
			return nil, err
		}
	}
	if units, present := changes.Int("unitsPerPackage"); present {
		product.UnitsPerPackage = units
	}
	if count, present := changes.Int("packageCount"); present {
		product.PackageCount = count
	}

	return product, nil
}

// patchProduct applies the keys present in an UPDATE payload
func (s *ChangeRequestService) patchProduct(ctx context.Context, request *catalog.ProductChangeRequest) (*catalog.Product, error) {
	product, err := s.productRepo.FindByID(ctx, request.ProductID)
	if err != nil {
		return nil, err
	}

	changes := request.PendingChanges

	if name, present := changes.String("name"); present && name != "" {
		product.Name = name
	}
	if image, present := changes.String("image"); present && image != "" {
		product.Image = image
	}
	patch := catalog.SensitiveFieldPatch{}
	if category, present := changes.String("category"); present {
		patch.Category = &category
	}
	if material, present := changes.String("material"); present {
		patch.Material = &material
	}
	if spec, present := changes.String("spec"); present {
		patch.Spec = &spec
	}
	product.ApplyReviewedPatch(patch)

	if price, present := changes.Decimal("unitPrice"); present {
		if err := product.SetUnitPrice(price); err != nil {
			return nil, err
		}
	}
	if stock, present := changes.Int("stock"); present && stock != nil {
		if err := product.SetStock(*stock); err != nil {
			return nil, err
		}
	}
	if units, present := changes.Int("unitsPerPackage"); present {
		product.UnitsPerPackage = units
	}
	if count, present := changes.Int("packageCount"); present {
		product.PackageCount = count
	}

	return product, nil
}
