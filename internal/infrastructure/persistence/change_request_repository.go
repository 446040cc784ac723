package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/packsource/backend/internal/domain/catalog"
	"github.com/packsource/backend/internal/domain/shared"
	"github.com/packsource/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormChangeRequestRepository implements ChangeRequestRepository using GORM
type GormChangeRequestRepository struct {
	db *gorm.DB
}

// NewGormChangeRequestRepository creates a new GormChangeRequestRepository
func NewGormChangeRequestRepository(db *gorm.DB) *GormChangeRequestRepository {
	return &GormChangeRequestRepository{db: db}
}

// Create creates a new change request
func (r *GormChangeRequestRepository) Create(ctx context.Context, request *catalog.ProductChangeRequest) error {
	model := models.ChangeRequestModelFromDomain(request)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update updates an existing change request
func (r *GormChangeRequestRepository) Update(ctx context.Context, request *catalog.ProductChangeRequest) error {
	model := models.ChangeRequestModelFromDomain(request)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a change request permanently
func (r *GormChangeRequestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ChangeRequestModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a change request by its ID
func (r *GormChangeRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.ProductChangeRequest, error) {
	var model models.ChangeRequestModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds change requests matching the filter
func (r *GormChangeRequestRepository) FindAll(ctx context.Context, filter catalog.ChangeRequestFilter) ([]*catalog.ProductChangeRequest, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ChangeRequestModel{})

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.ProductID != nil {
		query = query.Where("product_id = ?", *filter.ProductID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at DESC")
	if filter.PageSize > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var requestModels []models.ChangeRequestModel
	if err := query.Find(&requestModels).Error; err != nil {
		return nil, 0, err
	}

	requests := make([]*catalog.ProductChangeRequest, len(requestModels))
	for i := range requestModels {
		requests[i] = requestModels[i].ToDomain()
	}
	return requests, total, nil
}

// SaveApproval persists the approved request together with the resulting
// product write in one transaction. CREATE requests insert the product,
// UPDATE requests save the patched row.
func (r *GormChangeRequestRepository) SaveApproval(ctx context.Context, request *catalog.ProductChangeRequest, product *catalog.Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		requestModel := models.ChangeRequestModelFromDomain(request)
		if err := tx.Save(requestModel).Error; err != nil {
			return err
		}

		productModel := models.ProductModelFromDomain(product)
		if request.ChangeType == catalog.ChangeTypeCreate {
			return tx.Create(productModel).Error
		}
		return tx.Save(productModel).Error
	})
}
