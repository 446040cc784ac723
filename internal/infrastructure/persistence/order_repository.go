package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/packsource/backend/internal/domain/ordering"
	"github.com/packsource/backend/internal/domain/shared"
	"github.com/packsource/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Create creates a new order
func (r *GormOrderRepository) Create(ctx context.Context, order *ordering.Order) error {
	model := models.OrderModelFromDomain(order)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update updates an existing order
func (r *GormOrderRepository) Update(ctx context.Context, order *ordering.Order) error {
	model := models.OrderModelFromDomain(order)
	return r.db.WithContext(ctx).Omit("Logistics").Save(model).Error
}

// FindByID finds an order by its ID, logistics included
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*ordering.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).Preload("Logistics").First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds orders matching the filter. Supplier scoping joins through
// the ordered product.
func (r *GormOrderRepository) FindAll(ctx context.Context, filter ordering.OrderFilter) ([]*ordering.Order, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.OrderModel{})

	if filter.ManufacturerID != nil {
		query = query.Where("manufacturer_id = ?", *filter.ManufacturerID)
	}
	if filter.ProductID != nil {
		query = query.Where("product_id = ?", *filter.ProductID)
	}
	if filter.SupplierID != nil {
		query = query.Where("product_id IN (?)",
			r.db.Model(&models.ProductModel{}).Select("id").Where("supplier_id = ?", *filter.SupplierID))
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortField := ValidateSortField(filter.SortBy, OrderSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.SortOrder)
	query = query.Preload("Logistics").Order(sortField + " " + sortOrder)
	if filter.PageSize > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var orderModels []models.OrderModel
	if err := query.Find(&orderModels).Error; err != nil {
		return nil, 0, err
	}

	orders := make([]*ordering.Order, len(orderModels))
	for i := range orderModels {
		orders[i] = orderModels[i].ToDomain()
	}
	return orders, total, nil
}

// SaveShipment persists the shipped status, the logistics record, and the
// conditional stock decrement in one transaction. The order write is
// conditioned on the APPROVED status, so of two concurrent shipments of
// the same order only one commits and the stock decrement happens once.
// The decrement itself is guarded in SQL so a concurrent shipment cannot
// drive stock negative.
func (r *GormOrderRepository) SaveShipment(ctx context.Context, order *ordering.Order) error {
	if order.Logistics == nil {
		return shared.NewDomainError("VALIDATION_ERROR", "Shipment requires logistics details")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		orderUpdate := tx.Model(&models.OrderModel{}).
			Where("id = ? AND status = ?", order.ID, ordering.OrderStatusApproved).
			Updates(map[string]interface{}{
				"status":     order.Status,
				"version":    order.Version,
				"updated_at": order.UpdatedAt,
			})
		if orderUpdate.Error != nil {
			return orderUpdate.Error
		}
		if orderUpdate.RowsAffected == 0 {
			return shared.NewDomainError("CONFLICT", "Order is no longer awaiting shipment")
		}

		logisticsModel := models.LogisticsModelFromDomain(order.ID, order.Logistics)
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "order_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"company", "tracking_number", "estimated_arrival_date", "batch_code", "updated_at",
			}),
		}).Create(logisticsModel).Error; err != nil {
			return err
		}

		result := tx.Model(&models.ProductModel{}).
			Where("id = ? AND stock >= ?", order.ProductID, order.Quantity).
			UpdateColumn("stock", gorm.Expr("stock - ?", order.Quantity))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.NewDomainError("INSUFFICIENT_STOCK", "Product stock does not cover the order quantity")
		}
		return nil
	})
}

// CountByStatus returns order counts grouped by status
func (r *GormOrderRepository) CountByStatus(ctx context.Context) (map[ordering.OrderStatus]int64, error) {
	var rows []struct {
		Status ordering.OrderStatus
		Count  int64
	}
	if err := r.db.WithContext(ctx).Model(&models.OrderModel{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[ordering.OrderStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// TotalQuantity sums ordered units across all non-rejected orders
func (r *GormOrderRepository) TotalQuantity(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.OrderModel{}).
		Select("COALESCE(SUM(quantity), 0)").
		Where("status <> ?", ordering.OrderStatusRejected).
		Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
