package ordering

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/packsource/backend/internal/domain/catalog"
	"github.com/packsource/backend/internal/domain/ordering"
	"github.com/packsource/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// OrderService handles the packaging order workflow
type OrderService struct {
	orderRepo   ordering.OrderRepository
	productRepo catalog.ProductRepository
	logger      *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(
	orderRepo ordering.OrderRepository,
	productRepo catalog.ProductRepository,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

// Create places a pending order. The product must be listed and cover the
// quantity at submission time; the stock itself is only decremented when
// the supplier ships.
func (s *OrderService) Create(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Product not found or delisted")
		}
		return nil, err
	}
	if !product.IsOrderable() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Product not found or delisted")
	}
	if req.Quantity > product.Stock {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Insufficient stock, contact the platform")
	}

	expectedDate, err := parseDate(req.ExpectedDate)
	if err != nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Invalid expected date")
	}

	order, err := ordering.NewOrder(req.ManufacturerID, req.ManufacturerName, product.ID, product.Name, req.Quantity, expectedDate, req.DesignFileURL)
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("Order created",
		zap.String("order_id", order.ID.String()),
		zap.String("product_id", product.ID.String()),
		zap.Int("quantity", order.Quantity))

	resp := ToOrderResponse(order)
	return &resp, nil
}

// Get returns a single order with its logistics
func (s *OrderService) Get(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToOrderResponse(order)
	return &resp, nil
}

// List returns orders matching the query
func (s *OrderService) List(ctx context.Context, query ListOrdersQuery) ([]OrderResponse, int64, error) {
	filter := ordering.OrderFilter{
		ManufacturerID: query.ManufacturerID,
		ProductID:      query.ProductID,
		SupplierID:     query.SupplierID,
		SortBy:         query.SortBy,
		SortOrder:      query.SortOrder,
		Page:           query.Page,
		PageSize:       query.PageSize,
	}
	if query.Status != "" {
		status := ordering.OrderStatus(query.Status)
		filter.Status = &status
	}

	orders, total, err := s.orderRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]OrderResponse, len(orders))
	for i, order := range orders {
		responses[i] = ToOrderResponse(order)
	}

	return responses, total, nil
}

// Decide records the platform's audit decision on a pending order
func (s *OrderService) Decide(ctx context.Context, id uuid.UUID, req DecideOrderRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch ordering.OrderStatus(req.Status) {
	case ordering.OrderStatusApproved:
		err = order.Approve()
	case ordering.OrderStatusRejected:
		err = order.Reject(req.Reason)
	default:
		err = shared.NewDomainError("VALIDATION_ERROR", "Decision must be APPROVED or REJECTED")
	}
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("Order decided",
		zap.String("order_id", order.ID.String()),
		zap.String("status", string(order.Status)))

	resp := ToOrderResponse(order)
	return &resp, nil
}

// Ship marks an approved order shipped. The status change, the logistics
// record, and the stock decrement are persisted in one transaction; a
// product that no longer covers the quantity fails the whole shipment.
func (s *OrderService) Ship(ctx context.Context, id uuid.UUID, req ShipOrderRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	arrival, err := parseDate(req.EstimatedArrivalDate)
	if err != nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Invalid estimated arrival date")
	}

	logistics := ordering.Logistics{
		Company:              req.Company,
		TrackingNumber:       req.TrackingNumber,
		ShippedDate:          time.Now(),
		EstimatedArrivalDate: arrival,
		BatchCode:            req.BatchCode,
	}
	if err := order.Ship(logistics); err != nil {
		return nil, err
	}

	if err := s.orderRepo.SaveShipment(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("Order shipped",
		zap.String("order_id", order.ID.String()),
		zap.String("tracking_number", req.TrackingNumber))

	resp := ToOrderResponse(order)
	return &resp, nil
}

// ConfirmReceipt completes a shipped order
func (s *OrderService) ConfirmReceipt(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := order.ConfirmReceipt(); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("Order completed", zap.String("order_id", order.ID.String()))

	resp := ToOrderResponse(order)
	return &resp, nil
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
