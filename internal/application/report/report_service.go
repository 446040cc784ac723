package report

import (
	"context"

	"github.com/packsource/backend/internal/domain/catalog"
	"github.com/packsource/backend/internal/domain/identity"
	"github.com/packsource/backend/internal/domain/ordering"
	"go.uber.org/zap"
)

// ReportService aggregates platform-wide figures for the general manager
type ReportService struct {
	orderRepo   ordering.OrderRepository
	productRepo catalog.ProductRepository
	userRepo    identity.UserRepository
	logger      *zap.Logger
}

// NewReportService creates a new ReportService
func NewReportService(
	orderRepo ordering.OrderRepository,
	productRepo catalog.ProductRepository,
	userRepo identity.UserRepository,
	logger *zap.Logger,
) *ReportService {
	return &ReportService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

// SummaryResponse is the read-only dashboard summary
type SummaryResponse struct {
	Orders   OrderSummary   `json:"orders"`
	Products ProductSummary `json:"products"`
	Users    UserSummary    `json:"users"`
}

// OrderSummary aggregates order counts and volume
type OrderSummary struct {
	Total         int64 `json:"total"`
	Pending       int64 `json:"pending"`
	Approved      int64 `json:"approved"`
	Rejected      int64 `json:"rejected"`
	Shipped       int64 `json:"shipped"`
	Completed     int64 `json:"completed"`
	TotalQuantity int64 `json:"totalQuantity"`
}

// ProductSummary aggregates catalog counts and stock
type ProductSummary struct {
	Total      int64 `json:"total"`
	Active     int64 `json:"active"`
	Inactive   int64 `json:"inactive"`
	Delisted   int64 `json:"delisted"`
	TotalStock int64 `json:"totalStock"`
}

// UserSummary aggregates user counts by role
type UserSummary struct {
	Total          int64 `json:"total"`
	Manufacturers  int64 `json:"manufacturers"`
	Suppliers      int64 `json:"suppliers"`
	Platform       int64 `json:"platform"`
	GeneralManager int64 `json:"generalManagers"`
}

// Summary builds the dashboard figures from the live aggregates
func (s *ReportService) Summary(ctx context.Context) (*SummaryResponse, error) {
	orderCounts, err := s.orderRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	totalQuantity, err := s.orderRepo.TotalQuantity(ctx)
	if err != nil {
		return nil, err
	}

	productCounts, err := s.productRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	totalStock, err := s.productRepo.TotalStock(ctx)
	if err != nil {
		return nil, err
	}

	userCounts, err := s.userRepo.CountByRole(ctx)
	if err != nil {
		return nil, err
	}

	summary := &SummaryResponse{
		Orders: OrderSummary{
			Pending:       orderCounts[ordering.OrderStatusPending],
			Approved:      orderCounts[ordering.OrderStatusApproved],
			Rejected:      orderCounts[ordering.OrderStatusRejected],
			Shipped:       orderCounts[ordering.OrderStatusShipped],
			Completed:     orderCounts[ordering.OrderStatusCompleted],
			TotalQuantity: totalQuantity,
		},
		Products: ProductSummary{
			Active:     productCounts[catalog.ProductStatusActive],
			Inactive:   productCounts[catalog.ProductStatusInactive],
			Delisted:   productCounts[catalog.ProductStatusDelisted],
			TotalStock: totalStock,
		},
		Users: UserSummary{
			Manufacturers:  userCounts[identity.RoleManufacturer],
			Suppliers:      userCounts[identity.RoleSupplier],
			Platform:       userCounts[identity.RolePlatform],
			GeneralManager: userCounts[identity.RoleGeneralManager],
		},
	}
	for _, count := range orderCounts {
		summary.Orders.Total += count
	}
	for _, count := range productCounts {
		summary.Products.Total += count
	}
	for _, count := range userCounts {
		summary.Users.Total += count
	}

	return summary, nil
}
