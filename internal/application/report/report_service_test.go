package report

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/packsource/backend/internal/domain/catalog"
	"github.com/packsource/backend/internal/domain/identity"
	"github.com/packsource/backend/internal/domain/ordering"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockOrderRepo struct {
	mock.Mock
}

func (m *mockOrderRepo) Create(ctx context.Context, order *ordering.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *mockOrderRepo) Update(ctx context.Context, order *ordering.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *mockOrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*ordering.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ordering.Order), args.Error(1)
}

func (m *mockOrderRepo) FindAll(ctx context.Context, filter ordering.OrderFilter) ([]*ordering.Order, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*ordering.Order), args.Get(1).(int64), args.Error(2)
}

func (m *mockOrderRepo) SaveShipment(ctx context.Context, order *ordering.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *mockOrderRepo) CountByStatus(ctx context.Context) (map[ordering.OrderStatus]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[ordering.OrderStatus]int64), args.Error(1)
}

func (m *mockOrderRepo) TotalQuantity(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type mockProductRepo struct {
	mock.Mock
}

func (m *mockProductRepo) Create(ctx context.Context, product *catalog.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *mockProductRepo) Update(ctx context.Context, product *catalog.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *mockProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *mockProductRepo) FindAll(ctx context.Context, filter catalog.ProductFilter) ([]*catalog.Product, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*catalog.Product), args.Get(1).(int64), args.Error(2)
}

func (m *mockProductRepo) CountActiveBySupplier(ctx context.Context, supplierID uuid.UUID) (int64, error) {
	args := m.Called(ctx, supplierID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockProductRepo) CountByStatus(ctx context.Context) (map[catalog.ProductStatus]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[catalog.ProductStatus]int64), args.Error(1)
}

func (m *mockProductRepo) TotalStock(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *identity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) Update(ctx context.Context, user *identity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *mockUserRepo) FindByPhone(ctx context.Context, phone string) (*identity.User, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *mockUserRepo) FindAll(ctx context.Context, filter identity.UserFilter) ([]*identity.User, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*identity.User), args.Get(1).(int64), args.Error(2)
}

func (m *mockUserRepo) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	args := m.Called(ctx, phone)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockUserRepo) CountByRole(ctx context.Context) (map[identity.Role]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[identity.Role]int64), args.Error(1)
}

func TestReportServiceSummary(t *testing.T) {
	ctx := context.Background()

	t.Run("aggregates orders, products and users", func(t *testing.T) {
		orderRepo := new(mockOrderRepo)
		productRepo := new(mockProductRepo)
		userRepo := new(mockUserRepo)
		svc := NewReportService(orderRepo, productRepo, userRepo, zap.NewNop())

		orderRepo.On("CountByStatus", ctx).Return(map[ordering.OrderStatus]int64{
			ordering.OrderStatusPending:   3,
			ordering.OrderStatusApproved:  2,
			ordering.OrderStatusShipped:   1,
			ordering.OrderStatusCompleted: 4,
		}, nil)
		orderRepo.On("TotalQuantity", ctx).Return(int64(920), nil)
		productRepo.On("CountByStatus", ctx).Return(map[catalog.ProductStatus]int64{
			catalog.ProductStatusActive:   6,
			catalog.ProductStatusInactive: 2,
			catalog.ProductStatusDelisted: 1,
		}, nil)
		productRepo.On("TotalStock", ctx).Return(int64(15000), nil)
		userRepo.On("CountByRole", ctx).Return(map[identity.Role]int64{
			identity.RoleManufacturer:   5,
			identity.RoleSupplier:       3,
			identity.RolePlatform:       1,
			identity.RoleGeneralManager: 1,
		}, nil)

		summary, err := svc.Summary(ctx)

		require.NoError(t, err)
		assert.Equal(t, int64(10), summary.Orders.Total)
		assert.Equal(t, int64(3), summary.Orders.Pending)
		assert.Equal(t, int64(0), summary.Orders.Rejected)
		assert.Equal(t, int64(920), summary.Orders.TotalQuantity)
		assert.Equal(t, int64(9), summary.Products.Total)
		assert.Equal(t, int64(15000), summary.Products.TotalStock)
		assert.Equal(t, int64(10), summary.Users.Total)
		assert.Equal(t, int64(3), summary.Users.Suppliers)
	})

	t.Run("propagates repository errors", func(t *testing.T) {
		orderRepo := new(mockOrderRepo)
		svc := NewReportService(orderRepo, new(mockProductRepo), new(mockUserRepo), zap.NewNop())

		orderRepo.On("CountByStatus", ctx).Return(nil, errors.New("db down"))

		_, err := svc.Summary(ctx)

		assert.Error(t, err)
	})
}
