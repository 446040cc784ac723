package identity

import (
	"context"
	"testing"

	domainidentity "github.com/packsource/backend/internal/domain/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestUserServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a supplier", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo, zap.NewNop())

		repo.On("ExistsByPhone", ctx, "13800138000").Return(false, nil)
		repo.On("Create", ctx, mock.AnythingOfType("*identity.User")).Return(nil)

		resp, err := svc.Create(ctx, CreateUserRequest{
			Name:    "Acme Packaging",
			Role:    "SUPPLIER",
			Phone:   "13800138000",
			Address: "1 Factory Rd",
		})

		require.NoError(t, err)
		assert.Equal(t, "SUPPLIER", resp.Role)
		assert.Equal(t, "ACTIVE", resp.Status)
		repo.AssertExpectations(t)
	})

	t.Run("duplicate phone conflicts", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo, zap.NewNop())

		repo.On("ExistsByPhone", ctx, "13800138000").Return(true, nil)

		_, err := svc.Create(ctx, CreateUserRequest{
			Name:  "Acme",
			Role:  "PLATFORM",
			Phone: "13800138000",
		})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
	})

	t.Run("manufacturer without address fails", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo, zap.NewNop())

		_, err := svc.Create(ctx, CreateUserRequest{
			Name: "Dragon Drinks",
			Role: "MANUFACTURER",
		})

		assert.Error(t, err)
		repo.AssertNotCalled(t, "Create")
	})
}

func TestUserServiceList(t *testing.T) {
	ctx := context.Background()

	t.Run("filters by role", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo, zap.NewNop())
		supplier := newSupplierUser(t, "13800138000")

		repo.On("FindAll", ctx, mock.MatchedBy(func(f domainidentity.UserFilter) bool {
			return f.Role != nil && *f.Role == domainidentity.RoleSupplier
		})).Return([]*domainidentity.User{supplier}, int64(1), nil)

		users, total, err := svc.List(ctx, ListUsersQuery{Role: "SUPPLIER"})

		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, users, 1)
		assert.Equal(t, supplier.ID, users[0].ID)
	})
}

func TestUserServiceToggleStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("active becomes disabled", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo, zap.NewNop())
		user := newSupplierUser(t, "13800138000")

		repo.On("FindByID", ctx, user.ID).Return(user, nil)
		repo.On("Update", ctx, user).Return(nil)

		resp, err := svc.ToggleStatus(ctx, user.ID)

		require.NoError(t, err)
		assert.Equal(t, "DISABLED", resp.Status)
	})

	t.Run("disabled becomes active", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo, zap.NewNop())
		user := newSupplierUser(t, "13800138000")
		require.NoError(t, user.Disable())

		repo.On("FindByID", ctx, user.ID).Return(user, nil)
		repo.On("Update", ctx, user).Return(nil)

		resp, err := svc.ToggleStatus(ctx, user.ID)

		require.NoError(t, err)
		assert.Equal(t, "ACTIVE", resp.Status)
	})
}

func TestUserServiceUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("updates profile", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo, zap.NewNop())
		user := newSupplierUser(t, "13800138000")

		repo.On("FindByID", ctx, user.ID).Return(user, nil)
		repo.On("ExistsByPhone", ctx, "13800138099").Return(false, nil)
		repo.On("Update", ctx, user).Return(nil)

		resp, err := svc.Update(ctx, user.ID, UpdateUserRequest{
			Name:    "Acme Ltd",
			Phone:   "13800138099",
			Address: "2 Factory Rd",
		})

		require.NoError(t, err)
		assert.Equal(t, "Acme Ltd", resp.Name)
		assert.Equal(t, "13800138099", resp.Phone)
	})

	t.Run("supplier cannot drop its address", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo, zap.NewNop())
		user := newSupplierUser(t, "13800138000")

		repo.On("FindByID", ctx, user.ID).Return(user, nil)

		_, err := svc.Update(ctx, user.ID, UpdateUserRequest{Name: "Acme"})

		assert.Error(t, err)
		repo.AssertNotCalled(t, "Update")
	})
}

func TestUserServiceChangePassword(t *testing.T) {
	ctx := context.Background()

	repo := new(MockUserRepository)
	svc := NewUserService(repo, zap.NewNop())
	user := newSupplierUser(t, "13800138000")

	repo.On("FindByID", ctx, user.ID).Return(user, nil)
	repo.On("Update", ctx, user).Return(nil)

	err := svc.ChangePassword(ctx, user.ID, ChangePasswordRequest{Password: "newsecret2"})

	require.NoError(t, err)
	assert.True(t, user.VerifyPassword("newsecret2"))
}
