package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	domainidentity "github.com/packsource/backend/internal/domain/identity"
	"github.com/packsource/backend/internal/domain/shared"
	"github.com/packsource/backend/internal/infrastructure/auth"
	"github.com/packsource/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domainidentity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *domainidentity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domainidentity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domainidentity.User), args.Error(1)
}

func (m *MockUserRepository) FindByPhone(ctx context.Context, phone string) (*domainidentity.User, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domainidentity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, filter domainidentity.UserFilter) ([]*domainidentity.User, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*domainidentity.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	args := m.Called(ctx, phone)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) CountByRole(ctx context.Context) (map[domainidentity.Role]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domainidentity.Role]int64), args.Error(1)
}

func newTestAuthService(repo *MockUserRepository) *AuthService {
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-for-unit-tests-only",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "packsource-test",
	})
	return NewAuthService(repo, jwtService, zap.NewNop())
}

func newSupplierUser(t *testing.T, phone string) *domainidentity.User {
	t.Helper()
	user, err := domainidentity.NewUser("Acme Packaging", domainidentity.RoleSupplier, phone, "", "1 Factory Rd")
	require.NoError(t, err)
	return user
}

func TestAuthServiceLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("succeeds for active user with matching role", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newTestAuthService(repo)
		user := newSupplierUser(t, "13800138000")

		repo.On("FindByPhone", ctx, "13800138000").Return(user, nil)
		repo.On("Update", ctx, user).Return(nil)

		result, err := svc.Login(ctx, LoginRequest{Phone: "13800138000", Role: "SUPPLIER"})

		require.NoError(t, err)
		assert.Equal(t, user.ID, result.User.ID)
		assert.NotEmpty(t, result.Tokens.AccessToken)
		assert.NotNil(t, user.LastLoginAt)
		repo.AssertExpectations(t)
	})

	t.Run("unknown phone fails", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newTestAuthService(repo)

		repo.On("FindByPhone", ctx, "13800138000").Return(nil, shared.ErrNotFound)

		_, err := svc.Login(ctx, LoginRequest{Phone: "13800138000", Role: "SUPPLIER"})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "does not match")
	})

	t.Run("role mismatch fails", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newTestAuthService(repo)
		user := newSupplierUser(t, "13800138000")

		repo.On("FindByPhone", ctx, "13800138000").Return(user, nil)

		_, err := svc.Login(ctx, LoginRequest{Phone: "13800138000", Role: "MANUFACTURER"})

		assert.Error(t, err)
	})

	t.Run("disabled account is refused", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newTestAuthService(repo)
		user := newSupplierUser(t, "13800138000")
		require.NoError(t, user.Disable())

		repo.On("FindByPhone", ctx, "13800138000").Return(user, nil)

		_, err := svc.Login(ctx, LoginRequest{Phone: "13800138000", Role: "SUPPLIER"})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "disabled")
	})

	t.Run("wrong password fails when a hash is stored", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newTestAuthService(repo)
		user := newSupplierUser(t, "13800138000")
		require.NoError(t, user.SetPassword("secret1"))

		repo.On("FindByPhone", ctx, "13800138000").Return(user, nil)

		_, err := svc.Login(ctx, LoginRequest{Phone: "13800138000", Role: "SUPPLIER", Password: "wrong"})

		assert.Error(t, err)
	})

	t.Run("user without hash logs in without password", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newTestAuthService(repo)
		user := newSupplierUser(t, "13800138000")

		repo.On("FindByPhone", ctx, "13800138000").Return(user, nil)
		repo.On("Update", ctx, user).Return(nil)

		_, err := svc.Login(ctx, LoginRequest{Phone: "13800138000", Role: "SUPPLIER"})

		assert.NoError(t, err)
	})
}

func TestAuthServiceResetPassword(t *testing.T) {
	ctx := context.Background()

	t.Run("reports sms channel", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newTestAuthService(repo)
		user := newSupplierUser(t, "13800138000")

		repo.On("FindByPhone", ctx, "13800138000").Return(user, nil)

		resp, err := svc.ResetPassword(ctx, ResetPasswordRequest{Phone: "13800138000"})

		require.NoError(t, err)
		assert.Equal(t, []string{"sms"}, resp.Channels)
	})

	t.Run("includes email when present", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newTestAuthService(repo)
		user := newSupplierUser(t, "13800138000")
		require.NoError(t, user.SetEmail("ops@acme.example"))

		repo.On("FindByPhone", ctx, "13800138000").Return(user, nil)

		resp, err := svc.ResetPassword(ctx, ResetPasswordRequest{Phone: "13800138000"})

		require.NoError(t, err)
		assert.Contains(t, resp.Channels, "email")
	})

	t.Run("unknown phone fails", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := newTestAuthService(repo)

		repo.On("FindByPhone", ctx, "13800138000").Return(nil, shared.ErrNotFound)

		_, err := svc.ResetPassword(ctx, ResetPasswordRequest{Phone: "13800138000"})

		assert.Error(t, err)
	})
}
