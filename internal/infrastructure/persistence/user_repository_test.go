package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/packsource/backend/internal/domain/identity"
	"github.com/packsource/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockUserRepository creates a GormUserRepository with a mocked SQL connection
func newMockUserRepository(t *testing.T) (*GormUserRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormUserRepository(gormDB), mock, mockDB
}

func TestGormUserRepository_FindByID(t *testing.T) {
	t.Run("finds existing user", func(t *testing.T) {
		repo, mock, mockDB := newMockUserRepository(t)
		defer mockDB.Close()

		userID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "name", "role", "phone", "status"}).
			AddRow(userID, "Acme Foods", "MANUFACTURER", "13800000001", "ACTIVE")

		mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(userID, 1).
			WillReturnRows(rows)

		user, err := repo.FindByID(context.Background(), userID)

		assert.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, userID, user.ID)
		assert.Equal(t, identity.RoleManufacturer, user.Role)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for missing user", func(t *testing.T) {
		repo, mock, mockDB := newMockUserRepository(t)
		defer mockDB.Close()

		userID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(userID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		user, err := repo.FindByID(context.Background(), userID)

		assert.Error(t, err)
		assert.Nil(t, user)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormUserRepository_FindByPhone(t *testing.T) {
	t.Run("finds user by phone", func(t *testing.T) {
		repo, mock, mockDB := newMockUserRepository(t)
		defer mockDB.Close()

		userID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "name", "role", "phone", "status"}).
			AddRow(userID, "Box Supplier", "SUPPLIER", "13800000002", "ACTIVE")

		mock.ExpectQuery(`SELECT \* FROM "users" WHERE phone = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("13800000002", 1).
			WillReturnRows(rows)

		user, err := repo.FindByPhone(context.Background(), "13800000002")

		assert.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "13800000002", user.Phone)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects empty phone without querying", func(t *testing.T) {
		repo, mock, mockDB := newMockUserRepository(t)
		defer mockDB.Close()

		user, err := repo.FindByPhone(context.Background(), "")

		assert.Error(t, err)
		assert.Nil(t, user)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormUserRepository_ExistsByPhone(t *testing.T) {
	t.Run("reports existing phone", func(t *testing.T) {
		repo, mock, mockDB := newMockUserRepository(t)
		defer mockDB.Close()

		rows := sqlmock.NewRows([]string{"count"}).AddRow(1)

		mock.ExpectQuery(`SELECT count\(\*\) FROM "users" WHERE phone = \$1`).
			WithArgs("13800000003").
			WillReturnRows(rows)

		exists, err := repo.ExistsByPhone(context.Background(), "13800000003")

		assert.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormUserRepository_CountByRole(t *testing.T) {
	t.Run("groups counts by role", func(t *testing.T) {
		repo, mock, mockDB := newMockUserRepository(t)
		defer mockDB.Close()

		rows := sqlmock.NewRows([]string{"role", "count"}).
			AddRow("MANUFACTURER", 4).
			AddRow("SUPPLIER", 2)

		mock.ExpectQuery(`SELECT role, COUNT\(\*\) AS count FROM "users" GROUP BY "role"`).
			WillReturnRows(rows)

		counts, err := repo.CountByRole(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, int64(4), counts[identity.RoleManufacturer])
		assert.Equal(t, int64(2), counts[identity.RoleSupplier])
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormUserRepository_FindAll(t *testing.T) {
	t.Run("filters by role", func(t *testing.T) {
		repo, mock, mockDB := newMockUserRepository(t)
		defer mockDB.Close()

		role := identity.RoleSupplier

		countRows := sqlmock.NewRows([]string{"count"}).AddRow(1)
		mock.ExpectQuery(`SELECT count\(\*\) FROM "users" WHERE role = \$1`).
			WithArgs(string(role)).
			WillReturnRows(countRows)

		rows := sqlmock.NewRows([]string{"id", "name", "role", "phone", "status"}).
			AddRow(uuid.New(), "Box Supplier", "SUPPLIER", "13800000002", "ACTIVE")
		mock.ExpectQuery(`SELECT \* FROM "users" WHERE role = \$1 ORDER BY created_at DESC`).
			WithArgs(string(role)).
			WillReturnRows(rows)

		users, total, err := repo.FindAll(context.Background(), identity.UserFilter{Role: &role})

		assert.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, users, 1)
		assert.Equal(t, identity.RoleSupplier, users[0].Role)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
