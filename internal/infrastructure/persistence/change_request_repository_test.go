package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/packsource/backend/internal/domain/catalog"
	"github.com/packsource/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockChangeRequestRepository creates a GormChangeRequestRepository with a mocked SQL connection
func newMockChangeRequestRepository(t *testing.T) (*GormChangeRequestRepository, sqlmock.Sqlmock, *sql.DB) {
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

	return NewGormChangeRequestRepository(gormDB), mock, mockDB
}

func TestGormChangeRequestRepository_FindByID(t *testing.T) {
	t.Run("restores the pending change set from jsonb", func(t *testing.T) {
		repo, mock, mockDB := newMockChangeRequestRepository(t)
		defer mockDB.Close()

		requestID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "product_id", "change_type", "status", "pending_changes"}).
			AddRow(requestID, nil, "CREATE", "PENDING", `{"name":"Kraft Box","material":"Kraft"}`)

		mock.ExpectQuery(`SELECT \* FROM "product_change_requests" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(requestID, 1).
			WillReturnRows(rows)

		request, err := repo.FindByID(context.Background(), requestID)

		assert.NoError(t, err)
		require.NotNil(t, request)
		assert.Equal(t, uuid.Nil, request.ProductID)
		name, present := request.PendingChanges.String("name")
		assert.True(t, present)
		assert.Equal(t, "Kraft Box", name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for missing request", func(t *testing.T) {
		repo, mock, mockDB := newMockChangeRequestRepository(t)
		defer mockDB.Close()

		requestID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "product_change_requests" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(requestID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		request, err := repo.FindByID(context.Background(), requestID)

		assert.Error(t, err)
		assert.Nil(t, request)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormChangeRequestRepository_Delete(t *testing.T) {
	t.Run("deletes existing request", func(t *testing.T) {
		repo, mock, mockDB := newMockChangeRequestRepository(t)
		defer mockDB.Close()

		requestID := uuid.New()

		mock.ExpectExec(`DELETE FROM "product_change_requests" WHERE id = \$1`).
			WithArgs(requestID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete(context.Background(), requestID)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reports missing request", func(t *testing.T) {
		repo, mock, mockDB := newMockChangeRequestRepository(t)
		defer mockDB.Close()

		requestID := uuid.New()

		mock.ExpectExec(`DELETE FROM "product_change_requests" WHERE id = \$1`).
			WithArgs(requestID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), requestID)

		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormChangeRequestRepository_SaveApproval(t *testing.T) {
	t.Run("inserts the materialized product for a CREATE request", func(t *testing.T) {
		repo, mock, mockDB := newMockChangeRequestRepository(t)
		defer mockDB.Close()

		request, err := catalog.NewChangeRequest(uuid.Nil, catalog.ChangeTypeCreate, catalog.PendingChanges{
			"name":       "Kraft Box",
			"supplierId": uuid.New().String(),
		})
		require.NoError(t, err)
		require.NoError(t, request.Approve(uuid.New()))

		product, err := catalog.NewProduct(uuid.New(), "Kraft Box", "Box", "Kraft", "10x10cm", "")
		require.NoError(t, err)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "product_change_requests" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO "products"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err = repo.SaveApproval(context.Background(), request, product)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("saves the patched product for an UPDATE request", func(t *testing.T) {
		repo, mock, mockDB := newMockChangeRequestRepository(t)
		defer mockDB.Close()

		product, err := catalog.NewProduct(uuid.New(), "Kraft Box", "Box", "Kraft", "10x10cm", "")
		require.NoError(t, err)

		request, err := catalog.NewChangeRequest(product.ID, catalog.ChangeTypeUpdate, catalog.PendingChanges{
			"material": "PET",
		})
		require.NoError(t, err)
		require.NoError(t, request.Approve(uuid.New()))

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "product_change_requests" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE "products" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err = repo.SaveApproval(context.Background(), request, product)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back when the product write fails", func(t *testing.T) {
		repo, mock, mockDB := newMockChangeRequestRepository(t)
		defer mockDB.Close()

		product, err := catalog.NewProduct(uuid.New(), "Kraft Box", "Box", "Kraft", "10x10cm", "")
		require.NoError(t, err)

		request, err := catalog.NewChangeRequest(product.ID, catalog.ChangeTypeUpdate, catalog.PendingChanges{
			"material": "PET",
		})
		require.NoError(t, err)
		require.NoError(t, request.Approve(uuid.New()))

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "product_change_requests" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE "products" SET`).
			WillReturnError(gorm.ErrInvalidData)
		mock.ExpectRollback()

		err = repo.SaveApproval(context.Background(), request, product)

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
