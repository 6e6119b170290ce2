package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jewelry/backend/internal/domain/partner"
	"github.com/jewelry/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGormCustomerRepository(t *testing.T) {
	db, _, mockDB := newMockGormDB(t)
	defer mockDB.Close()

	repo := NewGormCustomerRepository(db)
	assert.NotNil(t, repo)
	assert.NotNil(t, repo.db)
}

func TestGormCustomerRepository_FindByID(t *testing.T) {
	t.Run("finds existing customer", func(t *testing.T) {
		db, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()
		repo := NewGormCustomerRepository(db)

		customerID := uuid.New()
		now := time.Now()
		rows := sqlmock.NewRows([]string{"id", "name", "phone", "email", "address", "notes", "version", "created_at", "updated_at"}).
			AddRow(customerID, "Meera", "9000000001", "", "12 Bazaar Rd", "", 1, now, now)

		mock.ExpectQuery(`SELECT \* FROM "customers" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(customerID, 1).
			WillReturnRows(rows)

		customer, err := repo.FindByID(context.Background(), customerID)
		require.NoError(t, err)
		assert.Equal(t, customerID, customer.ID)
		assert.Equal(t, "Meera", customer.Name)
		assert.Equal(t, "12 Bazaar Rd", customer.Address)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns NotFound for missing customer", func(t *testing.T) {
		db, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()
		repo := NewGormCustomerRepository(db)
		customerID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "customers" WHERE id = \$1`).
			WithArgs(customerID, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.FindByID(context.Background(), customerID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormCustomerRepository_Save_StaleVersion(t *testing.T) {
	db, mock, mockDB := newMockGormDB(t)
	defer mockDB.Close()

	customer, err := partner.NewCustomer("Meera", "9000000001")
	require.NoError(t, err)
	customer.IncrementVersion()

	mock.ExpectExec(`UPDATE "customers" SET .* WHERE id = \$8 AND version = \$9`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = NewGormCustomerRepository(db).Save(context.Background(), customer)
	assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormCustomerRepository_SQLite(t *testing.T) {
	repo := NewGormCustomerRepository(newSQLiteDB(t))
	ctx := context.Background()

	for _, name := range []string{"Meera", "Arjun", "Kavya"} {
		c, err := partner.NewCustomer(name, "")
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, c))
	}

	all, err := repo.FindAll(ctx, shared.Filter{OrderDir: "asc"})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Arjun", all[0].Name)

	count, err := repo.Count(ctx, shared.Filter{Search: "KAV"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	target := all[0]
	require.NoError(t, target.SetPhone("9000000002"))
	target.IncrementVersion()
	require.NoError(t, repo.Save(ctx, &target))

	reloaded, err := repo.FindByID(ctx, target.ID)
	require.NoError(t, err)
	assert.Equal(t, "9000000002", reloaded.Phone)
	assert.Equal(t, 2, reloaded.Version)

	// saving the same version again loses the race
	assert.ErrorIs(t, repo.Save(ctx, &target), shared.ErrConcurrencyConflict)

	require.NoError(t, repo.Delete(ctx, target.ID))
	assert.ErrorIs(t, repo.Delete(ctx, target.ID), shared.ErrNotFound)
}
