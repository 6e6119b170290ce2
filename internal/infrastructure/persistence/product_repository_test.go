package persistence

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jewelry/backend/internal/domain/catalog"
	"github.com/jewelry/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var productColumns = []string{
	"id", "code", "name", "category", "material_type", "purity", "unit_weight",
	"stock_quantity", "min_stock", "status", "version", "created_at", "updated_at",
}

func productRow(rows *sqlmock.Rows, id uuid.UUID, code string, stock int) *sqlmock.Rows {
	now := time.Now()
	return rows.AddRow(id, code, "Ring", "rings", "gold", "22K", "4.500", stock, 1, "active", 1, now, now)
}

func TestGormProductRepository_FindByID(t *testing.T) {
	t.Run("finds existing product", func(t *testing.T) {
		db, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()
		repo := NewGormProductRepository(db)
		id := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(id, 1).
			WillReturnRows(productRow(sqlmock.NewRows(productColumns), id, "RING-1", 5))

		product, err := repo.FindByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, id, product.ID)
		assert.Equal(t, 5, product.StockQuantity)
		assert.Equal(t, catalog.MaterialGold, product.MaterialType)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps missing row to NotFound", func(t *testing.T) {
		db, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()
		repo := NewGormProductRepository(db)
		id := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1`).
			WithArgs(id, 1).
			WillReturnRows(sqlmock.NewRows(productColumns))

		_, err := repo.FindByID(context.Background(), id)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormProductRepository_FindByIDsForUpdate(t *testing.T) {
	db, mock, mockDB := newMockGormDB(t)
	defer mockDB.Close()
	repo := NewGormProductRepository(db)

	a, b := uuid.New(), uuid.New()
	low, high := a, b
	if bytes.Compare(a[:], b[:]) > 0 {
		low, high = b, a
	}

	rows := sqlmock.NewRows(productColumns)
	productRow(rows, low, "RING-1", 3)
	productRow(rows, high, "RING-2", 4)
	mock.ExpectQuery(`SELECT \* FROM "products" WHERE id IN \(\$1,\$2\) ORDER BY id ASC FOR UPDATE`).
		WithArgs(low, high).
		WillReturnRows(rows)

	products, err := repo.FindByIDsForUpdate(context.Background(), []uuid.UUID{high, low})
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, low, products[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormProductRepository_FindByIDsForUpdate_Empty(t *testing.T) {
	db, mock, mockDB := newMockGormDB(t)
	defer mockDB.Close()

	products, err := NewGormProductRepository(db).FindByIDsForUpdate(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, products)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormProductRepository_DeductStock(t *testing.T) {
	t.Run("guarded update succeeds", func(t *testing.T) {
		db, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()
		id := uuid.New()

		mock.ExpectExec(`UPDATE "products" SET "stock_quantity"=stock_quantity - \$1,"updated_at"=\$2 WHERE id = \$3 AND stock_quantity >= \$4`).
			WithArgs(2, sqlmock.AnyArg(), id, 2).
			WillReturnResult(sqlmock.NewResult(0, 1))

		ok, err := NewGormProductRepository(db).DeductStock(context.Background(), id, 2)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reports false when the guard rejects", func(t *testing.T) {
		db, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()
		id := uuid.New()

		mock.ExpectExec(`UPDATE "products" SET .* WHERE id = \$3 AND stock_quantity >= \$4`).
			WithArgs(5, sqlmock.AnyArg(), id, 5).
			WillReturnResult(sqlmock.NewResult(0, 0))

		ok, err := NewGormProductRepository(db).DeductStock(context.Background(), id, 5)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestGormProductRepository_ApplyStockDelta(t *testing.T) {
	db, mock, mockDB := newMockGormDB(t)
	defer mockDB.Close()
	id := uuid.New()

	mock.ExpectExec(`UPDATE "products" SET "stock_quantity"=stock_quantity \+ \$1,"updated_at"=\$2 WHERE id = \$3 AND stock_quantity \+ \$4 >= 0`).
		WithArgs(-3, sqlmock.AnyArg(), id, -3).
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := NewGormProductRepository(db).ApplyStockDelta(context.Background(), id, -3)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormProductRepository_Update_StaleVersion(t *testing.T) {
	db, mock, mockDB := newMockGormDB(t)
	defer mockDB.Close()

	product, err := catalog.NewProduct("RING-1", "Ring", catalog.MaterialGold)
	require.NoError(t, err)
	product.IncrementVersion()

	mock.ExpectExec(`UPDATE "products" SET .* WHERE id = \$10 AND version = \$11`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = NewGormProductRepository(db).Update(context.Background(), product)
	assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormProductRepository_SQLite(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	ring, err := catalog.NewProduct("ring-1", "Gold Ring", catalog.MaterialGold)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, ring))
	chain, err := catalog.NewProduct("CHAIN-1", "Silver Chain", catalog.MaterialSilver)
	require.NoError(t, err)
	require.NoError(t, chain.SetMinStock(2))
	require.NoError(t, repo.Create(ctx, chain))

	exists, err := repo.ExistsByCode(ctx, "RING-1")
	require.NoError(t, err)
	assert.True(t, exists)

	ok, err := repo.ApplyStockDelta(ctx, ring.ID, 4)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.DeductStock(ctx, ring.ID, 5)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.DeductStock(ctx, ring.ID, 4)
	require.NoError(t, err)
	assert.True(t, ok)

	found, err := repo.FindByCode(ctx, "ring-1")
	require.NoError(t, err)
	assert.Equal(t, 0, found.StockQuantity)

	lowStock, err := repo.FindAll(ctx, shared.Filter{Filters: map[string]interface{}{"low_stock": true}})
	require.NoError(t, err)
	require.Len(t, lowStock, 1)
	assert.Equal(t, chain.ID, lowStock[0].ID)

	silver, err := repo.Count(ctx, shared.Filter{Search: "silver"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), silver)

	require.NoError(t, repo.Delete(ctx, ring.ID))
	assert.ErrorIs(t, repo.Delete(ctx, ring.ID), shared.ErrNotFound)
}
