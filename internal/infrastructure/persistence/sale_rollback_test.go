package persistence

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	inventoryapp "github.com/jewelry/backend/internal/application/inventory"
	salesapp "github.com/jewelry/backend/internal/application/sales"
	"github.com/jewelry/backend/internal/domain/inventory"
	"github.com/jewelry/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var errLedgerWrite = errors.New("ledger write failed")

// failingAppendScope runs the real GORM transaction but fails the n-th ledger append
type failingAppendScope struct {
	*GormTransactionScope
	failOn  int
	appends int
}

func (s *failingAppendScope) Execute(ctx context.Context, fn func(repos inventoryapp.TransactionalRepositories) error) error {
	return s.GormTransactionScope.Execute(ctx, func(repos inventoryapp.TransactionalRepositories) error {
		return fn(&failingAppendRepos{TransactionalRepositories: repos, scope: s})
	})
}

type failingAppendRepos struct {
	inventoryapp.TransactionalRepositories
	scope *failingAppendScope
}

func (r *failingAppendRepos) LedgerRepo() inventory.StockLedgerRepository {
	return &failingAppendLedger{StockLedgerRepository: r.TransactionalRepositories.LedgerRepo(), scope: r.scope}
}

type failingAppendLedger struct {
	inventory.StockLedgerRepository
	scope *failingAppendScope
}

func (l *failingAppendLedger) Append(ctx context.Context, entry *inventory.StockLedgerEntry) error {
	l.scope.appends++
	if l.scope.appends == l.scope.failOn {
		return errLedgerWrite
	}
	return l.StockLedgerRepository.Append(ctx, entry)
}

func twoLineBill(first, second uuid.UUID) salesapp.CreateSaleDocumentRequest {
	line := func(id uuid.UUID, qty int) salesapp.LineItemRequest {
		return salesapp.LineItemRequest{
			ProductID: &id,
			Weight:    decimal.NewFromInt(4),
			Rate:      decimal.NewFromInt(6000),
			Quantity:  qty,
		}
	}
	return salesapp.CreateSaleDocumentRequest{
		Variant:      "bill",
		CustomerName: "Asha",
		Items:        []salesapp.LineItemRequest{line(first, 2), line(second, 1)},
	}
}

func TestSaleFlow_LedgerWriteFailureRollsBackSale(t *testing.T) {
	for _, failOn := range []int{1, 2} {
		t.Run(fmt.Sprintf("append %d fails", failOn), func(t *testing.T) {
			f := newSaleFlow(t)
			ctx := context.Background()
			first := f.createProduct(t, "BANGLE-1", 5)
			second := f.createProduct(t, "BANGLE-2", 3)

			scope := &failingAppendScope{
				GormTransactionScope: NewGormTransactionScope(f.db, TransactionOptions{}),
				failOn:               failOn,
			}
			service := salesapp.NewSaleService(scope, f.ledger, NewGormSaleDocumentRepository(f.db), zap.NewNop())

			_, err := service.CreateSaleDocument(ctx, twoLineBill(first, second))
			require.Error(t, err)
			assert.Equal(t, failOn, scope.appends)

			assert.Zero(t, f.count(t, &models.SaleDocumentModel{}))
			assert.Zero(t, f.count(t, &models.LineItemModel{}))
			assert.Zero(t, f.count(t, &models.DocumentSequenceModel{}))
			// only the opening entries of both products remain
			assert.Equal(t, int64(2), f.count(t, &models.StockLedgerEntryModel{}))
			assert.Equal(t, 5, f.stockOf(t, first))
			assert.Equal(t, 3, f.stockOf(t, second))

			for _, id := range []uuid.UUID{first, second} {
				verify, err := f.ledger.VerifyLedger(ctx, id)
				require.NoError(t, err)
				assert.True(t, verify.Consistent)
				assert.Equal(t, 1, verify.EntryCount)
			}

			// the same sale goes through once the ledger accepts writes again
			resp, err := f.sales.CreateSaleDocument(ctx, twoLineBill(first, second))
			require.NoError(t, err)
			assert.Len(t, resp.LedgerEntries, 2)
			assert.Equal(t, 3, f.stockOf(t, first))
			assert.Equal(t, 2, f.stockOf(t, second))
		})
	}
}
