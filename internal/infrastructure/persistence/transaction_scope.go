package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	appinv "github.com/jewelry/backend/internal/application/inventory"
	"github.com/jewelry/backend/internal/domain/catalog"
	"github.com/jewelry/backend/internal/domain/inventory"
	"github.com/jewelry/backend/internal/domain/partner"
	"github.com/jewelry/backend/internal/domain/sales"
	"github.com/jewelry/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// TransactionOptions bound how long a transaction may run and wait for row locks.
// Zero values disable the corresponding limit.
type TransactionOptions struct {
	Timeout     time.Duration
	LockTimeout time.Duration
}

// GormTransactionScope implements TransactionScope using GORM transactions.
// Errors leaving Execute are classified into the domain error taxonomy.
type GormTransactionScope struct {
	db   *gorm.DB
	opts TransactionOptions
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB, opts TransactionOptions) *GormTransactionScope {
	return &GormTransactionScope{db: db, opts: opts}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appinv.TransactionalRepositories) error) error {
	if s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.applyLockTimeout(tx); err != nil {
			return err
		}
		return fn(&gormTransactionalRepositories{tx: tx})
	})
	classified := ClassifyError("transaction", err)
	if ctx.Err() != nil && errors.Is(classified, shared.ErrPersistence) {
		// the driver error is usually "canceling statement" noise; report the deadline
		return shared.NewTransactionTimeout("transaction", err)
	}
	return classified
}

// applyLockTimeout limits row lock waits for the current transaction only.
// MySQL has no transaction-local form; its wait is set per connection through
// the DSN (see config.DatabaseConfig.DSN) so nothing leaks back into the pool.
func (s *GormTransactionScope) applyLockTimeout(tx *gorm.DB) error {
	if s.opts.LockTimeout <= 0 || tx.Dialector.Name() != "postgres" {
		return nil
	}
	return tx.Exec(fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", s.opts.LockTimeout.Milliseconds())).Error
}

// gormTransactionalRepositories provides access to all repositories within a transaction.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// ProductRepo returns the product repository scoped to the current transaction.
func (r *gormTransactionalRepositories) ProductRepo() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

// LedgerRepo returns the stock ledger repository scoped to the current transaction.
func (r *gormTransactionalRepositories) LedgerRepo() inventory.StockLedgerRepository {
	return NewGormStockLedgerRepository(r.tx)
}

// DocumentRepo returns the sale document repository scoped to the current transaction.
func (r *gormTransactionalRepositories) DocumentRepo() sales.SaleDocumentRepository {
	return NewGormSaleDocumentRepository(r.tx)
}

// SequenceRepo returns the document counter repository scoped to the current transaction.
func (r *gormTransactionalRepositories) SequenceRepo() sales.DocumentSequenceRepository {
	return NewGormDocumentSequenceRepository(r.tx)
}

// CustomerRepo returns the customer repository scoped to the current transaction.
func (r *gormTransactionalRepositories) CustomerRepo() partner.CustomerRepository {
	return NewGormCustomerRepository(r.tx)
}

// Ensure GormTransactionScope implements TransactionScope
var _ appinv.TransactionScope = (*GormTransactionScope)(nil)

// Ensure gormTransactionalRepositories implements TransactionalRepositories
var _ appinv.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
