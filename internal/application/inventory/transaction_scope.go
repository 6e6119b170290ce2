package inventory

import (
	"context"

	"github.com/jewelry/backend/internal/domain/catalog"
	"github.com/jewelry/backend/internal/domain/inventory"
	"github.com/jewelry/backend/internal/domain/partner"
	"github.com/jewelry/backend/internal/domain/sales"
)

// TransactionScope provides transactional access to the repositories a sale touches.
// When a function is executed within a transaction scope, all repository operations
// will be part of the same database transaction and will be committed or rolled back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to all repositories within a transaction.
// All repositories returned share the same underlying database transaction.
//
// Aggregate boundary notes:
//   - ProductRepo: the only writer of product stock, through guarded updates.
//   - LedgerRepo: append-only; every stock change has exactly one entry.
//   - DocumentRepo: sale documents are written together with their line items.
//   - SequenceRepo: counters must be drawn inside the transaction that uses them.
type TransactionalRepositories interface {
	// ProductRepo returns the product repository scoped to the current transaction
	ProductRepo() catalog.ProductRepository
	// LedgerRepo returns the stock ledger repository scoped to the current transaction
	LedgerRepo() inventory.StockLedgerRepository
	// DocumentRepo returns the sale document repository scoped to the current transaction
	DocumentRepo() sales.SaleDocumentRepository
	// SequenceRepo returns the document counter repository scoped to the current transaction
	SequenceRepo() sales.DocumentSequenceRepository
	// CustomerRepo returns the customer repository scoped to the current transaction
	CustomerRepo() partner.CustomerRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use transactions.
// This is useful for testing or when transaction support is not required.
type NoOpTransactionScope struct {
	productRepo  catalog.ProductRepository
	ledgerRepo   inventory.StockLedgerRepository
	documentRepo sales.SaleDocumentRepository
	sequenceRepo sales.DocumentSequenceRepository
	customerRepo partner.CustomerRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	productRepo catalog.ProductRepository,
	ledgerRepo inventory.StockLedgerRepository,
	documentRepo sales.SaleDocumentRepository,
	sequenceRepo sales.DocumentSequenceRepository,
	customerRepo partner.CustomerRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		productRepo:  productRepo,
		ledgerRepo:   ledgerRepo,
		documentRepo: documentRepo,
		sequenceRepo: sequenceRepo,
		customerRepo: customerRepo,
	}
}

// Execute runs the function without a real transaction (for testing/compatibility).
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// ProductRepo returns the product repository.
func (s *NoOpTransactionScope) ProductRepo() catalog.ProductRepository {
	return s.productRepo
}

// LedgerRepo returns the stock ledger repository.
func (s *NoOpTransactionScope) LedgerRepo() inventory.StockLedgerRepository {
	return s.ledgerRepo
}

// DocumentRepo returns the sale document repository.
func (s *NoOpTransactionScope) DocumentRepo() sales.SaleDocumentRepository {
	return s.documentRepo
}

// SequenceRepo returns the document counter repository.
func (s *NoOpTransactionScope) SequenceRepo() sales.DocumentSequenceRepository {
	return s.sequenceRepo
}

// CustomerRepo returns the customer repository.
func (s *NoOpTransactionScope) CustomerRepo() partner.CustomerRepository {
	return s.customerRepo
}

// Ensure NoOpTransactionScope implements both interfaces
var (
	_ TransactionScope          = (*NoOpTransactionScope)(nil)
	_ TransactionalRepositories = (*NoOpTransactionScope)(nil)
)
