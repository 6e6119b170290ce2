package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/jewelry/backend/internal/domain/shared"
)

// StockLedgerRepository defines the interface for ledger entry persistence.
// The ledger is append-only: there is no update method.
type StockLedgerRepository interface {
	// Append stores a new entry
	Append(ctx context.Context, entry *StockLedgerEntry) error

	// NextSequence returns the next sequence number for a product.
	// Callers must hold the product row lock.
	NextSequence(ctx context.Context, productID uuid.UUID) (int64, error)

	// FindByProduct returns a page of entries for a product, newest first
	FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]StockLedgerEntry, error)

	// CountByProduct counts entries for a product
	CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error)

	// FindAllByProductInOrder returns every entry for a product in sequence order
	FindAllByProductInOrder(ctx context.Context, productID uuid.UUID) ([]StockLedgerEntry, error)

	// FindByReferenceDocument returns entries created by a sale document
	FindByReferenceDocument(ctx context.Context, documentID uuid.UUID) ([]StockLedgerEntry, error)

	// CountByReferenceDocument counts entries created by a sale document
	CountByReferenceDocument(ctx context.Context, documentID uuid.UUID) (int64, error)

	// ClearReferenceDocument drops the back-reference to a document being deleted
	ClearReferenceDocument(ctx context.Context, documentID uuid.UUID) (int64, error)

	// DeleteByProduct removes the entries of a product being hard-deleted
	DeleteByProduct(ctx context.Context, productID uuid.UUID) (int64, error)
}
