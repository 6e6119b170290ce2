package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jewelry/backend/internal/domain/shared"
)

// DocumentFilter narrows a document listing
type DocumentFilter struct {
	shared.Filter
	Variant       Variant
	PaymentStatus PaymentStatus
	CustomerID    *uuid.UUID
	From          *time.Time // inclusive
	To            *time.Time // exclusive
}

// SaleDocumentRepository defines persistence for sale documents and their items
type SaleDocumentRepository interface {
	// Create inserts the document and all its line items
	Create(ctx context.Context, doc *SaleDocument) error
	// FindByID loads a document with its items
	FindByID(ctx context.Context, id uuid.UUID) (*SaleDocument, error)
	FindByNumber(ctx context.Context, number string) (*SaleDocument, error)
	FindByIdempotencyKey(ctx context.Context, key string) (*SaleDocument, error)
	FindAll(ctx context.Context, filter DocumentFilter) ([]SaleDocument, error)
	Count(ctx context.Context, filter DocumentFilter) (int64, error)
	FindIDsByCustomer(ctx context.Context, customerID uuid.UUID) ([]uuid.UUID, error)
	CountByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error)
	CountItemsByProduct(ctx context.Context, productID uuid.UUID) (int64, error)
	// UpdatePayment persists payment fields with an optimistic version check
	UpdatePayment(ctx context.Context, doc *SaleDocument) error
	// DetachProduct clears the product reference on every line item of productID
	DetachProduct(ctx context.Context, productID uuid.UUID) (int64, error)
	// Delete removes the document and its line items
	Delete(ctx context.Context, id uuid.UUID) error
}

// DocumentSequenceRepository issues per-variant, per-year document counters
type DocumentSequenceRepository interface {
	// Next returns the next counter value. Concurrent callers never receive the same value.
	Next(ctx context.Context, variant Variant, year int) (int64, error)
}
