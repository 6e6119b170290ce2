package inventory

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jewelry/backend/internal/domain/shared"
)

// EntryKind is the cause of a stock change
type EntryKind string

const (
	// EntryKindSaleOut is stock leaving through a sale document
	EntryKindSaleOut EntryKind = "sale_out"
	// EntryKindAdjustment is a manual correction in either direction
	EntryKindAdjustment EntryKind = "adjustment"
	// EntryKindInitial is the opening stock of a product
	EntryKindInitial EntryKind = "initial"
)

// String returns the string representation of EntryKind
func (k EntryKind) String() string {
	return string(k)
}

// IsValid returns true if the kind is known
func (k EntryKind) IsValid() bool {
	switch k {
	case EntryKindSaleOut, EntryKindAdjustment, EntryKindInitial:
		return true
	}
	return false
}

// StockLedgerEntry is an immutable record of one stock change.
// Corrections are new entries, never edits.
type StockLedgerEntry struct {
	shared.BaseEntity
	ProductID           uuid.UUID
	Kind                EntryKind
	Delta               int
	Before              int
	After               int
	Sequence            int64 // per product, strictly increasing
	Reason              string
	ReferenceDocumentID *uuid.UUID
}

// NewStockLedgerEntry computes the entry for applying delta to a product holding before units.
// A change that would leave stock negative fails with an InsufficientStockError.
func NewStockLedgerEntry(
	productID uuid.UUID,
	kind EntryKind,
	before int,
	delta int,
	reason string,
	referenceDocumentID *uuid.UUID,
) (*StockLedgerEntry, error) {
	if productID == uuid.Nil {
		return nil, shared.NewValidationError("product_id", "Product ID cannot be empty")
	}
	if !kind.IsValid() {
		return nil, shared.NewValidationError("kind", "Invalid ledger entry kind")
	}
	if delta == 0 {
		return nil, shared.NewValidationError("quantity", "Stock change cannot be zero")
	}
	if kind == EntryKindSaleOut && delta > 0 {
		return nil, shared.NewValidationError("quantity", "A sale can only reduce stock")
	}
	if kind == EntryKindInitial && delta < 0 {
		return nil, shared.NewValidationError("quantity", "Initial stock cannot be negative")
	}
	if before < 0 {
		return nil, shared.NewDomainError("INVALID_STATE", "Current stock is negative")
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, shared.NewValidationError("reason", "Reason is required")
	}
	if len(reason) > 255 {
		return nil, shared.NewValidationError("reason", "Reason cannot exceed 255 characters")
	}

	after := before + delta
	if after < 0 {
		return nil, shared.NewInsufficientStockError(productID, before, -delta)
	}

	return &StockLedgerEntry{
		BaseEntity:          shared.NewBaseEntity(),
		ProductID:           productID,
		Kind:                kind,
		Delta:               delta,
		Before:              before,
		After:               after,
		Reason:              reason,
		ReferenceDocumentID: referenceDocumentID,
	}, nil
}

// NewSaleEntry is the entry for deducting quantity units sold on a document
func NewSaleEntry(productID uuid.UUID, before, quantity int, reason string, documentID *uuid.UUID) (*StockLedgerEntry, error) {
	if quantity <= 0 {
		return nil, shared.NewValidationError("quantity", "Quantity to deduct must be positive")
	}
	return NewStockLedgerEntry(productID, EntryKindSaleOut, before, -quantity, reason, documentID)
}

// IsIncrease returns true if the entry added stock
func (e *StockLedgerEntry) IsIncrease() bool {
	return e.Delta > 0
}

// Timestamp returns when the change was recorded
func (e *StockLedgerEntry) Timestamp() time.Time {
	return e.CreatedAt
}

// ReplayMismatch describes the first entry that breaks the ledger chain
type ReplayMismatch struct {
	EntryID  uuid.UUID
	Sequence int64
	Expected int
	Found    int
}

// Error implements the error interface
func (m *ReplayMismatch) Error() string {
	return fmt.Sprintf("ledger entry %s (seq %d) starts at %d, expected %d", m.EntryID, m.Sequence, m.Found, m.Expected)
}

// Replay folds entries in sequence order starting from opening stock.
// It returns the resulting stock, or a ReplayMismatch when an entry does not
// continue from its predecessor or its after/before/delta disagree.
func Replay(opening int, entries []StockLedgerEntry) (int, error) {
	stock := opening
	for _, e := range entries {
		if e.Before != stock {
			return stock, &ReplayMismatch{EntryID: e.ID, Sequence: e.Sequence, Expected: stock, Found: e.Before}
		}
		if e.After != e.Before+e.Delta || e.After < 0 {
			return stock, &ReplayMismatch{EntryID: e.ID, Sequence: e.Sequence, Expected: e.Before + e.Delta, Found: e.After}
		}
		stock = e.After
	}
	return stock, nil
}
