package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/jewelry/backend/internal/domain/inventory"
)

// AdjustStockRequest represents a manual stock correction
type AdjustStockRequest struct {
	Delta  int    `json:"delta" binding:"required"`
	Reason string `json:"reason" binding:"required,min=1,max=255"`
}

// LedgerEntryResponse represents a stock ledger entry in API responses
type LedgerEntryResponse struct {
	ID                  uuid.UUID  `json:"id"`
	ProductID           uuid.UUID  `json:"product_id"`
	Kind                string     `json:"kind"`
	Sequence            int64      `json:"sequence"`
	Delta               int        `json:"delta"`
	Before              int        `json:"before"`
	After               int        `json:"after"`
	Reason              string     `json:"reason"`
	ReferenceDocumentID *uuid.UUID `json:"reference_document_id,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
}

// LedgerVerificationResponse reports whether a product's stock matches its ledger
type LedgerVerificationResponse struct {
	ProductID      uuid.UUID  `json:"product_id"`
	CurrentStock   int        `json:"current_stock"`
	ReplayedStock  int        `json:"replayed_stock"`
	EntryCount     int        `json:"entry_count"`
	Consistent     bool       `json:"consistent"`
	BrokenEntryID  *uuid.UUID `json:"broken_entry_id,omitempty"`
	BrokenSequence int64      `json:"broken_sequence,omitempty"`
}

// ToLedgerEntryResponse converts a domain entry to a response DTO
func ToLedgerEntryResponse(e *inventory.StockLedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		ID:                  e.ID,
		ProductID:           e.ProductID,
		Kind:                e.Kind.String(),
		Sequence:            e.Sequence,
		Delta:               e.Delta,
		Before:              e.Before,
		After:               e.After,
		Reason:              e.Reason,
		ReferenceDocumentID: e.ReferenceDocumentID,
		CreatedAt:           e.CreatedAt,
	}
}

// ToLedgerEntryResponses converts a slice of domain entries
func ToLedgerEntryResponses(entries []inventory.StockLedgerEntry) []LedgerEntryResponse {
	out := make([]LedgerEntryResponse, len(entries))
	for i := range entries {
		out[i] = ToLedgerEntryResponse(&entries[i])
	}
	return out
}
