package models

import (
	"github.com/google/uuid"
	"github.com/jewelry/backend/internal/domain/inventory"
)

// StockLedgerEntryModel is the persistence model for the StockLedgerEntry entity.
// Rows are only ever inserted; the cascades clear ReferenceDocumentID or remove
// every entry of a deleted product.
type StockLedgerEntryModel struct {
	BaseModel
	ProductID           uuid.UUID           `gorm:"type:char(36);not null;uniqueIndex:idx_ledger_product_seq,priority:1"`
	Sequence            int64               `gorm:"not null;uniqueIndex:idx_ledger_product_seq,priority:2"`
	Kind                inventory.EntryKind `gorm:"type:varchar(20);not null"`
	Delta               int                 `gorm:"not null"`
	QuantityBefore      int                 `gorm:"not null"`
	QuantityAfter       int                 `gorm:"not null"`
	Reason              string              `gorm:"type:varchar(255);not null"`
	ReferenceDocumentID *uuid.UUID          `gorm:"type:char(36);index:idx_ledger_reference_document"`
}

// TableName returns the table name for GORM
func (StockLedgerEntryModel) TableName() string {
	return "stock_ledger_entries"
}

// ToDomain converts the persistence model to a domain StockLedgerEntry.
func (m *StockLedgerEntryModel) ToDomain() *inventory.StockLedgerEntry {
	return &inventory.StockLedgerEntry{
		BaseEntity:          m.BaseModel.ToDomain(),
		ProductID:           m.ProductID,
		Kind:                m.Kind,
		Delta:               m.Delta,
		Before:              m.QuantityBefore,
		After:               m.QuantityAfter,
		Sequence:            m.Sequence,
		Reason:              m.Reason,
		ReferenceDocumentID: m.ReferenceDocumentID,
	}
}

// FromDomain populates the persistence model from a domain StockLedgerEntry.
func (m *StockLedgerEntryModel) FromDomain(e *inventory.StockLedgerEntry) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.ProductID = e.ProductID
	m.Kind = e.Kind
	m.Delta = e.Delta
	m.QuantityBefore = e.Before
	m.QuantityAfter = e.After
	m.Sequence = e.Sequence
	m.Reason = e.Reason
	m.ReferenceDocumentID = e.ReferenceDocumentID
}

// StockLedgerEntryModelFromDomain creates a new persistence model from a domain StockLedgerEntry.
func StockLedgerEntryModelFromDomain(e *inventory.StockLedgerEntry) *StockLedgerEntryModel {
	m := &StockLedgerEntryModel{}
	m.FromDomain(e)
	return m
}
