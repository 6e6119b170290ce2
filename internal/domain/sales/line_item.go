package sales

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jewelry/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// LineItem is one product line on a sale document.
// It is immutable once its document is persisted.
type LineItem struct {
	ID            uuid.UUID
	DocumentID    uuid.UUID
	LineNo        int
	ProductID     *uuid.UUID // nil for ad-hoc entries
	ProductName   string
	Weight        decimal.Decimal
	Rate          decimal.Decimal
	MakingCharge  decimal.Decimal
	WastageCharge decimal.Decimal
	Quantity      int
	Total         decimal.Decimal
	CreatedAt     time.Time
}

// LineItemDraft carries caller-supplied line fields. Totals are never taken from the caller.
type LineItemDraft struct {
	ProductID     *uuid.UUID
	ProductName   string
	Weight        decimal.Decimal
	Rate          decimal.Decimal
	MakingCharge  decimal.Decimal
	WastageCharge decimal.Decimal
	Quantity      int
}

// NewLineItem validates a draft and computes its total
func NewLineItem(lineNo int, d LineItemDraft) (*LineItem, error) {
	name := strings.TrimSpace(d.ProductName)
	if d.ProductID != nil && *d.ProductID == uuid.Nil {
		return nil, shared.NewInvalidLineItemError("product_id", "Product ID cannot be empty")
	}
	if d.ProductID == nil && name == "" {
		return nil, shared.NewInvalidLineItemError("product_name", "Ad-hoc items need a product name")
	}
	if len(name) > 200 {
		return nil, shared.NewInvalidLineItemError("product_name", "Product name cannot exceed 200 characters")
	}

	total, err := ComputeLineTotal(d.Weight, d.Rate, d.MakingCharge, d.WastageCharge, d.Quantity)
	if err != nil {
		return nil, err
	}

	return &LineItem{
		ID:            uuid.New(),
		LineNo:        lineNo,
		ProductID:     d.ProductID,
		ProductName:   name,
		Weight:        d.Weight,
		Rate:          d.Rate,
		MakingCharge:  d.MakingCharge,
		WastageCharge: d.WastageCharge,
		Quantity:      d.Quantity,
		Total:         total,
		CreatedAt:     time.Now(),
	}, nil
}

// IsTracked reports whether the line references a catalog product
func (i *LineItem) IsTracked() bool {
	return i.ProductID != nil
}
