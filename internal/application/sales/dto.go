package sales

import (
	"time"

	"github.com/google/uuid"
	inventoryapp "github.com/jewelry/backend/internal/application/inventory"
	"github.com/jewelry/backend/internal/domain/sales"
	"github.com/jewelry/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// LineItemRequest is one line of a sale request
type LineItemRequest struct {
	ProductID     *uuid.UUID      `json:"product_id"`
	ProductName   string          `json:"product_name" binding:"max=200"`
	Weight        decimal.Decimal `json:"weight"`
	Rate          decimal.Decimal `json:"rate"`
	MakingCharge  decimal.Decimal `json:"making_charge"`
	WastageCharge decimal.Decimal `json:"wastage_charge"`
	Quantity      int             `json:"quantity"`
}

// ExchangeRequest carries the old material surrendered on an exchange bill
type ExchangeRequest struct {
	OldMaterialWeight decimal.Decimal `json:"old_material_weight"`
	OldMaterialPurity string          `json:"old_material_purity" binding:"max=20"`
	OldMaterialRate   decimal.Decimal `json:"old_material_rate"`
	NewMaterialRate   decimal.Decimal `json:"new_material_rate"`
}

// CreateSaleDocumentRequest represents a request to create an invoice, bill or exchange bill
type CreateSaleDocumentRequest struct {
	Variant            string            `json:"variant" binding:"required,oneof=invoice bill exchange_bill"`
	CustomerID         *uuid.UUID        `json:"customer_id"`
	CustomerName       string            `json:"customer_name" binding:"max=200"`
	CustomerPhone      string            `json:"customer_phone" binding:"max=50"`
	CustomerAddress    string            `json:"customer_address" binding:"max=500"`
	Items              []LineItemRequest `json:"items" binding:"dive"`
	DiscountAmount     decimal.Decimal   `json:"discount_amount"`
	DiscountPercentage decimal.Decimal   `json:"discount_percentage"`
	TaxPercentage      decimal.Decimal   `json:"tax_percentage"`
	PaymentMethod      string            `json:"payment_method" binding:"omitempty,oneof=cash card upi bank_transfer cheque mixed"`
	AmountPaid         decimal.Decimal   `json:"amount_paid"`
	Notes              string            `json:"notes" binding:"max=1000"`
	IdempotencyKey     string            `json:"idempotency_key" binding:"max=100"`
	Exchange           *ExchangeRequest  `json:"exchange"`
}

// ToDraft converts the request into the domain draft
func (r CreateSaleDocumentRequest) ToDraft() sales.DocumentDraft {
	items := make([]sales.LineItemDraft, len(r.Items))
	for i, it := range r.Items {
		items[i] = sales.LineItemDraft{
			ProductID:     it.ProductID,
			ProductName:   it.ProductName,
			Weight:        it.Weight,
			Rate:          it.Rate,
			MakingCharge:  it.MakingCharge,
			WastageCharge: it.WastageCharge,
			Quantity:      it.Quantity,
		}
	}

	draft := sales.DocumentDraft{
		Variant: sales.Variant(r.Variant),
		Customer: sales.CustomerInfo{
			ID:      r.CustomerID,
			Name:    r.CustomerName,
			Phone:   r.CustomerPhone,
			Address: r.CustomerAddress,
		},
		Items:              items,
		DiscountAmount:     r.DiscountAmount,
		DiscountPercentage: r.DiscountPercentage,
		TaxPercentage:      r.TaxPercentage,
		PaymentMethod:      sales.PaymentMethod(r.PaymentMethod),
		AmountPaid:         r.AmountPaid,
		IdempotencyKey:     r.IdempotencyKey,
		Notes:              r.Notes,
	}
	if r.Exchange != nil {
		draft.Exchange = &sales.ExchangeDraft{
			OldMaterialWeight: r.Exchange.OldMaterialWeight,
			OldMaterialPurity: r.Exchange.OldMaterialPurity,
			OldMaterialRate:   r.Exchange.OldMaterialRate,
			NewMaterialRate:   r.Exchange.NewMaterialRate,
		}
	}
	return draft
}

// UpdatePaymentRequest represents a post-sale payment update
type UpdatePaymentRequest struct {
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	PaymentMethod string          `json:"payment_method" binding:"omitempty,oneof=cash card upi bank_transfer cheque mixed"`
	Version       int             `json:"version" binding:"omitempty,min=1"`
}

// ListDocumentsRequest filters the document listing
type ListDocumentsRequest struct {
	Page          int        `form:"page" binding:"omitempty,min=1"`
	PageSize      int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	Search        string     `form:"search"`
	Variant       string     `form:"variant" binding:"omitempty,oneof=invoice bill exchange_bill"`
	PaymentStatus string     `form:"payment_status" binding:"omitempty,oneof=pending partial paid"`
	CustomerID    *uuid.UUID `form:"customer_id"`
	From          *time.Time `form:"from" time_format:"2006-01-02"`
	To            *time.Time `form:"to" time_format:"2006-01-02"`
	OrderBy       string     `form:"order_by" binding:"omitempty,oneof=created_at document_number total_amount"`
	OrderDir      string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToFilter converts the request into a repository filter
func (r ListDocumentsRequest) ToFilter() sales.DocumentFilter {
	f := sales.DocumentFilter{
		Filter: shared.Filter{
			Page:     r.Page,
			PageSize: r.PageSize,
			Search:   r.Search,
			OrderBy:  r.OrderBy,
			OrderDir: r.OrderDir,
		},
	}
	if f.OrderBy == "" {
		f.OrderBy = "created_at"
	}
	f.Filter = f.Filter.Normalize()
	f.Variant = sales.Variant(r.Variant)
	f.PaymentStatus = sales.PaymentStatus(r.PaymentStatus)
	f.CustomerID = r.CustomerID
	f.From = r.From
	if r.To != nil {
		end := r.To.AddDate(0, 0, 1)
		f.To = &end
	}
	return f
}

// LineItemResponse represents a line item in API responses
type LineItemResponse struct {
	ID            uuid.UUID       `json:"id"`
	LineNo        int             `json:"line_no"`
	ProductID     *uuid.UUID      `json:"product_id,omitempty"`
	ProductName   string          `json:"product_name"`
	Weight        decimal.Decimal `json:"weight"`
	Rate          decimal.Decimal `json:"rate"`
	MakingCharge  decimal.Decimal `json:"making_charge"`
	WastageCharge decimal.Decimal `json:"wastage_charge"`
	Quantity      int             `json:"quantity"`
	Total         decimal.Decimal `json:"total"`
}

// ExchangeResponse represents the old-material block of an exchange bill
type ExchangeResponse struct {
	OldMaterialWeight decimal.Decimal `json:"old_material_weight"`
	OldMaterialPurity string          `json:"old_material_purity,omitempty"`
	OldMaterialRate   decimal.Decimal `json:"old_material_rate"`
	OldMaterialValue  decimal.Decimal `json:"old_material_value"`
	NewMaterialRate   decimal.Decimal `json:"new_material_rate"`
	Difference        decimal.Decimal `json:"difference"`
}

// StockSnapshot is a product's stock right after the sale committed
type StockSnapshot struct {
	ProductID     uuid.UUID `json:"product_id"`
	StockQuantity int       `json:"stock_quantity"`
	LowStock      bool      `json:"low_stock"`
}

// SaleDocumentResponse represents a sale document in API responses
type SaleDocumentResponse struct {
	ID                 uuid.UUID                          `json:"id"`
	DocumentNumber     string                             `json:"document_number"`
	Variant            string                             `json:"variant"`
	CustomerID         *uuid.UUID                         `json:"customer_id,omitempty"`
	CustomerName       string                             `json:"customer_name"`
	CustomerPhone      string                             `json:"customer_phone"`
	CustomerAddress    string                             `json:"customer_address"`
	Items              []LineItemResponse                 `json:"items"`
	Subtotal           decimal.Decimal                    `json:"subtotal"`
	DiscountPercentage decimal.Decimal                    `json:"discount_percentage"`
	DiscountAmount     decimal.Decimal                    `json:"discount_amount"`
	TaxPercentage      decimal.Decimal                    `json:"tax_percentage"`
	TaxAmount          decimal.Decimal                    `json:"tax_amount"`
	TotalAmount        decimal.Decimal                    `json:"total_amount"`
	PayableAmount      decimal.Decimal                    `json:"payable_amount"`
	BalanceDue         decimal.Decimal                    `json:"balance_due"`
	PaymentMethod      string                             `json:"payment_method"`
	PaymentStatus      string                             `json:"payment_status"`
	AmountPaid         decimal.Decimal                    `json:"amount_paid"`
	IdempotencyKey     *string                            `json:"idempotency_key,omitempty"`
	Notes              string                             `json:"notes"`
	Exchange           *ExchangeResponse                  `json:"exchange,omitempty"`
	LedgerEntries      []inventoryapp.LedgerEntryResponse `json:"ledger_entries,omitempty"`
	Stock              []StockSnapshot                    `json:"stock,omitempty"`
	CreatedAt          time.Time                          `json:"created_at"`
	UpdatedAt          time.Time                          `json:"updated_at"`
	Version            int                                `json:"version"`
}

// SaleDocumentListResponse represents a document in list responses
type SaleDocumentListResponse struct {
	ID             uuid.UUID       `json:"id"`
	DocumentNumber string          `json:"document_number"`
	Variant        string          `json:"variant"`
	CustomerName   string          `json:"customer_name"`
	ItemCount      int             `json:"item_count"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	PaymentStatus  string          `json:"payment_status"`
	AmountPaid     decimal.Decimal `json:"amount_paid"`
	CreatedAt      time.Time       `json:"created_at"`
}

// PreviewTotalsResponse is the computed summary of an unsaved document
type PreviewTotalsResponse struct {
	Items              []LineItemResponse `json:"items"`
	Subtotal           decimal.Decimal    `json:"subtotal"`
	DiscountPercentage decimal.Decimal    `json:"discount_percentage"`
	DiscountAmount     decimal.Decimal    `json:"discount_amount"`
	TaxAmount          decimal.Decimal    `json:"tax_amount"`
	TotalAmount        decimal.Decimal    `json:"total_amount"`
	PayableAmount      decimal.Decimal    `json:"payable_amount"`
	PaymentStatus      string             `json:"payment_status"`
	Exchange           *ExchangeResponse  `json:"exchange,omitempty"`
}

func toLineItemResponses(items []sales.LineItem) []LineItemResponse {
	out := make([]LineItemResponse, len(items))
	for i, it := range items {
		out[i] = LineItemResponse{
			ID:            it.ID,
			LineNo:        it.LineNo,
			ProductID:     it.ProductID,
			ProductName:   it.ProductName,
			Weight:        it.Weight,
			Rate:          it.Rate,
			MakingCharge:  it.MakingCharge,
			WastageCharge: it.WastageCharge,
			Quantity:      it.Quantity,
			Total:         it.Total,
		}
	}
	return out
}

func toExchangeResponse(x *sales.ExchangeDetails) *ExchangeResponse {
	if x == nil {
		return nil
	}
	return &ExchangeResponse{
		OldMaterialWeight: x.OldMaterialWeight,
		OldMaterialPurity: x.OldMaterialPurity,
		OldMaterialRate:   x.OldMaterialRate,
		OldMaterialValue:  x.OldMaterialValue,
		NewMaterialRate:   x.NewMaterialRate,
		Difference:        x.Difference,
	}
}

// ToSaleDocumentResponse converts a domain document to a response DTO
func ToSaleDocumentResponse(d *sales.SaleDocument) SaleDocumentResponse {
	return SaleDocumentResponse{
		ID:                 d.ID,
		DocumentNumber:     d.DocumentNumber,
		Variant:            d.Variant.String(),
		CustomerID:         d.Customer.ID,
		CustomerName:       d.Customer.Name,
		CustomerPhone:      d.Customer.Phone,
		CustomerAddress:    d.Customer.Address,
		Items:              toLineItemResponses(d.Items),
		Subtotal:           d.Subtotal,
		DiscountPercentage: d.DiscountPercentage,
		DiscountAmount:     d.DiscountAmount,
		TaxPercentage:      d.TaxPercentage,
		TaxAmount:          d.TaxAmount,
		TotalAmount:        d.TotalAmount,
		PayableAmount:      d.PayableAmount(),
		BalanceDue:         d.BalanceDue(),
		PaymentMethod:      string(d.PaymentMethod),
		PaymentStatus:      string(d.PaymentStatus),
		AmountPaid:         d.AmountPaid,
		IdempotencyKey:     d.IdempotencyKey,
		Notes:              d.Notes,
		Exchange:           toExchangeResponse(d.Exchange),
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          d.UpdatedAt,
		Version:            d.Version,
	}
}

// ToSaleDocumentListResponses converts documents to list DTOs
func ToSaleDocumentListResponses(docs []sales.SaleDocument) []SaleDocumentListResponse {
	out := make([]SaleDocumentListResponse, len(docs))
	for i := range docs {
		d := &docs[i]
		out[i] = SaleDocumentListResponse{
			ID:             d.ID,
			DocumentNumber: d.DocumentNumber,
			Variant:        d.Variant.String(),
			CustomerName:   d.Customer.Name,
			ItemCount:      len(d.Items),
			TotalAmount:    d.TotalAmount,
			PaymentStatus:  string(d.PaymentStatus),
			AmountPaid:     d.AmountPaid,
			CreatedAt:      d.CreatedAt,
		}
	}
	return out
}
