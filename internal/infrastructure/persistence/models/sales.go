package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/jewelry/backend/internal/domain/sales"
	"github.com/shopspring/decimal"
)

// SaleDocumentModel is the persistence model for the SaleDocument aggregate.
// The exchange columns are null for invoices and bills.
type SaleDocumentModel struct {
	AggregateModel
	DocumentNumber     string              `gorm:"type:varchar(50);not null;uniqueIndex:idx_sale_documents_number"`
	Variant            sales.Variant       `gorm:"type:varchar(20);not null;index:idx_sale_documents_variant"`
	CustomerID         *uuid.UUID          `gorm:"type:char(36);index:idx_sale_documents_customer"`
	CustomerName       string              `gorm:"type:varchar(200)"`
	CustomerPhone      string              `gorm:"type:varchar(50)"`
	CustomerAddress    string              `gorm:"type:varchar(500)"`
	Subtotal           decimal.Decimal     `gorm:"type:decimal(18,2);not null"`
	TaxPercentage      decimal.Decimal     `gorm:"type:decimal(5,2);not null;default:0"`
	TaxAmount          decimal.Decimal     `gorm:"type:decimal(18,2);not null;default:0"`
	DiscountPercentage decimal.Decimal     `gorm:"type:decimal(5,2);not null;default:0"`
	DiscountAmount     decimal.Decimal     `gorm:"type:decimal(18,2);not null;default:0"`
	TotalAmount        decimal.Decimal     `gorm:"type:decimal(18,2);not null"`
	PaymentMethod      sales.PaymentMethod `gorm:"type:varchar(20);not null;default:'cash'"`
	PaymentStatus      sales.PaymentStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	AmountPaid         decimal.Decimal     `gorm:"type:decimal(18,2);not null;default:0"`
	IdempotencyKey     *string             `gorm:"type:varchar(100);uniqueIndex:idx_sale_documents_idempotency_key"`
	Notes              string              `gorm:"type:text"`
	OldMaterialWeight  decimal.NullDecimal `gorm:"type:decimal(12,3)"`
	OldMaterialPurity  *string             `gorm:"type:varchar(20)"`
	OldMaterialRate    decimal.NullDecimal `gorm:"type:decimal(18,2)"`
	OldMaterialValue   decimal.NullDecimal `gorm:"type:decimal(18,2)"`
	NewMaterialRate    decimal.NullDecimal `gorm:"type:decimal(18,2)"`
	ExchangeDifference decimal.NullDecimal `gorm:"type:decimal(18,2)"`
	Items              []LineItemModel     `gorm:"foreignKey:DocumentID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (SaleDocumentModel) TableName() string {
	return "sale_documents"
}

// ToDomain converts the persistence model to a domain SaleDocument.
// Items are copied only if they were preloaded.
func (m *SaleDocumentModel) ToDomain() *sales.SaleDocument {
	doc := &sales.SaleDocument{
		BaseAggregateRoot: m.ToAggregateRoot(),
		DocumentNumber:    m.DocumentNumber,
		Variant:           m.Variant,
		Customer: sales.CustomerInfo{
			ID:      m.CustomerID,
			Name:    m.CustomerName,
			Phone:   m.CustomerPhone,
			Address: m.CustomerAddress,
		},
		Subtotal:           m.Subtotal,
		TaxPercentage:      m.TaxPercentage,
		TaxAmount:          m.TaxAmount,
		DiscountPercentage: m.DiscountPercentage,
		DiscountAmount:     m.DiscountAmount,
		TotalAmount:        m.TotalAmount,
		PaymentMethod:      m.PaymentMethod,
		PaymentStatus:      m.PaymentStatus,
		AmountPaid:         m.AmountPaid,
		IdempotencyKey:     m.IdempotencyKey,
		Notes:              m.Notes,
	}

	if m.OldMaterialWeight.Valid {
		ex := &sales.ExchangeDetails{
			OldMaterialWeight: m.OldMaterialWeight.Decimal,
			OldMaterialRate:   m.OldMaterialRate.Decimal,
			OldMaterialValue:  m.OldMaterialValue.Decimal,
			NewMaterialRate:   m.NewMaterialRate.Decimal,
			Difference:        m.ExchangeDifference.Decimal,
		}
		if m.OldMaterialPurity != nil {
			ex.OldMaterialPurity = *m.OldMaterialPurity
		}
		doc.Exchange = ex
	}

	if len(m.Items) > 0 {
		doc.Items = make([]sales.LineItem, len(m.Items))
		for i := range m.Items {
			doc.Items[i] = *m.Items[i].ToDomain()
		}
	}
	return doc
}

// FromDomain populates the persistence model from a domain SaleDocument, items included.
func (m *SaleDocumentModel) FromDomain(d *sales.SaleDocument) {
	m.FromDomainAggregateRoot(d.BaseAggregateRoot)
	m.DocumentNumber = d.DocumentNumber
	m.Variant = d.Variant
	m.CustomerID = d.Customer.ID
	m.CustomerName = d.Customer.Name
	m.CustomerPhone = d.Customer.Phone
	m.CustomerAddress = d.Customer.Address
	m.Subtotal = d.Subtotal
	m.TaxPercentage = d.TaxPercentage
	m.TaxAmount = d.TaxAmount
	m.DiscountPercentage = d.DiscountPercentage
	m.DiscountAmount = d.DiscountAmount
	m.TotalAmount = d.TotalAmount
	m.PaymentMethod = d.PaymentMethod
	m.PaymentStatus = d.PaymentStatus
	m.AmountPaid = d.AmountPaid
	m.IdempotencyKey = d.IdempotencyKey
	m.Notes = d.Notes

	if ex := d.Exchange; ex != nil {
		purity := ex.OldMaterialPurity
		m.OldMaterialWeight = decimal.NewNullDecimal(ex.OldMaterialWeight)
		m.OldMaterialPurity = &purity
		m.OldMaterialRate = decimal.NewNullDecimal(ex.OldMaterialRate)
		m.OldMaterialValue = decimal.NewNullDecimal(ex.OldMaterialValue)
		m.NewMaterialRate = decimal.NewNullDecimal(ex.NewMaterialRate)
		m.ExchangeDifference = decimal.NewNullDecimal(ex.Difference)
	}

	m.Items = make([]LineItemModel, len(d.Items))
	for i := range d.Items {
		m.Items[i].FromDomain(&d.Items[i])
		m.Items[i].DocumentID = d.ID
	}
}

// SaleDocumentModelFromDomain creates a new persistence model from a domain SaleDocument.
func SaleDocumentModelFromDomain(d *sales.SaleDocument) *SaleDocumentModel {
	m := &SaleDocumentModel{}
	m.FromDomain(d)
	return m
}

// LineItemModel is the persistence model for a sale document line
type LineItemModel struct {
	ID            uuid.UUID       `gorm:"type:char(36);primaryKey"`
	DocumentID    uuid.UUID       `gorm:"type:char(36);not null;uniqueIndex:idx_sale_line_items_document_line,priority:1"`
	LineNo        int             `gorm:"not null;uniqueIndex:idx_sale_line_items_document_line,priority:2"`
	ProductID     *uuid.UUID      `gorm:"type:char(36);index:idx_sale_line_items_product"`
	ProductName   string          `gorm:"type:varchar(200);not null"`
	Weight        decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	Rate          decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	MakingCharge  decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	WastageCharge decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Quantity      int             `gorm:"not null"`
	Total         decimal.Decimal `gorm:"type:decimal(20,5);not null"`
	CreatedAt     time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (LineItemModel) TableName() string {
	return "sale_line_items"
}

// ToDomain converts the persistence model to a domain LineItem
func (m *LineItemModel) ToDomain() *sales.LineItem {
	return &sales.LineItem{
		ID:            m.ID,
		DocumentID:    m.DocumentID,
		LineNo:        m.LineNo,
		ProductID:     m.ProductID,
		ProductName:   m.ProductName,
		Weight:        m.Weight,
		Rate:          m.Rate,
		MakingCharge:  m.MakingCharge,
		WastageCharge: m.WastageCharge,
		Quantity:      m.Quantity,
		Total:         m.Total,
		CreatedAt:     m.CreatedAt,
	}
}

// FromDomain populates the persistence model from a domain LineItem
func (m *LineItemModel) FromDomain(i *sales.LineItem) {
	m.ID = i.ID
	m.DocumentID = i.DocumentID
	m.LineNo = i.LineNo
	m.ProductID = i.ProductID
	m.ProductName = i.ProductName
	m.Weight = i.Weight
	m.Rate = i.Rate
	m.MakingCharge = i.MakingCharge
	m.WastageCharge = i.WastageCharge
	m.Quantity = i.Quantity
	m.Total = i.Total
	m.CreatedAt = i.CreatedAt
}

// DocumentSequenceModel is the per-variant, per-year document counter
type DocumentSequenceModel struct {
	Variant   sales.Variant `gorm:"type:varchar(20);primaryKey"`
	Year      int           `gorm:"primaryKey;autoIncrement:false"`
	LastValue int64         `gorm:"not null;default:0"`
	UpdatedAt time.Time     `gorm:"not null"`
}

// TableName returns the table name for GORM
func (DocumentSequenceModel) TableName() string {
	return "document_sequences"
}

// All returns every model, in dependency order, for AutoMigrate in tests and tooling
func All() []any {
	return []any{
		&ProductModel{},
		&CustomerModel{},
		&SaleDocumentModel{},
		&LineItemModel{},
		&StockLedgerEntryModel{},
		&DocumentSequenceModel{},
	}
}
