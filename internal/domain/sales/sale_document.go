package sales

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jewelry/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Variant is the kind of sale document
type Variant string

const (
	// VariantInvoice is a quotation with no stock effect
	VariantInvoice Variant = "invoice"
	// VariantBill is a cash sale that deducts stock
	VariantBill Variant = "bill"
	// VariantExchangeBill is a cash sale with old-material intake
	VariantExchangeBill Variant = "exchange_bill"
)

// IsValid checks if the variant is known
func (v Variant) IsValid() bool {
	switch v {
	case VariantInvoice, VariantBill, VariantExchangeBill:
		return true
	}
	return false
}

// String returns the string representation of Variant
func (v Variant) String() string {
	return string(v)
}

// Prefix returns the document number prefix of the variant
func (v Variant) Prefix() string {
	switch v {
	case VariantInvoice:
		return "INV"
	case VariantBill:
		return "BILL"
	case VariantExchangeBill:
		return "EXB"
	}
	return ""
}

// StockEffect returns whether documents of this variant deduct stock
func (v Variant) StockEffect() StockEffect {
	if v == VariantBill || v == VariantExchangeBill {
		return StockEffectDeduct
	}
	return StockEffectNone
}

// StockEffect drives whether a document touches the stock ledger
type StockEffect string

const (
	StockEffectNone   StockEffect = "none"
	StockEffectDeduct StockEffect = "deduct"
)

// PaymentStatus represents how much of the payable amount is settled
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPartial PaymentStatus = "partial"
	PaymentStatusPaid    PaymentStatus = "paid"
)

// IsValid checks if the status is known
func (s PaymentStatus) IsValid() bool {
	return s == PaymentStatusPending || s == PaymentStatusPartial || s == PaymentStatusPaid
}

// PaymentMethod is how the customer settles the document
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodCard         PaymentMethod = "card"
	PaymentMethodUPI          PaymentMethod = "upi"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodCheque       PaymentMethod = "cheque"
	PaymentMethodMixed        PaymentMethod = "mixed"
)

// IsValid checks if the method is known
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodUPI, PaymentMethodBankTransfer, PaymentMethodCheque, PaymentMethodMixed:
		return true
	}
	return false
}

// CustomerInfo is the customer reference and display snapshot on a document
type CustomerInfo struct {
	ID      *uuid.UUID
	Name    string
	Phone   string
	Address string
}

// ExchangeDetails is the old-material block carried only by exchange bills
type ExchangeDetails struct {
	OldMaterialWeight decimal.Decimal
	OldMaterialPurity string
	OldMaterialRate   decimal.Decimal
	OldMaterialValue  decimal.Decimal
	NewMaterialRate   decimal.Decimal
	Difference        decimal.Decimal
}

// ExchangeDraft carries caller-supplied old-material fields
type ExchangeDraft struct {
	OldMaterialWeight decimal.Decimal
	OldMaterialPurity string
	OldMaterialRate   decimal.Decimal
	NewMaterialRate   decimal.Decimal
}

// DocumentDraft is a validated-on-construction sale request
type DocumentDraft struct {
	Variant            Variant
	Customer           CustomerInfo
	Items              []LineItemDraft
	DiscountAmount     decimal.Decimal
	DiscountPercentage decimal.Decimal
	TaxPercentage      decimal.Decimal
	PaymentMethod      PaymentMethod
	AmountPaid         decimal.Decimal
	IdempotencyKey     string
	Notes              string
	Exchange           *ExchangeDraft
}

// SaleDocument is the aggregate root for invoices, bills and exchange bills.
// Totals and items never change after creation; only payment fields do.
type SaleDocument struct {
	shared.BaseAggregateRoot
	DocumentNumber     string
	Variant            Variant
	Customer           CustomerInfo
	Items              []LineItem
	Subtotal           decimal.Decimal
	TaxPercentage      decimal.Decimal
	TaxAmount          decimal.Decimal
	DiscountPercentage decimal.Decimal
	DiscountAmount     decimal.Decimal
	TotalAmount        decimal.Decimal
	PaymentMethod      PaymentMethod
	PaymentStatus      PaymentStatus
	AmountPaid         decimal.Decimal
	IdempotencyKey     *string
	Notes              string
	Exchange           *ExchangeDetails
}

// NewSaleDocument validates a draft and computes every derived amount.
// The document has no number until AssignNumber is called.
func NewSaleDocument(d DocumentDraft) (*SaleDocument, error) {
	if !d.Variant.IsValid() {
		return nil, shared.NewValidationError("variant", fmt.Sprintf("Unknown document variant %q", d.Variant))
	}
	if len(d.Items) == 0 && d.Variant != VariantInvoice {
		return nil, shared.NewValidationError("items", "At least one line item is required")
	}
	if d.Variant == VariantExchangeBill && d.Exchange == nil {
		return nil, shared.NewInvalidExchangeError("exchange", "Exchange bills require old material details")
	}
	if d.Variant != VariantExchangeBill && d.Exchange != nil {
		return nil, shared.NewValidationError("exchange", "Only exchange bills carry old material details")
	}
	if err := validateCustomer(d.Customer); err != nil {
		return nil, err
	}
	method := d.PaymentMethod
	if method == "" {
		method = PaymentMethodCash
	}
	if !method.IsValid() {
		return nil, shared.NewValidationError("payment_method", fmt.Sprintf("Unknown payment method %q", method))
	}
	if len(d.Notes) > 1000 {
		return nil, shared.NewValidationError("notes", "Notes cannot exceed 1000 characters")
	}
	if len(d.IdempotencyKey) > 100 {
		return nil, shared.NewValidationError("idempotency_key", "Idempotency key cannot exceed 100 characters")
	}

	doc := &SaleDocument{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Variant:           d.Variant,
		Customer:          d.Customer,
		Items:             make([]LineItem, 0, len(d.Items)),
		PaymentMethod:     method,
		Notes:             d.Notes,
	}
	if d.IdempotencyKey != "" {
		key := d.IdempotencyKey
		doc.IdempotencyKey = &key
	}

	for i, draft := range d.Items {
		item, err := NewLineItem(i+1, draft)
		if err != nil {
			return nil, prefixField(err, fmt.Sprintf("items[%d]", i))
		}
		item.DocumentID = doc.ID
		doc.Items = append(doc.Items, *item)
	}

	if err := doc.computeTotals(d.DiscountAmount, d.DiscountPercentage, d.TaxPercentage); err != nil {
		return nil, err
	}

	if d.Exchange != nil {
		if err := doc.computeExchange(*d.Exchange); err != nil {
			return nil, err
		}
	}

	if err := doc.applyInitialPayment(d.AmountPaid); err != nil {
		return nil, err
	}

	return doc, nil
}

func (d *SaleDocument) computeTotals(discountAmount, discountPercentage, taxPercentage decimal.Decimal) error {
	subtotal := decimal.Zero
	for _, item := range d.Items {
		subtotal = subtotal.Add(item.Total)
	}
	subtotal = RoundMoney(subtotal)

	discount := discountAmount
	pct := discountPercentage
	if discount.IsZero() && pct.IsPositive() {
		var err error
		if discount, err = DiscountFromPercentage(subtotal, pct); err != nil {
			return err
		}
	} else {
		pct = PercentageOf(RoundMoney(discount), subtotal)
	}

	totals, err := ComputeTotals(d.Items, discount, taxPercentage)
	if err != nil {
		return err
	}

	d.Subtotal = totals.Subtotal
	d.DiscountAmount = totals.DiscountAmount
	d.DiscountPercentage = pct
	d.TaxPercentage = taxPercentage
	d.TaxAmount = totals.TaxAmount
	d.TotalAmount = totals.TotalAmount
	return nil
}

func (d *SaleDocument) computeExchange(x ExchangeDraft) error {
	if x.NewMaterialRate.IsNegative() {
		return shared.NewInvalidExchangeError("new_material_rate", "New material rate cannot be negative")
	}
	if len(x.OldMaterialPurity) > 20 {
		return shared.NewInvalidExchangeError("old_material_purity", "Purity cannot exceed 20 characters")
	}

	ex, err := ComputeExchange(x.OldMaterialWeight, x.OldMaterialRate, d.TotalAmount)
	if err != nil {
		return err
	}

	d.Exchange = &ExchangeDetails{
		OldMaterialWeight: x.OldMaterialWeight,
		OldMaterialPurity: x.OldMaterialPurity,
		OldMaterialRate:   x.OldMaterialRate,
		OldMaterialValue:  ex.OldValue,
		NewMaterialRate:   x.NewMaterialRate,
		Difference:        ex.Difference,
	}
	return nil
}

// applyInitialPayment sets the payment fields of a new document.
// An exchange the shop owes on is settled up front: paid, with the refund as amount paid.
func (d *SaleDocument) applyInitialPayment(amountPaid decimal.Decimal) error {
	if d.Exchange != nil && d.Exchange.Difference.IsNegative() {
		d.AmountPaid = d.Exchange.Difference.Abs()
		d.PaymentStatus = PaymentStatusPaid
		return nil
	}
	return d.setAmountPaid(amountPaid)
}

// PayableAmount is what the customer owes the shop
func (d *SaleDocument) PayableAmount() decimal.Decimal {
	if d.Exchange != nil {
		if d.Exchange.Difference.IsNegative() {
			return decimal.Zero
		}
		return d.Exchange.Difference
	}
	return d.TotalAmount
}

// ShopOwesCustomer reports whether the exchange leaves the shop paying out
func (d *SaleDocument) ShopOwesCustomer() bool {
	return d.Exchange != nil && d.Exchange.Difference.IsNegative()
}

// UpdatePayment records a post-hoc payment amount and method
func (d *SaleDocument) UpdatePayment(amountPaid decimal.Decimal, method PaymentMethod) error {
	if d.ShopOwesCustomer() {
		return shared.NewDomainError("INVALID_STATE", "Exchange refunds are settled when the bill is created")
	}
	if method != "" {
		if !method.IsValid() {
			return shared.NewValidationError("payment_method", fmt.Sprintf("Unknown payment method %q", method))
		}
		d.PaymentMethod = method
	}
	if err := d.setAmountPaid(amountPaid); err != nil {
		return err
	}
	d.UpdatedAt = time.Now()
	d.IncrementVersion()
	return nil
}

func (d *SaleDocument) setAmountPaid(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return shared.NewValidationError("amount_paid", "Amount paid cannot be negative")
	}
	amount = RoundMoney(amount)
	payable := d.PayableAmount()
	if amount.GreaterThan(payable) {
		return shared.NewValidationError("amount_paid", fmt.Sprintf("Amount paid %s exceeds payable amount %s", amount, payable))
	}

	d.AmountPaid = amount
	switch {
	case amount.IsZero() && d.Exchange != nil:
		// an even exchange still waits for the cashier to settle it
		d.PaymentStatus = PaymentStatusPending
	case amount.Equal(payable):
		d.PaymentStatus = PaymentStatusPaid
	case amount.IsZero():
		d.PaymentStatus = PaymentStatusPending
	default:
		d.PaymentStatus = PaymentStatusPartial
	}
	return nil
}

// BalanceDue is the unpaid part of the payable amount
func (d *SaleDocument) BalanceDue() decimal.Decimal {
	if d.ShopOwesCustomer() {
		return decimal.Zero
	}
	return d.PayableAmount().Sub(d.AmountPaid)
}

// AssignNumber sets the unique document number
func (d *SaleDocument) AssignNumber(number string) error {
	if d.DocumentNumber != "" {
		return shared.NewDomainError("INVALID_STATE", "Document number already assigned")
	}
	if number == "" || len(number) > 50 {
		return shared.NewValidationError("document_number", "Document number must be 1 to 50 characters")
	}
	d.DocumentNumber = number
	return nil
}

// ResolveProductName fills an empty name snapshot on line idx
func (d *SaleDocument) ResolveProductName(idx int, name string) {
	if idx < 0 || idx >= len(d.Items) {
		return
	}
	if d.Items[idx].ProductName == "" {
		d.Items[idx].ProductName = name
	}
}

// StockRequirement is the total quantity a document takes from one product
type StockRequirement struct {
	ProductID uuid.UUID
	Quantity  int
	Lines     []int // zero-based item indexes
}

// StockRequirements aggregates tracked lines per product in ascending product id order.
// Documents without stock effect have no requirements.
func (d *SaleDocument) StockRequirements() []StockRequirement {
	if d.Variant.StockEffect() != StockEffectDeduct {
		return nil
	}

	byProduct := make(map[uuid.UUID]*StockRequirement)
	for i, item := range d.Items {
		if !item.IsTracked() {
			continue
		}
		req, ok := byProduct[*item.ProductID]
		if !ok {
			req = &StockRequirement{ProductID: *item.ProductID}
			byProduct[*item.ProductID] = req
		}
		req.Quantity += item.Quantity
		req.Lines = append(req.Lines, i)
	}

	reqs := make([]StockRequirement, 0, len(byProduct))
	for _, r := range byProduct {
		reqs = append(reqs, *r)
	}
	sort.Slice(reqs, func(i, j int) bool {
		return bytes.Compare(reqs[i].ProductID[:], reqs[j].ProductID[:]) < 0
	})
	return reqs
}

// TrackedProductIDs returns every distinct product referenced by the document
func (d *SaleDocument) TrackedProductIDs() []uuid.UUID {
	seen := make(map[uuid.UUID]struct{})
	ids := make([]uuid.UUID, 0, len(d.Items))
	for _, item := range d.Items {
		if !item.IsTracked() {
			continue
		}
		if _, ok := seen[*item.ProductID]; ok {
			continue
		}
		seen[*item.ProductID] = struct{}{}
		ids = append(ids, *item.ProductID)
	}
	return ids
}

func validateCustomer(c CustomerInfo) error {
	if c.ID != nil && *c.ID == uuid.Nil {
		return shared.NewValidationError("customer_id", "Customer ID cannot be empty")
	}
	if len(strings.TrimSpace(c.Name)) > 200 {
		return shared.NewValidationError("customer_name", "Customer name cannot exceed 200 characters")
	}
	if len(c.Phone) > 50 {
		return shared.NewValidationError("customer_phone", "Customer phone cannot exceed 50 characters")
	}
	if len(c.Address) > 500 {
		return shared.NewValidationError("customer_address", "Customer address cannot exceed 500 characters")
	}
	return nil
}

// prefixField qualifies the field of a validation error with its position in the request
func prefixField(err error, prefix string) error {
	if de, ok := err.(*shared.DomainError); ok {
		field := prefix
		if de.Field != "" {
			field = prefix + "." + de.Field
		}
		return de.WithField(field)
	}
	return err
}
