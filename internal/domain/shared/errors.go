package shared

import (
	"fmt"

	"github.com/google/uuid"
)

// DomainError represents a domain-level error.
// An error may belong to a broader kind (e.g. INVALID_DISCOUNT is a VALIDATION_ERROR),
// which lets callers match either the specific code or the family with errors.Is.
type DomainError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Field   string         `json:"field,omitempty"`
	Details map[string]any `json:"details,omitempty"`

	kind  *DomainError
	cause error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// Unwrap returns the underlying infrastructure error, if any
func (e *DomainError) Unwrap() error {
	return e.cause
}

// Is reports whether target is this error's code or one of its parent kinds
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	for k := e; k != nil; k = k.kind {
		if k == t || k.Code == t.Code {
			return true
		}
	}
	return false
}

// Kind returns the parent kind of the error, or nil for a root kind
func (e *DomainError) Kind() *DomainError {
	return e.kind
}

// WithField returns a copy of the error naming the offending field
func (e *DomainError) WithField(field string) *DomainError {
	cp := *e
	cp.Field = field
	return &cp
}

// WithDetail returns a copy of the error with an extra detail attached
func (e *DomainError) WithDetail(key string, value any) *DomainError {
	cp := *e
	cp.Details = make(map[string]any, len(e.Details)+1)
	for k, v := range e.Details {
		cp.Details[k] = v
	}
	cp.Details[key] = value
	return &cp
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// newKind creates a sentinel that belongs to a parent kind
func newKind(parent *DomainError, code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		kind:    parent,
	}
}

// Error kinds
var (
	ErrValidation          = NewDomainError("VALIDATION_ERROR", "Validation failed")
	ErrInvalidLineItem     = newKind(ErrValidation, "INVALID_LINE_ITEM", "Invalid line item")
	ErrInvalidDiscount     = newKind(ErrValidation, "INVALID_DISCOUNT", "Discount cannot exceed subtotal")
	ErrInvalidExchange     = newKind(ErrValidation, "INVALID_EXCHANGE_INPUT", "Invalid exchange input")
	ErrInsufficientStock   = NewDomainError("INSUFFICIENT_STOCK", "Insufficient stock available")
	ErrPersistence         = NewDomainError("PERSISTENCE_FAILURE", "The operation could not be saved, please retry")
	ErrTransactionTimeout  = newKind(ErrPersistence, "TRANSACTION_TIMEOUT", "The operation timed out, please retry")
	ErrReferentialConflict = NewDomainError("REFERENTIAL_CONFLICT", "Resource is referenced by other records")
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
)

// NewValidationError creates a ValidationError naming the offending field
func NewValidationError(field, message string) *DomainError {
	return &DomainError{Code: ErrValidation.Code, Message: message, Field: field, kind: ErrValidation}
}

// NewInvalidLineItemError creates an InvalidLineItem error for a line item field
func NewInvalidLineItemError(field, message string) *DomainError {
	return &DomainError{Code: ErrInvalidLineItem.Code, Message: message, Field: field, kind: ErrInvalidLineItem}
}

// NewInvalidDiscountError creates an InvalidDiscount error
func NewInvalidDiscountError(discount, subtotal fmt.Stringer) *DomainError {
	return &DomainError{
		Code:    ErrInvalidDiscount.Code,
		Message: fmt.Sprintf("discount %s exceeds subtotal %s", discount, subtotal),
		Field:   "discount_amount",
		Details: map[string]any{"discount": discount.String(), "subtotal": subtotal.String()},
		kind:    ErrInvalidDiscount,
	}
}

// NewInvalidExchangeError creates an InvalidExchangeInput error for an exchange field
func NewInvalidExchangeError(field, message string) *DomainError {
	return &DomainError{Code: ErrInvalidExchange.Code, Message: message, Field: field, kind: ErrInvalidExchange}
}

// NewNotFoundError creates a NotFound error for a resource
func NewNotFoundError(resource string, id any) *DomainError {
	return &DomainError{
		Code:    ErrNotFound.Code,
		Message: fmt.Sprintf("%s %v not found", resource, id),
		Details: map[string]any{"resource": resource, "id": fmt.Sprint(id)},
		kind:    ErrNotFound,
	}
}

// NewPersistenceFailure wraps an infrastructure error as an opaque retryable failure
func NewPersistenceFailure(op string, cause error) *DomainError {
	return &DomainError{
		Code:    ErrPersistence.Code,
		Message: fmt.Sprintf("%s failed, please retry", op),
		kind:    ErrPersistence,
		cause:   cause,
	}
}

// NewTransactionTimeout wraps a timeout raised by the persistence layer
func NewTransactionTimeout(op string, cause error) *DomainError {
	return &DomainError{
		Code:    ErrTransactionTimeout.Code,
		Message: fmt.Sprintf("%s timed out, please retry", op),
		kind:    ErrTransactionTimeout,
		cause:   cause,
	}
}

// NewReferentialConflict reports that a row cannot be removed while dependents exist
func NewReferentialConflict(resource string, id uuid.UUID, dependents map[string]int64) *DomainError {
	details := make(map[string]any, len(dependents)+1)
	details["id"] = id.String()
	for k, v := range dependents {
		details[k] = v
	}
	return &DomainError{
		Code:    ErrReferentialConflict.Code,
		Message: fmt.Sprintf("%s %s is referenced by other records, use cascade delete to remove it", resource, id),
		Details: details,
		kind:    ErrReferentialConflict,
	}
}

// InsufficientStockError reports a stock shortfall for a single product
type InsufficientStockError struct {
	ProductID uuid.UUID `json:"product_id"`
	Available int       `json:"available"`
	Required  int       `json:"required"`
}

// NewInsufficientStockError creates an InsufficientStockError
func NewInsufficientStockError(productID uuid.UUID, available, required int) *InsufficientStockError {
	return &InsufficientStockError{
		ProductID: productID,
		Available: available,
		Required:  required,
	}
}

// Error implements the error interface
func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: available %d, required %d", e.ProductID, e.Available, e.Required)
}

// Is matches ErrInsufficientStock
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// DomainError converts the shortfall into a DomainError carrying the quantities as details
func (e *InsufficientStockError) DomainError() *DomainError {
	return &DomainError{
		Code:    ErrInsufficientStock.Code,
		Message: e.Error(),
		Details: map[string]any{
			"product_id": e.ProductID.String(),
			"available":  e.Available,
			"required":   e.Required,
		},
		kind: ErrInsufficientStock,
	}
}
