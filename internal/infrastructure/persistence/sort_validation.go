package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// ProductSortFields contains allowed sort fields for products
var ProductSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"code":           true,
	"name":           true,
	"category":       true,
	"material_type":  true,
	"status":         true,
	"stock_quantity": true,
	"min_stock":      true,
}

// CustomerSortFields contains allowed sort fields for customers
var CustomerSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"phone":      true,
}

// SaleDocumentSortFields contains allowed sort fields for sale documents
var SaleDocumentSortFields = map[string]bool{
	"id":              true,
	"created_at":      true,
	"updated_at":      true,
	"document_number": true,
	"variant":         true,
	"customer_name":   true,
	"total_amount":    true,
	"payment_status":  true,
}

// LedgerSortFields contains allowed sort fields for stock ledger entries
var LedgerSortFields = map[string]bool{
	"created_at": true,
	"sequence":   true,
}
