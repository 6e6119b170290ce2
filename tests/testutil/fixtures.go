package testutil

import (
	"fmt"

	"github.com/google/uuid"
	catalogapp "github.com/jewelry/backend/internal/application/catalog"
	partnerapp "github.com/jewelry/backend/internal/application/partner"
	salesapp "github.com/jewelry/backend/internal/application/sales"
	"github.com/shopspring/decimal"
)

// ProductRequest returns a gold product request with the given code and opening stock.
func ProductRequest(code string, initialStock int) catalogapp.CreateProductRequest {
	weight := decimal.RequireFromString("4.25")
	return catalogapp.CreateProductRequest{
		Code:         code,
		Name:         fmt.Sprintf("Ring %s", code),
		Category:     "rings",
		MaterialType: "gold",
		Purity:       "22K",
		UnitWeight:   &weight,
		MinStock:     1,
		InitialStock: initialStock,
	}
}

// CustomerRequest returns a customer request named name.
func CustomerRequest(name string) partnerapp.CreateCustomerRequest {
	return partnerapp.CreateCustomerRequest{
		Name:    name,
		Phone:   "+91 98450 12345",
		Address: "12 MG Road, Bengaluru",
	}
}

// CatalogLine returns a line item for quantity units of a catalogue product
// weighing 10g at 5000 per gram with 500 making charge, 50500 per unit.
func CatalogLine(productID uuid.UUID, quantity int) salesapp.LineItemRequest {
	return salesapp.LineItemRequest{
		ProductID:     &productID,
		ProductName:   "Ring",
		Weight:        decimal.NewFromInt(10),
		Rate:          decimal.NewFromInt(5000),
		MakingCharge:  decimal.NewFromInt(500),
		WastageCharge: decimal.Zero,
		Quantity:      quantity,
	}
}

// BillRequest returns a cash bill for the given lines, paid in full by amountPaid.
func BillRequest(amountPaid decimal.Decimal, lines ...salesapp.LineItemRequest) salesapp.CreateSaleDocumentRequest {
	return salesapp.CreateSaleDocumentRequest{
		Variant:       "bill",
		CustomerName:  "Walk-in",
		Items:         lines,
		PaymentMethod: "cash",
		AmountPaid:    amountPaid,
	}
}
