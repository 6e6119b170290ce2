package handler

import (
	"context"

	"github.com/google/uuid"
	catalogapp "github.com/jewelry/backend/internal/application/catalog"
	inventoryapp "github.com/jewelry/backend/internal/application/inventory"
	partnerapp "github.com/jewelry/backend/internal/application/partner"
	salesapp "github.com/jewelry/backend/internal/application/sales"
	"github.com/jewelry/backend/internal/domain/shared"
)

// SaleDocumentService is the part of salesapp.SaleService the handlers use
type SaleDocumentService interface {
	PreviewTotals(ctx context.Context, req salesapp.CreateSaleDocumentRequest) (*salesapp.PreviewTotalsResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*salesapp.SaleDocumentResponse, error)
	GetByNumber(ctx context.Context, number string) (*salesapp.SaleDocumentResponse, error)
	List(ctx context.Context, req salesapp.ListDocumentsRequest) (*shared.Paginated[salesapp.SaleDocumentListResponse], error)
	UpdatePayment(ctx context.Context, id uuid.UUID, req salesapp.UpdatePaymentRequest) (*salesapp.SaleDocumentResponse, error)
	DeleteDocument(ctx context.Context, id uuid.UUID, cascade bool) error
}

// SaleDocumentCreator creates documents, replaying earlier results for a known idempotency key
type SaleDocumentCreator interface {
	Create(ctx context.Context, key string, req salesapp.CreateSaleDocumentRequest) (*salesapp.SaleDocumentResponse, bool, error)
}

// ProductService is the part of catalogapp.ProductService the handlers use
type ProductService interface {
	Create(ctx context.Context, req catalogapp.CreateProductRequest) (*catalogapp.ProductResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*catalogapp.ProductResponse, error)
	GetByCode(ctx context.Context, code string) (*catalogapp.ProductResponse, error)
	List(ctx context.Context, filter catalogapp.ProductListFilter) (*shared.Paginated[catalogapp.ProductResponse], error)
	Update(ctx context.Context, id uuid.UUID, req catalogapp.UpdateProductRequest) (*catalogapp.ProductResponse, error)
	Activate(ctx context.Context, id uuid.UUID) (*catalogapp.ProductResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) (*catalogapp.ProductResponse, error)
	Delete(ctx context.Context, id uuid.UUID, cascade bool) error
}

// StockLedgerService is the part of inventoryapp.StockLedgerService the handlers use
type StockLedgerService interface {
	Adjust(ctx context.Context, productID uuid.UUID, req inventoryapp.AdjustStockRequest) (*inventoryapp.LedgerEntryResponse, error)
	ListEntries(ctx context.Context, productID uuid.UUID, filter shared.Filter) (*shared.Paginated[inventoryapp.LedgerEntryResponse], error)
	VerifyLedger(ctx context.Context, productID uuid.UUID) (*inventoryapp.LedgerVerificationResponse, error)
}

// CustomerService is the part of partnerapp.CustomerService the handlers use
type CustomerService interface {
	Create(ctx context.Context, req partnerapp.CreateCustomerRequest) (*partnerapp.CustomerResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*partnerapp.CustomerResponse, error)
	List(ctx context.Context, filter shared.Filter) (*shared.Paginated[partnerapp.CustomerResponse], error)
	Update(ctx context.Context, id uuid.UUID, req partnerapp.UpdateCustomerRequest) (*partnerapp.CustomerResponse, error)
	Delete(ctx context.Context, id uuid.UUID, cascade bool) error
}

var (
	_ SaleDocumentService = (*salesapp.SaleService)(nil)
	_ SaleDocumentCreator = (*salesapp.IdempotentCreator)(nil)
	_ ProductService      = (*catalogapp.ProductService)(nil)
	_ StockLedgerService  = (*inventoryapp.StockLedgerService)(nil)
	_ CustomerService     = (*partnerapp.CustomerService)(nil)
)
