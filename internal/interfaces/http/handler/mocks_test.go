package handler

import (
	"context"

	"github.com/google/uuid"
	catalogapp "github.com/jewelry/backend/internal/application/catalog"
	inventoryapp "github.com/jewelry/backend/internal/application/inventory"
	partnerapp "github.com/jewelry/backend/internal/application/partner"
	salesapp "github.com/jewelry/backend/internal/application/sales"
	"github.com/jewelry/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

type MockSaleDocumentService struct {
	mock.Mock
}

func (m *MockSaleDocumentService) PreviewTotals(ctx context.Context, req salesapp.CreateSaleDocumentRequest) (*salesapp.PreviewTotalsResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*salesapp.PreviewTotalsResponse), args.Error(1)
}

func (m *MockSaleDocumentService) GetByID(ctx context.Context, id uuid.UUID) (*salesapp.SaleDocumentResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*salesapp.SaleDocumentResponse), args.Error(1)
}

func (m *MockSaleDocumentService) GetByNumber(ctx context.Context, number string) (*salesapp.SaleDocumentResponse, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*salesapp.SaleDocumentResponse), args.Error(1)
}

func (m *MockSaleDocumentService) List(ctx context.Context, req salesapp.ListDocumentsRequest) (*shared.Paginated[salesapp.SaleDocumentListResponse], error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[salesapp.SaleDocumentListResponse]), args.Error(1)
}

func (m *MockSaleDocumentService) UpdatePayment(ctx context.Context, id uuid.UUID, req salesapp.UpdatePaymentRequest) (*salesapp.SaleDocumentResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*salesapp.SaleDocumentResponse), args.Error(1)
}

func (m *MockSaleDocumentService) DeleteDocument(ctx context.Context, id uuid.UUID, cascade bool) error {
	return m.Called(ctx, id, cascade).Error(0)
}

type MockSaleDocumentCreator struct {
	mock.Mock
}

func (m *MockSaleDocumentCreator) Create(ctx context.Context, key string, req salesapp.CreateSaleDocumentRequest) (*salesapp.SaleDocumentResponse, bool, error) {
	args := m.Called(ctx, key, req)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*salesapp.SaleDocumentResponse), args.Bool(1), args.Error(2)
}

type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) product(args mock.Arguments) (*catalogapp.ProductResponse, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogapp.ProductResponse), args.Error(1)
}

func (m *MockProductService) Create(ctx context.Context, req catalogapp.CreateProductRequest) (*catalogapp.ProductResponse, error) {
	return m.product(m.Called(ctx, req))
}

func (m *MockProductService) GetByID(ctx context.Context, id uuid.UUID) (*catalogapp.ProductResponse, error) {
	return m.product(m.Called(ctx, id))
}

func (m *MockProductService) GetByCode(ctx context.Context, code string) (*catalogapp.ProductResponse, error) {
	return m.product(m.Called(ctx, code))
}

func (m *MockProductService) List(ctx context.Context, filter catalogapp.ProductListFilter) (*shared.Paginated[catalogapp.ProductResponse], error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[catalogapp.ProductResponse]), args.Error(1)
}

func (m *MockProductService) Update(ctx context.Context, id uuid.UUID, req catalogapp.UpdateProductRequest) (*catalogapp.ProductResponse, error) {
	return m.product(m.Called(ctx, id, req))
}

func (m *MockProductService) Activate(ctx context.Context, id uuid.UUID) (*catalogapp.ProductResponse, error) {
	return m.product(m.Called(ctx, id))
}

func (m *MockProductService) Deactivate(ctx context.Context, id uuid.UUID) (*catalogapp.ProductResponse, error) {
	return m.product(m.Called(ctx, id))
}

func (m *MockProductService) Delete(ctx context.Context, id uuid.UUID, cascade bool) error {
	return m.Called(ctx, id, cascade).Error(0)
}

type MockStockLedgerService struct {
	mock.Mock
}

func (m *MockStockLedgerService) Adjust(ctx context.Context, productID uuid.UUID, req inventoryapp.AdjustStockRequest) (*inventoryapp.LedgerEntryResponse, error) {
	args := m.Called(ctx, productID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventoryapp.LedgerEntryResponse), args.Error(1)
}

func (m *MockStockLedgerService) ListEntries(ctx context.Context, productID uuid.UUID, filter shared.Filter) (*shared.Paginated[inventoryapp.LedgerEntryResponse], error) {
	args := m.Called(ctx, productID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[inventoryapp.LedgerEntryResponse]), args.Error(1)
}

func (m *MockStockLedgerService) VerifyLedger(ctx context.Context, productID uuid.UUID) (*inventoryapp.LedgerVerificationResponse, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventoryapp.LedgerVerificationResponse), args.Error(1)
}

type MockCustomerService struct {
	mock.Mock
}

func (m *MockCustomerService) customer(args mock.Arguments) (*partnerapp.CustomerResponse, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partnerapp.CustomerResponse), args.Error(1)
}

func (m *MockCustomerService) Create(ctx context.Context, req partnerapp.CreateCustomerRequest) (*partnerapp.CustomerResponse, error) {
	return m.customer(m.Called(ctx, req))
}

func (m *MockCustomerService) GetByID(ctx context.Context, id uuid.UUID) (*partnerapp.CustomerResponse, error) {
	return m.customer(m.Called(ctx, id))
}

func (m *MockCustomerService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[partnerapp.CustomerResponse], error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[partnerapp.CustomerResponse]), args.Error(1)
}

func (m *MockCustomerService) Update(ctx context.Context, id uuid.UUID, req partnerapp.UpdateCustomerRequest) (*partnerapp.CustomerResponse, error) {
	return m.customer(m.Called(ctx, id, req))
}

func (m *MockCustomerService) Delete(ctx context.Context, id uuid.UUID, cascade bool) error {
	return m.Called(ctx, id, cascade).Error(0)
}
