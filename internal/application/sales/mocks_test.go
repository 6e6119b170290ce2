package sales

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jewelry/backend/internal/domain/catalog"
	"github.com/jewelry/backend/internal/domain/inventory"
	"github.com/jewelry/backend/internal/domain/partner"
	"github.com/jewelry/backend/internal/domain/sales"
	"github.com/jewelry/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDsForUpdate(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByCode(ctx context.Context, code string) (*catalog.Product, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, product *catalog.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, product *catalog.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *MockProductRepository) DeductStock(ctx context.Context, id uuid.UUID, quantity int) (bool, error) {
	args := m.Called(ctx, id, quantity)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) ApplyStockDelta(ctx context.Context, id uuid.UUID, delta int) (bool, error) {
	args := m.Called(ctx, id, delta)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockLedgerRepository is a mock implementation of inventory.StockLedgerRepository
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) Append(ctx context.Context, entry *inventory.StockLedgerEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockLedgerRepository) NextSequence(ctx context.Context, productID uuid.UUID) (int64, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerRepository) FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]inventory.StockLedgerEntry, error) {
	args := m.Called(ctx, productID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.StockLedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerRepository) FindAllByProductInOrder(ctx context.Context, productID uuid.UUID) ([]inventory.StockLedgerEntry, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.StockLedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) FindByReferenceDocument(ctx context.Context, documentID uuid.UUID) ([]inventory.StockLedgerEntry, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.StockLedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) CountByReferenceDocument(ctx context.Context, documentID uuid.UUID) (int64, error) {
	args := m.Called(ctx, documentID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerRepository) ClearReferenceDocument(ctx context.Context, documentID uuid.UUID) (int64, error) {
	args := m.Called(ctx, documentID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerRepository) DeleteByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(int64), args.Error(1)
}

// MockDocumentRepository is a mock implementation of sales.SaleDocumentRepository
type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) Create(ctx context.Context, doc *sales.SaleDocument) error {
	return m.Called(ctx, doc).Error(0)
}

func (m *MockDocumentRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.SaleDocument, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.SaleDocument), args.Error(1)
}

func (m *MockDocumentRepository) FindByNumber(ctx context.Context, number string) (*sales.SaleDocument, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.SaleDocument), args.Error(1)
}

func (m *MockDocumentRepository) FindByIdempotencyKey(ctx context.Context, key string) (*sales.SaleDocument, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.SaleDocument), args.Error(1)
}

func (m *MockDocumentRepository) FindAll(ctx context.Context, filter sales.DocumentFilter) ([]sales.SaleDocument, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]sales.SaleDocument), args.Error(1)
}

func (m *MockDocumentRepository) Count(ctx context.Context, filter sales.DocumentFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDocumentRepository) FindIDsByCustomer(ctx context.Context, customerID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockDocumentRepository) CountByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDocumentRepository) CountItemsByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDocumentRepository) UpdatePayment(ctx context.Context, doc *sales.SaleDocument) error {
	return m.Called(ctx, doc).Error(0)
}

func (m *MockDocumentRepository) DetachProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockSequenceRepository is a mock implementation of sales.DocumentSequenceRepository
type MockSequenceRepository struct {
	mock.Mock
}

func (m *MockSequenceRepository) Next(ctx context.Context, variant sales.Variant, year int) (int64, error) {
	args := m.Called(ctx, variant, year)
	return args.Get(0).(int64), args.Error(1)
}

// MockCustomerRepository is a mock implementation of partner.CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Customer, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	return m.Called(ctx, customer).Error(0)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockIdempotencyStore is a map-backed shared.IdempotencyStore
type MockIdempotencyStore struct {
	mu   sync.Mutex
	keys map[string]string
}

func NewMockIdempotencyStore() *MockIdempotencyStore {
	return &MockIdempotencyStore{keys: make(map[string]string)}
}

func (s *MockIdempotencyStore) Remember(_ context.Context, key, resourceID string, _ time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.keys[key]; ok {
		return false, nil
	}
	s.keys[key] = resourceID
	return true, nil
}

func (s *MockIdempotencyStore) Lookup(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.keys[key]
	return id, ok, nil
}

func (s *MockIdempotencyStore) Close() error { return nil }

// MockKeyLocker is a mock implementation of shared.KeyLocker
type MockKeyLocker struct {
	mock.Mock
}

func (m *MockKeyLocker) Obtain(ctx context.Context, key string, ttl time.Duration) (func(context.Context) error, error) {
	args := m.Called(ctx, key, ttl)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(func(context.Context) error), args.Error(1)
}

// MockSaleRecorder records metric calls
type MockSaleRecorder struct {
	mu      sync.Mutex
	created []string
	failed  []string
}

func (r *MockSaleRecorder) RecordDocumentCreated(_ context.Context, variant string, _ decimal.Decimal, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created = append(r.created, variant)
}

func (r *MockSaleRecorder) RecordDocumentFailed(_ context.Context, _ string, code string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failed = append(r.failed, code)
}

var (
	_ catalog.ProductRepository        = (*MockProductRepository)(nil)
	_ inventory.StockLedgerRepository  = (*MockLedgerRepository)(nil)
	_ sales.SaleDocumentRepository     = (*MockDocumentRepository)(nil)
	_ sales.DocumentSequenceRepository = (*MockSequenceRepository)(nil)
	_ partner.CustomerRepository       = (*MockCustomerRepository)(nil)
	_ shared.IdempotencyStore          = (*MockIdempotencyStore)(nil)
	_ shared.KeyLocker                 = (*MockKeyLocker)(nil)
	_ SaleRecorder                     = (*MockSaleRecorder)(nil)
)
