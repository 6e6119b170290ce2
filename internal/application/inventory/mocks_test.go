package inventory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/jewelry/backend/internal/domain/catalog"
	"github.com/jewelry/backend/internal/domain/inventory"
	"github.com/jewelry/backend/internal/domain/shared"
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

// MockStockAlertNotifier records alerts for assertions
type MockStockAlertNotifier struct {
	mu     sync.Mutex
	alerts []StockAlert
}

func (n *MockStockAlertNotifier) SendAlert(_ context.Context, alert StockAlert) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.alerts = append(n.alerts, alert)
	return nil
}

func (n *MockStockAlertNotifier) GetAlerts() []StockAlert {
	n.mu.Lock()
	defer n.mu.Unlock()
	result := make([]StockAlert, len(n.alerts))
	copy(result, n.alerts)
	return result
}
