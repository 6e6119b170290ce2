package partner

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	inventoryapp "github.com/jewelry/backend/internal/application/inventory"
	"github.com/jewelry/backend/internal/domain/inventory"
	"github.com/jewelry/backend/internal/domain/partner"
	"github.com/jewelry/backend/internal/domain/sales"
	"github.com/jewelry/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// MockCustomerRepository is a mock implementation of CustomerRepository
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

// MockDocumentRepository mocks the document methods a customer cascade uses.
// Calling any other method panics on the nil embedded interface.
type MockDocumentRepository struct {
	sales.SaleDocumentRepository
	mock.Mock
}

func (m *MockDocumentRepository) FindIDsByCustomer(ctx context.Context, customerID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockDocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockLedgerRepository mocks the ledger methods a customer cascade uses
type MockLedgerRepository struct {
	inventory.StockLedgerRepository
	mock.Mock
}

func (m *MockLedgerRepository) ClearReferenceDocument(ctx context.Context, documentID uuid.UUID) (int64, error) {
	args := m.Called(ctx, documentID)
	return args.Get(0).(int64), args.Error(1)
}

type customerFixture struct {
	customerRepo *MockCustomerRepository
	documentRepo *MockDocumentRepository
	ledgerRepo   *MockLedgerRepository
	service      *CustomerService
}

func newCustomerFixture(t *testing.T) *customerFixture {
	f := &customerFixture{
		customerRepo: new(MockCustomerRepository),
		documentRepo: new(MockDocumentRepository),
		ledgerRepo:   new(MockLedgerRepository),
	}
	scope := inventoryapp.NewNoOpTransactionScope(nil, f.ledgerRepo, f.documentRepo, nil, f.customerRepo)
	f.service = NewCustomerService(f.customerRepo, scope, zaptest.NewLogger(t))
	return f
}

func TestCustomerService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates customer", func(t *testing.T) {
		f := newCustomerFixture(t)
		f.customerRepo.On("Save", ctx, mock.AnythingOfType("*partner.Customer")).Return(nil).Once()

		resp, err := f.service.Create(ctx, CreateCustomerRequest{
			Name:    " Ravi Kumar ",
			Phone:   "+91 98765 43210",
			Email:   "ravi@example.com",
			Address: "4 Temple Street",
		})
		require.NoError(t, err)
		assert.Equal(t, "Ravi Kumar", resp.Name)
		assert.Equal(t, "ravi@example.com", resp.Email)
		assert.Equal(t, 1, resp.Version)
		f.customerRepo.AssertExpectations(t)
	})

	t.Run("invalid phone", func(t *testing.T) {
		f := newCustomerFixture(t)
		_, err := f.service.Create(ctx, CreateCustomerRequest{Name: "Ravi", Phone: "call me"})
		assert.True(t, errors.Is(err, shared.ErrValidation))
		f.customerRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestCustomerService_Update(t *testing.T) {
	ctx := context.Background()
	f := newCustomerFixture(t)
	customer, err := partner.NewCustomer("Ravi", "9876543210")
	require.NoError(t, err)
	require.NoError(t, customer.SetContact("ravi@example.com", "Old address"))

	f.customerRepo.On("FindByID", ctx, customer.ID).Return(customer, nil).Once()
	f.customerRepo.On("Save", ctx, customer).Return(nil).Once()

	address := "New address"
	resp, err := f.service.Update(ctx, customer.ID, UpdateCustomerRequest{Address: &address})
	require.NoError(t, err)
	assert.Equal(t, "New address", resp.Address)
	assert.Equal(t, "ravi@example.com", resp.Email)
	assert.Equal(t, 2, resp.Version)
}

func TestCustomerService_Delete(t *testing.T) {
	ctx := context.Background()

	newCustomer := func(t *testing.T) *partner.Customer {
		c, err := partner.NewCustomer("Ravi", "")
		require.NoError(t, err)
		return c
	}

	t.Run("unreferenced customer", func(t *testing.T) {
		f := newCustomerFixture(t)
		c := newCustomer(t)
		f.customerRepo.On("FindByID", ctx, c.ID).Return(c, nil).Once()
		f.documentRepo.On("FindIDsByCustomer", ctx, c.ID).Return([]uuid.UUID{}, nil).Once()
		f.customerRepo.On("Delete", ctx, c.ID).Return(nil).Once()

		require.NoError(t, f.service.Delete(ctx, c.ID, false))
		f.customerRepo.AssertExpectations(t)
	})

	t.Run("referenced customer without cascade", func(t *testing.T) {
		f := newCustomerFixture(t)
		c := newCustomer(t)
		f.customerRepo.On("FindByID", ctx, c.ID).Return(c, nil).Once()
		f.documentRepo.On("FindIDsByCustomer", ctx, c.ID).Return([]uuid.UUID{uuid.New(), uuid.New()}, nil).Once()

		err := f.service.Delete(ctx, c.ID, false)
		require.True(t, errors.Is(err, shared.ErrReferentialConflict))
		var de *shared.DomainError
		require.True(t, errors.As(err, &de))
		assert.Equal(t, int64(2), de.Details["sale_documents"])
		f.customerRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("cascade removes documents first", func(t *testing.T) {
		f := newCustomerFixture(t)
		c := newCustomer(t)
		docID := uuid.New()
		var order []string

		f.customerRepo.On("FindByID", ctx, c.ID).Return(c, nil).Once()
		f.documentRepo.On("FindIDsByCustomer", ctx, c.ID).Return([]uuid.UUID{docID}, nil).Once()
		f.ledgerRepo.On("ClearReferenceDocument", ctx, docID).Run(func(mock.Arguments) { order = append(order, "ledger") }).Return(int64(1), nil).Once()
		f.documentRepo.On("Delete", ctx, docID).Run(func(mock.Arguments) { order = append(order, "document") }).Return(nil).Once()
		f.customerRepo.On("Delete", ctx, c.ID).Run(func(mock.Arguments) { order = append(order, "customer") }).Return(nil).Once()

		require.NoError(t, f.service.Delete(ctx, c.ID, true))
		assert.Equal(t, []string{"ledger", "document", "customer"}, order)
	})

	t.Run("missing customer", func(t *testing.T) {
		f := newCustomerFixture(t)
		id := uuid.New()
		f.customerRepo.On("FindByID", ctx, id).Return(nil, shared.NewNotFoundError("customer", id)).Once()
		assert.True(t, errors.Is(f.service.Delete(ctx, id, true), shared.ErrNotFound))
	})
}

func TestCustomerService_List(t *testing.T) {
	ctx := context.Background()
	f := newCustomerFixture(t)
	c, err := partner.NewCustomer("Ravi", "")
	require.NoError(t, err)

	filter := shared.Filter{Search: "rav"}.Normalize()
	f.customerRepo.On("FindAll", ctx, filter).Return([]partner.Customer{*c}, nil).Once()
	f.customerRepo.On("Count", ctx, filter).Return(int64(1), nil).Once()

	page, err := f.service.List(ctx, shared.Filter{Search: "rav"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, "Ravi", page.Items[0].Name)
}
