package partner

import (
	"context"

	"github.com/google/uuid"
	inventoryapp "github.com/jewelry/backend/internal/application/inventory"
	"github.com/jewelry/backend/internal/domain/partner"
	"github.com/jewelry/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CustomerService handles customer-related business operations
type CustomerService struct {
	customerRepo partner.CustomerRepository
	scope        inventoryapp.TransactionScope
	logger       *zap.Logger
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo partner.CustomerRepository, scope inventoryapp.TransactionScope, logger *zap.Logger) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		scope:        scope,
		logger:       logger,
	}
}

// Create creates a new customer
func (s *CustomerService) Create(ctx context.Context, req CreateCustomerRequest) (*CustomerResponse, error) {
	customer, err := partner.NewCustomer(req.Name, req.Phone)
	if err != nil {
		return nil, err
	}
	if err := customer.SetContact(req.Email, req.Address); err != nil {
		return nil, err
	}
	if err := customer.SetNotes(req.Notes); err != nil {
		return nil, err
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	resp := ToCustomerResponse(customer)
	return &resp, nil
}

// GetByID retrieves a customer by ID
func (s *CustomerService) GetByID(ctx context.Context, customerID uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	resp := ToCustomerResponse(customer)
	return &resp, nil
}

// List returns a page of customers, optionally searching name and phone
func (s *CustomerService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[CustomerResponse], error) {
	filter = filter.Normalize()
	customers, err := s.customerRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.customerRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(ToCustomerResponses(customers), total, filter.Page, filter.PageSize)
	return &page, nil
}

// Update applies a partial update. Existing sale documents keep their snapshot.
func (s *CustomerService) Update(ctx context.Context, customerID uuid.UUID, req UpdateCustomerRequest) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if req.Phone != nil {
		if err := customer.SetPhone(*req.Phone); err != nil {
			return nil, err
		}
	}
	if req.Email != nil || req.Address != nil {
		email, address := customer.Email, customer.Address
		if req.Email != nil {
			email = *req.Email
		}
		if req.Address != nil {
			address = *req.Address
		}
		if err := customer.SetContact(email, address); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		if err := customer.SetNotes(*req.Notes); err != nil {
			return nil, err
		}
	}
	customer.IncrementVersion()

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}
	resp := ToCustomerResponse(customer)
	return &resp, nil
}

// Delete hard-deletes a customer. A customer referenced by sale documents needs
// cascade, which deletes those documents and detaches their ledger entries.
func (s *CustomerService) Delete(ctx context.Context, customerID uuid.UUID, cascade bool) error {
	var removed int
	err := s.scope.Execute(ctx, func(repos inventoryapp.TransactionalRepositories) error {
		if _, err := repos.CustomerRepo().FindByID(ctx, customerID); err != nil {
			return err
		}

		docIDs, err := repos.DocumentRepo().FindIDsByCustomer(ctx, customerID)
		if err != nil {
			return err
		}
		if len(docIDs) > 0 && !cascade {
			return shared.NewReferentialConflict("customer", customerID, map[string]int64{"sale_documents": int64(len(docIDs))})
		}

		for _, docID := range docIDs {
			if _, err := repos.LedgerRepo().ClearReferenceDocument(ctx, docID); err != nil {
				return err
			}
			if err := repos.DocumentRepo().Delete(ctx, docID); err != nil {
				return err
			}
		}
		removed = len(docIDs)
		return repos.CustomerRepo().Delete(ctx, customerID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("customer deleted",
		zap.String("customer_id", customerID.String()),
		zap.Bool("cascade", cascade),
		zap.Int("sale_documents_deleted", removed),
	)
	return nil
}
