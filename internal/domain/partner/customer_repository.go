package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/jewelry/backend/internal/domain/shared"
)

// CustomerRepository defines the interface for customer persistence
type CustomerRepository interface {
	// FindByID finds a customer by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)

	// FindAll finds customers matching the filter (Search matches name or phone)
	FindAll(ctx context.Context, filter shared.Filter) ([]Customer, error)

	// Count counts customers matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Save creates or updates a customer
	Save(ctx context.Context, customer *Customer) error

	// Delete hard-deletes a customer
	Delete(ctx context.Context, id uuid.UUID) error
}
