package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/jewelry/backend/internal/domain/shared"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByIDForUpdate finds a product and locks its row until the transaction ends
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByIDsForUpdate locks several products in ascending id order
	FindByIDsForUpdate(ctx context.Context, ids []uuid.UUID) ([]Product, error)

	// FindByCode finds a product by its code
	FindByCode(ctx context.Context, code string) (*Product, error)

	// FindAll finds all products matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)

	// Count counts products matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsByCode checks if a product with the given code exists
	ExistsByCode(ctx context.Context, code string) (bool, error)

	// Create inserts a new product
	Create(ctx context.Context, product *Product) error

	// Update saves descriptive fields and status with optimistic locking.
	// Stock quantity is never written by Update.
	Update(ctx context.Context, product *Product) error

	// DeductStock subtracts quantity only if the current stock covers it.
	// Returns false when the guarded update matched no row.
	DeductStock(ctx context.Context, id uuid.UUID, quantity int) (bool, error)

	// ApplyStockDelta adds a signed delta only if the result stays non-negative.
	// Returns false when the guarded update matched no row.
	ApplyStockDelta(ctx context.Context, id uuid.UUID, delta int) (bool, error)

	// Delete hard-deletes a product
	Delete(ctx context.Context, id uuid.UUID) error
}
