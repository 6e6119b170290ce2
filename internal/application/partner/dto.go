package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/jewelry/backend/internal/domain/partner"
)

// CreateCustomerRequest represents a request to create a customer
type CreateCustomerRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=200"`
	Phone   string `json:"phone" binding:"max=50"`
	Email   string `json:"email" binding:"omitempty,email,max=200"`
	Address string `json:"address" binding:"max=500"`
	Notes   string `json:"notes" binding:"max=1000"`
}

// UpdateCustomerRequest represents a partial customer update
type UpdateCustomerRequest struct {
	Phone   *string `json:"phone" binding:"omitempty,max=50"`
	Email   *string `json:"email" binding:"omitempty,email,max=200"`
	Address *string `json:"address" binding:"omitempty,max=500"`
	Notes   *string `json:"notes" binding:"omitempty,max=1000"`
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int       `json:"version"`
}

// ToCustomerResponse converts a domain customer to a response DTO
func ToCustomerResponse(c *partner.Customer) CustomerResponse {
	return CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Email:     c.Email,
		Address:   c.Address,
		Notes:     c.Notes,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		Version:   c.Version,
	}
}

// ToCustomerResponses converts a slice of domain customers
func ToCustomerResponses(customers []partner.Customer) []CustomerResponse {
	out := make([]CustomerResponse, len(customers))
	for i := range customers {
		out[i] = ToCustomerResponse(&customers[i])
	}
	return out
}
