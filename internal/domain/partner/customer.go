package partner

import (
	"regexp"
	"strings"
	"time"

	"github.com/jewelry/backend/internal/domain/shared"
)

var (
	phonePattern = regexp.MustCompile(`^[\d\s\-\(\)\+]+$`)
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

// Customer is an entry of the customer directory.
// Sale documents snapshot its display fields, so later edits never change history.
type Customer struct {
	shared.BaseAggregateRoot
	Name    string
	Phone   string
	Email   string
	Address string
	Notes   string
}

// NewCustomer creates a new customer
func NewCustomer(name, phone string) (*Customer, error) {
	if err := validateCustomerName(name); err != nil {
		return nil, err
	}
	if phone != "" {
		if err := validatePhone(phone); err != nil {
			return nil, err
		}
	}

	return &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Phone:             phone,
	}, nil
}

// SetContact updates email and address
func (c *Customer) SetContact(email, address string) error {
	if email != "" {
		if err := validateEmail(email); err != nil {
			return err
		}
	}
	c.Email = email
	c.Address = address
	c.UpdatedAt = time.Now()
	return nil
}

// SetPhone updates the phone number
func (c *Customer) SetPhone(phone string) error {
	if phone != "" {
		if err := validatePhone(phone); err != nil {
			return err
		}
	}
	c.Phone = phone
	c.UpdatedAt = time.Now()
	return nil
}

// SetNotes updates free-form notes
func (c *Customer) SetNotes(notes string) error {
	if len(notes) > 1000 {
		return shared.NewValidationError("notes", "Notes cannot exceed 1000 characters")
	}
	c.Notes = notes
	c.UpdatedAt = time.Now()
	return nil
}

// Snapshot returns the display fields copied onto sale documents
func (c *Customer) Snapshot() (name, phone, address string) {
	return c.Name, c.Phone, c.Address
}

func validateCustomerName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewValidationError("name", "Customer name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewValidationError("name", "Customer name cannot exceed 200 characters")
	}
	return nil
}

func validatePhone(phone string) error {
	if len(phone) > 50 {
		return shared.NewValidationError("phone", "Phone number cannot exceed 50 characters")
	}
	if !phonePattern.MatchString(phone) {
		return shared.NewValidationError("phone", "Invalid phone number format")
	}
	return nil
}

func validateEmail(email string) error {
	if len(email) > 200 {
		return shared.NewValidationError("email", "Email cannot exceed 200 characters")
	}
	if !emailPattern.MatchString(email) {
		return shared.NewValidationError("email", "Invalid email format")
	}
	return nil
}
