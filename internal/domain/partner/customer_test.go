package partner

import (
	"errors"
	"testing"

	"github.com/jewelry/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomer(t *testing.T) {
	t.Run("creates customer with trimmed name", func(t *testing.T) {
		customer, err := NewCustomer("  Lakshmi Stores ", "+91 98450 12345")

		require.NoError(t, err)
		assert.Equal(t, "Lakshmi Stores", customer.Name)
		assert.Equal(t, "+91 98450 12345", customer.Phone)
		assert.NotEmpty(t, customer.ID)
		assert.Equal(t, 1, customer.GetVersion())
	})

	t.Run("allows empty phone", func(t *testing.T) {
		customer, err := NewCustomer("Walk-in", "")
		require.NoError(t, err)
		assert.Empty(t, customer.Phone)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewCustomer("   ", "")
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrValidation))
	})

	t.Run("fails with malformed phone", func(t *testing.T) {
		_, err := NewCustomer("Ravi", "call me")
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "phone", domainErr.Field)
	})
}

func TestCustomer_SetContact(t *testing.T) {
	customer, err := NewCustomer("Ravi", "")
	require.NoError(t, err)

	t.Run("sets email and address", func(t *testing.T) {
		require.NoError(t, customer.SetContact("ravi@example.com", "12 MG Road"))
		name, phone, address := customer.Snapshot()
		assert.Equal(t, "Ravi", name)
		assert.Empty(t, phone)
		assert.Equal(t, "12 MG Road", address)
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		err := customer.SetContact("not-an-email", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "email")
	})
}
