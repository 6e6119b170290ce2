package catalog

import (
	"strings"
	"time"

	"github.com/jewelry/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ProductStatus represents the status of a product
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusInactive ProductStatus = "inactive"
)

// IsValid checks if the status is a known value
func (s ProductStatus) IsValid() bool {
	return s == ProductStatusActive || s == ProductStatusInactive
}

// MaterialType is the base material of a jewelry product
type MaterialType string

const (
	MaterialGold     MaterialType = "gold"
	MaterialSilver   MaterialType = "silver"
	MaterialPlatinum MaterialType = "platinum"
	MaterialDiamond  MaterialType = "diamond"
	MaterialOther    MaterialType = "other"
)

// IsValid checks if the material type is a known value
func (m MaterialType) IsValid() bool {
	switch m {
	case MaterialGold, MaterialSilver, MaterialPlatinum, MaterialDiamond, MaterialOther:
		return true
	}
	return false
}

// Product is a sellable unit of inventory.
// StockQuantity is owned by the stock ledger: nothing else writes it.
type Product struct {
	shared.BaseAggregateRoot
	Code          string
	Name          string
	Category      string
	UnitWeight    decimal.Decimal
	Purity        string
	MaterialType  MaterialType
	StockQuantity int
	MinStock      int
	Status        ProductStatus
}

// NewProduct creates a new active product with zero stock
func NewProduct(code, name string, material MaterialType) (*Product, error) {
	if err := validateProductCode(code); err != nil {
		return nil, err
	}
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if material == "" {
		material = MaterialGold
	}
	if !material.IsValid() {
		return nil, shared.NewValidationError("material_type", "Unknown material type")
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		Name:              name,
		MaterialType:      material,
		UnitWeight:        decimal.Zero,
		Status:            ProductStatusActive,
	}, nil
}

// SetDetails updates descriptive attributes
func (p *Product) SetDetails(category, purity string, unitWeight decimal.Decimal) error {
	if unitWeight.IsNegative() {
		return shared.NewValidationError("unit_weight", "Unit weight cannot be negative")
	}
	if len(category) > 100 {
		return shared.NewValidationError("category", "Category cannot exceed 100 characters")
	}
	if len(purity) > 20 {
		return shared.NewValidationError("purity", "Purity cannot exceed 20 characters")
	}

	p.Category = category
	p.Purity = purity
	p.UnitWeight = unitWeight
	p.UpdatedAt = time.Now()
	return nil
}

// Rename changes the display name. Sale lines keep the name they were sold under.
func (p *Product) Rename(name string) error {
	if err := validateProductName(name); err != nil {
		return err
	}
	p.Name = name
	p.UpdatedAt = time.Now()
	return nil
}

// SetMinStock sets the low-stock threshold
func (p *Product) SetMinStock(minStock int) error {
	if minStock < 0 {
		return shared.NewValidationError("min_stock", "Minimum stock cannot be negative")
	}
	p.MinStock = minStock
	p.UpdatedAt = time.Now()
	return nil
}

// Activate activates the product
func (p *Product) Activate() error {
	if p.Status == ProductStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Product is already active")
	}
	p.Status = ProductStatusActive
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// Deactivate soft-deletes the product. Historical documents keep referencing it.
func (p *Product) Deactivate() error {
	if p.Status == ProductStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Product is already inactive")
	}
	p.Status = ProductStatusInactive
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// IsActive returns true if the product is active
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}

// CanFulfil reports whether current stock covers quantity
func (p *Product) CanFulfil(quantity int) bool {
	return p.StockQuantity >= quantity
}

// IsLowStock reports whether stock is at or below the minimum threshold
func (p *Product) IsLowStock() bool {
	return p.MinStock > 0 && p.StockQuantity <= p.MinStock
}

func validateProductCode(code string) error {
	if code == "" {
		return shared.NewValidationError("code", "Product code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewValidationError("code", "Product code cannot exceed 50 characters")
	}
	for _, r := range code {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewValidationError("code", "Product code can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}

func validateProductName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewValidationError("name", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewValidationError("name", "Product name cannot exceed 200 characters")
	}
	return nil
}
