package models

import (
	"github.com/jewelry/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ProductModel is the persistence model for the Product domain entity.
type ProductModel struct {
	AggregateModel
	Code          string                `gorm:"type:varchar(50);not null;uniqueIndex:idx_products_code"`
	Name          string                `gorm:"type:varchar(200);not null"`
	Category      string                `gorm:"type:varchar(100)"`
	MaterialType  catalog.MaterialType  `gorm:"type:varchar(20);not null;default:'gold'"`
	Purity        string                `gorm:"type:varchar(20)"`
	UnitWeight    decimal.Decimal       `gorm:"type:decimal(12,3);not null;default:0"`
	StockQuantity int                   `gorm:"not null;default:0"`
	MinStock      int                   `gorm:"not null;default:0"`
	Status        catalog.ProductStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product entity.
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		BaseAggregateRoot: m.ToAggregateRoot(),
		Code:              m.Code,
		Name:              m.Name,
		Category:          m.Category,
		MaterialType:      m.MaterialType,
		Purity:            m.Purity,
		UnitWeight:        m.UnitWeight,
		StockQuantity:     m.StockQuantity,
		MinStock:          m.MinStock,
		Status:            m.Status,
	}
}

// FromDomain populates the persistence model from a domain Product entity.
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.Code = p.Code
	m.Name = p.Name
	m.Category = p.Category
	m.MaterialType = p.MaterialType
	m.Purity = p.Purity
	m.UnitWeight = p.UnitWeight
	m.StockQuantity = p.StockQuantity
	m.MinStock = p.MinStock
	m.Status = p.Status
}

// ProductModelFromDomain creates a new persistence model from a domain Product entity.
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}
