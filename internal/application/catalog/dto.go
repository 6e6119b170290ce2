package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/jewelry/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	Code         string           `json:"code" binding:"required,min=1,max=50"`
	Name         string           `json:"name" binding:"required,min=1,max=200"`
	Category     string           `json:"category" binding:"max=100"`
	MaterialType string           `json:"material_type" binding:"omitempty,oneof=gold silver platinum diamond other"`
	Purity       string           `json:"purity" binding:"max=20"`
	UnitWeight   *decimal.Decimal `json:"unit_weight"`
	MinStock     int              `json:"min_stock" binding:"min=0"`
	InitialStock int              `json:"initial_stock" binding:"min=0"`
}

// UpdateProductRequest represents a request to update a product's descriptive fields.
// Stock is changed only through ledger adjustments.
type UpdateProductRequest struct {
	Name       *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Category   *string          `json:"category" binding:"omitempty,max=100"`
	Purity     *string          `json:"purity" binding:"omitempty,max=20"`
	UnitWeight *decimal.Decimal `json:"unit_weight"`
	MinStock   *int             `json:"min_stock" binding:"omitempty,min=0"`
	Version    int              `json:"version" binding:"omitempty,min=1"`
}

// ProductListFilter filters the product listing
type ProductListFilter struct {
	Search       string `form:"search"`
	Status       string `form:"status" binding:"omitempty,oneof=active inactive"`
	MaterialType string `form:"material_type" binding:"omitempty,oneof=gold silver platinum diamond other"`
	Category     string `form:"category"`
	LowStock     bool   `form:"low_stock"`
	Page         int    `form:"page" binding:"omitempty,min=1"`
	PageSize     int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy      string `form:"order_by" binding:"omitempty,oneof=code name created_at stock_quantity"`
	OrderDir     string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID            uuid.UUID       `json:"id"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	MaterialType  string          `json:"material_type"`
	Purity        string          `json:"purity"`
	UnitWeight    decimal.Decimal `json:"unit_weight"`
	StockQuantity int             `json:"stock_quantity"`
	MinStock      int             `json:"min_stock"`
	LowStock      bool            `json:"low_stock"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	Version       int             `json:"version"`
}

// ToProductResponse converts a domain product to a response DTO
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		Code:          p.Code,
		Name:          p.Name,
		Category:      p.Category,
		MaterialType:  string(p.MaterialType),
		Purity:        p.Purity,
		UnitWeight:    p.UnitWeight,
		StockQuantity: p.StockQuantity,
		MinStock:      p.MinStock,
		LowStock:      p.IsLowStock(),
		Status:        string(p.Status),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
		Version:       p.Version,
	}
}

// ToProductResponses converts a slice of domain products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i := range products {
		out[i] = ToProductResponse(&products[i])
	}
	return out
}
