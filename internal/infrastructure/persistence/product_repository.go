package persistence

import (
	"bytes"
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jewelry/backend/internal/domain/catalog"
	"github.com/jewelry/backend/internal/domain/shared"
	"github.com/jewelry/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("product", id)
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForUpdate finds a product and holds its row lock until the transaction ends
func (r *GormProductRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("product", id)
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDsForUpdate locks several products. Rows are locked in ascending id
// order so two sales touching the same products cannot deadlock.
// Missing ids are simply absent from the result.
func (r *GormProductRepository) FindByIDsForUpdate(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	if len(ids) == 0 {
		return []catalog.Product{}, nil
	}

	sorted := make([]uuid.UUID, len(ids))
	copy(sorted, ids)
	sort.Slice(sorted, func(i, j int) bool {
		return bytes.Compare(sorted[i][:], sorted[j][:]) < 0
	})

	var rows []models.ProductModel
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", sorted).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainProducts(rows), nil
}

// FindByCode finds a product by its code
func (r *GormProductRepository) FindByCode(ctx context.Context, code string) (*catalog.Product, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).
		Where("code = ?", strings.ToUpper(code)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("product", code)
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all products matching the filter
func (r *GormProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	var rows []models.ProductModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ProductModel{}), filter)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainProducts(rows), nil
}

// Count counts products matching the filter
func (r *GormProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.ProductModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByCode checks if a product with the given code exists
func (r *GormProductRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Where("code = ?", strings.ToUpper(code)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts a new product
func (r *GormProductRepository) Create(ctx context.Context, product *catalog.Product) error {
	return r.db.WithContext(ctx).Create(models.ProductModelFromDomain(product)).Error
}

// Update saves descriptive fields and status, checking the version the caller read.
// The domain has already incremented Version, so the stored row must hold Version-1.
func (r *GormProductRepository) Update(ctx context.Context, product *catalog.Product) error {
	result := r.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Where("id = ? AND version = ?", product.ID, product.Version-1).
		Updates(map[string]interface{}{
			"name":          product.Name,
			"category":      product.Category,
			"material_type": product.MaterialType,
			"purity":        product.Purity,
			"unit_weight":   product.UnitWeight,
			"min_stock":     product.MinStock,
			"status":        product.Status,
			"version":       product.Version,
			"updated_at":    product.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// DeductStock subtracts quantity only while the row still holds enough stock
func (r *GormProductRepository) DeductStock(ctx context.Context, id uuid.UUID, quantity int) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Where("id = ? AND stock_quantity >= ?", id, quantity).
		Updates(map[string]interface{}{
			"stock_quantity": gorm.Expr("stock_quantity - ?", quantity),
			"updated_at":     time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// ApplyStockDelta adds a signed delta only if the result stays non-negative
func (r *GormProductRepository) ApplyStockDelta(ctx context.Context, id uuid.UUID, delta int) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Where("id = ? AND stock_quantity + ? >= 0", id, delta).
		Updates(map[string]interface{}{
			"stock_quantity": gorm.Expr("stock_quantity + ?", delta),
			"updated_at":     time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// Delete hard-deletes a product
func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ProductModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("product", id)
	}
	return nil
}

// applyFilter applies filter options to the query
func (r *GormProductRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, ProductSortFields, "code")
	return query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormProductRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(code) LIKE ?", like, like)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "material_type":
			query = query.Where("material_type = ?", value)
		case "category":
			query = query.Where("category = ?", value)
		case "low_stock":
			if value == true {
				query = query.Where("min_stock > 0 AND stock_quantity <= min_stock")
			}
		}
	}

	return query
}

func toDomainProducts(rows []models.ProductModel) []catalog.Product {
	products := make([]catalog.Product, len(rows))
	for i := range rows {
		products[i] = *rows[i].ToDomain()
	}
	return products
}

// Ensure GormProductRepository implements ProductRepository
var _ catalog.ProductRepository = (*GormProductRepository)(nil)
