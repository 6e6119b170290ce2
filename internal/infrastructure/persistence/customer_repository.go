package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jewelry/backend/internal/domain/partner"
	"github.com/jewelry/backend/internal/domain/shared"
	"github.com/jewelry/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCustomerRepository implements CustomerRepository using GORM
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GormCustomerRepository
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// FindByID finds a customer by ID
func (r *GormCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	var model models.CustomerModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("customer", id)
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds customers matching the filter
func (r *GormCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Customer, error) {
	var rows []models.CustomerModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.CustomerModel{}), filter)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	customers := make([]partner.Customer, len(rows))
	for i := range rows {
		customers[i] = *rows[i].ToDomain()
	}
	return customers, nil
}

// Count counts customers matching the filter
func (r *GormCustomerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.CustomerModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates a customer, or updates it when the stored version is Version-1
func (r *GormCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	model := models.CustomerModelFromDomain(customer)
	if customer.Version <= 1 {
		return r.db.WithContext(ctx).Create(model).Error
	}

	result := r.db.WithContext(ctx).
		Model(&models.CustomerModel{}).
		Where("id = ? AND version = ?", customer.ID, customer.Version-1).
		Updates(map[string]interface{}{
			"name":       model.Name,
			"phone":      model.Phone,
			"email":      model.Email,
			"address":    model.Address,
			"notes":      model.Notes,
			"version":    model.Version,
			"updated_at": model.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Delete hard-deletes a customer
func (r *GormCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.CustomerModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("customer", id)
	}
	return nil
}

// applyFilter applies filter options to the query
func (r *GormCustomerRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, CustomerSortFields, "name")
	return query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormCustomerRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR phone LIKE ?", searchPattern, searchPattern)
	}
	return query
}

// Ensure GormCustomerRepository implements CustomerRepository
var _ partner.CustomerRepository = (*GormCustomerRepository)(nil)
