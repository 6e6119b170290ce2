package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jewelry/backend/internal/domain/sales"
	"github.com/jewelry/backend/internal/domain/shared"
	"github.com/jewelry/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormSaleDocumentRepository implements SaleDocumentRepository using GORM
type GormSaleDocumentRepository struct {
	db *gorm.DB
}

// NewGormSaleDocumentRepository creates a new GormSaleDocumentRepository
func NewGormSaleDocumentRepository(db *gorm.DB) *GormSaleDocumentRepository {
	return &GormSaleDocumentRepository{db: db}
}

// Create inserts the document header followed by its line items
func (r *GormSaleDocumentRepository) Create(ctx context.Context, doc *sales.SaleDocument) error {
	model := models.SaleDocumentModelFromDomain(doc)
	items := model.Items
	model.Items = nil

	db := r.db.WithContext(ctx)
	if err := db.Omit("Items").Create(model).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	return db.Create(&items).Error
}

// FindByID loads a document with its items
func (r *GormSaleDocumentRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.SaleDocument, error) {
	return r.findOne(ctx, "sale document", id, "id = ?", id)
}

// FindByNumber loads a document by its document number
func (r *GormSaleDocumentRepository) FindByNumber(ctx context.Context, number string) (*sales.SaleDocument, error) {
	return r.findOne(ctx, "sale document", number, "document_number = ?", number)
}

// FindByIdempotencyKey loads the document created under a client idempotency key
func (r *GormSaleDocumentRepository) FindByIdempotencyKey(ctx context.Context, key string) (*sales.SaleDocument, error) {
	return r.findOne(ctx, "sale document", key, "idempotency_key = ?", key)
}

func (r *GormSaleDocumentRepository) findOne(ctx context.Context, resource string, ref any, cond string, args ...any) (*sales.SaleDocument, error) {
	var model models.SaleDocumentModel
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("line_no ASC")
		}).
		Where(cond, args...).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(resource, ref)
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists document headers matching the filter. Items are not loaded.
func (r *GormSaleDocumentRepository) FindAll(ctx context.Context, filter sales.DocumentFilter) ([]sales.SaleDocument, error) {
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.SaleDocumentModel{}), filter)
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	orderBy := ValidateSortField(filter.OrderBy, SaleDocumentSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	var rows []models.SaleDocumentModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	docs := make([]sales.SaleDocument, len(rows))
	for i := range rows {
		docs[i] = *rows[i].ToDomain()
	}
	return docs, nil
}

// Count counts documents matching the filter
func (r *GormSaleDocumentRepository) Count(ctx context.Context, filter sales.DocumentFilter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.SaleDocumentModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindIDsByCustomer returns the ids of every document referencing a customer
func (r *GormSaleDocumentRepository) FindIDsByCustomer(ctx context.Context, customerID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&models.SaleDocumentModel{}).
		Where("customer_id = ?", customerID).
		Order("created_at ASC").
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// CountByCustomer counts documents referencing a customer
func (r *GormSaleDocumentRepository) CountByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.SaleDocumentModel{}).
		Where("customer_id = ?", customerID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountItemsByProduct counts line items referencing a product
func (r *GormSaleDocumentRepository) CountItemsByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.LineItemModel{}).
		Where("product_id = ?", productID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// UpdatePayment persists payment fields. The stored row must still hold Version-1.
func (r *GormSaleDocumentRepository) UpdatePayment(ctx context.Context, doc *sales.SaleDocument) error {
	result := r.db.WithContext(ctx).
		Model(&models.SaleDocumentModel{}).
		Where("id = ? AND version = ?", doc.ID, doc.Version-1).
		Updates(map[string]interface{}{
			"amount_paid":    doc.AmountPaid,
			"payment_method": doc.PaymentMethod,
			"payment_status": doc.PaymentStatus,
			"version":        doc.Version,
			"updated_at":     doc.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// DetachProduct clears the product reference on line items. The name snapshot stays.
func (r *GormSaleDocumentRepository) DetachProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.LineItemModel{}).
		Where("product_id = ?", productID).
		Update("product_id", nil)
	return result.RowsAffected, result.Error
}

// Delete removes the document's line items and then the document
func (r *GormSaleDocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("document_id = ?", id).Delete(&models.LineItemModel{}).Error; err != nil {
		return err
	}

	result := db.Delete(&models.SaleDocumentModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("sale document", id)
	}
	return nil
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormSaleDocumentRepository) applyFilterWithoutPagination(query *gorm.DB, filter sales.DocumentFilter) *gorm.DB {
	if filter.Variant != "" {
		query = query.Where("variant = ?", filter.Variant)
	}
	if filter.PaymentStatus != "" {
		query = query.Where("payment_status = ?", filter.PaymentStatus)
	}
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.From != nil {
		query = query.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("created_at < ?", *filter.To)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("document_number LIKE ? OR customer_name LIKE ? OR customer_phone LIKE ?", pattern, pattern, pattern)
	}
	return query
}

// Ensure GormSaleDocumentRepository implements SaleDocumentRepository
var _ sales.SaleDocumentRepository = (*GormSaleDocumentRepository)(nil)
