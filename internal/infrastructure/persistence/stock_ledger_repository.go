package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/jewelry/backend/internal/domain/inventory"
	"github.com/jewelry/backend/internal/domain/shared"
	"github.com/jewelry/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormStockLedgerRepository implements StockLedgerRepository using GORM
type GormStockLedgerRepository struct {
	db *gorm.DB
}

// NewGormStockLedgerRepository creates a new GormStockLedgerRepository
func NewGormStockLedgerRepository(db *gorm.DB) *GormStockLedgerRepository {
	return &GormStockLedgerRepository{db: db}
}

// Append inserts a new entry. The (product_id, sequence) unique index rejects a
// second writer that computed the same sequence.
func (r *GormStockLedgerRepository) Append(ctx context.Context, entry *inventory.StockLedgerEntry) error {
	return r.db.WithContext(ctx).Create(models.StockLedgerEntryModelFromDomain(entry)).Error
}

// NextSequence returns MAX(sequence)+1 for the product. Callers hold the product row lock.
func (r *GormStockLedgerRepository) NextSequence(ctx context.Context, productID uuid.UUID) (int64, error) {
	var result struct {
		MaxSequence int64
	}
	if err := r.db.WithContext(ctx).
		Model(&models.StockLedgerEntryModel{}).
		Select("COALESCE(MAX(sequence), 0) AS max_sequence").
		Where("product_id = ?", productID).
		Scan(&result).Error; err != nil {
		return 0, err
	}
	return result.MaxSequence + 1, nil
}

// FindByProduct returns a page of entries for a product
func (r *GormStockLedgerRepository) FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]inventory.StockLedgerEntry, error) {
	query := r.db.WithContext(ctx).
		Model(&models.StockLedgerEntryModel{}).
		Where("product_id = ?", productID)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	query = query.Order(ValidateSortField(filter.OrderBy, LedgerSortFields, "sequence") + " " + ValidateSortOrder(filter.OrderDir))

	var rows []models.StockLedgerEntryModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainEntries(rows), nil
}

// CountByProduct counts entries for a product
func (r *GormStockLedgerRepository) CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.StockLedgerEntryModel{}).
		Where("product_id = ?", productID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindAllByProductInOrder returns every entry for a product in sequence order
func (r *GormStockLedgerRepository) FindAllByProductInOrder(ctx context.Context, productID uuid.UUID) ([]inventory.StockLedgerEntry, error) {
	var rows []models.StockLedgerEntryModel
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("sequence ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainEntries(rows), nil
}

// FindByReferenceDocument returns the entries a sale document produced
func (r *GormStockLedgerRepository) FindByReferenceDocument(ctx context.Context, documentID uuid.UUID) ([]inventory.StockLedgerEntry, error) {
	var rows []models.StockLedgerEntryModel
	if err := r.db.WithContext(ctx).
		Where("reference_document_id = ?", documentID).
		Order("product_id ASC, sequence ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainEntries(rows), nil
}

// CountByReferenceDocument counts the entries a sale document produced
func (r *GormStockLedgerRepository) CountByReferenceDocument(ctx context.Context, documentID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.StockLedgerEntryModel{}).
		Where("reference_document_id = ?", documentID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ClearReferenceDocument nulls the back-reference to a document being deleted.
// Quantities are untouched, so replay still reproduces stock.
func (r *GormStockLedgerRepository) ClearReferenceDocument(ctx context.Context, documentID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.StockLedgerEntryModel{}).
		Where("reference_document_id = ?", documentID).
		Update("reference_document_id", nil)
	return result.RowsAffected, result.Error
}

// DeleteByProduct removes every entry of a product being hard-deleted
func (r *GormStockLedgerRepository) DeleteByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Delete(&models.StockLedgerEntryModel{})
	return result.RowsAffected, result.Error
}

func toDomainEntries(rows []models.StockLedgerEntryModel) []inventory.StockLedgerEntry {
	entries := make([]inventory.StockLedgerEntry, len(rows))
	for i := range rows {
		entries[i] = *rows[i].ToDomain()
	}
	return entries
}

// Ensure GormStockLedgerRepository implements StockLedgerRepository
var _ inventory.StockLedgerRepository = (*GormStockLedgerRepository)(nil)
