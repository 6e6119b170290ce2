package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/jewelry/backend/internal/domain/sales"
	"github.com/jewelry/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// maxSequenceAttempts bounds the update/insert race on a brand-new counter row
const maxSequenceAttempts = 3

// GormDocumentSequenceRepository issues document counters from the document_sequences table
type GormDocumentSequenceRepository struct {
	db *gorm.DB
}

// NewGormDocumentSequenceRepository creates a new GormDocumentSequenceRepository
func NewGormDocumentSequenceRepository(db *gorm.DB) *GormDocumentSequenceRepository {
	return &GormDocumentSequenceRepository{db: db}
}

// Next increments and returns the counter for (variant, year).
// The increment locks the counter row until the surrounding transaction ends, so
// concurrent sales serialise on it and a rolled-back sale releases its value.
// The first document of a year inserts the row; losing that insert race falls
// back to the increment.
func (r *GormDocumentSequenceRepository) Next(ctx context.Context, variant sales.Variant, year int) (int64, error) {
	db := r.db.WithContext(ctx)

	for attempt := 0; attempt < maxSequenceAttempts; attempt++ {
		result := db.Model(&models.DocumentSequenceModel{}).
			Where("variant = ? AND year = ?", variant, year).
			Updates(map[string]interface{}{
				"last_value": gorm.Expr("last_value + 1"),
				"updated_at": time.Now(),
			})
		if result.Error != nil {
			return 0, result.Error
		}

		if result.RowsAffected == 1 {
			var row models.DocumentSequenceModel
			if err := db.Where("variant = ? AND year = ?", variant, year).First(&row).Error; err != nil {
				return 0, err
			}
			return row.LastValue, nil
		}

		inserted := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&models.DocumentSequenceModel{
			Variant:   variant,
			Year:      year,
			LastValue: 1,
			UpdatedAt: time.Now(),
		})
		if inserted.Error != nil {
			return 0, inserted.Error
		}
		if inserted.RowsAffected == 1 {
			return 1, nil
		}
	}

	return 0, fmt.Errorf("document sequence %s/%d: counter row unavailable after %d attempts", variant, year, maxSequenceAttempts)
}

// Ensure GormDocumentSequenceRepository implements DocumentSequenceRepository
var _ sales.DocumentSequenceRepository = (*GormDocumentSequenceRepository)(nil)
