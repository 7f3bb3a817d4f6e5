package database

import (
	"fmt"
	"whatsapp-campaign/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const copyBatchSize = 500

// CopyMessages copies the send log from src to dst in batches, keeping ids.
// Rows whose id already exists in dst are skipped, so the copy can be
// rerun.
func CopyMessages(src, dst *gorm.DB) (int64, error) {
	var copied int64
	var batch []models.Message

	result := src.FindInBatches(&batch, copyBatchSize, func(tx *gorm.DB, n int) error {
		res := dst.Clauses(clause.OnConflict{DoNothing: true}).Create(&batch)
		if res.Error != nil {
			return res.Error
		}
		copied += res.RowsAffected
		return nil
	})
	if result.Error != nil {
		return copied, fmt.Errorf("copy messages: %w", result.Error)
	}
	return copied, nil
}

// SyncSequence moves a postgres id sequence past the highest id in table.
// Rows inserted with explicit ids leave the sequence behind otherwise.
// It is a no-op on other dialects.
func SyncSequence(db *gorm.DB, table string) error {
	if db.Dialector.Name() != "postgres" {
		return nil
	}
	query := "SELECT setval(pg_get_serial_sequence(?, 'id'), coalesce(max(id), 0) + 1, false) FROM " + table
	return db.Exec(query, table).Error
}
