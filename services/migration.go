package services

import (
	"fmt"
	"log"
	"time"
	"unitBookBot/models"

	"gorm.io/gorm"
)

// RunRecordPeriodBackfill stamps the Year/Month columns on settlement
// records created before those columns existed, so the unit-record
// aggregation can group purely on them. Runs once, guarded by a
// migrations row.
func RunRecordPeriodBackfill(db *gorm.DB) error {
	var existingMigration models.Migration
	result := db.Where("name = ?", "settlement_record_periods").First(&existingMigration)
	if result.Error == nil && existingMigration.ID != 0 {
		return nil
	}

	log.Println("Starting settlement record period backfill...")

	var records []models.SettlementRecord
	if err := db.Where("year = 0").Find(&records).Error; err != nil {
		return fmt.Errorf("error fetching unstamped records: %v", err)
	}

	for _, rec := range records {
		created := rec.CreatedAt.UTC()
		err := db.Model(&models.SettlementRecord{}).
			Where("id = ?", rec.ID).
			Updates(map[string]interface{}{"year": created.Year(), "month": int(created.Month())}).Error
		if err != nil {
			log.Printf("Error stamping record %d: %v", rec.ID, err)
		}
	}

	migration := models.Migration{
		Name:       "settlement_record_periods",
		ExecutedAt: time.Now(),
	}
	if err := db.Create(&migration).Error; err != nil {
		return fmt.Errorf("error marking migration as complete: %v", err)
	}

	log.Printf("Settlement record period backfill completed. Stamped %d records.", len(records))
	return nil
}
