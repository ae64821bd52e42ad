package scheduler_jobs

import (
	"log"
	"time"
	"unitBookBot/models"

	"gorm.io/gorm"
)

// abandonedRetention is how long a confirmed-but-never-posted wager may
// sit before the reaper removes it. Rows like this appear when a user
// reaches the review screen and walks away after their wizard expires,
// or when posting failed and was never retried.
const abandonedRetention = 48 * time.Hour

func ReapAbandonedWagers(db *gorm.DB) error {
	cutoff := time.Now().Add(-abandonedRetention)

	var stale []models.Wager
	err := db.Where("status = ? AND message_id IS NULL AND updated_at < ?", models.StatusConfirmed, cutoff).
		Find(&stale).Error
	if err != nil {
		return err
	}
	if len(stale) == 0 {
		return nil
	}

	for _, w := range stale {
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("wager_id = ?", w.ID).Delete(&models.Leg{}).Error; err != nil {
				return err
			}
			return tx.Delete(&models.Wager{}, w.ID).Error
		})
		if err != nil {
			log.Printf("Error reaping wager %d: %v", w.ID, err)
		}
	}

	log.Printf("Reaped %d abandoned wagers", len(stale))
	return nil
}
