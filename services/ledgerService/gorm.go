package ledgerService

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"unitBookBot/models"
)

type GormLedger struct {
	db *gorm.DB
}

func NewGormLedger(db *gorm.DB) *GormLedger {
	return &GormLedger{db: db}
}

func (l *GormLedger) Create(w *models.Wager) (uint, error) {
	if err := l.db.Create(w).Error; err != nil {
		return 0, err
	}
	return w.ID, nil
}

func (l *GormLedger) Confirm(id uint) error {
	now := time.Now().UTC()
	result := l.db.Model(&models.Wager{}).
		Where("id = ? AND status = ?", id, models.StatusConfirmed).
		Update("confirmed_at", now)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStaleState
	}
	return nil
}

func (l *GormLedger) UpdateStakeAndDestination(id uint, stake float64, channelID string) error {
	var wager models.Wager
	if err := l.db.First(&wager, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if wager.Status != models.StatusConfirmed {
		return ErrStaleState
	}

	return l.db.Model(&wager).
		Updates(map[string]interface{}{"stake": stake, "channel_id": channelID}).Error
}

func (l *GormLedger) MarkPosted(id uint, messageRef string) error {
	result := l.db.Model(&models.Wager{}).
		Where("id = ? AND status = ?", id, models.StatusConfirmed).
		Updates(map[string]interface{}{"status": models.StatusPosted, "message_id": messageRef})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStaleState
	}
	return nil
}

func (l *GormLedger) FindByMessageRef(messageRef string) (*models.Wager, error) {
	var wager models.Wager
	err := l.db.Preload("Legs").Where("message_id = ?", messageRef).First(&wager).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &wager, nil
}

func (l *GormLedger) RecordSettlement(id uint, fromStatus, toStatus string, rec *models.SettlementRecord) error {
	return l.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Wager{}).
			Where("id = ? AND status = ?", id, fromStatus).
			Update("status", toStatus)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrStaleState
		}
		if rec != nil {
			if err := tx.Create(rec).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (l *GormLedger) ReverseSettlement(id uint, fromStatus string) error {
	return l.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Wager{}).
			Where("id = ? AND status = ?", id, fromStatus).
			Update("status", models.StatusPosted)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrStaleState
		}
		return tx.Where("wager_id = ?", id).Delete(&models.SettlementRecord{}).Error
	})
}

func (l *GormLedger) Delete(id uint) error {
	return l.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("wager_id = ?", id).Delete(&models.Leg{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Wager{}, id).Error
	})
}
