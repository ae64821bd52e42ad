package models

import "gorm.io/gorm"

// SettlementRecord is one unit-of-account movement for a wager. Monthly
// and yearly totals are plain sums over these rows, so a reversal must
// delete the row rather than flag it.
type SettlementRecord struct {
	gorm.Model
	ID           uint   `gorm:"primaryKey"`
	WagerID      uint   `gorm:"index"`
	GuildID      string `gorm:"size:64;index"`
	UserID       string `gorm:"size:64;index"`
	Year         int
	Month        int
	StakeApplied float64
	PriceApplied float64
	ResultValue  float64 // positive win, negative loss, zero push
}
