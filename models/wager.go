package models

import (
	"time"

	"gorm.io/gorm"
)

// Wager statuses. "draft" never reaches the ledger; a wager is only
// persisted once the wizard reaches the review screen.
const (
	StatusConfirmed   = "confirmed"
	StatusPosted      = "posted"
	StatusSettledWon  = "settled-won"
	StatusSettledLost = "settled-lost"
	StatusSettledPush = "settled-push"
	StatusVoided      = "voided"
)

type Wager struct {
	gorm.Model
	ID          uint    `gorm:"primaryKey"`
	UserID      string  `gorm:"size:64;index"`
	GuildID     string  `gorm:"size:64;index"`
	Status      string  `gorm:"size:16;index"`
	Stake       float64 // units
	Price       float64 // combined decimal multiplier, always > 1.0
	ChannelID   string  `gorm:"size:64"`
	MessageID   *string `gorm:"size:64;index"` // posted artifact, nil until posted
	ConfirmedAt *time.Time
	Legs        []Leg
}

func (w *Wager) IsParlay() bool {
	return len(w.Legs) > 1
}

// Settled reports whether the wager has left the posted state for good
// or bad. Voided wagers count as settled for display purposes.
func (w *Wager) Settled() bool {
	switch w.Status {
	case StatusSettledWon, StatusSettledLost, StatusSettledPush, StatusVoided:
		return true
	}
	return false
}
