package models

import "gorm.io/gorm"

type Leg struct {
	gorm.Model
	ID           uint `gorm:"primaryKey"`
	WagerID      uint `gorm:"index"`
	EventID      *string `gorm:"size:64"` // nil for manually described events
	Participant  string  `gorm:"size:100"`
	Opponent     string  `gorm:"size:100"`
	Market       string  `gorm:"size:100"` // e.g. "Moneyline", "Spread -7.5", a player prop
	League       string  `gorm:"size:32"`
	AmericanOdds int     // |odds| >= 100, validated before the leg is accepted
}
