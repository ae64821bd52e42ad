package models

import "gorm.io/gorm"

type Guild struct {
	gorm.Model
	ID            uint `gorm:"primaryKey"`
	GuildID       string
	GuildName     string
	WagerChannel1 string // configured destinations offered in the wizard
	WagerChannel2 string
	MinUnits      float64 `gorm:"default:0.5"`
	MaxUnits      float64 `gorm:"default:3"`
	MemberRole    *string `gorm:"size:64"` // mentioned when a slip is posted
}
