package models

import (
	"gorm.io/gorm"
)

type Player struct {
	gorm.Model

	Provider     string `gorm:"size:32;not null;uniqueIndex:idx_provider_play_id" json:"provider"`
	PlayID       string `gorm:"size:64;not null;uniqueIndex:idx_provider_play_id" json:"play_id"`
	Currency     string `gorm:"size:8;not null" json:"currency"`
	SessionToken string `gorm:"size:100;index" json:"-"`
	LimitFlags   string `gorm:"size:255" json:"limit_flags"`
	IsActive     bool   `gorm:"default:true" json:"is_active"`
}
