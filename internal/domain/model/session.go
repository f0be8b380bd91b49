package model

import "time"

// Session backs the cart of a visitor who never logged in.
type Session struct {
	Key       string    `gorm:"type:varchar(32);primaryKey" json:"-"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expires_at"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
