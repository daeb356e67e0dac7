package model

import "time"

// TokenBlacklist records refresh tokens revoked by logout, keyed by jti.
type TokenBlacklist struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	JTI       string    `json:"jti" gorm:"column:jti;size:64;not null;uniqueIndex"`
	UserID    uint      `json:"user_id" gorm:"index"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}
