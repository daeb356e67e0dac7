package model

import "time"

type Session struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	User      User      `json:"-" gorm:"foreignKey:UserID"`
	Role      string    `json:"role" gorm:"size:255"`
	Score     *int      `json:"score"`
	StartedAt time.Time `json:"started_at" gorm:"autoCreateTime"`
}
