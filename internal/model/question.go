package model

import "time"

type Question struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	SessionID *uint     `json:"session_id" gorm:"index"`
	Session   *Session  `json:"-" gorm:"foreignKey:SessionID"`
	Text      string    `json:"text" gorm:"type:text;not null"`
	Score     int       `json:"score" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}
