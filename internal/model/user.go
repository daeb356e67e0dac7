package model

import "time"

type User struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Username  string    `json:"username" gorm:"size:150;not null;uniqueIndex"`
	Email     string    `json:"email" gorm:"size:254;not null;uniqueIndex"`
	Password  string    `json:"-" gorm:"not null"` // bcrypt hash
	CreatedAt time.Time `json:"created_at"`
}
