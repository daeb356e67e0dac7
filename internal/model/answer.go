package model

import "time"

type Answer struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	SessionID  *uint     `json:"session_id" gorm:"index"`
	Session    *Session  `json:"-" gorm:"foreignKey:SessionID"`
	QuestionID *uint     `json:"question_id" gorm:"index"`
	Question   *Question `json:"-" gorm:"foreignKey:QuestionID"`
	Text       string    `json:"text" gorm:"type:text;not null"`
	Feedback   *string   `json:"feedback" gorm:"type:text"`
	Score      *float64  `json:"score"`
	CreatedAt  time.Time `json:"created_at"`
}
