package dto

import "time"

type SessionRequest struct {
	Role  string `json:"role" binding:"required"`
	Score *int   `json:"score"`
}

type SessionPatchRequest struct {
	Role  *string `json:"role"`
	Score *int    `json:"score"`
}

type SessionResponse struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user"`
	Role      string    `json:"role"`
	Score     *int      `json:"score"`
	StartedAt time.Time `json:"started_at"`
}

type QuestionRequest struct {
	Text      string `json:"text" binding:"required"`
	SessionID *uint  `json:"session_id" binding:"required"`
	Score     *int   `json:"score"`
}

type QuestionPatchRequest struct {
	Text      *string `json:"text"`
	SessionID *uint   `json:"session_id"`
	Score     *int    `json:"score"`
}

type QuestionResponse struct {
	ID        uint      `json:"id"`
	Text      string    `json:"text"`
	SessionID *uint     `json:"session_id"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"created_at"`
}

type AnswerRequest struct {
	Text       string   `json:"text" binding:"required"`
	SessionID  *uint    `json:"session_id" binding:"required"`
	QuestionID *uint    `json:"question_id"`
	Feedback   *string  `json:"feedback"`
	Score      *float64 `json:"score"`
}

type AnswerPatchRequest struct {
	Text       *string  `json:"text"`
	SessionID  *uint    `json:"session_id"`
	QuestionID *uint    `json:"question_id"`
	Feedback   *string  `json:"feedback"`
	Score      *float64 `json:"score"`
}

type AnswerResponse struct {
	ID         uint      `json:"id"`
	SessionID  *uint     `json:"session_id"`
	QuestionID *uint     `json:"question_id"`
	Text       string    `json:"text"`
	Feedback   *string   `json:"feedback"`
	Score      *float64  `json:"score"`
	CreatedAt  time.Time `json:"created_at"`
}
