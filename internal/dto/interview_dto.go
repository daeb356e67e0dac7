package dto

import "time"

type GenerateQuestionRequest struct {
	Role string `json:"role"`
}

type GenerateQuestionResponse struct {
	Question  string `json:"question"`
	SessionID uint   `json:"session_id"`
}

type EvaluateAnswerRequest struct {
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	SessionID  *uint  `json:"session_id"`
	QuestionID *uint  `json:"question_id"` // links the answer to a generated question
}

type EvaluateAnswerResponse struct {
	Feedback  string `json:"feedback"`
	Score     *int   `json:"score"`
	SessionID uint   `json:"session_id"`
	AnswerID  uint   `json:"answer_id"`
}

type SaveSessionRequest struct {
	Role  string `json:"role"`
	Score *int   `json:"score"`
}

type SaveSessionResponse struct {
	Message   string `json:"message"`
	SessionID uint   `json:"session_id"`
}

type SessionHistoryItem struct {
	ID        uint      `json:"id"`
	Role      string    `json:"role"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Feedback  string    `json:"feedback"`
	Score     int       `json:"score"`
	StartedAt time.Time `json:"started_at"`
}
