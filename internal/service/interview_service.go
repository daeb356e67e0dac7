package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lshigami/interview-coach/internal/apperror"
	"github.com/lshigami/interview-coach/internal/dto"
	"github.com/lshigami/interview-coach/internal/model"
	"github.com/lshigami/interview-coach/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const (
	DefaultRole = "Software Developer"

	msgQuestionAndAnswerRequired = "Both 'question' and 'answer' are required."
	msgSessionSaved              = "Session saved successfully!"

	historyNoRole     = "N/A"
	historyNoQuestion = "No question"
	historyNoAnswer   = "No answer"
	historyNoFeedback = "No feedback"
)

// InterviewService drives the question/answer flow: LLM calls plus the
// session bookkeeping around them.
type InterviewService interface {
	GenerateQuestion(ctx context.Context, userID uint, role string) (*dto.GenerateQuestionResponse, error)
	EvaluateAnswer(ctx context.Context, userID uint, req dto.EvaluateAnswerRequest) (*dto.EvaluateAnswerResponse, error)
	SaveSession(ctx context.Context, userID uint, req dto.SaveSessionRequest) (*dto.SaveSessionResponse, error)
	SessionHistory(ctx context.Context, userID uint) ([]dto.SessionHistoryItem, error)
}

type interviewService struct {
	sessionRepo  repository.SessionRepository
	questionRepo repository.QuestionRepository
	answerRepo   repository.AnswerRepository
	llm          LLMGateway
	db           *gorm.DB // For transactions
}

func NewInterviewService(
	sessionRepo repository.SessionRepository,
	questionRepo repository.QuestionRepository,
	answerRepo repository.AnswerRepository,
	llm LLMGateway,
	db *gorm.DB,
) InterviewService {
	return &interviewService{
		sessionRepo:  sessionRepo,
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
		llm:          llm,
		db:           db,
	}
}

func (s *interviewService) GenerateQuestion(ctx context.Context, userID uint, role string) (*dto.GenerateQuestionResponse, error) {
	if strings.TrimSpace(role) == "" {
		role = DefaultRole
	}

	text, err := s.llm.GenerateQuestion(ctx, role)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Str("role", role).Msg("GenerateQuestion: LLM call failed")
		return nil, apperror.Upstream("failed to generate question", err)
	}

	var session *model.Session
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sessions := s.sessionRepo.WithTx(tx)
		found, err := sessions.FindLatestByUserAndRole(ctx, userID, role)
		switch {
		case err == nil:
			session = found
		case errors.Is(err, gorm.ErrRecordNotFound):
			zero := 0
			session = &model.Session{UserID: userID, Role: role, Score: &zero}
			if err := sessions.Create(ctx, session); err != nil {
				return fmt.Errorf("failed to create session: %w", err)
			}
		default:
			return fmt.Errorf("failed to look up session: %w", err)
		}

		question := &model.Question{Text: text, SessionID: &session.ID}
		if err := s.questionRepo.WithTx(tx).Create(ctx, question); err != nil {
			return fmt.Errorf("failed to create question: %w", err)
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("GenerateQuestion: transaction failed")
		return nil, apperror.Internal("failed to generate question", err)
	}

	return &dto.GenerateQuestionResponse{Question: text, SessionID: session.ID}, nil
}

func (s *interviewService) EvaluateAnswer(ctx context.Context, userID uint, req dto.EvaluateAnswerRequest) (*dto.EvaluateAnswerResponse, error) {
	if strings.TrimSpace(req.Question) == "" || strings.TrimSpace(req.Answer) == "" {
		return nil, apperror.Validation(msgQuestionAndAnswerRequired)
	}

	feedback, err := s.llm.EvaluateAnswer(ctx, req.Question, req.Answer)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("EvaluateAnswer: LLM call failed")
		return nil, apperror.Upstream("failed to evaluate answer", err)
	}
	score := ExtractScore(feedback)

	var answer *model.Answer
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sessions := s.sessionRepo.WithTx(tx)
		session, err := s.resolveSession(ctx, sessions, userID, req.SessionID)
		if err != nil {
			return err
		}

		questionID, err := s.resolveQuestion(ctx, s.questionRepo.WithTx(tx), session.ID, req)
		if err != nil {
			return err
		}

		answer = &model.Answer{
			SessionID:  &session.ID,
			QuestionID: questionID,
			Text:       req.Answer,
			Feedback:   &feedback,
		}
		if score != nil {
			f := float64(*score)
			answer.Score = &f
		}
		if err := s.answerRepo.WithTx(tx).Create(ctx, answer); err != nil {
			return fmt.Errorf("failed to create answer: %w", err)
		}
		if err := sessions.UpdateScore(ctx, session.ID, score); err != nil {
			return fmt.Errorf("failed to update session score: %w", err)
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("EvaluateAnswer: transaction failed")
		return nil, apperror.Internal("failed to evaluate answer", err)
	}

	return &dto.EvaluateAnswerResponse{
		Feedback:  feedback,
		Score:     score,
		SessionID: *answer.SessionID,
		AnswerID:  answer.ID,
	}, nil
}

// resolveSession returns the caller's session with the given id, or a fresh
// session with an empty role when it is absent or belongs to someone else.
func (s *interviewService) resolveSession(ctx context.Context, sessions repository.SessionRepository, userID uint, sessionID *uint) (*model.Session, error) {
	if sessionID != nil {
		found, err := sessions.FindByIDForUser(ctx, *sessionID, userID)
		if err == nil {
			return found, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to look up session: %w", err)
		}
		log.Warn().Uint("userID", userID).Uint("sessionID", *sessionID).Msg("EvaluateAnswer: session not found for user, starting a new one")
	}
	zero := 0
	session := &model.Session{UserID: userID, Score: &zero}
	if err := sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return session, nil
}

// resolveQuestion links the answer to question_id when it belongs to the
// session, else to the newest question in the session with the same text.
func (s *interviewService) resolveQuestion(ctx context.Context, questions repository.QuestionRepository, sessionID uint, req dto.EvaluateAnswerRequest) (*uint, error) {
	if req.QuestionID != nil {
		q, err := questions.FindInSession(ctx, *req.QuestionID, sessionID)
		if err == nil {
			return &q.ID, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to look up question: %w", err)
		}
	}
	q, err := questions.FindLatestInSessionByText(ctx, sessionID, req.Question)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up question: %w", err)
	}
	return &q.ID, nil
}

func (s *interviewService) SaveSession(ctx context.Context, userID uint, req dto.SaveSessionRequest) (*dto.SaveSessionResponse, error) {
	session := &model.Session{UserID: userID, Role: req.Role, Score: req.Score}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("SaveSession: failed to create session")
		return nil, apperror.Internal("failed to save session", err)
	}
	return &dto.SaveSessionResponse{Message: msgSessionSaved, SessionID: session.ID}, nil
}

func (s *interviewService) SessionHistory(ctx context.Context, userID uint) ([]dto.SessionHistoryItem, error) {
	sessions, err := s.sessionRepo.ListByUser(ctx, userID)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("SessionHistory: failed to list sessions")
		return nil, apperror.Internal("failed to load session history", err)
	}
	items := make([]dto.SessionHistoryItem, 0, len(sessions))
	if len(sessions) == 0 {
		return items, nil
	}

	sessionIDs := make([]uint, 0, len(sessions))
	for _, sess := range sessions {
		sessionIDs = append(sessionIDs, sess.ID)
	}
	lastQuestions, err := s.questionRepo.LatestBySessions(ctx, sessionIDs)
	if err != nil {
		return nil, apperror.Internal("failed to load session history", err)
	}
	questionIDs := make([]uint, 0, len(lastQuestions))
	for _, q := range lastQuestions {
		questionIDs = append(questionIDs, q.ID)
	}
	answersByQuestion, err := s.answerRepo.LatestByQuestions(ctx, questionIDs)
	if err != nil {
		return nil, apperror.Internal("failed to load session history", err)
	}
	answersBySession, err := s.answerRepo.LatestBySessions(ctx, sessionIDs)
	if err != nil {
		return nil, apperror.Internal("failed to load session history", err)
	}

	for _, sess := range sessions {
		item := dto.SessionHistoryItem{
			ID:        sess.ID,
			Role:      sess.Role,
			Question:  historyNoQuestion,
			Answer:    historyNoAnswer,
			Feedback:  historyNoFeedback,
			StartedAt: sess.StartedAt,
		}
		if item.Role == "" {
			item.Role = historyNoRole
		}
		if sess.Score != nil {
			item.Score = *sess.Score
		}

		var (
			answer    model.Answer
			hasAnswer bool
		)
		if q, ok := lastQuestions[sess.ID]; ok {
			item.Question = q.Text
			answer, hasAnswer = answersByQuestion[q.ID]
		}
		if !hasAnswer {
			answer, hasAnswer = answersBySession[sess.ID]
		}
		if hasAnswer {
			if answer.Text != "" {
				item.Answer = answer.Text
			}
			if answer.Feedback != nil && *answer.Feedback != "" {
				item.Feedback = *answer.Feedback
			}
		}
		items = append(items, item)
	}
	return items, nil
}
