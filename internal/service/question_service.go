package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jinzhu/copier"
	"github.com/lshigami/interview-coach/internal/apperror"
	"github.com/lshigami/interview-coach/internal/dto"
	"github.com/lshigami/interview-coach/internal/model"
	"github.com/lshigami/interview-coach/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type QuestionService interface {
	ListQuestions(ctx context.Context, userID uint) ([]dto.QuestionResponse, error)
	CreateQuestion(ctx context.Context, userID uint, req dto.QuestionRequest) (*dto.QuestionResponse, error)
	GetQuestion(ctx context.Context, userID, id uint) (*dto.QuestionResponse, error)
	UpdateQuestion(ctx context.Context, userID, id uint, req dto.QuestionRequest) (*dto.QuestionResponse, error)
	PatchQuestion(ctx context.Context, userID, id uint, req dto.QuestionPatchRequest) (*dto.QuestionResponse, error)
	DeleteQuestion(ctx context.Context, userID, id uint) error
}

type questionService struct {
	repo        repository.QuestionRepository
	sessionRepo repository.SessionRepository // To validate SessionID ownership
}

func NewQuestionService(repo repository.QuestionRepository, sessionRepo repository.SessionRepository) QuestionService {
	return &questionService{repo: repo, sessionRepo: sessionRepo}
}

func (s *questionService) ListQuestions(ctx context.Context, userID uint) ([]dto.QuestionResponse, error) {
	questions, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("Failed to list questions")
		return nil, apperror.Internal("failed to list questions", err)
	}
	resp := make([]dto.QuestionResponse, 0, len(questions))
	copier.Copy(&resp, &questions)
	return resp, nil
}

func (s *questionService) CreateQuestion(ctx context.Context, userID uint, req dto.QuestionRequest) (*dto.QuestionResponse, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, apperror.ValidationFields(map[string][]string{"text": {fieldBlankMessage}})
	}
	if req.SessionID == nil {
		return nil, apperror.ValidationFields(map[string][]string{"session_id": {fieldRequiredMessage}})
	}
	if err := s.checkSession(ctx, userID, *req.SessionID); err != nil {
		return nil, err
	}

	question := model.Question{Text: req.Text, SessionID: req.SessionID}
	if req.Score != nil {
		question.Score = *req.Score
	}
	if err := s.repo.Create(ctx, &question); err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("Failed to create question")
		return nil, apperror.Internal("failed to create question", err)
	}
	return toQuestionResponse(&question), nil
}

func (s *questionService) GetQuestion(ctx context.Context, userID, id uint) (*dto.QuestionResponse, error) {
	question, err := s.find(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return toQuestionResponse(question), nil
}

func (s *questionService) UpdateQuestion(ctx context.Context, userID, id uint, req dto.QuestionRequest) (*dto.QuestionResponse, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, apperror.ValidationFields(map[string][]string{"text": {fieldBlankMessage}})
	}
	if req.SessionID == nil {
		return nil, apperror.ValidationFields(map[string][]string{"session_id": {fieldRequiredMessage}})
	}
	question, err := s.find(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkSession(ctx, userID, *req.SessionID); err != nil {
		return nil, err
	}
	question.Text = req.Text
	question.SessionID = req.SessionID
	if req.Score != nil {
		question.Score = *req.Score
	}
	return s.save(ctx, question)
}

func (s *questionService) PatchQuestion(ctx context.Context, userID, id uint, req dto.QuestionPatchRequest) (*dto.QuestionResponse, error) {
	if req.Text != nil && strings.TrimSpace(*req.Text) == "" {
		return nil, apperror.ValidationFields(map[string][]string{"text": {fieldBlankMessage}})
	}
	question, err := s.find(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if req.SessionID != nil {
		if err := s.checkSession(ctx, userID, *req.SessionID); err != nil {
			return nil, err
		}
		question.SessionID = req.SessionID
	}
	if req.Text != nil {
		question.Text = *req.Text
	}
	if req.Score != nil {
		question.Score = *req.Score
	}
	return s.save(ctx, question)
}

func (s *questionService) DeleteQuestion(ctx context.Context, userID, id uint) error {
	if _, err := s.find(ctx, userID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		log.Error().Err(err).Uint("questionID", id).Msg("Failed to delete question")
		return apperror.Internal("failed to delete question", err)
	}
	return nil
}

func (s *questionService) checkSession(ctx context.Context, userID, sessionID uint) error {
	_, err := s.sessionRepo.FindByIDForUser(ctx, sessionID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.Warn().Uint("sessionID", sessionID).Uint("userID", userID).Msg("Invalid SessionID provided for question")
		return invalidReference("session_id", sessionID)
	}
	if err != nil {
		return apperror.Internal("failed to look up session", err)
	}
	return nil
}

func (s *questionService) find(ctx context.Context, userID, id uint) (*model.Question, error) {
	question, err := s.repo.FindByIDForUser(ctx, id, userID)
	if err != nil {
		return nil, lookupError(err, "question not found")
	}
	return question, nil
}

func (s *questionService) save(ctx context.Context, question *model.Question) (*dto.QuestionResponse, error) {
	if err := s.repo.Update(ctx, question); err != nil {
		log.Error().Err(err).Uint("questionID", question.ID).Msg("Failed to update question")
		return nil, apperror.Internal("failed to update question", err)
	}
	return toQuestionResponse(question), nil
}

func toQuestionResponse(question *model.Question) *dto.QuestionResponse {
	var resp dto.QuestionResponse
	copier.Copy(&resp, question)
	return &resp
}
