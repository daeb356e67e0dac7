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

type AnswerService interface {
	ListAnswers(ctx context.Context, userID uint) ([]dto.AnswerResponse, error)
	CreateAnswer(ctx context.Context, userID uint, req dto.AnswerRequest) (*dto.AnswerResponse, error)
	GetAnswer(ctx context.Context, userID, id uint) (*dto.AnswerResponse, error)
	UpdateAnswer(ctx context.Context, userID, id uint, req dto.AnswerRequest) (*dto.AnswerResponse, error)
	PatchAnswer(ctx context.Context, userID, id uint, req dto.AnswerPatchRequest) (*dto.AnswerResponse, error)
	DeleteAnswer(ctx context.Context, userID, id uint) error
}

type answerService struct {
	repo         repository.AnswerRepository
	sessionRepo  repository.SessionRepository
	questionRepo repository.QuestionRepository
}

func NewAnswerService(
	repo repository.AnswerRepository,
	sessionRepo repository.SessionRepository,
	questionRepo repository.QuestionRepository,
) AnswerService {
	return &answerService{repo: repo, sessionRepo: sessionRepo, questionRepo: questionRepo}
}

func (s *answerService) ListAnswers(ctx context.Context, userID uint) ([]dto.AnswerResponse, error) {
	answers, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("Failed to list answers")
		return nil, apperror.Internal("failed to list answers", err)
	}
	resp := make([]dto.AnswerResponse, 0, len(answers))
	copier.Copy(&resp, &answers)
	return resp, nil
}

func (s *answerService) CreateAnswer(ctx context.Context, userID uint, req dto.AnswerRequest) (*dto.AnswerResponse, error) {
	if err := validateAnswerRequest(req); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, userID, req.SessionID, req.QuestionID); err != nil {
		return nil, err
	}

	answer := model.Answer{
		SessionID:  req.SessionID,
		QuestionID: req.QuestionID,
		Text:       req.Text,
		Feedback:   req.Feedback,
		Score:      req.Score,
	}
	if answer.Score == nil {
		zero := 0.0
		answer.Score = &zero
	}
	if err := s.repo.Create(ctx, &answer); err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("Failed to create answer")
		return nil, apperror.Internal("failed to create answer", err)
	}
	return toAnswerResponse(&answer), nil
}

func (s *answerService) GetAnswer(ctx context.Context, userID, id uint) (*dto.AnswerResponse, error) {
	answer, err := s.find(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return toAnswerResponse(answer), nil
}

func (s *answerService) UpdateAnswer(ctx context.Context, userID, id uint, req dto.AnswerRequest) (*dto.AnswerResponse, error) {
	if err := validateAnswerRequest(req); err != nil {
		return nil, err
	}
	answer, err := s.find(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, userID, req.SessionID, req.QuestionID); err != nil {
		return nil, err
	}
	answer.Text = req.Text
	answer.SessionID = req.SessionID
	if req.QuestionID != nil {
		answer.QuestionID = req.QuestionID
	}
	if req.Feedback != nil {
		answer.Feedback = req.Feedback
	}
	if req.Score != nil {
		answer.Score = req.Score
	}
	return s.save(ctx, answer)
}

func (s *answerService) PatchAnswer(ctx context.Context, userID, id uint, req dto.AnswerPatchRequest) (*dto.AnswerResponse, error) {
	if req.Text != nil && strings.TrimSpace(*req.Text) == "" {
		return nil, apperror.ValidationFields(map[string][]string{"text": {fieldBlankMessage}})
	}
	answer, err := s.find(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, userID, req.SessionID, req.QuestionID); err != nil {
		return nil, err
	}
	if req.Text != nil {
		answer.Text = *req.Text
	}
	if req.SessionID != nil {
		answer.SessionID = req.SessionID
	}
	if req.QuestionID != nil {
		answer.QuestionID = req.QuestionID
	}
	if req.Feedback != nil {
		answer.Feedback = req.Feedback
	}
	if req.Score != nil {
		answer.Score = req.Score
	}
	return s.save(ctx, answer)
}

func (s *answerService) DeleteAnswer(ctx context.Context, userID, id uint) error {
	if _, err := s.find(ctx, userID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		log.Error().Err(err).Uint("answerID", id).Msg("Failed to delete answer")
		return apperror.Internal("failed to delete answer", err)
	}
	return nil
}

func validateAnswerRequest(req dto.AnswerRequest) error {
	if strings.TrimSpace(req.Text) == "" {
		return apperror.ValidationFields(map[string][]string{"text": {fieldBlankMessage}})
	}
	if req.SessionID == nil {
		return apperror.ValidationFields(map[string][]string{"session_id": {fieldRequiredMessage}})
	}
	return nil
}

// checkReferences verifies that the referenced session and question, when
// given, are owned by the caller.
func (s *answerService) checkReferences(ctx context.Context, userID uint, sessionID, questionID *uint) error {
	if sessionID != nil {
		_, err := s.sessionRepo.FindByIDForUser(ctx, *sessionID, userID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return invalidReference("session_id", *sessionID)
		}
		if err != nil {
			return apperror.Internal("failed to look up session", err)
		}
	}
	if questionID != nil {
		_, err := s.questionRepo.FindByIDForUser(ctx, *questionID, userID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return invalidReference("question_id", *questionID)
		}
		if err != nil {
			return apperror.Internal("failed to look up question", err)
		}
	}
	return nil
}

func (s *answerService) find(ctx context.Context, userID, id uint) (*model.Answer, error) {
	answer, err := s.repo.FindByIDForUser(ctx, id, userID)
	if err != nil {
		return nil, lookupError(err, "answer not found")
	}
	return answer, nil
}

func (s *answerService) save(ctx context.Context, answer *model.Answer) (*dto.AnswerResponse, error) {
	if err := s.repo.Update(ctx, answer); err != nil {
		log.Error().Err(err).Uint("answerID", answer.ID).Msg("Failed to update answer")
		return nil, apperror.Internal("failed to update answer", err)
	}
	return toAnswerResponse(answer), nil
}

func toAnswerResponse(answer *model.Answer) *dto.AnswerResponse {
	var resp dto.AnswerResponse
	copier.Copy(&resp, answer)
	return &resp
}
