package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jinzhu/copier"
	"github.com/lshigami/interview-coach/internal/apperror"
	"github.com/lshigami/interview-coach/internal/dto"
	"github.com/lshigami/interview-coach/internal/model"
	"github.com/lshigami/interview-coach/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const fieldBlankMessage = "This field may not be blank."

type SessionService interface {
	ListSessions(ctx context.Context, userID uint) ([]dto.SessionResponse, error)
	CreateSession(ctx context.Context, userID uint, req dto.SessionRequest) (*dto.SessionResponse, error)
	GetSession(ctx context.Context, userID, id uint) (*dto.SessionResponse, error)
	UpdateSession(ctx context.Context, userID, id uint, req dto.SessionRequest) (*dto.SessionResponse, error)
	PatchSession(ctx context.Context, userID, id uint, req dto.SessionPatchRequest) (*dto.SessionResponse, error)
	DeleteSession(ctx context.Context, userID, id uint) error
}

type sessionService struct {
	repo repository.SessionRepository
}

func NewSessionService(repo repository.SessionRepository) SessionService {
	return &sessionService{repo: repo}
}

func (s *sessionService) ListSessions(ctx context.Context, userID uint) ([]dto.SessionResponse, error) {
	sessions, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("Failed to list sessions")
		return nil, apperror.Internal("failed to list sessions", err)
	}
	resp := make([]dto.SessionResponse, 0, len(sessions))
	copier.Copy(&resp, &sessions)
	return resp, nil
}

func (s *sessionService) CreateSession(ctx context.Context, userID uint, req dto.SessionRequest) (*dto.SessionResponse, error) {
	if strings.TrimSpace(req.Role) == "" {
		return nil, apperror.ValidationFields(map[string][]string{"role": {fieldBlankMessage}})
	}
	session := model.Session{UserID: userID, Role: req.Role, Score: req.Score}
	if session.Score == nil {
		zero := 0
		session.Score = &zero
	}
	if err := s.repo.Create(ctx, &session); err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("Failed to create session")
		return nil, apperror.Internal("failed to create session", err)
	}
	return toSessionResponse(&session), nil
}

func (s *sessionService) GetSession(ctx context.Context, userID, id uint) (*dto.SessionResponse, error) {
	session, err := s.find(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return toSessionResponse(session), nil
}

func (s *sessionService) UpdateSession(ctx context.Context, userID, id uint, req dto.SessionRequest) (*dto.SessionResponse, error) {
	if strings.TrimSpace(req.Role) == "" {
		return nil, apperror.ValidationFields(map[string][]string{"role": {fieldBlankMessage}})
	}
	session, err := s.find(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	session.Role = req.Role
	if req.Score != nil {
		session.Score = req.Score
	}
	return s.save(ctx, session)
}

func (s *sessionService) PatchSession(ctx context.Context, userID, id uint, req dto.SessionPatchRequest) (*dto.SessionResponse, error) {
	if req.Role != nil && strings.TrimSpace(*req.Role) == "" {
		return nil, apperror.ValidationFields(map[string][]string{"role": {fieldBlankMessage}})
	}
	session, err := s.find(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if req.Role != nil {
		session.Role = *req.Role
	}
	if req.Score != nil {
		session.Score = req.Score
	}
	return s.save(ctx, session)
}

func (s *sessionService) DeleteSession(ctx context.Context, userID, id uint) error {
	if _, err := s.find(ctx, userID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		log.Error().Err(err).Uint("sessionID", id).Msg("Failed to delete session")
		return apperror.Internal("failed to delete session", err)
	}
	return nil
}

func (s *sessionService) find(ctx context.Context, userID, id uint) (*model.Session, error) {
	session, err := s.repo.FindByIDForUser(ctx, id, userID)
	if err != nil {
		return nil, lookupError(err, "session not found")
	}
	return session, nil
}

func (s *sessionService) save(ctx context.Context, session *model.Session) (*dto.SessionResponse, error) {
	if err := s.repo.Update(ctx, session); err != nil {
		log.Error().Err(err).Uint("sessionID", session.ID).Msg("Failed to update session")
		return nil, apperror.Internal("failed to update session", err)
	}
	return toSessionResponse(session), nil
}

func toSessionResponse(session *model.Session) *dto.SessionResponse {
	var resp dto.SessionResponse
	copier.Copy(&resp, session)
	return &resp
}

// lookupError maps a repository lookup failure to NotFound or Internal.
func lookupError(err error, notFound string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.NotFound(notFound)
	}
	return apperror.Internal(notFound, err)
}

// invalidReference is the field error for a foreign key the caller cannot use.
func invalidReference(field string, id uint) error {
	return apperror.ValidationFields(map[string][]string{
		field: {fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", id)},
	})
}
