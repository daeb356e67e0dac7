package repository

import (
	"context"

	"github.com/lshigami/interview-coach/internal/model"
	"gorm.io/gorm"
)

type SessionRepository interface {
	WithTx(tx *gorm.DB) SessionRepository
	Create(ctx context.Context, session *model.Session) error
	FindByIDForUser(ctx context.Context, id, userID uint) (*model.Session, error)
	FindLatestByUserAndRole(ctx context.Context, userID uint, role string) (*model.Session, error)
	ListByUser(ctx context.Context, userID uint) ([]model.Session, error)
	Update(ctx context.Context, session *model.Session) error
	UpdateScore(ctx context.Context, id uint, score *int) error
	Delete(ctx context.Context, id uint) error
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) WithTx(tx *gorm.DB) SessionRepository {
	return &sessionRepository{db: tx}
}

func (r *sessionRepository) Create(ctx context.Context, session *model.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *sessionRepository) FindByIDForUser(ctx context.Context, id, userID uint) (*model.Session, error) {
	var session model.Session
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// FindLatestByUserAndRole returns the most recently started session of the
// user for the role, or gorm.ErrRecordNotFound.
func (r *sessionRepository) FindLatestByUserAndRole(ctx context.Context, userID uint, role string) (*model.Session, error) {
	var session model.Session
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND role = ?", userID, role).
		Order("started_at DESC").Order("id DESC").
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) ListByUser(ctx context.Context, userID uint) ([]model.Session, error) {
	var sessions []model.Session
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("started_at DESC").Order("id DESC").
		Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *sessionRepository) Update(ctx context.Context, session *model.Session) error {
	return r.db.WithContext(ctx).Save(session).Error
}

func (r *sessionRepository) UpdateScore(ctx context.Context, id uint, score *int) error {
	return r.db.WithContext(ctx).Model(&model.Session{}).Where("id = ?", id).Update("score", score).Error
}

// Delete removes the session together with its questions and answers.
func (r *sessionRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		questionIDs := tx.Model(&model.Question{}).Select("id").Where("session_id = ?", id)
		if err := tx.Where("session_id = ? OR question_id IN (?)", id, questionIDs).Delete(&model.Answer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("session_id = ?", id).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Session{}, id).Error
	})
}
