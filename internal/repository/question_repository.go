package repository

import (
	"context"

	"github.com/lshigami/interview-coach/internal/model"
	"gorm.io/gorm"
)

type QuestionRepository interface {
	WithTx(tx *gorm.DB) QuestionRepository
	Create(ctx context.Context, question *model.Question) error
	FindByIDForUser(ctx context.Context, id, userID uint) (*model.Question, error)
	FindInSession(ctx context.Context, id, sessionID uint) (*model.Question, error)
	FindLatestInSessionByText(ctx context.Context, sessionID uint, text string) (*model.Question, error)
	ListByUser(ctx context.Context, userID uint) ([]model.Question, error)
	LatestBySessions(ctx context.Context, sessionIDs []uint) (map[uint]model.Question, error)
	Update(ctx context.Context, question *model.Question) error
	Delete(ctx context.Context, id uint) error
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) WithTx(tx *gorm.DB) QuestionRepository {
	return &questionRepository{db: tx}
}

func (r *questionRepository) Create(ctx context.Context, question *model.Question) error {
	return r.db.WithContext(ctx).Create(question).Error
}

func (r *questionRepository) FindByIDForUser(ctx context.Context, id, userID uint) (*model.Question, error) {
	var question model.Question
	if err := r.db.WithContext(ctx).
		Where("id = ? AND session_id IN (?)", id, ownedSessionIDs(r.db, userID)).
		First(&question).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) FindInSession(ctx context.Context, id, sessionID uint) (*model.Question, error) {
	var question model.Question
	if err := r.db.WithContext(ctx).Where("id = ? AND session_id = ?", id, sessionID).First(&question).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) FindLatestInSessionByText(ctx context.Context, sessionID uint, text string) (*model.Question, error) {
	var question model.Question
	if err := r.db.WithContext(ctx).
		Where("session_id = ? AND text = ?", sessionID, text).
		Order("id DESC").
		First(&question).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) ListByUser(ctx context.Context, userID uint) ([]model.Question, error) {
	var questions []model.Question
	if err := r.db.WithContext(ctx).
		Where("session_id IN (?)", ownedSessionIDs(r.db, userID)).
		Order("id DESC").
		Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

// LatestBySessions returns the highest-id question of every session that has
// one, keyed by session id.
func (r *questionRepository) LatestBySessions(ctx context.Context, sessionIDs []uint) (map[uint]model.Question, error) {
	out := make(map[uint]model.Question, len(sessionIDs))
	if len(sessionIDs) == 0 {
		return out, nil
	}
	latestIDs := r.db.Model(&model.Question{}).
		Select("MAX(id)").
		Where("session_id IN ?", sessionIDs).
		Group("session_id")

	var questions []model.Question
	if err := r.db.WithContext(ctx).Where("id IN (?)", latestIDs).Find(&questions).Error; err != nil {
		return nil, err
	}
	for _, q := range questions {
		out[*q.SessionID] = q
	}
	return out, nil
}

func (r *questionRepository) Update(ctx context.Context, question *model.Question) error {
	return r.db.WithContext(ctx).Save(question).Error
}

// Delete removes the question and the answers linked to it.
func (r *questionRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", id).Delete(&model.Answer{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Question{}, id).Error
	})
}

func ownedSessionIDs(db *gorm.DB, userID uint) *gorm.DB {
	return db.Session(&gorm.Session{NewDB: true}).Model(&model.Session{}).Select("id").Where("user_id = ?", userID)
}
