package repository

import (
	"context"

	"github.com/lshigami/interview-coach/internal/model"
	"gorm.io/gorm"
)

type AnswerRepository interface {
	WithTx(tx *gorm.DB) AnswerRepository
	Create(ctx context.Context, answer *model.Answer) error
	FindByIDForUser(ctx context.Context, id, userID uint) (*model.Answer, error)
	ListByUser(ctx context.Context, userID uint) ([]model.Answer, error)
	LatestBySessions(ctx context.Context, sessionIDs []uint) (map[uint]model.Answer, error)
	LatestByQuestions(ctx context.Context, questionIDs []uint) (map[uint]model.Answer, error)
	Update(ctx context.Context, answer *model.Answer) error
	Delete(ctx context.Context, id uint) error
}

type answerRepository struct {
	db *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) AnswerRepository {
	return &answerRepository{db: db}
}

func (r *answerRepository) WithTx(tx *gorm.DB) AnswerRepository {
	return &answerRepository{db: tx}
}

func (r *answerRepository) Create(ctx context.Context, answer *model.Answer) error {
	return r.db.WithContext(ctx).Create(answer).Error
}

func (r *answerRepository) FindByIDForUser(ctx context.Context, id, userID uint) (*model.Answer, error) {
	var answer model.Answer
	if err := r.db.WithContext(ctx).
		Where("id = ? AND session_id IN (?)", id, ownedSessionIDs(r.db, userID)).
		First(&answer).Error; err != nil {
		return nil, err
	}
	return &answer, nil
}

func (r *answerRepository) ListByUser(ctx context.Context, userID uint) ([]model.Answer, error) {
	var answers []model.Answer
	if err := r.db.WithContext(ctx).
		Where("session_id IN (?)", ownedSessionIDs(r.db, userID)).
		Order("id DESC").
		Find(&answers).Error; err != nil {
		return nil, err
	}
	return answers, nil
}

// LatestBySessions returns the highest-id answer of every session that has
// one, keyed by session id.
func (r *answerRepository) LatestBySessions(ctx context.Context, sessionIDs []uint) (map[uint]model.Answer, error) {
	out := make(map[uint]model.Answer, len(sessionIDs))
	if len(sessionIDs) == 0 {
		return out, nil
	}
	latestIDs := r.db.Model(&model.Answer{}).
		Select("MAX(id)").
		Where("session_id IN ?", sessionIDs).
		Group("session_id")

	var answers []model.Answer
	if err := r.db.WithContext(ctx).Where("id IN (?)", latestIDs).Find(&answers).Error; err != nil {
		return nil, err
	}
	for _, a := range answers {
		out[*a.SessionID] = a
	}
	return out, nil
}

// LatestByQuestions returns the highest-id answer linked to each question,
// keyed by question id.
func (r *answerRepository) LatestByQuestions(ctx context.Context, questionIDs []uint) (map[uint]model.Answer, error) {
	out := make(map[uint]model.Answer, len(questionIDs))
	if len(questionIDs) == 0 {
		return out, nil
	}
	latestIDs := r.db.Model(&model.Answer{}).
		Select("MAX(id)").
		Where("question_id IN ?", questionIDs).
		Group("question_id")

	var answers []model.Answer
	if err := r.db.WithContext(ctx).Where("id IN (?)", latestIDs).Find(&answers).Error; err != nil {
		return nil, err
	}
	for _, a := range answers {
		out[*a.QuestionID] = a
	}
	return out, nil
}

func (r *answerRepository) Update(ctx context.Context, answer *model.Answer) error {
	return r.db.WithContext(ctx).Save(answer).Error
}

func (r *answerRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Answer{}, id).Error
}
