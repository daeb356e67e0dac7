package repository

import (
	"context"

	"github.com/lshigami/interview-coach/internal/model"
	"gorm.io/gorm"
)

type TokenBlacklistRepository interface {
	Add(ctx context.Context, entry *model.TokenBlacklist) error
	Exists(ctx context.Context, jti string) (bool, error)
}

type tokenBlacklistRepository struct {
	db *gorm.DB
}

func NewTokenBlacklistRepository(db *gorm.DB) TokenBlacklistRepository {
	return &tokenBlacklistRepository{db: db}
}

// Add returns gorm.ErrDuplicatedKey when the jti is already blacklisted.
func (r *tokenBlacklistRepository) Add(ctx context.Context, entry *model.TokenBlacklist) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *tokenBlacklistRepository) Exists(ctx context.Context, jti string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.TokenBlacklist{}).Where("jti = ?", jti).Count(&count).Error
	return count > 0, err
}
