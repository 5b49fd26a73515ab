package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/vibespace/vibe-backend/internal/logger"
	"github.com/vibespace/vibe-backend/internal/types"
)

type AchievementRepo interface {
	ListAll(ctx context.Context, tx *gorm.DB) ([]*types.Achievement, error)
	GetByCode(ctx context.Context, tx *gorm.DB, code string) (*types.Achievement, error)
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
}

type achievementRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAchievementRepo(db *gorm.DB, baseLog *logger.Logger) AchievementRepo {
	repoLog := baseLog.With("repo", "AchievementRepo")
	return &achievementRepo{db: db, log: repoLog}
}

func (ar *achievementRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*types.Achievement, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var results []*types.Achievement
	if err := transaction.WithContext(ctx).
		Order("id").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ar *achievementRepo) GetByCode(ctx context.Context, tx *gorm.DB, code string) (*types.Achievement, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var result types.Achievement
	if err := transaction.WithContext(ctx).
		Where("code = ?", code).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (ar *achievementRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Achievement{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
