package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/vibespace/vibe-backend/internal/logger"
	"github.com/vibespace/vibe-backend/internal/types"
)

type UserAchievementRepo interface {
	Create(ctx context.Context, tx *gorm.DB, record *types.UserAchievement) (*types.UserAchievement, error)
	ListByOwner(ctx context.Context, tx *gorm.DB, userID string) ([]*types.UserAchievement, error)
	ListUnlocked(ctx context.Context, tx *gorm.DB, userID string) ([]*types.UserAchievement, error)
	ListInProgress(ctx context.Context, tx *gorm.DB, userID string) ([]*types.UserAchievement, error)
	GetByOwnerAndAchievement(ctx context.Context, tx *gorm.DB, userID string, achievementID uint) (*types.UserAchievement, error)
	Save(ctx context.Context, tx *gorm.DB, record *types.UserAchievement) error
	CountUnlocked(ctx context.Context, tx *gorm.DB, userID string) (int64, error)
	SumUnlockedPoints(ctx context.Context, tx *gorm.DB, userID string) (int, error)
}

type userAchievementRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserAchievementRepo(db *gorm.DB, baseLog *logger.Logger) UserAchievementRepo {
	repoLog := baseLog.With("repo", "UserAchievementRepo")
	return &userAchievementRepo{db: db, log: repoLog}
}

func (uar *userAchievementRepo) Create(ctx context.Context, tx *gorm.DB, record *types.UserAchievement) (*types.UserAchievement, error) {
	transaction := tx
	if transaction == nil {
		transaction = uar.db
	}
	if err := transaction.WithContext(ctx).Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

func (uar *userAchievementRepo) ListByOwner(ctx context.Context, tx *gorm.DB, userID string) ([]*types.UserAchievement, error) {
	transaction := tx
	if transaction == nil {
		transaction = uar.db
	}

	var results []*types.UserAchievement
	if err := transaction.WithContext(ctx).
		Preload("Achievement").
		Where("user_id = ?", userID).
		Order("id").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (uar *userAchievementRepo) ListUnlocked(ctx context.Context, tx *gorm.DB, userID string) ([]*types.UserAchievement, error) {
	transaction := tx
	if transaction == nil {
		transaction = uar.db
	}

	var results []*types.UserAchievement
	if err := transaction.WithContext(ctx).
		Preload("Achievement").
		Where("user_id = ? AND unlocked = ?", userID, true).
		Order("id").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (uar *userAchievementRepo) ListInProgress(ctx context.Context, tx *gorm.DB, userID string) ([]*types.UserAchievement, error) {
	transaction := tx
	if transaction == nil {
		transaction = uar.db
	}

	var results []*types.UserAchievement
	if err := transaction.WithContext(ctx).
		Preload("Achievement").
		Where("user_id = ? AND unlocked = ? AND progress > 0", userID, false).
		Order("id").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (uar *userAchievementRepo) GetByOwnerAndAchievement(ctx context.Context, tx *gorm.DB, userID string, achievementID uint) (*types.UserAchievement, error) {
	transaction := tx
	if transaction == nil {
		transaction = uar.db
	}

	var result types.UserAchievement
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND achievement_id = ?", userID, achievementID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (uar *userAchievementRepo) Save(ctx context.Context, tx *gorm.DB, record *types.UserAchievement) error {
	transaction := tx
	if transaction == nil {
		transaction = uar.db
	}
	return transaction.WithContext(ctx).Save(record).Error
}

func (uar *userAchievementRepo) CountUnlocked(ctx context.Context, tx *gorm.DB, userID string) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = uar.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.UserAchievement{}).
		Where("user_id = ? AND unlocked = ?", userID, true).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (uar *userAchievementRepo) SumUnlockedPoints(ctx context.Context, tx *gorm.DB, userID string) (int, error) {
	transaction := tx
	if transaction == nil {
		transaction = uar.db
	}

	var total *int
	if err := transaction.WithContext(ctx).
		Model(&types.UserAchievement{}).
		Select("SUM(achievement.points)").
		Joins("JOIN achievement ON achievement.id = user_achievement.achievement_id").
		Where("user_achievement.user_id = ? AND user_achievement.unlocked = ?", userID, true).
		Scan(&total).Error; err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}
