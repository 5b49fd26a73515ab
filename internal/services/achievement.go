package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/vibespace/vibe-backend/internal/logger"
	"github.com/vibespace/vibe-backend/internal/repos"
	"github.com/vibespace/vibe-backend/internal/types"
)

type AchievementService interface {
	ListAll(ctx context.Context) ([]*types.Achievement, error)
	ListForUser(ctx context.Context, userID string) ([]*types.UserAchievement, error)
	ListUnlocked(ctx context.Context, userID string) ([]*types.UserAchievement, error)
	ListInProgress(ctx context.Context, userID string) ([]*types.UserAchievement, error)
	Unlock(ctx context.Context, userID string, code string) (*types.UserAchievement, error)
	UpdateProgress(ctx context.Context, userID string, code string, progress int) (*types.UserAchievement, error)
	Stats(ctx context.Context, userID string) (*types.AchievementStats, error)
}

type achievementService struct {
	db              *gorm.DB
	log             *logger.Logger
	achievementRepo repos.AchievementRepo
	userAchRepo     repos.UserAchievementRepo
	now             func() time.Time
}

func NewAchievementService(db *gorm.DB, log *logger.Logger, achievementRepo repos.AchievementRepo, userAchRepo repos.UserAchievementRepo) AchievementService {
	serviceLog := log.With("service", "AchievementService")
	return &achievementService{
		db:              db,
		log:             serviceLog,
		achievementRepo: achievementRepo,
		userAchRepo:     userAchRepo,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

func (as *achievementService) ListAll(ctx context.Context) ([]*types.Achievement, error) {
	return as.achievementRepo.ListAll(ctx, nil)
}

func (as *achievementService) ListForUser(ctx context.Context, userID string) ([]*types.UserAchievement, error) {
	return as.userAchRepo.ListByOwner(ctx, nil, userID)
}

func (as *achievementService) ListUnlocked(ctx context.Context, userID string) ([]*types.UserAchievement, error) {
	return as.userAchRepo.ListUnlocked(ctx, nil, userID)
}

func (as *achievementService) ListInProgress(ctx context.Context, userID string) ([]*types.UserAchievement, error) {
	return as.userAchRepo.ListInProgress(ctx, nil, userID)
}

func (as *achievementService) Unlock(ctx context.Context, userID string, code string) (*types.UserAchievement, error) {
	var out *types.UserAchievement
	if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		achievement, err := as.achievementRepo.GetByCode(ctx, tx, code)
		if err != nil {
			return notFoundOr(err, "achievement")
		}

		now := as.now()
		existing, err := as.userAchRepo.GetByOwnerAndAchievement(ctx, tx, userID, achievement.ID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			created, err := as.userAchRepo.Create(ctx, tx, &types.UserAchievement{
				UserID:        userID,
				AchievementID: achievement.ID,
				Unlocked:      true,
				UnlockedAt:    &now,
				Progress:      100,
			})
			if err != nil {
				return err
			}
			out = created
			return nil
		}
		if err != nil {
			return err
		}

		if existing.Unlocked {
			return ConflictError{Reason: "achievement already unlocked"}
		}
		existing.Unlocked = true
		existing.UnlockedAt = &now
		existing.Progress = 100
		if err := as.userAchRepo.Save(ctx, tx, existing); err != nil {
			return err
		}
		out = existing
		return nil
	}); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateProgress clamps progress to 100 and auto-unlocks at the cap. Progress
// is frozen once an achievement is unlocked.
func (as *achievementService) UpdateProgress(ctx context.Context, userID string, code string, progress int) (*types.UserAchievement, error) {
	if progress < 0 {
		return nil, fmt.Errorf("progress must not be negative")
	}
	if progress > 100 {
		progress = 100
	}

	var out *types.UserAchievement
	if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		achievement, err := as.achievementRepo.GetByCode(ctx, tx, code)
		if err != nil {
			return notFoundOr(err, "achievement")
		}

		now := as.now()
		record, err := as.userAchRepo.GetByOwnerAndAchievement(ctx, tx, userID, achievement.ID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			record = &types.UserAchievement{
				UserID:        userID,
				AchievementID: achievement.ID,
				Progress:      progress,
			}
			if progress >= 100 {
				record.Unlocked = true
				record.UnlockedAt = &now
			}
			created, err := as.userAchRepo.Create(ctx, tx, record)
			if err != nil {
				return err
			}
			out = created
			return nil
		}
		if err != nil {
			return err
		}

		if record.Unlocked {
			return ConflictError{Reason: "cannot update progress for unlocked achievement"}
		}
		record.Progress = progress
		if record.Progress >= 100 {
			record.Unlocked = true
			record.UnlockedAt = &now
		}
		if err := as.userAchRepo.Save(ctx, tx, record); err != nil {
			return err
		}
		out = record
		return nil
	}); err != nil {
		return nil, err
	}
	return out, nil
}

func (as *achievementService) Stats(ctx context.Context, userID string) (*types.AchievementStats, error) {
	total, err := as.achievementRepo.Count(ctx, nil)
	if err != nil {
		return nil, err
	}
	unlocked, err := as.userAchRepo.CountUnlocked(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	points, err := as.userAchRepo.SumUnlockedPoints(ctx, nil, userID)
	if err != nil {
		return nil, err
	}

	stats := &types.AchievementStats{
		TotalAchievements:    int(total),
		UnlockedAchievements: int(unlocked),
		TotalPoints:          points,
	}
	if total > 0 {
		stats.CompletionPercentage = float64(unlocked) / float64(total) * 100
	}
	return stats, nil
}
