package repos

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/vibespace/vibe-backend/internal/logger"
	"github.com/vibespace/vibe-backend/internal/types"
)

type PomodoroSessionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, session *types.PomodoroSession) (*types.PomodoroSession, error)
	ListByOwner(ctx context.Context, tx *gorm.DB, userID string, taskID *uint, offset, limit int) ([]*types.PomodoroSession, error)
	GetByOwnerAndID(ctx context.Context, tx *gorm.DB, userID string, sessionID uint) (*types.PomodoroSession, error)
	GetActive(ctx context.Context, tx *gorm.DB, userID string) (*types.PomodoroSession, error)
	HasActive(ctx context.Context, tx *gorm.DB, userID string) (bool, error)
	HasActiveOther(ctx context.Context, tx *gorm.DB, userID string, exceptID uint) (bool, error)
	ListCompletedSince(ctx context.Context, tx *gorm.DB, userID string, since time.Time) ([]*types.PomodoroSession, error)
	HasCompletedBetween(ctx context.Context, tx *gorm.DB, userID string, from, to time.Time) (bool, error)
	Updates(ctx context.Context, tx *gorm.DB, userID string, sessionID uint, fields map[string]any) error
	Delete(ctx context.Context, tx *gorm.DB, userID string, sessionID uint) error
}

type pomodoroSessionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPomodoroSessionRepo(db *gorm.DB, baseLog *logger.Logger) PomodoroSessionRepo {
	repoLog := baseLog.With("repo", "PomodoroSessionRepo")
	return &pomodoroSessionRepo{db: db, log: repoLog}
}

func (pr *pomodoroSessionRepo) Create(ctx context.Context, tx *gorm.DB, session *types.PomodoroSession) (*types.PomodoroSession, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	if err := transaction.WithContext(ctx).Create(session).Error; err != nil {
		return nil, err
	}
	return session, nil
}

func (pr *pomodoroSessionRepo) ListByOwner(ctx context.Context, tx *gorm.DB, userID string, taskID *uint, offset, limit int) ([]*types.PomodoroSession, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	query := transaction.WithContext(ctx).
		Where("user_id = ?", userID)
	if taskID != nil {
		query = query.Where("task_id = ?", *taskID)
	}

	var results []*types.PomodoroSession
	if err := query.
		Order("id").
		Offset(offset).
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *pomodoroSessionRepo) GetByOwnerAndID(ctx context.Context, tx *gorm.DB, userID string, sessionID uint) (*types.PomodoroSession, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var result types.PomodoroSession
	if err := transaction.WithContext(ctx).
		Where("id = ? AND user_id = ?", sessionID, userID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (pr *pomodoroSessionRepo) GetActive(ctx context.Context, tx *gorm.DB, userID string) (*types.PomodoroSession, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var result types.PomodoroSession
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, types.PomodoroStatusActive).
		Order("id").
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (pr *pomodoroSessionRepo) HasActive(ctx context.Context, tx *gorm.DB, userID string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.PomodoroSession{}).
		Where("user_id = ? AND status = ?", userID, types.PomodoroStatusActive).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (pr *pomodoroSessionRepo) HasActiveOther(ctx context.Context, tx *gorm.DB, userID string, exceptID uint) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.PomodoroSession{}).
		Where("user_id = ? AND status = ? AND id <> ?", userID, types.PomodoroStatusActive, exceptID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (pr *pomodoroSessionRepo) ListCompletedSince(ctx context.Context, tx *gorm.DB, userID string, since time.Time) ([]*types.PomodoroSession, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var results []*types.PomodoroSession
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND status = ? AND created_at >= ?", userID, types.PomodoroStatusCompleted, since).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *pomodoroSessionRepo) HasCompletedBetween(ctx context.Context, tx *gorm.DB, userID string, from, to time.Time) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.PomodoroSession{}).
		Where("user_id = ? AND status = ? AND created_at >= ? AND created_at < ?", userID, types.PomodoroStatusCompleted, from, to).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (pr *pomodoroSessionRepo) Updates(ctx context.Context, tx *gorm.DB, userID string, sessionID uint, fields map[string]any) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	if len(fields) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Model(&types.PomodoroSession{}).
		Where("id = ? AND user_id = ?", sessionID, userID).
		Updates(fields).Error
}

func (pr *pomodoroSessionRepo) Delete(ctx context.Context, tx *gorm.DB, userID string, sessionID uint) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	return transaction.WithContext(ctx).
		Where("id = ? AND user_id = ?", sessionID, userID).
		Delete(&types.PomodoroSession{}).Error
}
