package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/vibespace/vibe-backend/internal/logger"
	"github.com/vibespace/vibe-backend/internal/types"
)

type TaskRepo interface {
	Create(ctx context.Context, tx *gorm.DB, task *types.Task) (*types.Task, error)
	ListByOwner(ctx context.Context, tx *gorm.DB, userID string, offset, limit int) ([]*types.Task, error)
	GetByOwnerAndID(ctx context.Context, tx *gorm.DB, userID string, taskID uint) (*types.Task, error)
	Updates(ctx context.Context, tx *gorm.DB, userID string, taskID uint, fields map[string]any) error
	Delete(ctx context.Context, tx *gorm.DB, userID string, taskID uint) error
}

type taskRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTaskRepo(db *gorm.DB, baseLog *logger.Logger) TaskRepo {
	repoLog := baseLog.With("repo", "TaskRepo")
	return &taskRepo{db: db, log: repoLog}
}

func (tr *taskRepo) Create(ctx context.Context, tx *gorm.DB, task *types.Task) (*types.Task, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	if err := transaction.WithContext(ctx).Create(task).Error; err != nil {
		return nil, err
	}
	return task, nil
}

func (tr *taskRepo) ListByOwner(ctx context.Context, tx *gorm.DB, userID string, offset, limit int) ([]*types.Task, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	var results []*types.Task
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id").
		Offset(offset).
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (tr *taskRepo) GetByOwnerAndID(ctx context.Context, tx *gorm.DB, userID string, taskID uint) (*types.Task, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	var result types.Task
	if err := transaction.WithContext(ctx).
		Where("id = ? AND user_id = ?", taskID, userID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (tr *taskRepo) Updates(ctx context.Context, tx *gorm.DB, userID string, taskID uint, fields map[string]any) error {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	if len(fields) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Model(&types.Task{}).
		Where("id = ? AND user_id = ?", taskID, userID).
		Updates(fields).Error
}

func (tr *taskRepo) Delete(ctx context.Context, tx *gorm.DB, userID string, taskID uint) error {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	return transaction.WithContext(ctx).
		Where("id = ? AND user_id = ?", taskID, userID).
		Delete(&types.Task{}).Error
}
