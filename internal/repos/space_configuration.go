package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/vibespace/vibe-backend/internal/logger"
	"github.com/vibespace/vibe-backend/internal/types"
)

type SpaceConfigurationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, space *types.SpaceConfiguration) (*types.SpaceConfiguration, error)
	ListByOwner(ctx context.Context, tx *gorm.DB, userID string) ([]*types.SpaceConfiguration, error)
	GetByOwnerAndID(ctx context.Context, tx *gorm.DB, userID string, spaceID uint) (*types.SpaceConfiguration, error)
	GetActive(ctx context.Context, tx *gorm.DB, userID string) (*types.SpaceConfiguration, error)
	FirstByOwner(ctx context.Context, tx *gorm.DB, userID string) (*types.SpaceConfiguration, error)
	FirstOtherByOwner(ctx context.Context, tx *gorm.DB, userID string, exceptID uint) (*types.SpaceConfiguration, error)
	CountByOwner(ctx context.Context, tx *gorm.DB, userID string) (int64, error)
	NameExists(ctx context.Context, tx *gorm.DB, userID string, name string) (bool, error)
	DeactivateOthers(ctx context.Context, tx *gorm.DB, userID string, exceptID uint) error
	Updates(ctx context.Context, tx *gorm.DB, userID string, spaceID uint, fields map[string]any) error
	Delete(ctx context.Context, tx *gorm.DB, userID string, spaceID uint) error
}

type spaceConfigurationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSpaceConfigurationRepo(db *gorm.DB, baseLog *logger.Logger) SpaceConfigurationRepo {
	repoLog := baseLog.With("repo", "SpaceConfigurationRepo")
	return &spaceConfigurationRepo{db: db, log: repoLog}
}

func (sr *spaceConfigurationRepo) Create(ctx context.Context, tx *gorm.DB, space *types.SpaceConfiguration) (*types.SpaceConfiguration, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	if err := transaction.WithContext(ctx).Create(space).Error; err != nil {
		return nil, err
	}
	return space, nil
}

func (sr *spaceConfigurationRepo) ListByOwner(ctx context.Context, tx *gorm.DB, userID string) ([]*types.SpaceConfiguration, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var results []*types.SpaceConfiguration
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (sr *spaceConfigurationRepo) GetByOwnerAndID(ctx context.Context, tx *gorm.DB, userID string, spaceID uint) (*types.SpaceConfiguration, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var result types.SpaceConfiguration
	if err := transaction.WithContext(ctx).
		Where("id = ? AND user_id = ?", spaceID, userID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (sr *spaceConfigurationRepo) GetActive(ctx context.Context, tx *gorm.DB, userID string) (*types.SpaceConfiguration, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var result types.SpaceConfiguration
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (sr *spaceConfigurationRepo) FirstByOwner(ctx context.Context, tx *gorm.DB, userID string) (*types.SpaceConfiguration, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var result types.SpaceConfiguration
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id").
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (sr *spaceConfigurationRepo) FirstOtherByOwner(ctx context.Context, tx *gorm.DB, userID string, exceptID uint) (*types.SpaceConfiguration, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var result types.SpaceConfiguration
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND id <> ?", userID, exceptID).
		Order("id").
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (sr *spaceConfigurationRepo) CountByOwner(ctx context.Context, tx *gorm.DB, userID string) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.SpaceConfiguration{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (sr *spaceConfigurationRepo) NameExists(ctx context.Context, tx *gorm.DB, userID string, name string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.SpaceConfiguration{}).
		Where("user_id = ? AND name = ?", userID, name).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (sr *spaceConfigurationRepo) DeactivateOthers(ctx context.Context, tx *gorm.DB, userID string, exceptID uint) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	return transaction.WithContext(ctx).
		Model(&types.SpaceConfiguration{}).
		Where("user_id = ? AND id <> ?", userID, exceptID).
		Update("is_active", false).Error
}

func (sr *spaceConfigurationRepo) Updates(ctx context.Context, tx *gorm.DB, userID string, spaceID uint, fields map[string]any) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	if len(fields) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Model(&types.SpaceConfiguration{}).
		Where("id = ? AND user_id = ?", spaceID, userID).
		Updates(fields).Error
}

func (sr *spaceConfigurationRepo) Delete(ctx context.Context, tx *gorm.DB, userID string, spaceID uint) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	return transaction.WithContext(ctx).
		Where("id = ? AND user_id = ?", spaceID, userID).
		Delete(&types.SpaceConfiguration{}).Error
}
