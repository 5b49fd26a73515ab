package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/vibespace/vibe-backend/internal/logger"
	"github.com/vibespace/vibe-backend/internal/repos"
	"github.com/vibespace/vibe-backend/internal/types"
)

type SpaceCreateInput struct {
	Name       string `json:"name" binding:"required"`
	WorldTheme string `json:"world_theme"`
	IsActive   bool   `json:"is_active"`
}

type SpaceUpdateInput struct {
	Name                *string        `json:"name"`
	WorldTheme          *string        `json:"world_theme"`
	IsActive            *bool          `json:"is_active"`
	IslandsLayout       map[string]any `json:"islands_layout"`
	CameraPosition      map[string]any `json:"camera_position"`
	CameraRotation      map[string]any `json:"camera_rotation"`
	CameraZoom          *float64       `json:"camera_zoom"`
	LightingConfig      map[string]any `json:"lighting_config"`
	UnlockedBlocks      []string       `json:"unlocked_blocks"`
	UnlockedDecorations []string       `json:"unlocked_decorations"`
	UnlockedEffects     []string       `json:"unlocked_effects"`
}

type SpaceService interface {
	Create(ctx context.Context, userID string, input SpaceCreateInput) (*types.SpaceConfiguration, error)
	ListAll(ctx context.Context, userID string) ([]*types.SpaceConfiguration, error)
	// EnsureDefault provisions the default space for owners with none.
	// Idempotent; called before GetActive so the read itself stays side
	// effect free.
	EnsureDefault(ctx context.Context, userID string) error
	GetActive(ctx context.Context, userID string) (*types.SpaceConfiguration, error)
	Get(ctx context.Context, userID string, spaceID uint) (*types.SpaceConfiguration, error)
	Update(ctx context.Context, userID string, spaceID uint, input SpaceUpdateInput) (*types.SpaceConfiguration, error)
	Delete(ctx context.Context, userID string, spaceID uint) error
	Activate(ctx context.Context, userID string, spaceID uint) (*types.SpaceConfiguration, error)
}

type spaceService struct {
	db        *gorm.DB
	log       *logger.Logger
	spaceRepo repos.SpaceConfigurationRepo
}

func NewSpaceService(db *gorm.DB, log *logger.Logger, spaceRepo repos.SpaceConfigurationRepo) SpaceService {
	serviceLog := log.With("service", "SpaceService")
	return &spaceService{db: db, log: serviceLog, spaceRepo: spaceRepo}
}

func (ss *spaceService) Create(ctx context.Context, userID string, input SpaceCreateInput) (*types.SpaceConfiguration, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}

	space := &types.SpaceConfiguration{
		UserID:     userID,
		Name:       name,
		WorldTheme: types.DefaultWorldTheme,
		IsActive:   input.IsActive,
	}
	if strings.TrimSpace(input.WorldTheme) != "" {
		space.WorldTheme = input.WorldTheme
	}

	var out *types.SpaceConfiguration
	if err := ss.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := ss.spaceRepo.NameExists(ctx, tx, userID, name)
		if err != nil {
			return err
		}
		if exists {
			return ConflictError{Reason: "space with this name already exists"}
		}

		// Clear siblings before the insert; the partial unique index on
		// (user_id) where is_active rejects a second active row. Id 0
		// never exists, so this deactivates every space the owner has.
		if space.IsActive {
			if err := ss.spaceRepo.DeactivateOthers(ctx, tx, userID, 0); err != nil {
				return err
			}
		}

		created, err := ss.spaceRepo.Create(ctx, tx, space)
		if err != nil {
			return err
		}
		out = created
		return nil
	}); err != nil {
		return nil, err
	}
	return out, nil
}

func (ss *spaceService) ListAll(ctx context.Context, userID string) ([]*types.SpaceConfiguration, error) {
	return ss.spaceRepo.ListByOwner(ctx, nil, userID)
}

func (ss *spaceService) EnsureDefault(ctx context.Context, userID string) error {
	return ss.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		count, err := ss.spaceRepo.CountByOwner(ctx, tx, userID)
		if err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		ss.log.Info("Provisioning default space", "user_id", userID)
		_, err = ss.spaceRepo.Create(ctx, tx, &types.SpaceConfiguration{
			UserID:     userID,
			Name:       types.DefaultSpaceName,
			WorldTheme: types.DefaultWorldTheme,
			IsActive:   true,
		})
		return err
	})
}

// GetActive returns the active space, falling back to the owner's first space
// when none is flagged. Owners with no spaces get NotFound; callers wanting
// the auto provisioned default run EnsureDefault first.
func (ss *spaceService) GetActive(ctx context.Context, userID string) (*types.SpaceConfiguration, error) {
	space, err := ss.spaceRepo.GetActive(ctx, nil, userID)
	if err == nil {
		return space, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	space, err = ss.spaceRepo.FirstByOwner(ctx, nil, userID)
	if err != nil {
		return nil, notFoundOr(err, "space")
	}
	return space, nil
}

func (ss *spaceService) Get(ctx context.Context, userID string, spaceID uint) (*types.SpaceConfiguration, error) {
	space, err := ss.spaceRepo.GetByOwnerAndID(ctx, nil, userID, spaceID)
	if err != nil {
		return nil, notFoundOr(err, "space")
	}
	return space, nil
}

func (ss *spaceService) Update(ctx context.Context, userID string, spaceID uint, input SpaceUpdateInput) (*types.SpaceConfiguration, error) {
	fields := map[string]any{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, fmt.Errorf("name must not be empty")
		}
		fields["name"] = name
	}
	if input.WorldTheme != nil {
		fields["world_theme"] = *input.WorldTheme
	}
	if input.IsActive != nil {
		fields["is_active"] = *input.IsActive
	}
	if input.IslandsLayout != nil {
		fields["islands_layout"] = datatypes.JSONMap(input.IslandsLayout)
	}
	if input.CameraPosition != nil {
		fields["camera_position"] = datatypes.JSONMap(input.CameraPosition)
	}
	if input.CameraRotation != nil {
		fields["camera_rotation"] = datatypes.JSONMap(input.CameraRotation)
	}
	if input.CameraZoom != nil {
		fields["camera_zoom"] = *input.CameraZoom
	}
	if input.LightingConfig != nil {
		fields["lighting_config"] = datatypes.JSONMap(input.LightingConfig)
	}
	if input.UnlockedBlocks != nil {
		fields["unlocked_blocks"] = datatypes.NewJSONSlice(input.UnlockedBlocks)
	}
	if input.UnlockedDecorations != nil {
		fields["unlocked_decorations"] = datatypes.NewJSONSlice(input.UnlockedDecorations)
	}
	if input.UnlockedEffects != nil {
		fields["unlocked_effects"] = datatypes.NewJSONSlice(input.UnlockedEffects)
	}

	var out *types.SpaceConfiguration
	if err := ss.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		space, err := ss.spaceRepo.GetByOwnerAndID(ctx, tx, userID, spaceID)
		if err != nil {
			return notFoundOr(err, "space")
		}

		// Activation clears every sibling first so the partial unique
		// index never sees two active rows.
		if input.IsActive != nil && *input.IsActive {
			if err := ss.spaceRepo.DeactivateOthers(ctx, tx, userID, space.ID); err != nil {
				return err
			}
		}

		if err := ss.spaceRepo.Updates(ctx, tx, userID, spaceID, fields); err != nil {
			return err
		}
		updated, err := ss.spaceRepo.GetByOwnerAndID(ctx, tx, userID, spaceID)
		if err != nil {
			return notFoundOr(err, "space")
		}
		out = updated
		return nil
	}); err != nil {
		return nil, err
	}
	return out, nil
}

func (ss *spaceService) Delete(ctx context.Context, userID string, spaceID uint) error {
	return ss.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		space, err := ss.spaceRepo.GetByOwnerAndID(ctx, tx, userID, spaceID)
		if err != nil {
			return notFoundOr(err, "space")
		}

		count, err := ss.spaceRepo.CountByOwner(ctx, tx, userID)
		if err != nil {
			return err
		}
		if count <= 1 {
			return ConflictError{Reason: "cannot delete the only space"}
		}

		// Promote another space before the active one disappears.
		if space.IsActive {
			successor, err := ss.spaceRepo.FirstOtherByOwner(ctx, tx, userID, space.ID)
			if err != nil {
				return err
			}
			if err := ss.spaceRepo.Delete(ctx, tx, userID, space.ID); err != nil {
				return err
			}
			return ss.spaceRepo.Updates(ctx, tx, userID, successor.ID, map[string]any{"is_active": true})
		}

		return ss.spaceRepo.Delete(ctx, tx, userID, space.ID)
	})
}

func (ss *spaceService) Activate(ctx context.Context, userID string, spaceID uint) (*types.SpaceConfiguration, error) {
	var out *types.SpaceConfiguration
	if err := ss.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		space, err := ss.spaceRepo.GetByOwnerAndID(ctx, tx, userID, spaceID)
		if err != nil {
			return notFoundOr(err, "space")
		}
		if err := ss.spaceRepo.DeactivateOthers(ctx, tx, userID, space.ID); err != nil {
			return err
		}
		if err := ss.spaceRepo.Updates(ctx, tx, userID, space.ID, map[string]any{"is_active": true}); err != nil {
			return err
		}
		updated, err := ss.spaceRepo.GetByOwnerAndID(ctx, tx, userID, space.ID)
		if err != nil {
			return notFoundOr(err, "space")
		}
		out = updated
		return nil
	}); err != nil {
		return nil, err
	}
	return out, nil
}
