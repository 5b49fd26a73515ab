package services

import (
	"context"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/vibespace/vibe-backend/internal/logger"
	"github.com/vibespace/vibe-backend/internal/repos"
	"github.com/vibespace/vibe-backend/internal/types"
)

type UserUpdateInput struct {
	Fullname     *string        `json:"fullname"`
	Species      *string        `json:"species"`
	AvatarConfig map[string]any `json:"avatar_config"`
	Preferences  map[string]any `json:"preferences"`
}

type UserService interface {
	// EnsureUser creates the row for a verified identity if it does not
	// exist yet. Idempotent; called from the auth middleware so reads
	// stay side effect free.
	EnsureUser(ctx context.Context, identity *Identity) error
	GetMe(ctx context.Context, userID string) (*types.User, error)
	UpdateMe(ctx context.Context, userID string, input UserUpdateInput) (*types.User, error)
}

type userService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo repos.UserRepo
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo) UserService {
	serviceLog := log.With("service", "UserService")
	return &userService{db: db, log: serviceLog, userRepo: userRepo}
}

func (us *userService) EnsureUser(ctx context.Context, identity *Identity) error {
	return us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := us.userRepo.Exists(ctx, tx, identity.Sub)
		if err != nil {
			return err
		}
		if exists {
			return nil
		}
		us.log.Info("Creating user on first authenticated request", "user_id", identity.Sub)
		_, err = us.userRepo.Create(ctx, tx, &types.User{
			ID:       identity.Sub,
			Email:    identity.Email,
			Fullname: identity.Fullname,
			Species:  "human",
		})
		return err
	})
}

func (us *userService) GetMe(ctx context.Context, userID string) (*types.User, error) {
	user, err := us.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		return nil, notFoundOr(err, "user")
	}
	return user, nil
}

func (us *userService) UpdateMe(ctx context.Context, userID string, input UserUpdateInput) (*types.User, error) {
	fields := map[string]any{}
	if input.Fullname != nil {
		fields["fullname"] = strings.TrimSpace(*input.Fullname)
	}
	if input.Species != nil {
		fields["species"] = strings.TrimSpace(*input.Species)
	}
	if input.AvatarConfig != nil {
		fields["avatar_config"] = datatypes.JSONMap(input.AvatarConfig)
	}
	if input.Preferences != nil {
		fields["preferences"] = datatypes.JSONMap(input.Preferences)
	}

	var out *types.User
	if err := us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := us.userRepo.GetByID(ctx, tx, userID); err != nil {
			return notFoundOr(err, "user")
		}
		if err := us.userRepo.Updates(ctx, tx, userID, fields); err != nil {
			return err
		}
		updated, err := us.userRepo.GetByID(ctx, tx, userID)
		if err != nil {
			return notFoundOr(err, "user")
		}
		out = updated
		return nil
	}); err != nil {
		return nil, err
	}
	return out, nil
}
