package types

import (
	"time"

	"gorm.io/datatypes"
)

const (
	DefaultSpaceName  = "My Workspace"
	DefaultWorldTheme = "default"
)

// SpaceConfiguration is a user's 3D workspace. At most one space per owner is
// active at a time; the persistence layer enforces this with a partial unique
// index on (user_id) where is_active.
type SpaceConfiguration struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	UserID string `gorm:"index;not null;column:user_id" json:"user_id"`

	Name       string `gorm:"not null;column:name" json:"name"`
	WorldTheme string `gorm:"column:world_theme;default:default" json:"world_theme"`
	IsActive   bool   `gorm:"column:is_active;default:false" json:"is_active"`

	IslandsLayout  datatypes.JSONMap `gorm:"column:islands_layout" json:"islands_layout"`
	CameraPosition datatypes.JSONMap `gorm:"column:camera_position" json:"camera_position"`
	CameraRotation datatypes.JSONMap `gorm:"column:camera_rotation" json:"camera_rotation"`
	CameraZoom     float64           `gorm:"column:camera_zoom;default:1" json:"camera_zoom"`
	LightingConfig datatypes.JSONMap `gorm:"column:lighting_config" json:"lighting_config"`

	UnlockedBlocks      datatypes.JSONSlice[string] `gorm:"column:unlocked_blocks" json:"unlocked_blocks"`
	UnlockedDecorations datatypes.JSONSlice[string] `gorm:"column:unlocked_decorations" json:"unlocked_decorations"`
	UnlockedEffects     datatypes.JSONSlice[string] `gorm:"column:unlocked_effects" json:"unlocked_effects"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (SpaceConfiguration) TableName() string {
	return "space_configuration"
}
