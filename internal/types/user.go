package types

import (
	"time"

	"gorm.io/datatypes"
)

// User is the root entity. The primary key is the identity provider subject,
// so a row exists only after the first authenticated request.
type User struct {
	ID           string            `gorm:"primaryKey;column:id" json:"id"`
	Email        string            `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Fullname     string            `gorm:"column:fullname" json:"fullname"`
	Species      string            `gorm:"column:species;default:human" json:"species"`
	AvatarConfig datatypes.JSONMap `gorm:"column:avatar_config" json:"avatar_config"`
	Preferences  datatypes.JSONMap `gorm:"column:preferences" json:"preferences"`
	CreatedAt    time.Time         `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time         `gorm:"not null" json:"updated_at"`
}

func (User) TableName() string {
	return "user"
}
