package types

import (
	"time"
)

// Achievement is a global catalog row; users reference it through
// UserAchievement records.
type Achievement struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Code        string `gorm:"uniqueIndex;not null;column:code" json:"code"`
	Name        string `gorm:"not null;column:name" json:"name"`
	Description string `gorm:"column:description" json:"description"`
	Icon        string `gorm:"column:icon" json:"icon"`
	Points      int    `gorm:"column:points;default:10" json:"points"`

	// Visual rewards applied to the owner's space when unlocked.
	UnlocksBlockType  string `gorm:"column:unlocks_block_type" json:"unlocks_block_type"`
	UnlocksDecoration string `gorm:"column:unlocks_decoration" json:"unlocks_decoration"`
	UnlocksEffect     string `gorm:"column:unlocks_effect" json:"unlocks_effect"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Achievement) TableName() string {
	return "achievement"
}

type UserAchievement struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	UserID        string `gorm:"not null;column:user_id;uniqueIndex:uidx_user_achievement" json:"user_id"`
	AchievementID uint   `gorm:"not null;column:achievement_id;uniqueIndex:uidx_user_achievement" json:"achievement_id"`

	Unlocked   bool       `gorm:"column:unlocked;default:false" json:"unlocked"`
	UnlockedAt *time.Time `gorm:"column:unlocked_at" json:"unlocked_at"`
	Progress   int        `gorm:"column:progress;default:0" json:"progress"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`

	User        *User        `gorm:"foreignKey:UserID" json:"-"`
	Achievement *Achievement `gorm:"foreignKey:AchievementID" json:"achievement,omitempty"`
}

func (UserAchievement) TableName() string {
	return "user_achievement"
}

// AchievementStats summarizes a user's progress through the catalog.
type AchievementStats struct {
	TotalAchievements    int     `json:"total_achievements"`
	UnlockedAchievements int     `json:"unlocked_achievements"`
	CompletionPercentage float64 `json:"completion_percentage"`
	TotalPoints          int     `json:"total_points"`
}
