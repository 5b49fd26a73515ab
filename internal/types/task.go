package types

import (
	"time"
)

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusArchived   TaskStatus = "archived"
)

func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted, TaskStatusArchived:
		return true
	default:
		return false
	}
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityUrgent TaskPriority = "urgent"
)

func (p TaskPriority) IsValid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityUrgent:
		return true
	default:
		return false
	}
}

const DefaultTaskColor = "#3B82F6"

type Task struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	UserID      string       `gorm:"index;not null;column:user_id" json:"user_id"`
	Title       string       `gorm:"not null;column:title" json:"title"`
	Description string       `gorm:"column:description" json:"description"`
	Status      TaskStatus   `gorm:"column:status;default:pending" json:"status"`
	Priority    TaskPriority `gorm:"column:priority;default:medium" json:"priority"`

	// Position in the 3D space.
	PositionX float64 `gorm:"column:position_x;default:0" json:"position_x"`
	PositionY float64 `gorm:"column:position_y;default:0" json:"position_y"`
	PositionZ float64 `gorm:"column:position_z;default:0" json:"position_z"`

	Color string  `gorm:"column:color" json:"color"`
	Size  float64 `gorm:"column:size;default:1" json:"size"`

	DueDate     *time.Time `gorm:"column:due_date" json:"due_date"`
	CompletedAt *time.Time `gorm:"column:completed_at" json:"completed_at"`
	CreatedAt   time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null" json:"updated_at"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (Task) TableName() string {
	return "task"
}
