package types

import (
	"time"
)

type PomodoroPhase string

const (
	PomodoroPhaseWork       PomodoroPhase = "work"
	PomodoroPhaseShortBreak PomodoroPhase = "short_break"
	PomodoroPhaseLongBreak  PomodoroPhase = "long_break"
)

func (p PomodoroPhase) IsValid() bool {
	switch p {
	case PomodoroPhaseWork, PomodoroPhaseShortBreak, PomodoroPhaseLongBreak:
		return true
	default:
		return false
	}
}

type PomodoroStatus string

const (
	PomodoroStatusActive    PomodoroStatus = "active"
	PomodoroStatusPaused    PomodoroStatus = "paused"
	PomodoroStatusCompleted PomodoroStatus = "completed"
	PomodoroStatusCancelled PomodoroStatus = "cancelled"
)

func (s PomodoroStatus) IsValid() bool {
	switch s {
	case PomodoroStatusActive, PomodoroStatusPaused, PomodoroStatusCompleted, PomodoroStatusCancelled:
		return true
	default:
		return false
	}
}

// Session duration bounds, in minutes.
const (
	PomodoroMinDuration     = 1
	PomodoroMaxDuration     = 60
	PomodoroDefaultDuration = 25
)

type PomodoroSession struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	UserID string `gorm:"index;not null;column:user_id" json:"user_id"`
	TaskID *uint  `gorm:"column:task_id" json:"task_id"`

	Phase  PomodoroPhase  `gorm:"column:phase;default:work" json:"phase"`
	Status PomodoroStatus `gorm:"column:status;default:active" json:"status"`

	// Duration is the configured length in minutes, ElapsedTime the time
	// actually spent as reported by the client.
	Duration    int `gorm:"column:duration;default:25" json:"duration"`
	ElapsedTime int `gorm:"column:elapsed_time;default:0" json:"elapsed_time"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
	Task *Task `gorm:"foreignKey:TaskID" json:"-"`
}

func (PomodoroSession) TableName() string {
	return "pomodoro_session"
}

// PomodoroStats aggregates completed sessions over the trailing seven days.
type PomodoroStats struct {
	TotalSessions int     `json:"total_sessions"`
	TotalDuration int     `json:"total_duration"`
	WorkSessions  int     `json:"work_sessions"`
	BreakSessions int     `json:"break_sessions"`
	DailyAverage  float64 `json:"daily_average"`
	Streak        int     `json:"streak"`
}
