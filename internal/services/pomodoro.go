package services

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/vibespace/vibe-backend/internal/logger"
	"github.com/vibespace/vibe-backend/internal/repos"
	"github.com/vibespace/vibe-backend/internal/types"
)

// streakScanLimit bounds the backward day-by-day walk so an account with
// years of history cannot turn the streak query into an unbounded loop.
const streakScanLimit = 365

type PomodoroCreateInput struct {
	TaskID   *uint                `json:"task_id"`
	Phase    *types.PomodoroPhase `json:"phase"`
	Duration *int                 `json:"duration"`
}

type PomodoroUpdateInput struct {
	Status      *types.PomodoroStatus `json:"status"`
	Phase       *types.PomodoroPhase  `json:"phase"`
	ElapsedTime *int                  `json:"elapsed_time"`
}

type PomodoroService interface {
	Create(ctx context.Context, userID string, input PomodoroCreateInput) (*types.PomodoroSession, error)
	List(ctx context.Context, userID string, taskID *uint, offset, limit int) ([]*types.PomodoroSession, error)
	GetActive(ctx context.Context, userID string) (*types.PomodoroSession, error)
	Get(ctx context.Context, userID string, sessionID uint) (*types.PomodoroSession, error)
	Stats(ctx context.Context, userID string) (*types.PomodoroStats, error)
	Update(ctx context.Context, userID string, sessionID uint, input PomodoroUpdateInput) (*types.PomodoroSession, error)
	Delete(ctx context.Context, userID string, sessionID uint) error
}

type pomodoroService struct {
	db           *gorm.DB
	log          *logger.Logger
	pomodoroRepo repos.PomodoroSessionRepo
	taskRepo     repos.TaskRepo
	now          func() time.Time
}

func NewPomodoroService(db *gorm.DB, log *logger.Logger, pomodoroRepo repos.PomodoroSessionRepo, taskRepo repos.TaskRepo) PomodoroService {
	serviceLog := log.With("service", "PomodoroService")
	return &pomodoroService{
		db:           db,
		log:          serviceLog,
		pomodoroRepo: pomodoroRepo,
		taskRepo:     taskRepo,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (ps *pomodoroService) Create(ctx context.Context, userID string, input PomodoroCreateInput) (*types.PomodoroSession, error) {
	session := &types.PomodoroSession{
		UserID:   userID,
		TaskID:   input.TaskID,
		Phase:    types.PomodoroPhaseWork,
		Status:   types.PomodoroStatusActive,
		Duration: types.PomodoroDefaultDuration,
	}
	if input.Phase != nil {
		if !input.Phase.IsValid() {
			return nil, fmt.Errorf("invalid phase: %q", *input.Phase)
		}
		session.Phase = *input.Phase
	}
	if input.Duration != nil {
		if *input.Duration < types.PomodoroMinDuration || *input.Duration > types.PomodoroMaxDuration {
			return nil, fmt.Errorf("duration must be between %d and %d minutes", types.PomodoroMinDuration, types.PomodoroMaxDuration)
		}
		session.Duration = *input.Duration
	}

	var out *types.PomodoroSession
	if err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if session.TaskID != nil {
			if _, err := ps.taskRepo.GetByOwnerAndID(ctx, tx, userID, *session.TaskID); err != nil {
				return notFoundOr(err, "task")
			}
		}

		// One active session per owner; a second start is rejected
		// instead of silently stacking active records.
		hasActive, err := ps.pomodoroRepo.HasActive(ctx, tx, userID)
		if err != nil {
			return err
		}
		if hasActive {
			return ConflictError{Reason: "an active session already exists"}
		}

		created, err := ps.pomodoroRepo.Create(ctx, tx, session)
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

func (ps *pomodoroService) List(ctx context.Context, userID string, taskID *uint, offset, limit int) ([]*types.PomodoroSession, error) {
	return ps.pomodoroRepo.ListByOwner(ctx, nil, userID, taskID, offset, limit)
}

func (ps *pomodoroService) GetActive(ctx context.Context, userID string) (*types.PomodoroSession, error) {
	session, err := ps.pomodoroRepo.GetActive(ctx, nil, userID)
	if err != nil {
		return nil, notFoundOr(err, "active pomodoro session")
	}
	return session, nil
}

func (ps *pomodoroService) Get(ctx context.Context, userID string, sessionID uint) (*types.PomodoroSession, error) {
	session, err := ps.pomodoroRepo.GetByOwnerAndID(ctx, nil, userID, sessionID)
	if err != nil {
		return nil, notFoundOr(err, "pomodoro session")
	}
	return session, nil
}

// Stats aggregates completed sessions over the trailing 7x24h window. All day
// boundaries are UTC.
func (ps *pomodoroService) Stats(ctx context.Context, userID string) (*types.PomodoroStats, error) {
	now := ps.now()
	since := now.Add(-7 * 24 * time.Hour)

	sessions, err := ps.pomodoroRepo.ListCompletedSince(ctx, nil, userID, since)
	if err != nil {
		return nil, err
	}

	stats := &types.PomodoroStats{TotalSessions: len(sessions)}
	for _, s := range sessions {
		stats.TotalDuration += s.ElapsedTime
		if s.Phase == types.PomodoroPhaseWork {
			stats.WorkSessions++
		} else {
			stats.BreakSessions++
		}
	}
	if stats.TotalSessions > 0 {
		stats.DailyAverage = float64(stats.TotalSessions) / 7
	}

	streak, err := ps.streak(ctx, userID, now)
	if err != nil {
		return nil, err
	}
	stats.Streak = streak

	return stats, nil
}

// streak walks backward one UTC calendar day at a time, counting days with at
// least one completed session, and stops at the first gap.
func (ps *pomodoroService) streak(ctx context.Context, userID string, now time.Time) (int, error) {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	streak := 0
	for i := 0; i < streakScanLimit; i++ {
		counts, err := ps.pomodoroRepo.HasCompletedBetween(ctx, nil, userID, dayStart, dayStart.AddDate(0, 0, 1))
		if err != nil {
			return 0, err
		}
		if !counts {
			break
		}
		streak++
		dayStart = dayStart.AddDate(0, 0, -1)
	}
	return streak, nil
}

func (ps *pomodoroService) Update(ctx context.Context, userID string, sessionID uint, input PomodoroUpdateInput) (*types.PomodoroSession, error) {
	fields := map[string]any{}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, fmt.Errorf("invalid status: %q", *input.Status)
		}
		fields["status"] = *input.Status
	}
	if input.Phase != nil {
		if !input.Phase.IsValid() {
			return nil, fmt.Errorf("invalid phase: %q", *input.Phase)
		}
		fields["phase"] = *input.Phase
	}
	if input.ElapsedTime != nil {
		if *input.ElapsedTime < 0 {
			return nil, fmt.Errorf("elapsed_time must not be negative")
		}
		fields["elapsed_time"] = *input.ElapsedTime
	}

	var out *types.PomodoroSession
	if err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := ps.pomodoroRepo.GetByOwnerAndID(ctx, tx, userID, sessionID); err != nil {
			return notFoundOr(err, "pomodoro session")
		}

		// Resuming into active is bounded the same way create is: one
		// active session per owner.
		if input.Status != nil && *input.Status == types.PomodoroStatusActive {
			hasOther, err := ps.pomodoroRepo.HasActiveOther(ctx, tx, userID, sessionID)
			if err != nil {
				return err
			}
			if hasOther {
				return ConflictError{Reason: "an active session already exists"}
			}
		}

		if err := ps.pomodoroRepo.Updates(ctx, tx, userID, sessionID, fields); err != nil {
			return err
		}
		updated, err := ps.pomodoroRepo.GetByOwnerAndID(ctx, tx, userID, sessionID)
		if err != nil {
			return notFoundOr(err, "pomodoro session")
		}
		out = updated
		return nil
	}); err != nil {
		return nil, err
	}
	return out, nil
}

func (ps *pomodoroService) Delete(ctx context.Context, userID string, sessionID uint) error {
	return ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := ps.pomodoroRepo.GetByOwnerAndID(ctx, tx, userID, sessionID); err != nil {
			return notFoundOr(err, "pomodoro session")
		}
		return ps.pomodoroRepo.Delete(ctx, tx, userID, sessionID)
	})
}
