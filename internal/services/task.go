package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/vibespace/vibe-backend/internal/logger"
	"github.com/vibespace/vibe-backend/internal/repos"
	"github.com/vibespace/vibe-backend/internal/types"
)

type TaskCreateInput struct {
	Title       string              `json:"title" binding:"required"`
	Description string              `json:"description"`
	Priority    *types.TaskPriority `json:"priority"`
	PositionX   float64             `json:"position_x"`
	PositionY   float64             `json:"position_y"`
	PositionZ   float64             `json:"position_z"`
	Color       *string             `json:"color"`
	Size        *float64            `json:"size"`
	DueDate     *time.Time          `json:"due_date"`
}

type TaskUpdateInput struct {
	Title       *string             `json:"title"`
	Description *string             `json:"description"`
	Status      *types.TaskStatus   `json:"status"`
	Priority    *types.TaskPriority `json:"priority"`
	PositionX   *float64            `json:"position_x"`
	PositionY   *float64            `json:"position_y"`
	PositionZ   *float64            `json:"position_z"`
	Color       *string             `json:"color"`
	Size        *float64            `json:"size"`
	DueDate     *time.Time          `json:"due_date"`
}

type TaskService interface {
	List(ctx context.Context, userID string, offset, limit int) ([]*types.Task, error)
	Create(ctx context.Context, userID string, input TaskCreateInput) (*types.Task, error)
	Get(ctx context.Context, userID string, taskID uint) (*types.Task, error)
	Update(ctx context.Context, userID string, taskID uint, input TaskUpdateInput) (*types.Task, error)
	Delete(ctx context.Context, userID string, taskID uint) error
}

type taskService struct {
	db       *gorm.DB
	log      *logger.Logger
	taskRepo repos.TaskRepo
}

func NewTaskService(db *gorm.DB, log *logger.Logger, taskRepo repos.TaskRepo) TaskService {
	serviceLog := log.With("service", "TaskService")
	return &taskService{db: db, log: serviceLog, taskRepo: taskRepo}
}

func (ts *taskService) List(ctx context.Context, userID string, offset, limit int) ([]*types.Task, error) {
	return ts.taskRepo.ListByOwner(ctx, nil, userID, offset, limit)
}

func (ts *taskService) Create(ctx context.Context, userID string, input TaskCreateInput) (*types.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("title is required")
	}

	task := &types.Task{
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		Status:      types.TaskStatusPending,
		Priority:    types.TaskPriorityMedium,
		PositionX:   input.PositionX,
		PositionY:   input.PositionY,
		PositionZ:   input.PositionZ,
		Color:       types.DefaultTaskColor,
		Size:        1.0,
		DueDate:     input.DueDate,
	}
	if input.Priority != nil {
		if !input.Priority.IsValid() {
			return nil, fmt.Errorf("invalid priority: %q", *input.Priority)
		}
		task.Priority = *input.Priority
	}
	if input.Color != nil {
		task.Color = *input.Color
	}
	if input.Size != nil {
		task.Size = *input.Size
	}

	return ts.taskRepo.Create(ctx, nil, task)
}

func (ts *taskService) Get(ctx context.Context, userID string, taskID uint) (*types.Task, error) {
	task, err := ts.taskRepo.GetByOwnerAndID(ctx, nil, userID, taskID)
	if err != nil {
		return nil, notFoundOr(err, "task")
	}
	return task, nil
}

func (ts *taskService) Update(ctx context.Context, userID string, taskID uint, input TaskUpdateInput) (*types.Task, error) {
	fields := map[string]any{}
	if input.Title != nil {
		fields["title"] = *input.Title
	}
	if input.Description != nil {
		fields["description"] = *input.Description
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, fmt.Errorf("invalid status: %q", *input.Status)
		}
		fields["status"] = *input.Status
	}
	if input.Priority != nil {
		if !input.Priority.IsValid() {
			return nil, fmt.Errorf("invalid priority: %q", *input.Priority)
		}
		fields["priority"] = *input.Priority
	}
	if input.PositionX != nil {
		fields["position_x"] = *input.PositionX
	}
	if input.PositionY != nil {
		fields["position_y"] = *input.PositionY
	}
	if input.PositionZ != nil {
		fields["position_z"] = *input.PositionZ
	}
	if input.Color != nil {
		fields["color"] = *input.Color
	}
	if input.Size != nil {
		fields["size"] = *input.Size
	}
	if input.DueDate != nil {
		fields["due_date"] = *input.DueDate
	}

	var out *types.Task
	if err := ts.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		task, err := ts.taskRepo.GetByOwnerAndID(ctx, tx, userID, taskID)
		if err != nil {
			return notFoundOr(err, "task")
		}

		// completed_at tracks the transition in and out of completed.
		if input.Status != nil {
			switch {
			case *input.Status == types.TaskStatusCompleted && task.Status != types.TaskStatusCompleted:
				now := time.Now().UTC()
				fields["completed_at"] = &now
			case *input.Status != types.TaskStatusCompleted && task.Status == types.TaskStatusCompleted:
				fields["completed_at"] = nil
			}
		}

		if err := ts.taskRepo.Updates(ctx, tx, userID, taskID, fields); err != nil {
			return err
		}
		updated, err := ts.taskRepo.GetByOwnerAndID(ctx, tx, userID, taskID)
		if err != nil {
			return notFoundOr(err, "task")
		}
		out = updated
		return nil
	}); err != nil {
		return nil, err
	}
	return out, nil
}

func (ts *taskService) Delete(ctx context.Context, userID string, taskID uint) error {
	return ts.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := ts.taskRepo.GetByOwnerAndID(ctx, tx, userID, taskID); err != nil {
			return notFoundOr(err, "task")
		}
		return ts.taskRepo.Delete(ctx, tx, userID, taskID)
	})
}
