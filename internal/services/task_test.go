package services

import (
	"context"
	"testing"

	"github.com/vibespace/vibe-backend/internal/types"
)

func TestTaskCreateDefaults(t *testing.T) {
	svc, db := newTestTaskService(t)
	seedUser(t, db, "user_a", "a@example.com")
	ctx := context.Background()

	task, err := svc.Create(ctx, "user_a", TaskCreateInput{Title: "build the tower"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if task.UserID != "user_a" {
		t.Errorf("UserID = %q, want user_a", task.UserID)
	}
	if task.Status != types.TaskStatusPending {
		t.Errorf("Status = %q, want pending", task.Status)
	}
	if task.Priority != types.TaskPriorityMedium {
		t.Errorf("Priority = %q, want medium", task.Priority)
	}
	if task.Color != types.DefaultTaskColor {
		t.Errorf("Color = %q, want %q", task.Color, types.DefaultTaskColor)
	}
	if task.Size != 1.0 {
		t.Errorf("Size = %v, want 1.0", task.Size)
	}
	if task.CompletedAt != nil {
		t.Errorf("CompletedAt = %v, want nil", task.CompletedAt)
	}
}

func TestTaskGetOtherOwnerIsNotFound(t *testing.T) {
	svc, db := newTestTaskService(t)
	seedUser(t, db, "user_a", "a@example.com")
	seedUser(t, db, "user_b", "b@example.com")
	task := seedTask(t, db, "user_a", "mine")
	ctx := context.Background()

	if _, err := svc.Get(ctx, "user_a", task.ID); err != nil {
		t.Fatalf("owner Get failed: %v", err)
	}

	_, err := svc.Get(ctx, "user_b", task.ID)
	if !IsNotFound(err) {
		t.Fatalf("other owner Get = %v, want NotFoundError", err)
	}

	// Same for update and delete.
	if _, err := svc.Update(ctx, "user_b", task.ID, TaskUpdateInput{}); !IsNotFound(err) {
		t.Errorf("other owner Update = %v, want NotFoundError", err)
	}
	if err := svc.Delete(ctx, "user_b", task.ID); !IsNotFound(err) {
		t.Errorf("other owner Delete = %v, want NotFoundError", err)
	}
}

func TestTaskPartialUpdateKeepsOtherFields(t *testing.T) {
	svc, db := newTestTaskService(t)
	seedUser(t, db, "user_a", "a@example.com")
	ctx := context.Background()

	priority := types.TaskPriorityUrgent
	color := "#FF0000"
	created, err := svc.Create(ctx, "user_a", TaskCreateInput{
		Title:       "paint the fence",
		Description: "white, two coats",
		Priority:    &priority,
		Color:       &color,
		PositionX:   4,
		PositionY:   5,
		PositionZ:   6,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	status := types.TaskStatusInProgress
	updated, err := svc.Update(ctx, "user_a", created.ID, TaskUpdateInput{Status: &status})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if updated.Status != types.TaskStatusInProgress {
		t.Errorf("Status = %q, want in_progress", updated.Status)
	}
	if updated.Title != "paint the fence" {
		t.Errorf("Title = %q, want unchanged", updated.Title)
	}
	if updated.Description != "white, two coats" {
		t.Errorf("Description = %q, want unchanged", updated.Description)
	}
	if updated.Priority != types.TaskPriorityUrgent {
		t.Errorf("Priority = %q, want unchanged urgent", updated.Priority)
	}
	if updated.Color != "#FF0000" {
		t.Errorf("Color = %q, want unchanged", updated.Color)
	}
	if updated.PositionX != 4 || updated.PositionY != 5 || updated.PositionZ != 6 {
		t.Errorf("position = (%v,%v,%v), want unchanged (4,5,6)", updated.PositionX, updated.PositionY, updated.PositionZ)
	}
}

func TestTaskCompletedAtTransitions(t *testing.T) {
	svc, db := newTestTaskService(t)
	seedUser(t, db, "user_a", "a@example.com")
	task := seedTask(t, db, "user_a", "finish me")
	ctx := context.Background()

	completed := types.TaskStatusCompleted
	updated, err := svc.Update(ctx, "user_a", task.ID, TaskUpdateInput{Status: &completed})
	if err != nil {
		t.Fatalf("Update to completed failed: %v", err)
	}
	if updated.CompletedAt == nil {
		t.Fatal("CompletedAt = nil after completing, want timestamp")
	}

	// Completing an already completed task keeps the original timestamp.
	firstCompletedAt := *updated.CompletedAt
	again, err := svc.Update(ctx, "user_a", task.ID, TaskUpdateInput{Status: &completed})
	if err != nil {
		t.Fatalf("second Update failed: %v", err)
	}
	if again.CompletedAt == nil || !again.CompletedAt.Equal(firstCompletedAt) {
		t.Errorf("CompletedAt changed on re-complete: %v != %v", again.CompletedAt, firstCompletedAt)
	}

	pending := types.TaskStatusPending
	reopened, err := svc.Update(ctx, "user_a", task.ID, TaskUpdateInput{Status: &pending})
	if err != nil {
		t.Fatalf("Update to pending failed: %v", err)
	}
	if reopened.CompletedAt != nil {
		t.Errorf("CompletedAt = %v after reopening, want nil", reopened.CompletedAt)
	}
}

func TestTaskUpdateRejectsInvalidEnums(t *testing.T) {
	svc, db := newTestTaskService(t)
	seedUser(t, db, "user_a", "a@example.com")
	task := seedTask(t, db, "user_a", "strict")
	ctx := context.Background()

	badStatus := types.TaskStatus("done")
	if _, err := svc.Update(ctx, "user_a", task.ID, TaskUpdateInput{Status: &badStatus}); err == nil {
		t.Error("Update with invalid status succeeded, want error")
	}

	badPriority := types.TaskPriority("critical")
	if _, err := svc.Update(ctx, "user_a", task.ID, TaskUpdateInput{Priority: &badPriority}); err == nil {
		t.Error("Update with invalid priority succeeded, want error")
	}
}

func TestTaskListScopedToOwner(t *testing.T) {
	svc, db := newTestTaskService(t)
	seedUser(t, db, "user_a", "a@example.com")
	seedUser(t, db, "user_b", "b@example.com")
	seedTask(t, db, "user_a", "a1")
	seedTask(t, db, "user_a", "a2")
	seedTask(t, db, "user_b", "b1")
	ctx := context.Background()

	tasks, err := svc.List(ctx, "user_a", 0, 100)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("List returned %d tasks, want 2", len(tasks))
	}
	for _, task := range tasks {
		if task.UserID != "user_a" {
			t.Errorf("List leaked task owned by %q", task.UserID)
		}
	}

	page, err := svc.List(ctx, "user_a", 1, 1)
	if err != nil {
		t.Fatalf("paginated List failed: %v", err)
	}
	if len(page) != 1 || page[0].Title != "a2" {
		t.Errorf("paginated List = %+v, want single task a2", page)
	}
}
