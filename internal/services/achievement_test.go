package services

import (
	"context"
	"testing"
)

func TestAchievementUnlock(t *testing.T) {
	svc, db := newTestAchievementService(t)
	seedUser(t, db, "user_a", "a@example.com")
	seedAchievement(t, db, "first_task", 10)
	ctx := context.Background()

	unlocked, err := svc.Unlock(ctx, "user_a", "first_task")
	if err != nil {
		t.Fatalf("Unlock failed: %v", err)
	}
	if !unlocked.Unlocked {
		t.Error("Unlocked = false, want true")
	}
	if unlocked.Progress != 100 {
		t.Errorf("Progress = %d, want 100", unlocked.Progress)
	}
	if unlocked.UnlockedAt == nil {
		t.Error("UnlockedAt is nil, want timestamp")
	}

	if _, err := svc.Unlock(ctx, "user_a", "first_task"); !IsConflict(err) {
		t.Errorf("second Unlock = %v, want ConflictError", err)
	}
}

func TestAchievementUnlockUnknownCode(t *testing.T) {
	svc, db := newTestAchievementService(t)
	seedUser(t, db, "user_a", "a@example.com")

	if _, err := svc.Unlock(context.Background(), "user_a", "no_such_code"); !IsNotFound(err) {
		t.Errorf("Unlock unknown code = %v, want NotFoundError", err)
	}
}

func TestAchievementUpdateProgress(t *testing.T) {
	svc, db := newTestAchievementService(t)
	seedUser(t, db, "user_a", "a@example.com")
	seedAchievement(t, db, "focus_hours_25", 50)
	ctx := context.Background()

	record, err := svc.UpdateProgress(ctx, "user_a", "focus_hours_25", 40)
	if err != nil {
		t.Fatalf("UpdateProgress failed: %v", err)
	}
	if record.Progress != 40 {
		t.Errorf("Progress = %d, want 40", record.Progress)
	}
	if record.Unlocked {
		t.Error("Unlocked = true, want false at partial progress")
	}

	if _, err := svc.UpdateProgress(ctx, "user_a", "focus_hours_25", -5); err == nil {
		t.Error("negative progress accepted, want error")
	}

	// Values past the cap clamp to 100 and unlock in the same call.
	record, err = svc.UpdateProgress(ctx, "user_a", "focus_hours_25", 150)
	if err != nil {
		t.Fatalf("UpdateProgress(150) failed: %v", err)
	}
	if record.Progress != 100 {
		t.Errorf("Progress = %d, want 100", record.Progress)
	}
	if !record.Unlocked || record.UnlockedAt == nil {
		t.Errorf("Unlocked = %v, UnlockedAt = %v, want unlocked with timestamp", record.Unlocked, record.UnlockedAt)
	}

	if _, err := svc.UpdateProgress(ctx, "user_a", "focus_hours_25", 10); !IsConflict(err) {
		t.Errorf("UpdateProgress after unlock = %v, want ConflictError", err)
	}
}

func TestAchievementProgressCreatesRecord(t *testing.T) {
	svc, db := newTestAchievementService(t)
	seedUser(t, db, "user_a", "a@example.com")
	seedAchievement(t, db, "task_streak_10", 25)
	ctx := context.Background()

	record, err := svc.UpdateProgress(ctx, "user_a", "task_streak_10", 100)
	if err != nil {
		t.Fatalf("UpdateProgress failed: %v", err)
	}
	if !record.Unlocked {
		t.Error("first UpdateProgress at 100 should unlock")
	}
}

func TestAchievementListing(t *testing.T) {
	svc, db := newTestAchievementService(t)
	seedUser(t, db, "user_a", "a@example.com")
	seedAchievement(t, db, "first_task", 10)
	seedAchievement(t, db, "first_pomodoro", 10)
	seedAchievement(t, db, "space_decorator", 20)
	ctx := context.Background()

	if _, err := svc.Unlock(ctx, "user_a", "first_task"); err != nil {
		t.Fatalf("Unlock failed: %v", err)
	}
	if _, err := svc.UpdateProgress(ctx, "user_a", "first_pomodoro", 60); err != nil {
		t.Fatalf("UpdateProgress failed: %v", err)
	}

	all, err := svc.ListForUser(ctx, "user_a")
	if err != nil {
		t.Fatalf("ListForUser failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("ListForUser returned %d records, want 2", len(all))
	}
	for _, ua := range all {
		if ua.Achievement == nil || ua.Achievement.Code == "" {
			t.Error("Achievement not preloaded on user record")
		}
	}

	unlocked, err := svc.ListUnlocked(ctx, "user_a")
	if err != nil {
		t.Fatalf("ListUnlocked failed: %v", err)
	}
	if len(unlocked) != 1 || unlocked[0].Achievement == nil || unlocked[0].Achievement.Code != "first_task" {
		t.Errorf("ListUnlocked = %+v, want only first_task", unlocked)
	}

	inProgress, err := svc.ListInProgress(ctx, "user_a")
	if err != nil {
		t.Fatalf("ListInProgress failed: %v", err)
	}
	if len(inProgress) != 1 || inProgress[0].Achievement == nil || inProgress[0].Achievement.Code != "first_pomodoro" {
		t.Errorf("ListInProgress = %+v, want only first_pomodoro", inProgress)
	}
}

func TestAchievementStats(t *testing.T) {
	svc, db := newTestAchievementService(t)
	seedUser(t, db, "user_a", "a@example.com")
	ctx := context.Background()

	// Empty catalog divides to zero, not NaN.
	stats, err := svc.Stats(ctx, "user_a")
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.CompletionPercentage != 0 {
		t.Errorf("CompletionPercentage = %v, want 0 for empty catalog", stats.CompletionPercentage)
	}

	seedAchievement(t, db, "first_task", 10)
	seedAchievement(t, db, "focus_hours_25", 50)
	seedAchievement(t, db, "space_decorator", 20)
	seedAchievement(t, db, "task_streak_10", 25)

	if _, err := svc.Unlock(ctx, "user_a", "first_task"); err != nil {
		t.Fatalf("Unlock failed: %v", err)
	}
	if _, err := svc.Unlock(ctx, "user_a", "focus_hours_25"); err != nil {
		t.Fatalf("Unlock failed: %v", err)
	}
	// Partial progress contributes no points.
	if _, err := svc.UpdateProgress(ctx, "user_a", "space_decorator", 50); err != nil {
		t.Fatalf("UpdateProgress failed: %v", err)
	}

	stats, err = svc.Stats(ctx, "user_a")
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.TotalAchievements != 4 {
		t.Errorf("TotalAchievements = %d, want 4", stats.TotalAchievements)
	}
	if stats.UnlockedAchievements != 2 {
		t.Errorf("UnlockedAchievements = %d, want 2", stats.UnlockedAchievements)
	}
	if stats.TotalPoints != 60 {
		t.Errorf("TotalPoints = %d, want 60", stats.TotalPoints)
	}
	if stats.CompletionPercentage != 50 {
		t.Errorf("CompletionPercentage = %v, want 50", stats.CompletionPercentage)
	}
}
