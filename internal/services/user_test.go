package services

import (
	"context"
	"testing"

	"github.com/vibespace/vibe-backend/internal/repos"
)

func newTestUserService(t *testing.T) UserService {
	t.Helper()
	db := testDB(t)
	log := testLogger()
	return NewUserService(db, log, repos.NewUserRepo(db, log))
}

func TestEnsureUserIsIdempotent(t *testing.T) {
	svc := newTestUserService(t)
	ctx := context.Background()
	identity := &Identity{Sub: "user_abc", Email: "a@example.com", Fullname: "Test User"}

	if err := svc.EnsureUser(ctx, identity); err != nil {
		t.Fatalf("EnsureUser failed: %v", err)
	}
	if err := svc.EnsureUser(ctx, identity); err != nil {
		t.Fatalf("repeated EnsureUser failed: %v", err)
	}

	user, err := svc.GetMe(ctx, "user_abc")
	if err != nil {
		t.Fatalf("GetMe failed: %v", err)
	}
	if user.Email != "a@example.com" {
		t.Errorf("Email = %q, want a@example.com", user.Email)
	}
	if user.Fullname != "Test User" {
		t.Errorf("Fullname = %q, want Test User", user.Fullname)
	}
	if user.Species != "human" {
		t.Errorf("Species = %q, want human", user.Species)
	}
}

func TestEnsureUserKeepsExistingProfile(t *testing.T) {
	svc := newTestUserService(t)
	ctx := context.Background()

	if err := svc.EnsureUser(ctx, &Identity{Sub: "user_abc", Email: "a@example.com"}); err != nil {
		t.Fatalf("EnsureUser failed: %v", err)
	}
	name := "Custom Name"
	if _, err := svc.UpdateMe(ctx, "user_abc", UserUpdateInput{Fullname: &name}); err != nil {
		t.Fatalf("UpdateMe failed: %v", err)
	}

	// A later login with different claims must not clobber the profile.
	if err := svc.EnsureUser(ctx, &Identity{Sub: "user_abc", Email: "a@example.com", Fullname: "Stale Claim"}); err != nil {
		t.Fatalf("EnsureUser failed: %v", err)
	}

	user, err := svc.GetMe(ctx, "user_abc")
	if err != nil {
		t.Fatalf("GetMe failed: %v", err)
	}
	if user.Fullname != "Custom Name" {
		t.Errorf("Fullname = %q, want Custom Name", user.Fullname)
	}
}

func TestGetMeUnknownUser(t *testing.T) {
	svc := newTestUserService(t)

	if _, err := svc.GetMe(context.Background(), "user_missing"); !IsNotFound(err) {
		t.Errorf("GetMe = %v, want NotFoundError", err)
	}
}

func TestUpdateMePartial(t *testing.T) {
	svc := newTestUserService(t)
	ctx := context.Background()

	if err := svc.EnsureUser(ctx, &Identity{Sub: "user_abc", Email: "a@example.com", Fullname: "Test User"}); err != nil {
		t.Fatalf("EnsureUser failed: %v", err)
	}

	species := "robot"
	updated, err := svc.UpdateMe(ctx, "user_abc", UserUpdateInput{
		Species:      &species,
		AvatarConfig: map[string]any{"color": "teal"},
	})
	if err != nil {
		t.Fatalf("UpdateMe failed: %v", err)
	}
	if updated.Species != "robot" {
		t.Errorf("Species = %q, want robot", updated.Species)
	}
	if updated.AvatarConfig["color"] != "teal" {
		t.Errorf("AvatarConfig = %v, want color=teal", updated.AvatarConfig)
	}
	if updated.Fullname != "Test User" {
		t.Errorf("Fullname = %q, want unchanged Test User", updated.Fullname)
	}
	if updated.Email != "a@example.com" {
		t.Errorf("Email = %q, want unchanged", updated.Email)
	}
}
