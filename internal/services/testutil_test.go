package services

import (
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/vibespace/vibe-backend/internal/logger"
	"github.com/vibespace/vibe-backend/internal/repos"
	"github.com/vibespace/vibe-backend/internal/types"
)

func testLogger() *logger.Logger {
	return &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	// A second pool connection would see a different in-memory database.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&types.User{},
		&types.Task{},
		&types.PomodoroSession{},
		&types.Achievement{},
		&types.UserAchievement{},
		&types.SpaceConfiguration{},
	); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	// Same partial unique index production migration creates, so the tests
	// run against the real active-space constraint.
	if err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS "uidx_space_configuration_active_owner"
		ON "space_configuration" ("user_id")
		WHERE "is_active"
	`).Error; err != nil {
		t.Fatalf("failed to create active space index: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, id, email string) {
	t.Helper()
	if err := db.Create(&types.User{ID: id, Email: email, Species: "human"}).Error; err != nil {
		t.Fatalf("failed to seed user %s: %v", id, err)
	}
}

func seedTask(t *testing.T, db *gorm.DB, userID, title string) *types.Task {
	t.Helper()
	task := &types.Task{
		UserID:   userID,
		Title:    title,
		Status:   types.TaskStatusPending,
		Priority: types.TaskPriorityMedium,
		Color:    types.DefaultTaskColor,
		Size:     1.0,
	}
	if err := db.Create(task).Error; err != nil {
		t.Fatalf("failed to seed task: %v", err)
	}
	return task
}

func seedAchievement(t *testing.T, db *gorm.DB, code string, points int) *types.Achievement {
	t.Helper()
	achievement := &types.Achievement{
		Code:   code,
		Name:   code,
		Points: points,
	}
	if err := db.Create(achievement).Error; err != nil {
		t.Fatalf("failed to seed achievement: %v", err)
	}
	return achievement
}

func seedCompletedSession(t *testing.T, db *gorm.DB, userID string, createdAt time.Time) *types.PomodoroSession {
	t.Helper()
	session := &types.PomodoroSession{
		UserID:      userID,
		Phase:       types.PomodoroPhaseWork,
		Status:      types.PomodoroStatusCompleted,
		Duration:    25,
		ElapsedTime: 25,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
	if err := db.Create(session).Error; err != nil {
		t.Fatalf("failed to seed session: %v", err)
	}
	return session
}

func newTestTaskService(t *testing.T) (TaskService, *gorm.DB) {
	t.Helper()
	db := testDB(t)
	log := testLogger()
	return NewTaskService(db, log, repos.NewTaskRepo(db, log)), db
}

func newTestPomodoroService(t *testing.T, now time.Time) (PomodoroService, *gorm.DB) {
	t.Helper()
	db := testDB(t)
	log := testLogger()
	svc := NewPomodoroService(db, log, repos.NewPomodoroSessionRepo(db, log), repos.NewTaskRepo(db, log))
	if !now.IsZero() {
		svc.(*pomodoroService).now = func() time.Time { return now }
	}
	return svc, db
}

func newTestAchievementService(t *testing.T) (AchievementService, *gorm.DB) {
	t.Helper()
	db := testDB(t)
	log := testLogger()
	return NewAchievementService(db, log, repos.NewAchievementRepo(db, log), repos.NewUserAchievementRepo(db, log)), db
}

func newTestSpaceService(t *testing.T) (SpaceService, *gorm.DB) {
	t.Helper()
	db := testDB(t)
	log := testLogger()
	return NewSpaceService(db, log, repos.NewSpaceConfigurationRepo(db, log)), db
}
