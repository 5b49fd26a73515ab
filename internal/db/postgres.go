package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vibespace/vibe-backend/internal/logger"
	"github.com/vibespace/vibe-backend/internal/types"
	"github.com/vibespace/vibe-backend/internal/utils"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	log.Info("Loading environment variables...")
	postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
	postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
	postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
	postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
	postgresName := utils.GetEnv("POSTGRES_NAME", "vibe", log)

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

	log.Info("Connecting to Postgres...")
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		log.Error("Failed to connect to Postgres", "error", err)
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}

	return &PostgresService{db: db, log: serviceLog}, nil
}

func (s *PostgresService) DB() *gorm.DB {
	return s.db
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	err := s.db.AutoMigrate(
		&types.User{},
		&types.Task{},
		&types.PomodoroSession{},
		&types.Achievement{},
		&types.UserAchievement{},
		&types.SpaceConfiguration{},
	)
	if err != nil {
		s.log.Error("Auto migration failed for postgres tables", "error", err)
		return err
	}

	s.log.Info("Configuring foreign key relationships for postgres tables...")
	constraints := []struct {
		name string
		sql  string
	}{
		{"fk_task_user_id", `
			ALTER TABLE "task"
			ADD CONSTRAINT "fk_task_user_id"
			FOREIGN KEY ("user_id") REFERENCES "user"("id")
			ON DELETE CASCADE
		`},
		{"fk_pomodoro_session_user_id", `
			ALTER TABLE "pomodoro_session"
			ADD CONSTRAINT "fk_pomodoro_session_user_id"
			FOREIGN KEY ("user_id") REFERENCES "user"("id")
			ON DELETE CASCADE
		`},
		{"fk_user_achievement_user_id", `
			ALTER TABLE "user_achievement"
			ADD CONSTRAINT "fk_user_achievement_user_id"
			FOREIGN KEY ("user_id") REFERENCES "user"("id")
			ON DELETE CASCADE
		`},
		{"fk_user_achievement_achievement_id", `
			ALTER TABLE "user_achievement"
			ADD CONSTRAINT "fk_user_achievement_achievement_id"
			FOREIGN KEY ("achievement_id") REFERENCES "achievement"("id")
			ON DELETE CASCADE
		`},
		{"fk_space_configuration_user_id", `
			ALTER TABLE "space_configuration"
			ADD CONSTRAINT "fk_space_configuration_user_id"
			FOREIGN KEY ("user_id") REFERENCES "user"("id")
			ON DELETE CASCADE
		`},
	}
	for _, c := range constraints {
		var exists bool
		if err := s.db.Raw(
			`SELECT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = ?)`, c.name,
		).Scan(&exists).Error; err != nil {
			return fmt.Errorf("failed to check constraint %s: %w", c.name, err)
		}
		if exists {
			continue
		}
		if err := s.db.Exec(c.sql).Error; err != nil {
			return fmt.Errorf("failed to add %s: %w", c.name, err)
		}
	}

	// One active space per owner, enforced where read-then-write logic can't
	// be trusted under concurrency.
	if err := s.db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS "uidx_space_configuration_active_owner"
		ON "space_configuration" ("user_id")
		WHERE "is_active"
	`).Error; err != nil {
		return fmt.Errorf("failed to add active space index: %w", err)
	}

	return nil
}

// SeedAchievements inserts the default catalog. Rows are keyed by code and
// existing rows are left untouched, so reruns are safe.
func (s *PostgresService) SeedAchievements() error {
	s.log.Info("Seeding achievement catalog...")
	catalog := DefaultAchievements()
	if err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoNothing: true,
	}).Create(&catalog).Error; err != nil {
		s.log.Error("Achievement seed failed", "error", err)
		return fmt.Errorf("failed to seed achievements: %w", err)
	}
	return nil
}
