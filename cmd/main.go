package main

import (
	"fmt"
	"os"

	"github.com/vibespace/vibe-backend/internal/db"
	"github.com/vibespace/vibe-backend/internal/handlers"
	"github.com/vibespace/vibe-backend/internal/logger"
	"github.com/vibespace/vibe-backend/internal/middleware"
	"github.com/vibespace/vibe-backend/internal/repos"
	"github.com/vibespace/vibe-backend/internal/server"
	"github.com/vibespace/vibe-backend/internal/services"
	"github.com/vibespace/vibe-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	jwksURL := utils.GetEnv("CLERK_JWKS_URL", services.DefaultClerkJWKSURL, log)
	apiPrefix := utils.GetEnv("API_PREFIX", "/api/v1", log)
	allowedOrigins := utils.GetEnvAsSlice("CORS_ORIGINS", []string{"http://localhost:3000"}, log)

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Warn("Postgres auto migration failed", "error", err)
	}
	if err = postgresService.SeedAchievements(); err != nil {
		log.Warn("Achievement seed failed", "error", err)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up repos from main...")
	userRepo := repos.NewUserRepo(thePG, log)
	taskRepo := repos.NewTaskRepo(thePG, log)
	pomodoroRepo := repos.NewPomodoroSessionRepo(thePG, log)
	achievementRepo := repos.NewAchievementRepo(thePG, log)
	userAchievementRepo := repos.NewUserAchievementRepo(thePG, log)
	spaceRepo := repos.NewSpaceConfigurationRepo(thePG, log)

	// Services
	log.Info("Setting up services from main...")
	clerkVerifier := services.NewClerkVerifier(nil, jwksURL)
	userService := services.NewUserService(thePG, log, userRepo)
	taskService := services.NewTaskService(thePG, log, taskRepo)
	pomodoroService := services.NewPomodoroService(thePG, log, pomodoroRepo, taskRepo)
	achievementService := services.NewAchievementService(thePG, log, achievementRepo, userAchievementRepo)
	spaceService := services.NewSpaceService(thePG, log, spaceRepo)

	// Handlers
	log.Info("Setting up handlers from main...")
	userHandler := handlers.NewUserHandler(userService)
	taskHandler := handlers.NewTaskHandler(taskService)
	pomodoroHandler := handlers.NewPomodoroHandler(pomodoroService)
	achievementHandler := handlers.NewAchievementHandler(achievementService)
	spaceHandler := handlers.NewSpaceHandler(spaceService)

	// Middleware
	log.Info("Setting up middleware from main...")
	authMiddleware := middleware.NewAuthMiddleware(log, clerkVerifier, userService)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		AllowedOrigins:     allowedOrigins,
		APIPrefix:          apiPrefix,
		AuthMiddleware:     authMiddleware,
		UserHandler:        userHandler,
		TaskHandler:        taskHandler,
		PomodoroHandler:    pomodoroHandler,
		AchievementHandler: achievementHandler,
		SpaceHandler:       spaceHandler,
	})

	port := utils.GetEnv("PORT", "8080", log)
	fmt.Printf("Server listening on :%s\n", port)
	if err := router.Run(":" + port); err != nil {
		log.Error("Server failed", "error", err)
	}
}
