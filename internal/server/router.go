package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/vibespace/vibe-backend/internal/handlers"
	"github.com/vibespace/vibe-backend/internal/middleware"
)

type RouterConfig struct {
	AllowedOrigins []string
	APIPrefix      string

	AuthMiddleware     *middleware.AuthMiddleware
	UserHandler        *handlers.UserHandler
	TaskHandler        *handlers.TaskHandler
	PomodoroHandler    *handlers.PomodoroHandler
	AchievementHandler *handlers.AchievementHandler
	SpaceHandler       *handlers.SpaceHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)

	// ===============
	// || Protected ||
	// ===============
	api := router.Group(cfg.APIPrefix)
	api.Use(cfg.AuthMiddleware.RequireAuth())

	// Users
	api.GET("/users/me", cfg.UserHandler.GetMe)
	api.PATCH("/users/me", cfg.UserHandler.UpdateMe)

	// Tasks
	api.GET("/tasks", cfg.TaskHandler.List)
	api.POST("/tasks", cfg.TaskHandler.Create)
	api.GET("/tasks/:id", cfg.TaskHandler.Get)
	api.PATCH("/tasks/:id", cfg.TaskHandler.Update)
	api.DELETE("/tasks/:id", cfg.TaskHandler.Delete)

	// Pomodoro sessions
	api.POST("/pomodoros", cfg.PomodoroHandler.Create)
	api.GET("/pomodoros", cfg.PomodoroHandler.List)
	api.GET("/pomodoros/active", cfg.PomodoroHandler.GetActive)
	api.GET("/pomodoros/stats", cfg.PomodoroHandler.Stats)
	api.GET("/pomodoros/:id", cfg.PomodoroHandler.Get)
	api.PATCH("/pomodoros/:id", cfg.PomodoroHandler.Update)
	api.DELETE("/pomodoros/:id", cfg.PomodoroHandler.Delete)

	// Achievements
	api.GET("/achievements", cfg.AchievementHandler.ListAll)
	api.GET("/achievements/user", cfg.AchievementHandler.ListForUser)
	api.GET("/achievements/user/unlocked", cfg.AchievementHandler.ListUnlocked)
	api.GET("/achievements/user/progress", cfg.AchievementHandler.ListInProgress)
	api.POST("/achievements/unlock", cfg.AchievementHandler.Unlock)
	api.PATCH("/achievements/progress/:code", cfg.AchievementHandler.UpdateProgress)
	api.GET("/achievements/stats", cfg.AchievementHandler.Stats)

	// Spaces
	api.POST("/spaces", cfg.SpaceHandler.Create)
	api.GET("/spaces", cfg.SpaceHandler.List)
	api.GET("/spaces/active", cfg.SpaceHandler.GetActive)
	api.GET("/spaces/:id", cfg.SpaceHandler.Get)
	api.PATCH("/spaces/:id", cfg.SpaceHandler.Update)
	api.DELETE("/spaces/:id", cfg.SpaceHandler.Delete)
	api.POST("/spaces/:id/activate", cfg.SpaceHandler.Activate)

	return router
}
