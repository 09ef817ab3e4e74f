package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/klasurapp/backend/internal/config"
	"github.com/klasurapp/backend/internal/handler"
	"github.com/klasurapp/backend/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Module  *handler.ModuleHandler
	Task    *handler.TaskHandler
	Answer  *handler.AnswerHandler
	Exam    *handler.ExamHandler
	Account *handler.AccountHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(handlers *Handlers, cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")

	// ─── Modules ───────────────────────────────────────────────────────
	modules := api.Group("/modules")
	{
		modules.GET("", handlers.Module.GetAll)
		modules.POST("", handlers.Module.Create)
		modules.GET("/code/:code", handlers.Module.GetByCode)
		modules.GET("/:id", handlers.Module.GetByID)
		modules.PUT("/:id", handlers.Module.Update)
		modules.DELETE("/:id", handlers.Module.Delete)
		modules.GET("/:id/tasks", handlers.Task.GetByModule)
		modules.GET("/:id/exams", handlers.Exam.GetByModule)
	}

	// ─── Tasks ─────────────────────────────────────────────────────────
	tasks := api.Group("/tasks")
	{
		tasks.POST("", handlers.Task.Create)
		tasks.GET("/:id", handlers.Task.GetByID)
		tasks.PUT("/:id", handlers.Task.Update)
		tasks.DELETE("/:id", handlers.Task.Delete)
		tasks.GET("/:id/answers", handlers.Answer.GetByTask)
	}

	// ─── Answers ───────────────────────────────────────────────────────
	answers := api.Group("/answers")
	{
		answers.POST("", handlers.Answer.Submit)
		answers.GET("/:id", handlers.Answer.GetByID)
		answers.DELETE("/:id", handlers.Answer.Delete)
		answers.POST("/:id/grade", handlers.Answer.Grade)
		answers.GET("/:id/evaluation", handlers.Answer.Evaluate)
	}

	// ─── Users ─────────────────────────────────────────────────────────
	users := api.Group("/users")
	{
		users.GET("/:id/answers", handlers.Answer.GetByUser)
	}

	// ─── Exams ─────────────────────────────────────────────────────────
	exams := api.Group("/exams")
	{
		exams.GET("", handlers.Exam.GetAll)
		exams.POST("", handlers.Exam.Create)
		exams.GET("/:id", handlers.Exam.GetByID)
		exams.PUT("/:id", handlers.Exam.Update)
		exams.DELETE("/:id", handlers.Exam.Delete)
	}

	// ─── Accounts ──────────────────────────────────────────────────────
	accounts := api.Group("/accounts")
	{
		accounts.GET("", handlers.Account.GetAll)
		accounts.POST("", handlers.Account.Create)
		accounts.GET("/username/:username", handlers.Account.GetByUsername)
		accounts.GET("/:id", handlers.Account.GetByID)
		accounts.PUT("/:id", handlers.Account.Update)
		accounts.POST("/:id/login", handlers.Account.RecordLogin)
		accounts.DELETE("/:id", handlers.Account.Delete)
	}

	return router
}
