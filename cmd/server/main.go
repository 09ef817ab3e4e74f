package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/klasurapp/backend/internal/config"
	"github.com/klasurapp/backend/internal/database"
	"github.com/klasurapp/backend/internal/handler"
	"github.com/klasurapp/backend/internal/logger"
	"github.com/klasurapp/backend/internal/repository"
	"github.com/klasurapp/backend/internal/router"
	"github.com/klasurapp/backend/internal/service"
	"github.com/klasurapp/backend/internal/validator"
	"github.com/klasurapp/backend/internal/worker"
	"github.com/rs/zerolog"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting Klasur Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	moduleRepo := repository.NewModuleRepository(pool)
	taskRepo := repository.NewTaskRepository(pool, moduleRepo)
	answerRepo := repository.NewAnswerRepository(pool)
	examRepo := repository.NewExamRepository(pool, moduleRepo, taskRepo)
	userRepo := repository.NewUserRepository(pool)
	accountRepo := repository.NewAccountRepository(pool, userRepo, taskRepo)

	// ─── Initialize Services ──────────────────────────────────────────
	moduleService := service.NewModuleService(moduleRepo, log)
	taskService := service.NewTaskService(taskRepo, moduleRepo, log)
	answerService := service.NewAnswerService(answerRepo, taskRepo, log)
	examService := service.NewExamService(examRepo, moduleRepo, taskRepo, log)
	accountService := service.NewAccountService(accountRepo, taskRepo, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Module:  handler.NewModuleHandler(moduleService),
		Task:    handler.NewTaskHandler(taskService),
		Answer:  handler.NewAnswerHandler(answerService),
		Exam:    handler.NewExamHandler(examService),
		Account: handler.NewAccountHandler(accountService),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	gradingWorker := worker.NewGradingWorker(answerRepo, taskRepo, cfg.GradingInterval, log)
	go gradingWorker.Start(workerCtx)

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop the grading worker.
	workerCancel()

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
