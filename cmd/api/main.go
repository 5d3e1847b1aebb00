package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/justsurfingit/jobhunt/internal/auth"
	"github.com/justsurfingit/jobhunt/internal/config"
	"github.com/justsurfingit/jobhunt/internal/database"
	"github.com/justsurfingit/jobhunt/internal/handlers"
	"github.com/justsurfingit/jobhunt/internal/logging"
	"github.com/justsurfingit/jobhunt/internal/services"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// A missing .env is fine, the environment may already be populated.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg, err := config.New()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	lvl, err := logging.ParseLevel(cfg.Service.LogLevel)
	if err != nil {
		log.Fatalf("invalid log level: %v", err)
	}
	logger := logging.InitLog(lvl)
	defer func() { _ = logger.Sync() }()
	undo := zap.ReplaceGlobals(logger)
	defer undo()

	if lvl.Level() > zap.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		zap.S().Fatalw("failed to connect to database", "type", cfg.Database.Type, "error", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			zap.S().Errorw("failed to close database", "error", err)
		}
	}()

	llmService, err := services.NewLLMService(ctx, cfg.LLM)
	if err != nil {
		zap.S().Fatalw("failed to initialize llm client", "error", err)
	}
	userService := services.NewUserService(db)
	jobService := services.NewJobService(db, llmService)
	interviewService := services.NewInterviewService(db, jobService, llmService)
	calendarService := services.NewCalendarService(db, jobService)

	router := handlers.NewRouter(cfg.Service, handlers.Services{
		Users:      userService,
		Jobs:       jobService,
		Interviews: interviewService,
		Calendar:   calendarService,
		LLM:        llmService,
		Tokens:     auth.NewTokenManager(cfg.Auth),
	})

	srv := &http.Server{
		Addr:              cfg.Service.Address,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zap.S().Infow("server starting", "address", cfg.Service.Address, "database", cfg.Database.Type)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.S().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	zap.S().Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.S().Errorw("graceful shutdown failed", "error", err)
	}
}
