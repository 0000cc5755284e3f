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

	"job-tracker-backend/config"
	_ "job-tracker-backend/docs" // Important for Swagger
	v1 "job-tracker-backend/internal/delivery/http/v1"
	"job-tracker-backend/internal/domain"
	"job-tracker-backend/internal/repository/postgres"
	"job-tracker-backend/internal/usecase"
	"job-tracker-backend/pkg/ai"
	"job-tracker-backend/pkg/auth"
	"job-tracker-backend/pkg/database"
	"job-tracker-backend/pkg/logger"
	"job-tracker-backend/pkg/pdf"
	"job-tracker-backend/pkg/validation"

	"go.uber.org/zap"
)

// @title           Job Tracker API
// @version         1.0
// @description     Track jobs, resumes, applications and cover letters, with AI feedback on cover letters.
// @host            localhost:8080
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.LogLevel)
	defer logger.Sync()
	logger.Log.Info("Starting job tracker backend", zap.String("port", cfg.Port))

	// 3. Setup Database
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	dbPool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
	cancel()
	if err != nil {
		logger.Log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer dbPool.Close()

	db, err := database.NewGorm(dbPool)
	if err != nil {
		logger.Log.Fatal("Failed to open gorm", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Log.Fatal("Failed to get sql.DB", zap.Error(err))
	}

	if cfg.DBAutoMigrate {
		if err := postgres.AutoMigrate(db); err != nil {
			logger.Log.Fatal("Failed to migrate schema", zap.Error(err))
		}
		logger.Log.Info("Schema migrated")
	}

	// 4. Setup Repositories
	userRepo := postgres.NewUserRepository(db)
	jobRepo := postgres.NewJobRepository(db)
	resumeRepo := postgres.NewResumeRepository(db)
	applicationRepo := postgres.NewApplicationRepository(db)
	coverLetterRepo := postgres.NewCoverLetterRepository(db)
	tx := postgres.NewTransactor(db)

	// 5. Setup AI feedback (optional)
	var generator domain.FeedbackGenerator
	if cfg.OpenAIAPIKey != "" {
		g, err := ai.NewOpenAIGenerator(cfg.OpenAIAPIKey, cfg.OpenAIModel)
		if err != nil {
			logger.Log.Fatal("Failed to create AI client", zap.Error(err))
		}
		generator = g
	} else {
		logger.Log.Warn("OPENAI_API_KEY not set - AI feedback will be unavailable")
	}

	// 6. Setup UseCases
	validate := validation.New()
	userUC := usecase.NewUserUsecase(userRepo, tx, auth.NewBcryptHasher(), validate)
	jobUC := usecase.NewJobUsecase(jobRepo, tx, validate)
	resumeUC := usecase.NewResumeUsecase(resumeRepo, tx, validate)
	applicationUC := usecase.NewApplicationUsecase(applicationRepo, jobRepo, resumeRepo, tx, validate)
	coverLetterUC := usecase.NewCoverLetterUsecase(coverLetterRepo, applicationRepo, tx, validate)
	feedbackUC := usecase.NewFeedbackUsecase(generator, jobRepo, resumeRepo, coverLetterRepo)
	healthUC := usecase.NewHealthUsecase(sqlDB)

	// 7. Setup Token Service
	tokens, err := auth.NewTokenService(cfg.JWTSecret, cfg.AccessTTL)
	if err != nil {
		logger.Log.Fatal("Failed to create token service", zap.Error(err))
	}

	// 8. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		UserUC:        userUC,
		JobUC:         jobUC,
		ResumeUC:      resumeUC,
		ApplicationUC: applicationUC,
		CoverLetterUC: coverLetterUC,
		FeedbackUC:    feedbackUC,
		HealthUC:      healthUC,
		Tokens:        tokens,
		Extractor:     pdf.NewExtractor(),
		Config:        cfg,
	})

	// 9. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("Listen failed", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Log.Info("Server exiting")
}
