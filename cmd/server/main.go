package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"speechcoach/internal/audio"
	"speechcoach/internal/config"
	"speechcoach/internal/database"
	"speechcoach/internal/handlers"
	"speechcoach/internal/repository"
	"speechcoach/internal/scheduler"
	"speechcoach/internal/security"
	"speechcoach/internal/service"
	"speechcoach/internal/wordbank"

	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg := config.Load()

	// Initialize database (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}
	defer db.Close()
	logger.Info("database connected", zap.String("type", cfg.DatabaseType))

	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}
	logger.Info("migrations applied")

	// Repositories
	userRepo := repository.NewUserRepository(db)
	exerciseRepo := repository.NewExerciseRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	planRepo := repository.NewWeeklyPlanRepository(db)
	bodyRepo := repository.NewBodyExerciseRepository(db)
	aiRepo := repository.NewAIExerciseRepository(db)
	fluencyRepo := repository.NewFluencyRepository(db)
	scoreRepo := repository.NewGameScoreRepository(db)
	completedRepo := repository.NewCompletedExerciseRepository(db)
	codeRepo := repository.NewRedeemCodeRepository(db)

	// Seed the body exercise catalog on first boot
	if err := service.NewSeedService(bodyRepo, logger).Run(); err != nil {
		logger.Warn("failed to seed body exercise catalog", zap.Error(err))
	}

	// Services
	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.SESFromEmail,
		cfg.SESFromName, cfg.AppBaseURL, cfg.EmailDebug, logger)
	if err != nil {
		logger.Fatal("failed to initialize email service", zap.Error(err))
	}

	tokens := security.NewTokenIssuer(cfg.JWTSecret, cfg.TokenDuration)
	authService := service.NewAuthService(userRepo, tokens, emailService, logger)
	userService := service.NewUserService(userRepo, progressRepo, exerciseRepo, logger)
	progressService := service.NewProgressService(progressRepo, logger)
	planService := service.NewWeeklyPlanService(planRepo, progressRepo, bodyRepo, logger)
	generatorService := service.NewGeneratorService(aiRepo, fluencyRepo, bodyRepo, wordbank.Default(), logger)

	var analyzer service.Analyzer
	if cfg.AnalyzerURL != "" {
		analyzer = service.NewRemoteAnalyzer(cfg.AnalyzerURL, cfg.AnalyzerTimeout)
		logger.Info("remote analyzer configured", zap.String("url", cfg.AnalyzerURL))
	}
	analysisService := service.NewAnalysisService(exerciseRepo, userService, planService, analyzer, logger)

	ttsService := audio.NewTTSService(cfg.AudioDir, logger)
	gameService := service.NewGameScoreService(scoreRepo, userRepo, logger)
	completedService := service.NewCompletedExerciseService(completedRepo, userRepo, logger)
	redeemService := service.NewRedeemCodeService(codeRepo, logger)

	// Handlers
	limiter := security.NewRateLimiter(10, time.Minute)
	middleware := handlers.NewMiddleware(authService, limiter, cfg.AdminKey, logger)

	mux := http.NewServeMux()
	handlers.NewAuthHandler(authService, logger).Register(mux, middleware)
	handlers.NewUserHandler(userService, progressService, logger).Register(mux, middleware)
	handlers.NewProgressHandler(progressService, userService, logger).Register(mux, middleware)
	handlers.NewWeeklyPlanHandler(planService, userService, logger).Register(mux, middleware)
	handlers.NewAIExerciseHandler(generatorService, userService, logger).Register(mux, middleware)
	handlers.NewSpeechHandler(analysisService, userService, ttsService, cfg.UploadMaxSize, logger).Register(mux, middleware)
	handlers.NewGameHandler(gameService, logger).Register(mux, middleware)
	handlers.NewCompletedHandler(completedService, logger).Register(mux, middleware)
	handlers.NewRedeemHandler(redeemService, logger).Register(mux, middleware)

	handler := handlers.Logging(logger)(handlers.CORS(mux))

	// Recurring jobs
	var jobs *scheduler.Scheduler
	if cfg.SchedulerEnabled {
		jobs = scheduler.New(planService, userService, emailService, logger)
		jobs.Start()
	}

	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server shutting down")
	if jobs != nil {
		jobs.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}
}
