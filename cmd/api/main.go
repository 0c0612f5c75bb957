package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/art-lint/artlint-api/internal/codec"
	"github.com/art-lint/artlint-api/internal/config"
	"github.com/art-lint/artlint-api/internal/content"
	"github.com/art-lint/artlint-api/internal/database"
	"github.com/art-lint/artlint-api/internal/handler"
	"github.com/art-lint/artlint-api/internal/middleware"
	"github.com/art-lint/artlint-api/internal/models"
	"github.com/art-lint/artlint-api/internal/repository"
	"github.com/art-lint/artlint-api/internal/router"
	"github.com/art-lint/artlint-api/internal/service"
	"github.com/art-lint/artlint-api/pkg/ai"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.Connect(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.SubmissionRecord{}); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	var cache *redis.Client
	if cfg.RedisURL != "" {
		cache, err = database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer cache.Close()
	}

	provider, err := ai.NewProvider(ai.FactoryConfig{
		Provider:         cfg.AIProvider,
		GeminiAPIKey:     cfg.GeminiAPIKey,
		GeminiTextModel:  cfg.GeminiTextModel,
		GeminiImageModel: cfg.GeminiImageModel,
		OpenAIAPIKey:     cfg.OpenAIAPIKey,
		OpenAIModel:      cfg.OpenAIModel,
		Logger:           logger,
	})
	if err != nil {
		log.Fatalf("failed to create inference provider: %v", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	imageCodec := codec.New(cfg.MaxUploadMB, logger)

	historyRepo := repository.NewHistoryRepository(db)
	historyService := service.NewHistoryService(historyRepo, cache, cfg.ProgressCacheTTL, logger)
	historyService.Load(context.Background())

	lessonService := service.NewLessonService(content.Lessons(), historyService, logger)
	analysisService := service.NewAnalysisService(provider, cfg.AITimeout, logger)

	analyzeHandler := handler.NewAnalyzeHandler(imageCodec, analysisService, historyService, lessonService, validate, logger)
	lessonHandler := handler.NewLessonHandler(lessonService, logger)
	historyHandler := handler.NewHistoryHandler(historyService, lessonService, validate, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
		BodyLimit:    (cfg.MaxUploadMB + 1) * 1024 * 1024,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AnalyzeHandler: analyzeHandler,
		LessonHandler:  lessonHandler,
		HistoryHandler: historyHandler,
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
