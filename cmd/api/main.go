// @title Slide Quiz API
// @version 1.0
// @description Turns PDF, TXT and MD documents into slide decks and multiple-choice quizzes.
// @host localhost:8090
// @BasePath /api
// @schemes http https
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "slidequiz/cmd/api/docs"
	"slidequiz/internal/adapter"
	"slidequiz/internal/adapter/llm"
	"slidequiz/internal/cache"
	"slidequiz/internal/config"
	"slidequiz/internal/database"
	"slidequiz/internal/domain"
	"slidequiz/internal/extractor"
	"slidequiz/internal/handler"
	"slidequiz/internal/logger"
	"slidequiz/internal/middleware"
	"slidequiz/internal/render/pptx"
	"slidequiz/internal/render/report"
	"slidequiz/internal/repository"
	"slidequiz/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// Cache backs the model memo and the quiz sessions
	var cacheAdapter domain.Cache
	if cfg.Redis.Address != "" {
		redisClient, err := cache.NewRedisClient(context.Background(), cfg.Redis)
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		cacheAdapter = adapter.NewRedisCacheAdapter(redisClient)
		appLogger.Info("Using Redis cache", zap.String("address", cfg.Redis.Address))
	} else {
		cacheAdapter = adapter.NewMemoryCacheAdapter()
		appLogger.Info("Redis address not configured, using in-memory cache")
	}

	// Result history is optional
	var (
		db            *sqlx.DB
		resultRepo    domain.QuizResultRepository
		healthChecker handler.Pinger
	)
	if cfg.DB.Enabled() {
		db, err = database.NewSQLXOracleDB(cfg.GetDSN(), appLogger)
		if err != nil {
			appLogger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()
		resultRepo = repository.NewSQLXQuizResultRepository(db)
		healthChecker = db
	} else {
		appLogger.Info("Database not configured, quiz result history is disabled")
	}

	models, err := llm.NewModels(cfg.LLM, cfg.Generation)
	if err != nil {
		appLogger.Fatal("Failed to create LLM client", zap.Error(err))
	}
	appLogger.Info("LLM client initialized",
		zap.String("provider", cfg.LLM.Provider),
		zap.String("model", cfg.LLM.Model))

	requester := llm.NewStructuredContentRequester(models, cfg.Generation, cfg.LLM, cacheAdapter, appLogger)
	textExtractor := extractor.NewExtractor(appLogger)

	presentationService := service.NewPresentationService(textExtractor, requester, pptx.NewRenderer(), appLogger)
	quizService := service.NewQuizService(textExtractor, requester, cacheAdapter, resultRepo,
		report.NewGenerator(report.DefaultConfig()), cfg, appLogger)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
		BodyLimit:    cfg.Server.BodyLimitMB * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(recover.New())
	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
		MaxAge:       300,
	}))

	app.Get("/swagger/*", swagger.HandlerDefault)

	handler.RegisterRoutes(app.Group("/api"), handler.Handlers{
		Presentation: handler.NewPresentationHandler(presentationService),
		Quiz:         handler.NewQuizHandler(quizService),
		Health:       handler.NewHealthHandler(cacheAdapter, healthChecker),
	})

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
