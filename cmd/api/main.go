package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/learnify/backend/internal/api/handlers"
	"github.com/learnify/backend/internal/cache/redis"
	"github.com/learnify/backend/internal/catalog"
	"github.com/learnify/backend/internal/metrics"
	"github.com/learnify/backend/internal/middleware/ratelimit"
	"github.com/learnify/backend/internal/middleware/security"
	"github.com/learnify/backend/internal/middleware/validation"
	"github.com/learnify/backend/internal/recommend"
	"github.com/learnify/backend/internal/search/web"
	"github.com/learnify/backend/internal/search/youtube"
	"github.com/learnify/backend/internal/sentiment"
	"github.com/learnify/backend/internal/storage/sqlite"
	"github.com/learnify/backend/pkg/config"
	appLogger "github.com/learnify/backend/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	err = appLogger.Init(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.OutputPath)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer appLogger.Sync()

	appLogger.Info("Starting Learnify API Server")

	metrics.Init()

	sqliteClient, err := sqlite.NewClient(cfg.SQLite.Path)
	if err != nil {
		appLogger.Fatal("Failed to create SQLite client", zap.Error(err))
	}
	defer sqliteClient.Close()

	err = sqliteClient.InitSchema()
	if err != nil {
		appLogger.Fatal("Failed to initialize schema", zap.Error(err))
	}

	redisClient, err := redis.NewClient(
		cfg.Redis.Host,
		cfg.Redis.Port,
		cfg.Redis.Password,
		cfg.Redis.DB,
	)
	if err != nil {
		appLogger.Fatal("Failed to create Redis client", zap.Error(err))
	}
	defer redisClient.Close()

	var provider sentiment.Provider
	switch cfg.Sentiment.Provider {
	case "openai":
		provider = sentiment.NewOpenAIProvider(cfg.Sentiment.APIKey, cfg.Sentiment.Model, cfg.Sentiment.TimeoutSec)
		appLogger.Info("Using OpenAI sentiment provider", zap.String("model", cfg.Sentiment.Model))
	default:
		provider = sentiment.NewLexiconProvider()
		appLogger.Info("Using lexicon sentiment provider")
	}
	scorer := sentiment.NewScorer(provider)

	videoClient := youtube.NewClient(cfg.YouTube.APIKey, cfg.YouTube.MaxResults, cfg.YouTube.TimeoutSec)
	articleClient := web.NewClient(cfg.YouTube.MaxResults, cfg.YouTube.TimeoutSec)

	pipeline := recommend.NewPipeline(sqliteClient, catalog.New(), videoClient, articleClient, scorer)

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    cfg.Server.BodyLimit,
	})

	rateLimiter := ratelimit.New(ratelimit.Config{
		MaxRequestsPerMinute: cfg.RateLimit.MaxRequestsPerMinute,
		Logger:               appLogger.GetLogger(),
	})
	defer rateLimiter.Stop()

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))
	app.Use(security.HeadersMiddleware(security.HeadersConfig{
		IsDevelopment: cfg.Logging.Level == "debug",
	}))

	recommendTTL := time.Duration(cfg.Cache.RecommendTTLSec) * time.Second
	sessionTTL := time.Duration(cfg.Cache.SessionTTLSec) * time.Second

	authHandler := handlers.NewAuthHandler(sqliteClient, redisClient, sessionTTL)
	recommendHandler := handlers.NewRecommendHandler(pipeline, sqliteClient, redisClient, recommendTTL)
	dashboardHandler := handlers.NewDashboardHandler(sqliteClient)
	adminHandler := handlers.NewAdminHandler(sqliteClient)

	app.Use(authHandler.SessionMiddleware())
	app.Use(rateLimiter.Middleware())
	app.Use(validation.Middleware(validation.Config{
		Logger: appLogger.GetLogger(),
	}))

	api := app.Group("/api/v1")

	api.Post("/recommend", recommendHandler.HandleRecommend)
	api.Post("/feedback", recommendHandler.HandleFeedback)
	api.Get("/history", recommendHandler.HandleHistory)
	api.Get("/dashboard", dashboardHandler.HandleDashboard)

	api.Post("/auth/signup", authHandler.HandleSignup)
	api.Post("/auth/login", authHandler.HandleLogin)
	api.Post("/auth/logout", authHandler.HandleLogout)

	admin := api.Group("/admin", handlers.RequireAdmin(cfg.Auth.AdminUsername))
	admin.Get("/analytics", adminHandler.HandleAnalytics)
	admin.Get("/users", adminHandler.HandleListUsers)
	admin.Delete("/users/:id", adminHandler.HandleDeleteUser)

	app.Get("/metrics", metrics.MetricsHandler())

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Unix(),
		})
	})

	api.Get("/ready", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ready",
		})
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	appLogger.Info("Server starting", zap.String("address", addr))

	go func() {
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Server shutting down gracefully...")
	app.Shutdown()
	appLogger.Info("Server stopped")
}
