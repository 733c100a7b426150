package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang-sentiment-tracker/internal/aggregator"
	"golang-sentiment-tracker/internal/config"
	delivery "golang-sentiment-tracker/internal/delivery/http"
	_ "golang-sentiment-tracker/internal/delivery/http/docs"
	"golang-sentiment-tracker/internal/newsource"
	"golang-sentiment-tracker/internal/repository"
	"golang-sentiment-tracker/internal/scheduler"
	"golang-sentiment-tracker/internal/scoring"
	"golang-sentiment-tracker/internal/service"
	"golang-sentiment-tracker/pkg/logger"
	"golang-sentiment-tracker/pkg/postgres"
	"golang-sentiment-tracker/pkg/ratelimit"
	"golang-sentiment-tracker/pkg/redis"
	"golang-sentiment-tracker/pkg/telegram"

	"github.com/labstack/echo/v4"
	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	swagger "github.com/swaggo/echo-swagger"
	"google.golang.org/genai"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the sentiment tracker service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting Sentiment Tracker", logger.Field("name", cfg.App.Name))

	// Initialize database
	postgresCfg := postgres.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}
	db, err := postgres.NewDB(postgresCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize database", logger.ErrorField(err))
	}
	if sqlDB, err := db.DB.DB(); err == nil {
		defer sqlDB.Close()
	}

	// Initialize Redis; the market-news cache degrades to no caching
	// when Redis is unreachable.
	redisCfg := redis.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	}
	redisClient, err := redis.NewClient(redisCfg)
	if err != nil {
		appLogger.Warn("Redis unavailable, market news caching disabled", logger.ErrorField(err))
	} else {
		defer redisClient.Close()
	}

	// Cooldown trackers for the throttled external providers
	registry := ratelimit.NewRegistry(appLogger)
	geminiTracker := registry.Register("gemini", time.Duration(cfg.Gemini.CooldownSeconds)*time.Second)
	marketNewsTracker := registry.Register("market_news", time.Duration(cfg.MarketNews.CooldownSeconds)*time.Second)

	// News source adapters
	var marketNewsCache *goredis.Client
	if redisClient != nil {
		marketNewsCache = redisClient.Client
	}
	sources := []newsource.Source{
		newsource.NewMarketNewsSource(cfg.MarketNews, appLogger, marketNewsTracker, marketNewsCache),
		newsource.NewForumSource(cfg.Forum, appLogger),
		newsource.NewMicroblogSource(cfg.Microblog, appLogger),
		newsource.NewRSSSource(cfg.RSS, appLogger),
	}
	agg := aggregator.New(sources, appLogger)

	// Gemini classifier
	genAiClient, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: cfg.Gemini.APIKey})
	if err != nil {
		appLogger.Fatal("Failed to initialize Gemini client", logger.ErrorField(err))
	}
	analyzer, err := repository.NewGeminiAIRepository(cfg.Gemini, appLogger, genAiClient, geminiTracker)
	if err != nil {
		appLogger.Fatal("Failed to initialize sentiment analyzer", logger.ErrorField(err))
	}

	// Telegram notifier for signal changes
	var notifier telegram.Notifier = telegram.NoopNotifier{}
	if cfg.Telegram.Enabled {
		notifier, err = telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			appLogger.Warn("Telegram notifier unavailable", logger.ErrorField(err))
			notifier = telegram.NoopNotifier{}
		}
	}

	// Repositories
	watchlistRepo := repository.NewWatchlistRepository(db.DB)
	newsRepo := repository.NewNewsRepository(db.DB)
	sentimentRepo := repository.NewSentimentRepository(db.DB)
	jobRunRepo := repository.NewJobRunRepository(db.DB)

	// Services
	engine := scoring.NewEngine(0, 0)
	watchlistSvc := service.NewWatchlistService(watchlistRepo, appLogger)
	sentimentSvc := service.NewSentimentService(engine, sentimentRepo, newsRepo, notifier, appLogger)
	newsSvc := service.NewNewsService(cfg.Scheduler, agg, newsRepo, watchlistRepo, appLogger)
	analyzerSvc := service.NewAnalyzerService(cfg.Scheduler, analyzer, newsRepo, sentimentSvc, appLogger)
	tracker := service.NewJobTracker(appLogger, jobRunRepo)

	// Scheduler
	sched := scheduler.New(cfg.Scheduler, tracker, newsSvc, analyzerSvc, appLogger)
	if err := sched.Start(ctx); err != nil {
		appLogger.Fatal("Failed to start scheduler", logger.ErrorField(err))
	}
	defer sched.Stop()

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true

	apiV1 := e.Group("/api/v1")

	tickerHandler := delivery.NewTickerHandler(watchlistSvc, newsSvc, sentimentSvc, appLogger)
	tickerHandler.RegisterRoutes(apiV1.Group("/tickers"))

	jobHandler := delivery.NewJobHandler(ctx, tracker, watchlistSvc, newsSvc, analyzerSvc, jobRunRepo, appLogger)
	jobHandler.RegisterRoutes(apiV1.Group("/jobs"))

	rateLimitHandler := delivery.NewRateLimitHandler(registry)
	rateLimitHandler.RegisterRoutes(apiV1.Group("/ratelimits"))

	e.GET("/swagger/*", swagger.WrapHandler)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop()
		}
	}()

	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	appLogger.Info("Server exiting")
}

// @title Ticker Sentiment Tracker API
// @version 1.0
// @description News ingestion, sentiment scoring and trading signals for a stock watchlist.
// @BasePath /api/v1
func main() {
	rootCmd := &cobra.Command{Use: "api-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing api-service CLI: %s\n", err)
		os.Exit(1)
	}
}
