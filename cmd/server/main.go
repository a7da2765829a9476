package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"wellcheck/internal/cache"
	"wellcheck/internal/catalog"
	"wellcheck/internal/config"
	"wellcheck/internal/repository"
	"wellcheck/internal/service"
	"wellcheck/internal/transport/rest"
	"wellcheck/internal/transport/ws"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// @title Wellcheck API
// @version 1.0
// @description Wellness self-assessment sessions, scoring and reports
// @host localhost:8080
// @BasePath /v1
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger, err := cfg.NewLogger()
	if err != nil {
		os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	ctx := context.Background()

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	defer mongoClient.Disconnect(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		logger.Fatal("failed to ping MongoDB", zap.Error(err))
	}
	logger.Info("connected to MongoDB", zap.String("db", cfg.MongoDB))

	db := mongoClient.Database(cfg.MongoDB)

	// Redis connection
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		logger.Fatal("failed to ping Redis", zap.Error(err))
	}
	logger.Info("connected to Redis", zap.String("addr", cfg.RedisAddr))

	// Initialize repositories
	catalogRepo := repository.NewCatalogRepo(db)
	resultRepo := repository.NewResultRepo(db)

	cat, err := catalog.Resolve(ctx, logger, cfg.CatalogFile, catalogRepo, cfg.CatalogName)
	if err != nil {
		logger.Fatal("failed to resolve catalog", zap.Error(err))
	}
	logger.Info("catalog ready",
		zap.String("name", cat.Name),
		zap.Int("categories", len(cat.Categories)),
		zap.Int("questions", cat.QuestionCount()),
	)

	// Initialize caches
	sessionCache := cache.NewSessionCache(rdb, cfg.SessionTTL)
	scoreBoard := cache.NewScoreBoard(rdb, cat.Name)

	// Initialize WebSocket hub
	wsHub := ws.NewHub(logger)

	// Initialize services
	authSvc := service.NewAuthService(cfg.HostUsername, cfg.HostPassword, cfg.JWTSecret)
	assessmentSvc := service.NewAssessmentService(cat, sessionCache, resultRepo, scoreBoard, authSvc, cfg.SessionTTL, logger)
	reportSvc := service.NewReportService(resultRepo, scoreBoard)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	assessmentSvc.SetBroadcaster(wsHub)

	router := rest.NewRouter(&rest.Container{
		AuthService:       authSvc,
		AssessmentService: assessmentSvc,
		ReportService:     reportSvc,
		WSHub:             wsHub,
		Logger:            logger,
		CORSOrigins:       cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		logger.Info("server starting",
			zap.String("port", cfg.HTTPPort),
			zap.String("hostUser", cfg.HostUsername),
			zap.Duration("sessionTTL", cfg.SessionTTL),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("ListenAndServe", zap.Error(err))
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}
	wsHub.Stop()

	logger.Info("server exited")
}
