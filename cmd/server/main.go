package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"mindhaven/internal/cache"
	"mindhaven/internal/catalog"
	"mindhaven/internal/config"
	"mindhaven/internal/repository"
	"mindhaven/internal/service"
	"mindhaven/internal/transport/rest"
	"mindhaven/internal/transport/ws"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg := config.Load()
	ctx := context.Background()

	// Catalog load + validation. An integrity violation here is an authoring
	// bug and must block startup, never surface at scoring time.
	cat, err := catalog.Load(cfg.CatalogDir)
	if err != nil {
		logger.Fatal("catalog load failed", zap.Error(err))
	}
	logger.Info("catalog loaded", zap.Int("assessments", cat.Len()))

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Fatal("mongodb connect failed", zap.Error(err))
	}
	defer mongoClient.Disconnect(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		logger.Fatal("mongodb ping failed", zap.Error(err))
	}
	logger.Info("connected to mongodb")

	db := mongoClient.Database(cfg.MongoDatabase)

	// Redis connection
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		logger.Fatal("redis ping failed", zap.Error(err))
	}
	logger.Info("connected to redis")

	// WebSocket hub for the crisis escalation surface
	wsHub := ws.NewHub(logger)

	// Initialize repositories
	attemptRepo := repository.NewAttemptRepo(db)
	resultRepo := repository.NewResultRepo(db)

	// Initialize caches
	attemptCache := cache.NewAttemptCache(rdb)
	resultCache := cache.NewResultCache(rdb)

	// Initialize services
	authSvc := service.NewAuthService(cfg.JWTSecret)
	assessmentSvc := service.NewAssessmentService(cat)
	attemptSvc := service.NewAttemptService(cat, attemptRepo, resultRepo, attemptCache, resultCache, logger)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	attemptSvc.SetBroadcaster(wsHub)

	// Create router with container
	container := &rest.Container{
		AuthService:       authSvc,
		AssessmentService: assessmentSvc,
		AttemptService:    attemptSvc,
		WSHandler:         ws.NewHandler(wsHub, authSvc, logger),
	}

	router := rest.NewRouter(container)

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		logger.Info("server starting", zap.String("port", cfg.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen and serve", zap.Error(err))
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
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited")
}
