package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"matchwell/internal/cache"
	"matchwell/internal/config"
	"matchwell/internal/logging"
	"matchwell/internal/quiz"
	"matchwell/internal/repository"
	"matchwell/internal/service"
	"matchwell/internal/transport/rest"
	"matchwell/internal/transport/ws"
)

func main() {
	cfg, err := config.Load("config")
	if err != nil {
		panic(err)
	}

	log, err := logging.New(&cfg.Logging)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx := context.Background()

	// Question banks are embedded; a bad bank is a build problem, fail fast.
	tier1, err := quiz.LoadTier1()
	if err != nil {
		log.Fatal("failed to load tier 1 question bank", zap.Error(err))
	}
	tier2, err := quiz.LoadTier2()
	if err != nil {
		log.Fatal("failed to load tier 2 question bank", zap.Error(err))
	}

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		log.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	defer mongoClient.Disconnect(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("failed to ping MongoDB", zap.Error(err))
	}
	log.Info("connected to MongoDB", zap.String("database", cfg.Mongo.Database))

	db := mongoClient.Database(cfg.Mongo.Database)

	// Redis connection
	redisAddr := strings.TrimPrefix(cfg.Redis.Addr, "redis://")
	rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("failed to ping Redis", zap.Error(err))
	}
	log.Info("connected to Redis", zap.String("addr", redisAddr))

	// WebSocket hub for the live stats feed
	wsHub := ws.NewHub(log)

	// Repositories
	providerRepo := repository.NewProviderRepo(db)
	feedbackRepo := repository.NewFeedbackRepo(db)
	subscriberRepo := repository.NewSubscriberRepo(db)

	// Caches
	stats := cache.NewStatsCache(rdb)
	shares := cache.NewShareCache(rdb)
	geoCache := cache.NewGeoCache(rdb)

	// Services
	sink := service.NewEventSink(rdb, cfg.Analytics.Stream, log)
	defer sink.Close()

	quizSvc := service.NewQuizService(tier1, tier2, stats, shares, sink, log)
	quizSvc.SetBroadcaster(wsHub)

	directorySvc := service.NewDirectoryService(providerRepo)
	geoSvc := service.NewGeoService(cfg.Geo.BaseURL, geoCache, log)
	subscribeSvc := service.NewSubscribeService(subscriberRepo, feedbackRepo)

	container := &rest.Container{
		QuizService:        quizSvc,
		DirectoryService:   directorySvc,
		GeoService:         geoSvc,
		SubscribeService:   subscribeSvc,
		EventSink:          sink,
		Stats:              stats,
		WSHub:              wsHub,
		Log:                log,
		CORSAllowedOrigins: cfg.Server.CORSAllowedOrigins,
	}

	router := rest.NewRouter(container)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		log.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("listen and serve", zap.Error(err))
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("server forced to shutdown", zap.Error(err))
	}

	log.Info("server exited")
}
