package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/ashdowne/daybook/config"
	"github.com/ashdowne/daybook/internal/constants"
	"github.com/ashdowne/daybook/internal/handler"
	"github.com/ashdowne/daybook/internal/middleware"
	"github.com/ashdowne/daybook/internal/model"
	"github.com/ashdowne/daybook/internal/router"
	"github.com/ashdowne/daybook/internal/service"
	"github.com/ashdowne/daybook/internal/store"
	"github.com/ashdowne/daybook/pkg/cache"
	"github.com/ashdowne/daybook/pkg/crypt"
	"github.com/ashdowne/daybook/pkg/database"
	"github.com/ashdowne/daybook/pkg/logger"
	"github.com/ashdowne/daybook/pkg/redis"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}

	if err := logger.InitLogger(cfg); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	log := logger.GetLogger()
	log.Info("Application starting",
		zap.String("app_name", cfg.App.Name),
		zap.String("environment", cfg.App.Environment),
		zap.String("version", constants.AppVersion),
	)

	db, err := database.NewPostgresDB(database.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Name,
		SSLMode:         cfg.Database.SSLMode,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
	})
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.CloseDB(db)

	if err := database.AutoMigrate(db); err != nil {
		log.Fatal("Failed to run database migrations", zap.Error(err))
	}
	log.Info("Database migrated successfully")

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = redis.NewClient(cfg)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
	} else {
		log.Info("Redis caching disabled")
	}
	calendarCache := cache.NewCalendarCache(redisClient)

	codec, err := crypt.NewCodec(cfg.Encryption.Key)
	if err != nil {
		log.Fatal("Failed to initialize encryption codec", zap.Error(err))
	}

	// Stores
	users := store.New[model.User](db, store.Users)
	refreshTokens := store.New[model.RefreshToken](db, store.RefreshTokens)
	threads := store.New[model.Thread](db, store.Threads)
	entries := store.New[model.Entry](db, store.Entries)
	metrics := store.New[model.Metric](db, store.Metrics)
	journal := store.NewJournalQueries(db)
	tokenQueries := store.NewRefreshTokenQueries(db)

	// Services
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	verifier, err := service.NewIdentityVerifier(ctx, cfg.Auth)
	cancel()
	if err != nil {
		log.Fatal("Failed to initialize identity verifier", zap.Error(err))
	}

	tokenService := service.NewTokenService(cfg.JWT)
	authService := service.NewAuthService(verifier, tokenService, users, refreshTokens, tokenQueries)
	userService := service.NewUserService(users)
	threadService := service.NewThreadService(threads, calendarCache)
	entryService := service.NewEntryService(entries, threads, journal, codec, calendarCache)
	metricService := service.NewMetricService(metrics, threads)

	// Handlers and middleware
	authMw := middleware.NewAuthMiddleware(authService)
	engine := router.NewRouter(
		handler.NewHealthHandler(db, redisClient),
		handler.NewAuthHandler(authService, cfg.Cookie),
		handler.NewUserHandler(userService),
		handler.NewThreadHandler(threadService),
		handler.NewEntryHandler(entryService),
		handler.NewMetricHandler(metricService),
		authMw,
		cfg,
	).SetupRoutes()

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.App.Timeout,
		WriteTimeout: cfg.App.Timeout,
	}

	go func() {
		log.Info("Server starting",
			zap.String("port", cfg.App.Port),
			zap.String("host", "0.0.0.0"),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server",
				zap.Error(err),
				zap.String("port", cfg.App.Port),
			)
		}
	}()

	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-shutdownCtx.Done()

	log.Info("Shutting down server...")
	ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server shutdown failed", zap.Error(err))
	}
	log.Info("Server stopped")
}
