package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"meeting_tracker/internal/config"
	"meeting_tracker/internal/handler"
	"meeting_tracker/internal/logging"
	"meeting_tracker/internal/middleware"
	"meeting_tracker/internal/repository"
	"meeting_tracker/internal/service"
	"meeting_tracker/internal/sheets"
	"meeting_tracker/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// store bundles the repositories of the configured backend
type store struct {
	users    repository.UserRepository
	meetings repository.MeetingRepository
	ping     handler.StorePinger
	close    func()
}

func openStore(ctx context.Context, cfg config.StoreConfig, logger *slog.Logger) (*store, error) {
	if cfg.Driver == config.StorePostgres {
		pool, err := config.ConnectDB(ctx, cfg.PostgresURL, logger)
		if err != nil {
			return nil, err
		}
		if err := config.AutoMigrate(ctx, pool, logger); err != nil {
			pool.Close()
			return nil, err
		}
		return &store{
			users:    repository.NewUserRepository(pool),
			meetings: repository.NewMeetingRepository(pool),
			ping:     pool.Ping,
			close:    pool.Close,
		}, nil
	}

	client, err := config.ConnectMongo(ctx, cfg.MongoURI, logger)
	if err != nil {
		return nil, err
	}
	db := client.Database(cfg.MongoDatabase)
	if err := config.EnsureIndexes(ctx, db, logger); err != nil {
		if errors.Is(err, config.ErrEmailIndex) {
			_ = client.Disconnect(context.Background())
			return nil, fmt.Errorf("email uniqueness not enforced by the store: %w", err)
		}
		logger.Error("failed to ensure mongo indexes", "error", err)
	}
	return &store{
		users:    repository.NewMongoUserRepository(db),
		meetings: repository.NewMongoMeetingRepository(db),
		ping: func(ctx context.Context) error {
			return client.Ping(ctx, readpref.Primary())
		},
		close: func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(ctx)
		},
	}, nil
}

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found or error loading, relying on environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel)
	slog.SetDefault(logger)

	ctx := context.Background()

	st, err := openStore(ctx, cfg.Store, logger)
	if err != nil {
		logger.Error("failed to open store", "driver", cfg.Store.Driver, "error", err)
		os.Exit(1)
	}
	defer st.close()

	var mirror service.RowAppender
	if m, err := sheets.New(ctx, cfg.Sheets, logger); err != nil {
		logger.Warn("Google Sheets integration disabled", "error", err)
	} else {
		mirror = m
	}

	var cache *redis.Client
	if cfg.Redis.URL != "" {
		cache, err = config.NewRedisClient(ctx, cfg.Redis.URL)
		if err != nil {
			logger.Warn("redis unavailable, login rate limiting disabled", "error", err)
		} else {
			defer cache.Close()
		}
	}

	jwtUtil := utils.NewJWTUtil(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL)

	authService := service.NewAuthService(st.users, jwtUtil, logger)
	meetingService := service.NewMeetingService(st.meetings, mirror, cfg.Server.PublicBaseURL, logger)

	authHandler := handler.NewAuthHandler(authService, logger)
	meetingHandler := handler.NewMeetingHandler(meetingService, logger)
	imageHandler := handler.NewImageHandler(meetingService, logger)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(logger),
		middleware.CORS(cfg.Server.AllowedOrigins),
	)

	root := &router.RouterGroup
	authHandler.RegisterAuthRoutes(root, middleware.LoginRateLimit(cache, cfg.Redis.LoginAttemptsPerMinute, logger))
	meetingHandler.RegisterMeetingRoutes(root, middleware.JWTAuthMiddleware(authService))
	imageHandler.RegisterImageRoutes(root)
	handler.RegisterHealthRoutes(router, st.ping)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Server.Port, "store", cfg.Store.Driver, "sheets", mirror != nil)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("listen failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exiting")
}
