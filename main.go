// main.go
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"wedding-marketplace/cmd"
	"wedding-marketplace/internal/data/repository"
	"wedding-marketplace/internal/job"
	"wedding-marketplace/internal/notification"
	"wedding-marketplace/internal/usecase"
	"wedding-marketplace/internal/wire"
	"wedding-marketplace/pkg/database"
	"wedding-marketplace/pkg/token"
	"wedding-marketplace/pkg/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	if config.Database.AutoMigrate {
		if err := database.Migrate(config.Database, logger); err != nil {
			logger.Fatal("Failed to run migrations", zap.Error(err))
		}
	}

	// Token revocation lives in Redis when configured so logouts hold across instances
	revocations := token.NewMemoryRevocationStore()
	if config.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     config.Redis.Addr,
			Password: config.Redis.Password,
			DB:       config.Redis.DB,
		})
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Fatal("Failed to connect to redis", zap.Error(err), zap.String("addr", config.Redis.Addr))
		}
		revocations = token.NewRedisRevocationStore(rdb)
		logger.Info("Redis connected", zap.String("addr", config.Redis.Addr))
	} else {
		logger.Warn("REDIS_ADDR not set, revoked tokens are kept in memory")
	}

	tokens := token.NewManager(config.JWT.Secret, config.JWT.Issuer, time.Duration(config.JWT.ExpiryHours)*time.Hour)

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Notifications: async email pool + websocket hub
	mailer := notification.NewMailer(
		notification.NewSender(config.Email, logger),
		config.Email.Workers,
		config.Email.QueueSize,
		logger,
	)
	hub := notification.NewHub(logger)
	notifier := notification.NewNotifier(mailer, hub, repos.Provider, config.App.BaseURL, logger)

	service := usecase.NewService(usecase.Dependencies{
		Repo:        repos,
		Tx:          database.NewTransactor(db),
		Tokens:      tokens,
		Revocations: revocations,
		Notifier:    notifier,
		Config:      config,
		Log:         logger,
	})

	if err := service.Admin.BootstrapAdmin(ctx); err != nil {
		logger.Fatal("Failed to bootstrap admin", zap.Error(err))
	}

	// Wire all dependencies
	app := wire.Wiring(service, wire.Infra{
		DB:          db,
		Tokens:      tokens,
		Revocations: revocations,
		Hub:         hub,
		Config:      config,
		Logger:      logger,
	})

	// Periodic jobs
	scheduler := job.NewScheduler(logger)
	if err := scheduler.Add("purge_tokens", config.Jobs.TokenCleanupCron,
		job.PurgeTokens(repos.Token, time.Now, logger)); err != nil {
		logger.Fatal("Failed to schedule token purge", zap.Error(err))
	}
	idle := time.Duration(config.RateLimit.ClientIdleMins) * time.Minute
	if err := scheduler.Add("ratelimit_cleanup", config.RateLimit.CleanupCron,
		job.CleanupRateLimiter(app.Limiter, idle, logger)); err != nil {
		logger.Fatal("Failed to schedule rate limiter cleanup", zap.Error(err))
	}
	scheduler.Start()

	// Start server; returns after SIGINT/SIGTERM once in-flight requests finish
	shutdownTimeout := time.Duration(config.App.ShutdownTimeoutSeconds) * time.Second
	if err := cmd.APIServer(ctx, app.Router, config.App.Port, shutdownTimeout, logger); err != nil {
		logger.Error("HTTP server stopped with error", zap.Error(err))
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	scheduler.Stop(stopCtx)

	hub.Close()
	mailer.Close()

	logger.Info("Shutdown complete")
}
