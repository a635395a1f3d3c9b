package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mcoot/planetgame/internal/api"
	"github.com/mcoot/planetgame/internal/config"
	"github.com/mcoot/planetgame/internal/factory"
	"github.com/mcoot/planetgame/internal/middleware"
	redisstorage "github.com/mcoot/planetgame/internal/storage/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Validate has already checked the level
	level, _ := cfg.SlogLevel()

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	factoryCfg := factory.Config{
		Logger:            logger,
		StorageType:       cfg.StorageType,
		MapWidth:          cfg.MapWidth,
		MapHeight:         cfg.MapHeight,
		DeployPolicy:      cfg.Policy(),
		MinPlayersToStart: cfg.MinPlayersToStart,
	}

	if cfg.StorageType == config.StorageRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		redisCfg.IdentityTTL = cfg.IdentityTTL
		factoryCfg.RedisConfig = &redisCfg
	}

	app, err := factory.New(factoryCfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = app.Close() }()

	router := api.NewRouter(api.RouterConfig{
		Logger:          logger,
		IdentityService: app.IdentityService,
		Session:         app.Session,
		LobbyController: app.LobbyController,
		FleetEngine:     app.FleetEngine,
		Hub:             app.Hub,
		Broadcaster:     app.Broadcaster,
		RateLimit: middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit,
			Burst:             cfg.RateBurst,
			TrustProxy:        cfg.TrustProxy,
		},
		AllowedOrigins: cfg.AllowedOrigins,
	})

	server := api.NewServer(router, api.ServerConfig{
		Host:            cfg.Host,
		Port:            cfg.Port,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, logger)
	server.OnShutdown(app.Hub.Close)

	if err := server.Listen(); err != nil {
		logger.Error("failed to listen", slog.String("error", err.Error()))
		_ = app.Close()
		os.Exit(1)
	}

	// Handle graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started",
		slog.String("addr", server.Addr()),
		slog.String("storage", cfg.StorageType),
		slog.String("deploy_policy", string(cfg.Policy())),
	)

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			_ = app.Close()
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			_ = app.Close()
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}
