package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/miximax/miximax/config"
	_ "github.com/miximax/miximax/docs"
	"github.com/miximax/miximax/internal/formation"
	"github.com/miximax/miximax/internal/heartbeat"
	"github.com/miximax/miximax/internal/player"
	"github.com/miximax/miximax/internal/team"
	"github.com/miximax/miximax/routes"
)

// @title Miximax Team Builder API
// @version 1.0
// @description Formations, player directory and team builder sessions.
// @host localhost:8088
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := config.Initialize(); err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	cfg := config.GetConfig()
	logger := config.Log
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	catalog, err := formation.Builtin()
	if err != nil {
		logger.Fatal("Failed to load formations", zap.Error(err))
	}
	dir, err := player.LoadDirectory(
		filepath.Join(cfg.App.DataDir, "players.json"),
		filepath.Join(cfg.App.DataDir, "jp_names.json"),
	)
	if err != nil {
		logger.Fatal("Failed to load player directory", zap.Error(err))
	}
	logger.Info("Player directory loaded",
		zap.Int("players", len(dir.All())),
		zap.Int("selectable", len(dir.Selectable())),
		zap.Int("formations", len(catalog.List())),
	)

	if config.DB != nil {
		if err := player.NewPlayerRepository(config.DB).Migrate(ctx); err != nil {
			logger.Fatal("AutoMigrate failed", zap.Error(err))
		}
		logger.Info("AutoMigrate successful")
	}

	sessions := team.NewMemorySessionRepository()
	rdb, err := config.ConnectRedis(ctx, *cfg)
	if err != nil {
		logger.Fatal("Failed to open session store", zap.Error(err))
	}
	if rdb != nil {
		defer rdb.Close()
		sessions = team.NewRedisSessionRepository(rdb, cfg.Redis.SessionTTL)
	} else {
		logger.Info("REDIS_ADDR not set, builder sessions are kept in memory")
	}

	pinger := heartbeat.NewHeartbeatRepository(config.DB)
	if config.DB != nil {
		scheduler, err := heartbeat.NewScheduler(pinger, cfg.Heartbeat.Interval, logger)
		if err != nil {
			logger.Fatal("Failed to schedule heartbeat", zap.Error(err))
		}
		scheduler.Start()
		defer func() {
			if err := scheduler.Stop(); err != nil {
				logger.Warn("Heartbeat scheduler did not stop cleanly", zap.Error(err))
			}
		}()
	}

	r := routes.SetupRoutes(routes.Dependencies{
		Config:    cfg,
		Catalog:   catalog,
		Directory: dir,
		Builder:   team.NewService(catalog, dir, sessions, logger),
		Pinger:    pinger,
		Log:       logger,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("Starting server", zap.String("port", cfg.App.Port), zap.String("env", cfg.App.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to run server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}
}
