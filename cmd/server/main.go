// ABOUTME: Main entry point for the Binary Home API daemon
// ABOUTME: Wires storage, cloud sync, scheduled jobs, and the HTTP router
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/harper/binary-home/internal/config"
	"github.com/harper/binary-home/internal/core"
	"github.com/harper/binary-home/internal/server"
	"github.com/harper/binary-home/internal/statestore"
	"github.com/harper/binary-home/internal/storage/sqlite"
	homesync "github.com/harper/binary-home/internal/sync"
)

func main() {
	// Load .env file if it exists (for the cloud key)
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = sqlite.DefaultDBPath()
	}
	db, err := sqlite.Open(dbPath)
	if err != nil {
		logger.Fatal("failed to open database", zap.String("path", dbPath), zap.Error(err))
	}
	defer db.Close()

	ledger := core.NewLedger(db)
	aggregator := core.NewAggregator(db)

	states, err := openStateStore(cfg)
	if err != nil {
		logger.Fatal("failed to open state store", zap.String("backend", cfg.StateBackend), zap.Error(err))
	}
	defer states.Close()

	cloud := homesync.NewClient(homesync.Config{
		BaseURL:   cfg.CloudURL,
		UplinkURL: cfg.UplinkURL,
		APIKey:    cfg.CloudAPIKey,
		Timeout:   cfg.CloudTimeout,
	}, logger)
	pusher := homesync.NewPusher(cloud, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go pusher.Run(ctx)

	// Every write to the ledger recomputes the snapshot and mirrors the
	// document to the cloud.
	ledger.Subscribe(func(ev core.ObservationRecorded) {
		if _, err := aggregator.Refresh(ev.DyadID); err != nil {
			logger.Warn("snapshot refresh failed", zap.Int64("dyad_id", ev.DyadID), zap.Error(err))
			return
		}
		enqueuePush(states, aggregator, pusher, ev.DyadID, logger)
	})

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.SnapshotSchedule, func() {
		if _, err := aggregator.Refresh(cfg.DyadID); err != nil {
			logger.Warn("scheduled snapshot refresh failed", zap.Error(err))
		}
	}); err != nil {
		logger.Fatal("invalid snapshot schedule", zap.String("schedule", cfg.SnapshotSchedule), zap.Error(err))
	}
	if cloud.Enabled() {
		if _, err := scheduler.AddFunc(cfg.PushSchedule, func() {
			enqueuePush(states, aggregator, pusher, cfg.DyadID, logger)
		}); err != nil {
			logger.Fatal("invalid push schedule", zap.String("schedule", cfg.PushSchedule), zap.Error(err))
		}
	}
	scheduler.Start()
	defer scheduler.Stop()

	handler := server.NewHandler(server.HandlerConfig{
		Ledger:     ledger,
		Aggregator: aggregator,
		States:     states,
		Pusher:     pusher,
		UplinkDir:  cfg.UplinkDir,
		DyadID:     cfg.DyadID,
		Logger:     logger,
	})
	router := server.NewRouter(handler, logger)

	addr := cfg.ListenAddr()
	logger.Info("Binary Home API listening", zap.String("addr", addr))

	errCh := make(chan error, 1)
	go func() {
		errCh <- router.Run(addr)
	}()

	select {
	case err := <-errCh:
		logger.Fatal("server error", zap.Error(err))
	case <-ctx.Done():
		logger.Info("shutting down")
	}
}

// openStateStore picks the document backend from configuration
func openStateStore(cfg *config.Config) (statestore.Store, error) {
	if cfg.StateBackend == "charm" {
		charmCfg := statestore.DefaultCharmConfig()
		charmCfg.Host = cfg.CharmHost
		charmCfg.DBName = cfg.CharmDBName
		charmCfg.AutoSync = cfg.AutoSync
		return statestore.NewCharmStore(charmCfg)
	}

	path := cfg.StatePath
	if path == "" {
		var err error
		path, err = statestore.DefaultStatePath()
		if err != nil {
			return nil, err
		}
	}
	return statestore.NewFileStore(path), nil
}

// enqueuePush loads the current document and hands it to the pusher
func enqueuePush(states statestore.Store, aggregator *core.Aggregator, pusher *homesync.Pusher, dyadID int64, logger *zap.Logger) {
	state, err := states.Load()
	if err != nil {
		logger.Warn("could not load state for cloud push", zap.Error(err))
		return
	}
	snapshot, err := aggregator.Latest(dyadID)
	if err != nil {
		snapshot = nil
	}
	pusher.Enqueue(state, snapshot)
}
