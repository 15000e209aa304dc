package commands

import (
	"context"
	"fmt"

	"github.com/tomvannes/riskpulse/internal/contracts"
	"github.com/tomvannes/riskpulse/internal/engine"
	"github.com/tomvannes/riskpulse/internal/fetch"
	"github.com/tomvannes/riskpulse/internal/signals"
	"github.com/tomvannes/riskpulse/internal/store"
	"github.com/tomvannes/riskpulse/pkg/config"
	"github.com/tomvannes/riskpulse/pkg/database"
	"github.com/tomvannes/riskpulse/pkg/httputil"
	"github.com/tomvannes/riskpulse/pkg/logger"
	"github.com/tomvannes/riskpulse/pkg/redis"
)

// runtime bundles the wired components shared by all commands.
type runtime struct {
	cfg       *config.Config
	log       *logger.Logger
	snapshots contracts.SnapshotStore
	history   contracts.HistoryLog
	collector *fetch.Collector
	evaluator *engine.Evaluator

	closers []func()
}

// buildRuntime loads config and wires stores, collector and evaluator
// according to the configured backend.
func buildRuntime() (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if verbose {
		cfg.LogLevel = "debug"
	}

	log := logger.New(cfg)
	rt := &runtime{cfg: cfg, log: log}

	switch cfg.Store.Backend {
	case config.BackendPostgres:
		db, err := database.New(cfg)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		rt.closers = append(rt.closers, db.Close)

		if err := store.Migrate(context.Background(), db.Pool); err != nil {
			rt.Close()
			return nil, err
		}

		rt.snapshots = store.NewPostgresSnapshotStore(db.Pool, log)
		rt.history = store.NewPostgresHistoryLog(db.Pool, log)

	default:
		rt.snapshots = store.NewFileSnapshotStore(cfg.Store.SnapshotFile, log)
		rt.history = store.NewCSVHistoryLog(cfg.Store.HistoryFile, log)
	}

	redisClient, err := redis.New(cfg)
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	rt.closers = append(rt.closers, func() { _ = redisClient.Close() })

	httpClient := httputil.New(cfg, log)
	cache := redis.NewCache(redisClient, "riskpulse")
	rt.collector = fetch.NewCollector(httpClient, cache, cfg, log)

	rt.evaluator = engine.NewEvaluator(
		signals.Catalog(),
		rt.snapshots,
		rt.history,
		cfg.CriticalThreshold,
		log,
	)

	return rt, nil
}

// Close releases all held resources.
func (rt *runtime) Close() {
	for i := len(rt.closers) - 1; i >= 0; i-- {
		rt.closers[i]()
	}
}
