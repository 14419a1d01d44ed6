package main

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/datawolt/datawolt/internal/api/handler"
	"github.com/datawolt/datawolt/internal/api/metrics"
	"github.com/datawolt/datawolt/internal/core/aggregate"
	"github.com/datawolt/datawolt/internal/core/ports"
	"github.com/datawolt/datawolt/internal/core/service"
	mongodb "github.com/datawolt/datawolt/internal/infrastructure/db/mongo"
	redisdb "github.com/datawolt/datawolt/internal/infrastructure/db/redis"
	"github.com/datawolt/datawolt/internal/infrastructure/orderapi"
	"github.com/datawolt/datawolt/internal/pkg/config"
	"github.com/datawolt/datawolt/pkg/logger"
)

// app owns the process-wide clients. They are built once and injected into
// every service.
type app struct {
	cfg *config.Config
	log zerolog.Logger

	mongoClient *mongo.Client
	db          *mongo.Database
	rdb         *goredis.Client

	snapshots *mongodb.SnapshotRepository
	cache     ports.SummaryCache
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}

	logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: !cfg.IsProduction()})
	log := logger.Component("app")

	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:         cfg,
		log:         log,
		mongoClient: client,
		db:          db,
		snapshots:   mongodb.NewSnapshotRepository(db),
	}

	rcfg := redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB}
	if rcfg.Enabled() {
		rdb, err := redisdb.Connect(ctx, rcfg)
		if err != nil {
			a.Close(ctx)
			return nil, err
		}
		a.rdb = rdb
		a.cache = metrics.InstrumentSummaryCache(redisdb.NewSummaryCache(rdb, cfg.Summary.CacheTTL))
	} else {
		log.Info().Msg("summary cache disabled")
	}

	return a, nil
}

func (a *app) Close(ctx context.Context) {
	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			a.log.Warn().Err(err).Msg("redis close failed")
		}
	}
	if err := mongodb.Disconnect(ctx, a.mongoClient); err != nil {
		a.log.Warn().Err(err).Msg("mongo disconnect failed")
	}
}

func (a *app) ingestService() *service.IngestService {
	source := orderapi.NewClient(a.cfg.OrderAPI.URL, a.cfg.OrderAPI.Timeout)
	opts := []service.IngestOption{}
	if a.cache != nil {
		opts = append(opts, service.WithSummaryCache(a.cache))
	}
	return service.NewIngestService(source, a.snapshots, logger.Component("ingest"), opts...)
}

func (a *app) dashboardService() *service.DashboardService {
	return service.NewDashboardService(a.snapshots, logger.Component("dashboard"))
}

func (a *app) summaryService() *service.SummaryService {
	policy := aggregate.SummaryPolicy{
		MinItemCount: a.cfg.Summary.MinItemCount,
		MinUnitPrice: a.cfg.Summary.MinUnitPrice,
		TopN:         a.cfg.Summary.TopN,
	}
	return service.NewSummaryService(a.snapshots, a.cache, policy, logger.Component("summary"))
}

func (a *app) dependencyChecks() map[string]handler.DependencyCheck {
	checks := map[string]handler.DependencyCheck{
		"mongodb": handler.MongoCheck(a.db),
	}
	if a.rdb != nil {
		checks["redis"] = handler.RedisCheck(a.rdb)
	}
	return checks
}

func (a *app) ensureIndexes(ctx context.Context) error {
	if err := a.snapshots.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("ensure indexes: %w", err)
	}
	return nil
}
