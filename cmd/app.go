package cmd

import (
	"context"
	"fmt"
	"time"

	"pvp-pipeline/core/cache"
	"pvp-pipeline/core/config"
	"pvp-pipeline/core/database"
	"pvp-pipeline/core/gameapi"
	"pvp-pipeline/core/logger"
	"pvp-pipeline/core/metrics"
	"pvp-pipeline/core/storage"
	"pvp-pipeline/core/utils"
	"pvp-pipeline/core/warehouse"
	"pvp-pipeline/feature/characters"
	"pvp-pipeline/feature/landing"
	"pvp-pipeline/feature/leaderboard"
	"pvp-pipeline/feature/snapshot"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// app holds what one batch command invocation shares: configuration, the
// run-scoped logger and metrics, and lazily opened connections.
type app struct {
	cfg     *config.Config
	log     *zap.Logger
	rec     *metrics.Recorder
	date    string
	staging *gorm.DB
	store   *landing.Store
	dw      *gorm.DB
	api     *gameapi.Client
}

// newApp loads configuration, resolves the processing date and connects to staging.
func newApp() (*app, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	date := processDate
	if date == "" {
		date = utils.ProcessingDate(time.Now())
	}
	if err := utils.ValidateDate(date); err != nil {
		return nil, err
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	l = logger.WithRunID(l, uuid.NewString()).With(zap.String("date", date))

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to staging database: %w", err)
	}

	return &app{cfg: cfg, log: l, rec: metrics.NewRecorder(), date: date, staging: db}, nil
}

// landingStore returns the landing store, creating the bucket when missing.
func (a *app) landingStore(ctx context.Context) (*landing.Store, error) {
	if a.store != nil {
		return a.store, nil
	}
	client, err := storage.NewClient(a.cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	if err := storage.EnsureBucket(ctx, client, a.cfg.Storage.Bucket, a.cfg.Storage.Region); err != nil {
		return nil, err
	}
	a.store = landing.NewStore(client, a.cfg.Storage.Bucket, a.cfg.Storage.LandingPrefix)
	return a.store, nil
}

// warehouseDB connects to the warehouse and applies pending migrations.
func (a *app) warehouseDB(ctx context.Context) (*gorm.DB, error) {
	if a.dw != nil {
		return a.dw, nil
	}
	db, err := warehouse.Connect(a.cfg.Warehouse)
	if err != nil {
		return nil, err
	}
	if err := warehouse.Migrate(ctx, db, a.cfg.Warehouse.Dialect); err != nil {
		return nil, err
	}
	a.dw = db
	return db, nil
}

func (a *app) client() *gameapi.Client {
	if a.api == nil {
		a.api = gameapi.NewClient(a.cfg.API)
	}
	return a.api
}

// token issues a game API token, going through the redis cache when configured.
func (a *app) token(ctx context.Context) (string, error) {
	var tokens gameapi.TokenCache
	if a.cfg.Cache.Enabled() {
		rdb, err := cache.Connect(ctx, a.cfg.Cache)
		if err != nil {
			a.log.Warn("Token cache unavailable", zap.Error(err))
		} else {
			defer rdb.Close()
			tokens = cache.NewTokenCache(rdb, a.cfg.Cache.KeyPrefix)
		}
	}

	token, err := gameapi.NewTokenSource(a.cfg.API, tokens).Token(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to obtain api token: %w", err)
	}
	return token, nil
}

func (a *app) leaderboardService(ctx context.Context) (*leaderboard.Service, error) {
	store, err := a.landingStore(ctx)
	if err != nil {
		return nil, err
	}
	svc := leaderboard.NewService(a.staging, a.client(), store, a.log, a.cfg.Pipeline.BracketList())
	if err := svc.EnsureTables(ctx); err != nil {
		return nil, err
	}
	return svc, nil
}

func (a *app) charactersService(ctx context.Context) (*characters.Service, error) {
	store, err := a.landingStore(ctx)
	if err != nil {
		return nil, err
	}

	p := a.cfg.Pipeline
	selector := characters.NewSelector(characters.NewGormRankedStore(a.staging), p.BracketList(), p.PriorityList(), a.log)
	fetcher := characters.NewDetailFetcher(a.client(), p.Workers, a.cfg.API.Timeout(), a.log, a.rec)
	pipeline := characters.NewPipeline(selector, fetcher, p.LimitTotal, a.log, a.rec)

	svc := characters.NewService(a.staging, pipeline, store, a.log)
	if err := svc.EnsureTables(ctx); err != nil {
		return nil, err
	}
	return svc, nil
}

func (a *app) snapshotService(ctx context.Context) (*snapshot.Service, error) {
	dw, err := a.warehouseDB(ctx)
	if err != nil {
		return nil, err
	}
	return snapshot.NewService(a.staging, dw, a.cfg.Warehouse, a.log, a.rec), nil
}

// stage runs fn as a named stage, recording its duration.
func (a *app) stage(name string, fn func() error) error {
	start := time.Now()
	a.log.Info("Stage started", zap.String("stage", name))
	if err := fn(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	elapsed := time.Since(start)
	a.rec.ObserveStage(name, elapsed)
	a.log.Info("Stage finished", zap.String("stage", name), zap.Duration("elapsed", elapsed))
	return nil
}

// pushMetrics sends the run's metrics; a failed push is logged, not returned.
func (a *app) pushMetrics(ctx context.Context) {
	if err := a.rec.Push(ctx, a.cfg.Metrics, a.date); err != nil {
		a.log.Warn("Metrics push failed", zap.Error(err))
	}
}

func (a *app) close() {
	_ = a.log.Sync()
}

// withApp runs fn with a freshly bootstrapped app.
func withApp(ctx context.Context, fn func(context.Context, *app) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()
	return fn(ctx, a)
}
