package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/yungbote/shiftplan-backend/internal/data/db"
	"github.com/yungbote/shiftplan-backend/internal/http"
	"github.com/yungbote/shiftplan-backend/internal/observability"
	"github.com/yungbote/shiftplan-backend/internal/platform/logger"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Cfg      Config
	Repos    Repos
	Services Services
	Metrics  *observability.Metrics
	Server   *http.Server

	pg           *db.PostgresService
	clients      Clients
	otelShutdown func(context.Context) error
	cancel       context.CancelFunc
}

// Bootstrap opens the logger, database and clients, and wires services
// without building the HTTP surface. The seed command stops here.
func Bootstrap(ctx context.Context) (*App, error) {
	LoadDotEnv()
	bootLog, err := logger.New("development")
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	cfg := LoadConfig(bootLog)
	logger.SetRedaction(cfg.LogRedaction, cfg.LogHashSalt)
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	pg, err := db.NewPostgresService(log, cfg.DB)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init database: %w", err)
	}
	theDB := pg.DB()
	if err := db.AutoMigrateAll(theDB); err != nil {
		_ = pg.Close()
		log.Sync()
		return nil, fmt.Errorf("automigrate: %w", err)
	}
	if err := db.EnsureSchedulingConstraints(theDB); err != nil {
		_ = pg.Close()
		log.Sync()
		return nil, fmt.Errorf("scheduling constraints: %w", err)
	}

	metrics := observability.Init(log, cfg.MetricsEnabled)
	otelShutdown := observability.InitOTel(ctx, log, cfg.Otel)

	clients, err := wireClients(log, cfg)
	if err != nil {
		_ = pg.Close()
		log.Sync()
		return nil, err
	}

	reposet := wireRepos(theDB, log)
	aggs := wireAggregates(theDB, log, metrics, cfg, reposet, clients)
	serviceset := wireServices(log, cfg, reposet, aggs)

	return &App{
		Log:          log,
		DB:           theDB,
		Cfg:          cfg,
		Repos:        reposet,
		Services:     serviceset,
		Metrics:      metrics,
		pg:           pg,
		clients:      clients,
		otelShutdown: otelShutdown,
	}, nil
}

func New(ctx context.Context) (*App, error) {
	a, err := Bootstrap(ctx)
	if err != nil {
		return nil, err
	}
	sqlDB, err := a.DB.DB()
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("sql handle: %w", err)
	}
	handlerset := wireHandlers(a.Log, sqlDB, a.Services)
	middleware := wireMiddleware(a.Log, a.Services)
	a.Server = wireServer(a.Log, a.Cfg, a.Metrics, handlerset, middleware)
	return a, nil
}

// Start launches the background metric collectors.
func (a *App) Start() {
	if a == nil || a.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel

	a.Metrics.StartDBCollector(ctx, a.Log, a.DB)
	a.Metrics.StartRedisCollector(ctx, a.Log, a.Cfg.RedisAddr, a.Cfg.RedisPassword)
}

// Run serves HTTP until ctx is cancelled, then drains in-flight requests.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Server == nil {
		return errors.New("app not initialized")
	}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.Log.Info("Server listening", "port", a.Cfg.Port)
		return a.Server.Run()
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Cfg.ShutdownTimeout)
		defer cancel()
		a.Log.Info("Shutting down server")
		return a.Server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	a.clients.Close()
	if a.otelShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := a.otelShutdown(ctx); err != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
		cancel()
	}
	if a.pg != nil {
		if err := a.pg.Close(); err != nil {
			a.Log.Warn("database close failed", "error", err)
		}
	}
	a.Log.Sync()
}
