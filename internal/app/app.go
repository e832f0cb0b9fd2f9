package app

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/assetdesk-backend/internal/data/db"
	httpserver "github.com/yungbote/assetdesk-backend/internal/http"
	"github.com/yungbote/assetdesk-backend/internal/observability"
	"github.com/yungbote/assetdesk-backend/internal/platform/logger"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Server   *httpserver.Server
	Cfg      Config
	Repos    Repos
	Services Services

	closers []closer
}

type closer struct {
	name string
	fn   func() error
}

func NewLogger(cfg Config) (*logger.Logger, error) {
	log, err := logger.NewWithOptions(logger.Options{Mode: cfg.Log.Mode, Level: cfg.Log.Level, Redact: true})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return log, nil
}

// OpenDB connects and, when migrate is set, applies schema migrations.
func OpenDB(log *logger.Logger, cfg db.Config, migrate bool) (*db.Service, error) {
	svc, err := db.NewService(log, cfg)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}
	if migrate {
		if err := db.AutoMigrateAll(svc.DB()); err != nil {
			_ = svc.Close()
			return nil, err
		}
	}
	return svc, nil
}

func New(ctx context.Context, cfg Config) (*App, error) {
	log, err := NewLogger(cfg)
	if err != nil {
		return nil, err
	}
	a := &App{Log: log, Cfg: cfg}
	if err := a.init(ctx); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) init(ctx context.Context) error {
	log, cfg := a.Log, a.Cfg

	shutdownOtel, err := observability.InitOTel(ctx, log, cfg.Otel)
	if err != nil {
		return fmt.Errorf("init otel: %w", err)
	}
	a.addCloser("otel", func() error { return shutdownOtel(context.Background()) })

	dbSvc, err := OpenDB(log, cfg.DB, cfg.Migrate)
	if err != nil {
		return err
	}
	a.addCloser("database", dbSvc.Close)
	a.DB = dbSvc.DB()

	store, closeStore, err := resolveObjectStore(ctx, log, cfg.Storage)
	if err != nil {
		return err
	}
	a.addCloser("object store", closeStore)

	fl, closeFlash, err := resolveFlashStore(ctx, log, cfg.Redis)
	if err != nil {
		return err
	}
	a.addCloser("flash store", closeFlash)

	a.Repos = wireRepos(a.DB, log)
	a.Services, err = wireServices(a.DB, log, cfg, a.Repos, store)
	if err != nil {
		return err
	}
	handlerset := wireHandlers(log, a.DB, a.Services, fl, store)
	middleware := wireMiddleware(log, a.Services)
	a.Server = wireServer(log, cfg, handlerset, middleware)
	return nil
}

func (a *App) addCloser(name string, fn func() error) {
	a.closers = append(a.closers, closer{name: name, fn: fn})
}

// Run serves HTTP until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Server == nil {
		return errors.New("app not initialized")
	}
	return a.Server.Run(ctx, a.Cfg.HTTP.ShutdownTimeout)
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() {
	if a == nil {
		return
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		c := a.closers[i]
		if err := c.fn(); err != nil && a.Log != nil {
			a.Log.Warn("Close failed", "resource", c.name, "error", err)
		}
	}
	a.closers = nil
	if a.Log != nil {
		a.Log.Sync()
	}
}
