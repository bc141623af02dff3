// Package bootstrap wires configuration, logging, storage, the content
// provider and the engine for the focusly binaries.
package bootstrap

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"focusly/internal/adapters/claudecli"
	"focusly/internal/adapters/genai"
	"focusly/internal/adapters/metrics"
	"focusly/internal/adapters/retry"
	"focusly/internal/adapters/sqlite"
	"focusly/internal/application"
	"focusly/internal/config"
	"focusly/internal/logging"
	"focusly/internal/ports"
)

// Overrides come from command-line flags and win over the config file
type Overrides struct {
	ConfigPath string
	DataPath   string
}

// Runtime holds the long-lived dependencies of one process
type Runtime struct {
	Config  *config.Config
	Logger  *zap.Logger
	Store   *sqlite.Store
	Metrics *metrics.Collector
	Engine  *application.Engine

	unsubscribe func()
}

// Open loads configuration and state and returns a ready engine
func Open(ctx context.Context, o Overrides) (*Runtime, error) {
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if o.DataPath != "" {
		cfg.Data.Path = o.DataPath
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	store, err := sqlite.Open(cfg.Data.Path)
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}

	collector := metrics.New()
	provider := NewProvider(cfg, logger, collector)

	engine := application.NewEngine(provider, store,
		application.WithLogger(logger),
		application.WithUnlockAll(cfg.Roadmap.UnlockAll),
		application.WithWorkSeconds(cfg.Timer.WorkSeconds),
	)
	if err := engine.Load(ctx); err != nil {
		store.Close()
		_ = logger.Sync()
		return nil, err
	}

	logger.Info("focusly started",
		zap.String("db", store.Path()),
		zap.String("backend", cfg.Provider.Backend),
		zap.Bool("provider_available", provider.Available()),
		zap.Stringer("api_key", cfg.Provider.APIKey),
	)

	return &Runtime{
		Config:      cfg,
		Logger:      logger,
		Store:       store,
		Metrics:     collector,
		Engine:      engine,
		unsubscribe: engine.Subscribe(collector.Observe),
	}, nil
}

// NewProvider builds the configured backend wrapped in rate limiting and retries
func NewProvider(cfg *config.Config, logger *zap.Logger, collector *metrics.Collector) ports.ContentProvider {
	var inner ports.ContentProvider
	switch cfg.Provider.Backend {
	case config.BackendClaudeCLI:
		inner = claudecli.NewProvider(claudecli.WithModel(cfg.Provider.ContentModel))
	default:
		inner = genai.New(genai.Config{
			APIKey:       cfg.Provider.APIKey.Value(),
			BaseURL:      cfg.Provider.BaseURL,
			RoadmapModel: cfg.Provider.RoadmapModel,
			ContentModel: cfg.Provider.ContentModel,
		}, logger)
	}

	return retry.New(inner, retry.Config{
		MaxAttempts:       cfg.Provider.MaxAttempts,
		BaseDelay:         cfg.Provider.BaseDelay,
		RequestsPerMinute: cfg.Provider.RequestsPerMinute,
	}, retry.WithLogger(logger), retry.WithMetrics(collector))
}

// ServeMetrics exposes the Prometheus endpoint when metrics.addr is set.
// It returns immediately; the server stops with ctx.
func (r *Runtime) ServeMetrics(ctx context.Context) {
	addr := r.Config.Metrics.Addr
	if addr == "" {
		return
	}
	go func() {
		if err := r.Metrics.Serve(ctx, addr, r.Logger); err != nil {
			r.Logger.Error("metrics endpoint failed", zap.Error(err))
		}
	}()
}

// Close releases the store and flushes the logger
func (r *Runtime) Close() error {
	if r.unsubscribe != nil {
		r.unsubscribe()
	}
	err := r.Store.Close()
	_ = r.Logger.Sync()
	return err
}
