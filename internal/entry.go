// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/starford/careergraph/internal/api"
	"github.com/starford/careergraph/internal/careers"
	"github.com/starford/careergraph/internal/dataset"
	"github.com/starford/careergraph/internal/index"
	"github.com/starford/careergraph/internal/mcpserver"
	"github.com/starford/careergraph/internal/metrics"
	"github.com/starford/careergraph/internal/sse"
)

func newApplication(opts []Option) (*application, error) {
	app := &application{version: "dev", logOut: os.Stdout}
	for _, opt := range opts {
		opt(app)
	}
	if app.config == nil {
		return nil, fmt.Errorf("config is required")
	}
	return app, nil
}

func (a *application) logger() *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(a.logOut, &slog.HandlerOptions{
		Level: a.config.App.LogLevel,
	}))
	slog.SetDefault(logger)
	return logger
}

// LoadDataset reads the configured dataset source.
func LoadDataset(cfg *Config) (*dataset.Dataset, error) {
	switch cfg.Dataset.Source {
	case SourceDemo:
		return dataset.Demo(), nil
	case SourceSQLite:
		db, err := index.Open(cfg.SQLite.Path)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		return db.Dataset()
	default:
		return dataset.Load(cfg.Dataset.Path)
	}
}

// LoadEngine reads the configured dataset and builds an engine from it.
func LoadEngine(cfg *Config) (*careers.Engine, *dataset.Dataset, error) {
	d, err := LoadDataset(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("load dataset: %w", err)
	}
	e, err := d.Build(careers.WithMaxPaths(cfg.Engine.MaxPaths))
	if err != nil {
		return nil, nil, fmt.Errorf("build engine: %w", err)
	}
	return e, d, nil
}

// Run starts the HTTP service with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	cfg := app.config
	logger := app.logger()

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("dataset_source", cfg.Dataset.Source),
		slog.String("dataset_path", cfg.Dataset.Path),
		slog.Bool("dataset_watch", cfg.Dataset.Watch),
		slog.Int("max_paths", cfg.Engine.MaxPaths),
		slog.String("log_level", cfg.App.LogLevel.String()))

	engine, d, err := LoadEngine(cfg)
	if err != nil {
		return err
	}
	stats := engine.Stats()
	logger.Info("Dataset loaded",
		slog.String("checksum", d.Checksum),
		slog.Int("titles", stats.Titles),
		slog.Int("people", stats.People),
		slog.Int("edges", stats.Edges))

	holder := careers.NewHolder(engine, d.Checksum)
	m := metrics.New()

	broker := sse.NewBroker()
	defer broker.Close()
	broker.PublishReload(d.Checksum, stats)

	httpServer := &http.Server{
		Addr:              cfg.App.HTTP.Address(),
		Handler:           api.NewRouter(holder, m, broker),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	if cfg.Dataset.Watch {
		g.Go(func() error {
			return dataset.Watch(gCtx, cfg.Dataset.Path, d.Checksum, cfg.Dataset.Debounce, logger, func(next *dataset.Dataset) {
				reload(holder, next, cfg, m, broker, logger)
			})
		})
	}

	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}
		return errShutdown
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errShutdown) {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// errShutdown cancels the group so the watcher exits with the server.
var errShutdown = errors.New("shutdown")

// reload builds an engine from next and swaps it in. On failure the current
// engine stays live.
func reload(holder *careers.Holder, next *dataset.Dataset, cfg *Config, m *metrics.Metrics, broker *sse.Broker, logger *slog.Logger) {
	engine, err := next.Build(careers.WithMaxPaths(cfg.Engine.MaxPaths))
	if err != nil {
		m.ObserveReload(false)
		logger.Warn("dataset reload rejected",
			slog.String("checksum", next.Checksum),
			slog.String("error", err.Error()))
		return
	}
	holder.Store(engine, next.Checksum)
	m.ObserveReload(true)
	stats := engine.Stats()
	broker.PublishReload(next.Checksum, stats)
	logger.Info("dataset reloaded",
		slog.String("checksum", next.Checksum),
		slog.Int("titles", stats.Titles),
		slog.Int("people", stats.People))
}

// Import copies the YAML dataset at from (the configured dataset path when
// empty) into the configured SQLite database.
func Import(_ context.Context, from string, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	cfg := app.config
	logger := app.logger()

	if from == "" {
		from = cfg.Dataset.Path
	}
	d, err := dataset.Load(from)
	if err != nil {
		return err
	}

	db, err := index.Open(cfg.SQLite.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Import(d); err != nil {
		return err
	}
	logger.Info("Dataset imported",
		slog.String("from", from),
		slog.String("sqlite_path", cfg.SQLite.Path),
		slog.String("checksum", d.Checksum),
		slog.Int("titles", len(d.Titles)),
		slog.Int("people", len(d.People)))
	return nil
}

// ServeMCP serves the MCP tools over stdio until stdin closes. Logs go to
// stderr unless redirected, since stdout carries the protocol.
func ServeMCP(_ context.Context, opts ...Option) error {
	app, err := newApplication(append([]Option{WithLogOutput(os.Stderr)}, opts...))
	if err != nil {
		return err
	}
	logger := app.logger()

	engine, d, err := LoadEngine(app.config)
	if err != nil {
		return err
	}
	logger.Info("MCP server starting",
		slog.String("dataset_source", app.config.Dataset.Source),
		slog.String("checksum", d.Checksum))

	srv := mcpserver.New(careers.NewHolder(engine, d.Checksum), app.version)
	return srv.ServeStdio()
}
