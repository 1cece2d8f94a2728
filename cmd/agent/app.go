package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"social_agent/internal/config"
	"social_agent/internal/domain"
	"social_agent/internal/llm"
	"social_agent/internal/metrics"
	"social_agent/internal/publisher"
	"social_agent/internal/service"
	"social_agent/internal/stage"
	"social_agent/internal/stage/llmstage"
	"social_agent/internal/storage/jsonfile"
	"social_agent/internal/storage/postgres"
)

// app holds the wired pipeline and everything that must be released after
// a command finishes.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	pipeline *service.Pipeline
	closers  []func() error
}

func openApp(cmd *cobra.Command, opts *rootOptions) (*app, error) {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return nil, err
	}
	if opts.metricsAddr != "" {
		cfg.Metrics.Addr = opts.metricsAddr
	}

	a, err := newApp(cmd.Context(), cfg, setupLogger(cfg.LogLevel))
	if err != nil {
		return nil, err
	}
	return a, nil
}

// loadConfig falls back to defaults when the default config file is absent.
// A file named explicitly with --config must exist.
func loadConfig(cmd *cobra.Command, opts *rootOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err == nil {
		return cfg, nil
	}
	if errors.Is(err, fs.ErrNotExist) && !cmd.Flags().Changed("config") {
		cfg = config.Default()
		return cfg, cfg.Validate()
	}
	return nil, err
}

func newApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (_ *app, err error) {
	a := &app{cfg: cfg, logger: logger}
	defer func() {
		if err != nil {
			a.Close()
		}
	}()

	history, err := a.openHistory(ctx)
	if err != nil {
		return nil, err
	}

	sink, err := a.openSink()
	if err != nil {
		return nil, err
	}

	stages, err := a.openStages(ctx)
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.New(reg)
	if cfg.Metrics.Addr != "" {
		a.serveMetrics(cfg.Metrics.Addr, reg)
	}

	a.pipeline = service.NewPipeline(
		stages,
		sink,
		history,
		domain.NewPlatformSet(cfg.Platforms...),
		collector,
		logger,
		service.Options{
			StageTimeout:    cfg.Stages.Timeout,
			RejectPast:      cfg.Schedule.RejectPast,
			DefaultPlatform: domain.Platform(strings.ToLower(strings.TrimSpace(cfg.Platforms[0]))),
		},
	)
	return a, nil
}

func (a *app) openHistory(ctx context.Context) (service.HistoryStore, error) {
	switch a.cfg.History.Backend {
	case "postgres":
		db, err := sqlx.ConnectContext(ctx, "postgres", a.cfg.Database.DSN())
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		a.closers = append(a.closers, db.Close)

		if err := db.PingContext(ctx); err != nil {
			return nil, fmt.Errorf("ping database: %w", err)
		}
		a.logger.Debug("connected to database", "host", a.cfg.Database.Host, "dbname", a.cfg.Database.DBName)
		return postgres.NewHistoryStore(db, postgres.NewTransactionManager(db)), nil
	default:
		a.logger.Debug("using file history", "path", a.cfg.History.Path)
		return jsonfile.NewStore(a.cfg.History.Path), nil
	}
}

func (a *app) openSink() (service.Sink, error) {
	switch a.cfg.Sink.Kind {
	case "rabbitmq":
		queue, err := publisher.DialQueue(publisher.QueueConfig{
			URL:        a.cfg.RabbitMQ.URL,
			Exchange:   a.cfg.RabbitMQ.Exchange,
			RoutingKey: a.cfg.RabbitMQ.RoutingKey,
			QueueName:  a.cfg.RabbitMQ.QueueName,
		}, a.logger)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, queue.Close)
		return queue, nil
	default:
		return publisher.NewLogSink(a.logger), nil
	}
}

func (a *app) openStages(ctx context.Context) (service.Stages, error) {
	switch a.cfg.Stages.Kind {
	case "llm":
		client, err := llm.NewGeminiClient(ctx, a.cfg.LLM.APIKey, a.cfg.LLM.Model)
		if err != nil {
			return service.Stages{}, err
		}
		a.closers = append(a.closers, client.Close)

		s := llmstage.New(client, llmstage.RetryConfig{
			MaxRetries: a.cfg.LLM.MaxRetries,
			BaseDelay:  a.cfg.LLM.BaseDelay,
			MaxDelay:   a.cfg.LLM.MaxDelay,
		}, a.logger)
		return service.Stages{Analyzer: s, Researcher: s, Creator: s, Reviewer: s}, nil
	default:
		s := stage.NewStatic(a.cfg.Stages.Interests)
		return service.Stages{Analyzer: s, Researcher: s, Creator: s, Reviewer: s}, nil
	}
}

func (a *app) serveMetrics(addr string, reg *prometheus.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler(reg))
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("metrics server failed", "addr", addr, "error", err)
		}
	}()
	a.logger.Info("serving metrics", "addr", addr)

	a.closers = append(a.closers, func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	})
}

// Close releases resources in reverse order of acquisition.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn("failed to release resource", "error", err)
		}
	}
	a.closers = nil
}
