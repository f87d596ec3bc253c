// Package app assembles the application from configuration.
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"EstatePulse/internal/config"
	"EstatePulse/internal/gazetteer"
	"EstatePulse/internal/infrastructure/scheduler"
	"EstatePulse/internal/infrastructure/sources"
	"EstatePulse/internal/infrastructure/storage"
	"EstatePulse/internal/infrastructure/telegram"
	"EstatePulse/internal/llm"
	"EstatePulse/internal/market"
	"EstatePulse/internal/ports"
	"EstatePulse/internal/report"
	"EstatePulse/internal/sentiment"
	"EstatePulse/internal/source"
	"EstatePulse/internal/usecase"
)

// App owns the wired pipeline and its lifecycle.
type App struct {
	cfg      config.Config
	logger   *slog.Logger
	pipeline *usecase.Pipeline
	store    ports.SentimentStore
}

// New wires every collaborator from configuration.
func New(cfg config.Config, logger *slog.Logger) (*App, error) {
	if !gazetteer.Known(cfg.Analysis.Locality) {
		logger.Warn("configured locality not in gazetteer, using as-is",
			"locality", cfg.Analysis.Locality)
	}

	client := llm.NewClient(cfg.LLM)

	var demo *source.DemoGenerator
	if cfg.Analysis.DemoContent {
		demo = source.NewDemoGenerator()
	}

	registry := source.NewRegistry()
	registry.Register(sources.NewNewsAdapter(cfg.Sources.News))
	registry.Register(sources.NewVideoAdapter(cfg.Sources.Video))
	registry.Register(sources.NewForumAdapter(cfg.Sources.Forum))
	registry.Register(sources.NewMicroblogAdapter(cfg.Sources.Microblog))
	registry.Register(sources.NewPhotoAdapter(cfg.Sources.Photo, source.NewDemoGenerator()))
	registry.Register(sources.NewResearchAdapter(client))

	store, err := storage.NewSQLiteRepository(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	var notifier ports.Notifier
	if tg := telegram.NewNotifier(cfg.Notifications.Telegram); tg.Configured() {
		notifier = tg
	}

	pipeline := usecase.NewPipeline(usecase.PipelineParams{
		Registry: registry,
		Demo:     demo,
		Scorer:   sentiment.NewCloudScorer(client),
		Market:   market.NewProvider(client),
		Reporter: report.NewSynthesizer(client),
		Store:    store,
		Notifier: notifier,
		Logger:   logger.With("component", "pipeline"),
		Limit:    cfg.Analysis.ItemLimit,
	})

	return &App{
		cfg:      cfg,
		logger:   logger,
		pipeline: pipeline,
		store:    store,
	}, nil
}

// Run executes one analysis, or keeps running on a schedule when an interval
// is configured. The report of each run is printed as JSON to stdout.
func (a *App) Run(ctx context.Context) error {
	defer a.store.Close()

	if err := a.runOnce(ctx); err != nil {
		return err
	}
	if a.cfg.Analysis.Interval <= 0 {
		return nil
	}

	recurring := usecase.NewRecurringAnalysis(
		a.pipeline,
		scheduler.NewTicker(a.cfg.Analysis.Interval),
		a.cfg.Analysis.Locality,
		a.logger,
	)
	if err := recurring.Start(ctx); err != nil {
		return fmt.Errorf("start schedule: %w", err)
	}
	a.logger.Info("running on schedule", "interval", a.cfg.Analysis.Interval)

	<-ctx.Done()
	stopCtx := context.WithoutCancel(ctx)
	return recurring.Stop(stopCtx)
}

func (a *App) runOnce(ctx context.Context) error {
	result, _, err := a.pipeline.Analyze(ctx, a.cfg.Analysis.Locality)
	if err != nil {
		return fmt.Errorf("analyze %s: %w", a.cfg.Analysis.Locality, err)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}
