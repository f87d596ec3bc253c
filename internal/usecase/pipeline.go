// Package usecase wires sources, scoring, and reporting into analysis runs.
package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"EstatePulse/internal/domain"
	"EstatePulse/internal/gazetteer"
	"EstatePulse/internal/market"
	"EstatePulse/internal/ports"
	"EstatePulse/internal/report"
	"EstatePulse/internal/sentiment"
	"EstatePulse/internal/source"
	"EstatePulse/internal/textproc"
)

const (
	maxRawTextLen   = 1000
	maxCleanTextLen = 500
)

// Pipeline runs one full analysis: fetch, filter, clean, score, aggregate,
// persist, notify. Store and Notifier may be nil; Demo may be nil to disable
// synthetic fallback content.
type Pipeline struct {
	registry *source.Registry
	demo     *source.DemoGenerator
	scorer   sentiment.Scorer
	market   *market.Provider
	reporter *report.Synthesizer
	store    ports.SentimentStore
	notifier ports.Notifier
	logger   *slog.Logger
	limit    int
}

// PipelineParams collects the pipeline collaborators.
type PipelineParams struct {
	Registry *source.Registry
	Demo     *source.DemoGenerator
	Scorer   sentiment.Scorer
	Market   *market.Provider
	Reporter *report.Synthesizer
	Store    ports.SentimentStore
	Notifier ports.Notifier
	Logger   *slog.Logger
	Limit    int
}

// NewPipeline builds a pipeline from its collaborators.
func NewPipeline(p PipelineParams) *Pipeline {
	limit := p.Limit
	if limit <= 0 {
		limit = 50
	}
	return &Pipeline{
		registry: p.Registry,
		demo:     p.Demo,
		scorer:   p.Scorer,
		market:   p.Market,
		reporter: p.Reporter,
		store:    p.Store,
		notifier: p.Notifier,
		logger:   p.Logger,
		limit:    limit,
	}
}

// Analyze collects and scores content about one locality and returns the
// aggregate report together with the processed items behind it.
func (p *Pipeline) Analyze(ctx context.Context, location string) (domain.AggregateReport, []domain.ProcessedItem, error) {
	adapters := p.registry.All()
	if len(adapters) == 0 && p.demo == nil {
		return domain.AggregateReport{}, nil, fmt.Errorf("analyze %s: %w", location, domain.ErrNoSources)
	}

	filter := textproc.NewFilter(location)
	var processed []domain.ProcessedItem

	if len(adapters) == 0 {
		for _, name := range []string{source.Forum, source.News, source.Photo} {
			items := p.demo.Items(name, location, p.limit)
			processed = append(processed, p.process(ctx, filter, location, name, items)...)
		}
	}

	for _, adapter := range adapters {
		items := p.collect(ctx, adapter, location)
		processed = append(processed, p.process(ctx, filter, location, adapter.Name(), items)...)
	}

	if len(processed) == 0 {
		return domain.AggregateReport{}, nil, fmt.Errorf("analyze %s: %w", location, domain.ErrNoData)
	}

	marketCtx := p.market.Context(ctx, location)
	result := p.reporter.Build(ctx, location, processed, marketCtx)

	if p.notifier != nil {
		if err := p.notifier.PublishDigest(ctx, result); err != nil {
			p.logger.Warn("digest delivery failed", "error", err)
		}
	}

	p.logger.Info("analysis complete",
		"location", location,
		"items", len(processed),
		"sentiment", result.Overall.OverallSentiment,
		"avgScore", result.Overall.AvgScore,
	)
	return result, processed, nil
}

// collect fetches from one adapter, substituting demo content when the
// adapter is unavailable, fails outright, or comes back empty.
func (p *Pipeline) collect(ctx context.Context, adapter source.Adapter, location string) []domain.RawItem {
	name := adapter.Name()
	if !adapter.Available() {
		p.logger.Debug("source unavailable", "source", name)
		return p.demoItems(name, location)
	}

	items, err := adapter.Fetch(ctx, location, p.limit)
	if err != nil {
		p.logger.Warn("source fetch failed", "source", name, "error", err)
		if len(items) == 0 {
			return p.demoItems(name, location)
		}
	}
	if len(items) == 0 {
		p.logger.Debug("source returned nothing", "source", name)
		return p.demoItems(name, location)
	}

	p.logger.Debug("source fetched", "source", name, "items", len(items))
	return items
}

func (p *Pipeline) demoItems(name, location string) []domain.RawItem {
	if p.demo == nil {
		return nil
	}
	return p.demo.Items(name, location, p.limit)
}

// process filters, cleans, and scores one source's batch.
func (p *Pipeline) process(ctx context.Context, filter *textproc.Filter, queried, src string, items []domain.RawItem) []domain.ProcessedItem {
	kept := filter.Apply(items)
	if len(kept) == 0 {
		return nil
	}

	cleaned := make([]string, len(kept))
	for i, item := range kept {
		cleaned[i] = textproc.Clean(item.Text)
	}

	results := p.scorer.ScoreBatch(ctx, cleaned, queried)

	out := make([]domain.ProcessedItem, 0, len(kept))
	for i, item := range kept {
		location := queried
		if resolved, ok := gazetteer.Resolve(item.Text); ok {
			location = resolved
		}

		processed := domain.ProcessedItem{
			Source:    src,
			Location:  location,
			RawText:   truncate(item.Text, maxRawTextLen),
			CleanText: truncate(cleaned[i], maxCleanTextLen),
			Sentiment: results[i],
			Timestamp: item.Timestamp,
			URL:       item.URL,
			Metadata:  item.Metadata,
		}
		out = append(out, processed)

		if p.store != nil {
			if err := p.store.Insert(ctx, processed); err != nil {
				p.logger.Warn("persist failed, item skipped", "source", src, "error", err)
			}
		}
	}
	return out
}

func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}
