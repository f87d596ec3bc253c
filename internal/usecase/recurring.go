package usecase

import (
	"context"
	"log/slog"
	"time"

	"EstatePulse/internal/ports"
)

// RecurringAnalysis drives the pipeline on a schedule for one locality.
type RecurringAnalysis struct {
	pipeline  *Pipeline
	scheduler ports.Scheduler
	location  string
	logger    *slog.Logger
}

// NewRecurringAnalysis builds the recurring runner.
func NewRecurringAnalysis(pipeline *Pipeline, scheduler ports.Scheduler, location string, logger *slog.Logger) *RecurringAnalysis {
	return &RecurringAnalysis{
		pipeline:  pipeline,
		scheduler: scheduler,
		location:  location,
		logger:    logger,
	}
}

// Start begins scheduled runs. Failures are logged and the schedule keeps
// going; one bad run must not end the service.
func (r *RecurringAnalysis) Start(ctx context.Context) error {
	return r.scheduler.Start(ctx, func(now time.Time) {
		r.logger.Info("scheduled analysis starting", "location", r.location, "at", now)
		if _, _, err := r.pipeline.Analyze(ctx, r.location); err != nil {
			r.logger.Error("scheduled analysis failed", "location", r.location, "error", err)
		}
	})
}

// Stop halts scheduled runs.
func (r *RecurringAnalysis) Stop(ctx context.Context) error {
	return r.scheduler.Stop(ctx)
}
