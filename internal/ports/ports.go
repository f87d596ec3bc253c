// Package ports declares the outbound interfaces the use cases depend on.
package ports

import (
	"context"
	"time"

	"EstatePulse/internal/domain"
)

// LocationSummary is an aggregate row over stored items for one locality.
type LocationSummary struct {
	Location      string  `json:"location"`
	ItemCount     int     `json:"item_count"`
	AvgScore      float64 `json:"avg_score"`
	PositiveCount int     `json:"positive_count"`
	NegativeCount int     `json:"negative_count"`
}

// SentimentStore persists processed items across runs.
type SentimentStore interface {
	Insert(ctx context.Context, item domain.ProcessedItem) error
	SummaryByLocation(ctx context.Context, location string) (LocationSummary, error)
	Close() error
}

// Notifier delivers a finished report digest to an outbound channel.
type Notifier interface {
	PublishDigest(ctx context.Context, report domain.AggregateReport) error
}

// Scheduler triggers recurring analysis runs.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
