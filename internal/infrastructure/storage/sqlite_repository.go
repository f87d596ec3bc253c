// Package storage persists processed items in sqlite.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"

	"EstatePulse/internal/domain"
	"EstatePulse/internal/ports"
)

const schema = `
CREATE TABLE IF NOT EXISTS sentiment_data (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    source TEXT NOT NULL,
    location TEXT NOT NULL,
    raw_text TEXT NOT NULL,
    clean_text TEXT NOT NULL,
    sentiment TEXT NOT NULL,
    reason TEXT,
    score REAL NOT NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_sentiment_location ON sentiment_data (location);
`

// SQLiteRepository stores sentiment rows in a local sqlite database.
type SQLiteRepository struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

var _ ports.SentimentStore = (*SQLiteRepository)(nil)

// NewSQLiteRepository opens (and if needed initializes) the database at path.
func NewSQLiteRepository(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &SQLiteRepository{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Question),
	}, nil
}

// Insert writes one processed item.
func (r *SQLiteRepository) Insert(ctx context.Context, item domain.ProcessedItem) error {
	query, args, err := r.builder.
		Insert("sentiment_data").
		Columns("source", "location", "raw_text", "clean_text", "sentiment", "reason", "score").
		Values(
			item.Source,
			item.Location,
			item.RawText,
			item.CleanText,
			string(item.Sentiment.Sentiment),
			item.Sentiment.Reason,
			item.Sentiment.Score,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert sentiment row: %w: %w", domain.ErrPersistence, err)
	}
	return nil
}

// SummaryByLocation aggregates stored rows for one locality.
func (r *SQLiteRepository) SummaryByLocation(ctx context.Context, location string) (ports.LocationSummary, error) {
	query, args, err := r.builder.
		Select(
			"COUNT(*)",
			"COALESCE(AVG(score), 0)",
			"COALESCE(SUM(CASE WHEN sentiment = 'Positive' THEN 1 ELSE 0 END), 0)",
			"COALESCE(SUM(CASE WHEN sentiment = 'Negative' THEN 1 ELSE 0 END), 0)",
		).
		From("sentiment_data").
		Where(sq.Eq{"location": location}).
		ToSql()
	if err != nil {
		return ports.LocationSummary{}, fmt.Errorf("build summary query: %w", err)
	}

	summary := ports.LocationSummary{Location: location}
	row := r.db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&summary.ItemCount, &summary.AvgScore, &summary.PositiveCount, &summary.NegativeCount); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return summary, nil
		}
		return ports.LocationSummary{}, fmt.Errorf("scan summary: %w: %w", domain.ErrPersistence, err)
	}
	return summary, nil
}

// Close releases the underlying database handle.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}
