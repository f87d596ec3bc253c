package storage

import (
	"context"
	"math"
	"path/filepath"
	"testing"
	"time"

	"EstatePulse/internal/domain"
)

func testRepository(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func processedItem(location string, score float64) domain.ProcessedItem {
	return domain.ProcessedItem{
		Source:    "forum",
		Location:  location,
		RawText:   "raw text about the market",
		CleanText: "raw text market",
		Sentiment: domain.SentimentResult{
			Sentiment: domain.SentimentForScore(score),
			Score:     score,
			Reason:    "test reason",
		},
		Timestamp: time.Now(),
	}
}

func TestInsertAndSummary(t *testing.T) {
	t.Parallel()

	repo := testRepository(t)
	ctx := context.Background()

	for _, score := range []float64{0.6, 0.2, -0.4} {
		if err := repo.Insert(ctx, processedItem("gachibowli", score)); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}
	if err := repo.Insert(ctx, processedItem("kondapur", 0.5)); err != nil {
		t.Fatalf("insert other locality: %v", err)
	}

	summary, err := repo.SummaryByLocation(ctx, "gachibowli")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.ItemCount != 3 {
		t.Fatalf("expected 3 rows, got %d", summary.ItemCount)
	}
	if summary.PositiveCount != 2 || summary.NegativeCount != 1 {
		t.Fatalf("unexpected counts: %+v", summary)
	}
	want := (0.6 + 0.2 - 0.4) / 3
	if math.Abs(summary.AvgScore-want) > 1e-9 {
		t.Fatalf("expected avg %v, got %v", want, summary.AvgScore)
	}
}

func TestSummaryEmptyLocation(t *testing.T) {
	t.Parallel()

	repo := testRepository(t)
	summary, err := repo.SummaryByLocation(context.Background(), "nowhere")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.ItemCount != 0 || summary.AvgScore != 0 {
		t.Fatalf("expected zeroed summary, got %+v", summary)
	}
}
