package sentiment

import (
	"context"
	"testing"

	"EstatePulse/internal/domain"
)

func TestKeywordScorerPositiveClamp(t *testing.T) {
	t.Parallel()

	s := NewKeywordScorer()
	got := s.ScoreOne(context.Background(), "great investment opportunity, affordable and modern", "gachibowli")

	if got.Sentiment != domain.SentimentPositive {
		t.Fatalf("expected positive, got %s", got.Sentiment)
	}
	if got.Score != 0.8 {
		t.Fatalf("expected clamped score 0.8, got %v", got.Score)
	}
	if got.Confidence != 0.6 {
		t.Fatalf("expected clamped confidence 0.6, got %v", got.Confidence)
	}
	if got.AnalysisType != domain.AnalysisFallback {
		t.Fatalf("expected fallback analysis type, got %s", got.AnalysisType)
	}
}

func TestKeywordScorerNegativeClamp(t *testing.T) {
	t.Parallel()

	s := NewKeywordScorer()
	got := s.ScoreOne(context.Background(), "terrible overpriced risky crash, a bubble to avoid", "gachibowli")

	if got.Sentiment != domain.SentimentNegative {
		t.Fatalf("expected negative, got %s", got.Sentiment)
	}
	if got.Score != -0.8 {
		t.Fatalf("expected clamped score -0.8, got %v", got.Score)
	}
}

func TestKeywordScorerModerateScores(t *testing.T) {
	t.Parallel()

	s := NewKeywordScorer()

	got := s.ScoreOne(context.Background(), "good connectivity here", "kondapur")
	if got.Score != 0.4 {
		t.Fatalf("one positive hit should score 0.4, got %v", got.Score)
	}
	if got.Confidence != 0.15 {
		t.Fatalf("one-hit confidence should be 0.15, got %v", got.Confidence)
	}

	got = s.ScoreOne(context.Background(), "noisy and cramped", "kondapur")
	if got.Score != -0.5 {
		t.Fatalf("two negative hits should score -0.5, got %v", got.Score)
	}
}

func TestKeywordScorerNeutralAndEmpty(t *testing.T) {
	t.Parallel()

	s := NewKeywordScorer()

	got := s.ScoreOne(context.Background(), "the flat sits near the station", "kondapur")
	if got.Sentiment != domain.SentimentNeutral || got.Score != 0 {
		t.Fatalf("balanced text should be neutral with score 0, got %+v", got)
	}

	got = s.ScoreOne(context.Background(), "   ", "kondapur")
	if got.AnalysisType != domain.AnalysisEmpty {
		t.Fatalf("blank text should yield empty analysis type, got %s", got.AnalysisType)
	}
	if got.Sentiment != domain.SentimentNeutral || got.Score != 0 || got.Confidence != 0 {
		t.Fatalf("blank text should yield zeroed neutral result, got %+v", got)
	}
}

func TestKeywordScorerBatch(t *testing.T) {
	t.Parallel()

	s := NewKeywordScorer()
	results := s.ScoreBatch(context.Background(), []string{
		"good area",
		"terrible area",
		"",
	}, "miyapur")

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[0].Sentiment != domain.SentimentPositive ||
		results[1].Sentiment != domain.SentimentNegative ||
		results[2].AnalysisType != domain.AnalysisEmpty {
		t.Fatalf("unexpected batch results: %+v", results)
	}
}
