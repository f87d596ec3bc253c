package report

import (
	"context"
	"math"
	"testing"

	"EstatePulse/internal/config"
	"EstatePulse/internal/domain"
	"EstatePulse/internal/llm"
)

func item(src string, score float64) domain.ProcessedItem {
	return domain.ProcessedItem{
		Source:   src,
		Location: "gachibowli",
		Sentiment: domain.SentimentResult{
			Sentiment:  domain.SentimentForScore(score),
			Score:      score,
			Confidence: 0.5,
			Reason:     "reason",
		},
	}
}

func offlineSynthesizer() *Synthesizer {
	return NewSynthesizer(llm.NewClient(config.LLMConfig{}))
}

func TestBuildMetrics(t *testing.T) {
	t.Parallel()

	items := []domain.ProcessedItem{
		item("forum", 0.7), item("forum", 0.6), item("forum", 0.5),
		item("news", 0.6), item("news", 0.6), item("news", 0.5),
		item("photo", -0.2), item("photo", -0.3),
		item("video", 0.0), item("video", 0.0),
	}

	got := offlineSynthesizer().Build(context.Background(), "gachibowli", items, domain.MarketContext{})

	if got.TotalItems != 10 {
		t.Fatalf("expected 10 items, got %d", got.TotalItems)
	}
	if got.Overall.PositiveCount != 6 || got.Overall.NegativeCount != 2 || got.Overall.NeutralCount != 2 {
		t.Fatalf("unexpected counts: %+v", got.Overall)
	}
	if math.Abs(got.Overall.AvgScore-0.3) > 1e-9 {
		t.Fatalf("expected avg score 0.3, got %v", got.Overall.AvgScore)
	}
	if math.Abs(got.Overall.PositiveRatio-0.6) > 1e-9 {
		t.Fatalf("expected positive ratio 0.6, got %v", got.Overall.PositiveRatio)
	}
	if got.Overall.OverallSentiment != domain.SentimentPositive {
		t.Fatalf("expected overall positive, got %s", got.Overall.OverallSentiment)
	}

	forum := got.Sources["forum"]
	if forum.Count != 3 || math.Abs(forum.AvgScore-0.6) > 1e-9 || forum.PositiveCount != 3 {
		t.Fatalf("unexpected forum metrics: %+v", forum)
	}
	if got.Sources["photo"].Distribution[domain.SentimentNegative] != 2 {
		t.Fatalf("unexpected photo distribution: %+v", got.Sources["photo"])
	}
	if len(got.Details) != 10 {
		t.Fatalf("expected 10 detail entries, got %d", len(got.Details))
	}
}

func TestBuildEmpty(t *testing.T) {
	t.Parallel()

	got := offlineSynthesizer().Build(context.Background(), "uppal", nil, domain.MarketContext{})
	if got.Overall.OverallSentiment != domain.SentimentNeutral || got.TotalItems != 0 {
		t.Fatalf("empty run should be neutral, got %+v", got.Overall)
	}
}

func TestBasicNarrativeRecommendations(t *testing.T) {
	t.Parallel()

	s := offlineSynthesizer()
	ctx := context.Background()

	bullish := s.Build(ctx, "gachibowli", []domain.ProcessedItem{
		item("forum", 0.5), item("news", 0.4),
	}, domain.MarketContext{})
	if bullish.Narrative.Recommendation != "Consider buying opportunities" {
		t.Fatalf("unexpected bullish recommendation: %q", bullish.Narrative.Recommendation)
	}

	bearish := s.Build(ctx, "gachibowli", []domain.ProcessedItem{
		item("forum", -0.5), item("news", -0.4),
	}, domain.MarketContext{})
	if bearish.Narrative.Recommendation != "Exercise caution, wait for better timing" {
		t.Fatalf("unexpected bearish recommendation: %q", bearish.Narrative.Recommendation)
	}

	flat := s.Build(ctx, "gachibowli", []domain.ProcessedItem{
		item("forum", 0.1), item("news", -0.1),
	}, domain.MarketContext{})
	if flat.Narrative.Recommendation != "Monitor market closely" {
		t.Fatalf("unexpected flat recommendation: %q", flat.Narrative.Recommendation)
	}

	if bullish.Narrative.ConfidenceLevel != "Medium" {
		t.Fatalf("offline narrative confidence should be Medium, got %q", bullish.Narrative.ConfidenceLevel)
	}
}

func TestBestAndWorstSources(t *testing.T) {
	t.Parallel()

	got := offlineSynthesizer().Build(context.Background(), "kokapet", []domain.ProcessedItem{
		item("forum", 0.8), item("news", -0.6), item("photo", 0.1),
	}, domain.MarketContext{})

	if got.Narrative.BestSource != "forum" {
		t.Fatalf("expected forum as best source, got %q", got.Narrative.BestSource)
	}
	if got.Narrative.WorstSource != "news" {
		t.Fatalf("expected news as worst source, got %q", got.Narrative.WorstSource)
	}
}
