// Package sentiment scores cleaned locality text. The cloud scorer calls the
// completion API with a response cache; the keyword scorer is the offline
// fallback that keeps the pipeline alive without credentials or network.
package sentiment

import (
	"context"
	"fmt"
	"strings"

	"EstatePulse/internal/domain"
)

// Scorer assigns a sentiment result to locality text.
type Scorer interface {
	ScoreOne(ctx context.Context, text, location string) domain.SentimentResult
	ScoreBatch(ctx context.Context, texts []string, location string) []domain.SentimentResult
}

var positiveKeywords = []string{
	"good", "great", "excellent", "amazing", "fantastic", "wonderful",
	"buy", "invest", "opportunity", "profitable", "growth", "rising",
	"affordable", "value", "deal", "recommended", "bullish", "optimistic",
	"beautiful", "spacious", "convenient", "prime", "luxury", "modern",
}

var negativeKeywords = []string{
	"bad", "terrible", "awful", "horrible", "disappointing", "overpriced",
	"expensive", "risky", "avoid", "falling", "crash", "bubble",
	"bearish", "pessimistic", "declining", "loss", "fraud", "scam",
	"small", "cramped", "noisy", "traffic", "pollution", "old",
}

// KeywordScorer counts positive and negative market vocabulary. Scores are
// capped at +/-0.8 so lexicon hits never outrank a full model analysis.
type KeywordScorer struct{}

var _ Scorer = (*KeywordScorer)(nil)

// NewKeywordScorer builds the lexicon scorer.
func NewKeywordScorer() *KeywordScorer {
	return &KeywordScorer{}
}

func (s *KeywordScorer) ScoreOne(_ context.Context, text, _ string) domain.SentimentResult {
	if strings.TrimSpace(text) == "" {
		return domain.SentimentResult{
			Sentiment:    domain.SentimentNeutral,
			AnalysisType: domain.AnalysisEmpty,
		}
	}

	lower := strings.ToLower(text)
	pos := countHits(lower, positiveKeywords)
	neg := countHits(lower, negativeKeywords)

	var score float64
	switch {
	case pos > neg:
		score = 0.3 + 0.1*float64(pos)
		if score > 0.8 {
			score = 0.8
		}
	case neg > pos:
		score = -0.3 - 0.1*float64(neg)
		if score < -0.8 {
			score = -0.8
		}
	}

	diff := pos - neg
	if diff < 0 {
		diff = -diff
	}
	confidence := 0.15 * float64(diff)
	if confidence > 0.6 {
		confidence = 0.6
	}

	return domain.SentimentResult{
		Sentiment:    domain.SentimentForScore(score),
		Score:        score,
		Confidence:   confidence,
		Reason:       fmt.Sprintf("Keyword-based analysis (P:%d, N:%d)", pos, neg),
		AnalysisType: domain.AnalysisFallback,
	}
}

func (s *KeywordScorer) ScoreBatch(ctx context.Context, texts []string, location string) []domain.SentimentResult {
	results := make([]domain.SentimentResult, len(texts))
	for i, text := range texts {
		results[i] = s.ScoreOne(ctx, text, location)
	}
	return results
}

func countHits(lower string, keywords []string) int {
	hits := 0
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			hits++
		}
	}
	return hits
}
