package sentiment

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"EstatePulse/internal/domain"
	"EstatePulse/internal/llm"
)

const (
	batchSize      = 10
	cacheKeyPrefix = 100
)

// CloudScorer asks the completion API for a structured sentiment judgment.
// Successful analyses are cached for the process lifetime keyed by a text
// prefix and the location, so repeated runs over overlapping content do not
// burn tokens. Every failure path degrades, never errors: unparseable
// responses get a coarse text sniff, transport failures fall back to the
// keyword scorer.
type CloudScorer struct {
	client   *llm.Client
	fallback *KeywordScorer
	limiter  *rate.Limiter

	mu    sync.Mutex
	cache map[string]domain.SentimentResult
}

var _ Scorer = (*CloudScorer)(nil)

// NewCloudScorer builds the scorer around a completion client.
func NewCloudScorer(client *llm.Client) *CloudScorer {
	return &CloudScorer{
		client:   client,
		fallback: NewKeywordScorer(),
		limiter:  rate.NewLimiter(rate.Every(time.Second), 1),
		cache:    map[string]domain.SentimentResult{},
	}
}

// Available reports whether model-backed scoring is possible.
func (s *CloudScorer) Available() bool { return s.client.Available() }

type sentimentWire struct {
	TextIndex           int      `json:"text_index"`
	Sentiment           string   `json:"sentiment"`
	Score               float64  `json:"score"`
	Confidence          float64  `json:"confidence"`
	Reason              string   `json:"reason"`
	RealEstateSentiment string   `json:"real_estate_sentiment"`
	PriceSentiment      string   `json:"price_sentiment"`
	InvestmentSentiment string   `json:"investment_sentiment"`
	KeyFactors          []string `json:"key_factors"`
}

func (w sentimentWire) toResult() domain.SentimentResult {
	return domain.SentimentResult{
		Sentiment:           domain.SentimentForScore(w.Score),
		Score:               w.Score,
		Confidence:          w.Confidence,
		Reason:              w.Reason,
		AnalysisType:        domain.AnalysisComprehensive,
		RealEstateSentiment: w.RealEstateSentiment,
		PriceSentiment:      w.PriceSentiment,
		InvestmentSentiment: w.InvestmentSentiment,
		KeyFactors:          w.KeyFactors,
	}
}

func (s *CloudScorer) ScoreOne(ctx context.Context, text, location string) domain.SentimentResult {
	if strings.TrimSpace(text) == "" {
		return s.fallback.ScoreOne(ctx, text, location)
	}
	if cached, ok := s.lookup(text, location); ok {
		return cached
	}
	if !s.Available() {
		return s.fallback.ScoreOne(ctx, text, location)
	}

	prompt := fmt.Sprintf(
		"You are a real estate market analyst for %s, Hyderabad. Analyze the sentiment of this text "+
			"about the local property market:\n\n%s\n\n"+
			"Respond with only a JSON object with fields: sentiment (Positive/Negative/Neutral), "+
			"score (-1.0 to 1.0), confidence (0.0 to 1.0), reason (one sentence), "+
			"real_estate_sentiment, price_sentiment, investment_sentiment, key_factors (string array).",
		location, text)

	resp, err := s.client.Complete(ctx, prompt, 500)
	if err != nil {
		return s.fallback.ScoreOne(ctx, text, location)
	}

	var wire sentimentWire
	if err := llm.ExtractJSONObject(resp, &wire); err != nil {
		return sniffResponse(resp)
	}

	result := wire.toResult()
	s.store(text, location, result)
	return result
}

func (s *CloudScorer) ScoreBatch(ctx context.Context, texts []string, location string) []domain.SentimentResult {
	results := make([]domain.SentimentResult, len(texts))

	var pending []int
	for i, text := range texts {
		if cached, ok := s.lookup(text, location); ok {
			results[i] = cached
		} else {
			pending = append(pending, i)
		}
	}
	if len(pending) == 0 {
		return results
	}
	if !s.Available() {
		for _, i := range pending {
			results[i] = s.fallback.ScoreOne(ctx, texts[i], location)
		}
		return results
	}

	for start := 0; start < len(pending); start += batchSize {
		end := start + batchSize
		if end > len(pending) {
			end = len(pending)
		}
		batch := pending[start:end]

		if err := s.limiter.Wait(ctx); err != nil {
			for _, i := range batch {
				results[i] = s.fallback.ScoreOne(ctx, texts[i], location)
			}
			continue
		}
		s.scoreChunk(ctx, texts, location, batch, results)
	}
	return results
}

func (s *CloudScorer) scoreChunk(ctx context.Context, texts []string, location string, indexes []int, results []domain.SentimentResult) {
	var sb strings.Builder
	fmt.Fprintf(&sb,
		"You are a real estate market analyst for %s, Hyderabad. Analyze the sentiment of each "+
			"numbered text about the local property market.\n\n", location)
	for n, i := range indexes {
		fmt.Fprintf(&sb, "Text %d: %s\n\n", n, texts[i])
	}
	sb.WriteString(
		"Respond with only a JSON array, one object per text, each with fields: text_index, " +
			"sentiment (Positive/Negative/Neutral), score (-1.0 to 1.0), confidence (0.0 to 1.0), " +
			"reason, real_estate_sentiment, price_sentiment, investment_sentiment, key_factors.")

	resp, err := s.client.Complete(ctx, sb.String(), 2000)
	if err != nil {
		for _, i := range indexes {
			results[i] = s.fallback.ScoreOne(ctx, texts[i], location)
		}
		return
	}

	var wires []sentimentWire
	if err := llm.ExtractJSONArray(resp, &wires); err != nil {
		for _, i := range indexes {
			results[i] = s.ScoreOne(ctx, texts[i], location)
		}
		return
	}

	filled := make(map[int]bool, len(indexes))
	for _, wire := range wires {
		if wire.TextIndex < 0 || wire.TextIndex >= len(indexes) {
			continue
		}
		i := indexes[wire.TextIndex]
		results[i] = wire.toResult()
		s.store(texts[i], location, results[i])
		filled[i] = true
	}
	for _, i := range indexes {
		if !filled[i] {
			results[i] = s.fallback.ScoreOne(ctx, texts[i], location)
		}
	}
}

// sniffResponse salvages a verdict from prose the model returned instead of
// JSON. Not cached, since a retry may yield a proper analysis.
func sniffResponse(resp string) domain.SentimentResult {
	lower := strings.ToLower(resp)
	score := 0.0
	switch {
	case strings.Contains(lower, "positive"):
		score = 0.6
	case strings.Contains(lower, "negative"):
		score = -0.6
	}

	reason := strings.TrimSpace(resp)
	if len(reason) > 200 {
		reason = reason[:200]
	}
	return domain.SentimentResult{
		Sentiment:    domain.SentimentForScore(score),
		Score:        score,
		Confidence:   0.7,
		Reason:       reason,
		AnalysisType: domain.AnalysisTextParsed,
	}
}

func cacheKey(text, location string) string {
	prefix := text
	if len(prefix) > cacheKeyPrefix {
		prefix = prefix[:cacheKeyPrefix]
	}
	return prefix + "_" + location
}

func (s *CloudScorer) lookup(text, location string) (domain.SentimentResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result, ok := s.cache[cacheKey(text, location)]
	return result, ok
}

func (s *CloudScorer) store(text, location string, result domain.SentimentResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache[cacheKey(text, location)] = result
}
