// Package market builds locality market context snapshots, model-backed with
// a text-mining fallback.
package market

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"EstatePulse/internal/domain"
	"EstatePulse/internal/llm"
)

// Provider fetches one MarketContext per locality and caches it for the
// process lifetime. Market context changes slowly, a run never needs it twice.
type Provider struct {
	client *llm.Client

	mu    sync.Mutex
	cache map[string]domain.MarketContext
}

// NewProvider builds the provider around a completion client.
func NewProvider(client *llm.Client) *Provider {
	return &Provider{
		client: client,
		cache:  map[string]domain.MarketContext{},
	}
}

// Context returns the market snapshot for a locality. Without a usable client
// it returns a fixed neutral context; a response the model refuses to shape
// as JSON is mined for signal words instead.
func (p *Provider) Context(ctx context.Context, location string) domain.MarketContext {
	p.mu.Lock()
	if cached, ok := p.cache[location]; ok {
		p.mu.Unlock()
		return cached
	}
	p.mu.Unlock()

	if !p.client.Available() {
		return neutralContext(location)
	}

	prompt := fmt.Sprintf(
		"Provide a current real estate market context for %s, Hyderabad, India. "+
			"Respond with only a JSON object with fields: market_sentiment (Positive/Negative/Neutral), "+
			"key_trends (array, max 3), price_direction (Rising/Falling/Stable), "+
			"market_activity (High/Moderate/Low), context_summary (one sentence), "+
			"price_range, investment_outlook, risk_factors (array, max 2), growth_drivers (array, max 2).",
		location)

	resp, err := p.client.Complete(ctx, prompt, 800)
	if err != nil {
		return neutralContext(location)
	}

	var parsed domain.MarketContext
	if err := llm.ExtractJSONObject(resp, &parsed); err != nil {
		parsed = contextFromText(resp, location)
	}
	if parsed.MarketSentiment == "" {
		parsed.MarketSentiment = "Neutral"
	}

	p.mu.Lock()
	p.cache[location] = parsed
	p.mu.Unlock()
	return parsed
}

var (
	positiveSignals = []string{"positive", "bullish", "growing", "strong", "rising"}
	negativeSignals = []string{"negative", "bearish", "declining", "weak", "falling"}
)

// contextFromText mines a prose response for directional vocabulary and
// usable sentences.
func contextFromText(resp, location string) domain.MarketContext {
	lower := strings.ToLower(resp)

	sentiment := "Neutral"
	direction := "Stable"
	if containsAny(lower, positiveSignals) {
		sentiment = "Positive"
		direction = "Rising"
	} else if containsAny(lower, negativeSignals) {
		sentiment = "Negative"
		direction = "Falling"
	}

	activity := "Moderate"
	if strings.Contains(lower, "high activity") || strings.Contains(lower, "strong demand") {
		activity = "High"
	} else if strings.Contains(lower, "low activity") || strings.Contains(lower, "weak demand") {
		activity = "Low"
	}

	trends, drivers, risks := mineSentences(resp)
	if len(trends) == 0 {
		trends = []string{fmt.Sprintf("Market analysis for %s completed", location)}
	}
	if len(drivers) == 0 {
		drivers = []string{"Infrastructure development", "Location advantages"}
	}
	if len(risks) == 0 {
		risks = []string{"Standard market risks apply"}
	}

	summary := strings.TrimSpace(resp)
	if len(summary) > 200 {
		summary = summary[:200]
	}

	return domain.MarketContext{
		MarketSentiment:   sentiment,
		KeyTrends:         trends,
		PriceDirection:    direction,
		MarketActivity:    activity,
		ContextSummary:    summary,
		PriceRange:        "Varies by project",
		InvestmentOutlook: sentiment,
		RiskFactors:       risks,
		GrowthDrivers:     drivers,
	}
}

var (
	trendWords  = []string{"trend", "price", "demand", "growth", "appreciation"}
	driverWords = []string{"infrastructure", "connectivity", "metro", "it corridor", "employment", "development"}
	riskWords   = []string{"risk", "concern", "caution", "oversupply", "delay"}
)

// mineSentences scans the first sentences of the response and buckets them by
// vocabulary, capped at 3 trends, 2 drivers and 2 risks.
func mineSentences(resp string) (trends, drivers, risks []string) {
	sentences := strings.FieldsFunc(resp, func(r rune) bool {
		return r == '.' || r == '\n'
	})
	if len(sentences) > 10 {
		sentences = sentences[:10]
	}

	for _, raw := range sentences {
		sentence := strings.TrimSpace(raw)
		if len(sentence) <= 20 {
			continue
		}
		if len(sentence) > 100 {
			sentence = sentence[:100]
		}
		lower := strings.ToLower(sentence)
		switch {
		case len(trends) < 3 && containsAny(lower, trendWords):
			trends = append(trends, sentence)
		case len(drivers) < 2 && containsAny(lower, driverWords):
			drivers = append(drivers, sentence)
		case len(risks) < 2 && containsAny(lower, riskWords):
			risks = append(risks, sentence)
		}
	}
	return trends, drivers, risks
}

func neutralContext(location string) domain.MarketContext {
	return domain.MarketContext{
		MarketSentiment:   "Neutral",
		KeyTrends:         []string{fmt.Sprintf("Market data for %s unavailable", location)},
		PriceDirection:    "Stable",
		MarketActivity:    "Moderate",
		ContextSummary:    fmt.Sprintf("No live market context available for %s", location),
		PriceRange:        "Unknown",
		InvestmentOutlook: "Neutral",
		RiskFactors:       []string{"Insufficient market data"},
		GrowthDrivers:     []string{"Infrastructure development"},
	}
}

func containsAny(lower string, words []string) bool {
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}
