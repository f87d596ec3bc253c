// Package report aggregates scored items into the cross-source market report.
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"EstatePulse/internal/domain"
	"EstatePulse/internal/llm"
)

// Synthesizer turns one run's processed items into an AggregateReport. The
// narrative section prefers a model-written summary and degrades to a
// deterministic template on any failure.
type Synthesizer struct {
	client *llm.Client
	now    func() time.Time
}

// NewSynthesizer builds the synthesizer around a completion client.
func NewSynthesizer(client *llm.Client) *Synthesizer {
	return &Synthesizer{
		client: client,
		now:    time.Now,
	}
}

// Build computes overall and per-source metrics and attaches the narrative.
func (s *Synthesizer) Build(ctx context.Context, location string, items []domain.ProcessedItem, market domain.MarketContext) domain.AggregateReport {
	overall := overallMetrics(items)
	sources := sourceMetrics(items)

	report := domain.AggregateReport{
		Location:    location,
		GeneratedAt: s.now(),
		TotalItems:  len(items),
		Overall:     overall,
		Sources:     sources,
		Market:      market,
		Details:     details(items),
	}
	report.Narrative = s.narrative(ctx, location, items, report)
	return report
}

func overallMetrics(items []domain.ProcessedItem) domain.OverallMetrics {
	var m domain.OverallMetrics
	if len(items) == 0 {
		m.OverallSentiment = domain.SentimentNeutral
		return m
	}

	var scoreSum, confSum float64
	for _, item := range items {
		scoreSum += item.Sentiment.Score
		confSum += item.Sentiment.Confidence
		switch item.Sentiment.Sentiment {
		case domain.SentimentPositive:
			m.PositiveCount++
		case domain.SentimentNegative:
			m.NegativeCount++
		default:
			m.NeutralCount++
		}
	}

	total := float64(len(items))
	m.PositiveRatio = float64(m.PositiveCount) / total
	m.NegativeRatio = float64(m.NegativeCount) / total
	m.AvgScore = scoreSum / total
	m.AvgConfidence = confSum / total
	m.OverallSentiment = domain.SentimentForScore(m.AvgScore)
	return m
}

func sourceMetrics(items []domain.ProcessedItem) map[string]domain.SourceMetrics {
	type acc struct {
		count    int
		scoreSum float64
		positive int
		dist     map[domain.Sentiment]int
	}
	accs := map[string]*acc{}
	for _, item := range items {
		a, ok := accs[item.Source]
		if !ok {
			a = &acc{dist: map[domain.Sentiment]int{}}
			accs[item.Source] = a
		}
		a.count++
		a.scoreSum += item.Sentiment.Score
		a.dist[item.Sentiment.Sentiment]++
		if item.Sentiment.Sentiment == domain.SentimentPositive {
			a.positive++
		}
	}

	out := make(map[string]domain.SourceMetrics, len(accs))
	for name, a := range accs {
		out[name] = domain.SourceMetrics{
			Count:         a.count,
			AvgScore:      a.scoreSum / float64(a.count),
			PositiveCount: a.positive,
			PositiveRatio: float64(a.positive) / float64(a.count),
			Distribution:  a.dist,
		}
	}
	return out
}

func details(items []domain.ProcessedItem) []domain.SentimentResult {
	out := make([]domain.SentimentResult, 0, len(items))
	for _, item := range items {
		out = append(out, item.Sentiment)
	}
	return out
}

type narrativeStats struct {
	Location        string             `json:"location"`
	TotalItems      int                `json:"total_items"`
	Overall         domain.Sentiment   `json:"overall_sentiment"`
	AvgScore        float64            `json:"average_score"`
	PositiveRatio   float64            `json:"positive_ratio"`
	SourceAvgScores map[string]float64 `json:"source_avg_scores"`
	MarketSentiment string             `json:"market_sentiment"`
	PositiveSamples []string           `json:"positive_samples"`
	NegativeSamples []string           `json:"negative_samples"`
}

func (s *Synthesizer) narrative(ctx context.Context, location string, items []domain.ProcessedItem, report domain.AggregateReport) domain.NarrativeReport {
	if !s.client.Available() {
		return basicNarrative(location, report)
	}

	stats := narrativeStats{
		Location:        location,
		TotalItems:      report.TotalItems,
		Overall:         report.Overall.OverallSentiment,
		AvgScore:        report.Overall.AvgScore,
		PositiveRatio:   report.Overall.PositiveRatio,
		SourceAvgScores: map[string]float64{},
		MarketSentiment: report.Market.MarketSentiment,
		PositiveSamples: sampleReasons(items, domain.SentimentPositive, 3),
		NegativeSamples: sampleReasons(items, domain.SentimentNegative, 3),
	}
	for name, sm := range report.Sources {
		stats.SourceAvgScores[name] = sm.AvgScore
	}

	payload, err := json.Marshal(stats)
	if err != nil {
		return basicNarrative(location, report)
	}

	prompt := fmt.Sprintf(
		"You are a senior real estate analyst. Using these aggregate sentiment statistics for %s, "+
			"Hyderabad:\n\n%s\n\nWrite an investor-facing assessment. Respond with only a JSON object "+
			"with fields: executive_summary, market_sentiment_assessment, key_insights (array), "+
			"trends_identified (array), risk_factors (array), opportunities (array), "+
			"investment_recommendation, confidence_level (High/Medium/Low), "+
			"price_outlook (Rising/Falling/Neutral).",
		location, payload)

	resp, err := s.client.Complete(ctx, prompt, 1500)
	if err != nil {
		return basicNarrative(location, report)
	}

	var narrative domain.NarrativeReport
	if err := llm.ExtractJSONObject(resp, &narrative); err != nil {
		return basicNarrative(location, report)
	}
	if narrative.ExecutiveSummary == "" {
		return basicNarrative(location, report)
	}

	narrative.BestSource, narrative.WorstSource = extremeSources(report.Sources)
	if narrative.ConfidenceLevel == "" {
		narrative.ConfidenceLevel = "Medium"
	}
	if narrative.PriceOutlook == "" {
		narrative.PriceOutlook = report.Market.PriceDirection
	}
	return narrative
}

func sampleReasons(items []domain.ProcessedItem, want domain.Sentiment, limit int) []string {
	var out []string
	for _, item := range items {
		if len(out) >= limit {
			break
		}
		if item.Sentiment.Sentiment == want && item.Sentiment.Reason != "" {
			out = append(out, item.Sentiment.Reason)
		}
	}
	return out
}

// basicNarrative is the deterministic template used when the model is
// unavailable or its response cannot be parsed.
func basicNarrative(location string, report domain.AggregateReport) domain.NarrativeReport {
	avg := report.Overall.AvgScore

	recommendation := "Monitor market closely"
	if avg > 0.2 {
		recommendation = "Consider buying opportunities"
	} else if avg < -0.2 {
		recommendation = "Exercise caution, wait for better timing"
	}

	best, worst := extremeSources(report.Sources)

	summary := fmt.Sprintf(
		"Analysis of %d items about %s shows %s overall sentiment (average score %.2f). %.0f%% of the content is positive.",
		report.TotalItems, location, strings.ToLower(string(report.Overall.OverallSentiment)),
		avg, report.Overall.PositiveRatio*100)

	insights := []string{
		fmt.Sprintf("%d of %d analyzed items carry positive sentiment", report.Overall.PositiveCount, report.TotalItems),
	}
	if best != "" && best != worst {
		insights = append(insights, fmt.Sprintf("Most positive coverage comes from the %s source, least from %s", best, worst))
	}

	return domain.NarrativeReport{
		ExecutiveSummary: summary,
		MarketAssessment: string(report.Overall.OverallSentiment),
		KeyInsights:      insights,
		TrendsIdentified: report.Market.KeyTrends,
		RiskFactors:      report.Market.RiskFactors,
		Opportunities:    report.Market.GrowthDrivers,
		Recommendation:   recommendation,
		ConfidenceLevel:  "Medium",
		PriceOutlook:     report.Market.PriceDirection,
		BestSource:       best,
		WorstSource:      worst,
	}
}

// extremeSources returns the best and worst source by average score, breaking
// ties by name so the report is deterministic.
func extremeSources(sources map[string]domain.SourceMetrics) (best, worst string) {
	names := make([]string, 0, len(sources))
	for name := range sources {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		sm := sources[name]
		if best == "" || sm.AvgScore > sources[best].AvgScore {
			best = name
		}
		if worst == "" || sm.AvgScore < sources[worst].AvgScore {
			worst = name
		}
	}
	return best, worst
}
