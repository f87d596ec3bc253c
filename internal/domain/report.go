package domain

import "time"

// MarketContext is a structured snapshot of market mood for one locality.
type MarketContext struct {
	MarketSentiment   string   `json:"market_sentiment"`
	KeyTrends         []string `json:"key_trends"`
	PriceDirection    string   `json:"price_direction"`
	MarketActivity    string   `json:"market_activity"`
	ContextSummary    string   `json:"context_summary"`
	PriceRange        string   `json:"price_range"`
	InvestmentOutlook string   `json:"investment_outlook"`
	RiskFactors       []string `json:"risk_factors"`
	GrowthDrivers     []string `json:"growth_drivers"`
}

// OverallMetrics summarizes sentiment across every processed item of a run.
type OverallMetrics struct {
	PositiveCount    int       `json:"positive_count"`
	NegativeCount    int       `json:"negative_count"`
	NeutralCount     int       `json:"neutral_count"`
	PositiveRatio    float64   `json:"positive_ratio"`
	NegativeRatio    float64   `json:"negative_ratio"`
	AvgScore         float64   `json:"average_sentiment_score"`
	AvgConfidence    float64   `json:"average_confidence"`
	OverallSentiment Sentiment `json:"overall_sentiment"`
}

// SourceMetrics is the per-source sentiment breakdown.
type SourceMetrics struct {
	Count         int               `json:"count"`
	AvgScore      float64           `json:"avg_score"`
	PositiveCount int               `json:"positive_count"`
	PositiveRatio float64           `json:"positive_ratio"`
	Distribution  map[Sentiment]int `json:"sentiment_distribution"`
}

// NarrativeReport is the executive summary plus structured recommendation
// fields, synthesized from the aggregate statistics.
type NarrativeReport struct {
	ExecutiveSummary string   `json:"executive_summary"`
	MarketAssessment string   `json:"market_sentiment_assessment"`
	KeyInsights      []string `json:"key_insights"`
	TrendsIdentified []string `json:"trends_identified"`
	RiskFactors      []string `json:"risk_factors,omitempty"`
	Opportunities    []string `json:"opportunities,omitempty"`
	Recommendation   string   `json:"investment_recommendation"`
	ConfidenceLevel  string   `json:"confidence_level"`
	PriceOutlook     string   `json:"price_outlook"`
	BestSource       string   `json:"best_source,omitempty"`
	WorstSource      string   `json:"worst_source,omitempty"`
}

// AggregateReport is the cross-source result of one analysis run.
type AggregateReport struct {
	Location    string                   `json:"location"`
	GeneratedAt time.Time                `json:"analysis_timestamp"`
	TotalItems  int                      `json:"total_items_analyzed"`
	Overall     OverallMetrics           `json:"overall_metrics"`
	Sources     map[string]SourceMetrics `json:"source_analysis"`
	Market      MarketContext            `json:"market_context"`
	Narrative   NarrativeReport          `json:"comprehensive_analysis"`
	Details     []SentimentResult        `json:"detailed_results"`
}
