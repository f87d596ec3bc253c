package domain

import "time"

// Sentiment labels a scored text.
type Sentiment string

const (
	SentimentPositive Sentiment = "Positive"
	SentimentNegative Sentiment = "Negative"
	SentimentNeutral  Sentiment = "Neutral"
)

// Score thresholds separating the sentiment labels.
const (
	PositiveThreshold = 0.1
	NegativeThreshold = -0.1
)

// SentimentForScore derives the label from a score.
func SentimentForScore(score float64) Sentiment {
	switch {
	case score > PositiveThreshold:
		return SentimentPositive
	case score < NegativeThreshold:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

// AnalysisType records which scoring path produced a result.
type AnalysisType string

const (
	AnalysisComprehensive AnalysisType = "comprehensive"
	AnalysisTextParsed    AnalysisType = "text_parsed"
	AnalysisFallback      AnalysisType = "fallback"
	AnalysisEmpty         AnalysisType = "empty"
)

// ItemKind distinguishes top-level posts from threaded content.
type ItemKind string

const (
	KindPost    ItemKind = "post"
	KindComment ItemKind = "comment"
	KindReply   ItemKind = "reply"
)

// Engagement carries best-effort interaction counts from the provider.
type Engagement struct {
	Likes    int `json:"likes"`
	Comments int `json:"comments"`
}

// RawItem is one piece of text fetched from a source adapter (or synthesized
// by the demo generator). Immutable once created; lives for a single run.
type RawItem struct {
	Text       string            `json:"text"`
	URL        string            `json:"url"`
	Timestamp  time.Time         `json:"timestamp"`
	Source     string            `json:"source"`
	Kind       ItemKind          `json:"kind"`
	Engagement Engagement        `json:"engagement"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// SentimentResult is the common shape both scoring strategies produce.
type SentimentResult struct {
	Sentiment           Sentiment    `json:"sentiment"`
	Score               float64      `json:"score"`
	Confidence          float64      `json:"confidence"`
	Reason              string       `json:"reason"`
	AnalysisType        AnalysisType `json:"analysis_type"`
	RealEstateSentiment string       `json:"real_estate_sentiment,omitempty"`
	PriceSentiment      string       `json:"price_sentiment,omitempty"`
	InvestmentSentiment string       `json:"investment_sentiment,omitempty"`
	KeyFactors          []string     `json:"key_factors,omitempty"`
}

// ProcessedItem is a RawItem after normalization, location resolution, and
// sentiment scoring. Owned exclusively by the run that created it.
type ProcessedItem struct {
	Source    string            `json:"source"`
	Location  string            `json:"location"`
	RawText   string            `json:"raw_text"`
	CleanText string            `json:"clean_text"`
	Sentiment SentimentResult   `json:"sentiment"`
	Timestamp time.Time         `json:"timestamp"`
	URL       string            `json:"url"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}
