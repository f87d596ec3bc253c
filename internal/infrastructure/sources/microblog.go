package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"EstatePulse/internal/config"
	"EstatePulse/internal/domain"
	"EstatePulse/internal/source"
)

// MicroblogAdapter queries the Twitter v2 recent search endpoint. It requires
// a bearer token and reports unavailable without one.
type MicroblogAdapter struct {
	searchURL   string
	bearerToken string
	httpClient  *http.Client
}

var _ source.Adapter = (*MicroblogAdapter)(nil)

// NewMicroblogAdapter builds the adapter from configuration.
func NewMicroblogAdapter(cfg config.MicroblogConfig) *MicroblogAdapter {
	return &MicroblogAdapter{
		searchURL:   cfg.SearchURL,
		bearerToken: cfg.BearerToken,
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
}

func (a *MicroblogAdapter) Name() string { return source.Microblog }

func (a *MicroblogAdapter) Available() bool {
	return a.searchURL != "" && a.bearerToken != ""
}

type tweetSearchResponse struct {
	Data []struct {
		ID            string `json:"id"`
		Text          string `json:"text"`
		CreatedAt     string `json:"created_at"`
		PublicMetrics struct {
			LikeCount  int `json:"like_count"`
			ReplyCount int `json:"reply_count"`
		} `json:"public_metrics"`
	} `json:"data"`
}

func (a *MicroblogAdapter) Fetch(ctx context.Context, query string, limit int) ([]domain.RawItem, error) {
	if !a.Available() {
		return nil, fmt.Errorf("microblog bearer token missing: %w", domain.ErrAdapterUnavailable)
	}
	if limit > 100 {
		limit = 100
	}
	if limit < 10 {
		limit = 10
	}

	params := url.Values{}
	params.Set("query", fmt.Sprintf("(%s real estate OR %s property) lang:en -is:retweet", query, query))
	params.Set("max_results", fmt.Sprintf("%d", limit))
	params.Set("tweet.fields", "created_at,public_metrics")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.searchURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+a.bearerToken)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tweet search: %w: %w", domain.ErrAdapterTransient, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tweet search: %w: unexpected status %s", domain.ErrAdapterTransient, resp.Status)
	}

	var parsed tweetSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode tweet search: %w", err)
	}

	items := make([]domain.RawItem, 0, len(parsed.Data))
	for _, tweet := range parsed.Data {
		text := strings.TrimSpace(tweet.Text)
		if text == "" {
			continue
		}
		items = append(items, domain.RawItem{
			Text:      text,
			URL:       "https://twitter.com/i/status/" + tweet.ID,
			Timestamp: parseRFC3339(tweet.CreatedAt),
			Source:    source.Microblog,
			Kind:      domain.KindPost,
			Engagement: domain.Engagement{
				Likes:    tweet.PublicMetrics.LikeCount,
				Comments: tweet.PublicMetrics.ReplyCount,
			},
			Metadata: map[string]string{"tweetId": tweet.ID},
		})
	}
	return items, nil
}
