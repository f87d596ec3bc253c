package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"EstatePulse/internal/config"
	"EstatePulse/internal/domain"
	"EstatePulse/internal/source"
)

// ForumAdapter searches discussion threads across a fixed list of subreddits.
// The JSON search endpoint needs no credentials; when it refuses the request
// the adapter scrapes the old-style HTML search page instead.
type ForumAdapter struct {
	baseURL    string
	userAgent  string
	subreddits []string
	httpClient *http.Client
}

var _ source.Adapter = (*ForumAdapter)(nil)

// NewForumAdapter builds the adapter from configuration.
func NewForumAdapter(cfg config.ForumConfig) *ForumAdapter {
	return &ForumAdapter{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		userAgent:  cfg.UserAgent,
		subreddits: cfg.Subreddits,
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
}

func (a *ForumAdapter) Name() string { return source.Forum }

func (a *ForumAdapter) Available() bool {
	return a.baseURL != "" && len(a.subreddits) > 0
}

type redditListing struct {
	Data struct {
		Children []struct {
			Data struct {
				Title       string  `json:"title"`
				Selftext    string  `json:"selftext"`
				Permalink   string  `json:"permalink"`
				Score       int     `json:"score"`
				NumComments int     `json:"num_comments"`
				CreatedUTC  float64 `json:"created_utc"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

func (a *ForumAdapter) Fetch(ctx context.Context, query string, limit int) ([]domain.RawItem, error) {
	if !a.Available() {
		return nil, fmt.Errorf("forum adapter misconfigured: %w", domain.ErrAdapterUnavailable)
	}

	perSub := limit / len(a.subreddits)
	if perSub < 1 {
		perSub = 1
	}

	var items []domain.RawItem
	var lastErr error
	for _, sub := range a.subreddits {
		if len(items) >= limit {
			break
		}
		got, err := a.searchSubreddit(ctx, sub, query, perSub)
		if err != nil {
			lastErr = err
			continue
		}
		items = append(items, got...)
	}

	if len(items) == 0 && lastErr != nil {
		return nil, fmt.Errorf("forum search: %w: %w", domain.ErrAdapterTransient, lastErr)
	}
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (a *ForumAdapter) searchSubreddit(ctx context.Context, sub, query string, limit int) ([]domain.RawItem, error) {
	params := url.Values{}
	params.Set("q", fmt.Sprintf("%s real estate", query))
	params.Set("restrict_sr", "1")
	params.Set("sort", "relevance")
	params.Set("limit", fmt.Sprintf("%d", limit))

	endpoint := fmt.Sprintf("%s/r/%s/search.json?%s", a.baseURL, sub, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("User-Agent", a.userAgent)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search r/%s: %w", sub, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return a.scrapeSubreddit(ctx, sub, query, limit)
	}

	var listing redditListing
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, fmt.Errorf("decode r/%s listing: %w", sub, err)
	}

	items := make([]domain.RawItem, 0, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		post := child.Data
		text := strings.TrimSpace(post.Title)
		if body := strings.TrimSpace(post.Selftext); body != "" {
			text = text + ". " + body
		}
		if text == "" {
			continue
		}
		items = append(items, domain.RawItem{
			Text:      text,
			URL:       a.baseURL + post.Permalink,
			Timestamp: time.Unix(int64(post.CreatedUTC), 0),
			Source:    source.Forum,
			Kind:      domain.KindPost,
			Engagement: domain.Engagement{
				Likes:    post.Score,
				Comments: post.NumComments,
			},
			Metadata: map[string]string{"subreddit": sub},
		})
	}
	return items, nil
}

// scrapeSubreddit parses the legacy HTML search page, which tolerates
// unauthenticated clients better than the JSON endpoint.
func (a *ForumAdapter) scrapeSubreddit(ctx context.Context, sub, query string, limit int) ([]domain.RawItem, error) {
	params := url.Values{}
	params.Set("q", fmt.Sprintf("%s real estate", query))
	params.Set("restrict_sr", "on")

	host := strings.Replace(a.baseURL, "www.reddit.com", "old.reddit.com", 1)
	endpoint := fmt.Sprintf("%s/r/%s/search?%s", host, sub, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("User-Agent", a.userAgent)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("scrape r/%s: %w", sub, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("scrape r/%s: unexpected status %s", sub, resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse r/%s html: %w", sub, err)
	}

	var items []domain.RawItem
	doc.Find("div.search-result-link").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		title := strings.TrimSpace(sel.Find("a.search-title").Text())
		if title == "" {
			return true
		}
		link, _ := sel.Find("a.search-title").Attr("href")
		items = append(items, domain.RawItem{
			Text:      title,
			URL:       link,
			Timestamp: time.Now(),
			Source:    source.Forum,
			Kind:      domain.KindPost,
			Metadata:  map[string]string{"subreddit": sub, "via": "html"},
		})
		return len(items) < limit
	})
	return items, nil
}
