package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"EstatePulse/internal/config"
	"EstatePulse/internal/domain"
	"EstatePulse/internal/source"
)

// VideoAdapter searches YouTube for locality videos and harvests their top
// comments. It needs a Data API key; without one it reports unavailable so
// the orchestrator can substitute demo content.
type VideoAdapter struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
}

var _ source.Adapter = (*VideoAdapter)(nil)

// NewVideoAdapter builds the adapter from configuration.
func NewVideoAdapter(cfg config.VideoConfig) *VideoAdapter {
	return &VideoAdapter{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Every(500*time.Millisecond), 1),
	}
}

func (a *VideoAdapter) Name() string { return source.Video }

func (a *VideoAdapter) Available() bool {
	return a.baseURL != "" && a.apiKey != ""
}

type videoResult struct {
	ID struct {
		VideoID string `json:"videoId"`
	} `json:"id"`
	Snippet struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		PublishedAt string `json:"publishedAt"`
	} `json:"snippet"`
}

type videoSearchResponse struct {
	Items []videoResult `json:"items"`
}

type commentThreadsResponse struct {
	Items []struct {
		Snippet struct {
			TopLevelComment struct {
				Snippet struct {
					TextDisplay string `json:"textDisplay"`
					LikeCount   int    `json:"likeCount"`
					PublishedAt string `json:"publishedAt"`
				} `json:"snippet"`
			} `json:"topLevelComment"`
			TotalReplyCount int `json:"totalReplyCount"`
		} `json:"snippet"`
	} `json:"items"`
}

func (a *VideoAdapter) Fetch(ctx context.Context, query string, limit int) ([]domain.RawItem, error) {
	if !a.Available() {
		return nil, fmt.Errorf("video api key missing: %w", domain.ErrAdapterUnavailable)
	}

	maxVideos := limit / 10
	if maxVideos < 1 {
		maxVideos = 1
	}
	if maxVideos > 20 {
		maxVideos = 20
	}

	videos, err := a.search(ctx, query, maxVideos)
	if err != nil {
		return nil, err
	}

	var items []domain.RawItem
	for _, video := range videos {
		if len(items) >= limit {
			break
		}
		text := strings.TrimSpace(video.Snippet.Title)
		if desc := strings.TrimSpace(video.Snippet.Description); desc != "" {
			text = text + ". " + desc
		}
		items = append(items, domain.RawItem{
			Text:      text,
			URL:       "https://www.youtube.com/watch?v=" + video.ID.VideoID,
			Timestamp: parseRFC3339(video.Snippet.PublishedAt),
			Source:    source.Video,
			Kind:      domain.KindPost,
			Metadata:  map[string]string{"videoId": video.ID.VideoID},
		})

		comments, err := a.comments(ctx, video.ID.VideoID, limit-len(items))
		if err != nil {
			// Comments can be disabled per video; keep the rest of the run.
			continue
		}
		items = append(items, comments...)
	}
	return items, nil
}

func (a *VideoAdapter) search(ctx context.Context, query string, maxResults int) ([]videoResult, error) {
	if err := a.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("pace video search: %w", err)
	}

	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("q", fmt.Sprintf("%s real estate Hyderabad", query))
	params.Set("type", "video")
	params.Set("order", "relevance")
	params.Set("maxResults", fmt.Sprintf("%d", maxResults))
	params.Set("key", a.apiKey)

	var parsed videoSearchResponse
	if err := a.getJSON(ctx, a.baseURL+"/search?"+params.Encode(), &parsed); err != nil {
		return nil, fmt.Errorf("video search: %w: %w", domain.ErrAdapterTransient, err)
	}
	return parsed.Items, nil
}

func (a *VideoAdapter) comments(ctx context.Context, videoID string, limit int) ([]domain.RawItem, error) {
	if limit <= 0 {
		return nil, nil
	}
	if limit > 20 {
		limit = 20
	}
	if err := a.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("pace comment fetch: %w", err)
	}

	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("videoId", videoID)
	params.Set("order", "relevance")
	params.Set("maxResults", fmt.Sprintf("%d", limit))
	params.Set("key", a.apiKey)

	var parsed commentThreadsResponse
	if err := a.getJSON(ctx, a.baseURL+"/commentThreads?"+params.Encode(), &parsed); err != nil {
		return nil, fmt.Errorf("video comments: %w", err)
	}

	items := make([]domain.RawItem, 0, len(parsed.Items))
	for _, thread := range parsed.Items {
		comment := thread.Snippet.TopLevelComment.Snippet
		text := strings.TrimSpace(comment.TextDisplay)
		if text == "" {
			continue
		}
		items = append(items, domain.RawItem{
			Text:      text,
			URL:       "https://www.youtube.com/watch?v=" + videoID,
			Timestamp: parseRFC3339(comment.PublishedAt),
			Source:    source.Video,
			Kind:      domain.KindComment,
			Engagement: domain.Engagement{
				Likes:    comment.LikeCount,
				Comments: thread.Snippet.TotalReplyCount,
			},
			Metadata: map[string]string{"videoId": videoID},
		})
	}
	return items, nil
}

func (a *VideoAdapter) getJSON(ctx context.Context, endpoint string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseRFC3339(value string) time.Time {
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Now()
	}
	return ts
}
