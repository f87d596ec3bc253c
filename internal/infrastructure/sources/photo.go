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
	"EstatePulse/internal/textproc"
)

// realItemFloor is the minimum number of scraped items below which the
// adapter tops the batch up with synthesized content.
const realItemFloor = 10

// PhotoAdapter collects Instagram content through the Graph API in four
// phases: hashtag search, business account discovery, location accounts, and
// a synthesized trending feed. It stays available even without credentials
// and degrades to demo content.
type PhotoAdapter struct {
	graphURL    string
	accessToken string
	userID      string
	demo        *source.DemoGenerator
	httpClient  *http.Client
	limiter     *rate.Limiter

	businessAccounts []string
}

var _ source.Adapter = (*PhotoAdapter)(nil)

// NewPhotoAdapter builds the adapter from configuration.
func NewPhotoAdapter(cfg config.PhotoConfig, demo *source.DemoGenerator) *PhotoAdapter {
	return &PhotoAdapter{
		graphURL:    strings.TrimRight(cfg.GraphURL, "/"),
		accessToken: cfg.AccessToken,
		userID:      cfg.UserID,
		demo:        demo,
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Every(1500*time.Millisecond), 1),
		businessAccounts: []string{
			"hyderabadrealestate",
			"telanganarealty",
			"hydproperties",
		},
	}
}

func (a *PhotoAdapter) Name() string { return source.Photo }

// Available is always true; without credentials the adapter serves demo
// content instead of failing the run.
func (a *PhotoAdapter) Available() bool { return true }

func (a *PhotoAdapter) configured() bool {
	return a.graphURL != "" && a.accessToken != "" && a.userID != ""
}

func (a *PhotoAdapter) Fetch(ctx context.Context, query string, limit int) ([]domain.RawItem, error) {
	if limit <= 0 {
		limit = 20
	}

	// Phases overlap (the same post can surface via hashtag and business
	// discovery), so dedup here before the real-item floor is judged.
	seen := map[string]struct{}{}
	var items []domain.RawItem
	for _, batch := range [][]domain.RawItem{
		a.hashtagPhase(ctx, query, limit/2),
		a.businessPhase(ctx, query, limit/3),
		a.locationPhase(ctx, query, limit/4),
		a.trendingPhase(query, limit/4),
	} {
		for _, item := range batch {
			key := captionKey(item.Text)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			items = append(items, item)
		}
	}

	real := 0
	for _, item := range items {
		if item.Metadata["demo"] != "true" {
			real++
		}
	}
	if real < realItemFloor {
		extra := limit - len(items)
		if extra > 20 {
			extra = 20
		}
		if extra > 0 {
			items = append(items, a.demo.Items(source.Photo, query, extra)...)
		}
	}

	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

// hashtagPhase resolves locality hashtags and pulls their recent media.
func (a *PhotoAdapter) hashtagPhase(ctx context.Context, query string, limit int) []domain.RawItem {
	if !a.configured() {
		return a.demo.HashtagItems(query, limit)
	}

	tags := []string{
		strings.ReplaceAll(strings.ToLower(query), " ", ""),
		strings.ReplaceAll(strings.ToLower(query), " ", "") + "realestate",
		"hyderabadrealestate",
	}

	var items []domain.RawItem
	for _, tag := range tags {
		if len(items) >= limit {
			break
		}
		hashtagID, err := a.resolveHashtag(ctx, tag)
		if err != nil {
			continue
		}
		media, err := a.recentMedia(ctx, hashtagID, limit-len(items))
		if err != nil {
			continue
		}
		for _, item := range media {
			if textproc.Relevant(item.Text, query) {
				item.Metadata["phase"] = "hashtag"
				items = append(items, item)
			}
		}
	}
	if len(items) == 0 {
		return a.demo.HashtagItems(query, limit)
	}
	return items
}

// businessPhase walks curated builder and broker accounts via business
// discovery.
func (a *PhotoAdapter) businessPhase(ctx context.Context, query string, limit int) []domain.RawItem {
	if !a.configured() {
		return a.demo.BusinessItems(query, limit)
	}

	var items []domain.RawItem
	for _, account := range a.businessAccounts {
		if len(items) >= limit {
			break
		}
		media, err := a.businessMedia(ctx, account, limit-len(items))
		if err != nil {
			continue
		}
		for _, item := range media {
			if textproc.Relevant(item.Text, query) {
				item.Metadata["phase"] = "business"
				item.Metadata["account"] = account
				items = append(items, item)
			}
		}
	}
	if len(items) == 0 {
		return a.demo.BusinessItems(query, limit)
	}
	return items
}

// locationPhase derives account handles from the locality name and probes
// them through business discovery as well.
func (a *PhotoAdapter) locationPhase(ctx context.Context, query string, limit int) []domain.RawItem {
	if !a.configured() {
		return a.demo.Items(source.Photo, query, limit)
	}

	compact := strings.ReplaceAll(strings.ToLower(query), " ", "")
	handles := []string{compact + "properties", compact + "homes", "explore" + compact}

	var items []domain.RawItem
	for _, handle := range handles {
		if len(items) >= limit {
			break
		}
		media, err := a.businessMedia(ctx, handle, limit-len(items))
		if err != nil {
			continue
		}
		for _, item := range media {
			if textproc.Relevant(item.Text, query) {
				item.Metadata["phase"] = "location"
				items = append(items, item)
			}
		}
	}
	if len(items) == 0 {
		return a.demo.Items(source.Photo, query, limit)
	}
	return items
}

// trendingPhase is always synthesized; the Graph API has no public
// discovery-feed endpoint.
func (a *PhotoAdapter) trendingPhase(query string, limit int) []domain.RawItem {
	return a.demo.TrendingItems(query, limit)
}

type hashtagSearchResponse struct {
	Data []struct {
		ID string `json:"id"`
	} `json:"data"`
}

type mediaResponse struct {
	Data []struct {
		ID            string `json:"id"`
		Caption       string `json:"caption"`
		Permalink     string `json:"permalink"`
		Timestamp     string `json:"timestamp"`
		LikeCount     int    `json:"like_count"`
		CommentsCount int    `json:"comments_count"`
	} `json:"data"`
	Paging struct {
		Next string `json:"next"`
	} `json:"paging"`
}

type commentsResponse struct {
	Data []struct {
		Text      string `json:"text"`
		Timestamp string `json:"timestamp"`
		LikeCount int    `json:"like_count"`
	} `json:"data"`
	Paging struct {
		Next string `json:"next"`
	} `json:"paging"`
}

func (a *PhotoAdapter) resolveHashtag(ctx context.Context, tag string) (string, error) {
	params := url.Values{}
	params.Set("user_id", a.userID)
	params.Set("q", tag)
	params.Set("access_token", a.accessToken)

	var parsed hashtagSearchResponse
	if err := a.getJSON(ctx, a.graphURL+"/ig_hashtag_search?"+params.Encode(), &parsed); err != nil {
		return "", err
	}
	if len(parsed.Data) == 0 {
		return "", fmt.Errorf("hashtag %s not found", tag)
	}
	return parsed.Data[0].ID, nil
}

func (a *PhotoAdapter) recentMedia(ctx context.Context, hashtagID string, limit int) ([]domain.RawItem, error) {
	params := url.Values{}
	params.Set("user_id", a.userID)
	params.Set("fields", "id,caption,permalink,timestamp,like_count,comments_count")
	params.Set("limit", fmt.Sprintf("%d", limit))
	params.Set("access_token", a.accessToken)

	var parsed mediaResponse
	endpoint := fmt.Sprintf("%s/%s/recent_media?%s", a.graphURL, hashtagID, params.Encode())
	if err := a.getJSON(ctx, endpoint, &parsed); err != nil {
		return nil, err
	}
	return a.mediaToItems(ctx, parsed, limit), nil
}

func (a *PhotoAdapter) businessMedia(ctx context.Context, account string, limit int) ([]domain.RawItem, error) {
	fields := fmt.Sprintf(
		"business_discovery.username(%s){media.limit(%d){id,caption,permalink,timestamp,like_count,comments_count}}",
		account, limit,
	)
	params := url.Values{}
	params.Set("fields", fields)
	params.Set("access_token", a.accessToken)

	var parsed struct {
		BusinessDiscovery struct {
			Media mediaResponse `json:"media"`
		} `json:"business_discovery"`
	}
	endpoint := fmt.Sprintf("%s/%s?%s", a.graphURL, a.userID, params.Encode())
	if err := a.getJSON(ctx, endpoint, &parsed); err != nil {
		return nil, err
	}
	return a.mediaToItems(ctx, parsed.BusinessDiscovery.Media, limit), nil
}

func (a *PhotoAdapter) mediaToItems(ctx context.Context, parsed mediaResponse, limit int) []domain.RawItem {
	var items []domain.RawItem
	for _, media := range parsed.Data {
		if len(items) >= limit {
			break
		}
		caption := strings.TrimSpace(media.Caption)
		if caption == "" {
			continue
		}
		items = append(items, domain.RawItem{
			Text:      caption,
			URL:       media.Permalink,
			Timestamp: parsePhotoTimestamp(media.Timestamp),
			Source:    source.Photo,
			Kind:      domain.KindPost,
			Engagement: domain.Engagement{
				Likes:    media.LikeCount,
				Comments: media.CommentsCount,
			},
			Metadata: map[string]string{"mediaId": media.ID},
		})
		if media.CommentsCount > 0 && len(items) < limit {
			items = append(items, a.mediaComments(ctx, media.ID, media.Permalink, limit-len(items))...)
		}
	}
	return items
}

func (a *PhotoAdapter) mediaComments(ctx context.Context, mediaID, permalink string, limit int) []domain.RawItem {
	params := url.Values{}
	params.Set("fields", "text,timestamp,like_count")
	params.Set("access_token", a.accessToken)
	endpoint := fmt.Sprintf("%s/%s/comments?%s", a.graphURL, mediaID, params.Encode())

	var items []domain.RawItem
	for endpoint != "" && len(items) < limit {
		var parsed commentsResponse
		if err := a.getJSON(ctx, endpoint, &parsed); err != nil {
			break
		}
		for _, comment := range parsed.Data {
			if len(items) >= limit {
				break
			}
			text := strings.TrimSpace(comment.Text)
			if text == "" {
				continue
			}
			items = append(items, domain.RawItem{
				Text:      text,
				URL:       permalink,
				Timestamp: parsePhotoTimestamp(comment.Timestamp),
				Source:    source.Photo,
				Kind:      domain.KindComment,
				Engagement: domain.Engagement{
					Likes: comment.LikeCount,
				},
				Metadata: map[string]string{"mediaId": mediaID},
			})
		}
		endpoint = parsed.Paging.Next
	}
	return items
}

func (a *PhotoAdapter) getJSON(ctx context.Context, endpoint string, v any) error {
	if err := a.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("pace graph call: %w", err)
	}

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

func captionKey(text string) string {
	key := strings.TrimSpace(strings.ToLower(text))
	if len(key) > 150 {
		key = key[:150]
	}
	return key
}

// The Graph API returns timestamps like 2024-01-15T10:30:00+0000, which is
// not quite RFC 3339.
func parsePhotoTimestamp(value string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05-0700"} {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts
		}
	}
	return time.Now()
}
