// Package sources contains the concrete adapters behind the source.Adapter
// interface, one per external platform.
package sources

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"EstatePulse/internal/config"
	"EstatePulse/internal/domain"
	"EstatePulse/internal/source"
)

// NewsAdapter reads locality headlines from the Google News RSS search feed.
// The feed is public, so the adapter is always available.
type NewsAdapter struct {
	feedURL string
	parser  *gofeed.Parser
}

var _ source.Adapter = (*NewsAdapter)(nil)

// NewNewsAdapter builds the adapter from configuration.
func NewNewsAdapter(cfg config.NewsConfig) *NewsAdapter {
	parser := gofeed.NewParser()
	parser.UserAgent = "EstatePulse/1.0"
	return &NewsAdapter{
		feedURL: cfg.FeedURL,
		parser:  parser,
	}
}

func (a *NewsAdapter) Name() string { return source.News }

func (a *NewsAdapter) Available() bool { return a.feedURL != "" }

func (a *NewsAdapter) Fetch(ctx context.Context, query string, limit int) ([]domain.RawItem, error) {
	if !a.Available() {
		return nil, fmt.Errorf("news feed url missing: %w", domain.ErrAdapterUnavailable)
	}

	params := url.Values{}
	params.Set("q", fmt.Sprintf("%s Hyderabad real estate news", query))
	params.Set("hl", "en-IN")
	params.Set("gl", "IN")
	params.Set("ceid", "IN:en")

	feed, err := a.parser.ParseURLWithContext(a.feedURL+"?"+params.Encode(), ctx)
	if err != nil {
		return nil, fmt.Errorf("parse news feed: %w: %w", domain.ErrAdapterTransient, err)
	}

	items := make([]domain.RawItem, 0, limit)
	for _, entry := range feed.Items {
		if len(items) >= limit {
			break
		}
		text := strings.TrimSpace(entry.Title)
		if desc := strings.TrimSpace(entry.Description); desc != "" {
			text = text + ". " + desc
		}
		if text == "" {
			continue
		}

		published := time.Now()
		if entry.PublishedParsed != nil {
			published = *entry.PublishedParsed
		}

		items = append(items, domain.RawItem{
			Text:      text,
			URL:       entry.Link,
			Timestamp: published,
			Source:    source.News,
			Kind:      domain.KindPost,
			Metadata:  map[string]string{"publisher": feedAuthor(entry)},
		})
	}
	return items, nil
}

func feedAuthor(entry *gofeed.Item) string {
	if entry.Author != nil && entry.Author.Name != "" {
		return entry.Author.Name
	}
	return ""
}
