package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"EstatePulse/internal/config"
	"EstatePulse/internal/domain"
)

const videoSearchPayload = `{
  "items": [
    {
      "id": {"videoId": "vid123"},
      "snippet": {
        "title": "Gachibowli 3BHK apartment tour",
        "description": "Full walkthrough with pricing details",
        "publishedAt": "2024-08-10T12:00:00Z"
      }
    }
  ]
}`

const commentThreadsPayload = `{
  "items": [
    {
      "snippet": {
        "totalReplyCount": 2,
        "topLevelComment": {
          "snippet": {
            "textDisplay": "Great video, prices in this area keep rising",
            "likeCount": 5,
            "publishedAt": "2024-08-11T08:00:00Z"
          }
        }
      }
    }
  ]
}`

func TestVideoAdapterFetch(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("api key not sent")
		}
		switch {
		case strings.HasSuffix(r.URL.Path, "/search"):
			w.Write([]byte(videoSearchPayload))
		case strings.HasSuffix(r.URL.Path, "/commentThreads"):
			if r.URL.Query().Get("videoId") != "vid123" {
				t.Errorf("wrong videoId %q", r.URL.Query().Get("videoId"))
			}
			w.Write([]byte(commentThreadsPayload))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	a := NewVideoAdapter(config.VideoConfig{BaseURL: server.URL, APIKey: "test-key"})
	items, err := a.Fetch(context.Background(), "gachibowli", 30)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected video plus comment, got %d items", len(items))
	}
	if items[0].Kind != domain.KindPost || items[1].Kind != domain.KindComment {
		t.Fatalf("unexpected kinds: %s, %s", items[0].Kind, items[1].Kind)
	}
	if !strings.Contains(items[0].Text, "walkthrough") {
		t.Fatalf("description not merged: %q", items[0].Text)
	}
	if items[1].Engagement.Likes != 5 || items[1].Engagement.Comments != 2 {
		t.Fatalf("comment engagement wrong: %+v", items[1].Engagement)
	}
}

func TestVideoAdapterGated(t *testing.T) {
	t.Parallel()

	a := NewVideoAdapter(config.VideoConfig{BaseURL: "http://example.com"})
	if a.Available() {
		t.Fatal("adapter without api key should be unavailable")
	}
	if _, err := a.Fetch(context.Background(), "gachibowli", 10); err == nil {
		t.Fatal("expected error from unconfigured adapter")
	}
}
