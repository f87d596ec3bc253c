package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"EstatePulse/internal/config"
)

const tweetPayload = `{
  "data": [
    {
      "id": "1801",
      "text": "Gachibowli property prices climbing again this quarter",
      "created_at": "2024-08-12T09:30:00Z",
      "public_metrics": {"like_count": 12, "reply_count": 3}
    }
  ]
}`

func TestMicroblogAdapterFetch(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-token" {
			t.Errorf("bearer token not sent")
		}
		if r.URL.Query().Get("tweet.fields") == "" {
			t.Errorf("tweet fields not requested")
		}
		w.Write([]byte(tweetPayload))
	}))
	defer server.Close()

	a := NewMicroblogAdapter(config.MicroblogConfig{
		SearchURL:   server.URL,
		BearerToken: "test-token",
	})
	items, err := a.Fetch(context.Background(), "gachibowli", 25)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].URL != "https://twitter.com/i/status/1801" {
		t.Fatalf("unexpected url: %q", items[0].URL)
	}
	if items[0].Engagement.Likes != 12 {
		t.Fatalf("likes not carried: %+v", items[0].Engagement)
	}
}

func TestMicroblogAdapterGated(t *testing.T) {
	t.Parallel()

	a := NewMicroblogAdapter(config.MicroblogConfig{SearchURL: "http://example.com"})
	if a.Available() {
		t.Fatal("adapter without bearer token should be unavailable")
	}
	if _, err := a.Fetch(context.Background(), "gachibowli", 10); err == nil {
		t.Fatal("expected error from unconfigured adapter")
	}
}
