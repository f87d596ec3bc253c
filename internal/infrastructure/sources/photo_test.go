package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/time/rate"

	"EstatePulse/internal/config"
	"EstatePulse/internal/source"
)

func TestPhotoAdapterAlwaysAvailable(t *testing.T) {
	t.Parallel()

	a := NewPhotoAdapter(config.PhotoConfig{}, source.NewDemoGenerator())
	if !a.Available() {
		t.Fatal("photo adapter should stay available without credentials")
	}
}

func TestPhotoAdapterUnconfiguredServesDemo(t *testing.T) {
	t.Parallel()

	a := NewPhotoAdapter(config.PhotoConfig{}, source.NewDemoGenerator())
	items, err := a.Fetch(context.Background(), "gachibowli", 20)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(items) == 0 {
		t.Fatal("expected demo items")
	}
	if len(items) > 20 {
		t.Fatalf("limit exceeded: %d items", len(items))
	}
	for i, item := range items {
		if item.Source != "photo" {
			t.Fatalf("item %d has wrong source %q", i, item.Source)
		}
		if item.Metadata["demo"] != "true" {
			t.Fatalf("item %d not marked as demo: %+v", i, item.Metadata)
		}
	}
}

func TestPhotoAdapterDedupsAcrossPhases(t *testing.T) {
	t.Parallel()

	const caption = "Beautiful new apartment in Gachibowli with great amenities and parking"
	media := `{"data": [{"id": "m1", "caption": "` + caption + `",
		"permalink": "https://example.com/p/m1", "timestamp": "2024-08-10T10:00:00+0000",
		"like_count": 30, "comments_count": 0}]}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/ig_hashtag_search"):
			w.Write([]byte(`{"data": [{"id": "H1"}]}`))
		case strings.HasPrefix(r.URL.Path, "/H1/recent_media"):
			w.Write([]byte(media))
		case strings.HasPrefix(r.URL.Path, "/u1"):
			// Business discovery and derived location accounts surface the
			// same post again.
			w.Write([]byte(`{"business_discovery": {"media": ` + media + `}}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	a := NewPhotoAdapter(config.PhotoConfig{
		GraphURL:    server.URL,
		AccessToken: "tok",
		UserID:      "u1",
	}, source.NewDemoGenerator())
	a.limiter = rate.NewLimiter(rate.Inf, 1)

	items, err := a.Fetch(context.Background(), "gachibowli", 40)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}

	real := 0
	for _, item := range items {
		if item.Metadata["demo"] != "true" {
			real++
		}
	}
	// Every phase returned the same caption; it must count once, and the
	// low real-item count must still trigger the demo top-up.
	if real != 1 {
		t.Fatalf("expected 1 unique real item, got %d", real)
	}
	if len(items) <= 1 {
		t.Fatal("demo top-up missing after dedup")
	}
}

func TestPhotoAdapterPhasesPresent(t *testing.T) {
	t.Parallel()

	a := NewPhotoAdapter(config.PhotoConfig{}, source.NewDemoGenerator())
	items, err := a.Fetch(context.Background(), "kondapur", 40)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}

	phases := map[string]bool{}
	for _, item := range items {
		if phase := item.Metadata["phase"]; phase != "" {
			phases[phase] = true
		}
	}
	for _, want := range []string{"hashtag", "business", "trending"} {
		if !phases[want] {
			t.Fatalf("missing %s phase in %v", want, phases)
		}
	}
}
