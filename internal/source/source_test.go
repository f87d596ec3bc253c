package source

import (
	"context"
	"strings"
	"testing"

	"EstatePulse/internal/domain"
)

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

type stubAdapter struct {
	name string
}

func (s stubAdapter) Name() string    { return s.name }
func (s stubAdapter) Available() bool { return true }
func (s stubAdapter) Fetch(context.Context, string, int) ([]domain.RawItem, error) {
	return nil, nil
}

func TestRegistryResolve(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	r.Register(stubAdapter{name: "forum"})

	if _, err := r.Resolve("forum"); err != nil {
		t.Fatalf("resolve registered adapter: %v", err)
	}
	if _, err := r.Resolve("missing"); err == nil {
		t.Fatal("expected error for unknown adapter")
	}
}

func TestRegistryAllSorted(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	for _, name := range []string{"video", "forum", "news"} {
		r.Register(stubAdapter{name: name})
	}

	all := r.All()
	if len(all) != 3 {
		t.Fatalf("expected 3 adapters, got %d", len(all))
	}
	want := []string{"forum", "news", "video"}
	for i, adapter := range all {
		if adapter.Name() != want[i] {
			t.Fatalf("position %d: got %s, want %s", i, adapter.Name(), want[i])
		}
	}
}

func TestDemoGeneratorItems(t *testing.T) {
	t.Parallel()

	g := NewDemoGenerator()
	items := g.Items(Forum, "gachibowli", 3)

	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	for i, item := range items {
		if item.Source != Forum {
			t.Fatalf("item %d source = %q", i, item.Source)
		}
		if item.Metadata["demo"] != "true" {
			t.Fatalf("item %d missing demo marker", i)
		}
		if item.Text == "" || item.URL == "" {
			t.Fatalf("item %d incomplete: %+v", i, item)
		}
	}

	// Unknown source names still produce content.
	if got := g.Items("unknown", "uppal", 2); len(got) != 2 {
		t.Fatalf("unknown source: expected 2 items, got %d", len(got))
	}
}

func TestDemoGeneratorMentionsLocation(t *testing.T) {
	t.Parallel()

	g := NewDemoGenerator()
	for _, item := range g.Items(News, "hitech city", 0) {
		if !containsFold(item.Text, "hitech city") {
			t.Fatalf("item does not mention locality: %q", item.Text)
		}
	}
}

func TestDemoGeneratorPhases(t *testing.T) {
	t.Parallel()

	g := NewDemoGenerator()
	if got := g.HashtagItems("kondapur", 2); len(got) != 2 || got[0].Metadata["phase"] != "hashtag" {
		t.Fatalf("unexpected hashtag items: %+v", got)
	}
	if got := g.BusinessItems("kondapur", 2); len(got) != 2 || got[0].Metadata["phase"] != "business" {
		t.Fatalf("unexpected business items: %+v", got)
	}
	if got := g.TrendingItems("kondapur", 2); len(got) != 2 || got[0].Metadata["phase"] != "trending" {
		t.Fatalf("unexpected trending items: %+v", got)
	}
}
