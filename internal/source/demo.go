package source

import (
	"fmt"
	"strings"
	"time"

	"EstatePulse/internal/domain"
)

// DemoGenerator synthesizes plausible locality content when a real source is
// unconfigured or fails. Generated items are tagged in Metadata so reports can
// tell them apart from scraped content.
type DemoGenerator struct {
	now func() time.Time
}

// NewDemoGenerator builds a generator using the wall clock.
func NewDemoGenerator() *DemoGenerator {
	return &DemoGenerator{now: time.Now}
}

var demoTemplates = map[string][]string{
	News: {
		"Real estate prices in %s rise 8%% year on year as IT corridor demand stays strong",
		"New metro connectivity boosts property interest in %s, brokers report higher footfall",
		"Builders launch three new gated community projects in %s amid steady buyer demand",
		"Rental yields in %s improve as hybrid work brings tenants back to the city",
		"Civic body approves road widening near %s, residents expect smoother commutes",
	},
	Video: {
		"Walkthrough of a 3BHK apartment in %s, great ventilation and the society has good amenities for the price",
		"Honest review of living in %s: traffic during peak hours is bad but infrastructure is improving fast",
		"Property investment guide for %s, prices have been rising and rental demand from IT employees is strong",
		"Comparing apartments in %s vs neighboring areas, value for money depends a lot on the builder",
	},
	Forum: {
		"Has anyone bought a flat in %s recently? Prices seem high but the area has excellent connectivity to tech parks",
		"Thinking of investing in %s. Rental demand looks strong but worried about water supply in summer",
		"Moved to %s last year. Good schools and hospitals nearby, though construction dust is a real problem",
		"Resale flats in %s are overpriced in my opinion, new projects further out offer better value",
		"Registration charges plus the premium builders ask in %s makes buying tough for first timers",
	},
	Microblog: {
		"Property prices in %s are up again this quarter. Great time for sellers, tough for buyers #realestate",
		"Visited a few projects in %s today. Quality construction and amenities are improving #property",
		"Traffic in %s is getting worse but the metro extension should help. Still a solid investment area",
		"Rental rates in %s jumped after the new office campus opened nearby #hyderabad",
	},
	Photo: {
		"Beautiful sunset view from our new apartment in %s! Loving the modern amenities and spacious layout #newhome",
		"Site visit day at an upcoming project in %s. Construction quality looks excellent so far #property",
		"Our dream home in %s is finally ready! The gated community has a pool, gym and great landscaping",
		"Weekend brunch spots around %s keep getting better. This area has really developed in the last few years",
	},
	Research: {
		"%s has shown consistent residential price appreciation driven by proximity to major IT employment hubs. " +
			"Demand from working professionals keeps rental occupancy high, and ongoing infrastructure projects " +
			"including road widening and metro connectivity are expected to support values. Buyers should verify " +
			"builder track records as project delivery timelines in the area have been mixed.",
		"The micro market around %s benefits from established social infrastructure with reputed schools and " +
			"hospitals within a short drive. Supply of new apartments remains healthy, which moderates price " +
			"growth, while land parcels for independent houses have become scarce and command a premium.",
	},
}

// Items returns up to limit synthetic items attributed to the given source.
// Unknown sources fall back to the forum templates.
func (g *DemoGenerator) Items(src, location string, limit int) []domain.RawItem {
	templates, ok := demoTemplates[src]
	if !ok {
		templates = demoTemplates[Forum]
	}
	if limit <= 0 || limit > len(templates) {
		limit = len(templates)
	}

	now := g.now()
	items := make([]domain.RawItem, 0, limit)
	for i := 0; i < limit; i++ {
		items = append(items, domain.RawItem{
			Text:      fmt.Sprintf(templates[i], displayName(location)),
			URL:       fmt.Sprintf("https://example.com/%s/demo/%d", src, i+1),
			Timestamp: now.Add(-time.Duration(i) * time.Hour),
			Source:    src,
			Kind:      domain.KindPost,
			Engagement: domain.Engagement{
				Likes:    40 + i*17,
				Comments: 3 + i*2,
			},
			Metadata: map[string]string{"demo": "true"},
		})
	}
	return items
}

// HashtagItems mimics hashtag search results for the photo source.
func (g *DemoGenerator) HashtagItems(location string, limit int) []domain.RawItem {
	items := g.Items(Photo, location, limit)
	for i := range items {
		items[i].Metadata["phase"] = "hashtag"
		items[i].Text += " #" + strings.ReplaceAll(strings.ToLower(location), " ", "")
	}
	return items
}

// BusinessItems mimics posts from builder and broker business accounts.
func (g *DemoGenerator) BusinessItems(location string, limit int) []domain.RawItem {
	templates := []string{
		"Launching premium 2 and 3BHK residences in %s. Ready to move, RERA approved, book your site visit today",
		"Price trends update for %s: average rates up 6%% this quarter. Contact us for resale and rental listings",
		"Our new commercial project near %s is now open for leasing. Grade A office space with ample parking",
	}
	if limit <= 0 || limit > len(templates) {
		limit = len(templates)
	}
	now := g.now()
	items := make([]domain.RawItem, 0, limit)
	for i := 0; i < limit; i++ {
		items = append(items, domain.RawItem{
			Text:      fmt.Sprintf(templates[i], displayName(location)),
			URL:       fmt.Sprintf("https://example.com/photo/business/%d", i+1),
			Timestamp: now.Add(-time.Duration(i+1) * 2 * time.Hour),
			Source:    Photo,
			Kind:      domain.KindPost,
			Engagement: domain.Engagement{
				Likes:    120 + i*35,
				Comments: 8 + i*4,
			},
			Metadata: map[string]string{"demo": "true", "phase": "business"},
		})
	}
	return items
}

// TrendingItems mimics discovery-feed content loosely tied to the locality.
func (g *DemoGenerator) TrendingItems(location string, limit int) []domain.RawItem {
	templates := []string{
		"Hyderabad real estate is booming and %s is one of the hottest localities right now. Prices reflect it",
		"Top 5 areas to buy property this year, %s makes the list thanks to job growth and new infrastructure",
		"Renting vs buying in %s: with current rates, buying makes sense if you plan to stay five plus years",
	}
	if limit <= 0 || limit > len(templates) {
		limit = len(templates)
	}
	now := g.now()
	items := make([]domain.RawItem, 0, limit)
	for i := 0; i < limit; i++ {
		items = append(items, domain.RawItem{
			Text:      fmt.Sprintf(templates[i], displayName(location)),
			URL:       fmt.Sprintf("https://example.com/photo/trending/%d", i+1),
			Timestamp: now.Add(-time.Duration(i+2) * 3 * time.Hour),
			Source:    Photo,
			Kind:      domain.KindPost,
			Engagement: domain.Engagement{
				Likes:    200 + i*60,
				Comments: 15 + i*6,
			},
			Metadata: map[string]string{"demo": "true", "phase": "trending"},
		})
	}
	return items
}

func displayName(location string) string {
	location = strings.TrimSpace(location)
	if location == "" {
		return "Hyderabad"
	}
	words := strings.Fields(location)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
