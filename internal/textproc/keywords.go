package textproc

import "strings"

// domainKeywords mark text as real-estate related.
var domainKeywords = []string{
	"property", "real estate", "apartment", "flat", "house", "villa",
	"investment", "buy", "sell", "rent", "home", "residence",
	"builder", "construction", "realty", "project", "development",
	"bhk", "sqft", "gated community", "amenities", "price", "cost",
	"booking", "launch", "ready to move", "under construction",
	"possession", "rera", "approved", "vastu", "furnished",
}

// regionKeywords mark text as tied to the covered market. The list mixes
// city-level indicators with the most-mentioned localities.
var regionKeywords = []string{
	"hyderabad", "telangana", "secunderabad", "cyberabad",
	"gachibowli", "hitech city", "hitec city", "jubilee hills",
	"banjara hills", "kondapur", "madhapur", "kukatpally", "miyapur",
	"begumpet", "financial district", "nanakramguda", "manikonda", "kokapet",
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Relevant reports whether text mentions both a real-estate keyword and a
// region keyword. A direct mention of the queried location also satisfies the
// region side. The conjunction is deliberate: general market commentary with
// no locality reference is dropped.
func Relevant(text, location string) bool {
	if text == "" {
		return false
	}

	lower := strings.ToLower(text)
	region := containsAny(lower, regionKeywords)
	if !region && location != "" {
		region = strings.Contains(lower, strings.ToLower(location))
	}

	return region && containsAny(lower, domainKeywords)
}
