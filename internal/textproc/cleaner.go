// Package textproc holds the text normalizer and the relevance/dedup filter
// applied to scraped content before sentiment scoring.
package textproc

import (
	"regexp"
	"strings"

	"github.com/clipperhouse/uax29/v2/words"
	"github.com/kljensen/snowball"
)

var (
	urlExpr      = regexp.MustCompile(`http\S+|www\S+|https\S+`)
	emailExpr    = regexp.MustCompile(`\S+@\S+`)
	tagExpr      = regexp.MustCompile(`[@#]\w+`)
	nonAlphaExpr = regexp.MustCompile(`[^a-zA-Z\s]`)
)

// stopwords is the standard English stopword list.
var stopwords = map[string]struct{}{}

func init() {
	list := []string{
		"i", "me", "my", "myself", "we", "our", "ours", "ourselves", "you",
		"your", "yours", "yourself", "yourselves", "he", "him", "his",
		"himself", "she", "her", "hers", "herself", "it", "its", "itself",
		"they", "them", "their", "theirs", "themselves", "what", "which",
		"who", "whom", "this", "that", "these", "those", "am", "is", "are",
		"was", "were", "be", "been", "being", "have", "has", "had", "having",
		"do", "does", "did", "doing", "a", "an", "the", "and", "but", "if",
		"or", "because", "as", "until", "while", "of", "at", "by", "for",
		"with", "about", "against", "between", "into", "through", "during",
		"before", "after", "above", "below", "to", "from", "up", "down",
		"in", "out", "on", "off", "over", "under", "again", "further",
		"then", "once", "here", "there", "when", "where", "why", "how",
		"all", "any", "both", "each", "few", "more", "most", "other",
		"some", "such", "no", "nor", "not", "only", "own", "same", "so",
		"than", "too", "very", "s", "t", "can", "will", "just", "don",
		"should", "now",
	}
	for _, w := range list {
		stopwords[w] = struct{}{}
	}
}

// Clean normalizes raw scraped text for storage and keyword analysis:
// lowercase, strip URLs/emails/mentions/hashtags, drop non-alphabetic runes,
// tokenize, remove stopwords and tokens of length <= 2, stem, rejoin.
// It always returns a string; unusable input yields "".
func Clean(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	s := strings.ToLower(text)
	s = urlExpr.ReplaceAllString(s, "")
	s = emailExpr.ReplaceAllString(s, "")
	s = tagExpr.ReplaceAllString(s, "")
	s = nonAlphaExpr.ReplaceAllString(s, "")
	s = strings.Join(strings.Fields(s), " ")

	var kept []string
	tokens := words.FromString(s)
	for tokens.Next() {
		token := strings.TrimSpace(tokens.Value())
		if len(token) <= 2 {
			continue
		}
		if _, stop := stopwords[token]; stop {
			continue
		}
		stemmed, err := snowball.Stem(token, "english", false)
		if err != nil || stemmed == "" {
			// Stemming is best-effort; keep the raw token.
			stemmed = token
		}
		kept = append(kept, stemmed)
	}

	return strings.Join(kept, " ")
}
