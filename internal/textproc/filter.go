package textproc

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"EstatePulse/internal/domain"
)

const (
	minTextLength = 15
	dedupPrefix   = 150
)

// Filter rejects items that are too short, duplicated within the run, or not
// topically relevant. The seen-set spans the whole run so duplicates across
// sources are caught once.
type Filter struct {
	location string
	seen     map[string]struct{}
}

// NewFilter builds a filter scoped to the queried location.
func NewFilter(location string) *Filter {
	return &Filter{
		location: location,
		seen:     map[string]struct{}{},
	}
}

// Apply returns the accepted subset of items, order preserved. Given the same
// input sequence and seen-set, output is deterministic.
func (f *Filter) Apply(items []domain.RawItem) []domain.RawItem {
	kept := make([]domain.RawItem, 0, len(items))

	for _, item := range items {
		text := strings.TrimSpace(item.Text)
		if len(text) < minTextLength {
			continue
		}

		key := contentKey(item.Text)
		if _, dup := f.seen[key]; dup {
			continue
		}

		if !Relevant(item.Text, f.location) {
			continue
		}

		f.seen[key] = struct{}{}
		kept = append(kept, item)
	}

	return kept
}

// contentKey hashes the lowercase 150-character prefix of text, so near-exact
// reposts collapse to one item.
func contentKey(text string) string {
	prefix := strings.ToLower(text)
	if len(prefix) > dedupPrefix {
		prefix = prefix[:dedupPrefix]
	}
	prefix = strings.TrimSpace(prefix)
	return fmt.Sprintf("%x", sha256.Sum256([]byte(prefix)))
}
