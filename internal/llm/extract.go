package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"EstatePulse/internal/domain"
)

// ExtractJSONObject unmarshals the first top-level JSON object found in s
// into v. Model responses often wrap the object in prose or code fences.
func ExtractJSONObject(s string, v any) error {
	return extract(s, '{', '}', v)
}

// ExtractJSONArray unmarshals the first top-level JSON array found in s.
func ExtractJSONArray(s string, v any) error {
	return extract(s, '[', ']', v)
}

func extract(s string, open, closing byte, v any) error {
	start := strings.IndexByte(s, open)
	if start < 0 {
		return fmt.Errorf("no %q found in response: %w", string(open), domain.ErrScoringParse)
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case open:
			depth++
		case closing:
			depth--
			if depth == 0 {
				if err := json.Unmarshal([]byte(s[start:i+1]), v); err != nil {
					return fmt.Errorf("unmarshal response region: %w: %w", domain.ErrScoringParse, err)
				}
				return nil
			}
		}
	}

	return fmt.Errorf("unterminated %q in response: %w", string(open), domain.ErrScoringParse)
}
