// Package gazetteer maps free text to canonical Hyderabad locality names.
package gazetteer

import "strings"

// localities is the closed list of canonical names. Order is the tie-break
// when a text mentions more than one locality.
var localities = []string{
	"kondapur", "gachibowli", "madhapur", "hitech city", "financial district",
	"banjara hills", "jubilee hills", "kukatpally", "miyapur", "begumpet",
	"secunderabad", "ameerpet", "somajiguda", "abids", "charminar",
	"dilsukhnagar", "uppal", "kompally", "bachupally", "nizampet",
	"manikonda", "kokapet", "nanakramguda", "raidurg", "chandanagar",
	"yellahanka", "shamshabad", "patancheru", "sangareddy", "medchal",
	"lb nagar", "vanasthalipuram", "hayathnagar", "ghatkesar", "keesara",
	"shamirpet", "malkajgiri", "alwal", "bowenpally", "trimulgherry",
	"yapral", "sainikpuri", "as rao nagar", "ecil", "nagole",
	"boduppal", "ramanthapur", "tarnaka", "himayatnagar", "narayanguda",
}

type alias struct {
	variant   string
	canonical string
}

// aliases covers common misspellings and abbreviations. Checked only after
// no canonical name matched; first hit wins.
var aliases = []alias{
	{"gachi", "gachibowli"},
	{"hitech", "hitech city"},
	{"hitec", "hitech city"},
	{"banjara", "banjara hills"},
	{"jubilee", "jubilee hills"},
	{"nanakramguda", "financial district"},
	{"fin district", "financial district"},
	{"kphb", "kukatpally"},
}

// Resolve returns the canonical locality mentioned in text, or false when no
// locality or alias matches. Matching is case-insensitive substring search.
func Resolve(text string) (string, bool) {
	if text == "" {
		return "", false
	}

	lower := strings.ToLower(text)

	for _, loc := range localities {
		if strings.Contains(lower, loc) {
			return loc, true
		}
	}

	for _, a := range aliases {
		if strings.Contains(lower, a.variant) {
			return a.canonical, true
		}
	}

	return "", false
}

// Localities returns a copy of the canonical list.
func Localities() []string {
	out := make([]string, len(localities))
	copy(out, localities)
	return out
}

// Known reports whether location is one of the canonical names.
func Known(location string) bool {
	lower := strings.ToLower(strings.TrimSpace(location))
	for _, loc := range localities {
		if loc == lower {
			return true
		}
	}
	return false
}
