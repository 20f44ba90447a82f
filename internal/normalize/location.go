// internal/normalize/location.go
package normalize

import (
	"regexp"
	"strings"

	"github.com/beastaman/Sleft-Signal-sub000/internal/models"
)

// Defaults applied when a location cannot be parsed. Every downstream
// adapter always gets a usable location; availability wins over accuracy.
const (
	DefaultCity  = "new york"
	DefaultState = "ny"
)

var zipPattern = regexp.MustCompile(`\b\d{5}(?:-\d{4})?\b`)

// stateAbbreviations maps full US state names to their two-letter codes.
var stateAbbreviations = map[string]string{
	"alabama": "al", "alaska": "ak", "arizona": "az", "arkansas": "ar",
	"california": "ca", "colorado": "co", "connecticut": "ct",
	"delaware": "de", "florida": "fl", "georgia": "ga", "hawaii": "hi",
	"idaho": "id", "illinois": "il", "indiana": "in", "iowa": "ia",
	"kansas": "ks", "kentucky": "ky", "louisiana": "la", "maine": "me",
	"maryland": "md", "massachusetts": "ma", "michigan": "mi",
	"minnesota": "mn", "mississippi": "ms", "missouri": "mo",
	"montana": "mt", "nebraska": "ne", "nevada": "nv",
	"new hampshire": "nh", "new jersey": "nj", "new mexico": "nm",
	"new york": "ny", "north carolina": "nc", "north dakota": "nd",
	"ohio": "oh", "oklahoma": "ok", "oregon": "or", "pennsylvania": "pa",
	"rhode island": "ri", "south carolina": "sc", "south dakota": "sd",
	"tennessee": "tn", "texas": "tx", "utah": "ut", "vermont": "vt",
	"virginia": "va", "washington": "wa", "west virginia": "wv",
	"wisconsin": "wi", "wyoming": "wy",
	"district of columbia": "dc",
}

var validStateCodes = func() map[string]bool {
	codes := make(map[string]bool, len(stateAbbreviations))
	for _, code := range stateAbbreviations {
		codes[code] = true
	}
	return codes
}()

// ParseLocation turns a free-text location into a LocationSpec. It strips
// postal codes, recognizes US state names and abbreviations, and
// lower-cases city and state. It never fails: unrecognized input yields
// the default spec.
func ParseLocation(text string) models.LocationSpec {
	spec := models.LocationSpec{
		City:        DefaultCity,
		State:       DefaultState,
		CountryCode: "us",
		Original:    text,
	}

	cleaned := strings.ToLower(strings.TrimSpace(zipPattern.ReplaceAllString(text, "")))
	if cleaned == "" {
		return spec
	}

	parts := strings.Split(cleaned, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	city := parts[0]

	state := ""
	for _, part := range parts[1:] {
		if s := matchState(part); s != "" {
			state = s
			break
		}
	}
	if state == "" && len(parts) == 1 {
		// No comma; try the trailing token as a state ("chicago il").
		tokens := strings.Fields(city)
		if len(tokens) > 1 {
			if s := matchState(tokens[len(tokens)-1]); s != "" {
				state = s
				city = strings.Join(tokens[:len(tokens)-1], " ")
			}
		}
	}

	if city != "" {
		spec.City = city
	}
	if state != "" {
		spec.State = state
	}
	return spec
}

// matchState matches a lowercased token against state abbreviations and
// full names, returning the two-letter code or empty.
func matchState(token string) string {
	token = strings.TrimSpace(token)
	if token == "" {
		return ""
	}
	if validStateCodes[token] {
		return token
	}
	if code, ok := stateAbbreviations[token]; ok {
		return code
	}
	// "austin tx" style suffix buried inside a multi-word segment.
	fields := strings.Fields(token)
	if len(fields) > 0 {
		last := fields[len(fields)-1]
		if validStateCodes[last] {
			return last
		}
	}
	return ""
}
