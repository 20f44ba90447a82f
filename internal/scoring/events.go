// internal/scoring/events.go
package scoring

import (
	"strings"
	"time"

	"github.com/beastaman/Sleft-Signal-sub000/internal/models"
)

// Event scoring weights. Component caps keep the final score inside
// [0,100] by construction, but the result is clipped anyway.
const (
	eventFullKeywordBonus    = 40
	eventPartialKeywordBonus = 20
	eventIndustryKeywordUnit = 10
	eventIndustryKeywordCap  = 30
	eventInPersonBonus       = 15
	eventOnlineBonus         = 10
)

// EventRelevance computes the 0-100 relevance of a networking event for
// a request. Pure and deterministic.
func EventRelevance(event models.MeetupEvent, keyword string, industryKeywords []string, now time.Time) int {
	text := strings.ToLower(event.Title + " " + event.Description)
	score := 0

	// Keyword match: full phrase outranks a first-word match.
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if keyword != "" {
		if strings.Contains(text, keyword) {
			score += eventFullKeywordBonus
		} else if first := strings.Fields(keyword); len(first) > 0 && strings.Contains(text, first[0]) {
			score += eventPartialKeywordBonus
		}
	}

	industryScore := 0
	for _, kw := range industryKeywords {
		if strings.Contains(text, strings.ToLower(kw)) {
			industryScore += eventIndustryKeywordUnit
		}
	}
	if industryScore > eventIndustryKeywordCap {
		industryScore = eventIndustryKeywordCap
	}
	score += industryScore

	if event.Type == models.EventInPerson {
		score += eventInPersonBonus
	} else {
		score += eventOnlineBonus
	}

	score += timingBonus(event.Date, now)
	score += capacityBonus(event.MaxAttendees)

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return score
}

func timingBonus(date time.Time, now time.Time) int {
	if date.IsZero() {
		return 3
	}
	until := date.Sub(now)
	switch {
	case until <= 30*24*time.Hour:
		return 10
	case until <= 60*24*time.Hour:
		return 7
	default:
		return 3
	}
}

func capacityBonus(maxAttendees int) int {
	switch {
	case maxAttendees >= 50:
		return 5
	case maxAttendees >= 20:
		return 3
	default:
		return 1
	}
}
