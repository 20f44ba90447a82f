// internal/enrich/dedupe.go
package enrich

import (
	"strings"

	"github.com/beastaman/Sleft-Signal-sub000/internal/models"
)

// DedupeEvents collapses near-duplicate events. The identity key is the
// case-insensitive, whitespace-stripped concatenation of title, date, and
// organizer; the first occurrence wins and later ones are dropped.
// Idempotent: running it on its own output removes nothing further.
func DedupeEvents(events []models.MeetupEvent) []models.MeetupEvent {
	seen := make(map[string]bool, len(events))
	out := make([]models.MeetupEvent, 0, len(events))

	for _, event := range events {
		key := eventKey(event)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, event)
	}

	return out
}

func eventKey(event models.MeetupEvent) string {
	date := ""
	if !event.Date.IsZero() {
		date = event.Date.UTC().Format("2006-01-02")
	}
	return stripSpace(event.Title) + "|" + date + "|" + stripSpace(event.Organizer)
}

func stripSpace(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
