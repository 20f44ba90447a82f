// internal/sources/events/fallback.go
package events

import (
	"fmt"
	"sort"
	"time"

	"github.com/beastaman/Sleft-Signal-sub000/internal/enrich"
	"github.com/beastaman/Sleft-Signal-sub000/internal/models"
	"github.com/beastaman/Sleft-Signal-sub000/internal/normalize"
	"github.com/beastaman/Sleft-Signal-sub000/internal/scoring"
)

var fallbackTemplates = []struct {
	TitleFormat string
	Description string
	Type        string
	DaysAhead   int
	Capacity    int
	Organizer   string
}{
	{
		"%s Professionals Networking Mixer",
		"Monthly mixer for local professionals. Casual format with structured introductions and plenty of time to connect.",
		models.EventInPerson, 9, 60, "City Business Alliance",
	},
	{
		"%s Industry Roundtable",
		"Small-group discussion on current market conditions, growth strategy, and shared operational challenges.",
		models.EventInPerson, 16, 25, "Regional Chamber of Commerce",
	},
	{
		"Online %s Growth Workshop",
		"Hands-on workshop covering marketing, customer acquisition, and business development tactics.",
		models.EventOnline, 5, 200, "Founders Network",
	},
	{
		"%s Startup Pitch Night",
		"Early-stage founders pitch to a panel of local investors and operators. Networking session follows.",
		models.EventInPerson, 23, 120, "Startup Collective",
	},
}

// Fallback synthesizes a deterministic event set for the request. asOf
// anchors the event dates so output is reproducible under test.
func Fallback(params Params, asOf time.Time) []models.MeetupEvent {
	keyword := params.NetworkingKeyword
	if keyword == "" {
		keyword = params.Industry
	}
	industryKW := normalize.IndustryKeywords(params.Industry)
	city := titleCase(params.Location.City)

	events := make([]models.MeetupEvent, 0, len(fallbackTemplates))
	for i, tmpl := range fallbackTemplates {
		event := models.MeetupEvent{
			ID:           fmt.Sprintf("fallback-%d", i+1),
			Title:        fmt.Sprintf(tmpl.TitleFormat, titleCase(params.Industry)),
			Description:  tmpl.Description,
			Date:         asOf.Add(time.Duration(tmpl.DaysAhead) * 24 * time.Hour),
			Type:         tmpl.Type,
			Organizer:    tmpl.Organizer,
			MaxAttendees: tmpl.Capacity,
		}
		if tmpl.Type == models.EventInPerson {
			event.Address = fmt.Sprintf("Downtown %s", city)
		}
		event.RelevanceScore = scoring.EventRelevance(event, keyword, industryKW, asOf)
		event.Category = enrich.CategorizeEvent(event)
		event.NetworkingValue = networkingValue(event)
		event.PersonalizedReason = personalizedReason(event, params)
		event.ActionableSteps = actionableSteps(event)
		events = append(events, event)
	}

	sort.SliceStable(events, func(i, j int) bool {
		if events[i].RelevanceScore != events[j].RelevanceScore {
			return events[i].RelevanceScore > events[j].RelevanceScore
		}
		return events[i].Date.Before(events[j].Date)
	})
	return events
}
