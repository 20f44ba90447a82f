// internal/scoring/events_test.go
package scoring

import (
	"testing"
	"time"

	"github.com/beastaman/Sleft-Signal-sub000/internal/models"

	"github.com/stretchr/testify/assert"
)

var eventNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func TestEventRelevance_FullKeywordMatch(t *testing.T) {
	event := models.MeetupEvent{
		Title:       "Food industry networking night",
		Description: "Meet local restaurateurs",
		Type:        models.EventOnline,
		Date:        eventNow.Add(90 * 24 * time.Hour),
	}

	// 40 keyword + 10 online + 3 timing + 1 capacity
	score := EventRelevance(event, "food industry", nil, eventNow)

	assert.Equal(t, 54, score)
}

func TestEventRelevance_PartialKeywordMatch(t *testing.T) {
	event := models.MeetupEvent{
		Title: "Food trucks of Chicago",
		Type:  models.EventOnline,
		Date:  eventNow.Add(90 * 24 * time.Hour),
	}

	// 20 partial + 10 online + 3 timing + 1 capacity
	score := EventRelevance(event, "food industry", nil, eventNow)

	assert.Equal(t, 34, score)
}

func TestEventRelevance_IndustryKeywordsCapped(t *testing.T) {
	event := models.MeetupEvent{
		Title:       "tech software development cloud data startup",
		Description: "ml ai robotics",
		Type:        models.EventOnline,
		Date:        eventNow.Add(90 * 24 * time.Hour),
	}
	keywords := []string{"tech", "software development", "cloud", "data", "startup"}

	// industry contribution capped at 30: 30 + 10 online + 3 + 1
	score := EventRelevance(event, "", keywords, eventNow)

	assert.Equal(t, 44, score)
}

func TestEventRelevance_InPersonPreferred(t *testing.T) {
	base := models.MeetupEvent{Title: "meetup", Date: eventNow.Add(90 * 24 * time.Hour)}

	inPerson := base
	inPerson.Type = models.EventInPerson
	online := base
	online.Type = models.EventOnline

	assert.Equal(t, 5, EventRelevance(inPerson, "", nil, eventNow)-EventRelevance(online, "", nil, eventNow))
}

func TestEventRelevance_TimingBonus(t *testing.T) {
	soon := models.MeetupEvent{Type: models.EventOnline, Date: eventNow.Add(10 * 24 * time.Hour)}
	midterm := models.MeetupEvent{Type: models.EventOnline, Date: eventNow.Add(45 * 24 * time.Hour)}
	far := models.MeetupEvent{Type: models.EventOnline, Date: eventNow.Add(120 * 24 * time.Hour)}

	assert.Equal(t, 21, EventRelevance(soon, "", nil, eventNow))
	assert.Equal(t, 18, EventRelevance(midterm, "", nil, eventNow))
	assert.Equal(t, 14, EventRelevance(far, "", nil, eventNow))
}

func TestEventRelevance_CapacityBonus(t *testing.T) {
	big := models.MeetupEvent{Type: models.EventOnline, Date: eventNow.Add(120 * 24 * time.Hour), MaxAttendees: 100}
	medium := models.MeetupEvent{Type: models.EventOnline, Date: eventNow.Add(120 * 24 * time.Hour), MaxAttendees: 25}
	small := models.MeetupEvent{Type: models.EventOnline, Date: eventNow.Add(120 * 24 * time.Hour), MaxAttendees: 5}

	assert.Equal(t, 18, EventRelevance(big, "", nil, eventNow))
	assert.Equal(t, 16, EventRelevance(medium, "", nil, eventNow))
	assert.Equal(t, 14, EventRelevance(small, "", nil, eventNow))
}

func TestEventRelevance_BoundedScore(t *testing.T) {
	event := models.MeetupEvent{
		Title:        "startup networking investment tech fintech growth",
		Description:  "food industry hospitality marketing legal healthcare",
		Type:         models.EventInPerson,
		Date:         eventNow.Add(5 * 24 * time.Hour),
		MaxAttendees: 500,
	}
	keywords := []string{"startup", "networking", "investment", "tech", "fintech"}

	score := EventRelevance(event, "startup networking", keywords, eventNow)

	assert.GreaterOrEqual(t, score, 0)
	assert.LessOrEqual(t, score, 100)
}

func TestEventRelevance_Deterministic(t *testing.T) {
	event := models.MeetupEvent{
		Title:        "Hospitality leaders dinner",
		Description:  "Food industry veterans share growth strategy",
		Type:         models.EventInPerson,
		Date:         eventNow.Add(14 * 24 * time.Hour),
		MaxAttendees: 60,
	}
	keywords := []string{"food industry", "hospitality"}

	first := EventRelevance(event, "food industry", keywords, eventNow)
	second := EventRelevance(event, "food industry", keywords, eventNow)

	assert.Equal(t, first, second)
}
