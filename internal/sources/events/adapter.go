// internal/sources/events/adapter.go
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/beastaman/Sleft-Signal-sub000/internal/common/errors"
	"github.com/beastaman/Sleft-Signal-sub000/internal/common/logger"
	"github.com/beastaman/Sleft-Signal-sub000/internal/common/metrics"
	"github.com/beastaman/Sleft-Signal-sub000/internal/enrich"
	"github.com/beastaman/Sleft-Signal-sub000/internal/models"
	"github.com/beastaman/Sleft-Signal-sub000/internal/normalize"
	"github.com/beastaman/Sleft-Signal-sub000/internal/scoring"
	"github.com/beastaman/Sleft-Signal-sub000/internal/sources/provider"
)

const sourceName = "events"

// maxEventKeywords bounds the provider query fan-out per request.
// Unlike the news source all selected queries run and merge, so the
// limiter budget drains by this much per brief.
const maxEventKeywords = 2

// Accepted provider key names per mapped field, in precedence order.
var (
	itemsKeys     = []string{"events", "items", "results"}
	idKeys        = []string{"id", "eventId"}
	titleKeys     = []string{"title", "name"}
	descKeys      = []string{"description", "details", "summary"}
	dateKeys      = []string{"dateTime", "date", "startTime", "time"}
	typeKeys      = []string{"eventType", "type", "venueType"}
	addressKeys   = []string{"address", "venue", "location"}
	urlKeys       = []string{"eventUrl", "url", "link"}
	organizerKeys = []string{"organizer", "groupName", "group", "host"}
	maxAttKeys    = []string{"maxAttendees", "capacity", "rsvpLimit"}
	actualAttKeys = []string{"actualAttendees", "going", "rsvpCount", "attendees"}
)

// Params are the normalized inputs of one events search.
type Params struct {
	Industry          string
	NetworkingKeyword string
	CustomGoal        string
	Location          models.LocationSpec
}

// Adapter wraps the events provider behind a call limiter. Every query
// waits on the limiter before hitting the wire.
type Adapter struct {
	config  *Config
	client  *http.Client
	limiter *Limiter
	logger  logger.Logger
	now     func() time.Time
}

func NewAdapter(config *Config, limiter *Limiter, log logger.Logger) *Adapter {
	return &Adapter{
		config:  config,
		client:  &http.Client{Timeout: config.Timeout},
		limiter: limiter,
		logger:  log.With(map[string]interface{}{"source": sourceName}),
		now:     time.Now,
	}
}

// keywords picks the search keywords for a request.
func (a *Adapter) keywords(params Params) []string {
	derived := normalize.DeriveKeywords(params.Industry, params.NetworkingKeyword, params.CustomGoal)
	if len(derived) > maxEventKeywords {
		derived = derived[:maxEventKeywords]
	}
	return derived
}

// Fetch runs one query per selected keyword, merges and dedupes the
// results, scores them, and keeps the ones above the relevance floor.
// A typed source error signals the caller to degrade to Fallback.
func (a *Adapter) Fetch(ctx context.Context, params Params) ([]models.MeetupEvent, error) {
	keywords := a.keywords(params)

	var merged []models.MeetupEvent
	var lastErr error
	for _, keyword := range keywords {
		if err := a.limiter.Acquire(ctx); err != nil {
			lastErr = err
			break
		}
		batch, err := a.search(ctx, keyword, params.Location)
		if err != nil {
			lastErr = err
			if errors.CodeOf(err) == errors.ErrCodeSourceQuotaExceeded {
				break
			}
			continue
		}
		merged = append(merged, batch...)
	}

	if len(merged) == 0 {
		metrics.SourceFetches.WithLabelValues(sourceName, "error").Inc()
		if lastErr != nil {
			return nil, lastErr
		}
		return nil, errors.NewSourceEmptyError(sourceName)
	}

	events := a.enrich(enrich.DedupeEvents(merged), params)
	metrics.SourceFetches.WithLabelValues(sourceName, "ok").Inc()
	a.logger.Info("events search completed", map[string]interface{}{
		"queries":     len(keywords),
		"resultCount": len(events),
	})
	return events, nil
}

func (a *Adapter) search(ctx context.Context, keyword string, loc models.LocationSpec) ([]models.MeetupEvent, error) {
	base, err := url.Parse(a.config.BaseURL)
	if err != nil {
		return nil, errors.NewSourceUnavailableError(sourceName, err)
	}
	q := url.Values{}
	q.Set("keyword", keyword)
	q.Set("city", loc.City)
	q.Set("state", loc.State)
	q.Set("country", loc.CountryCode)
	if a.config.APIKey != "" {
		q.Set("apiKey", a.config.APIKey)
	}
	base.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base.String(), nil)
	if err != nil {
		return nil, errors.NewSourceUnavailableError(sourceName, err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, errors.NewSourceUnavailableError(sourceName, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusPaymentRequired, http.StatusForbidden, http.StatusTooManyRequests:
		return nil, errors.NewQuotaExceededError(sourceName, fmt.Sprintf("status %d", resp.StatusCode))
	default:
		return nil, errors.NewSourceUnavailableError(sourceName, fmt.Errorf("status %d", resp.StatusCode))
	}

	var body map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, errors.NewSourceUnavailableError(sourceName, err)
	}

	items := provider.Items(body, itemsKeys...)
	events := make([]models.MeetupEvent, 0, len(items))
	for _, item := range items {
		event := models.MeetupEvent{
			ID:              provider.String(item, idKeys...),
			Title:           provider.String(item, titleKeys...),
			Description:     provider.String(item, descKeys...),
			Date:            provider.Time(item, dateKeys...),
			Type:            normalizeEventType(provider.String(item, typeKeys...)),
			Address:         provider.String(item, addressKeys...),
			URL:             provider.String(item, urlKeys...),
			Organizer:       provider.String(item, organizerKeys...),
			MaxAttendees:    provider.Int(item, maxAttKeys...),
			ActualAttendees: provider.Int(item, actualAttKeys...),
		}
		if event.Title == "" {
			continue
		}
		events = append(events, event)
	}
	return events, nil
}

// normalizeEventType collapses the provider's venue wording onto the
// two supported event types. Unknown values count as in-person.
func normalizeEventType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "online", "virtual", "remote", "webinar":
		return models.EventOnline
	default:
		return models.EventInPerson
	}
}

// enrich scores, filters, ranks, and annotates the deduped events.
func (a *Adapter) enrich(events []models.MeetupEvent, params Params) []models.MeetupEvent {
	now := a.now()
	keyword := params.NetworkingKeyword
	if keyword == "" {
		keyword = params.Industry
	}
	industryKW := normalize.IndustryKeywords(params.Industry)

	kept := events[:0]
	for _, event := range events {
		event.RelevanceScore = scoring.EventRelevance(event, keyword, industryKW, now)
		if event.RelevanceScore < a.config.MinRelevance {
			continue
		}
		event.Category = enrich.CategorizeEvent(event)
		event.NetworkingValue = networkingValue(event)
		event.PersonalizedReason = personalizedReason(event, params)
		event.ActionableSteps = actionableSteps(event)
		kept = append(kept, event)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].RelevanceScore != kept[j].RelevanceScore {
			return kept[i].RelevanceScore > kept[j].RelevanceScore
		}
		return kept[i].Date.Before(kept[j].Date)
	})

	if len(kept) > a.config.MaxEvents {
		kept = kept[:a.config.MaxEvents]
	}
	return kept
}

// networkingValue estimates how much face time an event offers from
// its format and size.
func networkingValue(event models.MeetupEvent) int {
	value := 50
	if event.Type == models.EventInPerson {
		value += 20
	}
	switch {
	case event.MaxAttendees >= 100:
		value += 15
	case event.MaxAttendees >= 30:
		value += 10
	case event.MaxAttendees > 0:
		value += 5
	}
	if value > 100 {
		value = 100
	}
	return value
}

func personalizedReason(event models.MeetupEvent, params Params) string {
	if params.CustomGoal != "" {
		return fmt.Sprintf("Aligned with your goal to %s", strings.ToLower(strings.TrimSuffix(params.CustomGoal, ".")))
	}
	return fmt.Sprintf("Relevant to your %s business in %s", params.Industry, titleCase(params.Location.City))
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func actionableSteps(event models.MeetupEvent) []string {
	steps := []string{"RSVP early to secure a spot"}
	if event.Type == models.EventInPerson {
		steps = append(steps, "Bring business cards and prepare a short intro")
	} else {
		steps = append(steps, "Test your setup and join a few minutes early")
	}
	if event.Organizer != "" {
		steps = append(steps, fmt.Sprintf("Connect with the organizer, %s, ahead of the event", event.Organizer))
	}
	return steps
}
