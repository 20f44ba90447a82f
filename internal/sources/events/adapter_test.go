// internal/sources/events/adapter_test.go
package events

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/beastaman/Sleft-Signal-sub000/internal/common/errors"
	"github.com/beastaman/Sleft-Signal-sub000/internal/common/logger"
	"github.com/beastaman/Sleft-Signal-sub000/internal/models"
)

var testNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func testParams() Params {
	return Params{
		Industry:          "technology & software",
		NetworkingKeyword: "tech startup",
		Location:          models.LocationSpec{City: "austin", State: "tx", CountryCode: "us"},
	}
}

func newTestAdapter(t *testing.T, serverURL string, budget int) *Adapter {
	cfg := DefaultConfig()
	cfg.BaseURL = serverURL
	cfg.APIKey = "test-key"
	cfg.MinSpacing = time.Millisecond
	limiter := NewLimiter(cfg.MinSpacing, budget, nil)
	a := NewAdapter(cfg, limiter, logger.NewZapAdapter(zaptest.NewLogger(t)))
	a.now = func() time.Time { return testNow }
	return a
}

func eventItem(title, organizer, date string, extra map[string]interface{}) map[string]interface{} {
	item := map[string]interface{}{
		"title":     title,
		"organizer": organizer,
		"dateTime":  date,
	}
	for k, v := range extra {
		item[k] = v
	}
	return item
}

func TestFetchRunsAllQueriesAndMerges(t *testing.T) {
	var keywords []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		kw := r.URL.Query().Get("keyword")
		keywords = append(keywords, kw)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"events": []interface{}{
				eventItem("Tech Startup Founders Meetup "+kw, "Founders Club", "2024-06-25T18:00:00Z", map[string]interface{}{
					"eventType": "physical",
					"capacity":  float64(80),
				}),
			},
		})
	}))
	defer server.Close()

	a := newTestAdapter(t, server.URL, 20)
	events, err := a.Fetch(context.Background(), testParams())
	require.NoError(t, err)

	// One query per derived keyword, all executed and merged.
	require.Equal(t, []string{"tech startup", "tech"}, keywords)
	assert.Len(t, events, 2)
	for _, event := range events {
		assert.Equal(t, models.EventInPerson, event.Type)
		assert.GreaterOrEqual(t, event.RelevanceScore, a.config.MinRelevance)
		assert.NotEmpty(t, event.Category)
		assert.NotEmpty(t, event.PersonalizedReason)
		assert.NotEmpty(t, event.ActionableSteps)
	}
}

func TestFetchDedupesAcrossQueries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"events": []interface{}{
				eventItem("Tech Startup Mixer", "Founders Club", "2024-06-25T18:00:00Z", nil),
			},
		})
	}))
	defer server.Close()

	a := newTestAdapter(t, server.URL, 20)
	events, err := a.Fetch(context.Background(), testParams())
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestFetchFiltersBelowRelevanceFloor(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"events": []interface{}{
				eventItem("Tech Startup Demo Day", "Accelerator", "2024-06-20T18:00:00Z", map[string]interface{}{
					"eventType": "physical",
				}),
				eventItem("Knitting Circle", "Hobby Group", "2025-01-05T18:00:00Z", map[string]interface{}{
					"eventType": "online",
				}),
			},
		})
	}))
	defer server.Close()

	a := newTestAdapter(t, server.URL, 20)
	a.config.MinRelevance = 30
	events, err := a.Fetch(context.Background(), testParams())
	require.NoError(t, err)

	require.Len(t, events, 1)
	assert.Equal(t, "Tech Startup Demo Day", events[0].Title)
}

func TestFetchBudgetExhausted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"events": []interface{}{}})
	}))
	defer server.Close()

	a := newTestAdapter(t, server.URL, 0)
	_, err := a.Fetch(context.Background(), testParams())
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeSourceQuotaExceeded, errors.CodeOf(err))
	assert.True(t, errors.IsSourceError(err))
}

func TestFetchProviderQuotaStopsQuerying(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	a := newTestAdapter(t, server.URL, 20)
	_, err := a.Fetch(context.Background(), testParams())
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeSourceQuotaExceeded, errors.CodeOf(err))
	assert.Equal(t, 1, calls)
}

func TestFetchCapsEvents(t *testing.T) {
	items := make([]interface{}, 0, 20)
	for i := 0; i < 20; i++ {
		items = append(items, eventItem(
			"Tech Startup Session "+string(rune('A'+i)),
			"Org "+string(rune('A'+i)),
			"2024-06-25T18:00:00Z",
			nil,
		))
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"events": items})
	}))
	defer server.Close()

	a := newTestAdapter(t, server.URL, 20)
	events, err := a.Fetch(context.Background(), testParams())
	require.NoError(t, err)
	assert.Len(t, events, a.config.MaxEvents)
}

func TestNormalizeEventType(t *testing.T) {
	assert.Equal(t, models.EventOnline, normalizeEventType("Virtual"))
	assert.Equal(t, models.EventOnline, normalizeEventType("webinar"))
	assert.Equal(t, models.EventInPerson, normalizeEventType("physical"))
	assert.Equal(t, models.EventInPerson, normalizeEventType(""))
}

func TestFallbackDeterministic(t *testing.T) {
	first := Fallback(testParams(), testNow)
	second := Fallback(testParams(), testNow)
	assert.Equal(t, first, second)

	require.NotEmpty(t, first)
	for _, event := range first {
		assert.NotEmpty(t, event.Title)
		assert.NotEmpty(t, event.Category)
		assert.True(t, event.Date.After(testNow))
		assert.Greater(t, event.NetworkingValue, 0)
	}
	for i := 1; i < len(first); i++ {
		assert.GreaterOrEqual(t, first[i-1].RelevanceScore, first[i].RelevanceScore)
	}
}
