// internal/sources/places/adapter_test.go
package places

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	commonerrors "github.com/beastaman/Sleft-Signal-sub000/internal/common/errors"
	"github.com/beastaman/Sleft-Signal-sub000/internal/common/logger"
	"github.com/beastaman/Sleft-Signal-sub000/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testParams() Params {
	return Params{
		BusinessName: "Luigi's Pizzeria",
		Industry:     "Restaurant & Food Service",
		Location:     models.LocationSpec{City: "chicago", State: "il", CountryCode: "us"},
	}
}

func newTestAdapter(baseURL string) *Adapter {
	cfg := DefaultConfig()
	cfg.BaseURL = baseURL
	cfg.Timeout = 2 * time.Second
	return NewAdapter(cfg, logger.NewNoOpLogger())
}

func placesResponse(items []map[string]interface{}) string {
	data, _ := json.Marshal(map[string]interface{}{"items": items})
	return string(data)
}

func TestFetch_MapsProviderFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Query().Get("query"), "Restaurant & Food Service in chicago, il")
		w.Write([]byte(placesResponse([]map[string]interface{}{
			{
				"title":        "Deep Dish Haven",
				"totalScore":   4.7,
				"reviewsCount": float64(320),
				"address":      "12 W Lake St, Chicago, IL",
				"phone":        "+1 312 555 0100",
				"website":      "https://deepdishhaven.example",
				"categoryName": "Pizza restaurant",
			},
			{
				// Alternate schema: name/rating/userRatingsTotal.
				"name":             "Windy City Bistro",
				"rating":           4.2,
				"userRatingsTotal": float64(88),
				"vicinity":         "44 N State St",
			},
		})))
	}))
	defer server.Close()

	records, err := newTestAdapter(server.URL).Fetch(context.Background(), testParams())

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Deep Dish Haven", records[0].Title)
	assert.Equal(t, 4.7, records[0].Rating)
	assert.Equal(t, 320, records[0].ReviewsCount)
	assert.Equal(t, "Pizza restaurant", records[0].Category)

	assert.Equal(t, "Windy City Bistro", records[1].Title)
	assert.Equal(t, 4.2, records[1].Rating)
	assert.Equal(t, 88, records[1].ReviewsCount)
	assert.Equal(t, "44 N State St", records[1].Address)
	assert.Equal(t, "Restaurant & Food Service", records[1].Category, "missing category falls back to industry")
}

func TestFetch_EmptyResultIsSourceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(placesResponse(nil)))
	}))
	defer server.Close()

	_, err := newTestAdapter(server.URL).Fetch(context.Background(), testParams())

	require.Error(t, err)
	assert.True(t, commonerrors.IsSourceError(err))
}

func TestFetch_QuotaStatusIsQuotaError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := newTestAdapter(server.URL).Fetch(context.Background(), testParams())

	require.Error(t, err)
	assert.Equal(t, commonerrors.ErrCodeSourceQuotaExceeded, commonerrors.CodeOf(err))
}

func TestFetch_ProviderDownIsSourceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	_, err := newTestAdapter(server.URL).Fetch(context.Background(), testParams())

	require.Error(t, err)
	assert.True(t, commonerrors.IsSourceError(err))
}

func TestFetch_CapsCompetitors(t *testing.T) {
	items := make([]map[string]interface{}, 20)
	for i := range items {
		items[i] = map[string]interface{}{"title": "Biz", "rating": 4.0}
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(placesResponse(items)))
	}))
	defer server.Close()

	adapter := newTestAdapter(server.URL)

	records, err := adapter.Fetch(context.Background(), testParams())
	require.NoError(t, err)
	assert.Len(t, records, adapter.config.MaxCompetitors)

	self := testParams()
	self.SelfLookup = true
	records, err = adapter.Fetch(context.Background(), self)
	require.NoError(t, err)
	assert.Len(t, records, adapter.config.MaxSelfLookup)
}

func TestFallback_DeterministicAndPlausible(t *testing.T) {
	params := testParams()

	first := Fallback(params)
	second := Fallback(params)

	assert.Equal(t, first, second)
	assert.Len(t, first, 6)
	for _, record := range first {
		assert.NotEmpty(t, record.Title)
		assert.Greater(t, record.Rating, 0.0)
		assert.Contains(t, record.Address, "Chicago")
	}

	analysis := BuildMarketAnalysis(first)
	assert.Equal(t, "Medium", analysis.Saturation)
}

func TestBuildMarketAnalysis(t *testing.T) {
	low := []models.CompetitorRecord{{Rating: 4.0}, {Rating: 5.0}}
	analysis := BuildMarketAnalysis(low)
	assert.Equal(t, "Low", analysis.Saturation)
	assert.Equal(t, 4.5, analysis.AverageRating)
	assert.Equal(t, 2, analysis.TotalBusinesses)

	high := make([]models.CompetitorRecord, 15)
	assert.Equal(t, "High", BuildMarketAnalysis(high).Saturation)

	assert.Equal(t, "Low", BuildMarketAnalysis(nil).Saturation)
}

func TestDeriveLeads(t *testing.T) {
	competitors := []models.CompetitorRecord{
		{Title: "Top Rated", Rating: 4.8, ReviewsCount: 250},
		{Title: "Newcomer", Rating: 3.5, ReviewsCount: 10},
	}

	leads := DeriveLeads(competitors, "Restaurant & Food Service")

	require.Len(t, leads, 2)
	assert.Equal(t, "Established Player", leads[0].LeadType)
	assert.Equal(t, 97, leads[0].LeadScore)
	assert.Greater(t, leads[0].PotentialValue, leads[1].PotentialValue)
	assert.Equal(t, "Emerging Business", leads[1].LeadType)
	for _, lead := range leads {
		assert.GreaterOrEqual(t, lead.LeadScore, 0)
		assert.LessOrEqual(t, lead.LeadScore, 100)
		assert.NotEmpty(t, lead.ContactReason)
	}
}

func TestDeriveLeads_BestProspectsFirst(t *testing.T) {
	competitors := []models.CompetitorRecord{
		{Title: "Quiet Shop", Rating: 3.2, ReviewsCount: 0},
		{Title: "Top Rated", Rating: 4.8, ReviewsCount: 250},
	}

	leads := DeriveLeads(competitors, "Retail")

	require.Len(t, leads, 2)
	assert.Equal(t, "Top Rated", leads[0].Title)
	assert.Equal(t, 97, leads[0].LeadScore)
	assert.Equal(t, "Quiet Shop", leads[1].Title)
	assert.Equal(t, 38, leads[1].LeadScore)
}

func TestSortLeads_TieBreaksOnRating(t *testing.T) {
	leads := []models.LeadRecord{
		{CompetitorRecord: models.CompetitorRecord{Title: "Steady", Rating: 4.0, ReviewsCount: 50}, LeadScore: 58},
		{CompetitorRecord: models.CompetitorRecord{Title: "Rising", Rating: 4.5, ReviewsCount: 20}, LeadScore: 58},
	}

	SortLeads(leads)

	assert.Equal(t, "Rising", leads[0].Title)
	assert.Equal(t, "Steady", leads[1].Title)
}
