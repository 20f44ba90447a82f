// internal/api/handlers_test.go
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/beastaman/Sleft-Signal-sub000/internal/common/errors"
	"github.com/beastaman/Sleft-Signal-sub000/internal/common/logger"
	"github.com/beastaman/Sleft-Signal-sub000/internal/models"
	"github.com/beastaman/Sleft-Signal-sub000/internal/sources/news"
	"github.com/beastaman/Sleft-Signal-sub000/internal/store"
)

type stubGenerator struct {
	brief *models.Brief
	err   error
	last  models.SearchRequest
}

func (s *stubGenerator) GenerateBrief(_ context.Context, req models.SearchRequest) (*models.Brief, error) {
	s.last = req
	if s.err != nil {
		return nil, s.err
	}
	return s.brief, nil
}

func (s *stubGenerator) GetBrief(_ context.Context, id string) (*models.Brief, error) {
	if s.brief != nil && s.brief.ID == id {
		return s.brief, nil
	}
	return nil, errors.NewBriefNotFoundError(id)
}

type stubLeadReader struct {
	leads  []models.LeadRecord
	filter store.LeadFilter
}

func (s *stubLeadReader) FilterLeads(_ context.Context, filter store.LeadFilter) ([]models.LeadRecord, error) {
	s.filter = filter
	return s.leads, nil
}

type stubIntel struct {
	articles []models.NewsArticle
	err      error
}

func (s *stubIntel) SearchArticles(context.Context, string, string, int) ([]models.NewsArticle, error) {
	return s.articles, s.err
}

type stubLiveNews struct {
	articles []models.NewsArticle
	called   bool
}

func (s *stubLiveNews) Fetch(context.Context, news.Params) ([]models.NewsArticle, error) {
	s.called = true
	return s.articles, nil
}

func sampleStoredBrief() *models.Brief {
	return &models.Brief{
		ID:           "abc123XYZ0",
		BusinessName: "Blue Fern Cafe",
		Content:      "The market is moderately competitive.",
		BusinessData: models.BusinessData{
			Competitors: []models.CompetitorRecord{{Title: "Maple & Main"}},
			Leads: []models.LeadRecord{
				{CompetitorRecord: models.CompetitorRecord{Title: "Maple & Main"}, LeadScore: 97, LeadType: "Established Player"},
				{CompetitorRecord: models.CompetitorRecord{Title: "Harvest Table"}, LeadScore: 57, LeadType: "Emerging Business"},
			},
			MarketAnalysis: models.MarketAnalysis{Saturation: "Medium"},
		},
		NewsData: models.NewsData{
			Articles: []models.NewsArticle{{Title: "Restaurant growth accelerates"}},
		},
	}
}

func doRequest(t *testing.T, server *Server, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echoContentType, "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	return rec
}

const echoContentType = "Content-Type"

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestGenerateEndpointSuccess(t *testing.T) {
	gen := &stubGenerator{brief: sampleStoredBrief()}
	server := NewServer(gen, Options{}, logger.NewZapAdapter(zaptest.NewLogger(t)))

	rec := doRequest(t, server, http.MethodPost, "/api/generate", `{
		"businessName": "Blue Fern Cafe",
		"websiteUrl": "https://bluefern.example",
		"industry": "restaurant & food service",
		"location": "Chicago, IL"
	}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "abc123XYZ0", body["briefId"])

	summary := body["summary"].(map[string]interface{})
	assert.Equal(t, float64(1), summary["competitorsAnalyzed"])
	assert.Equal(t, float64(2), summary["leadsGenerated"])
	assert.Equal(t, "Medium", summary["marketSaturation"])
	assert.Equal(t, "restaurant & food service", gen.last.Industry)
}

func TestGenerateEndpointMissingFields(t *testing.T) {
	server := NewServer(&stubGenerator{}, Options{}, logger.NewZapAdapter(zaptest.NewLogger(t)))

	rec := doRequest(t, server, http.MethodPost, "/api/generate", `{"businessName": "Blue Fern Cafe"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Missing required fields", body["error"])

	required := body["required"].([]interface{})
	assert.ElementsMatch(t, []interface{}{"websiteUrl", "industry", "location"}, required)
}

func TestGenerateEndpointNarrativeFailure(t *testing.T) {
	gen := &stubGenerator{err: errors.NewNarrativeError(nil)}
	server := NewServer(gen, Options{}, logger.NewZapAdapter(zaptest.NewLogger(t)))

	rec := doRequest(t, server, http.MethodPost, "/api/generate", `{
		"businessName": "Blue Fern Cafe",
		"websiteUrl": "https://bluefern.example",
		"industry": "restaurant & food service",
		"location": "Chicago, IL"
	}`)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeBody(t, rec)
	assert.Contains(t, body["message"], "NARRATIVE_GENERATION_FAILED")
}

func TestGetBriefEndpoint(t *testing.T) {
	gen := &stubGenerator{brief: sampleStoredBrief()}
	server := NewServer(gen, Options{}, logger.NewZapAdapter(zaptest.NewLogger(t)))

	rec := doRequest(t, server, http.MethodGet, "/api/briefs/abc123XYZ0", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	brief := body["brief"].(map[string]interface{})
	assert.Equal(t, "Blue Fern Cafe", brief["businessName"])

	rec = doRequest(t, server, http.MethodGet, "/api/briefs/unknown", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLeadsEndpointUsesLeadStore(t *testing.T) {
	reader := &stubLeadReader{leads: sampleStoredBrief().BusinessData.Leads[:1]}
	server := NewServer(&stubGenerator{}, Options{Leads: reader}, logger.NewZapAdapter(zaptest.NewLogger(t)))

	rec := doRequest(t, server, http.MethodPost, "/api/leads", `{
		"briefId": "abc123XYZ0",
		"leadType": "Established Player",
		"minScore": 80
	}`)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(1), body["count"])
	assert.Equal(t, store.LeadFilter{
		BriefID:  "abc123XYZ0",
		LeadType: "Established Player",
		MinScore: 80,
	}, reader.filter)
}

func TestLeadsEndpointFiltersStoredBrief(t *testing.T) {
	gen := &stubGenerator{brief: sampleStoredBrief()}
	server := NewServer(gen, Options{}, logger.NewZapAdapter(zaptest.NewLogger(t)))

	rec := doRequest(t, server, http.MethodPost, "/api/leads", `{"briefId": "abc123XYZ0", "minScore": 90}`)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(1), body["count"])

	rec = doRequest(t, server, http.MethodPost, "/api/leads", `{"minScore": 90}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, server, http.MethodPost, "/api/leads", `{"briefId": "unknown"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLeadsEndpointInMemoryPathOrdersByScore(t *testing.T) {
	brief := sampleStoredBrief()
	// Stored out of order; the response must match the lead table's
	// lead_score DESC ordering.
	brief.BusinessData.Leads = []models.LeadRecord{
		{CompetitorRecord: models.CompetitorRecord{Title: "Harvest Table"}, LeadScore: 57},
		{CompetitorRecord: models.CompetitorRecord{Title: "Maple & Main"}, LeadScore: 97},
	}
	gen := &stubGenerator{brief: brief}
	server := NewServer(gen, Options{}, logger.NewZapAdapter(zaptest.NewLogger(t)))

	rec := doRequest(t, server, http.MethodPost, "/api/leads", `{"briefId": "abc123XYZ0"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	leads, ok := body["leads"].([]interface{})
	require.True(t, ok)
	require.Len(t, leads, 2)
	first := leads[0].(map[string]interface{})
	second := leads[1].(map[string]interface{})
	assert.Equal(t, "Maple & Main", first["title"])
	assert.Equal(t, "Harvest Table", second["title"])
}

func TestIntelligenceEndpointPrefersIndex(t *testing.T) {
	intel := &stubIntel{articles: []models.NewsArticle{{Title: "Indexed story"}}}
	live := &stubLiveNews{}
	server := NewServer(&stubGenerator{}, Options{Intel: intel, LiveNews: live}, logger.NewZapAdapter(zaptest.NewLogger(t)))

	rec := doRequest(t, server, http.MethodGet, "/api/intelligence/technology", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["fromIndex"])
	assert.Equal(t, float64(1), body["count"])
	assert.False(t, live.called)
}

func TestIntelligenceEndpointFallsBackToLiveFetch(t *testing.T) {
	intel := &stubIntel{err: errors.NewStoreUnavailableError("elasticsearch", nil)}
	live := &stubLiveNews{articles: []models.NewsArticle{
		{Title: "Live story", Category: "Market Trends"},
		{Title: "Other story", Category: "Industry News"},
	}}
	server := NewServer(&stubGenerator{}, Options{Intel: intel, LiveNews: live}, logger.NewZapAdapter(zaptest.NewLogger(t)))

	rec := doRequest(t, server, http.MethodGet, "/api/intelligence/technology?category=Market+Trends", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["fromIndex"])
	assert.Equal(t, float64(1), body["count"])
	assert.True(t, live.called)
}

func TestHealthEndpoint(t *testing.T) {
	server := NewServer(&stubGenerator{}, Options{}, logger.NewZapAdapter(zaptest.NewLogger(t)))
	rec := doRequest(t, server, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequestIDHeader(t *testing.T) {
	server := NewServer(&stubGenerator{}, Options{}, logger.NewZapAdapter(zaptest.NewLogger(t)))
	rec := doRequest(t, server, http.MethodGet, "/healthz", "")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}
