// internal/sources/places/adapter.go
package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/beastaman/Sleft-Signal-sub000/internal/common/errors"
	"github.com/beastaman/Sleft-Signal-sub000/internal/common/logger"
	"github.com/beastaman/Sleft-Signal-sub000/internal/common/metrics"
	"github.com/beastaman/Sleft-Signal-sub000/internal/models"
	"github.com/beastaman/Sleft-Signal-sub000/internal/sources/provider"
)

const sourceName = "places"

// Accepted provider key names per mapped field, in precedence order.
var (
	itemsKeys    = []string{"items", "results", "places"}
	titleKeys    = []string{"title", "name", "businessName"}
	ratingKeys   = []string{"totalScore", "rating", "stars"}
	reviewsKeys  = []string{"reviewsCount", "userRatingsTotal", "reviews"}
	addressKeys  = []string{"address", "formattedAddress", "vicinity"}
	phoneKeys    = []string{"phone", "phoneNumber", "internationalPhoneNumber"}
	websiteKeys  = []string{"website", "url", "site"}
	categoryKeys = []string{"categoryName", "category", "type"}
	imageKeys    = []string{"imageUrl", "photoUrl", "thumbnail"}
	priceKeys    = []string{"price", "priceLevel"}
	mapsURLKeys  = []string{"url", "googleMapsUrl", "mapsUrl"}
)

// Params are the normalized inputs of one competitor search.
type Params struct {
	BusinessName string
	Industry     string
	Location     models.LocationSpec
	// SelfLookup searches for the business itself rather than its
	// competitors, with a smaller result cap.
	SelfLookup bool
}

// Adapter wraps the places/competitor search provider.
type Adapter struct {
	config *Config
	client *http.Client
	logger logger.Logger
}

func NewAdapter(config *Config, log logger.Logger) *Adapter {
	return &Adapter{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
		logger: log.With(map[string]interface{}{"source": sourceName}),
	}
}

// Fetch queries the provider for local businesses. It returns a typed
// source error on timeout, quota exhaustion, provider error, or empty
// result; the caller decides whether to degrade to Fallback.
func (a *Adapter) Fetch(ctx context.Context, params Params) ([]models.CompetitorRecord, error) {
	query := a.buildQuery(params)

	records, err := a.search(ctx, query, params)
	if err != nil {
		metrics.SourceFetches.WithLabelValues(sourceName, "error").Inc()
		return nil, err
	}
	if len(records) == 0 {
		metrics.SourceFetches.WithLabelValues(sourceName, "empty").Inc()
		return nil, errors.NewSourceEmptyError(sourceName)
	}

	metrics.SourceFetches.WithLabelValues(sourceName, "ok").Inc()
	a.logger.Info("places search completed", map[string]interface{}{
		"query":       query,
		"resultCount": len(records),
	})
	return records, nil
}

func (a *Adapter) buildQuery(params Params) string {
	if params.SelfLookup {
		return fmt.Sprintf("%s %s, %s", params.BusinessName, params.Location.City, params.Location.State)
	}
	return fmt.Sprintf("%s in %s, %s", params.Industry, params.Location.City, params.Location.State)
}

func (a *Adapter) search(ctx context.Context, query string, params Params) ([]models.CompetitorRecord, error) {
	searchURL, err := a.buildSearchURL(query, a.cap(params))
	if err != nil {
		return nil, errors.NewSourceUnavailableError(sourceName, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
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
	case http.StatusNotFound:
		return nil, errors.NewSourceEmptyError(sourceName)
	default:
		return nil, errors.NewSourceUnavailableError(sourceName, fmt.Errorf("status %d", resp.StatusCode))
	}

	var body map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, errors.NewSourceUnavailableError(sourceName, err)
	}

	items := provider.Items(body, itemsKeys...)
	records := make([]models.CompetitorRecord, 0, len(items))
	for _, item := range items {
		record := mapRecord(item, params.Industry)
		if record.Title == "" {
			continue
		}
		records = append(records, record)
		if len(records) >= a.cap(params) {
			break
		}
	}

	return records, nil
}

func (a *Adapter) buildSearchURL(query string, limit int) (string, error) {
	base, err := url.Parse(a.config.BaseURL)
	if err != nil {
		return "", err
	}
	q := url.Values{}
	q.Set("query", query)
	q.Set("limit", fmt.Sprintf("%d", limit))
	if a.config.APIKey != "" {
		q.Set("token", a.config.APIKey)
	}
	base.RawQuery = q.Encode()
	return base.String(), nil
}

func (a *Adapter) cap(params Params) int {
	if params.SelfLookup {
		return a.config.MaxSelfLookup
	}
	return a.config.MaxCompetitors
}

func mapRecord(item map[string]interface{}, industry string) models.CompetitorRecord {
	category := provider.String(item, categoryKeys...)
	if category == "" {
		category = industry
	}
	return models.CompetitorRecord{
		Title:         provider.String(item, titleKeys...),
		Rating:        provider.Float(item, ratingKeys...),
		ReviewsCount:  provider.Int(item, reviewsKeys...),
		Address:       provider.String(item, addressKeys...),
		Phone:         provider.String(item, phoneKeys...),
		Website:       provider.String(item, websiteKeys...),
		Category:      category,
		ImageURL:      provider.String(item, imageKeys...),
		PriceLevel:    provider.String(item, priceKeys...),
		GoogleMapsURL: strings.TrimSpace(provider.String(item, mapsURLKeys...)),
	}
}
