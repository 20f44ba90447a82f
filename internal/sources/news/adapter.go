// internal/sources/news/adapter.go
package news

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
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

const sourceName = "news"

// Accepted provider key names per mapped field, in precedence order.
var (
	itemsKeys       = []string{"articles", "items", "results"}
	titleKeys       = []string{"title", "headline"}
	descriptionKeys = []string{"description", "summary", "snippet", "content"}
	urlKeys         = []string{"url", "link"}
	sourceKeys      = []string{"source", "publisher", "sourceName"}
	sourceURLKeys   = []string{"sourceUrl", "sourceLink"}
	publishedKeys   = []string{"publishedAt", "published", "date", "pubDate"}
)

// maxQueries bounds how many provider queries one fetch may run.
const maxQueries = 2

// Params are the normalized inputs of one news search.
type Params struct {
	Industry string
	Location models.LocationSpec
}

// Adapter wraps the news search provider. Articles come back scored,
// categorized, and sentiment-tagged, sorted by relevance.
type Adapter struct {
	config *Config
	client *http.Client
	logger logger.Logger
	now    func() time.Time
}

func NewAdapter(config *Config, log logger.Logger) *Adapter {
	return &Adapter{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
		logger: log.With(map[string]interface{}{"source": sourceName}),
		now:    time.Now,
	}
}

// queries builds the candidate provider queries. At most maxQueries are
// executed, and fetching short-circuits after the first one that yields
// anything usable.
func (a *Adapter) queries(params Params) []string {
	return []string{
		fmt.Sprintf("%s trends 2024", params.Industry),
		fmt.Sprintf("%s business news", params.Industry),
		fmt.Sprintf("%s %s market", params.Location.City, params.Industry),
	}
}

// Fetch queries the provider and returns scored, enriched articles. A
// typed source error signals the caller to degrade to Fallback.
func (a *Adapter) Fetch(ctx context.Context, params Params) ([]models.NewsArticle, error) {
	var articles []models.NewsArticle
	var lastErr error

	executed := 0
	for _, query := range a.queries(params) {
		if executed >= maxQueries {
			break
		}
		executed++

		batch, err := a.search(ctx, query)
		if err != nil {
			lastErr = err
			continue
		}
		if len(batch) > 0 {
			articles = batch
			break // first usable query wins, bounded cost
		}
	}

	if len(articles) == 0 {
		metrics.SourceFetches.WithLabelValues(sourceName, "error").Inc()
		if lastErr != nil {
			return nil, lastErr
		}
		return nil, errors.NewSourceEmptyError(sourceName)
	}

	enriched := a.enrich(articles, params)
	metrics.SourceFetches.WithLabelValues(sourceName, "ok").Inc()
	a.logger.Info("news search completed", map[string]interface{}{
		"resultCount": len(enriched),
	})
	return enriched, nil
}

func (a *Adapter) search(ctx context.Context, query string) ([]models.NewsArticle, error) {
	base, err := url.Parse(a.config.BaseURL)
	if err != nil {
		return nil, errors.NewSourceUnavailableError(sourceName, err)
	}
	q := url.Values{}
	q.Set("q", query)
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
	articles := make([]models.NewsArticle, 0, len(items))
	for _, item := range items {
		article := models.NewsArticle{
			Title:       provider.String(item, titleKeys...),
			Description: provider.String(item, descriptionKeys...),
			URL:         provider.String(item, urlKeys...),
			Source:      provider.String(item, sourceKeys...),
			SourceURL:   provider.String(item, sourceURLKeys...),
			Published:   provider.Time(item, publishedKeys...),
		}
		if article.Title == "" {
			continue
		}
		articles = append(articles, article)
	}
	return articles, nil
}

// enrich scores, categorizes, sentiment-tags, and ranks articles,
// keeping the configured top slice.
func (a *Adapter) enrich(articles []models.NewsArticle, params Params) []models.NewsArticle {
	now := a.now()
	industryKW := normalize.IndustryKeywords(params.Industry)

	for i := range articles {
		articles[i].RelevanceScore = scoring.NewsRelevance(articles[i], params.Industry, industryKW, now)
		articles[i].Category = enrich.CategorizeArticle(articles[i])
		articles[i].Sentiment = enrich.ArticleSentiment(articles[i])
		articles[i].KeyInsights = keyInsights(articles[i], now)
	}

	sort.SliceStable(articles, func(i, j int) bool {
		if articles[i].RelevanceScore != articles[j].RelevanceScore {
			return articles[i].RelevanceScore > articles[j].RelevanceScore
		}
		return articles[i].Published.After(articles[j].Published)
	})

	if len(articles) > a.config.MaxArticles {
		articles = articles[:a.config.MaxArticles]
	}
	return articles
}

// keyInsights derives up to three short takeaways from what is known
// about the article, recency judged against now.
func keyInsights(article models.NewsArticle, now time.Time) []string {
	var insights []string
	switch article.Sentiment {
	case enrich.SentimentPositive:
		insights = append(insights, "Positive signal for the sector")
	case enrich.SentimentNegative:
		insights = append(insights, "Headwind worth monitoring")
	}
	if article.Category != enrich.DefaultNewsCategory {
		insights = append(insights, fmt.Sprintf("Relates to %s", article.Category))
	}
	if !article.Published.IsZero() && now.Sub(article.Published) <= 7*24*time.Hour {
		insights = append(insights, "Breaking within the last week")
	}
	if len(insights) > 3 {
		insights = insights[:3]
	}
	return insights
}
