// internal/pipeline/orchestrator.go
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/beastaman/Sleft-Signal-sub000/internal/common/errors"
	"github.com/beastaman/Sleft-Signal-sub000/internal/common/ident"
	"github.com/beastaman/Sleft-Signal-sub000/internal/common/logger"
	"github.com/beastaman/Sleft-Signal-sub000/internal/common/metrics"
	"github.com/beastaman/Sleft-Signal-sub000/internal/common/observability"
	"github.com/beastaman/Sleft-Signal-sub000/internal/enrich"
	"github.com/beastaman/Sleft-Signal-sub000/internal/models"
	"github.com/beastaman/Sleft-Signal-sub000/internal/narrative"
	"github.com/beastaman/Sleft-Signal-sub000/internal/normalize"
	"github.com/beastaman/Sleft-Signal-sub000/internal/sources/events"
	"github.com/beastaman/Sleft-Signal-sub000/internal/sources/news"
	"github.com/beastaman/Sleft-Signal-sub000/internal/sources/places"
	"github.com/beastaman/Sleft-Signal-sub000/internal/store"
)

// Stage names of one brief generation run.
const (
	StageValidating          = "validating"
	StageFetchingSources     = "fetching_sources"
	StageScoring             = "scoring"
	StageCategorizing        = "categorizing"
	StageGeneratingNarrative = "generating_narrative"
	StagePersisting          = "persisting"
)

// Source contracts the orchestrator composes. The concrete adapters
// satisfy them; tests substitute stubs.
type PlacesSource interface {
	Fetch(ctx context.Context, params places.Params) ([]models.CompetitorRecord, error)
}

type NewsSource interface {
	Fetch(ctx context.Context, params news.Params) ([]models.NewsArticle, error)
}

type EventsSource interface {
	Fetch(ctx context.Context, params events.Params) ([]models.MeetupEvent, error)
}

type NarrativeGenerator interface {
	Generate(ctx context.Context, input narrative.Input) (string, error)
}

// LeadWriter and ArticleIndexer are best-effort collaborators; a write
// failure never fails the brief.
type LeadWriter interface {
	SaveLeads(ctx context.Context, briefID string, leads []models.LeadRecord) error
}

type ArticleIndexer interface {
	IndexArticles(ctx context.Context, industry string, articles []models.NewsArticle) error
}

// Orchestrator runs the brief generation pipeline: validate, fetch the
// sources concurrently, score and categorize, generate the narrative,
// persist. Source failures degrade to synthesized fallback data; only
// validation and narrative failures fail the run.
type Orchestrator struct {
	places    PlacesSource
	news      NewsSource
	events    EventsSource
	narrative NarrativeGenerator
	briefs    store.BriefStore
	leads     LeadWriter
	index     ArticleIndexer
	obs       *observability.Observability
	logger    logger.Logger
	now       func() time.Time
}

// Options carry the optional collaborators.
type Options struct {
	Leads LeadWriter
	Index ArticleIndexer
	Obs   *observability.Observability
}

func NewOrchestrator(
	placesSource PlacesSource,
	newsSource NewsSource,
	eventsSource EventsSource,
	gen NarrativeGenerator,
	briefs store.BriefStore,
	opts Options,
	log logger.Logger,
) *Orchestrator {
	return &Orchestrator{
		places:    placesSource,
		news:      newsSource,
		events:    eventsSource,
		narrative: gen,
		briefs:    briefs,
		leads:     opts.Leads,
		index:     opts.Index,
		obs:       opts.Obs,
		logger:    log.With(map[string]interface{}{"component": "pipeline"}),
		now:       time.Now,
	}
}

// GenerateBrief runs the full pipeline for one request.
func (o *Orchestrator) GenerateBrief(ctx context.Context, req models.SearchRequest) (*models.Brief, error) {
	if missing := req.MissingFields(); len(missing) > 0 {
		o.recordOutcome(ctx, "validation_failed")
		return nil, errors.NewValidationError(strings.Join(missing, ", "))
	}

	loc := normalize.ParseLocation(req.Location)
	log := o.logger.With(map[string]interface{}{
		"businessName": req.BusinessName,
		"industry":     req.Industry,
		"city":         loc.City,
	})

	fetched := o.fetchSources(ctx, req, loc, log)
	business, newsData, meetupData := o.assemble(ctx, fetched, req)

	narrativeStart := o.now()
	content, err := o.narrative.Generate(ctx, narrative.Input{
		Request:  req,
		Business: business,
		News:     newsData,
		Meetup:   meetupData,
	})
	o.recordStage(ctx, StageGeneratingNarrative, o.now().Sub(narrativeStart))
	if err != nil {
		o.recordOutcome(ctx, "narrative_failed")
		log.Error("narrative generation failed", map[string]interface{}{"error": err.Error()})
		return nil, err
	}

	brief := &models.Brief{
		ID:           ident.NewBriefID(),
		BusinessName: req.BusinessName,
		Content:      content,
		BusinessData: business,
		NewsData:     newsData,
		MeetupData:   meetupData,
		Metadata: models.BriefMetadata{
			Industry:   req.Industry,
			Location:   req.Location,
			WebsiteURL: req.WebsiteURL,
			CustomGoal: req.CustomGoal,
		},
		CreatedAt: o.now().UTC(),
	}

	o.persist(ctx, brief, log)
	o.recordOutcome(ctx, "ok")
	log.Info("brief generated", map[string]interface{}{
		"briefId":     brief.ID,
		"competitors": len(business.Competitors),
		"articles":    len(newsData.Articles),
	})
	return brief, nil
}

// recordOutcome feeds both the Prometheus counter and the OTel meter.
func (o *Orchestrator) recordOutcome(ctx context.Context, outcome string) {
	metrics.BriefsGenerated.WithLabelValues(outcome).Inc()
	if o.obs != nil {
		o.obs.RecordBriefProcessed(ctx, outcome)
	}
}

func (o *Orchestrator) recordStage(ctx context.Context, stage string, elapsed time.Duration) {
	metrics.StageDuration.WithLabelValues(stage).Observe(elapsed.Seconds())
	if o.obs != nil {
		o.obs.RecordStageDuration(ctx, stage, elapsed)
	}
}

// GetBrief retrieves a previously generated brief.
func (o *Orchestrator) GetBrief(ctx context.Context, id string) (*models.Brief, error) {
	return o.briefs.Get(ctx, id)
}

// fetchResult is the output of the concurrent source fan-out.
type fetchResult struct {
	competitors      []models.CompetitorRecord
	businessFallback bool
	articles         []models.NewsArticle
	newsFallback     bool
	events           []models.MeetupEvent
	eventsFallback   bool
	eventsRequested  bool
}

func (o *Orchestrator) fetchSources(ctx context.Context, req models.SearchRequest, loc models.LocationSpec, log logger.Logger) fetchResult {
	start := o.now()
	defer func() {
		o.recordStage(ctx, StageFetchingSources, o.now().Sub(start))
	}()

	result := fetchResult{
		eventsRequested: strings.TrimSpace(req.NetworkingKeyword) != "",
	}

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		params := places.Params{
			BusinessName: req.BusinessName,
			Industry:     req.Industry,
			Location:     loc,
		}
		competitors, err := o.places.Fetch(ctx, params)
		if err != nil {
			o.noteFallback("places", err, log)
			competitors = places.Fallback(params)
			result.businessFallback = true
		}
		result.competitors = competitors
	}()

	go func() {
		defer wg.Done()
		params := news.Params{Industry: req.Industry, Location: loc}
		articles, err := o.news.Fetch(ctx, params)
		if err != nil {
			o.noteFallback("news", err, log)
			articles = news.Fallback(params, o.now())
			result.newsFallback = true
		}
		result.articles = articles
	}()

	if result.eventsRequested {
		wg.Add(1)
		go func() {
			defer wg.Done()
			params := events.Params{
				Industry:          req.Industry,
				NetworkingKeyword: req.NetworkingKeyword,
				CustomGoal:        req.CustomGoal,
				Location:          loc,
			}
			found, err := o.events.Fetch(ctx, params)
			if err != nil {
				o.noteFallback("events", err, log)
				found = events.Fallback(params, o.now())
				result.eventsFallback = true
			}
			result.events = found
		}()
	}

	wg.Wait()
	return result
}

func (o *Orchestrator) noteFallback(source string, err error, log logger.Logger) {
	metrics.FallbacksUsed.WithLabelValues(source).Inc()
	if errors.IsSourceError(err) {
		log.Warn("source degraded to fallback data", map[string]interface{}{
			"source": source,
			"code":   string(errors.CodeOf(err)),
		})
		return
	}
	log.Error("source failed unexpectedly, using fallback data", map[string]interface{}{
		"source": source,
		"error":  err.Error(),
	})
}

// assemble turns the raw fetch result into the brief sections: market
// analysis and leads from the competitor set, categorized groupings for
// articles and events.
func (o *Orchestrator) assemble(ctx context.Context, fetched fetchResult, req models.SearchRequest) (models.BusinessData, models.NewsData, *models.MeetupData) {
	scoringStart := o.now()
	business := models.BusinessData{
		Competitors:       fetched.competitors,
		Leads:             places.DeriveLeads(fetched.competitors, req.Industry),
		MarketAnalysis:    places.BuildMarketAnalysis(fetched.competitors),
		UsingFallbackData: fetched.businessFallback,
	}
	o.recordStage(ctx, StageScoring, o.now().Sub(scoringStart))

	categorizeStart := o.now()
	newsData := models.NewsData{
		Articles:          fetched.articles,
		Categorized:       enrich.GroupArticles(fetched.articles),
		TotalFound:        len(fetched.articles),
		UsingFallbackData: fetched.newsFallback,
	}

	var meetupData *models.MeetupData
	if fetched.eventsRequested {
		meetupData = &models.MeetupData{
			Events:            fetched.events,
			Categorized:       enrich.GroupEvents(fetched.events),
			TotalFound:        len(fetched.events),
			SearchSummary:     eventSearchSummary(fetched.events, req),
			UsingFallbackData: fetched.eventsFallback,
		}
	}
	o.recordStage(ctx, StageCategorizing, o.now().Sub(categorizeStart))

	return business, newsData, meetupData
}

// persist writes the brief and its side tables. The brief store is the
// system of record; lead and index writes are best effort.
func (o *Orchestrator) persist(ctx context.Context, brief *models.Brief, log logger.Logger) {
	start := o.now()
	defer func() {
		o.recordStage(ctx, StagePersisting, o.now().Sub(start))
	}()

	if err := o.briefs.Put(ctx, brief); err != nil {
		log.Error("brief persistence failed", map[string]interface{}{
			"briefId": brief.ID,
			"error":   err.Error(),
		})
	}

	if o.leads != nil && len(brief.BusinessData.Leads) > 0 {
		if err := o.leads.SaveLeads(ctx, brief.ID, brief.BusinessData.Leads); err != nil {
			log.Warn("lead persistence failed", map[string]interface{}{
				"briefId": brief.ID,
				"error":   err.Error(),
			})
		}
	}

	if o.index != nil && len(brief.NewsData.Articles) > 0 {
		if err := o.index.IndexArticles(ctx, brief.Metadata.Industry, brief.NewsData.Articles); err != nil {
			log.Warn("article indexing failed", map[string]interface{}{
				"briefId": brief.ID,
				"error":   err.Error(),
			})
		}
	}
}

func eventSearchSummary(found []models.MeetupEvent, req models.SearchRequest) string {
	keywords := normalize.DeriveKeywords(req.Industry, req.NetworkingKeyword, req.CustomGoal)
	return fmt.Sprintf("Found %d events for keywords: %s", len(found), strings.Join(keywords, ", "))
}
