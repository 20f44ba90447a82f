// cmd/signal-server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/beastaman/Sleft-Signal-sub000/internal/api"
	"github.com/beastaman/Sleft-Signal-sub000/internal/common/config"
	"github.com/beastaman/Sleft-Signal-sub000/internal/common/database"
	"github.com/beastaman/Sleft-Signal-sub000/internal/common/logger"
	"github.com/beastaman/Sleft-Signal-sub000/internal/common/observability"
	"github.com/beastaman/Sleft-Signal-sub000/internal/narrative"
	"github.com/beastaman/Sleft-Signal-sub000/internal/pipeline"
	"github.com/beastaman/Sleft-Signal-sub000/internal/sources/events"
	"github.com/beastaman/Sleft-Signal-sub000/internal/sources/news"
	"github.com/beastaman/Sleft-Signal-sub000/internal/sources/places"
	"github.com/beastaman/Sleft-Signal-sub000/internal/store"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting signal server...",
		zap.String("environment", cfg.App.Environment),
		zap.String("address", cfg.Server.Address),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init Redis with retry ---
	var redisClient *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redisClient, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redisClient.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	var briefs store.BriefStore
	var budgetStore events.BudgetStore
	if err != nil {
		// Redis is optional; briefs fall back to process memory.
		zapLog.Warn("redis unavailable, using in-memory brief store", zap.Error(err))
		briefs = store.NewMemoryBriefStore(store.DefaultBriefTTL)
	} else {
		defer redisClient.Close()
		briefs = store.NewRedisBriefStore(redisClient.Client, store.DefaultBriefTTL)
		budgetStore = events.NewRedisBudgetStore(redisClient.Client)
		zapLog.Info("Redis connected successfully")
	}

	// --- Init PostgreSQL with retry (best effort, leads only) ---
	var leadStore *store.LeadStore
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 5, 2*time.Second, zapLog, "PostgreSQL connection")
	if err != nil {
		zapLog.Warn("postgres unavailable, lead persistence disabled", zap.Error(err))
	} else {
		defer pg.Close()
		leadStore = store.NewLeadStore(pg.DB)
		zapLog.Info("PostgreSQL connected successfully")
	}

	// --- Init Elasticsearch with retry (best effort, intelligence only) ---
	var intelIndex *store.IntelligenceIndex
	var esClient *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		var err error
		esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		return esClient.Ping()
	}, 5, 2*time.Second, zapLog, "Elasticsearch connection")
	if err != nil {
		zapLog.Warn("elasticsearch unavailable, intelligence index disabled", zap.Error(err))
	} else {
		intelIndex = store.NewIntelligenceIndex(esClient.Client, cfg.Database.Elasticsearch.Index)
		zapLog.Info("Elasticsearch connected successfully")
	}

	// --- Source adapters ---
	placesAdapter := places.NewAdapter(&places.Config{
		BaseURL:        cfg.Sources.Places.BaseURL,
		APIKey:         cfg.Sources.Places.APIKey,
		Timeout:        time.Duration(cfg.Sources.Places.TimeoutSeconds) * time.Second,
		MaxCompetitors: cfg.Sources.Places.MaxCompetitors,
		MaxSelfLookup:  cfg.Sources.Places.MaxSelfLookup,
	}, log)

	newsAdapter := news.NewAdapter(&news.Config{
		BaseURL:     cfg.Sources.News.BaseURL,
		APIKey:      cfg.Sources.News.APIKey,
		Timeout:     time.Duration(cfg.Sources.News.TimeoutSeconds) * time.Second,
		MaxArticles: cfg.Sources.News.MaxArticles,
	}, log)

	eventsLimiter := events.NewLimiter(
		time.Duration(cfg.Sources.Events.MinSpacingSeconds)*time.Second,
		cfg.Sources.Events.DailyCallBudget,
		budgetStore,
	)
	eventsAdapter := events.NewAdapter(&events.Config{
		BaseURL:         cfg.Sources.Events.BaseURL,
		APIKey:          cfg.Sources.Events.APIKey,
		Timeout:         time.Duration(cfg.Sources.Events.TimeoutSeconds) * time.Second,
		MaxEvents:       cfg.Sources.Events.MaxEvents,
		MinRelevance:    cfg.Sources.Events.MinRelevance,
		MinSpacing:      time.Duration(cfg.Sources.Events.MinSpacingSeconds) * time.Second,
		DailyCallBudget: cfg.Sources.Events.DailyCallBudget,
	}, eventsLimiter, log)

	generator := narrative.NewGenerator(&narrative.Config{
		BaseURL:     cfg.Narrative.BaseURL,
		APIKey:      cfg.Narrative.APIKey,
		Model:       cfg.Narrative.Model,
		Timeout:     time.Duration(cfg.Narrative.TimeoutSeconds) * time.Second,
		MaxTokens:   cfg.Narrative.MaxTokens,
		Temperature: cfg.Narrative.Temperature,
		MaxRetries:  cfg.Narrative.MaxRetries,
	}, log)

	// --- Pipeline and HTTP server ---
	pipelineOpts := pipeline.Options{Obs: obs}
	apiOpts := api.Options{LiveNews: newsAdapter}
	if leadStore != nil {
		pipelineOpts.Leads = leadStore
		apiOpts.Leads = leadStore
	}
	if intelIndex != nil {
		pipelineOpts.Index = intelIndex
		apiOpts.Intel = intelIndex
	}

	orchestrator := pipeline.NewOrchestrator(
		placesAdapter, newsAdapter, eventsAdapter, generator, briefs, pipelineOpts, log,
	)

	server := api.NewServer(orchestrator, apiOpts, log)

	go func() {
		if err := server.Start(cfg.Server.Address); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("server failed", zap.Error(err))
		}
	}()
	zapLog.Info("Server started", zap.String("address", cfg.Server.Address))

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLog.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("shutdown error", zap.Error(err))
	}
	zapLog.Info("Server stopped")
}
