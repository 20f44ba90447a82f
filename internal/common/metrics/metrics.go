// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BriefsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "briefs_generated_total",
			Help: "Total number of briefs generated",
		},
		[]string{"outcome"},
	)

	SourceFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "source_fetches_total",
			Help: "Total number of external source fetches",
		},
		[]string{"source", "outcome"},
	)

	FallbacksUsed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "source_fallbacks_total",
			Help: "Total number of times synthesized fallback data replaced a source",
		},
		[]string{"source"},
	)

	StageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "pipeline_stage_duration_seconds",
			Help: "Duration of pipeline stages in seconds",
		},
		[]string{"stage"},
	)

	EventsDailyBudgetRemaining = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "events_daily_budget_remaining",
			Help: "Remaining events provider calls in the current UTC day",
		},
	)
)
