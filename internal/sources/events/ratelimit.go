// internal/sources/events/ratelimit.go
package events

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/beastaman/Sleft-Signal-sub000/internal/common/errors"
	"github.com/beastaman/Sleft-Signal-sub000/internal/common/metrics"
)

// BudgetStore persists the per-day call counter so the budget survives
// restarts. Incr bumps the counter for the given UTC day key and
// returns the new total.
type BudgetStore interface {
	Incr(ctx context.Context, day string) (int64, error)
}

// Limiter throttles provider calls two ways: a minimum spacing between
// consecutive calls, and a daily call budget keyed by UTC day. The
// budget resets when the day rolls over.
type Limiter struct {
	spacing *rate.Limiter
	budget  int64
	clock   func() time.Time
	store   BudgetStore

	mu   sync.Mutex
	day  string
	used int64
}

// NewLimiter builds a limiter with the given spacing and daily budget.
// A nil store keeps the counter in memory only.
func NewLimiter(minSpacing time.Duration, dailyBudget int, store BudgetStore) *Limiter {
	return &Limiter{
		spacing: rate.NewLimiter(rate.Every(minSpacing), 1),
		budget:  int64(dailyBudget),
		clock:   time.Now,
		store:   store,
	}
}

// Acquire reserves one provider call. It fails fast with a quota error
// when today's budget is exhausted, otherwise it blocks until the
// spacing interval has elapsed or ctx is done.
func (l *Limiter) Acquire(ctx context.Context) error {
	if err := l.take(ctx); err != nil {
		return err
	}
	if err := l.spacing.Wait(ctx); err != nil {
		return errors.NewSourceUnavailableError(sourceName, err)
	}
	return nil
}

func (l *Limiter) take(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	day := l.clock().UTC().Format("2006-01-02")
	if day != l.day {
		l.day = day
		l.used = 0
	}

	used := l.used
	if l.store != nil {
		persisted, err := l.store.Incr(ctx, day)
		if err == nil {
			// The store is authoritative. Incr already counted this
			// call, so compare against the pre-increment value.
			used = persisted - 1
			l.used = persisted - 1
		}
	}

	if used >= l.budget {
		metrics.EventsDailyBudgetRemaining.Set(0)
		return errors.NewQuotaExceededError(sourceName, "daily call budget exhausted")
	}

	l.used++
	metrics.EventsDailyBudgetRemaining.Set(float64(l.budget - l.used))
	return nil
}

// Remaining reports how many calls today's budget still allows.
func (l *Limiter) Remaining() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.clock().UTC().Format("2006-01-02") != l.day {
		return int(l.budget)
	}
	remaining := l.budget - l.used
	if remaining < 0 {
		return 0
	}
	return int(remaining)
}
