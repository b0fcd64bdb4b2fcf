package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/leadforge/contact-cache/internal/domain"
	"github.com/leadforge/contact-cache/internal/store"
	"github.com/leadforge/contact-cache/internal/store/schema"
)

// Event is one finished enrichment attempt
type Event struct {
	At          time.Time
	WasCacheHit bool
	// EstimatedCost is what a provider call for this contact costs
	EstimatedCost domain.Money
	// ActualCost is what was actually spent, zero on a hit
	ActualCost   domain.Money
	ResponseTime time.Duration
}

// Aggregator maintains the per-day cost and hit-rate rollup
//
//go:generate mockgen -source=aggregator.go -destination=../mocks/metrics_aggregator.go -package=mocks -mock_names=Aggregator=MockAggregator
type Aggregator interface {
	// RecordEvent adds one enrichment to the day's rollup in a single upsert
	RecordEvent(ctx context.Context, event Event) error
	// GetDailyMetrics returns the rollup rows between two dates, inclusive
	GetDailyMetrics(ctx context.Context, from, to time.Time) ([]schema.DailyCacheMetrics, error)
}

type aggregator struct {
	store store.Store
}

// NewAggregator creates an aggregator persisting to st
func NewAggregator(st store.Store) Aggregator {
	return &aggregator{store: st}
}

func (a *aggregator) RecordEvent(ctx context.Context, event Event) error {
	input := store.UpsertDailyMetricsInput{
		Date:              event.At,
		Enrichments:       1,
		EstimatedAPICost:  event.EstimatedCost,
		ActualAPICost:     event.ActualCost,
		CostSavings:       domain.Zero(),
		TotalResponseTime: event.ResponseTime,
	}
	if event.WasCacheHit {
		input.CacheHits = 1
		if savings := event.EstimatedCost.Sub(event.ActualCost); !savings.IsNegative() {
			input.CostSavings = savings
		}
	} else {
		input.CacheMisses = 1
	}

	if err := a.store.UpsertDailyMetrics(ctx, input); err != nil {
		return fmt.Errorf("failed to record daily metrics: %w", err)
	}
	return nil
}

func (a *aggregator) GetDailyMetrics(ctx context.Context, from, to time.Time) ([]schema.DailyCacheMetrics, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("invalid range: %s is before %s", to.Format(time.DateOnly), from.Format(time.DateOnly))
	}
	return a.store.GetDailyMetrics(ctx, from, to)
}
