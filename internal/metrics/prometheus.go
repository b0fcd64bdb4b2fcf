package metrics

import (
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels a finished enrichment
type Outcome string

const (
	OutcomeHit         Outcome = "hit"
	OutcomeMiss        Outcome = "miss"
	OutcomeUncacheable Outcome = "uncacheable"
	OutcomeDegraded    Outcome = "degraded"
	OutcomeError       Outcome = "error"
)

// ConflictResult labels how an insert conflict ended
type ConflictResult string

const (
	ConflictRecovered    ConflictResult = "recovered"
	ConflictUpgraded     ConflictResult = "upgraded"
	ConflictInconsistent ConflictResult = "inconsistent"
)

// Recorder publishes Prometheus metrics for the enrichment pipeline.
// A nil *Recorder is valid and records nothing.
type Recorder struct {
	handler http.Handler

	resolutions      *prometheus.CounterVec
	resolveLatency   *prometheus.HistogramVec
	storeUnavailable *prometheus.CounterVec
	providerRequests *prometheus.CounterVec
	providerLatency  *prometheus.HistogramVec
	conflicts        *prometheus.CounterVec
	creditsCharged   prometheus.Counter
	costSavings      prometheus.Counter
}

// NewRecorder registers the collectors on reg, or on a dedicated registry when reg is nil
func NewRecorder(reg *prometheus.Registry) *Recorder {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	reg.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)

	r := &Recorder{
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "contact_cache",
			Name:      "enrichments_total",
			Help:      "Enrichments by outcome and matching fingerprint type.",
		}, []string{"outcome", "matched_by"}),
		resolveLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "contact_cache",
			Name:      "enrichment_duration_seconds",
			Help:      "Latency of enrichments by outcome.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		}, []string{"outcome"}),
		storeUnavailable: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "contact_cache",
			Subsystem: "store",
			Name:      "unavailable_total",
			Help:      "Operations that found the cache store unreachable.",
		}, []string{"operation"}),
		providerRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "contact_cache",
			Subsystem: "provider",
			Name:      "requests_total",
			Help:      "Enrichment provider calls by result.",
		}, []string{"provider", "result"}),
		providerLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "contact_cache",
			Subsystem: "provider",
			Name:      "request_duration_seconds",
			Help:      "Latency of enrichment provider calls.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		}, []string{"provider"}),
		conflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "contact_cache",
			Subsystem: "store",
			Name:      "insert_conflicts_total",
			Help:      "Concurrent insert conflicts by how they were resolved.",
		}, []string{"result"}),
		creditsCharged: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "contact_cache",
			Name:      "credits_charged_total",
			Help:      "Credits charged to users.",
		}),
		costSavings: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "contact_cache",
			Name:      "cost_savings_usd_total",
			Help:      "Provider spend avoided by cache hits, in USD.",
		}),
	}

	reg.MustRegister(
		r.resolutions,
		r.resolveLatency,
		r.storeUnavailable,
		r.providerRequests,
		r.providerLatency,
		r.conflicts,
		r.creditsCharged,
		r.costSavings,
	)
	r.handler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})

	return r
}

// Handler exposes the Prometheus HTTP handler for the recorder's registry
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "metrics unavailable", http.StatusServiceUnavailable)
		})
	}
	return r.handler
}

// ObserveEnrichment records a finished enrichment
func (r *Recorder) ObserveEnrichment(outcome Outcome, matchedBy string, duration time.Duration) {
	if r == nil {
		return
	}
	r.resolutions.WithLabelValues(string(outcome), normalizeLabel(matchedBy)).Inc()
	r.resolveLatency.WithLabelValues(string(outcome)).Observe(duration.Seconds())
}

// ObserveStoreUnavailable counts an operation that could not reach the store
func (r *Recorder) ObserveStoreUnavailable(operation string) {
	if r == nil {
		return
	}
	r.storeUnavailable.WithLabelValues(normalizeLabel(operation)).Inc()
}

// ObserveProvider records one provider call; result is found, not_found or error
func (r *Recorder) ObserveProvider(provider, result string, duration time.Duration) {
	if r == nil {
		return
	}
	r.providerRequests.WithLabelValues(normalizeLabel(provider), normalizeLabel(result)).Inc()
	r.providerLatency.WithLabelValues(normalizeLabel(provider)).Observe(duration.Seconds())
}

// ObserveConflict counts an insert conflict
func (r *Recorder) ObserveConflict(result ConflictResult) {
	if r == nil {
		return
	}
	r.conflicts.WithLabelValues(string(result)).Inc()
}

// ObserveCharge adds to the credits and savings totals
func (r *Recorder) ObserveCharge(credits int, savingsUSD float64) {
	if r == nil {
		return
	}
	if credits > 0 {
		r.creditsCharged.Add(float64(credits))
	}
	if savingsUSD > 0 {
		r.costSavings.Add(savingsUSD)
	}
}

func normalizeLabel(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "none"
	}
	return trimmed
}
