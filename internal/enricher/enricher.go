// Package enricher resolves contacts through the global cache and falls back to the
// enrichment providers on a miss, caching what they return for every other user.
package enricher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/leadforge/contact-cache/internal/adapter"
	"github.com/leadforge/contact-cache/internal/domain"
	"github.com/leadforge/contact-cache/internal/fingerprint"
	"github.com/leadforge/contact-cache/internal/logger"
	"github.com/leadforge/contact-cache/internal/metrics"
	"github.com/leadforge/contact-cache/internal/providers/provider"
	"github.com/leadforge/contact-cache/internal/resolver"
	"github.com/leadforge/contact-cache/internal/store"
	"github.com/leadforge/contact-cache/internal/store/schema"
	"github.com/leadforge/contact-cache/internal/usage"
)

// Status is how an enrichment was served
type Status string

const (
	// StatusCacheHit served an existing entry without calling a provider
	StatusCacheHit Status = "cache_hit"
	// StatusFresh called a provider and cached the result
	StatusFresh Status = "fresh"
	// StatusConflictRecovered called a provider, lost the insert race and reused the winner's entry
	StatusConflictRecovered Status = "conflict_recovered"
	// StatusUncacheable called a provider for a contact that cannot be fingerprinted
	StatusUncacheable Status = "uncacheable"
	// StatusDegraded called a provider because the cache store was unreachable
	StatusDegraded Status = "degraded"
)

// Request is one contact to enrich on behalf of a user
type Request = resolver.Request

// Result is the outcome of one enrichment
type Result struct {
	Status Status
	// Entry is the cache entry serving the request, nil when nothing was cached
	Entry *schema.CacheEntry
	// Enrichment is the provider result when a provider was called
	Enrichment *domain.EnrichmentResult
	MatchedBy  *domain.Fingerprint
	Usage      *usage.Outcome
	Duration   time.Duration
}

// Cached reports whether the result is backed by a cache entry
func (r *Result) Cached() bool {
	return r != nil && r.Entry != nil
}

// Email returns the resolved email, from the entry when cached
func (r *Result) Email() *string {
	switch {
	case r == nil:
		return nil
	case r.Entry != nil:
		return r.Entry.Email
	case r.Enrichment != nil:
		return r.Enrichment.Email
	}
	return nil
}

// Phone returns the resolved phone, from the entry when cached
func (r *Result) Phone() *string {
	switch {
	case r == nil:
		return nil
	case r.Entry != nil:
		return r.Entry.Phone
	case r.Enrichment != nil:
		return r.Enrichment.Phone
	}
	return nil
}

// BatchItem is the result of one request of a batch
type BatchItem struct {
	Result *Result
	Err    error
}

// RefreshResult is the outcome of re-enriching an entry
type RefreshResult struct {
	Entry *schema.CacheEntry
	// Upgraded is false when the fresh result did not beat the entry's confidence
	Upgraded bool
}

// Enricher enriches contacts, reusing the global cache whenever possible
//
//go:generate mockgen -source=enricher.go -destination=../mocks/enricher.go -package=mocks -mock_names=Enricher=MockEnricher
type Enricher interface {
	// Enrich serves the contact from the cache or a provider.
	// A store outage or an unfingerprintable contact never fails the request;
	// the provider result is returned uncached instead.
	Enrich(ctx context.Context, req Request) (*Result, error)
	// EnrichBatch enriches the requests concurrently, results in request order
	EnrichBatch(ctx context.Context, reqs []Request) []BatchItem
	// Refresh re-enriches an entry and keeps the fresh result if it is more confident
	Refresh(ctx context.Context, entryID uuid.UUID, userID string) (*RefreshResult, error)
	// Close waits for running batch tasks and releases the pool
	Close()
}

// Config holds the enricher configuration
type Config struct {
	// BatchConcurrency bounds the enrichments running at once across all batches
	BatchConcurrency int
}

type enricher struct {
	resolver   resolver.Resolver
	store      store.Store
	provider   provider.Provider
	usage      usage.Recorder
	aggregator metrics.Aggregator
	recorder   *metrics.Recorder
	clock      adapter.Clock
	pool       pond.Pool
}

// NewEnricher creates an enricher. recorder may be nil.
func NewEnricher(
	cfg Config,
	res resolver.Resolver,
	st store.Store,
	prov provider.Provider,
	usageRecorder usage.Recorder,
	aggregator metrics.Aggregator,
	recorder *metrics.Recorder,
	clock adapter.Clock,
) Enricher {
	concurrency := cfg.BatchConcurrency
	if concurrency <= 0 {
		concurrency = 10
	}

	return &enricher{
		resolver:   res,
		store:      st,
		provider:   prov,
		usage:      usageRecorder,
		aggregator: aggregator,
		recorder:   recorder,
		clock:      clock,
		pool:       pond.NewPool(concurrency),
	}
}

func (e *enricher) Enrich(ctx context.Context, req Request) (*Result, error) {
	start := e.clock.Now()

	resolution, err := e.resolver.Resolve(ctx, req)
	switch {
	case errors.Is(err, domain.ErrValidation):
		logger.DebugCtx(ctx, "Contact cannot be fingerprinted, enriching without cache", zap.String("userID", req.UserID))
		return e.passthrough(ctx, req, StatusUncacheable, start)
	case errors.Is(err, domain.ErrStoreUnavailable):
		logger.WarnCtx(ctx, "Cache store unavailable, enriching without cache", zap.String("userID", req.UserID), zap.Error(err))
		return e.passthrough(ctx, req, StatusDegraded, start)
	case err != nil:
		e.fail(ctx, nil, start)
		return nil, err
	}

	if resolution.Hit() {
		matchedBy := resolution.Entry.MatchedBy
		result := &Result{
			Status:    StatusCacheHit,
			Entry:     resolution.Entry.Entry,
			MatchedBy: &matchedBy,
			Usage:     resolution.Usage,
		}
		e.finish(ctx, result, start)
		return result, nil
	}

	enrichment, err := e.callProvider(ctx, req.Contact)
	if err != nil {
		e.fail(ctx, nil, start)
		return nil, err
	}

	return e.cacheFresh(ctx, req, resolution.Fingerprint, enrichment, start)
}

// cacheFresh inserts the provider result together with the creator's usage,
// recovering from a concurrent insert of the same contact
func (e *enricher) cacheFresh(ctx context.Context, req Request, fp *fingerprint.Result, enrichment *domain.EnrichmentResult, start time.Time) (*Result, error) {
	companyDomain := enrichment.CompanyDomain
	if emailDomain := req.Contact.EmailDomain(); emailDomain != "" {
		companyDomain = &emailDomain
	}

	inserted, err := e.store.InsertCacheEntry(ctx, store.InsertCacheEntryInput{
		FirstName:      fp.Normalized.FirstName,
		LastName:       fp.Normalized.LastName,
		Company:        fp.Normalized.Company,
		CompanyDomain:  companyDomain,
		Fingerprints:   fp.Fingerprints,
		Result:         *enrichment,
		UserID:         req.UserID,
		JobID:          req.JobID,
		ContactID:      req.ContactID,
		CreditsCharged: e.usage.Pricing().CreditsPerFreshLookup,
	})
	switch {
	case errors.Is(err, domain.ErrConflict):
		return e.recoverConflict(ctx, req, fp, enrichment, start)
	case errors.Is(err, domain.ErrStoreUnavailable):
		e.recorder.ObserveStoreUnavailable("insert_cache_entry")
		logger.ErrorCtx(ctx, err, zap.String("userID", req.UserID))
		result := &Result{
			Status:     StatusDegraded,
			Enrichment: enrichment,
			Usage:      e.chargeUncached(ctx, req, enrichment),
		}
		e.finish(ctx, result, start)
		return result, nil
	case err != nil:
		e.fail(ctx, enrichment, start)
		return nil, fmt.Errorf("failed to cache enrichment: %w", err)
	}

	result := &Result{
		Status:     StatusFresh,
		Entry:      inserted.Entry,
		Enrichment: enrichment,
		Usage:      e.usage.RecordFresh(ctx, inserted),
	}
	e.finish(ctx, result, start)
	return result, nil
}

// recoverConflict reuses the entry a concurrent insert created and offers it the
// loser's result, which replaces the entry's data only if it is more confident
func (e *enricher) recoverConflict(ctx context.Context, req Request, fp *fingerprint.Result, enrichment *domain.EnrichmentResult, start time.Time) (*Result, error) {
	resolution, err := e.resolver.ResolveExisting(ctx, req, fp, enrichment.Cost)
	if err != nil {
		if errors.Is(err, domain.ErrCacheInconsistent) {
			e.recorder.ObserveConflict(metrics.ConflictInconsistent)
			logger.ErrorCtx(ctx, err, zap.String("userID", req.UserID), zap.String("standard", fp.Fingerprints[0].Value))
		}
		e.fail(ctx, enrichment, start)
		return nil, fmt.Errorf("failed to recover from insert conflict: %w", err)
	}

	entry := resolution.Entry.Entry
	upgraded, err := e.store.UpgradeCacheEntry(ctx, entry.ID, *enrichment)
	switch {
	case err == nil:
		entry = upgraded
		e.recorder.ObserveConflict(metrics.ConflictUpgraded)
	case errors.Is(err, domain.ErrStaleOverwriteRejected):
		e.recorder.ObserveConflict(metrics.ConflictRecovered)
	default:
		e.recorder.ObserveConflict(metrics.ConflictRecovered)
		logger.WarnCtx(ctx, "Failed to upgrade conflicting cache entry",
			zap.String("cacheEntryID", entry.ID.String()),
			zap.Error(err))
	}

	logger.InfoCtx(ctx, "Recovered from concurrent insert",
		zap.String("userID", req.UserID),
		zap.String("cacheEntryID", entry.ID.String()))

	matchedBy := resolution.Entry.MatchedBy
	result := &Result{
		Status:     StatusConflictRecovered,
		Entry:      entry,
		Enrichment: enrichment,
		MatchedBy:  &matchedBy,
		Usage:      resolution.Usage,
	}
	e.finish(ctx, result, start)
	return result, nil
}

// passthrough calls the providers without touching the cache.
// The lookup is still a paid miss and is charged like one.
func (e *enricher) passthrough(ctx context.Context, req Request, status Status, start time.Time) (*Result, error) {
	enrichment, err := e.callProvider(ctx, req.Contact)
	if err != nil {
		e.fail(ctx, nil, start)
		return nil, err
	}

	result := &Result{
		Status:     status,
		Enrichment: enrichment,
		Usage:      e.chargeUncached(ctx, req, enrichment),
	}
	e.finish(ctx, result, start)
	return result, nil
}

func (e *enricher) chargeUncached(ctx context.Context, req Request, enrichment *domain.EnrichmentResult) *usage.Outcome {
	return e.usage.RecordUncached(ctx, usage.Input{
		UserID:       req.UserID,
		ProviderCost: enrichment.Cost,
		JobID:        req.JobID,
		ContactID:    req.ContactID,
	})
}

func (e *enricher) callProvider(ctx context.Context, contact domain.Contact) (*domain.EnrichmentResult, error) {
	enrichment, err := e.provider.Enrich(ctx, contact)
	if err != nil {
		return nil, fmt.Errorf("failed to enrich contact: %w", err)
	}
	if enrichment.Cost.IsZero() {
		enrichment.Cost = e.usage.Pricing().CostOf(enrichment.Provider)
	}
	return enrichment, nil
}

// finish reports the enrichment to Prometheus and the daily rollup.
// A rollup failure is logged and never fails the enrichment.
func (e *enricher) finish(ctx context.Context, result *Result, start time.Time) {
	result.Duration = e.clock.Since(start)

	var matchedBy string
	if result.MatchedBy != nil {
		matchedBy = string(result.MatchedBy.Type)
	}
	e.recorder.ObserveEnrichment(outcomeOf(result.Status), matchedBy, result.Duration)
	if result.Usage != nil {
		e.recorder.ObserveCharge(result.Usage.CreditsCharged, result.Usage.SavingsAmount.Float64())
	}

	event := metrics.Event{
		At:            start,
		WasCacheHit:   result.Status == StatusCacheHit || result.Status == StatusConflictRecovered,
		EstimatedCost: domain.Zero(),
		ActualCost:    domain.Zero(),
		ResponseTime:  result.Duration,
	}
	if result.Enrichment != nil {
		event.EstimatedCost = result.Enrichment.Cost
		event.ActualCost = result.Enrichment.Cost
	}
	if result.Entry != nil {
		event.EstimatedCost = result.Entry.EstimatedAPICost
	}

	e.recordEvent(ctx, event)
}

// fail reports an enrichment that ended in an error. It still counts as an
// attempt and a miss in the daily rollup, with the provider cost when a
// provider call succeeded before the failure.
func (e *enricher) fail(ctx context.Context, enrichment *domain.EnrichmentResult, start time.Time) {
	duration := e.clock.Since(start)
	e.recorder.ObserveEnrichment(metrics.OutcomeError, "", duration)

	event := metrics.Event{
		At:            start,
		EstimatedCost: domain.Zero(),
		ActualCost:    domain.Zero(),
		ResponseTime:  duration,
	}
	if enrichment != nil {
		event.EstimatedCost = enrichment.Cost
		event.ActualCost = enrichment.Cost
	}
	e.recordEvent(ctx, event)
}

func (e *enricher) recordEvent(ctx context.Context, event metrics.Event) {
	if err := e.aggregator.RecordEvent(ctx, event); err != nil {
		logger.WarnCtx(ctx, "Failed to record daily metrics", zap.Error(err))
	}
}

func outcomeOf(status Status) metrics.Outcome {
	switch status {
	case StatusCacheHit, StatusConflictRecovered:
		return metrics.OutcomeHit
	case StatusUncacheable:
		return metrics.OutcomeUncacheable
	case StatusDegraded:
		return metrics.OutcomeDegraded
	default:
		return metrics.OutcomeMiss
	}
}

func (e *enricher) EnrichBatch(ctx context.Context, reqs []Request) []BatchItem {
	items := make([]BatchItem, len(reqs))
	if len(reqs) == 0 {
		return items
	}

	group := e.pool.NewGroup()
	for i, req := range reqs {
		group.Submit(func() {
			if err := ctx.Err(); err != nil {
				items[i] = BatchItem{Err: err}
				return
			}
			result, err := e.Enrich(ctx, req)
			items[i] = BatchItem{Result: result, Err: err}
		})
	}
	if err := group.Wait(); err != nil {
		logger.WarnCtx(ctx, "Batch enrichment group failed", zap.Error(err))
	}

	return items
}

func (e *enricher) Refresh(ctx context.Context, entryID uuid.UUID, userID string) (*RefreshResult, error) {
	entry, err := e.store.GetCacheEntry(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cache entry: %w", err)
	}

	contact := domain.Contact{
		FirstName: entry.NormalizedFirstName,
		LastName:  entry.NormalizedLastName,
		Company:   entry.NormalizedCompany,
	}
	enrichment, err := e.callProvider(ctx, contact)
	if err != nil {
		return nil, err
	}

	upgraded, err := e.store.UpgradeCacheEntry(ctx, entryID, *enrichment)
	if errors.Is(err, domain.ErrStaleOverwriteRejected) {
		logger.InfoCtx(ctx, "Refresh kept existing cache entry",
			zap.String("cacheEntryID", entryID.String()),
			zap.String("requestedBy", userID),
			zap.Float64("existingConfidence", entry.ConfidenceScore),
			zap.Float64("freshConfidence", enrichment.Confidence))
		return &RefreshResult{Entry: entry, Upgraded: false}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to upgrade cache entry: %w", err)
	}

	logger.InfoCtx(ctx, "Refreshed cache entry",
		zap.String("cacheEntryID", entryID.String()),
		zap.String("requestedBy", userID),
		zap.String("provider", enrichment.Provider))

	return &RefreshResult{Entry: upgraded, Upgraded: true}, nil
}

func (e *enricher) Close() {
	e.pool.StopAndWait()
}
