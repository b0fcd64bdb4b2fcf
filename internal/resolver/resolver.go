package resolver

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/leadforge/contact-cache/internal/domain"
	"github.com/leadforge/contact-cache/internal/fingerprint"
	"github.com/leadforge/contact-cache/internal/logger"
	"github.com/leadforge/contact-cache/internal/metrics"
	"github.com/leadforge/contact-cache/internal/store"
	"github.com/leadforge/contact-cache/internal/usage"
)

// Outcome is the result of a cache lookup
type Outcome string

const (
	CacheHit  Outcome = "cache_hit"
	CacheMiss Outcome = "cache_miss"
)

// Request is one contact to resolve on behalf of a user
type Request struct {
	Contact   domain.Contact
	UserID    string
	JobID     *string
	ContactID *string
}

// Resolution is the outcome of a lookup.
// On a hit Entry, MatchedBy and Usage are set; on a miss only Fingerprint is.
type Resolution struct {
	Outcome     Outcome
	Fingerprint *fingerprint.Result
	Entry       *store.FindResult
	Usage       *usage.Outcome
}

// Hit reports whether the lookup found a reusable entry
func (r *Resolution) Hit() bool {
	return r != nil && r.Outcome == CacheHit
}

// Resolver looks contacts up in the global cache
//
//go:generate mockgen -source=resolver.go -destination=../mocks/resolver.go -package=mocks -mock_names=Resolver=MockResolver
type Resolver interface {
	// Resolve fingerprints the contact and looks it up, recording the user's usage on a hit.
	// Returns domain.ErrValidation when the contact cannot be fingerprinted and a wrapped
	// domain.ErrStoreUnavailable when the store cannot be reached. A miss has no side effects.
	Resolve(ctx context.Context, req Request) (*Resolution, error)
	// ResolveExisting repeats the lookup on the primary for an entry a concurrent insert
	// just created, and records usage as a hit net of providerCost, what the losing
	// lookup already paid. Returns domain.ErrCacheInconsistent on a miss.
	ResolveExisting(ctx context.Context, req Request, fp *fingerprint.Result, providerCost domain.Money) (*Resolution, error)
}

type resolver struct {
	store    store.Store
	usage    usage.Recorder
	recorder *metrics.Recorder
}

// NewResolver creates a resolver. recorder may be nil.
func NewResolver(st store.Store, usageRecorder usage.Recorder, recorder *metrics.Recorder) Resolver {
	return &resolver{
		store:    st,
		usage:    usageRecorder,
		recorder: recorder,
	}
}

func (r *resolver) Resolve(ctx context.Context, req Request) (*Resolution, error) {
	fp, err := fingerprint.Generate(req.Contact)
	if err != nil {
		return nil, err
	}

	found, err := r.store.FindCacheEntry(ctx, fp.Fingerprints)
	if err != nil {
		return nil, r.lookupFailed(ctx, "resolve", req, err)
	}
	if found == nil {
		logger.DebugCtx(ctx, "Cache miss",
			zap.String("userID", req.UserID),
			zap.String("standard", fp.Fingerprints[0].Value))
		return &Resolution{Outcome: CacheMiss, Fingerprint: fp}, nil
	}

	return r.hit(ctx, req, fp, found, domain.Zero())
}

func (r *resolver) ResolveExisting(ctx context.Context, req Request, fp *fingerprint.Result, providerCost domain.Money) (*Resolution, error) {
	if fp == nil || len(fp.Fingerprints) == 0 {
		return nil, fmt.Errorf("%w: no fingerprints to look up", domain.ErrValidation)
	}

	found, err := r.store.FindCacheEntryOnPrimary(ctx, fp.Fingerprints)
	if err != nil {
		return nil, r.lookupFailed(ctx, "resolve_existing", req, err)
	}
	if found == nil {
		return nil, fmt.Errorf("%w: conflicting entry for %q not found on primary",
			domain.ErrCacheInconsistent, fp.Fingerprints[0].Value)
	}

	return r.hit(ctx, req, fp, found, providerCost)
}

// hit records the user's usage before the resolution is returned
func (r *resolver) hit(ctx context.Context, req Request, fp *fingerprint.Result, found *store.FindResult, providerCost domain.Money) (*Resolution, error) {
	outcome, err := r.usage.Record(ctx, usage.Input{
		UserID:       req.UserID,
		Entry:        found.Entry,
		WasCacheHit:  true,
		ProviderCost: providerCost,
		JobID:        req.JobID,
		ContactID:    req.ContactID,
	})
	if err != nil {
		if errors.Is(err, domain.ErrStoreUnavailable) {
			r.recorder.ObserveStoreUnavailable("record_usage")
			logger.ErrorCtx(ctx, err, zap.String("userID", req.UserID), zap.String("cacheEntryID", found.Entry.ID.String()))
		}
		return nil, fmt.Errorf("failed to record usage for cache hit: %w", err)
	}

	logger.DebugCtx(ctx, "Cache hit",
		zap.String("userID", req.UserID),
		zap.String("cacheEntryID", found.Entry.ID.String()),
		zap.String("matchedBy", string(found.MatchedBy.Type)),
		zap.String("sourceType", string(outcome.SourceType)))

	return &Resolution{
		Outcome:     CacheHit,
		Fingerprint: fp,
		Entry:       found,
		Usage:       outcome,
	}, nil
}

func (r *resolver) lookupFailed(ctx context.Context, operation string, req Request, err error) error {
	if errors.Is(err, domain.ErrStoreUnavailable) {
		r.recorder.ObserveStoreUnavailable(operation)
		logger.ErrorCtx(ctx, err, zap.String("operation", operation), zap.String("userID", req.UserID))
	}
	return fmt.Errorf("failed to look up cache entry: %w", err)
}
