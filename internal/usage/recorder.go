// Package usage accounts for every resolution of a cache entry by a user.
//
// A user is charged and counted at most once per entry: the first resolution
// inserts the (user, entry) history row and bumps the entry's usage counters in
// the same transaction, any later resolution only refreshes last-used metadata.
package usage

import (
	"context"
	"fmt"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/leadforge/contact-cache/internal/adapter"
	"github.com/leadforge/contact-cache/internal/domain"
	"github.com/leadforge/contact-cache/internal/logger"
	"github.com/leadforge/contact-cache/internal/messaging"
	"github.com/leadforge/contact-cache/internal/store"
	"github.com/leadforge/contact-cache/internal/store/schema"
)

// Pricing holds what users are charged and what providers cost
type Pricing struct {
	CreditsPerFreshLookup int
	ProviderCosts         map[string]domain.Money
}

// CostOf returns the cost of one lookup with provider, zero if unknown
func (p Pricing) CostOf(provider string) domain.Money {
	if cost, ok := p.ProviderCosts[provider]; ok {
		return cost
	}
	return domain.Zero()
}

// Input describes one resolution of an entry by a user
type Input struct {
	UserID      string
	Entry       *schema.CacheEntry
	WasCacheHit bool
	// ProviderCost is what the lookup paid a provider. On a cache hit it is only
	// set when the user lost an insert race after paying for the same contact.
	ProviderCost domain.Money
	JobID        *string
	ContactID    *string
}

// Outcome is how a resolution was accounted for
type Outcome struct {
	SourceType      domain.SourceType
	CreditsCharged  int
	ActualCost      domain.Money
	SavingsAmount   domain.Money
	FirstResolution bool
	History         *schema.UserContactHistory
}

// Recorder records usage and notifies billing
//
//go:generate mockgen -source=recorder.go -destination=../mocks/usage_recorder.go -package=mocks -mock_names=Recorder=MockUsageRecorder
type Recorder interface {
	// Record upserts the user's history row for the entry in one transaction
	Record(ctx context.Context, input Input) (*Outcome, error)
	// RecordFresh reports a fresh lookup whose usage InsertCacheEntry already persisted
	RecordFresh(ctx context.Context, result *store.InsertCacheEntryResult) *Outcome
	// RecordUncached charges a provider lookup that could not be cached and notifies billing.
	// No history row is written since there is no entry to attach it to.
	RecordUncached(ctx context.Context, input Input) *Outcome
	// Pricing returns the pricing in effect
	Pricing() Pricing
}

type recorder struct {
	store     store.Store
	publisher messaging.Publisher
	clock     adapter.Clock
	pricing   Pricing
}

// NewRecorder creates a usage recorder. publisher may be nil when billing notifications are disabled.
func NewRecorder(st store.Store, publisher messaging.Publisher, clock adapter.Clock, pricing Pricing) Recorder {
	return &recorder{
		store:     st,
		publisher: publisher,
		clock:     clock,
		pricing:   pricing,
	}
}

func (r *recorder) Pricing() Pricing {
	return r.pricing
}

// Record accounts for one resolution
func (r *recorder) Record(ctx context.Context, input Input) (*Outcome, error) {
	if input.Entry == nil {
		return nil, fmt.Errorf("cache entry is required")
	}

	req := store.RecordUsageInput{
		UserID:       input.UserID,
		CacheEntryID: input.Entry.ID,
		JobID:        input.JobID,
		ContactID:    input.ContactID,
	}
	if input.WasCacheHit {
		req.SourceType = domain.SourceTypeGlobalCache
		req.CreditsCharged = 0
		req.ActualCost = input.ProviderCost
		req.SavingsAmount = domain.Zero()
		if savings := input.Entry.EstimatedAPICost.Sub(input.ProviderCost); !savings.IsNegative() {
			req.SavingsAmount = savings
		}
	} else {
		req.SourceType = domain.SourceTypeFreshAPICall
		req.CreditsCharged = r.pricing.CreditsPerFreshLookup
		req.ActualCost = input.ProviderCost
		req.SavingsAmount = domain.Zero()
	}

	result, err := r.store.RecordUsage(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to record usage: %w", err)
	}

	if !result.FirstResolution {
		logger.DebugCtx(ctx, "Same user repeat, nothing charged",
			zap.String("userID", input.UserID),
			zap.String("cacheEntryID", input.Entry.ID.String()))
		return &Outcome{
			SourceType:      domain.SourceTypeSameUserRepeat,
			CreditsCharged:  0,
			ActualCost:      domain.Zero(),
			SavingsAmount:   domain.Zero(),
			FirstResolution: false,
			History:         result.History,
		}, nil
	}

	outcome := &Outcome{
		SourceType:      req.SourceType,
		CreditsCharged:  req.CreditsCharged,
		ActualCost:      req.ActualCost,
		SavingsAmount:   req.SavingsAmount,
		FirstResolution: true,
		History:         result.History,
	}
	r.publish(ctx, input.UserID, input.Entry.ID.String(), input.JobID, input.ContactID, outcome)

	return outcome, nil
}

// RecordFresh builds the outcome of a fresh insert and notifies billing
func (r *recorder) RecordFresh(ctx context.Context, result *store.InsertCacheEntryResult) *Outcome {
	h := result.History
	outcome := &Outcome{
		SourceType:      domain.SourceTypeFreshAPICall,
		CreditsCharged:  h.CreditsCharged,
		ActualCost:      h.ActualCost,
		SavingsAmount:   domain.Zero(),
		FirstResolution: true,
		History:         h,
	}
	r.publish(ctx, h.UserID, result.Entry.ID.String(), h.JobID, h.ContactID, outcome)
	return outcome
}

// RecordUncached charges a fresh lookup that bypassed the cache
func (r *recorder) RecordUncached(ctx context.Context, input Input) *Outcome {
	outcome := &Outcome{
		SourceType:      domain.SourceTypeFreshAPICall,
		CreditsCharged:  r.pricing.CreditsPerFreshLookup,
		ActualCost:      input.ProviderCost,
		SavingsAmount:   domain.Zero(),
		FirstResolution: true,
	}
	r.publish(ctx, input.UserID, "", input.JobID, input.ContactID, outcome)
	return outcome
}

// publish sends the billing notification. Failures are logged and never fail the resolution.
func (r *recorder) publish(ctx context.Context, userID, cacheEntryID string, jobID, contactID *string, outcome *Outcome) {
	if r.publisher == nil {
		return
	}

	event := &domain.UsageEvent{
		ID:             ulid.Make().String(),
		UserID:         userID,
		CacheEntryID:   cacheEntryID,
		JobID:          jobID,
		ContactID:      contactID,
		SourceType:     outcome.SourceType,
		CreditsCharged: outcome.CreditsCharged,
		ActualCost:     outcome.ActualCost,
		SavingsAmount:  outcome.SavingsAmount,
		Cached:         outcome.SourceType != domain.SourceTypeFreshAPICall,
		OccurredAt:     r.clock.Now().UTC(),
	}

	if err := r.publisher.PublishUsage(ctx, event); err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to publish usage event: %w", err),
			zap.String("eventID", event.ID),
			zap.String("userID", userID),
			zap.String("cacheEntryID", event.CacheEntryID))
	}
}
