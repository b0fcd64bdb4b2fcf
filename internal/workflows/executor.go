package workflows

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/leadforge/contact-cache/internal/adapter"
	"github.com/leadforge/contact-cache/internal/domain"
	"github.com/leadforge/contact-cache/internal/enricher"
	"github.com/leadforge/contact-cache/internal/logger"
)

// heartbeatBatchSize is the number of contacts enriched between two heartbeats
const heartbeatBatchSize = 25

// Executor defines the interface for executing activities
//
//go:generate mockgen -source=executor.go -destination=../mocks/executor_enrich.go -package=mocks -mock_names=Executor=MockEnrichExecutor
type Executor interface {
	// EnrichContacts enriches one chunk of an import job and counts the outcomes.
	// Contacts that fail individually are counted, not returned as an error.
	EnrichContacts(ctx context.Context, input EnrichContactsInput) (*ChunkSummary, error)
}

type executor struct {
	enricher         enricher.Enricher
	temporalActivity adapter.Activity
}

// NewExecutor creates a new executor instance
func NewExecutor(enr enricher.Enricher, temporalActivity adapter.Activity) Executor {
	return &executor{
		enricher:         enr,
		temporalActivity: temporalActivity,
	}
}

// EnrichContacts enriches the chunk in heartbeat-sized batches
func (e *executor) EnrichContacts(ctx context.Context, input EnrichContactsInput) (*ChunkSummary, error) {
	if input.UserID == "" {
		return nil, fmt.Errorf("user id is required")
	}

	attempt := e.temporalActivity.GetInfo(ctx).Attempt
	logger.InfoCtx(ctx, "Enriching import chunk",
		zap.String("jobID", input.JobID),
		zap.Int("chunkIndex", input.ChunkIndex),
		zap.Int("contacts", len(input.Contacts)),
		zap.Int32("attempt", attempt))

	var jobID *string
	if input.JobID != "" {
		jobID = &input.JobID
	}

	summary := &ChunkSummary{Savings: domain.Zero()}
	for start := 0; start < len(input.Contacts); start += heartbeatBatchSize {
		end := min(start+heartbeatBatchSize, len(input.Contacts))

		batch := input.Contacts[start:end]
		reqs := make([]enricher.Request, len(batch))
		for i, c := range batch {
			reqs[i] = enricher.Request{
				Contact: c.Contact,
				UserID:  input.UserID,
				JobID:   jobID,
			}
			if c.ContactID != "" {
				contactID := c.ContactID
				reqs[i].ContactID = &contactID
			}
		}

		for i, item := range e.enricher.EnrichBatch(ctx, reqs) {
			if item.Err != nil && (errors.Is(item.Err, context.Canceled) || errors.Is(item.Err, context.DeadlineExceeded)) {
				return nil, item.Err
			}
			countOutcome(ctx, summary, batch[i], item)
		}

		e.temporalActivity.RecordHeartbeat(ctx, end)
	}

	logger.InfoCtx(ctx, "Import chunk enriched",
		zap.String("jobID", input.JobID),
		zap.Int("chunkIndex", input.ChunkIndex),
		zap.Int("cacheHits", summary.CacheHits),
		zap.Int("freshLookups", summary.FreshLookups),
		zap.Int("failed", summary.Failed))

	return summary, nil
}

func countOutcome(ctx context.Context, summary *ChunkSummary, contact ImportContact, item enricher.BatchItem) {
	summary.Total++

	if item.Err != nil {
		if errors.Is(item.Err, domain.ErrNoProviderResult) {
			summary.NotFound++
			return
		}
		summary.Failed++
		logger.WarnCtx(ctx, "Failed to enrich import contact",
			zap.String("contactID", contact.ContactID),
			zap.Error(item.Err))
		return
	}

	switch item.Result.Status {
	case enricher.StatusCacheHit, enricher.StatusConflictRecovered:
		summary.CacheHits++
	case enricher.StatusFresh:
		summary.FreshLookups++
	case enricher.StatusUncacheable, enricher.StatusDegraded:
		summary.Uncached++
	}

	if u := item.Result.Usage; u != nil {
		summary.CreditsCharged += u.CreditsCharged
		summary.Savings = summary.Savings.Add(u.SavingsAmount)
		if !u.FirstResolution {
			summary.RepeatResolutions++
		}
	}
}
