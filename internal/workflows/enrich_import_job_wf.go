package workflows

import (
	"fmt"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
	"go.uber.org/zap"

	"github.com/leadforge/contact-cache/internal/domain"
	"github.com/leadforge/contact-cache/internal/logger"
)

const (
	DEFAULT_CHUNK_SIZE          = 100
	DEFAULT_MAX_PARALLEL_CHUNKS = 4
)

// EnrichImportJob splits the job into chunks and enriches them with at most
// MaxParallelChunks activities in flight. A chunk that fails after retries is
// recorded in the summary and does not fail the job.
func (w *workerEnrich) EnrichImportJob(ctx workflow.Context, job ImportJob) (*ImportJobSummary, error) {
	if job.UserID == "" {
		return nil, temporal.NewNonRetryableApplicationError("user id is required", "InvalidImportJob", nil)
	}

	logger.InfoWf(ctx, "Starting import job enrichment",
		zap.String("jobID", job.JobID),
		zap.String("userID", job.UserID),
		zap.Int("contacts", len(job.Contacts)),
	)

	activityOptions := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Minute,
		HeartbeatTimeout:    2 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    5 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    time.Minute,
			MaximumAttempts:    3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, activityOptions)

	summary := &ImportJobSummary{
		JobID:        job.JobID,
		UserID:       job.UserID,
		ChunkSummary: ChunkSummary{Savings: domain.Zero()},
	}

	chunks := chunkContacts(job.Contacts, w.config.ChunkSize)
	for waveStart := 0; waveStart < len(chunks); waveStart += w.config.MaxParallelChunks {
		waveEnd := min(waveStart+w.config.MaxParallelChunks, len(chunks))

		futures := make([]workflow.Future, 0, waveEnd-waveStart)
		for i := waveStart; i < waveEnd; i++ {
			futures = append(futures, workflow.ExecuteActivity(ctx, w.executor.EnrichContacts, EnrichContactsInput{
				JobID:      job.JobID,
				UserID:     job.UserID,
				ChunkIndex: i,
				Contacts:   chunks[i],
			}))
		}

		for j, future := range futures {
			index := waveStart + j
			var chunkSummary *ChunkSummary
			if err := future.Get(ctx, &chunkSummary); err != nil {
				if temporal.IsCanceledError(err) {
					return nil, err
				}
				logger.ErrorWf(ctx, fmt.Errorf("failed to enrich chunk: %w", err),
					zap.String("jobID", job.JobID),
					zap.Int("chunkIndex", index),
				)
				summary.FailedChunks = append(summary.FailedChunks, index)
				summary.Total += len(chunks[index])
				summary.Failed += len(chunks[index])
				continue
			}
			if chunkSummary != nil {
				summary.Add(*chunkSummary)
			}
		}
	}

	logger.InfoWf(ctx, "Import job enrichment completed",
		zap.String("jobID", job.JobID),
		zap.Int("total", summary.Total),
		zap.Int("cacheHits", summary.CacheHits),
		zap.Int("freshLookups", summary.FreshLookups),
		zap.Int("failed", summary.Failed),
		zap.Int("creditsCharged", summary.CreditsCharged),
	)

	return summary, nil
}

// chunkContacts splits contacts into consecutive chunks of at most size
func chunkContacts(contacts []ImportContact, size int) [][]ImportContact {
	if size <= 0 {
		size = DEFAULT_CHUNK_SIZE
	}

	chunks := make([][]ImportContact, 0, (len(contacts)+size-1)/size)
	for start := 0; start < len(contacts); start += size {
		end := min(start+size, len(contacts))
		chunks = append(chunks, contacts[start:end])
	}
	return chunks
}
