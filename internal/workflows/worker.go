package workflows

import (
	"go.temporal.io/sdk/workflow"
)

// WorkerEnrich defines the workflows run by the enrichment worker
//
//go:generate mockgen -source=worker.go -destination=../mocks/worker_enrich.go -package=mocks -mock_names=WorkerEnrich=MockWorkerEnrich
type WorkerEnrich interface {
	// EnrichImportJob enriches the contacts of an import in parallel chunks
	EnrichImportJob(ctx workflow.Context, job ImportJob) (*ImportJobSummary, error)
}

type WorkerEnrichConfig struct {
	// ChunkSize is the number of contacts handled per activity
	ChunkSize int
	// MaxParallelChunks bounds the activities running at once for one job
	MaxParallelChunks int
}

// workerEnrich is the concrete implementation of WorkerEnrich
type workerEnrich struct {
	config   WorkerEnrichConfig
	executor Executor
}

// NewWorkerEnrich creates a new worker instance
func NewWorkerEnrich(executor Executor, config WorkerEnrichConfig) WorkerEnrich {
	if config.ChunkSize <= 0 {
		config.ChunkSize = DEFAULT_CHUNK_SIZE
	}
	if config.MaxParallelChunks <= 0 {
		config.MaxParallelChunks = DEFAULT_MAX_PARALLEL_CHUNKS
	}

	return &workerEnrich{
		executor: executor,
		config:   config,
	}
}
