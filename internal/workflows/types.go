package workflows

import (
	"github.com/leadforge/contact-cache/internal/domain"
)

// ImportContact is one row of an import job
type ImportContact struct {
	// ContactID identifies the row in the caller's import, optional
	ContactID string         `json:"contact_id,omitempty"`
	Contact   domain.Contact `json:"contact"`
}

// ImportJob is a list of contacts to enrich on behalf of a user
type ImportJob struct {
	JobID    string          `json:"job_id"`
	UserID   string          `json:"user_id"`
	Contacts []ImportContact `json:"contacts"`
}

// EnrichContactsInput is the input of one EnrichContacts activity
type EnrichContactsInput struct {
	JobID      string          `json:"job_id"`
	UserID     string          `json:"user_id"`
	ChunkIndex int             `json:"chunk_index"`
	Contacts   []ImportContact `json:"contacts"`
}

// ChunkSummary counts how the contacts of a chunk were served
type ChunkSummary struct {
	Total int `json:"total"`
	// CacheHits includes contacts recovered from a concurrent insert
	CacheHits      int `json:"cache_hits"`
	FreshLookups   int `json:"fresh_lookups"`
	Uncached       int `json:"uncached"`
	NotFound       int `json:"not_found"`
	Failed         int `json:"failed"`
	CreditsCharged int `json:"credits_charged"`
	// RepeatResolutions are contacts the user had already resolved, never charged again
	RepeatResolutions int          `json:"repeat_resolutions"`
	Savings           domain.Money `json:"savings"`
}

// Add accumulates other into s
func (s *ChunkSummary) Add(other ChunkSummary) {
	s.Total += other.Total
	s.CacheHits += other.CacheHits
	s.FreshLookups += other.FreshLookups
	s.Uncached += other.Uncached
	s.NotFound += other.NotFound
	s.Failed += other.Failed
	s.CreditsCharged += other.CreditsCharged
	s.RepeatResolutions += other.RepeatResolutions
	s.Savings = s.Savings.Add(other.Savings)
}

// ImportJobSummary is the result of the EnrichImportJob workflow
type ImportJobSummary struct {
	JobID  string `json:"job_id"`
	UserID string `json:"user_id"`
	ChunkSummary
	// FailedChunks are chunks whose activity failed after retries; their contacts count as failed
	FailedChunks []int `json:"failed_chunks,omitempty"`
}
