package dto

import (
	"time"

	apierrors "github.com/leadforge/contact-cache/internal/api/shared/errors"
	"github.com/leadforge/contact-cache/internal/domain"
)

// EnrichResponse represents the result of enriching or resolving one contact
type EnrichResponse struct {
	Status string `json:"status"`
	// Cached is true when the data is served from or was stored in the global cache
	Cached                 bool              `json:"cached"`
	CacheEntryID           *string           `json:"cache_entry_id,omitempty"`
	MatchedBy              *string           `json:"matched_by,omitempty"`
	Email                  *string           `json:"email,omitempty"`
	Phone                  *string           `json:"phone,omitempty"`
	EmailVerified          bool              `json:"email_verified"`
	PhoneVerified          bool              `json:"phone_verified"`
	EmailVerificationScore *float64          `json:"email_verification_score,omitempty"`
	Confidence             float64           `json:"confidence"`
	CompanyDomain          *string           `json:"company_domain,omitempty"`
	Provider               string            `json:"provider,omitempty"`
	SourceType             domain.SourceType `json:"source_type,omitempty"`
	CreditsCharged         int               `json:"credits_charged"`
	SavingsAmount          *domain.Money     `json:"savings_amount,omitempty"`
	// FirstResolution is false when the user had already resolved this entry
	FirstResolution *bool  `json:"first_resolution,omitempty"`
	DurationMs      *int64 `json:"duration_ms,omitempty"`
}

// BatchEnrichItem is the result of one contact of a batch, in request order
type BatchEnrichItem struct {
	Index     int                 `json:"index"`
	ContactID *string             `json:"contact_id,omitempty"`
	Result    *EnrichResponse     `json:"result,omitempty"`
	Error     *apierrors.APIError `json:"error,omitempty"`
}

// BatchEnrichSummary counts how the contacts of a batch were served
type BatchEnrichSummary struct {
	Total          int          `json:"total"`
	CacheHits      int          `json:"cache_hits"`
	FreshLookups   int          `json:"fresh_lookups"`
	Failed         int          `json:"failed"`
	CreditsCharged int          `json:"credits_charged"`
	Savings        domain.Money `json:"savings"`
}

// EnrichBatchResponse represents the response for a batch enrichment
type EnrichBatchResponse struct {
	Results []BatchEnrichItem  `json:"results"`
	Summary BatchEnrichSummary `json:"summary"`
}

// FingerprintResponse is one lookup key of a cache entry
type FingerprintResponse struct {
	Type      domain.FingerprintType `json:"type"`
	Value     string                 `json:"value"`
	CreatedAt time.Time              `json:"created_at"`
}

// CacheEntryResponse represents a cache entry
type CacheEntryResponse struct {
	ID                     string                `json:"id"`
	NormalizedFirstName    string                `json:"normalized_first_name"`
	NormalizedLastName     string                `json:"normalized_last_name"`
	NormalizedCompany      string                `json:"normalized_company"`
	CompanyDomain          *string               `json:"company_domain,omitempty"`
	Email                  *string               `json:"email,omitempty"`
	Phone                  *string               `json:"phone,omitempty"`
	EmailVerified          bool                  `json:"email_verified"`
	PhoneVerified          bool                  `json:"phone_verified"`
	EmailVerificationScore *float64              `json:"email_verification_score,omitempty"`
	ConfidenceScore        float64               `json:"confidence_score"`
	IsDisposableEmail      bool                  `json:"is_disposable_email"`
	IsRoleBasedEmail       bool                  `json:"is_role_based_email"`
	IsCatchAllEmail        bool                  `json:"is_catch_all_email"`
	PhoneType              *string               `json:"phone_type,omitempty"`
	PhoneCountry           *string               `json:"phone_country,omitempty"`
	SourceProvider         string                `json:"source_provider"`
	FirstEnrichedBy        string                `json:"first_enriched_by"`
	TimesUsed              int                   `json:"times_used"`
	EstimatedAPICost       domain.Money          `json:"estimated_api_cost"`
	CostSavingsGenerated   domain.Money          `json:"cost_savings_generated"`
	CreatedAt              time.Time             `json:"created_at"`
	UpdatedAt              time.Time             `json:"updated_at"`
	LastUsedAt             time.Time             `json:"last_used_at"`
	Fingerprints           []FingerprintResponse `json:"fingerprints,omitempty"`
}

// RefreshCacheEntryResponse represents the response for refreshing an entry
type RefreshCacheEntryResponse struct {
	// Upgraded is false when the fresh provider result was not more confident
	Upgraded bool               `json:"upgraded"`
	Entry    CacheEntryResponse `json:"entry"`
}

// UserContactHistoryResponse represents one row of a user's history
type UserContactHistoryResponse struct {
	CacheEntryID    string            `json:"cache_entry_id"`
	JobID           *string           `json:"job_id,omitempty"`
	ContactID       *string           `json:"contact_id,omitempty"`
	CreditsCharged  int               `json:"credits_charged"`
	WasCacheHit     bool              `json:"was_cache_hit"`
	SourceType      domain.SourceType `json:"source_type"`
	ActualCost      domain.Money      `json:"actual_cost"`
	SavingsAmount   domain.Money      `json:"savings_amount"`
	ResolutionCount int               `json:"resolution_count"`
	FirstResolvedAt time.Time         `json:"first_resolved_at"`
	LastResolvedAt  time.Time         `json:"last_resolved_at"`
}

// UserContactHistoryListResponse represents a page of a user's history
type UserContactHistoryListResponse struct {
	Items  []UserContactHistoryResponse `json:"items"`
	Offset *uint64                      `json:"offset,omitempty"` // next offset, absent on the last page
	Total  uint64                       `json:"total"`
}

// DailyMetricsResponse represents one day of cache metrics
type DailyMetricsResponse struct {
	Date              string       `json:"date"` // YYYY-MM-DD, UTC
	TotalEnrichments  int64        `json:"total_enrichments"`
	CacheHits         int64        `json:"cache_hits"`
	CacheMisses       int64        `json:"cache_misses"`
	APICallsAvoided   int64        `json:"api_calls_avoided"`
	EstimatedAPICost  domain.Money `json:"estimated_api_cost"`
	ActualAPICost     domain.Money `json:"actual_api_cost"`
	CostSavings       domain.Money `json:"cost_savings"`
	AvgResponseTimeMs float64      `json:"avg_response_time_ms"`
	HitRate           float64      `json:"hit_rate"`
}

// DailyMetricsListResponse represents the daily metrics of a date range
type DailyMetricsListResponse struct {
	From  string                 `json:"from"`
	To    string                 `json:"to"`
	Items []DailyMetricsResponse `json:"items"`
}

// TriggerImportResponse represents the response for starting an import job
type TriggerImportResponse struct {
	JobID      string `json:"job_id"`
	WorkflowID string `json:"workflow_id"`
	RunID      string `json:"run_id"`
	Contacts   int    `json:"contacts"`
}

// WorkflowStatusResponse represents the status of a Temporal workflow execution
type WorkflowStatusResponse struct {
	WorkflowID    string     `json:"workflow_id"`
	RunID         string     `json:"run_id"`
	Status        string     `json:"status"`
	StartTime     *time.Time `json:"start_time,omitempty"`
	CloseTime     *time.Time `json:"close_time,omitempty"`
	ExecutionTime *uint64    `json:"execution_time_ms,omitempty"` // Execution time in milliseconds
}

// HealthResponse represents the health of the API and its store
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Store   string `json:"store"`
}
