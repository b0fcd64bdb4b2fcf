package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/leadforge/contact-cache/internal/domain"
	"github.com/leadforge/contact-cache/internal/store/schema"
)

//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore

// Store defines the interface for the contact cache persistence
type Store interface {
	// FindCacheEntry returns the entry matched by the highest priority fingerprint
	// (standard, then phonetic, then domain) or nil when none matches
	FindCacheEntry(ctx context.Context, fingerprints []domain.Fingerprint) (*FindResult, error)
	// FindCacheEntryOnPrimary is FindCacheEntry bypassing read replicas
	FindCacheEntryOnPrimary(ctx context.Context, fingerprints []domain.Fingerprint) (*FindResult, error)
	// InsertCacheEntry atomically creates an entry, its fingerprints and the creator's usage row.
	// Returns domain.ErrConflict when a concurrent insert claimed the entry or a fingerprint first.
	InsertCacheEntry(ctx context.Context, input InsertCacheEntryInput) (*InsertCacheEntryResult, error)
	// RecordHit increments times used and cost savings of an entry
	RecordHit(ctx context.Context, entryID uuid.UUID, savings domain.Money) error
	// RecordUsage upserts the (user, entry) history row and, on the first resolution only,
	// updates the entry's usage counters in the same transaction
	RecordUsage(ctx context.Context, input RecordUsageInput) (*RecordUsageResult, error)
	// UpgradeCacheEntry overwrites the entry's contact data when the new confidence is strictly higher.
	// Returns domain.ErrStaleOverwriteRejected otherwise.
	UpgradeCacheEntry(ctx context.Context, entryID uuid.UUID, result domain.EnrichmentResult) (*schema.CacheEntry, error)
	// GetCacheEntry retrieves an entry by ID, domain.ErrCacheEntryNotFound if missing
	GetCacheEntry(ctx context.Context, entryID uuid.UUID) (*schema.CacheEntry, error)
	// GetFingerprints retrieves the fingerprints of an entry
	GetFingerprints(ctx context.Context, entryID uuid.UUID) ([]schema.ContactFingerprint, error)
	// GetUserContactHistory retrieves a user's history row for an entry, nil if none
	GetUserContactHistory(ctx context.Context, userID string, entryID uuid.UUID) (*schema.UserContactHistory, error)
	// ListUserContactHistory lists a user's history rows, newest first, with the total count
	ListUserContactHistory(ctx context.Context, userID string, limit int, offset uint64) ([]schema.UserContactHistory, uint64, error)
	// UpsertDailyMetrics adds counters to a day's rollup row, creating it if needed
	UpsertDailyMetrics(ctx context.Context, input UpsertDailyMetricsInput) error
	// GetDailyMetrics retrieves rollup rows between two dates, inclusive
	GetDailyMetrics(ctx context.Context, from, to time.Time) ([]schema.DailyCacheMetrics, error)
	// Ping checks the connection to the database
	Ping(ctx context.Context) error
}

// FindResult is a matched cache entry and the fingerprint that matched it
type FindResult struct {
	Entry     *schema.CacheEntry
	MatchedBy domain.Fingerprint
}

// InsertCacheEntryInput represents the data needed to cache a fresh enrichment
type InsertCacheEntryInput struct {
	// Normalized identity
	FirstName     string
	LastName      string
	Company       string
	CompanyDomain *string

	Fingerprints []domain.Fingerprint
	Result       domain.EnrichmentResult

	// Creator usage
	UserID         string
	JobID          *string
	ContactID      *string
	CreditsCharged int
}

// InsertCacheEntryResult is the created entry and the creator's history row
type InsertCacheEntryResult struct {
	Entry   *schema.CacheEntry
	History *schema.UserContactHistory
}

// RecordUsageInput represents one resolution to account for
type RecordUsageInput struct {
	UserID         string
	CacheEntryID   uuid.UUID
	JobID          *string
	ContactID      *string
	SourceType     domain.SourceType
	CreditsCharged int
	ActualCost     domain.Money
	SavingsAmount  domain.Money
}

// RecordUsageResult reports how a resolution was accounted for
type RecordUsageResult struct {
	History *schema.UserContactHistory
	// FirstResolution is false when the user had already resolved this entry;
	// in that case nothing was charged or counted
	FirstResolution bool
}

// UpsertDailyMetricsInput represents counters to add to a day's rollup
type UpsertDailyMetricsInput struct {
	Date             time.Time
	Enrichments      int64
	CacheHits        int64
	CacheMisses      int64
	EstimatedAPICost domain.Money
	ActualAPICost    domain.Money
	CostSavings      domain.Money
	// TotalResponseTime is the sum of the response times of the enrichments being added
	TotalResponseTime time.Duration
}
