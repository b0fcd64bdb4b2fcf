package store

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/plugin/dbresolver"

	"github.com/leadforge/contact-cache/internal/domain"
	"github.com/leadforge/contact-cache/internal/logger"
	"github.com/leadforge/contact-cache/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

func hasDBResolver(db *gorm.DB) bool {
	return db != nil && db.Callback().Query().Get("gorm:db_resolver") != nil
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM database connection.
// Zero values fall back to the defaults of NormalizeConnectionPoolSettings.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// RegisterReadReplica routes reads to the replica at readDSN; writes and
// FindCacheEntryOnPrimary stay on the primary. An empty readDSN is a no-op.
func RegisterReadReplica(db *gorm.DB, readDSN string) error {
	if readDSN == "" {
		return nil
	}

	err := db.Use(dbresolver.Register(dbresolver.Config{
		Replicas:          []gorm.Dialector{postgres.Open(readDSN)},
		Policy:            dbresolver.RandomPolicy{},
		TraceResolverMode: true,
	}))
	if err != nil {
		return fmt.Errorf("failed to register read replica: %w", err)
	}

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings into safe values.
//
// Defaults (when zero):
//   - MaxOpenConns: 20
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns <= 0 {
		maxOpenConns = 20
	}
	if maxIdleConns <= 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime <= 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime <= 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// roundScore rounds a 0..1 score to the precision of a numeric(5,4) column
func roundScore(score float64) float64 {
	return math.Round(score*10000) / 10000
}

// =============================================================================
// Cache lookups
// =============================================================================

// FindCacheEntry returns the entry matched by the highest priority fingerprint
func (s *pgStore) FindCacheEntry(ctx context.Context, fingerprints []domain.Fingerprint) (*FindResult, error) {
	return s.findCacheEntry(s.db.WithContext(ctx), fingerprints)
}

// FindCacheEntryOnPrimary repeats the lookup on the primary.
// Replicas can lag behind a concurrent insert that just won a conflict.
func (s *pgStore) FindCacheEntryOnPrimary(ctx context.Context, fingerprints []domain.Fingerprint) (*FindResult, error) {
	db := s.db.WithContext(ctx)
	if hasDBResolver(s.db) {
		db = db.Clauses(dbresolver.Write)
	}
	return s.findCacheEntry(db, fingerprints)
}

func (s *pgStore) findCacheEntry(db *gorm.DB, fingerprints []domain.Fingerprint) (*FindResult, error) {
	if len(fingerprints) == 0 {
		return nil, nil
	}

	pairs := make([][]any, 0, len(fingerprints))
	for _, fp := range fingerprints {
		pairs = append(pairs, []any{string(fp.Type), fp.Value})
	}

	var matches []schema.ContactFingerprint
	err := db.Session(&gorm.Session{}).
		Where("(fingerprint_type, fingerprint_value) IN ?", pairs).
		Find(&matches).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query fingerprints: %w", classifyError(err))
	}
	if len(matches) == 0 {
		return nil, nil
	}

	// Priority is decided here, not by the caller's ordering
	var best *schema.ContactFingerprint
	for _, t := range domain.FingerprintPriority {
		for i := range matches {
			if matches[i].FingerprintType == t {
				best = &matches[i]
				break
			}
		}
		if best != nil {
			break
		}
	}
	if best == nil {
		return nil, nil
	}

	var entry schema.CacheEntry
	err = db.Session(&gorm.Session{}).Where("id = ?", best.CacheEntryID).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cache entry: %w", classifyError(err))
	}

	return &FindResult{
		Entry: &entry,
		MatchedBy: domain.Fingerprint{
			Type:  best.FingerprintType,
			Value: best.FingerprintValue,
		},
	}, nil
}

// GetCacheEntry retrieves an entry by ID
func (s *pgStore) GetCacheEntry(ctx context.Context, entryID uuid.UUID) (*schema.CacheEntry, error) {
	var entry schema.CacheEntry
	err := s.db.WithContext(ctx).Where("id = ?", entryID).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", domain.ErrCacheEntryNotFound, entryID)
		}
		return nil, fmt.Errorf("failed to get cache entry: %w", classifyError(err))
	}

	return &entry, nil
}

// GetFingerprints retrieves the fingerprints of an entry
func (s *pgStore) GetFingerprints(ctx context.Context, entryID uuid.UUID) ([]schema.ContactFingerprint, error) {
	var fingerprints []schema.ContactFingerprint
	err := s.db.WithContext(ctx).
		Where("cache_entry_id = ?", entryID).
		Order("id ASC").
		Find(&fingerprints).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get fingerprints: %w", classifyError(err))
	}

	return fingerprints, nil
}

// =============================================================================
// Cache writes
// =============================================================================

// InsertCacheEntry creates the entry, all of its fingerprints and the creator's usage in one transaction
func (s *pgStore) InsertCacheEntry(ctx context.Context, input InsertCacheEntryInput) (*InsertCacheEntryResult, error) {
	if len(input.Fingerprints) == 0 {
		return nil, fmt.Errorf("%w: no fingerprints to insert", domain.ErrValidation)
	}
	if input.UserID == "" {
		return nil, fmt.Errorf("user id is required")
	}

	now := time.Now()
	r := input.Result
	entry := schema.CacheEntry{
		ID:                     uuid.New(),
		NormalizedFirstName:    input.FirstName,
		NormalizedLastName:     input.LastName,
		NormalizedCompany:      input.Company,
		CompanyDomain:          input.CompanyDomain,
		Email:                  r.Email,
		Phone:                  r.Phone,
		EmailVerified:          r.EmailVerified,
		PhoneVerified:          r.PhoneVerified,
		EmailVerificationScore: r.EmailVerificationScore,
		ConfidenceScore:        roundScore(r.Confidence),
		IsDisposableEmail:      r.IsDisposableEmail,
		IsRoleBasedEmail:       r.IsRoleBasedEmail,
		IsCatchAllEmail:        r.IsCatchAllEmail,
		PhoneType:              r.PhoneType,
		PhoneCountry:           r.PhoneCountry,
		SourceProvider:         r.Provider,
		FirstEnrichedBy:        input.UserID,
		TimesUsed:              0, // the creator's usage below brings it to 1
		EstimatedAPICost:       r.Cost,
		CostSavingsGenerated:   domain.Zero(),
		CreatedAt:              now,
		UpdatedAt:              now,
		LastUsedAt:             now,
	}
	if len(r.Raw) > 0 {
		entry.ProviderPayload = datatypes.JSON(r.Raw)
	}
	if entry.CompanyDomain == nil && r.CompanyDomain != nil {
		entry.CompanyDomain = r.CompanyDomain
	}

	var history *schema.UserContactHistory
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&entry).Error; err != nil {
			return fmt.Errorf("failed to create cache entry: %w", classifyError(err))
		}

		fingerprints := make([]schema.ContactFingerprint, 0, len(input.Fingerprints))
		for _, fp := range input.Fingerprints {
			fingerprints = append(fingerprints, schema.ContactFingerprint{
				CacheEntryID:     entry.ID,
				FingerprintType:  fp.Type,
				FingerprintValue: fp.Value,
				CreatedAt:        now,
			})
		}
		if err := tx.Create(&fingerprints).Error; err != nil {
			return fmt.Errorf("failed to create fingerprints: %w", classifyError(err))
		}

		usage, err := s.recordUsageTx(tx, RecordUsageInput{
			UserID:         input.UserID,
			CacheEntryID:   entry.ID,
			JobID:          input.JobID,
			ContactID:      input.ContactID,
			SourceType:     domain.SourceTypeFreshAPICall,
			CreditsCharged: input.CreditsCharged,
			ActualCost:     r.Cost,
			SavingsAmount:  domain.Zero(),
		}, now)
		if err != nil {
			return err
		}
		history = usage.History
		return nil
	})
	if err != nil {
		return nil, err
	}

	entry.TimesUsed = 1
	return &InsertCacheEntryResult{Entry: &entry, History: history}, nil
}

// RecordHit increments times used and cost savings of an entry
func (s *pgStore) RecordHit(ctx context.Context, entryID uuid.UUID, savings domain.Money) error {
	return recordHitTx(s.db.WithContext(ctx), entryID, savings, time.Now())
}

func recordHitTx(tx *gorm.DB, entryID uuid.UUID, savings domain.Money, now time.Time) error {
	result := tx.Model(&schema.CacheEntry{}).
		Where("id = ?", entryID).
		Updates(map[string]any{
			"times_used":             gorm.Expr("times_used + 1"),
			"cost_savings_generated": gorm.Expr("cost_savings_generated + ?", savings),
			"last_used_at":           now,
			"updated_at":             now,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to record cache hit: %w", classifyError(result.Error))
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", domain.ErrCacheEntryNotFound, entryID)
	}

	return nil
}

// RecordUsage accounts for one resolution in a single transaction
func (s *pgStore) RecordUsage(ctx context.Context, input RecordUsageInput) (*RecordUsageResult, error) {
	if input.UserID == "" {
		return nil, fmt.Errorf("user id is required")
	}
	if !domain.IsValidSourceType(input.SourceType) {
		return nil, fmt.Errorf("invalid source type: %s", input.SourceType)
	}

	var result *RecordUsageResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		result, err = s.recordUsageTx(tx, input, time.Now())
		return err
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// recordUsageTx inserts the (user, entry) history row with ON CONFLICT DO NOTHING.
// Only a fresh insert counts towards the entry's usage and savings; a repeat
// resolution refreshes last-used metadata and nothing else.
func (s *pgStore) recordUsageTx(tx *gorm.DB, input RecordUsageInput, now time.Time) (*RecordUsageResult, error) {
	history := schema.UserContactHistory{
		UserID:          input.UserID,
		CacheEntryID:    input.CacheEntryID,
		JobID:           input.JobID,
		ContactID:       input.ContactID,
		CreditsCharged:  input.CreditsCharged,
		WasCacheHit:     input.SourceType != domain.SourceTypeFreshAPICall,
		SourceType:      input.SourceType,
		ActualCost:      input.ActualCost,
		SavingsAmount:   input.SavingsAmount,
		ResolutionCount: 1,
		FirstResolvedAt: now,
		LastResolvedAt:  now,
	}

	created := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "cache_entry_id"}},
		DoNothing: true,
	}).Create(&history)
	if created.Error != nil {
		return nil, fmt.Errorf("failed to create user contact history: %w", classifyError(created.Error))
	}

	if created.RowsAffected == 1 {
		if err := recordHitTx(tx, input.CacheEntryID, input.SavingsAmount, now); err != nil {
			return nil, err
		}
		return &RecordUsageResult{History: &history, FirstResolution: true}, nil
	}

	// Repeat resolution of the same (user, entry)
	err := tx.Model(&schema.UserContactHistory{}).
		Where("user_id = ? AND cache_entry_id = ?", input.UserID, input.CacheEntryID).
		Updates(map[string]any{
			"resolution_count": gorm.Expr("resolution_count + 1"),
			"last_resolved_at": now,
		}).Error
	if err != nil {
		return nil, fmt.Errorf("failed to update user contact history: %w", classifyError(err))
	}

	err = tx.Model(&schema.CacheEntry{}).
		Where("id = ?", input.CacheEntryID).
		Update("last_used_at", now).Error
	if err != nil {
		return nil, fmt.Errorf("failed to touch cache entry: %w", classifyError(err))
	}

	var existing schema.UserContactHistory
	err = tx.Where("user_id = ? AND cache_entry_id = ?", input.UserID, input.CacheEntryID).
		First(&existing).Error
	if err != nil {
		return nil, fmt.Errorf("failed to reload user contact history: %w", classifyError(err))
	}

	logger.Debug("Repeat resolution recorded without charge",
		zap.String("userID", input.UserID),
		zap.String("cacheEntryID", input.CacheEntryID.String()),
		zap.Int("resolutionCount", existing.ResolutionCount))

	return &RecordUsageResult{History: &existing, FirstResolution: false}, nil
}

// UpgradeCacheEntry overwrites contact data only when the new confidence strictly exceeds the stored one.
// Fields the new result does not carry are kept.
func (s *pgStore) UpgradeCacheEntry(ctx context.Context, entryID uuid.UUID, result domain.EnrichmentResult) (*schema.CacheEntry, error) {
	if !result.HasContactData() {
		return nil, fmt.Errorf("%w: result carries no contact data", domain.ErrStaleOverwriteRejected)
	}

	confidence := roundScore(result.Confidence)
	now := time.Now()

	updates := map[string]any{
		"confidence_score":    confidence,
		"source_provider":     result.Provider,
		"is_disposable_email": result.IsDisposableEmail,
		"is_role_based_email": result.IsRoleBasedEmail,
		"is_catch_all_email":  result.IsCatchAllEmail,
		"updated_at":          now,
	}
	if result.Email != nil && *result.Email != "" {
		updates["email"] = *result.Email
		updates["email_verified"] = result.EmailVerified
		updates["email_verification_score"] = result.EmailVerificationScore
	}
	if result.Phone != nil && *result.Phone != "" {
		updates["phone"] = *result.Phone
		updates["phone_verified"] = result.PhoneVerified
		updates["phone_type"] = result.PhoneType
		updates["phone_country"] = result.PhoneCountry
	}
	if len(result.Raw) > 0 {
		updates["provider_payload"] = datatypes.JSON(result.Raw)
	}

	var entry schema.CacheEntry
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The comparison lives in the WHERE clause so concurrent upgrades cannot interleave
		updated := tx.Model(&schema.CacheEntry{}).
			Where("id = ? AND confidence_score < ?", entryID, confidence).
			Updates(updates)
		if updated.Error != nil {
			return fmt.Errorf("failed to upgrade cache entry: %w", classifyError(updated.Error))
		}

		err := tx.Where("id = ?", entryID).First(&entry).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %s", domain.ErrCacheEntryNotFound, entryID)
			}
			return fmt.Errorf("failed to get cache entry: %w", classifyError(err))
		}

		if updated.RowsAffected == 0 {
			return fmt.Errorf("%w: stored confidence %.4f, new confidence %.4f",
				domain.ErrStaleOverwriteRejected, entry.ConfidenceScore, confidence)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &entry, nil
}

// =============================================================================
// User history
// =============================================================================

// GetUserContactHistory retrieves a user's history row for an entry
func (s *pgStore) GetUserContactHistory(ctx context.Context, userID string, entryID uuid.UUID) (*schema.UserContactHistory, error) {
	var history schema.UserContactHistory
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND cache_entry_id = ?", userID, entryID).
		First(&history).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user contact history: %w", classifyError(err))
	}

	return &history, nil
}

// ListUserContactHistory lists a user's history rows, newest first
func (s *pgStore) ListUserContactHistory(ctx context.Context, userID string, limit int, offset uint64) ([]schema.UserContactHistory, uint64, error) {
	var total int64
	err := s.db.WithContext(ctx).
		Model(&schema.UserContactHistory{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count user contact history: %w", classifyError(err))
	}

	var rows []schema.UserContactHistory
	err = s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("last_resolved_at DESC, id DESC").
		Limit(limit).
		Offset(int(offset)). //nolint:gosec,G115
		Find(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list user contact history: %w", classifyError(err))
	}

	return rows, uint64(total), nil //nolint:gosec,G115
}

// =============================================================================
// Daily metrics
// =============================================================================

// UpsertDailyMetrics adds counters to a day's rollup in a single statement.
// hit_rate is recomputed from the merged counters and is 0 while the day has no enrichments.
func (s *pgStore) UpsertDailyMetrics(ctx context.Context, input UpsertDailyMetricsInput) error {
	if input.Enrichments <= 0 {
		return fmt.Errorf("enrichments must be positive")
	}
	if input.CacheHits < 0 || input.CacheMisses < 0 || input.CacheHits+input.CacheMisses > input.Enrichments {
		return fmt.Errorf("invalid hit/miss counters: %d hits, %d misses, %d enrichments",
			input.CacheHits, input.CacheMisses, input.Enrichments)
	}

	date := input.Date.UTC().Truncate(24 * time.Hour)
	avgMs := float64(input.TotalResponseTime.Milliseconds()) / float64(input.Enrichments)

	row := schema.DailyCacheMetrics{
		MetricDate:        date,
		TotalEnrichments:  input.Enrichments,
		CacheHits:         input.CacheHits,
		CacheMisses:       input.CacheMisses,
		APICallsAvoided:   input.CacheHits,
		EstimatedAPICost:  input.EstimatedAPICost,
		ActualAPICost:     input.ActualAPICost,
		CostSavings:       input.CostSavings,
		AvgResponseTimeMs: math.Round(avgMs*100) / 100,
		HitRate:           roundScore(HitRate(input.CacheHits, input.Enrichments)),
		UpdatedAt:         time.Now(),
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "metric_date"}},
		DoUpdates: clause.Assignments(map[string]any{
			"total_enrichments":  gorm.Expr("daily_cache_metrics.total_enrichments + EXCLUDED.total_enrichments"),
			"cache_hits":         gorm.Expr("daily_cache_metrics.cache_hits + EXCLUDED.cache_hits"),
			"cache_misses":       gorm.Expr("daily_cache_metrics.cache_misses + EXCLUDED.cache_misses"),
			"api_calls_avoided":  gorm.Expr("daily_cache_metrics.api_calls_avoided + EXCLUDED.api_calls_avoided"),
			"estimated_api_cost": gorm.Expr("daily_cache_metrics.estimated_api_cost + EXCLUDED.estimated_api_cost"),
			"actual_api_cost":    gorm.Expr("daily_cache_metrics.actual_api_cost + EXCLUDED.actual_api_cost"),
			"cost_savings":       gorm.Expr("daily_cache_metrics.cost_savings + EXCLUDED.cost_savings"),
			"avg_response_time_ms": gorm.Expr(
				"ROUND((daily_cache_metrics.avg_response_time_ms * daily_cache_metrics.total_enrichments" +
					" + EXCLUDED.avg_response_time_ms * EXCLUDED.total_enrichments)" +
					" / (daily_cache_metrics.total_enrichments + EXCLUDED.total_enrichments), 2)"),
			"hit_rate": gorm.Expr(
				"CASE WHEN daily_cache_metrics.total_enrichments + EXCLUDED.total_enrichments = 0 THEN 0" +
					" ELSE LEAST(1, ROUND((daily_cache_metrics.cache_hits + EXCLUDED.cache_hits)::numeric" +
					" / (daily_cache_metrics.total_enrichments + EXCLUDED.total_enrichments), 4)) END"),
			"updated_at": gorm.Expr("EXCLUDED.updated_at"),
		}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to upsert daily metrics: %w", classifyError(err))
	}

	return nil
}

// GetDailyMetrics retrieves rollup rows between two dates, inclusive, oldest first
func (s *pgStore) GetDailyMetrics(ctx context.Context, from, to time.Time) ([]schema.DailyCacheMetrics, error) {
	var rows []schema.DailyCacheMetrics
	err := s.db.WithContext(ctx).
		Where("metric_date BETWEEN ? AND ?", from.UTC().Truncate(24*time.Hour), to.UTC().Truncate(24*time.Hour)).
		Order("metric_date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get daily metrics: %w", classifyError(err))
	}

	return rows, nil
}

// HitRate returns hits/total clamped to [0, 1], 0 when total is 0
func HitRate(hits, total int64) float64 {
	if total <= 0 || hits <= 0 {
		return 0
	}
	if hits >= total {
		return 1
	}
	return float64(hits) / float64(total)
}

// Ping checks the connection to the database
func (s *pgStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return classifyError(err)
	}
	return nil
}
