package dto

import (
	"github.com/leadforge/contact-cache/internal/enricher"
	"github.com/leadforge/contact-cache/internal/resolver"
	"github.com/leadforge/contact-cache/internal/store/schema"
)

const metricDateLayout = "2006-01-02"

// MapEnrichResultToDTO maps an enrichment result to its response
func MapEnrichResultToDTO(result *enricher.Result) *EnrichResponse {
	resp := &EnrichResponse{
		Status: string(result.Status),
		Cached: result.Cached(),
		Email:  result.Email(),
		Phone:  result.Phone(),
	}

	durationMs := result.Duration.Milliseconds()
	resp.DurationMs = &durationMs

	if result.Entry != nil {
		fillFromEntry(resp, result.Entry)
	} else if e := result.Enrichment; e != nil {
		resp.EmailVerified = e.EmailVerified
		resp.PhoneVerified = e.PhoneVerified
		resp.EmailVerificationScore = e.EmailVerificationScore
		resp.Confidence = e.Confidence
		resp.CompanyDomain = e.CompanyDomain
		resp.Provider = e.Provider
	}

	if result.MatchedBy != nil {
		matchedBy := string(result.MatchedBy.Type)
		resp.MatchedBy = &matchedBy
	}

	if u := result.Usage; u != nil {
		resp.SourceType = u.SourceType
		resp.CreditsCharged = u.CreditsCharged
		savings := u.SavingsAmount
		resp.SavingsAmount = &savings
		first := u.FirstResolution
		resp.FirstResolution = &first
	}

	return resp
}

// MapResolutionToDTO maps a cache-only hit to its response
func MapResolutionToDTO(resolution *resolver.Resolution) *EnrichResponse {
	resp := &EnrichResponse{
		Status: string(enricher.StatusCacheHit),
		Cached: true,
	}

	if resolution.Entry != nil && resolution.Entry.Entry != nil {
		fillFromEntry(resp, resolution.Entry.Entry)
		resp.Email = resolution.Entry.Entry.Email
		resp.Phone = resolution.Entry.Entry.Phone
		matchedBy := string(resolution.Entry.MatchedBy.Type)
		resp.MatchedBy = &matchedBy
	}

	if u := resolution.Usage; u != nil {
		resp.SourceType = u.SourceType
		resp.CreditsCharged = u.CreditsCharged
		savings := u.SavingsAmount
		resp.SavingsAmount = &savings
		first := u.FirstResolution
		resp.FirstResolution = &first
	}

	return resp
}

func fillFromEntry(resp *EnrichResponse, entry *schema.CacheEntry) {
	id := entry.ID.String()
	resp.CacheEntryID = &id
	resp.EmailVerified = entry.EmailVerified
	resp.PhoneVerified = entry.PhoneVerified
	resp.EmailVerificationScore = entry.EmailVerificationScore
	resp.Confidence = entry.ConfidenceScore
	resp.CompanyDomain = entry.CompanyDomain
	resp.Provider = entry.SourceProvider
}

// MapCacheEntryToDTO maps a cache entry and its optional fingerprints to a response
func MapCacheEntryToDTO(entry *schema.CacheEntry, fingerprints []schema.ContactFingerprint) *CacheEntryResponse {
	resp := &CacheEntryResponse{
		ID:                     entry.ID.String(),
		NormalizedFirstName:    entry.NormalizedFirstName,
		NormalizedLastName:     entry.NormalizedLastName,
		NormalizedCompany:      entry.NormalizedCompany,
		CompanyDomain:          entry.CompanyDomain,
		Email:                  entry.Email,
		Phone:                  entry.Phone,
		EmailVerified:          entry.EmailVerified,
		PhoneVerified:          entry.PhoneVerified,
		EmailVerificationScore: entry.EmailVerificationScore,
		ConfidenceScore:        entry.ConfidenceScore,
		IsDisposableEmail:      entry.IsDisposableEmail,
		IsRoleBasedEmail:       entry.IsRoleBasedEmail,
		IsCatchAllEmail:        entry.IsCatchAllEmail,
		PhoneType:              entry.PhoneType,
		PhoneCountry:           entry.PhoneCountry,
		SourceProvider:         entry.SourceProvider,
		FirstEnrichedBy:        entry.FirstEnrichedBy,
		TimesUsed:              entry.TimesUsed,
		EstimatedAPICost:       entry.EstimatedAPICost,
		CostSavingsGenerated:   entry.CostSavingsGenerated,
		CreatedAt:              entry.CreatedAt,
		UpdatedAt:              entry.UpdatedAt,
		LastUsedAt:             entry.LastUsedAt,
	}

	for _, fp := range fingerprints {
		resp.Fingerprints = append(resp.Fingerprints, FingerprintResponse{
			Type:      fp.FingerprintType,
			Value:     fp.FingerprintValue,
			CreatedAt: fp.CreatedAt,
		})
	}

	return resp
}

// MapUserContactHistoryToDTO maps a history row to its response
func MapUserContactHistoryToDTO(h schema.UserContactHistory) UserContactHistoryResponse {
	return UserContactHistoryResponse{
		CacheEntryID:    h.CacheEntryID.String(),
		JobID:           h.JobID,
		ContactID:       h.ContactID,
		CreditsCharged:  h.CreditsCharged,
		WasCacheHit:     h.WasCacheHit,
		SourceType:      h.SourceType,
		ActualCost:      h.ActualCost,
		SavingsAmount:   h.SavingsAmount,
		ResolutionCount: h.ResolutionCount,
		FirstResolvedAt: h.FirstResolvedAt,
		LastResolvedAt:  h.LastResolvedAt,
	}
}

// MapDailyMetricsToDTO maps a daily rollup row to its response
func MapDailyMetricsToDTO(m schema.DailyCacheMetrics) DailyMetricsResponse {
	return DailyMetricsResponse{
		Date:              m.MetricDate.UTC().Format(metricDateLayout),
		TotalEnrichments:  m.TotalEnrichments,
		CacheHits:         m.CacheHits,
		CacheMisses:       m.CacheMisses,
		APICallsAvoided:   m.APICallsAvoided,
		EstimatedAPICost:  m.EstimatedAPICost,
		ActualAPICost:     m.ActualAPICost,
		CostSavings:       m.CostSavings,
		AvgResponseTimeMs: m.AvgResponseTimeMs,
		HitRate:           m.HitRate,
	}
}
