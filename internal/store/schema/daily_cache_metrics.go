package schema

import (
	"time"

	"github.com/leadforge/contact-cache/internal/domain"
)

// DailyCacheMetrics represents the daily_cache_metrics table - one rollup row per calendar day (UTC)
type DailyCacheMetrics struct {
	MetricDate       time.Time `gorm:"column:metric_date;primaryKey;type:date"`
	TotalEnrichments int64     `gorm:"column:total_enrichments;not null;default:0"`
	CacheHits        int64     `gorm:"column:cache_hits;not null;default:0"`
	CacheMisses      int64     `gorm:"column:cache_misses;not null;default:0"`
	APICallsAvoided  int64     `gorm:"column:api_calls_avoided;not null;default:0"`
	// EstimatedAPICost is what every enrichment would have cost without the cache
	EstimatedAPICost domain.Money `gorm:"column:estimated_api_cost;not null;type:numeric(14,4)"`
	ActualAPICost    domain.Money `gorm:"column:actual_api_cost;not null;type:numeric(14,4)"`
	CostSavings      domain.Money `gorm:"column:cost_savings;not null;type:numeric(14,4)"`
	// AvgResponseTimeMs is a running mean over all enrichments of the day
	AvgResponseTimeMs float64   `gorm:"column:avg_response_time_ms;not null;type:numeric(12,2);default:0"`
	HitRate           float64   `gorm:"column:hit_rate;not null;type:numeric(5,4);default:0"`
	UpdatedAt         time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the DailyCacheMetrics model
func (DailyCacheMetrics) TableName() string {
	return "daily_cache_metrics"
}
