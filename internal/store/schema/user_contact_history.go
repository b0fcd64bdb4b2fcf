package schema

import (
	"time"

	"github.com/google/uuid"

	"github.com/leadforge/contact-cache/internal/domain"
)

// UserContactHistory represents the user_contact_history table - one row per (user, cache entry)
type UserContactHistory struct {
	ID           int64     `gorm:"column:id;primaryKey;autoIncrement"`
	UserID       string    `gorm:"column:user_id;not null;type:text;uniqueIndex:idx_user_contact_history_user_entry,priority:1"`
	CacheEntryID uuid.UUID `gorm:"column:cache_entry_id;not null;type:uuid;uniqueIndex:idx_user_contact_history_user_entry,priority:2"`
	// JobID and ContactID reference the import job and source row of the first resolution
	JobID     *string `gorm:"column:job_id;type:text"`
	ContactID *string `gorm:"column:contact_id;type:text"`

	CreditsCharged int               `gorm:"column:credits_charged;not null;default:0"`
	WasCacheHit    bool              `gorm:"column:was_cache_hit;not null"`
	SourceType     domain.SourceType `gorm:"column:source_type;not null;type:text"`
	ActualCost     domain.Money      `gorm:"column:actual_cost;not null;type:numeric(12,4)"`
	SavingsAmount  domain.Money      `gorm:"column:savings_amount;not null;type:numeric(12,4)"`

	// ResolutionCount and LastResolvedAt are the only columns touched by repeat resolutions
	ResolutionCount int       `gorm:"column:resolution_count;not null;default:1"`
	FirstResolvedAt time.Time `gorm:"column:first_resolved_at;not null;default:now();type:timestamptz"`
	LastResolvedAt  time.Time `gorm:"column:last_resolved_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the UserContactHistory model
func (UserContactHistory) TableName() string {
	return "user_contact_history"
}
