package schema

import (
	"time"

	"github.com/google/uuid"

	"github.com/leadforge/contact-cache/internal/domain"
)

// ContactFingerprint represents the contact_fingerprints table - a lookup key pointing at a cache entry
type ContactFingerprint struct {
	ID           int64     `gorm:"column:id;primaryKey;autoIncrement"`
	CacheEntryID uuid.UUID `gorm:"column:cache_entry_id;not null;type:uuid;uniqueIndex:idx_contact_fingerprints_entry_type,priority:1"`
	// FingerprintType and FingerprintValue are unique together across all entries
	FingerprintType  domain.FingerprintType `gorm:"column:fingerprint_type;not null;type:text;uniqueIndex:idx_contact_fingerprints_type_value,priority:1;uniqueIndex:idx_contact_fingerprints_entry_type,priority:2"`
	FingerprintValue string                 `gorm:"column:fingerprint_value;not null;type:text;uniqueIndex:idx_contact_fingerprints_type_value,priority:2"`
	CreatedAt        time.Time              `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the ContactFingerprint model
func (ContactFingerprint) TableName() string {
	return "contact_fingerprints"
}
