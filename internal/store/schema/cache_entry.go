package schema

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/leadforge/contact-cache/internal/domain"
)

// CacheEntry represents the contact_cache_entries table - one globally shared enriched contact
type CacheEntry struct {
	ID uuid.UUID `gorm:"column:id;primaryKey;type:uuid;default:gen_random_uuid()"`

	// Identity, unique per normalized (first, last, company) triple
	NormalizedFirstName string  `gorm:"column:normalized_first_name;not null;type:text;uniqueIndex:idx_contact_cache_entries_identity,priority:1"`
	NormalizedLastName  string  `gorm:"column:normalized_last_name;not null;type:text;uniqueIndex:idx_contact_cache_entries_identity,priority:2"`
	NormalizedCompany   string  `gorm:"column:normalized_company;not null;type:text;uniqueIndex:idx_contact_cache_entries_identity,priority:3"`
	CompanyDomain       *string `gorm:"column:company_domain;type:text"`

	// Resolved contact data
	Email                  *string  `gorm:"column:email;type:text"`
	Phone                  *string  `gorm:"column:phone;type:text"`
	EmailVerified          bool     `gorm:"column:email_verified;not null;default:false"`
	PhoneVerified          bool     `gorm:"column:phone_verified;not null;default:false"`
	EmailVerificationScore *float64 `gorm:"column:email_verification_score;type:numeric(5,4)"`
	ConfidenceScore        float64  `gorm:"column:confidence_score;not null;type:numeric(5,4)"`

	// Quality flags
	IsDisposableEmail bool    `gorm:"column:is_disposable_email;not null;default:false"`
	IsRoleBasedEmail  bool    `gorm:"column:is_role_based_email;not null;default:false"`
	IsCatchAllEmail   bool    `gorm:"column:is_catch_all_email;not null;default:false"`
	PhoneType         *string `gorm:"column:phone_type;type:text"`
	PhoneCountry      *string `gorm:"column:phone_country;type:text"`

	// Provenance
	SourceProvider  string `gorm:"column:source_provider;not null;type:text"`
	FirstEnrichedBy string `gorm:"column:first_enriched_by;not null;type:text"`
	// ProviderPayload is the provider's raw response
	ProviderPayload datatypes.JSON `gorm:"column:provider_payload;type:jsonb"`

	// Usage and cost aggregates
	TimesUsed            int          `gorm:"column:times_used;not null;default:0"`
	EstimatedAPICost     domain.Money `gorm:"column:estimated_api_cost;not null;type:numeric(12,4)"`
	CostSavingsGenerated domain.Money `gorm:"column:cost_savings_generated;not null;type:numeric(14,4)"`

	CreatedAt  time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	UpdatedAt  time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
	LastUsedAt time.Time `gorm:"column:last_used_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the CacheEntry model
func (CacheEntry) TableName() string {
	return "contact_cache_entries"
}

// HasContactData reports whether the entry holds a resolved email or phone
func (e *CacheEntry) HasContactData() bool {
	return (e.Email != nil && *e.Email != "") || (e.Phone != nil && *e.Phone != "")
}
