package domain

import (
	"encoding/json"
	"strings"
	"time"
)

// FingerprintType represents the kind of lookup key derived from a contact
type FingerprintType string

const (
	FingerprintTypeStandard FingerprintType = "standard"
	FingerprintTypePhonetic FingerprintType = "phonetic"
	FingerprintTypeDomain   FingerprintType = "domain"
)

// FingerprintPriority is the order fingerprints are tried in, most precise first
var FingerprintPriority = []FingerprintType{
	FingerprintTypeStandard,
	FingerprintTypePhonetic,
	FingerprintTypeDomain,
}

// IsValidFingerprintType checks if a fingerprint type is valid
func IsValidFingerprintType(t FingerprintType) bool {
	return t == FingerprintTypeStandard ||
		t == FingerprintTypePhonetic ||
		t == FingerprintTypeDomain
}

// Fingerprint is a (type, value) lookup key
type Fingerprint struct {
	Type  FingerprintType `json:"type"`
	Value string          `json:"value"`
}

// SourceType represents where a resolution's data came from
type SourceType string

const (
	SourceTypeFreshAPICall   SourceType = "fresh_api_call"
	SourceTypeGlobalCache    SourceType = "global_cache"
	SourceTypeSameUserRepeat SourceType = "same_user_repeat"
)

// IsValidSourceType checks if a source type is valid
func IsValidSourceType(s SourceType) bool {
	return s == SourceTypeFreshAPICall ||
		s == SourceTypeGlobalCache ||
		s == SourceTypeSameUserRepeat
}

// Contact is the raw contact input as it arrives from an import or API call
type Contact struct {
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Company   string  `json:"company"`
	Email     *string `json:"email,omitempty"` // only used as a domain hint
}

// EmailDomain returns the lowercased domain of the contact's email, or "" if there is none
func (c Contact) EmailDomain() string {
	if c.Email == nil {
		return ""
	}
	at := strings.LastIndex(*c.Email, "@")
	if at < 0 || at == len(*c.Email)-1 {
		return ""
	}
	return strings.ToLower(strings.TrimSpace((*c.Email)[at+1:]))
}

// EnrichmentResult is what an external enrichment provider returns for a contact
type EnrichmentResult struct {
	Provider               string          `json:"provider"`
	Email                  *string         `json:"email,omitempty"`
	Phone                  *string         `json:"phone,omitempty"`
	EmailVerified          bool            `json:"email_verified"`
	PhoneVerified          bool            `json:"phone_verified"`
	EmailVerificationScore *float64        `json:"email_verification_score,omitempty"`
	Confidence             float64         `json:"confidence"` // 0..1
	IsDisposableEmail      bool            `json:"is_disposable_email"`
	IsRoleBasedEmail       bool            `json:"is_role_based_email"`
	IsCatchAllEmail        bool            `json:"is_catch_all_email"`
	PhoneType              *string         `json:"phone_type,omitempty"`
	PhoneCountry           *string         `json:"phone_country,omitempty"`
	CompanyDomain          *string         `json:"company_domain,omitempty"`
	Cost                   Money           `json:"cost"`
	Raw                    json.RawMessage `json:"raw,omitempty"`
}

// HasContactData reports whether the result carries an email or a phone
func (r *EnrichmentResult) HasContactData() bool {
	return r != nil &&
		((r.Email != nil && *r.Email != "") || (r.Phone != nil && *r.Phone != ""))
}

// UsageEvent notifies the billing service of a financially relevant resolution
type UsageEvent struct {
	ID             string     `json:"id"`
	UserID         string     `json:"user_id"`
	CacheEntryID   string     `json:"cache_entry_id,omitempty"`
	JobID          *string    `json:"job_id,omitempty"`
	ContactID      *string    `json:"contact_id,omitempty"`
	SourceType     SourceType `json:"source_type"`
	CreditsCharged int        `json:"credits_charged"`
	ActualCost     Money      `json:"actual_cost"`
	SavingsAmount  Money      `json:"savings_amount"`
	Cached         bool       `json:"cached"`
	OccurredAt     time.Time  `json:"occurred_at"`
}
