// Package fingerprint derives deterministic lookup keys from raw contact fields so that
// enrichment results can be reused across spelling, punctuation and company-name variants.
package fingerprint

import (
	"fmt"
	"strings"

	"github.com/leadforge/contact-cache/internal/domain"
)

// Normalized holds the normalized contact fields an entry is stored under
type Normalized struct {
	FirstName string
	LastName  string
	Company   string
	// Domain is the email domain or the company-derived domain token, "" if neither is usable
	Domain string
}

// Result is the output of Generate
type Result struct {
	Normalized   Normalized
	Fingerprints []domain.Fingerprint
}

// Get returns the fingerprint of the given type
func (r *Result) Get(t domain.FingerprintType) (domain.Fingerprint, bool) {
	if r == nil {
		return domain.Fingerprint{}, false
	}
	for _, fp := range r.Fingerprints {
		if fp.Type == t {
			return fp, true
		}
	}
	return domain.Fingerprint{}, false
}

// Generate derives the fingerprints of a contact, standard first.
//
// A contact whose fields are all empty after normalization cannot be deduplicated;
// Generate returns domain.ErrValidation for it together with the normalized fields.
func Generate(contact domain.Contact) (*Result, error) {
	n := Normalized{
		FirstName: NormalizeField(contact.FirstName),
		LastName:  NormalizeField(contact.LastName),
		Company:   NormalizeField(contact.Company),
		Domain:    domainHint(contact),
	}
	result := &Result{Normalized: n}

	if n.FirstName == "" && n.LastName == "" && n.Company == "" {
		return result, fmt.Errorf("%w: first name, last name and company are empty", domain.ErrValidation)
	}

	result.Fingerprints = append(result.Fingerprints, domain.Fingerprint{
		Type:  domain.FingerprintTypeStandard,
		Value: join(n.FirstName, n.LastName, n.Company),
	})

	// phonetic and domain keys are person scoped; without a name they would unify everyone at a company
	if n.FirstName == "" && n.LastName == "" {
		return result, nil
	}

	firstCode, lastCode := Soundex(n.FirstName), Soundex(n.LastName)
	if firstCode != "" || lastCode != "" {
		result.Fingerprints = append(result.Fingerprints, domain.Fingerprint{
			Type:  domain.FingerprintTypePhonetic,
			Value: join(firstCode, lastCode, n.Company),
		})
	}

	if n.Domain != "" {
		result.Fingerprints = append(result.Fingerprints, domain.Fingerprint{
			Type:  domain.FingerprintTypeDomain,
			Value: join(n.FirstName, n.LastName, n.Domain),
		})
	}

	return result, nil
}

func domainHint(contact domain.Contact) string {
	if d := contact.EmailDomain(); d != "" && !IsFreeMailDomain(d) {
		return d
	}
	return CompanyDomain(contact.Company)
}

func join(parts ...string) string {
	return strings.Join(parts, domain.FINGERPRINT_DELIMITER)
}
