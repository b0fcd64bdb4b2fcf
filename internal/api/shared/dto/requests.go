package dto

import (
	"fmt"
	"strings"

	"github.com/leadforge/contact-cache/internal/api/shared/constants"
	apierrors "github.com/leadforge/contact-cache/internal/api/shared/errors"
	"github.com/leadforge/contact-cache/internal/domain"
)

const maxFieldLength = 256

// ContactInput is a contact as submitted by a client
type ContactInput struct {
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Company   string  `json:"company"`
	Email     *string `json:"email,omitempty"`
}

// Validate validates the contact fields
func (c *ContactInput) Validate() error {
	if problem := c.problem(); problem != "" {
		return apierrors.NewValidationError(problem)
	}
	return nil
}

func (c *ContactInput) problem() string {
	if strings.TrimSpace(c.FirstName) == "" && strings.TrimSpace(c.LastName) == "" {
		return "first_name or last_name is required"
	}
	for _, field := range []struct{ name, value string }{
		{"first_name", c.FirstName},
		{"last_name", c.LastName},
		{"company", c.Company},
	} {
		if len(field.value) > maxFieldLength {
			return fmt.Sprintf("%s exceeds %d characters", field.name, maxFieldLength)
		}
	}
	if c.Email != nil && !strings.Contains(*c.Email, "@") {
		return "email must contain @"
	}
	return ""
}

// ToDomain converts the input to a domain contact
func (c ContactInput) ToDomain() domain.Contact {
	return domain.Contact{
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Company:   c.Company,
		Email:     c.Email,
	}
}

// EnrichContactRequest represents the request body for enriching a single contact
type EnrichContactRequest struct {
	// UserID is required with API key authentication; a JWT subject takes precedence
	UserID    string       `json:"user_id"`
	JobID     *string      `json:"job_id,omitempty"`
	ContactID *string      `json:"contact_id,omitempty"`
	Contact   ContactInput `json:"contact"`
}

// Validate validates the request body
func (r *EnrichContactRequest) Validate() error {
	return r.Contact.Validate()
}

// BatchContactInput is one contact of a batch request
type BatchContactInput struct {
	ContactID *string `json:"contact_id,omitempty"`
	ContactInput
}

// EnrichBatchRequest represents the request body for enriching several contacts at once
type EnrichBatchRequest struct {
	UserID   string              `json:"user_id"`
	JobID    *string             `json:"job_id,omitempty"`
	Contacts []BatchContactInput `json:"contacts"`
}

// Validate validates the request body
func (r *EnrichBatchRequest) Validate() error {
	if len(r.Contacts) == 0 {
		return apierrors.NewValidationError("contacts is required")
	}
	if len(r.Contacts) > constants.MAX_BATCH_CONTACTS {
		return apierrors.NewValidationError(fmt.Sprintf("maximum %d contacts allowed", constants.MAX_BATCH_CONTACTS))
	}
	for i := range r.Contacts {
		if problem := r.Contacts[i].problem(); problem != "" {
			return apierrors.NewValidationError(fmt.Sprintf("contacts[%d]: %s", i, problem))
		}
	}
	return nil
}

// ResolveContactRequest represents the request body for a cache-only lookup
type ResolveContactRequest struct {
	UserID    string       `json:"user_id"`
	JobID     *string      `json:"job_id,omitempty"`
	ContactID *string      `json:"contact_id,omitempty"`
	Contact   ContactInput `json:"contact"`
}

// Validate validates the request body
func (r *ResolveContactRequest) Validate() error {
	return r.Contact.Validate()
}

// RefreshCacheEntryRequest represents the optional request body for refreshing an entry
type RefreshCacheEntryRequest struct {
	UserID string `json:"user_id"`
}

// StartImportRequest represents the request body for starting an import job
type StartImportRequest struct {
	UserID string `json:"user_id"`
	// JobID is generated when empty
	JobID    string              `json:"job_id"`
	Contacts []BatchContactInput `json:"contacts"`
}

// Validate validates the request body
func (r *StartImportRequest) Validate() error {
	if len(r.Contacts) == 0 {
		return apierrors.NewValidationError("contacts is required")
	}
	if len(r.Contacts) > constants.MAX_IMPORT_CONTACTS {
		return apierrors.NewValidationError(fmt.Sprintf("maximum %d contacts allowed", constants.MAX_IMPORT_CONTACTS))
	}
	if len(r.JobID) > maxFieldLength {
		return apierrors.NewValidationError(fmt.Sprintf("job_id exceeds %d characters", maxFieldLength))
	}
	return nil
}
