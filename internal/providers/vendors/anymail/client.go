package anymail

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/leadforge/contact-cache/internal/adapter"
	"github.com/leadforge/contact-cache/internal/domain"
	"github.com/leadforge/contact-cache/internal/providers/provider"
)

const PROVIDER_NAME = "anymail"

// Statuses reported by the person endpoint
const (
	StatusValid       = "valid"
	StatusRisky       = "risky"
	StatusNotFound    = "not_found"
	StatusBlacklisted = "blacklisted"
)

// riskyConfidenceCap bounds the confidence of unverifiable (catch-all) addresses
const riskyConfidenceCap = 0.5

var ErrNoAPIKey = errors.New("no API key provided")

// PersonRequest represents the body of the find-email/person endpoint
type PersonRequest struct {
	FullName    string `json:"full_name"`
	CompanyName string `json:"company_name,omitempty"`
	Domain      string `json:"domain,omitempty"`
}

// PersonResponse represents the response of the find-email/person endpoint
type PersonResponse struct {
	Email       *string  `json:"email"`
	EmailStatus string   `json:"email_status"`
	ValidEmail  *string  `json:"valid_email"`
	Score       *float64 `json:"score"`
	// some API versions report "confidence" instead of "score"
	Confidence *float64 `json:"confidence"`
}

// Client implements provider.Provider against the Anymail Finder v5.1 API
type Client struct {
	httpClient adapter.HTTPClient
	apiURL     string
	apiKey     string
	cost       domain.Money
	json       adapter.JSON
}

// NewClient creates a new Anymail Finder client
func NewClient(httpClient adapter.HTTPClient, apiURL string, apiKey string, cost domain.Money, json adapter.JSON) provider.Provider {
	return &Client{
		httpClient: httpClient,
		apiURL:     strings.TrimSuffix(apiURL, "/"),
		apiKey:     apiKey,
		cost:       cost,
		json:       json,
	}
}

func (c *Client) Name() string {
	return PROVIDER_NAME
}

// Enrich finds the contact's email by full name and company
func (c *Client) Enrich(ctx context.Context, contact domain.Contact) (*domain.EnrichmentResult, error) {
	if c.apiKey == "" {
		return nil, ErrNoAPIKey
	}

	body, err := c.json.Marshal(PersonRequest{
		FullName:    strings.TrimSpace(strings.TrimSpace(contact.FirstName) + " " + strings.TrimSpace(contact.LastName)),
		CompanyName: strings.TrimSpace(contact.Company),
		Domain:      contact.EmailDomain(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal Anymail request: %w", err)
	}

	respBody, err := c.httpClient.Do(ctx, adapter.Request{
		Method: http.MethodPost,
		URL:    c.apiURL + "/find-email/person",
		Header: map[string]string{
			"Content-Type":  "application/json",
			"Authorization": "Bearer " + c.apiKey,
		},
		Body: body,
	})
	if err != nil {
		var statusErr *adapter.StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
			return nil, provider.ErrNotFound
		}
		return nil, fmt.Errorf("failed to call Anymail API: %w", err)
	}

	var response PersonResponse
	if err := c.json.Unmarshal(respBody, &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal Anymail response: %w", err)
	}

	switch response.EmailStatus {
	case StatusNotFound, StatusBlacklisted:
		return nil, provider.ErrNotFound
	}

	email := response.Email
	if response.ValidEmail != nil && *response.ValidEmail != "" {
		email = response.ValidEmail
	}
	if email == nil || strings.TrimSpace(*email) == "" {
		return nil, provider.ErrNotFound
	}
	normalized := strings.ToLower(strings.TrimSpace(*email))

	score := response.Score
	if score == nil || *score == 0 {
		score = response.Confidence
	}

	result := &domain.EnrichmentResult{
		Provider:      PROVIDER_NAME,
		Email:         &normalized,
		EmailVerified: response.EmailStatus == StatusValid,
		Cost:          c.cost,
	}
	if score != nil {
		s := *score
		result.Confidence = s
		result.EmailVerificationScore = &s
	} else if result.EmailVerified {
		result.Confidence = 1
	}
	if response.EmailStatus == StatusRisky {
		result.IsCatchAllEmail = true
		if result.Confidence > riskyConfidenceCap {
			result.Confidence = riskyConfidenceCap
		}
	}
	if emailDomain := contact.EmailDomain(); emailDomain != "" {
		result.CompanyDomain = &emailDomain
	} else if at := strings.LastIndex(normalized, "@"); at >= 0 {
		d := normalized[at+1:]
		result.CompanyDomain = &d
	}

	if raw, err := c.json.Compact(respBody); err == nil {
		result.Raw = raw
	}

	return result, nil
}
