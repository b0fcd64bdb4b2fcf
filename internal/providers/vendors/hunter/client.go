package hunter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/leadforge/contact-cache/internal/adapter"
	"github.com/leadforge/contact-cache/internal/domain"
	"github.com/leadforge/contact-cache/internal/providers/provider"
)

const PROVIDER_NAME = "hunter"

var ErrNoAPIKey = errors.New("no API key provided")

// EmailFinderResponse represents the response of the Hunter email-finder endpoint
type EmailFinderResponse struct {
	Data struct {
		FirstName    string  `json:"first_name"`
		LastName     string  `json:"last_name"`
		Email        *string `json:"email"`
		Score        *int    `json:"score"`
		Domain       *string `json:"domain"`
		AcceptAll    bool    `json:"accept_all"`
		PhoneNumber  *string `json:"phone_number"`
		Company      *string `json:"company"`
		Verification struct {
			Status *string `json:"status"`
		} `json:"verification"`
	} `json:"data"`
	Errors []struct {
		ID      string `json:"id"`
		Code    int    `json:"code"`
		Details string `json:"details"`
	} `json:"errors"`
}

// Client implements provider.Provider against the Hunter v2 API
type Client struct {
	httpClient adapter.HTTPClient
	apiURL     string
	apiKey     string
	cost       domain.Money
	json       adapter.JSON
}

// NewClient creates a new Hunter client
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

// Enrich finds the contact's email by name and company domain (or company name)
func (c *Client) Enrich(ctx context.Context, contact domain.Contact) (*domain.EnrichmentResult, error) {
	if c.apiKey == "" {
		return nil, ErrNoAPIKey
	}

	query := url.Values{}
	query.Set("first_name", strings.TrimSpace(contact.FirstName))
	query.Set("last_name", strings.TrimSpace(contact.LastName))
	if emailDomain := contact.EmailDomain(); emailDomain != "" {
		query.Set("domain", emailDomain)
	} else {
		query.Set("company", strings.TrimSpace(contact.Company))
	}
	query.Set("api_key", c.apiKey)

	respBody, err := c.httpClient.Do(ctx, adapter.Request{
		Method: http.MethodGet,
		URL:    c.apiURL + "/email-finder?" + query.Encode(),
		Header: map[string]string{"Accept": "application/json"},
	})
	if err != nil {
		var statusErr *adapter.StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
			return nil, provider.ErrNotFound
		}
		return nil, fmt.Errorf("failed to call Hunter API: %w", err)
	}

	var response EmailFinderResponse
	if err := c.json.Unmarshal(respBody, &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal Hunter response: %w", err)
	}

	if len(response.Errors) > 0 {
		return nil, fmt.Errorf("Hunter API error: %s", response.Errors[0].Details) //nolint:staticcheck,ST1005
	}

	data := response.Data
	if data.Email == nil || *data.Email == "" {
		return nil, provider.ErrNotFound
	}

	email := strings.ToLower(strings.TrimSpace(*data.Email))
	result := &domain.EnrichmentResult{
		Provider:        PROVIDER_NAME,
		Email:           &email,
		Phone:           data.PhoneNumber,
		IsCatchAllEmail: data.AcceptAll,
		CompanyDomain:   data.Domain,
		Cost:            c.cost,
	}
	if data.Score != nil {
		score := float64(*data.Score) / 100
		result.Confidence = score
		result.EmailVerificationScore = &score
	}
	if data.Verification.Status != nil {
		switch *data.Verification.Status {
		case "valid":
			result.EmailVerified = true
		case "accept_all":
			result.IsCatchAllEmail = true
		}
	}

	if raw, err := c.json.Compact(respBody); err == nil {
		result.Raw = raw
	}

	return result, nil
}
