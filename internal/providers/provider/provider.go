package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/leadforge/contact-cache/internal/adapter"
	"github.com/leadforge/contact-cache/internal/domain"
	"github.com/leadforge/contact-cache/internal/logger"
	"github.com/leadforge/contact-cache/internal/metrics"
	"github.com/leadforge/contact-cache/internal/ratelimit"
)

// ErrNotFound is returned by a provider that has no data for a contact
var ErrNotFound = errors.New("contact not found by provider")

// Provider call results reported to metrics
const (
	resultFound       = "found"
	resultNotFound    = "not_found"
	resultError       = "error"
	resultRateLimited = "rate_limited"
)

// Provider enriches a contact with an email and/or phone
//
//go:generate mockgen -source=provider.go -destination=../../mocks/provider.go -package=mocks -mock_names=Provider=MockProvider
type Provider interface {
	// Name identifies the provider in cache entries, pricing and rate limits
	Name() string
	// Enrich looks the contact up. Returns ErrNotFound when the provider has no data.
	Enrich(ctx context.Context, contact domain.Contact) (*domain.EnrichmentResult, error)
}

// Chain tries providers in order until one returns contact data
type Chain struct {
	providers []Provider
	limiter   ratelimit.Limiter
	clock     adapter.Clock
	recorder  *metrics.Recorder
}

// NewChain creates a provider chain. limiter and recorder may be nil.
func NewChain(providers []Provider, limiter ratelimit.Limiter, clock adapter.Clock, recorder *metrics.Recorder) *Chain {
	return &Chain{
		providers: providers,
		limiter:   limiter,
		clock:     clock,
		recorder:  recorder,
	}
}

// Name returns the names of the chained providers
func (c *Chain) Name() string {
	names := make([]string, 0, len(c.providers))
	for _, p := range c.providers {
		names = append(names, p.Name())
	}
	return strings.Join(names, ",")
}

// Enrich returns the first result carrying an email or phone.
// Returns domain.ErrNoProviderResult, wrapping the last provider failure, when none does.
func (c *Chain) Enrich(ctx context.Context, contact domain.Contact) (*domain.EnrichmentResult, error) {
	if len(c.providers) == 0 {
		return nil, fmt.Errorf("%w: no providers configured", domain.ErrNoProviderResult)
	}

	lastErr := ErrNotFound
	for _, p := range c.providers {
		name := p.Name()

		if c.limiter != nil {
			if err := c.limiter.Wait(ctx, name); err != nil {
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				c.recorder.ObserveProvider(name, resultRateLimited, 0)
				logger.WarnCtx(ctx, "Provider rate limit wait failed, skipping", zap.String("provider", name), zap.Error(err))
				lastErr = err
				continue
			}
		}

		start := c.clock.Now()
		result, err := p.Enrich(ctx, contact)
		elapsed := c.clock.Since(start)

		switch {
		case errors.Is(err, ErrNotFound):
			c.recorder.ObserveProvider(name, resultNotFound, elapsed)
			continue
		case err != nil:
			c.recorder.ObserveProvider(name, resultError, elapsed)
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			logger.WarnCtx(ctx, "Provider call failed", zap.String("provider", name), zap.Error(err))
			lastErr = err
			continue
		case !result.HasContactData():
			c.recorder.ObserveProvider(name, resultNotFound, elapsed)
			continue
		}

		c.recorder.ObserveProvider(name, resultFound, elapsed)
		if result.Provider == "" {
			result.Provider = name
		}
		return result, nil
	}

	return nil, fmt.Errorf("%w: %w", domain.ErrNoProviderResult, lastErr)
}
