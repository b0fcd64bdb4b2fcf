package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/leadforge/contact-cache/internal/adapter"
	"github.com/leadforge/contact-cache/internal/config"
	"github.com/leadforge/contact-cache/internal/logger"
)

// ErrUnknownProvider is returned when Wait is called for a provider without a configured limit
var ErrUnknownProvider = errors.New("provider has no rate limit configured")

// Limiter paces outgoing provider calls.
// Every process enriching contacts shares the provider's quota through redis;
// while redis is unreachable each process falls back to a reduced local quota.
//
//go:generate mockgen -source=limiter.go -destination=../mocks/ratelimit.go -package=mocks -mock_names=Limiter=MockRateLimiter
type Limiter interface {
	// Wait blocks until one request to provider may be issued
	Wait(ctx context.Context, provider string) error
	// Close stops health monitoring and closes the redis connection
	Close() error
}

type limiter struct {
	cfg            config.RateLimiterConfig
	providers      map[string]*providerLimiter
	redis          adapter.RedisClient
	clock          adapter.Clock
	redisAvailable atomic.Bool
	done           chan struct{}
	closeOnce      sync.Once
}

// providerLimiter holds the rate limiting state for a single provider
type providerLimiter struct {
	name        string
	perSecond   int
	distributed adapter.RedisRateLimiter
	// local paces this process while redis is down
	local *rate.Limiter
	// preFilter keeps a single process from hammering redis with denied requests
	preFilter *rate.Limiter
}

// NewLimiter creates a limiter for the given requests-per-second limits, keyed by provider name
func NewLimiter(cfg config.RateLimiterConfig, limits map[string]int, rc adapter.RedisClient, clock adapter.Clock) (Limiter, error) {
	applyDefaults(&cfg)
	if len(limits) == 0 {
		return nil, fmt.Errorf("at least one provider limit is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	redisAvailable := true
	if err := rc.Ping(ctx); err != nil {
		if !cfg.EnableLocalFallback {
			return nil, fmt.Errorf("redis unavailable and fallback disabled: %w", err)
		}
		redisAvailable = false
		logger.Warn("Redis unavailable, using local rate limits", zap.Error(err))
	}

	distributed := rc.NewRateLimiter()
	providers := make(map[string]*providerLimiter, len(limits))
	for name, perSecond := range limits {
		if perSecond <= 0 {
			return nil, fmt.Errorf("provider %s: requests per second must be positive", name)
		}
		localRate := max(float64(perSecond)*cfg.LocalFallbackMultiplier, 1.0)
		providers[name] = &providerLimiter{
			name:        name,
			perSecond:   perSecond,
			distributed: distributed,
			local:       rate.NewLimiter(rate.Limit(localRate), max(int(localRate), 1)),
			preFilter:   rate.NewLimiter(rate.Limit(perSecond), perSecond),
		}
	}

	l := &limiter{
		cfg:       cfg,
		providers: providers,
		redis:     rc,
		clock:     clock,
		done:      make(chan struct{}),
	}
	l.redisAvailable.Store(redisAvailable)

	go l.monitorRedisHealth()

	logger.Info("Provider rate limiter initialized",
		zap.Int("providers", len(providers)),
		zap.Bool("redisAvailable", redisAvailable),
		zap.Bool("localFallback", cfg.EnableLocalFallback))

	return l, nil
}

func applyDefaults(cfg *config.RateLimiterConfig) {
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = "contact-cache:limiter:"
	}
	if cfg.MaxWait <= 0 {
		cfg.MaxWait = 30 * time.Second
	}
	if cfg.LocalFallbackMultiplier <= 0 {
		cfg.LocalFallbackMultiplier = 0.5
	}
	if cfg.HealthCheckInterval <= 0 {
		cfg.HealthCheckInterval = 10 * time.Second
	}
}

// Wait acquires a token for provider, giving up after MaxWait
func (l *limiter) Wait(ctx context.Context, provider string) error {
	select {
	case <-l.done:
		return fmt.Errorf("rate limiter is closed")
	default:
	}

	pl, ok := l.providers[provider]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownProvider, provider)
	}

	ctx, cancel := context.WithTimeout(ctx, l.cfg.MaxWait)
	defer cancel()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if l.redisAvailable.Load() {
			if err := pl.preFilter.Wait(ctx); err != nil {
				return err
			}

			res, err := pl.distributed.Allow(ctx, l.cfg.KeyPrefix+pl.name, redis_rate.PerSecond(pl.perSecond))
			switch {
			case err != nil:
				if ctx.Err() != nil {
					return ctx.Err()
				}
				l.redisAvailable.Store(false)
				if !l.cfg.EnableLocalFallback {
					return fmt.Errorf("redis rate limiter unavailable: %w", err)
				}
				logger.Warn("Redis rate limiter error, falling back to local",
					zap.String("provider", pl.name),
					zap.Error(err))
			case res.Allowed > 0:
				return nil
			default:
				// 50-150% of RetryAfter spreads out competing processes
				jitter := time.Duration(float64(res.RetryAfter) * (0.5 + rand.Float64())) //nolint:gosec,G404
				logger.Debug("Provider quota exhausted, waiting",
					zap.String("provider", pl.name),
					zap.Duration("retryAfter", res.RetryAfter))
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-l.clock.After(jitter):
				}
				continue
			}
		}

		if l.cfg.EnableLocalFallback {
			return pl.local.Wait(ctx)
		}

		// Redis is down without fallback: wait for the health check to restore it
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.clock.After(100 * time.Millisecond):
		}
	}
}

// monitorRedisHealth periodically pings redis and restores distributed limiting
func (l *limiter) monitorRedisHealth() {
	ticker := l.clock.NewTicker(l.cfg.HealthCheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-l.done:
			return
		case <-ticker.C:
		}

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		err := l.redis.Ping(ctx)
		cancel()

		available := err == nil
		if was := l.redisAvailable.Swap(available); !was && available {
			logger.Info("Redis connection restored, using distributed rate limits")
		}
	}
}

// Close stops the health check and closes redis
func (l *limiter) Close() error {
	var err error
	l.closeOnce.Do(func() {
		close(l.done)
		if closeErr := l.redis.Close(); closeErr != nil {
			logger.Warn("Error closing Redis connection", zap.Error(closeErr))
			err = closeErr
		}
	})
	return err
}
