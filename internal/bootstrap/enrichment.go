package bootstrap

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/leadforge/contact-cache/internal/adapter"
	"github.com/leadforge/contact-cache/internal/config"
	"github.com/leadforge/contact-cache/internal/domain"
	"github.com/leadforge/contact-cache/internal/enricher"
	"github.com/leadforge/contact-cache/internal/logger"
	"github.com/leadforge/contact-cache/internal/messaging"
	"github.com/leadforge/contact-cache/internal/metrics"
	"github.com/leadforge/contact-cache/internal/providers/jetstream"
	"github.com/leadforge/contact-cache/internal/providers/provider"
	"github.com/leadforge/contact-cache/internal/providers/vendors/anymail"
	"github.com/leadforge/contact-cache/internal/providers/vendors/hunter"
	"github.com/leadforge/contact-cache/internal/ratelimit"
	"github.com/leadforge/contact-cache/internal/resolver"
	"github.com/leadforge/contact-cache/internal/store"
	"github.com/leadforge/contact-cache/internal/usage"
)

// Config holds everything the enrichment stack needs, shared by the API and worker-enrich
type Config struct {
	Database         config.DatabaseConfig
	NATS             config.NATSConfig
	Redis            config.RedisConfig
	RateLimit        config.RateLimiterConfig
	Providers        config.ProvidersConfig
	Pricing          config.PricingConfig
	BatchConcurrency int
}

// Enrichment is the wired enrichment stack of one process
type Enrichment struct {
	Store      store.Store
	Resolver   resolver.Resolver
	Enricher   enricher.Enricher
	Aggregator metrics.Aggregator
	Recorder   *metrics.Recorder
	Clock      adapter.Clock

	limiter   ratelimit.Limiter
	publisher messaging.Publisher
}

// NewEnrichment connects to the database, redis and NATS and wires the enrichment stack.
// NATS is optional: without a URL, billing notifications are disabled.
func NewEnrichment(ctx context.Context, cfg Config, reg *prometheus.Registry) (*Enrichment, error) {
	clock := adapter.NewClock()
	jsonAdapter := adapter.NewJSON()
	recorder := metrics.NewRecorder(reg)

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := store.RegisterReadReplica(db, cfg.Database.ReadDSN()); err != nil {
		return nil, err
	}
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		return nil, fmt.Errorf("failed to configure connection pool: %w", err)
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Bool("readReplica", cfg.Database.ReadHost != ""),
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns))

	dataStore := store.NewPGStore(db)

	providers, limits, pricing, err := buildProviders(cfg.Providers, cfg.Pricing, jsonAdapter)
	if err != nil {
		return nil, err
	}

	redisClient := adapter.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	limiter, err := ratelimit.NewLimiter(cfg.RateLimit, limits, redisClient, clock)
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limiter: %w", err)
	}

	var publisher messaging.Publisher
	if cfg.NATS.URL != "" {
		publisher, err = jetstream.NewPublisher(ctx, jetstream.Config{
			URL:            cfg.NATS.URL,
			StreamName:     cfg.NATS.StreamName,
			SubjectPrefix:  cfg.NATS.SubjectPrefix,
			MaxReconnects:  cfg.NATS.MaxReconnects,
			ReconnectWait:  cfg.NATS.ReconnectWait,
			ConnectionName: cfg.NATS.ConnectionName,
		}, adapter.NewNatsJetStream(), jsonAdapter)
		if err != nil {
			_ = limiter.Close()
			return nil, fmt.Errorf("failed to create billing publisher: %w", err)
		}
		logger.InfoCtx(ctx, "Connected to NATS JetStream", zap.String("stream", cfg.NATS.StreamName))
	} else {
		logger.WarnCtx(ctx, "NATS URL not configured, billing notifications are disabled")
	}

	usageRecorder := usage.NewRecorder(dataStore, publisher, clock, pricing)
	aggregator := metrics.NewAggregator(dataStore)
	res := resolver.NewResolver(dataStore, usageRecorder, recorder)
	chain := provider.NewChain(providers, limiter, clock, recorder)
	enr := enricher.NewEnricher(
		enricher.Config{BatchConcurrency: cfg.BatchConcurrency},
		res, dataStore, chain, usageRecorder, aggregator, recorder, clock)

	logger.InfoCtx(ctx, "Enrichment stack ready", zap.String("providers", chain.Name()))

	return &Enrichment{
		Store:      dataStore,
		Resolver:   res,
		Enricher:   enr,
		Aggregator: aggregator,
		Recorder:   recorder,
		Clock:      clock,
		limiter:    limiter,
		publisher:  publisher,
	}, nil
}

// Close waits for running batches and releases connections
func (e *Enrichment) Close() {
	e.Enricher.Close()
	if e.publisher != nil {
		e.publisher.Close()
	}
	if err := e.limiter.Close(); err != nil {
		logger.Warn("Failed to close rate limiter", zap.Error(err))
	}
}

// buildProviders creates the enabled providers in configured order with their rate limits and costs
func buildProviders(cfg config.ProvidersConfig, pricingCfg config.PricingConfig, jsonAdapter adapter.JSON) ([]provider.Provider, map[string]int, usage.Pricing, error) {
	httpClient := adapter.NewHTTPClient(cfg.HTTPTimeout)
	pricing := usage.Pricing{
		CreditsPerFreshLookup: pricingCfg.CreditsPerFreshLookup,
		ProviderCosts:         make(map[string]domain.Money),
	}
	limits := make(map[string]int)

	var providers []provider.Provider
	for _, name := range cfg.Order {
		var pc config.ProviderConfig
		switch name {
		case hunter.PROVIDER_NAME:
			pc = cfg.Hunter
		case anymail.PROVIDER_NAME:
			pc = cfg.Anymail
		default:
			return nil, nil, pricing, fmt.Errorf("unknown provider: %s", name)
		}
		if !pc.Enabled {
			continue
		}

		cost, err := domain.NewMoney(pc.Cost)
		if err != nil {
			return nil, nil, pricing, fmt.Errorf("provider %s: invalid cost %q: %w", name, pc.Cost, err)
		}

		switch name {
		case hunter.PROVIDER_NAME:
			providers = append(providers, hunter.NewClient(httpClient, pc.URL, pc.APIKey, cost, jsonAdapter))
		case anymail.PROVIDER_NAME:
			providers = append(providers, anymail.NewClient(httpClient, pc.URL, pc.APIKey, cost, jsonAdapter))
		}
		pricing.ProviderCosts[name] = cost
		limits[name] = pc.RequestsPerSecond
	}

	if len(providers) == 0 {
		return nil, nil, pricing, fmt.Errorf("no enrichment provider enabled")
	}

	return providers, limits, pricing, nil
}
