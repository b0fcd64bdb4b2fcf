package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const ENV_PREFIX = "CONTACT_CACHE"

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadHost        string        `mapstructure:"read_host"`
	ReadPort        int           `mapstructure:"read_port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`  // e.g. "5m", "1h"
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"` // e.g. "10m"
}

// NATSConfig holds NATS JetStream configuration for billing notifications
type NATSConfig struct {
	URL            string        `mapstructure:"url"`
	StreamName     string        `mapstructure:"stream_name"`
	SubjectPrefix  string        `mapstructure:"subject_prefix"`
	MaxReconnects  int           `mapstructure:"max_reconnects"`
	ReconnectWait  time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName string        `mapstructure:"connection_name"`
}

// RedisConfig holds the redis connection used by the distributed rate limiter
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// RateLimiterConfig holds provider rate limiting settings shared by every process
type RateLimiterConfig struct {
	KeyPrefix               string        `mapstructure:"key_prefix"`
	MaxWait                 time.Duration `mapstructure:"max_wait"`
	EnableLocalFallback     bool          `mapstructure:"enable_local_fallback"`
	LocalFallbackMultiplier float64       `mapstructure:"local_fallback_multiplier"`
	HealthCheckInterval     time.Duration `mapstructure:"health_check_interval"`
}

// TemporalConfig holds Temporal configuration
type TemporalConfig struct {
	HostPort                           string  `mapstructure:"host_port"`
	Namespace                          string  `mapstructure:"namespace"`
	EnrichTaskQueue                    string  `mapstructure:"enrich_task_queue"`
	MaxConcurrentActivityExecutionSize int     `mapstructure:"max_concurrent_activity_execution_size"`
	WorkerActivitiesPerSecond          float64 `mapstructure:"worker_activities_per_second"`
	MaxConcurrentActivityTaskPollers   int     `mapstructure:"max_concurrent_activity_task_pollers"`
}

// ProviderConfig holds a single enrichment provider's settings
type ProviderConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	URL     string `mapstructure:"url"`
	APIKey  string `mapstructure:"api_key"`
	// Cost is the price of one lookup in USD, as a decimal string ("0.049")
	Cost string `mapstructure:"cost"`
	// RequestsPerSecond is the provider's documented rate limit
	RequestsPerSecond int `mapstructure:"requests_per_second"`
}

// ProvidersConfig holds the configured enrichment providers in call order
type ProvidersConfig struct {
	Order       []string       `mapstructure:"order"`
	HTTPTimeout time.Duration  `mapstructure:"http_timeout"`
	Hunter      ProviderConfig `mapstructure:"hunter"`
	Anymail     ProviderConfig `mapstructure:"anymail"`
}

// PricingConfig holds credit pricing for users
type PricingConfig struct {
	CreditsPerFreshLookup int `mapstructure:"credits_per_fresh_lookup"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds

	// AllowedOrigins restricts CORS; empty allows every origin
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTPublicKey string   `mapstructure:"jwt_public_key"`
	APIKeys      []string `mapstructure:"api_keys"`
}

// WorkerConfig holds in-process worker pool configuration
type WorkerConfig struct {
	WorkerPoolSize  int `mapstructure:"pool_size"`
	WorkerQueueSize int `mapstructure:"queue_size"`
}

// APIConfig holds configuration for API server
type APIConfig struct {
	BaseConfig `mapstructure:",squash"`
	Server     ServerConfig      `mapstructure:"server"`
	Database   DatabaseConfig    `mapstructure:"database"`
	Temporal   TemporalConfig    `mapstructure:"temporal"`
	NATS       NATSConfig        `mapstructure:"nats"`
	Redis      RedisConfig       `mapstructure:"redis"`
	RateLimit  RateLimiterConfig `mapstructure:"rate_limit"`
	Auth       AuthConfig        `mapstructure:"auth"`
	Providers  ProvidersConfig   `mapstructure:"providers"`
	Pricing    PricingConfig     `mapstructure:"pricing"`
	Worker     WorkerConfig      `mapstructure:"worker"`
}

// WorkerEnrichConfig holds configuration for worker-enrich
type WorkerEnrichConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig    `mapstructure:"database"`
	Temporal   TemporalConfig    `mapstructure:"temporal"`
	NATS       NATSConfig        `mapstructure:"nats"`
	Redis      RedisConfig       `mapstructure:"redis"`
	RateLimit  RateLimiterConfig `mapstructure:"rate_limit"`
	Providers  ProvidersConfig   `mapstructure:"providers"`
	Pricing    PricingConfig     `mapstructure:"pricing"`
	Worker     WorkerConfig      `mapstructure:"worker"`

	// ChunkSize is the number of contacts handled per enrichment activity
	ChunkSize int `mapstructure:"chunk_size"`
	// MaxParallelChunks bounds the chunk activities one import job runs at once
	MaxParallelChunks int `mapstructure:"max_parallel_chunks"`
}

// LoadAPIConfig loads configuration for API server
func LoadAPIConfig(configFile string, envPath string) (*APIConfig, error) {
	v := configureViper("api", configFile, envPath)

	setCommonDefaults(v)
	v.SetDefault("debug", false)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 30)
	v.SetDefault("server.idle_timeout", 120)
	v.SetDefault("worker.pool_size", 8)
	v.SetDefault("worker.queue_size", 256)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var config APIConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// LoadWorkerEnrichConfig loads configuration for worker-enrich
func LoadWorkerEnrichConfig(configFile string, envPath string) (*WorkerEnrichConfig, error) {
	v := configureViper("worker-enrich", configFile, envPath)

	setCommonDefaults(v)
	v.SetDefault("temporal.max_concurrent_activity_execution_size", 20)
	v.SetDefault("temporal.worker_activities_per_second", 20)
	v.SetDefault("temporal.max_concurrent_activity_task_pollers", 4)
	v.SetDefault("worker.pool_size", 16)
	v.SetDefault("worker.queue_size", 1024)
	v.SetDefault("chunk_size", 100)
	v.SetDefault("max_parallel_chunks", 4)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg WorkerEnrichConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Database.Host == "" {
		return nil, errors.New("database.host is required")
	}
	if cfg.Database.DBName == "" {
		return nil, errors.New("database.dbname is required")
	}

	return &cfg, nil
}

func setCommonDefaults(v *viper.Viper) {
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.stream_name", "BILLING_USAGE")
	v.SetDefault("nats.subject_prefix", "billing.usage")
	v.SetDefault("redis.db", 0)
	v.SetDefault("rate_limit.key_prefix", "contact-cache:limiter:")
	v.SetDefault("rate_limit.max_wait", "30s")
	v.SetDefault("rate_limit.enable_local_fallback", true)
	v.SetDefault("rate_limit.local_fallback_multiplier", 0.5)
	v.SetDefault("rate_limit.health_check_interval", "10s")
	v.SetDefault("temporal.host_port", "localhost:7233")
	v.SetDefault("temporal.namespace", "default")
	v.SetDefault("temporal.enrich_task_queue", "contact-enrichment")
	v.SetDefault("providers.order", []string{"hunter", "anymail"})
	v.SetDefault("providers.http_timeout", "15s")
	v.SetDefault("providers.hunter.enabled", true)
	v.SetDefault("providers.hunter.url", "https://api.hunter.io/v2")
	v.SetDefault("providers.hunter.cost", "0.049")
	v.SetDefault("providers.hunter.requests_per_second", 15)
	v.SetDefault("providers.anymail.enabled", true)
	v.SetDefault("providers.anymail.url", "https://api.anymailfinder.com/v5.1")
	v.SetDefault("providers.anymail.cost", "0.1")
	v.SetDefault("providers.anymail.requests_per_second", 10)
	v.SetDefault("pricing.credits_per_fresh_lookup", 1)
}

// readConfig reads the config file; a missing file falls back to environment variables
func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		var pathErr *os.PathError
		if errors.As(err, &pathErr) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	loadEnv(envPath, service)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		v.AddConfigPath("config/")
	}

	v.SetEnvPrefix(ENV_PREFIX)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables
// This is required for viper to map env vars to config struct fields when no config file exists
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		// Database
		"database.host",
		"database.port",
		"database.read_host",
		"database.read_port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// NATS
		"nats.url",
		"nats.stream_name",
		"nats.subject_prefix",
		"nats.max_reconnects",
		"nats.reconnect_wait",
		"nats.connection_name",
		// Redis
		"redis.addr",
		"redis.password",
		"redis.db",
		// Rate limiting
		"rate_limit.key_prefix",
		"rate_limit.max_wait",
		"rate_limit.enable_local_fallback",
		"rate_limit.local_fallback_multiplier",
		"rate_limit.health_check_interval",
		// Temporal
		"temporal.host_port",
		"temporal.namespace",
		"temporal.enrich_task_queue",
		"temporal.max_concurrent_activity_execution_size",
		"temporal.worker_activities_per_second",
		"temporal.max_concurrent_activity_task_pollers",
		// Providers
		"providers.order",
		"providers.http_timeout",
		"providers.hunter.enabled",
		"providers.hunter.url",
		"providers.hunter.api_key",
		"providers.hunter.cost",
		"providers.hunter.requests_per_second",
		"providers.anymail.enabled",
		"providers.anymail.url",
		"providers.anymail.api_key",
		"providers.anymail.cost",
		"providers.anymail.requests_per_second",
		// Pricing
		"pricing.credits_per_fresh_lookup",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		"server.allowed_origins",
		// Auth
		"auth.jwt_public_key",
		"auth.api_keys",
		// Worker
		"worker.pool_size",
		"worker.queue_size",
		"chunk_size",
		"max_parallel_chunks",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		_ = godotenv.Overload(filepath.Join(envPath, envFile))
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// ReadDSN returns the read-replica connection string, or "" when no replica is configured.
// If ReadPort is not configured, it falls back to Port.
func (c *DatabaseConfig) ReadDSN() string {
	if c.ReadHost == "" {
		return ""
	}
	port := c.ReadPort
	if port == 0 {
		port = c.Port
	}

	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.ReadHost, port, c.User, c.Password, c.DBName, c.SSLMode)
}
