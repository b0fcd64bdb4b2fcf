package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAPIConfig(t *testing.T) {
	tests := []struct {
		name        string
		configFile  string
		expectError bool
		validate    func(*testing.T, *APIConfig)
	}{
		{
			name: "valid config file",
			configFile: `
debug: true
sentry_dsn: "https://sentry.example.com"
server:
  host: 127.0.0.1
  port: 9090
database:
  host: localhost
  port: 5433
  read_host: replica
  user: testuser
  password: testpass
  dbname: testdb
  conn_max_lifetime: 1h
nats:
  url: "nats://localhost:4222"
  stream_name: "USAGE"
redis:
  addr: "localhost:6379"
auth:
  api_keys: ["k1", "k2"]
providers:
  order: ["anymail"]
  anymail:
    enabled: true
    api_key: secret
    cost: "0.25"
pricing:
  credits_per_fresh_lookup: 3
`,
			validate: func(t *testing.T, cfg *APIConfig) {
				assert.True(t, cfg.Debug)
				assert.Equal(t, "https://sentry.example.com", cfg.SentryDSN)
				assert.Equal(t, "127.0.0.1", cfg.Server.Host)
				assert.Equal(t, 9090, cfg.Server.Port)
				assert.Equal(t, 5433, cfg.Database.Port)
				assert.Equal(t, "replica", cfg.Database.ReadHost)
				assert.Equal(t, time.Hour, cfg.Database.ConnMaxLifetime)
				assert.Equal(t, "USAGE", cfg.NATS.StreamName)
				assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
				assert.Equal(t, []string{"k1", "k2"}, cfg.Auth.APIKeys)
				assert.Equal(t, []string{"anymail"}, cfg.Providers.Order)
				assert.True(t, cfg.Providers.Anymail.Enabled)
				assert.Equal(t, "secret", cfg.Providers.Anymail.APIKey)
				assert.Equal(t, "0.25", cfg.Providers.Anymail.Cost)
				assert.Equal(t, 3, cfg.Pricing.CreditsPerFreshLookup)
			},
		},
		{
			name: "config with defaults",
			configFile: `
database:
  host: localhost
  dbname: testdb
`,
			validate: func(t *testing.T, cfg *APIConfig) {
				assert.Equal(t, "0.0.0.0", cfg.Server.Host)
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, 5432, cfg.Database.Port)
				assert.Equal(t, "disable", cfg.Database.SSLMode)
				assert.Equal(t, "BILLING_USAGE", cfg.NATS.StreamName)
				assert.Equal(t, "billing.usage", cfg.NATS.SubjectPrefix)
				assert.Equal(t, 2*time.Second, cfg.NATS.ReconnectWait)
				assert.Equal(t, "contact-enrichment", cfg.Temporal.EnrichTaskQueue)
				assert.Equal(t, []string{"hunter", "anymail"}, cfg.Providers.Order)
				assert.Equal(t, "0.049", cfg.Providers.Hunter.Cost)
				assert.Equal(t, 15, cfg.Providers.Hunter.RequestsPerSecond)
				assert.Equal(t, 1, cfg.Pricing.CreditsPerFreshLookup)
			},
		},
		{
			name:       "missing config file",
			configFile: "",
		},
		{
			name: "invalid port",
			configFile: `
database:
  host: localhost
  port: invalid
`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			configFile := filepath.Join(tmpDir, "nonexistent.yaml")
			if tt.configFile != "" {
				configFile = filepath.Join(tmpDir, "config.yaml")
				require.NoError(t, os.WriteFile(configFile, []byte(tt.configFile), 0600))
			}

			cfg, err := LoadAPIConfig(configFile, tmpDir)

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, cfg)
			if tt.validate != nil {
				tt.validate(t, cfg)
			}
		})
	}
}

func TestLoadWorkerEnrichConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		tmpDir := t.TempDir()
		configFile := filepath.Join(tmpDir, "config.yaml")
		require.NoError(t, os.WriteFile(configFile, []byte(`
database:
  host: db
  dbname: contacts
temporal:
  enrich_task_queue: custom-queue
`), 0600))

		cfg, err := LoadWorkerEnrichConfig(configFile, tmpDir)
		require.NoError(t, err)
		assert.Equal(t, "custom-queue", cfg.Temporal.EnrichTaskQueue)
		assert.Equal(t, 20, cfg.Temporal.MaxConcurrentActivityExecutionSize)
		assert.Equal(t, 16, cfg.Worker.WorkerPoolSize)
		assert.Equal(t, 100, cfg.ChunkSize)
		assert.Equal(t, 4, cfg.MaxParallelChunks)
	})

	t.Run("database host required", func(t *testing.T) {
		tmpDir := t.TempDir()
		configFile := filepath.Join(tmpDir, "config.yaml")
		require.NoError(t, os.WriteFile(configFile, []byte("database:\n  dbname: contacts\n"), 0600))

		cfg, err := LoadWorkerEnrichConfig(configFile, tmpDir)
		assert.EqualError(t, err, "database.host is required")
		assert.Nil(t, cfg)
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "testuser",
		Password: "p@ssw0rd!",
		DBName:   "testdb",
		SSLMode:  "disable",
	}
	assert.Equal(t, "host=localhost port=5432 user=testuser password=p@ssw0rd! dbname=testdb sslmode=disable", cfg.DSN())
	assert.Empty(t, cfg.ReadDSN())

	cfg.ReadHost = "replica"
	assert.Equal(t, "host=replica port=5432 user=testuser password=p@ssw0rd! dbname=testdb sslmode=disable", cfg.ReadDSN())

	cfg.ReadPort = 6432
	assert.Equal(t, "host=replica port=6432 user=testuser password=p@ssw0rd! dbname=testdb sslmode=disable", cfg.ReadDSN())
}

func TestConfigWithEnvironmentVariables(t *testing.T) {
	tmpDir := t.TempDir()

	envDir := filepath.Join(tmpDir, "env")
	require.NoError(t, os.MkdirAll(envDir, 0750))

	envContent := `CONTACT_CACHE_DEBUG=true
CONTACT_CACHE_DATABASE_HOST=env-host
CONTACT_CACHE_DATABASE_PORT=6543
CONTACT_CACHE_PROVIDERS_HUNTER_API_KEY=env-hunter-key
`
	require.NoError(t, os.WriteFile(filepath.Join(envDir, ".env"), []byte(envContent), 0600))
	t.Cleanup(func() {
		for _, k := range []string{
			"CONTACT_CACHE_DEBUG",
			"CONTACT_CACHE_DATABASE_HOST",
			"CONTACT_CACHE_DATABASE_PORT",
			"CONTACT_CACHE_PROVIDERS_HUNTER_API_KEY",
		} {
			_ = os.Unsetenv(k)
		}
	})

	configPath := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(`
debug: false
database:
  host: file-host
  port: 5432
  dbname: file-db
`), 0600))

	cfg, err := LoadAPIConfig(configPath, envDir)
	require.NoError(t, err)

	// .env values are loaded into the process environment and win over the file
	assert.True(t, cfg.Debug)
	assert.Equal(t, "env-host", cfg.Database.Host)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Equal(t, "file-db", cfg.Database.DBName)
	assert.Equal(t, "env-hunter-key", cfg.Providers.Hunter.APIKey)
}
