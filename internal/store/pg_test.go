package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/leadforge/contact-cache/internal/domain"
	"github.com/leadforge/contact-cache/internal/fingerprint"
	"github.com/leadforge/contact-cache/internal/store/schema"
)

var (
	testDB      *gorm.DB
	pgContainer *postgres.PostgresContainer
)

// TestMain starts PostgreSQL (or uses TEST_DB_HOST) and loads db/init_pg_db.sql
func TestMain(m *testing.M) {
	ctx := context.Background()

	dsn, ok := externalTestDSN()
	if !ok {
		var err error
		dsn, err = startTestContainer(ctx)
		if err != nil {
			fmt.Printf("Failed to start PostgreSQL container: %v\n", err)
			os.Exit(1)
		}
	}

	code := func() int {
		defer terminateTestContainer(ctx)

		db, err := gorm.Open(pgdriver.Open(dsn), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		if err != nil {
			fmt.Printf("Failed to connect to database: %v\n", err)
			return 1
		}
		if err := initializeTestDatabase(db); err != nil {
			fmt.Printf("Failed to initialize database: %v\n", err)
			return 1
		}
		testDB = db

		return m.Run()
	}()

	os.Exit(code)
}

// externalTestDSN builds a DSN from TEST_DB_* variables, for CI or a local database
func externalTestDSN() (string, bool) {
	host := os.Getenv("TEST_DB_HOST")
	if host == "" {
		return "", false
	}

	env := func(key, fallback string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return fallback
	}

	fmt.Printf("Using external database: %s\n", host)
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host,
		env("TEST_DB_PORT", "5432"),
		env("TEST_DB_USER", "postgres"),
		env("TEST_DB_PASSWORD", "postgres"),
		env("TEST_DB_NAME", "test_db"),
	), true
}

func startTestContainer(ctx context.Context) (string, error) {
	var err error
	pgContainer, err = postgres.Run(ctx,
		"postgres:18-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		return "", err
	}

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		terminateTestContainer(ctx)
		return "", fmt.Errorf("failed to get connection string: %w", err)
	}

	return dsn, nil
}

func terminateTestContainer(ctx context.Context) {
	if pgContainer == nil {
		return
	}
	if err := pgContainer.Terminate(ctx); err != nil {
		fmt.Printf("Failed to terminate PostgreSQL container: %v\n", err)
	}
	pgContainer = nil
}

// initializeTestDatabase runs the schema initialization
func initializeTestDatabase(db *gorm.DB) error {
	schemaSQL, err := os.ReadFile(filepath.Join("..", "..", "db", "init_pg_db.sql")) //nolint:gosec,G304
	if err != nil {
		return fmt.Errorf("failed to read schema file: %w", err)
	}

	if err := db.Exec(string(schemaSQL)).Error; err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	return nil
}

// initPGTestDB initializes a test database for each test
// Every test runs inside a transaction that is rolled back on cleanup
func initPGTestDB(t *testing.T) Store {
	tx := testDB.Begin()
	require.NotNil(t, tx)
	require.NoError(t, tx.Error)

	t.Cleanup(func() {
		tx.Rollback()
	})

	return NewPGStore(tx)
}

// cleanupPGTestDB is called after each test to clean up
// With transaction-based isolation, this is handled by the t.Cleanup rollback
func cleanupPGTestDB(t *testing.T) {}

// TestPostgreSQLStore runs all store tests against PostgreSQL
func TestPostgreSQLStore(t *testing.T) {
	if testDB == nil {
		t.Fatal("Test database not initialized")
	}

	RunStoreTests(t, initPGTestDB, cleanupPGTestDB)
}

// TestConcurrentInsertSameContact races inserts of one contact outside any test transaction.
// Exactly one insert wins; every loser sees a conflict and recovers by recording a hit.
func TestConcurrentInsertSameContact(t *testing.T) {
	if testDB == nil {
		t.Fatal("Test database not initialized")
	}

	ctx := context.Background()
	store := NewPGStore(testDB)

	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	contact := domain.Contact{FirstName: "Race" + suffix, LastName: "Condition", Company: "Concurrency " + suffix}
	fps := fingerprintsOf(t, contact)

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		winners   []uuid.UUID
		conflicts int
	)

	start := make(chan struct{})
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start

			userID := fmt.Sprintf("racer-%d", i)
			result, err := store.InsertCacheEntry(ctx, buildTestInsert(t, contact, userID, 0.9))
			if err == nil {
				mu.Lock()
				winners = append(winners, result.Entry.ID)
				mu.Unlock()
				return
			}
			if !errors.Is(err, domain.ErrConflict) {
				t.Errorf("unexpected insert error: %v", err)
				return
			}

			found, err := store.FindCacheEntryOnPrimary(ctx, fps)
			if err != nil || found == nil {
				t.Errorf("re-find after conflict failed: %v", err)
				return
			}
			_, err = store.RecordUsage(ctx, RecordUsageInput{
				UserID:        userID,
				CacheEntryID:  found.Entry.ID,
				SourceType:    domain.SourceTypeGlobalCache,
				ActualCost:    domain.Zero(),
				SavingsAmount: found.Entry.EstimatedAPICost,
			})
			if err != nil {
				t.Errorf("record usage after conflict failed: %v", err)
				return
			}

			mu.Lock()
			conflicts++
			mu.Unlock()
		}(i)
	}
	close(start)
	wg.Wait()

	require.Len(t, winners, 1)
	assert.Equal(t, workers-1, conflicts)

	entryID := winners[0]
	t.Cleanup(func() {
		testDB.Where("id = ?", entryID).Delete(&schema.CacheEntry{})
	})

	var entries int64
	require.NoError(t, testDB.Model(&schema.CacheEntry{}).
		Where("normalized_first_name = ?", fingerprintNormalizedFirst(t, contact)).
		Count(&entries).Error)
	assert.Equal(t, int64(1), entries)

	entry, err := store.GetCacheEntry(ctx, entryID)
	require.NoError(t, err)
	assert.Equal(t, workers, entry.TimesUsed)

	var histories int64
	require.NoError(t, testDB.Model(&schema.UserContactHistory{}).
		Where("cache_entry_id = ?", entryID).
		Count(&histories).Error)
	assert.Equal(t, int64(workers), histories)
}

func fingerprintNormalizedFirst(t *testing.T, contact domain.Contact) string {
	fp, err := fingerprint.Generate(contact)
	require.NoError(t, err)
	return fp.Normalized.FirstName
}
