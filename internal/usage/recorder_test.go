package usage_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadforge/contact-cache/internal/domain"
	"github.com/leadforge/contact-cache/internal/mocks"
	"github.com/leadforge/contact-cache/internal/store"
	"github.com/leadforge/contact-cache/internal/store/schema"
	"github.com/leadforge/contact-cache/internal/usage"
)

type testRecorderMocks struct {
	ctrl      *gomock.Controller
	store     *mocks.MockStore
	publisher *mocks.MockPublisher
	clock     *mocks.MockClock
	recorder  usage.Recorder
}

var testPricing = usage.Pricing{
	CreditsPerFreshLookup: 1,
	ProviderCosts:         map[string]domain.Money{"hunter": domain.MustMoney("0.049")},
}

func setupTestRecorder(t *testing.T) *testRecorderMocks {
	ctrl := gomock.NewController(t)
	tm := &testRecorderMocks{
		ctrl:      ctrl,
		store:     mocks.NewMockStore(ctrl),
		publisher: mocks.NewMockPublisher(ctrl),
		clock:     mocks.NewMockClock(ctrl),
	}
	tm.clock.EXPECT().Now().Return(time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)).AnyTimes()
	tm.recorder = usage.NewRecorder(tm.store, tm.publisher, tm.clock, testPricing)
	return tm
}

func testEntry() *schema.CacheEntry {
	return &schema.CacheEntry{
		ID:               uuid.New(),
		EstimatedAPICost: domain.MustMoney("0.049"),
	}
}

func TestPricing_CostOf(t *testing.T) {
	assert.Equal(t, "0.049", testPricing.CostOf("hunter").String())
	assert.True(t, testPricing.CostOf("unknown").IsZero())
}

func TestRecord_CacheHitFirstResolution(t *testing.T) {
	tm := setupTestRecorder(t)
	entry := testEntry()
	jobID := "job-1"

	history := &schema.UserContactHistory{ID: 7, UserID: "user-2", CacheEntryID: entry.ID}
	tm.store.EXPECT().
		RecordUsage(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, in store.RecordUsageInput) (*store.RecordUsageResult, error) {
			assert.Equal(t, "user-2", in.UserID)
			assert.Equal(t, entry.ID, in.CacheEntryID)
			assert.Equal(t, domain.SourceTypeGlobalCache, in.SourceType)
			assert.Equal(t, 0, in.CreditsCharged)
			assert.True(t, in.ActualCost.IsZero())
			assert.Equal(t, "0.049", in.SavingsAmount.String())
			return &store.RecordUsageResult{History: history, FirstResolution: true}, nil
		})
	tm.publisher.EXPECT().
		PublishUsage(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event *domain.UsageEvent) error {
			assert.Len(t, event.ID, 26)
			assert.Equal(t, domain.SourceTypeGlobalCache, event.SourceType)
			assert.True(t, event.Cached)
			assert.Equal(t, &jobID, event.JobID)
			assert.Equal(t, entry.ID.String(), event.CacheEntryID)
			return nil
		})

	outcome, err := tm.recorder.Record(context.Background(), usage.Input{
		UserID:      "user-2",
		Entry:       entry,
		WasCacheHit: true,
		JobID:       &jobID,
	})
	require.NoError(t, err)
	assert.True(t, outcome.FirstResolution)
	assert.Equal(t, domain.SourceTypeGlobalCache, outcome.SourceType)
	assert.Equal(t, 0, outcome.CreditsCharged)
	assert.Equal(t, "0.049", outcome.SavingsAmount.String())
	assert.Same(t, history, outcome.History)
}

func TestRecord_SameUserRepeatIsNotCharged(t *testing.T) {
	tm := setupTestRecorder(t)
	entry := testEntry()

	tm.store.EXPECT().
		RecordUsage(gomock.Any(), gomock.Any()).
		Return(&store.RecordUsageResult{History: &schema.UserContactHistory{ResolutionCount: 2}, FirstResolution: false}, nil)
	// no billing notification for a repeat

	outcome, err := tm.recorder.Record(context.Background(), usage.Input{UserID: "user-1", Entry: entry, WasCacheHit: true})
	require.NoError(t, err)
	assert.False(t, outcome.FirstResolution)
	assert.Equal(t, domain.SourceTypeSameUserRepeat, outcome.SourceType)
	assert.Equal(t, 0, outcome.CreditsCharged)
	assert.True(t, outcome.SavingsAmount.IsZero())
	assert.True(t, outcome.ActualCost.IsZero())
}

func TestRecord_FreshLookupChargesCredits(t *testing.T) {
	tm := setupTestRecorder(t)
	entry := testEntry()

	tm.store.EXPECT().
		RecordUsage(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, in store.RecordUsageInput) (*store.RecordUsageResult, error) {
			assert.Equal(t, domain.SourceTypeFreshAPICall, in.SourceType)
			assert.Equal(t, 1, in.CreditsCharged)
			assert.Equal(t, "0.1", in.ActualCost.String())
			assert.True(t, in.SavingsAmount.IsZero())
			return &store.RecordUsageResult{History: &schema.UserContactHistory{}, FirstResolution: true}, nil
		})
	tm.publisher.EXPECT().PublishUsage(gomock.Any(), gomock.Any()).Return(nil)

	outcome, err := tm.recorder.Record(context.Background(), usage.Input{
		UserID:       "user-1",
		Entry:        entry,
		ProviderCost: domain.MustMoney("0.1"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, outcome.CreditsCharged)
}

func TestRecord_PublishFailureDoesNotFail(t *testing.T) {
	tm := setupTestRecorder(t)

	tm.store.EXPECT().
		RecordUsage(gomock.Any(), gomock.Any()).
		Return(&store.RecordUsageResult{History: &schema.UserContactHistory{}, FirstResolution: true}, nil)
	tm.publisher.EXPECT().PublishUsage(gomock.Any(), gomock.Any()).Return(errors.New("nats: timeout"))

	outcome, err := tm.recorder.Record(context.Background(), usage.Input{UserID: "user-1", Entry: testEntry(), WasCacheHit: true})
	require.NoError(t, err)
	assert.True(t, outcome.FirstResolution)
}

func TestRecord_StoreErrorFails(t *testing.T) {
	tm := setupTestRecorder(t)

	tm.store.EXPECT().
		RecordUsage(gomock.Any(), gomock.Any()).
		Return(nil, domain.ErrStoreUnavailable)

	_, err := tm.recorder.Record(context.Background(), usage.Input{UserID: "user-1", Entry: testEntry(), WasCacheHit: true})
	assert.True(t, errors.Is(err, domain.ErrStoreUnavailable))

	_, err = tm.recorder.Record(context.Background(), usage.Input{UserID: "user-1"})
	assert.Error(t, err)
}

func TestRecordFresh(t *testing.T) {
	tm := setupTestRecorder(t)
	entry := testEntry()

	tm.publisher.EXPECT().
		PublishUsage(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event *domain.UsageEvent) error {
			assert.Equal(t, domain.SourceTypeFreshAPICall, event.SourceType)
			assert.False(t, event.Cached)
			assert.Equal(t, 1, event.CreditsCharged)
			assert.Equal(t, "creator", event.UserID)
			return nil
		})

	outcome := tm.recorder.RecordFresh(context.Background(), &store.InsertCacheEntryResult{
		Entry: entry,
		History: &schema.UserContactHistory{
			UserID:         "creator",
			CacheEntryID:   entry.ID,
			CreditsCharged: 1,
			ActualCost:     domain.MustMoney("0.049"),
		},
	})
	assert.Equal(t, domain.SourceTypeFreshAPICall, outcome.SourceType)
	assert.Equal(t, "0.049", outcome.ActualCost.String())
}

func TestRecord_NilPublisher(t *testing.T) {
	ctrl := gomock.NewController(t)
	st := mocks.NewMockStore(ctrl)
	st.EXPECT().
		RecordUsage(gomock.Any(), gomock.Any()).
		Return(&store.RecordUsageResult{History: &schema.UserContactHistory{}, FirstResolution: true}, nil)

	r := usage.NewRecorder(st, nil, mocks.NewMockClock(ctrl), testPricing)
	_, err := r.Record(context.Background(), usage.Input{UserID: "u", Entry: testEntry(), WasCacheHit: true})
	assert.NoError(t, err)
}

func TestRecord_ConflictLoserSavingsAreNetOfItsCall(t *testing.T) {
	tests := []struct {
		name         string
		providerCost string
		wantSavings  string
	}{
		{name: "same provider", providerCost: "0.049", wantSavings: "0.000"},
		{name: "cheaper provider", providerCost: "0.02", wantSavings: "0.029"},
		{name: "pricier provider", providerCost: "0.1", wantSavings: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := setupTestRecorder(t)
			entry := testEntry()

			tm.store.EXPECT().
				RecordUsage(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, in store.RecordUsageInput) (*store.RecordUsageResult, error) {
					assert.Equal(t, domain.SourceTypeGlobalCache, in.SourceType)
					assert.Equal(t, 0, in.CreditsCharged)
					assert.Equal(t, tt.providerCost, in.ActualCost.String())
					assert.Equal(t, tt.wantSavings, in.SavingsAmount.String())
					return &store.RecordUsageResult{History: &schema.UserContactHistory{}, FirstResolution: true}, nil
				})
			tm.publisher.EXPECT().PublishUsage(gomock.Any(), gomock.Any()).Return(nil)

			outcome, err := tm.recorder.Record(context.Background(), usage.Input{
				UserID:       "loser",
				Entry:        entry,
				WasCacheHit:  true,
				ProviderCost: domain.MustMoney(tt.providerCost),
			})
			require.NoError(t, err)
			assert.Equal(t, tt.wantSavings, outcome.SavingsAmount.String())
			assert.Equal(t, tt.providerCost, outcome.ActualCost.String())
		})
	}
}

func TestRecordUncached(t *testing.T) {
	tm := setupTestRecorder(t)
	jobID, contactID := "job-3", "row-1"

	tm.publisher.EXPECT().
		PublishUsage(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event *domain.UsageEvent) error {
			assert.Equal(t, domain.SourceTypeFreshAPICall, event.SourceType)
			assert.False(t, event.Cached)
			assert.Empty(t, event.CacheEntryID)
			assert.Equal(t, 1, event.CreditsCharged)
			assert.Equal(t, "0.049", event.ActualCost.String())
			assert.Equal(t, "user-1", event.UserID)
			assert.Equal(t, &jobID, event.JobID)
			assert.Equal(t, &contactID, event.ContactID)
			return nil
		})
	// no store access: there is no entry to attach history to

	outcome := tm.recorder.RecordUncached(context.Background(), usage.Input{
		UserID:       "user-1",
		ProviderCost: domain.MustMoney("0.049"),
		JobID:        &jobID,
		ContactID:    &contactID,
	})
	assert.Equal(t, domain.SourceTypeFreshAPICall, outcome.SourceType)
	assert.Equal(t, 1, outcome.CreditsCharged)
	assert.Equal(t, "0.049", outcome.ActualCost.String())
	assert.True(t, outcome.SavingsAmount.IsZero())
	assert.True(t, outcome.FirstResolution)
	assert.Nil(t, outcome.History)
}
