package resolver_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadforge/contact-cache/internal/domain"
	"github.com/leadforge/contact-cache/internal/fingerprint"
	"github.com/leadforge/contact-cache/internal/metrics"
	"github.com/leadforge/contact-cache/internal/mocks"
	"github.com/leadforge/contact-cache/internal/resolver"
	"github.com/leadforge/contact-cache/internal/store"
	"github.com/leadforge/contact-cache/internal/store/schema"
	"github.com/leadforge/contact-cache/internal/usage"
)

type testResolverMocks struct {
	ctrl     *gomock.Controller
	store    *mocks.MockStore
	usage    *mocks.MockUsageRecorder
	resolver resolver.Resolver
}

func setupTestResolver(t *testing.T) *testResolverMocks {
	ctrl := gomock.NewController(t)
	tm := &testResolverMocks{
		ctrl:  ctrl,
		store: mocks.NewMockStore(ctrl),
		usage: mocks.NewMockUsageRecorder(ctrl),
	}
	tm.resolver = resolver.NewResolver(tm.store, tm.usage, metrics.NewRecorder(nil))
	return tm
}

var acme = domain.Contact{FirstName: "John", LastName: "Smith", Company: "Acme Inc"}

func TestResolve_Hit(t *testing.T) {
	tm := setupTestResolver(t)
	entry := &schema.CacheEntry{ID: uuid.New(), EstimatedAPICost: domain.MustMoney("0.049")}
	matched := domain.Fingerprint{Type: domain.FingerprintTypeStandard, Value: "JOHN|SMITH|ACME INC"}
	jobID := "job-9"

	gomock.InOrder(
		tm.store.EXPECT().
			FindCacheEntry(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fps []domain.Fingerprint) (*store.FindResult, error) {
				require.Len(t, fps, 3)
				assert.Equal(t, matched, fps[0])
				return &store.FindResult{Entry: entry, MatchedBy: matched}, nil
			}),
		tm.usage.EXPECT().
			Record(gomock.Any(), usage.Input{UserID: "user-2", Entry: entry, WasCacheHit: true, JobID: &jobID}).
			Return(&usage.Outcome{SourceType: domain.SourceTypeGlobalCache, FirstResolution: true}, nil),
	)

	res, err := tm.resolver.Resolve(context.Background(), resolver.Request{Contact: acme, UserID: "user-2", JobID: &jobID})
	require.NoError(t, err)
	assert.True(t, res.Hit())
	assert.Equal(t, resolver.CacheHit, res.Outcome)
	assert.Same(t, entry, res.Entry.Entry)
	assert.Equal(t, domain.SourceTypeGlobalCache, res.Usage.SourceType)
}

func TestResolve_MissHasNoSideEffects(t *testing.T) {
	tm := setupTestResolver(t)
	tm.store.EXPECT().FindCacheEntry(gomock.Any(), gomock.Any()).Return(nil, nil)
	// no usage expectations: a miss must not record anything

	res, err := tm.resolver.Resolve(context.Background(), resolver.Request{Contact: acme, UserID: "user-1"})
	require.NoError(t, err)
	assert.False(t, res.Hit())
	assert.Equal(t, resolver.CacheMiss, res.Outcome)
	assert.Nil(t, res.Entry)
	require.NotNil(t, res.Fingerprint)
	assert.Equal(t, "ACME INC", res.Fingerprint.Normalized.Company)
}

func TestResolve_ValidationSkipsStore(t *testing.T) {
	tm := setupTestResolver(t)

	_, err := tm.resolver.Resolve(context.Background(), resolver.Request{Contact: domain.Contact{FirstName: " ", Company: "!!"}, UserID: "u"})
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestResolve_StoreUnavailable(t *testing.T) {
	tm := setupTestResolver(t)
	tm.store.EXPECT().FindCacheEntry(gomock.Any(), gomock.Any()).Return(nil, domain.ErrStoreUnavailable)

	_, err := tm.resolver.Resolve(context.Background(), resolver.Request{Contact: acme, UserID: "u"})
	assert.True(t, errors.Is(err, domain.ErrStoreUnavailable))
}

func TestResolve_UsageFailureFailsResolution(t *testing.T) {
	tm := setupTestResolver(t)
	entry := &schema.CacheEntry{ID: uuid.New()}
	tm.store.EXPECT().
		FindCacheEntry(gomock.Any(), gomock.Any()).
		Return(&store.FindResult{Entry: entry, MatchedBy: domain.Fingerprint{Type: domain.FingerprintTypeDomain}}, nil)
	tm.usage.EXPECT().Record(gomock.Any(), gomock.Any()).Return(nil, domain.ErrStoreUnavailable)

	res, err := tm.resolver.Resolve(context.Background(), resolver.Request{Contact: acme, UserID: "u"})
	assert.Nil(t, res)
	assert.True(t, errors.Is(err, domain.ErrStoreUnavailable))
}

func TestResolveExisting_UsesPrimary(t *testing.T) {
	tm := setupTestResolver(t)
	fp, err := fingerprint.Generate(acme)
	require.NoError(t, err)
	entry := &schema.CacheEntry{ID: uuid.New()}

	tm.store.EXPECT().
		FindCacheEntryOnPrimary(gomock.Any(), fp.Fingerprints).
		Return(&store.FindResult{Entry: entry, MatchedBy: fp.Fingerprints[0]}, nil)
	tm.usage.EXPECT().
		Record(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, in usage.Input) (*usage.Outcome, error) {
			assert.True(t, in.WasCacheHit)
			// the loser already paid for its own provider call
			assert.Equal(t, "0.049", in.ProviderCost.String())
			return &usage.Outcome{SourceType: domain.SourceTypeGlobalCache, FirstResolution: true}, nil
		})

	res, err := tm.resolver.ResolveExisting(context.Background(), resolver.Request{Contact: acme, UserID: "loser"}, fp, domain.MustMoney("0.049"))
	require.NoError(t, err)
	assert.True(t, res.Hit())
	assert.Same(t, entry, res.Entry.Entry)
}

func TestResolveExisting_MissIsInconsistent(t *testing.T) {
	tm := setupTestResolver(t)
	fp, err := fingerprint.Generate(acme)
	require.NoError(t, err)

	tm.store.EXPECT().FindCacheEntryOnPrimary(gomock.Any(), gomock.Any()).Return(nil, nil)

	_, err = tm.resolver.ResolveExisting(context.Background(), resolver.Request{Contact: acme, UserID: "loser"}, fp, domain.Zero())
	assert.True(t, errors.Is(err, domain.ErrCacheInconsistent))

	_, err = tm.resolver.ResolveExisting(context.Background(), resolver.Request{Contact: acme, UserID: "loser"}, nil, domain.Zero())
	assert.True(t, errors.Is(err, domain.ErrValidation))
}
