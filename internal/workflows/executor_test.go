package workflows_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/activity"

	"github.com/leadforge/contact-cache/internal/domain"
	"github.com/leadforge/contact-cache/internal/enricher"
	"github.com/leadforge/contact-cache/internal/logger"
	"github.com/leadforge/contact-cache/internal/mocks"
	"github.com/leadforge/contact-cache/internal/usage"
	"github.com/leadforge/contact-cache/internal/workflows"
)

type testExecutorMocks struct {
	ctrl             *gomock.Controller
	enricher         *mocks.MockEnricher
	temporalActivity *mocks.MockActivity
	executor         workflows.Executor
}

func setupTestExecutor(t *testing.T) *testExecutorMocks {
	if err := logger.Initialize(logger.Config{Debug: true}); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	ctrl := gomock.NewController(t)
	tm := &testExecutorMocks{
		ctrl:             ctrl,
		enricher:         mocks.NewMockEnricher(ctrl),
		temporalActivity: mocks.NewMockActivity(ctrl),
	}
	tm.executor = workflows.NewExecutor(tm.enricher, tm.temporalActivity)
	tm.temporalActivity.EXPECT().GetInfo(gomock.Any()).Return(activity.Info{Attempt: 1}).AnyTimes()
	return tm
}

func importContacts(n int) []workflows.ImportContact {
	contacts := make([]workflows.ImportContact, n)
	for i := range contacts {
		contacts[i] = workflows.ImportContact{
			ContactID: fmt.Sprintf("row-%d", i),
			Contact:   domain.Contact{FirstName: fmt.Sprintf("First%d", i), LastName: "Import", Company: "Acme"},
		}
	}
	return contacts
}

func hitItem(first bool) enricher.BatchItem {
	return enricher.BatchItem{Result: &enricher.Result{
		Status: enricher.StatusCacheHit,
		Usage: &usage.Outcome{
			SourceType:      domain.SourceTypeGlobalCache,
			SavingsAmount:   domain.MustMoney("0.049"),
			ActualCost:      domain.Zero(),
			FirstResolution: first,
		},
	}}
}

func freshItem() enricher.BatchItem {
	return enricher.BatchItem{Result: &enricher.Result{
		Status: enricher.StatusFresh,
		Usage: &usage.Outcome{
			SourceType:      domain.SourceTypeFreshAPICall,
			CreditsCharged:  1,
			ActualCost:      domain.MustMoney("0.049"),
			SavingsAmount:   domain.Zero(),
			FirstResolution: true,
		},
	}}
}

func TestEnrichContacts_CountsOutcomes(t *testing.T) {
	tm := setupTestExecutor(t)
	ctx := context.Background()
	contacts := importContacts(7)

	tm.enricher.EXPECT().EnrichBatch(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, reqs []enricher.Request) []enricher.BatchItem {
		require.Len(t, reqs, 7)
		for i, req := range reqs {
			assert.Equal(t, "user-1", req.UserID)
			assert.Equal(t, "job-1", *req.JobID)
			assert.Equal(t, fmt.Sprintf("row-%d", i), *req.ContactID)
			assert.Equal(t, contacts[i].Contact, req.Contact)
		}
		return []enricher.BatchItem{
			hitItem(true),
			hitItem(false),
			freshItem(),
			{Result: &enricher.Result{Status: enricher.StatusConflictRecovered, Usage: &usage.Outcome{SavingsAmount: domain.MustMoney("0.049"), FirstResolution: true}}},
			{Result: &enricher.Result{Status: enricher.StatusDegraded}},
			{Err: fmt.Errorf("failed to enrich contact: %w", domain.ErrNoProviderResult)},
			{Err: errors.New("failed to recover from insert conflict")},
		}
	})
	tm.temporalActivity.EXPECT().RecordHeartbeat(ctx, 7)

	summary, err := tm.executor.EnrichContacts(ctx, workflows.EnrichContactsInput{
		JobID:    "job-1",
		UserID:   "user-1",
		Contacts: contacts,
	})
	require.NoError(t, err)

	assert.Equal(t, 7, summary.Total)
	assert.Equal(t, 3, summary.CacheHits)
	assert.Equal(t, 1, summary.FreshLookups)
	assert.Equal(t, 1, summary.Uncached)
	assert.Equal(t, 1, summary.NotFound)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 1, summary.CreditsCharged)
	assert.Equal(t, 1, summary.RepeatResolutions)
	assert.Equal(t, "0.147", summary.Savings.String())
}

func TestEnrichContacts_HeartbeatsPerBatch(t *testing.T) {
	tm := setupTestExecutor(t)
	ctx := context.Background()

	gomock.InOrder(
		tm.enricher.EXPECT().EnrichBatch(ctx, gomock.Len(25)).DoAndReturn(func(_ context.Context, reqs []enricher.Request) []enricher.BatchItem {
			items := make([]enricher.BatchItem, len(reqs))
			for i := range items {
				items[i] = freshItem()
			}
			return items
		}),
		tm.temporalActivity.EXPECT().RecordHeartbeat(ctx, 25),
		tm.enricher.EXPECT().EnrichBatch(ctx, gomock.Len(5)).DoAndReturn(func(_ context.Context, reqs []enricher.Request) []enricher.BatchItem {
			items := make([]enricher.BatchItem, len(reqs))
			for i := range items {
				items[i] = hitItem(true)
			}
			return items
		}),
		tm.temporalActivity.EXPECT().RecordHeartbeat(ctx, 30),
	)

	summary, err := tm.executor.EnrichContacts(ctx, workflows.EnrichContactsInput{UserID: "user-1", Contacts: importContacts(30)})
	require.NoError(t, err)
	assert.Equal(t, 30, summary.Total)
	assert.Equal(t, 25, summary.FreshLookups)
	assert.Equal(t, 5, summary.CacheHits)
	assert.Equal(t, 25, summary.CreditsCharged)
}

func TestEnrichContacts_NoJobID(t *testing.T) {
	tm := setupTestExecutor(t)
	ctx := context.Background()

	tm.enricher.EXPECT().EnrichBatch(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, reqs []enricher.Request) []enricher.BatchItem {
		assert.Nil(t, reqs[0].JobID)
		assert.Nil(t, reqs[0].ContactID)
		return []enricher.BatchItem{hitItem(true)}
	})
	tm.temporalActivity.EXPECT().RecordHeartbeat(ctx, 1)

	_, err := tm.executor.EnrichContacts(ctx, workflows.EnrichContactsInput{
		UserID:   "user-1",
		Contacts: []workflows.ImportContact{{Contact: domain.Contact{FirstName: "Jane"}}},
	})
	require.NoError(t, err)
}

func TestEnrichContacts_Canceled(t *testing.T) {
	tm := setupTestExecutor(t)
	ctx := context.Background()

	tm.enricher.EXPECT().EnrichBatch(ctx, gomock.Any()).Return([]enricher.BatchItem{{Err: context.Canceled}})

	_, err := tm.executor.EnrichContacts(ctx, workflows.EnrichContactsInput{UserID: "user-1", Contacts: importContacts(1)})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEnrichContacts_RequiresUser(t *testing.T) {
	tm := setupTestExecutor(t)

	_, err := tm.executor.EnrichContacts(context.Background(), workflows.EnrichContactsInput{Contacts: importContacts(1)})
	assert.Error(t, err)
}
