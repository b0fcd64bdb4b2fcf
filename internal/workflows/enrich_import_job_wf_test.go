package workflows_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/testsuite"

	"github.com/leadforge/contact-cache/internal/domain"
	"github.com/leadforge/contact-cache/internal/logger"
	"github.com/leadforge/contact-cache/internal/mocks"
	"github.com/leadforge/contact-cache/internal/workflows"
)

// EnrichImportJobWorkflowTestSuite is the test suite for import job workflow tests
type EnrichImportJobWorkflowTestSuite struct {
	suite.Suite
	testsuite.WorkflowTestSuite

	env          *testsuite.TestWorkflowEnvironment
	ctrl         *gomock.Controller
	executor     *mocks.MockEnrichExecutor
	workerEnrich workflows.WorkerEnrich
}

func (s *EnrichImportJobWorkflowTestSuite) SetupTest() {
	_ = logger.Initialize(logger.Config{
		Debug: true,
	})

	s.env = s.NewTestWorkflowEnvironment()
	s.ctrl = gomock.NewController(s.T())
	s.executor = mocks.NewMockEnrichExecutor(s.ctrl)
	s.workerEnrich = workflows.NewWorkerEnrich(s.executor, workflows.WorkerEnrichConfig{
		ChunkSize:         2,
		MaxParallelChunks: 2,
	})
}

func (s *EnrichImportJobWorkflowTestSuite) TearDownTest() {
	s.env.AssertExpectations(s.T())
	s.ctrl.Finish()
}

func TestEnrichImportJobWorkflowTestSuite(t *testing.T) {
	suite.Run(t, new(EnrichImportJobWorkflowTestSuite))
}

func chunkIndex(i int) any {
	return mock.MatchedBy(func(input workflows.EnrichContactsInput) bool {
		return input.ChunkIndex == i
	})
}

func (s *EnrichImportJobWorkflowTestSuite) TestEnrichImportJob_Success() {
	job := workflows.ImportJob{JobID: "job-1", UserID: "user-1", Contacts: importContacts(5)}

	var seen []int
	s.env.OnActivity(s.executor.EnrichContacts, mock.Anything, mock.Anything).Return(
		func(_ context.Context, input workflows.EnrichContactsInput) (*workflows.ChunkSummary, error) {
			s.Equal("job-1", input.JobID)
			s.Equal("user-1", input.UserID)
			seen = append(seen, input.ChunkIndex)
			if input.ChunkIndex == 2 {
				s.Len(input.Contacts, 1)
				s.Equal("row-4", input.Contacts[0].ContactID)
			} else {
				s.Len(input.Contacts, 2)
			}
			return &workflows.ChunkSummary{
				Total:          len(input.Contacts),
				CacheHits:      1,
				FreshLookups:   len(input.Contacts) - 1,
				CreditsCharged: len(input.Contacts) - 1,
				Savings:        domain.MustMoney("0.049"),
			}, nil
		})

	s.env.ExecuteWorkflow(s.workerEnrich.EnrichImportJob, job)

	s.True(s.env.IsWorkflowCompleted())
	s.NoError(s.env.GetWorkflowError())

	var summary workflows.ImportJobSummary
	s.NoError(s.env.GetWorkflowResult(&summary))
	s.ElementsMatch([]int{0, 1, 2}, seen)
	s.Equal("job-1", summary.JobID)
	s.Equal(5, summary.Total)
	s.Equal(3, summary.CacheHits)
	s.Equal(2, summary.FreshLookups)
	s.Equal(2, summary.CreditsCharged)
	s.Equal("0.147", summary.Savings.String())
	s.Empty(summary.FailedChunks)
}

func (s *EnrichImportJobWorkflowTestSuite) TestEnrichImportJob_FailedChunk() {
	job := workflows.ImportJob{JobID: "job-2", UserID: "user-1", Contacts: importContacts(4)}

	s.env.OnActivity(s.executor.EnrichContacts, mock.Anything, chunkIndex(0)).Return(
		&workflows.ChunkSummary{Total: 2, FreshLookups: 2, CreditsCharged: 2, Savings: domain.Zero()}, nil)
	s.env.OnActivity(s.executor.EnrichContacts, mock.Anything, chunkIndex(1)).Return(
		nil, temporal.NewNonRetryableApplicationError("store down", "StoreUnavailable", errors.New("store down")))

	s.env.ExecuteWorkflow(s.workerEnrich.EnrichImportJob, job)

	s.True(s.env.IsWorkflowCompleted())
	s.NoError(s.env.GetWorkflowError())

	var summary workflows.ImportJobSummary
	s.NoError(s.env.GetWorkflowResult(&summary))
	s.Equal(4, summary.Total)
	s.Equal(2, summary.FreshLookups)
	s.Equal(2, summary.Failed)
	s.Equal([]int{1}, summary.FailedChunks)
}

func (s *EnrichImportJobWorkflowTestSuite) TestEnrichImportJob_EmptyJob() {
	job := workflows.ImportJob{JobID: "job-3", UserID: "user-1"}

	s.env.ExecuteWorkflow(s.workerEnrich.EnrichImportJob, job)

	s.True(s.env.IsWorkflowCompleted())
	s.NoError(s.env.GetWorkflowError())

	var summary workflows.ImportJobSummary
	s.NoError(s.env.GetWorkflowResult(&summary))
	s.Equal(0, summary.Total)
}

func (s *EnrichImportJobWorkflowTestSuite) TestEnrichImportJob_MissingUser() {
	job := workflows.ImportJob{JobID: "job-4", Contacts: importContacts(1)}

	s.env.ExecuteWorkflow(s.workerEnrich.EnrichImportJob, job)

	s.True(s.env.IsWorkflowCompleted())
	err := s.env.GetWorkflowError()
	s.Error(err)

	var appErr *temporal.ApplicationError
	s.True(errors.As(err, &appErr))
	s.Equal("InvalidImportJob", appErr.Type())
}
