package executor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"go.temporal.io/sdk/client"
	"go.uber.org/zap"

	"github.com/leadforge/contact-cache/internal/adapter"
	"github.com/leadforge/contact-cache/internal/api/shared/constants"
	"github.com/leadforge/contact-cache/internal/api/shared/dto"
	apierrors "github.com/leadforge/contact-cache/internal/api/shared/errors"
	"github.com/leadforge/contact-cache/internal/domain"
	"github.com/leadforge/contact-cache/internal/enricher"
	"github.com/leadforge/contact-cache/internal/logger"
	"github.com/leadforge/contact-cache/internal/metrics"
	"github.com/leadforge/contact-cache/internal/providers/temporal"
	"github.com/leadforge/contact-cache/internal/resolver"
	"github.com/leadforge/contact-cache/internal/store"
	"github.com/leadforge/contact-cache/internal/store/schema"
	"github.com/leadforge/contact-cache/internal/workflows"
)

// Executor is the interface for the API executor
//
//go:generate mockgen -source=executor.go -destination=../../../mocks/mock_api_executor.go -package=mocks -mock_names=Executor=MockAPIExecutor
type Executor interface {
	// Enrich serves one contact from the cache or a provider
	Enrich(ctx context.Context, userID string, req dto.EnrichContactRequest) (*dto.EnrichResponse, error)

	// EnrichBatch enriches several contacts; per-contact failures are reported inline
	EnrichBatch(ctx context.Context, userID string, req dto.EnrichBatchRequest) (*dto.EnrichBatchResponse, error)

	// Resolve looks a contact up in the cache only, returns nil on a miss
	Resolve(ctx context.Context, userID string, req dto.ResolveContactRequest) (*dto.EnrichResponse, error)

	// GetCacheEntry retrieves an entry by id, returns nil if it does not exist
	GetCacheEntry(ctx context.Context, entryID string, withFingerprints bool) (*dto.CacheEntryResponse, error)

	// RefreshCacheEntry re-enriches an entry, keeping the more confident result
	RefreshCacheEntry(ctx context.Context, entryID string, userID string) (*dto.RefreshCacheEntryResponse, error)

	// ListUserContactHistory lists a user's resolutions, newest first
	ListUserContactHistory(ctx context.Context, userID string, limit *int, offset *uint64) (*dto.UserContactHistoryListResponse, error)

	// GetDailyMetrics retrieves the daily rollups between from and to, inclusive
	GetDailyMetrics(ctx context.Context, from *time.Time, to *time.Time) (*dto.DailyMetricsListResponse, error)

	// TriggerImport starts the EnrichImportJob workflow
	TriggerImport(ctx context.Context, userID string, req dto.StartImportRequest) (*dto.TriggerImportResponse, error)

	// GetWorkflowStatus retrieves the status of a workflow execution
	GetWorkflowStatus(ctx context.Context, workflowID, runID string) (*dto.WorkflowStatusResponse, error)

	// CheckHealth reports whether the cache store is reachable
	CheckHealth(ctx context.Context) *dto.HealthResponse
}

type executor struct {
	enricher              enricher.Enricher
	resolver              resolver.Resolver
	store                 store.Store
	aggregator            metrics.Aggregator
	orchestrator          temporal.TemporalOrchestrator
	orchestratorTaskQueue string
	clock                 adapter.Clock
}

func NewExecutor(
	enr enricher.Enricher,
	res resolver.Resolver,
	st store.Store,
	aggregator metrics.Aggregator,
	orchestrator temporal.TemporalOrchestrator,
	orchestratorTaskQueue string,
	clock adapter.Clock,
) Executor {
	return &executor{
		enricher:              enr,
		resolver:              res,
		store:                 st,
		aggregator:            aggregator,
		orchestrator:          orchestrator,
		orchestratorTaskQueue: orchestratorTaskQueue,
		clock:                 clock,
	}
}

func (e *executor) Enrich(ctx context.Context, userID string, req dto.EnrichContactRequest) (*dto.EnrichResponse, error) {
	result, err := e.enricher.Enrich(ctx, enricher.Request{
		Contact:   req.Contact.ToDomain(),
		UserID:    userID,
		JobID:     req.JobID,
		ContactID: req.ContactID,
	})
	if err != nil {
		return nil, enrichError(err)
	}

	return dto.MapEnrichResultToDTO(result), nil
}

func (e *executor) EnrichBatch(ctx context.Context, userID string, req dto.EnrichBatchRequest) (*dto.EnrichBatchResponse, error) {
	reqs := make([]enricher.Request, len(req.Contacts))
	for i, c := range req.Contacts {
		reqs[i] = enricher.Request{
			Contact:   c.ToDomain(),
			UserID:    userID,
			JobID:     req.JobID,
			ContactID: c.ContactID,
		}
	}

	items := e.enricher.EnrichBatch(ctx, reqs)

	resp := &dto.EnrichBatchResponse{
		Results: make([]dto.BatchEnrichItem, len(items)),
		Summary: dto.BatchEnrichSummary{Total: len(items), Savings: domain.Zero()},
	}
	for i, item := range items {
		out := dto.BatchEnrichItem{Index: i, ContactID: req.Contacts[i].ContactID}
		if item.Err != nil {
			out.Error = enrichError(item.Err)
			resp.Summary.Failed++
			resp.Results[i] = out
			continue
		}

		out.Result = dto.MapEnrichResultToDTO(item.Result)
		switch item.Result.Status {
		case enricher.StatusCacheHit, enricher.StatusConflictRecovered:
			resp.Summary.CacheHits++
		default:
			resp.Summary.FreshLookups++
		}
		if u := item.Result.Usage; u != nil {
			resp.Summary.CreditsCharged += u.CreditsCharged
			resp.Summary.Savings = resp.Summary.Savings.Add(u.SavingsAmount)
		}
		resp.Results[i] = out
	}

	return resp, nil
}

func (e *executor) Resolve(ctx context.Context, userID string, req dto.ResolveContactRequest) (*dto.EnrichResponse, error) {
	start := e.clock.Now()
	resolution, err := e.resolver.Resolve(ctx, resolver.Request{
		Contact:   req.Contact.ToDomain(),
		UserID:    userID,
		JobID:     req.JobID,
		ContactID: req.ContactID,
	})
	if err != nil {
		return nil, enrichError(err)
	}

	if !resolution.Hit() {
		return nil, nil
	}

	resp := dto.MapResolutionToDTO(resolution)
	durationMs := e.clock.Since(start).Milliseconds()
	resp.DurationMs = &durationMs

	event := metrics.Event{
		At:            e.clock.Now(),
		WasCacheHit:   true,
		EstimatedCost: resolution.Entry.Entry.EstimatedAPICost,
		ActualCost:    domain.Zero(),
		ResponseTime:  e.clock.Since(start),
	}
	if err := e.aggregator.RecordEvent(ctx, event); err != nil {
		logger.WarnCtx(ctx, "Failed to record cache-only lookup in daily metrics", zap.Error(err))
	}

	return resp, nil
}

func (e *executor) GetCacheEntry(ctx context.Context, entryID string, withFingerprints bool) (*dto.CacheEntryResponse, error) {
	id, err := uuid.Parse(entryID)
	if err != nil {
		return nil, apierrors.NewValidationError(fmt.Sprintf("invalid cache entry id: %s", entryID))
	}

	entry, err := e.store.GetCacheEntry(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrCacheEntryNotFound) {
			return nil, nil
		}
		return nil, storeError("Failed to get cache entry", err)
	}

	var fingerprints []schema.ContactFingerprint
	if withFingerprints {
		fingerprints, err = e.store.GetFingerprints(ctx, id)
		if err != nil {
			return nil, storeError("Failed to get fingerprints", err)
		}
	}

	return dto.MapCacheEntryToDTO(entry, fingerprints), nil
}

func (e *executor) RefreshCacheEntry(ctx context.Context, entryID string, userID string) (*dto.RefreshCacheEntryResponse, error) {
	id, err := uuid.Parse(entryID)
	if err != nil {
		return nil, apierrors.NewValidationError(fmt.Sprintf("invalid cache entry id: %s", entryID))
	}

	result, err := e.enricher.Refresh(ctx, id, userID)
	if err != nil {
		if errors.Is(err, domain.ErrCacheEntryNotFound) {
			return nil, apierrors.NewNotFoundError("Cache entry not found", entryID)
		}
		return nil, enrichError(err)
	}

	return &dto.RefreshCacheEntryResponse{
		Upgraded: result.Upgraded,
		Entry:    *dto.MapCacheEntryToDTO(result.Entry, nil),
	}, nil
}

func (e *executor) ListUserContactHistory(ctx context.Context, userID string, limit *int, offset *uint64) (*dto.UserContactHistoryListResponse, error) {
	if limit == nil {
		defaultLimit := constants.DEFAULT_HISTORY_LIMIT
		limit = &defaultLimit
	}
	if offset == nil {
		defaultOffset := constants.DEFAULT_OFFSET
		offset = &defaultOffset
	}

	rows, total, err := e.store.ListUserContactHistory(ctx, userID, *limit, *offset)
	if err != nil {
		return nil, storeError("Failed to list user contact history", err)
	}

	items := make([]dto.UserContactHistoryResponse, len(rows))
	for i, row := range rows {
		items[i] = dto.MapUserContactHistoryToDTO(row)
	}

	var nextOffset *uint64
	if *offset+uint64(len(rows)) < total {
		next := *offset + uint64(len(rows))
		nextOffset = &next
	}

	return &dto.UserContactHistoryListResponse{
		Items:  items,
		Offset: nextOffset,
		Total:  total,
	}, nil
}

func (e *executor) GetDailyMetrics(ctx context.Context, from *time.Time, to *time.Time) (*dto.DailyMetricsListResponse, error) {
	end := e.clock.Now().UTC()
	if to != nil {
		end = to.UTC()
	}
	start := end.Add(-constants.DEFAULT_DAILY_METRICS_SPAN)
	if from != nil {
		start = from.UTC()
	}

	if start.After(end) {
		return nil, apierrors.NewValidationError("from must not be after to")
	}
	if end.Sub(start) > constants.MAX_DAILY_METRICS_RANGE {
		return nil, apierrors.NewValidationError("date range exceeds one year")
	}

	rows, err := e.aggregator.GetDailyMetrics(ctx, start, end)
	if err != nil {
		return nil, storeError("Failed to get daily metrics", err)
	}

	items := make([]dto.DailyMetricsResponse, len(rows))
	for i, row := range rows {
		items[i] = dto.MapDailyMetricsToDTO(row)
	}

	return &dto.DailyMetricsListResponse{
		From:  start.Format(time.DateOnly),
		To:    end.Format(time.DateOnly),
		Items: items,
	}, nil
}

func (e *executor) TriggerImport(ctx context.Context, userID string, req dto.StartImportRequest) (*dto.TriggerImportResponse, error) {
	jobID := req.JobID
	if jobID == "" {
		jobID = ulid.MustNewDefault(e.clock.Now()).String()
	}

	contacts := make([]workflows.ImportContact, len(req.Contacts))
	for i, c := range req.Contacts {
		contacts[i] = workflows.ImportContact{Contact: c.ToDomain()}
		if c.ContactID != nil {
			contacts[i].ContactID = *c.ContactID
		}
	}

	w := workflows.NewWorkerEnrich(nil, workflows.WorkerEnrichConfig{})
	options := client.StartWorkflowOptions{
		ID:                       fmt.Sprintf("import-job-%s", jobID),
		TaskQueue:                e.orchestratorTaskQueue,
		WorkflowExecutionTimeout: constants.IMPORT_WORKFLOW_TIMEOUT,
	}
	wfRun, err := e.orchestrator.ExecuteWorkflow(ctx, options, w.EnrichImportJob, workflows.ImportJob{
		JobID:    jobID,
		UserID:   userID,
		Contacts: contacts,
	})
	if err != nil {
		return nil, apierrors.NewServiceError(fmt.Sprintf("Failed to start import job: %v", err))
	}

	logger.InfoCtx(ctx, "Started import job",
		zap.String("jobID", jobID),
		zap.String("userID", userID),
		zap.Int("contacts", len(contacts)),
		zap.String("workflowID", wfRun.GetID()))

	return &dto.TriggerImportResponse{
		JobID:      jobID,
		WorkflowID: wfRun.GetID(),
		RunID:      wfRun.GetRunID(),
		Contacts:   len(contacts),
	}, nil
}

func (e *executor) GetWorkflowStatus(ctx context.Context, workflowID, runID string) (*dto.WorkflowStatusResponse, error) {
	resp, err := e.orchestrator.DescribeWorkflowExecution(ctx, workflowID, runID)
	if err != nil {
		return nil, apierrors.NewServiceError(fmt.Sprintf("Failed to describe workflow: %v", err))
	}

	info := resp.GetWorkflowExecutionInfo()
	if info == nil {
		return nil, apierrors.NewNotFoundError("Workflow not found", workflowID)
	}

	status := &dto.WorkflowStatusResponse{
		WorkflowID: workflowID,
		RunID:      runID,
		Status:     info.GetStatus().String(),
	}
	if info.GetStartTime() != nil {
		startTime := info.GetStartTime().AsTime()
		status.StartTime = &startTime
	}
	if info.GetCloseTime() != nil {
		closeTime := info.GetCloseTime().AsTime()
		status.CloseTime = &closeTime
	}
	if status.StartTime != nil && status.CloseTime != nil {
		executionTime := uint64(status.CloseTime.Sub(*status.StartTime).Milliseconds()) //nolint:gosec,G115
		status.ExecutionTime = &executionTime
	}

	return status, nil
}

func (e *executor) CheckHealth(ctx context.Context) *dto.HealthResponse {
	health := &dto.HealthResponse{
		Status:  "ok",
		Service: "contact-cache-api",
		Store:   "ok",
	}
	if err := e.store.Ping(ctx); err != nil {
		logger.WarnCtx(ctx, "Cache store health check failed", zap.Error(err))
		// enrichment keeps working uncached while the store is down
		health.Status = "degraded"
		health.Store = "unavailable"
	}
	return health
}

// enrichError maps an enrichment or lookup error to an API error
func enrichError(err error) *apierrors.APIError {
	switch {
	case errors.Is(err, domain.ErrNoProviderResult):
		return apierrors.NewNoResultError("No provider found contact data", err.Error())
	case errors.Is(err, domain.ErrStoreUnavailable):
		return apierrors.NewServiceUnavailableError("Cache store unavailable", err.Error())
	case errors.Is(err, domain.ErrValidation):
		return apierrors.NewValidationError(err.Error())
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return apierrors.NewServiceUnavailableError("Request canceled", err.Error())
	default:
		return apierrors.NewInternalError("Failed to enrich contact", err.Error())
	}
}

func storeError(message string, err error) *apierrors.APIError {
	if errors.Is(err, domain.ErrStoreUnavailable) {
		return apierrors.NewServiceUnavailableError(message, err.Error())
	}
	return apierrors.NewDatabaseError(message, err.Error())
}
