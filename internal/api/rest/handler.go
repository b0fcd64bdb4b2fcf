package rest

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/leadforge/contact-cache/internal/api/middleware"
	"github.com/leadforge/contact-cache/internal/api/shared/dto"
	"github.com/leadforge/contact-cache/internal/api/shared/executor"
	"github.com/leadforge/contact-cache/internal/domain"
)

// Handler defines the interface for REST API handlers
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// EnrichContact serves one contact from the cache or a provider
	// POST /api/v1/contacts/enrich
	EnrichContact(c *gin.Context)

	// EnrichBatch enriches up to 100 contacts, results in request order
	// POST /api/v1/contacts/enrich/batch
	EnrichBatch(c *gin.Context)

	// ResolveContact looks a contact up in the cache only, never calling a provider
	// POST /api/v1/contacts/resolve
	ResolveContact(c *gin.Context)

	// GetCacheEntry retrieves a cache entry
	// GET /api/v1/cache/entries/:id?expand=fingerprints
	GetCacheEntry(c *gin.Context)

	// RefreshCacheEntry re-enriches a cache entry
	// POST /api/v1/cache/entries/:id/refresh
	RefreshCacheEntry(c *gin.Context)

	// ListUserHistory lists the contacts a user resolved
	// GET /api/v1/users/:user_id/history?limit=<limit>&offset=<offset>
	ListUserHistory(c *gin.Context)

	// GetDailyMetrics retrieves the daily cache metrics
	// GET /api/v1/metrics/daily?from=YYYY-MM-DD&to=YYYY-MM-DD
	GetDailyMetrics(c *gin.Context)

	// TriggerImport starts an import job workflow
	// POST /api/v1/imports
	TriggerImport(c *gin.Context)

	// GetWorkflowStatus retrieves the status of a Temporal workflow execution
	// GET /api/v1/workflows/:workflow_id/runs/:run_id
	GetWorkflowStatus(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	executor executor.Executor
}

// NewHandler creates a new REST API handler using the shared executor
func NewHandler(exec executor.Executor) Handler {
	return &handler{
		executor: exec,
	}
}

func (h *handler) EnrichContact(c *gin.Context) {
	var req dto.EnrichContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	if err := req.Validate(); err != nil {
		respondAPIError(c, err, "Invalid request")
		return
	}

	userID, apiErr := middleware.ResolveUserID(c, req.UserID)
	if apiErr != nil {
		respondAPIError(c, apiErr, "Unauthorized")
		return
	}

	response, err := h.executor.Enrich(c.Request.Context(), userID, req)
	if err != nil {
		respondAPIError(c, err, "Failed to enrich contact")
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *handler) EnrichBatch(c *gin.Context) {
	var req dto.EnrichBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	if err := req.Validate(); err != nil {
		respondAPIError(c, err, "Invalid request")
		return
	}

	userID, apiErr := middleware.ResolveUserID(c, req.UserID)
	if apiErr != nil {
		respondAPIError(c, apiErr, "Unauthorized")
		return
	}

	response, err := h.executor.EnrichBatch(c.Request.Context(), userID, req)
	if err != nil {
		respondAPIError(c, err, "Failed to enrich contacts")
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *handler) ResolveContact(c *gin.Context) {
	var req dto.ResolveContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	if err := req.Validate(); err != nil {
		respondAPIError(c, err, "Invalid request")
		return
	}

	userID, apiErr := middleware.ResolveUserID(c, req.UserID)
	if apiErr != nil {
		respondAPIError(c, apiErr, "Unauthorized")
		return
	}

	response, err := h.executor.Resolve(c.Request.Context(), userID, req)
	if err != nil {
		respondAPIError(c, err, "Failed to resolve contact")
		return
	}

	if response == nil {
		respondNotFound(c, "Contact not cached")
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *handler) GetCacheEntry(c *gin.Context) {
	entryID := c.Param("id")
	if entryID == "" {
		respondBadRequest(c, "Cache entry id is required")
		return
	}

	queryParams, err := ParseGetCacheEntryQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	response, err := h.executor.GetCacheEntry(c.Request.Context(), entryID, queryParams.ExpandFingerprints())
	if err != nil {
		respondAPIError(c, err, "Failed to get cache entry")
		return
	}

	if response == nil {
		respondNotFound(c, "Cache entry not found")
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *handler) RefreshCacheEntry(c *gin.Context) {
	entryID := c.Param("id")
	if entryID == "" {
		respondBadRequest(c, "Cache entry id is required")
		return
	}

	var req dto.RefreshCacheEntryRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
			return
		}
	}

	requested := req.UserID
	if requested == "" && c.GetString(middleware.AUTH_TYPE_KEY) == middleware.AUTH_TYPE_APIKEY {
		// backend refresh jobs act for no particular user
		requested = domain.SYSTEM_USER_ID
	}

	userID, apiErr := middleware.ResolveUserID(c, requested)
	if apiErr != nil {
		respondAPIError(c, apiErr, "Unauthorized")
		return
	}

	response, err := h.executor.RefreshCacheEntry(c.Request.Context(), entryID, userID)
	if err != nil {
		respondAPIError(c, err, "Failed to refresh cache entry")
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *handler) ListUserHistory(c *gin.Context) {
	userID, apiErr := middleware.ResolveUserID(c, c.Param("user_id"))
	if apiErr != nil {
		respondAPIError(c, apiErr, "Unauthorized")
		return
	}

	queryParams, err := ParseListHistoryQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	response, err := h.executor.ListUserContactHistory(c.Request.Context(), userID, &queryParams.Limit, &queryParams.Offset)
	if err != nil {
		respondAPIError(c, err, "Failed to list user history")
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *handler) GetDailyMetrics(c *gin.Context) {
	queryParams, err := ParseDailyMetricsQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	response, err := h.executor.GetDailyMetrics(c.Request.Context(), queryParams.From, queryParams.To)
	if err != nil {
		respondAPIError(c, err, "Failed to get daily metrics")
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *handler) TriggerImport(c *gin.Context) {
	var req dto.StartImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	if err := req.Validate(); err != nil {
		respondAPIError(c, err, "Invalid request")
		return
	}

	userID, apiErr := middleware.ResolveUserID(c, req.UserID)
	if apiErr != nil {
		respondAPIError(c, apiErr, "Unauthorized")
		return
	}

	response, err := h.executor.TriggerImport(c.Request.Context(), userID, req)
	if err != nil {
		respondAPIError(c, err, "Failed to start import job")
		return
	}

	c.JSON(http.StatusAccepted, response)
}

func (h *handler) GetWorkflowStatus(c *gin.Context) {
	workflowID := c.Param("workflow_id")
	if workflowID == "" {
		respondBadRequest(c, "workflow_id is required")
		return
	}

	runID := c.Param("run_id")
	if runID == "" {
		respondBadRequest(c, "run_id is required")
		return
	}

	status, err := h.executor.GetWorkflowStatus(c.Request.Context(), workflowID, runID)
	if err != nil {
		respondAPIError(c, err, "Failed to get workflow status")
		return
	}

	c.JSON(http.StatusOK, status)
}

func (h *handler) HealthCheck(c *gin.Context) {
	health := h.executor.CheckHealth(c.Request.Context())
	c.JSON(http.StatusOK, health)
}
