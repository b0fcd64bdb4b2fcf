package rest_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadforge/contact-cache/internal/api/middleware"
	"github.com/leadforge/contact-cache/internal/api/rest"
	"github.com/leadforge/contact-cache/internal/api/shared/dto"
	apierrors "github.com/leadforge/contact-cache/internal/api/shared/errors"
	"github.com/leadforge/contact-cache/internal/domain"
	"github.com/leadforge/contact-cache/internal/logger"
	"github.com/leadforge/contact-cache/internal/mocks"
)

const testAPIKey = "backend-key"

type testHandlerMocks struct {
	ctrl     *gomock.Controller
	executor *mocks.MockAPIExecutor
	router   *gin.Engine
}

func setupTestHandler(t *testing.T) *testHandlerMocks {
	_ = logger.Initialize(logger.Config{Debug: true})
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	tm := &testHandlerMocks{
		ctrl:     ctrl,
		executor: mocks.NewMockAPIExecutor(ctrl),
		router:   gin.New(),
	}

	authenticator := middleware.NewAuthenticator(middleware.AuthConfig{APIKeys: []string{testAPIKey}})
	metricsHandler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("# metrics"))
	})
	rest.SetupRoutes(tm.router, rest.NewHandler(tm.executor), authenticator, metricsHandler)
	return tm
}

func (tm *testHandlerMocks) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "ApiKey "+testAPIKey)

	w := httptest.NewRecorder()
	tm.router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) apierrors.APIError {
	t.Helper()
	var apiErr apierrors.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
	return apiErr
}

func TestHealthAndMetrics(t *testing.T) {
	tm := setupTestHandler(t)

	tm.executor.EXPECT().CheckHealth(gomock.Any()).Return(&dto.HealthResponse{Status: "degraded", Service: "contact-cache-api", Store: "unavailable"})

	w := httptest.NewRecorder()
	tm.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"degraded"`)

	w = httptest.NewRecorder()
	tm.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "# metrics", w.Body.String())
}

func TestAPIRequiresAuthentication(t *testing.T) {
	tm := setupTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/contacts/enrich", bytes.NewReader([]byte(`{}`)))
	w := httptest.NewRecorder()
	tm.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, apierrors.ErrCodeUnauthorized, decodeError(t, w).Code)
}

func TestEnrichContact(t *testing.T) {
	email := "jane@acme.com"
	entryID := "6f1c1a3e-0000-4000-8000-000000000001"

	t.Run("success", func(t *testing.T) {
		tm := setupTestHandler(t)
		tm.executor.EXPECT().Enrich(gomock.Any(), "user-1", gomock.Any()).DoAndReturn(
			func(_ any, _ string, req dto.EnrichContactRequest) (*dto.EnrichResponse, error) {
				assert.Equal(t, "Jane", req.Contact.FirstName)
				assert.Equal(t, "Acme", req.Contact.Company)
				return &dto.EnrichResponse{Status: "cache_hit", Cached: true, CacheEntryID: &entryID, Email: &email}, nil
			})

		w := tm.do(http.MethodPost, "/api/v1/contacts/enrich", map[string]any{
			"user_id": "user-1",
			"contact": map[string]string{"first_name": "Jane", "last_name": "Doe", "company": "Acme"},
		})

		require.Equal(t, http.StatusOK, w.Code)
		var resp dto.EnrichResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Cached)
		assert.Equal(t, email, *resp.Email)
	})

	t.Run("api key without user", func(t *testing.T) {
		tm := setupTestHandler(t)

		w := tm.do(http.MethodPost, "/api/v1/contacts/enrich", map[string]any{
			"contact": map[string]string{"first_name": "Jane", "last_name": "Doe"},
		})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("invalid contact", func(t *testing.T) {
		tm := setupTestHandler(t)

		w := tm.do(http.MethodPost, "/api/v1/contacts/enrich", map[string]any{
			"user_id": "user-1",
			"contact": map[string]string{"company": "Acme"},
		})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, "first_name or last_name is required", decodeError(t, w).Details)
	})

	t.Run("no provider result", func(t *testing.T) {
		tm := setupTestHandler(t)
		tm.executor.EXPECT().Enrich(gomock.Any(), "user-1", gomock.Any()).Return(nil, apierrors.NewNoResultError("No provider found contact data"))

		w := tm.do(http.MethodPost, "/api/v1/contacts/enrich", map[string]any{
			"user_id": "user-1",
			"contact": map[string]string{"first_name": "Jane", "last_name": "Doe"},
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, apierrors.ErrCodeNoResult, decodeError(t, w).Code)
	})

	t.Run("unexpected error", func(t *testing.T) {
		tm := setupTestHandler(t)
		tm.executor.EXPECT().Enrich(gomock.Any(), "user-1", gomock.Any()).Return(nil, errors.New("boom"))

		w := tm.do(http.MethodPost, "/api/v1/contacts/enrich", map[string]any{
			"user_id": "user-1",
			"contact": map[string]string{"first_name": "Jane", "last_name": "Doe"},
		})
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Failed to enrich contact", decodeError(t, w).Message)
	})
}

func TestEnrichBatch(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tm := setupTestHandler(t)
		tm.executor.EXPECT().EnrichBatch(gomock.Any(), "user-1", gomock.Any()).DoAndReturn(
			func(_ any, _ string, req dto.EnrichBatchRequest) (*dto.EnrichBatchResponse, error) {
				require.Len(t, req.Contacts, 2)
				assert.Equal(t, "row-1", *req.Contacts[0].ContactID)
				return &dto.EnrichBatchResponse{Summary: dto.BatchEnrichSummary{Total: 2}}, nil
			})

		w := tm.do(http.MethodPost, "/api/v1/contacts/enrich/batch", map[string]any{
			"user_id": "user-1",
			"contacts": []map[string]string{
				{"contact_id": "row-1", "first_name": "Jane", "last_name": "Doe"},
				{"contact_id": "row-2", "first_name": "John", "last_name": "Roe"},
			},
		})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("too many contacts", func(t *testing.T) {
		tm := setupTestHandler(t)

		contacts := make([]map[string]string, 101)
		for i := range contacts {
			contacts[i] = map[string]string{"first_name": "Jane"}
		}
		w := tm.do(http.MethodPost, "/api/v1/contacts/enrich/batch", map[string]any{"user_id": "user-1", "contacts": contacts})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestResolveContact(t *testing.T) {
	body := map[string]any{
		"user_id": "user-1",
		"contact": map[string]string{"first_name": "Jane", "last_name": "Doe", "company": "Acme"},
	}

	t.Run("hit", func(t *testing.T) {
		tm := setupTestHandler(t)
		tm.executor.EXPECT().Resolve(gomock.Any(), "user-1", gomock.Any()).Return(&dto.EnrichResponse{Status: "cache_hit", Cached: true}, nil)

		w := tm.do(http.MethodPost, "/api/v1/contacts/resolve", body)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("miss", func(t *testing.T) {
		tm := setupTestHandler(t)
		tm.executor.EXPECT().Resolve(gomock.Any(), "user-1", gomock.Any()).Return(nil, nil)

		w := tm.do(http.MethodPost, "/api/v1/contacts/resolve", body)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("store unavailable", func(t *testing.T) {
		tm := setupTestHandler(t)
		tm.executor.EXPECT().Resolve(gomock.Any(), "user-1", gomock.Any()).Return(nil, apierrors.NewServiceUnavailableError("Cache store unavailable"))

		w := tm.do(http.MethodPost, "/api/v1/contacts/resolve", body)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestGetCacheEntry(t *testing.T) {
	entryID := "6f1c1a3e-0000-4000-8000-000000000001"

	t.Run("with fingerprints", func(t *testing.T) {
		tm := setupTestHandler(t)
		tm.executor.EXPECT().GetCacheEntry(gomock.Any(), entryID, true).Return(&dto.CacheEntryResponse{ID: entryID}, nil)

		w := tm.do(http.MethodGet, "/api/v1/cache/entries/"+entryID+"?expand=fingerprints", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		tm := setupTestHandler(t)
		tm.executor.EXPECT().GetCacheEntry(gomock.Any(), entryID, false).Return(nil, nil)

		w := tm.do(http.MethodGet, "/api/v1/cache/entries/"+entryID, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("unsupported expansion", func(t *testing.T) {
		tm := setupTestHandler(t)

		w := tm.do(http.MethodGet, "/api/v1/cache/entries/"+entryID+"?expand=owners", nil)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestRefreshCacheEntry(t *testing.T) {
	entryID := "6f1c1a3e-0000-4000-8000-000000000001"

	t.Run("for user", func(t *testing.T) {
		tm := setupTestHandler(t)
		tm.executor.EXPECT().RefreshCacheEntry(gomock.Any(), entryID, "user-1").Return(&dto.RefreshCacheEntryResponse{Upgraded: true}, nil)

		w := tm.do(http.MethodPost, "/api/v1/cache/entries/"+entryID+"/refresh", map[string]string{"user_id": "user-1"})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"upgraded":true`)
	})

	t.Run("api key without user acts as system", func(t *testing.T) {
		tm := setupTestHandler(t)
		tm.executor.EXPECT().RefreshCacheEntry(gomock.Any(), entryID, domain.SYSTEM_USER_ID).Return(&dto.RefreshCacheEntryResponse{Upgraded: false}, nil)

		w := tm.do(http.MethodPost, "/api/v1/cache/entries/"+entryID+"/refresh", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"upgraded":false`)
	})
}

func TestListUserHistory(t *testing.T) {
	t.Run("paginates", func(t *testing.T) {
		tm := setupTestHandler(t)
		tm.executor.EXPECT().ListUserContactHistory(gomock.Any(), "user-1", gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ any, _ string, limit *int, offset *uint64) (*dto.UserContactHistoryListResponse, error) {
				assert.Equal(t, 200, *limit)
				assert.Equal(t, uint64(10), *offset)
				return &dto.UserContactHistoryListResponse{Total: 12}, nil
			})

		w := tm.do(http.MethodGet, "/api/v1/users/user-1/history?limit=1000&offset=10", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("invalid limit", func(t *testing.T) {
		tm := setupTestHandler(t)

		w := tm.do(http.MethodGet, "/api/v1/users/user-1/history?limit=0", nil)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestGetDailyMetrics(t *testing.T) {
	tm := setupTestHandler(t)
	tm.executor.EXPECT().GetDailyMetrics(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ any, from *time.Time, to *time.Time) (*dto.DailyMetricsListResponse, error) {
			require.NotNil(t, from)
			assert.Equal(t, "2026-03-01", from.Format(time.DateOnly))
			assert.Nil(t, to)
			return &dto.DailyMetricsListResponse{From: "2026-03-01"}, nil
		})

	w := tm.do(http.MethodGet, "/api/v1/metrics/daily?from=2026-03-01", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = tm.do(http.MethodGet, "/api/v1/metrics/daily?from=yesterday", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestTriggerImport(t *testing.T) {
	t.Run("accepted", func(t *testing.T) {
		tm := setupTestHandler(t)
		tm.executor.EXPECT().TriggerImport(gomock.Any(), "user-1", gomock.Any()).Return(&dto.TriggerImportResponse{
			JobID:      "job-1",
			WorkflowID: "import-job-job-1",
			RunID:      "run-1",
			Contacts:   1,
		}, nil)

		w := tm.do(http.MethodPost, "/api/v1/imports", map[string]any{
			"user_id":  "user-1",
			"job_id":   "job-1",
			"contacts": []map[string]string{{"first_name": "Jane", "last_name": "Doe"}},
		})
		assert.Equal(t, http.StatusAccepted, w.Code)
		assert.Contains(t, w.Body.String(), `"workflow_id":"import-job-job-1"`)
	})

	t.Run("empty import", func(t *testing.T) {
		tm := setupTestHandler(t)

		w := tm.do(http.MethodPost, "/api/v1/imports", map[string]any{"user_id": "user-1"})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("temporal unavailable", func(t *testing.T) {
		tm := setupTestHandler(t)
		tm.executor.EXPECT().TriggerImport(gomock.Any(), "user-1", gomock.Any()).Return(nil, apierrors.NewServiceError("Failed to start import job"))

		w := tm.do(http.MethodPost, "/api/v1/imports", map[string]any{
			"user_id":  "user-1",
			"contacts": []map[string]string{{"first_name": "Jane"}},
		})
		assert.Equal(t, http.StatusBadGateway, w.Code)
	})
}

func TestGetWorkflowStatus(t *testing.T) {
	tm := setupTestHandler(t)
	tm.executor.EXPECT().GetWorkflowStatus(gomock.Any(), "import-job-1", "run-1").Return(&dto.WorkflowStatusResponse{
		WorkflowID: "import-job-1",
		RunID:      "run-1",
		Status:     "Completed",
	}, nil)

	w := tm.do(http.MethodGet, "/api/v1/workflows/import-job-1/runs/run-1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"Completed"`)
}
