package rest

import (
	"fmt"
	"slices"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/leadforge/contact-cache/internal/api/shared/constants"
)

const EXPAND_FINGERPRINTS = "fingerprints"

// GetCacheEntryQueryParams holds query parameters for GET /cache/entries/:id
type GetCacheEntryQueryParams struct {
	Expand []string `form:"expand"`
}

// ParseGetCacheEntryQuery parses query parameters for GET /cache/entries/:id
func ParseGetCacheEntryQuery(c *gin.Context) (*GetCacheEntryQueryParams, error) {
	var params GetCacheEntryQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}

	for _, item := range params.Expand {
		if item != EXPAND_FINGERPRINTS {
			return nil, fmt.Errorf("unsupported expansion: %s", item)
		}
	}

	return &params, nil
}

// ExpandFingerprints returns true if fingerprint expansion is requested
func (p *GetCacheEntryQueryParams) ExpandFingerprints() bool {
	return slices.Contains(p.Expand, EXPAND_FINGERPRINTS)
}

// ListHistoryQueryParams holds query parameters for GET /users/:user_id/history
type ListHistoryQueryParams struct {
	Limit  int    `form:"limit,default=50"`
	Offset uint64 `form:"offset,default=0"`
}

// ParseListHistoryQuery parses query parameters for GET /users/:user_id/history
func ParseListHistoryQuery(c *gin.Context) (*ListHistoryQueryParams, error) {
	var params ListHistoryQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}

	if params.Limit <= 0 {
		return nil, fmt.Errorf("limit must be positive")
	}
	if params.Limit > constants.MAX_PAGE_SIZE {
		params.Limit = constants.MAX_PAGE_SIZE
	}

	return &params, nil
}

// DailyMetricsQueryParams holds query parameters for GET /metrics/daily
type DailyMetricsQueryParams struct {
	From *time.Time `form:"from" time_format:"2006-01-02" time_utc:"1"`
	To   *time.Time `form:"to" time_format:"2006-01-02" time_utc:"1"`
}

// ParseDailyMetricsQuery parses query parameters for GET /metrics/daily
func ParseDailyMetricsQuery(c *gin.Context) (*DailyMetricsQueryParams, error) {
	var params DailyMetricsQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}

	return &params, nil
}
