package constants

import "time"

const (
	MAX_BATCH_CONTACTS         = 100
	MAX_IMPORT_CONTACTS        = 50000
	MAX_PAGE_SIZE              = 200
	DEFAULT_HISTORY_LIMIT      = 50
	DEFAULT_OFFSET             = uint64(0)
	DEFAULT_DAILY_METRICS_SPAN = 30 * 24 * time.Hour
	MAX_DAILY_METRICS_RANGE    = 366 * 24 * time.Hour
	IMPORT_WORKFLOW_TIMEOUT    = 6 * time.Hour
)
