package constants

import "time"

// Centralized default values for timeouts, intervals, and related settings.
// These provide sane defaults; environment/config may override where supported.

const (
	// Database
	DBReadTimeoutDefault  = 8 * time.Second
	DBWriteTimeoutDefault = 6 * time.Second

	// HTTP server
	HTTPReadTimeoutDefault  = 10 * time.Second
	HTTPWriteTimeoutDefault = 15 * time.Second

	// Ingest pipeline
	IngestWorkerCountDefault = 4
	IngestJobTimeoutDefault  = 30 * time.Second

	// Dedup query defaults
	CandidateRadiusMetersDefault = 1000.0
	CandidateLimitDefault        = 100

	// App shutdown
	GracefulShutdownTimeoutDefault = 10 * time.Second
)
