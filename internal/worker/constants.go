package worker

import "time"

// ============================================================================
// Log Messages - Worker Pool
// ============================================================================

const (
	// LogMsgWorkerJobFailed is logged when a worker fails to process a job
	LogMsgWorkerJobFailed = "Worker job failed"
	// LogMsgWorkerJobPanicked is logged when a job panics; the worker survives
	LogMsgWorkerJobPanicked = "Worker job panicked"
	// LogMsgPoolDrainTimeout is logged when Stop gives up on queued jobs
	LogMsgPoolDrainTimeout = "Worker pool drain timed out"
)

// DefaultJobTimeout bounds a single job when the pool is built without one
const DefaultJobTimeout = 5 * time.Second
