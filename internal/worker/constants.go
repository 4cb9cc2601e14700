package worker

import "time"

// DefaultJobTimeout bounds a single job when the caller did not set one
const DefaultJobTimeout = 30 * time.Second

const (
	LogMsgWorkerJobFailed    = "Worker job failed"
	LogMsgWorkerJobPanicked  = "Worker job panicked"
	LogMsgWorkerDrainTimeout = "Worker pool stopped before queue drained"
)
