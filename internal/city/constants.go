package city

import "time"

// Defaults used when Config leaves a field zero
const (
	DefaultWorkers          = 4
	DefaultCacheSize        = 1024
	DefaultCacheTTL         = 10 * time.Minute
	DefaultPersistWorkers   = 2
	DefaultPersistQueueSize = 256
)

// unknownResourceLabel replaces unregistered IDs in metric labels
const unknownResourceLabel = "unknown"

// Log messages
const (
	LogMsgCityRecomputed        = "City production recomputed"
	LogMsgResourceFailed        = "Resource type recomputation failed"
	LogMsgContributionSkipped   = "Skipped contribution with fractional flat-after unit"
	LogMsgTurnStarted           = "Turn production pass started"
	LogMsgTurnCompleted         = "Turn production pass completed"
	LogMsgCityFailed            = "City recomputation failed"
	LogMsgFailedToEnqueue       = "Failed to enqueue report for persistence"
	LogMsgReportDropped         = "Persistence queue full, report not saved"
	LogMsgReportPersisted       = "Production report persisted"
	LogMsgFailedToLoadReport    = "Failed to load latest report from repository"
	LogMsgDuplicateCityInTurn   = "duplicate city in turn"
	LogMsgCityNotScheduled      = "city not scheduled"
	LogMsgPersistenceDrainStart = "Draining report persistence queue"
)
