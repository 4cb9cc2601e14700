package bootstrap

// =============================================================================
// File System Permissions
// =============================================================================

const (
	// DirPermission is the standard permission for creating directories
	DirPermission = 0755

	// LogFilePermission is the permission for log files
	LogFilePermission = 0644
)

// =============================================================================
// Logger Configuration
// =============================================================================

const (
	// LogFileTimestampFormat is the timestamp format for log filenames (YYYY-MM-DD_HH-MM-SS)
	LogFileTimestampFormat = "2006-01-02_15-04-05"

	// LogFileNamePattern is the format string for log filenames
	LogFileNamePattern = "session_%s.log"

	// LogFileExtension is the file extension for log files
	LogFileExtension = ".log"

	// LogFileRetentionCount is the number of older log files kept next to the new one
	LogFileRetentionCount = 9
)

// Log messages for startup
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStarting            = "Starting city production service"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file"
	LogMsgRulesLoaded         = "Rule database loaded"
	LogMsgPersistenceEnabled  = "Report persistence enabled"
	LogMsgPersistenceDisabled = "Report persistence disabled, reports are kept in memory only"
	LogMsgMigrationsApplied   = "Database migrations applied"
)

// Error messages for startup
const (
	ErrMsgFailedCreateLogsDir = "failed to create logs directory"
	ErrMsgFailedOpenLogFile   = "failed to open log file"
	ErrMsgFailedLoadRules     = "failed to load rule database"
	ErrMsgEmptyRules          = "rule database defines no resource types"
	ErrMsgFailedConnectDB     = "failed to connect to database"
	ErrMsgFailedMigrate       = "failed to migrate database"
	ErrMsgFailedOpenSQLite    = "failed to open sqlite report store"
)

// =============================================================================
// Shutdown Messages
// =============================================================================

const (
	LogMsgShuttingDownServer   = "Shutting down server..."
	LogMsgDrainingReports      = "Draining pending report writes..."
	LogMsgServerStopped        = "Server stopped"
	LogMsgServerForcedShutdown = "Server forced to shutdown"
	LogMsgCityShutdownFailed   = "City service shutdown failed"
	LogMsgDatabaseClosed       = "Database pool closed"
	LogMsgStoreClosed          = "Report store closed"
	LogMsgStoreCloseFailed     = "Report store close failed"
)
