package sqlite

// Error messages
const (
	ErrMsgFailedToOpen              = "failed to open sqlite store"
	ErrMsgFailedToMigrate           = "failed to migrate sqlite store"
	ErrMsgFailedToBeginTransaction  = "failed to begin transaction"
	ErrMsgFailedToCommitTransaction = "failed to commit transaction"
	ErrMsgFailedToInsertReport      = "failed to insert production report"
	ErrMsgFailedToInsertLine        = "failed to insert production report line"
	ErrMsgFailedToQueryReport       = "failed to query production report"
	ErrMsgFailedToQueryLines        = "failed to query production report lines"
)

// Log messages
const (
	LogMsgStoreOpened      = "SQLite report store opened"
	LogMsgMigrationApplied = "SQLite migration applied"
)

// driverName is the database/sql name modernc.org/sqlite registers
const driverName = "sqlite"

// dsnOptions enables WAL, waits on a busy database and enforces foreign keys
const dsnOptions = "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
