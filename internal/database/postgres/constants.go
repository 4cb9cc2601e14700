package postgres

// Error messages
const (
	ErrMsgFailedToBeginTransaction  = "failed to begin transaction"
	ErrMsgFailedToCommitTransaction = "failed to commit transaction"
	ErrMsgFailedToInsertReport      = "failed to insert production report"
	ErrMsgFailedToInsertLine        = "failed to insert production report line"
	ErrMsgFailedToQueryReport       = "failed to query production report"
	ErrMsgFailedToQueryLines        = "failed to query production report lines"
	ErrMsgInvalidReportID           = "invalid report id"
)

// Log messages
const (
	LogMsgFailedToRollback = "Failed to rollback transaction"
)
