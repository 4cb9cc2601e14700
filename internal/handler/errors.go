package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
const (
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgMissingPathParam      = "Missing %s path parameter"

	ErrMsgRecomputeCityFailed = "Failed to recompute city production"
	ErrMsgRecomputeTurnFailed = "Failed to recompute turn production"
	ErrMsgGetReportFailed     = "Failed to retrieve production report"
)

// User-facing messages derived from domain errors
const (
	ErrMsgGenericServerError   = "Something went wrong"
	ErrMsgUnknownError         = "Unknown error"
	ErrMsgInvalidInputError    = "Invalid request. Please check your inputs."
	ErrMsgReportNotFoundError  = "No production report for that city yet"
	ErrMsgUnknownResourceError = "Unknown resource type"
	ErrMsgInvalidBucketError   = "Invalid accumulation bucket"
	ErrMsgUnavailableError     = "Server is temporarily unavailable. Please try again later."
	ErrMsgRequestCancelled     = "Request cancelled before completion"
)
