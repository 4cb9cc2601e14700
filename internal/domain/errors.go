package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Rule database errors
	ErrMsgUnknownResourceType   = "unknown resource type"
	ErrMsgInvalidBucket         = "invalid accumulation bucket"
	ErrMsgInvalidRounding       = "invalid rounding direction"
	ErrMsgDuplicateResourceType = "duplicate resource type"
	ErrMsgInvalidPolicy         = "invalid resource type policy"

	// Accumulation errors
	ErrMsgFractionalUnitInTerminalBucket = "fractional unit in terminal bucket"
	ErrMsgProductionOverflow             = "production amount out of range"

	// Report errors
	ErrMsgReportNotFound = "production report not found"

	// Database/System errors
	ErrMsgDatabaseError = "database error"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Rule database errors
	ErrUnknownResourceType   = errors.New(ErrMsgUnknownResourceType)
	ErrInvalidBucket         = errors.New(ErrMsgInvalidBucket)
	ErrInvalidRounding       = errors.New(ErrMsgInvalidRounding)
	ErrDuplicateResourceType = errors.New(ErrMsgDuplicateResourceType)
	ErrInvalidPolicy         = errors.New(ErrMsgInvalidPolicy)

	// Accumulation errors
	ErrFractionalUnitInTerminalBucket = errors.New(ErrMsgFractionalUnitInTerminalBucket)
	ErrProductionOverflow             = errors.New(ErrMsgProductionOverflow)

	// Report errors
	ErrReportNotFound = errors.New(ErrMsgReportNotFound)

	// Database/System errors
	ErrDatabaseError = errors.New(ErrMsgDatabaseError)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)

// FailureReason classifies an error for reports and metric labels
func FailureReason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnknownResourceType):
		return FailureReasonUnknownResourceType
	case errors.Is(err, ErrFractionalUnitInTerminalBucket):
		return FailureReasonFractionalUnit
	case errors.Is(err, ErrInvalidBucket):
		return FailureReasonInvalidBucket
	case errors.Is(err, ErrProductionOverflow):
		return FailureReasonOverflow
	default:
		return FailureReasonInternal
	}
}
