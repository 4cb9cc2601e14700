package handler

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/CityProduction_Go/internal/domain"
)

func TestMapServiceErrorToUserMessage(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"invalid input", fmt.Errorf("%w: city_id empty", domain.ErrInvalidInput), http.StatusBadRequest, ErrMsgInvalidInputError},
		{"invalid bucket", domain.ErrInvalidBucket, http.StatusBadRequest, ErrMsgInvalidBucketError},
		{"unknown resource", fmt.Errorf("%w: RE99", domain.ErrUnknownResourceType), http.StatusBadRequest, ErrMsgUnknownResourceError},
		{"not found", domain.ErrReportNotFound, http.StatusNotFound, ErrMsgReportNotFoundError},
		{"cancelled", context.Canceled, http.StatusServiceUnavailable, ErrMsgRequestCancelled},
		{"deadline", context.DeadlineExceeded, http.StatusServiceUnavailable, ErrMsgUnavailableError},
		{"database", fmt.Errorf("%w: connection refused", domain.ErrDatabaseError), http.StatusInternalServerError, ErrMsgGenericServerError},
		{"unknown", assert.AnError, http.StatusInternalServerError, ErrMsgGenericServerError},
		{"nil", nil, http.StatusInternalServerError, ErrMsgUnknownError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := mapServiceErrorToUserMessage(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestMapServiceErrorToUserMessage_DoesNotLeakDetails(t *testing.T) {
	_, msg := mapServiceErrorToUserMessage(fmt.Errorf("%w: password=hunter2", domain.ErrDatabaseError))
	assert.NotContains(t, msg, "hunter2")
}
