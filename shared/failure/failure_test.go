package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"slotbook/shared/failure"
	"testing"
)

func TestFailure_Error(t *testing.T) {
	f := &failure.Failure{
		Code:    http.StatusBadRequest,
		Message: "test error message",
	}

	if f.Error() != "test error message" {
		t.Errorf("expected error message to be 'test error message', got %s", f.Error())
	}
}

func TestRejected(t *testing.T) {
	tests := []struct {
		name   string
		reason string
		code   int
	}{
		{
			name:   "invalid range maps to 400",
			reason: failure.ReasonInvalidRange,
			code:   http.StatusBadRequest,
		},
		{
			name:   "invalid hour maps to 400",
			reason: failure.ReasonInvalidHour,
			code:   http.StatusBadRequest,
		},
		{
			name:   "daily quota maps to 400",
			reason: failure.ReasonDailyQuota,
			code:   http.StatusBadRequest,
		},
		{
			name:   "weekly quota maps to 400",
			reason: failure.ReasonWeeklyQuota,
			code:   http.StatusBadRequest,
		},
		{
			name:   "slot conflict maps to 409",
			reason: failure.ReasonSlotConflict,
			code:   http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := failure.Rejected(tt.reason, "rejected")

			if got := failure.GetCode(err); got != tt.code {
				t.Errorf("expected code %d, got %d", tt.code, got)
			}

			if got := failure.GetReason(err); got != tt.reason {
				t.Errorf("expected reason %s, got %s", tt.reason, got)
			}

			if !failure.IsReason(err, tt.reason) {
				t.Errorf("expected IsReason to match %s", tt.reason)
			}
		})
	}
}

func TestGetReason_Wrapped(t *testing.T) {
	err := failure.Rejected(failure.ReasonSlotConflict, "slot already reserved")
	wrapped := fmt.Errorf("creating reservation: %w", err)

	if got := failure.GetReason(wrapped); got != failure.ReasonSlotConflict {
		t.Errorf("expected reason to survive wrapping, got %q", got)
	}
}

func TestGetCode_UnknownError(t *testing.T) {
	if got := failure.GetCode(errors.New("plain")); got != http.StatusInternalServerError {
		t.Errorf("expected %d for non-failure error, got %d", http.StatusInternalServerError, got)
	}
}

func TestNotFound(t *testing.T) {
	err := failure.NotFound("reservation not found")

	if got := failure.GetCode(err); got != http.StatusNotFound {
		t.Errorf("expected code %d, got %d", http.StatusNotFound, got)
	}

	if got := failure.GetReason(err); got != failure.ReasonNotFound {
		t.Errorf("expected reason %s, got %s", failure.ReasonNotFound, got)
	}
}
