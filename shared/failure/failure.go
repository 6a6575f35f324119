package failure

import (
	"errors"
	"net/http"
)

// Machine-readable rejection reasons for the booking admission path.
// Clients are expected to switch on these, never on message text.
const (
	ReasonInvalidRange = "InvalidRange"
	ReasonInvalidHour  = "InvalidHour"
	ReasonDailyQuota   = "DailyQuotaExceeded"
	ReasonWeeklyQuota  = "WeeklyQuotaExceeded"
	ReasonSlotConflict = "SlotConflict"
	ReasonNotFound     = "NotFound"
)

// Failure is a wrapper for error messages and codes using standard HTTP
// response codes, plus an optional machine-readable reason code.
type Failure struct {
	Code    int    `json:"code"`
	Reason  string `json:"reason,omitempty"`
	Message string `json:"message"`
}

var InvalidPageParam = &Failure{Code: http.StatusBadRequest, Message: "invalid page parameter"}
var InvalidLimitParam = &Failure{Code: http.StatusBadRequest, Message: "invalid limit parameter"}

// Error returns the error message.
func (e *Failure) Error() string {
	return e.Message
}

// BadRequest returns a new Failure with code for bad requests.
func BadRequest(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		}
	}

	return nil
}

// BadRequestFromString returns a new Failure with code for bad requests with message set from string.
func BadRequestFromString(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Message: msg,
	}
}

// Rejected returns a new Failure carrying a rejection reason code. The HTTP
// code depends on the reason family: validation and quota rejections map to
// 400, slot conflicts to 409.
func Rejected(reason, msg string) error {
	code := http.StatusBadRequest
	if reason == ReasonSlotConflict {
		code = http.StatusConflict
	}

	return &Failure{
		Code:    code,
		Reason:  reason,
		Message: msg,
	}
}

// InternalError returns a new Failure with code for internal error and message derived from an error interface.
func InternalError(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusInternalServerError,
			Message: err.Error(),
		}
	}

	return nil
}

// NotFound returns a new Failure with code for entity not found.
func NotFound(entityName string) error {
	return &Failure{
		Code:    http.StatusNotFound,
		Reason:  ReasonNotFound,
		Message: entityName,
	}
}

// Conflict returns a new Failure with code for conflict situations.
func Conflict(message string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Reason:  ReasonSlotConflict,
		Message: message,
	}
}

// GetCode returns the error code of an error interface.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// GetReason returns the rejection reason of an error interface, or the empty
// string when the error carries none.
func GetReason(err error) string {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Reason
	}

	return ""
}

// IsReason reports whether err is a Failure with the given reason code.
func IsReason(err error, reason string) bool {
	return GetReason(err) == reason
}
