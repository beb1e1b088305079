package httperr

import "errors"

// Business error codes shared across the engine. Handlers translate these
// to HTTP statuses; use cases only ever speak codes.
const (
	CodeInvalidSlotRange      = "invalid_slot_range"
	CodeSchedulingConflict    = "scheduling_conflict"
	CodeInvalidTransition     = "invalid_transition"
	CodePaymentMismatch       = "payment_mismatch"
	CodePaymentNotVerified    = "payment_not_verified"
	CodeInvalidCompletionCode = "invalid_completion_code"
	CodeNotFound              = "not_found"
	CodeInvalidDuration       = "invalid_duration"
	CodeInvalidDateOrTime     = "invalid_date_or_time"
)

type BusinessError struct {
	Code    string
	Message string
}

func (e BusinessError) Error() string {
	if e.Message != "" {
		return e.Code + ": " + e.Message
	}
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func ErrBusinessf(code, message string) error {
	return BusinessError{Code: code, Message: message}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func BusinessCode(err error) (string, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code, true
	}
	return "", false
}
