package booking

import (
	"errors"
	"fmt"
)

// Error codes surfaced to the booking wizard. Each one identifies the step
// that failed so the caller can tell the user what survived.
const (
	CodeCalendarUnavailable       = "calendarUnavailable"
	CodeSlotNoLongerAvailable     = "slotNoLongerAvailable"
	CodeSlotNotOffered            = "slotNotOffered"
	CodeInvalidDetails            = "invalidDetails"
	CodePaymentLinkFailed         = "paymentLinkFailed"
	CodeCalendarWriteFailed       = "calendarWriteFailed"
	CodeConfirmationMessageFailed = "confirmationMessageFailed"
	CodeInvalidTransition         = "invalidTransition"
)

// BookingError carries a stable code plus a human-readable message.
type BookingError struct {
	Code    string
	Message string
	Err     error
}

func (e *BookingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BookingError) Unwrap() error {
	return e.Err
}

func newBookingError(code, msg string, err error) error {
	return &BookingError{Code: code, Message: msg, Err: err}
}

// ErrorCode extracts the booking error code from err, or "" if err is not
// a BookingError.
func ErrorCode(err error) string {
	var be *BookingError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}

// IsCode reports whether err carries the given booking error code.
func IsCode(err error, code string) bool {
	return ErrorCode(err) == code
}
