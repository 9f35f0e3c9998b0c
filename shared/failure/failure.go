package failure

import (
	"errors"
	"net/http"
)

// Failure is an error safe to show to the client, with the HTTP status it maps to.
// Anything else reaching the transport is answered with a generic 500.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *Failure) Error() string {
	return e.Message
}

var (
	ForbiddenError          = New(http.StatusForbidden, "You don't have the required permissions")
	ResourceRestrictedError = New(http.StatusForbidden, "You don't have permission to access this resource")
)

// Reservation and calendar failures. SlotContended is expected under load:
// the client should pick another slot instead of retrying the same one.
var (
	InvalidConfiguration = New(http.StatusUnprocessableEntity, "invalid slot configuration")
	ResourceNotFound     = New(http.StatusNotFound, "turf not found")
	SlotNotFound         = New(http.StatusNotFound, "could not find the slot with information provided")
	BookingNotFound      = New(http.StatusNotFound, "booking not found")
	SlotContended        = New(http.StatusConflict, "the slot got booked by some other user, try again with some other slot")
	SlotAlreadyBooked    = New(http.StatusInternalServerError, "slot state is inconsistent, an operator has been notified")
	StoreUnavailable     = New(http.StatusServiceUnavailable, "storage temporarily unavailable, please retry later")
)

func New(code int, message string) *Failure {
	return &Failure{Code: code, Message: message}
}

// BadRequest turns a validation error into a 400. It returns nil for nil.
func BadRequest(err error) error {
	if err == nil {
		return nil
	}

	return New(http.StatusBadRequest, err.Error())
}

func BadRequestFromString(msg string) error {
	return New(http.StatusBadRequest, msg)
}

func Unauthorized(msg string) error {
	return New(http.StatusUnauthorized, msg)
}

func NotFound(msg string) error {
	return New(http.StatusNotFound, msg)
}

// As returns the Failure carried by err, if any.
func As(err error) (*Failure, bool) {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail, true
	}

	return nil, false
}

func IsFailure(err error) bool {
	_, ok := As(err)

	return ok
}

// GetCode returns the status err maps to, 500 for anything that is not a Failure.
func GetCode(err error) int {
	if fail, ok := As(err); ok {
		return fail.Code
	}

	return http.StatusInternalServerError
}
