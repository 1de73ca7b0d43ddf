package failure

import (
	"errors"
	"net/http"
)

// Failure carries the HTTP status a service error maps to. Its message is safe to show to clients.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

var ForbiddenError = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions"}

func (e *Failure) Error() string {
	return e.Message
}

func newFailure(code int, msg string) error {
	return &Failure{Code: code, Message: msg}
}

// BadRequest wraps err as a 400. A nil err stays nil.
func BadRequest(err error) error {
	if err == nil {
		return nil
	}

	return newFailure(http.StatusBadRequest, err.Error())
}

func BadRequestFromString(msg string) error {
	return newFailure(http.StatusBadRequest, msg)
}

func Unauthorized(msg string) error {
	return newFailure(http.StatusUnauthorized, msg)
}

func Forbidden(msg string) error {
	return newFailure(http.StatusForbidden, msg)
}

// NotFound takes the full client message, e.g. "Room not found".
func NotFound(msg string) error {
	return newFailure(http.StatusNotFound, msg)
}

// Conflict is used for uniqueness violations and lost state transitions.
func Conflict(msg string) error {
	return newFailure(http.StatusConflict, msg)
}

// GetCode unwraps err to its Failure. Anything else is a 500.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// GetMessage returns the client message of the wrapped Failure, or err.Error() when there is none.
func GetMessage(err error) string {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Message
	}

	return err.Error()
}
