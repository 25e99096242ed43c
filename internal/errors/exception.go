package errors

import (
	"errors"
	"net/http"
)

// Exception is a failure that carries an HTTP status: either one returned
// by the API or one the stub server responds with.
type Exception struct {
	Message    string
	StatusCode int
}

func (e *Exception) Error() string {
	return e.Message
}

func New(statusCode int, message string) *Exception {
	return &Exception{Message: message, StatusCode: statusCode}
}

func StatusCode(err error) int {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

// IsStatus reports whether err is an Exception with the given status.
func IsStatus(err error, statusCode int) bool {
	var appErr *Exception
	return errors.As(err, &appErr) && appErr.StatusCode == statusCode
}

func IsUnauthorized(err error) bool {
	return IsStatus(err, http.StatusUnauthorized) || IsStatus(err, http.StatusForbidden)
}
