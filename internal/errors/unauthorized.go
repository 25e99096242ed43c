package errors

import "net/http"

var ErrUnauthorized = &Exception{
	Message:    "unauthorized",
	StatusCode: http.StatusUnauthorized,
}

var ErrForbidden = &Exception{
	Message:    "forbidden",
	StatusCode: http.StatusForbidden,
}
