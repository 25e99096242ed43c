package errors

import "net/http"

var ErrRateLimited = &Exception{
	Message:    "Too many requests. Please try again later.",
	StatusCode: http.StatusTooManyRequests,
}
