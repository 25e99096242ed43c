package errors

import "net/http"

var ErrUsernameTaken = &Exception{
	Message:    "Username already exists",
	StatusCode: http.StatusBadRequest,
}

var ErrEmailTaken = &Exception{
	Message:    "Email already exists",
	StatusCode: http.StatusBadRequest,
}
