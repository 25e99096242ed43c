package services

import "errors"

var (
	ErrCancelled     = errors.New("cancelled")
	ErrTaskNotLoaded = errors.New("task is not in the current list")
)
