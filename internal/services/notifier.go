package services

import (
	"errors"

	"github.com/charmbracelet/log"

	"taskdesk.com/taskdesk/internal/client"
)

// Notifier reports the outcome of every mutating action to the user.
type Notifier interface {
	Success(msg string)
	Failure(msg string, err error)
}

// LogNotifier reports outcomes through a logger.
type LogNotifier struct {
	Logger *log.Logger
}

func (n LogNotifier) Success(msg string) {
	n.Logger.Info(msg)
}

func (n LogNotifier) Failure(msg string, err error) {
	if errors.Is(err, client.ErrUnexpectedPayload) {
		n.Logger.Error(msg, "err", "the server sent an unexpected response")
		n.Logger.Debug("unexpected payload", "err", err)
		return
	}
	n.Logger.Error(msg, "err", err)
}
