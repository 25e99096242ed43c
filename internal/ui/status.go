package ui

import (
	"errors"
	"sync"

	"taskdesk.com/taskdesk/internal/client"
)

// StatusLine is a Notifier that keeps the latest outcome for display.
type StatusLine struct {
	mu   sync.Mutex
	text string
	ok   bool
}

func (s *StatusLine) Success(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.text, s.ok = msg, true
}

// Failure shows the server's message when there is one. Malformed responses
// get a generic message; the details are logged by the client.
func (s *StatusLine) Failure(msg string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.text, s.ok = msg, false

	switch {
	case err == nil:
	case errors.Is(err, client.ErrUnexpectedPayload):
		s.text += ": the server sent an unexpected response"
	default:
		s.text += ": " + err.Error()
	}
}

func (s *StatusLine) View() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.text == "" {
		return ""
	}
	if s.ok {
		return successStyle.Render(s.text)
	}
	return errorStyle.Render(s.text)
}
