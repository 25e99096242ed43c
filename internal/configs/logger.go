package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

func ParseLogLevel(level string) (log.Level, error) {
	l, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return log.InfoLevel, fmt.Errorf("TASKDESK_LOG_LEVEL: %w", err)
	}
	return l, nil
}

// NewLogger builds the process logger. Request traces go out at debug level.
func NewLogger(w io.Writer, level string) *log.Logger {
	l, err := ParseLogLevel(level)
	if err != nil {
		l = log.InfoLevel
	}

	return log.NewWithOptions(w, log.Options{
		Level:           l,
		ReportTimestamp: l == log.DebugLevel,
		Prefix:          "taskdesk",
	})
}
