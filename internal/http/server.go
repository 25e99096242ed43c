// Package http is a development stand-in for the task backend. It serves the
// same REST routes over a local SQLite database.
package http

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	apperrors "taskdesk.com/taskdesk/internal/errors"
	middleware "taskdesk.com/taskdesk/internal/http/middlewares"
	repository "taskdesk.com/taskdesk/internal/repositories"
)

type Options struct {
	Secret                 []byte
	AuthRateLimitPerMinute int
}

func NewServer(db *gorm.DB, opts Options, logger *log.Logger) *echo.Echo {
	h := NewHandler(
		repository.NewUserRepository(db),
		repository.NewTaskRepository(db),
		opts.Secret,
		logger,
	)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler(logger)
	e.Use(middleware.RequestLogger(logger))

	Register(e, h, opts.AuthRateLimitPerMinute)
	return e
}

// errorHandler writes failures as {"message": "..."}.
func errorHandler(logger *log.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := "internal server error"

		var appErr *apperrors.Exception
		var httpErr *echo.HTTPError
		switch {
		case errors.As(err, &appErr):
			status, message = appErr.StatusCode, appErr.Message
		case errors.As(err, &httpErr):
			status = httpErr.Code
			if m, ok := httpErr.Message.(string); ok {
				message = m
			} else {
				message = http.StatusText(status)
			}
		default:
			logger.Error("request failed", "path", c.Request().URL.Path, "err", err)
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, echo.Map{"message": message})
	}
}
