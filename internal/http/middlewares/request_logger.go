package middleware

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"
)

func RequestLogger(logger *log.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			logger.Debug("request",
				"method", req.Method,
				"path", req.URL.Path,
				"status", c.Response().Status,
				"request_id", req.Header.Get(echo.HeaderXRequestID),
				"took", time.Since(start),
			)
			return nil
		}
	}
}
