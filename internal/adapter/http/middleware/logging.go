package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/tripdeck/listing-search/internal/infrastructure/logger"
)

// RequestLogger returns middleware that logs HTTP requests on completion
// with method, path, status, duration, and client info. Server errors log
// at error level, client errors at warn, everything else at info.
func RequestLogger(log *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				// Let Echo's error handler process the error
				c.Error(err)
			}

			duration := time.Since(start)
			req := c.Request()
			res := c.Response()
			reqLog := log.WithRequestID(GetRequestID(c))

			var event *zerolog.Event
			switch status := res.Status; {
			case status >= 500:
				event = reqLog.Error()
			case status >= 400:
				event = reqLog.Warn()
			default:
				event = reqLog.Info()
			}

			event.
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", res.Status).
				Int64("duration_ms", duration.Milliseconds()).
				Int64("bytes_out", res.Size).
				Str("client_ip", c.RealIP()).
				Msg("HTTP request")

			// The error was already handled via c.Error
			return nil
		}
	}
}
