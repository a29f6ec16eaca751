package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"

	"github.com/tripdeck/listing-search/internal/infrastructure/logger"
)

// Recover returns middleware that recovers from panics in the handler chain.
// It logs the panic with its stack trace and returns a 500 so the server
// keeps handling subsequent requests.
func Recover(log *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			defer func() {
				if r := recover(); r != nil {
					var panicMsg string
					if err, ok := r.(error); ok {
						panicMsg = err.Error()
					} else {
						panicMsg = fmt.Sprintf("%v", r)
					}

					log.WithRequestID(GetRequestID(c)).Error().
						Str("panic", panicMsg).
						Str("stack", string(debug.Stack())).
						Msg("Panic recovered")

					// Generic body; internal details stay out of responses
					if !c.Response().Committed {
						c.JSON(http.StatusInternalServerError, map[string]string{
							"code":    "internal_error",
							"message": "An unexpected error occurred",
						})
					}
				}
			}()

			return next(c)
		}
	}
}
