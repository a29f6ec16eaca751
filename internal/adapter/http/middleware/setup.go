package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/tripdeck/listing-search/internal/infrastructure/logger"
)

// Setup registers all middleware on the Echo instance in the correct order:
//  1. RequestID - first, so all subsequent logging carries the id
//  2. RequestLogger - logs every request with the id
//  3. Recover - catches panics from the handlers it wraps
//
// This function should be called before registering routes.
func Setup(e *echo.Echo, log *logger.Logger) {
	e.Use(RequestID())
	e.Use(RequestLogger(log))
	e.Use(Recover(log))
}
