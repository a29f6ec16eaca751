package http

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes registers all listing search API routes.
// It creates a versioned API group and attaches the handler methods.
func RegisterRoutes(e *echo.Echo, h *ListingHandler) {
	// Health check endpoint (no version prefix, for load balancers)
	e.GET("/health", h.Health)

	// API v1 group
	api := e.Group("/api/v1")

	cars := api.Group("/cars")
	cars.POST("/search", h.SearchCars)
	cars.GET("/:id", h.GetCar)

	flights := api.Group("/flights")
	flights.POST("/search", h.SearchFlights)
	flights.GET("/:id", h.GetFlight)

	hotels := api.Group("/hotels")
	hotels.POST("/search", h.SearchHotels)
	hotels.GET("/:id", h.GetHotel)

	admin := api.Group("/cache")
	admin.GET("/stats", h.CacheStats)
	admin.POST("/reset", h.CacheReset)
	admin.GET("/health", h.CacheHealth)
}
