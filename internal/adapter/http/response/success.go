package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthResponse represents the service health check response.
type HealthResponse struct {
	Status string `json:"status"`
}

// Health writes a health check response.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, &HealthResponse{
		Status: "ok",
	})
}

// CacheHealthResponse reports per-domain cache store connectivity.
type CacheHealthResponse struct {
	// Status is "healthy" iff every domain store is connected, else "degraded"
	Status string `json:"status"`

	// Domains maps each listing domain to its store's connected flag
	Domains map[string]bool `json:"domains"`
}

// CacheStatsResponse combines the metrics snapshot with per-domain key counts.
type CacheStatsResponse struct {
	// Metrics is the recorder snapshot
	Metrics interface{} `json:"metrics"`

	// KeyCounts maps each listing domain to its live cache key count.
	// A disconnected store reports -1.
	KeyCounts map[string]int64 `json:"keyCounts"`
}
