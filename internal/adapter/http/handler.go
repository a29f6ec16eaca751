package http

import (
	"context"
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/tripdeck/listing-search/internal/adapter/http/response"
	"github.com/tripdeck/listing-search/internal/cache"
	"github.com/tripdeck/listing-search/internal/domain"
	"github.com/tripdeck/listing-search/internal/metrics"
	"github.com/tripdeck/listing-search/internal/usecase"
)

// ListingHandler handles HTTP requests for listing search and the cache
// admin endpoints.
type ListingHandler struct {
	service  *usecase.SearchService
	stores   map[domain.Domain]cache.Store
	recorder *metrics.Recorder
}

// NewListingHandler creates a ListingHandler.
func NewListingHandler(service *usecase.SearchService, stores map[domain.Domain]cache.Store, recorder *metrics.Recorder) *ListingHandler {
	return &ListingHandler{
		service:  service,
		stores:   stores,
		recorder: recorder,
	}
}

// SearchCars handles POST /api/v1/cars/search
//
// @Summary Search rental cars
// @Description Search car listings with optional filters, availability dates, sorting, and pagination
// @Tags cars
// @Accept json
// @Produce json
// @Param request body domain.CarFilter true "Search filter"
// @Success 200 {object} usecase.CarSearchResponse
// @Failure 400 {object} response.ErrorDetail "Invalid filter"
// @Failure 500 {object} response.ErrorDetail "Backing store failure"
// @Router /api/v1/cars/search [post]
func (h *ListingHandler) SearchCars(c echo.Context) error {
	var filter domain.CarFilter
	if err := c.Bind(&filter); err != nil {
		return response.InvalidRequestBody(c)
	}

	result, err := h.service.SearchCars(c.Request().Context(), filter)
	if err != nil {
		return h.handleError(c, err, carSearchExample)
	}
	return response.OK(c, result)
}

// SearchFlights handles POST /api/v1/flights/search
//
// @Summary Search flights
// @Description Search flight listings; a returnDate produces a tagged round-trip result with independent outbound and return lists
// @Tags flights
// @Accept json
// @Produce json
// @Param request body domain.FlightFilter true "Search filter"
// @Success 200 {object} usecase.FlightSearchResponse
// @Failure 400 {object} response.ErrorDetail "Invalid filter"
// @Failure 500 {object} response.ErrorDetail "Backing store failure"
// @Router /api/v1/flights/search [post]
func (h *ListingHandler) SearchFlights(c echo.Context) error {
	var filter domain.FlightFilter
	if err := c.Bind(&filter); err != nil {
		return response.InvalidRequestBody(c)
	}

	result, err := h.service.SearchFlights(c.Request().Context(), filter)
	if err != nil {
		return h.handleError(c, err, flightSearchExample)
	}
	return response.OK(c, result)
}

// SearchHotels handles POST /api/v1/hotels/search
//
// @Summary Search hotels
// @Description Search hotel listings with optional filters, stay dates, sorting, and pagination
// @Tags hotels
// @Accept json
// @Produce json
// @Param request body domain.HotelFilter true "Search filter"
// @Success 200 {object} usecase.HotelSearchResponse
// @Failure 400 {object} response.ErrorDetail "Invalid filter"
// @Failure 500 {object} response.ErrorDetail "Backing store failure"
// @Router /api/v1/hotels/search [post]
func (h *ListingHandler) SearchHotels(c echo.Context) error {
	var filter domain.HotelFilter
	if err := c.Bind(&filter); err != nil {
		return response.InvalidRequestBody(c)
	}

	result, err := h.service.SearchHotels(c.Request().Context(), filter)
	if err != nil {
		return h.handleError(c, err, hotelSearchExample)
	}
	return response.OK(c, result)
}

// GetCar handles GET /api/v1/cars/:id
//
// @Summary Get one car listing
// @Tags cars
// @Produce json
// @Param id path string true "Car id"
// @Success 200 {object} usecase.CarDetailResponse
// @Failure 404 {object} response.ErrorDetail
// @Router /api/v1/cars/{id} [get]
func (h *ListingHandler) GetCar(c echo.Context) error {
	result, err := h.service.GetCar(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.handleError(c, err, nil)
	}
	return response.OK(c, result)
}

// GetFlight handles GET /api/v1/flights/:id
//
// @Summary Get one flight listing
// @Tags flights
// @Produce json
// @Param id path string true "Flight id"
// @Success 200 {object} usecase.FlightDetailResponse
// @Failure 404 {object} response.ErrorDetail
// @Router /api/v1/flights/{id} [get]
func (h *ListingHandler) GetFlight(c echo.Context) error {
	result, err := h.service.GetFlight(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.handleError(c, err, nil)
	}
	return response.OK(c, result)
}

// GetHotel handles GET /api/v1/hotels/:id
//
// @Summary Get one hotel listing
// @Tags hotels
// @Produce json
// @Param id path string true "Hotel id"
// @Success 200 {object} usecase.HotelDetailResponse
// @Failure 404 {object} response.ErrorDetail
// @Router /api/v1/hotels/{id} [get]
func (h *ListingHandler) GetHotel(c echo.Context) error {
	result, err := h.service.GetHotel(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.handleError(c, err, nil)
	}
	return response.OK(c, result)
}

// CacheStats handles GET /api/v1/cache/stats
//
// @Summary Cache metrics snapshot with per-domain key counts
// @Tags cache
// @Produce json
// @Success 200 {object} response.CacheStatsResponse
// @Router /api/v1/cache/stats [get]
func (h *ListingHandler) CacheStats(c echo.Context) error {
	stats := &response.CacheStatsResponse{
		Metrics:   h.recorder.Snapshot(),
		KeyCounts: h.keyCounts(c.Request().Context()),
	}
	return response.OK(c, stats)
}

// CacheReset handles POST /api/v1/cache/reset
//
// @Summary Reset all cache metrics counters
// @Tags cache
// @Success 204
// @Router /api/v1/cache/reset [post]
func (h *ListingHandler) CacheReset(c echo.Context) error {
	h.recorder.Reset()
	return response.NoContent(c)
}

// CacheHealth handles GET /api/v1/cache/health
//
// @Summary Per-domain cache store connectivity
// @Tags cache
// @Produce json
// @Success 200 {object} response.CacheHealthResponse
// @Router /api/v1/cache/health [get]
func (h *ListingHandler) CacheHealth(c echo.Context) error {
	health := &response.CacheHealthResponse{
		Status:  "healthy",
		Domains: make(map[string]bool, len(h.stores)),
	}
	for d, store := range h.stores {
		connected := store.Connected()
		health.Domains[d.String()] = connected
		if !connected {
			health.Status = "degraded"
		}
	}
	return response.OK(c, health)
}

// Health handles GET /health.
func (h *ListingHandler) Health(c echo.Context) error {
	return response.Health(c)
}

// keyCounts gathers per-domain live key counts; disconnected stores report -1.
func (h *ListingHandler) keyCounts(ctx context.Context) map[string]int64 {
	counts := make(map[string]int64, len(h.stores))
	for d, store := range h.stores {
		n, err := store.KeyCount(ctx)
		if err != nil {
			counts[d.String()] = -1
			continue
		}
		counts[d.String()] = n
	}
	return counts
}

// handleError maps domain errors to HTTP responses.
func (h *ListingHandler) handleError(c echo.Context, err error, example interface{}) error {
	switch {
	case errors.Is(err, domain.ErrInvalidFilter):
		return response.InvalidFilter(c, err.Error(), example)
	case errors.Is(err, domain.ErrListingNotFound):
		return response.NotFound(c)
	case errors.Is(err, domain.ErrStoreQuery):
		return response.ComposeFailure(c)
	default:
		return response.InternalServerError(c)
	}
}
