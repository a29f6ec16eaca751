// Package integration provides helpers and integration tests for the listing
// search system. Integration tests verify that components work together
// correctly: HTTP handlers, the search orchestrator, cache stores, and the
// in-memory repositories.
package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/labstack/echo/v4"

	httpAdapter "github.com/tripdeck/listing-search/internal/adapter/http"
	"github.com/tripdeck/listing-search/internal/cache"
	"github.com/tripdeck/listing-search/internal/domain"
	"github.com/tripdeck/listing-search/internal/infrastructure/logger"
	"github.com/tripdeck/listing-search/internal/metrics"
	memoryrepo "github.com/tripdeck/listing-search/internal/repository/memory"
	"github.com/tripdeck/listing-search/internal/usecase"
)

// TestServer wires the full stack against in-memory repositories and cache
// stores, and provides helper methods for making requests against it.
type TestServer struct {
	Echo     *echo.Echo
	Repo     *memoryrepo.Store
	Stores   map[domain.Domain]cache.Store
	Recorder *metrics.Recorder
	Service  *usecase.SearchService
}

// NewTestServer creates a test server backed by the seeded demo dataset.
func NewTestServer() *TestServer {
	return NewTestServerWith(memoryrepo.Seeded())
}

// NewTestServerWith creates a test server over the given repository fixture.
func NewTestServerWith(repo *memoryrepo.Store) *TestServer {
	stores := map[domain.Domain]cache.Store{
		domain.DomainCars:    cache.NewMemoryStore(),
		domain.DomainFlights: cache.NewMemoryStore(),
		domain.DomainHotels:  cache.NewMemoryStore(),
	}

	recorder := metrics.NewRecorder(nil, nil)
	composer := usecase.NewComposer(repo.Listings())
	service := usecase.NewSearchService(stores, composer, recorder, nil, logger.Nop().Logger)

	handler := httpAdapter.NewListingHandler(service, stores, recorder)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	httpAdapter.RegisterRoutes(e, handler)

	return &TestServer{
		Echo:     e,
		Repo:     repo,
		Stores:   stores,
		Recorder: recorder,
		Service:  service,
	}
}

// Request represents a test HTTP request configuration.
type Request struct {
	Method      string
	Path        string
	Body        interface{}
	ContentType string
}

// Response represents a test HTTP response.
type Response struct {
	Code    int
	Body    []byte
	Headers http.Header
}

// Do executes a test request and returns the response.
func (ts *TestServer) Do(req Request) Response {
	var bodyReader *bytes.Reader
	if req.Body != nil {
		bodyBytes, _ := json.Marshal(req.Body)
		bodyReader = bytes.NewReader(bodyBytes)
	} else {
		bodyReader = bytes.NewReader(nil)
	}

	httpReq := httptest.NewRequest(req.Method, req.Path, bodyReader)

	if req.ContentType != "" {
		httpReq.Header.Set(echo.HeaderContentType, req.ContentType)
	} else if req.Body != nil {
		httpReq.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	ts.Echo.ServeHTTP(rec, httpReq)

	return Response{
		Code:    rec.Code,
		Body:    rec.Body.Bytes(),
		Headers: rec.Header(),
	}
}

// SearchRequest posts a search for the given domain path segment
// (cars, flights, hotels).
func (ts *TestServer) SearchRequest(segment string, body interface{}) Response {
	return ts.Do(Request{
		Method: http.MethodPost,
		Path:   "/api/v1/" + segment + "/search",
		Body:   body,
	})
}

// DetailRequest fetches a single listing by id.
func (ts *TestServer) DetailRequest(segment, id string) Response {
	return ts.Do(Request{
		Method: http.MethodGet,
		Path:   "/api/v1/" + segment + "/" + id,
	})
}

// HealthRequest makes a health check request.
func (ts *TestServer) HealthRequest() Response {
	return ts.Do(Request{
		Method: http.MethodGet,
		Path:   "/health",
	})
}

// Parse unmarshals the response body into out.
func (r *Response) Parse(out interface{}) error {
	return json.Unmarshal(r.Body, out)
}

// ParseError parses the response body to extract error information.
func (r *Response) ParseError() (map[string]interface{}, error) {
	var errResp map[string]interface{}
	if err := json.Unmarshal(r.Body, &errResp); err != nil {
		return nil, err
	}
	return errResp, nil
}
