// Package main is the entry point for the listing search service.
//
//	@title						Listing Search API
//	@version					1.0.0
//	@description				A caching search layer over car, flight, and hotel listings with per-domain Redis caches, availability resolution, and cache observability endpoints.
//
//	@contact.name				API Support
//	@contact.url				https://github.com/tripdeck/listing-search/issues
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/api/v1
//
//	@schemes					http https
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	// Import generated docs for swagger
	_ "github.com/tripdeck/listing-search/docs"

	listinghttp "github.com/tripdeck/listing-search/internal/adapter/http"
	"github.com/tripdeck/listing-search/internal/adapter/http/middleware"
	"github.com/tripdeck/listing-search/internal/cache"
	"github.com/tripdeck/listing-search/internal/config"
	"github.com/tripdeck/listing-search/internal/domain"
	"github.com/tripdeck/listing-search/internal/infrastructure/logger"
	"github.com/tripdeck/listing-search/internal/infrastructure/timeutil"
	"github.com/tripdeck/listing-search/internal/metrics"
	"github.com/tripdeck/listing-search/internal/repository"
	memoryrepo "github.com/tripdeck/listing-search/internal/repository/memory"
	mysqlrepo "github.com/tripdeck/listing-search/internal/repository/mysql"
	"github.com/tripdeck/listing-search/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.MustLoad()

	log := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		ServiceName: "listing-search",
	})

	log.Info().
		Str("env", cfg.App.Env).
		Int("port", cfg.Server.Port).
		Str("repository_driver", cfg.Database.Driver).
		Msg("Configuration loaded")

	repos, err := buildRepositories(cfg, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize repositories")
	}

	stores := buildStores(cfg, log)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	recorder := metrics.NewRecorder(registry, timeutil.NewRealClock())

	composer := usecase.NewComposer(repos)
	service := usecase.NewSearchService(stores, composer, recorder, &usecase.Config{
		SearchTTL: cfg.Cache.SearchTTL,
		DetailTTL: cfg.Cache.DetailTTL,
	}, log.Logger)

	handler := listinghttp.NewListingHandler(service, stores, recorder)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	middleware.Setup(e, log)
	listinghttp.RegisterRoutes(e, handler)

	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	go func() {
		log.Info().Str("address", addr).Msg("Starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	gracefulShutdown(e, stores, log.Logger)
}

// buildRepositories selects the backing store from configuration.
// The memory driver serves seeded demo data and needs no external services.
func buildRepositories(cfg *config.Config, log zerolog.Logger) (repository.Listings, error) {
	switch cfg.Database.Driver {
	case "memory":
		log.Info().Msg("Using in-memory repository with seeded demo data")
		return memoryrepo.Seeded().Listings(), nil
	default:
		repo, err := mysqlrepo.New(cfg.Database.DSN)
		if err != nil {
			return repository.Listings{}, fmt.Errorf("connect mysql: %w", err)
		}
		return repo.Listings(), nil
	}
}

// buildStores creates one cache store per listing domain, each bound to
// its own Redis database. A Redis that is down at startup is tolerated;
// the stores run degraded and reconnect in the background.
func buildStores(cfg *config.Config, log *logger.Logger) map[domain.Domain]cache.Store {
	dbs := map[domain.Domain]int{
		domain.DomainCars:    cfg.Cache.CarsDB,
		domain.DomainFlights: cfg.Cache.FlightsDB,
		domain.DomainHotels:  cfg.Cache.HotelsDB,
	}

	stores := make(map[domain.Domain]cache.Store, len(dbs))
	for d, db := range dbs {
		stores[d] = cache.NewRedisStore(d, &redis.Options{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       db,
		}, log.WithDomain(d.String()).Logger)
	}
	return stores
}

// gracefulShutdown drains in-flight requests and closes cache connections
// on SIGINT or SIGTERM.
func gracefulShutdown(e *echo.Echo, stores map[domain.Domain]cache.Store, log zerolog.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	for d, s := range stores {
		if closer, ok := s.(interface{ Close() error }); ok {
			if err := closer.Close(); err != nil {
				log.Warn().Err(err).Str("domain", d.String()).Msg("Error closing cache store")
			}
		}
	}

	log.Info().Msg("Server stopped")
}
