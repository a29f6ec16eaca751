// Package metrics provides the in-process cache metrics recorder.
// Counters are mutated on every cache lookup outcome and exposed both as a
// resettable JSON snapshot (for the admin stats endpoint) and as Prometheus
// collectors (for scraping).
package metrics

import (
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/tripdeck/listing-search/internal/domain"
	"github.com/tripdeck/listing-search/internal/infrastructure/timeutil"
)

// counters holds the per-domain counter set. Each counter is incremented
// atomically; no cross-counter atomicity is needed (hits+misses==requests
// holds eventually under concurrent snapshot reads).
type counters struct {
	hits        atomic.Int64
	misses      atomic.Int64
	latencyMs   atomic.Int64
	cacheErrors atomic.Int64
}

func (c *counters) reset() {
	c.hits.Store(0)
	c.misses.Store(0)
	c.latencyMs.Store(0)
	c.cacheErrors.Store(0)
}

// Recorder tracks cache hits, misses, latency, and swallowed cache errors
// per listing domain. Recording against an unknown domain is a no-op so that
// metrics can never fail a search request.
type Recorder struct {
	domains map[domain.Domain]*counters
	startAt atomic.Int64
	clock   timeutil.Clock

	promHits    *prometheus.CounterVec
	promMisses  *prometheus.CounterVec
	promErrors  *prometheus.CounterVec
	promLatency *prometheus.HistogramVec
}

// NewRecorder creates a Recorder for all listing domains.
// When reg is non-nil the recorder also registers Prometheus mirrors of its
// counters; pass nil in tests that don't scrape.
func NewRecorder(reg *prometheus.Registry, clock timeutil.Clock) *Recorder {
	if clock == nil {
		clock = timeutil.NewRealClock()
	}

	r := &Recorder{
		domains: make(map[domain.Domain]*counters, len(domain.AllDomains())),
		clock:   clock,
	}
	for _, d := range domain.AllDomains() {
		r.domains[d] = &counters{}
	}
	r.startAt.Store(clock.Now().UnixMilli())

	if reg != nil {
		r.promHits = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "listing_cache_hits_total",
			Help: "Cache hits per listing domain",
		}, []string{"domain"})
		r.promMisses = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "listing_cache_misses_total",
			Help: "Cache misses per listing domain",
		}, []string{"domain"})
		r.promErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "listing_cache_errors_total",
			Help: "Swallowed cache store errors per listing domain",
		}, []string{"domain"})
		r.promLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "listing_search_latency_ms",
			Help:    "Search latency in milliseconds per listing domain",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		}, []string{"domain", "outcome"})

		reg.MustRegister(r.promHits, r.promMisses, r.promErrors, r.promLatency)
	}

	return r
}

// RecordHit records a cache hit with the lookup latency.
func (r *Recorder) RecordHit(d domain.Domain, latency time.Duration) {
	c, ok := r.domains[d]
	if !ok {
		return
	}
	c.hits.Add(1)
	c.latencyMs.Add(latency.Milliseconds())

	if r.promHits != nil {
		r.promHits.WithLabelValues(d.String()).Inc()
		r.promLatency.WithLabelValues(d.String(), "hit").Observe(float64(latency.Milliseconds()))
	}
}

// RecordMiss records a cache miss with the total (lookup + compute) latency.
func (r *Recorder) RecordMiss(d domain.Domain, latency time.Duration) {
	c, ok := r.domains[d]
	if !ok {
		return
	}
	c.misses.Add(1)
	c.latencyMs.Add(latency.Milliseconds())

	if r.promMisses != nil {
		r.promMisses.WithLabelValues(d.String()).Inc()
		r.promLatency.WithLabelValues(d.String(), "miss").Observe(float64(latency.Milliseconds()))
	}
}

// RecordCacheError counts a swallowed cache store failure. The failure never
// reaches the caller, but it must stay observable through the stats endpoint.
func (r *Recorder) RecordCacheError(d domain.Domain) {
	c, ok := r.domains[d]
	if !ok {
		return
	}
	c.cacheErrors.Add(1)

	if r.promErrors != nil {
		r.promErrors.WithLabelValues(d.String()).Inc()
	}
}

// Reset zeroes all counters and restarts the uptime clock. The
// Prometheus mirrors stay cumulative and are not reset.
func (r *Recorder) Reset() {
	for _, c := range r.domains {
		c.reset()
	}
	r.startAt.Store(r.clock.Now().UnixMilli())
}

// DomainStats is the per-domain slice of a snapshot.
type DomainStats struct {
	// Hits is the cache hit count since the last reset
	Hits int64 `json:"hits"`

	// Misses is the cache miss count since the last reset
	Misses int64 `json:"misses"`

	// Requests is hits + misses
	Requests int64 `json:"requests"`

	// HitRate is hits/requests, 0 when requests is 0
	HitRate float64 `json:"hitRate"`

	// AvgLatencyMs is cumulative latency / requests, 0 when requests is 0
	AvgLatencyMs float64 `json:"avgLatencyMs"`

	// CacheErrors is the number of swallowed cache store failures
	CacheErrors int64 `json:"cacheErrors"`
}

// Snapshot is a point-in-time view of all counters.
type Snapshot struct {
	// Domains holds the per-domain stats keyed by domain name
	Domains map[string]DomainStats `json:"domains"`

	// Aggregate sums hits/misses/requests across all domains
	Aggregate DomainStats `json:"aggregate"`

	// UptimeSeconds is the time since start or the last reset
	UptimeSeconds int64 `json:"uptimeSeconds"`
}

// Snapshot returns the current counter values with derived rates.
func (r *Recorder) Snapshot() Snapshot {
	snap := Snapshot{
		Domains: make(map[string]DomainStats, len(r.domains)),
	}

	var aggHits, aggMisses, aggLatency, aggErrors int64
	for d, c := range r.domains {
		stats := buildStats(c.hits.Load(), c.misses.Load(), c.latencyMs.Load(), c.cacheErrors.Load())
		snap.Domains[d.String()] = stats

		aggHits += stats.Hits
		aggMisses += stats.Misses
		aggLatency += c.latencyMs.Load()
		aggErrors += stats.CacheErrors
	}

	snap.Aggregate = buildStats(aggHits, aggMisses, aggLatency, aggErrors)
	snap.UptimeSeconds = (r.clock.Now().UnixMilli() - r.startAt.Load()) / 1000
	return snap
}

// buildStats derives rates from raw counter values.
func buildStats(hits, misses, latencyMs, cacheErrors int64) DomainStats {
	stats := DomainStats{
		Hits:        hits,
		Misses:      misses,
		Requests:    hits + misses,
		CacheErrors: cacheErrors,
	}
	if stats.Requests > 0 {
		stats.HitRate = float64(stats.Hits) / float64(stats.Requests)
		stats.AvgLatencyMs = float64(latencyMs) / float64(stats.Requests)
	}
	return stats
}
