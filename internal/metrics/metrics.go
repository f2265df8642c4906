package metrics

import (
	"sync"
	"time"
)

type sourceStats struct {
	fetches          int
	errors           int
	rateLimitHits    int
	lastRetryAfter   time.Duration
	lastFetchLatency time.Duration
}

type loadStats struct {
	cycles       int
	failures     int
	lastDuration time.Duration
	timeslots    int
	teams        int
}

// Recorder captures lightweight, in-memory metrics about document fetches and
// board loads, mirroring them into OpenTelemetry instruments when configured.
type Recorder struct {
	mu    sync.Mutex
	stats map[string]*sourceStats
	loads loadStats
	otel  *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats: make(map[string]*sourceStats),
		otel:  otel,
	}
}

// RecordFetchAttempt increments counters for one document fetch and stores the
// last observed latency. In-memory stats are kept per source; document only
// labels the exported series.
func (r *Recorder) RecordFetchAttempt(source, document string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStats(source)
	stats.fetches++
	stats.lastFetchLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordFetchAttempt(source, document, duration, err)
	}
}

// RecordRateLimit tracks that a source answered 429 and stores the last Retry-After.
func (r *Recorder) RecordRateLimit(source string, retryAfter time.Duration) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStats(source)
	stats.rateLimitHits++
	if retryAfter > 0 {
		stats.lastRetryAfter = retryAfter
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordRateLimit(source, retryAfter)
	}
}

// RecordLoadCycle tracks one full board load (both documents plus parsing).
func (r *Recorder) RecordLoadCycle(duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.loads.cycles++
	r.loads.lastDuration = duration
	if err != nil {
		r.loads.failures++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordLoad(duration, err)
	}
}

// RecordBoardSize stores the shape of the board that was just loaded. It is
// exported as gauges, so only the latest value matters.
func (r *Recorder) RecordBoardSize(timeslots, teams int) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.loads.timeslots = timeslots
	r.loads.teams = teams
	r.mu.Unlock()
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// Snapshot is a copy of the current stats for a source.
type Snapshot struct {
	Fetches          int
	Errors           int
	RateLimitHits    int
	LastRetryAfter   time.Duration
	LastFetchLatency time.Duration
}

func (r *Recorder) Snapshot(source string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[source]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Fetches:          stats.fetches,
		Errors:           stats.errors,
		RateLimitHits:    stats.rateLimitHits,
		LastRetryAfter:   stats.lastRetryAfter,
		LastFetchLatency: stats.lastFetchLatency,
	}
}

// Fetches returns the total attempts recorded for a source.
func (r *Recorder) Fetches(source string) int {
	return r.Snapshot(source).Fetches
}

// FetchErrors returns the total failed attempts recorded for a source.
func (r *Recorder) FetchErrors(source string) int {
	return r.Snapshot(source).Errors
}

// RateLimitHits returns the number of rate limit events seen for a source.
func (r *Recorder) RateLimitHits(source string) int {
	return r.Snapshot(source).RateLimitHits
}

// LoadSnapshot is a copy of the load-cycle stats.
type LoadSnapshot struct {
	Cycles       int
	Failures     int
	LastDuration time.Duration
	Timeslots    int
	Teams        int
}

func (r *Recorder) Loads() LoadSnapshot {
	if r == nil {
		return LoadSnapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return LoadSnapshot{
		Cycles:       r.loads.cycles,
		Failures:     r.loads.failures,
		LastDuration: r.loads.lastDuration,
		Timeslots:    r.loads.timeslots,
		Teams:        r.loads.teams,
	}
}

// ensureStats must be called with r.mu held.
func (r *Recorder) ensureStats(source string) *sourceStats {
	stats, ok := r.stats[source]
	if !ok {
		stats = &sourceStats{}
		r.stats[source] = stats
	}
	return stats
}
