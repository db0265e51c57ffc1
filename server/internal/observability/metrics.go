package observability

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// Metrics collects and aggregates metrics for query handling.
type Metrics struct {
	mu sync.Mutex

	// Counters
	requestTotal  atomic.Int64
	requestFailed atomic.Int64
	cacheHits     atomic.Int64

	// Intent-specific metrics
	intentMetrics map[string]*IntentMetrics

	// Duration window for latency percentiles
	durations    []time.Duration
	maxDurations int
}

// IntentMetrics represents metrics for a specific intent.
type IntentMetrics struct {
	executionCount atomic.Int64
	totalDuration  atomic.Int64 // milliseconds
	errorCount     atomic.Int64
}

// NewMetrics creates a new metrics collector.
func NewMetrics(maxDurations int) *Metrics {
	if maxDurations <= 0 {
		maxDurations = 1000 // Default to keeping last 1000 durations
	}
	return &Metrics{
		intentMetrics: make(map[string]*IntentMetrics),
		durations:     make([]time.Duration, 0, maxDurations),
		maxDurations:  maxDurations,
	}
}

// Global metrics instance.
var globalMetrics = NewMetrics(1000)

// GlobalMetrics returns the global metrics instance.
func GlobalMetrics() *Metrics {
	return globalMetrics
}

// RecordQuery records a handled query.
func (m *Metrics) RecordQuery(intent string) {
	m.requestTotal.Add(1)
	m.getIntentMetrics(intent).executionCount.Add(1)
}

// RecordFailure records a query that produced an error result.
func (m *Metrics) RecordFailure(intent string) {
	m.requestFailed.Add(1)
	m.getIntentMetrics(intent).errorCount.Add(1)
}

// RecordCacheHit records a query answered from the result cache.
func (m *Metrics) RecordCacheHit() {
	m.cacheHits.Add(1)
}

// RecordDuration records a query duration.
func (m *Metrics) RecordDuration(intent string, duration time.Duration) {
	m.mu.Lock()
	if len(m.durations) >= m.maxDurations {
		// Remove oldest duration (FIFO)
		m.durations = m.durations[1:]
	}
	m.durations = append(m.durations, duration)
	m.mu.Unlock()

	m.getIntentMetrics(intent).totalDuration.Add(duration.Milliseconds())
}

// GetRequestTotal returns the total number of queries.
func (m *Metrics) GetRequestTotal() int64 {
	return m.requestTotal.Load()
}

// GetRequestFailed returns the total number of failed queries.
func (m *Metrics) GetRequestFailed() int64 {
	return m.requestFailed.Load()
}

// GetCacheHits returns the total number of cache hits.
func (m *Metrics) GetCacheHits() int64 {
	return m.cacheHits.Load()
}

// getIntentMetrics gets or creates intent metrics.
func (m *Metrics) getIntentMetrics(intent string) *IntentMetrics {
	m.mu.Lock()
	defer m.mu.Unlock()

	im, ok := m.intentMetrics[intent]
	if !ok {
		im = &IntentMetrics{}
		m.intentMetrics[intent] = im
	}
	return im
}

// GetAverageDuration returns the average duration in milliseconds for an intent.
func (m *Metrics) GetAverageDuration(intent string) int64 {
	im := m.getIntentMetrics(intent)
	count := im.executionCount.Load()
	if count == 0 {
		return 0
	}
	return im.totalDuration.Load() / count
}

// GetAllIntents returns all intents that have been recorded.
func (m *Metrics) GetAllIntents() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	intents := make([]string, 0, len(m.intentMetrics))
	for intent := range m.intentMetrics {
		intents = append(intents, intent)
	}
	sort.Strings(intents)
	return intents
}

// Reset resets all metrics (useful for testing).
func (m *Metrics) Reset() {
	m.requestTotal.Store(0)
	m.requestFailed.Store(0)
	m.cacheHits.Store(0)

	m.mu.Lock()
	m.intentMetrics = make(map[string]*IntentMetrics)
	m.durations = make([]time.Duration, 0, m.maxDurations)
	m.mu.Unlock()
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() *MetricsSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	intentSnapshots := make(map[string]*IntentMetricsSnapshot, len(m.intentMetrics))
	for intent, im := range m.intentMetrics {
		count := im.executionCount.Load()
		total := im.totalDuration.Load()
		avg := int64(0)
		if count > 0 {
			avg = total / count
		}
		intentSnapshots[intent] = &IntentMetricsSnapshot{
			ExecutionCount:  count,
			TotalDuration:   total,
			ErrorCount:      im.errorCount.Load(),
			AverageDuration: avg,
		}
	}

	return &MetricsSnapshot{
		RequestTotal:  m.requestTotal.Load(),
		RequestFailed: m.requestFailed.Load(),
		CacheHits:     m.cacheHits.Load(),
		IntentMetrics: intentSnapshots,
		DurationCount: len(m.durations),
		AvgLatencyMs:  averageMs(m.durations),
		P50LatencyMs:  percentileMs(m.durations, 50),
		P95LatencyMs:  percentileMs(m.durations, 95),
	}
}

// MetricsSnapshot represents a point-in-time snapshot of metrics.
type MetricsSnapshot struct {
	RequestTotal  int64
	RequestFailed int64
	CacheHits     int64
	IntentMetrics map[string]*IntentMetricsSnapshot
	DurationCount int
	AvgLatencyMs  float64
	P50LatencyMs  float64
	P95LatencyMs  float64
}

// IntentMetricsSnapshot represents metrics for a specific intent.
type IntentMetricsSnapshot struct {
	ExecutionCount  int64
	TotalDuration   int64
	ErrorCount      int64
	AverageDuration int64
}

// SuccessRate returns the success rate as a percentage (0-100).
func (s *MetricsSnapshot) SuccessRate() float64 {
	if s.RequestTotal == 0 {
		return 100.0
	}
	return float64(s.RequestTotal-s.RequestFailed) / float64(s.RequestTotal) * 100.0
}

// averageMs returns the mean duration in milliseconds.
func averageMs(durations []time.Duration) float64 {
	if len(durations) == 0 {
		return 0
	}
	var total time.Duration
	for _, d := range durations {
		total += d
	}
	return float64(total.Microseconds()) / float64(len(durations)) / 1000.0
}

// percentileMs returns the p-th percentile duration in milliseconds
// using the nearest-rank method.
func percentileMs(durations []time.Duration, p int) float64 {
	if len(durations) == 0 {
		return 0
	}
	sorted := make([]time.Duration, len(durations))
	copy(sorted, durations)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	rank := (p*len(sorted) + 99) / 100
	if rank < 1 {
		rank = 1
	}
	if rank > len(sorted) {
		rank = len(sorted)
	}
	return float64(sorted[rank-1].Microseconds()) / 1000.0
}
