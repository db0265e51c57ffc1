package queryengine

import (
	"math"
	"sort"

	"github.com/XiPeng415/kg-explorer/store"
)

// MetricStats holds the count, sum, and mean of one metric over a scope.
// For positive-only metrics the count covers only contributing parcels.
type MetricStats struct {
	Count int     `json:"count"`
	Sum   float64 `json:"sum"`
	Mean  float64 `json:"mean"`
}

// Stats is the aggregate shape shared by the global scope and each
// per-category scope.
type Stats struct {
	Count   int                    `json:"count"`
	Metrics map[Metric]MetricStats `json:"metrics"`
}

// Aggregator precomputes derived statistics over an immutable store
// snapshot. Everything is calculated eagerly at construction; the
// dataset never changes afterward, so there is no refresh path and the
// aggregator is safe for concurrent reads.
type Aggregator struct {
	store *store.Store

	global          Stats
	categoryStats   map[store.Category]Stats
	categoryMembers map[store.Category][]*store.Parcel
	edgeCounts      map[store.EdgeType]int
	facilityTypes   []string
	facilityCounts  map[string]int
}

// NewAggregator computes all aggregates over the given store.
func NewAggregator(s *store.Store) *Aggregator {
	a := &Aggregator{
		store:           s,
		categoryStats:   make(map[store.Category]Stats),
		categoryMembers: make(map[store.Category][]*store.Parcel),
		edgeCounts:      make(map[store.EdgeType]int),
		facilityCounts:  make(map[string]int),
	}

	parcels := s.Parcels()
	a.global = computeStats(parcels)

	for _, p := range parcels {
		a.categoryMembers[p.Category] = append(a.categoryMembers[p.Category], p)
	}
	for category, members := range a.categoryMembers {
		a.categoryStats[category] = computeStats(members)
	}

	for _, e := range s.Edges() {
		a.edgeCounts[e.Type]++
	}

	seen := make(map[string]string)
	for _, p := range parcels {
		counted := make(map[string]bool, len(p.Facilities))
		for _, f := range p.Facilities {
			key := normalize(f)
			if _, ok := seen[key]; !ok {
				seen[key] = f
			}
			// Duplicate tokens on one parcel count it once.
			if !counted[key] {
				counted[key] = true
				a.facilityCounts[seen[key]]++
			}
		}
	}
	a.facilityTypes = make([]string, 0, len(seen))
	for _, f := range seen {
		a.facilityTypes = append(a.facilityTypes, f)
	}
	sort.Strings(a.facilityTypes)

	return a
}

// computeStats builds the metric table for one parcel scope. Means over
// positive-only metrics exclude non-positive sentinel values from the
// denominator entirely.
func computeStats(parcels []*store.Parcel) Stats {
	stats := Stats{
		Count:   len(parcels),
		Metrics: make(map[Metric]MetricStats, len(Metrics())),
	}
	for _, m := range Metrics() {
		values := metricValues(m, parcels)
		ms := MetricStats{Count: len(values), Sum: sum(values)}
		if ms.Count > 0 {
			ms.Mean = ms.Sum / float64(ms.Count)
		}
		stats.Metrics[m] = ms
	}
	return stats
}

// metricValues collects the usable values of a metric: NaN and infinite
// values are dropped, and positive-only metrics drop non-positive
// sentinels as well.
func metricValues(m Metric, parcels []*store.Parcel) []float64 {
	values := make([]float64, 0, len(parcels))
	for _, p := range parcels {
		v := m.Value(p)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if m.PositiveOnly() && v <= 0 {
			continue
		}
		values = append(values, v)
	}
	return values
}

// Global returns the dataset-wide statistics.
func (a *Aggregator) Global() Stats {
	return a.global
}

// Category returns statistics scoped to one category. Categories with no
// members yield a zero-count record with no metric table, never a
// division by zero.
func (a *Aggregator) Category(c store.Category) Stats {
	if stats, ok := a.categoryStats[c]; ok {
		return stats
	}
	return Stats{Count: 0}
}

// Members returns the parcels of one category. The returned slice is
// shared; callers must not modify it.
func (a *Aggregator) Members(c store.Category) []*store.Parcel {
	return a.categoryMembers[c]
}

// EdgeTypeCounts returns a copy of the edge-type occurrence counts. Each
// stored edge is counted once under its own type.
func (a *Aggregator) EdgeTypeCounts() map[store.EdgeType]int {
	counts := make(map[store.EdgeType]int, len(a.edgeCounts))
	for t, n := range a.edgeCounts {
		counts[t] = n
	}
	return counts
}

// FacilityTypes returns the sorted universe of distinct facility tokens
// observed across all parcels.
func (a *Aggregator) FacilityTypes() []string {
	types := make([]string, len(a.facilityTypes))
	copy(types, a.facilityTypes)
	return types
}

// FacilityCounts returns a copy of the per-facility parcel counts.
func (a *Aggregator) FacilityCounts() map[string]int {
	counts := make(map[string]int, len(a.facilityCounts))
	for f, n := range a.facilityCounts {
		counts[f] = n
	}
	return counts
}
