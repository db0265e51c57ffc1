package queryengine

import (
	"math"
	"sort"
)

func sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return sum(values) / float64(len(values))
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// stddev computes the sample standard deviation (N-1 denominator).
// Defined as 0 when fewer than 2 values are present.
func stddev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	var sq float64
	for _, v := range values {
		d := v - m
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(values)-1))
}

func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func minMax(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// histogram bins values into equal-width buckets over [min,max] and
// returns the per-bin counts plus the bins+1 bin edges. The bin width
// defaults to 1 when min == max, and values equal to max land in the
// last bin rather than an out-of-range one.
func histogram(values []float64, bins int) ([]int, []float64) {
	counts := make([]int, bins)
	edges := make([]float64, bins+1)
	if len(values) == 0 || bins <= 0 {
		return counts, edges
	}

	lo, hi := minMax(values)
	width := (hi - lo) / float64(bins)
	if width == 0 {
		width = 1
	}
	for i := range edges {
		edges[i] = lo + float64(i)*width
	}
	for _, v := range values {
		idx := int((v - lo) / width)
		if idx >= bins {
			idx = bins - 1
		}
		counts[idx]++
	}
	return counts, edges
}
