package queryengine

import (
	"fmt"
	"strings"

	"github.com/XiPeng415/kg-explorer/store"
)

// handleStatistics computes distribution statistics for a recognized
// metric. When the question names no metric it falls back to count-style
// answers: category count, then facility count, then dataset size.
func (e *Engine) handleStatistics(cls Classification) (*QueryResult, error) {
	metric, ok := MatchMetric(cls.Query)
	if !ok {
		if category, ok := MatchCategory(cls.Query); ok {
			return e.categoryCount(category)
		}
		if facility, ok := MatchFacility(cls.Query, e.aggregator.FacilityTypes()); ok {
			return e.facilityCount(facility)
		}
		return e.datasetSize()
	}

	values := metricValues(metric, e.store.Parcels())
	if len(values) == 0 {
		return &QueryResult{
			Title: fmt.Sprintf("%s Statistics", metric.Label()),
			Type:  ResultTypeStatistic,
			HTML:  fmt.Sprintf("<p>No parcels have a recorded value for %s.</p>", esc(metric.Label())),
		}, nil
	}

	lo, hi := minMax(values)
	avg := mean(values)

	var b strings.Builder
	b.WriteString(statCards([]statCard{
		{Label: "Parcels", Value: fmt.Sprintf("%d", len(values))},
		{Label: "Total", Value: fmtMetricValue(metric, sum(values))},
		{Label: "Mean", Value: fmtMetricValue(metric, avg)},
		{Label: "Median", Value: fmtMetricValue(metric, median(values))},
		{Label: "Std Dev", Value: fmtMetricValue(metric, stddev(values))},
		{Label: "Min", Value: fmtMetricValue(metric, lo)},
		{Label: "Max", Value: fmtMetricValue(metric, hi)},
	}))

	unit := metric.Unit()
	if unit != "" {
		unit = " " + unit
	}
	b.WriteString(e.insight(fmt.Sprintf("**%s** ranges from %s to %s%s across %d parcels, with a mean of %s%s.",
		metric.Label(), fmtMetricValue(metric, lo), fmtMetricValue(metric, hi), unit,
		len(values), fmtMetricValue(metric, avg), unit)))

	rows := make([][]string, 0, len(store.Categories()))
	for _, c := range store.Categories() {
		stats := e.aggregator.Category(c)
		if stats.Count == 0 {
			continue
		}
		ms := stats.Metrics[metric]
		rows = append(rows, []string{c.String(), fmt.Sprintf("%d", ms.Count), fmtMetricValue(metric, ms.Mean)})
	}
	b.WriteString("<h4>By Category</h4>")
	b.WriteString(htmlTable([]string{"Category", "Parcels", withUnit("Mean", metric.Unit())}, rows))

	counts, edges := histogram(values, e.config.Histogram.Bins)
	labels := make([]string, len(counts))
	data := make([]float64, len(counts))
	for i, n := range counts {
		labels[i] = fmt.Sprintf("%s to %s",
			fmtNumber(edges[i], metric.Decimals()), fmtNumber(edges[i+1], metric.Decimals()))
		data[i] = float64(n)
	}

	return &QueryResult{
		Title: fmt.Sprintf("%s Statistics", metric.Label()),
		Type:  ResultTypeStatistic,
		HTML:  b.String(),
		Chart: &ChartSpec{
			Kind:     ChartBar,
			Labels:   labels,
			Datasets: []ChartDataset{{Label: "Parcels", Data: data, Color: "#3498db"}},
		},
	}, nil
}

// categoryCount answers "how many parcels are X" style questions.
func (e *Engine) categoryCount(category store.Category) (*QueryResult, error) {
	stats := e.aggregator.Category(category)
	total := e.store.ParcelCount()
	members := e.aggregator.Members(category)
	highlights := make([]string, 0, len(members))
	for _, p := range members {
		highlights = append(highlights, p.ID)
	}

	var b strings.Builder
	b.WriteString(statCards([]statCard{
		{Label: "Parcels", Value: fmt.Sprintf("%d", stats.Count)},
		{Label: "Share of dataset", Value: fmtPercent(float64(stats.Count), float64(total))},
	}))
	b.WriteString(e.insight(fmt.Sprintf("**%d** of the %d parcels (%s) are classified as **%s**.",
		stats.Count, total, fmtPercent(float64(stats.Count), float64(total)), category)))

	return &QueryResult{
		Title:         fmt.Sprintf("%s Parcel Count", category),
		Type:          ResultTypeStatistic,
		HTML:          b.String(),
		MapHighlights: highlights,
	}, nil
}

// facilityCount answers count questions about one facility type.
func (e *Engine) facilityCount(facility string) (*QueryResult, error) {
	total := e.store.ParcelCount()
	highlights := make([]string, 0, total)
	for _, p := range e.store.Parcels() {
		if p.HasFacility(facility) {
			highlights = append(highlights, p.ID)
		}
	}

	var b strings.Builder
	b.WriteString(statCards([]statCard{
		{Label: "Parcels with access", Value: fmt.Sprintf("%d", len(highlights))},
		{Label: "Share of dataset", Value: fmtPercent(float64(len(highlights)), float64(total))},
	}))
	b.WriteString(e.insight(fmt.Sprintf("**%d** of the %d parcels have access to a **%s**.",
		len(highlights), total, facility)))

	return &QueryResult{
		Title:         fmt.Sprintf("Parcels with %s Access", facility),
		Type:          ResultTypeStatistic,
		HTML:          b.String(),
		MapHighlights: highlights,
	}, nil
}

// datasetSize is the last count fallback: bare dataset dimensions.
func (e *Engine) datasetSize() (*QueryResult, error) {
	return &QueryResult{
		Title: "Dataset Size",
		Type:  ResultTypeStatistic,
		HTML: statCards([]statCard{
			{Label: "Parcels", Value: fmt.Sprintf("%d", e.store.ParcelCount())},
			{Label: "Relationships", Value: fmt.Sprintf("%d", e.store.EdgeCount())},
			{Label: "Facility types", Value: fmt.Sprintf("%d", len(e.aggregator.FacilityTypes()))},
		}),
	}, nil
}
