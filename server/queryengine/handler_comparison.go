package queryengine

import (
	"fmt"
	"strings"

	qerrors "github.com/XiPeng415/kg-explorer/server/internal/errors"
	"github.com/XiPeng415/kg-explorer/store"
)

// radarMetrics are the axes of the comparison radar. Each axis is
// normalized by the larger of the two category means so the bigger side
// always touches 1.0.
var radarMetrics = []Metric{MetricFloorArea, MetricEnergy, MetricBuildings, MetricUnits}

// handleComparison puts two categories side by side.
func (e *Engine) handleComparison(cls Classification) (*QueryResult, error) {
	left, leftOK := MatchCategory(cls.Left)
	right, rightOK := MatchCategory(cls.Right)
	switch {
	case !leftOK && !rightOK:
		return nil, qerrors.NotFound(fmt.Sprintf("no category recognized in %q or %q", cls.Left, cls.Right))
	case !leftOK:
		return nil, qerrors.NotFound(fmt.Sprintf("no category recognized in %q", cls.Left))
	case !rightOK:
		return nil, qerrors.NotFound(fmt.Sprintf("no category recognized in %q", cls.Right))
	}

	leftStats := e.aggregator.Category(left)
	rightStats := e.aggregator.Category(right)
	if leftStats.Count == 0 {
		return nil, qerrors.NotFound(fmt.Sprintf("no parcels in category: %s", left))
	}
	if rightStats.Count == 0 {
		return nil, qerrors.NotFound(fmt.Sprintf("no parcels in category: %s", right))
	}

	var b strings.Builder
	b.WriteString(statCards([]statCard{
		{Label: fmt.Sprintf("%s parcels", left), Value: fmt.Sprintf("%d", leftStats.Count)},
		{Label: fmt.Sprintf("%s parcels", right), Value: fmt.Sprintf("%d", rightStats.Count)},
	}))
	b.WriteString(e.insight(fmt.Sprintf("**%s** (%d parcels) versus **%s** (%d parcels), mean per metric.",
		left, leftStats.Count, right, rightStats.Count)))

	rows := make([][]string, 0, len(Metrics()))
	for _, m := range Metrics() {
		rows = append(rows, []string{
			m.Label(),
			withUnit(fmtMetricValue(m, leftStats.Metrics[m].Mean), m.Unit()),
			withUnit(fmtMetricValue(m, rightStats.Metrics[m].Mean), m.Unit()),
		})
	}
	b.WriteString(htmlTable([]string{"Metric", left.String(), right.String()}, rows))

	labels := make([]string, len(radarMetrics))
	leftData := make([]float64, len(radarMetrics))
	rightData := make([]float64, len(radarMetrics))
	for i, m := range radarMetrics {
		labels[i] = m.Label()
		lv := leftStats.Metrics[m].Mean
		rv := rightStats.Metrics[m].Mean
		max := lv
		if rv > max {
			max = rv
		}
		if max <= 0 {
			continue
		}
		leftData[i] = clamp01(lv / max)
		rightData[i] = clamp01(rv / max)
	}

	highlights := comparisonHighlights(e.aggregator.Members(left), e.aggregator.Members(right), left == right)

	return &QueryResult{
		Title: fmt.Sprintf("%s vs %s", left, right),
		Type:  ResultTypeComparison,
		HTML:  b.String(),
		Chart: &ChartSpec{
			Kind:   ChartRadar,
			Labels: labels,
			Datasets: []ChartDataset{
				{Label: left.String(), Data: leftData, Color: left.Color()},
				{Label: right.String(), Data: rightData, Color: right.Color()},
			},
		},
		MapHighlights: highlights,
	}, nil
}

// comparisonHighlights is the union of both member sets. Categories are
// disjoint, so concatenation is a union unless both sides resolved to
// the same category.
func comparisonHighlights(left, right []*store.Parcel, same bool) []string {
	if same {
		right = nil
	}
	ids := make([]string, 0, len(left)+len(right))
	for _, p := range left {
		ids = append(ids, p.ID)
	}
	for _, p := range right {
		ids = append(ids, p.ID)
	}
	return ids
}
