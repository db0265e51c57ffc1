package queryengine

import (
	"fmt"
	"math"
	"sort"
	"strings"

	qerrors "github.com/XiPeng415/kg-explorer/server/internal/errors"
)

// handleCategoryInfo profiles one category against the whole dataset.
func (e *Engine) handleCategoryInfo(cls Classification) (*QueryResult, error) {
	category, ok := MatchCategory(cls.Query)
	if !ok {
		return nil, qerrors.NotFound("no category recognized in your question")
	}

	stats := e.aggregator.Category(category)
	if stats.Count == 0 {
		return nil, qerrors.NotFound(fmt.Sprintf("no parcels in category: %s", category))
	}

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
		{Label: "Mean floor area", Value: fmtMetricValue(MetricFloorArea, stats.Metrics[MetricFloorArea].Mean) + " m²"},
	}))
	b.WriteString(e.insight(fmt.Sprintf("**%s**: %s", category, category.Rule())))

	global := e.aggregator.Global()
	rows := make([][]string, 0, len(Metrics()))
	for _, m := range Metrics() {
		catMean := stats.Metrics[m].Mean
		globalMean := global.Metrics[m].Mean
		ratio := "-"
		if globalMean != 0 && !math.IsNaN(catMean) {
			ratio = fmt.Sprintf("%.2fx", catMean/globalMean)
		}
		rows = append(rows, []string{
			m.Label(),
			withUnit(fmtMetricValue(m, catMean), m.Unit()),
			withUnit(fmtMetricValue(m, globalMean), m.Unit()),
			ratio,
		})
	}
	b.WriteString("<h4>Against the Dataset</h4>")
	b.WriteString(htmlTable([]string{"Metric", "Category Mean", "Dataset Mean", "Ratio"}, rows))

	top := make([]rankedParcel, 0, len(members))
	for _, p := range members {
		top = append(top, rankedParcel{parcel: p, value: p.GrossFloorArea})
	}
	sort.SliceStable(top, func(i, j int) bool { return top[i].value > top[j].value })
	if len(top) > e.config.Display.CategoryTopParcels {
		top = top[:e.config.Display.CategoryTopParcels]
	}
	topRows := make([][]string, 0, len(top))
	for i, t := range top {
		topRows = append(topRows, []string{
			fmt.Sprintf("%d", i+1), t.parcel.ID, withUnit(fmtMetricValue(MetricFloorArea, t.value), "m²"),
		})
	}
	b.WriteString("<h4>Largest Parcels</h4>")
	b.WriteString(htmlTable([]string{"Rank", "Parcel", "Gross Floor Area"}, topRows))

	return &QueryResult{
		Title: fmt.Sprintf("Category: %s", category),
		Type:  ResultTypeCategory,
		HTML:  b.String(),
		Chart: &ChartSpec{
			Kind:   ChartDoughnut,
			Labels: []string{category.String(), "Other categories"},
			Datasets: []ChartDataset{{
				Label:  "Parcels",
				Data:   []float64{float64(stats.Count), float64(total - stats.Count)},
				Colors: []string{category.Color(), "#bdc3c7"},
			}},
		},
		MapHighlights: highlights,
	}, nil
}
