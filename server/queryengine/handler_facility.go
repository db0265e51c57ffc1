package queryengine

import (
	"fmt"
	"sort"
	"strings"

	qerrors "github.com/XiPeng415/kg-explorer/server/internal/errors"
	"github.com/XiPeng415/kg-explorer/store"
)

// handleFacilityQuery lists the parcels with access to one facility type.
func (e *Engine) handleFacilityQuery(cls Classification) (*QueryResult, error) {
	facility, ok := MatchFacility(cls.Query, e.aggregator.FacilityTypes())
	if !ok {
		return nil, qerrors.UnresolvedFacility("no facility type recognized in your question")
	}

	matched := make([]*store.Parcel, 0)
	for _, p := range e.store.Parcels() {
		if p.HasFacility(facility) {
			matched = append(matched, p)
		}
	}

	title := fmt.Sprintf("Parcels with %s Access", facility)
	if len(matched) == 0 {
		return &QueryResult{
			Title: title,
			Type:  ResultTypeFacility,
			HTML:  fmt.Sprintf("<p>No parcels have recorded access to a %s.</p>", esc(facility)),
		}, nil
	}

	highlights := make([]string, 0, len(matched))
	byCategory := make(map[store.Category]int)
	for _, p := range matched {
		highlights = append(highlights, p.ID)
		byCategory[p.Category]++
	}

	var b strings.Builder
	b.WriteString(statCards([]statCard{
		{Label: "Parcels with access", Value: fmt.Sprintf("%d", len(matched))},
		{Label: "Share of dataset", Value: fmtPercent(float64(len(matched)), float64(e.store.ParcelCount()))},
	}))
	b.WriteString(e.insight(fmt.Sprintf("**%d** parcels have access to a **%s** (%s of the dataset).",
		len(matched), facility, fmtPercent(float64(len(matched)), float64(e.store.ParcelCount())))))

	labels := make([]string, 0, len(byCategory))
	data := make([]float64, 0, len(byCategory))
	colors := make([]string, 0, len(byCategory))
	catRows := make([][]string, 0, len(byCategory))
	for _, c := range store.Categories() {
		n, ok := byCategory[c]
		if !ok {
			continue
		}
		labels = append(labels, c.String())
		data = append(data, float64(n))
		colors = append(colors, c.Color())
		catRows = append(catRows, []string{c.String(), fmt.Sprintf("%d", n)})
	}
	b.WriteString("<h4>By Category</h4>")
	b.WriteString(htmlTable([]string{"Category", "Parcels"}, catRows))

	top := make([]rankedParcel, 0, len(matched))
	for _, p := range matched {
		top = append(top, rankedParcel{parcel: p, value: p.GrossFloorArea})
	}
	sort.SliceStable(top, func(i, j int) bool { return top[i].value > top[j].value })
	if len(top) > e.config.Display.FacilityTopParcels {
		top = top[:e.config.Display.FacilityTopParcels]
	}
	topRows := make([][]string, 0, len(top))
	for _, t := range top {
		topRows = append(topRows, []string{
			t.parcel.ID, t.parcel.Category.String(), withUnit(fmtMetricValue(MetricFloorArea, t.value), "m²"),
		})
	}
	b.WriteString("<h4>Largest Parcels with Access</h4>")
	b.WriteString(htmlTable([]string{"Parcel", "Category", "Gross Floor Area"}, topRows))

	return &QueryResult{
		Title: title,
		Type:  ResultTypeFacility,
		HTML:  b.String(),
		Chart: &ChartSpec{
			Kind:     ChartPie,
			Labels:   labels,
			Datasets: []ChartDataset{{Label: "Parcels", Data: data, Colors: colors}},
		},
		MapHighlights: highlights,
	}, nil
}
