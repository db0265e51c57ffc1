package queryengine

import (
	"fmt"
	"strings"

	qerrors "github.com/XiPeng415/kg-explorer/server/internal/errors"
	"github.com/XiPeng415/kg-explorer/store"
)

// handleParcelDetail profiles a single parcel: core metrics, facility
// access, connections grouped by relationship type, and a radar
// comparison against the parcel's category average.
func (e *Engine) handleParcelDetail(cls Classification) (*QueryResult, error) {
	p, ok := e.store.ParcelByID(cls.ParcelID)
	if !ok {
		return nil, qerrors.ParcelNotFound(cls.ParcelID)
	}
	index, _ := e.store.IndexOf(p.ID)
	neighbors := e.store.Neighbors(index)
	groups := e.groupNeighbors(index)

	var b strings.Builder
	b.WriteString(statCards([]statCard{
		{Label: "Category", Value: p.Category.String()},
		{Label: "Gross Floor Area", Value: fmtNumber(p.GrossFloorArea, 0) + " m²"},
		{Label: "Annual Energy", Value: fmtNumber(p.AnnualEnergy, 0) + " kWh"},
		{Label: "Connections", Value: fmt.Sprintf("%d", len(neighbors))},
	}))

	rows := make([][]string, 0, len(Metrics()))
	for _, m := range Metrics() {
		rows = append(rows, []string{withUnit(m.Label(), m.Unit()), fmtMetricValue(m, m.Value(p))})
	}
	b.WriteString("<h4>Metrics</h4>")
	b.WriteString(htmlTable([]string{"Metric", "Value"}, rows))

	b.WriteString("<h4>Facility Access</h4>")
	if len(p.Facilities) == 0 {
		b.WriteString("<p>No facility access recorded.</p>")
	} else {
		b.WriteString(tagList(p.Facilities))
	}

	b.WriteString("<h4>Connections</h4>")
	if len(groups) == 0 {
		b.WriteString("<p>No connections recorded.</p>")
	} else {
		b.WriteString(e.connectionTable(groups, e.config.Display.ParcelConnections))
	}

	return &QueryResult{
		Title:         fmt.Sprintf("Parcel %s", p.ID),
		Type:          ResultTypeParcelDetail,
		HTML:          b.String(),
		Chart:         e.parcelRadar(p),
		MapHighlights: []string{p.ID},
	}, nil
}

// neighborGroup collects one relationship type's neighbors of a parcel.
type neighborGroup struct {
	Type    store.EdgeType
	Members []*store.Parcel
}

// groupNeighbors buckets a parcel's neighbors by edge type: canonical
// types in display order first, anything else in first-seen order.
func (e *Engine) groupNeighbors(index int) []neighborGroup {
	var order []store.EdgeType
	byType := make(map[store.EdgeType][]*store.Parcel)
	for _, n := range e.store.Neighbors(index) {
		p, ok := e.store.ParcelByIndex(n.Index)
		if !ok {
			continue
		}
		if _, seen := byType[n.Type]; !seen {
			order = append(order, n.Type)
		}
		byType[n.Type] = append(byType[n.Type], p)
	}

	groups := make([]neighborGroup, 0, len(byType))
	emitted := make(map[store.EdgeType]bool, len(byType))
	for _, t := range store.EdgeTypes() {
		if members, ok := byType[t]; ok {
			groups = append(groups, neighborGroup{Type: t, Members: members})
			emitted[t] = true
		}
	}
	for _, t := range order {
		if !emitted[t] {
			groups = append(groups, neighborGroup{Type: t, Members: byType[t]})
		}
	}
	return groups
}

// connectionTable renders neighbor groups with a per-group display cap
// and an overflow note.
func (e *Engine) connectionTable(groups []neighborGroup, limit int) string {
	rows := make([][]string, 0, len(groups))
	for _, g := range groups {
		ids := make([]string, 0, limit)
		for i, member := range g.Members {
			if i == limit {
				break
			}
			ids = append(ids, member.ID)
		}
		display := strings.Join(ids, ", ")
		if overflow := len(g.Members) - limit; overflow > 0 {
			display = fmt.Sprintf("%s and %d more", display, overflow)
		}
		rows = append(rows, []string{g.Type.Label(), fmt.Sprintf("%d", len(g.Members)), display})
	}
	return htmlTable([]string{"Relationship", "Count", "Parcels"}, rows)
}

// parcelRadar compares the parcel against its category average on five
// normalized axes. Transit and diversity are already 0-1; floor area,
// energy, and building count are scaled against fixed ceilings and
// clamped to 1.
func (e *Engine) parcelRadar(p *store.Parcel) *ChartSpec {
	catStats := e.aggregator.Category(p.Category)
	catMean := func(m Metric) float64 {
		return catStats.Metrics[m].Mean
	}
	scale := func(v, ceiling float64) float64 {
		return clamp01(v / ceiling)
	}

	radar := e.config.Radar
	parcelSeries := []float64{
		clamp01(p.TransitIndex),
		clamp01(p.DiversityIndex),
		scale(p.GrossFloorArea, radar.FloorAreaCeiling),
		scale(p.AnnualEnergy, radar.EnergyCeiling),
		scale(p.BuildingCount, radar.BuildingCeiling),
	}
	categorySeries := []float64{
		clamp01(catMean(MetricTransit)),
		clamp01(catMean(MetricDiversity)),
		scale(catMean(MetricFloorArea), radar.FloorAreaCeiling),
		scale(catMean(MetricEnergy), radar.EnergyCeiling),
		scale(catMean(MetricBuildings), radar.BuildingCeiling),
	}

	return &ChartSpec{
		Kind:   ChartRadar,
		Labels: []string{"Transit", "Diversity", "Floor Area", "Energy", "Buildings"},
		Datasets: []ChartDataset{
			{Label: p.ID, Data: parcelSeries, Color: p.Category.Color()},
			{Label: fmt.Sprintf("%s average", p.Category), Data: categorySeries, Color: "#7f8c8d"},
		},
	}
}
