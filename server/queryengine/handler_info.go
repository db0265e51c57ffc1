package queryengine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/XiPeng415/kg-explorer/store"
)

// handleMethodology explains how parcels were classified and what the
// relationship types mean.
func (e *Engine) handleMethodology(cls Classification) (*QueryResult, error) {
	var b strings.Builder
	b.WriteString(e.insight("Every parcel is assigned to exactly one category by an upstream pipeline. " +
		"The rules below are evaluated in order and the **first match wins**, so a transit-oriented " +
		"dense parcel is never also counted as high density."))

	b.WriteString("<h4>Classification Rules</h4><ol class=\"rule-list\">")
	for _, c := range store.Categories() {
		b.WriteString(fmt.Sprintf("<li><strong>%s</strong>: %s</li>", esc(c.String()), esc(c.Rule())))
	}
	b.WriteString("</ol>")

	edgeCounts := e.aggregator.EdgeTypeCounts()
	rows := make([][]string, 0, len(store.EdgeTypes()))
	for _, t := range store.EdgeTypes() {
		rows = append(rows, []string{t.Label(), edgeDescription(t), fmt.Sprintf("%d", edgeCounts[t])})
	}
	b.WriteString("<h4>Relationship Glossary</h4>")
	b.WriteString(htmlTable([]string{"Relationship", "Meaning", "Edges"}, rows))

	return &QueryResult{
		Title: "Classification Methodology",
		Type:  ResultTypeMethodology,
		HTML:  b.String(),
	}, nil
}

func edgeDescription(t store.EdgeType) string {
	switch t {
	case store.EdgeSimilarLifestyle:
		return "The two parcels have a similar amenity mix profile."
	case store.EdgeSharedKindergarten:
		return "Both parcels share their nearest kindergarten."
	case store.EdgeSharedSocialService:
		return "Both parcels share their nearest social service office."
	case store.EdgeSharedCommunitySite:
		return "Both parcels share their nearest community site."
	case store.EdgeSharedHawkerCentre:
		return "Both parcels share their nearest hawker centre."
	case store.EdgeSharedGarden:
		return "Both parcels share their nearest garden."
	case store.EdgeSharedSport:
		return "Both parcels share their nearest sport facility."
	case store.EdgeSharedLibrary:
		return "Both parcels share their nearest library."
	}
	return "Unknown relationship type."
}

// handleOverview summarizes the whole dataset.
func (e *Engine) handleOverview(cls Classification) (*QueryResult, error) {
	global := e.aggregator.Global()
	facilities := e.aggregator.FacilityTypes()

	var b strings.Builder
	b.WriteString(statCards([]statCard{
		{Label: "Parcels", Value: fmt.Sprintf("%d", e.store.ParcelCount())},
		{Label: "Relationships", Value: fmt.Sprintf("%d", e.store.EdgeCount())},
		{Label: "Facility types", Value: fmt.Sprintf("%d", len(facilities))},
		{Label: "Total floor area", Value: withUnit(fmtMetricValue(MetricFloorArea, global.Metrics[MetricFloorArea].Sum), "m²")},
		{Label: "Total annual energy", Value: withUnit(fmtMetricValue(MetricEnergy, global.Metrics[MetricEnergy].Sum), "kWh/yr")},
	}))
	b.WriteString(e.insight(fmt.Sprintf("The dataset covers **%d parcels** linked by **%d relationships**, "+
		"with %d facility types recorded.", e.store.ParcelCount(), e.store.EdgeCount(), len(facilities))))

	labels := make([]string, 0, len(store.Categories()))
	data := make([]float64, 0, len(store.Categories()))
	colors := make([]string, 0, len(store.Categories()))
	catRows := make([][]string, 0, len(store.Categories()))
	for _, c := range store.Categories() {
		stats := e.aggregator.Category(c)
		if stats.Count == 0 {
			continue
		}
		labels = append(labels, c.String())
		data = append(data, float64(stats.Count))
		colors = append(colors, c.Color())
		catRows = append(catRows, []string{
			c.String(),
			fmt.Sprintf("%d", stats.Count),
			fmtPercent(float64(stats.Count), float64(e.store.ParcelCount())),
		})
	}
	b.WriteString("<h4>Categories</h4>")
	b.WriteString(htmlTable([]string{"Category", "Parcels", "Share"}, catRows))

	edgeCounts := e.aggregator.EdgeTypeCounts()
	edgeRows := make([][]string, 0, len(store.EdgeTypes()))
	for _, t := range store.EdgeTypes() {
		n, ok := edgeCounts[t]
		if !ok {
			continue
		}
		edgeRows = append(edgeRows, []string{t.Label(), fmt.Sprintf("%d", n)})
	}
	b.WriteString("<h4>Relationships</h4>")
	b.WriteString(htmlTable([]string{"Type", "Edges"}, edgeRows))

	b.WriteString("<h4>Facility Types</h4>")
	b.WriteString(tagList(facilities))

	return &QueryResult{
		Title: "Dataset Overview",
		Type:  ResultTypeOverview,
		HTML:  b.String(),
		Chart: &ChartSpec{
			Kind:     ChartBar,
			Labels:   labels,
			Datasets: []ChartDataset{{Label: "Parcels", Data: data, Colors: colors}},
		},
	}, nil
}

// handleFacilityTypes lists every facility type seen in the dataset with
// its parcel coverage, most common first.
func (e *Engine) handleFacilityTypes(cls Classification) (*QueryResult, error) {
	counts := e.aggregator.FacilityCounts()
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})

	if len(names) == 0 {
		return &QueryResult{
			Title: "Facility Types",
			Type:  ResultTypeFacilityTypes,
			HTML:  "<p>No facility access is recorded in the dataset.</p>",
		}, nil
	}

	total := e.store.ParcelCount()
	rows := make([][]string, 0, len(names))
	labels := make([]string, 0, len(names))
	data := make([]float64, 0, len(names))
	for _, name := range names {
		rows = append(rows, []string{
			name,
			fmt.Sprintf("%d", counts[name]),
			fmtPercent(float64(counts[name]), float64(total)),
		})
		labels = append(labels, name)
		data = append(data, float64(counts[name]))
	}

	var b strings.Builder
	b.WriteString(e.insight(fmt.Sprintf("**%d facility types** are recorded; **%s** is the most common, "+
		"reaching %d of %d parcels.", len(names), names[0], counts[names[0]], total)))
	b.WriteString(htmlTable([]string{"Facility Type", "Parcels with Access", "Share"}, rows))

	return &QueryResult{
		Title: "Facility Types",
		Type:  ResultTypeFacilityTypes,
		HTML:  b.String(),
		Chart: &ChartSpec{
			Kind:     ChartBar,
			Labels:   labels,
			Datasets: []ChartDataset{{Label: "Parcels with access", Data: data, Color: "#27ae60"}},
		},
	}, nil
}

// handleEdgeTypes lists the relationship types present in the graph with
// their edge counts, most common first.
func (e *Engine) handleEdgeTypes(cls Classification) (*QueryResult, error) {
	counts := e.aggregator.EdgeTypeCounts()
	types := make([]store.EdgeType, 0, len(counts))
	for t := range counts {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool {
		if counts[types[i]] != counts[types[j]] {
			return counts[types[i]] > counts[types[j]]
		}
		return types[i] < types[j]
	})

	if len(types) == 0 {
		return &QueryResult{
			Title: "Relationship Types",
			Type:  ResultTypeEdgeTypes,
			HTML:  "<p>The dataset contains no relationships.</p>",
		}, nil
	}

	totalEdges := e.store.EdgeCount()
	rows := make([][]string, 0, len(types))
	labels := make([]string, 0, len(types))
	data := make([]float64, 0, len(types))
	for _, t := range types {
		rows = append(rows, []string{
			t.Label(),
			fmt.Sprintf("%d", counts[t]),
			fmtPercent(float64(counts[t]), float64(totalEdges)),
		})
		labels = append(labels, t.Label())
		data = append(data, float64(counts[t]))
	}

	var b strings.Builder
	b.WriteString(e.insight(fmt.Sprintf("The graph records **%d relationships** across %d types; "+
		"**%s** is the most common.", totalEdges, len(types), types[0].Label())))
	b.WriteString(htmlTable([]string{"Relationship Type", "Edges", "Share"}, rows))

	return &QueryResult{
		Title: "Relationship Types",
		Type:  ResultTypeEdgeTypes,
		HTML:  b.String(),
		Chart: &ChartSpec{
			Kind:     ChartBar,
			Labels:   labels,
			Datasets: []ChartDataset{{Label: "Edges", Data: data, Color: "#8e44ad"}},
		},
	}, nil
}
