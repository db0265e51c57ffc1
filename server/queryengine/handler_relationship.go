package queryengine

import (
	"fmt"
	"strings"

	qerrors "github.com/XiPeng415/kg-explorer/server/internal/errors"
	"github.com/XiPeng415/kg-explorer/store"
)

// handleRelationships lists everything connected to one parcel, grouped
// by edge type.
func (e *Engine) handleRelationships(cls Classification) (*QueryResult, error) {
	if cls.ParcelID == "" {
		return nil, qerrors.MissingParameter("no parcel id found in your question")
	}

	p, ok := e.store.ParcelByID(cls.ParcelID)
	if !ok {
		return nil, qerrors.ParcelNotFound(cls.ParcelID)
	}

	index, _ := e.store.IndexOf(p.ID)
	neighbors := e.store.Neighbors(index)
	title := fmt.Sprintf("Connections of %s", p.ID)

	if len(neighbors) == 0 {
		return &QueryResult{
			Title:         title,
			Type:          ResultTypeRelationship,
			HTML:          fmt.Sprintf("<p>Parcel %s has no recorded relationships.</p>", esc(p.ID)),
			MapHighlights: []string{p.ID},
		}, nil
	}

	groups := e.groupNeighbors(index)

	var b strings.Builder
	b.WriteString(statCards([]statCard{
		{Label: "Connections", Value: fmt.Sprintf("%d", len(neighbors))},
		{Label: "Connection types", Value: fmt.Sprintf("%d", len(groups))},
		{Label: "Category", Value: p.Category.String()},
	}))
	b.WriteString(e.insight(fmt.Sprintf("Parcel **%s** has **%d** connections across %d relationship types.",
		p.ID, len(neighbors), len(groups))))
	b.WriteString("<h4>By Relationship Type</h4>")
	b.WriteString(e.connectionTable(groups, e.config.Display.RelationshipNeighbors))

	// Highlights keep the source parcel first; a neighbor reached through
	// two edge types appears once per edge.
	highlights := make([]string, 0, len(neighbors)+1)
	highlights = append(highlights, p.ID)
	byCategory := make(map[store.Category]int)
	for _, n := range neighbors {
		np, ok := e.store.ParcelByIndex(n.Index)
		if !ok {
			continue
		}
		highlights = append(highlights, np.ID)
		byCategory[np.Category]++
	}

	labels := make([]string, 0, len(byCategory))
	data := make([]float64, 0, len(byCategory))
	colors := make([]string, 0, len(byCategory))
	for _, c := range store.Categories() {
		n, ok := byCategory[c]
		if !ok {
			continue
		}
		labels = append(labels, c.String())
		data = append(data, float64(n))
		colors = append(colors, c.Color())
	}

	return &QueryResult{
		Title: title,
		Type:  ResultTypeRelationship,
		HTML:  b.String(),
		Chart: &ChartSpec{
			Kind:     ChartDoughnut,
			Labels:   labels,
			Datasets: []ChartDataset{{Label: "Neighbor categories", Data: data, Colors: colors}},
		},
		MapHighlights: highlights,
	}, nil
}
