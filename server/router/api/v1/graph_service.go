package v1

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/XiPeng415/kg-explorer/server/queryengine"
	"github.com/XiPeng415/kg-explorer/store"
)

// CategoryDescriptor describes one category for the renderer: display
// name, map color, the human-readable classification rule, and how many
// parcels fall into it.
type CategoryDescriptor struct {
	Category string `json:"category"`
	Color    string `json:"color"`
	Rule     string `json:"rule"`
	Count    int    `json:"count"`
}

// EdgeTypeDescriptor describes one relationship type and its edge count.
type EdgeTypeDescriptor struct {
	Type  string `json:"type"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// FacilityTypeCount pairs a facility type with the number of parcels
// listing it.
type FacilityTypeCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// GraphResponse is the full snapshot the map renderer draws from.
type GraphResponse struct {
	Parcels    []*store.Parcel      `json:"parcels"`
	Edges      []store.Edge         `json:"edges"`
	Categories []CategoryDescriptor `json:"categories"`
	EdgeTypes  []EdgeTypeDescriptor `json:"edgeTypes"`
}

// ConnectionGroup is one relationship type's neighbors of a parcel.
type ConnectionGroup struct {
	Type      string   `json:"type"`
	Label     string   `json:"label"`
	ParcelIDs []string `json:"parcelIds"`
}

// ParcelResponse is one parcel with its grouped connections.
type ParcelResponse struct {
	Parcel      *store.Parcel     `json:"parcel"`
	Connections []ConnectionGroup `json:"connections"`
}

// OverviewResponse summarizes the dataset for the landing view.
type OverviewResponse struct {
	ParcelCount       int                  `json:"parcelCount"`
	EdgeCount         int                  `json:"edgeCount"`
	FacilityTypeCount int                  `json:"facilityTypeCount"`
	TotalFloorArea    float64              `json:"totalFloorArea"`
	TotalAnnualEnergy float64              `json:"totalAnnualEnergy"`
	Categories        []CategoryDescriptor `json:"categories"`
	EdgeTypes         []EdgeTypeDescriptor `json:"edgeTypes"`
	FacilityTypes     []FacilityTypeCount  `json:"facilityTypes"`
}

// GetGraph returns every parcel and edge plus the category and
// relationship legends.
// GET /api/v1/graph
func (s *APIV1Service) GetGraph(c echo.Context) error {
	return c.JSON(http.StatusOK, &GraphResponse{
		Parcels:    s.Store.Parcels(),
		Edges:      s.Store.Edges(),
		Categories: s.categoryDescriptors(),
		EdgeTypes:  s.edgeTypeDescriptors(),
	})
}

// GetParcel returns one parcel with its neighbors grouped by
// relationship type.
// GET /api/v1/parcels/:id
func (s *APIV1Service) GetParcel(c echo.Context) error {
	id := c.Param("id")
	index, ok := s.Store.IndexOf(id)
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": fmt.Sprintf("parcel not found: %s", id)})
	}
	parcel, _ := s.Store.ParcelByIndex(index)
	return c.JSON(http.StatusOK, &ParcelResponse{
		Parcel:      parcel,
		Connections: s.connectionGroups(index),
	})
}

// GetOverview returns dataset-level aggregates.
// GET /api/v1/overview
func (s *APIV1Service) GetOverview(c echo.Context) error {
	aggregator := s.Engine.Aggregator()
	global := aggregator.Global()

	facilities := make([]FacilityTypeCount, 0)
	counts := aggregator.FacilityCounts()
	for _, name := range aggregator.FacilityTypes() {
		facilities = append(facilities, FacilityTypeCount{Name: name, Count: counts[name]})
	}

	return c.JSON(http.StatusOK, &OverviewResponse{
		ParcelCount:       s.Store.ParcelCount(),
		EdgeCount:         s.Store.EdgeCount(),
		FacilityTypeCount: len(facilities),
		TotalFloorArea:    global.Metrics[queryengine.MetricFloorArea].Sum,
		TotalAnnualEnergy: global.Metrics[queryengine.MetricEnergy].Sum,
		Categories:        s.categoryDescriptors(),
		EdgeTypes:         s.edgeTypeDescriptors(),
		FacilityTypes:     facilities,
	})
}

// categoryDescriptors builds the category legend in display order,
// including empty categories so the legend is stable across datasets.
func (s *APIV1Service) categoryDescriptors() []CategoryDescriptor {
	aggregator := s.Engine.Aggregator()
	descriptors := make([]CategoryDescriptor, 0, len(store.Categories()))
	for _, category := range store.Categories() {
		descriptors = append(descriptors, CategoryDescriptor{
			Category: string(category),
			Color:    category.Color(),
			Rule:     category.Rule(),
			Count:    aggregator.Category(category).Count,
		})
	}
	return descriptors
}

// edgeTypeDescriptors builds the relationship legend in display order.
func (s *APIV1Service) edgeTypeDescriptors() []EdgeTypeDescriptor {
	counts := s.Engine.Aggregator().EdgeTypeCounts()
	descriptors := make([]EdgeTypeDescriptor, 0, len(store.EdgeTypes()))
	for _, edgeType := range store.EdgeTypes() {
		descriptors = append(descriptors, EdgeTypeDescriptor{
			Type:  string(edgeType),
			Label: edgeType.Label(),
			Count: counts[edgeType],
		})
	}
	return descriptors
}

// connectionGroups buckets a parcel's neighbors by edge type, canonical
// types in display order first, anything unknown in first-seen order.
func (s *APIV1Service) connectionGroups(index int) []ConnectionGroup {
	var order []store.EdgeType
	byType := make(map[store.EdgeType][]string)
	for _, n := range s.Store.Neighbors(index) {
		neighbor, ok := s.Store.ParcelByIndex(n.Index)
		if !ok {
			continue
		}
		if _, seen := byType[n.Type]; !seen {
			order = append(order, n.Type)
		}
		byType[n.Type] = append(byType[n.Type], neighbor.ID)
	}

	groups := make([]ConnectionGroup, 0, len(byType))
	emitted := make(map[store.EdgeType]bool, len(byType))
	for _, t := range store.EdgeTypes() {
		if ids, ok := byType[t]; ok {
			groups = append(groups, ConnectionGroup{Type: string(t), Label: t.Label(), ParcelIDs: ids})
			emitted[t] = true
		}
	}
	for _, t := range order {
		if !emitted[t] {
			groups = append(groups, ConnectionGroup{Type: string(t), Label: t.Label(), ParcelIDs: byType[t]})
		}
	}
	return groups
}
