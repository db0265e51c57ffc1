// Package storetest provides a small deterministic dataset for tests. The
// snapshot covers every canonical category, every edge type, and every
// facility type so handler tests always have something to aggregate.
package storetest

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/XiPeng415/kg-explorer/store"
)

// Snapshot returns a fresh copy of the test dataset: 12 parcels across all
// six categories and 21 edges across all eight edge types. Parcel kml_6001
// carries zero avg-levels/bus-distance sentinels and an empty facility
// list; parcel kml_1003 carries a zero MRT-distance sentinel.
func Snapshot() *store.Snapshot {
	parcels := []*store.Parcel{
		{
			ID: "kml_1001", Lat: 1.3521, Lng: 103.8198, Category: store.CategoryHighDensity,
			GrossFloorArea: 320000, AnnualEnergy: 18200000, TransitIndex: 0.52, DiversityIndex: 0.41,
			BuildingCount: 18, UnitCount: 2100, AvgLevels: 24, BusDistance: 120, MRTDistance: 640,
			NearestBus: "B1012", NearestMRT: "NS17",
			Facilities: []string{"Kindergarten", "Hawker Centre", "Garden"},
		},
		{
			ID: "kml_1002", Lat: 1.3489, Lng: 103.8245, Category: store.CategoryHighDensity,
			GrossFloorArea: 275000, AnnualEnergy: 15400000, TransitIndex: 0.48, DiversityIndex: 0.37,
			BuildingCount: 15, UnitCount: 1760, AvgLevels: 21, BusDistance: 95, MRTDistance: 810,
			NearestBus: "B1014", NearestMRT: "NS17",
			Facilities: []string{"Kindergarten", "Sport"},
		},
		{
			ID: "kml_1003", Lat: 1.3555, Lng: 103.8129, Category: store.CategoryHighDensity,
			GrossFloorArea: 258000, AnnualEnergy: 13900000, TransitIndex: 0.44, DiversityIndex: 0.33,
			BuildingCount: 14, UnitCount: 1620, AvgLevels: 19, BusDistance: 140, MRTDistance: 0,
			NearestBus: "B1021",
			Facilities: []string{"Garden", "Sport"},
		},
		{
			ID: "kml_2001", Lat: 1.3002, Lng: 103.8389, Category: store.CategoryTransitOrientedDense,
			GrossFloorArea: 210000, AnnualEnergy: 12600000, TransitIndex: 0.86, DiversityIndex: 0.58,
			BuildingCount: 11, UnitCount: 1280, AvgLevels: 28, BusDistance: 60, MRTDistance: 180,
			NearestBus: "B2203", NearestMRT: "EW14",
			Facilities: []string{"Hawker Centre", "Library", "Community Site"},
		},
		{
			ID: "kml_2002", Lat: 1.2965, Lng: 103.8521, Category: store.CategoryTransitOrientedDense,
			GrossFloorArea: 185000, AnnualEnergy: 11100000, TransitIndex: 0.81, DiversityIndex: 0.55,
			BuildingCount: 9, UnitCount: 1040, AvgLevels: 26, BusDistance: 75, MRTDistance: 210,
			NearestBus: "B2207", NearestMRT: "EW14",
			Facilities: []string{"Hawker Centre", "Garden"},
		},
		{
			ID: "kml_3001", Lat: 1.3112, Lng: 103.7901, Category: store.CategoryTransitOriented,
			GrossFloorArea: 96000, AnnualEnergy: 5200000, TransitIndex: 0.78, DiversityIndex: 0.34,
			BuildingCount: 6, UnitCount: 540, AvgLevels: 12, BusDistance: 85, MRTDistance: 260,
			NearestBus: "B3305", NearestMRT: "EW21",
			Facilities: []string{"Kindergarten"},
		},
		{
			ID: "kml_3002", Lat: 1.3174, Lng: 103.7852, Category: store.CategoryTransitOriented,
			GrossFloorArea: 88000, AnnualEnergy: 4700000, TransitIndex: 0.74, DiversityIndex: 0.29,
			BuildingCount: 5, UnitCount: 470, AvgLevels: 11, BusDistance: 110, MRTDistance: 320,
			NearestBus: "B3311", NearestMRT: "EW21",
			Facilities: []string{"Social Service"},
		},
		{
			ID: "kml_4001", Lat: 1.3066, Lng: 103.9021, Category: store.CategoryLifestyleHub,
			GrossFloorArea: 142000, AnnualEnergy: 8900000, TransitIndex: 0.61, DiversityIndex: 0.72,
			BuildingCount: 8, UnitCount: 820, AvgLevels: 14, BusDistance: 105, MRTDistance: 540,
			NearestBus: "B4402", NearestMRT: "CC9",
			Facilities: []string{"Hawker Centre", "Garden", "Sport", "Library"},
		},
		{
			ID: "kml_4002", Lat: 1.3121, Lng: 103.9104, Category: store.CategoryLifestyleHub,
			GrossFloorArea: 128000, AnnualEnergy: 7800000, TransitIndex: 0.57, DiversityIndex: 0.68,
			BuildingCount: 7, UnitCount: 690, AvgLevels: 13, BusDistance: 90, MRTDistance: 620,
			NearestBus: "B4409", NearestMRT: "CC9",
			Facilities: []string{"Community Site", "Garden", "Sport"},
		},
		{
			ID: "kml_5001", Lat: 1.3650, Lng: 103.8602, Category: store.CategoryStandardResidential,
			GrossFloorArea: 64000, AnnualEnergy: 3400000, TransitIndex: 0.39, DiversityIndex: 0.26,
			BuildingCount: 7, UnitCount: 380, AvgLevels: 9, BusDistance: 160, MRTDistance: 940,
			NearestBus: "B5508", NearestMRT: "NE12",
			Facilities: []string{"Kindergarten", "Garden"},
		},
		{
			ID: "kml_5002", Lat: 1.3701, Lng: 103.8677, Category: store.CategoryStandardResidential,
			GrossFloorArea: 58000, AnnualEnergy: 3100000, TransitIndex: 0.35, DiversityIndex: 0.22,
			BuildingCount: 6, UnitCount: 330, AvgLevels: 8, BusDistance: 185, MRTDistance: 1020,
			NearestBus: "B5512", NearestMRT: "NE12",
			Facilities: []string{"Community Site"},
		},
		{
			ID: "kml_6001", Lat: 1.4021, Lng: 103.7458, Category: store.CategoryPeripheral,
			GrossFloorArea: 21000, AnnualEnergy: 900000, TransitIndex: 0.12, DiversityIndex: 0.08,
			BuildingCount: 2, UnitCount: 90, AvgLevels: 0, BusDistance: 0, MRTDistance: 2400,
			NearestMRT: "NS5",
		},
	}

	edges := []store.Edge{
		{Source: 0, Target: 1, Type: store.EdgeSharedKindergarten},
		{Source: 0, Target: 5, Type: store.EdgeSharedKindergarten},
		{Source: 0, Target: 9, Type: store.EdgeSharedKindergarten},
		{Source: 0, Target: 3, Type: store.EdgeSharedHawkerCentre},
		{Source: 3, Target: 4, Type: store.EdgeSharedHawkerCentre},
		{Source: 3, Target: 7, Type: store.EdgeSharedHawkerCentre},
		{Source: 0, Target: 2, Type: store.EdgeSharedGarden},
		{Source: 2, Target: 7, Type: store.EdgeSharedGarden},
		{Source: 7, Target: 8, Type: store.EdgeSharedGarden},
		{Source: 4, Target: 9, Type: store.EdgeSharedGarden},
		{Source: 1, Target: 2, Type: store.EdgeSharedSport},
		{Source: 7, Target: 8, Type: store.EdgeSharedSport},
		{Source: 3, Target: 7, Type: store.EdgeSharedLibrary},
		{Source: 3, Target: 8, Type: store.EdgeSharedCommunitySite},
		{Source: 8, Target: 10, Type: store.EdgeSharedCommunitySite},
		{Source: 6, Target: 10, Type: store.EdgeSharedSocialService},
		{Source: 0, Target: 1, Type: store.EdgeSimilarLifestyle},
		{Source: 1, Target: 2, Type: store.EdgeSimilarLifestyle},
		{Source: 3, Target: 4, Type: store.EdgeSimilarLifestyle},
		{Source: 5, Target: 6, Type: store.EdgeSimilarLifestyle},
		{Source: 9, Target: 10, Type: store.EdgeSimilarLifestyle},
	}

	return &store.Snapshot{Parcels: parcels, Edges: edges}
}

// NewStore builds a store over Snapshot and fails the test on error.
func NewStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.New(Snapshot())
	require.NoError(t, err)
	return s
}
