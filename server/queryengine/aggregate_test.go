package queryengine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/XiPeng415/kg-explorer/store"
	"github.com/XiPeng415/kg-explorer/store/storetest"
)

func TestAggregatorGlobalStats(t *testing.T) {
	a := NewAggregator(storetest.NewStore(t))
	global := a.Global()

	assert.Equal(t, 12, global.Count)

	gfa := global.Metrics[MetricFloorArea]
	assert.Equal(t, 12, gfa.Count)
	assert.InDelta(t, 1845000, gfa.Sum, 1e-6)
	assert.InDelta(t, 153750, gfa.Mean, 1e-6)

	energy := global.Metrics[MetricEnergy]
	assert.Equal(t, 12, energy.Count)
	assert.InDelta(t, 105200000, energy.Sum, 1e-6)
}

// Zero is the unset sentinel for levels and the two proximity distances,
// so those means must run over the strictly-positive values only.
func TestAggregatorExcludesNonPositiveSentinels(t *testing.T) {
	a := NewAggregator(storetest.NewStore(t))
	global := a.Global()

	levels := global.Metrics[MetricLevels]
	assert.Equal(t, 11, levels.Count)
	assert.InDelta(t, 185.0/11, levels.Mean, 1e-9)

	bus := global.Metrics[MetricBusDistance]
	assert.Equal(t, 11, bus.Count)
	assert.InDelta(t, 1225.0/11, bus.Mean, 1e-9)

	mrt := global.Metrics[MetricMRTDistance]
	assert.Equal(t, 11, mrt.Count)
	assert.InDelta(t, 7940.0/11, mrt.Mean, 1e-9)
}

func TestAggregatorCategoryStats(t *testing.T) {
	a := NewAggregator(storetest.NewStore(t))

	wantCounts := map[store.Category]int{
		store.CategoryHighDensity:          3,
		store.CategoryTransitOrientedDense: 2,
		store.CategoryTransitOriented:      2,
		store.CategoryLifestyleHub:         2,
		store.CategoryStandardResidential:  2,
		store.CategoryPeripheral:           1,
	}
	for category, want := range wantCounts {
		assert.Equal(t, want, a.Category(category).Count, "category %s", category)
	}

	hd := a.Category(store.CategoryHighDensity)
	assert.InDelta(t, 853000.0/3, hd.Metrics[MetricFloorArea].Mean, 1e-6)

	members := a.Members(store.CategoryHighDensity)
	require.Len(t, members, 3)
	assert.Equal(t, "kml_1001", members[0].ID)
}

func TestAggregatorZeroMemberCategory(t *testing.T) {
	snapshot := &store.Snapshot{
		Parcels: []*store.Parcel{
			{ID: "kml_1", Category: store.CategoryHighDensity, GrossFloorArea: 1000},
		},
	}
	s, err := store.New(snapshot)
	require.NoError(t, err)

	stats := NewAggregator(s).Category(store.CategoryPeripheral)
	assert.Zero(t, stats.Count)
	assert.Empty(t, stats.Metrics)
}

func TestAggregatorEdgeTypeCounts(t *testing.T) {
	a := NewAggregator(storetest.NewStore(t))
	assert.Equal(t, map[store.EdgeType]int{
		store.EdgeSharedKindergarten:  3,
		store.EdgeSharedHawkerCentre:  3,
		store.EdgeSharedGarden:        4,
		store.EdgeSharedSport:         2,
		store.EdgeSharedLibrary:       1,
		store.EdgeSharedCommunitySite: 2,
		store.EdgeSharedSocialService: 1,
		store.EdgeSimilarLifestyle:    5,
	}, a.EdgeTypeCounts())
}

func TestAggregatorFacilityUniverse(t *testing.T) {
	a := NewAggregator(storetest.NewStore(t))

	assert.Equal(t, []string{
		"Community Site", "Garden", "Hawker Centre", "Kindergarten",
		"Library", "Social Service", "Sport",
	}, a.FacilityTypes())

	counts := a.FacilityCounts()
	assert.Equal(t, 4, counts["Kindergarten"])
	assert.Equal(t, 4, counts["Hawker Centre"])
	assert.Equal(t, 6, counts["Garden"])
	assert.Equal(t, 4, counts["Sport"])
	assert.Equal(t, 2, counts["Library"])
	assert.Equal(t, 3, counts["Community Site"])
	assert.Equal(t, 1, counts["Social Service"])
}

// Facility tokens are deduplicated case-insensitively under the first
// spelling seen, and duplicates on one parcel count that parcel once.
func TestAggregatorFacilityTokensNormalized(t *testing.T) {
	snapshot := &store.Snapshot{
		Parcels: []*store.Parcel{
			{ID: "kml_1", Category: store.CategoryHighDensity, Facilities: []string{"Hawker Centre", "hawker centre"}},
			{ID: "kml_2", Category: store.CategoryHighDensity, Facilities: []string{"HAWKER CENTRE"}},
		},
	}
	s, err := store.New(snapshot)
	require.NoError(t, err)

	a := NewAggregator(s)
	assert.Equal(t, []string{"Hawker Centre"}, a.FacilityTypes())
	assert.Equal(t, map[string]int{"Hawker Centre": 2}, a.FacilityCounts())
}
