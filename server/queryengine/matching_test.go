package queryengine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/XiPeng415/kg-explorer/store"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"LifestyleHub", "lifestyle hub"},
		{"Transit-Oriented   Dense!", "transit oriented dense"},
		{"  HIGH density ", "high density"},
		{"kml_1001", "kml 1001"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, normalize(tt.in), "normalize(%q)", tt.in)
	}
}

func TestMatchCategory(t *testing.T) {
	tests := []struct {
		in   string
		want store.Category
	}{
		// the longer name must win over its overlapping prefix
		{"Transit-Oriented Dense", store.CategoryTransitOrientedDense},
		{"transit oriented", store.CategoryTransitOriented},
		{"TransitOrientedDense", store.CategoryTransitOrientedDense},
		{"LifestyleHub", store.CategoryLifestyleHub},
		{"tell me about the Lifestyle Hub category", store.CategoryLifestyleHub},
		{"High-Density", store.CategoryHighDensity},
		{"dense areas", store.CategoryHighDensity},
		{"the outlying parcels", store.CategoryPeripheral},
		{"standard residential", store.CategoryStandardResidential},
		{"TOD parcels", store.CategoryTransitOrientedDense},
		{"Peripheral", store.CategoryPeripheral},
	}
	for _, tt := range tests {
		got, ok := MatchCategory(tt.in)
		require.True(t, ok, "MatchCategory(%q)", tt.in)
		assert.Equal(t, tt.want, got, "MatchCategory(%q)", tt.in)
	}

	_, ok := MatchCategory("bananas")
	assert.False(t, ok)
	_, ok = MatchCategory("")
	assert.False(t, ok)
}

func TestMatchMetric(t *testing.T) {
	tests := []struct {
		in   string
		want Metric
	}{
		{"annual energy", MetricEnergy},
		{"kWh consumed", MetricEnergy},
		{"gross floor area", MetricFloorArea},
		{"GFA", MetricFloorArea},
		{"transit accessibility", MetricTransit},
		{"amenity mix", MetricDiversity},
		{"diversity index", MetricDiversity},
		{"building count", MetricBuildings},
		{"residential units", MetricUnits},
		{"dwelling count", MetricUnits},
		{"average levels", MetricLevels},
		{"storeys", MetricLevels},
		{"how many floors", MetricLevels},
		{"distance to bus", MetricBusDistance},
		{"nearest MRT", MetricMRTDistance},
		{"metro distance", MetricMRTDistance},
		// vocabulary for an earlier metric wins when both appear
		{"energy per floor area", MetricEnergy},
	}
	for _, tt := range tests {
		got, ok := MatchMetric(tt.in)
		require.True(t, ok, "MatchMetric(%q)", tt.in)
		assert.Equal(t, tt.want, got, "MatchMetric(%q)", tt.in)
	}

	// "history" must not hit the storey vocabulary
	_, ok := MatchMetric("history")
	assert.False(t, ok)
	// "busy" must not hit the bus vocabulary
	_, ok = MatchMetric("busy")
	assert.False(t, ok)
}

func TestMatchFacility(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Which parcels have a hawker centre?", "Hawker Centre"},
		{"food center nearby", "Hawker Centre"},
		{"childcare options", "Kindergarten"},
		{"preschool", "Kindergarten"},
		{"parks", "Garden"},
		{"green space", "Garden"},
		{"swimming", "Sport"},
		{"gyms", "Sport"},
		{"sports halls", "Sport"},
		{"libraries", "Library"},
		{"community sites", "Community Site"},
		{"social services", "Social Service"},
	}
	for _, tt := range tests {
		got, ok := MatchFacility(tt.in, nil)
		require.True(t, ok, "MatchFacility(%q)", tt.in)
		assert.Equal(t, tt.want, got, "MatchFacility(%q)", tt.in)
	}
}

func TestMatchFacilityUniverseFallback(t *testing.T) {
	got, ok := MatchFacility("any clinic nearby", []string{"Clinic"})
	require.True(t, ok)
	assert.Equal(t, "Clinic", got)

	_, ok = MatchFacility("any clinic nearby", nil)
	assert.False(t, ok)

	_, ok = MatchFacility("", []string{"Clinic"})
	assert.False(t, ok)
}
