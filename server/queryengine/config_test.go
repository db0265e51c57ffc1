package queryengine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	require.NoError(t, ValidateConfig(DefaultConfig()))
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{
			name:   "parcel connections too small",
			mutate: func(c *Config) { c.Display.ParcelConnections = 0 },
			field:  "Display.ParcelConnections",
		},
		{
			name:   "relationship neighbors too large",
			mutate: func(c *Config) { c.Display.RelationshipNeighbors = 500 },
			field:  "Display.RelationshipNeighbors",
		},
		{
			name:   "ranking min below one",
			mutate: func(c *Config) { c.Ranking.MinCount = 0 },
			field:  "Ranking.MinCount",
		},
		{
			name:   "ranking max below min",
			mutate: func(c *Config) { c.Ranking.MaxCount = 0 },
			field:  "Ranking.MaxCount",
		},
		{
			name:   "ranking default outside bounds",
			mutate: func(c *Config) { c.Ranking.DefaultCount = 99 },
			field:  "Ranking.DefaultCount",
		},
		{
			name:   "single histogram bin",
			mutate: func(c *Config) { c.Histogram.Bins = 1 },
			field:  "Histogram.Bins",
		},
		{
			name:   "zero radar ceiling",
			mutate: func(c *Config) { c.Radar.EnergyCeiling = 0 },
			field:  "Radar.EnergyCeiling",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(config)

			err := ValidateConfig(config)
			require.Error(t, err)

			var invalid ErrInvalidConfig
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tt.field, invalid.Field)
		})
	}
}

func TestNewWithConfigPanicsOnInvalid(t *testing.T) {
	config := DefaultConfig()
	config.Histogram.Bins = 0
	assert.Panics(t, func() {
		NewWithConfig(nil, nil, nil, config)
	})
}
