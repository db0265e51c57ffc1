package queryengine

import (
	"fmt"
)

// Config collects the engine's tunable display and computation limits.
type Config struct {
	// Display limits for handler output
	Display DisplayConfig `json:"display" yaml:"display"`

	// Ranking parameters
	Ranking RankingConfig `json:"ranking" yaml:"ranking"`

	// Histogram parameters
	Histogram HistogramConfig `json:"histogram" yaml:"histogram"`

	// Radar normalization ceilings
	Radar RadarConfig `json:"radar" yaml:"radar"`
}

// DisplayConfig caps how many entries handlers list before adding an
// overflow note.
type DisplayConfig struct {
	// Connections shown per edge-type group on a parcel detail
	ParcelConnections int `json:"parcelConnections" yaml:"parcelConnections"`
	// Neighbors shown per edge-type group on a relationship result
	RelationshipNeighbors int `json:"relationshipNeighbors" yaml:"relationshipNeighbors"`
	// Top parcels listed on a category profile
	CategoryTopParcels int `json:"categoryTopParcels" yaml:"categoryTopParcels"`
	// Top parcels listed on a facility result
	FacilityTopParcels int `json:"facilityTopParcels" yaml:"facilityTopParcels"`
}

// RankingConfig bounds the ranking count parameter.
type RankingConfig struct {
	// Count used when the question names none, or a non-positive one
	DefaultCount int `json:"defaultCount" yaml:"defaultCount"`
	// Smallest accepted count
	MinCount int `json:"minCount" yaml:"minCount"`
	// Largest accepted count
	MaxCount int `json:"maxCount" yaml:"maxCount"`
}

// HistogramConfig shapes the statistics histogram.
type HistogramConfig struct {
	// Number of equal-width bins
	Bins int `json:"bins" yaml:"bins"`
}

// RadarConfig holds the fixed reference ceilings used to bring unbounded
// metrics onto the radar chart's 0-1 scale.
type RadarConfig struct {
	// Gross floor area ceiling in square meters
	FloorAreaCeiling float64 `json:"floorAreaCeiling" yaml:"floorAreaCeiling"`
	// Annual energy ceiling in kWh per year
	EnergyCeiling float64 `json:"energyCeiling" yaml:"energyCeiling"`
	// Building count ceiling
	BuildingCeiling float64 `json:"buildingCeiling" yaml:"buildingCeiling"`
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() *Config {
	return &Config{
		Display: DisplayConfig{
			ParcelConnections:     8,
			RelationshipNeighbors: 15,
			CategoryTopParcels:    5,
			FacilityTopParcels:    10,
		},
		Ranking: RankingConfig{
			DefaultCount: 10,
			MinCount:     1,
			MaxCount:     50,
		},
		Histogram: HistogramConfig{
			Bins: 12,
		},
		Radar: RadarConfig{
			FloorAreaCeiling: 500000,
			EnergyCeiling:    25000000,
			BuildingCeiling:  50,
		},
	}
}

// ValidateConfig verifies the configuration is internally consistent.
func ValidateConfig(config *Config) error {
	if config.Display.ParcelConnections < 1 || config.Display.ParcelConnections > 100 {
		return ErrInvalidConfig{Field: "Display.ParcelConnections", Value: config.Display.ParcelConnections}
	}
	if config.Display.RelationshipNeighbors < 1 || config.Display.RelationshipNeighbors > 100 {
		return ErrInvalidConfig{Field: "Display.RelationshipNeighbors", Value: config.Display.RelationshipNeighbors}
	}
	if config.Display.CategoryTopParcels < 1 || config.Display.CategoryTopParcels > 100 {
		return ErrInvalidConfig{Field: "Display.CategoryTopParcels", Value: config.Display.CategoryTopParcels}
	}
	if config.Display.FacilityTopParcels < 1 || config.Display.FacilityTopParcels > 100 {
		return ErrInvalidConfig{Field: "Display.FacilityTopParcels", Value: config.Display.FacilityTopParcels}
	}

	if config.Ranking.MinCount < 1 {
		return ErrInvalidConfig{Field: "Ranking.MinCount", Value: config.Ranking.MinCount}
	}
	if config.Ranking.MaxCount < config.Ranking.MinCount || config.Ranking.MaxCount > 1000 {
		return ErrInvalidConfig{Field: "Ranking.MaxCount", Value: config.Ranking.MaxCount}
	}
	if config.Ranking.DefaultCount < config.Ranking.MinCount || config.Ranking.DefaultCount > config.Ranking.MaxCount {
		return ErrInvalidConfig{Field: "Ranking.DefaultCount", Value: config.Ranking.DefaultCount}
	}

	if config.Histogram.Bins < 2 || config.Histogram.Bins > 100 {
		return ErrInvalidConfig{Field: "Histogram.Bins", Value: config.Histogram.Bins}
	}

	if config.Radar.FloorAreaCeiling <= 0 {
		return ErrInvalidConfig{Field: "Radar.FloorAreaCeiling", Value: config.Radar.FloorAreaCeiling}
	}
	if config.Radar.EnergyCeiling <= 0 {
		return ErrInvalidConfig{Field: "Radar.EnergyCeiling", Value: config.Radar.EnergyCeiling}
	}
	if config.Radar.BuildingCeiling <= 0 {
		return ErrInvalidConfig{Field: "Radar.BuildingCeiling", Value: config.Radar.BuildingCeiling}
	}

	return nil
}

// ErrInvalidConfig reports a config field with an out-of-range value.
type ErrInvalidConfig struct {
	Field string
	Value interface{}
}

func (e ErrInvalidConfig) Error() string {
	return fmt.Sprintf("invalid config field '%s': %v", e.Field, e.Value)
}
