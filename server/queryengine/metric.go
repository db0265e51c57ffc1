package queryengine

import (
	"github.com/XiPeng415/kg-explorer/store"
)

// Metric identifies one of the nine tracked parcel metrics.
type Metric string

const (
	MetricFloorArea   Metric = "floor_area"
	MetricEnergy      Metric = "energy"
	MetricTransit     Metric = "transit"
	MetricDiversity   Metric = "diversity"
	MetricBuildings   Metric = "buildings"
	MetricUnits       Metric = "units"
	MetricLevels      Metric = "levels"
	MetricBusDistance Metric = "bus_distance"
	MetricMRTDistance Metric = "mrt_distance"
)

// Metrics returns all tracked metrics in display order.
func Metrics() []Metric {
	return []Metric{
		MetricFloorArea,
		MetricEnergy,
		MetricTransit,
		MetricDiversity,
		MetricBuildings,
		MetricUnits,
		MetricLevels,
		MetricBusDistance,
		MetricMRTDistance,
	}
}

func (m Metric) String() string {
	return string(m)
}

// Label returns the human-readable metric name.
func (m Metric) Label() string {
	switch m {
	case MetricFloorArea:
		return "Gross Floor Area"
	case MetricEnergy:
		return "Annual Energy"
	case MetricTransit:
		return "Transit Index"
	case MetricDiversity:
		return "Diversity Index"
	case MetricBuildings:
		return "Building Count"
	case MetricUnits:
		return "Residential Units"
	case MetricLevels:
		return "Average Levels"
	case MetricBusDistance:
		return "Bus Distance"
	case MetricMRTDistance:
		return "MRT Distance"
	}
	return string(m)
}

// Unit returns the display unit, or an empty string for unitless metrics.
func (m Metric) Unit() string {
	switch m {
	case MetricFloorArea:
		return "m²"
	case MetricEnergy:
		return "kWh/yr"
	case MetricBusDistance, MetricMRTDistance:
		return "m"
	}
	return ""
}

// Decimals returns how many fraction digits the metric is displayed with.
func (m Metric) Decimals() int {
	switch m {
	case MetricTransit, MetricDiversity:
		return 2
	case MetricLevels:
		return 1
	}
	return 0
}

// PositiveOnly reports whether zero values are unset sentinels that must
// be excluded from means and rankings.
func (m Metric) PositiveOnly() bool {
	switch m {
	case MetricLevels, MetricBusDistance, MetricMRTDistance:
		return true
	}
	return false
}

// Value reads the metric off a parcel.
func (m Metric) Value(p *store.Parcel) float64 {
	switch m {
	case MetricFloorArea:
		return p.GrossFloorArea
	case MetricEnergy:
		return p.AnnualEnergy
	case MetricTransit:
		return p.TransitIndex
	case MetricDiversity:
		return p.DiversityIndex
	case MetricBuildings:
		return p.BuildingCount
	case MetricUnits:
		return p.UnitCount
	case MetricLevels:
		return p.AvgLevels
	case MetricBusDistance:
		return p.BusDistance
	case MetricMRTDistance:
		return p.MRTDistance
	}
	return 0
}
