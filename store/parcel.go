package store

import (
	"strings"
)

// Category classifies a parcel by its built form and amenity profile.
// Categories are assigned by an external classification pipeline; this
// layer only carries them. The string value is the canonical display name
// used in dataset files and in the UI.
type Category string

const (
	CategoryTransitOrientedDense Category = "Transit-Oriented Dense"
	CategoryTransitOriented      Category = "Transit-Oriented"
	CategoryLifestyleHub         Category = "Lifestyle Hub"
	CategoryHighDensity          Category = "High Density"
	CategoryStandardResidential  Category = "Standard Residential"
	CategoryPeripheral           Category = "Peripheral"
)

// Categories returns the six known categories in classification order.
// The order matters: the external pipeline assigns the first matching
// rule, so explanations must present rules in this sequence.
func Categories() []Category {
	return []Category{
		CategoryTransitOrientedDense,
		CategoryTransitOriented,
		CategoryLifestyleHub,
		CategoryHighDensity,
		CategoryStandardResidential,
		CategoryPeripheral,
	}
}

func (c Category) String() string {
	return string(c)
}

// IsValid reports whether c is one of the six known categories.
// Unknown categories are tolerated on parcels (the dataset is externally
// produced and not schema-enforced) but excluded from per-category tables.
func (c Category) IsValid() bool {
	switch c {
	case CategoryTransitOrientedDense, CategoryTransitOriented, CategoryLifestyleHub,
		CategoryHighDensity, CategoryStandardResidential, CategoryPeripheral:
		return true
	}
	return false
}

// Color returns the color assigned to the category in the renderer's
// category color table. Unknown categories share a neutral gray.
func (c Category) Color() string {
	switch c {
	case CategoryTransitOrientedDense:
		return "#e74c3c"
	case CategoryTransitOriented:
		return "#e67e22"
	case CategoryLifestyleHub:
		return "#9b59b6"
	case CategoryHighDensity:
		return "#3498db"
	case CategoryStandardResidential:
		return "#2ecc71"
	case CategoryPeripheral:
		return "#95a5a6"
	}
	return "#7f8c8d"
}

// Rule returns the classification rule text for the category as applied by
// the external pipeline. Rules are data in this layer, not logic: parcels
// arrive already classified, and the rule text is surfaced verbatim by the
// methodology and category handlers.
func (c Category) Rule() string {
	switch c {
	case CategoryTransitOrientedDense:
		return "Transit index ≥ 0.7 and gross floor area ≥ 150,000 m²"
	case CategoryTransitOriented:
		return "Transit index ≥ 0.7"
	case CategoryLifestyleHub:
		return "Diversity index ≥ 0.6 and access to 3 or more facility types"
	case CategoryHighDensity:
		return "Gross floor area ≥ 250,000 m² or 1,500 or more residential units"
	case CategoryStandardResidential:
		return "5 or more buildings and 200 or more residential units"
	case CategoryPeripheral:
		return "None of the above rules matched"
	}
	return ""
}

// ParseCategory maps a raw dataset string onto a canonical category,
// case-insensitively. Unknown values are returned as-is with ok=false so
// callers can keep them (permissive load) while knowing they are not part
// of the canonical set.
func ParseCategory(raw string) (Category, bool) {
	trimmed := strings.TrimSpace(raw)
	for _, c := range Categories() {
		if strings.EqualFold(trimmed, string(c)) {
			return c, true
		}
	}
	return Category(trimmed), false
}

// Parcel is one land parcel of the knowledge graph. All fields are set at
// load time and never mutated.
type Parcel struct {
	ID             string   `json:"id"`
	Lat            float64  `json:"lat"`
	Lng            float64  `json:"lng"`
	Category       Category `json:"category"`
	GrossFloorArea float64  `json:"gross_floor_area"`
	AnnualEnergy   float64  `json:"annual_energy"`
	TransitIndex   float64  `json:"transit_index"`
	DiversityIndex float64  `json:"diversity_index"`
	BuildingCount  float64  `json:"building_count"`
	UnitCount      float64  `json:"unit_count"`
	AvgLevels      float64  `json:"avg_levels"`
	BusDistance    float64  `json:"bus_distance"`
	MRTDistance    float64  `json:"mrt_distance"`
	NearestBus     string   `json:"nearest_bus,omitempty"`
	NearestMRT     string   `json:"nearest_mrt,omitempty"`
	// Facilities holds the parcel's facility-access tokens, parsed once at
	// load time from the dataset's comma-joined string.
	Facilities []string `json:"facilities"`
}

// HasFacility reports whether the parcel lists the given facility token,
// compared case-insensitively.
func (p *Parcel) HasFacility(facility string) bool {
	for _, f := range p.Facilities {
		if strings.EqualFold(f, facility) {
			return true
		}
	}
	return false
}

// ParseFacilities splits a comma-joined facility string into trimmed,
// non-empty tokens. Dataset drivers call this once per parcel at load time.
func ParseFacilities(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tokens := make([]string, 0, len(parts))
	for _, part := range parts {
		token := strings.TrimSpace(part)
		if token == "" {
			continue
		}
		tokens = append(tokens, token)
	}
	if len(tokens) == 0 {
		return nil
	}
	return tokens
}
