// Package jsonfile loads dataset snapshots from a single JSON document:
// a parcel array carrying the raw comma-joined facility string, and an
// edge array of (source, target, type) records addressing parcels by
// their position in the parcel array.
package jsonfile

import (
	"context"
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"github.com/XiPeng415/kg-explorer/internal/profile"
	"github.com/XiPeng415/kg-explorer/store"
)

// Driver reads a dataset snapshot from a JSON file.
type Driver struct {
	profile *profile.Profile
}

// NewDriver creates a JSON file dataset driver. In demo mode without an
// explicit DSN the driver serves the embedded sample dataset.
func NewDriver(profile *profile.Profile) (*Driver, error) {
	return &Driver{profile: profile}, nil
}

// rawParcel mirrors the on-disk parcel record. Facilities arrive as one
// comma-joined string and are tokenized once here.
type rawParcel struct {
	ID             string  `json:"id"`
	Lat            float64 `json:"lat"`
	Lng            float64 `json:"lng"`
	Category       string  `json:"category"`
	GrossFloorArea float64 `json:"gross_floor_area"`
	AnnualEnergy   float64 `json:"annual_energy"`
	TransitIndex   float64 `json:"transit_index"`
	DiversityIndex float64 `json:"diversity_index"`
	BuildingCount  float64 `json:"building_count"`
	UnitCount      float64 `json:"unit_count"`
	AvgLevels      float64 `json:"avg_levels"`
	BusDistance    float64 `json:"bus_distance"`
	MRTDistance    float64 `json:"mrt_distance"`
	NearestBus     string  `json:"nearest_bus"`
	NearestMRT     string  `json:"nearest_mrt"`
	Facilities     string  `json:"facilities"`
}

type rawEdge struct {
	Source int    `json:"source"`
	Target int    `json:"target"`
	Type   string `json:"type"`
}

type rawDataset struct {
	Parcels []rawParcel `json:"parcels"`
	Edges   []rawEdge   `json:"edges"`
}

// LoadSnapshot reads and decodes the dataset file. Unknown categories are
// kept as-is (the dataset is externally produced and not schema-enforced);
// unknown edge types fail the load because the edge vocabulary is fixed.
func (d *Driver) LoadSnapshot(_ context.Context) (*store.Snapshot, error) {
	data, err := d.readDataset()
	if err != nil {
		return nil, err
	}

	var raw rawDataset
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "failed to decode dataset")
	}

	return buildSnapshot(&raw)
}

func (d *Driver) readDataset() ([]byte, error) {
	if d.profile.IsDemo() && d.profile.DSN == "" {
		return demoDataset, nil
	}
	data, err := os.ReadFile(d.profile.DSN)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read dataset file %s", d.profile.DSN)
	}
	return data, nil
}

func buildSnapshot(raw *rawDataset) (*store.Snapshot, error) {
	snapshot := &store.Snapshot{
		Parcels: make([]*store.Parcel, 0, len(raw.Parcels)),
		Edges:   make([]store.Edge, 0, len(raw.Edges)),
	}

	for _, rp := range raw.Parcels {
		category, _ := store.ParseCategory(rp.Category)
		snapshot.Parcels = append(snapshot.Parcels, &store.Parcel{
			ID:             rp.ID,
			Lat:            rp.Lat,
			Lng:            rp.Lng,
			Category:       category,
			GrossFloorArea: rp.GrossFloorArea,
			AnnualEnergy:   rp.AnnualEnergy,
			TransitIndex:   rp.TransitIndex,
			DiversityIndex: rp.DiversityIndex,
			BuildingCount:  rp.BuildingCount,
			UnitCount:      rp.UnitCount,
			AvgLevels:      rp.AvgLevels,
			BusDistance:    rp.BusDistance,
			MRTDistance:    rp.MRTDistance,
			NearestBus:     rp.NearestBus,
			NearestMRT:     rp.NearestMRT,
			Facilities:     store.ParseFacilities(rp.Facilities),
		})
	}

	for i, re := range raw.Edges {
		edgeType := store.EdgeType(re.Type)
		if !edgeType.IsValid() {
			return nil, errors.Errorf("edge %d has unknown type %q", i, re.Type)
		}
		snapshot.Edges = append(snapshot.Edges, store.Edge{
			Source: re.Source,
			Target: re.Target,
			Type:   edgeType,
		})
	}

	return snapshot, nil
}

func (*Driver) Close() error {
	return nil
}
