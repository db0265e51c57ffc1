// Package sqlite loads dataset snapshots from a SQLite file holding two
// tables:
//
//	parcel(idx, id, lat, lng, category, gross_floor_area, annual_energy,
//	       transit_index, diversity_index, building_count, unit_count,
//	       avg_levels, bus_distance, mrt_distance, nearest_bus,
//	       nearest_mrt, facilities)
//	edge(source, target, type)
//
// The parcel table's idx column fixes the dataset order that edge rows
// address; facilities is the raw comma-joined string, tokenized at load.
package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
	// Import the SQLite driver.
	_ "modernc.org/sqlite"

	"github.com/XiPeng415/kg-explorer/internal/profile"
	"github.com/XiPeng415/kg-explorer/store"
)

// Driver reads a dataset snapshot from a SQLite file.
type Driver struct {
	db      *sql.DB
	profile *profile.Profile
}

func NewDriver(profile *profile.Profile) (store.Driver, error) {
	if profile == nil {
		return nil, errors.New("profile is nil")
	}

	db, err := sql.Open("sqlite", profile.DSN)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open database: %s", profile.DSN)
	}

	// The dataset is read once at startup; a single connection is enough
	// and avoids SQLITE_BUSY on the file.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, "failed to ping database")
	}

	return &Driver{db: db, profile: profile}, nil
}

func (d *Driver) LoadSnapshot(ctx context.Context) (*store.Snapshot, error) {
	parcels, err := d.loadParcels(ctx)
	if err != nil {
		return nil, err
	}
	edges, err := d.loadEdges(ctx)
	if err != nil {
		return nil, err
	}
	return &store.Snapshot{Parcels: parcels, Edges: edges}, nil
}

func (d *Driver) loadParcels(ctx context.Context) ([]*store.Parcel, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT
			id, lat, lng, category,
			gross_floor_area, annual_energy, transit_index, diversity_index,
			building_count, unit_count, avg_levels,
			bus_distance, mrt_distance, nearest_bus, nearest_mrt, facilities
		FROM parcel
		ORDER BY idx`,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query parcels")
	}
	defer rows.Close()

	var parcels []*store.Parcel
	for rows.Next() {
		var (
			p          store.Parcel
			category   string
			facilities string
		)
		if err := rows.Scan(
			&p.ID, &p.Lat, &p.Lng, &category,
			&p.GrossFloorArea, &p.AnnualEnergy, &p.TransitIndex, &p.DiversityIndex,
			&p.BuildingCount, &p.UnitCount, &p.AvgLevels,
			&p.BusDistance, &p.MRTDistance, &p.NearestBus, &p.NearestMRT, &facilities,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan parcel row")
		}
		p.Category, _ = store.ParseCategory(category)
		p.Facilities = store.ParseFacilities(facilities)
		parcels = append(parcels, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate parcel rows")
	}
	return parcels, nil
}

func (d *Driver) loadEdges(ctx context.Context) ([]store.Edge, error) {
	rows, err := d.db.QueryContext(ctx, `SELECT source, target, type FROM edge`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query edges")
	}
	defer rows.Close()

	var edges []store.Edge
	for rows.Next() {
		var (
			e       store.Edge
			rawType string
		)
		if err := rows.Scan(&e.Source, &e.Target, &rawType); err != nil {
			return nil, errors.Wrap(err, "failed to scan edge row")
		}
		e.Type = store.EdgeType(rawType)
		if !e.Type.IsValid() {
			return nil, errors.Errorf("edge (%d,%d) has unknown type %q", e.Source, e.Target, rawType)
		}
		edges = append(edges, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate edge rows")
	}
	return edges, nil
}

func (d *Driver) Close() error {
	return d.db.Close()
}
