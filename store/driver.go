package store

import (
	"context"
)

// Driver is an interface for dataset drivers. A driver knows how to read
// one snapshot format (JSON file, SQLite file); it loads the raw parcel
// and edge arrays and leaves indexing and validation to the store.
type Driver interface {
	// LoadSnapshot reads the full dataset. It is called once at startup;
	// the dataset is immutable for the lifetime of the process.
	LoadSnapshot(ctx context.Context) (*Snapshot, error)

	Close() error
}
