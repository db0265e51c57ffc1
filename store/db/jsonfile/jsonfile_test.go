package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/XiPeng415/kg-explorer/internal/profile"
	"github.com/XiPeng415/kg-explorer/store"
)

func writeDataset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dataset.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadSnapshot(t *testing.T) {
	path := writeDataset(t, `{
		"parcels": [
			{"id": "kml_1", "lat": 1.3, "lng": 103.8, "category": "High Density",
			 "gross_floor_area": 100000, "facilities": "Garden, Sport,"},
			{"id": "kml_2", "category": "Industrial", "facilities": ""}
		],
		"edges": [
			{"source": 0, "target": 1, "type": "shared_garden"}
		]
	}`)

	driver, err := NewDriver(&profile.Profile{Mode: "dev", Driver: "jsonfile", DSN: path})
	require.NoError(t, err)
	defer driver.Close()

	snapshot, err := driver.LoadSnapshot(context.Background())
	require.NoError(t, err)
	require.Len(t, snapshot.Parcels, 2)
	require.Len(t, snapshot.Edges, 1)

	first := snapshot.Parcels[0]
	assert.Equal(t, "kml_1", first.ID)
	assert.Equal(t, store.CategoryHighDensity, first.Category)
	assert.Equal(t, []string{"Garden", "Sport"}, first.Facilities)

	// Unknown categories are kept as-is; the dataset is not schema-enforced.
	second := snapshot.Parcels[1]
	assert.Equal(t, store.Category("Industrial"), second.Category)
	assert.False(t, second.Category.IsValid())
	assert.Nil(t, second.Facilities)

	assert.Equal(t, store.EdgeSharedGarden, snapshot.Edges[0].Type)
}

func TestLoadSnapshotUnknownEdgeType(t *testing.T) {
	path := writeDataset(t, `{
		"parcels": [{"id": "kml_1"}, {"id": "kml_2"}],
		"edges": [{"source": 0, "target": 1, "type": "telepathic_link"}]
	}`)

	driver, err := NewDriver(&profile.Profile{Mode: "dev", Driver: "jsonfile", DSN: path})
	require.NoError(t, err)

	_, err = driver.LoadSnapshot(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "telepathic_link")
}

func TestLoadSnapshotMissingFile(t *testing.T) {
	driver, err := NewDriver(&profile.Profile{Mode: "dev", Driver: "jsonfile", DSN: "/nope/dataset.json"})
	require.NoError(t, err)

	_, err = driver.LoadSnapshot(context.Background())
	require.Error(t, err)
}

func TestLoadSnapshotDemoDataset(t *testing.T) {
	driver, err := NewDriver(&profile.Profile{Mode: "demo", Driver: "jsonfile"})
	require.NoError(t, err)

	snapshot, err := driver.LoadSnapshot(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, snapshot.Parcels)
	assert.NotEmpty(t, snapshot.Edges)

	// The demo snapshot must satisfy the store's structural contract.
	s, err := store.New(snapshot)
	require.NoError(t, err)

	// Demo data covers every canonical category so every handler has
	// something to show.
	seen := map[store.Category]bool{}
	for _, p := range s.Parcels() {
		seen[p.Category] = true
	}
	for _, c := range store.Categories() {
		assert.True(t, seen[c], "demo dataset should include %s", c)
	}
}
