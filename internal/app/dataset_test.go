package app

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"munroaccess.org/internal/models"
)

func writeJSON(t *testing.T, dir, name string, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func testPaths(t *testing.T) DatasetPaths {
	t.Helper()
	dir := t.TempDir()

	starts := []models.Start{
		{ID: "glasgow", Name: "Glasgow", LngLat: models.LngLat{Lng: -4.25, Lat: 55.86}, Radius: 2000},
	}
	targets := []models.Target{
		{
			ID: "ben-more", Name: "Ben More",
			LngLat: models.LngLat{Lng: -6.02, Lat: 56.42},
			Routes: []models.Route{{Name: "main", Time: [2]float64{4.5, 6}, Munros: []int{1}}},
		},
		{
			ID: "ben-lomond", Name: "Ben Lomond",
			LngLat: models.LngLat{Lng: -4.63, Lat: 56.19},
			Routes: []models.Route{{Name: "tourist", Time: [2]float64{4, 5}, Munros: []int{2}}},
		},
	}
	munros := []models.Munro{
		{Number: 1, Name: "Ben More", HeightM: 1174},
		{Number: 2, Name: "Ben Lomond", HeightM: 974},
	}

	return DatasetPaths{
		Starts:  writeJSON(t, dir, "starts.json", starts),
		Targets: writeJSON(t, dir, "targets.json", targets),
		Munros:  writeJSON(t, dir, "munros.json", munros),
	}
}

func TestLoadDataset(t *testing.T) {
	dataset, err := LoadDataset(testPaths(t))
	require.NoError(t, err)

	assert.Len(t, dataset.Starts, 1)
	assert.Len(t, dataset.TargetList, 2)
	assert.Equal(t, "Ben More", dataset.Targets["ben-more"].Name)
	assert.Equal(t, 974, dataset.Munros[2].HeightM)
}

func TestLoadDatasetMissingFile(t *testing.T) {
	paths := testPaths(t)
	paths.Munros = filepath.Join(t.TempDir(), "absent.json")

	_, err := LoadDataset(paths)
	assert.Error(t, err)
}

func TestLoadDatasetDuplicateTarget(t *testing.T) {
	paths := testPaths(t)
	dir := t.TempDir()
	duplicate := []models.Target{
		{ID: "ben-more", Name: "Ben More"},
		{ID: "ben-more", Name: "Ben More Again"},
	}
	paths.Targets = writeJSON(t, dir, "targets.json", duplicate)

	_, err := LoadDataset(paths)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate target")
}

func TestTargetsNear(t *testing.T) {
	dataset, err := LoadDataset(testPaths(t))
	require.NoError(t, err)

	// From Rowardennan, Ben Lomond is a few km away; Ben More on Mull is
	// over 100km away.
	near := dataset.TargetsNear(56.15, -4.65, 20_000)
	require.Len(t, near, 1)
	assert.Equal(t, "ben-lomond", near[0].ID)

	// A huge radius returns both, nearest first.
	all := dataset.TargetsNear(56.15, -4.65, 500_000)
	require.Len(t, all, 2)
	assert.Equal(t, "ben-lomond", all[0].ID)
	assert.Equal(t, "ben-more", all[1].ID)
}

func TestTargetsNearZeroRadius(t *testing.T) {
	dataset, err := LoadDataset(testPaths(t))
	require.NoError(t, err)
	assert.Empty(t, dataset.TargetsNear(56.15, -4.65, 0))
}

func TestTargetsNearHighLatitude(t *testing.T) {
	// At 69°N a degree of longitude is under 40km, so the search box must
	// widen by 1/cos(lat) to cover the radius due east and west.
	target := models.Target{ID: "lyngen", Name: "Lyngen", LngLat: models.LngLat{Lng: 19.128, Lat: 69}}
	dataset, err := NewDataset(nil, []models.Target{target}, nil)
	require.NoError(t, err)

	// The query point sits about 45km due west of the target.
	near := dataset.TargetsNear(69, 18, 50_000)
	require.Len(t, near, 1)
	assert.Equal(t, "lyngen", near[0].ID)
}
