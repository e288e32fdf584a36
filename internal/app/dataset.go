package app

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/tidwall/rtree"

	"munroaccess.org/internal/geo"
	"munroaccess.org/internal/models"
)

// Dataset is the loaded input data the API serves from: starting cities,
// trailhead targets, munro metadata and the analyzed results. The target
// index is built once at load time and read concurrently.
type Dataset struct {
	Starts     []models.Start
	TargetList []models.Target
	Targets    map[string]models.Target
	Munros     map[int]models.Munro
	Results    []models.Result

	targetIndex *rtree.RTree
}

// DatasetPaths names the input files for LoadDataset.
type DatasetPaths struct {
	Starts  string
	Targets string
	Munros  string
}

// NewDataset assembles a dataset from already-loaded inputs and builds the
// spatial index.
func NewDataset(starts []models.Start, targetList []models.Target, munroList []models.Munro) (*Dataset, error) {
	targets := make(map[string]models.Target, len(targetList))
	for _, target := range targetList {
		if _, exists := targets[target.ID]; exists {
			return nil, fmt.Errorf("duplicate target id %q", target.ID)
		}
		targets[target.ID] = target
	}

	munros := make(map[int]models.Munro, len(munroList))
	for _, munro := range munroList {
		munros[munro.Number] = munro
	}

	return &Dataset{
		Starts:      starts,
		TargetList:  targetList,
		Targets:     targets,
		Munros:      munros,
		targetIndex: buildTargetIndex(targetList),
	}, nil
}

// LoadDataset reads the JSON input files. Results are attached separately
// by the caller, loaded from either the JSONL file or the sqlite store.
func LoadDataset(paths DatasetPaths) (*Dataset, error) {
	var starts []models.Start
	if err := readJSON(paths.Starts, &starts); err != nil {
		return nil, err
	}

	var targetList []models.Target
	if err := readJSON(paths.Targets, &targetList); err != nil {
		return nil, err
	}

	var munroList []models.Munro
	if err := readJSON(paths.Munros, &munroList); err != nil {
		return nil, err
	}

	return NewDataset(starts, targetList, munroList)
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// buildTargetIndex creates an R-tree over target coordinates. For points,
// min and max are the same [lat, lon].
func buildTargetIndex(targets []models.Target) *rtree.RTree {
	tree := &rtree.RTree{}
	for _, target := range targets {
		point := [2]float64{target.LngLat.Lat, target.LngLat.Lng}
		tree.Insert(point, point, target)
	}
	return tree
}

const metersPerDegreeLat = 111320.0

// TargetsNear returns targets within radiusMeters of a point, nearest
// first. The R-tree search uses a bounding box; the haversine distance
// filters the corners out.
func (d *Dataset) TargetsNear(lat, lon, radiusMeters float64) []models.Target {
	if d.targetIndex == nil || radiusMeters <= 0 {
		return nil
	}

	latDelta := radiusMeters / metersPerDegreeLat
	// Meridians converge with latitude, so the box widens by 1/cos(lat).
	lonDelta := 180.0
	if cosLat := math.Cos(lat * math.Pi / 180); cosLat > 1e-6 {
		lonDelta = latDelta / cosLat
	}

	type hit struct {
		target   models.Target
		distance float64
	}
	var hits []hit
	d.targetIndex.Search(
		[2]float64{lat - latDelta, lon - lonDelta},
		[2]float64{lat + latDelta, lon + lonDelta},
		func(min, max [2]float64, data interface{}) bool {
			if target, ok := data.(models.Target); ok {
				distance := geo.Distance(lat, lon, target.LngLat.Lat, target.LngLat.Lng)
				if distance <= radiusMeters {
					hits = append(hits, hit{target: target, distance: distance})
				}
			}
			return true
		},
	)

	// Distance ties are broken by ID to keep responses stable.
	sort.Slice(hits, func(a, b int) bool {
		if hits[a].distance != hits[b].distance {
			return hits[a].distance < hits[b].distance
		}
		return hits[a].target.ID < hits[b].target.ID
	})

	results := make([]models.Target, len(hits))
	for i, h := range hits {
		results[i] = h.target
	}
	return results
}
