package raster

import (
	"encoding/json"
	"fmt"

	"github.com/airbusgeo/godal"

	"github.com/openhydro/watermap-cli/internal/domain"
	"github.com/openhydro/watermap-cli/internal/logger"
)

// Point is a vertex in CRS coordinates.
type Point struct {
	X float64
	Y float64
}

// Ring is a closed polygon ring.
type Ring []Point

// ReadRings loads the outer ring of every polygon feature in a vector
// dataset, typically the exported watershed boundary shapefile.
func ReadRings(path string) ([]Ring, error) {
	registerOnce.Do(godal.RegisterAll)

	ds, err := godal.Open(path, godal.VectorOnly())
	if err != nil {
		return nil, fmt.Errorf("opening boundary %s: %w", path, err)
	}
	defer ds.Close()

	var rings []Ring
	for _, layer := range ds.Layers() {
		for {
			feat := layer.NextFeature()
			if feat == nil {
				break
			}

			geom := feat.Geometry()
			if geom == nil {
				feat.Close()
				continue
			}

			gj, err := geom.GeoJSON()
			feat.Close()
			if err != nil {
				return nil, fmt.Errorf("reading boundary geometry: %w", err)
			}

			parsed, err := parseRings([]byte(gj))
			if err != nil {
				return nil, err
			}
			rings = append(rings, parsed...)
		}
	}

	if len(rings) == 0 {
		return nil, fmt.Errorf("%w: no polygon features in %s", domain.ErrNotFound, path)
	}
	return rings, nil
}

// geoJSONGeometry is the slice of GeoJSON needed to extract rings.
type geoJSONGeometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// parseRings extracts the outer ring of each polygon in a GeoJSON
// geometry. Holes are skipped; the overlay draws boundaries only.
func parseRings(data []byte) ([]Ring, error) {
	var g geoJSONGeometry
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("parsing boundary geometry: %w", err)
	}

	switch g.Type {
	case "Polygon":
		var coords [][][]float64
		if err := json.Unmarshal(g.Coordinates, &coords); err != nil {
			return nil, fmt.Errorf("parsing polygon: %w", err)
		}
		return outerRing(coords), nil
	case "MultiPolygon":
		var coords [][][][]float64
		if err := json.Unmarshal(g.Coordinates, &coords); err != nil {
			return nil, fmt.Errorf("parsing multipolygon: %w", err)
		}
		var rings []Ring
		for _, poly := range coords {
			rings = append(rings, outerRing(poly)...)
		}
		return rings, nil
	default:
		logger.Warnf("skipping %s boundary geometry", g.Type)
		return nil, nil
	}
}

func outerRing(coords [][][]float64) []Ring {
	if len(coords) == 0 {
		return nil
	}

	ring := make(Ring, 0, len(coords[0]))
	for _, pt := range coords[0] {
		if len(pt) < 2 {
			continue
		}
		ring = append(ring, Point{X: pt[0], Y: pt[1]})
	}
	if len(ring) == 0 {
		return nil
	}
	return []Ring{ring}
}
