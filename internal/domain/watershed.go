package domain

import "encoding/json"

// BoundingBox is a geographic rectangle in degrees (WGS84).
type BoundingBox struct {
	West  float64 `toml:"west"`
	South float64 `toml:"south"`
	East  float64 `toml:"east"`
	North float64 `toml:"north"`
}

// Valid reports whether the box encloses a non-empty area with
// coordinates in range.
func (b BoundingBox) Valid() bool {
	if b.West >= b.East || b.South >= b.North {
		return false
	}
	if b.West < -180 || b.East > 180 || b.South < -90 || b.North > 90 {
		return false
	}
	return true
}

// Watershed is a drainage basin boundary fetched from the boundary
// dataset. Geometry is the raw GeoJSON geometry as returned by the
// service; it is carried opaquely and never mutated.
type Watershed struct {
	HUC10    string
	Name     string
	Geometry json.RawMessage
}
