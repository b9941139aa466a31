// Package raster reads georeferenced rasters into memory. Pixel access
// and footprint arithmetic live on Grid so the analysis stage never
// touches GDAL directly.
package raster

import (
	"math"
	"strings"
)

// Grid is a single-band raster held in memory, row-major from the
// top-left corner.
type Grid struct {
	Width  int
	Height int

	// Data holds pixel values as float64 regardless of the on-disk type
	// so nodata comparisons work uniformly.
	Data []float64

	// Transform is the GDAL geotransform: origin X, pixel width, row
	// rotation, origin Y, column rotation, pixel height (negative for
	// north-up rasters).
	Transform [6]float64

	// Projection is the CRS in WKT, empty when the file carries none.
	Projection string

	// NoData is the declared nodata value, nil when absent.
	NoData *float64
}

// At returns the value at (col, row).
func (g *Grid) At(col, row int) float64 {
	return g.Data[row*g.Width+col]
}

// Pixels returns the total pixel count.
func (g *Grid) Pixels() int64 {
	return int64(g.Width) * int64(g.Height)
}

// IsNoData reports whether v is the nodata marker. NaN always counts as
// nodata.
func (g *Grid) IsNoData(v float64) bool {
	if math.IsNaN(v) {
		return true
	}
	return g.NoData != nil && v == *g.NoData
}

// CellSize returns the absolute pixel width and height in CRS units.
func (g *Grid) CellSize() (float64, float64) {
	return math.Abs(g.Transform[1]), math.Abs(g.Transform[5])
}

// Bounds returns the raster extent in CRS coordinates
// (minX, minY, maxX, maxY).
func (g *Grid) Bounds() (minX, minY, maxX, maxY float64) {
	x0 := g.Transform[0]
	y0 := g.Transform[3]
	x1 := x0 + g.Transform[1]*float64(g.Width)
	y1 := y0 + g.Transform[5]*float64(g.Height)
	return math.Min(x0, x1), math.Min(y0, y1), math.Max(x0, x1), math.Max(y0, y1)
}

// Projected reports whether the CRS is a projected coordinate system,
// i.e. cell sizes are linear units rather than degrees.
func (g *Grid) Projected() bool {
	return strings.Contains(g.Projection, "PROJCS") ||
		strings.Contains(g.Projection, "PROJCRS")
}

// PixelArea returns the ground footprint of one pixel in square metres.
// For projected rasters this comes straight from the geotransform; for
// geographic rasters the transform is in degrees, so the export scale
// (metres per pixel) is authoritative.
func (g *Grid) PixelArea(scaleMeters float64) float64 {
	if g.Projected() {
		w, h := g.CellSize()
		if w > 0 && h > 0 {
			return w * h
		}
	}
	return scaleMeters * scaleMeters
}
