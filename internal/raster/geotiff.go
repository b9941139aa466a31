package raster

import (
	"fmt"
	"sync"

	"github.com/airbusgeo/godal"

	"github.com/openhydro/watermap-cli/internal/domain"
	"github.com/openhydro/watermap-cli/internal/logger"
)

var registerOnce sync.Once

// Read loads the first band of a georeferenced raster file.
func Read(path string) (*Grid, error) {
	registerOnce.Do(godal.RegisterAll)

	ds, err := godal.Open(path, godal.RasterOnly())
	if err != nil {
		return nil, fmt.Errorf("opening raster %s: %w", path, err)
	}
	defer ds.Close()

	bands := ds.Bands()
	if len(bands) == 0 {
		return nil, fmt.Errorf("%w: %s has no bands", domain.ErrEmptyRaster, path)
	}
	if len(bands) > 1 {
		logger.Warnf("raster %s has %d bands, reading the first", path, len(bands))
	}
	band := bands[0]

	st := ds.Structure()
	if st.SizeX <= 0 || st.SizeY <= 0 {
		return nil, fmt.Errorf("%w: %s is empty", domain.ErrEmptyRaster, path)
	}

	grid := &Grid{
		Width:  st.SizeX,
		Height: st.SizeY,
		Data:   make([]float64, st.SizeX*st.SizeY),
	}

	if err := band.Read(0, 0, grid.Data, st.SizeX, st.SizeY); err != nil {
		return nil, fmt.Errorf("reading band: %w", err)
	}

	gt, err := ds.GeoTransform()
	if err != nil {
		// Ungeoreferenced rasters still tabulate; area falls back to the
		// configured scale.
		logger.Warnf("raster %s has no geotransform: %v", path, err)
		gt = [6]float64{0, 1, 0, 0, 0, -1}
	}
	grid.Transform = gt
	grid.Projection = ds.Projection()

	if nd, ok := band.NoData(); ok {
		grid.NoData = &nd
	}

	logger.Debugf("raster: %s %dx%d, nodata=%v", path, grid.Width, grid.Height, grid.NoData)
	return grid, nil
}
