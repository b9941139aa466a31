// Package analysis tabulates a classified raster into per-class pixel
// counts and areas. The computation is a single pass over the grid and
// carries no state between runs: the same input always produces the same
// summary.
package analysis

import (
	"math"

	"github.com/openhydro/watermap-cli/internal/domain"
	"github.com/openhydro/watermap-cli/internal/logger"
	"github.com/openhydro/watermap-cli/internal/raster"
)

// Tabulate counts pixels per water class and converts counts to areas
// using pixelAreaM2. Every legend class appears in the result, zero
// counts included. Codes outside the legend are collected under the
// unknown bucket rather than dropped, so counts always sum to the total
// pixel count.
func Tabulate(g *raster.Grid, pixelAreaM2 float64) *domain.Summary {
	counts := make(map[int]int64)
	var nodata, valid int64
	var unknown int64

	var sum, sumSq float64
	min := math.Inf(1)
	max := math.Inf(-1)

	for _, v := range g.Data {
		if g.IsNoData(v) {
			nodata++
			continue
		}

		valid++
		sum += v
		sumSq += v * v
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}

		if class, ok := domain.LegendClass(v); ok {
			counts[int(class)]++
		} else {
			unknown++
		}
	}

	summary := &domain.Summary{
		TotalPixels:  g.Pixels(),
		ValidPixels:  valid,
		NoDataPixels: nodata,
		PixelAreaM2:  pixelAreaM2,
	}

	for _, class := range domain.Legend() {
		n := counts[int(class)]
		summary.Stats = append(summary.Stats, domain.ClassStat{
			Class:  class,
			Pixels: n,
			AreaM2: float64(n) * pixelAreaM2,
		})
	}

	if unknown > 0 {
		logger.Warnf("analysis: %d pixels outside the class legend", unknown)
		summary.Unknown = &domain.ClassStat{
			Class:  domain.ClassUnknown,
			Pixels: unknown,
			AreaM2: float64(unknown) * pixelAreaM2,
		}
	}

	if valid > 0 {
		mean := sum / float64(valid)
		summary.Mean = mean
		// Population standard deviation, matching the original report.
		variance := sumSq/float64(valid) - mean*mean
		if variance < 0 {
			variance = 0
		}
		summary.StdDev = math.Sqrt(variance)
		summary.Min = min
		summary.Max = max
	}

	return summary
}
