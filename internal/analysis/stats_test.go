package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openhydro/watermap-cli/internal/domain"
	"github.com/openhydro/watermap-cli/internal/raster"
)

// grid10x10 returns a 10x10 grid where 40 pixels are class 1 and 60 are
// class 2, at a 30 m projected resolution.
func grid10x10() *raster.Grid {
	data := make([]float64, 100)
	for i := range data {
		if i < 40 {
			data[i] = 1
		} else {
			data[i] = 2
		}
	}
	return &raster.Grid{
		Width:      10,
		Height:     10,
		Data:       data,
		Transform:  [6]float64{500000, 30, 0, 4400000, 0, -30},
		Projection: `PROJCS["WGS 84 / UTM zone 13N"]`,
	}
}

func classStat(t *testing.T, s *domain.Summary, class domain.WaterClass) domain.ClassStat {
	t.Helper()
	for _, cs := range s.Stats {
		if cs.Class == class {
			return cs
		}
	}
	t.Fatalf("class %v missing from summary", class)
	return domain.ClassStat{}
}

func TestTabulateKnownCounts(t *testing.T) {
	g := grid10x10()
	s := Tabulate(g, g.PixelArea(30))

	assert.Equal(t, int64(40), classStat(t, s, domain.ClassOccasionalWater).Pixels)
	assert.Equal(t, int64(60), classStat(t, s, domain.ClassSeasonalWater).Pixels)

	// Areas are proportional to the squared resolution.
	assert.InDelta(t, 40*900.0, classStat(t, s, domain.ClassOccasionalWater).AreaM2, 1e-9)
	assert.InDelta(t, 60*900.0, classStat(t, s, domain.ClassSeasonalWater).AreaM2, 1e-9)
	assert.InDelta(t, 0.036, classStat(t, s, domain.ClassOccasionalWater).AreaKm2(), 1e-12)
}

func TestTabulateNoPixelsDroppedOrDoubleCounted(t *testing.T) {
	g := grid10x10()
	s := Tabulate(g, g.PixelArea(30))

	assert.Equal(t, int64(100), s.TotalPixels)
	assert.Equal(t, s.TotalPixels, s.CountedPixels())
}

func TestTabulateZeroCountClassesPresent(t *testing.T) {
	g := grid10x10()
	s := Tabulate(g, g.PixelArea(30))

	require.Len(t, s.Stats, len(domain.Legend()))
	assert.Equal(t, int64(0), classStat(t, s, domain.ClassNoWater).Pixels)
	assert.Equal(t, 0.0, classStat(t, s, domain.ClassNoWater).AreaM2)
	assert.Equal(t, int64(0), classStat(t, s, domain.ClassPermanentWater).Pixels)
}

func TestTabulateIdempotent(t *testing.T) {
	g := grid10x10()

	first := Tabulate(g, g.PixelArea(30))
	second := Tabulate(g, g.PixelArea(30))
	assert.Equal(t, first, second)
}

func TestTabulateStatistics(t *testing.T) {
	g := grid10x10()
	s := Tabulate(g, g.PixelArea(30))

	// 40 ones and 60 twos: mean 1.6, population stddev sqrt(0.24).
	assert.InDelta(t, 1.6, s.Mean, 1e-12)
	assert.InDelta(t, math.Sqrt(0.24), s.StdDev, 1e-12)
	assert.Equal(t, 1.0, s.Min)
	assert.Equal(t, 2.0, s.Max)
}

func TestTabulateNoData(t *testing.T) {
	g := grid10x10()
	nd := 255.0
	g.NoData = &nd
	g.Data[0] = 255
	g.Data[1] = math.NaN()

	s := Tabulate(g, g.PixelArea(30))

	assert.Equal(t, int64(2), s.NoDataPixels)
	assert.Equal(t, int64(98), s.ValidPixels)
	assert.Equal(t, s.TotalPixels, s.CountedPixels())
	// The two masked pixels were class 1.
	assert.Equal(t, int64(38), classStat(t, s, domain.ClassOccasionalWater).Pixels)
}

func TestTabulateUnknownCodes(t *testing.T) {
	g := grid10x10()
	g.Data[0] = 9     // outside the legend
	g.Data[1] = 1.5   // non-integral, cannot be a class code
	g.Data[2] = 1e300 // far beyond any integer class code

	s := Tabulate(g, g.PixelArea(30))

	require.NotNil(t, s.Unknown)
	assert.Equal(t, int64(3), s.Unknown.Pixels)
	assert.Equal(t, domain.ClassUnknown, s.Unknown.Class)
	assert.Equal(t, s.TotalPixels, s.CountedPixels())
}

func TestTabulateEmptyValid(t *testing.T) {
	g := grid10x10()
	nd := 0.0
	g.NoData = &nd
	for i := range g.Data {
		g.Data[i] = 0
	}

	s := Tabulate(g, g.PixelArea(30))

	assert.Equal(t, int64(0), s.ValidPixels)
	assert.Equal(t, int64(100), s.NoDataPixels)
	assert.Equal(t, 0.0, s.Mean)
	assert.Equal(t, 0.0, s.TotalAreaM2())
}

func TestShare(t *testing.T) {
	g := grid10x10()
	s := Tabulate(g, g.PixelArea(30))

	assert.InDelta(t, 0.4, s.Share(classStat(t, s, domain.ClassOccasionalWater)), 1e-12)
	assert.InDelta(t, 0.6, s.Share(classStat(t, s, domain.ClassSeasonalWater)), 1e-12)

	var total float64
	for _, cs := range s.Stats {
		total += s.Share(cs)
	}
	assert.InDelta(t, 1.0, total, 1e-12)
}
