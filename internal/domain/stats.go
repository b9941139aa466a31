package domain

// ClassStat is the tabulated result for one water class.
type ClassStat struct {
	Class  WaterClass
	Pixels int64
	AreaM2 float64
}

// AreaKm2 returns the class area in square kilometres.
func (s ClassStat) AreaKm2() float64 {
	return s.AreaM2 / 1e6
}

// Summary holds the per-class tabulation and raster-wide statistics for
// one analysis run. Stats always contains every legend class in order;
// Unknown is present only when out-of-legend codes were observed.
type Summary struct {
	Stats   []ClassStat
	Unknown *ClassStat

	TotalPixels  int64
	ValidPixels  int64
	NoDataPixels int64

	// PixelAreaM2 is the ground footprint of a single pixel used for the
	// count-to-area conversion.
	PixelAreaM2 float64

	// Moments over valid pixel values, matching the original report
	// (population standard deviation).
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

// CountedPixels sums pixels across all buckets including nodata. The
// tabulation guarantees this equals TotalPixels: no pixel is dropped or
// double counted.
func (s *Summary) CountedPixels() int64 {
	n := s.NoDataPixels
	for _, cs := range s.Stats {
		n += cs.Pixels
	}
	if s.Unknown != nil {
		n += s.Unknown.Pixels
	}
	return n
}

// Share returns the fraction of valid pixels held by stat, in [0,1].
func (s *Summary) Share(stat ClassStat) float64 {
	if s.ValidPixels == 0 {
		return 0
	}
	return float64(stat.Pixels) / float64(s.ValidPixels)
}

// TotalAreaM2 returns the combined area of all valid pixels.
func (s *Summary) TotalAreaM2() float64 {
	return float64(s.ValidPixels) * s.PixelAreaM2
}
