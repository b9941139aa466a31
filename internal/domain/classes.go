package domain

import (
	"fmt"
	"math"
)

// WaterClass is a pixel code from the JRC Global Surface Water yearly
// history classification.
type WaterClass int

// Water classes of the JRC yearly history `waterClass` band.
const (
	// ClassNoWater marks land pixels with no observed surface water.
	ClassNoWater WaterClass = 0

	// ClassOccasionalWater marks pixels with occasional water detections.
	ClassOccasionalWater WaterClass = 1

	// ClassSeasonalWater marks pixels under water for part of the year.
	ClassSeasonalWater WaterClass = 2

	// ClassPermanentWater marks pixels under water all year.
	ClassPermanentWater WaterClass = 3

	// ClassUnknown collects pixel codes outside the published legend.
	// Such codes are counted and reported rather than silently dropped.
	ClassUnknown WaterClass = -1
)

// Legend returns the fixed class legend in display order. Every class in
// the legend appears in a Summary even when its pixel count is zero.
func Legend() []WaterClass {
	return []WaterClass{
		ClassNoWater,
		ClassOccasionalWater,
		ClassSeasonalWater,
		ClassPermanentWater,
	}
}

// InLegend reports whether code is part of the published legend.
func InLegend(code int) bool {
	return code >= int(ClassNoWater) && code <= int(ClassPermanentWater)
}

// LegendClass maps a raw pixel value onto its legend class. Only
// integral values inside the legend range qualify; the range check runs
// on the float64 so values far outside int range never hit a float-to-int
// conversion.
func LegendClass(v float64) (WaterClass, bool) {
	if v != math.Trunc(v) ||
		v < float64(ClassNoWater) || v > float64(ClassPermanentWater) {
		return ClassUnknown, false
	}
	return WaterClass(int(v)), true
}

// String returns the human-readable class label.
func (c WaterClass) String() string {
	switch c {
	case ClassNoWater:
		return "No water"
	case ClassOccasionalWater:
		return "Occasional water"
	case ClassSeasonalWater:
		return "Seasonal water"
	case ClassPermanentWater:
		return "Permanent water"
	case ClassUnknown:
		return "Unclassified"
	default:
		return fmt.Sprintf("Class %d", int(c))
	}
}
