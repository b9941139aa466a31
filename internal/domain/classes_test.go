package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLegendIsFixed(t *testing.T) {
	legend := Legend()

	assert.Equal(t, []WaterClass{
		ClassNoWater,
		ClassOccasionalWater,
		ClassSeasonalWater,
		ClassPermanentWater,
	}, legend)
}

func TestInLegend(t *testing.T) {
	tests := []struct {
		name string
		code int
		want bool
	}{
		{"no water", 0, true},
		{"permanent water", 3, true},
		{"above legend", 4, false},
		{"negative", -1, false},
		{"far out of range", 255, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InLegend(tt.code))
		})
	}
}

func TestLegendClass(t *testing.T) {
	tests := []struct {
		name string
		v    float64
		want WaterClass
		ok   bool
	}{
		{"no water", 0, ClassNoWater, true},
		{"permanent water", 3, ClassPermanentWater, true},
		{"above legend", 4, ClassUnknown, false},
		{"negative", -1, ClassUnknown, false},
		{"non-integral", 1.5, ClassUnknown, false},
		{"nan", math.NaN(), ClassUnknown, false},
		{"beyond int range", 1e300, ClassUnknown, false},
		{"beyond negative int range", -1e300, ClassUnknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			class, ok := LegendClass(tt.v)
			assert.Equal(t, tt.want, class)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestWaterClassString(t *testing.T) {
	assert.Equal(t, "No water", ClassNoWater.String())
	assert.Equal(t, "Permanent water", ClassPermanentWater.String())
	assert.Equal(t, "Unclassified", ClassUnknown.String())
	assert.Equal(t, "Class 7", WaterClass(7).String())
}

func TestParseJobState(t *testing.T) {
	assert.Equal(t, JobStateSucceeded, ParseJobState("SUCCEEDED"))
	assert.Equal(t, JobStateRunning, ParseJobState("RUNNING"))
	// Unknown states settle on a later poll.
	assert.Equal(t, JobStatePending, ParseJobState("SOMETHING_NEW"))
}

func TestJobStateTerminal(t *testing.T) {
	assert.False(t, JobStatePending.Terminal())
	assert.False(t, JobStateRunning.Terminal())
	assert.True(t, JobStateSucceeded.Terminal())
	assert.True(t, JobStateFailed.Terminal())
	assert.True(t, JobStateCancelled.Terminal())
}

func TestBoundingBoxValid(t *testing.T) {
	denver := BoundingBox{West: -105.5, South: 39.5, East: -104.5, North: 40.5}
	assert.True(t, denver.Valid())

	assert.False(t, BoundingBox{West: 1, South: 0, East: -1, North: 1}.Valid())
	assert.False(t, BoundingBox{West: -200, South: 0, East: 0, North: 1}.Valid())
	assert.False(t, BoundingBox{}.Valid())
}
