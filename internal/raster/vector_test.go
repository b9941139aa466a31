package raster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRingsPolygon(t *testing.T) {
	data := []byte(`{
		"type": "Polygon",
		"coordinates": [
			[[-105.5, 39.5], [-104.5, 39.5], [-104.5, 40.5], [-105.5, 40.5], [-105.5, 39.5]],
			[[-105.1, 39.9], [-105.0, 39.9], [-105.0, 40.0], [-105.1, 39.9]]
		]
	}`)

	rings, err := parseRings(data)
	require.NoError(t, err)

	// Only the outer ring survives; the hole is dropped.
	require.Len(t, rings, 1)
	require.Len(t, rings[0], 5)
	assert.Equal(t, Point{X: -105.5, Y: 39.5}, rings[0][0])
	assert.Equal(t, rings[0][0], rings[0][4])
}

func TestParseRingsMultiPolygon(t *testing.T) {
	data := []byte(`{
		"type": "MultiPolygon",
		"coordinates": [
			[[[0, 0], [1, 0], [1, 1], [0, 0]]],
			[[[5, 5], [6, 5], [6, 6], [5, 5]]]
		]
	}`)

	rings, err := parseRings(data)
	require.NoError(t, err)

	require.Len(t, rings, 2)
	assert.Equal(t, Point{X: 5, Y: 5}, rings[1][0])
}

func TestParseRingsUnsupportedType(t *testing.T) {
	rings, err := parseRings([]byte(`{"type": "Point", "coordinates": [1, 2]}`))
	require.NoError(t, err)
	assert.Empty(t, rings)
}

func TestParseRingsMalformed(t *testing.T) {
	_, err := parseRings([]byte(`{"type": "Polygon", "coordinates": "oops"}`))
	assert.Error(t, err)
}
