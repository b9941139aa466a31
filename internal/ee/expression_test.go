package ee

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openhydro/watermap-cli/internal/domain"
)

func TestBuilderAssignsSequentialKeys(t *testing.T) {
	b := NewBuilder()
	img := b.Image("JRC/GSW1_4/YearlyHistory/2020")
	sel := b.Select(img, "waterClass")
	expr := b.Build(sel)

	assert.Equal(t, "1", expr.Result)
	require.Len(t, expr.Values, 2)

	load := expr.Values["0"].FunctionInvocationValue
	require.NotNil(t, load)
	assert.Equal(t, "Image.load", load.FunctionName)
	assert.Equal(t, "JRC/GSW1_4/YearlyHistory/2020", load.Arguments["id"].ConstantValue)

	sl := expr.Values["1"].FunctionInvocationValue
	require.NotNil(t, sl)
	assert.Equal(t, "Image.select", sl.FunctionName)
	assert.Equal(t, "0", sl.Arguments["input"].ValueReference)
}

func TestClippedWaterImageGraph(t *testing.T) {
	b := NewBuilder()
	fc := b.FeatureCollection("USGS/WBD/2017/HUC10")
	filtered := b.Filter(fc, b.FilterEq("huc10", "1019000101"))
	geom := b.Geometry(filtered)
	img := b.Select(b.Image("JRC/GSW1_4/YearlyHistory/2020"), "waterClass")
	expr := b.Build(b.Clip(img, geom))

	// Every reference in the graph must resolve to a node.
	for key, node := range expr.Values {
		if node.FunctionInvocationValue == nil {
			continue
		}
		for name, arg := range node.FunctionInvocationValue.Arguments {
			if arg.ValueReference != "" {
				_, ok := expr.Values[arg.ValueReference]
				assert.True(t, ok, "node %s argument %s dangles", key, name)
			}
		}
	}
	_, ok := expr.Values[expr.Result]
	assert.True(t, ok)
}

func TestFallbackCollectionGraph(t *testing.T) {
	box := domain.BoundingBox{West: -105.5, South: 39.5, East: -104.5, North: 40.5}

	b := NewBuilder()
	geom := b.BBox(box)
	feat := b.Feature(geom, map[string]any{"name": "fallback_region"})
	expr := b.Build(b.Collection(feat))

	root := expr.Values[expr.Result].FunctionInvocationValue
	require.NotNil(t, root)
	assert.Equal(t, "Collection", root.FunctionName)
	require.NotNil(t, root.Arguments["features"].ArrayValue)
	assert.Len(t, root.Arguments["features"].ArrayValue.Values, 1)

	bbox := expr.Values["0"].FunctionInvocationValue
	require.NotNil(t, bbox)
	assert.Equal(t, "GeometryConstructors.BBox", bbox.FunctionName)
	assert.Equal(t, -105.5, bbox.Arguments["west"].ConstantValue)
}

func TestExpressionJSONShape(t *testing.T) {
	b := NewBuilder()
	expr := b.Build(b.Image("A/B"))

	data, err := json.Marshal(expr)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "values")
	assert.Equal(t, "0", decoded["result"])

	// Constants must not leak empty reference fields.
	assert.NotContains(t, string(data), `"valueReference":""`)
}
