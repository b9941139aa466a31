package ee

import (
	"strconv"

	"github.com/openhydro/watermap-cli/internal/domain"
)

// Expression is a serialised Earth Engine expression graph: a flat map of
// nodes keyed by reference, and the key of the node whose value is the
// result. The server evaluates the graph; the client only assembles it.
type Expression struct {
	Values map[string]Node `json:"values"`
	Result string          `json:"result"`
}

// Node is one graph node: either a constant or a function invocation.
type Node struct {
	ConstantValue           any                 `json:"constantValue,omitempty"`
	FunctionInvocationValue *FunctionInvocation `json:"functionInvocationValue,omitempty"`
}

// FunctionInvocation applies a named Earth Engine function to arguments.
type FunctionInvocation struct {
	FunctionName string              `json:"functionName"`
	Arguments    map[string]Argument `json:"arguments"`
}

// Argument is a function argument: a reference to another node, an
// inline constant, or an array of arguments.
type Argument struct {
	ValueReference string      `json:"valueReference,omitempty"`
	ConstantValue  any         `json:"constantValue,omitempty"`
	ArrayValue     *ArrayValue `json:"arrayValue,omitempty"`
}

// ArrayValue wraps an argument list.
type ArrayValue struct {
	Values []Argument `json:"values"`
}

// Ref is a key into the expression's value map.
type Ref string

// Const wraps a constant argument.
func Const(v any) Argument {
	return Argument{ConstantValue: v}
}

// FromRef wraps a node reference argument.
func FromRef(r Ref) Argument {
	return Argument{ValueReference: string(r)}
}

// List wraps arguments into an array argument.
func List(items ...Argument) Argument {
	return Argument{ArrayValue: &ArrayValue{Values: items}}
}

// Builder assembles an expression graph with sequential node keys.
type Builder struct {
	nodes map[string]Node
	next  int
}

// NewBuilder returns an empty expression builder.
func NewBuilder() *Builder {
	return &Builder{nodes: make(map[string]Node)}
}

func (b *Builder) add(n Node) Ref {
	key := strconv.Itoa(b.next)
	b.next++
	b.nodes[key] = n
	return Ref(key)
}

// Invoke adds a function invocation node and returns its reference.
func (b *Builder) Invoke(name string, args map[string]Argument) Ref {
	return b.add(Node{FunctionInvocationValue: &FunctionInvocation{
		FunctionName: name,
		Arguments:    args,
	}})
}

// Build finalises the graph with result as the root node.
func (b *Builder) Build(result Ref) *Expression {
	return &Expression{Values: b.nodes, Result: string(result)}
}

// The helpers below cover the handful of Earth Engine functions the
// extraction stage composes.

// FeatureCollection loads a table asset.
func (b *Builder) FeatureCollection(asset string) Ref {
	return b.Invoke("FeatureCollection.load", map[string]Argument{
		"id": Const(asset),
	})
}

// FilterEq builds a property equality filter.
func (b *Builder) FilterEq(field string, value any) Ref {
	return b.Invoke("Filter.eq", map[string]Argument{
		"leftField":  Const(field),
		"rightValue": Const(value),
	})
}

// Filter applies a filter to a collection.
func (b *Builder) Filter(collection, filter Ref) Ref {
	return b.Invoke("Collection.filter", map[string]Argument{
		"collection": FromRef(collection),
		"filter":     FromRef(filter),
	})
}

// Geometry returns the merged geometry of a collection.
func (b *Builder) Geometry(collection Ref) Ref {
	return b.Invoke("Collection.geometry", map[string]Argument{
		"collection": FromRef(collection),
	})
}

// BBox constructs a rectangle geometry from a geographic bounding box.
func (b *Builder) BBox(box domain.BoundingBox) Ref {
	return b.Invoke("GeometryConstructors.BBox", map[string]Argument{
		"west":  Const(box.West),
		"south": Const(box.South),
		"east":  Const(box.East),
		"north": Const(box.North),
	})
}

// Feature wraps a geometry into a feature with optional properties.
func (b *Builder) Feature(geometry Ref, properties map[string]any) Ref {
	args := map[string]Argument{
		"geometry": FromRef(geometry),
	}
	if len(properties) > 0 {
		args["metadata"] = Const(properties)
	}
	return b.Invoke("Feature", args)
}

// Collection builds a feature collection from individual features.
func (b *Builder) Collection(features ...Ref) Ref {
	items := make([]Argument, len(features))
	for i, f := range features {
		items[i] = FromRef(f)
	}
	return b.Invoke("Collection", map[string]Argument{
		"features": List(items...),
	})
}

// Image loads an image asset.
func (b *Builder) Image(asset string) Ref {
	return b.Invoke("Image.load", map[string]Argument{
		"id": Const(asset),
	})
}

// Select keeps only the named bands of an image.
func (b *Builder) Select(image Ref, bands ...string) Ref {
	return b.Invoke("Image.select", map[string]Argument{
		"input":         FromRef(image),
		"bandSelectors": Const(bands),
	})
}

// Clip cuts an image to a geometry.
func (b *Builder) Clip(image, geometry Ref) Ref {
	return b.Invoke("Image.clip", map[string]Argument{
		"input":    FromRef(image),
		"geometry": FromRef(geometry),
	})
}
