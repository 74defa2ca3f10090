package drawable

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// geometry is the implementation of the Geometry interface.
type geometry struct {
	name          string
	vertexLayouts []wgpu.VertexBufferLayout
	topology      wgpu.PrimitiveTopology
	instanced     bool
}

// Geometry defines the interface for a drawable's renderable geometry: the
// vertex input layouts and primitive topology needed to derive a pipeline
// state, plus whether the geometry supports hardware instancing.
//
// GPU buffer ownership lives outside this core; Geometry only describes the
// input assembly configuration.
type Geometry interface {
	// Name retrieves the geometry identifier, used in pipeline state keys.
	//
	// Returns:
	//   - string: the geometry name
	Name() string

	// VertexLayouts retrieves the vertex buffer layouts for this geometry.
	//
	// Returns:
	//   - []wgpu.VertexBufferLayout: the vertex input layouts
	VertexLayouts() []wgpu.VertexBufferLayout

	// Topology retrieves the primitive topology for this geometry.
	//
	// Returns:
	//   - wgpu.PrimitiveTopology: the primitive topology
	Topology() wgpu.PrimitiveTopology

	// Instanced retrieves whether this geometry supports hardware instancing.
	// Instanced geometries get the instancing buffer's vertex layout appended
	// during input layout resolution.
	//
	// Returns:
	//   - bool: true if the geometry supports instancing
	Instanced() bool
}

var _ Geometry = &geometry{}

// NewGeometry creates a new Geometry with the given name and options applied.
// Defaults to a triangle list with no vertex layouts and no instancing.
//
// Parameters:
//   - name: the geometry identifier
//   - opts: variadic list of GeometryBuilderOption functions to configure the geometry
//
// Returns:
//   - Geometry: a new Geometry instance
func NewGeometry(name string, opts ...GeometryBuilderOption) Geometry {
	g := &geometry{
		name:     name,
		topology: wgpu.PrimitiveTopologyTriangleList,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *geometry) Name() string {
	return g.name
}

func (g *geometry) VertexLayouts() []wgpu.VertexBufferLayout {
	return g.vertexLayouts
}

func (g *geometry) Topology() wgpu.PrimitiveTopology {
	return g.topology
}

func (g *geometry) Instanced() bool {
	return g.instanced
}

// GeometryBuilderOption is a function that configures a Geometry instance during construction.
type GeometryBuilderOption func(*geometry)

// WithVertexLayouts is an option builder that sets the vertex buffer layouts.
//
// Parameters:
//   - layouts: the vertex input layouts
//
// Returns:
//   - GeometryBuilderOption: a function that applies the layouts option to a geometry
func WithVertexLayouts(layouts ...wgpu.VertexBufferLayout) GeometryBuilderOption {
	return func(g *geometry) {
		g.vertexLayouts = layouts
	}
}

// WithTopology is an option builder that sets the primitive topology.
//
// Parameters:
//   - topology: the primitive topology
//
// Returns:
//   - GeometryBuilderOption: a function that applies the topology option to a geometry
func WithTopology(topology wgpu.PrimitiveTopology) GeometryBuilderOption {
	return func(g *geometry) {
		g.topology = topology
	}
}

// WithInstancing is an option builder that marks the geometry as supporting
// hardware instancing.
//
// Parameters:
//   - instanced: true if the geometry supports instancing
//
// Returns:
//   - GeometryBuilderOption: a function that applies the instancing option to a geometry
func WithInstancing(instanced bool) GeometryBuilderOption {
	return func(g *geometry) {
		g.instanced = instanced
	}
}
