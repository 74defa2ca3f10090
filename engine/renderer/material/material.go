package material

import (
	"github.com/Carmen-Shannon/strata-go/common"
)

// material is the implementation of the Material interface.
type material struct {
	name           string
	baseColor      [4]float32
	cullMode       common.CullMode
	shadowCullMode common.CullMode
	depthBias      DepthBias
	alphaToCover   bool
	techniques     []Technique
}

// DepthBias holds the fixed-function depth bias a material applies in user
// passes, used to resolve z-fighting between coplanar surfaces (decals).
type DepthBias struct {
	// ConstantBias is the fixed depth offset.
	ConstantBias float32
	// SlopeScaledBias scales the offset with the polygon's depth slope.
	SlopeScaledBias float32
}

// Material defines the interface for a render material, encapsulating surface
// properties, fixed-function state preferences and the techniques available
// for rendering it at different quality tiers.
//
// Surface and state properties are set at load time and are read-only through
// this interface. Technique resolution is a pure function of the material and
// the requested quality tier.
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// BaseColor retrieves the albedo/diffuse RGBA color of the material.
	//
	// Returns:
	//   - [4]float32: the base color as RGBA values
	BaseColor() [4]float32

	// CullMode retrieves the cull mode applied when a pass does not override it.
	//
	// Returns:
	//   - common.CullMode: the material-level cull mode
	CullMode() common.CullMode

	// ShadowCullMode retrieves the cull mode used when this material is
	// rendered as a shadow caster.
	//
	// Returns:
	//   - common.CullMode: the shadow-pass cull mode
	ShadowCullMode() common.CullMode

	// DepthBias retrieves the fixed-function depth bias applied in user passes.
	//
	// Returns:
	//   - DepthBias: the constant and slope-scaled bias values
	DepthBias() DepthBias

	// AlphaToCoverage retrieves whether alpha-to-coverage is enabled for this
	// material's user passes.
	//
	// Returns:
	//   - bool: true if alpha-to-coverage is enabled
	AlphaToCoverage() bool

	// Techniques retrieves the techniques available for this material, in the
	// order they were registered.
	//
	// Returns:
	//   - []Technique: the registered techniques
	Techniques() []Technique

	// TechniqueForQuality resolves the best technique not exceeding the
	// requested quality tier. When no technique fits the tier, the lowest
	// quality technique is returned as a transparent fallback. Pure function,
	// no side effects.
	//
	// Parameters:
	//   - quality: the current material quality tier
	//
	// Returns:
	//   - Technique: the resolved technique, or nil if the material has none
	TechniqueForQuality(quality int) Technique
}

var _ Material = &material{}

// NewMaterial creates a new Material instance configured with the provided options.
//
// Parameters:
//   - options: variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - Material: a new Material instance
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := &material{
		baseColor:      [4]float32{1, 1, 1, 1},
		cullMode:       common.CullCCW,
		shadowCullMode: common.CullCCW,
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *material) Name() string {
	return m.name
}

func (m *material) BaseColor() [4]float32 {
	return m.baseColor
}

func (m *material) CullMode() common.CullMode {
	return m.cullMode
}

func (m *material) ShadowCullMode() common.CullMode {
	return m.shadowCullMode
}

func (m *material) DepthBias() DepthBias {
	return m.depthBias
}

func (m *material) AlphaToCoverage() bool {
	return m.alphaToCover
}

func (m *material) Techniques() []Technique {
	return m.techniques
}

func (m *material) TechniqueForQuality(quality int) Technique {
	var best Technique
	var lowest Technique
	for _, t := range m.techniques {
		if lowest == nil || t.Quality() < lowest.Quality() {
			lowest = t
		}
		if t.Quality() > quality {
			continue
		}
		if best == nil || t.Quality() > best.Quality() {
			best = t
		}
	}
	if best == nil {
		return lowest
	}
	return best
}
