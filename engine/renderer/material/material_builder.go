package material

import (
	"github.com/Carmen-Shannon/strata-go/common"
)

// MaterialBuilderOption is a function that configures a Material instance during construction.
type MaterialBuilderOption func(*material)

// WithName is an option builder that sets the material identifier.
//
// Parameters:
//   - name: the material name
//
// Returns:
//   - MaterialBuilderOption: a function that applies the name option to a material
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.name = name
	}
}

// WithBaseColor is an option builder that sets the albedo/diffuse RGBA color.
//
// Parameters:
//   - r, g, b, a: the base color components
//
// Returns:
//   - MaterialBuilderOption: a function that applies the base color option to a material
func WithBaseColor(r, g, b, a float32) MaterialBuilderOption {
	return func(m *material) {
		m.baseColor = [4]float32{r, g, b, a}
	}
}

// WithCullMode is an option builder that sets the material-level cull mode
// applied when a pass does not override it.
//
// Parameters:
//   - mode: the cull mode
//
// Returns:
//   - MaterialBuilderOption: a function that applies the cull mode option to a material
func WithCullMode(mode common.CullMode) MaterialBuilderOption {
	return func(m *material) {
		m.cullMode = mode
	}
}

// WithShadowCullMode is an option builder that sets the cull mode used when
// the material is rendered as a shadow caster.
//
// Parameters:
//   - mode: the shadow-pass cull mode
//
// Returns:
//   - MaterialBuilderOption: a function that applies the shadow cull mode option to a material
func WithShadowCullMode(mode common.CullMode) MaterialBuilderOption {
	return func(m *material) {
		m.shadowCullMode = mode
	}
}

// WithDepthBias is an option builder that sets the fixed-function depth bias
// applied in user passes.
//
// Parameters:
//   - constantBias: the fixed depth offset
//   - slopeScaledBias: the slope-scaled depth offset
//
// Returns:
//   - MaterialBuilderOption: a function that applies the depth bias option to a material
func WithDepthBias(constantBias, slopeScaledBias float32) MaterialBuilderOption {
	return func(m *material) {
		m.depthBias = DepthBias{
			ConstantBias:    constantBias,
			SlopeScaledBias: slopeScaledBias,
		}
	}
}

// WithAlphaToCoverage is an option builder that enables alpha-to-coverage for
// the material's user passes.
//
// Parameters:
//   - enabled: true to enable alpha-to-coverage
//
// Returns:
//   - MaterialBuilderOption: a function that applies the alpha-to-coverage option to a material
func WithAlphaToCoverage(enabled bool) MaterialBuilderOption {
	return func(m *material) {
		m.alphaToCover = enabled
	}
}

// WithTechniques is an option builder that registers the techniques available
// for this material.
//
// Parameters:
//   - techniques: the techniques to register, in order
//
// Returns:
//   - MaterialBuilderOption: a function that applies the techniques option to a material
func WithTechniques(techniques ...Technique) MaterialBuilderOption {
	return func(m *material) {
		m.techniques = techniques
	}
}
