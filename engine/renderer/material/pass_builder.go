package material

import (
	"github.com/Carmen-Shannon/strata-go/common"
	"github.com/cogentcore/webgpu/wgpu"
)

// PassBuilderOption is a function that configures a Pass instance during construction.
type PassBuilderOption func(*pass)

// WithBlendMode is an option builder that sets how the pass combines with the
// framebuffer.
//
// Parameters:
//   - mode: the blend mode
//
// Returns:
//   - PassBuilderOption: a function that applies the blend mode option to a pass
func WithBlendMode(mode common.BlendMode) PassBuilderOption {
	return func(p *pass) {
		p.blendMode = mode
	}
}

// WithDepthWrite is an option builder that sets whether the pass writes depth.
//
// Parameters:
//   - enabled: true to enable depth writing
//
// Returns:
//   - PassBuilderOption: a function that applies the depth write option to a pass
func WithDepthWrite(enabled bool) PassBuilderOption {
	return func(p *pass) {
		p.depthWrite = enabled
	}
}

// WithDepthCompareFunction is an option builder that sets the depth test
// comparison for the pass.
//
// Parameters:
//   - fn: the depth comparison function
//
// Returns:
//   - PassBuilderOption: a function that applies the depth compare option to a pass
func WithDepthCompareFunction(fn wgpu.CompareFunction) PassBuilderOption {
	return func(p *pass) {
		p.depthCompareFunction = fn
	}
}

// WithPassCullMode is an option builder that sets the pass-level cull mode
// override. Leave unset (common.CullInherit) to use the material's cull mode.
//
// Parameters:
//   - mode: the pass cull mode
//
// Returns:
//   - PassBuilderOption: a function that applies the cull mode option to a pass
func WithPassCullMode(mode common.CullMode) PassBuilderOption {
	return func(p *pass) {
		p.cullMode = mode
	}
}

// WithShaders is an option builder that sets the vertex and pixel shader names
// for the pass.
//
// Parameters:
//   - vertexShaderName: the vertex shader name
//   - pixelShaderName: the pixel shader name
//
// Returns:
//   - PassBuilderOption: a function that applies the shader names option to a pass
func WithShaders(vertexShaderName, pixelShaderName string) PassBuilderOption {
	return func(p *pass) {
		p.vertexShaderName = vertexShaderName
		p.pixelShaderName = pixelShaderName
	}
}

// WithShaderDefines is an option builder that sets the per-stage define
// strings for the pass.
//
// Parameters:
//   - vertexDefines: space-separated vertex shader defines
//   - pixelDefines: space-separated pixel shader defines
//
// Returns:
//   - PassBuilderOption: a function that applies the defines option to a pass
func WithShaderDefines(vertexDefines, pixelDefines string) PassBuilderOption {
	return func(p *pass) {
		p.vertexShaderDefines = vertexDefines
		p.pixelShaderDefines = pixelDefines
	}
}
