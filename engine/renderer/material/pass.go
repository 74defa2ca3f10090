package material

import (
	"github.com/Carmen-Shannon/strata-go/common"
	"github.com/cogentcore/webgpu/wgpu"
)

// pass is the implementation of the Pass interface.
type pass struct {
	name                 string
	blendMode            common.BlendMode
	depthWrite           bool
	depthCompareFunction wgpu.CompareFunction
	cullMode             common.CullMode
	vertexShaderName     string
	pixelShaderName      string
	vertexShaderDefines  string
	pixelShaderDefines   string
}

// Pass defines the interface for a single material pass: the shader pair and
// fixed-function state preferences used when the material is rendered in a
// named scene pass (e.g. "base", "light", "shadow").
//
// Passes are immutable after construction. A pass's cull mode defaults to
// common.CullInherit, meaning the material-level cull mode applies.
type Pass interface {
	// Name retrieves the pass identifier matched against scene pass
	// descriptions (base / first-light / additional-light names).
	//
	// Returns:
	//   - string: the pass name
	Name() string

	// BlendMode retrieves how this pass combines with the framebuffer.
	//
	// Returns:
	//   - common.BlendMode: the blend mode
	BlendMode() common.BlendMode

	// DepthWrite retrieves whether this pass writes depth.
	//
	// Returns:
	//   - bool: true if depth writing is enabled
	DepthWrite() bool

	// DepthCompareFunction retrieves the depth test comparison for this pass.
	//
	// Returns:
	//   - wgpu.CompareFunction: the depth comparison function
	DepthCompareFunction() wgpu.CompareFunction

	// CullMode retrieves the pass-level cull mode override, or
	// common.CullInherit when the material cull mode applies.
	//
	// Returns:
	//   - common.CullMode: the pass cull mode
	CullMode() common.CullMode

	// VertexShaderName retrieves the name of the vertex shader for this pass.
	//
	// Returns:
	//   - string: the vertex shader name
	VertexShaderName() string

	// PixelShaderName retrieves the name of the pixel shader for this pass.
	//
	// Returns:
	//   - string: the pixel shader name
	PixelShaderName() string

	// VertexShaderDefines retrieves the vertex-stage define string for this pass.
	//
	// Returns:
	//   - string: space-separated vertex shader defines
	VertexShaderDefines() string

	// PixelShaderDefines retrieves the pixel-stage define string for this pass.
	//
	// Returns:
	//   - string: space-separated pixel shader defines
	PixelShaderDefines() string
}

var _ Pass = &pass{}

// NewPass creates a new material Pass with the given name and options applied.
// Defaults: replace blending, depth write enabled, less-equal depth test,
// inherited cull mode.
//
// Parameters:
//   - name: the pass identifier
//   - opts: variadic list of PassBuilderOption functions to configure the pass
//
// Returns:
//   - Pass: a new Pass instance
func NewPass(name string, opts ...PassBuilderOption) Pass {
	p := &pass{
		name:                 name,
		blendMode:            common.BlendReplace,
		depthWrite:           true,
		depthCompareFunction: wgpu.CompareFunctionLessEqual,
		cullMode:             common.CullInherit,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *pass) Name() string {
	return p.name
}

func (p *pass) BlendMode() common.BlendMode {
	return p.blendMode
}

func (p *pass) DepthWrite() bool {
	return p.depthWrite
}

func (p *pass) DepthCompareFunction() wgpu.CompareFunction {
	return p.depthCompareFunction
}

func (p *pass) CullMode() common.CullMode {
	return p.cullMode
}

func (p *pass) VertexShaderName() string {
	return p.vertexShaderName
}

func (p *pass) PixelShaderName() string {
	return p.pixelShaderName
}

func (p *pass) VertexShaderDefines() string {
	return p.vertexShaderDefines
}

func (p *pass) PixelShaderDefines() string {
	return p.pixelShaderDefines
}
