package pipeline

import (
	"github.com/Carmen-Shannon/strata-go/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// pipelineState is the implementation of the PipelineState interface.
type pipelineState struct {
	key  string
	desc StateDescription

	// renderPipeline is attached by the downstream backend once the state has
	// been realized on the GPU. Nil until then.
	renderPipeline *wgpu.RenderPipeline
}

// PipelineState defines the interface for a resolved, immutable pipeline
// state: the complete fixed-function configuration and shader pair for a draw
// call. Instances are created and deduplicated by the StateCache; two batches
// producing equal descriptions share the same PipelineState.
//
// GPU realization happens downstream: the command-emission stage produces a
// wgpu render pipeline from RenderPipelineDescriptor and attaches it with
// SetRenderPipeline.
type PipelineState interface {
	// Key retrieves the canonical cache key for this state.
	//
	// Returns:
	//   - string: the unique key for this pipeline state
	Key() string

	// Description retrieves the state description this pipeline state was
	// created from. The returned value is a copy; mutating it has no effect.
	//
	// Returns:
	//   - StateDescription: the originating description
	Description() StateDescription

	// Shader retrieves the resolved shader for the given stage, or nil.
	//
	// Parameters:
	//   - stage: the shader stage to retrieve
	//
	// Returns:
	//   - shader.Shader: the resolved shader variation, or nil
	Shader(stage shader.Stage) shader.Shader

	// RenderPipelineDescriptor produces the wgpu render pipeline descriptor
	// for this state. The caller supplies the GPU shader modules it created
	// from the shaders' module descriptors, plus the target formats, since
	// device ownership lives outside this core.
	//
	// Parameters:
	//   - vertexModule: the created vertex shader module
	//   - pixelModule: the created pixel shader module, or nil for depth-only states
	//   - colorFormat: the color target texture format
	//   - depthFormat: the depth/stencil texture format
	//
	// Returns:
	//   - *wgpu.RenderPipelineDescriptor: the descriptor ready for pipeline creation
	RenderPipelineDescriptor(vertexModule, pixelModule *wgpu.ShaderModule, colorFormat, depthFormat wgpu.TextureFormat) *wgpu.RenderPipelineDescriptor

	// RenderPipeline retrieves the attached GPU pipeline object, or nil if the
	// state has not been realized yet.
	//
	// Returns:
	//   - *wgpu.RenderPipeline: the attached pipeline, or nil
	RenderPipeline() *wgpu.RenderPipeline

	// SetRenderPipeline attaches the realized GPU pipeline object.
	//
	// Parameters:
	//   - p: the created render pipeline
	SetRenderPipeline(p *wgpu.RenderPipeline)
}

var _ PipelineState = &pipelineState{}

func (p *pipelineState) Key() string {
	return p.key
}

func (p *pipelineState) Description() StateDescription {
	return p.desc
}

func (p *pipelineState) Shader(stage shader.Stage) shader.Shader {
	switch stage {
	case shader.StageVertex:
		return p.desc.VertexShader
	case shader.StagePixel:
		return p.desc.PixelShader
	default:
		return nil
	}
}

func (p *pipelineState) RenderPipelineDescriptor(vertexModule, pixelModule *wgpu.ShaderModule, colorFormat, depthFormat wgpu.TextureFormat) *wgpu.RenderPipelineDescriptor {
	cullMode, frontFace := wgpuCulling(p.desc.CullMode)

	writeMask := wgpu.ColorWriteMaskNone
	if p.desc.ColorWriteEnabled {
		writeMask = wgpu.ColorWriteMaskAll
	}

	var fragment *wgpu.FragmentState
	if pixelModule != nil && p.desc.PixelShader != nil {
		fragment = &wgpu.FragmentState{
			Module:     pixelModule,
			EntryPoint: "main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    colorFormat,
					Blend:     blendStateFor(p.desc.BlendMode),
					WriteMask: writeMask,
				},
			},
		}
	}

	stencilFace := wgpu.StencilFaceState{
		Compare: wgpu.CompareFunctionAlways,
	}
	if p.desc.StencilTestEnabled {
		stencilFace = wgpu.StencilFaceState{
			Compare: p.desc.StencilCompareFunction,
			FailOp:  wgpu.StencilOperationKeep,
			PassOp:  p.desc.StencilOperationOnPassed,
		}
	}

	return &wgpu.RenderPipelineDescriptor{
		Label: p.key,
		Vertex: wgpu.VertexState{
			Module:     vertexModule,
			EntryPoint: "main",
			Buffers:    p.desc.VertexLayouts,
		},
		Fragment: fragment,
		Primitive: wgpu.PrimitiveState{
			Topology:  p.desc.Topology,
			FrontFace: frontFace,
			CullMode:  cullMode,
		},
		Multisample: wgpu.MultisampleState{
			Count:                  1,
			Mask:                   0xFFFFFFFF,
			AlphaToCoverageEnabled: p.desc.AlphaToCoverageEnabled,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:              depthFormat,
			DepthWriteEnabled:   p.desc.DepthWriteEnabled,
			DepthCompare:        p.desc.DepthCompareFunction,
			StencilFront:        stencilFace,
			StencilBack:         stencilFace,
			StencilReadMask:     p.desc.StencilCompareMask,
			StencilWriteMask:    p.desc.StencilWriteMask,
			DepthBias:           int32(p.desc.ConstantDepthBias),
			DepthBiasSlopeScale: p.desc.SlopeScaledDepthBias,
		},
	}
}

func (p *pipelineState) RenderPipeline() *wgpu.RenderPipeline {
	return p.renderPipeline
}

func (p *pipelineState) SetRenderPipeline(rp *wgpu.RenderPipeline) {
	p.renderPipeline = rp
}
