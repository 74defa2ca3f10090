package pipeline

import (
	"strconv"
	"strings"

	"github.com/Carmen-Shannon/strata-go/common"
	"github.com/Carmen-Shannon/strata-go/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// StateDescription is the complete fixed-function GPU state plus resolved
// shader pair needed to issue a draw call. Two descriptions producing the same
// Key() are interchangeable and resolve to the same cached PipelineState.
type StateDescription struct {
	// Output merger.
	ColorWriteEnabled      bool
	BlendMode              common.BlendMode
	AlphaToCoverageEnabled bool

	// Rasterizer.
	FillMode             common.FillMode
	CullMode             common.CullMode
	ConstantDepthBias    float32
	SlopeScaledDepthBias float32

	// Depth/stencil.
	DepthWriteEnabled        bool
	DepthCompareFunction     wgpu.CompareFunction
	StencilTestEnabled       bool
	StencilCompareFunction   wgpu.CompareFunction
	StencilOperationOnPassed wgpu.StencilOperation
	StencilCompareMask       uint32
	StencilWriteMask         uint32
	StencilReferenceValue    uint32

	// Input assembly.
	Topology      wgpu.PrimitiveTopology
	VertexLayouts []wgpu.VertexBufferLayout

	// Resolved shader pair.
	VertexShader shader.Shader
	PixelShader  shader.Shader
}

// ProgramDescription accumulates the shader program configuration for a batch
// while state-assembly rules run: shader names and the three define strings.
// FinalizeInto concatenates the common defines onto both stages and resolves
// the shader pair.
type ProgramDescription struct {
	VertexShaderName    string
	PixelShaderName     string
	VertexShaderDefines string
	PixelShaderDefines  string
	CommonShaderDefines string
	InstancingUsed      bool
}

// Clear resets the description to its zero state for the next batch.
func (d *StateDescription) Clear() {
	*d = StateDescription{}
}

// Clear resets the description to its zero state for the next batch.
func (d *ProgramDescription) Clear() {
	*d = ProgramDescription{}
}

// AppendCommonDefines concatenates the common define string onto both the
// vertex and pixel define strings.
func (d *ProgramDescription) AppendCommonDefines() {
	if d.CommonShaderDefines == "" {
		return
	}
	d.VertexShaderDefines = joinDefines(d.VertexShaderDefines, d.CommonShaderDefines)
	d.PixelShaderDefines = joinDefines(d.PixelShaderDefines, d.CommonShaderDefines)
}

// AddCommonDefine appends one define to the common define string.
//
// Parameters:
//   - define: the define token to append
func (d *ProgramDescription) AddCommonDefine(define string) {
	d.CommonShaderDefines = joinDefines(d.CommonShaderDefines, define)
}

// Key builds the canonical cache key for the description: full structural
// equality of the fixed-function state, the input layouts and the resolved
// shader variation keys.
//
// Returns:
//   - string: the canonical pipeline state key
func (d *StateDescription) Key() string {
	var sb strings.Builder
	sb.Grow(128)

	writeBool := func(v bool) {
		if v {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
		sb.WriteByte('|')
	}
	writeUint := func(v uint64) {
		sb.WriteString(strconv.FormatUint(v, 16))
		sb.WriteByte('|')
	}
	writeFloat := func(v float32) {
		sb.WriteString(strconv.FormatFloat(float64(v), 'g', -1, 32))
		sb.WriteByte('|')
	}

	writeBool(d.ColorWriteEnabled)
	writeUint(uint64(d.BlendMode))
	writeBool(d.AlphaToCoverageEnabled)
	writeUint(uint64(d.FillMode))
	writeUint(uint64(d.CullMode))
	writeFloat(d.ConstantDepthBias)
	writeFloat(d.SlopeScaledDepthBias)
	writeBool(d.DepthWriteEnabled)
	writeUint(uint64(d.DepthCompareFunction))
	writeBool(d.StencilTestEnabled)
	writeUint(uint64(d.StencilCompareFunction))
	writeUint(uint64(d.StencilOperationOnPassed))
	writeUint(uint64(d.StencilCompareMask))
	writeUint(uint64(d.StencilWriteMask))
	writeUint(uint64(d.StencilReferenceValue))
	writeUint(uint64(d.Topology))

	for _, layout := range d.VertexLayouts {
		writeUint(layout.ArrayStride)
		writeUint(uint64(layout.StepMode))
		for _, attr := range layout.Attributes {
			writeUint(uint64(attr.Format))
			writeUint(attr.Offset)
			writeUint(uint64(attr.ShaderLocation))
		}
		sb.WriteByte(';')
	}

	if d.VertexShader != nil {
		sb.WriteString(d.VertexShader.Key())
	}
	sb.WriteByte('|')
	if d.PixelShader != nil {
		sb.WriteString(d.PixelShader.Key())
	}
	return sb.String()
}

// blendStateFor maps a domain blend mode to the wgpu blend state used when the
// pipeline state is realized. BlendReplace maps to nil (blending disabled).
func blendStateFor(mode common.BlendMode) *wgpu.BlendState {
	switch mode {
	case common.BlendAlpha:
		return &wgpu.BlendState{
			Color: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorSrcAlpha,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
			Alpha: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorOne,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
		}
	case common.BlendAdd:
		return &wgpu.BlendState{
			Color: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorOne,
				DstFactor: wgpu.BlendFactorOne,
				Operation: wgpu.BlendOperationAdd,
			},
			Alpha: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorOne,
				DstFactor: wgpu.BlendFactorOne,
				Operation: wgpu.BlendOperationAdd,
			},
		}
	case common.BlendSubtract:
		return &wgpu.BlendState{
			Color: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorOne,
				DstFactor: wgpu.BlendFactorOne,
				Operation: wgpu.BlendOperationReverseSubtract,
			},
			Alpha: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorOne,
				DstFactor: wgpu.BlendFactorOne,
				Operation: wgpu.BlendOperationReverseSubtract,
			},
		}
	default:
		return nil
	}
}

// wgpuCulling maps a domain cull mode to the wgpu cull mode and front face
// pair. Winding-relative culling keeps the front face fixed at CCW, so CW
// faces are back faces.
func wgpuCulling(mode common.CullMode) (wgpu.CullMode, wgpu.FrontFace) {
	switch mode {
	case common.CullCW:
		return wgpu.CullModeBack, wgpu.FrontFaceCCW
	case common.CullCCW:
		return wgpu.CullModeFront, wgpu.FrontFaceCCW
	default:
		return wgpu.CullModeNone, wgpu.FrontFaceCCW
	}
}

// joinDefines concatenates two define strings with a single separating space.
func joinDefines(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + " " + b
	}
}
