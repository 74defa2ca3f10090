package pipeline

import (
	"github.com/Carmen-Shannon/strata-go/common"
	"github.com/Carmen-Shannon/strata-go/engine/camera"
	"github.com/Carmen-Shannon/strata-go/engine/light"
	"github.com/Carmen-Shannon/strata-go/engine/renderer/drawable"
	"github.com/Carmen-Shannon/strata-go/engine/renderer/material"
	"github.com/Carmen-Shannon/strata-go/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// Sentinel sub-pass indices for the internal shadow and light-volume passes.
// User passes use small indices (SubpassBase, SubpassLight, SubpassDeferred);
// classification compares against the sentinels, never against pass names.
const (
	// SubpassBase is the base sub-pass of a user pass.
	SubpassBase uint32 = 0
	// SubpassLight is the additional-light sub-pass of a user pass.
	SubpassLight uint32 = 1
	// SubpassDeferred is the deferred G-buffer sub-pass of a user pass.
	SubpassDeferred uint32 = 2
	// SubpassShadow marks a shadow-map rendering batch.
	SubpassShadow uint32 = 0xfffffffe
	// SubpassLitVolume marks a deferred light-volume batch.
	SubpassLitVolume uint32 = 0xffffffff
)

// PassFlags carries behavior toggles of a user pass.
type PassFlags uint32

const (
	// PassFlagDeferredLightMaskToStencil writes the drawable's light mask into
	// the stencil buffer during the deferred sub-pass so later light volumes
	// can be restricted to matching pixels.
	PassFlagDeferredLightMaskToStencil PassFlags = 1 << iota
)

// Has reports whether all bits of flag are set.
//
// Parameters:
//   - flag: the flag bits to test
//
// Returns:
//   - bool: true if every bit of flag is set
func (f PassFlags) Has(flag PassFlags) bool {
	return f&flag == flag
}

// UserPassInfo identifies a user (named) scene pass in a batch state context.
// A nil UserPassInfo in the context means the batch belongs to one of the
// internal sentinel sub-passes instead.
type UserPassInfo struct {
	// Index is the scene pass index the batch belongs to.
	Index uint32
	// Flags are the behavior toggles of the pass.
	Flags PassFlags
}

// BatchStateKey is the fully resolved identity of a batch requesting a
// pipeline state: the drawable, geometry, material and material pass, plus
// the owning light for lit batches.
type BatchStateKey struct {
	DrawableIndex    uint32
	SourceBatchIndex uint32
	Drawable         drawable.Drawable
	Geometry         drawable.Geometry
	Material         material.Material
	Pass             material.Pass

	// Light is the per-pixel light owning the batch, nil for unlit batches.
	Light light.Light
	// LightParams are the cooked parameters of Light, nil when Light is nil.
	LightParams *light.CookedParams
	// HasShadow is true when Light casts shadows this frame.
	HasShadow bool
}

// BatchStateContext identifies the target pass and sub-pass a batch is being
// built for.
type BatchStateContext struct {
	// UserPass describes the user pass, or nil for internal sentinel passes.
	UserPass *UserPassInfo
	// SubpassIndex is the sub-pass within the pass, or a sentinel value.
	SubpassIndex uint32
	// ShadowSplitIndex selects the shadow split for shadow batches.
	ShadowSplitIndex int
}

// StateBuilder defines the interface for deriving a complete pipeline state
// for a batch. The builder keeps a transient description pair that is cleared
// at the start of every derivation, so a builder instance must not be shared
// between goroutines; the batch collector owns one builder per worker slot.
type StateBuilder interface {
	// CreateBatchState classifies the batch by its context, assembles the
	// fixed-function state and shader program through the matching rule, and
	// resolves the result through the global pipeline state cache.
	//
	// Returns nil when a required shader variation does not resolve; the
	// batch is then skipped by the caller, never surfaced as an error.
	//
	// Parameters:
	//   - key: the fully resolved batch identity
	//   - ctx: the target pass and sub-pass
	//
	// Returns:
	//   - PipelineState: the cached pipeline state, or nil if unresolvable
	CreateBatchState(key BatchStateKey, ctx BatchStateContext) PipelineState
}

// stateBuilder is the implementation of the StateBuilder interface.
type stateBuilder struct {
	cam     camera.Camera
	shaders shader.Resolver
	cache   StateCache

	varianceShadowMaps bool
	instancingLayout   *wgpu.VertexBufferLayout

	stateDesc   StateDescription
	programDesc ProgramDescription
}

var _ StateBuilder = &stateBuilder{}

// NewStateBuilder creates a StateBuilder resolving shaders through the given
// resolver and pipeline states through the given cache. Panics if either is
// nil.
//
// Parameters:
//   - shaders: the shader variation resolver
//   - cache: the global pipeline state cache
//   - opts: variadic list of StateBuilderOption functions to configure the builder
//
// Returns:
//   - StateBuilder: a new StateBuilder instance
func NewStateBuilder(shaders shader.Resolver, cache StateCache, opts ...StateBuilderOption) StateBuilder {
	if shaders == nil {
		panic("pipeline: NewStateBuilder requires a non-nil shader resolver")
	}
	if cache == nil {
		panic("pipeline: NewStateBuilder requires a non-nil state cache")
	}
	b := &stateBuilder{
		shaders: shaders,
		cache:   cache,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// StateBuilderOption is a function that configures a StateBuilder during construction.
type StateBuilderOption func(*stateBuilder)

// WithCamera is an option builder that attaches the camera whose reversal
// flag drives cull-mode adjustment. Without a camera, no reversal is applied.
//
// Parameters:
//   - cam: the rendering camera
//
// Returns:
//   - StateBuilderOption: a function that applies the camera option to a stateBuilder
func WithCamera(cam camera.Camera) StateBuilderOption {
	return func(b *stateBuilder) {
		b.cam = cam
	}
}

// WithVarianceShadowMaps is an option builder that toggles variance shadow
// map mode. VSM shadow batches keep color writes enabled and use no depth
// bias.
//
// Parameters:
//   - enabled: true to enable variance shadow maps
//
// Returns:
//   - StateBuilderOption: a function that applies the VSM option to a stateBuilder
func WithVarianceShadowMaps(enabled bool) StateBuilderOption {
	return func(b *stateBuilder) {
		b.varianceShadowMaps = enabled
	}
}

// WithInstancingLayout is an option builder that sets the vertex layout of
// the instancing buffer, appended to the input layout of instanced batches.
//
// Parameters:
//   - layout: the instancing buffer's vertex layout
//
// Returns:
//   - StateBuilderOption: a function that applies the instancing option to a stateBuilder
func WithInstancingLayout(layout wgpu.VertexBufferLayout) StateBuilderOption {
	return func(b *stateBuilder) {
		b.instancingLayout = &layout
	}
}

func (b *stateBuilder) CreateBatchState(key BatchStateKey, ctx BatchStateContext) PipelineState {
	if key.Geometry == nil || key.Pass == nil {
		return nil
	}

	isShadowPass := ctx.UserPass == nil && ctx.SubpassIndex == SubpassShadow
	isLightVolumePass := ctx.UserPass == nil && ctx.SubpassIndex == SubpassLitVolume

	b.stateDesc.Clear()
	b.programDesc.Clear()
	b.programDesc.InstancingUsed = key.Geometry.Instanced() && b.instancingLayout != nil

	switch {
	case isShadowPass:
		b.composeShadowProgram(key)
		b.applyShadowPass(ctx.ShadowSplitIndex, key)
	case isLightVolumePass:
		if key.Light == nil {
			return nil
		}
		b.composeLightVolumeProgram(key)
		b.applyLightVolumePass(key)
	case ctx.UserPass != nil:
		b.composeUserProgram(key, ctx)
		b.applyUserPass(ctx, key)
	default:
		return nil
	}

	b.resolveInputLayout(key)
	return b.finalize()
}

// isCameraReversed reports the attached camera's reversal flag.
func (b *stateBuilder) isCameraReversed() bool {
	return b.cam != nil && b.cam.Reversed()
}

// composeShadowProgram fills the program description for a shadow batch.
// Shadow batches are depth-only unless variance shadow maps are active.
func (b *stateBuilder) composeShadowProgram(key BatchStateKey) {
	b.programDesc.VertexShaderName = key.Pass.VertexShaderName()
	b.programDesc.VertexShaderDefines = key.Pass.VertexShaderDefines()
	if b.varianceShadowMaps {
		b.programDesc.PixelShaderName = key.Pass.PixelShaderName()
		b.programDesc.PixelShaderDefines = key.Pass.PixelShaderDefines()
		b.programDesc.AddCommonDefine("VSM_SHADOW")
	}
	b.programDesc.AddCommonDefine("SHADOWCASTER")
	if b.programDesc.InstancingUsed {
		b.programDesc.AddCommonDefine("INSTANCED")
	}
}

// composeLightVolumeProgram fills the program description for a deferred
// light-volume batch.
func (b *stateBuilder) composeLightVolumeProgram(key BatchStateKey) {
	b.programDesc.VertexShaderName = key.Pass.VertexShaderName()
	b.programDesc.VertexShaderDefines = key.Pass.VertexShaderDefines()
	b.programDesc.PixelShaderName = key.Pass.PixelShaderName()
	b.programDesc.PixelShaderDefines = key.Pass.PixelShaderDefines()
	b.programDesc.AddCommonDefine(lightTypeDefine(key.Light.Type()))
	if key.HasShadow {
		b.programDesc.AddCommonDefine("SHADOW")
	}
}

// composeUserProgram fills the program description for a user pass batch.
func (b *stateBuilder) composeUserProgram(key BatchStateKey, ctx BatchStateContext) {
	b.programDesc.VertexShaderName = key.Pass.VertexShaderName()
	b.programDesc.VertexShaderDefines = key.Pass.VertexShaderDefines()
	b.programDesc.PixelShaderName = key.Pass.PixelShaderName()
	b.programDesc.PixelShaderDefines = key.Pass.PixelShaderDefines()

	if key.Light != nil {
		b.programDesc.AddCommonDefine("PERPIXEL")
		b.programDesc.AddCommonDefine(lightTypeDefine(key.Light.Type()))
		if key.HasShadow {
			b.programDesc.AddCommonDefine("SHADOW")
		}
	}
	if ctx.SubpassIndex == SubpassDeferred {
		b.programDesc.AddCommonDefine("DEFERRED")
	}
	if b.programDesc.InstancingUsed {
		b.programDesc.AddCommonDefine("INSTANCED")
	}
}

// applyShadowPass assembles fixed-function state for a shadow batch: color
// writes disabled with a true depth bias scaled by the split's cooked bias
// multiplier, or, in variance shadow map mode, color writes enabled with no
// bias. Shadow casters never get camera-reversal cull adjustment.
func (b *stateBuilder) applyShadowPass(splitIndex int, key BatchStateKey) {
	biasMultiplier := float32(1)
	if key.LightParams != nil && splitIndex >= 0 && splitIndex < light.MaxShadowSplits {
		biasMultiplier = key.LightParams.ShadowDepthBiasMultiplier[splitIndex]
	}
	var bias light.BiasParameters
	if key.Light != nil {
		bias = key.Light.ShadowBias()
	}

	if b.varianceShadowMaps {
		b.stateDesc.ColorWriteEnabled = true
		b.stateDesc.ConstantDepthBias = 0
		b.stateDesc.SlopeScaledDepthBias = 0
	} else {
		b.stateDesc.ColorWriteEnabled = false
		b.stateDesc.ConstantDepthBias = biasMultiplier * bias.ConstantBias
		b.stateDesc.SlopeScaledDepthBias = biasMultiplier * bias.SlopeScaledBias
	}

	b.stateDesc.DepthWriteEnabled = key.Pass.DepthWrite()
	b.stateDesc.DepthCompareFunction = key.Pass.DepthCompareFunction()

	b.stateDesc.FillMode = common.FillSolid
	b.stateDesc.CullMode = common.ResolveCullMode(
		key.Pass.CullMode(), key.Material.ShadowCullMode(), false)
}

// applyLightVolumePass assembles fixed-function state for a deferred light
// volume: additive or subtractive blending by light polarity, inverted
// culling and depth testing when the volume contains the camera, and a
// stencil test restricting the light to pixels whose mask intersects the
// light's.
func (b *stateBuilder) applyLightVolumePass(key BatchStateKey) {
	l := key.Light

	b.stateDesc.ColorWriteEnabled = true
	if l.Negative() {
		b.stateDesc.BlendMode = common.BlendSubtract
	} else {
		b.stateDesc.BlendMode = common.BlendAdd
	}

	if l.Type() != light.LightTypeDirectional {
		overlaps := key.LightParams != nil && key.LightParams.OverlapsCamera
		if overlaps {
			b.stateDesc.CullMode = common.EffectiveCullMode(common.CullCW, b.isCameraReversed())
			b.stateDesc.DepthCompareFunction = wgpu.CompareFunctionGreater
		} else {
			b.stateDesc.CullMode = common.EffectiveCullMode(common.CullCCW, b.isCameraReversed())
			b.stateDesc.DepthCompareFunction = wgpu.CompareFunctionLessEqual
		}
	} else {
		b.stateDesc.CullMode = common.CullNone
		b.stateDesc.DepthCompareFunction = wgpu.CompareFunctionAlways
	}

	b.stateDesc.StencilTestEnabled = true
	b.stateDesc.StencilCompareFunction = wgpu.CompareFunctionNotEqual
	b.stateDesc.StencilCompareMask = l.LightMask() & light.PortableLightMask
	b.stateDesc.StencilReferenceValue = 0
}

// applyUserPass assembles fixed-function state for a user pass batch from the
// material pass and material, with camera-reversal cull adjustment. The
// deferred sub-pass can additionally write the drawable's light mask to the
// stencil buffer.
func (b *stateBuilder) applyUserPass(ctx BatchStateContext, key BatchStateKey) {
	b.stateDesc.DepthWriteEnabled = key.Pass.DepthWrite()
	b.stateDesc.DepthCompareFunction = key.Pass.DepthCompareFunction()

	b.stateDesc.ColorWriteEnabled = true
	b.stateDesc.BlendMode = key.Pass.BlendMode()
	b.stateDesc.AlphaToCoverageEnabled = key.Material.AlphaToCoverage()
	b.stateDesc.ConstantDepthBias = key.Material.DepthBias().ConstantBias
	b.stateDesc.SlopeScaledDepthBias = key.Material.DepthBias().SlopeScaledBias

	b.stateDesc.FillMode = common.FillSolid
	b.stateDesc.CullMode = common.ResolveCullMode(
		key.Pass.CullMode(), key.Material.CullMode(), b.isCameraReversed())

	isDeferred := ctx.SubpassIndex == SubpassDeferred
	if isDeferred && ctx.UserPass.Flags.Has(PassFlagDeferredLightMaskToStencil) && key.Drawable != nil {
		b.stateDesc.StencilTestEnabled = true
		b.stateDesc.StencilCompareFunction = wgpu.CompareFunctionAlways
		b.stateDesc.StencilOperationOnPassed = wgpu.StencilOperationReplace
		b.stateDesc.StencilWriteMask = light.PortableLightMask
		b.stateDesc.StencilReferenceValue = key.Drawable.LightMask() & light.PortableLightMask
	}
}

// resolveInputLayout copies the geometry's vertex layouts and topology into
// the state description, appending the instancing buffer layout when the
// batch is instanced.
func (b *stateBuilder) resolveInputLayout(key BatchStateKey) {
	layouts := key.Geometry.VertexLayouts()
	if b.programDesc.InstancingUsed {
		combined := make([]wgpu.VertexBufferLayout, 0, len(layouts)+1)
		combined = append(combined, layouts...)
		combined = append(combined, *b.instancingLayout)
		layouts = combined
	}
	b.stateDesc.VertexLayouts = layouts
	b.stateDesc.Topology = key.Geometry.Topology()
}

// finalize concatenates the common defines onto both stages, resolves the
// shader pair and submits the description to the global cache. Returns nil
// when a named shader does not resolve.
func (b *stateBuilder) finalize() PipelineState {
	b.programDesc.AppendCommonDefines()

	if b.programDesc.VertexShaderName == "" {
		return nil
	}
	vs := b.shaders.Resolve(shader.StageVertex,
		b.programDesc.VertexShaderName, b.programDesc.VertexShaderDefines)
	if vs == nil {
		return nil
	}
	b.stateDesc.VertexShader = vs

	if b.programDesc.PixelShaderName != "" {
		ps := b.shaders.Resolve(shader.StagePixel,
			b.programDesc.PixelShaderName, b.programDesc.PixelShaderDefines)
		if ps == nil {
			return nil
		}
		b.stateDesc.PixelShader = ps
	}

	return b.cache.GetOrCreate(b.stateDesc)
}

// lightTypeDefine maps a light type to its shader define token.
func lightTypeDefine(t light.LightType) string {
	switch t {
	case light.LightTypeDirectional:
		return "DIRLIGHT"
	case light.LightTypePoint:
		return "POINTLIGHT"
	default:
		return "SPOTLIGHT"
	}
}
