package light

// MaxShadowSplits is the maximum number of shadow map splits a single light
// can be assigned. Directional lights use up to this many cascades; point and
// spot lights use a single split.
const MaxShadowSplits = 4

// AllLightMask is the default light mask: the light affects every drawable.
const AllLightMask uint32 = 0xffffffff

// PortableLightMask is the portion of a light mask that survives the trip
// through the stencil buffer. Stencil reference values are 8 bits wide on
// every supported backend, so light-volume stenciling intersects masks with
// this constant.
const PortableLightMask uint32 = 0xff

// DefaultShadowBias is the constant depth bias applied to shadow comparisons
// to reduce shadow acne artifacts.
const DefaultShadowBias float32 = 0.001

// DefaultShadowFar is the default far distance of the shadowed depth range
// used when the scene Z range is undefined.
const DefaultShadowFar float32 = 200.0

// DefaultShadowSplitLambda is the blend factor between uniform and logarithmic
// cascade split placement. 0 is fully uniform, 1 fully logarithmic.
const DefaultShadowSplitLambda float32 = 0.5

// BiasParameters holds the depth bias values applied when rendering shadow
// casters for a light.
type BiasParameters struct {
	// ConstantBias is the fixed depth offset added to every shadow caster.
	ConstantBias float32
	// SlopeScaledBias scales the offset with the polygon's depth slope.
	SlopeScaledBias float32
}

// CookedParams holds per-light values computed once during light processing
// and reused by pipeline state assembly. They are cached across frames for
// lights whose revision did not change.
type CookedParams struct {
	// ShadowSplitCount is the number of shadow splits assigned to the light.
	// Zero when the light does not cast shadows.
	ShadowSplitCount int

	// SplitNear and SplitFar bound the depth range covered by each split.
	// Only the first ShadowSplitCount entries are meaningful.
	SplitNear [MaxShadowSplits]float32
	SplitFar  [MaxShadowSplits]float32

	// ShadowDepthBiasMultiplier scales the light's bias parameters per split.
	// Deeper splits cover more depth per texel and need a larger bias.
	ShadowDepthBiasMultiplier [MaxShadowSplits]float32

	// OverlapsCamera is true when the light volume contains the camera
	// position, which inverts culling and depth testing for the light volume
	// pass.
	OverlapsCamera bool
}
