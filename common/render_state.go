package common

// BlendMode identifies how a pass combines its output with the framebuffer.
type BlendMode int

const (
	// BlendReplace overwrites the framebuffer contents with the pass output.
	BlendReplace BlendMode = iota

	// BlendAlpha performs classic src-alpha / one-minus-src-alpha blending.
	BlendAlpha

	// BlendAdd adds the pass output to the framebuffer, used by additive
	// light passes and positive light volumes.
	BlendAdd

	// BlendSubtract subtracts the pass output from the framebuffer, used by
	// negative light volumes.
	BlendSubtract
)

// CullMode identifies which triangle winding is culled during rasterization.
// The CW/CCW split (rather than front/back) keeps camera-reversal handling
// expressible as a pure winding swap.
type CullMode int

const (
	// CullNone disables face culling.
	CullNone CullMode = iota

	// CullCW culls clockwise-wound faces.
	CullCW

	// CullCCW culls counter-clockwise-wound faces.
	CullCCW

	// CullInherit is a pass-level sentinel meaning "use the material's cull
	// mode". It must be resolved via ResolveCullMode before reaching a
	// pipeline state description.
	CullInherit
)

// FillMode identifies the polygon rasterization mode.
type FillMode int

const (
	// FillSolid rasterizes filled polygons.
	FillSolid FillMode = iota

	// FillWireframe rasterizes polygon edges only.
	FillWireframe
)

// EffectiveCullMode applies the camera-reversal rule to a resolved cull mode:
// when the camera orientation is reversed the winding swaps, except that
// CullNone is never flipped.
//
// Parameters:
//   - mode: the resolved cull mode (must not be CullInherit)
//   - isCameraReversed: whether the camera orientation is mirrored
//
// Returns:
//   - CullMode: the cull mode adjusted for camera reversal
func EffectiveCullMode(mode CullMode, isCameraReversed bool) CullMode {
	if mode == CullNone || !isCameraReversed {
		return mode
	}
	if mode == CullCW {
		return CullCCW
	}
	return CullCW
}

// ResolveCullMode picks the pass cull mode unless it is CullInherit, in which
// case the material cull mode applies, then adjusts for camera reversal.
//
// Parameters:
//   - passCullMode: the pass-level cull mode, possibly CullInherit
//   - materialCullMode: the material-level cull mode
//   - isCameraReversed: whether the camera orientation is mirrored
//
// Returns:
//   - CullMode: the effective cull mode for the draw
func ResolveCullMode(passCullMode, materialCullMode CullMode, isCameraReversed bool) CullMode {
	mode := passCullMode
	if mode == CullInherit {
		mode = materialCullMode
	}
	return EffectiveCullMode(mode, isCameraReversed)
}
