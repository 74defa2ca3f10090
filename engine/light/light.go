package light

import "sync/atomic"

// LightType identifies the kind of light source.
type LightType int

const (
	// LightTypeDirectional represents a light with no position, only direction.
	// Used for large distant sources like the sun or moon. Affects all fragments
	// uniformly with no distance attenuation.
	LightTypeDirectional LightType = iota

	// LightTypePoint represents a light that emits in all directions from a position.
	// Used for bare bulbs, lanterns, candle flames, and particle-emitted lights.
	// Attenuates with distance up to a configurable range.
	LightTypePoint

	// LightTypeSpot represents a light that emits in a cone from a position along a direction.
	// Used for flashlights, desk lamps, and wall sconces. Attenuates with both
	// distance and angle from the cone axis, controlled by inner and outer cone angles.
	LightTypeSpot
)

// lightCount is an atomic counter used to assign each light a process-unique ID.
var lightCount atomic.Uint64

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	id       uint64
	revision atomic.Uint64

	lightType    LightType
	position     [3]float32
	direction    [3]float32
	color        [3]float32
	intensity    float32
	lightRange   float32
	innerCone    float32 // stored as cos(angle in radians)
	outerCone    float32 // stored as cos(angle in radians)
	important    bool
	negative     bool
	lightMask    uint32
	shadowBias   BiasParameters
	enabled      bool
	castsShadows bool
}

// Light defines the interface for a light source in the scene.
//
// Lights are scene-level entities that contribute to the final pixel color
// during the lit forward rendering pass or through deferred light volumes.
// All light types (directional, point, spot) share this interface;
// type-specific properties (e.g. cone angles for spot lights) return zero
// values when not applicable.
//
// Every light carries a process-unique ID and a revision counter bumped by
// every setter. The batch collector keys its per-light cache on the ID and
// uses the revision to skip recomputing cooked parameters for lights that
// did not change between frames.
type Light interface {
	// ID returns the process-unique identifier assigned at construction.
	//
	// Returns:
	//   - uint64: the stable light identifier
	ID() uint64

	// Revision returns the current revision counter. Every setter increments
	// it, so an unchanged revision across frames means the light's parameters
	// are unchanged.
	//
	// Returns:
	//   - uint64: the current revision
	Revision() uint64

	// Type returns the kind of light source.
	//
	// Returns:
	//   - LightType: the light type (directional, point, or spot)
	Type() LightType

	// Position returns the world-space position of the light.
	// Meaningless for directional lights.
	//
	// Returns:
	//   - [3]float32: position as (x, y, z)
	Position() [3]float32

	// Direction returns the normalized direction of the light.
	// For directional lights this is the light direction. For spot lights this
	// is the cone axis. Meaningless for point lights.
	//
	// Returns:
	//   - [3]float32: normalized direction as (x, y, z)
	Direction() [3]float32

	// Color returns the RGB color of the light.
	//
	// Returns:
	//   - [3]float32: color as (r, g, b)
	Color() [3]float32

	// Intensity returns the scalar intensity multiplier for the light.
	//
	// Returns:
	//   - float32: the intensity value
	Intensity() float32

	// Range returns the maximum attenuation distance for point and spot lights.
	// Beyond this distance the light contributes zero energy. Meaningless for
	// directional lights.
	//
	// Returns:
	//   - float32: the range value
	Range() float32

	// InnerCone returns the cosine of the inner cone half-angle for spot lights.
	//
	// Returns:
	//   - float32: cos(inner half-angle)
	InnerCone() float32

	// OuterCone returns the cosine of the outer cone half-angle for spot lights.
	//
	// Returns:
	//   - float32: cos(outer half-angle)
	OuterCone() float32

	// Important returns whether this light must always occupy a per-pixel slot
	// during forward light accumulation, regardless of its penalty ranking.
	//
	// Returns:
	//   - bool: true if the light is important
	Important() bool

	// Negative returns the polarity of the light. Negative lights subtract
	// energy instead of adding it, which selects subtractive blending for
	// their light volumes.
	//
	// Returns:
	//   - bool: true if the light is negative
	Negative() bool

	// LightMask returns the mask restricting which drawables and stencil
	// pixels this light may affect.
	//
	// Returns:
	//   - uint32: the light mask
	LightMask() uint32

	// ShadowBias returns the constant and slope-scaled depth bias parameters
	// applied when rendering this light's shadow casters.
	//
	// Returns:
	//   - BiasParameters: the shadow bias parameters
	ShadowBias() BiasParameters

	// Enabled returns whether this light is active for rendering.
	//
	// Returns:
	//   - bool: true if the light is enabled
	Enabled() bool

	// CastsShadows returns whether this light is eligible for shadow map
	// generation. Shadow-casting lights receive cooked split assignments and
	// per-split bias multipliers during light processing.
	//
	// Returns:
	//   - bool: true if the light casts shadows
	CastsShadows() bool

	// SetPosition sets the world-space position of the light.
	//
	// Parameters:
	//   - x, y, z: position components
	SetPosition(x, y, z float32)

	// SetDirection sets the direction of the light and normalizes it.
	//
	// Parameters:
	//   - x, y, z: direction components (will be normalized)
	SetDirection(x, y, z float32)

	// SetColor sets the RGB color of the light.
	//
	// Parameters:
	//   - r, g, b: color components
	SetColor(r, g, b float32)

	// SetIntensity sets the scalar intensity multiplier.
	//
	// Parameters:
	//   - intensity: the intensity value
	SetIntensity(intensity float32)

	// SetRange sets the maximum attenuation distance.
	//
	// Parameters:
	//   - lightRange: the range value
	SetRange(lightRange float32)

	// SetSpotCone sets the inner and outer cone half-angles for spot lights.
	// Angles are specified in degrees and stored internally as cosines.
	//
	// Parameters:
	//   - innerDeg: inner cone half-angle in degrees
	//   - outerDeg: outer cone half-angle in degrees
	SetSpotCone(innerDeg, outerDeg float32)

	// SetImportant marks the light as important for per-pixel accumulation.
	//
	// Parameters:
	//   - important: true to force a per-pixel slot
	SetImportant(important bool)

	// SetNegative sets the polarity of the light.
	//
	// Parameters:
	//   - negative: true for a subtractive light
	SetNegative(negative bool)

	// SetLightMask sets the mask restricting which drawables this light affects.
	//
	// Parameters:
	//   - mask: the light mask
	SetLightMask(mask uint32)

	// SetShadowBias sets the shadow depth bias parameters.
	//
	// Parameters:
	//   - bias: the constant and slope-scaled bias values
	SetShadowBias(bias BiasParameters)

	// SetEnabled enables or disables the light for rendering.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// SetCastsShadows sets whether the light is eligible for shadow mapping.
	//
	// Parameters:
	//   - castsShadows: true to enable shadow casting
	SetCastsShadows(castsShadows bool)
}

var _ Light = &lightImpl{}

// NewLight creates a new Light of the specified type with sensible defaults and
// any provided options applied. The light receives a process-unique ID.
//
// Parameters:
//   - lightType: the kind of light to create (directional, point, or spot)
//   - opts: variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - Light: a new Light instance
func NewLight(lightType LightType, opts ...LightBuilderOption) Light {
	l := &lightImpl{
		id:           lightCount.Add(1),
		lightType:    lightType,
		position:     [3]float32{0, 0, 0},
		direction:    [3]float32{0, -1, 0},
		color:        [3]float32{1, 1, 1},
		intensity:    1.0,
		lightRange:   10.0,
		innerCone:    0.9063, // cos(25°)
		outerCone:    0.8192, // cos(35°)
		lightMask:    AllLightMask,
		shadowBias:   BiasParameters{ConstantBias: DefaultShadowBias},
		enabled:      true,
		castsShadows: false,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *lightImpl) ID() uint64 {
	return l.id
}

func (l *lightImpl) Revision() uint64 {
	return l.revision.Load()
}

func (l *lightImpl) Type() LightType {
	return l.lightType
}

func (l *lightImpl) Position() [3]float32 {
	return l.position
}

func (l *lightImpl) Direction() [3]float32 {
	return l.direction
}

func (l *lightImpl) Color() [3]float32 {
	return l.color
}

func (l *lightImpl) Intensity() float32 {
	return l.intensity
}

func (l *lightImpl) Range() float32 {
	return l.lightRange
}

func (l *lightImpl) InnerCone() float32 {
	return l.innerCone
}

func (l *lightImpl) OuterCone() float32 {
	return l.outerCone
}

func (l *lightImpl) Important() bool {
	return l.important
}

func (l *lightImpl) Negative() bool {
	return l.negative
}

func (l *lightImpl) LightMask() uint32 {
	return l.lightMask
}

func (l *lightImpl) ShadowBias() BiasParameters {
	return l.shadowBias
}

func (l *lightImpl) Enabled() bool {
	return l.enabled
}

func (l *lightImpl) CastsShadows() bool {
	return l.castsShadows
}

func (l *lightImpl) SetPosition(x, y, z float32) {
	l.position = [3]float32{x, y, z}
	l.revision.Add(1)
}

func (l *lightImpl) SetDirection(x, y, z float32) {
	l.direction = normalize3(x, y, z)
	l.revision.Add(1)
}

func (l *lightImpl) SetColor(r, g, b float32) {
	l.color = [3]float32{r, g, b}
	l.revision.Add(1)
}

func (l *lightImpl) SetIntensity(intensity float32) {
	l.intensity = intensity
	l.revision.Add(1)
}

func (l *lightImpl) SetRange(lightRange float32) {
	l.lightRange = lightRange
	l.revision.Add(1)
}

func (l *lightImpl) SetSpotCone(innerDeg, outerDeg float32) {
	l.innerCone = cosDeg(innerDeg)
	l.outerCone = cosDeg(outerDeg)
	l.revision.Add(1)
}

func (l *lightImpl) SetImportant(important bool) {
	l.important = important
	l.revision.Add(1)
}

func (l *lightImpl) SetNegative(negative bool) {
	l.negative = negative
	l.revision.Add(1)
}

func (l *lightImpl) SetLightMask(mask uint32) {
	l.lightMask = mask
	l.revision.Add(1)
}

func (l *lightImpl) SetShadowBias(bias BiasParameters) {
	l.shadowBias = bias
	l.revision.Add(1)
}

func (l *lightImpl) SetEnabled(enabled bool) {
	l.enabled = enabled
	l.revision.Add(1)
}

func (l *lightImpl) SetCastsShadows(castsShadows bool) {
	l.castsShadows = castsShadows
	l.revision.Add(1)
}
