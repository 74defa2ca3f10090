package drawable

import (
	"github.com/Carmen-Shannon/strata-go/common"
	"github.com/Carmen-Shannon/strata-go/engine/renderer/material"
)

// SourceBatch is one (geometry, material) draw unit provided by a drawable.
// A drawable exposes one or more source batches; the batch collector expands
// them into per-pass scene batches.
type SourceBatch struct {
	// Geometry is the renderable geometry for this batch.
	Geometry Geometry
	// Material is the material rendered on the geometry.
	Material material.Material
}

// drawableImpl is the implementation of the Drawable interface.
type drawableImpl struct {
	bounds        common.BoundingBox
	lightMask     uint32
	sourceBatches []SourceBatch
	updateHook    func(frameNumber uint64, timeStep float32)
}

// Drawable defines the capability interface for a renderable object instance
// consumed by the batch collector. The scene graph and component system that
// own drawables live outside this core; the collector only needs world
// bounds, the light mask, the source batches, and a per-frame update hook.
type Drawable interface {
	// WorldBounds retrieves the world-space axis-aligned bounding box.
	//
	// Returns:
	//   - common.BoundingBox: the world-space bounds
	WorldBounds() common.BoundingBox

	// LightMask retrieves the mask restricting which lights may affect this
	// drawable. A light influences the drawable only when the masks intersect.
	//
	// Returns:
	//   - uint32: the light mask
	LightMask() uint32

	// SourceBatches retrieves the drawable's draw units. The slice is stable
	// for the duration of a frame.
	//
	// Returns:
	//   - []SourceBatch: the source batches
	SourceBatches() []SourceBatch

	// Update is invoked once per frame by the batch collector before the
	// drawable's batches are read, letting the drawable refresh frame-derived
	// state (world transforms, skinning).
	//
	// Parameters:
	//   - frameNumber: the monotonically increasing frame number
	//   - timeStep: seconds elapsed since the previous frame
	Update(frameNumber uint64, timeStep float32)
}

var _ Drawable = &drawableImpl{}

// NewDrawable creates a new Drawable with the given options applied.
//
// Parameters:
//   - opts: variadic list of DrawableBuilderOption functions to configure the drawable
//
// Returns:
//   - Drawable: a new Drawable instance
func NewDrawable(opts ...DrawableBuilderOption) Drawable {
	d := &drawableImpl{
		lightMask: 0xffffffff,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *drawableImpl) WorldBounds() common.BoundingBox {
	return d.bounds
}

func (d *drawableImpl) LightMask() uint32 {
	return d.lightMask
}

func (d *drawableImpl) SourceBatches() []SourceBatch {
	return d.sourceBatches
}

func (d *drawableImpl) Update(frameNumber uint64, timeStep float32) {
	if d.updateHook != nil {
		d.updateHook(frameNumber, timeStep)
	}
}

// DrawableBuilderOption is a function that configures a Drawable instance during construction.
type DrawableBuilderOption func(*drawableImpl)

// WithWorldBounds is an option builder that sets the world-space bounding box.
//
// Parameters:
//   - bounds: the world-space axis-aligned bounds
//
// Returns:
//   - DrawableBuilderOption: a function that applies the bounds option to a drawable
func WithWorldBounds(bounds common.BoundingBox) DrawableBuilderOption {
	return func(d *drawableImpl) {
		d.bounds = bounds
	}
}

// WithLightMask is an option builder that sets the drawable's light mask.
//
// Parameters:
//   - mask: the light mask
//
// Returns:
//   - DrawableBuilderOption: a function that applies the mask option to a drawable
func WithLightMask(mask uint32) DrawableBuilderOption {
	return func(d *drawableImpl) {
		d.lightMask = mask
	}
}

// WithSourceBatches is an option builder that sets the drawable's draw units.
//
// Parameters:
//   - batches: the source batches
//
// Returns:
//   - DrawableBuilderOption: a function that applies the batches option to a drawable
func WithSourceBatches(batches ...SourceBatch) DrawableBuilderOption {
	return func(d *drawableImpl) {
		d.sourceBatches = batches
	}
}

// WithUpdateHook is an option builder that sets the per-frame update hook.
//
// Parameters:
//   - hook: invoked once per frame before the drawable's batches are read
//
// Returns:
//   - DrawableBuilderOption: a function that applies the hook option to a drawable
func WithUpdateHook(hook func(frameNumber uint64, timeStep float32)) DrawableBuilderOption {
	return func(d *drawableImpl) {
		d.updateHook = hook
	}
}
