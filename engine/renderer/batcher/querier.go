package batcher

import (
	"github.com/Carmen-Shannon/strata-go/engine/light"
	"github.com/Carmen-Shannon/strata-go/engine/renderer/drawable"
)

// GeometryQuerier defines the interface for resolving which drawables a light
// may illuminate. The collector calls it once per visible light during light
// processing; implementations backed by a spatial index can replace the
// default bounds test.
type GeometryQuerier interface {
	// LitDrawables retrieves the indices of drawables the light can reach.
	// Only drawables with TraitVisibleGeometry set should be returned.
	//
	// Parameters:
	//   - l: the light being processed
	//   - drawables: the frame's drawable list
	//   - traits: the per-drawable trait bitmasks, parallel to drawables
	//
	// Returns:
	//   - []uint32: the indices of potentially lit drawables, ascending
	LitDrawables(l light.Light, drawables []drawable.Drawable, traits []DrawableTrait) []uint32
}

// boundsQuerier is the implementation of the GeometryQuerier interface backed
// by a brute-force bounds test: directional lights reach every visible
// drawable, point and spot lights reach visible drawables whose bounds touch
// the light's range sphere.
type boundsQuerier struct{}

var _ GeometryQuerier = &boundsQuerier{}

// NewBoundsQuerier creates the default brute-force geometry querier.
//
// Returns:
//   - GeometryQuerier: a new querier instance
func NewBoundsQuerier() GeometryQuerier {
	return &boundsQuerier{}
}

func (boundsQuerier) LitDrawables(l light.Light, drawables []drawable.Drawable, traits []DrawableTrait) []uint32 {
	out := make([]uint32, 0, len(drawables))
	directional := l.Type() == light.LightTypeDirectional
	pos := l.Position()
	radius := l.Range()

	for i, d := range drawables {
		if !traits[i].Has(TraitVisibleGeometry) {
			continue
		}
		if directional || d.WorldBounds().IntersectsSphere(pos, radius) {
			out = append(out, uint32(i))
		}
	}
	return out
}
