package batcher

import (
	"math"

	"github.com/Carmen-Shannon/strata-go/common"
	"github.com/Carmen-Shannon/strata-go/engine/camera"
	"github.com/Carmen-Shannon/strata-go/engine/light"
)

// lightState is one persistent per-light cache entry. The light handle is
// stored so a stale entry whose ID was never reused can still be detected by
// identity, and the revision plus the scene depth range record the inputs the
// cooked parameters were derived from.
type lightState struct {
	l        light.Light
	revision uint64
	sceneZ   DrawableZRange
	params   light.CookedParams
}

// LightProcessor defines the interface for the persistent per-light cache of
// cooked lighting parameters. Entries are created lazily, reused across
// frames while the light and scene depth range are unchanged, and pruned
// explicitly when lights leave the scene.
//
// Cook must only be called from the orchestrating goroutine before parallel
// fan-out; the workers read the returned pointers but never mutate the cache.
type LightProcessor interface {
	// Cook retrieves the cooked parameters for a light, recomputing them only
	// when the light's revision or the scene depth range changed since the
	// cached entry was produced. The returned pointer stays valid until the
	// entry is pruned.
	//
	// Parameters:
	//   - l: the light to cook
	//   - cam: the frame's camera
	//   - sceneZ: the merged scene depth range for shadow split placement
	//
	// Returns:
	//   - *light.CookedParams: the cooked per-light parameters
	Cook(l light.Light, cam camera.Camera, sceneZ DrawableZRange) *light.CookedParams

	// Prune drops every cache entry whose light is not in the given live set.
	//
	// Parameters:
	//   - live: the lights still present in the scene
	//
	// Returns:
	//   - int: the number of entries removed
	Prune(live []light.Light) int

	// Len retrieves the number of cached entries.
	//
	// Returns:
	//   - int: the cache entry count
	Len() int
}

// lightProcessor is the implementation of the LightProcessor interface.
type lightProcessor struct {
	states map[uint64]*lightState
}

var _ LightProcessor = &lightProcessor{}

// NewLightProcessor creates an empty per-light parameter cache.
//
// Returns:
//   - LightProcessor: a new LightProcessor instance
func NewLightProcessor() LightProcessor {
	return &lightProcessor{
		states: make(map[uint64]*lightState),
	}
}

func (p *lightProcessor) Cook(l light.Light, cam camera.Camera, sceneZ DrawableZRange) *light.CookedParams {
	st, ok := p.states[l.ID()]
	if ok && st.l == l && st.revision == l.Revision() && st.sceneZ == sceneZ {
		return &st.params
	}

	if st == nil || st.l != l {
		st = &lightState{l: l}
		p.states[l.ID()] = st
	}
	st.revision = l.Revision()
	st.sceneZ = sceneZ
	st.params = cookParams(l, cam, sceneZ)
	return &st.params
}

func (p *lightProcessor) Prune(live []light.Light) int {
	alive := make(map[uint64]light.Light, len(live))
	for _, l := range live {
		alive[l.ID()] = l
	}
	removed := 0
	for id, st := range p.states {
		if alive[id] != st.l {
			delete(p.states, id)
			removed++
		}
	}
	return removed
}

func (p *lightProcessor) Len() int {
	return len(p.states)
}

// cookParams derives the per-light values reused by pipeline state assembly:
// the camera-overlap test for light volumes and, for shadow casters, the
// shadow split placement with per-split depth bias multipliers.
func cookParams(l light.Light, cam camera.Camera, sceneZ DrawableZRange) light.CookedParams {
	var params light.CookedParams

	if l.Type() != light.LightTypeDirectional {
		// The camera is inside the light volume when it is closer than the
		// light's range plus the near plane guard band.
		dist := float32(math.Sqrt(float64(common.DistanceSquared(cam.Position(), l.Position()))))
		params.OverlapsCamera = dist < l.Range()+cam.Near()
	}

	if !l.CastsShadows() {
		return params
	}

	switch l.Type() {
	case light.LightTypeDirectional:
		cookDirectionalSplits(&params, cam, sceneZ)
	default:
		// Point and spot lights render a single shadow map covering the
		// light's range.
		params.ShadowSplitCount = 1
		params.SplitNear[0] = cam.Near()
		params.SplitFar[0] = l.Range()
		params.ShadowDepthBiasMultiplier[0] = 1
	}
	return params
}

// cookDirectionalSplits places cascade boundaries with the practical split
// scheme: a lambda blend between uniform and logarithmic placement over the
// shadowed depth range. The bias multiplier of each split grows with the
// depth it covers relative to the first split, since deeper splits spend more
// world-space depth per shadow map texel.
func cookDirectionalSplits(params *light.CookedParams, cam camera.Camera, sceneZ DrawableZRange) {
	near := cam.Near()
	far := light.DefaultShadowFar
	if sceneZ.Defined() && sceneZ.Max > near && sceneZ.Max < far {
		far = sceneZ.Max
	}

	params.ShadowSplitCount = light.MaxShadowSplits

	n := float64(light.MaxShadowSplits)
	lambda := float64(light.DefaultShadowSplitLambda)
	boundary := func(i int) float32 {
		t := float64(i) / n
		logSplit := float64(near) * math.Pow(float64(far/near), t)
		uniSplit := float64(near) + float64(far-near)*t
		return float32(lambda*logSplit + (1-lambda)*uniSplit)
	}

	for i := range light.MaxShadowSplits {
		params.SplitNear[i] = boundary(i)
		params.SplitFar[i] = boundary(i + 1)
	}

	firstDepth := params.SplitFar[0] - params.SplitNear[0]
	for i := range light.MaxShadowSplits {
		mult := (params.SplitFar[i] - params.SplitNear[i]) / firstDepth
		params.ShadowDepthBiasMultiplier[i] = clampf(mult, 1, 16)
	}
}

// clampf clamps v into [lo, hi].
func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
