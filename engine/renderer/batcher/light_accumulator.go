package batcher

// AccumulationContext carries the light budget policy for one frame: how many
// per-pixel and per-vertex light slots a drawable may use.
type AccumulationContext struct {
	MaxPixelLights  int
	MaxVertexLights int
}

// lightContribution is one (penalty, light) entry in the accumulator.
// Entries are kept ordered ascending by penalty, insertion order breaking ties.
type lightContribution struct {
	penalty    float32
	lightIndex int
}

// LightAccumulator selects a bounded set of influencing lights for one
// drawable, ranked by an ascending penalty score. Important lights are forced
// to the front with penalty -1 and widen the per-pixel tier; when the
// container overflows, the highest-penalty entry is evicted and its energy is
// folded into the spherical-harmonics ambient term by the caller.
//
// One accumulator exists per forward-lit drawable and is reset every frame.
type LightAccumulator struct {
	ctx            AccumulationContext
	contributions  []lightContribution
	importantCount int

	// firstVertexLight is the split rank between the per-pixel and per-vertex
	// tiers, recomputed on every insertion.
	firstVertexLight int

	// Ambient holds the folded energy of evicted lights.
	Ambient SphericalHarmonics9
}

// Reset clears the accumulator for a new frame and installs the light budget.
//
// Parameters:
//   - ctx: the per-pixel/per-vertex light budget
func (a *LightAccumulator) Reset(ctx AccumulationContext) {
	a.ctx = ctx
	a.importantCount = 0
	a.firstVertexLight = ctx.MaxPixelLights

	// Worst case live size before eviction restores the bound.
	capacity := max(ctx.MaxPixelLights+1, 4) + ctx.MaxVertexLights
	if cap(a.contributions) < capacity {
		a.contributions = make([]lightContribution, 0, capacity)
	} else {
		a.contributions = a.contributions[:0]
	}
	a.Ambient.Reset()
}

// AccumulateLight inserts one light contribution, keeping the container
// ordered and bounded. Important lights always survive: their penalty is
// forced to -1 and the per-pixel tier grows to hold all of them.
//
// Parameters:
//   - lightIndex: the light's index in the frame's visible-light list
//   - important: whether the light must occupy a per-pixel slot
//   - penalty: the ascending influence ranking, lower is more influential
//
// Returns:
//   - int: the light index evicted by this insertion, or -1 if none
func (a *LightAccumulator) AccumulateLight(lightIndex int, important bool, penalty float32) int {
	if important {
		penalty = -1
		a.importantCount++
	}

	// Insert after all entries with penalty <= the new one so equal penalties
	// keep insertion order.
	pos := len(a.contributions)
	for i, c := range a.contributions {
		if penalty < c.penalty {
			pos = i
			break
		}
	}
	a.contributions = append(a.contributions, lightContribution{})
	copy(a.contributions[pos+1:], a.contributions[pos:])
	a.contributions[pos] = lightContribution{penalty: penalty, lightIndex: lightIndex}

	a.firstVertexLight = max(a.ctx.MaxPixelLights, a.importantCount)

	if len(a.contributions) > a.firstVertexLight+a.ctx.MaxVertexLights {
		last := len(a.contributions) - 1
		evicted := a.contributions[last].lightIndex
		a.contributions = a.contributions[:last]
		return evicted
	}
	return -1
}

// Len retrieves the number of retained light contributions.
//
// Returns:
//   - int: the contribution count
func (a *LightAccumulator) Len() int {
	return len(a.contributions)
}

// FirstVertexLight retrieves the split rank between the per-pixel and
// per-vertex tiers: entries below it are per-pixel lights.
//
// Returns:
//   - int: the split rank, max(maxPixelLights, importantCount)
func (a *LightAccumulator) FirstVertexLight() int {
	return a.firstVertexLight
}

// MainLightIndex retrieves the dominant per-pixel light, the entry at rank 0.
//
// Returns:
//   - int: the main light's index, or -1 if the accumulator is empty
func (a *LightAccumulator) MainLightIndex() int {
	if len(a.contributions) == 0 {
		return -1
	}
	return a.contributions[0].lightIndex
}

// PixelLightIndices retrieves the per-pixel tier: all entries with rank below
// the split boundary, dominant light first.
//
// Returns:
//   - []int: the per-pixel light indices in ascending penalty order
func (a *LightAccumulator) PixelLightIndices() []int {
	n := min(a.firstVertexLight, len(a.contributions))
	out := make([]int, n)
	for i := range n {
		out[i] = a.contributions[i].lightIndex
	}
	return out
}

// VertexLightIndices retrieves the per-vertex tier: all entries at or above
// the split boundary.
//
// Returns:
//   - []int: the per-vertex light indices in ascending penalty order
func (a *LightAccumulator) VertexLightIndices() []int {
	if len(a.contributions) <= a.firstVertexLight {
		return nil
	}
	tail := a.contributions[a.firstVertexLight:]
	out := make([]int, len(tail))
	for i, c := range tail {
		out[i] = c.lightIndex
	}
	return out
}
