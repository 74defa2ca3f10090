package batcher

import (
	"sync"

	"github.com/Carmen-Shannon/strata-go/common"
	"github.com/Carmen-Shannon/strata-go/engine/camera"
	"github.com/Carmen-Shannon/strata-go/engine/light"
	"github.com/Carmen-Shannon/strata-go/engine/profiler"
	"github.com/Carmen-Shannon/strata-go/engine/renderer/drawable"
	"github.com/Carmen-Shannon/strata-go/engine/renderer/material"
	"github.com/Carmen-Shannon/strata-go/engine/renderer/pipeline"

	"github.com/Carmen-Shannon/automation/tools/worker"
)

// FrameInfo captures the per-frame parameters the collector works against.
type FrameInfo struct {
	// FrameNumber is the monotonically increasing frame counter.
	FrameNumber uint64
	// TimeStep is the seconds elapsed since the previous frame.
	TimeStep float32
	// Camera is the rendering camera for the frame.
	Camera camera.Camera
}

// ScenePassType selects how a scene pass interacts with lighting.
type ScenePassType int

const (
	// PassTypeUnlit renders every batch with the base pass and no light.
	PassTypeUnlit ScenePassType = iota
	// PassTypeForwardLitBase renders the dominant light in the first-light
	// pass and further per-pixel lights in additive light batches.
	PassTypeForwardLitBase
	// PassTypeForwardUnlitBase renders the base pass unlit; every accumulated
	// per-pixel light is applied in an additive light batch instead of being
	// folded into the base pass.
	PassTypeForwardUnlitBase
)

// ScenePassDescription declares one logical render pass for a frame. Pass
// descriptions are supplied externally and are immutable for the frame.
type ScenePassDescription struct {
	// Type selects the lighting behavior of the pass.
	Type ScenePassType
	// BasePassName names the material sub-pass used for unlit batches.
	BasePassName string
	// FirstLightPassName names the sub-pass rendering the dominant light.
	// Only meaningful for PassTypeForwardLitBase.
	FirstLightPassName string
	// AdditionalLightPassName names the additive sub-pass for per-pixel
	// lights: lights past the main one for PassTypeForwardLitBase, all of
	// them for PassTypeForwardUnlitBase.
	AdditionalLightPassName string
	// Flags carries pass behavior toggles forwarded to state assembly.
	Flags pipeline.PassFlags
}

// SceneBatch is one finalized draw unit of a frame: the drawable's source
// batch bound to a concrete material pass, the owning light for lit batches,
// and the resolved pipeline state.
type SceneBatch struct {
	DrawableIndex    uint32
	SourceBatchIndex uint32
	Drawable         drawable.Drawable
	Geometry         drawable.Geometry
	Material         material.Material
	Pass             material.Pass

	// Light is the owning light, nil for unlit batches. LightIndex is its
	// index in the frame's visible-light list, -1 for unlit batches.
	Light      light.Light
	LightIndex int

	// PipelineState is the resolved GPU configuration for the batch.
	PipelineState pipeline.PipelineState
}

// DrawableLightSet is the finalized lighting of one forward-lit drawable:
// the tiered light assignment plus the ambient term folded from evicted
// lights.
type DrawableLightSet struct {
	// MainLight is the dominant per-pixel light, nil when no light reaches
	// the drawable.
	MainLight light.Light
	// PixelLights is the full per-pixel tier, main light first.
	PixelLights []light.Light
	// VertexLights is the per-vertex tier.
	VertexLights []light.Light
	// Ambient holds the energy of lights evicted from the bounded set.
	Ambient SphericalHarmonics9
}

// collectorState tracks the strictly sequential per-frame phase protocol.
type collectorState int

const (
	stateIdle collectorState = iota
	stateFrameInitialized
	statePassesInitialized
	stateSourceBatchesCollected
	stateLightsProcessed
	stateBatchesCollected
)

// intermediateBatch is one raw per-pass batch appended to a thread-local
// buffer during source-batch collection. Unlit batches carry their resolved
// pass; lit batches defer pass selection to emission and carry the technique.
type intermediateBatch struct {
	drawableIndex    uint32
	sourceBatchIndex uint32
	pass             material.Pass
	technique        material.Technique
}

// threadBatchBuffer holds one worker's raw batches, one base and one lit
// sequence per pass. Buffers are merged in thread-then-insertion order, which
// keeps batch emission deterministic regardless of scheduling.
type threadBatchBuffer struct {
	base [][]intermediateBatch
	lit  [][]intermediateBatch
}

// Collector defines the interface for the per-frame scene batch collector.
// It turns a frame's drawables, lights and pass declarations into ordered
// per-pass batch lists with bounded per-drawable light sets and resolved
// pipeline states.
//
// The five frame phases must be called in order on one goroutine:
// InitializeFrame, InitializePasses, UpdateAndCollectSourceBatches,
// ProcessVisibleLights, CollectSceneBatches. Calling a phase out of order
// panics. Internally each heavy phase fans out across a persistent worker
// pool and joins before returning.
type Collector interface {
	// InitializeFrame begins a new frame with the given parameters. Valid
	// from the idle state or after the previous frame's batches were
	// collected.
	//
	// Parameters:
	//   - frame: the frame parameters; the camera must be non-nil
	InitializeFrame(frame FrameInfo)

	// InitializePasses declares the frame's scene passes. Pass indices used
	// by the accessors follow the order given here.
	//
	// Parameters:
	//   - passes: the pass declarations, each with a non-empty base pass name
	InitializePasses(passes ...ScenePassDescription)

	// UpdateAndCollectSourceBatches updates every drawable, derives its
	// visibility traits and depth range, and collects its raw per-pass
	// batches into thread-local buffers.
	//
	// Parameters:
	//   - drawables: the frame's drawable list, indexed densely
	UpdateAndCollectSourceBatches(drawables []drawable.Drawable)

	// ProcessVisibleLights cooks per-light parameters through the persistent
	// light cache, resolves each light's lit drawables, and pushes every
	// light into the bounded accumulator of each forward-lit drawable it
	// reaches.
	//
	// Parameters:
	//   - lights: the frame's visible lights, indexed densely
	ProcessVisibleLights(lights []light.Light)

	// CollectSceneBatches finalizes the per-drawable light sets, flattens the
	// thread-local buffers into the final ordered per-pass batch lists, and
	// resolves a pipeline state for every batch. Batches whose shaders do not
	// resolve are dropped silently.
	CollectSceneBatches()

	// BaseBatches retrieves the finalized base batches of a pass in emission
	// order. Valid after CollectSceneBatches.
	//
	// Parameters:
	//   - passIndex: the pass position given to InitializePasses
	//
	// Returns:
	//   - []SceneBatch: the ordered base batches
	BaseBatches(passIndex int) []SceneBatch

	// LightBatches retrieves the additive per-pixel light batches of a pass
	// in emission order. Valid after CollectSceneBatches.
	//
	// Parameters:
	//   - passIndex: the pass position given to InitializePasses
	//
	// Returns:
	//   - []SceneBatch: the ordered light batches
	LightBatches(passIndex int) []SceneBatch

	// CollectShadowBatches builds the shadow-caster batches of one shadow
	// split of a light, rendering each lit drawable with the named material
	// sub-pass. Valid after ProcessVisibleLights.
	//
	// Parameters:
	//   - lightIndex: the light's index in the frame's visible-light list
	//   - splitIndex: the shadow split to render
	//   - shadowPassName: the material sub-pass used for shadow casting
	//
	// Returns:
	//   - []SceneBatch: the shadow batches, nil when the split does not exist
	CollectShadowBatches(lightIndex, splitIndex int, shadowPassName string) []SceneBatch

	// CollectLightVolumeBatches builds one deferred light-volume batch per
	// enabled visible light, using the shared volume geometry and pass. Valid
	// after ProcessVisibleLights.
	//
	// Parameters:
	//   - geometry: the light volume proxy geometry
	//   - volumePass: the material sub-pass shading the volume
	//
	// Returns:
	//   - []SceneBatch: the light-volume batches in light-index order
	CollectLightVolumeBatches(geometry drawable.Geometry, volumePass material.Pass) []SceneBatch

	// SceneZRange retrieves the merged view-space depth range of all visible
	// drawables, for shadow frustum fitting. Valid after
	// UpdateAndCollectSourceBatches.
	//
	// Returns:
	//   - DrawableZRange: the merged scene depth range
	SceneZRange() DrawableZRange

	// DrawableLights retrieves the finalized light set of a forward-lit
	// drawable. Valid after CollectSceneBatches.
	//
	// Parameters:
	//   - drawableIndex: the drawable's dense index
	//
	// Returns:
	//   - DrawableLightSet: the finalized light assignment
	//   - bool: false when the drawable is not forward-lit this frame
	DrawableLights(drawableIndex uint32) (DrawableLightSet, bool)

	// PruneLightCache drops cached parameters of lights that were not part of
	// the most recent frame. Call between frames, never during a phase.
	//
	// Returns:
	//   - int: the number of cache entries removed
	PruneLightCache() int
}

// sceneBatchCollector is the implementation of the Collector interface.
type sceneBatchCollector struct {
	state collectorState
	frame FrameInfo

	quality         int
	maxPixelLights  int
	maxVertexLights int

	workerCount                int
	drawableWorkThreshold      int
	litGeometriesWorkThreshold int
	batchWorkThreshold         int
	pool                       worker.DynamicWorkerPool

	querier   GeometryQuerier
	processor LightProcessor
	prof      *profiler.Profiler

	stateBuilderFactory func(cam camera.Camera) pipeline.StateBuilder
	builders            []pipeline.StateBuilder

	index  TransientDrawableIndex
	zRange SceneZRange

	passes    []ScenePassDescription
	drawables []drawable.Drawable
	lights    []light.Light

	lightParams  []*light.CookedParams
	litDrawables [][]uint32
	accumulators []LightAccumulator
	lightSets    []DrawableLightSet
	pixelIndices [][]int

	perThread    []threadBatchBuffer
	baseBatches  [][]SceneBatch
	lightBatches [][]SceneBatch
}

var _ Collector = &sceneBatchCollector{}

func (c *sceneBatchCollector) InitializeFrame(frame FrameInfo) {
	if c.state != stateIdle && c.state != stateBatchesCollected {
		panic("batcher: InitializeFrame called out of phase order")
	}
	if frame.Camera == nil {
		panic("batcher: InitializeFrame requires a non-nil camera")
	}
	c.frame = frame

	// One state builder per worker slot; builders keep transient descriptors
	// and must not be shared across goroutines.
	c.builders = make([]pipeline.StateBuilder, c.workerCount)
	for i := range c.builders {
		c.builders[i] = c.stateBuilderFactory(frame.Camera)
	}

	c.state = stateFrameInitialized
}

func (c *sceneBatchCollector) InitializePasses(passes ...ScenePassDescription) {
	if c.state != stateFrameInitialized {
		panic("batcher: InitializePasses called out of phase order")
	}
	for _, pd := range passes {
		if pd.BasePassName == "" {
			panic("batcher: pass description requires a base pass name")
		}
		if pd.Type == PassTypeForwardLitBase && pd.FirstLightPassName == "" {
			panic("batcher: forward lit pass requires a first-light pass name")
		}
		if pd.Type == PassTypeForwardUnlitBase && pd.AdditionalLightPassName == "" {
			panic("batcher: forward unlit pass requires an additional-light pass name")
		}
	}
	c.passes = passes
	c.state = statePassesInitialized
}

func (c *sceneBatchCollector) UpdateAndCollectSourceBatches(drawables []drawable.Drawable) {
	if c.state != statePassesInitialized {
		panic("batcher: UpdateAndCollectSourceBatches called out of phase order")
	}
	defer c.beginPhase("update")()

	c.drawables = drawables
	c.index.Reset(len(drawables))
	c.zRange.Clear(c.workerCount)

	c.perThread = make([]threadBatchBuffer, c.workerCount)
	for t := range c.perThread {
		c.perThread[t].base = make([][]intermediateBatch, len(c.passes))
		c.perThread[t].lit = make([][]intermediateBatch, len(c.passes))
	}

	frustum := c.frame.Camera.Frustum()
	view := c.frame.Camera.ViewMatrix()

	c.parallelFor(len(drawables), c.drawableWorkThreshold, func(threadIndex, begin, end int) {
		buf := &c.perThread[threadIndex]
		for i := begin; i < end; i++ {
			d := drawables[i]
			d.Update(c.frame.FrameNumber, c.frame.TimeStep)
			traits := TraitUpdated

			bounds := d.WorldBounds()
			if !frustum.IntersectsBox(bounds) {
				c.index.Traits[i] = traits
				continue
			}
			traits |= TraitVisibleGeometry

			minDepth, maxDepth := bounds.ViewDepthRange(view[:])
			zr := DrawableZRange{Min: minDepth, Max: maxDepth}
			c.index.ZRanges[i] = zr
			c.zRange.Accumulate(threadIndex, zr)

			traits |= c.collectDrawableBatches(buf, uint32(i), d)
			c.index.Traits[i] = traits
		}
	})

	c.state = stateSourceBatchesCollected
}

// collectDrawableBatches expands one visible drawable's source batches into
// the thread-local per-pass buffers and reports the traits it derives.
// Drawables whose material has no technique for the current quality tier are
// skipped silently.
func (c *sceneBatchCollector) collectDrawableBatches(buf *threadBatchBuffer, drawableIndex uint32, d drawable.Drawable) DrawableTrait {
	var traits DrawableTrait
	for j, sb := range d.SourceBatches() {
		if sb.Geometry == nil || sb.Material == nil {
			continue
		}
		tech := sb.Material.TechniqueForQuality(c.quality)
		if tech == nil {
			continue
		}
		for passIndex, pd := range c.passes {
			forwardLit := (pd.Type == PassTypeForwardLitBase && tech.Pass(pd.FirstLightPassName) != nil) ||
				(pd.Type == PassTypeForwardUnlitBase && tech.Pass(pd.AdditionalLightPassName) != nil)
			if forwardLit {
				traits |= TraitForwardLit
				buf.lit[passIndex] = append(buf.lit[passIndex], intermediateBatch{
					drawableIndex:    drawableIndex,
					sourceBatchIndex: uint32(j),
					technique:        tech,
				})
				continue
			}
			if basePass := tech.Pass(pd.BasePassName); basePass != nil {
				buf.base[passIndex] = append(buf.base[passIndex], intermediateBatch{
					drawableIndex:    drawableIndex,
					sourceBatchIndex: uint32(j),
					pass:             basePass,
				})
			}
		}
	}
	return traits
}

func (c *sceneBatchCollector) ProcessVisibleLights(lights []light.Light) {
	if c.state != stateSourceBatchesCollected {
		panic("batcher: ProcessVisibleLights called out of phase order")
	}
	defer c.beginPhase("lights")()

	c.lights = lights
	sceneZ := c.zRange.Get()

	// Cook serially on the orchestrating goroutine so cache mutation never
	// races with the parallel phase reading the results.
	c.lightParams = make([]*light.CookedParams, len(lights))
	for i, l := range lights {
		c.lightParams[i] = c.processor.Cook(l, c.frame.Camera, sceneZ)
	}

	c.litDrawables = make([][]uint32, len(lights))
	c.parallelFor(len(lights), c.litGeometriesWorkThreshold, func(_, begin, end int) {
		for i := begin; i < end; i++ {
			if !lights[i].Enabled() {
				continue
			}
			c.litDrawables[i] = c.querier.LitDrawables(lights[i], c.drawables, c.index.Traits)
		}
	})

	if cap(c.accumulators) < len(c.drawables) {
		c.accumulators = make([]LightAccumulator, len(c.drawables))
	} else {
		c.accumulators = c.accumulators[:len(c.drawables)]
	}
	ctx := AccumulationContext{
		MaxPixelLights:  c.maxPixelLights,
		MaxVertexLights: c.maxVertexLights,
	}
	for i := range c.drawables {
		if c.index.Traits[i].Has(TraitForwardLit) {
			c.accumulators[i].Reset(ctx)
		}
	}

	// Accumulate serially in light-index order so the resulting tiers are
	// deterministic across runs and worker counts.
	for li, l := range lights {
		for _, di := range c.litDrawables[li] {
			if !c.index.Traits[di].Has(TraitForwardLit) {
				continue
			}
			d := c.drawables[di]
			if l.LightMask()&d.LightMask() == 0 {
				continue
			}
			acc := &c.accumulators[di]
			if evicted := acc.AccumulateLight(li, l.Important(), lightPenalty(l, d)); evicted >= 0 {
				el := lights[evicted]
				acc.Ambient.AccumulateAmbient(el.Color(), el.Intensity())
			}
		}
	}

	c.state = stateLightsProcessed
}

// lightPenalty ranks a light's influence on a drawable: lower is more
// influential. Directional lights always win the distance heuristic.
func lightPenalty(l light.Light, d drawable.Drawable) float32 {
	if l.Type() == light.LightTypeDirectional {
		return 0
	}
	intensity := l.Intensity()
	if intensity < 1e-6 {
		intensity = 1e-6
	}
	return common.DistanceSquared(l.Position(), d.WorldBounds().Center()) / intensity
}

func (c *sceneBatchCollector) CollectSceneBatches() {
	if c.state != stateLightsProcessed {
		panic("batcher: CollectSceneBatches called out of phase order")
	}
	defer c.beginPhase("batches")()

	c.finalizeLightSets()

	c.baseBatches = make([][]SceneBatch, len(c.passes))
	c.lightBatches = make([][]SceneBatch, len(c.passes))
	for passIndex := range c.passes {
		c.flattenPass(passIndex)
		c.resolveStates(passIndex, c.baseBatches[passIndex], pipeline.SubpassBase)
		c.resolveStates(passIndex, c.lightBatches[passIndex], pipeline.SubpassLight)
		c.baseBatches[passIndex] = dropUnresolved(c.baseBatches[passIndex])
		c.lightBatches[passIndex] = dropUnresolved(c.lightBatches[passIndex])
	}

	c.state = stateBatchesCollected
}

// finalizeLightSets resolves every forward-lit drawable's accumulator into
// its definitive per-pixel/per-vertex light tiers. The per-pixel indices are
// kept alongside the resolved set so batch emission never has to search the
// light list.
func (c *sceneBatchCollector) finalizeLightSets() {
	c.lightSets = make([]DrawableLightSet, len(c.drawables))
	c.pixelIndices = make([][]int, len(c.drawables))
	for i := range c.drawables {
		if !c.index.Traits[i].Has(TraitForwardLit) {
			continue
		}
		acc := &c.accumulators[i]
		pixel := acc.PixelLightIndices()
		c.pixelIndices[i] = pixel
		set := DrawableLightSet{Ambient: acc.Ambient}
		for _, li := range pixel {
			set.PixelLights = append(set.PixelLights, c.lights[li])
		}
		for _, li := range acc.VertexLightIndices() {
			set.VertexLights = append(set.VertexLights, c.lights[li])
		}
		if len(set.PixelLights) > 0 {
			set.MainLight = set.PixelLights[0]
		}
		c.lightSets[i] = set
	}
}

// flattenPass merges one pass's thread-local buffers into the final batch
// lists in thread-then-insertion order. Forward-lit base batches pick the
// first-light pass when a main light exists and fall back to the unlit base
// pass otherwise; further per-pixel lights become additive light batches.
// Forward-unlit base batches always render the unlit base pass and every
// per-pixel light becomes an additive light batch.
func (c *sceneBatchCollector) flattenPass(passIndex int) {
	pd := c.passes[passIndex]

	for t := range c.perThread {
		for _, ib := range c.perThread[t].base[passIndex] {
			c.baseBatches[passIndex] = append(c.baseBatches[passIndex],
				c.makeBatch(ib, ib.pass, -1))
		}
		for _, ib := range c.perThread[t].lit[passIndex] {
			pixel := c.pixelIndices[ib.drawableIndex]

			if pd.Type == PassTypeForwardUnlitBase {
				if basePass := ib.technique.Pass(pd.BasePassName); basePass != nil {
					c.baseBatches[passIndex] = append(c.baseBatches[passIndex],
						c.makeBatch(ib, basePass, -1))
				}
				addPass := ib.technique.Pass(pd.AdditionalLightPassName)
				if addPass == nil {
					continue
				}
				for _, li := range pixel {
					c.lightBatches[passIndex] = append(c.lightBatches[passIndex],
						c.makeBatch(ib, addPass, li))
				}
				continue
			}

			if len(pixel) == 0 {
				if basePass := ib.technique.Pass(pd.BasePassName); basePass != nil {
					c.baseBatches[passIndex] = append(c.baseBatches[passIndex],
						c.makeBatch(ib, basePass, -1))
				}
				continue
			}

			firstLightPass := ib.technique.Pass(pd.FirstLightPassName)
			c.baseBatches[passIndex] = append(c.baseBatches[passIndex],
				c.makeBatch(ib, firstLightPass, pixel[0]))

			if pd.AdditionalLightPassName == "" || len(pixel) < 2 {
				continue
			}
			addPass := ib.technique.Pass(pd.AdditionalLightPassName)
			if addPass == nil {
				continue
			}
			for _, li := range pixel[1:] {
				c.lightBatches[passIndex] = append(c.lightBatches[passIndex],
					c.makeBatch(ib, addPass, li))
			}
		}
	}
}

// makeBatch builds one SceneBatch from an intermediate record.
func (c *sceneBatchCollector) makeBatch(ib intermediateBatch, pass material.Pass, lightIndex int) SceneBatch {
	d := c.drawables[ib.drawableIndex]
	sb := d.SourceBatches()[ib.sourceBatchIndex]
	batch := SceneBatch{
		DrawableIndex:    ib.drawableIndex,
		SourceBatchIndex: ib.sourceBatchIndex,
		Drawable:         d,
		Geometry:         sb.Geometry,
		Material:         sb.Material,
		Pass:             pass,
		LightIndex:       lightIndex,
	}
	if lightIndex >= 0 {
		batch.Light = c.lights[lightIndex]
	}
	return batch
}

// resolveStates assigns a pipeline state to every batch of one pass list,
// fanning out across the per-worker state builders. The deferred sub-pass is
// selected for base batches of passes carrying the mask-to-stencil flag.
func (c *sceneBatchCollector) resolveStates(passIndex int, batches []SceneBatch, subpass uint32) {
	pd := c.passes[passIndex]
	userPass := &pipeline.UserPassInfo{
		Index: uint32(passIndex),
		Flags: pd.Flags,
	}
	if subpass == pipeline.SubpassBase && pd.Flags.Has(pipeline.PassFlagDeferredLightMaskToStencil) {
		subpass = pipeline.SubpassDeferred
	}
	ctx := pipeline.BatchStateContext{
		UserPass:     userPass,
		SubpassIndex: subpass,
	}

	c.parallelFor(len(batches), c.batchWorkThreshold, func(threadIndex, begin, end int) {
		builder := c.builders[threadIndex]
		for i := begin; i < end; i++ {
			b := &batches[i]
			key := pipeline.BatchStateKey{
				DrawableIndex:    b.DrawableIndex,
				SourceBatchIndex: b.SourceBatchIndex,
				Drawable:         b.Drawable,
				Geometry:         b.Geometry,
				Material:         b.Material,
				Pass:             b.Pass,
			}
			if b.Light != nil {
				params := c.lightParams[b.LightIndex]
				key.Light = b.Light
				key.LightParams = params
				key.HasShadow = b.Light.CastsShadows() && params.ShadowSplitCount > 0
			}
			b.PipelineState = builder.CreateBatchState(key, ctx)
		}
	})
}

// dropUnresolved compacts a batch list, removing batches whose pipeline state
// did not resolve. Order of the surviving batches is preserved.
func dropUnresolved(batches []SceneBatch) []SceneBatch {
	out := batches[:0]
	for _, b := range batches {
		if b.PipelineState != nil {
			out = append(out, b)
		}
	}
	return out
}

func (c *sceneBatchCollector) BaseBatches(passIndex int) []SceneBatch {
	if c.state != stateBatchesCollected {
		panic("batcher: BaseBatches called before CollectSceneBatches")
	}
	return c.baseBatches[passIndex]
}

func (c *sceneBatchCollector) LightBatches(passIndex int) []SceneBatch {
	if c.state != stateBatchesCollected {
		panic("batcher: LightBatches called before CollectSceneBatches")
	}
	return c.lightBatches[passIndex]
}

func (c *sceneBatchCollector) CollectShadowBatches(lightIndex, splitIndex int, shadowPassName string) []SceneBatch {
	if c.state != stateLightsProcessed && c.state != stateBatchesCollected {
		panic("batcher: CollectShadowBatches called before ProcessVisibleLights")
	}
	l := c.lights[lightIndex]
	params := c.lightParams[lightIndex]
	if splitIndex < 0 || splitIndex >= params.ShadowSplitCount {
		return nil
	}

	ctx := pipeline.BatchStateContext{
		SubpassIndex:     pipeline.SubpassShadow,
		ShadowSplitIndex: splitIndex,
	}
	builder := c.builders[0]

	var batches []SceneBatch
	for _, di := range c.litDrawables[lightIndex] {
		d := c.drawables[di]
		if l.LightMask()&d.LightMask() == 0 {
			continue
		}
		for j, sb := range d.SourceBatches() {
			if sb.Geometry == nil || sb.Material == nil {
				continue
			}
			tech := sb.Material.TechniqueForQuality(c.quality)
			if tech == nil {
				continue
			}
			shadowPass := tech.Pass(shadowPassName)
			if shadowPass == nil {
				continue
			}
			key := pipeline.BatchStateKey{
				DrawableIndex:    di,
				SourceBatchIndex: uint32(j),
				Drawable:         d,
				Geometry:         sb.Geometry,
				Material:         sb.Material,
				Pass:             shadowPass,
				Light:            l,
				LightParams:      params,
				HasShadow:        true,
			}
			state := builder.CreateBatchState(key, ctx)
			if state == nil {
				continue
			}
			batches = append(batches, SceneBatch{
				DrawableIndex:    di,
				SourceBatchIndex: uint32(j),
				Drawable:         d,
				Geometry:         sb.Geometry,
				Material:         sb.Material,
				Pass:             shadowPass,
				Light:            l,
				LightIndex:       lightIndex,
				PipelineState:    state,
			})
		}
	}
	return batches
}

func (c *sceneBatchCollector) CollectLightVolumeBatches(geometry drawable.Geometry, volumePass material.Pass) []SceneBatch {
	if c.state != stateLightsProcessed && c.state != stateBatchesCollected {
		panic("batcher: CollectLightVolumeBatches called before ProcessVisibleLights")
	}
	ctx := pipeline.BatchStateContext{SubpassIndex: pipeline.SubpassLitVolume}
	builder := c.builders[0]

	var batches []SceneBatch
	for li, l := range c.lights {
		if !l.Enabled() {
			continue
		}
		params := c.lightParams[li]
		key := pipeline.BatchStateKey{
			Geometry:    geometry,
			Pass:        volumePass,
			Light:       l,
			LightParams: params,
			HasShadow:   l.CastsShadows() && params.ShadowSplitCount > 0,
		}
		state := builder.CreateBatchState(key, ctx)
		if state == nil {
			continue
		}
		batches = append(batches, SceneBatch{
			Geometry:      geometry,
			Pass:          volumePass,
			Light:         l,
			LightIndex:    li,
			PipelineState: state,
		})
	}
	return batches
}

func (c *sceneBatchCollector) SceneZRange() DrawableZRange {
	if c.state < stateSourceBatchesCollected {
		panic("batcher: SceneZRange called before UpdateAndCollectSourceBatches")
	}
	return c.zRange.Get()
}

func (c *sceneBatchCollector) DrawableLights(drawableIndex uint32) (DrawableLightSet, bool) {
	if c.state != stateBatchesCollected {
		panic("batcher: DrawableLights called before CollectSceneBatches")
	}
	if !c.index.Traits[drawableIndex].Has(TraitForwardLit) {
		return DrawableLightSet{}, false
	}
	return c.lightSets[drawableIndex], true
}

func (c *sceneBatchCollector) PruneLightCache() int {
	return c.processor.Prune(c.lights)
}

// beginPhase starts an optional profiler phase and returns its stop function.
func (c *sceneBatchCollector) beginPhase(name string) func() {
	if c.prof == nil {
		return func() {}
	}
	return c.prof.BeginPhase(name)
}

// parallelFor fans a half-open index range out across the worker pool in
// contiguous chunks, one per worker slot, and joins before returning. Work
// below the threshold (or with a single worker) runs inline on the calling
// goroutine as thread index 0.
func (c *sceneBatchCollector) parallelFor(count, threshold int, fn func(threadIndex, begin, end int)) {
	if count == 0 {
		return
	}
	if c.workerCount <= 1 || count < threshold {
		fn(0, 0, count)
		return
	}

	chunk := (count + c.workerCount - 1) / c.workerCount
	var wg sync.WaitGroup
	taskID := 0
	for t := 0; t < c.workerCount && t*chunk < count; t++ {
		begin := t * chunk
		end := min(begin+chunk, count)

		wg.Add(1)
		threadIndex := t
		id := taskID
		taskID++
		c.pool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()
				fn(threadIndex, begin, end)
				return nil, nil
			},
		})
	}
	wg.Wait()
}
