package batcher

import (
	"testing"

	"github.com/Carmen-Shannon/strata-go/common"
	"github.com/Carmen-Shannon/strata-go/engine/camera"
	"github.com/Carmen-Shannon/strata-go/engine/light"
	"github.com/Carmen-Shannon/strata-go/engine/renderer/drawable"
	"github.com/Carmen-Shannon/strata-go/engine/renderer/material"
	"github.com/Carmen-Shannon/strata-go/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/strata-go/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

func newTestCollector(workers int, opts ...CollectorBuilderOption) Collector {
	shaders := shader.NewCache(func(stage shader.Stage, name, defines string) *wgpu.ShaderModuleDescriptor {
		return &wgpu.ShaderModuleDescriptor{Label: name}
	})
	states := pipeline.NewStateCache()
	factory := func(cam camera.Camera) pipeline.StateBuilder {
		return pipeline.NewStateBuilder(shaders, states, pipeline.WithCamera(cam))
	}
	return NewSceneBatchCollector(factory,
		append([]CollectorBuilderOption{WithWorkerCount(workers)}, opts...)...)
}

func litTestMaterial() material.Material {
	return material.NewMaterial(
		material.WithTechniques(material.NewTechnique(0,
			material.NewPass("base", material.WithShaders("LitSolid", "LitSolid")),
			material.NewPass("light", material.WithShaders("LitSolid", "LitSolid"),
				material.WithBlendMode(common.BlendAdd), material.WithDepthWrite(false)),
			material.NewPass("shadow", material.WithShaders("Shadow", "")),
		)),
	)
}

// gridDrawables lays a 3x3 unit-box grid flat around the origin, fully inside
// the test camera's frustum.
func gridDrawables(mat material.Material) []drawable.Drawable {
	geo := drawable.NewGeometry("box")
	var out []drawable.Drawable
	for gx := range 3 {
		for gz := range 3 {
			x := float32(gx-1) * 2
			z := float32(gz-1) * 2
			out = append(out, drawable.NewDrawable(
				drawable.WithWorldBounds(common.NewBoundingBox(x-0.5, -0.5, z-0.5, x+0.5, 0.5, z+0.5)),
				drawable.WithSourceBatches(drawable.SourceBatch{Geometry: geo, Material: mat}),
			))
		}
	}
	return out
}

func forwardLitPass() ScenePassDescription {
	return ScenePassDescription{
		Type:                    PassTypeForwardLitBase,
		BasePassName:            "base",
		FirstLightPassName:      "light",
		AdditionalLightPassName: "light",
	}
}

func runFrame(c Collector, drawables []drawable.Drawable, lights []light.Light, passes ...ScenePassDescription) {
	c.InitializeFrame(FrameInfo{FrameNumber: 1, TimeStep: 1.0 / 60.0, Camera: testCamera()})
	c.InitializePasses(passes...)
	c.UpdateAndCollectSourceBatches(drawables)
	c.ProcessVisibleLights(lights)
	c.CollectSceneBatches()
}

func TestCollectorEndToEnd(t *testing.T) {
	c := newTestCollector(1)
	drawables := gridDrawables(litTestMaterial())
	lights := []light.Light{
		light.NewLight(light.LightTypePoint, light.WithPosition(0, 1, 0), light.WithRange(50)),
		light.NewLight(light.LightTypePoint, light.WithPosition(10, 1, 0), light.WithRange(50)),
	}

	runFrame(c, drawables, lights, forwardLitPass())

	base := c.BaseBatches(0)
	if len(base) != len(drawables) {
		t.Fatalf("base batches = %d, want one per drawable (%d)", len(base), len(drawables))
	}
	for i, b := range base {
		if b.PipelineState == nil {
			t.Fatalf("batch %d has no pipeline state", i)
		}
		if b.Light == nil || b.Pass.Name() != "light" {
			t.Errorf("batch %d not rendered with the first-light pass: light=%v pass=%q", i, b.Light, b.Pass.Name())
		}
	}

	// Both lights reach every drawable, so each lit drawable gets one
	// additional per-pixel light batch.
	lit := c.LightBatches(0)
	if len(lit) != len(drawables) {
		t.Errorf("light batches = %d, want %d", len(lit), len(drawables))
	}
	for i, b := range lit {
		if b.Light == nil || b.PipelineState == nil {
			t.Errorf("light batch %d incomplete: light=%v state=%v", i, b.Light, b.PipelineState)
		}
	}

	// The grid spans z in [-2.5, 2.5] seen from a camera at z=10, so view
	// depth covers [7.5, 12.5].
	zRange := c.SceneZRange()
	if !zRange.Defined() {
		t.Fatal("scene z-range undefined with visible drawables")
	}
	if zRange.Min < 7.4 || zRange.Min > 7.6 || zRange.Max < 12.4 || zRange.Max > 12.6 {
		t.Errorf("scene z-range = [%v, %v], want about [7.5, 12.5]", zRange.Min, zRange.Max)
	}

	for i := range drawables {
		set, ok := c.DrawableLights(uint32(i))
		if !ok {
			t.Fatalf("drawable %d not forward-lit", i)
		}
		if set.MainLight != lights[0] {
			t.Errorf("drawable %d main light = %v, want the nearer light", i, set.MainLight)
		}
		if len(set.PixelLights) != 2 {
			t.Errorf("drawable %d pixel lights = %d, want 2", i, len(set.PixelLights))
		}
	}
}

func TestCollectorDeterministicAcrossWorkerCounts(t *testing.T) {
	mat := litTestMaterial()
	lights := []light.Light{
		light.NewLight(light.LightTypePoint, light.WithPosition(0, 1, 0), light.WithRange(50)),
		light.NewLight(light.LightTypePoint, light.WithPosition(5, 1, 0), light.WithRange(50)),
	}

	type batchIdentity struct {
		drawable   uint32
		source     uint32
		lightIndex int
		pass       string
	}
	collect := func(workers int) (base, lit []batchIdentity) {
		c := newTestCollector(workers, WithWorkThresholds(1, 1, 1))
		runFrame(c, gridDrawables(mat), lights, forwardLitPass())
		for _, b := range c.BaseBatches(0) {
			base = append(base, batchIdentity{b.DrawableIndex, b.SourceBatchIndex, b.LightIndex, b.Pass.Name()})
		}
		for _, b := range c.LightBatches(0) {
			lit = append(lit, batchIdentity{b.DrawableIndex, b.SourceBatchIndex, b.LightIndex, b.Pass.Name()})
		}
		return base, lit
	}

	baseInline, litInline := collect(1)
	baseParallel, litParallel := collect(4)

	if len(baseInline) != len(baseParallel) {
		t.Fatalf("base batch count differs: %d inline vs %d parallel", len(baseInline), len(baseParallel))
	}
	for i := range baseInline {
		if baseInline[i] != baseParallel[i] {
			t.Errorf("base batch %d differs: %+v vs %+v", i, baseInline[i], baseParallel[i])
		}
	}
	if len(litInline) != len(litParallel) {
		t.Fatalf("light batch count differs: %d inline vs %d parallel", len(litInline), len(litParallel))
	}
	for i := range litInline {
		if litInline[i] != litParallel[i] {
			t.Errorf("light batch %d differs: %+v vs %+v", i, litInline[i], litParallel[i])
		}
	}
}

func TestCollectorSkipsDrawablesWithoutTechnique(t *testing.T) {
	c := newTestCollector(1)
	bare := material.NewMaterial() // no techniques at all
	geo := drawable.NewGeometry("box")
	drawables := []drawable.Drawable{
		drawable.NewDrawable(
			drawable.WithWorldBounds(common.NewBoundingBox(-0.5, -0.5, -0.5, 0.5, 0.5, 0.5)),
			drawable.WithSourceBatches(drawable.SourceBatch{Geometry: geo, Material: bare}),
		),
	}

	runFrame(c, drawables, nil, forwardLitPass())

	if got := len(c.BaseBatches(0)); got != 0 {
		t.Errorf("base batches = %d for a material without techniques, want 0", got)
	}
}

func TestCollectorCullsDrawablesBehindCamera(t *testing.T) {
	c := newTestCollector(1)
	mat := litTestMaterial()
	geo := drawable.NewGeometry("box")
	drawables := []drawable.Drawable{
		drawable.NewDrawable(
			drawable.WithWorldBounds(common.NewBoundingBox(-0.5, -0.5, -0.5, 0.5, 0.5, 0.5)),
			drawable.WithSourceBatches(drawable.SourceBatch{Geometry: geo, Material: mat}),
		),
		// Behind the camera at z=10 looking toward -z.
		drawable.NewDrawable(
			drawable.WithWorldBounds(common.NewBoundingBox(-0.5, -0.5, 19.5, 0.5, 0.5, 20.5)),
			drawable.WithSourceBatches(drawable.SourceBatch{Geometry: geo, Material: mat}),
		),
	}

	runFrame(c, drawables, nil, forwardLitPass())

	base := c.BaseBatches(0)
	if len(base) != 1 || base[0].DrawableIndex != 0 {
		t.Errorf("base batches = %v, want only the drawable in front of the camera", base)
	}
}

func TestCollectorUnlitPass(t *testing.T) {
	c := newTestCollector(1)
	drawables := gridDrawables(litTestMaterial())
	lights := []light.Light{light.NewLight(light.LightTypePoint, light.WithPosition(0, 1, 0), light.WithRange(50))}

	runFrame(c, drawables, lights, ScenePassDescription{Type: PassTypeUnlit, BasePassName: "base"})

	base := c.BaseBatches(0)
	if len(base) != len(drawables) {
		t.Fatalf("base batches = %d, want %d", len(base), len(drawables))
	}
	for i, b := range base {
		if b.Light != nil || b.Pass.Name() != "base" {
			t.Errorf("unlit batch %d carries lighting: light=%v pass=%q", i, b.Light, b.Pass.Name())
		}
	}
	if got := len(c.LightBatches(0)); got != 0 {
		t.Errorf("light batches = %d for an unlit pass, want 0", got)
	}
}

func TestCollectorForwardUnlitBasePass(t *testing.T) {
	c := newTestCollector(1)
	drawables := gridDrawables(litTestMaterial())
	lights := []light.Light{
		light.NewLight(light.LightTypePoint, light.WithPosition(0, 1, 0), light.WithRange(50)),
		light.NewLight(light.LightTypePoint, light.WithPosition(5, 1, 0), light.WithRange(50)),
	}

	runFrame(c, drawables, lights, ScenePassDescription{
		Type:                    PassTypeForwardUnlitBase,
		BasePassName:            "base",
		AdditionalLightPassName: "light",
	})

	// The base pass stays unlit even though the drawables accumulate lights.
	base := c.BaseBatches(0)
	if len(base) != len(drawables) {
		t.Fatalf("base batches = %d, want %d", len(base), len(drawables))
	}
	for i, b := range base {
		if b.Light != nil || b.Pass.Name() != "base" {
			t.Errorf("base batch %d carries lighting: light=%v pass=%q", i, b.Light, b.Pass.Name())
		}
	}

	// Every per-pixel light, the dominant one included, renders additively.
	lit := c.LightBatches(0)
	if want := len(drawables) * len(lights); len(lit) != want {
		t.Fatalf("light batches = %d, want %d (one per drawable per light)", len(lit), want)
	}
	for i, b := range lit {
		if b.Pass.Name() != "light" || b.PipelineState == nil {
			t.Errorf("light batch %d incomplete: pass=%q state=%v", i, b.Pass.Name(), b.PipelineState)
		}
		if b.LightIndex < 0 || b.Light != lights[b.LightIndex] {
			t.Errorf("light batch %d index mismatch: index=%d light=%v", i, b.LightIndex, b.Light)
		}
	}

	set, ok := c.DrawableLights(0)
	if !ok {
		t.Fatal("drawable not forward-lit under a forward unlit base pass")
	}
	if len(set.PixelLights) != 2 {
		t.Errorf("pixel lights = %d, want 2", len(set.PixelLights))
	}
}

func TestCollectorLightMaskFiltering(t *testing.T) {
	c := newTestCollector(1)
	mat := litTestMaterial()
	geo := drawable.NewGeometry("box")
	drawables := []drawable.Drawable{
		drawable.NewDrawable(
			drawable.WithWorldBounds(common.NewBoundingBox(-0.5, -0.5, -0.5, 0.5, 0.5, 0.5)),
			drawable.WithLightMask(0x2),
			drawable.WithSourceBatches(drawable.SourceBatch{Geometry: geo, Material: mat}),
		),
	}
	lights := []light.Light{
		light.NewLight(light.LightTypePoint, light.WithPosition(0, 1, 0), light.WithRange(50), light.WithLightMask(0x1)),
	}

	runFrame(c, drawables, lights, forwardLitPass())

	set, ok := c.DrawableLights(0)
	if !ok {
		t.Fatal("drawable with a lit technique must still be forward-lit")
	}
	if set.MainLight != nil {
		t.Errorf("main light = %v despite disjoint masks, want nil", set.MainLight)
	}

	// Without a main light the batch falls back to the unlit base pass.
	base := c.BaseBatches(0)
	if len(base) != 1 {
		t.Fatalf("base batches = %d, want 1", len(base))
	}
	if base[0].Light != nil || base[0].Pass.Name() != "base" {
		t.Errorf("fallback batch = light %v pass %q, want unlit base", base[0].Light, base[0].Pass.Name())
	}
}

func TestCollectorImportantLightWinsMainSlot(t *testing.T) {
	c := newTestCollector(1, WithLightBudget(1, 0))
	drawables := gridDrawables(litTestMaterial())
	near := light.NewLight(light.LightTypePoint, light.WithPosition(0, 1, 0), light.WithRange(50))
	farImportant := light.NewLight(light.LightTypePoint,
		light.WithPosition(30, 1, 0), light.WithRange(100), light.WithImportant(true))

	runFrame(c, drawables, []light.Light{near, farImportant}, forwardLitPass())

	set, ok := c.DrawableLights(0)
	if !ok {
		t.Fatal("drawable not forward-lit")
	}
	if set.MainLight != farImportant {
		t.Errorf("main light = %v, want the important light regardless of distance", set.MainLight)
	}
	if len(set.PixelLights) != 1 {
		t.Errorf("pixel lights = %d with a budget of 1, want 1", len(set.PixelLights))
	}
	// The evicted light folded into the ambient term.
	if set.Ambient.Coefficients[0] == [3]float32{} {
		t.Error("evicted light left no ambient contribution")
	}
}

func TestCollectorShadowBatches(t *testing.T) {
	c := newTestCollector(1)
	drawables := gridDrawables(litTestMaterial())
	sun := light.NewLight(light.LightTypeDirectional, light.WithCastsShadows(true))

	runFrame(c, drawables, []light.Light{sun}, forwardLitPass())

	batches := c.CollectShadowBatches(0, 0, "shadow")
	if len(batches) != len(drawables) {
		t.Fatalf("shadow batches = %d, want one per lit drawable (%d)", len(batches), len(drawables))
	}
	for i, b := range batches {
		if b.PipelineState == nil || b.Pass.Name() != "shadow" || b.Light != sun {
			t.Errorf("shadow batch %d incomplete: %+v", i, b)
		}
		if b.PipelineState.Description().ColorWriteEnabled {
			t.Errorf("shadow batch %d has color writes enabled", i)
		}
	}

	if got := c.CollectShadowBatches(0, light.MaxShadowSplits, "shadow"); got != nil {
		t.Errorf("out-of-range split produced %d batches, want none", len(got))
	}
}

func TestCollectorLightVolumeBatches(t *testing.T) {
	c := newTestCollector(1)
	drawables := gridDrawables(litTestMaterial())
	lights := []light.Light{
		light.NewLight(light.LightTypePoint, light.WithPosition(0, 1, 0), light.WithRange(50)),
		light.NewLight(light.LightTypeSpot, light.WithPosition(2, 1, 0), light.WithRange(20), light.WithEnabled(false)),
		light.NewLight(light.LightTypeDirectional),
	}

	runFrame(c, drawables, lights, forwardLitPass())

	volume := drawable.NewGeometry("light sphere")
	volumePass := material.NewPass("litvolume", material.WithShaders("DeferredLight", "DeferredLight"))
	batches := c.CollectLightVolumeBatches(volume, volumePass)

	if len(batches) != 2 {
		t.Fatalf("light volume batches = %d, want 2 (disabled light skipped)", len(batches))
	}
	if batches[0].Light != lights[0] || batches[1].Light != lights[2] {
		t.Error("light volume batches out of light-index order")
	}
	for i, b := range batches {
		desc := b.PipelineState.Description()
		if !desc.StencilTestEnabled || desc.StencilCompareFunction != wgpu.CompareFunctionNotEqual {
			t.Errorf("volume batch %d missing light stenciling", i)
		}
	}
}

func TestCollectorPhaseOrderPanics(t *testing.T) {
	tests := []struct {
		name string
		run  func(Collector)
	}{
		{name: "collect before frame", run: func(c Collector) {
			c.UpdateAndCollectSourceBatches(nil)
		}},
		{name: "passes before frame", run: func(c Collector) {
			c.InitializePasses(forwardLitPass())
		}},
		{name: "lights before collect", run: func(c Collector) {
			c.InitializeFrame(FrameInfo{FrameNumber: 1, Camera: testCamera()})
			c.InitializePasses(forwardLitPass())
			c.ProcessVisibleLights(nil)
		}},
		{name: "nil camera", run: func(c Collector) {
			c.InitializeFrame(FrameInfo{FrameNumber: 1})
		}},
		{name: "forward unlit without additional pass", run: func(c Collector) {
			c.InitializeFrame(FrameInfo{FrameNumber: 1, Camera: testCamera()})
			c.InitializePasses(ScenePassDescription{Type: PassTypeForwardUnlitBase, BasePassName: "base"})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected a panic for out-of-order phases")
				}
			}()
			tt.run(newTestCollector(1))
		})
	}
}
