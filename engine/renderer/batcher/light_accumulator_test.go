package batcher

import "testing"

func TestAccumulateLightOrdering(t *testing.T) {
	var acc LightAccumulator
	acc.Reset(AccumulationContext{MaxPixelLights: 2, MaxVertexLights: 2})

	acc.AccumulateLight(0, false, 30)
	acc.AccumulateLight(1, false, 10)
	acc.AccumulateLight(2, false, 20)

	if got := acc.MainLightIndex(); got != 1 {
		t.Errorf("MainLightIndex() = %d, want 1 (lowest penalty)", got)
	}
	pixel := acc.PixelLightIndices()
	if len(pixel) != 2 || pixel[0] != 1 || pixel[1] != 2 {
		t.Errorf("PixelLightIndices() = %v, want [1 2]", pixel)
	}
	vertex := acc.VertexLightIndices()
	if len(vertex) != 1 || vertex[0] != 0 {
		t.Errorf("VertexLightIndices() = %v, want [0]", vertex)
	}
}

func TestAccumulateLightImportant(t *testing.T) {
	var acc LightAccumulator
	acc.Reset(AccumulationContext{MaxPixelLights: 2, MaxVertexLights: 1})

	// Three important lights exceed maxPixelLights; the split boundary must
	// widen to hold all of them.
	acc.AccumulateLight(0, false, 1)
	acc.AccumulateLight(1, true, 99)
	acc.AccumulateLight(2, true, 99)
	acc.AccumulateLight(3, true, 99)

	if got := acc.FirstVertexLight(); got != 3 {
		t.Errorf("FirstVertexLight() = %d, want max(maxPixelLights, importantCount) = 3", got)
	}
	pixel := acc.PixelLightIndices()
	if len(pixel) != 3 {
		t.Fatalf("per-pixel tier size = %d, want 3", len(pixel))
	}
	for i, li := range pixel {
		if li == 0 {
			t.Errorf("non-important light 0 at per-pixel rank %d ahead of important lights", i)
		}
	}
	// Important lights keep insertion order among themselves.
	if pixel[0] != 1 || pixel[1] != 2 || pixel[2] != 3 {
		t.Errorf("per-pixel tier = %v, want [1 2 3]", pixel)
	}

	// Size bound: max(maxPixelLights, important) + maxVertexLights.
	if got := acc.Len(); got > 4 {
		t.Errorf("Len() = %d, want at most 4", got)
	}
}

func TestAccumulateLightEviction(t *testing.T) {
	var acc LightAccumulator
	acc.Reset(AccumulationContext{MaxPixelLights: 2, MaxVertexLights: 2})

	// Fill to capacity (2 + 2).
	for i, penalty := range []float32{10, 20, 30, 40} {
		if evicted := acc.AccumulateLight(i, false, penalty); evicted != -1 {
			t.Fatalf("eviction before capacity exceeded, got %d", evicted)
		}
	}

	// A more influential light evicts the current worst entry.
	if evicted := acc.AccumulateLight(4, false, 5); evicted != 3 {
		t.Errorf("evicted = %d, want 3 (the highest penalty)", evicted)
	}
	if got := acc.MainLightIndex(); got != 4 {
		t.Errorf("MainLightIndex() = %d, want the newly inserted light", got)
	}
	if got := acc.Len(); got != 4 {
		t.Errorf("Len() = %d, want 4 after eviction", got)
	}

	// A light worse than everything retained evicts itself.
	if evicted := acc.AccumulateLight(5, false, 100); evicted != 5 {
		t.Errorf("evicted = %d, want 5 (the new worst light)", evicted)
	}
}

func TestAccumulateLightTieBreak(t *testing.T) {
	var acc LightAccumulator
	acc.Reset(AccumulationContext{MaxPixelLights: 4, MaxVertexLights: 0})

	acc.AccumulateLight(7, false, 1)
	acc.AccumulateLight(8, false, 1)
	acc.AccumulateLight(9, false, 1)

	pixel := acc.PixelLightIndices()
	if len(pixel) != 3 || pixel[0] != 7 || pixel[1] != 8 || pixel[2] != 9 {
		t.Errorf("equal penalties reordered: %v, want [7 8 9]", pixel)
	}
}

func TestAccumulatorResetClearsState(t *testing.T) {
	var acc LightAccumulator
	ctx := AccumulationContext{MaxPixelLights: 1, MaxVertexLights: 0}
	acc.Reset(ctx)

	acc.AccumulateLight(0, true, 0)
	acc.Ambient.AccumulateAmbient([3]float32{1, 1, 1}, 2)

	acc.Reset(ctx)
	if acc.Len() != 0 {
		t.Errorf("Len() = %d after Reset, want 0", acc.Len())
	}
	if acc.FirstVertexLight() != 1 {
		t.Errorf("FirstVertexLight() = %d after Reset, want maxPixelLights", acc.FirstVertexLight())
	}
	if acc.Ambient.Coefficients[0] != [3]float32{} {
		t.Error("ambient term not cleared by Reset")
	}
	if acc.MainLightIndex() != -1 {
		t.Errorf("MainLightIndex() = %d on empty accumulator, want -1", acc.MainLightIndex())
	}
}
