package shader

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
)

func TestCacheResolveMemoizes(t *testing.T) {
	compiles := 0
	c := NewCache(func(stage Stage, name, defines string) *wgpu.ShaderModuleDescriptor {
		compiles++
		return &wgpu.ShaderModuleDescriptor{Label: name}
	})

	first := c.Resolve(StageVertex, "LitSolid", "PERPIXEL")
	second := c.Resolve(StageVertex, "LitSolid", "PERPIXEL")
	if first == nil {
		t.Fatal("Resolve returned nil for a compilable shader")
	}
	if first != second {
		t.Error("repeated Resolve returned a different handle")
	}
	if compiles != 1 {
		t.Errorf("compile ran %d times, want 1", compiles)
	}

	// Different defines are a different variation.
	other := c.Resolve(StageVertex, "LitSolid", "PERPIXEL SHADOW")
	if other == first {
		t.Error("distinct defines resolved to the same handle")
	}
	if compiles != 2 {
		t.Errorf("compile ran %d times, want 2", compiles)
	}
}

func TestCacheResolveRecordsMisses(t *testing.T) {
	compiles := 0
	c := NewCache(func(stage Stage, name, defines string) *wgpu.ShaderModuleDescriptor {
		compiles++
		return nil
	})

	if got := c.Resolve(StagePixel, "Missing", ""); got != nil {
		t.Errorf("Resolve(missing) = %v, want nil", got)
	}
	if got := c.Resolve(StagePixel, "Missing", ""); got != nil {
		t.Errorf("second Resolve(missing) = %v, want nil", got)
	}
	if compiles != 1 {
		t.Errorf("compile ran %d times for a recorded miss, want 1", compiles)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1 (the recorded miss)", c.Len())
	}
}

func TestCacheResolveEmptyName(t *testing.T) {
	c := NewCache(func(Stage, string, string) *wgpu.ShaderModuleDescriptor {
		t.Fatal("compile must not run for an empty name")
		return nil
	})
	if got := c.Resolve(StageVertex, "", "DEFINES"); got != nil {
		t.Errorf("Resolve with empty name = %v, want nil", got)
	}
}

func TestVariationKeyDistinguishesStages(t *testing.T) {
	if variationKey(StageVertex, "a", "b") == variationKey(StagePixel, "a", "b") {
		t.Error("vertex and pixel variations share a cache key")
	}
}
