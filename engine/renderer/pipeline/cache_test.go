package pipeline

import (
	"testing"

	"github.com/Carmen-Shannon/strata-go/common"
	"github.com/cogentcore/webgpu/wgpu"
)

func TestStateCacheGetOrCreate(t *testing.T) {
	cache := NewStateCache()

	desc := StateDescription{
		ColorWriteEnabled:    true,
		BlendMode:            common.BlendAlpha,
		CullMode:             common.CullCCW,
		DepthCompareFunction: wgpu.CompareFunctionLessEqual,
	}

	first := cache.GetOrCreate(desc)
	second := cache.GetOrCreate(desc)
	if first != second {
		t.Error("structurally equal descriptions resolved to distinct states")
	}
	if cache.Len() != 1 {
		t.Errorf("Len() = %d, want 1", cache.Len())
	}

	desc.BlendMode = common.BlendAdd
	third := cache.GetOrCreate(desc)
	if third == first {
		t.Error("distinct descriptions resolved to the same state")
	}
	if cache.Len() != 2 {
		t.Errorf("Len() = %d, want 2", cache.Len())
	}

	if got := cache.State(first.Key()); got != first {
		t.Errorf("State(key) = %v, want the cached state", got)
	}
	if got := cache.State("no such key"); got != nil {
		t.Errorf("State(unknown) = %v, want nil", got)
	}
}

func TestStateCacheCopiesVertexLayouts(t *testing.T) {
	cache := NewStateCache()

	layouts := []wgpu.VertexBufferLayout{{ArrayStride: 12}}
	state := cache.GetOrCreate(StateDescription{VertexLayouts: layouts})

	// Mutating the caller's slice must not reach the cached description.
	layouts[0].ArrayStride = 99
	if got := state.Description().VertexLayouts[0].ArrayStride; got != 12 {
		t.Errorf("cached layout stride = %d, want 12", got)
	}
}

func TestStateDescriptionKeyDistinguishesFields(t *testing.T) {
	base := StateDescription{ColorWriteEnabled: true, CullMode: common.CullCW}

	tests := []struct {
		name   string
		mutate func(*StateDescription)
	}{
		{name: "blend mode", mutate: func(d *StateDescription) { d.BlendMode = common.BlendSubtract }},
		{name: "cull mode", mutate: func(d *StateDescription) { d.CullMode = common.CullCCW }},
		{name: "depth bias", mutate: func(d *StateDescription) { d.ConstantDepthBias = 1.5 }},
		{name: "stencil reference", mutate: func(d *StateDescription) { d.StencilReferenceValue = 7 }},
		{name: "topology", mutate: func(d *StateDescription) { d.Topology = wgpu.PrimitiveTopologyLineList }},
		{name: "vertex layout", mutate: func(d *StateDescription) {
			d.VertexLayouts = []wgpu.VertexBufferLayout{{ArrayStride: 8}}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			changed := base
			tt.mutate(&changed)
			if base.Key() == changed.Key() {
				t.Error("mutated description produced an identical key")
			}
		})
	}
}

func TestRenderPipelineDescriptor(t *testing.T) {
	cache := NewStateCache()
	state := cache.GetOrCreate(StateDescription{
		ColorWriteEnabled:      true,
		BlendMode:              common.BlendAdd,
		CullMode:               common.CullCW,
		DepthWriteEnabled:      true,
		DepthCompareFunction:   wgpu.CompareFunctionLessEqual,
		AlphaToCoverageEnabled: true,
		ConstantDepthBias:      3,
		SlopeScaledDepthBias:   0.75,
	})

	desc := state.RenderPipelineDescriptor(nil, nil, wgpu.TextureFormatBGRA8Unorm, wgpu.TextureFormatDepth24PlusStencil8)

	if desc.Fragment != nil {
		t.Error("fragment state present without a resolved pixel shader")
	}
	if desc.Primitive.CullMode != wgpu.CullModeBack || desc.Primitive.FrontFace != wgpu.FrontFaceCCW {
		t.Errorf("primitive culling = (%v, %v), want (Back, CCW) for CullCW", desc.Primitive.CullMode, desc.Primitive.FrontFace)
	}
	if !desc.Multisample.AlphaToCoverageEnabled {
		t.Error("alpha-to-coverage not forwarded to the multisample state")
	}
	ds := desc.DepthStencil
	if ds == nil || !ds.DepthWriteEnabled || ds.DepthCompare != wgpu.CompareFunctionLessEqual {
		t.Fatal("depth state not forwarded to the descriptor")
	}
	if ds.DepthBias != 3 || ds.DepthBiasSlopeScale != 0.75 {
		t.Errorf("depth bias = (%d, %v), want (3, 0.75)", ds.DepthBias, ds.DepthBiasSlopeScale)
	}
}
