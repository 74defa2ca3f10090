package batcher

import "testing"

func TestTransientDrawableIndexReset(t *testing.T) {
	var idx TransientDrawableIndex

	idx.Reset(8)
	if len(idx.Traits) != 8 || len(idx.ZRanges) != 8 {
		t.Fatalf("Reset(8) sized arrays to %d/%d, want 8/8", len(idx.Traits), len(idx.ZRanges))
	}
	for i := range 8 {
		if idx.Traits[i] != 0 {
			t.Errorf("trait %d = %v, want 0", i, idx.Traits[i])
		}
		if idx.ZRanges[i].Defined() {
			t.Errorf("z-range %d is defined after Reset", i)
		}
	}

	// Dirty the entries, shrink, and grow back: old values must not leak.
	idx.Traits[3] = TraitUpdated | TraitForwardLit
	idx.ZRanges[3] = DrawableZRange{Min: 1, Max: 2}
	idx.Reset(2)
	idx.Reset(8)
	if idx.Traits[3] != 0 || idx.ZRanges[3].Defined() {
		t.Error("Reset leaked previous frame state")
	}
}

func TestDrawableTraitHas(t *testing.T) {
	traits := TraitUpdated | TraitVisibleGeometry
	if !traits.Has(TraitUpdated) || !traits.Has(TraitVisibleGeometry) {
		t.Error("Has missed a set trait")
	}
	if traits.Has(TraitForwardLit) {
		t.Error("Has reported an unset trait")
	}
	if !traits.Has(TraitUpdated | TraitVisibleGeometry) {
		t.Error("Has must require all bits of a combined mask")
	}
	if traits.Has(TraitUpdated | TraitForwardLit) {
		t.Error("Has must fail when any bit of a combined mask is unset")
	}
}
