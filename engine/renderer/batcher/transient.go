package batcher

// DrawableTrait is a bitmask of per-frame derived drawable flags. Traits are
// written once per drawable per frame during source-batch collection and
// never persisted across frames.
type DrawableTrait uint8

const (
	// TraitUpdated marks a drawable whose Update hook ran this frame.
	TraitUpdated DrawableTrait = 1 << iota
	// TraitVisibleGeometry marks a drawable inside the camera frustum.
	TraitVisibleGeometry
	// TraitForwardLit marks a drawable that participates in forward light
	// accumulation this frame.
	TraitForwardLit
)

// Has reports whether all bits of trait are set.
//
// Parameters:
//   - trait: the trait bits to test
//
// Returns:
//   - bool: true if every bit of trait is set
func (t DrawableTrait) Has(trait DrawableTrait) bool {
	return t&trait == trait
}

// TransientDrawableIndex holds per-frame derived drawable state: one trait
// bitmask and one view-space depth range per drawable, indexed by the dense
// drawable index of the frame's drawable list. The collector owns it
// exclusively for the frame's lifetime.
type TransientDrawableIndex struct {
	Traits  []DrawableTrait
	ZRanges []DrawableZRange
}

// Reset sizes both arrays to exactly numDrawables entries with all traits
// cleared and all depth ranges undefined.
//
// Parameters:
//   - numDrawables: the drawable count for the frame
func (idx *TransientDrawableIndex) Reset(numDrawables int) {
	if cap(idx.Traits) < numDrawables {
		idx.Traits = make([]DrawableTrait, numDrawables)
		idx.ZRanges = make([]DrawableZRange, numDrawables)
	} else {
		idx.Traits = idx.Traits[:numDrawables]
		idx.ZRanges = idx.ZRanges[:numDrawables]
	}
	for i := range numDrawables {
		idx.Traits[i] = 0
		idx.ZRanges[i] = UndefinedZRange()
	}
}
