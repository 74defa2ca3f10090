package batcher

import "math"

// DrawableZRange is a closed view-space depth interval [Min, Max]. The zero
// interval is not used; an empty range is represented by the undefined
// sentinel where Min > Max.
type DrawableZRange struct {
	Min float32
	Max float32
}

// UndefinedZRange creates the empty-range sentinel. Any union with it returns
// the other operand unchanged.
//
// Returns:
//   - DrawableZRange: the undefined range with Min > Max
func UndefinedZRange() DrawableZRange {
	return DrawableZRange{
		Min: float32(math.Inf(1)),
		Max: float32(math.Inf(-1)),
	}
}

// Defined reports whether the range covers any depth at all.
//
// Returns:
//   - bool: true unless the range is the undefined sentinel
func (r DrawableZRange) Defined() bool {
	return r.Min <= r.Max
}

// Union combines two ranges. The operation is commutative and associative,
// and the undefined sentinel is its identity element.
//
// Parameters:
//   - other: the range to combine with
//
// Returns:
//   - DrawableZRange: the smallest range covering both operands
func (r DrawableZRange) Union(other DrawableZRange) DrawableZRange {
	if !r.Defined() {
		return other
	}
	if !other.Defined() {
		return r
	}
	out := r
	if other.Min < out.Min {
		out.Min = other.Min
	}
	if other.Max > out.Max {
		out.Max = other.Max
	}
	return out
}

// SceneZRange accumulates the view-space depth range of the visible scene
// across worker threads. Each worker owns one slot and unions into it without
// synchronization; the merged value is computed on the first Get after Clear
// and cached until the next Clear.
//
// All Accumulate calls must happen between Clear and the first Get; the
// collector reads the merged value only after the producing phase has joined.
type SceneZRange struct {
	slots  []DrawableZRange
	merged DrawableZRange
	dirty  bool
}

// Clear resets the accumulator to numThreads empty slots and marks the merged
// value dirty.
//
// Parameters:
//   - numThreads: the number of worker slots to allocate
func (z *SceneZRange) Clear(numThreads int) {
	if cap(z.slots) < numThreads {
		z.slots = make([]DrawableZRange, numThreads)
	} else {
		z.slots = z.slots[:numThreads]
	}
	for i := range z.slots {
		z.slots[i] = UndefinedZRange()
	}
	z.merged = UndefinedZRange()
	z.dirty = true
}

// Accumulate unions a range into one thread's slot. Each thread must only
// ever pass its own index; the slot is the only state touched, which makes
// concurrent calls from distinct threads contention-free.
//
// Parameters:
//   - threadIndex: the calling worker's slot index
//   - r: the depth range to union in
func (z *SceneZRange) Accumulate(threadIndex int, r DrawableZRange) {
	z.slots[threadIndex] = z.slots[threadIndex].Union(r)
}

// Get retrieves the union of all slots, recomputing it on the first read
// after Clear and caching it until the next Clear.
//
// Returns:
//   - DrawableZRange: the merged scene depth range
func (z *SceneZRange) Get() DrawableZRange {
	if z.dirty {
		merged := UndefinedZRange()
		for _, slot := range z.slots {
			merged = merged.Union(slot)
		}
		z.merged = merged
		z.dirty = false
	}
	return z.merged
}
