package common

import "math"

// BoundingBox is an axis-aligned box in world space.
type BoundingBox struct {
	Min [3]float32
	Max [3]float32
}

// NewBoundingBox creates a bounding box from min/max corner components.
//
// Parameters:
//   - minX, minY, minZ: minimum corner components
//   - maxX, maxY, maxZ: maximum corner components
//
// Returns:
//   - BoundingBox: the axis-aligned box spanning the two corners
func NewBoundingBox(minX, minY, minZ, maxX, maxY, maxZ float32) BoundingBox {
	return BoundingBox{
		Min: [3]float32{minX, minY, minZ},
		Max: [3]float32{maxX, maxY, maxZ},
	}
}

// Center returns the center point of the box.
//
// Returns:
//   - [3]float32: the box center as (x, y, z)
func (b BoundingBox) Center() [3]float32 {
	return [3]float32{
		(b.Min[0] + b.Max[0]) * 0.5,
		(b.Min[1] + b.Max[1]) * 0.5,
		(b.Min[2] + b.Max[2]) * 0.5,
	}
}

// HalfSize returns the half-extents of the box along each axis.
//
// Returns:
//   - [3]float32: the half-extents as (x, y, z)
func (b BoundingBox) HalfSize() [3]float32 {
	return [3]float32{
		(b.Max[0] - b.Min[0]) * 0.5,
		(b.Max[1] - b.Min[1]) * 0.5,
		(b.Max[2] - b.Min[2]) * 0.5,
	}
}

// IntersectsSphere reports whether the box and a sphere overlap.
//
// Parameters:
//   - center: the sphere center
//   - radius: the sphere radius
//
// Returns:
//   - bool: true if the sphere touches or overlaps the box
func (b BoundingBox) IntersectsSphere(center [3]float32, radius float32) bool {
	var distSq float32
	for i := range 3 {
		v := center[i]
		if v < b.Min[i] {
			d := b.Min[i] - v
			distSq += d * d
		} else if v > b.Max[i] {
			d := v - b.Max[i]
			distSq += d * d
		}
	}
	return distSq <= radius*radius
}

// ViewDepthRange projects the box onto the view direction of a column-major
// view matrix and returns the min and max view-space depth. Depth is measured
// positive into the screen (the view matrix looks down -Z).
//
// Parameters:
//   - view: 16 float32 values representing the view matrix (column-major)
//
// Returns:
//   - minDepth, maxDepth: the closed depth interval covered by the box
func (b BoundingBox) ViewDepthRange(view []float32) (minDepth, maxDepth float32) {
	c := b.Center()
	h := b.HalfSize()

	// Row 2 of the view matrix maps world space to view-space Z. Negated so
	// depth grows away from the camera.
	rx, ry, rz, rw := -view[2], -view[6], -view[10], -view[14]

	center := rx*c[0] + ry*c[1] + rz*c[2] + rw
	extent := absf(rx)*h[0] + absf(ry)*h[1] + absf(rz)*h[2]
	return center - extent, center + extent
}

// DistanceSquared returns the squared distance between two points.
//
// Parameters:
//   - a: the first point
//   - b: the second point
//
// Returns:
//   - float32: the squared euclidean distance
func DistanceSquared(a, b [3]float32) float32 {
	dx := a[0] - b[0]
	dy := a[1] - b[1]
	dz := a[2] - b[2]
	return dx*dx + dy*dy + dz*dz
}

func absf(v float32) float32 {
	return float32(math.Abs(float64(v)))
}
