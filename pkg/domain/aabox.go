package domain

import (
	"math"

	"github.com/df07/go-particle-domains/pkg/core"
)

// AABox is a solid axis-aligned box
type AABox struct {
	Min core.Vec3 // Minimum corner
	Max core.Vec3 // Maximum corner
}

// NewAABox creates a box from two opposite corners in any order
func NewAABox(corner1, corner2 core.Vec3) *AABox {
	bounds := core.NewAABBFromPoints(corner1, corner2)
	return &AABox{Min: bounds.Min, Max: bounds.Max}
}

// Generate samples each axis uniformly within the box
func (b *AABox) Generate(sampler core.Sampler) core.Vec3 {
	u := sampler.Get3D()
	size := b.Max.Subtract(b.Min)
	return core.NewVec3(
		b.Min.X+u.X*size.X,
		b.Min.Y+u.Y*size.Y,
		b.Min.Z+u.Z*size.Z,
	)
}

// Contains reports whether p lies inside the box, faces included
func (b *AABox) Contains(p core.Vec3) bool {
	return b.Bounds().Contains(p)
}

// Bounds returns the box itself as an AABB
func (b *AABox) Bounds() core.AABB {
	return core.NewAABB(b.Min, b.Max)
}

// Intersect finds where the segment crosses a face using the slab method.
// A segment starting outside reports its entry; one starting inside (or on a
// face) and ending outside reports its exit. Segments that stay inside, run
// along a face plane, or only touch an edge or corner in passing do not
// intersect.
func (b *AABox) Intersect(start, end core.Vec3) (Hit, bool) {
	startIn := b.Contains(start)
	if startIn && b.Contains(end) {
		return Hit{}, false
	}

	dir := end.Subtract(start)
	tEnter, tExit := math.Inf(-1), math.Inf(1)
	enterAxis, exitAxis := -1, -1

	for axis := 0; axis < 3; axis++ {
		min := b.Min.Axis(axis)
		max := b.Max.Axis(axis)
		origin := start.Axis(axis)
		delta := dir.Axis(axis)

		if core.NearlyEqual(delta, 0) {
			// Parallel to this slab: reject if outside, or if travelling in a face plane
			if !core.WithinRange(origin, min, max) ||
				core.NearlyEqual(origin, min) || core.NearlyEqual(origin, max) {
				return Hit{}, false
			}
			continue
		}

		t1 := (min - origin) / delta
		t2 := (max - origin) / delta
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tEnter {
			tEnter, enterAxis = t1, axis
		}
		if t2 < tExit {
			tExit, exitAxis = t2, axis
		}
	}

	// All axes parallel means a zero-length segment
	if enterAxis < 0 || tEnter > tExit+core.Epsilon {
		return Hit{}, false
	}

	// Entering and leaving at once touches an edge or corner without entering
	if !startIn && tExit-tEnter <= core.Epsilon && !b.Contains(end) {
		return Hit{}, false
	}

	t, axis := tEnter, enterAxis
	if startIn {
		t, axis = tExit, exitAxis
	}
	if !core.WithinRange(t, 0, 1) {
		return Hit{}, false
	}
	t = math.Max(0, math.Min(1, t))

	// Snap onto the face the segment crosses
	face := b.Min.Axis(axis)
	if (dir.Axis(axis) < 0) != startIn {
		face = b.Max.Axis(axis)
	}
	point := start.Add(dir.Multiply(t)).WithAxis(axis, face)

	normal := core.NewVec3(0, 0, 0).WithAxis(axis, -math.Copysign(1, dir.Axis(axis)))
	return Hit{Point: point, Normal: normal}, true
}

// ClosestPointTo returns the nearest point on the box surface to q
func (b *AABox) ClosestPointTo(q core.Vec3) (core.Vec3, core.Vec3) {
	if !b.Contains(q) {
		clamped := core.NewVec3(
			math.Max(b.Min.X, math.Min(b.Max.X, q.X)),
			math.Max(b.Min.Y, math.Min(b.Max.Y, q.Y)),
			math.Max(b.Min.Z, math.Min(b.Max.Z, q.Z)),
		)
		return clamped, q.Subtract(clamped).Normalize()
	}

	// Inside: project onto the nearest face, normal pointing back inward
	bestAxis, bestFace, bestSign := 0, b.Min.X, 1.0
	bestDistance := math.Inf(1)
	for axis := 0; axis < 3; axis++ {
		if d := q.Axis(axis) - b.Min.Axis(axis); d < bestDistance {
			bestAxis, bestFace, bestSign, bestDistance = axis, b.Min.Axis(axis), 1, d
		}
		if d := b.Max.Axis(axis) - q.Axis(axis); d < bestDistance {
			bestAxis, bestFace, bestSign, bestDistance = axis, b.Max.Axis(axis), -1, d
		}
	}
	normal := core.NewVec3(0, 0, 0).WithAxis(bestAxis, bestSign)
	if bestDistance <= core.Epsilon {
		// On the face itself: use the outward face normal
		normal = normal.Negate()
	}
	return q.WithAxis(bestAxis, bestFace), normal
}
