// Package domain provides the geometric regions a particle simulation uses as
// spawn volumes and as collision boundaries.
//
// Every domain is an immutable value: Generate, Contains and Intersect are pure
// functions of their arguments and may be called concurrently on a shared
// instance. Only construction can fail.
package domain

import "github.com/df07/go-particle-domains/pkg/core"

// Domain is a region that can be sampled, tested for membership and crossed
type Domain interface {
	// Generate returns a point drawn uniformly from the domain using sampler
	Generate(sampler core.Sampler) core.Vec3
	// Contains reports whether p lies within the domain
	Contains(p core.Vec3) bool
	// Intersect returns the first boundary crossing of the directed segment
	// start->end. The hit normal is unit length and opposes the direction of
	// travel through the crossed surface.
	Intersect(start, end core.Vec3) (Hit, bool)
}

// Hit describes a segment crossing a domain boundary
type Hit struct {
	Point  core.Vec3 // Crossing point
	Normal core.Vec3 // Surface normal facing the side the segment came from
}

// Bounded is implemented by domains with finite extent
type Bounded interface {
	Bounds() core.AABB
}

// ClosestPointer is implemented by domains that can project an arbitrary point
// onto their surface. The returned normal points from the surface toward p.
type ClosestPointer interface {
	ClosestPointTo(p core.Vec3) (point, normal core.Vec3)
}

// Named pairs a domain with the name it was configured under
type Named struct {
	Name   string
	Type   string
	Domain Domain
}
