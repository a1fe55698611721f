package domain

import "github.com/df07/go-particle-domains/pkg/core"

// Point is a degenerate domain holding a single position
type Point struct {
	Position core.Vec3
}

// NewPoint creates a point domain
func NewPoint(position core.Vec3) *Point {
	return &Point{Position: position}
}

// Generate always returns the stored position
func (p *Point) Generate(core.Sampler) core.Vec3 {
	return p.Position
}

// Contains reports exact equality with the stored position
func (p *Point) Contains(q core.Vec3) bool {
	return p.Position.Equals(q)
}

// Intersect never reports a crossing: a point has no boundary to cross
func (p *Point) Intersect(start, end core.Vec3) (Hit, bool) {
	return Hit{}, false
}

// ClosestPointTo returns the position and the direction from it toward q
func (p *Point) ClosestPointTo(q core.Vec3) (core.Vec3, core.Vec3) {
	return p.Position, q.Subtract(p.Position).Normalize()
}

// Bounds returns a zero-size box at the position
func (p *Point) Bounds() core.AABB {
	return core.NewAABB(p.Position, p.Position)
}
