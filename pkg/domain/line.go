package domain

import "github.com/df07/go-particle-domains/pkg/core"

// Line is a segment used as a sampling source; it is never a collision surface
type Line struct {
	Start core.Vec3
	End   core.Vec3
}

// NewLine creates a line segment domain
func NewLine(start, end core.Vec3) *Line {
	return &Line{Start: start, End: end}
}

// Generate returns a point uniformly distributed along the segment
func (l *Line) Generate(sampler core.Sampler) core.Vec3 {
	t := sampler.Get1D()
	return l.Start.Add(l.End.Subtract(l.Start).Multiply(t))
}

// Contains reports whether p lies on the segment within tolerance
func (l *Line) Contains(p core.Vec3) bool {
	direction := l.End.Subtract(l.Start)
	lengthSquared := direction.LengthSquared()
	if lengthSquared == 0 {
		return l.Start.NearlyEquals(p)
	}

	t := p.Subtract(l.Start).Dot(direction) / lengthSquared
	if !core.WithinRange(t, 0, 1) {
		return false
	}
	return l.Start.Add(direction.Multiply(t)).NearlyEquals(p)
}

// Intersect never reports a crossing
func (l *Line) Intersect(start, end core.Vec3) (Hit, bool) {
	return Hit{}, false
}

// Bounds returns the box spanned by the endpoints
func (l *Line) Bounds() core.AABB {
	return core.NewAABBFromPoints(l.Start, l.End)
}
