package domain

import (
	"fmt"

	"github.com/df07/go-particle-domains/pkg/core"
)

// Plane represents an infinite plane defined by a point and normal
type Plane struct {
	Point  core.Vec3 // A point on the plane
	Normal core.Vec3 // Unit normal
}

// NewPlane creates a new plane, normalizing normal. A zero normal is rejected.
func NewPlane(point, normal core.Vec3) (*Plane, error) {
	if normal.LengthSquared() == 0 {
		return nil, fmt.Errorf("plane normal must be non-zero: %w", core.ErrInvalidArgument)
	}
	return &Plane{
		Point:  point,
		Normal: normal.Normalize(),
	}, nil
}

// Generate returns the plane's point; an infinite plane has no bounded
// uniform distribution
func (p *Plane) Generate(core.Sampler) core.Vec3 {
	return p.Point
}

// Contains reports whether q lies on the plane within tolerance
func (p *Plane) Contains(q core.Vec3) bool {
	return core.NearlyEqual(p.distance(q), 0)
}

// InHalfSpace reports whether q lies on or behind the plane
func (p *Plane) InHalfSpace(q core.Vec3) bool {
	return p.distance(q) <= core.Epsilon
}

// Intersect reports where the segment strictly crosses from one side of the
// plane to the other. Touching or lying in the plane is not a crossing.
func (p *Plane) Intersect(start, end core.Vec3) (Hit, bool) {
	t, ok := p.crossing(start, end)
	if !ok {
		return Hit{}, false
	}
	return Hit{
		Point:  start.Add(end.Subtract(start).Multiply(t)),
		Normal: p.facing(start),
	}, true
}

// ClosestPointTo projects q onto the plane
func (p *Plane) ClosestPointTo(q core.Vec3) (core.Vec3, core.Vec3) {
	d := p.distance(q)
	return q.Subtract(p.Normal.Multiply(d)), p.facing(q)
}

// distance returns the signed distance from the plane to q
func (p *Plane) distance(q core.Vec3) float64 {
	return q.Subtract(p.Point).Dot(p.Normal)
}

// crossing returns the segment parameter of a strict sign change
func (p *Plane) crossing(start, end core.Vec3) (float64, bool) {
	d0 := p.distance(start)
	d1 := p.distance(end)
	if !(d0 > 0 && d1 < 0) && !(d0 < 0 && d1 > 0) {
		return 0, false
	}
	return d0 / (d0 - d1), true
}

// facing returns the normal on the side of the plane q is on
func (p *Plane) facing(q core.Vec3) core.Vec3 {
	if p.distance(q) < 0 {
		return p.Normal.Negate()
	}
	return p.Normal
}
