package domain

import (
	"fmt"
	"math"

	"github.com/df07/go-particle-domains/pkg/core"
)

// Sphere is a solid sphere, or a hollow shell when InnerRadius > 0
type Sphere struct {
	Center      core.Vec3
	OuterRadius float64
	InnerRadius float64 // 0 for a solid sphere
}

// NewSphere creates a solid sphere
func NewSphere(center core.Vec3, radius float64) (*Sphere, error) {
	return NewShell(center, radius, 0)
}

// NewShell creates a spherical shell between inner and outer radius.
// inner == outer describes a zero-thickness shell.
func NewShell(center core.Vec3, outer, inner float64) (*Sphere, error) {
	if err := validateRadii(outer, inner); err != nil {
		return nil, fmt.Errorf("sphere: %w", err)
	}
	return &Sphere{
		Center:      center,
		OuterRadius: outer,
		InnerRadius: inner,
	}, nil
}

// Generate returns a point uniformly distributed by volume within the shell
func (s *Sphere) Generate(sampler core.Sampler) core.Vec3 {
	r := core.SampleRadius(sampler.Get1D(), s.InnerRadius, s.OuterRadius, 3)
	return s.Center.Add(core.SampleOnUnitSphere(sampler.Get2D()).Multiply(r))
}

// Contains reports whether p lies between the inner and outer radius, inclusive
func (s *Sphere) Contains(p core.Vec3) bool {
	d2 := p.Subtract(s.Center).LengthSquared()
	return core.WithinRange(d2, s.InnerRadius*s.InnerRadius, s.OuterRadius*s.OuterRadius)
}

// Bounds returns the box enclosing the outer sphere
func (s *Sphere) Bounds() core.AABB {
	radius := core.NewVec3(s.OuterRadius, s.OuterRadius, s.OuterRadius)
	return core.NewAABB(
		s.Center.Subtract(radius),
		s.Center.Add(radius),
	)
}

type sphereRegion int

const (
	regionOutside sphereRegion = iota // beyond the outer radius
	regionShell                       // between the radii, boundaries included
	regionHollow                      // inside the empty core of a shell
)

func (s *Sphere) region(p core.Vec3) sphereRegion {
	d2 := p.Subtract(s.Center).LengthSquared()
	outer2 := s.OuterRadius * s.OuterRadius
	inner2 := s.InnerRadius * s.InnerRadius
	switch {
	case d2 > outer2 && !core.NearlyEqual(d2, outer2):
		return regionOutside
	case s.InnerRadius > 0 && d2 < inner2 && !core.NearlyEqual(d2, inner2):
		return regionHollow
	default:
		return regionShell
	}
}

// Intersect finds the first crossing of the outer or inner surface along the
// segment. Which root counts depends on where the segment starts: from outside
// the near outer root; from the hollow core the far inner root; from within
// the shell the far outer root or the near inner root, whichever comes first.
// A start within tolerance of a surface is on it, as Contains reports, so
// moving from there deeper into the shell does not intersect.
func (s *Sphere) Intersect(start, end core.Vec3) (Hit, bool) {
	dir := end.Subtract(start)
	if dir.LengthSquared() == 0 {
		return Hit{}, false
	}

	var (
		t      float64
		radius float64
		found  bool
	)
	switch s.region(start) {
	case regionOutside:
		if near, _, ok := s.roots(start, dir, s.OuterRadius); ok && inSegment(near) {
			t, radius, found = near, s.OuterRadius, true
		}
	case regionHollow:
		if _, far, ok := s.roots(start, dir, s.InnerRadius); ok && inSegment(far) {
			t, radius, found = far, s.InnerRadius, true
		}
	case regionShell:
		// Starting on a surface counts as starting in the shell, so the segment
		// must actually reach the outside or pass through the hollow
		if _, far, ok := s.roots(start, dir, s.OuterRadius); ok && inSegment(far) && s.region(end) == regionOutside {
			t, radius, found = far, s.OuterRadius, true
		}
		if s.InnerRadius > 0 {
			if near, far, ok := s.roots(start, dir, s.InnerRadius); ok && inSegment(near) && (!found || near < t) {
				mid := start.Add(dir.Multiply((near + math.Min(far, 1)) / 2))
				if s.region(mid) == regionHollow {
					t, radius, found = near, s.InnerRadius, true
				}
			}
		}
	}
	if !found {
		return Hit{}, false
	}

	t = math.Max(0, math.Min(1, t))
	point := start.Add(dir.Multiply(t))
	radial := point.Subtract(s.Center).Multiply(1.0 / radius)

	// A tangent exit from the outer surface faces inward
	normal := radial
	if s.region(start) != regionOutside && radial.Dot(dir.Normalize()) > -core.Epsilon {
		normal = radial.Negate()
	}
	return Hit{Point: point, Normal: normal.Normalize()}, true
}

// roots solves |start + t*dir - center| = radius for t, returning the near and
// far roots. A slightly negative discriminant is treated as a tangent.
func (s *Sphere) roots(start, dir core.Vec3, radius float64) (float64, float64, bool) {
	oc := start.Subtract(s.Center)

	// Quadratic equation coefficients: at² + 2bt + c = 0
	a := dir.Dot(dir)
	halfB := oc.Dot(dir)
	c := oc.Dot(oc) - radius*radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		if discriminant < -core.Epsilon*math.Max(1, halfB*halfB) {
			return 0, 0, false
		}
		discriminant = 0
	}

	sqrtD := math.Sqrt(discriminant)
	return (-halfB - sqrtD) / a, (-halfB + sqrtD) / a, true
}

// ClosestPointTo returns the nearest point on the shell surfaces to q
func (s *Sphere) ClosestPointTo(q core.Vec3) (core.Vec3, core.Vec3) {
	offset := q.Subtract(s.Center)
	distance := offset.Length()
	direction := offset.Normalize()
	if distance == 0 {
		// Every surface point is equally close; pick +Z
		direction = core.NewVec3(0, 0, 1)
	}

	radius := s.OuterRadius
	if s.InnerRadius > 0 && distance < (s.OuterRadius+s.InnerRadius)/2 {
		radius = s.InnerRadius
	}
	point := s.Center.Add(direction.Multiply(radius))

	if core.NearlyEqual(distance, radius) {
		if radius == s.InnerRadius && radius != s.OuterRadius {
			return point, direction.Negate()
		}
		return point, direction
	}
	return point, q.Subtract(point).Normalize()
}

func inSegment(t float64) bool {
	return core.WithinRange(t, 0, 1)
}

func validateRadii(outer, inner float64) error {
	if outer <= 0 {
		return fmt.Errorf("outer radius %g must be positive: %w", outer, core.ErrInvalidArgument)
	}
	if inner < 0 {
		return fmt.Errorf("inner radius %g must not be negative: %w", inner, core.ErrInvalidArgument)
	}
	if inner > outer {
		return fmt.Errorf("inner radius %g exceeds outer radius %g: %w", inner, outer, core.ErrInvalidArgument)
	}
	return nil
}
