package domain

import (
	"fmt"
	"math"

	"github.com/df07/go-particle-domains/pkg/core"
)

// Disc is a flat circular region: solid (InnerRadius 0), an annulus, or a
// ring when InnerRadius == OuterRadius
type Disc struct {
	Center      core.Vec3 // Center of the disc
	Normal      core.Vec3 // Unit normal of the disc plane
	OuterRadius float64
	InnerRadius float64
	Right       core.Vec3 // In-plane basis vector perpendicular to Normal
	Up          core.Vec3 // In-plane basis vector perpendicular to Normal and Right
	plane       Plane
}

// NewDisc creates a disc, annulus or ring centered at center in the plane
// with the given normal
func NewDisc(center, normal core.Vec3, outer, inner float64) (*Disc, error) {
	if normal.LengthSquared() == 0 {
		return nil, fmt.Errorf("disc normal must be non-zero: %w", core.ErrInvalidArgument)
	}
	if err := validateRadii(outer, inner); err != nil {
		return nil, fmt.Errorf("disc: %w", err)
	}

	normalNormalized := normal.Normalize()
	right, up := core.OrthonormalBasis(normalNormalized)

	return &Disc{
		Center:      center,
		Normal:      normalNormalized,
		OuterRadius: outer,
		InnerRadius: inner,
		Right:       right,
		Up:          up,
		plane:       Plane{Point: center, Normal: normalNormalized},
	}, nil
}

// Generate samples a point uniformly by area within the radial band
func (d *Disc) Generate(sampler core.Sampler) core.Vec3 {
	sample := sampler.Get2D()
	r := core.SampleRadius(sample.X, d.InnerRadius, d.OuterRadius, 2)
	theta := 2.0 * math.Pi * sample.Y

	// Convert to Cartesian coordinates in disc space
	x := r * math.Cos(theta)
	y := r * math.Sin(theta)

	// Transform to world space
	return d.Center.Add(d.Right.Multiply(x)).Add(d.Up.Multiply(y))
}

// Contains reports whether p lies in the disc plane within the radial band
func (d *Disc) Contains(p core.Vec3) bool {
	return d.plane.Contains(p) && d.inBand(p)
}

// Intersect crosses the disc plane and accepts the crossing if it falls in
// the radial band. The normal follows the plane's orientation rule.
func (d *Disc) Intersect(start, end core.Vec3) (Hit, bool) {
	hit, ok := d.plane.Intersect(start, end)
	if !ok || !d.inBand(hit.Point) {
		return Hit{}, false
	}
	return hit, true
}

// inBand reports whether the distance from the center lies within the radii
func (d *Disc) inBand(p core.Vec3) bool {
	distance := p.Subtract(d.Center).Length()
	return core.WithinRange(distance, d.InnerRadius, d.OuterRadius)
}

// Bounds returns the tight box around the disc rim
func (d *Disc) Bounds() core.AABB {
	// The rim extends OuterRadius * sqrt(1 - n_i^2) along each axis
	extent := core.NewVec3(
		d.OuterRadius*math.Sqrt(math.Max(0, 1-d.Normal.X*d.Normal.X)),
		d.OuterRadius*math.Sqrt(math.Max(0, 1-d.Normal.Y*d.Normal.Y)),
		d.OuterRadius*math.Sqrt(math.Max(0, 1-d.Normal.Z*d.Normal.Z)),
	)
	return core.NewAABB(d.Center.Subtract(extent), d.Center.Add(extent))
}
