package survey

import (
	"math"

	"github.com/df07/go-particle-domains/pkg/core"
)

// SampleStats accumulates running statistics over generated points
type SampleStats struct {
	Count    int
	Sum      core.Vec3
	Bounds   core.AABB
	Failures int // Points Generate produced that Contains rejected
}

// AddSample records one generated point and whether the domain contains it
func (s *SampleStats) AddSample(point core.Vec3, contained bool) {
	if s.Count == 0 {
		s.Bounds = core.NewAABB(point, point)
	} else {
		s.Bounds = s.Bounds.Extend(point)
	}
	s.Count++
	s.Sum = s.Sum.Add(point)
	if !contained {
		s.Failures++
	}
}

// Centroid returns the mean of all samples
func (s *SampleStats) Centroid() core.Vec3 {
	if s.Count == 0 {
		return core.Vec3{}
	}
	return s.Sum.Multiply(1.0 / float64(s.Count))
}

// RadialStats accumulates distances from a fixed origin without keeping the
// points. Distances are binned in equal widths over [0, Radius]; samples
// beyond Radius land in the last bin.
type RadialStats struct {
	Origin core.Vec3
	Radius float64
	Bins   []int
	Count  int
	Sum    float64
}

// NewRadialStats creates an accumulator. With bins == 0 or radius <= 0 only
// the mean distance is tracked.
func NewRadialStats(origin core.Vec3, radius float64, bins int) *RadialStats {
	r := &RadialStats{Origin: origin, Radius: radius}
	if bins > 0 && radius > 0 {
		r.Bins = make([]int, bins)
	}
	return r
}

// Add records the distance of point from the origin
func (r *RadialStats) Add(point core.Vec3) {
	distance := point.Subtract(r.Origin).Length()
	r.Count++
	r.Sum += distance
	if len(r.Bins) == 0 {
		return
	}
	bin := int(math.Floor(distance / r.Radius * float64(len(r.Bins))))
	r.Bins[max(0, min(len(r.Bins)-1, bin))]++
}

// Mean returns the mean recorded distance
func (r *RadialStats) Mean() float64 {
	if r.Count == 0 {
		return 0
	}
	return r.Sum / float64(r.Count)
}
