package core

import (
	"math"
	"math/rand"
)

// Sampler provides random sampling for domain generation
// Can be swapped out for deterministic testing or different sampling patterns
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
	Get3D() Vec3
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a sampler with its own generator seeded with seed
func NewSeededSampler(seed int64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewSource(seed)))
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

// Get3D returns three random float64 values in [0, 1)
func (r *RandomSampler) Get3D() Vec3 {
	return NewVec3(r.random.Float64(), r.random.Float64(), r.random.Float64())
}

// SampleOnUnitSphere generates a uniform random direction on the unit sphere
func SampleOnUnitSphere(sample Vec2) Vec3 {
	z := 1.0 - 2.0*sample.X // z ∈ [-1, 1]
	r := math.Sqrt(math.Max(0, 1.0-z*z))
	phi := 2.0 * math.Pi * sample.Y
	x := r * math.Cos(phi)
	y := r * math.Sin(phi)
	return NewVec3(x, y, z)
}

// SampleRadius maps a uniform sample u to a radius in [inner, outer] so that
// points are uniform by measure in the given dimension: dim 2 is uniform by
// area (disc annulus), dim 3 uniform by volume (spherical shell).
func SampleRadius(u, inner, outer float64, dim int) float64 {
	if inner == outer {
		return outer
	}
	switch dim {
	case 2:
		return math.Sqrt(u*(outer*outer-inner*inner) + inner*inner)
	case 3:
		innerCubed := inner * inner * inner
		return math.Cbrt(u*(outer*outer*outer-innerCubed) + innerCubed)
	default:
		return inner + u*(outer-inner)
	}
}

// OrthonormalBasis returns two unit vectors perpendicular to the unit vector
// normal and to each other
func OrthonormalBasis(normal Vec3) (Vec3, Vec3) {
	// Find a vector not parallel to normal
	var right Vec3
	if math.Abs(normal.X) > 0.1 {
		right = NewVec3(0, 1, 0)
	} else {
		right = NewVec3(1, 0, 0)
	}

	right = right.Cross(normal).Normalize()
	up := normal.Cross(right).Normalize()
	return right, up
}
