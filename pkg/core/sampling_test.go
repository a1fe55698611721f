package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomSampler_Range(t *testing.T) {
	sampler := NewSeededSampler(42)
	for i := 0; i < 1000; i++ {
		v := sampler.Get3D()
		for axis := 0; axis < 3; axis++ {
			x := v.Axis(axis)
			require.GreaterOrEqual(t, x, 0.0)
			require.Less(t, x, 1.0)
		}
	}
}

func TestRandomSampler_Deterministic(t *testing.T) {
	a := NewSeededSampler(7)
	b := NewSeededSampler(7)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Get2D(), b.Get2D())
	}
}

func TestSampleOnUnitSphere(t *testing.T) {
	sampler := NewSeededSampler(42)
	for i := 0; i < 500; i++ {
		v := SampleOnUnitSphere(sampler.Get2D())
		assert.InDelta(t, 1.0, v.Length(), 1e-9)
	}
}

func TestSampleRadius(t *testing.T) {
	tests := []struct {
		name         string
		u            float64
		inner, outer float64
		dim          int
		expected     float64
	}{
		{"area lower end", 0, 1, 2, 2, 1},
		{"area upper end", 1, 1, 2, 2, 2},
		{"area median of solid disc", 0.25, 0, 2, 2, 1},
		{"volume median of solid sphere", 0.125, 0, 2, 3, 1},
		{"volume upper end", 1, 1, 3, 3, 3},
		{"ring", 0.7, 2, 2, 2, 2},
		{"linear fallback", 0.5, 0, 4, 1, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, SampleRadius(tt.u, tt.inner, tt.outer, tt.dim), 1e-12)
		})
	}
}

func TestOrthonormalBasis(t *testing.T) {
	normals := []Vec3{
		NewVec3(1, 0, 0),
		NewVec3(0, 1, 0),
		NewVec3(0, 0, 1),
		NewVec3(1, 1, 0).Normalize(),
		NewVec3(-3, 4, 5).Normalize(),
	}

	for _, n := range normals {
		right, up := OrthonormalBasis(n)
		assert.InDelta(t, 1.0, right.Length(), 1e-12, "right not unit for %v", n)
		assert.InDelta(t, 1.0, up.Length(), 1e-12, "up not unit for %v", n)
		assert.InDelta(t, 0.0, right.Dot(n), 1e-12, "right not perpendicular to %v", n)
		assert.InDelta(t, 0.0, up.Dot(n), 1e-12, "up not perpendicular to %v", n)
		assert.InDelta(t, 0.0, right.Dot(up), 1e-12, "basis not orthogonal for %v", n)
	}
}

func TestAABB_FromPoints(t *testing.T) {
	box := NewAABBFromPoints(NewVec3(-2, 1, 3), NewVec3(-3, -1, 0))
	assert.Equal(t, NewVec3(-3, -1, 0), box.Min)
	assert.Equal(t, NewVec3(-2, 1, 3), box.Max)
	assert.Equal(t, NewVec3(-2.5, 0, 1.5), box.Center())
	assert.Equal(t, NewVec3(1, 2, 3), box.Size())

	assert.True(t, box.Contains(NewVec3(-3, -1, 0)))
	assert.True(t, box.Contains(NewVec3(-2.5, 0, 1)))
	assert.False(t, box.Contains(NewVec3(-1.9, 0, 1)))

	grown := box.Extend(NewVec3(5, 0, -1))
	assert.Equal(t, NewVec3(-3, -1, -1), grown.Min)
	assert.Equal(t, NewVec3(5, 1, 3), grown.Max)
}
