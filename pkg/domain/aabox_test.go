package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-particle-domains/pkg/core"
)

func testBox() *AABox {
	return NewAABox(vec(-3, -1, 0), vec(-2, 1, 3))
}

func TestAABox_GenerateContains(t *testing.T) {
	box := testBox()
	sampler := core.NewSeededSampler(42)

	for i := 0; i < 200; i++ {
		p := box.Generate(sampler)
		require.True(t, p.X >= -3 && p.X <= -2, "x out of range: %v", p)
		require.True(t, p.Y >= -1 && p.Y <= 1, "y out of range: %v", p)
		require.True(t, p.Z >= 0 && p.Z <= 3, "z out of range: %v", p)
		require.True(t, box.Contains(p))
	}

	assert.True(t, box.Contains(vec(-3, -1, 0)))
	assert.True(t, box.Contains(vec(-3, 1, 0)))
	assert.True(t, box.Contains(vec(-2, 1, 3)))
	assert.True(t, box.Contains(vec(-2, -1, 0)))
	assert.True(t, box.Contains(vec(-2.5, 0, 0)))
	assert.False(t, box.Contains(vec(-3, -3, -3)))
	assert.False(t, box.Contains(vec(-3, 2, 3)))
}

func TestAABox_SwappedCorners(t *testing.T) {
	box := NewAABox(vec(-2, 1, 0), vec(-3, -1, 3))
	assert.Equal(t, vec(-3, -1, 0), box.Min)
	assert.Equal(t, vec(-2, 1, 3), box.Max)
}

func TestAABox_UniformDensity(t *testing.T) {
	box := NewAABox(vec(0, 0, 0), vec(2, 2, 2))
	sampler := core.NewSeededSampler(99)

	const samples = 8000
	var cells [8]int
	for i := 0; i < samples; i++ {
		p := box.Generate(sampler)
		cell := 0
		if p.X >= 1 {
			cell |= 1
		}
		if p.Y >= 1 {
			cell |= 2
		}
		if p.Z >= 1 {
			cell |= 4
		}
		cells[cell]++
	}

	expected := samples / len(cells)
	for i, count := range cells {
		assert.InDelta(t, expected, count, float64(expected)*0.15, "octant %d", i)
	}
}

func TestAABox_Intersect(t *testing.T) {
	box := testBox()

	tests := []struct {
		name          string
		start, end    core.Vec3
		point, normal core.Vec3
	}{
		{"enter -X face", vec(-4, 0, 1), vec(-2, 0, 1), vec(-3, 0, 1), vec(-1, 0, 0)},
		{"enter -Y face", vec(-2.5, -2, 2), vec(-2.5, -0.5, 2), vec(-2.5, -1, 2), vec(0, -1, 0)},
		{"enter -Z face", vec(-2.8, 0.5, -1), vec(-2.8, 0.5, 1), vec(-2.8, 0.5, 0), vec(0, 0, -1)},
		{"enter +X face ending on it", vec(-1, 0, 1), vec(-2, 0, 1), vec(-2, 0, 1), vec(1, 0, 0)},
		{"enter +Y face ending on it", vec(-2.5, 2, 2), vec(-2.5, 1, 2), vec(-2.5, 1, 2), vec(0, 1, 0)},
		{"enter +Z face", vec(-2.8, 0.5, 4), vec(-2.8, 0.5, 1), vec(-2.8, 0.5, 3), vec(0, 0, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.False(t, box.Contains(tt.start))
			require.True(t, box.Contains(tt.end))
			assertSymmetricHit(t, box, tt.start, tt.end, tt.point, tt.normal)
		})
	}
}

func TestAABox_GrazingIntersect(t *testing.T) {
	box := testBox()

	hit, ok := box.Intersect(vec(-4, 0, 1), vec(0, 0, 1))
	require.True(t, ok)
	assert.Equal(t, vec(-3, 0, 1), hit.Point)
	assert.Equal(t, vec(-1, 0, 0), hit.Normal)

	hit, ok = box.Intersect(vec(0, 0, 1), vec(-4, 0, 1))
	require.True(t, ok)
	assert.Equal(t, vec(-2, 0, 1), hit.Point)
	assert.Equal(t, vec(1, 0, 0), hit.Normal)
}

func TestAABox_EdgeTouch(t *testing.T) {
	box := testBox()

	// Passing over the x=-3, y=-1 edge never enters the box
	assertNoHit(t, box, vec(-4, 0, 1.5), vec(-2, -2, 1.5))
	assertNoHit(t, box, vec(-2, -2, 1.5), vec(-4, 0, 1.5))
	// Passing over the (-3, -1, 0) corner
	assertNoHit(t, box, vec(-4, -2, 1), vec(-2, 0, -1))
	assertNoHit(t, box, vec(-2, 0, -1), vec(-4, -2, 1))

	// Ending on the edge still counts as arriving at the box
	assertSymmetricHit(t, box, vec(-4, 0, 1.5), vec(-3, -1, 1.5), vec(-3, -1, 1.5), vec(-1, 0, 0))
}

func TestAABox_NoIntersect(t *testing.T) {
	box := testBox()

	assertNoHit(t, box, vec(-4, 2, 1), vec(-2, 2, 1))
	assertNoHit(t, box, vec(-2, 0, 1), vec(-2.8, 0.5, 1))
	assertNoHit(t, box, vec(-10, 10, 10), vec(10, 10, 10))
	assertNoHit(t, box, vec(-5, 0, 1), vec(-4, 0, 1))
	assertNoHit(t, box, vec(-1, 0, 1), vec(-1, 0, 1))
}

func TestAABox_LineInSides(t *testing.T) {
	box := testBox()

	lines := [][2]core.Vec3{
		{vec(-3, 0, 1), vec(-3, 0.5, 2)},
		{vec(-2.5, -1, 2), vec(-2, -1, 2)},
		{vec(-2.8, 0.5, 0), vec(-2.5, 0.5, 0)},
		{vec(-2, 0, 1), vec(-2, 0.5, 2)},
		{vec(-2.5, 1, 2), vec(-2.5, 1, 1)},
		{vec(-2.8, 0.5, 3), vec(-2.9, 0.5, 3)},
		// Travelling along a face plane from outside onto the face
		{vec(-3, 3, 1), vec(-3, 0, 1)},
	}
	for _, line := range lines {
		assertNoHit(t, box, line[0], line[1])
		assertNoHit(t, box, line[1], line[0])
	}
}

func TestAABox_ClosestPointTo(t *testing.T) {
	box := testBox()

	p, n := box.ClosestPointTo(vec(-5, 0, 1))
	assertVec(t, vec(-3, 0, 1), p, "outside point")
	assertVec(t, vec(-1, 0, 0), n, "outside normal")

	p, n = box.ClosestPointTo(vec(-2.1, 0, 1.5))
	assertVec(t, vec(-2, 0, 1.5), p, "inside point")
	assertVec(t, vec(-1, 0, 0), n, "inside normal points back toward the query")

	p, n = box.ClosestPointTo(vec(-2.5, 1, 1.5))
	assertVec(t, vec(-2.5, 1, 1.5), p, "on-face point")
	assertVec(t, vec(0, 1, 0), n, "on-face normal")
}
