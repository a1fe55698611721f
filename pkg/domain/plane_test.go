package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-particle-domains/pkg/core"
)

func TestPlane_Horizontal(t *testing.T) {
	for _, ny := range []float64{1, -1, 50, -50} {
		t.Run(fmt.Sprintf("normal y=%g", ny), func(t *testing.T) {
			plane, err := NewPlane(vec(0, 0, 0), vec(0, ny, 0))
			require.NoError(t, err)

			assert.Equal(t, vec(0, 0, 0), plane.Generate(core.NewSeededSampler(1)))
			assert.True(t, plane.Contains(vec(0, 0, 0)))
			assert.True(t, plane.Contains(vec(12, 0, -3)))
			assert.False(t, plane.Contains(vec(0, ny, 0)))
			assert.False(t, plane.InHalfSpace(vec(0, ny, 0)))
			assert.True(t, plane.InHalfSpace(vec(0, -ny, 0)))

			// Perpendicular crossings: the normal faces the side the segment came from
			hit, ok := plane.Intersect(vec(1, 1, 4), vec(1, -1, 4))
			require.True(t, ok)
			assertVec(t, vec(1, 0, 4), hit.Point, "point")
			assertVec(t, vec(0, 1, 0), hit.Normal, "normal")

			hit, ok = plane.Intersect(vec(-5, -2, 20), vec(-5, 5, 20))
			require.True(t, ok)
			assertVec(t, vec(-5, 0, 20), hit.Point, "point")
			assertVec(t, vec(0, -1, 0), hit.Normal, "normal")

			// Oblique crossing
			raised, err := NewPlane(vec(20, 5, 3000), vec(0, ny, 0))
			require.NoError(t, err)
			assertSymmetricHit(t, raised, vec(0, 7, 0), vec(4, 3, -4), vec(2, 5, -2), vec(0, 1, 0))

			// No crossing
			assertNoHit(t, raised, vec(40, 8, 20), vec(40, 6, -4))
			assertNoHit(t, raised, vec(0, 0, 0), vec(3, 4, 10))

			// Segment lying in the plane
			assertNoHit(t, raised, vec(-10, 5, 0), vec(3, 5, 10))
		})
	}
}

func TestPlane_Oblique(t *testing.T) {
	normal := vec(3, 4, 5).Normalize()
	plane, err := NewPlane(vec(0, 0, 0), vec(3, 4, 5))
	require.NoError(t, err)

	assertVec(t, normal, plane.Normal, "normalized at construction")
	assert.False(t, plane.Contains(normal))
	assert.True(t, plane.Contains(plane.Point))
	assert.True(t, plane.InHalfSpace(normal.Negate()))

	assertSymmetricHit(t, plane, vec(0, 1, 0), vec(0, -1, 0), vec(0, 0, 0), normal)
}

func TestPlane_TouchingIsNotCrossing(t *testing.T) {
	plane, err := NewPlane(vec(0, 0, 0), vec(0, 1, 0))
	require.NoError(t, err)

	// Starting or ending exactly on the plane without changing side
	assertNoHit(t, plane, vec(0, 0, 0), vec(0, 2, 0))
	assertNoHit(t, plane, vec(0, 2, 0), vec(0, 0, 0))
	assertNoHit(t, plane, vec(1, 0, 1), vec(2, 0, 2))
	assertNoHit(t, plane, vec(1, 1, 1), vec(1, 1, 1))
}

func TestPlane_ZeroNormal(t *testing.T) {
	plane, err := NewPlane(vec(0, 0, 0), vec(0, 0, 0))
	assert.Nil(t, plane)
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
}

func TestPlane_ClosestPointTo(t *testing.T) {
	plane, err := NewPlane(vec(0, 2, 0), vec(0, 1, 0))
	require.NoError(t, err)

	p, n := plane.ClosestPointTo(vec(3, 5, -1))
	assertVec(t, vec(3, 2, -1), p, "point above")
	assertVec(t, vec(0, 1, 0), n, "normal above")

	p, n = plane.ClosestPointTo(vec(3, -1, -1))
	assertVec(t, vec(3, 2, -1), p, "point below")
	assertVec(t, vec(0, -1, 0), n, "normal below")
}
