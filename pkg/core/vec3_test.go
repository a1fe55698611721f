package core

import (
	"math"
	"testing"
)

func TestVec3_Cross(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Vec3
		expected Vec3
	}{
		{"X cross Y", NewVec3(1, 0, 0), NewVec3(0, 1, 0), NewVec3(0, 0, 1)},
		{"Y cross Z", NewVec3(0, 1, 0), NewVec3(0, 0, 1), NewVec3(1, 0, 0)},
		{"Z cross X", NewVec3(0, 0, 1), NewVec3(1, 0, 0), NewVec3(0, 1, 0)},
		{"Parallel", NewVec3(2, 0, 0), NewVec3(5, 0, 0), NewVec3(0, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.a.Cross(tt.b)
			if !result.Equals(tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestVec3_Normalize(t *testing.T) {
	v := NewVec3(3, 4, 0).Normalize()
	if math.Abs(v.Length()-1) > 1e-12 {
		t.Errorf("Expected unit length, got %f", v.Length())
	}
	if !v.NearlyEquals(NewVec3(0.6, 0.8, 0)) {
		t.Errorf("Expected (0.6, 0.8, 0), got %v", v)
	}

	// Zero vector stays zero rather than producing NaN
	if zero := NewVec3(0, 0, 0).Normalize(); !zero.IsZero() {
		t.Errorf("Expected zero vector, got %v", zero)
	}
}

func TestVec3_Axis(t *testing.T) {
	v := NewVec3(1, 2, 3)
	for axis, expected := range []float64{1, 2, 3} {
		if got := v.Axis(axis); got != expected {
			t.Errorf("Axis(%d): expected %f, got %f", axis, expected, got)
		}
	}

	w := v.WithAxis(1, -5)
	if !w.Equals(NewVec3(1, -5, 3)) {
		t.Errorf("Expected (1, -5, 3), got %v", w)
	}
	if !v.Equals(NewVec3(1, 2, 3)) {
		t.Errorf("WithAxis modified the receiver: %v", v)
	}
}

func TestVec3_AxisOutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic for axis 3")
		}
	}()
	NewVec3(0, 0, 0).Axis(3)
}

func TestNearlyEqual(t *testing.T) {
	tests := []struct {
		name     string
		a, b     float64
		expected bool
	}{
		{"identical", 1, 1, true},
		{"within absolute tolerance", 0, 5e-8, true},
		{"outside absolute tolerance", 0, 1e-6, false},
		{"scaled tolerance for large values", 1e6, 1e6 + 0.05, true},
		{"large values too far apart", 1e6, 1e6 + 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NearlyEqual(tt.a, tt.b); got != tt.expected {
				t.Errorf("NearlyEqual(%g, %g) = %t, expected %t", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

func TestWithinRange(t *testing.T) {
	if !WithinRange(0, 0, 1) || !WithinRange(1, 0, 1) {
		t.Error("Range endpoints should be included")
	}
	if !WithinRange(1+1e-9, 0, 1) {
		t.Error("Values within tolerance of the endpoint should be included")
	}
	if WithinRange(1.001, 0, 1) || WithinRange(-0.001, 0, 1) {
		t.Error("Values outside the range should be excluded")
	}
}
