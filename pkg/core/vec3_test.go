package core

import (
	"math"
	"testing"
)

func TestVec3_Arithmetic(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, -5, 6)

	tests := []struct {
		name     string
		got      Vec3
		expected Vec3
	}{
		{"add", a.Add(b), NewVec3(5, -3, 9)},
		{"subtract", a.Subtract(b), NewVec3(-3, 7, -3)},
		{"multiply", a.Multiply(2), NewVec3(2, 4, 6)},
		{"divide", b.Divide(2), NewVec3(2, -2.5, 3)},
		{"multiply vec", a.MultiplyVec(b), NewVec3(4, -10, 18)},
		{"cross", NewVec3(1, 0, 0).Cross(NewVec3(0, 1, 0)), NewVec3(0, 0, 1)},
		{"negate", a.Negate(), NewVec3(-1, -2, -3)},
		{"min", a.Min(b), NewVec3(1, -5, 3)},
		{"max", a.Max(b), NewVec3(4, 2, 6)},
		{"clamp", NewVec3(-1, 0.5, 2).Clamp(0, 1), NewVec3(0, 0.5, 1)},
		{"sqrt clamps negatives", NewVec3(4, -1, 0.25).Sqrt(), NewVec3(2, 0, 0.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !approxVec(tt.got, tt.expected, 1e-12) {
				t.Errorf("Expected %v, got %v", tt.expected, tt.got)
			}
		})
	}

	if dot := a.Dot(b); dot != 12 {
		t.Errorf("Expected dot 12, got %f", dot)
	}
}

func TestVec3_Normalize(t *testing.T) {
	n := NewVec3(3, 0, 4).Normalize()
	if math.Abs(n.Length()-1) > 1e-12 {
		t.Errorf("Expected unit length, got %f", n.Length())
	}
	if zero := (Vec3{}).Normalize(); zero != (Vec3{}) {
		t.Errorf("Expected zero vector to stay zero, got %v", zero)
	}
}

func TestVec3_AxisAndPredicates(t *testing.T) {
	v := NewVec3(7, 8, 9)
	for axis, expected := range []float64{7, 8, 9} {
		if got := v.Axis(axis); got != expected {
			t.Errorf("Axis %d: expected %f, got %f", axis, expected, got)
		}
	}

	if !NewVec3(1e-9, -1e-9, 0).NearZero() {
		t.Error("Expected tiny vector to be near zero")
	}
	if NewVec3(1e-3, 0, 0).NearZero() {
		t.Error("Expected 1e-3 component to not be near zero")
	}
	if !NewVec3(0, math.NaN(), 0).HasNaN() {
		t.Error("Expected NaN to be detected")
	}
	if NewVec3(math.Inf(1), 0, 0).HasNaN() {
		t.Error("Expected Inf to not count as NaN")
	}
}

func TestReflectRefract(t *testing.T) {
	n := NewVec3(0, 1, 0)

	reflected := Reflect(NewVec3(1, -1, 0), n)
	if !approxVec(reflected, NewVec3(1, 1, 0), 1e-12) {
		t.Errorf("Expected (1,1,0), got %v", reflected)
	}

	// Equal indices leave the direction unchanged
	in := NewVec3(1, -1, 0).Normalize()
	refracted := Refract(in, n, 1.0)
	if !approxVec(refracted, in, 1e-12) {
		t.Errorf("Expected %v, got %v", in, refracted)
	}

	if got := DegreesToRadians(180); math.Abs(got-math.Pi) > 1e-15 {
		t.Errorf("Expected pi, got %f", got)
	}
}
