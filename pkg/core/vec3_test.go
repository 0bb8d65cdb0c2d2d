package core

import (
	"math"
	"math/rand"
	"testing"
)

func TestVec3_NearZero(t *testing.T) {
	tests := []struct {
		name     string
		vector   Vec3
		expected bool
	}{
		{"zero", NewVec3(0, 0, 0), true},
		{"tiny", NewVec3(1e-9, -1e-9, 5e-9), true},
		{"one component large", NewVec3(1e-9, 1e-7, 0), false},
		{"unit", NewVec3(0, 1, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.vector.NearZero(); got != tt.expected {
				t.Errorf("NearZero(%v) = %v, want %v", tt.vector, got, tt.expected)
			}
		})
	}
}

func TestReflect(t *testing.T) {
	v := NewVec3(1, -1, 0)
	n := NewVec3(0, 1, 0)

	got := Reflect(v, n)
	expected := NewVec3(1, 1, 0)
	if !got.Equals(expected) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestRefract_NormalIncidencePassesStraightThrough(t *testing.T) {
	uv := NewVec3(0, 0, -1)
	n := NewVec3(0, 0, 1)

	got := Refract(uv, n, 1.0/1.5)
	if got.Subtract(uv).Length() > 1e-12 {
		t.Errorf("Expected %v, got %v", uv, got)
	}
}

func TestRefract_SnellsLaw(t *testing.T) {
	eta := 1.0 / 1.5
	theta := math.Pi / 6
	uv := NewVec3(math.Sin(theta), -math.Cos(theta), 0)
	n := NewVec3(0, 1, 0)

	out := Refract(uv, n, eta)
	sinOut := out.X / out.Length()
	if math.Abs(sinOut-eta*math.Sin(theta)) > 1e-9 {
		t.Errorf("Expected sin(theta_t)=%f, got %f", eta*math.Sin(theta), sinOut)
	}
	if math.Abs(out.Length()-1) > 1e-9 {
		t.Errorf("Refracted unit vector should stay unit length, got %f", out.Length())
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRay(NewVec3(1, 2, 3), NewVec3(0, 0, -2))
	got := ray.At(0.5)
	if !got.Equals(NewVec3(1, 2, 2)) {
		t.Errorf("Expected (1,2,2), got %v", got)
	}
}

func TestRandomUnitVector_IsUnitAndCoversSphere(t *testing.T) {
	sampler := NewRandomSampler(rand.New(rand.NewSource(42)))

	var negX, negY, negZ bool
	for i := 0; i < 1000; i++ {
		v := RandomUnitVector(sampler)
		if math.Abs(v.Length()-1) > 1e-9 {
			t.Fatalf("Expected unit length, got %f for %v", v.Length(), v)
		}
		negX = negX || v.X < 0
		negY = negY || v.Y < 0
		negZ = negZ || v.Z < 0
	}
	if !negX || !negY || !negZ {
		t.Error("Unit vectors should cover every octant, not only the positive one")
	}
}

func TestSeededSampler_Reproducible(t *testing.T) {
	a := NewSeededSampler(7)
	b := NewSeededSampler(7)
	for i := 0; i < 10; i++ {
		if a.Get1D() != b.Get1D() {
			t.Fatal("Samplers with the same seed should produce the same stream")
		}
	}
}
