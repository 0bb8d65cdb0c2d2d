package material

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// Metal represents a metallic material with specular reflection
type Metal struct {
	Albedo core.Vec3 // Metal color
	Fuzz   float64   // 0.0 = perfect mirror; values above 1 are allowed but not physical
}

// NewMetal creates a new metal material. Fuzz is stored as given.
func NewMetal(albedo core.Vec3, fuzz float64) *Metal {
	return &Metal{Albedo: albedo, Fuzz: fuzz}
}

// Scatter implements the Material interface for metal scattering
func (m *Metal) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	reflected := core.Reflect(rayIn.Direction, hit.Normal).Normalize()

	fuzzed := reflected.Add(core.RandomUnitVector(sampler).Multiply(m.Fuzz))

	// Rays fuzzed below the surface are absorbed
	if fuzzed.Dot(hit.Normal) <= 0 {
		return ScatterResult{}, false
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, fuzzed),
		Attenuation: m.Albedo,
	}, true
}

func (m *Metal) material() {}
