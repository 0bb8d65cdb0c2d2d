package material

import (
	"math"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// Dielectric represents a transparent material like glass that can both reflect and refract
type Dielectric struct {
	RefractionIndex float64 // Index of refraction (e.g., 1.5 for glass)
}

// NewDielectric creates a new dielectric material
func NewDielectric(refractionIndex float64) *Dielectric {
	return &Dielectric{RefractionIndex: refractionIndex}
}

// Scatter implements the Material interface for dielectric scattering.
// Dielectrics never absorb.
func (d *Dielectric) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	// Clear glass does not tint
	attenuation := core.NewVec3(1.0, 1.0, 1.0)

	ratio := d.refractionRatio(hit.FrontFace)
	unitDirection := rayIn.Direction.Normalize()

	cosTheta := math.Min(unitDirection.Negate().Dot(hit.Normal), 1.0)

	var direction core.Vec3
	if cannotRefract(ratio, cosTheta) || Reflectance(cosTheta, d.RefractionIndex) > sampler.Get1D() {
		direction = core.Reflect(rayIn.Direction, hit.Normal)
	} else {
		direction = core.Refract(unitDirection, hit.Normal, ratio)
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, direction),
		Attenuation: attenuation,
	}, true
}

// refractionRatio is 1/n when entering the material and n when leaving it
func (d *Dielectric) refractionRatio(frontFace bool) float64 {
	if frontFace {
		return 1.0 / d.RefractionIndex
	}
	return d.RefractionIndex
}

func (d *Dielectric) material() {}

// cannotRefract reports total internal reflection for the given ratio and cosine
func cannotRefract(ratio, cosTheta float64) bool {
	sinTheta := math.Sqrt(math.Max(0, 1.0-cosTheta*cosTheta))
	return ratio*sinTheta > 1.0
}

// Reflectance calculates the Fresnel reflectance using Schlick's approximation.
// refractionIndex is the material's own index, not the entering/exiting ratio.
func Reflectance(cosine, refractionIndex float64) float64 {
	r0 := (1 - refractionIndex) / (1 + refractionIndex)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
