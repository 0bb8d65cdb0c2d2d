package scene

import (
	"math/rand"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/material"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

// DefaultRandomSeed is the seed used for the registered random-spheres scene
const DefaultRandomSeed = 1

// NewRandomSpheresScene creates a field of small random spheres in front of the camera.
// The same seed always produces the same scene.
func NewRandomSpheresScene(seed int64, cameraOverrides ...renderer.CameraConfig) *Scene {
	defaultCameraConfig := renderer.CameraConfig{
		AspectRatio:     16.0 / 9.0,
		ImageWidth:      600,
		SamplesPerPixel: 50,
		MaxDepth:        50,
	}

	random := rand.New(rand.NewSource(seed))
	randomColor := func(lo, hi float64) core.Vec3 {
		return core.NewVec3(
			lo+(hi-lo)*random.Float64(),
			lo+(hi-lo)*random.Float64(),
			lo+(hi-lo)*random.Float64(),
		)
	}

	world := geometry.NewHittableList()

	groundMaterial := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	world.Add(geometry.NewSphere(core.NewVec3(0, -1001, 0), 1000, groundMaterial))

	glass := material.NewDielectric(1.5)
	bigSpheres := []struct {
		center core.Vec3
		mat    material.Material
	}{
		{core.NewVec3(0, 0, -6), glass},
		{core.NewVec3(-2.2, 0, -6.5), material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))},
		{core.NewVec3(2.2, 0, -6.5), material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)},
	}

	const smallRadius = 0.2
	for a := -6; a < 6; a++ {
		for b := -14; b < -2; b++ {
			center := core.NewVec3(
				float64(a)+0.9*random.Float64(),
				-1+smallRadius,
				float64(b)+0.9*random.Float64(),
			)

			// Keep small spheres out of the large ones
			overlaps := false
			for _, big := range bigSpheres {
				if center.Subtract(core.NewVec3(big.center.X, center.Y, big.center.Z)).Length() <= 1.2 {
					overlaps = true
					break
				}
			}
			if overlaps {
				continue
			}

			var sphereMaterial material.Material
			switch chooseMat := random.Float64(); {
			case chooseMat < 0.8:
				sphereMaterial = material.NewLambertian(randomColor(0, 1).MultiplyVec(randomColor(0, 1)))
			case chooseMat < 0.95:
				sphereMaterial = material.NewMetal(randomColor(0.5, 1), 0.5*random.Float64())
			default:
				sphereMaterial = glass
			}
			world.Add(geometry.NewSphere(center, smallRadius, sphereMaterial))
		}
	}

	for _, big := range bigSpheres {
		world.Add(geometry.NewSphere(big.center, 1.0, big.mat))
	}

	return &Scene{
		Name:         "random-spheres",
		World:        world,
		CameraConfig: applyOverrides(defaultCameraConfig, cameraOverrides),
	}
}
