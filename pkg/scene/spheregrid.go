package scene

import (
	"math"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/material"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

// oklchToRGB converts an OKLCH color (lightness 0-1, chroma, hue in degrees)
// to linear RGB clamped to [0,1]
func oklchToRGB(lightness, chroma, hueDegrees float64) core.Vec3 {
	hue := hueDegrees * math.Pi / 180.0
	a := chroma * math.Cos(hue)
	b := chroma * math.Sin(hue)

	// OKLAB -> nonlinear LMS
	l := lightness + 0.3963377774*a + 0.2158037573*b
	m := lightness - 0.1055613458*a - 0.0638541728*b
	s := lightness - 0.0894841775*a - 1.2914855480*b
	l, m, s = l*l*l, m*m*m, s*s*s

	// LMS -> linear sRGB
	rgb := core.NewVec3(
		+4.0767416621*l-3.3077115913*m+0.2309699292*s,
		-1.2684380046*l+2.6097574011*m-0.3413193965*s,
		-0.0041960863*l-0.7034186147*m+1.7076147010*s,
	)
	return rgb.Clamp(0, 1)
}

// NewSphereGridScene creates a grid of metal spheres on a gray ground.
// Hue varies across X and chroma across depth.
func NewSphereGridScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	defaultCameraConfig := renderer.CameraConfig{
		AspectRatio:     16.0 / 9.0,
		ImageWidth:      800,
		SamplesPerPixel: 64,
		MaxDepth:        40,
	}

	world := geometry.NewHittableList()

	const groundY = -1.0
	world.Add(geometry.NewSphere(
		core.NewVec3(0, groundY-1000, 0), 1000,
		material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)), // medium gray
	))

	gridSize := 10
	spacing := 0.6
	sphereRadius := spacing * 0.35

	// OKLCH parameters for color variation
	baseLightness := 0.65
	minChroma := 0.05
	maxChroma := 0.25

	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			// Grid is centered on x=0 and recedes from z=-2.5
			x := (float64(i) - float64(gridSize-1)/2.0) * spacing
			z := -2.5 - float64(j)*spacing
			position := core.NewVec3(x, groundY+sphereRadius, z)

			hue := (float64(i) / float64(gridSize-1)) * 360.0
			chroma := minChroma + (float64(j)/float64(gridSize-1))*(maxChroma-minChroma)
			lightness := baseLightness + 0.1*math.Sin(float64(i+j)*0.5)

			color := oklchToRGB(lightness, chroma, hue)

			// Vary roughness slightly
			roughness := 0.05 + 0.1*float64((i+j)%3)/2.0
			world.Add(geometry.NewSphere(position, sphereRadius, material.NewMetal(color, roughness)))
		}
	}

	return &Scene{
		Name:         "spheregrid",
		World:        world,
		CameraConfig: applyOverrides(defaultCameraConfig, cameraOverrides),
	}
}
