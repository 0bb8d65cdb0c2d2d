package renderer

import (
	"math"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
)

// shadowAcneEpsilon keeps scattered rays from re-hitting their own origin
const shadowAcneEpsilon = 0.001

var (
	skyBlue = core.NewVec3(0.5, 0.7, 1.0)
	white   = core.NewVec3(1.0, 1.0, 1.0)
	black   = core.NewVec3(0, 0, 0)
)

// RayColor traces a ray through the world for at most maxDepth bounces.
// Each bounce multiplies a running throughput by the material's attenuation;
// the path ends when it escapes to the sky, is absorbed, or runs out of depth.
func RayColor(ray core.Ray, world geometry.Hittable, maxDepth int, sampler core.Sampler) core.Vec3 {
	throughput := white
	rayT := core.NewInterval(shadowAcneEpsilon, math.Inf(1))

	for depth := maxDepth; depth > 0; depth-- {
		hit, isHit := world.Hit(ray, rayT)
		if !isHit {
			return throughput.MultiplyVec(SkyColor(ray))
		}

		if hit.Material == nil {
			return black
		}
		scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
		if !didScatter {
			return black
		}

		throughput = throughput.MultiplyVec(scatter.Attenuation)
		ray = scatter.Scattered
	}

	return black
}

// SkyColor returns the background gradient: white looking down, sky blue looking up
func SkyColor(ray core.Ray) core.Vec3 {
	unitDirection := ray.Direction.Normalize()
	a := 0.5*unitDirection.Y + 0.5
	return white.Multiply(1.0 - a).Add(skyBlue.Multiply(a))
}

// ToRGBA8 clamps a linear color to [0,1] and truncates it to 8-bit RGBA with opaque alpha.
// No gamma curve is applied.
func ToRGBA8(color core.Vec3) [4]byte {
	return [4]byte{quantize(color.X), quantize(color.Y), quantize(color.Z), 255}
}

func quantize(channel float64) byte {
	intensity := core.NewInterval(0.0, 1.0)
	if math.IsNaN(channel) {
		return 0
	}
	return byte(intensity.Clamp(channel) * 255.999)
}
