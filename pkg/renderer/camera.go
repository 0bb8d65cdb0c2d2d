package renderer

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
)

var (
	ErrInvalidAspectRatio = errors.New("aspect ratio must be positive")
	ErrInvalidImageWidth  = errors.New("image width must be positive")
	ErrInvalidSamples     = errors.New("samples per pixel must be at least 1")
	ErrInvalidMaxDepth    = errors.New("max depth must not be negative")
)

const (
	viewportHeight = 2.0
	focalLength    = 1.0
)

// CameraConfig contains the parameters a caller supplies to build a camera
type CameraConfig struct {
	AspectRatio        float64 // Ratio of image width over height
	ImageWidth         int     // Rendered image width in pixels
	SamplesPerPixel    int     // Number of rays per pixel
	MaxDepth           int     // Maximum ray bounce depth
	StratifiedSampling bool    // Jitter samples inside an n×n sub-pixel grid
}

// DefaultCameraConfig returns sensible default values
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		AspectRatio:     16.0 / 9.0,
		ImageWidth:      400,
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}
}

// MergeCameraConfig returns base with every non-zero field of override applied.
// StratifiedSampling is enabled if either config enables it.
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base
	if override.AspectRatio != 0 {
		result.AspectRatio = override.AspectRatio
	}
	if override.ImageWidth != 0 {
		result.ImageWidth = override.ImageWidth
	}
	if override.SamplesPerPixel != 0 {
		result.SamplesPerPixel = override.SamplesPerPixel
	}
	if override.MaxDepth != 0 {
		result.MaxDepth = override.MaxDepth
	}
	result.StratifiedSampling = base.StratifiedSampling || override.StratifiedSampling
	return result
}

// Validate checks the config against the camera's preconditions
func (c CameraConfig) Validate() error {
	if !(c.AspectRatio > 0) || math.IsInf(c.AspectRatio, 1) {
		return fmt.Errorf("%w: got %v", ErrInvalidAspectRatio, c.AspectRatio)
	}
	if c.ImageWidth <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidImageWidth, c.ImageWidth)
	}
	if c.SamplesPerPixel < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidSamples, c.SamplesPerPixel)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidMaxDepth, c.MaxDepth)
	}
	return nil
}

// Camera generates rays for rendering. It is immutable after construction.
type Camera struct {
	config            CameraConfig
	imageHeight       int
	pixelSamplesScale float64   // Color scale factor for a sum of pixel samples
	strataPerAxis     int       // n for the n×n stratified grid
	center            core.Vec3 // Camera center
	pixel00Loc        core.Vec3 // Location of pixel 0, 0
	pixelDeltaU       core.Vec3 // Offset to pixel to the right
	pixelDeltaV       core.Vec3 // Offset to pixel below
}

// NewCamera creates a camera looking down -Z from the origin
func NewCamera(config CameraConfig) (*Camera, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid camera config: %w", err)
	}

	imageHeight := max(1, int(math.Round(float64(config.ImageWidth)/config.AspectRatio)))

	// Viewport width follows the rounded image aspect, not the nominal one
	viewportWidth := viewportHeight * (float64(config.ImageWidth) / float64(imageHeight))
	center := core.NewVec3(0, 0, 0)

	// Vectors across the horizontal and down the vertical viewport edges
	viewportU := core.NewVec3(viewportWidth, 0, 0)
	viewportV := core.NewVec3(0, -viewportHeight, 0)

	pixelDeltaU := viewportU.Multiply(1.0 / float64(config.ImageWidth))
	pixelDeltaV := viewportV.Multiply(1.0 / float64(imageHeight))

	viewportUpperLeft := center.
		Subtract(core.NewVec3(0, 0, focalLength)).
		Subtract(viewportU.Multiply(0.5)).
		Subtract(viewportV.Multiply(0.5))
	pixel00Loc := viewportUpperLeft.Add(pixelDeltaU.Add(pixelDeltaV).Multiply(0.5))

	return &Camera{
		config:            config,
		imageHeight:       imageHeight,
		pixelSamplesScale: 1.0 / float64(config.SamplesPerPixel),
		strataPerAxis:     max(1, int(math.Sqrt(float64(config.SamplesPerPixel)))),
		center:            center,
		pixel00Loc:        pixel00Loc,
		pixelDeltaU:       pixelDeltaU,
		pixelDeltaV:       pixelDeltaV,
	}, nil
}

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig { return c.config }

// ImageWidth returns the image width in pixels
func (c *Camera) ImageWidth() int { return c.config.ImageWidth }

// ImageHeight returns the derived image height in pixels
func (c *Camera) ImageHeight() int { return c.imageHeight }

// Center returns the camera position
func (c *Camera) Center() core.Vec3 { return c.center }

// Pixel00Loc returns the world position of the center of pixel (0, 0)
func (c *Camera) Pixel00Loc() core.Vec3 { return c.pixel00Loc }

// PixelDeltas returns the world offsets to the next pixel right and down
func (c *Camera) PixelDeltas() (u, v core.Vec3) { return c.pixelDeltaU, c.pixelDeltaV }

// GetRay returns a ray through a uniformly jittered point of pixel (i, j)
func (c *Camera) GetRay(i, j int, sampler core.Sampler) core.Ray {
	return c.rayThrough(i, j, sampleSquare(sampler))
}

// GetStratifiedRay returns a ray through a jittered point inside one cell of the
// pixel's n×n sub-pixel grid. cell is taken modulo n².
func (c *Camera) GetStratifiedRay(i, j, cell int, sampler core.Sampler) core.Ray {
	n := c.strataPerAxis
	cell %= n * n
	return c.rayThrough(i, j, sampleSquareStratified(cell%n, cell/n, n, sampler))
}

// SamplePixel averages SamplesPerPixel traced samples for pixel (i, j)
func (c *Camera) SamplePixel(i, j int, world geometry.Hittable, sampler core.Sampler) core.Vec3 {
	pixelColor := core.NewVec3(0, 0, 0)
	for s := 0; s < c.config.SamplesPerPixel; s++ {
		var ray core.Ray
		if c.config.StratifiedSampling {
			ray = c.GetStratifiedRay(i, j, s, sampler)
		} else {
			ray = c.GetRay(i, j, sampler)
		}
		pixelColor = pixelColor.Add(RayColor(ray, world, c.config.MaxDepth, sampler))
	}
	return pixelColor.Multiply(c.pixelSamplesScale)
}

func (c *Camera) rayThrough(i, j int, offset core.Vec2) core.Ray {
	pixelSample := c.pixel00Loc.
		Add(c.pixelDeltaU.Multiply(float64(i) + offset.X)).
		Add(c.pixelDeltaV.Multiply(float64(j) + offset.Y))

	return core.NewRay(c.center, pixelSample.Subtract(c.center))
}

// sampleSquare returns a random offset in [-0.5, 0.5)²
func sampleSquare(sampler core.Sampler) core.Vec2 {
	s := sampler.Get2D()
	return core.NewVec2(s.X-0.5, s.Y-0.5)
}

// sampleSquareStratified returns a random offset inside cell (sx, sy) of an n×n grid over [-0.5, 0.5)²
func sampleSquareStratified(sx, sy, n int, sampler core.Sampler) core.Vec2 {
	s := sampler.Get2D()
	inv := 1.0 / float64(n)
	return core.NewVec2(
		(float64(sx)+s.X)*inv-0.5,
		(float64(sy)+s.Y)*inv-0.5,
	)
}
