package renderer

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
)

// RenderConfig contains configuration for how a frame is scheduled
type RenderConfig struct {
	TileSize   int   // Size of each square tile in pixels
	NumWorkers int   // Number of parallel workers (0 = use CPU count)
	Seed       int64 // Base seed; tile i samples with Seed+i
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		TileSize:   32,
		NumWorkers: 0,
		Seed:       42,
	}
}

// Frame is a rendered image: row-major RGBA, 4 bytes per pixel
type Frame struct {
	Width  int
	Height int
	Pix    []byte
}

// NewFrame allocates a frame of the given size
func NewFrame(width, height int) *Frame {
	return &Frame{
		Width:  width,
		Height: height,
		Pix:    make([]byte, width*height*4),
	}
}

// SetPixel quantizes color into the pixel at (i, j)
func (f *Frame) SetPixel(i, j int, color core.Vec3) {
	rgba := ToRGBA8(color)
	copy(f.Pix[(j*f.Width+i)*4:], rgba[:])
}

// Raytracer renders a world as seen through a camera
type Raytracer struct {
	camera *Camera
	world  geometry.Hittable
	config RenderConfig
	logger core.Logger
}

// NewRaytracer creates a new raytracer. A nil logger discards output.
func NewRaytracer(camera *Camera, world geometry.Hittable, config RenderConfig, logger core.Logger) *Raytracer {
	if config.TileSize <= 0 {
		config.TileSize = DefaultRenderConfig().TileSize
	}
	if logger == nil {
		logger = NewDiscardLogger()
	}
	return &Raytracer{
		camera: camera,
		world:  world,
		config: config,
		logger: logger,
	}
}

// Render traces every pixel and returns the finished frame.
// Cancelling ctx stops the render between rows and returns ctx.Err().
func (rt *Raytracer) Render(ctx context.Context) (*Frame, RenderStats, error) {
	startTime := time.Now()
	width, height := rt.camera.ImageWidth(), rt.camera.ImageHeight()

	frame := NewFrame(width, height)
	tiles := NewTileGrid(width, height, rt.config.TileSize)
	pool := NewWorkerPool(rt.config.NumWorkers)
	tileRenderer := NewTileRenderer(rt.camera, rt.world, rt.config.Seed)

	rt.logger.Printf("Rendering %dx%d, %d samples/pixel, max depth %d (%d tiles, %d workers)\n",
		width, height, rt.camera.Config().SamplesPerPixel, rt.camera.Config().MaxDepth,
		len(tiles), pool.GetNumWorkers())

	var totalSamples atomic.Int64
	err := pool.Run(ctx, tiles, func(ctx context.Context, tile *Tile) error {
		samples, err := tileRenderer.RenderTile(ctx, tile, frame)
		totalSamples.Add(samples)
		return err
	})

	stats := RenderStats{
		TotalPixels:  width * height,
		TotalSamples: totalSamples.Load(),
		Tiles:        len(tiles),
		Workers:      pool.GetNumWorkers(),
		Duration:     time.Since(startTime),
	}

	if err != nil {
		rt.logger.Printf("Render stopped after %v: %v\n", stats.Duration, err)
		return nil, stats, fmt.Errorf("render cancelled: %w", err)
	}

	rt.logger.Printf("Render completed in %v (%.1f samples/pixel)\n", stats.Duration, stats.AverageSamples())
	return frame, stats, nil
}

// RenderScene builds a camera from config and renders world with default scheduling
func RenderScene(ctx context.Context, world geometry.Hittable, config CameraConfig) (*Frame, error) {
	camera, err := NewCamera(config)
	if err != nil {
		return nil, err
	}
	frame, _, err := NewRaytracer(camera, world, DefaultRenderConfig(), nil).Render(ctx)
	return frame, err
}
