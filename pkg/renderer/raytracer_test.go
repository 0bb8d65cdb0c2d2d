package renderer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

// recordingLogger collects log lines for assertions
type recordingLogger struct {
	lines []string
}

func (l *recordingLogger) Printf(format string, args ...interface{}) {
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

func testWorld() *geometry.HittableList {
	return geometry.NewHittableList(
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))),
		geometry.NewSphere(core.NewVec3(0, 0, -1.2), 0.5, material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))),
		geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.4, material.NewDielectric(1.0/1.5)),
		geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 1.0)),
	)
}

func testCamera(t *testing.T, width, samples int) *Camera {
	t.Helper()
	camera, err := NewCamera(CameraConfig{AspectRatio: 16.0 / 9.0, ImageWidth: width, SamplesPerPixel: samples, MaxDepth: 10})
	if err != nil {
		t.Fatalf("Unexpected camera error: %v", err)
	}
	return camera
}

func TestRaytracer_OutputBufferInvariants(t *testing.T) {
	camera := testCamera(t, 32, 4)
	raytracer := NewRaytracer(camera, testWorld(), RenderConfig{TileSize: 8, NumWorkers: 2, Seed: 42}, nil)

	frame, stats, err := raytracer.Render(context.Background())
	if err != nil {
		t.Fatalf("Unexpected render error: %v", err)
	}

	if frame.Width != 32 || frame.Height != 18 {
		t.Fatalf("Expected 32x18 frame, got %dx%d", frame.Width, frame.Height)
	}
	if len(frame.Pix) != 4*frame.Width*frame.Height {
		t.Fatalf("Expected %d bytes, got %d", 4*frame.Width*frame.Height, len(frame.Pix))
	}
	for i := 3; i < len(frame.Pix); i += 4 {
		if frame.Pix[i] != 255 {
			t.Fatalf("Alpha at pixel %d is %d, expected 255", i/4, frame.Pix[i])
		}
	}

	if stats.TotalPixels != 32*18 {
		t.Errorf("Expected %d pixels, got %d", 32*18, stats.TotalPixels)
	}
	if stats.TotalSamples != int64(32*18*4) {
		t.Errorf("Expected %d samples, got %d", 32*18*4, stats.TotalSamples)
	}
	if stats.AverageSamples() != 4 {
		t.Errorf("Expected 4 samples per pixel, got %f", stats.AverageSamples())
	}
	if stats.Tiles != 12 {
		t.Errorf("Expected 12 tiles, got %d", stats.Tiles)
	}
}

func TestRaytracer_EmptySceneTopRowIsSky(t *testing.T) {
	camera := testCamera(t, 16, 1)
	raytracer := NewRaytracer(camera, geometry.NewHittableList(), DefaultRenderConfig(), nil)

	frame, _, err := raytracer.Render(context.Background())
	if err != nil {
		t.Fatalf("Unexpected render error: %v", err)
	}

	// Blue channel of the sky is always 1.0
	for i := 2; i < len(frame.Pix); i += 4 {
		if frame.Pix[i] != 255 {
			t.Fatalf("Expected saturated blue for sky, got %d at pixel %d", frame.Pix[i], i/4)
		}
	}

	// Red falls off towards the top of the image
	top := frame.Pix[0]
	bottom := frame.Pix[(frame.Height-1)*frame.Width*4]
	if top >= bottom {
		t.Errorf("Expected bluer sky at the top (red %d) than at the bottom (red %d)", top, bottom)
	}
}

func TestRaytracer_DeterministicAcrossWorkerCounts(t *testing.T) {
	camera := testCamera(t, 24, 3)
	world := testWorld()

	var frames []*Frame
	for _, workers := range []int{1, 3, 8} {
		raytracer := NewRaytracer(camera, world, RenderConfig{TileSize: 5, NumWorkers: workers, Seed: 9}, nil)
		frame, _, err := raytracer.Render(context.Background())
		if err != nil {
			t.Fatalf("Unexpected render error with %d workers: %v", workers, err)
		}
		frames = append(frames, frame)
	}

	for i := 1; i < len(frames); i++ {
		if !bytes.Equal(frames[0].Pix, frames[i].Pix) {
			t.Errorf("Render %d differs from the single-worker render", i)
		}
	}
}

func TestRaytracer_SeedChangesNoise(t *testing.T) {
	camera := testCamera(t, 16, 2)
	world := testWorld()

	a, _, _ := NewRaytracer(camera, world, RenderConfig{TileSize: 16, NumWorkers: 1, Seed: 1}, nil).Render(context.Background())
	b, _, _ := NewRaytracer(camera, world, RenderConfig{TileSize: 16, NumWorkers: 1, Seed: 2}, nil).Render(context.Background())
	if bytes.Equal(a.Pix, b.Pix) {
		t.Error("Expected different seeds to produce different noise")
	}
}

func TestRaytracer_Cancelled(t *testing.T) {
	camera := testCamera(t, 64, 50)
	logger := &recordingLogger{}
	raytracer := NewRaytracer(camera, testWorld(), RenderConfig{TileSize: 8, NumWorkers: 2}, logger)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	frame, _, err := raytracer.Render(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
	if frame != nil {
		t.Error("Expected no frame from a cancelled render")
	}
	if len(logger.lines) == 0 || !strings.Contains(logger.lines[len(logger.lines)-1], "stopped") {
		t.Errorf("Expected a stop message in the log, got %v", logger.lines)
	}
}

func TestRenderScene_InvalidConfig(t *testing.T) {
	_, err := RenderScene(context.Background(), testWorld(), CameraConfig{AspectRatio: 1, ImageWidth: 4})
	if !errors.Is(err, ErrInvalidSamples) {
		t.Errorf("Expected ErrInvalidSamples, got %v", err)
	}
}

func TestRenderScene_Stratified(t *testing.T) {
	frame, err := RenderScene(context.Background(), testWorld(),
		CameraConfig{AspectRatio: 2, ImageWidth: 8, SamplesPerPixel: 4, MaxDepth: 4, StratifiedSampling: true})
	if err != nil {
		t.Fatalf("Unexpected render error: %v", err)
	}
	if len(frame.Pix) != 8*4*4 {
		t.Errorf("Expected %d bytes, got %d", 8*4*4, len(frame.Pix))
	}
}
