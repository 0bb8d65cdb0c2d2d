package renderer

import (
	"context"
	"image"
	"testing"

	"github.com/df07/go-weekend-raytracer/pkg/geometry"
)

func TestNewTileGrid_CoversImageOnce(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		tileSize      int
		expectedTiles int
	}{
		{"exact fit", 64, 64, 32, 4},
		{"partial edge tiles", 70, 33, 32, 6},
		{"single tile", 10, 5, 64, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tiles := NewTileGrid(tt.width, tt.height, tt.tileSize)
			if len(tiles) != tt.expectedTiles {
				t.Fatalf("Expected %d tiles, got %d", tt.expectedTiles, len(tiles))
			}

			covered := make([]int, tt.width*tt.height)
			for id, tile := range tiles {
				if tile.ID != id {
					t.Errorf("Expected tile ID %d, got %d", id, tile.ID)
				}
				if !tile.Bounds.In(image.Rect(0, 0, tt.width, tt.height)) {
					t.Errorf("Tile %d bounds %v exceed the image", id, tile.Bounds)
				}
				for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
					for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
						covered[y*tt.width+x]++
					}
				}
			}
			for i, count := range covered {
				if count != 1 {
					t.Fatalf("Pixel %d covered %d times", i, count)
				}
			}
		})
	}
}

func TestTileRenderer_WritesOnlyItsTile(t *testing.T) {
	camera := testCamera(t, 16, 1)
	frame := NewFrame(camera.ImageWidth(), camera.ImageHeight())
	renderer := NewTileRenderer(camera, geometry.NewHittableList(), 42)

	tile := &Tile{ID: 3, Bounds: image.Rect(4, 2, 8, 6)}
	samples, err := renderer.RenderTile(context.Background(), tile, frame)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if samples != 16 {
		t.Errorf("Expected 16 samples, got %d", samples)
	}

	for y := 0; y < frame.Height; y++ {
		for x := 0; x < frame.Width; x++ {
			alpha := frame.Pix[(y*frame.Width+x)*4+3]
			inside := image.Pt(x, y).In(tile.Bounds)
			if inside && alpha != 255 {
				t.Errorf("Pixel (%d,%d) inside the tile was not written", x, y)
			}
			if !inside && alpha != 0 {
				t.Errorf("Pixel (%d,%d) outside the tile was written", x, y)
			}
		}
	}
}

func TestTileRenderer_StopsWhenCancelled(t *testing.T) {
	camera := testCamera(t, 16, 1)
	frame := NewFrame(camera.ImageWidth(), camera.ImageHeight())
	renderer := NewTileRenderer(camera, geometry.NewHittableList(), 42)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	samples, err := renderer.RenderTile(ctx, &Tile{Bounds: image.Rect(0, 0, 16, 9)}, frame)
	if err == nil {
		t.Fatal("Expected an error from a cancelled context")
	}
	if samples != 0 {
		t.Errorf("Expected no samples, got %d", samples)
	}
}
