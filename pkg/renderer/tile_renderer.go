package renderer

import (
	"context"
	"image"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
)

// Tile is a rectangular block of pixels rendered as one unit of work
type Tile struct {
	ID     int             // Unique tile identifier, also offsets the tile's random seed
	Bounds image.Rectangle // Pixel bounds (x0,y0,x1,y1)
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int) []*Tile {
	var tiles []*Tile
	tileID := 0

	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, &Tile{ID: tileID, Bounds: image.Rect(x0, y0, x1, y1)})
			tileID++
		}
	}

	return tiles
}

// TileRenderer renders individual tiles of a frame
type TileRenderer struct {
	camera *Camera
	world  geometry.Hittable
	seed   int64
}

// NewTileRenderer creates a new tile renderer for the given camera and world
func NewTileRenderer(camera *Camera, world geometry.Hittable, seed int64) *TileRenderer {
	return &TileRenderer{
		camera: camera,
		world:  world,
		seed:   seed,
	}
}

// RenderTile renders the tile's pixels into frame and returns the number of samples taken.
// Every tile owns its random stream, so the result does not depend on scheduling.
// The context is checked once per row.
func (tr *TileRenderer) RenderTile(ctx context.Context, tile *Tile, frame *Frame) (int64, error) {
	sampler := core.NewSeededSampler(tr.seed + int64(tile.ID))
	samplesPerPixel := int64(tr.camera.Config().SamplesPerPixel)

	var samples int64
	for j := tile.Bounds.Min.Y; j < tile.Bounds.Max.Y; j++ {
		if err := ctx.Err(); err != nil {
			return samples, err
		}
		for i := tile.Bounds.Min.X; i < tile.Bounds.Max.X; i++ {
			frame.SetPixel(i, j, tr.camera.SamplePixel(i, j, tr.world, sampler))
			samples += samplesPerPixel
		}
	}

	return samples, nil
}
