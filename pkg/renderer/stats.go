package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels  int           // Total number of pixels rendered
	TotalSamples int64         // Total number of camera samples taken
	Tiles        int           // Number of tiles the image was split into
	Workers      int           // Number of tiles rendered concurrently
	Duration     time.Duration // Wall-clock render time
}

// AverageSamples returns the mean samples per pixel
func (s RenderStats) AverageSamples() float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	return float64(s.TotalSamples) / float64(s.TotalPixels)
}
