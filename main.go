package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-weekend-raytracer/pkg/output"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
	"github.com/df07/go-weekend-raytracer/pkg/scene"
)

// Config holds the command line options
type Config struct {
	SceneType  string
	Width      int
	Samples    int
	MaxDepth   int
	Workers    int
	Seed       int64
	Stratified bool
	OutputPath string
}

func main() {
	config, help := parseFlags()

	// Show help if requested
	if help {
		showHelp()
		return
	}

	fmt.Println("Starting Weekend Raytracer...")

	if err := run(config); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() (Config, bool) {
	config := Config{}
	flag.StringVar(&config.SceneType, "scene", "default", "Scene type: "+strings.Join(scene.Names(), ", "))
	flag.IntVar(&config.Width, "width", 0, "Image width in pixels (0 uses the scene default)")
	flag.IntVar(&config.Samples, "samples", 0, "Samples per pixel (0 uses the scene default)")
	flag.IntVar(&config.MaxDepth, "depth", 0, "Maximum ray bounce depth (0 uses the scene default)")
	flag.IntVar(&config.Workers, "workers", 0, "Number of parallel workers (0 = auto-detect CPU count)")
	flag.Int64Var(&config.Seed, "seed", renderer.DefaultRenderConfig().Seed, "Base random seed")
	flag.BoolVar(&config.Stratified, "stratified", false, "Use stratified pixel sampling")
	flag.StringVar(&config.OutputPath, "out", "", "Output file (default output/<scene>/render_<timestamp>.png)")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()
	return config, *help
}

func showHelp() {
	fmt.Println("Weekend Raytracer")
	fmt.Println("Usage: raytracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")
	for _, info := range scene.List() {
		fmt.Printf("  %-15s - %s\n", info.Name, info.Description)
	}
	fmt.Println()
	fmt.Println("Output will be saved to output/<scene_type>/render_<timestamp>.png")
}

func run(config Config) error {
	selectedScene, err := createScene(config.SceneType, renderer.CameraConfig{
		ImageWidth:         config.Width,
		SamplesPerPixel:    config.Samples,
		MaxDepth:           config.MaxDepth,
		StratifiedSampling: config.Stratified,
	})
	if err != nil {
		return err
	}

	camera, err := renderer.NewCamera(selectedScene.CameraConfig)
	if err != nil {
		return fmt.Errorf("invalid camera settings: %w", err)
	}

	renderConfig := renderer.DefaultRenderConfig()
	renderConfig.NumWorkers = config.Workers
	renderConfig.Seed = config.Seed
	raytracer := renderer.NewRaytracer(camera, selectedScene.World, renderConfig, renderer.NewDefaultLogger())

	// Ctrl-C stops the render between rows
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	frame, _, err := raytracer.Render(ctx)
	if err != nil {
		return err
	}

	filename := config.OutputPath
	if filename == "" {
		filename = outputFilename(selectedScene.Name, time.Now())
	}
	if err := output.WritePNGFile(filename, frame, output.DefaultOptions()); err != nil {
		return fmt.Errorf("failed to save PNG: %w", err)
	}

	fmt.Printf("Render saved as %s\n", filename)
	return nil
}

// createScene creates a scene based on the scene type
func createScene(sceneType string, overrides ...renderer.CameraConfig) (*scene.Scene, error) {
	fmt.Printf("Using %s scene...\n", sceneType)
	return scene.Create(sceneType, overrides...)
}

// outputFilename builds the timestamped path for a scene render
func outputFilename(sceneName string, now time.Time) string {
	timestamp := now.Format("20060102_150405")
	return filepath.Join("output", sceneName, fmt.Sprintf("render_%s.png", timestamp))
}
