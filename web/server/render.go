package server

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/df07/go-weekend-raytracer/pkg/output"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
	"github.com/df07/go-weekend-raytracer/pkg/scene"
)

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene      string // Scene name (e.g., "random-spheres")
	Width      int    // Image width, 0 keeps the scene default
	Samples    int    // Samples per pixel, 0 keeps the scene default
	MaxDepth   int    // Maximum bounce depth, 0 keeps the scene default
	Stratified bool   // Stratified pixel sampling
	Seed       int64  // Base seed for the tile samplers
}

// handleRender renders a scene and responds with the PNG
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	sceneObj, err := scene.Create(req.Scene, renderer.CameraConfig{
		ImageWidth:         req.Width,
		SamplesPerPixel:    req.Samples,
		MaxDepth:           req.MaxDepth,
		StratifiedSampling: req.Stratified,
	})
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}

	camera, err := renderer.NewCamera(sceneObj.CameraConfig)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	renderID := "render-" + strconv.FormatInt(s.renderCount.Add(1), 10)
	config := renderer.DefaultRenderConfig()
	config.TileSize = 64
	config.Seed = req.Seed
	raytracer := renderer.NewRaytracer(camera, sceneObj.World, config, NewWebLogger(renderID, s.consoleChan))

	// Use request context to stop rendering when the client disconnects
	frame, stats, err := raytracer.Render(r.Context())
	if err != nil {
		log.Printf("%s: %v", renderID, err)
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}

	var buf bytes.Buffer
	if err := output.EncodePNG(&buf, frame, output.DefaultOptions()); err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode image: %v", err))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Render-Id", renderID)
	w.Header().Set("X-Render-Width", strconv.Itoa(frame.Width))
	w.Header().Set("X-Render-Height", strconv.Itoa(frame.Height))
	w.Header().Set("X-Render-Samples", strconv.FormatInt(stats.TotalSamples, 10))
	w.Header().Set("X-Render-Duration-Ms", strconv.FormatInt(stats.Duration.Milliseconds(), 10))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Printf("%s: failed to write response: %v", renderID, err)
	}
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{Scene: query.Get("scene")}
	if req.Scene == "" {
		req.Scene = "default"
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 0, 16, 2000); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(query, "samples", 0, 1, 10000); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(query, "depth", 0, 1, 1000); err != nil {
		return nil, err
	}
	if req.Stratified, err = parseBoolParam(query, "stratified", false); err != nil {
		return nil, err
	}
	if req.Seed, err = parseInt64Param(query, "seed", renderer.DefaultRenderConfig().Seed); err != nil {
		return nil, err
	}

	// Performance warning
	if req.Width > 800 && req.Samples > 100 {
		log.Printf("Render warning: Large image with high samples may render slowly")
	}

	return req, nil
}

func statusForError(err error) int {
	if errors.Is(err, scene.ErrUnknownScene) {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}
