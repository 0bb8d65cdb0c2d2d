package scene

import (
	"errors"
	"fmt"
	"sort"

	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

// ErrUnknownScene is returned when a scene name is not registered
var ErrUnknownScene = errors.New("unknown scene")

// Scene contains all the elements needed for rendering
type Scene struct {
	Name         string
	World        *geometry.HittableList // Root of the scene graph
	CameraConfig renderer.CameraConfig  // Recommended camera settings
}

// SceneInfo describes a built-in scene
type SceneInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type sceneFactory struct {
	info   SceneInfo
	create func(overrides ...renderer.CameraConfig) *Scene
}

var builtinScenes = map[string]sceneFactory{
	"default": {
		info:   SceneInfo{Name: "default", Description: "Ground, diffuse center sphere, hollow glass sphere and fuzzy metal sphere"},
		create: NewDefaultScene,
	},
	"random-spheres": {
		info: SceneInfo{Name: "random-spheres", Description: "Field of small random spheres around three large ones"},
		create: func(overrides ...renderer.CameraConfig) *Scene {
			return NewRandomSpheresScene(DefaultRandomSeed, overrides...)
		},
	},
	"spheregrid": {
		info:   SceneInfo{Name: "spheregrid", Description: "Grid of metal spheres colored across the hue wheel"},
		create: NewSphereGridScene,
	},
	"empty": {
		info:   SceneInfo{Name: "empty", Description: "No objects, sky gradient only"},
		create: NewEmptyScene,
	},
}

// Names returns the registered scene names in sorted order
func Names() []string {
	names := make([]string, 0, len(builtinScenes))
	for name := range builtinScenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// List returns the registered scenes sorted by name
func List() []SceneInfo {
	var infos []SceneInfo
	for _, name := range Names() {
		infos = append(infos, builtinScenes[name].info)
	}
	return infos
}

// Create builds the named scene with optional camera overrides
func Create(name string, cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	factory, ok := builtinScenes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	return factory.create(cameraOverrides...), nil
}

// applyOverrides merges the first override, if any, onto defaults
func applyOverrides(defaults renderer.CameraConfig, overrides []renderer.CameraConfig) renderer.CameraConfig {
	if len(overrides) > 0 {
		return renderer.MergeCameraConfig(defaults, overrides[0])
	}
	return defaults
}

// NewEmptyScene creates a scene with nothing in it
func NewEmptyScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	return &Scene{
		Name:         "empty",
		World:        geometry.NewHittableList(),
		CameraConfig: applyOverrides(renderer.DefaultCameraConfig(), cameraOverrides),
	}
}
