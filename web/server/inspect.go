package server

import (
	"fmt"
	"math"
	"net/http"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/material"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
	"github.com/df07/go-weekend-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType,omitempty"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
	Geometry     map[string]interface{} `json:"geometry,omitempty"`
}

func toArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(c core.Vec3) string {
	rgba := renderer.ToRGBA8(c)
	return fmt.Sprintf("#%02x%02x%02x", rgba[0], rgba[1], rgba[2])
}

// extractMaterialInfo extracts material parameters with type assertions
func extractMaterialInfo(mat material.Material) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch m := mat.(type) {
	case *material.Lambertian:
		properties["albedo"] = toArray(m.Albedo)
		properties["color"] = hexColor(m.Albedo)
		return "lambertian", properties

	case *material.Metal:
		properties["albedo"] = toArray(m.Albedo)
		properties["color"] = hexColor(m.Albedo)
		properties["fuzz"] = m.Fuzz
		return "metal", properties

	case *material.Dielectric:
		properties["refractionIndex"] = m.RefractionIndex
		properties["color"] = "#ffffff" // Clear glass
		return "dielectric", properties

	default:
		return "unknown", properties
	}
}

// findSphere returns the sphere in world whose hit distance matches hit
func findSphere(world *geometry.HittableList, ray core.Ray, hit *material.HitRecord) *geometry.Sphere {
	rayT := core.NewInterval(0.001, math.Inf(1))
	for _, object := range world.Objects() {
		sphere, ok := object.(*geometry.Sphere)
		if !ok {
			continue
		}
		if rec, ok := sphere.Hit(ray, rayT); ok && rec.T == hit.T {
			return sphere
		}
	}
	return nil
}

// inspectPixel casts the ray through the center of pixel (x, y) and reports the closest hit
func inspectPixel(sceneObj *scene.Scene, camera *renderer.Camera, x, y int) InspectResponse {
	deltaU, deltaV := camera.PixelDeltas()
	pixelCenter := camera.Pixel00Loc().
		Add(deltaU.Multiply(float64(x))).
		Add(deltaV.Multiply(float64(y)))
	ray := core.NewRay(camera.Center(), pixelCenter.Subtract(camera.Center()))

	hit, ok := sceneObj.World.Hit(ray, core.NewInterval(0.001, math.Inf(1)))
	if !ok {
		return InspectResponse{Hit: false}
	}

	materialType, properties := extractMaterialInfo(hit.Material)
	response := InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		Point:        toArray(hit.Point),
		Normal:       toArray(hit.Normal),
		Distance:     hit.T,
		FrontFace:    hit.FrontFace,
		Properties:   properties,
	}
	if sphere := findSphere(sceneObj.World, ray, hit); sphere != nil {
		response.GeometryType = "sphere"
		response.Geometry = map[string]interface{}{
			"center": toArray(sphere.Center),
			"radius": sphere.Radius,
		}
	}
	return response
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	sceneName := query.Get("scene")
	if sceneName == "" {
		sceneName = "default"
	}

	width, err := parseIntParam(query, "width", 0, 16, 2000)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sceneObj, err := scene.Create(sceneName, renderer.CameraConfig{ImageWidth: width})
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}
	camera, err := renderer.NewCamera(sceneObj.CameraConfig)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	pixelX, err := parseIntParam(query, "x", -1, 0, camera.ImageWidth()-1)
	if err != nil || pixelX < 0 {
		writeError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := parseIntParam(query, "y", -1, 0, camera.ImageHeight()-1)
	if err != nil || pixelY < 0 {
		writeError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}

	writeJSON(w, http.StatusOK, inspectPixel(sceneObj, camera, pixelX, pixelY))
}
