package geometry

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

// Hittable is anything a ray can intersect.
// The set is closed: *Sphere and *HittableList.
type Hittable interface {
	// Hit returns the nearest intersection whose t lies strictly inside rayT
	Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool)

	hittable()
}
