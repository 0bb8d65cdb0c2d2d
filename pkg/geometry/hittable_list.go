package geometry

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

// HittableList is an ordered group of hittables treated as one.
// Order only matters for ties, which go to the earlier object.
type HittableList struct {
	objects []Hittable
}

// NewHittableList creates a list holding the given objects
func NewHittableList(objects ...Hittable) *HittableList {
	list := &HittableList{}
	for _, obj := range objects {
		list.Add(obj)
	}
	return list
}

// Add appends an object to the list
func (l *HittableList) Add(obj Hittable) {
	l.objects = append(l.objects, obj)
}

// Clear removes every object
func (l *HittableList) Clear() {
	l.objects = nil
}

// Len returns the number of direct children
func (l *HittableList) Len() int {
	return len(l.objects)
}

// Objects returns the direct children in evaluation order
func (l *HittableList) Objects() []Hittable {
	return l.objects
}

// Hit returns the closest hit among all children
func (l *HittableList) Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
	var closestHit *material.HitRecord
	closestSoFar := rayT.Max

	for _, obj := range l.objects {
		if hit, isHit := obj.Hit(ray, core.NewInterval(rayT.Min, closestSoFar)); isHit {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}

func (l *HittableList) hittable() {}
