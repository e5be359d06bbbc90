package geometry

import (
	"errors"

	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/material"
)

// Hittable is anything a ray can intersect: primitives, lists, transforms, volumes and BVH nodes
type Hittable interface {
	// Hit returns the nearest intersection with t in the open interval (tMin, tMax).
	// The sampler is only consumed by probabilistic geometry such as volumes.
	Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool)

	// BoundingBox encloses the object over the shutter interval [time0, time1].
	// false means the object has no finite box.
	BoundingBox(time0, time1 float64) (core.AABB, bool)
}

var (
	// ErrNoBoundingBox is returned when an object without a bounding box is given to the BVH builder
	ErrNoBoundingBox = errors.New("object has no bounding box")

	// ErrEmptyBVH is returned when a BVH is built from no objects
	ErrEmptyBVH = errors.New("cannot build BVH from an empty object list")

	// ErrInvalidDensity is returned for a volume whose density is not a positive finite number
	ErrInvalidDensity = errors.New("volume density must be positive and finite")
)

// inOpenRange reports whether t lies strictly inside (tMin, tMax); NaN is never in range
func inOpenRange(t, tMin, tMax float64) bool {
	return t > tMin && t < tMax
}
