package geometry

import (
	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/material"
)

// Box represents an axis-aligned box made up of 6 rectangles
type Box struct {
	Min   core.Vec3 // Minimum corner
	Max   core.Vec3 // Maximum corner
	sides *HittableList
}

// NewBox creates a box from two opposite corners given in any order
func NewBox(p0, p1 core.Vec3, mat material.Material) *Box {
	bounds := core.NewAABB(p0, p1)
	lo, hi := bounds.Min, bounds.Max

	sides := NewHittableList(
		NewXYRect(lo.X, hi.X, lo.Y, hi.Y, hi.Z, mat),
		NewXYRect(lo.X, hi.X, lo.Y, hi.Y, lo.Z, mat).Flipped(),
		NewXZRect(lo.X, hi.X, lo.Z, hi.Z, hi.Y, mat),
		NewXZRect(lo.X, hi.X, lo.Z, hi.Z, lo.Y, mat).Flipped(),
		NewYZRect(lo.Y, hi.Y, lo.Z, hi.Z, hi.X, mat),
		NewYZRect(lo.Y, hi.Y, lo.Z, hi.Z, lo.X, mat).Flipped(),
	)

	return &Box{Min: lo, Max: hi, sides: sides}
}

// Hit delegates to the six sides
func (b *Box) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	return b.sides.Hit(ray, tMin, tMax, sampler)
}

// BoundingBox returns the corner-to-corner box
func (b *Box) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return core.AABB{Min: b.Min, Max: b.Max}, true
}
