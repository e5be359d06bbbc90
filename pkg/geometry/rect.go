package geometry

import (
	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/material"
)

// rectPadding gives flat rectangles a non-zero thickness in their bounding box
const rectPadding = 1e-4

// Axis indices
const (
	axisX = 0
	axisY = 1
	axisZ = 2
)

// AARect is an axis-aligned rectangle lying in the plane Axis(K) = K.
// The rectangle spans [A0, A1] along axis A and [B0, B1] along axis B.
type AARect struct {
	A0, A1   float64
	B0, B1   float64
	K        float64
	Material material.Material

	a, b, k int     // axis indices: the two spanned axes and the dropped one
	sign    float64 // +1 or -1, direction of the outward normal along k
}

// NewXYRect creates a rectangle in the plane z = k
func NewXYRect(x0, x1, y0, y1, k float64, mat material.Material) *AARect {
	return newAARect(axisX, axisY, axisZ, x0, x1, y0, y1, k, mat)
}

// NewXZRect creates a rectangle in the plane y = k
func NewXZRect(x0, x1, z0, z1, k float64, mat material.Material) *AARect {
	return newAARect(axisX, axisZ, axisY, x0, x1, z0, z1, k, mat)
}

// NewYZRect creates a rectangle in the plane x = k
func NewYZRect(y0, y1, z0, z1, k float64, mat material.Material) *AARect {
	return newAARect(axisY, axisZ, axisX, y0, y1, z0, z1, k, mat)
}

func newAARect(a, b, k int, a0, a1, b0, b1, kv float64, mat material.Material) *AARect {
	if a1 < a0 {
		a0, a1 = a1, a0
	}
	if b1 < b0 {
		b0, b1 = b1, b0
	}
	return &AARect{
		A0: a0, A1: a1,
		B0: b0, B1: b1,
		K:        kv,
		Material: mat,
		a:        a, b: b, k: k,
		sign: 1,
	}
}

// Flipped returns a copy of the rectangle whose outward normal points along the negative dropped axis
func (r *AARect) Flipped() *AARect {
	flipped := *r
	flipped.sign = -r.sign
	return &flipped
}

// Normal returns the outward normal
func (r *AARect) Normal() core.Vec3 {
	return compose(r.k, r.a, r.b, r.sign, 0, 0)
}

// Hit solves for the plane crossing and checks the rectangle extent
func (r *AARect) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*material.HitRecord, bool) {
	// A ray parallel to the plane yields ±Inf or NaN, both rejected by the range check
	t := (r.K - ray.Origin.Axis(r.k)) / ray.Direction.Axis(r.k)
	if !inOpenRange(t, tMin, tMax) {
		return nil, false
	}

	av := ray.Origin.Axis(r.a) + t*ray.Direction.Axis(r.a)
	bv := ray.Origin.Axis(r.b) + t*ray.Direction.Axis(r.b)
	if av < r.A0 || av > r.A1 || bv < r.B0 || bv > r.B1 {
		return nil, false
	}

	hitRecord := &material.HitRecord{
		T:        t,
		Point:    ray.At(t),
		UV:       core.NewVec2(fraction(av, r.A0, r.A1), fraction(bv, r.B0, r.B1)),
		Material: r.Material,
	}
	hitRecord.SetFaceNormal(ray, r.Normal())

	return hitRecord, true
}

// BoundingBox pads the flat axis so the box has volume
func (r *AARect) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return core.NewAABB(
		compose(r.k, r.a, r.b, r.K-rectPadding, r.A0, r.B0),
		compose(r.k, r.a, r.b, r.K+rectPadding, r.A1, r.B1),
	), true
}

// fraction maps v in [lo, hi] to [0, 1]; a zero-width extent maps to 0
func fraction(v, lo, hi float64) float64 {
	if hi <= lo {
		return 0
	}
	return (v - lo) / (hi - lo)
}

// compose builds a vector from values given per axis index
func compose(k, a, b int, kv, av, bv float64) core.Vec3 {
	var c [3]float64
	c[k], c[a], c[b] = kv, av, bv
	return core.NewVec3(c[0], c[1], c[2])
}
