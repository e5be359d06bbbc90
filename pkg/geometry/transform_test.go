package geometry

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/df07/go-bvh-raytracer/pkg/core"
)

func randomTestRay(random *rand.Rand) core.Ray {
	origin := core.NewVec3(random.Float64()*20-10, random.Float64()*20-10, random.Float64()*20-10)
	// Aim roughly at the origin so a useful fraction of rays hit
	target := core.NewVec3(random.Float64()*4-2, random.Float64()*4-2, random.Float64()*4-2)
	return core.NewRay(origin, target.Subtract(origin))
}

func TestTranslate_RoundTrip(t *testing.T) {
	random := rand.New(rand.NewPCG(11, 12))
	offset := core.NewVec3(3, 1, -2)
	objects := []Hittable{
		NewSphere(core.NewVec3(0, 0, 0), 1, nil),
		NewBox(core.NewVec3(-1, -0.5, -1), core.NewVec3(1, 0.5, 1), nil),
	}

	for _, object := range objects {
		translated := NewTranslate(object, offset)
		hits := 0

		for i := 0; i < 2000; i++ {
			ray := randomTestRay(random)
			ray.Origin = ray.Origin.Add(offset)

			moved, movedOK := translated.Hit(ray, 0.001, math.Inf(1), nil)
			shifted := core.NewRay(ray.Origin.Subtract(offset), ray.Direction)
			direct, directOK := object.Hit(shifted, 0.001, math.Inf(1), nil)

			if movedOK != directOK {
				t.Fatalf("%T: hit mismatch for ray %v", object, ray)
			}
			if !movedOK {
				continue
			}
			hits++

			if !vecApproxEqual(moved.Point.Subtract(offset), direct.Point, 1e-9) {
				t.Fatalf("%T: expected point %v, got %v", object, direct.Point, moved.Point.Subtract(offset))
			}
			if moved.T != direct.T || moved.FrontFace != direct.FrontFace || moved.Normal != direct.Normal {
				t.Fatalf("%T: hit record mismatch %+v vs %+v", object, moved, direct)
			}
		}

		if hits == 0 {
			t.Fatalf("%T: expected some rays to hit", object)
		}
	}
}

func TestTranslate_BoundingBox(t *testing.T) {
	translated := NewTranslate(NewSphere(core.NewVec3(0, 0, 0), 1, nil), core.NewVec3(10, 0, 0))
	box, ok := translated.BoundingBox(0, 1)
	if !ok {
		t.Fatal("Expected bounding box")
	}
	expected := core.NewAABB(core.NewVec3(9, -1, -1), core.NewVec3(11, 1, 1))
	if box != expected {
		t.Errorf("Expected %v, got %v", expected, box)
	}

	if _, ok := NewTranslate(unboundedShape{}, core.NewVec3(1, 1, 1)).BoundingBox(0, 1); ok {
		t.Error("Expected no box for unbounded inner object")
	}
}

func TestTranslate_FrontFaceFromInside(t *testing.T) {
	translated := NewTranslate(NewSphere(core.NewVec3(0, 0, 0), 1, nil), core.NewVec3(0, 5, 0))

	// Ray starting at the translated center exits through the back face
	hit, isHit := translated.Hit(core.NewRay(core.NewVec3(0, 5, 0), core.NewVec3(1, 0, 0)), 0.001, 100, nil)
	if !isHit {
		t.Fatal("Expected hit")
	}
	if hit.FrontFace {
		t.Error("Expected back face hit from inside")
	}
	if !vecApproxEqual(hit.Normal, core.NewVec3(-1, 0, 0), testTolerance) {
		t.Errorf("Expected normal against the ray, got %v", hit.Normal)
	}
	if !vecApproxEqual(hit.Point, core.NewVec3(1, 5, 0), testTolerance) {
		t.Errorf("Expected point (1,5,0), got %v", hit.Point)
	}
}

func TestRotateY_RoundTrip(t *testing.T) {
	random := rand.New(rand.NewPCG(21, 22))
	box := NewBox(core.NewVec3(-1, -2, -0.5), core.NewVec3(2, 1, 0.5), nil)
	unrotated, _ := box.BoundingBox(0, 1)

	for _, angle := range []float64{15, 37, 90, 145, 270} {
		roundTrip := NewRotateY(NewRotateY(box, angle), -angle)

		rotatedBox, ok := roundTrip.BoundingBox(0, 1)
		if !ok {
			t.Fatal("Expected bounding box")
		}
		if !rotatedBox.ApproxEqual(unrotated, 1e-4) {
			t.Errorf("Angle %v: expected box %v, got %v", angle, unrotated, rotatedBox)
		}

		for i := 0; i < 1000; i++ {
			ray := randomTestRay(random)
			got, gotOK := roundTrip.Hit(ray, 0.001, math.Inf(1), nil)
			want, wantOK := box.Hit(ray, 0.001, math.Inf(1), nil)
			if gotOK != wantOK {
				t.Fatalf("Angle %v: hit mismatch for ray %v", angle, ray)
			}
			if !gotOK {
				continue
			}
			if math.Abs(got.T-want.T) > 1e-4 || !vecApproxEqual(got.Point, want.Point, 1e-4) ||
				!vecApproxEqual(got.Normal, want.Normal, 1e-4) {
				t.Fatalf("Angle %v: expected %+v, got %+v", angle, want, got)
			}
		}
	}
}

func TestRotateY_QuarterTurn(t *testing.T) {
	// Long along Z before rotation, long along X after
	slab := NewBox(core.NewVec3(-0.5, -1, -2), core.NewVec3(0.5, 1, 2), nil)
	rotated := NewRotateY(slab, 90)

	box, ok := rotated.BoundingBox(0, 1)
	if !ok {
		t.Fatal("Expected bounding box")
	}
	expected := core.NewAABB(core.NewVec3(-2, -1, -0.5), core.NewVec3(2, 1, 0.5))
	if !box.ApproxEqual(expected, 1e-9) {
		t.Errorf("Expected %v, got %v", expected, box)
	}

	hit, isHit := rotated.Hit(core.NewRay(core.NewVec3(1.5, 0, 5), core.NewVec3(0, 0, -1)), 0.001, 100, nil)
	if !isHit {
		t.Fatal("Expected hit on the rotated slab")
	}
	if math.Abs(hit.T-4.5) > 1e-9 {
		t.Errorf("Expected t=4.5, got %f", hit.T)
	}
	if !vecApproxEqual(hit.Normal, core.NewVec3(0, 0, 1), 1e-9) || !hit.FrontFace {
		t.Errorf("Expected front face with normal (0,0,1), got %v front=%t", hit.Normal, hit.FrontFace)
	}
	if !vecApproxEqual(hit.Point, core.NewVec3(1.5, 0, 0.5), 1e-9) {
		t.Errorf("Expected point (1.5,0,0.5), got %v", hit.Point)
	}
}

func TestRotateY_FoldsNestedRotations(t *testing.T) {
	sphere := NewSphere(core.NewVec3(1, 0, 0), 0.5, nil)
	rotated := NewRotateY(NewRotateY(sphere, 30), 60)

	if rotated.Object != Hittable(sphere) {
		t.Error("Expected nested rotation to wrap the innermost object")
	}
	if rotated.Degrees != 90 {
		t.Errorf("Expected combined angle 90, got %v", rotated.Degrees)
	}
}
