package material

import (
	"testing"

	"github.com/df07/go-bvh-raytracer/pkg/core"
)

func TestLambertian_ScatterAboveSurface(t *testing.T) {
	albedo := core.NewVec3(0.8, 0.8, 0.8)
	lambertian := NewLambertian(albedo)
	sampler := core.NewRandomSampler(42, 0)

	normal := core.NewVec3(0, 0, 1)
	hit := HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    normal,
		FrontFace: true,
	}
	ray := core.NewRayAtTime(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1), 0.25)

	for i := 0; i < 1000; i++ {
		scatter, didScatter := lambertian.Scatter(ray, hit, sampler)
		if !didScatter {
			t.Fatal("Lambertian should always scatter")
		}
		if scatter.Scattered.Direction.Dot(normal) < 0 {
			t.Fatalf("Scattered direction %v points below the surface", scatter.Scattered.Direction)
		}
		if scatter.Scattered.Time != 0.25 {
			t.Fatalf("Expected scattered ray to keep time 0.25, got %f", scatter.Scattered.Time)
		}
		if scatter.Attenuation != albedo {
			t.Fatalf("Expected attenuation %v, got %v", albedo, scatter.Attenuation)
		}
	}
}

func TestLambertian_TexturedAlbedo(t *testing.T) {
	checker := NewCheckerTextureFromColors(core.NewVec3(1, 0, 0), core.NewVec3(0, 0, 1))
	lambertian := NewTexturedLambertian(checker)
	sampler := core.NewRandomSampler(7, 0)

	point := core.NewVec3(0.1, 0.1, 0.1)
	hit := HitRecord{Point: point, Normal: core.NewVec3(0, 1, 0), FrontFace: true}
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))

	scatter, _ := lambertian.Scatter(ray, hit, sampler)
	expected := checker.Evaluate(core.Vec2{}, point)
	if scatter.Attenuation != expected {
		t.Errorf("Expected attenuation %v from texture, got %v", expected, scatter.Attenuation)
	}
}

func TestLambertian_DoesNotEmit(t *testing.T) {
	lambertian := NewLambertian(core.NewVec3(1, 1, 1))
	if emitted := lambertian.Emitted(core.Vec2{}, core.Vec3{}); emitted != (core.Vec3{}) {
		t.Errorf("Expected no emission, got %v", emitted)
	}
}
