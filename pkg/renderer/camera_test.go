package renderer

import (
	"math"
	"testing"

	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/geometry"
)

func TestCamera_GetRay_Viewport(t *testing.T) {
	camera := newTestCamera(2)
	sampler := core.NewRandomSampler(1, 0)

	tests := []struct {
		name     string
		s, t     float64
		expected core.Vec3
	}{
		{"center", 0.5, 0.5, core.NewVec3(0, 0, -1)},
		{"lower left", 0, 0, core.NewVec3(-2, -1, -1)},
		{"upper right", 1, 1, core.NewVec3(2, 1, -1)},
		{"upper left", 0, 1, core.NewVec3(-2, 1, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := camera.GetRay(tt.s, tt.t, sampler)
			if ray.Origin != (core.Vec3{}) {
				t.Errorf("Expected pinhole origin at zero, got %v", ray.Origin)
			}
			if !vecClose(ray.Direction, tt.expected, 1e-9) {
				t.Errorf("Expected direction %v, got %v", tt.expected, ray.Direction)
			}
			if ray.Time != 0 {
				t.Errorf("Expected time 0 without a shutter interval, got %f", ray.Time)
			}
		})
	}
}

func TestCamera_CenterRayHitsSphere(t *testing.T) {
	camera := newTestCamera(16.0 / 9.0)
	sampler := core.NewRandomSampler(1, 0)
	sphere := geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, nil)

	hit, ok := sphere.Hit(camera.GetRay(0.5, 0.5, sampler), 0.001, math.Inf(1), sampler)
	if !ok {
		t.Fatal("Expected center ray to hit the sphere")
	}
	if math.Abs(hit.T-0.5) > 1e-9 {
		t.Errorf("Expected t=0.5, got %f", hit.T)
	}
	if !vecClose(hit.Normal, core.NewVec3(0, 0, 1), 1e-9) {
		t.Errorf("Expected normal (0,0,1), got %v", hit.Normal)
	}
}

func TestCamera_ShutterTime(t *testing.T) {
	camera := NewCamera(CameraConfig{
		LookFrom:    core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		VUp:         core.NewVec3(0, 1, 0),
		VFov:        40,
		AspectRatio: 1,
		Time0:       0.25,
		Time1:       0.75,
	})
	sampler := core.NewRandomSampler(3, 0)

	for i := 0; i < 1000; i++ {
		ray := camera.GetRay(0.5, 0.5, sampler)
		if ray.Time < 0.25 || ray.Time >= 0.75 {
			t.Fatalf("Expected time in [0.25, 0.75), got %f", ray.Time)
		}
	}
}

func TestCamera_Aperture(t *testing.T) {
	lookFrom := core.NewVec3(3, 3, 2)
	lookAt := core.NewVec3(0, 0, -1)
	camera := NewCamera(CameraConfig{
		LookFrom:    lookFrom,
		LookAt:      lookAt,
		VUp:         core.NewVec3(0, 1, 0),
		VFov:        20,
		AspectRatio: 2,
		Aperture:    2,
	})
	sampler := core.NewRandomSampler(5, 0)
	focusDistance := lookFrom.Subtract(lookAt).Length()

	moved := false
	for i := 0; i < 1000; i++ {
		ray := camera.GetRay(0.5, 0.5, sampler)
		offset := ray.Origin.Subtract(lookFrom).Length()
		if offset > 1+1e-9 {
			t.Fatalf("Lens offset %f exceeds lens radius", offset)
		}
		if offset > 1e-6 {
			moved = true
		}

		// Every center ray passes through the focus point
		focus := ray.At(1)
		if !vecClose(focus, lookAt, 1e-9*focusDistance*10) {
			t.Fatalf("Expected center ray to reach %v at t=1, got %v", lookAt, focus)
		}
	}
	if !moved {
		t.Error("Expected lens sampling to move the ray origin")
	}
}
