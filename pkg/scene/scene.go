package scene

import (
	"fmt"
	"math/rand/v2"
	"path/filepath"

	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/geometry"
	"github.com/df07/go-bvh-raytracer/pkg/renderer"
)

// Shutter interval shared by every built-in scene
const (
	shutterOpen  = 0.0
	shutterClose = 1.0
)

// defaultAssetDir holds texture images relative to the working directory
const defaultAssetDir = "assets"

// Scene contains all the elements needed for rendering
type Scene struct {
	Name         string
	World        geometry.Hittable // BVH over all objects unless built flat
	Camera       *renderer.Camera
	CameraConfig renderer.CameraConfig
	Background   core.Vec3 // Color returned by rays that escape the scene
	Defaults     Defaults
	ObjectCount  int // Top-level objects before acceleration
}

// Defaults are the recommended render settings for a scene
type Defaults struct {
	Width           int
	AspectRatio     float64
	SamplesPerPixel int
	MaxDepth        int
}

// Height returns the image height implied by Width and AspectRatio
func (d Defaults) Height() int {
	return max(1, int(float64(d.Width)/d.AspectRatio))
}

// Options control how a scene is built
type Options struct {
	Seed        uint64      // Seeds random layouts, noise textures and BVH split axes
	AspectRatio float64     // Camera aspect ratio; 0 uses the scene default
	AssetDir    string      // Directory holding texture images; "" uses "assets"
	FlatWorld   bool        // Skip the top-level BVH and intersect a plain list
	Logger      core.Logger // Receives texture and BVH diagnostics; nil discards them
}

func (o Options) logger() core.Logger {
	if o.Logger == nil {
		return core.NopLogger{}
	}
	return o.Logger
}

func (o Options) asset(name string) string {
	dir := o.AssetDir
	if dir == "" {
		dir = defaultAssetDir
	}
	return filepath.Join(dir, name)
}

// random returns the generator for one scene. Scenes use distinct streams so
// that the same seed does not produce correlated layouts.
func (o Options) random(stream uint64) *rand.Rand {
	return rand.New(rand.NewPCG(o.Seed, stream))
}

// GetWorld returns the scene geometry
func (s *Scene) GetWorld() geometry.Hittable { return s.World }

// GetCamera returns the scene camera
func (s *Scene) GetCamera() *renderer.Camera { return s.Camera }

// GetBackground returns the background color
func (s *Scene) GetBackground() core.Vec3 { return s.Background }

// view is the camera placement of a scene; the remaining camera settings are shared
type view struct {
	lookFrom      core.Vec3
	lookAt        core.Vec3
	vfov          float64
	aperture      float64
	focusDistance float64
}

// finish assembles a Scene: it fills in the shared camera settings and wraps
// the objects in a BVH unless the options ask for a flat world.
func finish(name string, defaults Defaults, v view, background core.Vec3, objects *geometry.HittableList, random *rand.Rand, opts Options) (*Scene, error) {
	aspect := opts.AspectRatio
	if aspect <= 0 {
		aspect = defaults.AspectRatio
	}

	cameraConfig := renderer.CameraConfig{
		LookFrom:      v.lookFrom,
		LookAt:        v.lookAt,
		VUp:           core.NewVec3(0, 1, 0),
		VFov:          v.vfov,
		AspectRatio:   aspect,
		Aperture:      v.aperture,
		FocusDistance: v.focusDistance,
		Time0:         shutterOpen,
		Time1:         shutterClose,
	}

	var world geometry.Hittable = objects
	if !opts.FlatWorld {
		bvh, err := geometry.NewBVHFromList(objects, shutterOpen, shutterClose, random)
		if err != nil {
			return nil, fmt.Errorf("scene %s: %w", name, err)
		}
		stats := bvh.Stats()
		opts.logger().Printf("Scene %s: %d objects, BVH %d nodes, max depth %d, avg leaf depth %.1f\n",
			name, objects.Len(), stats.TotalNodes, stats.MaxDepth, stats.AvgDepth)
		world = bvh
	}

	return &Scene{
		Name:         name,
		World:        world,
		Camera:       renderer.NewCamera(cameraConfig),
		CameraConfig: cameraConfig,
		Background:   background,
		Defaults:     defaults,
		ObjectCount:  objects.Len(),
	}, nil
}
