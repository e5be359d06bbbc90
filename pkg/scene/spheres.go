package scene

import (
	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/geometry"
	"github.com/df07/go-bvh-raytracer/pkg/material"
)

var (
	skyBlue = core.NewVec3(0.7, 0.8, 1.0)

	outdoorDefaults = Defaults{Width: 400, AspectRatio: 16.0 / 9.0, SamplesPerPixel: 100, MaxDepth: 50}

	// Wide shot used by the sphere scenes
	outdoorView = view{
		lookFrom: core.NewVec3(13, 2, 3),
		lookAt:   core.NewVec3(0, 0, 0),
		vfov:     20,
	}
)

// NewRandomScene creates the bouncing-spheres scene: a checkered ground, a
// jittered 22x22 grid of small diffuse, moving, and glass spheres, and three
// large feature spheres
func NewRandomScene(opts Options) (*Scene, error) {
	random := opts.random(1)
	world := geometry.NewHittableList()

	checker := material.NewCheckerTextureFromColors(core.NewVec3(0.2, 0.3, 0.1), core.NewVec3(0.9, 0.9, 0.9))
	world.Add(geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewTexturedLambertian(checker)))

	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMat := random.Float64()
			center := core.NewVec3(float64(a)+0.9*random.Float64(), 0.2, float64(b)+0.9*random.Float64())

			// Keep the area around the large metal sphere clear
			if center.Subtract(core.NewVec3(4, 0.2, 0.9)).Length() <= 0.9 {
				continue
			}

			switch {
			case chooseMat < 0.7:
				// Diffuse, bouncing during the shutter interval
				albedo := core.RandomColor(random, 0, 1).MultiplyVec(core.RandomColor(random, 0, 1))
				center2 := center.Add(core.NewVec3(0, 0.5*random.Float64(), 0))
				world.Add(geometry.NewMovingSphere(center, center2, shutterOpen, shutterClose, 0.2, material.NewLambertian(albedo)))
			case chooseMat < 0.9:
				albedo := core.RandomColor(random, 0.5, 1)
				world.Add(geometry.NewSphere(center, 0.2, material.NewLambertian(albedo)))
			default:
				glass := material.NewDielectric(1.5)
				world.Add(geometry.NewSphere(center, 0.2, glass))
				if random.Float64() < 0.5 {
					// Hollow glass bubble
					world.Add(geometry.NewSphere(center, -0.15, glass))
				}
			}
		}
	}

	glass := material.NewDielectric(1.5)
	world.Add(geometry.NewSphere(core.NewVec3(0, 1, 0), 1, glass))
	world.Add(geometry.NewSphere(core.NewVec3(0, 1, 0), -0.9, glass))
	world.Add(geometry.NewSphere(core.NewVec3(-4, 1, 0), 1, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))))
	world.Add(geometry.NewSphere(core.NewVec3(4, 1, 0), 1, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0)))

	v := outdoorView
	v.aperture = 0.1
	v.focusDistance = 10
	return finish("random", outdoorDefaults, v, skyBlue, world, random, opts)
}

// NewTwoSpheresScene creates two large checkered spheres touching at the origin
func NewTwoSpheresScene(opts Options) (*Scene, error) {
	checker := material.NewTexturedLambertian(
		material.NewCheckerTextureFromColors(core.NewVec3(0.2, 0.3, 0.1), core.NewVec3(0.9, 0.9, 0.9)))

	world := geometry.NewHittableList(
		geometry.NewSphere(core.NewVec3(0, -10, 0), 10, checker),
		geometry.NewSphere(core.NewVec3(0, 10, 0), 10, checker),
	)
	return finish("two-spheres", outdoorDefaults, outdoorView, skyBlue, world, opts.random(2), opts)
}

// NewTwoPerlinSpheresScene creates a marble-textured ground and sphere
func NewTwoPerlinSpheresScene(opts Options) (*Scene, error) {
	random := opts.random(3)
	marble := material.NewTexturedLambertian(material.NewNoiseTexture(4, random))

	world := geometry.NewHittableList(
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, marble),
		geometry.NewSphere(core.NewVec3(0, 2, 0), 2, marble),
	)
	return finish("two-perlin-spheres", outdoorDefaults, outdoorView, skyBlue, world, random, opts)
}

// NewEarthScene creates a single globe with the earthmap.jpg image texture.
// A missing image renders magenta rather than failing.
func NewEarthScene(opts Options) (*Scene, error) {
	earth := material.NewTexturedLambertian(material.LoadImageTexture(opts.asset("earthmap.jpg"), opts.logger()))

	world := geometry.NewHittableList(geometry.NewSphere(core.NewVec3(0, 0, 0), 2, earth))
	return finish("earth", outdoorDefaults, outdoorView, skyBlue, world, opts.random(4), opts)
}
