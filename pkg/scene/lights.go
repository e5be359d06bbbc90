package scene

import (
	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/geometry"
	"github.com/df07/go-bvh-raytracer/pkg/material"
)

var (
	black = core.NewVec3(0, 0, 0)

	simpleLightDefaults = Defaults{Width: 400, AspectRatio: 16.0 / 9.0, SamplesPerPixel: 400, MaxDepth: 50}
	cornellDefaults     = Defaults{Width: 600, AspectRatio: 1, SamplesPerPixel: 200, MaxDepth: 50}

	cornellView = view{
		lookFrom: core.NewVec3(278, 278, -800),
		lookAt:   core.NewVec3(278, 278, 0),
		vfov:     40,
	}
)

// NewSimpleLightScene creates the marble spheres lit only by a sphere light
// and a rectangular light on a black background
func NewSimpleLightScene(opts Options) (*Scene, error) {
	random := opts.random(5)
	marble := material.NewTexturedLambertian(material.NewNoiseTexture(4, random))
	light := material.NewDiffuseLight(core.NewVec3(4, 4, 4))

	world := geometry.NewHittableList(
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, marble),
		geometry.NewSphere(core.NewVec3(0, 2, 0), 2, marble),
		geometry.NewSphere(core.NewVec3(0, 7, 0), 2, light),
		geometry.NewXYRect(3, 5, 1, 3, -2, light),
	)

	v := view{lookFrom: core.NewVec3(26, 3, 6), lookAt: core.NewVec3(0, 2, 0), vfov: 20}
	return finish("simple-light", simpleLightDefaults, v, black, world, random, opts)
}

// cornellRoom adds the five walls of the 555-unit box and its ceiling light
func cornellRoom(world *geometry.HittableList, light material.Material, lightRect [4]float64) {
	red := material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05))
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	green := material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15))

	world.Add(geometry.NewYZRect(0, 555, 0, 555, 555, green))
	world.Add(geometry.NewYZRect(0, 555, 0, 555, 0, red))
	world.Add(geometry.NewXZRect(lightRect[0], lightRect[1], lightRect[2], lightRect[3], 554, light))
	world.Add(geometry.NewXZRect(0, 555, 0, 555, 0, white))
	world.Add(geometry.NewXZRect(0, 555, 0, 555, 555, white))
	world.Add(geometry.NewXYRect(0, 555, 0, 555, 555, white))
}

// cornellBlocks returns the tall and short boxes, rotated and placed
func cornellBlocks() (tall, short geometry.Hittable) {
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))

	tall = geometry.NewTranslate(
		geometry.NewRotateY(geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 330, 165), white), 15),
		core.NewVec3(265, 0, 295))
	short = geometry.NewTranslate(
		geometry.NewRotateY(geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 165, 165), white), -18),
		core.NewVec3(130, 0, 65))
	return tall, short
}

// NewCornellScene creates the classic Cornell box with two rotated blocks
func NewCornellScene(opts Options) (*Scene, error) {
	world := geometry.NewHittableList()
	cornellRoom(world, material.NewDiffuseLight(core.NewVec3(15, 15, 15)), [4]float64{213, 343, 227, 332})

	tall, short := cornellBlocks()
	world.Add(tall)
	world.Add(short)

	return finish("cornell", cornellDefaults, cornellView, black, world, opts.random(6), opts)
}

// NewCornellSmokeScene replaces the Cornell blocks with black and white smoke
// under a larger, dimmer light
func NewCornellSmokeScene(opts Options) (*Scene, error) {
	world := geometry.NewHittableList()
	cornellRoom(world, material.NewDiffuseLight(core.NewVec3(7, 7, 7)), [4]float64{113, 443, 127, 432})

	tall, short := cornellBlocks()
	darkSmoke, err := geometry.NewConstantMedium(tall, 0.01, core.NewVec3(0, 0, 0))
	if err != nil {
		return nil, err
	}
	lightSmoke, err := geometry.NewConstantMedium(short, 0.01, core.NewVec3(1, 1, 1))
	if err != nil {
		return nil, err
	}
	world.Add(darkSmoke)
	world.Add(lightSmoke)

	return finish("cornell-smoke", cornellDefaults, cornellView, black, world, opts.random(7), opts)
}
