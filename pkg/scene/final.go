package scene

import (
	"fmt"

	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/geometry"
	"github.com/df07/go-bvh-raytracer/pkg/material"
)

const (
	boxesPerSide   = 20
	clusterSpheres = 1000
	groundBoxWidth = 100.0
)

var finalDefaults = Defaults{Width: 800, AspectRatio: 1, SamplesPerPixel: 10000, MaxDepth: 50}

// NewFinalScene creates the showcase scene: a field of random-height boxes
// under its own BVH, a moving sphere, glass, metal, a subsurface-like glass
// ball filled with fog, global mist, the earth texture, marble, and a rotated
// cluster of small spheres under a second BVH
func NewFinalScene(opts Options) (*Scene, error) {
	random := opts.random(8)

	ground := material.NewLambertian(core.NewVec3(0.48, 0.83, 0.53))
	boxes := geometry.NewHittableList()
	for i := 0; i < boxesPerSide; i++ {
		for j := 0; j < boxesPerSide; j++ {
			x0 := -1000 + float64(i)*groundBoxWidth
			z0 := -1000 + float64(j)*groundBoxWidth
			y1 := 1 + 100*random.Float64()
			boxes.Add(geometry.NewBox(
				core.NewVec3(x0, 0, z0),
				core.NewVec3(x0+groundBoxWidth, y1, z0+groundBoxWidth),
				ground))
		}
	}
	boxField, err := geometry.NewBVHFromList(boxes, shutterOpen, shutterClose, random)
	if err != nil {
		return nil, fmt.Errorf("ground boxes: %w", err)
	}

	world := geometry.NewHittableList(boxField)
	world.Add(geometry.NewXZRect(123, 423, 147, 412, 554, material.NewDiffuseLight(core.NewVec3(7, 7, 7))))

	center1 := core.NewVec3(400, 400, 200)
	center2 := center1.Add(core.NewVec3(30, 0, 0))
	world.Add(geometry.NewMovingSphere(center1, center2, shutterOpen, shutterClose, 50,
		material.NewLambertian(core.NewVec3(0.7, 0.3, 0.1))))

	world.Add(geometry.NewSphere(core.NewVec3(260, 150, 45), 50, material.NewDielectric(1.5)))
	world.Add(geometry.NewSphere(core.NewVec3(0, 150, 145), 50, material.NewMetal(core.NewVec3(0.8, 0.8, 0.9), 1)))

	// Glass shell with blue fog inside
	shell := geometry.NewSphere(core.NewVec3(360, 150, 145), 70, material.NewDielectric(1.5))
	world.Add(shell)
	fog, err := geometry.NewConstantMedium(shell, 0.2, core.NewVec3(0.2, 0.4, 0.9))
	if err != nil {
		return nil, err
	}
	world.Add(fog)

	// Thin mist over everything
	mist, err := geometry.NewConstantMedium(
		geometry.NewSphere(core.NewVec3(0, 0, 0), 5000, material.NewDielectric(1.5)), 0.0001, core.NewVec3(1, 1, 1))
	if err != nil {
		return nil, err
	}
	world.Add(mist)

	earth := material.NewTexturedLambertian(material.LoadImageTexture(opts.asset("earthmap.jpg"), opts.logger()))
	world.Add(geometry.NewSphere(core.NewVec3(400, 200, 400), 100, earth))
	world.Add(geometry.NewSphere(core.NewVec3(220, 280, 300), 80,
		material.NewTexturedLambertian(material.NewNoiseTexture(0.1, random))))

	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	cluster := geometry.NewHittableList()
	for i := 0; i < clusterSpheres; i++ {
		center := core.NewVec3(165*random.Float64(), 165*random.Float64(), 165*random.Float64())
		cluster.Add(geometry.NewSphere(center, 10, white))
	}
	clusterBVH, err := geometry.NewBVHFromList(cluster, shutterOpen, shutterClose, random)
	if err != nil {
		return nil, fmt.Errorf("sphere cluster: %w", err)
	}
	world.Add(geometry.NewTranslate(geometry.NewRotateY(clusterBVH, 15), core.NewVec3(-100, 270, 395)))

	v := view{lookFrom: core.NewVec3(478, 278, -600), lookAt: core.NewVec3(278, 278, 0), vfov: 40}
	return finish("final", finalDefaults, v, black, world, random, opts)
}
