package renderer

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/geometry"
)

// shadowAcne offsets secondary rays so they do not re-hit their own surface
const shadowAcne = 0.001

// Scene interface to avoid circular imports
type Scene interface {
	GetWorld() geometry.Hittable
	GetCamera() *Camera
	GetBackground() core.Vec3
}

// Raytracer handles the rendering process
type Raytracer struct {
	scene    Scene
	config   Config
	logger   core.Logger
	progress ProgressFunc
}

// NewRaytracer creates a new raytracer. The configuration is validated and
// its automatic values are resolved.
func NewRaytracer(scene Scene, config Config, logger core.Logger) (*Raytracer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Raytracer{scene: scene, config: config, logger: logger}, nil
}

// SetProgressFunc installs a progress callback; nil disables reporting
func (rt *Raytracer) SetProgressFunc(fn ProgressFunc) {
	rt.progress = fn
}

// Config returns the resolved configuration
func (rt *Raytracer) Config() Config {
	return rt.config
}

// RayColor computes the radiance arriving along ray. Surfaces add their
// emission to the attenuated color of the scattered ray; rays that escape
// return background and exhausted paths return black.
func RayColor(ray core.Ray, world geometry.Hittable, background core.Vec3, depth int, sampler core.Sampler) core.Vec3 {
	if depth <= 0 {
		return core.Vec3{}
	}

	hit, isHit := world.Hit(ray, shadowAcne, math.Inf(1), sampler)
	if !isHit {
		return background
	}
	if hit.Material == nil {
		return core.Vec3{}
	}

	emitted := hit.Material.Emitted(hit.UV, hit.Point)
	scatter, scattered := hit.Material.Scatter(ray, *hit, sampler)
	if !scattered {
		return emitted
	}

	incoming := RayColor(scatter.Scattered, world, background, depth-1, sampler)
	return emitted.Add(scatter.Attenuation.MultiplyVec(incoming))
}

// Render traces every pixel on a pool of workers and assembles the image on
// the calling goroutine. Output is identical for any worker count or tile
// size because each pixel draws from its own random stream.
func (rt *Raytracer) Render(ctx context.Context) (*Framebuffer, RenderStats, error) {
	start := time.Now()
	tiles := rt.tiles()
	stats := RenderStats{
		TotalPixels: rt.config.Width * rt.config.Height,
		NumWorkers:  rt.config.NumWorkers,
		NumTasks:    len(tiles),
	}

	renderCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	rt.logger.Printf("Rendering %dx%d, %d spp, depth %d, %d workers, %d tasks\n",
		rt.config.Width, rt.config.Height, rt.config.SamplesPerPixel, rt.config.MaxDepth,
		rt.config.NumWorkers, len(tiles))

	pool := NewWorkerPool(rt.config.NumWorkers, rt.config.ChannelCapacity)
	pool.Start(renderCtx, tiles, rt.newTileRenderer)

	fb, samples, aggErr := rt.aggregate(pool.Results(), start)
	if aggErr != nil {
		cancel()
		for range pool.Results() {
		}
	}
	poolErr := pool.Wait()

	stats.TotalSamples = samples
	stats.Duration = time.Since(start)

	switch {
	case ctx.Err() != nil:
		return nil, stats, fmt.Errorf("render cancelled: %w", ctx.Err())
	case poolErr != nil && !errors.Is(poolErr, context.Canceled):
		return nil, stats, fmt.Errorf("render failed: %w", poolErr)
	case aggErr != nil:
		return nil, stats, fmt.Errorf("assembling image: %w", aggErr)
	case poolErr != nil:
		return nil, stats, fmt.Errorf("render failed: %w", poolErr)
	}

	rt.logger.Printf("Rendered %d pixels in %v (%.0f pixels/s)\n",
		stats.TotalPixels, stats.Duration.Round(time.Millisecond), stats.PixelsPerSecond())
	return fb, stats, nil
}

// tiles partitions the image into scanlines or square tiles
func (rt *Raytracer) tiles() []*Tile {
	if rt.config.TileSize > 0 {
		return NewTileGrid(rt.config.Width, rt.config.Height, rt.config.TileSize)
	}
	return NewRowTiles(rt.config.Width, rt.config.Height)
}

// aggregate writes incoming pixels into a framebuffer until the result queue closes
func (rt *Raytracer) aggregate(results <-chan PixelResult, start time.Time) (*Framebuffer, int, error) {
	fb := NewFramebuffer(rt.config.Width, rt.config.Height)
	total := rt.config.Width * rt.config.Height
	samples := 0
	lastReport := start

	for result := range results {
		if err := fb.Set(result.Row, result.Col, result.Color); err != nil {
			return nil, samples, err
		}
		samples += result.Samples

		if rt.progress != nil {
			now := time.Now()
			if fb.Filled() == total || now.Sub(lastReport) >= rt.config.ProgressInterval {
				lastReport = now
				rt.progress(Progress{
					Done:    fb.Filled(),
					Total:   total,
					Elapsed: now.Sub(start),
					Workers: rt.config.NumWorkers,
				})
			}
		}
	}

	if err := fb.Complete(); err != nil {
		return nil, samples, err
	}
	return fb, samples, nil
}

// newTileRenderer creates the tile function for one worker. Each worker owns
// a sampler that is reseeded per pixel.
func (rt *Raytracer) newTileRenderer(workerID int) TileFunc {
	sampler := core.NewRandomSampler(rt.config.Seed, 0)
	world := rt.scene.GetWorld()
	camera := rt.scene.GetCamera()
	background := rt.scene.GetBackground()

	return func(ctx context.Context, tile *Tile, emit func(PixelResult) error) error {
		for row := tile.Bounds.Min.Y; row < tile.Bounds.Max.Y; row++ {
			for col := tile.Bounds.Min.X; col < tile.Bounds.Max.X; col++ {
				sampler.Reseed(uint64(row*rt.config.Width + col))
				ps := rt.samplePixel(row, col, camera, world, background, sampler)

				err := emit(PixelResult{
					Row:     row,
					Col:     col,
					Color:   QuantizeColor(ps.GetColor(), rt.config.Linear),
					Samples: ps.SampleCount,
				})
				if err != nil {
					return err
				}
			}
		}
		return nil
	}
}

// samplePixel averages SamplesPerPixel jittered rays through the pixel.
// Row 0 is the top of the image while camera t = 0 is the bottom.
func (rt *Raytracer) samplePixel(row, col int, camera *Camera, world geometry.Hittable, background core.Vec3, sampler core.Sampler) PixelStats {
	var ps PixelStats
	j := rt.config.Height - 1 - row
	uScale := float64(max(1, rt.config.Width-1))
	vScale := float64(max(1, rt.config.Height-1))

	for s := 0; s < rt.config.SamplesPerPixel; s++ {
		u := (float64(col) + sampler.Get1D()) / uScale
		v := (float64(j) + sampler.Get1D()) / vScale
		ray := camera.GetRay(u, v, sampler)
		ps.AddSample(RayColor(ray, world, background, rt.config.MaxDepth, sampler))
	}
	return ps
}
