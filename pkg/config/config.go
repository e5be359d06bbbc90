// Package config merges a JSON config file, command-line flags and scene
// defaults into the settings for one render.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/renderer"
	"github.com/df07/go-bvh-raytracer/pkg/scene"
)

const (
	defaultScene       = "random"
	defaultOutput      = "image.ppm"
	defaultSeed        = 42
	defaultAssetDir    = "assets"
	defaultPreviewSize = 256
)

// Config holds the scene selection, output paths and render settings.
type Config struct {
	// Scene and output
	Scene       string `json:"scene"`
	Output      string `json:"output"`
	Preview     string `json:"preview"`
	PreviewSize int    `json:"preview_size"`
	AssetDir    string `json:"asset_dir"`

	// Render settings; zero values fall back to the scene defaults
	Width           int     `json:"width"`
	Height          int     `json:"height"`
	SamplesPerPixel int     `json:"samples_per_pixel"`
	MaxDepth        int     `json:"max_depth"`
	Workers         int     `json:"workers"`
	ChannelCapacity int     `json:"channel_capacity"`
	TileSize        int     `json:"tile_size"`
	Seed            uint64  `json:"seed"`
	Linear          bool    `json:"linear"`
	FlatWorld       bool    `json:"flat_world"`
	ProgressSeconds float64 `json:"progress_seconds"`
	Quiet           bool    `json:"quiet"`
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Scene           string
	Output          string
	Preview         string
	AssetDir        string
	Width           int
	Height          int
	SamplesPerPixel int
	MaxDepth        int
	Workers         int
	TileSize        int
	Seed            *uint64 // nil when the flag was not given; 0 is a valid seed
	Linear          bool
	FlatWorld       bool
	Quiet           bool
}

// Default returns the settings used when no config file is given.
func Default() Config {
	return Config{Seed: defaultSeed}
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep the values from Default.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Resolve applies CLI overrides and fills in settings that do not depend on the scene.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	if flags.Scene != "" {
		c.Scene = flags.Scene
	}
	if flags.Output != "" {
		c.Output = flags.Output
	}
	if flags.Preview != "" {
		c.Preview = flags.Preview
	}
	if flags.AssetDir != "" {
		c.AssetDir = flags.AssetDir
	}
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.SamplesPerPixel > 0 {
		c.SamplesPerPixel = flags.SamplesPerPixel
	}
	if flags.MaxDepth > 0 {
		c.MaxDepth = flags.MaxDepth
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.TileSize > 0 {
		c.TileSize = flags.TileSize
	}
	if flags.Seed != nil {
		c.Seed = *flags.Seed
	}
	c.Linear = c.Linear || flags.Linear
	c.FlatWorld = c.FlatWorld || flags.FlatWorld
	c.Quiet = c.Quiet || flags.Quiet

	if c.Scene == "" {
		c.Scene = defaultScene
	}
	if c.Output == "" {
		c.Output = defaultOutput
	}
	if c.AssetDir == "" {
		c.AssetDir = defaultAssetDir
	}
	if c.PreviewSize <= 0 {
		c.PreviewSize = defaultPreviewSize
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.ProgressSeconds <= 0 {
		c.ProgressSeconds = 1
	}
}

// ApplySceneDefaults fills the image size, sample count and depth from the
// scene's recommendations. A width without a height keeps the scene's aspect ratio.
func (c *Config) ApplySceneDefaults(defaults scene.Defaults) {
	if c.Width <= 0 {
		c.Width = defaults.Width
	}
	if c.Height <= 0 {
		c.Height = max(1, int(float64(c.Width)/defaults.AspectRatio))
	}
	if c.SamplesPerPixel <= 0 {
		c.SamplesPerPixel = defaults.SamplesPerPixel
	}
	if c.MaxDepth <= 0 {
		c.MaxDepth = defaults.MaxDepth
	}
}

// AspectRatio returns width / height of the resolved image
func (c *Config) AspectRatio() float64 {
	if c.Height <= 0 {
		return 0
	}
	return float64(c.Width) / float64(c.Height)
}

// RenderConfig converts the resolved settings for the renderer
func (c *Config) RenderConfig() renderer.Config {
	return renderer.Config{
		Width:            c.Width,
		Height:           c.Height,
		SamplesPerPixel:  c.SamplesPerPixel,
		MaxDepth:         c.MaxDepth,
		NumWorkers:       c.Workers,
		ChannelCapacity:  c.ChannelCapacity,
		TileSize:         c.TileSize,
		Linear:           c.Linear,
		Seed:             c.Seed,
		ProgressInterval: time.Duration(c.ProgressSeconds * float64(time.Second)),
	}
}

// SceneOptions converts the resolved settings for the scene builders
func (c *Config) SceneOptions(logger core.Logger) scene.Options {
	return scene.Options{
		Seed:        c.Seed,
		AspectRatio: c.AspectRatio(),
		AssetDir:    c.AssetDir,
		FlatWorld:   c.FlatWorld,
		Logger:      logger,
	}
}
