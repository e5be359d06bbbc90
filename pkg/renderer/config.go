package renderer

import (
	"errors"
	"fmt"
	"runtime"
	"time"
)

// ErrInvalidConfig is returned when a render configuration cannot be used
var ErrInvalidConfig = errors.New("invalid render configuration")

// Config contains rendering configuration
type Config struct {
	Width            int           // Image width in pixels
	Height           int           // Image height in pixels
	SamplesPerPixel  int           // Number of rays per pixel
	MaxDepth         int           // Maximum ray bounce depth
	NumWorkers       int           // Number of parallel workers (0 = use CPU count)
	ChannelCapacity  int           // Capacity of the pixel result channel (0 = one row per worker)
	TileSize         int           // Square tile size; 0 renders one scanline per task
	Linear           bool          // Skip gamma correction
	Seed             uint64        // Base seed for per-pixel random streams
	ProgressInterval time.Duration // Minimum time between progress reports
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Width:            400,
		Height:           225,
		SamplesPerPixel:  100,
		MaxDepth:         50,
		NumWorkers:       0, // Auto-detect CPU count
		ChannelCapacity:  0,
		TileSize:         0,
		Seed:             42,
		ProgressInterval: time.Second,
	}
}

// Validate checks the configuration and fills in automatic values
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("image size %dx%d: %w", c.Width, c.Height, ErrInvalidConfig)
	}
	if c.SamplesPerPixel <= 0 {
		return fmt.Errorf("samples per pixel %d: %w", c.SamplesPerPixel, ErrInvalidConfig)
	}
	if c.MaxDepth <= 0 {
		return fmt.Errorf("max depth %d: %w", c.MaxDepth, ErrInvalidConfig)
	}
	if c.NumWorkers < 0 {
		return fmt.Errorf("workers %d: %w", c.NumWorkers, ErrInvalidConfig)
	}
	if c.ChannelCapacity < 0 {
		return fmt.Errorf("channel capacity %d: %w", c.ChannelCapacity, ErrInvalidConfig)
	}
	if c.TileSize < 0 {
		return fmt.Errorf("tile size %d: %w", c.TileSize, ErrInvalidConfig)
	}

	if c.NumWorkers == 0 {
		c.NumWorkers = runtime.NumCPU()
	}
	if c.ChannelCapacity == 0 {
		c.ChannelCapacity = c.NumWorkers * c.Width
	}
	if c.ProgressInterval <= 0 {
		c.ProgressInterval = time.Second
	}
	return nil
}
