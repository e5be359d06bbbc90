package renderer

import (
	"github.com/df07/go-bvh-raytracer/pkg/core"
)

// maxChannel is the largest value a channel is clamped to before quantizing
const maxChannel = 0.999

// RGB8 is a quantized output pixel
type RGB8 struct {
	R, G, B uint8
}

// ToneMap converts an averaged linear color to display space: square-root
// gamma unless linear is set, then clamped to [0, 0.999]
func ToneMap(color core.Vec3, linear bool) core.Vec3 {
	if !linear {
		color = color.Sqrt()
	}
	return core.NewVec3(clampChannel(color.X), clampChannel(color.Y), clampChannel(color.Z))
}

// Quantize maps a tone-mapped channel to 8 bits as uint8(256 * clamp(c, 0, 0.999)).
// Every input maps to [0, 255]; NaN maps to 0.
func Quantize(c float64) uint8 {
	return uint8(256 * clampChannel(c))
}

// QuantizeColor tone-maps and quantizes a color
func QuantizeColor(color core.Vec3, linear bool) RGB8 {
	mapped := ToneMap(color, linear)
	return RGB8{R: Quantize(mapped.X), G: Quantize(mapped.Y), B: Quantize(mapped.Z)}
}

func clampChannel(c float64) float64 {
	if !(c > 0) {
		return 0 // also catches NaN
	}
	if c > maxChannel {
		return maxChannel
	}
	return c
}
