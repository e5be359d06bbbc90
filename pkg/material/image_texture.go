package material

import (
	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/loaders"
)

// missingTextureColor marks surfaces whose image could not be loaded
var missingTextureColor = core.NewVec3(1, 0, 1)

// ImageTexture provides color from a 2D image
type ImageTexture struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major: Pixels[y*Width + x]
}

// NewImageTexture creates a new image texture
func NewImageTexture(width, height int, pixels []core.Vec3) *ImageTexture {
	return &ImageTexture{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// LoadImageTexture loads an image file as a texture. A file that cannot be read or
// decoded is logged and replaced by a solid magenta texture so rendering can continue.
func LoadImageTexture(path string, logger core.Logger) Texture {
	data, err := loaders.LoadImage(path)
	if err != nil {
		logger.Printf("texture %q unavailable, using fallback: %v\n", path, err)
		return NewSolidColor(missingTextureColor)
	}
	return NewImageTexture(data.Width, data.Height, data.Pixels)
}

// Evaluate samples the texture at given UV coordinates using nearest-neighbor filtering
func (t *ImageTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	if t.Width <= 0 || t.Height <= 0 || len(t.Pixels) < t.Width*t.Height {
		return missingTextureColor
	}

	u := clamp01(uv.X)
	v := 1.0 - clamp01(uv.Y) // image rows run top to bottom

	x := int(u * float64(t.Width))
	y := int(v * float64(t.Height))

	// u or v of exactly 1 lands one past the last texel
	if x >= t.Width {
		x = t.Width - 1
	}
	if y >= t.Height {
		y = t.Height - 1
	}

	return t.Pixels[y*t.Width+x]
}

func clamp01(x float64) float64 {
	if x < 0 || x != x {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
