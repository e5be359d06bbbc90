package renderer

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

var (
	// ErrPixelOutOfRange is returned for a pixel outside the image
	ErrPixelOutOfRange = errors.New("pixel out of range")

	// ErrDuplicatePixel is returned when a pixel is written twice
	ErrDuplicatePixel = errors.New("pixel written twice")

	// ErrMissingPixel is returned when the image is incomplete
	ErrMissingPixel = errors.New("pixel never written")
)

// Framebuffer holds quantized pixels indexed by (row, col), row 0 at the top
type Framebuffer struct {
	Width  int
	Height int
	Pix    []uint8 // RGB triplets in row-major order
	filled []bool
	count  int
}

// NewFramebuffer allocates an empty framebuffer
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, 3*width*height),
		filled: make([]bool, width*height),
	}
}

// Set stores a pixel; each pixel may be written exactly once
func (fb *Framebuffer) Set(row, col int, c RGB8) error {
	if row < 0 || row >= fb.Height || col < 0 || col >= fb.Width {
		return fmt.Errorf("(%d, %d) in %dx%d image: %w", row, col, fb.Width, fb.Height, ErrPixelOutOfRange)
	}
	i := row*fb.Width + col
	if fb.filled[i] {
		return fmt.Errorf("(%d, %d): %w", row, col, ErrDuplicatePixel)
	}
	fb.filled[i] = true
	fb.count++
	fb.Pix[3*i], fb.Pix[3*i+1], fb.Pix[3*i+2] = c.R, c.G, c.B
	return nil
}

// At returns the pixel at (row, col)
func (fb *Framebuffer) At(row, col int) RGB8 {
	i := 3 * (row*fb.Width + col)
	return RGB8{R: fb.Pix[i], G: fb.Pix[i+1], B: fb.Pix[i+2]}
}

// Filled returns the number of pixels written so far
func (fb *Framebuffer) Filled() int {
	return fb.count
}

// Complete reports an error naming the first pixel that was never written
func (fb *Framebuffer) Complete() error {
	if fb.count == len(fb.filled) {
		return nil
	}
	for i, ok := range fb.filled {
		if !ok {
			return fmt.Errorf("(%d, %d): %w", i/fb.Width, i%fb.Width, ErrMissingPixel)
		}
	}
	return nil
}

// Image returns the framebuffer as an opaque NRGBA image
func (fb *Framebuffer) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for row := 0; row < fb.Height; row++ {
		for col := 0; col < fb.Width; col++ {
			c := fb.At(row, col)
			img.SetNRGBA(col, row, color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255})
		}
	}
	return img
}
