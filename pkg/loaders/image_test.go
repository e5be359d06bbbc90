package loaders

import (
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/df07/go-bvh-raytracer/pkg/core"
)

func testPattern() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255}) // Top-left: white
	img.Set(1, 0, color.RGBA{R: 255, G: 0, B: 0, A: 255})     // Top-right: red
	img.Set(0, 1, color.RGBA{R: 0, G: 255, B: 0, A: 255})     // Bottom-left: green
	img.Set(1, 1, color.RGBA{R: 0, G: 0, B: 255, A: 255})     // Bottom-right: blue
	return img
}

// TestLoadImage writes the test pattern in each supported encoding and verifies loading
func TestLoadImage(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		encode func(io.Writer, image.Image) error
	}{
		{"png", "test.png", png.Encode},
		{"upper-case extension", "TEST.PNG", png.Encode},
		{"bmp", "test.bmp", bmp.Encode},
		{"tiff", "test.tiff", func(w io.Writer, img image.Image) error { return tiff.Encode(w, img, nil) }},
		{"gif", "test.gif", func(w io.Writer, img image.Image) error { return gif.Encode(w, img, nil) }},
		{"tga", "test.tga", tga.Encode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testFile := filepath.Join(t.TempDir(), tt.file)

			f, err := os.Create(testFile)
			if err != nil {
				t.Fatalf("Failed to create test file: %v", err)
			}
			if err := tt.encode(f, testPattern()); err != nil {
				f.Close()
				t.Fatalf("Failed to encode: %v", err)
			}
			f.Close()

			imageData, err := LoadImage(testFile)
			if err != nil {
				t.Fatalf("LoadImage failed: %v", err)
			}

			if imageData.Width != 2 || imageData.Height != 2 {
				t.Fatalf("Expected 2x2 image, got %dx%d", imageData.Width, imageData.Height)
			}
			if len(imageData.Pixels) != 4 {
				t.Fatalf("Expected 4 pixels, got %d", len(imageData.Pixels))
			}

			checkColor := func(name string, got, expected core.Vec3) {
				const tolerance = 0.01
				if abs(got.X-expected.X) > tolerance ||
					abs(got.Y-expected.Y) > tolerance ||
					abs(got.Z-expected.Z) > tolerance {
					t.Errorf("%s: expected %v, got %v", name, expected, got)
				}
			}

			checkColor("Top-left (white)", imageData.Pixels[0], core.NewVec3(1, 1, 1))
			checkColor("Top-right (red)", imageData.Pixels[1], core.NewVec3(1, 0, 0))
			checkColor("Bottom-left (green)", imageData.Pixels[2], core.NewVec3(0, 1, 0))
			checkColor("Bottom-right (blue)", imageData.Pixels[3], core.NewVec3(0, 0, 1))
		})
	}
}

// TestLoadImage_JPEG uses a solid color because chroma subsampling blurs the 2x2 pattern
func TestLoadImage_JPEG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: 255, A: 255})
		}
	}

	for _, name := range []string{"test.jpg", "test.jpeg"} {
		t.Run(name, func(t *testing.T) {
			testFile := filepath.Join(t.TempDir(), name)
			f, err := os.Create(testFile)
			if err != nil {
				t.Fatalf("Failed to create test file: %v", err)
			}
			if err := jpeg.Encode(f, img, &jpeg.Options{Quality: 100}); err != nil {
				f.Close()
				t.Fatalf("Failed to encode: %v", err)
			}
			f.Close()

			imageData, err := LoadImage(testFile)
			if err != nil {
				t.Fatalf("LoadImage failed: %v", err)
			}
			if imageData.Width != 8 || imageData.Height != 8 {
				t.Fatalf("Expected 8x8 image, got %dx%d", imageData.Width, imageData.Height)
			}
			for i, p := range imageData.Pixels {
				if p.X < 0.9 || p.Y > 0.1 || p.Z > 0.1 {
					t.Fatalf("Pixel %d: expected red, got %v", i, p)
				}
			}
		})
	}
}

func TestLoadImage_UnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "texture.xyz")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	if err := png.Encode(f, testPattern()); err != nil {
		f.Close()
		t.Fatalf("Failed to encode: %v", err)
	}
	f.Close()

	if _, err := LoadImage(path); !errors.Is(err, ErrUnsupportedImage) {
		t.Errorf("Expected ErrUnsupportedImage, got %v", err)
	}
}

func TestFromImage_OffsetBounds(t *testing.T) {
	img := image.NewGray(image.Rect(5, 5, 7, 6))
	img.SetGray(5, 5, color.Gray{Y: 0})
	img.SetGray(6, 5, color.Gray{Y: 255})

	data := FromImage(img)
	if data.Width != 2 || data.Height != 1 {
		t.Fatalf("Expected 2x1 image, got %dx%d", data.Width, data.Height)
	}
	if data.Pixels[0] != core.NewVec3(0, 0, 0) || data.Pixels[1] != core.NewVec3(1, 1, 1) {
		t.Errorf("Unexpected pixels %v", data.Pixels)
	}
}

// TestLoadImageNotFound verifies error handling for missing files
func TestLoadImageNotFound(t *testing.T) {
	_, err := LoadImage("nonexistent.png")
	if err == nil {
		t.Error("Expected error for non-existent file, got nil")
	}
}

func TestLoadImageNotAnImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.png")
	if err := os.WriteFile(path, []byte("plain text"), 0o644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	if _, err := LoadImage(path); err == nil {
		t.Error("Expected decode error, got nil")
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
