package material

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/go-bvh-raytracer/pkg/core"
)

type recordingLogger struct {
	messages []string
}

func (l *recordingLogger) Printf(format string, args ...interface{}) {
	l.messages = append(l.messages, format)
}

// TestImageTextureEvaluate tests basic texture sampling
func TestImageTextureEvaluate(t *testing.T) {
	// Layout:
	//   white black
	//   black white
	pixels := []core.Vec3{
		core.NewVec3(1, 1, 1), core.NewVec3(0, 0, 0), // Row 0 (top in image coords)
		core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1), // Row 1 (bottom in image coords)
	}
	texture := NewImageTexture(2, 2, pixels)

	white := core.NewVec3(1, 1, 1)
	black := core.NewVec3(0, 0, 0)

	tests := []struct {
		name     string
		uv       core.Vec2
		expected core.Vec3
	}{
		{"bottom-left", core.NewVec2(0.1, 0.1), black},
		{"bottom-right", core.NewVec2(0.9, 0.1), white},
		{"top-left", core.NewVec2(0.1, 0.9), white},
		{"top-right", core.NewVec2(0.9, 0.9), black},
		{"u=1 v=1 clamps to last texel", core.NewVec2(1, 1), black},
		{"u=0 v=0 clamps to first column, last row", core.NewVec2(0, 0), black},
		{"out of range clamps", core.NewVec2(-3, 7), white},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := texture.Evaluate(tt.uv, core.Vec3{})
			if result != tt.expected {
				t.Errorf("UV%v: expected %v, got %v", tt.uv, tt.expected, result)
			}
		})
	}
}

func TestLoadImageTexture_MissingFileFallsBack(t *testing.T) {
	logger := &recordingLogger{}
	texture := LoadImageTexture(filepath.Join(t.TempDir(), "missing.jpg"), logger)

	if got := texture.Evaluate(core.NewVec2(0.5, 0.5), core.Vec3{}); got != missingTextureColor {
		t.Errorf("Expected fallback color %v, got %v", missingTextureColor, got)
	}
	if len(logger.messages) != 1 {
		t.Errorf("Expected one log message, got %d", len(logger.messages))
	}
}

func TestLoadImageTexture_PNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "red.png")
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		t.Fatalf("Failed to encode PNG: %v", err)
	}
	f.Close()

	logger := &recordingLogger{}
	texture := LoadImageTexture(path, logger)
	got := texture.Evaluate(core.NewVec2(0.5, 0.5), core.Vec3{})
	if got != core.NewVec3(1, 0, 0) {
		t.Errorf("Expected red, got %v", got)
	}
	if len(logger.messages) != 0 {
		t.Errorf("Expected no log messages, got %v", logger.messages)
	}
}
