// Package output encodes rendered framebuffers to image files.
package output

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"

	"github.com/df07/go-bvh-raytracer/pkg/renderer"
)

// ErrUnknownFormat is returned for an output path whose extension has no encoder
var ErrUnknownFormat = errors.New("unknown output format")

// Format identifies an output encoding
type Format int

const (
	FormatPPMText   Format = iota // P3, one decimal triplet per line
	FormatPPMBinary               // P6
	FormatPNG
	FormatWebP
)

// StdoutPath selects text PPM on standard output
const StdoutPath = "-"

func (f Format) String() string {
	switch f {
	case FormatPPMText:
		return "ppm-text"
	case FormatPPMBinary:
		return "ppm"
	case FormatPNG:
		return "png"
	case FormatWebP:
		return "webp"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// FormatForPath picks the encoding from a file extension
func FormatForPath(path string) (Format, error) {
	if path == StdoutPath {
		return FormatPPMText, nil
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt":
		return FormatPPMText, nil
	case ".ppm":
		return FormatPPMBinary, nil
	case ".png":
		return FormatPNG, nil
	case ".webp":
		return FormatWebP, nil
	}
	return 0, fmt.Errorf("%q: %w", path, ErrUnknownFormat)
}

// WritePPM writes the framebuffer as a P3 text or P6 binary PPM, top row first
func WritePPM(w io.Writer, fb *renderer.Framebuffer, binary bool) error {
	bw := bufio.NewWriter(w)

	magic := "P3"
	if binary {
		magic = "P6"
	}
	if _, err := fmt.Fprintf(bw, "%s\n%d %d\n255\n", magic, fb.Width, fb.Height); err != nil {
		return err
	}

	if binary {
		if _, err := bw.Write(fb.Pix); err != nil {
			return err
		}
	} else {
		for i := 0; i+2 < len(fb.Pix); i += 3 {
			if _, err := fmt.Fprintf(bw, "%d %d %d\n", fb.Pix[i], fb.Pix[i+1], fb.Pix[i+2]); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// EncodePNG writes the framebuffer as a PNG
func EncodePNG(w io.Writer, fb *renderer.Framebuffer) error {
	return png.Encode(w, fb.Image())
}

// EncodeWebP writes the framebuffer as a lossless WebP
func EncodeWebP(w io.Writer, fb *renderer.Framebuffer) error {
	if err := nativewebp.Encode(w, fb.Image(), nil); err != nil {
		return fmt.Errorf("webp encode: %w", err)
	}
	return nil
}

// Encode writes the framebuffer in the given format
func Encode(w io.Writer, fb *renderer.Framebuffer, format Format) error {
	switch format {
	case FormatPPMText:
		return WritePPM(w, fb, false)
	case FormatPPMBinary:
		return WritePPM(w, fb, true)
	case FormatPNG:
		return EncodePNG(w, fb)
	case FormatWebP:
		return EncodeWebP(w, fb)
	}
	return fmt.Errorf("%v: %w", format, ErrUnknownFormat)
}

// Save writes the framebuffer to path, choosing the format by extension.
// StdoutPath writes text PPM to stdout instead of a file.
func Save(path string, fb *renderer.Framebuffer, stdout io.Writer) error {
	format, err := FormatForPath(path)
	if err != nil {
		return err
	}
	if path == StdoutPath {
		return Encode(stdout, fb, format)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	if err := Encode(f, fb, format); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

// Preview scales the framebuffer to fit within maxSize on its longer side.
// Images already small enough are returned at full size.
func Preview(fb *renderer.Framebuffer, maxSize int) *image.NRGBA {
	img := fb.Image()
	if maxSize <= 0 || (fb.Width <= maxSize && fb.Height <= maxSize) {
		return img
	}

	width, height := maxSize, maxSize
	if fb.Width >= fb.Height {
		height = max(1, fb.Height*maxSize/fb.Width)
	} else {
		width = max(1, fb.Width*maxSize/fb.Height)
	}

	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

// SavePreview writes a downscaled PNG next to the full render
func SavePreview(path string, fb *renderer.Framebuffer, maxSize int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating preview file: %w", err)
	}
	if err := png.Encode(f, Preview(fb, maxSize)); err != nil {
		f.Close()
		return fmt.Errorf("writing preview: %w", err)
	}
	return f.Close()
}
