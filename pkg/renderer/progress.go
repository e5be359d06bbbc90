package renderer

import (
	"fmt"
	"strings"
	"time"

	"github.com/df07/go-bvh-raytracer/pkg/core"
)

const progressBarLength = 25

// Progress is a snapshot of how far a render has come
type Progress struct {
	Done    int           // Pixels received by the aggregator
	Total   int           // Pixels in the image
	Elapsed time.Duration // Time since the render started
	Workers int           // Workers in the pool
}

// ProgressFunc receives progress snapshots. It runs on the aggregating
// goroutine, so a slow callback slows the drain of the result queue.
type ProgressFunc func(Progress)

// Percent returns the completed share of the image as a whole percentage
func (p Progress) Percent() int {
	if p.Total <= 0 {
		return 0
	}
	return int(float64(p.Done) / float64(p.Total) * 100)
}

// PixelsPerSecond returns the average throughput so far
func (p Progress) PixelsPerSecond() int {
	seconds := p.Elapsed.Seconds()
	if seconds <= 0 {
		return 0
	}
	return int(float64(p.Done) / seconds)
}

// Bar renders the progress as a fixed-width bar of '#' and '-'
func (p Progress) Bar() string {
	filled := p.Percent() * progressBarLength / 100
	filled = max(0, min(progressBarLength, filled))
	return strings.Repeat("#", filled) + strings.Repeat("-", progressBarLength-filled)
}

// String formats the snapshot as a three-line status report
func (p Progress) String() string {
	return fmt.Sprintf("Rendering:  [%s] %d%%\n%s    %d pixel(s) per second\nthreads=%d  %d pixel(s) rendered\n",
		p.Bar(), p.Percent(),
		FormatDuration(p.Elapsed), p.PixelsPerSecond(),
		p.Workers, p.Done)
}

// LogProgress returns a ProgressFunc that writes each snapshot to logger
func LogProgress(logger core.Logger) ProgressFunc {
	return func(p Progress) {
		logger.Printf("%s", p.String())
	}
}

// FormatDuration formats d as hh:mm:ss
func FormatDuration(d time.Duration) string {
	total := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total/60)%60, total%60)
}
