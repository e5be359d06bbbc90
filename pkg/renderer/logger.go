package renderer

import (
	"fmt"
	"io"
	"os"

	"github.com/df07/go-bvh-raytracer/pkg/core"
)

// DefaultLogger implements core.Logger by writing to stderr, leaving stdout
// free for image data
type DefaultLogger struct {
	out io.Writer
}

// Printf writes a formatted message
func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Fprintf(dl.out, format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{out: os.Stderr}
}

// NewWriterLogger creates a logger writing to w
func NewWriterLogger(w io.Writer) core.Logger {
	return &DefaultLogger{out: w}
}
