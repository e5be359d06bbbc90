package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/df07/go-bvh-raytracer/pkg/config"
	"github.com/df07/go-bvh-raytracer/pkg/core"
	"github.com/df07/go-bvh-raytracer/pkg/output"
	"github.com/df07/go-bvh-raytracer/pkg/renderer"
	"github.com/df07/go-bvh-raytracer/pkg/scene"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// run parses arguments, renders the selected scene and saves the image.
// Image data written to "-" goes to stdout; everything else goes to stderr.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var flags config.Flags
	configPath := fs.String("config", "", "JSON config file (flags override its values)")
	list := fs.Bool("list", false, "List available scenes and exit")
	fs.StringVar(&flags.Scene, "scene", "", "Scene to render (see -list)")
	fs.StringVar(&flags.Output, "o", "", "Output file: .ppm, .png, .webp, .txt, or - for text PPM on stdout")
	fs.StringVar(&flags.Preview, "preview", "", "Also write a downscaled PNG preview to this file")
	fs.StringVar(&flags.AssetDir, "assets", "", "Directory containing texture images")
	fs.IntVar(&flags.Width, "width", 0, "Image width (default: scene recommendation)")
	fs.IntVar(&flags.Height, "height", 0, "Image height (default: keeps the scene aspect ratio)")
	fs.IntVar(&flags.SamplesPerPixel, "spp", 0, "Samples per pixel (default: scene recommendation)")
	fs.IntVar(&flags.MaxDepth, "depth", 0, "Maximum ray bounce depth (default: scene recommendation)")
	fs.IntVar(&flags.Workers, "workers", 0, "Number of parallel workers (default: CPU count)")
	fs.IntVar(&flags.TileSize, "tile", 0, "Square tile size; 0 renders one scanline per task")
	seed := fs.Uint64("seed", 42, "Random seed for scene layout and sampling")
	fs.BoolVar(&flags.Linear, "linear", false, "Skip gamma correction")
	fs.BoolVar(&flags.FlatWorld, "flat", false, "Intersect a flat object list instead of building a BVH")
	fs.BoolVar(&flags.Quiet, "quiet", false, "Suppress progress output")

	if err := fs.Parse(args); err != nil {
		return err
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			flags.Seed = seed
		}
	})

	if *list {
		printScenes(stdout)
		return nil
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	cfg.Resolve(flags)

	logger := renderer.NewWriterLogger(stderr)
	if cfg.Quiet {
		logger = core.NopLogger{}
	}

	s, err := createScene(&cfg, logger)
	if err != nil {
		return err
	}

	rt, err := renderer.NewRaytracer(s, cfg.RenderConfig(), logger)
	if err != nil {
		return err
	}
	if !cfg.Quiet {
		rt.SetProgressFunc(renderer.LogProgress(logger))
	}

	fb, stats, err := rt.Render(ctx)
	if err != nil {
		return err
	}
	logger.Printf("Samples: %d across %d tasks on %d workers\n", stats.TotalSamples, stats.NumTasks, stats.NumWorkers)

	if err := output.Save(cfg.Output, fb, stdout); err != nil {
		return err
	}
	if cfg.Output != output.StdoutPath {
		logger.Printf("Render saved as %s\n", cfg.Output)
	}

	if cfg.Preview != "" {
		if err := output.SavePreview(cfg.Preview, fb, cfg.PreviewSize); err != nil {
			return err
		}
		logger.Printf("Preview saved as %s\n", cfg.Preview)
	}
	return nil
}

// createScene builds the configured scene after filling in its recommended settings
func createScene(cfg *config.Config, logger core.Logger) (*scene.Scene, error) {
	info, err := scene.Lookup(cfg.Scene)
	if err != nil {
		return nil, err
	}
	cfg.ApplySceneDefaults(info.Defaults)

	logger.Printf("Building scene %s (%dx%d, %d spp, depth %d)\n",
		info.DisplayName, cfg.Width, cfg.Height, cfg.SamplesPerPixel, cfg.MaxDepth)
	return scene.ByName(cfg.Scene, cfg.SceneOptions(logger))
}

func printScenes(w io.Writer) {
	for _, group := range scene.ListScenes() {
		fmt.Fprintf(w, "%s:\n", group.Name)
		for _, info := range group.Scenes {
			d := info.Defaults
			fmt.Fprintf(w, "  %-20s %s (%dx%d, %d spp)\n",
				info.ID, info.Description, d.Width, d.Height(), d.SamplesPerPixel)
		}
	}
	fmt.Fprintf(w, "\nScenes: %s\n", strings.Join(scene.Names(), ", "))
}
