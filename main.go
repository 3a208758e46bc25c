package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/df07/go-adaptive-raytracer/pkg/renderer"
	"github.com/df07/go-adaptive-raytracer/pkg/scene"
)

// options holds the parsed command line
type options struct {
	sceneType  string
	configPath string
	meshPath   string
	output     string
	workers    int
	width      int
	noDenoise  bool
	noAdaptive bool
	list       bool
	help       bool
}

func parseOptions(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.StringVar(&opts.sceneType, "scene", "default", "Scene to render (see -list)")
	fs.StringVar(&opts.configPath, "config", "", "JSON render config; missing fields use defaults")
	fs.StringVar(&opts.meshPath, "mesh", scene.DefaultMeshPath, "Mesh file for the default scene (.obj or .ply, empty for none)")
	fs.StringVar(&opts.output, "output", "", "Output file (.ppm or .png); defaults to output/<scene>/render_<timestamp>.ppm")
	fs.IntVar(&opts.workers, "workers", -1, "Number of parallel workers (0 = auto)")
	fs.IntVar(&opts.width, "width", 0, "Image width; height follows the config aspect ratio")
	fs.BoolVar(&opts.noDenoise, "no-denoise", false, "Disable the denoising pass")
	fs.BoolVar(&opts.noAdaptive, "no-adaptive", false, "Take exactly one batch per pixel")
	fs.BoolVar(&opts.list, "list", false, "List available scenes")
	fs.BoolVar(&opts.help, "help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if opts.help {
		fmt.Println("Adaptive Raytracer")
		fmt.Println("Usage: raytracer [options]")
		fmt.Println()
		fmt.Println("Options:")
		fs.SetOutput(os.Stdout)
		fs.PrintDefaults()
	}
	return opts, nil
}

// loadRenderConfig builds the render config from defaults, the config file
// and command line overrides, in that order
func loadRenderConfig(opts options) (renderer.Config, error) {
	config := renderer.DefaultConfig()
	if opts.configPath != "" {
		var err error
		if config, err = renderer.LoadConfig(opts.configPath); err != nil {
			return config, err
		}
	}

	if opts.workers >= 0 {
		config.Workers = opts.workers
	}
	if opts.width > 0 {
		aspectRatio := config.AspectRatio()
		config.Width = opts.width
		config.Height = max(1, int(float64(opts.width)/aspectRatio))
	}
	if opts.noDenoise {
		config.Denoise = false
	}
	if opts.noAdaptive {
		config.AdaptiveSampling = false
	}
	return config, config.Validate()
}

// createScene builds the requested built-in scene
func createScene(sceneType, meshPath string) (*scene.Scene, error) {
	if sceneType == "" {
		return nil, fmt.Errorf("no scene specified")
	}
	return scene.Create(sceneType, meshPath)
}

func outputPath(opts options) string {
	if opts.output != "" {
		return opts.output
	}
	timestamp := time.Now().Format("20060102_150405")
	return filepath.Join("output", opts.sceneType, fmt.Sprintf("render_%s.ppm", timestamp))
}

func run(opts options) error {
	if opts.list {
		fmt.Println("Available scenes:")
		for _, info := range scene.ListScenes() {
			fmt.Printf("  %-12s %s\n", info.Name, info.Description)
		}
		return nil
	}

	config, err := loadRenderConfig(opts)
	if err != nil {
		return err
	}

	fmt.Println("Starting Adaptive Raytracer...")
	selectedScene, err := createScene(opts.sceneType, opts.meshPath)
	if err != nil {
		return fmt.Errorf("creating scene: %w", err)
	}

	raytracer, err := renderer.NewRaytracer(selectedScene, config, renderer.NewDefaultLogger())
	if err != nil {
		return err
	}

	startTime := time.Now()
	img, stats := raytracer.Render()
	fmt.Printf("Render completed in %v\n", time.Since(startTime))
	fmt.Printf("Samples per pixel: %.1f (range %d - %d)\n",
		stats.AverageSamples, stats.MinSamples, stats.MaxSamplesUsed)

	filename := outputPath(opts)
	if err := renderer.SaveImage(filename, img); err != nil {
		return err
	}
	fmt.Printf("Render saved as %s\n", filename)
	return nil
}

func main() {
	opts, err := parseOptions(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}
	if opts.help {
		return
	}

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
