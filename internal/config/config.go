// Package config holds the runtime settings of polyraster. Values come
// from an optional YAML file and are overridden by command line flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"io"
	"os"
	"runtime"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"

	"polyraster/internal/raster"
)

var (
	ErrInvalidWindow = errors.New("invalid clip window")
	ErrInvalidSize   = errors.New("invalid output size")
	ErrUnknownColor  = errors.New("unknown color")
)

type Config struct {
	Window    raster.Window    `yaml:"clip"`
	Algorithm raster.Algorithm `yaml:"algorithm"`
	Clip      bool             `yaml:"clip_enabled"`

	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
	Scale   int    `yaml:"scale"`
	Color   string `yaml:"color"`
	Workers int    `yaml:"workers"`

	// Watch reloads the scene in the TUI when its file changes.
	Watch bool `yaml:"watch"`

	// Out, when set, renders headless to this image file.
	Out string `yaml:"out"`
	// Log, when set, receives debug logs.
	Log string `yaml:"log"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Window:    raster.DefaultWindow,
		Algorithm: raster.AlgDDA,
		Width:     1000,
		Height:    800,
		Scale:     1,
		Color:     "lime",
		Workers:   runtime.NumCPU(),
		Watch:     true,
	}
}

// Load reads a YAML file over the defaults. Keys missing from the file
// keep their default value.
func Load(path string) (Config, error) {
	c := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	if err := yaml.Unmarshal(b, &c); err != nil {
		return c, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Validate checks the settings for consistency.
func (c Config) Validate() error {
	if !c.Window.Valid() {
		return fmt.Errorf("%w: %v", ErrInvalidWindow, c.Window)
	}
	if c.Width <= 0 || c.Height <= 0 || c.Scale <= 0 {
		return fmt.Errorf("%w: %dx%d scale %d", ErrInvalidSize, c.Width, c.Height, c.Scale)
	}
	if _, err := c.Ink(); err != nil {
		return err
	}
	return nil
}

// Ink resolves Color against the SVG color names.
func (c Config) Ink() (color.Color, error) {
	name := strings.ToLower(strings.TrimSpace(c.Color))
	ink, ok := colornames.Map[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColor, c.Color)
	}
	return ink, nil
}

// ClipWindow returns the window to clip against, or nil when clipping is
// off.
func (c Config) ClipWindow() *raster.Window {
	if !c.Clip {
		return nil
	}
	w := c.Window
	return &w
}

// RegisterFlags binds the command line flags to c. Parsing fs overwrites
// only the fields whose flags are given.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.Float64Var(&c.Window.XMin, "xmin", c.Window.XMin, "Clip window left edge")
	fs.Float64Var(&c.Window.XMax, "xmax", c.Window.XMax, "Clip window right edge")
	fs.Float64Var(&c.Window.YMin, "ymin", c.Window.YMin, "Clip window bottom edge")
	fs.Float64Var(&c.Window.YMax, "ymax", c.Window.YMax, "Clip window top edge")
	fs.TextVar(&c.Algorithm, "alg", c.Algorithm, "Line algorithm: dda or bresenham")
	fs.BoolVar(&c.Clip, "clip", c.Clip, "Clip edges to the window before drawing")
	fs.IntVar(&c.Width, "width", c.Width, "Output width in pixels")
	fs.IntVar(&c.Height, "height", c.Height, "Output height in pixels")
	fs.IntVar(&c.Scale, "scale", c.Scale, "Output upscale factor")
	fs.StringVar(&c.Color, "color", c.Color, "Line color name")
	fs.IntVar(&c.Workers, "conc", c.Workers, "Number of edges rasterized concurrently")
	fs.BoolVar(&c.Watch, "watch", c.Watch, "Reload the polygon file when it changes")
	fs.StringVar(&c.Out, "out", c.Out, "Render to this image file instead of the terminal")
	fs.StringVar(&c.Log, "log", c.Log, "Write debug logs to this file")
}

// Parse builds a Config from args. A -config file is loaded first and the
// remaining flags are applied on top of it. It returns the positional
// arguments.
func Parse(name string, args []string, output io.Writer) (Config, []string, error) {
	newSet := func(c *Config, path *string) *flag.FlagSet {
		fs := flag.NewFlagSet(name, flag.ContinueOnError)
		fs.SetOutput(output)
		fs.StringVar(path, "config", *path, "YAML configuration file")
		c.RegisterFlags(fs)
		fs.Usage = func() {
			fmt.Fprintf(output, "Usage: %s [flags] <polygon-file>\n\n", name)
			fs.PrintDefaults()
		}
		return fs
	}

	c := Default()
	var path string
	fs := newSet(&c, &path)
	if err := fs.Parse(args); err != nil {
		return c, nil, err
	}
	if path != "" {
		var err error
		if c, err = Load(path); err != nil {
			return c, nil, err
		}
		fs = newSet(&c, &path)
		if err := fs.Parse(args); err != nil {
			return c, nil, err
		}
	}
	return c, fs.Args(), c.Validate()
}
