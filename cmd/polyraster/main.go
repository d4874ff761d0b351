package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image/color"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"polyraster/internal/canvas"
	"polyraster/internal/config"
	"polyraster/internal/geom"
	"polyraster/internal/raster"
	"polyraster/internal/tui"
)

func main() {
	log.SetFlags(0)

	cfg, args, err := config.Parse(filepath.Base(os.Args[0]), os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		log.Fatal(err)
	}
	if len(args) != 1 {
		log.Fatalf("usage: %s [flags] <polygon-file>", filepath.Base(os.Args[0]))
	}

	scene, err := geom.Load(args[0])
	if err != nil {
		log.Fatal(err)
	}

	headless := cfg.Out != "" || !term.IsTerminal(int(os.Stdout.Fd()))
	if headless {
		if err := render(cfg, scene); err != nil {
			log.Fatal(err)
		}
		return
	}

	if cfg.Log != "" {
		f, err := tea.LogToFile(cfg.Log, "polyraster")
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		raster.SetLogger(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	m := tui.New(cfg, scene, args[0])
	if cfg.Watch {
		if err := m.Watch(); err != nil {
			log.Printf("watch %s: %v", args[0], err)
		}
		defer m.Close()
	}
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run(); err != nil {
		log.Fatal(err)
	}
}

// render draws the scene with world units as pixels and writes it to
// cfg.Out, or as PNG to stdout when no output file is given.
func render(cfg config.Config, scene geom.Scene) error {
	if cfg.Log != "" {
		f, err := os.OpenFile(cfg.Log, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		raster.SetLogger(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	ink, err := cfg.Ink()
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	t := raster.Tracer{Alg: cfg.Algorithm, Clip: cfg.ClipWindow(), Workers: cfg.Workers}
	fb, st, err := canvas.RenderScene(ctx, t, scene.Polygons, cfg.Width, cfg.Height, color.Black, ink)
	if err != nil {
		return err
	}

	if cfg.Out == "" {
		return fb.WritePNG(os.Stdout, cfg.Scale)
	}
	if err := fb.Save(cfg.Out, cfg.Scale); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "%s: %d polygons, %d edges (%d clipped, %d rejected), %d pixels -> %s\n",
		cfg.Algorithm, st.Polygons, st.Edges, st.Clipped, st.Rejected, st.Pixels, cfg.Out)
	return nil
}
