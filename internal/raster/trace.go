package raster

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"iter"
	"math"
	"runtime"
	"slices"
	"strings"
	"sync"

	"polyraster/internal/geom"
)

// Algorithm selects a line rasterizer.
type Algorithm uint8

const (
	AlgDDA Algorithm = iota
	AlgBresenham
)

func (a Algorithm) String() string {
	if a == AlgBresenham {
		return "bresenham"
	}
	return "dda"
}

// Toggle returns the other algorithm.
func (a Algorithm) Toggle() Algorithm {
	if a == AlgBresenham {
		return AlgDDA
	}
	return AlgBresenham
}

// Line returns the pixels of p0-p1 under a.
func (a Algorithm) Line(p0, p1 image.Point) iter.Seq[image.Point] {
	if a == AlgBresenham {
		return Bresenham(p0, p1)
	}
	return DDA(p0, p1)
}

// ParseAlgorithm accepts "dda" or "bresenham" (case-insensitive).
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dda":
		return AlgDDA, nil
	case "bresenham", "bres":
		return AlgBresenham, nil
	}
	return 0, fmt.Errorf("unknown algorithm %q (want dda or bresenham)", s)
}

func (a Algorithm) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

func (a *Algorithm) UnmarshalText(b []byte) error {
	v, err := ParseAlgorithm(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// Plotter receives rasterized pixels. It is the only place pixels become
// visible; the rasterizers themselves have no side effects.
type Plotter interface {
	Plot(x, y int, c color.Color)
}

// PlotterFunc adapts a function to Plotter.
type PlotterFunc func(x, y int, c color.Color)

func (f PlotterFunc) Plot(x, y int, c color.Color) { f(x, y, c) }

// Draw plots every pixel of seq and returns how many were plotted.
func Draw(seq iter.Seq[image.Point], p Plotter, c color.Color) int {
	n := 0
	for px := range seq {
		p.Plot(px.X, px.Y, c)
		n++
	}
	return n
}

// Snap rounds a point to the nearest pixel. Halves round away from zero,
// as math.Round does; DDA rounds its own halves toward +inf. Coordinates
// are clamped to ±geom.MaxCoord and NaN snaps to 0.
func Snap(p geom.Point) image.Point {
	return image.Pt(snap(p.X), snap(p.Y))
}

func snap(f float64) int {
	if math.IsNaN(f) {
		return 0
	}
	return int(math.Round(max(-geom.MaxCoord, min(f, geom.MaxCoord))))
}

// Edges yields the closed edge list of poly: each vertex paired with the
// next, and the last with the first. A single-vertex polygon yields one
// zero-length edge.
func Edges(poly geom.Polygon) iter.Seq[Segment] {
	return func(yield func(Segment) bool) {
		n := len(poly.Points)
		for i := 0; i < n; i++ {
			if !yield(Segment{P0: poly.Points[i], P1: poly.Points[(i+1)%n]}) {
				return
			}
		}
	}
}

// Stats summarizes a trace.
type Stats struct {
	Polygons int
	Edges    int
	Clipped  int
	Rejected int
	Pixels   int
}

// Add accumulates o into s.
func (s *Stats) Add(o Stats) {
	s.Polygons += o.Polygons
	s.Edges += o.Edges
	s.Clipped += o.Clipped
	s.Rejected += o.Rejected
	s.Pixels += o.Pixels
}

func (s *Stats) count(v Verdict) {
	s.Edges++
	switch v {
	case Clipped:
		s.Clipped++
	case Rejected:
		s.Rejected++
	}
}

// Tracer turns polygon edges into pixels.
type Tracer struct {
	Alg Algorithm
	// Clip, when set, trims every edge to the window before rasterizing.
	Clip *Window
	// Transform maps world coordinates into pixel space after clipping.
	// Nil means world units are pixels.
	Transform func(geom.Point) geom.Point
	// Bounds, when not empty, is the pixel rectangle of the sink. Edges
	// are trimmed to it after Transform so off-canvas pixels are never
	// generated. Verdicts and clip stats are unaffected.
	Bounds image.Rectangle
	// Workers bounds the goroutines used by Scene; <= 0 means NumCPU.
	Workers int
}

// Edge clips (if enabled), transforms and rasterizes one segment. The
// sequence is empty when the segment was rejected or lies outside Bounds.
func (t Tracer) Edge(s Segment) (iter.Seq[image.Point], Verdict) {
	v := Accepted
	if t.Clip != nil {
		s, v = t.Clip.Clip(s)
		if !v.Visible() {
			return func(func(image.Point) bool) {}, Rejected
		}
	}
	p0, p1 := s.P0, s.P1
	if t.Transform != nil {
		p0, p1 = t.Transform(p0), t.Transform(p1)
	}
	if !t.Bounds.Empty() {
		var bv Verdict
		if s, bv = boundsWindow(t.Bounds).Clip(Segment{P0: p0, P1: p1}); !bv.Visible() {
			return func(func(image.Point) bool) {}, v
		}
		p0, p1 = s.P0, s.P1
	}
	return t.Alg.Line(Snap(p0), Snap(p1)), v
}

// boundsWindow covers r with one pixel of slack on each side, so endpoints
// trimmed to it snap onto or just past the border.
func boundsWindow(r image.Rectangle) Window {
	return Window{
		XMin: float64(r.Min.X - 1),
		XMax: float64(r.Max.X),
		YMin: float64(r.Min.Y - 1),
		YMax: float64(r.Max.Y),
	}
}

// Polygon rasterizes the closed outline of poly into p.
func (t Tracer) Polygon(poly geom.Polygon, p Plotter, c color.Color) Stats {
	st := Stats{Polygons: 1}
	for s := range Edges(poly) {
		seq, v := t.Edge(s)
		st.count(v)
		st.Pixels += Draw(seq, p, c)
	}
	return st
}

type edgeJob struct {
	seg    Segment
	verd   Verdict
	pixels []image.Point
}

// Scene rasterizes every polygon. Edge pixels are generated concurrently
// and plotted afterwards in polygon and edge order, so the plot sequence is
// the same as calling Polygon for each polygon in turn.
func (t Tracer) Scene(ctx context.Context, polys []geom.Polygon, p Plotter, c color.Color) (Stats, error) {
	var jobs []edgeJob
	for _, poly := range polys {
		for s := range Edges(poly) {
			jobs = append(jobs, edgeJob{seg: s})
		}
	}

	workers := t.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	workers = min(workers, max(1, len(jobs)))

	idx := make(chan int)
	go func() {
		defer close(idx)
		for i := range jobs {
			select {
			case idx <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for j := range idx {
				seq, v := t.Edge(jobs[j].seg)
				jobs[j].verd = v
				jobs[j].pixels = slices.Collect(seq)
			}
		}()
	}
	wg.Wait()
	if err := ctx.Err(); err != nil {
		return Stats{}, err
	}

	st := Stats{Polygons: len(polys)}
	for _, j := range jobs {
		st.count(j.verd)
		for _, px := range j.pixels {
			p.Plot(px.X, px.Y, c)
		}
		st.Pixels += len(j.pixels)
	}
	Logger().Debug("traced scene",
		"alg", t.Alg.String(),
		"polygons", st.Polygons,
		"edges", st.Edges,
		"clipped", st.Clipped,
		"rejected", st.Rejected,
		"pixels", st.Pixels)
	return st, nil
}
