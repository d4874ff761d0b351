package tui

import (
	"image"
	"math"

	"polyraster/internal/canvas"
	"polyraster/internal/geom"
	"polyraster/internal/raster"
)

// viewBox is the world rectangle fitted into the map at zoom 1: the scene
// bounds, plus the clip window while clipping is on, padded by a margin.
func (m Model) viewBox() geom.BBox {
	win := geom.BBox{MinX: m.window.XMin, MinY: m.window.YMin, MaxX: m.window.XMax, MaxY: m.window.YMax}
	bb := m.scene.BBox
	switch {
	case len(m.scene.Polygons) == 0:
		bb = win
	case m.clip:
		bb = bb.Extend(geom.Pt(win.MinX, win.MinY)).Extend(geom.Pt(win.MaxX, win.MaxY))
	}
	padX := max((bb.MaxX-bb.MinX)*0.05, 0.5)
	padY := max((bb.MaxY-bb.MinY)*0.05, 0.5)
	return geom.BBox{MinX: bb.MinX - padX, MinY: bb.MinY - padY, MaxX: bb.MaxX + padX, MaxY: bb.MaxY + padY}
}

// scale returns micro-pixels per world unit. Both axes share it so shapes
// keep their proportions.
func (m Model) scale(bb geom.BBox, w, h int) float64 {
	sx := float64(w*2-1) / (bb.MaxX - bb.MinX)
	sy := float64(h*4-1) / (bb.MaxY - bb.MinY)
	return min(sx, sy) * m.zoom
}

// project maps a world point onto the micro-pixel grid of a w x h cell
// map. World y grows upward, micro-pixel y grows downward.
func (m Model) project(p geom.Point, w, h int) geom.Point {
	bb := m.viewBox()
	s := m.scale(bb, w, h)
	cx, cy := (bb.MinX+bb.MaxX)/2, (bb.MinY+bb.MaxY)/2
	return geom.Point{
		X: float64(w*2-1)/2 + (p.X-cx)*s + float64(m.offsetX*2),
		Y: float64(h*4-1)/2 - (p.Y-cy)*s + float64(m.offsetY*4),
	}
}

// unproject is the inverse of project.
func (m Model) unproject(mx, my float64, w, h int) geom.Point {
	bb := m.viewBox()
	s := m.scale(bb, w, h)
	cx, cy := (bb.MinX+bb.MaxX)/2, (bb.MinY+bb.MaxY)/2
	return geom.Point{
		X: cx + (mx-float64(w*2-1)/2-float64(m.offsetX*2))/s,
		Y: cy - (my-float64(h*4-1)/2-float64(m.offsetY*4))/s,
	}
}

// cellToWorld converts a map cell to the world point under its center.
func (m Model) cellToWorld(cx, cy, w, h int) geom.Point {
	return m.unproject(float64(cx*2)+0.5, float64(cy*4)+1.5, w, h)
}

func windowPolygon(w raster.Window) geom.Polygon {
	return geom.Polygon{Points: []geom.Point{
		{X: w.XMin, Y: w.YMin},
		{X: w.XMax, Y: w.YMin},
		{X: w.XMax, Y: w.YMax},
		{X: w.XMin, Y: w.YMax},
	}}
}

// renderMap rasterizes the scene into a w x h braille canvas.
func (m Model) renderMap(w, h int) (string, raster.Stats) {
	br := canvas.NewBraille(w, h)
	toMicro := func(p geom.Point) geom.Point { return m.project(p, w, h) }
	t := m.tracer()
	t.Transform = toMicro
	t.Bounds = br.Bounds()

	if m.clip {
		frame := raster.Tracer{Alg: m.alg, Transform: toMicro, Bounds: br.Bounds()}
		frame.Polygon(windowPolygon(m.window), br, windowInk)
	}

	var st raster.Stats
	for i, poly := range m.scene.Polygons {
		if i != m.cur {
			st.Add(t.Polygon(poly, br, m.ink))
		}
	}
	if poly, ok := m.current(); ok {
		st.Add(t.Polygon(poly, br, currentInk))
	}

	for i, poly := range m.scene.Polygons {
		c := raster.Snap(toMicro(poly.Centroid))
		ink := m.ink
		if i == m.cur {
			ink = currentInk
		}
		br.Mark(c.X, c.Y, '+', ink)
	}

	if m.hovering {
		if p, ok := m.nearestVertex(w, h); ok {
			br.Mark(p.X, p.Y, '◯', hoverInk)
		}
	}
	return br.Render(), st
}

// nearestVertex returns the micro-pixel of the vertex closest to the
// hovered point.
func (m Model) nearestVertex(w, h int) (image.Point, bool) {
	hp := m.project(geom.Pt(m.hoverX, m.hoverY), w, h)
	best := math.Inf(1)
	var bp geom.Point
	for _, poly := range m.scene.Polygons {
		for _, v := range poly.Points {
			p := m.project(v, w, h)
			if d := math.Hypot(p.X-hp.X, p.Y-hp.Y); d < best {
				best, bp = d, p
			}
		}
	}
	if math.IsInf(best, 1) {
		return image.Point{}, false
	}
	return raster.Snap(bp), true
}
