package canvas

import (
	"context"
	"image/color"

	"polyraster/internal/geom"
	"polyraster/internal/raster"
)

// RenderScene rasterizes polys into a new w x h framebuffer cleared to bg.
// World units are pixels unless t carries a Transform. Edges are trimmed
// to the framebuffer unless t already sets Bounds.
func RenderScene(ctx context.Context, t raster.Tracer, polys []geom.Polygon, w, h int, bg, ink color.Color) (*Framebuffer, raster.Stats, error) {
	fb := NewFramebuffer(w, h, bg)
	if t.Bounds.Empty() {
		t.Bounds = fb.Bounds()
	}
	st, err := t.Scene(ctx, polys, fb, ink)
	if err != nil {
		return nil, st, err
	}
	return fb, st, nil
}
