package raster

import (
	"fmt"

	"polyraster/internal/geom"
)

// Segment is a line segment between two world points.
type Segment struct {
	P0, P1 geom.Point
}

func (s Segment) String() string {
	return fmt.Sprintf("(%g,%g)-(%g,%g)", s.P0.X, s.P0.Y, s.P1.X, s.P1.Y)
}

// Verdict is the outcome of clipping a segment.
type Verdict uint8

const (
	// Rejected means no part of the segment is inside the window.
	Rejected Verdict = iota
	// Accepted means the segment was inside as given.
	Accepted
	// Clipped means at least one endpoint was moved onto the boundary.
	Clipped
)

func (v Verdict) String() string {
	switch v {
	case Accepted:
		return "accepted"
	case Clipped:
		return "clipped"
	}
	return "rejected"
}

// Visible reports whether some part of the segment survived.
func (v Verdict) Visible() bool { return v != Rejected }

// maxClipPasses bounds the clip loop. With exact arithmetic five passes
// suffice: two boundaries per endpoint plus the accepting pass.
const maxClipPasses = 8

// Clip trims s to the window with the Cohen-Sutherland algorithm.
//
// While the endpoints are neither both inside (accept) nor both outside a
// common half-plane (reject), one outside endpoint is moved onto a single
// boundary per pass, choosing top, bottom, right, then left. A rejected
// segment is returned as the zero Segment.
func (w Window) Clip(s Segment) (Segment, Verdict) {
	p0, p1 := s.P0, s.P1
	r0, r1 := w.Region(p0), w.Region(p1)
	moved := false

	for pass := 0; pass < maxClipPasses; pass++ {
		if r0 == Inside && r1 == Inside {
			if moved {
				return Segment{P0: p0, P1: p1}, Clipped
			}
			return s, Accepted
		}
		if r0&r1 != 0 {
			return Segment{}, Rejected
		}

		out := r0
		if out == Inside {
			out = r1
		}
		dx, dy := p1.X-p0.X, p1.Y-p0.Y
		var q geom.Point
		switch {
		case out&Top != 0:
			if dy == 0 {
				return Segment{}, Rejected
			}
			q = geom.Point{X: p0.X + dx*(w.YMax-p0.Y)/dy, Y: w.YMax}
		case out&Bottom != 0:
			if dy == 0 {
				return Segment{}, Rejected
			}
			q = geom.Point{X: p0.X + dx*(w.YMin-p0.Y)/dy, Y: w.YMin}
		case out&Right != 0:
			if dx == 0 {
				return Segment{}, Rejected
			}
			q = geom.Point{X: w.XMax, Y: p0.Y + dy*(w.XMax-p0.X)/dx}
		default: // Left
			if dx == 0 {
				return Segment{}, Rejected
			}
			q = geom.Point{X: w.XMin, Y: p0.Y + dy*(w.XMin-p0.X)/dx}
		}

		if out == r0 {
			p0, r0 = q, w.Region(q)
		} else {
			p1, r1 = q, w.Region(q)
		}
		moved = true
	}
	Logger().Warn("clip did not converge", "segment", s, "window", w)
	return Segment{}, Rejected
}
