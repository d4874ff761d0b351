package raster

import (
	"image"
	"iter"
)

// DDA returns the pixels of the line p0-p1 using a digital differential
// analyzer. It takes max(|dx|, |dy|) steps, advancing x by dx/steps and y
// by dy/steps each time, and yields steps+1 pixels from p0 to p1.
//
// Step i lands at p0 + round(i*d/steps), computed in integers rather than
// by accumulating a float, so it never drifts and DDA(p1, p0) yields
// exactly the reverse of DDA(p0, p1). Halves round toward +inf. The
// products stay in range for coordinates within ±geom.MaxCoord.
func DDA(p0, p1 image.Point) iter.Seq[image.Point] {
	return func(yield func(image.Point) bool) {
		dx, dy := p1.X-p0.X, p1.Y-p0.Y
		steps := max(abs(dx), abs(dy))
		if steps == 0 {
			yield(p0)
			return
		}
		for i := 0; i <= steps; i++ {
			if !yield(ddaStep(p0, dx, dy, steps, i)) {
				return
			}
		}
	}
}

func ddaStep(p0 image.Point, dx, dy, steps, i int) image.Point {
	return image.Pt(p0.X+roundDiv(i*dx, steps), p0.Y+roundDiv(i*dy, steps))
}

// Bresenham returns the pixels of the line p0-p1 using integer slope-error
// stepping. The longer axis advances every step; the shorter one advances
// whenever the accumulated error turns non-negative. All eight octants
// are handled, and the first and last pixels are p0 and p1.
func Bresenham(p0, p1 image.Point) iter.Seq[image.Point] {
	return func(yield func(image.Point) bool) {
		dx, dy := p1.X-p0.X, p1.Y-p0.Y
		sx, sy := sign(dx), sign(dy)
		major, minor := abs(dx), abs(dy)
		steep := minor > major
		if steep {
			major, minor = minor, major
		}
		m := 2 * minor
		e := m - major
		x, y := p0.X, p0.Y
		for i := 0; ; i++ {
			if !yield(image.Pt(x, y)) || i == major {
				return
			}
			if e >= 0 {
				if steep {
					x += sx
				} else {
					y += sy
				}
				e -= 2 * major
			}
			e += m
			if steep {
				y += sy
			} else {
				x += sx
			}
		}
	}
}

// roundDiv returns n/d rounded to the nearest integer, halves up. d > 0.
func roundDiv(n, d int) int {
	return floorDiv(2*n+d, 2*d)
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}
