package geom

import (
	"fmt"
	"math"
)

// MaxCoord bounds the magnitude of every loaded coordinate. Within it,
// integer line stepping over snapped pixels cannot overflow.
const MaxCoord = 1 << 29

// Point is a 2D vertex in world coordinates.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

type BBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// Extend grows the box to cover p. The zero BBox is not treated as empty,
// so callers seed it from the first point (see Scene.computeBBox).
func (b BBox) Extend(p Point) BBox {
	if p.X < b.MinX {
		b.MinX = p.X
	}
	if p.Y < b.MinY {
		b.MinY = p.Y
	}
	if p.X > b.MaxX {
		b.MaxX = p.X
	}
	if p.Y > b.MaxY {
		b.MaxY = p.Y
	}
	return b
}

// Valid reports whether the box has a non-zero area.
func (b BBox) Valid() bool {
	return b.MaxX > b.MinX && b.MaxY > b.MinY
}

// Polygon is a closed ring: the last point connects back to the first.
type Polygon struct {
	Points []Point
	// Centroid is the mean of Points, filled in once at load time.
	Centroid Point
}

// Mean returns the arithmetic mean of the vertices.
func (p Polygon) Mean() Point {
	if len(p.Points) == 0 {
		return Point{}
	}
	var c Point
	for _, pt := range p.Points {
		c.X += pt.X
		c.Y += pt.Y
	}
	n := float64(len(p.Points))
	return Point{X: c.X / n, Y: c.Y / n}
}

// Scene is the polygon list handed to the renderer.
type Scene struct {
	Polygons []Polygon
	BBox     BBox
	Source   string
}

// newScene drops a duplicated closing vertex from each ring and derives
// centroids and the bounding box. A ring without vertices, or with a
// coordinate that is not finite or exceeds MaxCoord, is malformed.
func newScene(src string, rings [][]Point) (Scene, error) {
	if len(rings) == 0 {
		return Scene{}, ErrEmpty
	}
	s := Scene{Source: src}
	for i, r := range rings {
		if len(r) > 1 && r[0] == r[len(r)-1] {
			r = r[:len(r)-1]
		}
		if len(r) == 0 {
			return Scene{}, fmt.Errorf("%w: polygon %d has no vertices", ErrMalformed, i)
		}
		for j, p := range r {
			if !finite(p.X) || !finite(p.Y) {
				return Scene{}, fmt.Errorf("%w: polygon %d vertex %d is not finite", ErrMalformed, i, j)
			}
			if math.Abs(p.X) > MaxCoord || math.Abs(p.Y) > MaxCoord {
				return Scene{}, fmt.Errorf("%w: polygon %d vertex %d exceeds ±%d", ErrMalformed, i, j, MaxCoord)
			}
		}
		s.Polygons = append(s.Polygons, Polygon{Points: r})
	}
	s.computeCentroids()
	s.computeBBox()
	return s, nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func (s *Scene) computeCentroids() {
	for i := range s.Polygons {
		s.Polygons[i].Centroid = s.Polygons[i].Mean()
	}
}

func (s *Scene) computeBBox() {
	first := true
	for _, poly := range s.Polygons {
		for _, p := range poly.Points {
			if first {
				s.BBox = BBox{MinX: p.X, MinY: p.Y, MaxX: p.X, MaxY: p.Y}
				first = false
				continue
			}
			s.BBox = s.BBox.Extend(p)
		}
	}
}

// NumVertices counts vertices across all polygons.
func (s Scene) NumVertices() int {
	n := 0
	for _, p := range s.Polygons {
		n += len(p.Points)
	}
	return n
}
