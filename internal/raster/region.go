package raster

import (
	"fmt"
	"strings"

	"polyraster/internal/geom"
)

// Region is the Cohen-Sutherland outcode of a point: one bit per clip
// window half-plane the point lies outside of.
type Region uint8

const (
	Inside Region = 0
	Left   Region = 1
	Right  Region = 2
	Bottom Region = 4
	Top    Region = 8
)

func (r Region) String() string {
	if r == Inside {
		return "inside"
	}
	var parts []string
	for _, b := range []struct {
		bit  Region
		name string
	}{{Left, "left"}, {Right, "right"}, {Bottom, "bottom"}, {Top, "top"}} {
		if r&b.bit != 0 {
			parts = append(parts, b.name)
		}
	}
	return strings.Join(parts, "|")
}

// Window is an axis-aligned clip rectangle. Points on the boundary are
// inside.
type Window struct {
	XMin float64 `yaml:"xmin"`
	XMax float64 `yaml:"xmax"`
	YMin float64 `yaml:"ymin"`
	YMax float64 `yaml:"ymax"`
}

// DefaultWindow is the clip rectangle used when none is configured.
var DefaultWindow = Window{XMin: 4, XMax: 10, YMin: 4, YMax: 8}

// Valid reports whether the bounds are ordered.
func (w Window) Valid() bool {
	return w.XMin <= w.XMax && w.YMin <= w.YMax
}

// Contains reports whether p is inside or on the boundary.
func (w Window) Contains(p geom.Point) bool {
	return w.Region(p) == Inside
}

func (w Window) String() string {
	return fmt.Sprintf("[%g,%g]x[%g,%g]", w.XMin, w.XMax, w.YMin, w.YMax)
}

// Region classifies p against w. A point cannot be both Left and Right,
// nor both Bottom and Top.
func (w Window) Region(p geom.Point) Region {
	r := Inside
	if p.X < w.XMin {
		r |= Left
	} else if p.X > w.XMax {
		r |= Right
	}
	if p.Y < w.YMin {
		r |= Bottom
	} else if p.Y > w.YMax {
		r |= Top
	}
	return r
}
