package geom

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ParseWKT parses a subset of WKT into a scene.
// Supported: POLYGON((x y, ...)), MULTIPOLYGON(((x y, ...)), ...), LINESTRING(x y, ...).
// Only outer rings are kept; holes are not part of the polygon model.
// A LINESTRING is read as a ring and closed implicitly.
func ParseWKT(wkt string) (Scene, error) {
	s := sepSpace.ReplaceAllString(strings.TrimSpace(wkt), "$1")
	if s == "" {
		return Scene{}, ErrEmpty
	}
	up := strings.ToUpper(s)
	var rings [][]Point
	switch {
	case strings.HasPrefix(up, "MULTIPOLYGON"):
		i := strings.Index(s, "(((")
		j := strings.LastIndex(s, ")))")
		if i < 0 || j <= i {
			return Scene{}, fmt.Errorf("%w: wkt multipolygon", ErrMalformed)
		}
		for _, poly := range strings.Split(s[i+3:j], ")),((") {
			outer, err := parseTuples(strings.Split(poly, "),(")[0])
			if err != nil {
				return Scene{}, err
			}
			rings = append(rings, outer)
		}
	case strings.HasPrefix(up, "POLYGON"):
		i := strings.Index(s, "((")
		j := strings.LastIndex(s, "))")
		if i < 0 || j <= i {
			return Scene{}, fmt.Errorf("%w: wkt polygon", ErrMalformed)
		}
		outer, err := parseTuples(strings.Split(s[i+2:j], "),(")[0])
		if err != nil {
			return Scene{}, err
		}
		rings = append(rings, outer)
	case strings.HasPrefix(up, "LINESTRING"):
		i := strings.Index(s, "(")
		j := strings.LastIndex(s, ")")
		if i < 0 || j <= i {
			return Scene{}, fmt.Errorf("%w: wkt linestring", ErrMalformed)
		}
		ls, err := parseTuples(s[i+1 : j])
		if err != nil {
			return Scene{}, err
		}
		rings = append(rings, ls)
	default:
		return Scene{}, fmt.Errorf("%w: wkt type", ErrUnsupported)
	}
	return newScene("", rings)
}

// sepSpace matches whitespace around WKT punctuation.
var sepSpace = regexp.MustCompile(`\s*([(),])\s*`)

func parseTuples(block string) ([]Point, error) {
	var out []Point
	for _, tup := range strings.Split(block, ",") {
		parts := strings.Fields(tup)
		if len(parts) < 2 {
			return nil, fmt.Errorf("%w: wkt tuple %q", ErrMalformed, tup)
		}
		x, e1 := strconv.ParseFloat(parts[0], 64)
		y, e2 := strconv.ParseFloat(parts[1], 64)
		if e1 != nil || e2 != nil {
			return nil, fmt.Errorf("%w: wkt tuple %q", ErrMalformed, tup)
		}
		out = append(out, Point{X: x, Y: y})
	}
	return out, nil
}
