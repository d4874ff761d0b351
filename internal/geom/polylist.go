package geom

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// LoadPolyList reads the native polygon list format:
//
//	N            number of polygons
//	K            vertex count of polygon 1
//	x y          K lines of coordinates
//	...          repeated for polygons 2..N
//
// Tokens may be split across lines arbitrarily. Blank lines and text after
// '#' are ignored.
func LoadPolyList(path string) (Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return Scene{}, err
	}
	defer f.Close()
	return ReadPolyList(f)
}

// ReadPolyList parses the native polygon list format from r.
func ReadPolyList(r io.Reader) (Scene, error) {
	tok, err := tokens(r)
	if err != nil {
		return Scene{}, err
	}
	next := func(what string) (string, error) {
		if len(tok) == 0 {
			return "", fmt.Errorf("%w: unexpected end of input reading %s", ErrMalformed, what)
		}
		t := tok[0]
		tok = tok[1:]
		return t, nil
	}
	count := func(what string) (int, error) {
		t, err := next(what)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(t)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("%w: bad %s %q", ErrMalformed, what, t)
		}
		return n, nil
	}
	coord := func(what string) (float64, error) {
		t, err := next(what)
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: bad %s %q", ErrMalformed, what, t)
		}
		return v, nil
	}

	if len(tok) == 0 {
		return Scene{}, ErrEmpty
	}
	n, err := count("polygon count")
	if err != nil {
		return Scene{}, err
	}
	rings := make([][]Point, 0, n)
	for i := 0; i < n; i++ {
		k, err := count(fmt.Sprintf("vertex count of polygon %d", i))
		if err != nil {
			return Scene{}, err
		}
		if k == 0 {
			return Scene{}, fmt.Errorf("%w: polygon %d has no vertices", ErrMalformed, i)
		}
		ring := make([]Point, 0, k)
		for j := 0; j < k; j++ {
			x, err := coord("x")
			if err != nil {
				return Scene{}, err
			}
			y, err := coord("y")
			if err != nil {
				return Scene{}, err
			}
			ring = append(ring, Point{X: x, Y: y})
		}
		rings = append(rings, ring)
	}
	if len(tok) > 0 {
		return Scene{}, fmt.Errorf("%w: %d trailing tokens after %d polygons", ErrMalformed, len(tok), n)
	}
	return newScene("", rings)
}

func tokens(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		out = append(out, strings.Fields(line)...)
	}
	return out, sc.Err()
}
