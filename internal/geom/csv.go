package geom

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// LoadCSV reads polygon vertices from a CSV file.
// Column detection (case-insensitive): poly|polygon|id|ring for the polygon
// key, x|lon|lng|long|longitude and y|lat|latitude for coordinates. Rows are
// grouped by key in order of first appearance; without a key column every
// row belongs to a single polygon.
func LoadCSV(path string) (Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return Scene{}, err
	}
	defer f.Close()
	return ReadCSV(f)
}

// ReadCSV is LoadCSV for an arbitrary reader.
func ReadCSV(r io.Reader) (Scene, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	recs, err := cr.ReadAll()
	if err != nil {
		return Scene{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(recs) == 0 {
		return Scene{}, ErrEmpty
	}
	idxKey, idxX, idxY := -1, -1, -1
	for i, h := range recs[0] {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "poly", "polygon", "id", "ring":
			if idxKey == -1 {
				idxKey = i
			}
		case "x", "lon", "lng", "long", "longitude":
			if idxX == -1 {
				idxX = i
			}
		case "y", "lat", "latitude":
			if idxY == -1 {
				idxY = i
			}
		}
	}
	if idxX == -1 || idxY == -1 {
		return Scene{}, fmt.Errorf("%w: csv x/y columns not found", ErrMalformed)
	}
	var (
		order []string
		rings = map[string][]Point{}
	)
	for n, row := range recs[1:] {
		if idxX >= len(row) || idxY >= len(row) {
			return Scene{}, fmt.Errorf("%w: csv row %d is short", ErrMalformed, n+2)
		}
		x, err1 := strconv.ParseFloat(strings.TrimSpace(row[idxX]), 64)
		y, err2 := strconv.ParseFloat(strings.TrimSpace(row[idxY]), 64)
		if err1 != nil || err2 != nil {
			return Scene{}, fmt.Errorf("%w: csv row %d coordinates", ErrMalformed, n+2)
		}
		key := ""
		if idxKey >= 0 && idxKey < len(row) {
			key = strings.TrimSpace(row[idxKey])
		}
		if _, seen := rings[key]; !seen {
			order = append(order, key)
		}
		rings[key] = append(rings[key], Point{X: x, Y: y})
	}
	out := make([][]Point, 0, len(order))
	for _, k := range order {
		out = append(out, rings[k])
	}
	return newScene("", out)
}
