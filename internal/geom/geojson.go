package geom

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadGeoJSON reads the outer rings of Polygon and MultiPolygon geometries
// from a GeoJSON file. Feature, FeatureCollection and bare geometries are
// accepted; other geometry types are skipped.
func LoadGeoJSON(path string) (Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scene{}, err
	}
	return ParseGeoJSON(data)
}

// ParseGeoJSON is LoadGeoJSON for an in-memory document.
func ParseGeoJSON(data []byte) (Scene, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Scene{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	var rings [][]Point
	parsePoint := func(v any) (pt Point, ok bool) {
		if a, ok := v.([]any); ok && len(a) >= 2 {
			x, xok := a[0].(float64)
			y, yok := a[1].(float64)
			if xok && yok {
				return Point{X: x, Y: y}, true
			}
		}
		return Point{}, false
	}
	parseRing := func(v any) (ring []Point, ok bool) {
		arr, ok := v.([]any)
		if !ok {
			return nil, false
		}
		for _, el := range arr {
			if pt, ok := parsePoint(el); ok {
				ring = append(ring, pt)
			}
		}
		return ring, true
	}
	// outer ring only; holes follow it in the coordinates array
	parsePolygon := func(v any) (ring []Point, ok bool) {
		arr, ok := v.([]any)
		if !ok || len(arr) == 0 {
			return nil, false
		}
		return parseRing(arr[0])
	}
	walkGeom := func(g map[string]any) {
		gt, _ := g["type"].(string)
		switch gt {
		case "Polygon":
			if r, ok := parsePolygon(g["coordinates"]); ok {
				rings = append(rings, r)
			}
		case "MultiPolygon":
			if arr, ok := g["coordinates"].([]any); ok {
				for _, el := range arr {
					if r, ok := parsePolygon(el); ok {
						rings = append(rings, r)
					}
				}
			}
		}
	}
	t, _ := raw["type"].(string)
	switch t {
	case "Feature":
		if g, ok := raw["geometry"].(map[string]any); ok {
			walkGeom(g)
		}
	case "FeatureCollection":
		if fs, ok := raw["features"].([]any); ok {
			for _, f := range fs {
				if fm, ok := f.(map[string]any); ok {
					if g, ok := fm["geometry"].(map[string]any); ok {
						walkGeom(g)
					}
				}
			}
		}
	case "":
		return Scene{}, fmt.Errorf("%w: geojson missing type", ErrMalformed)
	default:
		walkGeom(raw)
	}
	return newScene("", rings)
}
