// Package geom holds the polygon data model and the file loaders that
// produce it.
package geom

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrEmpty is returned when a file parses but holds no polygons.
	ErrEmpty = errors.New("no polygons found")
	// ErrMalformed is returned for syntactically broken input.
	ErrMalformed = errors.New("malformed polygon data")
	// ErrUnsupported is returned for unknown file extensions.
	ErrUnsupported = errors.New("unsupported file type")
)

// Extensions lists the file extensions Load understands, in picker order.
var Extensions = []string{".txt", ".dat", ".poly", ".wkt", ".geojson", ".json", ".csv", ".kml"}

// Supported reports whether Load can read path, judging by extension.
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return true
	}
	for _, e := range Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Load reads a polygon file, picking the parser by extension. Files
// without an extension are read as a native polygon list.
func Load(path string) (Scene, error) {
	ext := strings.ToLower(filepath.Ext(path))
	var (
		s   Scene
		err error
	)
	switch ext {
	case "", ".txt", ".dat", ".poly":
		s, err = LoadPolyList(path)
	case ".wkt":
		var data []byte
		data, err = os.ReadFile(path)
		if err == nil {
			s, err = ParseWKT(string(data))
		}
	case ".geojson", ".json":
		s, err = LoadGeoJSON(path)
	case ".csv":
		s, err = LoadCSV(path)
	case ".kml":
		s, err = LoadKML(path)
	default:
		return Scene{}, fmt.Errorf("%s: %w %q", path, ErrUnsupported, ext)
	}
	if err != nil {
		return Scene{}, fmt.Errorf("%s: %w", path, err)
	}
	s.Source = path
	return s, nil
}
