package geom

import (
	"encoding/xml"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// LoadKML extracts polygon outer rings from a KML file
// (Placemark > Polygon > outerBoundaryIs > LinearRing > coordinates, also
// inside MultiGeometry). KML coordinates are "x,y[,alt]"; altitude is ignored.
func LoadKML(path string) (Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scene{}, err
	}
	return ParseKML(data)
}

// ParseKML is LoadKML for an in-memory document.
func ParseKML(data []byte) (Scene, error) {
	type kmlRing struct {
		Coordinates string `xml:"LinearRing>coordinates"`
	}
	type kmlPolygon struct {
		Outer kmlRing `xml:"outerBoundaryIs"`
	}
	type kmlPlacemark struct {
		Polygons []kmlPolygon `xml:"Polygon"`
		Multi    []kmlPolygon `xml:"MultiGeometry>Polygon"`
	}
	type kmlDoc struct {
		Placemarks []kmlPlacemark `xml:"Placemark"`
		Document   []kmlPlacemark `xml:"Document>Placemark"`
		Folders    []kmlPlacemark `xml:"Document>Folder>Placemark"`
	}

	var doc kmlDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return Scene{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	var rings [][]Point
	placemarks := append(append(doc.Placemarks, doc.Document...), doc.Folders...)
	for _, pm := range placemarks {
		for _, poly := range append(pm.Polygons, pm.Multi...) {
			var ring []Point
			// tuples are separated by whitespace, components by commas
			for _, tuple := range strings.Fields(poly.Outer.Coordinates) {
				vals := strings.Split(tuple, ",")
				if len(vals) < 2 {
					return Scene{}, fmt.Errorf("%w: kml tuple %q", ErrMalformed, tuple)
				}
				x, err1 := strconv.ParseFloat(strings.TrimSpace(vals[0]), 64)
				y, err2 := strconv.ParseFloat(strings.TrimSpace(vals[1]), 64)
				if err1 != nil || err2 != nil {
					return Scene{}, fmt.Errorf("%w: kml tuple %q", ErrMalformed, tuple)
				}
				ring = append(ring, Point{X: x, Y: y})
			}
			rings = append(rings, ring)
		}
	}
	return newScene("", rings)
}
