package geom

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoSquares = `2

4
0 0
10 0
10 10
0 10

3  # triangle
20 20
30 20
25 28
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestReadPolyList(t *testing.T) {
	s, err := ReadPolyList(strings.NewReader(twoSquares))
	require.NoError(t, err)
	require.Len(t, s.Polygons, 2)

	assert.Len(t, s.Polygons[0].Points, 4)
	assert.Equal(t, Pt(5, 5), s.Polygons[0].Centroid)
	assert.Equal(t, Pt(25, 68.0/3), s.Polygons[1].Centroid)
	assert.Equal(t, BBox{MinX: 0, MinY: 0, MaxX: 30, MaxY: 28}, s.BBox)
	assert.Equal(t, 7, s.NumVertices())
}

func TestReadPolyListErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"empty", "", ErrEmpty},
		{"comment only", "# nothing\n\n", ErrEmpty},
		{"zero polygons", "0", ErrEmpty},
		{"bad count", "two", ErrMalformed},
		{"negative count", "-1", ErrMalformed},
		{"truncated", "1\n3\n0 0\n1 1\n", ErrMalformed},
		{"bad coordinate", "1\n1\n0 zero\n", ErrMalformed},
		{"empty polygon", "1\n0\n", ErrMalformed},
		{"trailing", "1\n1\n0 0\n5 5\n", ErrMalformed},
		{"infinite coordinate", "1 3  0 0  inf 0  1 5", ErrMalformed},
		{"nan coordinate", "1 3  0 0  1 0  nan 5", ErrMalformed},
		{"coordinate too large", "1 3  0 0  3e9 0  0 7", ErrMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadPolyList(strings.NewReader(tt.input))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoadDispatch(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		polys   int
		first   []Point
	}{
		{
			name:    "native",
			file:    "scene.txt",
			content: twoSquares,
			polys:   2,
			first:   []Point{Pt(0, 0), Pt(10, 0), Pt(10, 10), Pt(0, 10)},
		},
		{
			name:    "no extension",
			file:    "scene",
			content: "1 3 0 0 4 0 2 3",
			polys:   1,
			first:   []Point{Pt(0, 0), Pt(4, 0), Pt(2, 3)},
		},
		{
			name:    "wkt polygon with hole",
			file:    "shape.wkt",
			content: "POLYGON ((0 0, 4 0, 4 4, 0 4, 0 0), (1 1, 2 1, 2 2, 1 1))",
			polys:   1,
			first:   []Point{Pt(0, 0), Pt(4, 0), Pt(4, 4), Pt(0, 4)},
		},
		{
			name:    "wkt multipolygon",
			file:    "shape.wkt",
			content: "MULTIPOLYGON (((0 0, 1 0, 1 1, 0 0)), ((5 5, 6 5, 6 6, 5 5)))",
			polys:   2,
			first:   []Point{Pt(0, 0), Pt(1, 0), Pt(1, 1)},
		},
		{
			name: "geojson",
			file: "shape.geojson",
			content: `{"type":"FeatureCollection","features":[
				{"type":"Feature","geometry":{"type":"Point","coordinates":[9,9]}},
				{"type":"Feature","geometry":{"type":"Polygon","coordinates":[[[0,0],[2,0],[2,2],[0,0]]]}},
				{"type":"Feature","geometry":{"type":"MultiPolygon","coordinates":[[[[5,5],[6,5],[6,6]]]]}}]}`,
			polys: 2,
			first: []Point{Pt(0, 0), Pt(2, 0), Pt(2, 2)},
		},
		{
			name:    "csv",
			file:    "shape.csv",
			content: "poly,x,y\na,0,0\na,3,0\nb,7,7\na,3,3\nb,8,7\nb,8,8\n",
			polys:   2,
			first:   []Point{Pt(0, 0), Pt(3, 0), Pt(3, 3)},
		},
		{
			name: "kml",
			file: "shape.kml",
			content: `<?xml version="1.0" encoding="UTF-8"?>
<kml xmlns="http://www.opengis.net/kml/2.2"><Document><Placemark><Polygon><outerBoundaryIs><LinearRing>
<coordinates>0,0,0 5,0,0 5,5,0 0,0,0</coordinates>
</LinearRing></outerBoundaryIs></Polygon></Placemark></Document></kml>`,
			polys: 1,
			first: []Point{Pt(0, 0), Pt(5, 0), Pt(5, 5)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := writeFile(t, tt.file, tt.content)
			s, err := Load(p)
			require.NoError(t, err)
			assert.Equal(t, p, s.Source)
			require.Len(t, s.Polygons, tt.polys)
			assert.Equal(t, tt.first, s.Polygons[0].Points)
			for _, poly := range s.Polygons {
				assert.Equal(t, poly.Mean(), poly.Centroid)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeFile(t, "scene.svg", "<svg/>"))
	assert.ErrorIs(t, err, ErrUnsupported)

	_, err = Load(writeFile(t, "points.geojson", `{"type":"Point","coordinates":[1,2]}`))
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = Load(writeFile(t, "bad.wkt", "POINT (1 2)"))
	assert.ErrorIs(t, err, ErrUnsupported)

	_, err = Load(writeFile(t, "bad.csv", "a,b\n1,2\n"))
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestLoadNonFinite(t *testing.T) {
	tests := []struct {
		file    string
		content string
	}{
		{"scene.txt", "1 3  0 0  Infinity 0  0 1"},
		{"shape.wkt", "POLYGON ((0 0, Inf 0, 0 1, 0 0))"},
		{"shape.csv", "poly,x,y\na,0,0\na,NaN,0\na,0,1\n"},
		{"shape.kml", `<kml><Placemark><Polygon><outerBoundaryIs><LinearRing>
<coordinates>0,0 -inf,0 0,1 0,0</coordinates>
</LinearRing></outerBoundaryIs></Polygon></Placemark></kml>`},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.content))
			require.ErrorIs(t, err, ErrMalformed)
			assert.Contains(t, err.Error(), "polygon 0 vertex 1 is not finite")
		})
	}
}

func TestNewSceneCoordinateLimit(t *testing.T) {
	s, err := newScene("", [][]Point{{Pt(-MaxCoord, 0), Pt(MaxCoord, 0), Pt(0, MaxCoord)}})
	require.NoError(t, err)
	assert.Equal(t, BBox{MinX: -MaxCoord, MinY: 0, MaxX: MaxCoord, MaxY: MaxCoord}, s.BBox)

	_, err = newScene("", [][]Point{{Pt(0, 0), Pt(0, -MaxCoord-1)}})
	require.ErrorIs(t, err, ErrMalformed)
	assert.Contains(t, err.Error(), "polygon 0 vertex 1 exceeds")
}

func TestSupported(t *testing.T) {
	assert.True(t, Supported("a.txt"))
	assert.True(t, Supported("A.WKT"))
	assert.True(t, Supported("input"))
	assert.False(t, Supported("a.png"))
}

func TestMeanEmpty(t *testing.T) {
	assert.Equal(t, Point{}, Polygon{}.Mean())
}
