package tui

import (
	"fmt"
	"strconv"

	table "github.com/charmbracelet/bubbles/table"

	"polyraster/internal/raster"
)

// refreshVertices rebuilds the table from the current polygon: one row per
// vertex with its region code and the clip verdict of the edge leaving it.
func (m *Model) refreshVertices() {
	poly, ok := m.current()
	if !ok {
		m.showAttrs = false
		m.status = "no polygon selected"
		return
	}
	cols := []table.Column{
		{Title: "#", Width: 4},
		{Title: "x", Width: 10},
		{Title: "y", Width: 10},
		{Title: "region", Width: 14},
		{Title: "edge", Width: 9},
	}
	rows := make([]table.Row, 0, len(poly.Points))
	i := 0
	for s := range raster.Edges(poly) {
		_, v := m.window.Clip(s)
		rows = append(rows, table.Row{
			strconv.Itoa(i + 1),
			formatCoord(s.P0.X),
			formatCoord(s.P0.Y),
			m.window.Region(s.P0).String(),
			v.String(),
		})
		i++
	}
	// Clear rows before swapping columns so the table never renders a
	// row wider than its column set.
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(cols)
	m.tbl.SetRows(rows)
	m.tbl.GotoTop()
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

// inspect describes the current polygon for the popup.
func (m Model) inspect() string {
	poly, ok := m.current()
	if !ok {
		return "no polygon"
	}
	var verdicts [3]int
	for s := range raster.Edges(poly) {
		_, v := m.window.Clip(s)
		verdicts[v]++
	}
	name := sourceName(m.path)
	return fmt.Sprintf(
		"source: %s\npolygon: %d of %d\nvertices: %d\ncentroid: (%s, %s)\ncentroid region: %s\nwindow: %v\nedges: %d accepted, %d clipped, %d rejected",
		name, m.cur+1, len(m.scene.Polygons), len(poly.Points),
		formatCoord(poly.Centroid.X), formatCoord(poly.Centroid.Y),
		m.window.Region(poly.Centroid), m.window,
		verdicts[raster.Accepted], verdicts[raster.Clipped], verdicts[raster.Rejected],
	)
}

func sourceName(p string) string {
	if p == "" {
		return "<pasted>"
	}
	return p
}
