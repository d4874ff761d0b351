package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"polyraster/internal/geom"
	"polyraster/internal/raster"
)

const (
	sidebarWidth = 28
	headerHeight = 1
	footerHeight = 2
)

// layout holds the screen geometry shared by View and mouse handling.
type layout struct {
	contentW, contentH int
	mapX, mapY         int
	mapW, mapH         int
}

func (m Model) layout() layout {
	contentH := max(4, m.height-headerHeight-footerHeight)
	contentW := max(10, m.width)
	lay := layout{contentW: contentW, contentH: contentH, mapY: headerHeight, mapH: contentH}
	if m.showSidebar {
		lay.mapX = sidebarWidth + 1
	}
	lay.mapW = max(10, contentW-lay.mapX-1)
	return lay
}

func (l layout) inMap(x, y int) bool {
	return x >= l.mapX && x < l.mapX+l.mapW && y >= l.mapY && y < l.mapY+l.mapH
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	lay := m.layout()

	header := titleStyle.Render(" polyraster ─ polygon line rasterizer ")
	header = lipgloss.NewStyle().Width(lay.contentW).Render(header)

	mapStr, st := m.renderMap(lay.mapW, lay.mapH)
	var mapView string
	switch {
	case m.pasteMode:
		m.ta.SetWidth(lay.mapW)
		m.ta.SetHeight(min(lay.mapH, 12))
		mapView = m.ta.View()
	case m.help.ShowAll:
		mapView = m.overlay(lay, m.help.View(m.keys))
	case m.showAttrs:
		colW := 0
		for _, c := range m.tbl.Columns() {
			colW += c.Width + 2
		}
		maxW := min(lay.mapW, max(32, colW+4))
		m.tbl.SetWidth(maxW - 4)
		m.tbl.SetHeight(min(lay.mapH-2, 20))
		mapView = m.overlay(lay, m.tbl.View())
	case m.inspectPopup != "":
		mapView = m.overlay(lay, m.inspectPopup)
	default:
		mapView = mapStr
	}
	mapView = lipgloss.NewStyle().Width(lay.mapW).Height(lay.mapH).Render(mapView)

	body := mapView
	if m.showSidebar {
		m.l.SetSize(sidebarWidth-2, lay.contentH-2)
		sidebar := lipgloss.NewStyle().Width(sidebarWidth).Render(m.l.View())
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", mapView)
	}

	return appStyle.Width(lay.contentW).Height(m.height).
		Render(lipgloss.JoinVertical(lipgloss.Left, header, body, m.footer(lay, st)))
}

// overlay centers a boxed panel in the map area.
func (m Model) overlay(lay layout, content string) string {
	box := boxStyle.MaxWidth(lay.mapW).Render(content)
	return lipgloss.Place(lay.mapW, lay.mapH, lipgloss.Center, lipgloss.Center, box)
}

// footer is the status line with drawing state and hover coordinates,
// then the key help.
func (m Model) footer(lay layout, st raster.Stats) string {
	mode := flagStyle.Render(" " + m.alg.String() + " ")
	if m.clip {
		mode += flagStyle.Render("clip ")
	}
	status := dimStyle.Render(" " + m.status + " ")
	stats := dimStyle.Render(fmt.Sprintf(" edges=%d clipped=%d rejected=%d px=%d ", st.Edges, st.Clipped, st.Rejected, st.Pixels))
	coords := ""
	if m.hovering {
		p := geom.Pt(m.hoverX, m.hoverY)
		coords = dimStyle.Render(fmt.Sprintf("  x=%.2f y=%.2f %s  ", p.X, p.Y, m.window.Region(p)))
	}
	left := lipgloss.JoinHorizontal(lipgloss.Bottom, mode, status, stats)
	spacerW := max(0, lay.contentW-lipgloss.Width(left)-lipgloss.Width(coords))
	right := lipgloss.Place(spacerW+lipgloss.Width(coords), 1, lipgloss.Right, lipgloss.Center, coords)
	line := lipgloss.NewStyle().Width(lay.contentW).MaxHeight(1).Render(lipgloss.JoinHorizontal(lipgloss.Bottom, left, right))

	short := m.help
	short.ShowAll = false
	return lipgloss.JoinVertical(lipgloss.Left, line, " "+short.View(m.keys))
}
