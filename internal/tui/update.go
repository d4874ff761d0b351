package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"polyraster/internal/geom"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if m.showSidebar {
			lay := m.layout()
			m.l.SetSize(sidebarWidth-2, lay.mapH-2)
		}
	case savedMsg:
		if msg.err != nil {
			m.status = "save error: " + msg.err.Error()
		} else {
			m.status = fmt.Sprintf("saved %s (%d px)", msg.path, msg.pixels)
		}
		return m, nil
	case fileEventMsg:
		m.handleFileEvent(msg.event)
		return m, m.waitEvent()
	case watchErrMsg:
		m.status = "watch error: " + msg.err.Error()
		return m, m.waitEvent()
	case tea.KeyMsg:
		// While filtering, keys belong to the list.
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.pasteMode {
			return m.updatePaste(msg)
		}
		// The vertex table scrolls with the arrow keys instead of the map.
		if m.showAttrs && isScrollKey(msg.String()) {
			var cmd tea.Cmd
			m.tbl, cmd = m.tbl.Update(msg)
			return m, cmd
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Alg):
			m.alg = m.alg.Toggle()
			m.status = "algorithm: " + m.alg.String()
		case key.Matches(msg, m.keys.Clip):
			m.clip = !m.clip
			m.status = fmt.Sprintf("clipping: %v  window %v", m.clip, m.window)
		case key.Matches(msg, m.keys.Next):
			m.selectPolygon(m.cur + 1)
		case key.Matches(msg, m.keys.Prev):
			m.selectPolygon(m.cur - 1)
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.ZoomIn):
			if m.zoom < 64 {
				m.zoom *= 1.2
				m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
			}
		case key.Matches(msg, m.keys.ZoomOut):
			if m.zoom > 0.05 {
				m.zoom /= 1.2
				m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
			}
		case key.Matches(msg, m.keys.Reset):
			m.zoom = 1.0
			m.offsetX, m.offsetY = 0, 0
			m.status = "view reset"
		case key.Matches(msg, m.keys.Up):
			m.offsetY--
		case key.Matches(msg, m.keys.Down):
			m.offsetY++
		case key.Matches(msg, m.keys.Left):
			m.offsetX -= 2
		case key.Matches(msg, m.keys.Right):
			m.offsetX += 2
		case key.Matches(msg, m.keys.Files):
			m.showSidebar = !m.showSidebar
			if m.showSidebar {
				m.refreshDir()
				m.l.SetSize(sidebarWidth-2, m.layout().mapH-2)
			}
		case key.Matches(msg, m.keys.Open):
			if m.showSidebar {
				if it, ok := m.l.SelectedItem().(fileItem); ok {
					m.loadPath(it.path)
				}
			}
		case key.Matches(msg, m.keys.Paste):
			m.pasteMode = true
			m.ta.SetValue("")
			m.status = "paste mode"
			return m, m.ta.Focus()
		case key.Matches(msg, m.keys.Vertices):
			m.showAttrs = !m.showAttrs
			if m.showAttrs {
				m.refreshVertices()
			}
		case key.Matches(msg, m.keys.Inspect):
			if m.inspectPopup != "" {
				m.inspectPopup = ""
			} else {
				m.inspectPopup = m.inspect()
				m.status = "inspect popup"
			}
		case key.Matches(msg, m.keys.Save):
			m.status = "saving..."
			return m, m.saveCmd()
		}
	case tea.MouseMsg:
		lay := m.layout()
		if lay.inMap(msg.X, msg.Y) {
			p := m.cellToWorld(msg.X-lay.mapX, msg.Y-lay.mapY, lay.mapW, lay.mapH)
			m.hovering = true
			m.hoverX, m.hoverY = p.X, p.Y
		} else {
			m.hovering = false
		}
	}
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updatePaste(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.pasteMode = false
		m.ta.Blur()
		m.status = "view mode"
		return m, nil
	case "enter":
		w := strings.TrimSpace(m.ta.Value())
		if w == "" {
			m.status = "paste: empty"
			return m, nil
		}
		s, err := geom.ParseWKT(w)
		if err != nil {
			m.status = "wkt error: " + err.Error()
			return m, nil
		}
		m.setScene(s, "")
		m.status = "rendered WKT  " + m.status
		m.pasteMode = false
		m.ta.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.ta, cmd = m.ta.Update(msg)
	return m, cmd
}

// selectPolygon makes polygon i current, wrapping around at either end.
func (m *Model) selectPolygon(i int) {
	n := len(m.scene.Polygons)
	if n == 0 {
		return
	}
	m.cur = ((i % n) + n) % n
	poly := m.scene.Polygons[m.cur]
	m.status = fmt.Sprintf("polygon %d/%d  centroid (%s, %s) %s",
		m.cur+1, n, formatCoord(poly.Centroid.X), formatCoord(poly.Centroid.Y),
		m.window.Region(poly.Centroid))
	if m.showAttrs {
		m.refreshVertices()
	}
	if m.inspectPopup != "" {
		m.inspectPopup = m.inspect()
	}
}

func isScrollKey(k string) bool {
	switch k {
	case "up", "down", "pgup", "pgdown":
		return true
	}
	return false
}
