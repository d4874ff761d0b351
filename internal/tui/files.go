package tui

import (
	"context"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"sort"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"polyraster/internal/canvas"
	"polyraster/internal/geom"
)

// defaultSnapshot is where "s" writes when no -out path is configured.
const defaultSnapshot = "polyraster.png"

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.status = "read dir error: " + err.Error()
		return
	}
	var items []list.Item
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !geom.Supported(name) {
			continue
		}
		items = append(items, fileItem{title: name, desc: filepath.Ext(name), path: filepath.Join(m.cwd, name)})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.l.SetItems(items)
	if len(items) == 0 {
		m.status = "no supported files in current directory"
	}
}

// loadPath replaces the scene with the polygons in p. On error the current
// scene is kept and the status line reports the failure.
func (m *Model) loadPath(p string) {
	s, err := geom.Load(p)
	if err != nil {
		m.status = "load error: " + err.Error()
		return
	}
	m.setScene(s, p)
	m.watchDirs()
	m.status = "loaded: " + filepath.Base(p) + "  " + m.status
}

func sceneStatus(s geom.Scene) string {
	return fmt.Sprintf("polygons=%d vertices=%d", len(s.Polygons), s.NumVertices())
}

type savedMsg struct {
	path   string
	pixels int
	err    error
}

// saveCmd renders the scene at the configured output size and writes it
// to disk off the update loop.
func (m Model) saveCmd() tea.Cmd {
	path := m.cfg.Out
	if path == "" {
		path = defaultSnapshot
	}
	polys := m.scene.Polygons
	t := m.tracer()
	w, h, scale := m.cfg.Width, m.cfg.Height, m.cfg.Scale
	ink := m.ink
	return func() tea.Msg {
		fb, st, err := canvas.RenderScene(context.Background(), t, polys, w, h, color.Black, ink)
		if err == nil {
			err = fb.Save(path, scale)
		}
		return savedMsg{path: path, pixels: st.Pixels, err: err}
	}
}
