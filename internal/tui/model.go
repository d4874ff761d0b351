package tui

import (
	"image/color"
	"os"

	"github.com/charmbracelet/bubbles/help"
	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"polyraster/internal/config"
	"polyraster/internal/geom"
	"polyraster/internal/raster"
)

type Model struct {
	width  int
	height int

	cfg config.Config
	ink color.Color

	// Scene and drawing state
	scene  geom.Scene
	path   string
	cur    int
	alg    raster.Algorithm
	clip   bool
	window raster.Window

	zoom    float64
	offsetX int
	offsetY int

	status string

	keys        keyMap
	help        help.Model
	showSidebar bool

	// File explorer
	cwd string
	l   list.Model

	// paste mode
	pasteMode bool
	ta        textarea.Model

	// vertex table of the current polygon
	showAttrs bool
	tbl       table.Model

	inspectPopup string

	// hover state, in world units
	hovering bool
	hoverX   float64
	hoverY   float64

	// shared by copies of the model; nil until Watch
	watcher *fsnotify.Watcher
}

// New returns a model showing scene, which was loaded from path.
func New(cfg config.Config, scene geom.Scene, path string) Model {
	ink, err := cfg.Ink()
	if err != nil {
		ink = inkFallback
	}
	m := Model{
		cfg:    cfg,
		ink:    ink,
		alg:    cfg.Algorithm,
		clip:   cfg.Clip,
		window: cfg.Window,
		zoom:   1.0,
		keys:   defaultKeys(),
		help:   help.New(),
	}
	m.cwd, _ = os.Getwd()
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Files"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	m.ta = textarea.New()
	m.ta.Placeholder = "Paste WKT here (POLYGON, MULTIPOLYGON, LINESTRING). Press Enter to render; Esc to cancel."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.refreshDir()
	m.setScene(scene, path)
	return m
}

func (m Model) Init() tea.Cmd { return m.waitEvent() }

// setScene replaces the drawn polygons and resets the viewport.
func (m *Model) setScene(s geom.Scene, path string) {
	m.scene = s
	m.path = path
	m.cur = 0
	m.zoom = 1.0
	m.offsetX, m.offsetY = 0, 0
	m.inspectPopup = ""
	m.status = sceneStatus(s)
	if m.showAttrs {
		m.refreshVertices()
	}
}

func (m Model) current() (geom.Polygon, bool) {
	if m.cur < 0 || m.cur >= len(m.scene.Polygons) {
		return geom.Polygon{}, false
	}
	return m.scene.Polygons[m.cur], true
}

// tracer returns the rasterizer settings for the current toggles.
func (m Model) tracer() raster.Tracer {
	t := raster.Tracer{Alg: m.alg, Workers: m.cfg.Workers}
	if m.clip {
		w := m.window
		t.Clip = &w
	}
	return t
}
