package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"polyraster/internal/config"
	"polyraster/internal/geom"
	"polyraster/internal/raster"
)

const twoSquares = `2
4  0 0  10 0  10 10  0 10
3  20 20  30 20  25 25
`

func newTestModel(t *testing.T) Model {
	t.Helper()
	s, err := geom.ReadPolyList(strings.NewReader(twoSquares))
	require.NoError(t, err)
	m := New(config.Default(), s, "two.txt")
	return send(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestToggles(t *testing.T) {
	m := newTestModel(t)
	assert.Equal(t, raster.AlgDDA, m.alg)
	assert.False(t, m.clip)
	assert.False(t, m.help.ShowAll)

	m = send(t, m, runes("d"))
	assert.Equal(t, raster.AlgBresenham, m.alg)
	assert.Contains(t, m.status, "bresenham")
	m = send(t, m, runes("d"))
	assert.Equal(t, raster.AlgDDA, m.alg)

	m = send(t, m, runes("c"))
	assert.True(t, m.clip)
	assert.NotNil(t, m.tracer().Clip)
	m = send(t, m, runes("c"))
	assert.False(t, m.clip)
	assert.Nil(t, m.tracer().Clip)

	m = send(t, m, runes("g"))
	assert.True(t, m.help.ShowAll)
	m = send(t, m, runes("g"))
	assert.False(t, m.help.ShowAll)
}

func TestCyclePolygons(t *testing.T) {
	m := newTestModel(t)
	assert.Equal(t, 0, m.cur)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 1, m.cur)
	assert.Contains(t, m.status, "polygon 2/2")
	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 0, m.cur)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, 1, m.cur)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, 0, m.cur)
}

func TestQuit(t *testing.T) {
	for _, k := range []tea.KeyMsg{runes("q"), {Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}} {
		t.Run(k.String(), func(t *testing.T) {
			_, cmd := newTestModel(t).Update(k)
			require.NotNil(t, cmd)
			assert.IsType(t, tea.QuitMsg{}, cmd())
		})
	}
}

func TestPasteWKT(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, runes("p"))
	require.True(t, m.pasteMode)

	// Keys go to the text area while pasting.
	m = send(t, m, runes("d"))
	assert.Equal(t, raster.AlgDDA, m.alg)

	m.ta.SetValue("POLYGON ((0 0, 4 0, 4 4, 0 0))")
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.pasteMode)
	require.Len(t, m.scene.Polygons, 1)
	assert.Len(t, m.scene.Polygons[0].Points, 3)
	assert.Contains(t, m.status, "rendered WKT")

	m = send(t, m, runes("p"))
	m.ta.SetValue("POINT (1 2)")
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.pasteMode)
	assert.Contains(t, m.status, "wkt error")
	assert.Len(t, m.scene.Polygons, 1)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.pasteMode)
}

func TestLoadPathKeepsSceneOnError(t *testing.T) {
	m := newTestModel(t)
	m.loadPath(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Contains(t, m.status, "load error")
	assert.Len(t, m.scene.Polygons, 2)

	path := filepath.Join(t.TempDir(), "tri.wkt")
	require.NoError(t, os.WriteFile(path, []byte("POLYGON ((0 0, 5 0, 0 5, 0 0))"), 0o644))
	m.loadPath(path)
	assert.Contains(t, m.status, "loaded: tri.wkt")
	assert.Len(t, m.scene.Polygons, 1)
	assert.Equal(t, path, m.path)
}

func TestVertexTable(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, runes("a"))
	require.True(t, m.showAttrs)
	rows := m.tbl.Rows()
	require.Len(t, rows, 4)
	// (0,0) lies left of and below the default window; the edge to
	// (10,0) stays below it.
	assert.Equal(t, []string{"1", "0", "0", "left|bottom", "rejected"}, []string(rows[0]))

	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Len(t, m.tbl.Rows(), 3)
}

func TestInspect(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, runes("i"))
	assert.Contains(t, m.inspectPopup, "polygon: 1 of 2")
	assert.Contains(t, m.inspectPopup, "centroid: (5, 5)")
	assert.Contains(t, m.inspectPopup, "centroid region: inside")
	m = send(t, m, runes("i"))
	assert.Empty(t, m.inspectPopup)
}

func TestProjectRoundTrip(t *testing.T) {
	m := newTestModel(t)
	m.zoom = 2.5
	m.offsetX, m.offsetY = 3, -2
	lay := m.layout()
	for _, p := range []geom.Point{{X: 0, Y: 0}, {X: 30, Y: 25}, {X: 12.5, Y: -3}} {
		mp := m.project(p, lay.mapW, lay.mapH)
		back := m.unproject(mp.X, mp.Y, lay.mapW, lay.mapH)
		assert.InDelta(t, p.X, back.X, 1e-9)
		assert.InDelta(t, p.Y, back.Y, 1e-9)
	}

	// World y grows up, screen y grows down.
	lo := m.project(geom.Pt(0, 0), lay.mapW, lay.mapH)
	hi := m.project(geom.Pt(0, 10), lay.mapW, lay.mapH)
	assert.Less(t, hi.Y, lo.Y)
}

func TestView(t *testing.T) {
	m := newTestModel(t)
	out := m.View()
	assert.Contains(t, out, "polyraster")
	assert.Contains(t, out, "dda")
	assert.Contains(t, out, "+")
	assert.True(t, strings.ContainsFunc(out, func(r rune) bool { return r >= 0x2801 && r <= 0x28FF }))

	lay := m.layout()
	_, st := m.renderMap(lay.mapW, lay.mapH)
	assert.Equal(t, 2, st.Polygons)
	assert.Equal(t, 7, st.Edges)
	assert.Zero(t, st.Rejected)

	m = send(t, m, runes("c"))
	_, st = m.renderMap(lay.mapW, lay.mapH)
	assert.Positive(t, st.Rejected)
	assert.Contains(t, m.View(), "clip")
}

func TestMouseHover(t *testing.T) {
	m := newTestModel(t)
	lay := m.layout()
	m = send(t, m, tea.MouseMsg{X: lay.mapX + 5, Y: lay.mapY + 5, Action: tea.MouseActionMotion})
	assert.True(t, m.hovering)
	_, ok := m.nearestVertex(lay.mapW, lay.mapH)
	assert.True(t, ok)

	m = send(t, m, tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionMotion})
	assert.False(t, m.hovering)
}

func TestSave(t *testing.T) {
	m := newTestModel(t)
	m.cfg.Out = filepath.Join(t.TempDir(), "snap.png")
	m.cfg.Width, m.cfg.Height = 40, 40

	next, cmd := m.Update(runes("s"))
	require.NotNil(t, cmd)
	msg := cmd()
	saved, ok := msg.(savedMsg)
	require.True(t, ok)
	require.NoError(t, saved.err)
	assert.Positive(t, saved.pixels)
	assert.FileExists(t, m.cfg.Out)

	m = send(t, next.(Model), msg)
	assert.Contains(t, m.status, "saved")
}

func TestFileEventReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.txt")
	require.NoError(t, os.WriteFile(path, []byte(twoSquares), 0o644))
	s, err := geom.Load(path)
	require.NoError(t, err)

	m := New(config.Default(), s, path)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = send(t, m, runes("+"))
	zoom := m.zoom

	require.NoError(t, os.WriteFile(path, []byte("2\n3 0 0 1 0 0 1\n3 5 5 6 5 5 6\n"), 0o644))
	m = send(t, m, fileEventMsg{event: fsnotify.Event{Name: path, Op: fsnotify.Write}})
	assert.Contains(t, m.status, "reloaded: scene.txt")
	assert.Equal(t, 6, m.scene.NumVertices())
	assert.Equal(t, 1, m.cur)
	assert.Equal(t, zoom, m.zoom)

	// A broken write keeps the last good scene.
	require.NoError(t, os.WriteFile(path, []byte("2\n3 0 0"), 0o644))
	m = send(t, m, fileEventMsg{event: fsnotify.Event{Name: path, Op: fsnotify.Write}})
	assert.Contains(t, m.status, "reload error")
	assert.Equal(t, 6, m.scene.NumVertices())

	// Other files are ignored.
	m = send(t, m, fileEventMsg{event: fsnotify.Event{Name: path + ".bak", Op: fsnotify.Write}})
	assert.Contains(t, m.status, "reload error")
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.txt")
	require.NoError(t, os.WriteFile(path, []byte(twoSquares), 0o644))
	s, err := geom.Load(path)
	require.NoError(t, err)

	m := New(config.Default(), s, path)
	require.NoError(t, m.Watch())
	defer m.Close()
	assert.Contains(t, m.watcher.WatchList(), dir)

	got := make(chan tea.Msg, 1)
	cmd := m.Init()
	require.NotNil(t, cmd)
	go func() { got <- cmd() }()
	require.NoError(t, os.WriteFile(path, []byte("1\n3 0 0 1 0 0 1\n"), 0o644))

	select {
	case msg := <-got:
		ev, ok := msg.(fileEventMsg)
		require.True(t, ok, "%T", msg)
		assert.Equal(t, path, ev.event.Name)
		m = send(t, m, msg)
		assert.Len(t, m.scene.Polygons, 1)
	case <-time.After(5 * time.Second):
		t.Fatal("no file event")
	}
}
