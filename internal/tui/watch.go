package tui

import (
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"polyraster/internal/geom"
)

type fileEventMsg struct {
	event fsnotify.Event
}

type watchErrMsg struct {
	err error
}

// Watch starts watching the loaded file and the picker directory. The
// scene reloads when the file is written and the picker refreshes when
// files come or go. Call Close when the program exits.
func (m *Model) Watch() error {
	if m.watcher != nil {
		return nil
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	m.watcher = w
	m.watchDirs()
	return nil
}

// Close stops the file watcher.
func (m Model) Close() error {
	if m.watcher == nil {
		return nil
	}
	return m.watcher.Close()
}

// watchDirs points the watcher at the scene's directory and the picker
// directory. Editors often replace files on save, so directories are
// watched instead of the file itself.
func (m *Model) watchDirs() {
	if m.watcher == nil {
		return
	}
	want := map[string]bool{}
	if m.cwd != "" {
		want[filepath.Clean(m.cwd)] = true
	}
	if m.path != "" {
		want[filepath.Dir(absPath(m.path))] = true
	}
	for _, d := range m.watcher.WatchList() {
		if !want[d] {
			_ = m.watcher.Remove(d)
		}
	}
	for d := range want {
		if err := m.watcher.Add(d); err != nil {
			m.status = "watch error: " + err.Error()
		}
	}
}

// waitEvent blocks until the watcher reports something worth a redraw.
func (m Model) waitEvent() tea.Cmd {
	w := m.watcher
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return nil
				}
				if ev.Op == fsnotify.Chmod {
					continue
				}
				return fileEventMsg{event: ev}
			case err, ok := <-w.Errors:
				if !ok {
					return nil
				}
				return watchErrMsg{err: err}
			}
		}
	}
}

// handleFileEvent reloads the scene when its file changed, keeping the
// current polygon and viewport, and refreshes the picker on directory
// changes.
func (m *Model) handleFileEvent(ev fsnotify.Event) {
	if m.path != "" && absPath(ev.Name) == absPath(m.path) && (ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
		m.reload()
	}
	if ev.Has(fsnotify.Create) || ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
		if filepath.Dir(absPath(ev.Name)) == filepath.Clean(m.cwd) {
			m.refreshDir()
		}
	}
}

// reload re-reads the scene file. A file caught mid-write may not parse;
// the previous scene stays until the next event.
func (m *Model) reload() {
	s, err := geom.Load(m.path)
	if err != nil {
		m.status = "reload error: " + err.Error()
		return
	}
	cur, zoom, ox, oy := m.cur, m.zoom, m.offsetX, m.offsetY
	m.setScene(s, m.path)
	m.zoom, m.offsetX, m.offsetY = zoom, ox, oy
	if cur < len(m.scene.Polygons) {
		m.cur = cur
	}
	if m.showAttrs {
		m.refreshVertices()
	}
	m.status = "reloaded: " + filepath.Base(m.path) + "  " + sceneStatus(m.scene)
}

func absPath(p string) string {
	if a, err := filepath.Abs(p); err == nil {
		return a
	}
	return filepath.Clean(p)
}
