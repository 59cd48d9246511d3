// watcher.go reloads pane files when they change on disk.
//
// fsnotify watches each pane file's parent directory rather than the file
// itself: editors commonly save by writing a temporary file and renaming it
// over the existing file, which drops a watch placed on the old inode. Events are
// filtered down to the pane paths before they reach the Update loop.
package app

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

// fileChangedMsg reports a write, create, rename or removal of a pane file.
type fileChangedMsg struct {
	path string
	op   fsnotify.Op
}

// fileWatchErrMsg reports an error from the underlying watcher.
type fileWatchErrMsg struct {
	err error
}

// fileWatcher wraps an fsnotify watcher scoped to a fixed set of files.
type fileWatcher struct {
	watcher *fsnotify.Watcher
	paths   map[string]bool
}

// newFileWatcher watches the parent directories of paths. Empty paths are
// skipped. It returns nil without error when there is nothing to watch.
func newFileWatcher(paths ...string) (*fileWatcher, error) {
	files := map[string]bool{}
	dirs := map[string]bool{}
	for _, path := range paths {
		if path == "" {
			continue
		}
		files[path] = true
		dirs[filepath.Dir(path)] = true
	}
	if len(files) == 0 {
		return nil, nil
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	return &fileWatcher{watcher: w, paths: files}, nil
}

// waitCmd blocks until the next relevant event. Update must re-issue it
// after every fileChangedMsg or fileWatchErrMsg to keep watching.
func (fw *fileWatcher) waitCmd() tea.Cmd {
	if fw == nil {
		return nil
	}
	return func() tea.Msg {
		for {
			select {
			case event, ok := <-fw.watcher.Events:
				if !ok {
					return nil
				}
				if !fw.relevant(event) {
					continue
				}
				return fileChangedMsg{path: event.Name, op: event.Op}
			case err, ok := <-fw.watcher.Errors:
				if !ok {
					return nil
				}
				return fileWatchErrMsg{err: err}
			}
		}
	}
}

func (fw *fileWatcher) relevant(event fsnotify.Event) bool {
	if !fw.paths[filepath.Clean(event.Name)] {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove)
}

// Close stops the watcher. A pending waitCmd returns nil.
func (fw *fileWatcher) Close() error {
	if fw == nil {
		return nil
	}
	return fw.watcher.Close()
}

// handleFileChanged drops the cached render for the file and re-renders
// every pane showing it.
func (m *Model) handleFileChanged(msg fileChangedMsg) (tea.Model, tea.Cmd) {
	path := filepath.Clean(msg.path)
	delete(m.renderCache, path)

	cmds := []tea.Cmd{m.files.waitCmd()}
	for id := range m.panes {
		p := &m.panes[id]
		if p.path != path {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			// Removed, or renamed away mid-save. A later create reloads it.
			appLog.Debug("pane file unavailable", "path", path, "op", msg.op.String(), "error", err)
			continue
		}
		m.status = "Reloaded " + p.title
		cmds = append(cmds, m.requestRender(paneID(id)))
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) handleFileWatchErr(msg fileWatchErrMsg) (tea.Model, tea.Cmd) {
	appLog.Warn("file watcher error", "error", msg.err)
	return m, m.files.waitCmd()
}
