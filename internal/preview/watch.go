package preview

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/kbits/internal/logfields"
)

// newWatcher watches root and every directory below it.
func newWatcher(root string) (*fsnotify.Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fsnotify: %w", err)
	}
	if err := addDirsRecursive(w, root); err != nil {
		_ = w.Close()
		return nil, err
	}
	return w, nil
}

func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.Add(path); err != nil {
			slog.Warn("watch add failed", logfields.Path(path), logfields.Error(err))
		}
		return nil
	})
}

// eventFilter decides which filesystem events trigger a rebuild.
type eventFilter struct {
	patterns []string // matched against the base name
	output   string   // events below the output directory are ignored
}

func (f eventFilter) ignore(path string) bool {
	if shouldIgnoreEvent(path) {
		return true
	}
	base := filepath.Base(path)
	for _, p := range f.patterns {
		if ok, _ := filepath.Match(p, base); ok {
			return true
		}
	}
	if f.output != "" {
		if rel, err := filepath.Rel(f.output, path); err == nil && !strings.HasPrefix(rel, "..") {
			return true
		}
	}
	return false
}

// shouldIgnoreEvent returns true for files editors and operating systems
// create next to real content.
func shouldIgnoreEvent(path string) bool {
	base := filepath.Base(path)

	// Hidden files, which covers .DS_Store and emacs lock files.
	if strings.HasPrefix(base, ".") {
		return true
	}

	if strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#") {
		return true
	}

	return base == "Thumbs.db" || base == "4913" // vim's write probe
}

// handleEvent reacts to one filesystem event. New directories are watched
// so the watch stays recursive.
func (s *Server) handleEvent(w *fsnotify.Watcher, ev fsnotify.Event) {
	if s.filter.ignore(ev.Name) || ev.Op == fsnotify.Chmod {
		return
	}
	if ev.Op.Has(fsnotify.Create) {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			_ = addDirsRecursive(w, ev.Name)
		}
	}
	slog.Debug("File change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
	s.debounce.trigger()
}
