// Package hotreload detects changes to stylesheet files by polling their
// modification times. A poll only stats files and expands globs, so it is
// cheap enough to run once per frame.
package hotreload

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"bennypowers.dev/tss/internal/collections"
	"bennypowers.dev/tss/internal/log"
)

// ChangeKind says what happened to a watched file
type ChangeKind int

const (
	Modified ChangeKind = iota
	Created
	Removed
)

func (k ChangeKind) String() string {
	switch k {
	case Created:
		return "created"
	case Removed:
		return "removed"
	default:
		return "modified"
	}
}

// Change is one file change found by Poll
type Change struct {
	Path string
	Kind ChangeKind
}

type fileState struct {
	modTime time.Time
	size    int64
}

// Watcher tracks explicit files and glob patterns
type Watcher struct {
	files    map[string]fileState
	explicit collections.Set[string]
	patterns []string
}

// New creates an empty watcher
func New() *Watcher {
	return &Watcher{
		files:    make(map[string]fileState),
		explicit: collections.NewSet[string](),
	}
}

// Add watches a single file. The file must exist now; if it is later
// deleted and recreated, Poll reports both.
func (w *Watcher) Add(path string) error {
	path = filepath.Clean(path)
	state, err := stat(path)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}
	w.explicit.Add(path)
	w.files[path] = state
	return nil
}

// AddPattern watches every file matching a doublestar glob, including files
// created later. It returns the files matched now.
func (w *Watcher) AddPattern(pattern string) ([]string, error) {
	pattern = filepath.ToSlash(pattern)
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid glob pattern '%s'", pattern)
	}
	matches, err := glob(pattern)
	if err != nil {
		return nil, err
	}
	w.patterns = append(w.patterns, pattern)
	for _, path := range matches {
		if state, err := stat(path); err == nil {
			w.files[path] = state
		}
	}
	log.Debug("watching %s (%d files)", pattern, len(matches))
	return matches, nil
}

// Files returns every file currently tracked, sorted
func (w *Watcher) Files() []string {
	paths := make([]string, 0, len(w.files))
	for path := range w.files {
		paths = append(paths, path)
	}
	slices.Sort(paths)
	return paths
}

// Poll checks every tracked file and pattern for changes since the last
// poll. Changes are sorted by path.
func (w *Watcher) Poll() []Change {
	candidates := collections.NewSet[string]()
	for path := range w.files {
		candidates.Add(path)
	}
	for path := range w.explicit {
		candidates.Add(path)
	}
	for _, pattern := range w.patterns {
		matches, err := glob(pattern)
		if err != nil {
			log.Warn("failed to expand %s: %v", pattern, err)
			continue
		}
		candidates.Add(matches...)
	}

	var changes []Change
	for _, path := range collections.Sorted(candidates) {
		previous, tracked := w.files[path]
		current, err := stat(path)
		switch {
		case err != nil && tracked:
			delete(w.files, path)
			changes = append(changes, Change{Path: path, Kind: Removed})
		case err != nil:
			// explicit file still missing
		case !tracked:
			w.files[path] = current
			changes = append(changes, Change{Path: path, Kind: Created})
		case current != previous:
			w.files[path] = current
			changes = append(changes, Change{Path: path, Kind: Modified})
		}
	}

	for _, c := range changes {
		log.Debug("%s %s", c.Path, c.Kind)
	}
	return changes
}

func stat(path string) (fileState, error) {
	info, err := os.Stat(path)
	if err != nil {
		return fileState{}, err
	}
	if info.IsDir() {
		return fileState{}, fmt.Errorf("%s is a directory", path)
	}
	return fileState{modTime: info.ModTime(), size: info.Size()}, nil
}

// glob expands pattern, leaving out files below hidden and dependency
// directories inside the pattern's base directory
func glob(pattern string) ([]string, error) {
	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("failed to expand %s: %w", pattern, err)
	}
	base, _ := doublestar.SplitPattern(filepath.ToSlash(filepath.Clean(pattern)))
	kept := matches[:0]
	for _, path := range matches {
		rel, err := filepath.Rel(filepath.FromSlash(base), path)
		if err != nil || !inSkippedDirectory(rel) {
			kept = append(kept, filepath.Clean(path))
		}
	}
	return kept, nil
}

var skipDirs = []string{"node_modules", "dist", "build"}

func inSkippedDirectory(path string) bool {
	dir := filepath.Dir(filepath.Clean(path))
	for _, part := range strings.Split(filepath.ToSlash(dir), "/") {
		if part == "." || part == ".." || part == "" {
			continue
		}
		if strings.HasPrefix(part, ".") || slices.Contains(skipDirs, part) {
			return true
		}
	}
	return false
}
