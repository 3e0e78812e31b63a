package codebase

import (
	"context"
	"os"
	"time"
)

// FileWatcher polls the codebase root and rescans files whose modification
// time changed. Files that disappeared are removed from the index.
type FileWatcher struct {
	codebase     *Codebase
	pollInterval time.Duration
	modTimes     map[string]time.Time
	onChange     func(path string)
}

func NewFileWatcher(c *Codebase, interval time.Duration) *FileWatcher {
	if interval <= 0 {
		interval = time.Second
	}
	return &FileWatcher{
		codebase:     c,
		pollInterval: interval,
		modTimes:     make(map[string]time.Time),
	}
}

// OnChange registers a callback invoked after a file was rescanned or
// removed.
func (w *FileWatcher) OnChange(fn func(path string)) {
	w.onChange = fn
}

// Run polls until ctx is done.
func (w *FileWatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.Poll()
		}
	}
}

// Poll runs one scan and returns the number of changed files.
func (w *FileWatcher) Poll() int {
	paths, err := w.codebase.Discover()
	if err != nil {
		log.Warningf("watching %s: %s", w.codebase.RootDir(), err)
		return 0
	}

	changed := 0
	current := make(map[string]bool, len(paths))
	for _, path := range paths {
		current[path] = true
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		lastMod, known := w.modTimes[path]
		if known && !info.ModTime().After(lastMod) {
			continue
		}
		w.modTimes[path] = info.ModTime()
		if !known && w.codebase.GetFile(path) != nil {
			// indexed by the initial scan
			continue
		}
		if err := w.codebase.ScanFile(path); err != nil {
			log.Warningf("%s: %s", path, err)
		}
		w.changed(path)
		changed++
	}

	for path := range w.modTimes {
		if !current[path] {
			delete(w.modTimes, path)
			w.codebase.RemoveFile(path)
			w.changed(path)
			changed++
		}
	}
	return changed
}

func (w *FileWatcher) changed(path string) {
	log.Debugf("changed: %s", path)
	if w.onChange != nil {
		w.onChange(path)
	}
}
