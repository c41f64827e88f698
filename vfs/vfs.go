// Package vfs resolves logical asset names to readable file data. It is
// grounded on gazed-vu's load/locator.go: a directory-per-extension
// convention, a packaged-zip fallback, and the same "search paths stack,
// last registered wins" ordering, widened per the engine's own asset
// store to expose search-path management as an explicit interface
// instead of a single constructor-time decision.
package vfs

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/outpost3d/engine/kerrors"
)

// FileSystem locates and opens asset files by logical name. Implementations
// are safe for concurrent use since asset loading happens off the main
// goroutine (spec §6/§7).
type FileSystem interface {
	// Open resolves name against the configured search paths and
	// extension-to-directory conventions, returning a reader the caller
	// must Close. Returns a wrapped kerrors.NotFound if name cannot be
	// located anywhere.
	Open(name string) (io.ReadCloser, error)

	// AddSearchPath registers dir to be searched, highest priority last
	// (a later AddSearchPath shadows an earlier one for the same name).
	AddSearchPath(dir string)

	// RemoveSearchPath undoes a prior AddSearchPath. A no-op if dir was
	// never added.
	RemoveSearchPath(dir string)

	// Locate reports whether name can currently be resolved, without
	// opening it.
	Locate(name string) (resolvedPath string, ok bool)
}

// Disk is the default FileSystem: plain OS directories, searched most-
// recently-added first, with an optional packaged zip archive (the
// locator.go "assets.zip" idiom) consulted last as a fallback.
type Disk struct {
	mu    sync.RWMutex
	dirs  []string
	zip   *zip.ReadCloser
	dirBy map[string]string // extension (upper-case, no dot) -> subdirectory
}

// NewDisk returns a Disk filesystem with gazed-vu's default extension
// conventions (images in "images", audio in "audio", models in "models",
// shader/text sources in "source") and no search paths yet.
func NewDisk() *Disk {
	return &Disk{
		dirBy: map[string]string{
			"PNG": "images",
			"WAV": "audio",
			"OBJ": "models",
			"IQM": "models",
			"MTL": "models",
			"TXT": "source",
			"VSH": "source",
			"FSH": "source",
			"FNT": "source",
			"YAML": "source",
		},
	}
}

// OpenPackaged attaches a zip archive (as produced for a packaged build)
// to be searched after every plain directory search path misses.
func (d *Disk) OpenPackaged(zipPath string) error {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return fmt.Errorf("vfs: open packaged assets %s: %w", zipPath, err)
	}
	d.mu.Lock()
	d.zip = r
	d.mu.Unlock()
	return nil
}

// MapExtension overrides (or adds) the subdirectory convention for ext
// (case-insensitive, with or without a leading dot).
func (d *Disk) MapExtension(ext, dir string) {
	ext = strings.ToUpper(strings.TrimPrefix(ext, "."))
	d.mu.Lock()
	d.dirBy[ext] = dir
	d.mu.Unlock()
}

func (d *Disk) AddSearchPath(dir string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, existing := range d.dirs {
		if existing == dir {
			return
		}
	}
	d.dirs = append(d.dirs, dir)
}

func (d *Disk) RemoveSearchPath(dir string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, existing := range d.dirs {
		if existing == dir {
			d.dirs = append(d.dirs[:i], d.dirs[i+1:]...)
			return
		}
	}
}

func (d *Disk) subdir(name string) string {
	ext := ""
	if sep := strings.LastIndexAny(name, "."); sep != -1 {
		ext = strings.ToUpper(name[sep+1:])
	}
	return d.dirBy[ext]
}

func (d *Disk) candidates(name string) []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	sub := d.subdir(name)
	out := make([]string, 0, len(d.dirs)+1)
	for i := len(d.dirs) - 1; i >= 0; i-- {
		out = append(out, path.Join(d.dirs[i], sub, name))
	}
	return out
}

func (d *Disk) Locate(name string) (string, bool) {
	for _, candidate := range d.candidates(name) {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
	}
	if d.inZip(name) {
		return name, true
	}
	return "", false
}

func (d *Disk) inZip(name string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.zip == nil {
		return false
	}
	zipName := path.Join(d.subdir(name), name)
	for _, f := range d.zip.File {
		if f.Name == zipName {
			return true
		}
	}
	return false
}

func (d *Disk) Open(name string) (io.ReadCloser, error) {
	for _, candidate := range d.candidates(name) {
		if f, err := os.Open(candidate); err == nil {
			return f, nil
		}
	}
	if rc, err := d.openZip(name); err == nil {
		return rc, nil
	}
	return nil, fmt.Errorf("vfs: locate %s: %w", name, kerrors.NotFound)
}

// WatchSearchPaths polls the filesystem's currently registered search
// paths for changes (new files, replaced files) every interval, calling
// onChange with each directory that changed. It runs until stop is
// called. On Linux this is backed by inotify; other platforms poll
// directory modification times, matching the teacher's own
// platform-specific build-tag split for OS integration.
func (d *Disk) WatchSearchPaths(interval time.Duration, onChange func(dir string)) (stop func(), err error) {
	w, err := newWatch()
	if err != nil {
		return nil, err
	}
	d.mu.RLock()
	dirs := append([]string(nil), d.dirs...)
	d.mu.RUnlock()
	for _, dir := range dirs {
		if err := w.add(dir); err != nil {
			w.close()
			return nil, err
		}
	}

	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				w.close()
				return
			case <-ticker.C:
				changed, err := w.poll()
				if err != nil {
					continue
				}
				for _, dir := range changed {
					onChange(dir)
				}
			}
		}
	}()
	return func() { close(done) }, nil
}

func (d *Disk) openZip(name string) (io.ReadCloser, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.zip == nil {
		return nil, kerrors.NotFound
	}
	zipName := path.Join(d.subdir(name), name)
	for _, f := range d.zip.File {
		if f.Name == zipName {
			return f.Open()
		}
	}
	return nil, kerrors.NotFound
}
