//go:build linux

package vfs

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// watch wraps a Linux inotify instance, grounded on the teacher's
// platform-specific build-tag split for OS integration (`vu_apple.go`,
// `vu_windows.go`, `vu_ios.go` each carry a narrow slice of
// platform-specific code behind a build tag; this is the `vu_linux.go`
// counterpart for file-system change notification). Used by
// Disk.WatchSearchPaths to notice assets replaced on disk by a live
// content pipeline without polling.
type watch struct {
	fd int
	wd map[int32]string
}

func newWatch() (*watch, error) {
	fd, err := unix.InotifyInit1(unix.IN_NONBLOCK | unix.IN_CLOEXEC)
	if err != nil {
		return nil, fmt.Errorf("vfs: inotify init: %w", err)
	}
	return &watch{fd: fd, wd: make(map[int32]string)}, nil
}

func (w *watch) add(dir string) error {
	wd, err := unix.InotifyAddWatch(w.fd, dir, unix.IN_CREATE|unix.IN_MODIFY|unix.IN_MOVED_TO)
	if err != nil {
		return fmt.Errorf("vfs: watch %s: %w", dir, err)
	}
	w.wd[int32(wd)] = dir
	return nil
}

func (w *watch) close() error { return unix.Close(w.fd) }

// poll drains any pending inotify events without blocking, returning
// the distinct search-path directories that changed since the last
// call.
func (w *watch) poll() ([]string, error) {
	var buf [4096]byte
	n, err := unix.Read(w.fd, buf[:])
	if err != nil {
		if err == unix.EAGAIN {
			return nil, nil
		}
		return nil, fmt.Errorf("vfs: read inotify events: %w", err)
	}
	seen := make(map[string]bool)
	var changed []string
	offset := 0
	for offset+unix.SizeofInotifyEvent <= n {
		raw := (*unix.InotifyEvent)(unsafe.Pointer(&buf[offset]))
		if dir, ok := w.wd[raw.Wd]; ok && !seen[dir] {
			seen[dir] = true
			changed = append(changed, dir)
		}
		offset += unix.SizeofInotifyEvent + int(raw.Len)
	}
	return changed, nil
}
