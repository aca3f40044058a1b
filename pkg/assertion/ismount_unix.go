//go:build unix

package assertion

import (
	"path/filepath"

	"golang.org/x/sys/unix"
)

// ismount reports whether path is a mount point: it lives on a
// different device than its parent, or is the root itself.
func ismount(path string) bool {
	var st, parent unix.Stat_t
	if err := unix.Lstat(path, &st); err != nil {
		return false
	}
	if st.Mode&unix.S_IFMT == unix.S_IFLNK {
		return false
	}
	if err := unix.Lstat(filepath.Join(path, ".."), &parent); err != nil {
		return false
	}
	if st.Dev != parent.Dev {
		return true
	}
	return st.Ino == parent.Ino
}
