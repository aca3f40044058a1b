//go:build !unix

package assertion

import "path/filepath"

// ismount reports whether path is a volume root.
func ismount(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	vol := filepath.VolumeName(abs)
	return abs == vol+string(filepath.Separator)
}
