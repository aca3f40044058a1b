package assertion

import (
	"os"
	"path/filepath"
)

func isabs(path string) bool {
	return filepath.IsAbs(path)
}

func isdir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func isfile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func islink(path string) bool {
	info, err := os.Lstat(path)
	return err == nil && info.Mode()&os.ModeSymlink != 0
}
