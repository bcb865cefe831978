package utils

import "os"

// FileExist reports whether filePath points at an existing file.
func FileExist(filePath string) bool {
	_, err := os.Stat(filePath)
	return err == nil
}

// CreateDirIfNotExist makes dir when it's missing; an existing dir is a no-op.
func CreateDirIfNotExist(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return os.MkdirAll(dir, 0755)
	}

	return nil
}
