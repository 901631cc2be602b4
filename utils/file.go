package utils

import (
	"os"
)

// Checks whether the given path exists and points to a regular file rather than a directory.
func CheckFileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}
