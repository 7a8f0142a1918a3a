//go:build windows
// +build windows

package fileutils

import (
	"os"
	"path/filepath"
	"strings"
)

const LineEnd = "\r\n"

// IsExecutable determines if the file at the given path has an extension listed in PATHEXT
func IsExecutable(path string) bool {
	stat, err := os.Stat(path)
	if err != nil || stat.IsDir() {
		return false
	}
	pathExts := strings.Split(strings.ToLower(os.Getenv("PATHEXT")), ";")
	ext := strings.ToLower(filepath.Ext(path))
	for _, pe := range pathExts {
		if pe != "" && pe == ext {
			return true
		}
	}
	return false
}
