//go:build !windows
// +build !windows

package fileutils

import (
	"os"
)

const LineEnd = "\n"

// IsExecutable determines if the file at the given path has any execute permissions.
// This function does not care whether the current user can has enough privilege to
// execute the file.
func IsExecutable(path string) bool {
	stat, err := os.Stat(path)
	return err == nil && !stat.IsDir() && (stat.Mode()&(0111) > 0)
}
