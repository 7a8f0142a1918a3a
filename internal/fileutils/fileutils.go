package fileutils

import (
	"io"
	"os"
	"path/filepath"

	"github.com/ActiveState/rtscope/internal/errs"
	"github.com/ActiveState/rtscope/internal/logging"
)

// DirMode is the permission used for directories we create
const DirMode = os.ModePerm

// TargetExists checks if the given file or folder exists
func TargetExists(path string) bool {
	_, err1 := os.Stat(path)
	_, err2 := os.Readlink(path) // os.Stat returns false on Symlinks that don't point to a valid file
	return err1 == nil || err2 == nil
}

// FileExists checks if the given file (not folder) exists
func FileExists(path string) bool {
	fi, err := os.Stat(path)
	if err != nil {
		return false
	}

	mode := fi.Mode()
	return mode.IsRegular()
}

// DirExists checks if the given directory exists
func DirExists(path string) bool {
	fi, err := os.Stat(path)
	if err != nil {
		return false
	}

	mode := fi.Mode()
	return mode.IsDir()
}

// Mkdir is a small helper function to create a directory if it doesnt already exist
func Mkdir(path string, subpath ...string) error {
	if len(subpath) > 0 {
		subpathStr := filepath.Join(subpath...)
		path = filepath.Join(path, subpathStr)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.MkdirAll(path, DirMode); err != nil {
			return errs.Wrap(err, "MkdirAll failed for path: %s", path)
		}
	}
	return nil
}

// MkdirUnlessExists will make the directory structure if it doesn't already exists
func MkdirUnlessExists(path string) error {
	if DirExists(path) {
		return nil
	}
	return Mkdir(path)
}

// IsEmptyDir returns true if the directory at the provided path has no files (including dirs) within it.
func IsEmptyDir(path string) (bool, error) {
	dir, err := os.Open(path)
	if err != nil {
		return false, errs.Wrap(err, "Could not open directory: %s", path)
	}

	files, err := dir.Readdir(1)
	dir.Close()
	if err != nil && err != io.EOF {
		return false, errs.Wrap(err, "Could not read directory: %s", path)
	}

	return (len(files) == 0), nil
}

// RemoveIfEmpty removes the directory at path if it exists and holds nothing. It returns whether the directory was
// removed.
func RemoveIfEmpty(path string) (bool, error) {
	if !DirExists(path) {
		return false, nil
	}

	empty, err := IsEmptyDir(path)
	if err != nil {
		return false, errs.Wrap(err, "Could not determine whether %s is empty", path)
	}
	if !empty {
		return false, nil
	}

	logging.Debug("Removing empty directory: %s", path)
	if err := os.Remove(path); err != nil {
		return false, errs.Wrap(err, "Could not remove empty directory: %s", path)
	}
	return true, nil
}

// ReadFile reads the content of a file
func ReadFile(filePath string) ([]byte, error) {
	b, err := os.ReadFile(filePath)
	if err != nil {
		return nil, errs.Wrap(err, "os.ReadFile %s failed", filePath)
	}
	return b, nil
}

// WriteFile writes data to a file, if it exists it is overwritten, if it doesn't exist it is created and data is
// written
func WriteFile(filePath string, data []byte) error {
	if err := MkdirUnlessExists(filepath.Dir(filePath)); err != nil {
		return errs.Wrap(err, "Could not create parent dir for %s", filePath)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return errs.Wrap(err, "os.WriteFile %s failed", filePath)
	}
	return nil
}
