// Package fsutil asserts that files and directories exist, with errors that
// say what was found instead.
package fsutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrDirNotFound is returned when a directory is missing.
	ErrDirNotFound = errors.New("directory doesn't exist")
	// ErrFileNotFound is returned when a path is not a regular file.
	ErrFileNotFound = errors.New("file doesn't exist")
)

// PathError records a failed existence check.
type PathError struct {
	Op   string
	Path string
	// Contents lists the entries of the parent directory, if it could be read.
	Contents []string
	Err      error
}

func (e *PathError) Error() string {
	msg := fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
	if e.Contents != nil {
		msg += fmt.Sprintf("\ncontents of %s are [%s]", parent(e.Path), strings.Join(e.Contents, ", "))
	}
	return msg
}

func (e *PathError) Unwrap() error { return e.Err }

// AssertFileExists checks that path is a regular file whose parent directory
// exists. When the file is missing the error lists what the parent holds.
func AssertFileExists(path string) error {
	if err := AssertParentDirExists(path); err != nil {
		return err
	}

	info, err := os.Stat(path)
	if err == nil && info.Mode().IsRegular() {
		return nil
	}
	return &PathError{
		Op:       "assert file",
		Path:     path,
		Contents: list(parent(path)),
		Err:      ErrFileNotFound,
	}
}

// AssertParentDirExists checks the directory that would hold path. A bare file
// name has no parent to check.
func AssertParentDirExists(path string) error {
	dir := filepath.Dir(path)
	if dir == "." && !strings.ContainsRune(path, filepath.Separator) {
		return nil
	}
	if !isDir(dir) {
		return &PathError{Op: "assert parent dir", Path: dir, Err: ErrDirNotFound}
	}
	return nil
}

// AssertDirExists checks that dir and its parent exist.
func AssertDirExists(dir string) error {
	if err := AssertParentDirExists(filepath.Clean(dir)); err != nil {
		return err
	}
	if !isDir(dir) {
		return &PathError{Op: "assert dir", Path: dir, Err: ErrDirNotFound}
	}
	return nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func parent(path string) string {
	return filepath.Dir(path)
}

// list returns the entry names of dir, or nil if it cannot be read.
func list(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}
