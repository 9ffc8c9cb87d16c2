// Package safeio reads files relative to a fixed root. Paths supplied by the
// frontend can never escape the codebase directory.
package safeio

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrOutsideRoot = errors.New("safeio: path escapes root")
	ErrIsDirectory = errors.New("safeio: path is a directory")
)

// FS resolves relative paths against a fixed, symlink-resolved root.
type FS struct {
	absRoot string
}

// New locks all future reads to the given directory.
func New(root string) (*FS, error) {
	if root == "" {
		return nil, errors.New("safeio: empty root")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	abs, err = filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, errors.New("safeio: root is not a directory")
	}
	return &FS{absRoot: abs}, nil
}

// Root returns the absolute root directory.
func (f *FS) Root() string { return f.absRoot }

// Stat returns metadata for a root-relative path.
func (f *FS) Stat(rel string) (fs.FileInfo, error) {
	p, err := f.resolve(rel)
	if err != nil {
		return nil, err
	}
	return os.Stat(p)
}

// ReadFile reads a root-relative file. Directories are rejected.
func (f *FS) ReadFile(rel string) ([]byte, error) {
	p, err := f.resolve(rel)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(p)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, ErrIsDirectory
	}
	return os.ReadFile(p)
}

// resolve joins rel onto the root and verifies the symlink-resolved result
// still lives under it. Absolute input paths are rejected outright.
func (f *FS) resolve(rel string) (string, error) {
	if rel == "" {
		return "", errors.New("safeio: empty path")
	}
	clean := filepath.Clean(filepath.FromSlash(rel))
	if filepath.IsAbs(clean) {
		return "", ErrOutsideRoot
	}
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", ErrOutsideRoot
	}
	joined := filepath.Join(f.absRoot, clean)
	resolved, err := filepath.EvalSymlinks(joined)
	if err != nil {
		return "", err
	}
	if resolved != f.absRoot && !strings.HasPrefix(resolved, f.absRoot+string(os.PathSeparator)) {
		return "", ErrOutsideRoot
	}
	return resolved, nil
}
