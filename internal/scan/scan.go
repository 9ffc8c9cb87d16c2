// Package scan walks the local codebase root and produces the flat file
// index the documentation pipeline works from.
package scan

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// ErrRootNotFound is returned when the codebase root directory does not exist.
var ErrRootNotFound = errors.New("codebase folder not found")

// Kind discriminates tree entries.
type Kind string

const (
	KindFile   Kind = "file"
	KindFolder Kind = "folder"
)

// Entry is one visited node of the codebase tree. Path is root-relative
// with forward slashes.
type Entry struct {
	Path string `json:"path"`
	Name string `json:"name"`
	Kind Kind   `json:"type"`
	Size int64  `json:"size,omitempty"`
}

// Scanner walks a directory tree applying an ignore Policy.
type Scanner struct {
	policy *Policy
}

func New(policy *Policy) *Scanner {
	if policy == nil {
		policy = DefaultPolicy()
	}
	return &Scanner{policy: policy}
}

// Scan returns every descendant of root not matched by the ignore policy.
// Directories are emitted before their children; siblings arrive in lexical
// order. Unreadable entries are logged and their subtree skipped; the scan
// only fails outright when root itself is missing.
func (s *Scanner) Scan(root string) ([]Entry, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, ErrRootNotFound
	}

	var entries []Entry
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			log.Printf("scan: skipping %s: %v", path, walkErr)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if path == root {
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if s.policy.Ignores(rel, d.Name(), d.IsDir()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		e := Entry{Path: rel, Name: d.Name(), Kind: KindFolder}
		if !d.IsDir() {
			e.Kind = KindFile
			if fi, statErr := os.Stat(path); statErr == nil {
				e.Size = fi.Size()
			} else {
				log.Printf("scan: stat %s: %v", path, statErr)
				return nil
			}
		}
		entries = append(entries, e)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Ext returns the lowercased extension of a relative path, empty when none.
func Ext(path string) string {
	return strings.ToLower(filepath.Ext(path))
}
