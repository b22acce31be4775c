// Package scanner lists plan files in a directory, newest first.
package scanner

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	apperrors "github.com/kingrea/planpick/internal/errors"
)

// Extension is the only file extension Scan accepts.
const Extension = ".md"

// Entry is one plan file found by Scan. A zero ModTime means the modification
// time could not be read.
type Entry struct {
	Path    string
	ModTime time.Time
}

// Name returns the file's base name.
func (e Entry) Name() string {
	return filepath.Base(e.Path)
}

// HasModTime reports whether the modification time is known.
func (e Entry) HasModTime() bool {
	return !e.ModTime.IsZero()
}

// Scan returns the markdown regular files directly inside dir, sorted by
// modification time descending. Entries whose metadata cannot be read are
// skipped; entries without a usable modification time sort last.
func Scan(dir string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, apperrors.IO(err, "scanner: read directory %s", dir)
	}
	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		if !isMarkdownName(de.Name()) {
			continue
		}
		info, err := de.Info()
		if err != nil {
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}
		entries = append(entries, Entry{
			Path:    filepath.Join(dir, de.Name()),
			ModTime: info.ModTime(),
		})
	}
	SortByRecency(entries)
	return entries, nil
}

// SortByRecency orders entries newest first, with unknown times at the end.
func SortByRecency(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.HasModTime() != b.HasModTime() {
			return a.HasModTime()
		}
		return a.ModTime.After(b.ModTime)
	})
}

// isMarkdownName matches "<stem>.md". A bare ".md" is a dotfile without an
// extension and does not count.
func isMarkdownName(name string) bool {
	if filepath.Ext(name) != Extension {
		return false
	}
	return strings.TrimSuffix(name, Extension) != ""
}
