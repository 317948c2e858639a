// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scan discovers PDF files under a root directory and snapshots
// the tree for the catalog and reorganization stages.
package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// File is one discovered PDF, snapshotted at scan time.
type File struct {
	// Path is the absolute location of the file.
	Path string

	// RelPath is the path relative to the scanned root.
	RelPath string

	// Name is the base filename including extension.
	Name string

	// Size is the file size in bytes.
	Size int64

	// ModTime is the file's modification time at scan time.
	ModTime time.Time
}

// Dir returns the absolute directory containing the file.
func (f File) Dir() string {
	return filepath.Dir(f.Path)
}

// Stem returns the filename without its extension.
func (f File) Stem() string {
	return strings.TrimSuffix(f.Name, filepath.Ext(f.Name))
}

// Tree is the scan snapshot: the discovered PDFs plus the set of every
// regular file seen, which the planner uses for collision checks.
type Tree struct {
	// Root is the absolute scanned root directory.
	Root string

	// Files lists discovered PDFs sorted by path.
	Files []File

	// Occupied contains the absolute path of every regular file under
	// the root, PDF or not.
	Occupied map[string]bool
}

// Walk scans root recursively for PDF files (case-insensitive extension
// match), skipping any path with a dotted component. It fails only when
// the root itself is missing or unreadable; the returned tree is a
// snapshot, not a live view.
func Walk(root string) (*Tree, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving root %s: %w", root, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("root directory %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root %s is not a directory", root)
	}

	tree := &Tree{
		Root:     abs,
		Occupied: make(map[string]bool),
	}

	err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == abs {
				return err
			}
			// Unreadable subtrees are warnings for the caller, not
			// fatal; the batch continues with what is reachable.
			return nil
		}
		if d.IsDir() {
			if path != abs && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			return nil
		}

		tree.Occupied[path] = true

		if !IsPDF(d.Name()) {
			return nil
		}

		fi, err := d.Info()
		if err != nil {
			return nil
		}
		rel, err := filepath.Rel(abs, path)
		if err != nil {
			return nil
		}

		tree.Files = append(tree.Files, File{
			Path:    path,
			RelPath: rel,
			Name:    d.Name(),
			Size:    fi.Size(),
			ModTime: fi.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}

	sort.Slice(tree.Files, func(i, j int) bool {
		return tree.Files[i].Path < tree.Files[j].Path
	})

	return tree, nil
}

// IsPDF reports whether the filename has a .pdf extension, case-insensitive.
func IsPDF(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".pdf")
}
