// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePDF(t *testing.T, root string, rel string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4 stub"), 0o644))
	return path
}

func TestWalkDiscoversPDFs(t *testing.T) {
	root := t.TempDir()
	writePDF(t, root, "a.pdf")
	writePDF(t, root, "sub/b.PDF")
	writePDF(t, root, "sub/deep/c.Pdf")
	writePDF(t, root, "notes.txt")

	tree, err := Walk(root)
	require.NoError(t, err)

	var names []string
	for _, f := range tree.Files {
		names = append(names, f.Name)
	}
	// Case-insensitive extension match; non-PDFs excluded from Files.
	assert.Equal(t, []string{"a.pdf", "b.PDF", "c.Pdf"}, names)

	// But every regular file counts as occupied.
	assert.True(t, tree.Occupied[filepath.Join(root, "notes.txt")])
}

func TestWalkSkipsHiddenPaths(t *testing.T) {
	root := t.TempDir()
	writePDF(t, root, "visible.pdf")
	writePDF(t, root, ".hidden.pdf")
	writePDF(t, root, ".dropbox.cache/cached.pdf")

	tree, err := Walk(root)
	require.NoError(t, err)
	require.Len(t, tree.Files, 1)
	assert.Equal(t, "visible.pdf", tree.Files[0].Name)
}

func TestWalkSortsByPath(t *testing.T) {
	root := t.TempDir()
	writePDF(t, root, "z/one.pdf")
	writePDF(t, root, "a/two.pdf")
	writePDF(t, root, "m/three.pdf")

	tree, err := Walk(root)
	require.NoError(t, err)
	require.Len(t, tree.Files, 3)
	for i := 1; i < len(tree.Files); i++ {
		assert.Less(t, tree.Files[i-1].Path, tree.Files[i].Path)
	}
}

func TestWalkRecordsSizeAndRelPath(t *testing.T) {
	root := t.TempDir()
	writePDF(t, root, "sub/paper.pdf")

	tree, err := Walk(root)
	require.NoError(t, err)
	require.Len(t, tree.Files, 1)

	f := tree.Files[0]
	assert.Equal(t, filepath.FromSlash("sub/paper.pdf"), f.RelPath)
	assert.Equal(t, int64(len("%PDF-1.4 stub")), f.Size)
	assert.Equal(t, filepath.Join(root, "sub"), f.Dir())
	assert.Equal(t, "paper", f.Stem())
	assert.False(t, f.ModTime.IsZero())
}

func TestWalkMissingRoot(t *testing.T) {
	_, err := Walk(filepath.Join(t.TempDir(), "does-not-exist"))
	require.Error(t, err)
}

func TestWalkRootIsFile(t *testing.T) {
	root := t.TempDir()
	path := writePDF(t, root, "paper.pdf")
	_, err := Walk(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")
}

func TestIsPDF(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"paper.pdf", true},
		{"paper.PDF", true},
		{"paper.Pdf", true},
		{"paper.pdfx", false},
		{"paper.txt", false},
		{"pdf", false},
	}
	for _, tt := range tests {
		if got := IsPDF(tt.name); got != tt.want {
			t.Errorf("IsPDF(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
