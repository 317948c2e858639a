// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reorg

import (
	"bytes"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzeStructure(t *testing.T) {
	root := filepath.FromSlash("/papers")
	rels := []string{
		"Quantum/a.pdf", "Quantum/b.pdf", "Quantum/c.pdf",
		"Optics/lone.pdf",
		"Deep/Nested/Very/Much/buried.pdf",
		"root1.pdf", "root2.pdf",
	}
	tree := fixtureTree(root, rels...)

	report := AnalyzeStructure(tree)

	assert.Equal(t, 7, report.TotalPapers)
	assert.Equal(t, 2, report.RootPapers)
	assert.Equal(t, 3, report.FolderCounts["Quantum"])
	assert.Equal(t, 2, report.FolderCounts[RootLabel])
	assert.Equal(t, 4, report.MaxDepth)
	assert.Equal(t, []string{
		filepath.FromSlash("Deep/Nested/Very/Much"),
		"Optics",
	}, report.SmallFolders)
}

func TestStructureReportWrite(t *testing.T) {
	root := filepath.FromSlash("/papers")
	rels := []string{
		"Quantum/a.pdf", "Quantum/b.pdf", "Quantum/c.pdf",
		"Optics/lone.pdf",
		"Deep/Nested/Very/Much/buried.pdf",
	}
	// A crowded root triggers the categorizing hint.
	for i := 0; i < 11; i++ {
		rels = append(rels, fmt.Sprintf("root%02d.pdf", i))
	}
	tree := fixtureTree(root, rels...)

	var out bytes.Buffer
	AnalyzeStructure(tree).Write(&out)
	s := out.String()

	assert.Contains(t, s, "Current structure (16 papers)")
	assert.Contains(t, s, "ROOT: 11 papers")
	assert.Contains(t, s, "Quantum: 3 papers")
	assert.Contains(t, s, "11 papers in the root folder (consider categorizing)")
	assert.Contains(t, s, "2 folder(s) with 2 or fewer papers (consider consolidating)")
	assert.Contains(t, s, "- Optics")
	assert.Contains(t, s, "folders nested 4 levels deep (consider flattening)")
}

func TestStructureReportNoIssues(t *testing.T) {
	root := filepath.FromSlash("/papers")
	tree := fixtureTree(root, "Quantum/a.pdf", "Quantum/b.pdf", "Quantum/c.pdf")

	var out bytes.Buffer
	AnalyzeStructure(tree).Write(&out)
	assert.Contains(t, out.String(), "none found")
}
