// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reorg

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdiddy/paper-organizer/internal/scan"
)

const (
	// RootLabel names the root directory in structure reports.
	RootLabel = "ROOT"

	// rootCrowdThreshold flags a root folder holding more papers than
	// this as worth categorizing.
	rootCrowdThreshold = 10

	// smallFolderMax flags folders at or below this paper count as
	// consolidation candidates.
	smallFolderMax = 2

	// deepNestThreshold flags trees nested deeper than this as worth
	// flattening.
	deepNestThreshold = 3
)

// StructureReport summarizes how a paper tree is currently organized and
// which reorganization strategies would help.
type StructureReport struct {
	TotalPapers  int
	FolderCounts map[string]int // papers per folder, relative to root; RootLabel for the root itself
	RootPapers   int
	SmallFolders []string // folders with smallFolderMax or fewer papers, sorted
	MaxDepth     int      // deepest folder nesting level holding a paper
}

// AnalyzeStructure inspects the scan snapshot without planning anything:
// it only counts where papers currently live.
func AnalyzeStructure(tree *scan.Tree) StructureReport {
	report := StructureReport{
		TotalPapers:  len(tree.Files),
		FolderCounts: make(map[string]int),
	}

	for _, f := range tree.Files {
		dir := filepath.Dir(f.RelPath)
		if dir == "." {
			report.FolderCounts[RootLabel]++
			report.RootPapers++
			continue
		}
		report.FolderCounts[dir]++
		if depth := len(strings.Split(dir, string(filepath.Separator))); depth > report.MaxDepth {
			report.MaxDepth = depth
		}
	}

	for folder, count := range report.FolderCounts {
		if folder != RootLabel && count <= smallFolderMax {
			report.SmallFolders = append(report.SmallFolders, folder)
		}
	}
	sort.Strings(report.SmallFolders)

	return report
}

// Write prints the report: the current structure sorted by paper count,
// then the issues a reorganization pass could address.
func (r StructureReport) Write(w io.Writer) {
	fmt.Fprintf(w, "Current structure (%d papers):\n", r.TotalPapers)

	folders := make([]string, 0, len(r.FolderCounts))
	for f := range r.FolderCounts {
		folders = append(folders, f)
	}
	// Busiest folders first, ties by name.
	sort.Slice(folders, func(i, j int) bool {
		ci, cj := r.FolderCounts[folders[i]], r.FolderCounts[folders[j]]
		if ci != cj {
			return ci > cj
		}
		return folders[i] < folders[j]
	})
	for _, f := range folders {
		fmt.Fprintf(w, "  %s: %d papers\n", f, r.FolderCounts[f])
	}

	fmt.Fprintf(w, "\nPotential issues:\n")
	issues := 0

	if r.RootPapers > rootCrowdThreshold {
		fmt.Fprintf(w, "  %d papers in the root folder (consider categorizing)\n", r.RootPapers)
		issues++
	}
	if len(r.SmallFolders) > 0 {
		fmt.Fprintf(w, "  %d folder(s) with %d or fewer papers (consider consolidating):\n",
			len(r.SmallFolders), smallFolderMax)
		for i, f := range r.SmallFolders {
			if i == 5 {
				fmt.Fprintf(w, "    ... and %d more\n", len(r.SmallFolders)-i)
				break
			}
			fmt.Fprintf(w, "    - %s\n", f)
		}
		issues++
	}
	if r.MaxDepth > deepNestThreshold {
		fmt.Fprintf(w, "  folders nested %d levels deep (consider flattening)\n", r.MaxDepth)
		issues++
	}

	if issues == 0 {
		fmt.Fprintln(w, "  none found")
	}
}
