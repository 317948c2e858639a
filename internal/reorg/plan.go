// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package reorg plans and executes folder reorganizations. Planning is
// pure: it consumes the scan snapshot and produces a complete move plan
// without touching the filesystem, so the whole strategy and collision
// logic is testable against a synthetic listing. Execution is a separate
// pass that only runs under an explicit authorization flag.
package reorg

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/pdiddy/paper-organizer/internal/classify"
	"github.com/pdiddy/paper-organizer/internal/scan"
	"github.com/pdiddy/paper-organizer/pkg/types"
)

const (
	// UnknownYearFolder receives by-year papers without a known year.
	UnknownYearFolder = "Unknown_Year"

	// UncategorizedFolder receives by-keyword papers with no category.
	UncategorizedFolder = "Uncategorized"

	// ByAuthorFolder is the by-author strategy's top-level folder; papers
	// are filed under it by author initial, then author name.
	ByAuthorFolder = "By_Author"

	// DefaultMiscFolder is the consolidation catch-all.
	DefaultMiscFolder = "Miscellaneous"

	// DefaultMinPapers is the consolidation threshold.
	DefaultMinPapers = 3

	// DefaultMaxDepth is the flatten strategy's nesting limit.
	DefaultMaxDepth = 2

	// maxSuffix bounds collision renaming; an entry that cannot find a
	// free name below this is marked skipped.
	maxSuffix = 1000
)

// Options selects and parameterizes the planning strategy.
type Options struct {
	Strategy   types.Strategy
	Keywords   *classify.KeywordMap // required for by-keyword
	MinPapers  int                  // consolidate threshold; 0 uses DefaultMinPapers
	MiscFolder string               // consolidate target; empty uses DefaultMiscFolder
	MaxDepth   int                  // flatten nesting limit; 0 uses DefaultMaxDepth
}

// BuildPlan computes a complete move plan for the tree in one pass.
// Records must parallel tree.Files (same order, same paths), as produced
// by catalog.Collect. Every scanned file appears in the plan exactly
// once, no-ops included; all targets are pairwise distinct and stay
// inside the root. Files are processed in source-path order, which makes
// collision suffixes deterministic regardless of how the tree was
// listed.
func BuildPlan(tree *scan.Tree, records []types.PaperRecord, opts Options) (*types.Plan, error) {
	if len(records) != len(tree.Files) {
		return nil, fmt.Errorf("records/files mismatch: %d records for %d files", len(records), len(tree.Files))
	}
	if opts.Strategy == types.StrategyByKeyword && opts.Keywords == nil {
		return nil, fmt.Errorf("by-keyword strategy requires a keyword map")
	}

	target := targetFunc(tree, opts)

	plan := &types.Plan{
		Root:      tree.Root,
		Strategy:  opts.Strategy,
		CreatedAt: time.Now(),
	}

	// Collision state: occupied is the plan-time filesystem snapshot,
	// claimed is the set of targets already assigned in this plan.
	claimed := make(map[string]bool)

	// Files are resolved in sorted source-path order even when the tree
	// arrives unsorted, so suffix assignment never depends on listing
	// order. Plan entries come out in the same sorted order.
	order := make([]int, len(tree.Files))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return tree.Files[order[a]].Path < tree.Files[order[b]].Path
	})

	for _, i := range order {
		f := tree.Files[i]
		dir, reason := target(f, records[i])
		entry := planEntry(f, filepath.Join(dir, f.Name), reason, tree.Occupied, claimed)
		claimed[entry.TargetPath] = true
		plan.Entries = append(plan.Entries, entry)
	}

	return plan, nil
}

// planEntry resolves one file's computed target against existing files
// and earlier claims, renaming with a numeric suffix when needed.
func planEntry(f scan.File, want, reason string, occupied, claimed map[string]bool) types.MovePlanEntry {
	entry := types.MovePlanEntry{
		SourcePath: f.Path,
		Reason:     reason,
		Resolution: types.ResolutionNone,
	}

	if want == f.Path {
		entry.TargetPath = want
		entry.NoOp = true
		return entry
	}

	free := func(p string) bool {
		return !claimed[p] && (!occupied[p] || p == f.Path)
	}

	if free(want) {
		entry.TargetPath = want
		return entry
	}

	dir := filepath.Dir(want)
	ext := filepath.Ext(f.Name)
	stem := strings.TrimSuffix(f.Name, ext)
	for n := 2; n <= maxSuffix; n++ {
		candidate := filepath.Join(dir, stem+"_"+strconv.Itoa(n)+ext)
		if free(candidate) {
			entry.TargetPath = candidate
			entry.Resolution = types.ResolutionRenamed
			return entry
		}
	}

	// Suffix range exhausted: fatal for this entry only. The file stays
	// in place and the planner continues with the rest of the tree.
	entry.TargetPath = f.Path
	entry.Resolution = types.ResolutionSkipped
	entry.Reason = reason + " (no free target name)"
	return entry
}

// targetFunc returns the strategy's target-folder rule.
func targetFunc(tree *scan.Tree, opts Options) func(scan.File, types.PaperRecord) (string, string) {
	switch opts.Strategy {
	case types.StrategyByYear:
		return func(f scan.File, rec types.PaperRecord) (string, string) {
			if rec.HasYear() {
				year := strconv.Itoa(rec.Year)
				return filepath.Join(tree.Root, year), "by-year: " + year
			}
			return filepath.Join(tree.Root, UnknownYearFolder), "by-year: unknown year"
		}

	case types.StrategyByKeyword:
		return func(f scan.File, rec types.PaperRecord) (string, string) {
			// Multi-category papers go to the first category in
			// keyword-map order; the rest stay metadata-only.
			cat := rec.PrimaryCategory(UncategorizedFolder)
			folder := sanitizeFolder(cat)
			return filepath.Join(tree.Root, folder), "by-keyword: " + cat
		}

	case types.StrategyByAuthor:
		return func(f scan.File, rec types.PaperRecord) (string, string) {
			author := authorFolder(rec)
			if author == "" {
				return f.Dir(), "by-author: unknown author"
			}
			initial := strings.ToUpper(string([]rune(author)[0]))
			return filepath.Join(tree.Root, ByAuthorFolder, initial, author), "by-author: " + author
		}

	case types.StrategyFlatten:
		maxDepth := opts.MaxDepth
		if maxDepth <= 0 {
			maxDepth = DefaultMaxDepth
		}
		return func(f scan.File, rec types.PaperRecord) (string, string) {
			rel, err := filepath.Rel(tree.Root, f.Dir())
			if err != nil || rel == "." {
				return f.Dir(), "flatten: at root"
			}
			parts := strings.Split(rel, string(filepath.Separator))
			if len(parts) <= maxDepth {
				return f.Dir(), fmt.Sprintf("flatten: depth %d within limit", len(parts))
			}
			// Deeply nested files collapse into a top-level folder named by
			// the first maxDepth components joined with underscores.
			folder := strings.Join(parts[:maxDepth], "_")
			return filepath.Join(tree.Root, folder),
				fmt.Sprintf("flatten: depth %d exceeds %d", len(parts), maxDepth)
		}

	case types.StrategyConsolidate:
		minPapers := opts.MinPapers
		if minPapers <= 0 {
			minPapers = DefaultMinPapers
		}
		misc := opts.MiscFolder
		if misc == "" {
			misc = DefaultMiscFolder
		}
		counts := make(map[string]int)
		for _, f := range tree.Files {
			counts[f.Dir()]++
		}
		return func(f scan.File, rec types.PaperRecord) (string, string) {
			dir := f.Dir()
			// Only direct children of root are candidates; root-level
			// and deeper files stay put.
			if filepath.Dir(dir) != tree.Root {
				return dir, "consolidate: not a top-level folder"
			}
			if counts[dir] >= minPapers {
				return dir, fmt.Sprintf("consolidate: folder has %d papers", counts[dir])
			}
			return filepath.Join(tree.Root, sanitizeFolder(misc)),
				fmt.Sprintf("consolidate: folder has %d papers (< %d)", counts[dir], minPapers)
		}

	default:
		return func(f scan.File, rec types.PaperRecord) (string, string) {
			return f.Dir(), "unknown strategy"
		}
	}
}

// authorFolder derives the by-author folder name from a record's first
// author: the part before a comma ("Smith, John"), otherwise the last
// whitespace-separated token ("John Smith"), reduced to letters only.
// Names shorter than three letters are too ambiguous to file by and
// yield "".
func authorFolder(rec types.PaperRecord) string {
	if len(rec.Authors) == 0 {
		return ""
	}
	name := rec.Authors[0]
	if i := strings.Index(name, ","); i >= 0 {
		name = name[:i]
	} else if fields := strings.Fields(name); len(fields) > 0 {
		name = fields[len(fields)-1]
	}

	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) {
			b.WriteRune(r)
		}
	}
	surname := b.String()
	if len([]rune(surname)) < 3 {
		return ""
	}
	return surname
}

// sanitizeFolder makes a category or folder name safe as a single path
// component under the root: separators become underscores and relative
// traversal is neutralized, so no target can escape the tree.
func sanitizeFolder(name string) string {
	name = strings.TrimSpace(name)
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\':
			return '_'
		}
		return r
	}, name)
	if name == "" || name == "." || name == ".." {
		return "_"
	}
	return name
}

// FolderCounts returns the number of plan entries destined for each
// target folder, keyed by path relative to the plan root.
func FolderCounts(plan *types.Plan) map[string]int {
	counts := make(map[string]int)
	for _, e := range plan.Entries {
		dir := filepath.Dir(e.TargetPath)
		rel, err := filepath.Rel(plan.Root, dir)
		if err != nil {
			rel = dir
		}
		counts[rel]++
	}
	return counts
}
