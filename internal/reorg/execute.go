// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reorg

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/pdiddy/paper-organizer/pkg/types"
)

// ExecSummary holds the outcome of applying a plan.
type ExecSummary struct {
	Moved   int
	NoOps   int
	Skipped int
	Failed  int
}

// Total returns the number of entries processed.
func (s ExecSummary) Total() int {
	return s.Moved + s.NoOps + s.Skipped + s.Failed
}

// HasFailures reports whether any moves failed.
func (s ExecSummary) HasFailures() bool {
	return s.Failed > 0
}

// Execute applies the plan's moves in listed order, printing per-entry
// status to w. Each entry is attempted independently: a failure is
// recorded and execution continues. A move counts as complete only once
// the destination write has succeeded; the source is never removed
// before that. Empty folders left behind are pruned afterwards.
func Execute(plan *types.Plan, w io.Writer) ExecSummary {
	var summary ExecSummary

	for _, e := range plan.Entries {
		rel := relTo(plan.Root, e.SourcePath)
		switch {
		case e.NoOp:
			summary.NoOps++
		case e.Resolution == types.ResolutionSkipped:
			fmt.Fprintf(w, "skipped: %s (%s)\n", rel, e.Reason)
			summary.Skipped++
		default:
			if err := moveFile(e.SourcePath, e.TargetPath); err != nil {
				fmt.Fprintf(w, "failed:  %s: %v\n", rel, err)
				summary.Failed++
				continue
			}
			fmt.Fprintf(w, "moved:   %s -> %s\n", rel, relTo(plan.Root, e.TargetPath))
			summary.Moved++
		}
	}

	pruned := pruneEmptyDirs(plan.Root)

	fmt.Fprintf(w, "\nmoved: %d, unchanged: %d, skipped: %d, failed: %d\n",
		summary.Moved, summary.NoOps, summary.Skipped, summary.Failed)
	if pruned > 0 {
		fmt.Fprintf(w, "removed %d empty folder(s)\n", pruned)
	}
	return summary
}

// moveFile relocates source to target. Rename is tried first; when it
// fails (typically a cross-device link) the file is copied, synced, and
// only then removed from its old location, so a failure can leave a
// duplicate but never a loss. The planner guaranteed the target was
// free at plan time; anything that appeared there since fails the move
// rather than being overwritten.
func moveFile(source, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("creating target folder: %w", err)
	}

	if _, err := os.Lstat(target); err == nil {
		return fmt.Errorf("target %s already exists", target)
	}

	if err := os.Rename(source, target); err == nil {
		return nil
	}

	in, err := os.Open(source)
	if err != nil {
		return fmt.Errorf("opening source: %w", err)
	}
	defer in.Close()

	// O_EXCL: the planner guaranteed the target is free; if something
	// appeared there since planning, fail rather than clobber it.
	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("creating target: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(target)
		return fmt.Errorf("copying to target: %w", err)
	}
	if err := out.Sync(); err != nil {
		out.Close()
		os.Remove(target)
		return fmt.Errorf("syncing target: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(target)
		return fmt.Errorf("closing target: %w", err)
	}

	if err := os.Remove(source); err != nil {
		return fmt.Errorf("removing source after copy: %w", err)
	}
	return nil
}

// pruneEmptyDirs removes directories left empty by the moves, deepest
// first, and returns how many were removed. The root itself is kept.
func pruneEmptyDirs(root string) int {
	var dirs []string
	filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err == nil && info.IsDir() && path != root {
			dirs = append(dirs, path)
		}
		return nil
	})

	sort.Sort(sort.Reverse(sort.StringSlice(dirs)))

	removed := 0
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil || len(entries) > 0 {
			continue
		}
		if os.Remove(dir) == nil {
			removed++
		}
	}
	return removed
}

func relTo(root, path string) string {
	if rel, err := filepath.Rel(root, path); err == nil {
		return rel
	}
	return path
}
