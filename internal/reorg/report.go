// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reorg

import (
	"fmt"
	"io"
	"os"
	"sort"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paper-organizer/pkg/types"
)

// FormatPlan writes the human-readable plan report: every entry with its
// source, target, reason, and conflict resolution, followed by per-target
// folder counts.
func FormatPlan(plan *types.Plan, w io.Writer) {
	if len(plan.Entries) == 0 {
		fmt.Fprintln(w, "No PDF files found; nothing to plan.")
		return
	}

	fmt.Fprintf(w, "Plan: %s strategy, %d file(s)\n\n", plan.Strategy, len(plan.Entries))

	for _, e := range plan.Entries {
		src := relTo(plan.Root, e.SourcePath)
		switch {
		case e.NoOp:
			fmt.Fprintf(w, "  unchanged  %s (%s)\n", src, e.Reason)
		case e.Resolution == types.ResolutionSkipped:
			fmt.Fprintf(w, "  skipped    %s (%s)\n", src, e.Reason)
		case e.Resolution == types.ResolutionRenamed:
			fmt.Fprintf(w, "  move       %s -> %s (%s; renamed to avoid collision)\n",
				src, relTo(plan.Root, e.TargetPath), e.Reason)
		default:
			fmt.Fprintf(w, "  move       %s -> %s (%s)\n",
				src, relTo(plan.Root, e.TargetPath), e.Reason)
		}
	}

	counts := FolderCounts(plan)
	folders := make([]string, 0, len(counts))
	for f := range counts {
		folders = append(folders, f)
	}
	sort.Strings(folders)

	fmt.Fprintf(w, "\nTarget folders:\n")
	for _, f := range folders {
		fmt.Fprintf(w, "  %s: %d\n", f, counts[f])
	}

	fmt.Fprintf(w, "\n%d move(s) planned, %d unchanged\n", plan.Moves(), len(plan.Entries)-plan.Moves())
}

// WritePlanFile saves a plan to a YAML file so it can be reviewed and
// executed later without replanning.
func WritePlanFile(plan *types.Plan, path string) error {
	data, err := yaml.Marshal(plan)
	if err != nil {
		return fmt.Errorf("marshaling plan: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadPlanFile loads a previously saved plan.
func ReadPlanFile(path string) (*types.Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading plan file: %w", err)
	}
	var plan types.Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("parsing plan file: %w", err)
	}
	return &plan, nil
}
