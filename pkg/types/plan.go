// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Strategy selects a folder-reorganization rule. Strategies are mutually
// exclusive within one plan.
type Strategy string

const (
	StrategyByYear      Strategy = "by-year"
	StrategyByKeyword   Strategy = "by-keyword"
	StrategyByAuthor    Strategy = "by-author"
	StrategyConsolidate Strategy = "consolidate"
	StrategyFlatten     Strategy = "flatten"
)

// ConflictResolution records how a planned move's destination collision
// was handled.
type ConflictResolution string

const (
	// ResolutionNone means the computed target was free.
	ResolutionNone ConflictResolution = "none"

	// ResolutionRenamed means a numeric suffix was appended to avoid a
	// collision with an existing file or another plan entry.
	ResolutionRenamed ConflictResolution = "renamed"

	// ResolutionSkipped means no free target could be found; the file
	// stays in place.
	ResolutionSkipped ConflictResolution = "skipped"
)

// MovePlanEntry is one planned relocation. Every scanned PDF appears in a
// plan exactly once; entries whose target equals their source are kept as
// explicit no-ops rather than dropped.
type MovePlanEntry struct {
	// SourcePath is the file's location at plan time.
	SourcePath string `json:"source_path" yaml:"source_path"`

	// TargetPath is the computed destination. For skipped entries it
	// equals SourcePath.
	TargetPath string `json:"target_path" yaml:"target_path"`

	// Reason names the strategy rule that produced the target
	// (e.g. "by-year: 2019").
	Reason string `json:"reason" yaml:"reason"`

	// Resolution records collision handling for this entry.
	Resolution ConflictResolution `json:"resolution" yaml:"resolution"`

	// NoOp marks entries already at their computed target.
	NoOp bool `json:"no_op,omitempty" yaml:"no_op,omitempty"`
}

// Plan is a complete, ordered move plan for one root tree. It is computed
// in a single pass with no filesystem mutation and either reported
// (dry run) or consumed entry-by-entry by the executor.
type Plan struct {
	Root      string          `json:"root" yaml:"root"`
	Strategy  Strategy        `json:"strategy" yaml:"strategy"`
	CreatedAt time.Time       `json:"created_at" yaml:"created_at"`
	Entries   []MovePlanEntry `json:"entries" yaml:"entries"`
}

// Moves returns the number of entries that would change the tree.
func (p *Plan) Moves() int {
	n := 0
	for _, e := range p.Entries {
		if !e.NoOp && e.Resolution != ResolutionSkipped {
			n++
		}
	}
	return n
}
