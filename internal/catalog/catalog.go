// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog turns scanned PDFs into an ordered literature table
// and feeds the spreadsheet, JSON, and SQLite index sinks.
package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdiddy/paper-organizer/internal/classify"
	"github.com/pdiddy/paper-organizer/internal/meta"
	"github.com/pdiddy/paper-organizer/internal/scan"
	"github.com/pdiddy/paper-organizer/pkg/types"
)

// CollectSummary holds counts from one extraction run. Every scanned
// file produces a record: extraction failures degrade to filename-only
// data, they never drop the file.
type CollectSummary struct {
	Cataloged int // records built from embedded metadata
	Degraded  int // records built from filename-only data after a read failure
}

// Total returns the number of files processed.
func (s CollectSummary) Total() int {
	return s.Cataloged + s.Degraded
}

// HasFailures reports whether any file degraded.
func (s CollectSummary) HasFailures() bool {
	return s.Degraded > 0
}

// Collect extracts and classifies every file in the tree, printing
// per-file progress to w. Extraction failures degrade that one file to
// filename-only data with a warning; the batch always runs to the end.
// Passing a nil keyword map leaves every record uncategorized.
func Collect(tree *scan.Tree, km *classify.KeywordMap, w io.Writer) ([]types.PaperRecord, CollectSummary) {
	var records []types.PaperRecord
	var summary CollectSummary

	for _, f := range tree.Files {
		rec, err := meta.Extract(f)
		if err != nil {
			fmt.Fprintf(w, "warning: %s: %v (using filename metadata)\n", f.RelPath, err)
			summary.Degraded++
		} else {
			summary.Cataloged++
		}

		if km != nil {
			rec.Categories = km.Classify(rec, tree.Root)
		}
		records = append(records, rec)
	}

	fmt.Fprintf(w, "\nScanned %d papers (%d with embedded metadata, %d filename-only)\n",
		summary.Total(), summary.Cataloged, summary.Degraded)
	return records, summary
}

// Catalog is the ordered literature table. Row order is part of the
// contract: year descending, then title ascending, ties broken by
// source path, so identical input trees always produce identical output.
type Catalog struct {
	Root    string
	Records []types.PaperRecord
}

// Build sorts the records into the documented order and returns the
// catalog. Records with unknown year sort after all dated ones.
func Build(root string, records []types.PaperRecord) *Catalog {
	sorted := make([]types.PaperRecord, len(records))
	copy(sorted, records)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Year != b.Year {
			return a.Year > b.Year // unknown (0) sorts last
		}
		at, bt := strings.ToLower(a.Title), strings.ToLower(b.Title)
		if at != bt {
			return at < bt
		}
		return a.SourcePath < b.SourcePath
	})

	return &Catalog{Root: root, Records: sorted}
}

// FormatTable writes the catalog as a human-readable table to w.
func (c *Catalog) FormatTable(w io.Writer) {
	if len(c.Records) == 0 {
		fmt.Fprintln(w, "No papers found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-50s  %-20s  %-4s  %-24s  %s\n",
		"#", "Title", "Authors", "Year", "Categories", "File")
	fmt.Fprintln(w, strings.Repeat("-", 120))

	for i, r := range c.Records {
		year := ""
		if r.HasYear() {
			year = fmt.Sprintf("%d", r.Year)
		}
		fmt.Fprintf(w, "%-4d  %-50s  %-20s  %-4s  %-24s  %s\n",
			i+1,
			truncate(r.Title, 50),
			truncate(formatAuthors(r.Authors), 20),
			year,
			truncate(strings.Join(r.Categories, ";"), 24),
			filepath.Base(r.SourcePath))
	}

	fmt.Fprintf(w, "\n%d papers\n", len(c.Records))
}

// FormatJSON writes the catalog rows as indented JSON to w.
func (c *Catalog) FormatJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(c.Records)
}

// WriteSummary prints papers-by-category and papers-by-year counts plus
// metadata coverage, mirroring the end-of-run report researchers use to
// spot gaps worth fixing by hand.
func (c *Catalog) WriteSummary(w io.Writer) {
	byCategory := make(map[string]int)
	byYear := make(map[int]int)
	var noTitle, noAuthor, noYear int

	for _, r := range c.Records {
		if len(r.Categories) == 0 {
			byCategory["Uncategorized"]++
		}
		for _, cat := range r.Categories {
			byCategory[cat]++
		}
		byYear[r.Year]++
		if r.Title == "" {
			noTitle++
		}
		if len(r.Authors) == 0 {
			noAuthor++
		}
		if !r.HasYear() {
			noYear++
		}
	}

	fmt.Fprintf(w, "\nPapers by category:\n")
	for _, cat := range sortedKeys(byCategory) {
		fmt.Fprintf(w, "  %s: %d\n", cat, byCategory[cat])
	}

	fmt.Fprintf(w, "\nPapers by year:\n")
	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	for _, y := range years {
		label := "Unknown"
		if y != 0 {
			label = fmt.Sprintf("%d", y)
		}
		fmt.Fprintf(w, "  %s: %d\n", label, byYear[y])
	}

	total := len(c.Records)
	fmt.Fprintf(w, "\nMetadata coverage:\n")
	fmt.Fprintf(w, "  missing title:  %d/%d\n", noTitle, total)
	fmt.Fprintf(w, "  missing author: %d/%d\n", noAuthor, total)
	fmt.Fprintf(w, "  missing year:   %d/%d\n", noYear, total)
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func formatAuthors(authors []string) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return authors[0]
	default:
		return authors[0] + " et al."
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
