// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// FieldSource records which input produced a metadata field's value.
// Each field of a PaperRecord carries its own source so the catalog can
// report how trustworthy a value is.
type FieldSource string

const (
	SourceEmbedded FieldSource = "embedded"
	SourceFilename FieldSource = "filename"
	SourceUnknown  FieldSource = "unknown"
)

// Confidence grades a filename-parse result. Patterns with unambiguous
// structure (author, year, and title all present) report high confidence;
// the whole-stem fallback reports none.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
	ConfidenceNone   Confidence = "none"
)

// PaperRecord is the normalized metadata snapshot for one scanned PDF.
// It is created once per scan, enriched with categories by the classifier,
// and read-only afterwards.
type PaperRecord struct {
	// SourcePath is the absolute path of the PDF at scan time.
	SourcePath string `json:"source_path" yaml:"source_path"`

	// Title is the paper title. Empty means unknown.
	Title string `json:"title" yaml:"title"`

	// Authors lists the paper authors in source order.
	Authors []string `json:"authors,omitempty" yaml:"authors,omitempty"`

	// Year is the four-digit publication year, or 0 when unknown.
	Year int `json:"year" yaml:"year"`

	// TitleSource, AuthorSource, and YearSource record per-field provenance.
	TitleSource  FieldSource `json:"title_source" yaml:"title_source"`
	AuthorSource FieldSource `json:"author_source" yaml:"author_source"`
	YearSource   FieldSource `json:"year_source" yaml:"year_source"`

	// Categories holds the keyword-classifier assignments in keyword-map
	// order. Empty means uncategorized, which is valid.
	Categories []string `json:"categories,omitempty" yaml:"categories,omitempty"`

	// FileSize and PageCount are descriptive only and never feed
	// classification. PageCount is 0 when the PDF could not be read.
	FileSize  int64 `json:"file_size" yaml:"file_size"`
	PageCount int   `json:"page_count,omitempty" yaml:"page_count,omitempty"`

	// ParseConfidence is the filename parser's confidence, kept even when
	// embedded metadata won every field.
	ParseConfidence Confidence `json:"parse_confidence" yaml:"parse_confidence"`
}

// HasYear reports whether the record carries a known publication year.
func (r PaperRecord) HasYear() bool {
	return r.Year != 0
}

// PrimaryCategory returns the first assigned category in keyword-map
// order, or fallback when the record is uncategorized.
func (r PaperRecord) PrimaryCategory(fallback string) string {
	if len(r.Categories) == 0 {
		return fallback
	}
	return r.Categories[0]
}
