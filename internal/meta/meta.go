// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package meta builds PaperRecords by reading embedded PDF metadata and
// merging it with filename parsing under a fixed precedence: embedded
// values win when non-empty, filename-derived values fill the gaps, and
// every field records its own provenance.
package meta

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/pdiddy/paper-organizer/internal/filename"
	"github.com/pdiddy/paper-organizer/internal/scan"
	"github.com/pdiddy/paper-organizer/pkg/types"
)

// Embedded holds the fields read from a PDF's Info dictionary.
type Embedded struct {
	Title     string
	Author    string
	Year      int
	PageCount int
}

// ReadEmbedded opens the PDF at path and reads its Info dictionary and
// page count. The pdf library panics on some malformed inputs, so the
// whole read runs behind a recover; any failure comes back as an error
// and never takes down the batch.
func ReadEmbedded(path string) (emb Embedded, err error) {
	defer func() {
		if r := recover(); r != nil {
			emb = Embedded{}
			err = fmt.Errorf("reading %s: %v", filepath.Base(path), r)
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return Embedded{}, fmt.Errorf("opening %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	emb.PageCount = reader.NumPage()

	info := reader.Trailer().Key("Info")
	emb.Title = strings.TrimSpace(info.Key("Title").Text())
	emb.Author = strings.TrimSpace(info.Key("Author").Text())
	emb.Year = YearFromCreationDate(info.Key("CreationDate").Text())

	// Info dictionaries often omit the title; the first page's text is
	// the next best document-internal source.
	if emb.Title == "" && emb.PageCount > 0 {
		emb.Title = firstPageTitle(reader)
	}

	return emb, nil
}

// firstPageTitle extracts a title candidate from the first page's text.
// Text extraction can panic on unusual content streams, so a failure
// just means no candidate.
func firstPageTitle(r *pdf.Reader) (title string) {
	defer func() {
		if recover() != nil {
			title = ""
		}
	}()

	page := r.Page(1)
	if page.V.IsNull() {
		return ""
	}
	text, err := page.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return TitleFromPageText(text)
}

// titleLineMin and titleLineMax bound a plausible title line length;
// shorter lines are usually headers or page furniture, longer ones
// running text.
const (
	titleLineMin = 20
	titleLineMax = 200
	titleLines   = 10
)

// TitleFromPageText picks a title candidate from extracted page text:
// the first line within the plausible length bounds among the first few
// lines, or "" when none qualifies.
func TitleFromPageText(text string) string {
	lines := strings.Split(text, "\n")
	if len(lines) > titleLines {
		lines = lines[:titleLines]
	}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if len(line) > titleLineMin && len(line) < titleLineMax {
			return line
		}
	}
	return ""
}

// creationYearRe pulls the first 4-digit run out of a PDF date string
// such as "D:20190314120000Z".
var creationYearRe = regexp.MustCompile(`(\d{4})`)

// YearFromCreationDate extracts a plausible publication year from a PDF
// CreationDate value, or 0 when none is present.
func YearFromCreationDate(s string) int {
	m := creationYearRe.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	y, err := strconv.Atoi(m[1])
	if err != nil || !filename.ValidYear(y) {
		return 0
	}
	return y
}

// Merge combines embedded metadata with a filename-parse result for one
// scanned file. Embedded title and author are used verbatim when
// non-empty; any field embedded metadata leaves empty is filled from the
// filename result. When both sources carry a year the embedded one wins:
// document-internal dates are higher-confidence than filename tokens.
func Merge(f scan.File, emb Embedded, fn filename.Result) types.PaperRecord {
	rec := types.PaperRecord{
		SourcePath:      f.Path,
		FileSize:        f.Size,
		PageCount:       emb.PageCount,
		TitleSource:     types.SourceUnknown,
		AuthorSource:    types.SourceUnknown,
		YearSource:      types.SourceUnknown,
		ParseConfidence: fn.Confidence,
	}

	switch {
	case emb.Title != "":
		rec.Title = emb.Title
		rec.TitleSource = types.SourceEmbedded
	case fn.Title != "":
		rec.Title = fn.Title
		rec.TitleSource = types.SourceFilename
	}

	switch {
	case emb.Author != "":
		rec.Authors = SplitAuthors(emb.Author)
		rec.AuthorSource = types.SourceEmbedded
	case fn.Author != "":
		rec.Authors = []string{fn.Author}
		rec.AuthorSource = types.SourceFilename
	}

	switch {
	case emb.Year != 0:
		rec.Year = emb.Year
		rec.YearSource = types.SourceEmbedded
	case fn.Year != 0:
		rec.Year = fn.Year
		rec.YearSource = types.SourceFilename
	}

	return rec
}

// Extract produces the PaperRecord for one scanned file. Extraction
// failures degrade to filename-only data rather than erroring: the
// returned warning is non-nil but the record is still usable.
func Extract(f scan.File) (types.PaperRecord, error) {
	fn := filename.Parse(f.Name)
	emb, err := ReadEmbedded(f.Path)
	if err != nil {
		return Merge(f, Embedded{}, fn), err
	}
	return Merge(f, emb, fn), nil
}

var andSepRe = regexp.MustCompile(`\s+and\s+`)

// SplitAuthors breaks an embedded author string into individual names.
// Semicolons and the word "and" are treated as separators; bare commas
// are not, since "Last, First" is a single name.
func SplitAuthors(s string) []string {
	var parts []string
	if strings.Contains(s, ";") {
		parts = strings.Split(s, ";")
	} else {
		parts = andSepRe.Split(s, -1)
	}

	var authors []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			authors = append(authors, p)
		}
	}
	return authors
}
