// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package filename derives bibliographic hints from paper filenames.
// An ordered list of structural conventions is tried most-specific first;
// the first match wins outright, with no scoring across patterns, so the
// precedence rule stays auditable in one place.
package filename

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/paper-organizer/pkg/types"
)

// Result is the parser's best-effort reading of one filename.
type Result struct {
	// Title is the recovered title, never empty: the fallback uses the
	// whole stem with separators replaced by spaces.
	Title string

	// Author is the recovered author surname, or empty when unknown.
	Author string

	// Year is the recovered publication year, or 0 when unknown.
	Year int

	// Confidence grades the matched pattern; ConfidenceNone marks the
	// whole-stem fallback.
	Confidence types.Confidence

	// Pattern names the convention that matched, for diagnostics.
	Pattern string
}

// minYear bounds plausible publication years; values outside
// [minYear, current year+1] are treated as not-a-year.
const minYear = 1800

// pattern is one filename convention. Each convention either returns a
// structured result or reports no match.
type pattern struct {
	name  string
	match func(stem string) (Result, bool)
}

var (
	authorYearTitleRe = regexp.MustCompile(`^([A-Za-z][A-Za-z'\-]+)[ _\-]+(\d{4})[ _\-]+(.+)$`)
	yearTitleRe       = regexp.MustCompile(`^(\d{4})[ _\-]+(.+)$`)
	titleParenRe      = regexp.MustCompile(`^(.+?)\s*\(\s*([^(),]*?)\s*,?\s*(\d{4})\s*\)$`)
	titleAuthorRe     = regexp.MustCompile(`^(.+)_([A-Z][a-z]{2,})$`)
)

// conventions are tried in order; keep the most specific first.
var conventions = []pattern{
	{"author_year_title", matchAuthorYearTitle},
	{"year_title", matchYearTitle},
	{"title_paren_author_year", matchTitleParen},
	{"title_author", matchTitleAuthor},
}

// Parse derives (author, year, title) from a filename or path. Only the
// base name is considered. If no convention matches, the whole stem
// becomes the title and author and year stay unknown.
func Parse(name string) Result {
	stem := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	stem = strings.TrimSpace(stem)

	for _, p := range conventions {
		if r, ok := p.match(stem); ok {
			r.Pattern = p.name
			return r
		}
	}

	return Result{
		Title:      CleanTitle(stem),
		Confidence: types.ConfidenceNone,
		Pattern:    "fallback",
	}
}

// matchAuthorYearTitle handles "Smith_2019_QuantumOptics" and the
// dash/space separated variants.
func matchAuthorYearTitle(stem string) (Result, bool) {
	m := authorYearTitleRe.FindStringSubmatch(stem)
	if m == nil {
		return Result{}, false
	}
	year, ok := parseYear(m[2])
	if !ok {
		return Result{}, false
	}
	return Result{
		Title:      CleanTitle(m[3]),
		Author:     m[1],
		Year:       year,
		Confidence: types.ConfidenceHigh,
	}, true
}

// matchYearTitle handles "2020 - Neutrino Detection" and "2020_Title".
func matchYearTitle(stem string) (Result, bool) {
	m := yearTitleRe.FindStringSubmatch(stem)
	if m == nil {
		return Result{}, false
	}
	year, ok := parseYear(m[1])
	if !ok {
		return Result{}, false
	}
	return Result{
		Title:      CleanTitle(m[2]),
		Year:       year,
		Confidence: types.ConfidenceHigh,
	}, true
}

// matchTitleParen handles "Quantum Optics (Smith, 2019)" and the
// author-less "Quantum Optics (2019)".
func matchTitleParen(stem string) (Result, bool) {
	m := titleParenRe.FindStringSubmatch(stem)
	if m == nil {
		return Result{}, false
	}
	year, ok := parseYear(m[3])
	if !ok {
		return Result{}, false
	}
	conf := types.ConfidenceHigh
	author := strings.TrimSpace(m[2])
	if author == "" {
		conf = types.ConfidenceMedium
	}
	return Result{
		Title:      CleanTitle(m[1]),
		Author:     author,
		Year:       year,
		Confidence: conf,
	}, true
}

// matchTitleAuthor handles "quantum_optics_review_Smith". A trailing
// capitalized token is a weak author signal, so confidence is low.
func matchTitleAuthor(stem string) (Result, bool) {
	m := titleAuthorRe.FindStringSubmatch(stem)
	if m == nil {
		return Result{}, false
	}
	// A trailing 4-digit token would have matched an earlier pattern;
	// anything that still contains a year-like run is too ambiguous to
	// call the last token an author.
	if yearLikeRe.MatchString(m[1]) {
		return Result{}, false
	}
	return Result{
		Title:      CleanTitle(m[1]),
		Author:     m[2],
		Confidence: types.ConfidenceLow,
	}, true
}

// CleanTitle replaces separator characters with spaces and collapses
// whitespace runs.
func CleanTitle(s string) string {
	s = strings.Map(func(r rune) rune {
		switch r {
		case '_', '-', '.':
			return ' '
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

// parseYear accepts a 4-digit token within the plausible publication
// range. Out-of-range numbers are not-a-year rather than errors.
func parseYear(tok string) (int, bool) {
	y, err := strconv.Atoi(tok)
	if err != nil {
		return 0, false
	}
	return y, ValidYear(y)
}

// ValidYear reports whether y is a plausible publication year.
func ValidYear(y int) bool {
	return y >= minYear && y <= time.Now().Year()+1
}

var yearLikeRe = regexp.MustCompile(`\d{4}`)
