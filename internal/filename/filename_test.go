// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package filename

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/paper-organizer/pkg/types"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Result
	}{
		{
			name: "author year title with underscores",
			in:   "Smith_2019_QuantumOptics.pdf",
			want: Result{
				Title:      "QuantumOptics",
				Author:     "Smith",
				Year:       2019,
				Confidence: types.ConfidenceHigh,
				Pattern:    "author_year_title",
			},
		},
		{
			name: "author year title with dashes",
			in:   "Jones-2021-Deep-Sea-Sensors.pdf",
			want: Result{
				Title:      "Deep Sea Sensors",
				Author:     "Jones",
				Year:       2021,
				Confidence: types.ConfidenceHigh,
				Pattern:    "author_year_title",
			},
		},
		{
			name: "year dash title",
			in:   "2020 - Neutrino Detection.pdf",
			want: Result{
				Title:      "Neutrino Detection",
				Year:       2020,
				Confidence: types.ConfidenceHigh,
				Pattern:    "year_title",
			},
		},
		{
			name: "year underscore title",
			in:   "2018_dark_matter_survey.pdf",
			want: Result{
				Title:      "dark matter survey",
				Year:       2018,
				Confidence: types.ConfidenceHigh,
				Pattern:    "year_title",
			},
		},
		{
			name: "title paren author comma year",
			in:   "Quantum Optics (Smith, 2019).pdf",
			want: Result{
				Title:      "Quantum Optics",
				Author:     "Smith",
				Year:       2019,
				Confidence: types.ConfidenceHigh,
				Pattern:    "title_paren_author_year",
			},
		},
		{
			name: "title paren year only",
			in:   "Gravitational Lensing (2015).pdf",
			want: Result{
				Title:      "Gravitational Lensing",
				Year:       2015,
				Confidence: types.ConfidenceMedium,
				Pattern:    "title_paren_author_year",
			},
		},
		{
			name: "trailing author token",
			in:   "entanglement_review_Zeilinger.pdf",
			want: Result{
				Title:      "entanglement review",
				Author:     "Zeilinger",
				Confidence: types.ConfidenceLow,
				Pattern:    "title_author",
			},
		},
		{
			name: "no pattern falls back to stem",
			in:   "some random notes.pdf",
			want: Result{
				Title:      "some random notes",
				Confidence: types.ConfidenceNone,
				Pattern:    "fallback",
			},
		},
		{
			name: "out-of-range year is not a year",
			in:   "Smith_1234_Title.pdf",
			want: Result{
				Title:      "Smith 1234 Title",
				Confidence: types.ConfidenceNone,
				Pattern:    "fallback",
			},
		},
		{
			name: "future year beyond plausible range",
			in:   fmt.Sprintf("Lee_%d_Prediction.pdf", time.Now().Year()+5),
			want: Result{
				Title:      fmt.Sprintf("Lee %d Prediction", time.Now().Year()+5),
				Confidence: types.ConfidenceNone,
				Pattern:    "fallback",
			},
		},
		{
			name: "separators collapse in fallback title",
			in:   "a__strange--file..name.pdf",
			want: Result{
				Title:      "a strange file name",
				Confidence: types.ConfidenceNone,
				Pattern:    "fallback",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.in)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Round-trip: filenames built from a known tuple must recover exactly
// that tuple.
func TestParseRoundTrip(t *testing.T) {
	author, year, title := "Curie", 1903, "Radioactive Substances"

	builders := map[string]string{
		"author_year_title":       fmt.Sprintf("%s_%d_%s.pdf", author, year, "Radioactive_Substances"),
		"title_paren_author_year": fmt.Sprintf("%s (%s, %d).pdf", title, author, year),
	}

	for pattern, name := range builders {
		t.Run(pattern, func(t *testing.T) {
			got := Parse(name)
			assert.Equal(t, pattern, got.Pattern)
			assert.Equal(t, author, got.Author)
			assert.Equal(t, year, got.Year)
			assert.Equal(t, title, got.Title)
		})
	}
}

func TestValidYear(t *testing.T) {
	tests := []struct {
		year int
		want bool
	}{
		{1800, true},
		{1799, false},
		{2019, true},
		{time.Now().Year() + 1, true},
		{time.Now().Year() + 2, false},
		{0, false},
	}
	for _, tt := range tests {
		if got := ValidYear(tt.year); got != tt.want {
			t.Errorf("ValidYear(%d) = %v, want %v", tt.year, got, tt.want)
		}
	}
}

func TestCleanTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Quantum_Optics", "Quantum Optics"},
		{"deep-sea.sensors", "deep sea sensors"},
		{"  already   clean  ", "already clean"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := CleanTitle(tt.in); got != tt.want {
			t.Errorf("CleanTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
