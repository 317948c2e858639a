// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package meta

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper-organizer/internal/filename"
	"github.com/pdiddy/paper-organizer/internal/scan"
	"github.com/pdiddy/paper-organizer/pkg/types"
)

func testFile(name string) scan.File {
	return scan.File{
		Path: filepath.Join("/papers", name),
		Name: name,
		Size: 2048,
	}
}

func TestMergePrecedence(t *testing.T) {
	f := testFile("Smith_2019_QuantumOptics.pdf")
	fn := filename.Parse(f.Name)

	tests := []struct {
		name string
		emb  Embedded
		want types.PaperRecord
	}{
		{
			name: "embedded wins every field it has",
			emb:  Embedded{Title: "Quantum Optics Revisited", Author: "J. Smith", Year: 2018, PageCount: 12},
			want: types.PaperRecord{
				SourcePath:      f.Path,
				Title:           "Quantum Optics Revisited",
				Authors:         []string{"J. Smith"},
				Year:            2018, // embedded beats the filename's 2019
				TitleSource:     types.SourceEmbedded,
				AuthorSource:    types.SourceEmbedded,
				YearSource:      types.SourceEmbedded,
				FileSize:        2048,
				PageCount:       12,
				ParseConfidence: types.ConfidenceHigh,
			},
		},
		{
			name: "empty embedded fields fill from filename",
			emb:  Embedded{Title: "", Author: "", Year: 0, PageCount: 7},
			want: types.PaperRecord{
				SourcePath:      f.Path,
				Title:           "QuantumOptics",
				Authors:         []string{"Smith"},
				Year:            2019,
				TitleSource:     types.SourceFilename,
				AuthorSource:    types.SourceFilename,
				YearSource:      types.SourceFilename,
				FileSize:        2048,
				PageCount:       7,
				ParseConfidence: types.ConfidenceHigh,
			},
		},
		{
			name: "mixed provenance is tracked per field",
			emb:  Embedded{Title: "Quantum Optics Revisited", Author: "", Year: 0},
			want: types.PaperRecord{
				SourcePath:      f.Path,
				Title:           "Quantum Optics Revisited",
				Authors:         []string{"Smith"},
				Year:            2019,
				TitleSource:     types.SourceEmbedded,
				AuthorSource:    types.SourceFilename,
				YearSource:      types.SourceFilename,
				FileSize:        2048,
				ParseConfidence: types.ConfidenceHigh,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Merge(f, tt.emb, fn)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMergeNothingKnown(t *testing.T) {
	f := testFile("scan0001.pdf")
	fn := filename.Parse(f.Name)

	got := Merge(f, Embedded{}, fn)
	// The fallback still yields a title from the stem; author and year
	// stay unknown.
	assert.Equal(t, "scan0001", got.Title)
	assert.Equal(t, types.SourceFilename, got.TitleSource)
	assert.Empty(t, got.Authors)
	assert.Equal(t, types.SourceUnknown, got.AuthorSource)
	assert.False(t, got.HasYear())
	assert.Equal(t, types.SourceUnknown, got.YearSource)
}

func TestYearFromCreationDate(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"D:20190314120000Z", 2019},
		{"D:20240101000000+01'00'", 2024},
		{"2015-06-01", 2015},
		{"D:09990101000000Z", 0}, // out of plausible range
		{"garbage", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := YearFromCreationDate(tt.in); got != tt.want {
			t.Errorf("YearFromCreationDate(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestSplitAuthors(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"Smith; Jones; Doe", []string{"Smith", "Jones", "Doe"}},
		{"Alice Smith and Bob Jones", []string{"Alice Smith", "Bob Jones"}},
		{"Smith, John", []string{"Smith, John"}}, // Last, First stays one name
		{"  Smith ;  ", []string{"Smith"}},
		{"", nil},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SplitAuthors(tt.in), "input %q", tt.in)
	}
}

func TestTitleFromPageText(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "first plausible line wins",
			text: "3\nPhys. Rev. A\nObservation of Entangled Photon Pairs in Microcavities\nJ. Smith\n",
			want: "Observation of Entangled Photon Pairs in Microcavities",
		},
		{
			name: "short lines skipped",
			text: "abstract\nintro\n",
			want: "",
		},
		{
			name: "overlong running text skipped",
			text: strings.Repeat("x", 250) + "\nA Treatise on the Detection of Neutrinos\n",
			want: "A Treatise on the Detection of Neutrinos",
		},
		{
			name: "only the leading lines are considered",
			text: strings.Repeat("short\n", 10) + "A Perfectly Plausible Title Further Down\n",
			want: "",
		},
		{
			name: "empty text",
			text: "",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TitleFromPageText(tt.text))
		})
	}
}

func TestReadEmbeddedRejectsNonPDF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fake.pdf")
	require.NoError(t, os.WriteFile(path, []byte("this is not a pdf"), 0o644))

	_, err := ReadEmbedded(path)
	require.Error(t, err)
}

func TestReadEmbeddedMissingFile(t *testing.T) {
	_, err := ReadEmbedded(filepath.Join(t.TempDir(), "absent.pdf"))
	require.Error(t, err)
}

func TestExtractDegradesToFilename(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Smith_2019_QuantumOptics.pdf")
	require.NoError(t, os.WriteFile(path, []byte("broken"), 0o644))

	f := scan.File{Path: path, Name: "Smith_2019_QuantumOptics.pdf", Size: 6}
	rec, err := Extract(f)
	require.Error(t, err, "extraction should report the failure")

	// The record is still usable, built from the filename alone.
	assert.Equal(t, "QuantumOptics", rec.Title)
	assert.Equal(t, types.SourceFilename, rec.TitleSource)
	assert.Equal(t, 2019, rec.Year)
	assert.Equal(t, []string{"Smith"}, rec.Authors)
	assert.Zero(t, rec.PageCount)
}
