// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper-organizer/internal/catalog"
)

// Per-file extraction failures must not fail the index command: stub
// files that are not real PDFs degrade to filename metadata, get
// indexed, and the command exits cleanly.
func TestRunIndexToleratesExtractionFailures(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"Smith_2019_QuantumOptics.pdf", "2020 - Neutrino Detection.pdf"} {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte("stub"), 0o644))
	}

	dbPath := filepath.Join(t.TempDir(), "catalog.db")
	require.NoError(t, indexCmd.Flags().Set("db", dbPath))
	defer indexCmd.Flags().Set("db", "")

	err := runIndex(indexCmd, []string{root})
	require.NoError(t, err)
	assert.FileExists(t, dbPath)
}

func TestIndexFailuresAreWarnings(t *testing.T) {
	assert.Equal(t, "warning: 2 paper(s) failed indexing",
		indexFailureWarning(catalog.IndexSummary{Failed: 2}))
	assert.Empty(t, indexFailureWarning(catalog.IndexSummary{Indexed: 3}))
}
