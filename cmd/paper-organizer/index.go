// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paper-organizer/internal/catalog"
	"github.com/pdiddy/paper-organizer/internal/classify"
	"github.com/pdiddy/paper-organizer/internal/scan"
	"github.com/pdiddy/paper-organizer/pkg/types"
)

var indexCmd = &cobra.Command{
	Use:   "index [root]",
	Short: "Build or refresh the searchable catalog index",
	Long: `Index scans root like catalog does, then upserts one row per paper into a
SQLite database with full-text search over title, authors, categories, and
path. Papers unchanged since the last run (same size and modification time)
are skipped. The database is a regenerable artifact: delete it and re-run
index to rebuild from scratch.`,
	Args: cobra.ExactArgs(1),
	RunE: runIndex,
}

func runIndex(cmd *cobra.Command, args []string) error {
	keywordPath, _ := cmd.Flags().GetString("keywords")

	var km *classify.KeywordMap
	if keywordPath != "" {
		var err error
		km, err = classify.LoadKeywordMap(keywordPath)
		if err != nil {
			return err
		}
	}

	tree, err := scan.Walk(args[0])
	if err != nil {
		return err
	}

	cfg, err := indexConfig()
	if err != nil {
		return err
	}
	dbPath := indexDBPath(cmd, cfg, tree.Root)
	store, err := catalog.NewStore(dbPath, cfg.MaxResults)
	if err != nil {
		return err
	}
	defer store.Close()

	records, _ := catalog.Collect(tree, km, os.Stderr)

	summary, err := store.Index(context.Background(), tree, records, os.Stdout)
	if err != nil {
		return err
	}
	if msg := indexFailureWarning(summary); msg != "" {
		fmt.Fprintln(os.Stderr, msg)
	}
	return nil
}

// indexFailureWarning renders per-paper indexing failures as a warning,
// or "" for a clean run. Per-paper failures never abort the command,
// same as extraction failures: only configuration errors are fatal.
func indexFailureWarning(summary catalog.IndexSummary) string {
	if !summary.HasFailures() {
		return ""
	}
	return fmt.Sprintf("warning: %d paper(s) failed indexing", summary.Failed)
}

// indexConfig loads the config file's index section.
func indexConfig() (types.IndexConfig, error) {
	var cfg types.IndexConfig
	if err := viper.UnmarshalKey("index", &cfg); err != nil {
		return types.IndexConfig{}, fmt.Errorf("index config: %w", err)
	}
	return cfg, nil
}

// indexDBPath resolves the index database location: flag, then config,
// then catalog.db under the scanned root.
func indexDBPath(cmd *cobra.Command, cfg types.IndexConfig, root string) string {
	if dbPath, _ := cmd.Flags().GetString("db"); dbPath != "" {
		return dbPath
	}
	if cfg.DBPath != "" {
		return cfg.DBPath
	}
	return filepath.Join(root, "catalog.db")
}

func init() {
	indexCmd.Flags().String("db", "", "index database path (default: [root]/catalog.db)")
	indexCmd.Flags().String("keywords", "", "keyword map YAML file (category name -> keyword list)")

	rootCmd.AddCommand(indexCmd)
}
