// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-organizer/internal/catalog"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the catalog index",
	Long: `Search queries a previously built catalog index (see the index command)
with full-text search over title, authors, categories, and path, optionally
narrowed by --category and --year. With no query text, the filters alone
select papers sorted by year and title.`,
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := indexConfig()
	if err != nil {
		return err
	}

	dbPath, _ := cmd.Flags().GetString("db")
	if dbPath == "" {
		dbPath = cfg.DBPath
	}
	if dbPath == "" {
		return fmt.Errorf("index database required: pass --db or run index first")
	}
	if _, err := os.Stat(dbPath); err != nil {
		return fmt.Errorf("index database %s: %w", dbPath, err)
	}

	store, err := catalog.NewStore(dbPath, cfg.MaxResults)
	if err != nil {
		return err
	}
	defer store.Close()

	category, _ := cmd.Flags().GetString("category")
	year, _ := cmd.Flags().GetInt("year")
	limit, _ := cmd.Flags().GetInt("limit")

	opts := catalog.SearchOptions{
		Query:      strings.Join(args, " "),
		Category:   category,
		Year:       year,
		MaxResults: limit,
	}
	if opts.IsEmpty() {
		return fmt.Errorf("query or filter required: provide search text, --category, or --year")
	}

	results, err := store.Search(context.Background(), opts)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	catalog.FormatSearchResults(results, os.Stdout)
	return nil
}

func init() {
	searchCmd.Flags().String("db", "", "index database path")
	searchCmd.Flags().String("category", "", "filter by assigned category")
	searchCmd.Flags().Int("year", 0, "filter by publication year")
	searchCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	searchCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(searchCmd)
}
