// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paper-organizer/internal/catalog"
	"github.com/pdiddy/paper-organizer/internal/classify"
	"github.com/pdiddy/paper-organizer/internal/scan"
	"github.com/pdiddy/paper-organizer/pkg/types"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog [root]",
	Short: "Scan a paper folder and generate a literature-review spreadsheet",
	Long: `Catalog recursively scans root for PDF files, extracts metadata from each
(embedded document info first, filename conventions as fallback), classifies
papers against an optional keyword map, and writes an .xlsx literature-review
spreadsheet plus a text summary.

Per-file extraction failures are warnings: the affected paper is cataloged
from its filename alone and the run continues.`,
	Args: cobra.ExactArgs(1),
	RunE: runCatalog,
}

func runCatalog(cmd *cobra.Command, args []string) error {
	keywordPath, _ := cmd.Flags().GetString("keywords")
	outputPath, _ := cmd.Flags().GetString("output")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	noXLSX, _ := cmd.Flags().GetBool("no-xlsx")

	// Flags override the config file's catalog section.
	var cfg types.CatalogConfig
	if err := viper.UnmarshalKey("catalog", &cfg); err != nil {
		return fmt.Errorf("catalog config: %w", err)
	}
	if keywordPath == "" {
		keywordPath = cfg.KeywordMapPath
	}
	if outputPath == "" {
		outputPath = cfg.OutputPath
	}

	// Configuration errors abort before any scanning.
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

	records, _ := catalog.Collect(tree, km, os.Stderr)
	c := catalog.Build(tree.Root, records)

	if jsonOutput {
		return c.FormatJSON(os.Stdout)
	}

	c.FormatTable(os.Stdout)
	c.WriteSummary(os.Stdout)

	if noXLSX {
		return nil
	}
	if outputPath == "" {
		name := fmt.Sprintf("literature_review_%s.xlsx", time.Now().Format("20060102"))
		outputPath = filepath.Join(tree.Root, name)
	}
	if err := c.WriteXLSX(outputPath); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "\nSpreadsheet saved: %s\n", outputPath)
	return nil
}

func init() {
	catalogCmd.Flags().StringP("output", "o", "", "output .xlsx path (default: [root]/literature_review_YYYYMMDD.xlsx)")
	catalogCmd.Flags().String("keywords", "", "keyword map YAML file (category name -> keyword list)")
	catalogCmd.Flags().Bool("json", false, "write catalog rows as JSON to stdout instead of a table")
	catalogCmd.Flags().Bool("no-xlsx", false, "skip spreadsheet generation")

	rootCmd.AddCommand(catalogCmd)
}
