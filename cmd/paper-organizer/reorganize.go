// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paper-organizer/internal/catalog"
	"github.com/pdiddy/paper-organizer/internal/classify"
	"github.com/pdiddy/paper-organizer/internal/reorg"
	"github.com/pdiddy/paper-organizer/internal/scan"
	"github.com/pdiddy/paper-organizer/pkg/types"
)

var reorganizeCmd = &cobra.Command{
	Use:   "reorganize [root]",
	Short: "Plan (and optionally apply) a folder reorganization",
	Long: `Reorganize computes a move plan for every PDF under root using exactly one
strategy:

  --by-year            target folder is the publication year (Unknown_Year
                       when no year could be determined)
  --by-keyword FILE    target folder is the first matching category from the
                       keyword map (Uncategorized when none match)
  --by-author          papers are filed under By_Author/<Initial>/<Author>;
                       papers without a usable author stay put
  --consolidate        folders with fewer than --min-papers PDFs are merged
                       into --misc-folder
  --flatten            folders nested deeper than --max-depth levels are
                       collapsed into underscore-joined top-level folders

The default is a dry run: the plan is printed and nothing on disk changes.
Pass --execute to apply the moves. Name collisions are resolved with a
deterministic numeric suffix (paper.pdf -> paper_2.pdf).`,
	Args: cobra.ExactArgs(1),
	RunE: runReorganize,
}

func runReorganize(cmd *cobra.Command, args []string) error {
	execute, _ := cmd.Flags().GetBool("execute")
	savePlan, _ := cmd.Flags().GetString("save-plan")
	planFile, _ := cmd.Flags().GetString("plan")

	// A previously saved plan skips replanning entirely.
	if planFile != "" {
		plan, err := reorg.ReadPlanFile(planFile)
		if err != nil {
			return err
		}
		return reportOrExecute(plan, execute)
	}

	opts, km, err := reorganizeOptions(cmd)
	if err != nil {
		return err
	}

	tree, err := scan.Walk(args[0])
	if err != nil {
		return err
	}

	// Planning needs the same metadata the catalog does: by-year uses the
	// merged year, by-keyword the classifier's assignments.
	records, _ := catalog.Collect(tree, km, os.Stderr)

	plan, err := reorg.BuildPlan(tree, records, opts)
	if err != nil {
		return err
	}

	if savePlan != "" {
		if err := reorg.WritePlanFile(plan, savePlan); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Plan saved: %s\n\n", savePlan)
	}

	return reportOrExecute(plan, execute)
}

func reportOrExecute(plan *types.Plan, execute bool) error {
	reorg.FormatPlan(plan, os.Stdout)

	if !execute {
		fmt.Fprintln(os.Stdout, "\nDry run: no files were moved. Re-run with --execute to apply.")
		return nil
	}

	fmt.Fprintln(os.Stdout)
	summary := reorg.Execute(plan, os.Stdout)
	if summary.HasFailures() {
		fmt.Fprintf(os.Stderr, "warning: %d move(s) failed\n", summary.Failed)
	}
	return nil
}

// reorganizeOptions validates the strategy flags: exactly one strategy,
// and a keyword map for by-keyword.
func reorganizeOptions(cmd *cobra.Command) (reorg.Options, *classify.KeywordMap, error) {
	byYear, _ := cmd.Flags().GetBool("by-year")
	byKeyword, _ := cmd.Flags().GetString("by-keyword")
	byAuthor, _ := cmd.Flags().GetBool("by-author")
	consolidate, _ := cmd.Flags().GetBool("consolidate")
	flatten, _ := cmd.Flags().GetBool("flatten")
	minPapers, _ := cmd.Flags().GetInt("min-papers")
	miscFolder, _ := cmd.Flags().GetString("misc-folder")
	maxDepth, _ := cmd.Flags().GetInt("max-depth")

	// Flags override the config file's reorganize section.
	var cfg types.ReorganizeConfig
	if err := viper.UnmarshalKey("reorganize", &cfg); err != nil {
		return reorg.Options{}, nil, fmt.Errorf("reorganize config: %w", err)
	}
	if minPapers == 0 {
		minPapers = cfg.MinPapers
	}
	if miscFolder == "" {
		miscFolder = cfg.MiscFolder
	}
	if maxDepth == 0 {
		maxDepth = cfg.MaxDepth
	}
	selected := 0
	opts := reorg.Options{MinPapers: minPapers, MiscFolder: miscFolder, MaxDepth: maxDepth}
	if byYear {
		selected++
		opts.Strategy = types.StrategyByYear
	}
	if byKeyword != "" {
		selected++
		opts.Strategy = types.StrategyByKeyword
	}
	if byAuthor {
		selected++
		opts.Strategy = types.StrategyByAuthor
	}
	if consolidate {
		selected++
		opts.Strategy = types.StrategyConsolidate
	}
	if flatten {
		selected++
		opts.Strategy = types.StrategyFlatten
	}

	// No strategy flag at all falls back to the config file's strategy.
	if selected == 0 && cfg.Strategy != "" {
		selected = 1
		opts.Strategy = cfg.Strategy
		if cfg.Strategy == types.StrategyByKeyword {
			byKeyword = cfg.KeywordMapPath
		}
	}
	if selected != 1 {
		return reorg.Options{}, nil, fmt.Errorf("exactly one strategy required: --by-year, --by-keyword, --by-author, --consolidate, or --flatten")
	}

	var km *classify.KeywordMap
	if byKeyword != "" {
		var err error
		km, err = classify.LoadKeywordMap(byKeyword)
		if err != nil {
			return reorg.Options{}, nil, err
		}
		opts.Keywords = km
	}
	return opts, km, nil
}

func init() {
	reorganizeCmd.Flags().Bool("by-year", false, "organize papers into folders by publication year")
	reorganizeCmd.Flags().String("by-keyword", "", "organize by keyword map (YAML file, category name -> keyword list)")
	reorganizeCmd.Flags().Bool("by-author", false, "organize papers into By_Author/<Initial>/<Author> folders")
	reorganizeCmd.Flags().Bool("consolidate", false, "merge small top-level folders into one catch-all folder")
	reorganizeCmd.Flags().Bool("flatten", false, "collapse deeply nested folders into top-level folders")
	reorganizeCmd.Flags().Int("min-papers", 0, "consolidate threshold: folders with fewer PDFs are merged (default 3)")
	reorganizeCmd.Flags().String("misc-folder", "", "consolidation catch-all folder name (default Miscellaneous)")
	reorganizeCmd.Flags().Int("max-depth", 0, "flatten nesting limit (default 2)")
	reorganizeCmd.Flags().Bool("execute", false, "apply the moves (default is dry run)")
	reorganizeCmd.Flags().String("save-plan", "", "write the computed plan to a YAML file")
	reorganizeCmd.Flags().String("plan", "", "execute/report a previously saved plan file instead of replanning")

	rootCmd.AddCommand(reorganizeCmd)
}
