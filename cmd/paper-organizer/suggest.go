// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-organizer/internal/reorg"
	"github.com/pdiddy/paper-organizer/internal/scan"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest [root]",
	Short: "Analyze the folder structure and suggest reorganizations",
	Long: `Suggest scans root and reports how the papers are currently distributed
across folders, flagging structures a reorganize run could improve: a
crowded root folder, folders with only one or two papers, and deep
nesting. Nothing on disk is touched.`,
	Args: cobra.ExactArgs(1),
	RunE: runSuggest,
}

func runSuggest(cmd *cobra.Command, args []string) error {
	tree, err := scan.Walk(args[0])
	if err != nil {
		return err
	}

	reorg.AnalyzeStructure(tree).Write(os.Stdout)
	return nil
}

func init() {
	rootCmd.AddCommand(suggestCmd)
}
