// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the paper-organizer CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the paper-organizer CLI.
var rootCmd = &cobra.Command{
	Use:   "paper-organizer",
	Short: "Catalog and reorganize a folder of research-paper PDFs",
	Long: `paper-organizer scans a directory tree of research-paper PDFs, extracts
bibliographic metadata from embedded document info and filename conventions,
classifies papers by keyword categories, and writes a literature-review
spreadsheet.

It can also plan and apply folder reorganizations (by year, by keyword
category, or by consolidating small folders). Planning is always a dry run;
nothing moves on disk without the --execute flag.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./paper-organizer.yaml or ~/.config/paper-organizer/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("paper-organizer")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "paper-organizer"))
		}
	}

	viper.SetEnvPrefix("PAPER_ORGANIZER")
	viper.AutomaticEnv()

	viper.SetDefault("reorganize.min_papers", 3)
	viper.SetDefault("reorganize.misc_folder", "Miscellaneous")
	viper.SetDefault("reorganize.max_depth", 2)
	viper.SetDefault("index.max_results", 20)

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
