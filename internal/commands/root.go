package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/spendtrend/internal/buildinfo"
	"github.com/cleared-dev/spendtrend/internal/config"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:     "spendtrend",
		Short:   "Categorize bank statements and track spending trends",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.FileName, "path to "+config.FileName)

	rootCmd.AddCommand(
		newInitCommand(),
		newImportCommand(&configPath),
		newCategorizeCommand(&configPath),
		newSummaryCommand(&configPath),
		newChartCommand(&configPath),
		newTrendsCommand(&configPath),
		newRunCommand(&configPath),
		newHistoryCommand(&configPath),
		newExportCommand(&configPath),
	)

	return rootCmd
}
