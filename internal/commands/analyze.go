package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/spendtrend/internal/analysis"
)

func newSummaryCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print the total amount per category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(*configPath, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			repo, err := a.openRepo()
			if err != nil {
				return err
			}
			defer repo.Close()

			txns, err := loadCategorized(cmd.Context(), repo)
			if err != nil {
				return err
			}
			return a.printer(cmd.OutOrStdout()).Summary(analysis.Summarize(txns))
		},
	}
}

func newChartCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:       "chart <categories|months>",
		Short:     "Draw a bar chart of totals per category or net amount per month",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"categories", "months"},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(*configPath, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			repo, err := a.openRepo()
			if err != nil {
				return err
			}
			defer repo.Close()

			txns, err := loadCategorized(cmd.Context(), repo)
			if err != nil {
				return err
			}

			p := a.printer(cmd.OutOrStdout())
			switch args[0] {
			case "categories":
				return p.CategoryChart(analysis.Summarize(txns))
			case "months":
				return p.MonthChart(analysis.MonthlyNetAmounts(txns, a.cfg.Trends.FillGaps))
			default:
				return fmt.Errorf("unknown chart %q", args[0])
			}
		},
	}
}

func newTrendsCommand(configPath *string) *cobra.Command {
	var fillGaps bool

	cmd := &cobra.Command{
		Use:   "trends",
		Short: "Analyze month-over-month changes in net amount",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(*configPath, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("fill-gaps") {
				a.cfg.Trends.FillGaps = fillGaps
			}
			repo, err := a.openRepo()
			if err != nil {
				return err
			}
			defer repo.Close()

			txns, err := loadCategorized(cmd.Context(), repo)
			if err != nil {
				return err
			}

			ts, err := analysis.AnalyzeTrends(txns, analysis.TrendOptions{FillGaps: a.cfg.Trends.FillGaps})
			return a.printer(cmd.OutOrStdout()).Trends(ts, err)
		},
	}

	cmd.Flags().BoolVar(&fillGaps, "fill-gaps", false, "count months without transactions as zero")

	return cmd
}
