package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/spendtrend/internal/analysis"
)

func newRunCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "run <statement.csv>",
		Short: "Import, categorize and report on a statement in one step",
		Args:  cobra.ExactArgs(1),
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

			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			txns, err := a.importFile(ctx, out, repo, args[0])
			if err != nil {
				return err
			}
			if len(txns) == 0 {
				fmt.Fprintln(out, "No data found in the statement.")
				return nil
			}

			categorized, err := a.categorize(ctx, out, repo, txns)
			if err != nil {
				return err
			}

			p := a.printer(out)
			summary := analysis.Summarize(categorized)

			fmt.Fprintln(out)
			if err := p.Summary(summary); err != nil {
				return err
			}
			fmt.Fprintln(out)
			if err := p.CategoryChart(summary); err != nil {
				return err
			}
			fmt.Fprintln(out)
			if err := p.MonthChart(analysis.MonthlyNetAmounts(categorized, a.cfg.Trends.FillGaps)); err != nil {
				return err
			}
			fmt.Fprintln(out)
			ts, err := analysis.AnalyzeTrends(categorized, analysis.TrendOptions{FillGaps: a.cfg.Trends.FillGaps})
			return p.Trends(ts, err)
		},
	}
}
