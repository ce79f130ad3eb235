package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newHistoryCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List past statement imports",
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

			runs, err := repo.ImportRuns(cmd.Context())
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No imports yet")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "STARTED\tSOURCE\tROWS\tSTATUS\tID")
			for _, r := range runs {
				status := r.Status
				if r.ErrorMessage != "" {
					status += ": " + r.ErrorMessage
				}
				fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", r.StartedAt.Format("2006-01-02 15:04:05"), r.Source, r.RowCount, status, r.ID)
			}
			return tw.Flush()
		},
	}
}
