package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/spendtrend/internal/export"
)

func newExportCommand(configPath *string) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write categorized transactions as CSV",
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

			if output == "" || output == "-" {
				return export.WriteCategorized(cmd.OutOrStdout(), txns)
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("creating %s: %w", output, err)
			}
			if err := export.WriteCategorized(f, txns); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("closing %s: %w", output, err)
			}
			a.log.Info("exported categorized transactions", "count", len(txns), "path", output)
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d transactions to %s\n", len(txns), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	return cmd
}
