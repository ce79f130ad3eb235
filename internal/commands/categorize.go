package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/spendtrend/internal/model"
	"github.com/cleared-dev/spendtrend/internal/storage"
)

var errNothingImported = errors.New("no transactions imported; run `spendtrend import` first")

var errNothingCategorized = errors.New("no categorized transactions; run `spendtrend categorize` first")

func newCategorizeCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "categorize",
		Short: "Assign a spending category to every imported transaction",
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

			// Rows from an earlier run are reclassified in place, picking up
			// any edits to the rule file.
			existing, err := repo.LoadCategorized(cmd.Context())
			if err != nil {
				return err
			}
			if len(existing) > 0 {
				return a.recategorize(cmd.Context(), cmd.OutOrStdout(), repo, existing)
			}

			txns, err := repo.LoadTransactions(cmd.Context())
			if err != nil {
				return err
			}
			if len(txns) == 0 {
				return errNothingImported
			}
			_, err = a.categorize(cmd.Context(), cmd.OutOrStdout(), repo, txns)
			return err
		},
	}
}

// categorize classifies txns and stores the result.
func (a *app) categorize(ctx context.Context, out io.Writer, repo *storage.SQLiteRepository, txns []model.Transaction) ([]model.CategorizedTransaction, error) {
	c, err := a.classifier()
	if err != nil {
		return nil, err
	}

	categorized := c.Categorize(txns)
	if err := repo.SaveCategorized(ctx, categorized); err != nil {
		return nil, fmt.Errorf("saving categorized transactions: %w", err)
	}

	a.log.Info("categorized transactions", "count", len(categorized))
	fmt.Fprintf(out, "Categorized %d transactions\n", len(categorized))
	return categorized, nil
}

// recategorize applies the current rules to stored categorized transactions
// and reports how many changed category.
func (a *app) recategorize(ctx context.Context, out io.Writer, repo *storage.SQLiteRepository, txns []model.CategorizedTransaction) error {
	c, err := a.classifier()
	if err != nil {
		return err
	}

	updated := c.Recategorize(txns)
	changed := 0
	for i := range updated {
		if updated[i].Category != txns[i].Category {
			changed++
		}
	}
	if err := repo.SaveCategorized(ctx, updated); err != nil {
		return fmt.Errorf("saving categorized transactions: %w", err)
	}

	a.log.Info("recategorized transactions", "count", len(updated), "changed", changed)
	fmt.Fprintf(out, "Recategorized %d transactions (%d changed)\n", len(updated), changed)
	return nil
}

// loadCategorized returns the stored categorized transactions, failing when
// there are none.
func loadCategorized(ctx context.Context, repo *storage.SQLiteRepository) ([]model.CategorizedTransaction, error) {
	txns, err := repo.LoadCategorized(ctx)
	if err != nil {
		return nil, err
	}
	if len(txns) == 0 {
		return nil, errNothingCategorized
	}
	return txns, nil
}
