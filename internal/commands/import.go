package commands

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/spendtrend/internal/importer"
	"github.com/cleared-dev/spendtrend/internal/model"
	"github.com/cleared-dev/spendtrend/internal/storage"
)

func newImportCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [statement.csv]",
		Short: "Import a bank statement, replacing previously imported transactions",
		Long: "Import a bank statement CSV into the database. Without an argument, every CSV in\n" +
			"the project's import/ directory is imported and then moved to import/processed/.",
		Args: cobra.MaximumNArgs(1),
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

			if len(args) == 1 {
				_, err = a.importFile(cmd.Context(), cmd.OutOrStdout(), repo, args[0])
				return err
			}
			return a.importDir(cmd.Context(), cmd.OutOrStdout(), repo)
		},
	}
	return cmd
}

// importFile parses path and replaces the stored transactions with its rows.
func (a *app) importFile(ctx context.Context, out io.Writer, repo *storage.SQLiteRepository, path string) ([]model.Transaction, error) {
	p, err := a.parser()
	if err != nil {
		return nil, err
	}

	runID, err := repo.StartImportRun(ctx, filepath.Base(path))
	if err != nil {
		return nil, err
	}

	txns, err := importer.ParseFile(p, path)
	if err == nil {
		err = repo.ReplaceTransactions(ctx, runID, txns)
	}
	if ferr := repo.FinishImportRun(ctx, runID, len(txns), err); ferr != nil {
		a.log.Warn("failed to record import run", "import_run_id", runID, "error", ferr)
	}
	if err != nil {
		return nil, fmt.Errorf("importing %s: %w", path, err)
	}

	a.log.Info("imported transactions", "file", path, "count", len(txns), "import_run_id", runID)
	fmt.Fprintf(out, "Imported %d transactions from %s\n", len(txns), filepath.Base(path))
	return txns, nil
}

// importDir imports every CSV waiting in <root>/import as one statement.
func (a *app) importDir(ctx context.Context, out io.Writer, repo *storage.SQLiteRepository) error {
	files, err := importer.Pending(a.root)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintln(out, "No statements found in import/")
		return nil
	}

	p, err := a.parser()
	if err != nil {
		return err
	}

	runID, err := repo.StartImportRun(ctx, "import/")
	if err != nil {
		return err
	}

	var all []model.Transaction
	for _, f := range files {
		txns, perr := importer.ParseFile(p, f.Path)
		if perr != nil {
			err = perr
			break
		}
		a.log.Debug("parsed statement", "file", f.Name, "count", len(txns))
		all = append(all, txns...)
	}
	if err == nil {
		err = repo.ReplaceTransactions(ctx, runID, all)
	}
	if ferr := repo.FinishImportRun(ctx, runID, len(all), err); ferr != nil {
		a.log.Warn("failed to record import run", "import_run_id", runID, "error", ferr)
	}
	if err != nil {
		return fmt.Errorf("importing statements: %w", err)
	}

	for _, f := range files {
		if err := importer.Archive(a.root, f); err != nil {
			return err
		}
	}

	a.log.Info("imported transactions", "files", len(files), "count", len(all), "import_run_id", runID)
	fmt.Fprintf(out, "Imported %d transactions from %d files\n", len(all), len(files))
	return nil
}
