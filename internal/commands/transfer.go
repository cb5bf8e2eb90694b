package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/KyussCaesar/pfr/internal/errs"
	"github.com/KyussCaesar/pfr/internal/ledger"
	"github.com/KyussCaesar/pfr/internal/store"
)

func newExportCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Write the current ledger as CSV to a file or stdout",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := a.store.LoadCurrent()
			if err != nil {
				return err
			}

			if len(args) == 0 {
				return exportTo(cmd.OutOrStdout(), l)
			}

			path := args[0]
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("creating %s: %w: %w", path, errs.ErrIO, err)
			}
			if err := exportTo(f, l); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("closing %s: %w: %w", path, errs.ErrIO, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d transactions to %s\n", l.Len(), path)
			return nil
		},
	}
}

func exportTo(w io.Writer, l *ledger.Ledger) error {
	if err := ledger.WriteTransactions(w, l.Sorted()); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrEncode, err)
	}
	return nil
}

func newImportCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Add every transaction in a CSV file to the current ledger",
		Long: "Add every transaction in a CSV file to the current ledger.\n\n" +
			"The file uses the header written by export:\n  " + ledger.Header + "\n\n" +
			"Nothing is written if any row is invalid or names a transaction that already exists.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("opening %s: %w: %w", path, errs.ErrIO, err)
			}
			defer f.Close()

			txs, err := ledger.ReadTransactions(f)
			if err != nil {
				return fmt.Errorf("%s: %w: %w", path, errs.ErrDecode, err)
			}

			n, err := a.ledgerService().Import(txs)
			if err != nil {
				return err
			}
			if n > 0 {
				a.record(change{command: "import", snapshot: store.Current, details: fmt.Sprintf("%d from %s", n, path)})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d transactions\n", n)
			return nil
		},
	}
}
