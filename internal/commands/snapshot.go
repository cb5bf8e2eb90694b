package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KyussCaesar/pfr/internal/errs"
	"github.com/KyussCaesar/pfr/internal/store"
)

// userSnapshot rejects names that save and load must not touch directly.
func userSnapshot(name string) error {
	if !store.ValidName(name) {
		return fmt.Errorf("%q: %w", name, errs.ErrInvalidName)
	}
	if store.IsReserved(name) {
		return fmt.Errorf("%q (use backup and restore instead): %w", name, errs.ErrReservedName)
	}
	return nil
}

func newSaveCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "save <name>",
		Short: "Save the current ledger under a name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if err := userSnapshot(name); err != nil {
				return err
			}
			if err := a.store.Copy(store.Current, name); err != nil {
				return err
			}
			a.record(change{command: "save", snapshot: name})
			fmt.Fprintf(cmd.OutOrStdout(), "Saved current ledger as %q\n", name)
			return nil
		},
	}
}

func newLoadCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "load <name>",
		Short: "Replace the current ledger with a saved one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if err := userSnapshot(name); err != nil {
				return err
			}
			if err := a.store.Copy(name, store.Current); err != nil {
				return err
			}
			a.record(change{command: "load", snapshot: store.Current, details: "from " + name})
			fmt.Fprintf(cmd.OutOrStdout(), "Loaded %q into the current ledger\n", name)
			return nil
		},
	}
}

func newBackupCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "backup",
		Short: "Copy the current ledger to the backup slot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.store.Copy(store.Current, store.Backup); err != nil {
				return err
			}
			a.record(change{command: "backup", snapshot: store.Backup})
			fmt.Fprintln(cmd.OutOrStdout(), "Backed up the current ledger")
			return nil
		},
	}
}

func newRestoreCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "restore",
		Short: "Replace the current ledger with the backup",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.store.Copy(store.Backup, store.Current); err != nil {
				return err
			}
			a.record(change{command: "restore", snapshot: store.Current, details: "from " + store.Backup})
			fmt.Fprintln(cmd.OutOrStdout(), "Restored the current ledger from backup")
			return nil
		},
	}
}

func newSavesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "saves",
		Short: "List the saved ledgers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := a.store.Names()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, name := range names {
				if store.IsReserved(name) {
					fmt.Fprintf(out, "%s (reserved)\n", name)
					continue
				}
				fmt.Fprintln(out, name)
			}
			return nil
		},
	}
}

func newDropCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "drop <name>",
		Short: "Delete a saved ledger",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if err := a.store.Delete(name); err != nil {
				return err
			}
			a.record(change{command: "drop", snapshot: name})
			fmt.Fprintf(cmd.OutOrStdout(), "Dropped %q\n", name)
			return nil
		},
	}
}
