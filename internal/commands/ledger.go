package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/KyussCaesar/pfr/internal/model"
	"github.com/KyussCaesar/pfr/internal/money"
	"github.com/KyussCaesar/pfr/internal/store"
)

func newAddCommand(a *app) *cobra.Command {
	var category, account string

	cmd := &cobra.Command{
		Use:   "add <income|expense> <frequency> <name> <amount>",
		Short: "Add a recurring transaction to the current ledger",
		Long: "Add a recurring transaction to the current ledger.\n\n" +
			"Frequency is one of daily, workdays, weekly, monthly, quarterly or yearly.\n" +
			"Amount is a non-negative decimal such as 12.50.",
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := model.ParseKind(args[0])
			if err != nil {
				return err
			}
			freq, err := model.ParseFrequency(args[1])
			if err != nil {
				return err
			}
			amount, err := money.Parse(args[3])
			if err != nil {
				return err
			}

			tx := model.Transaction{
				Kind:      kind,
				Frequency: freq,
				Name:      args[2],
				Amount:    amount,
				Category:  category,
				Account:   account,
			}
			if err := a.ledgerService().Add(tx); err != nil {
				return err
			}

			a.record(change{command: "add", snapshot: store.Current, name: tx.Name, details: fmt.Sprintf("%s %s %s", kind, freq, amount)})
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s %q (%s %s)\n", kind, tx.Name, amount, freq)
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "category for the report breakdown")
	cmd.Flags().StringVarP(&account, "account", "a", "", "account the money moves through")

	return cmd
}

func newRmCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <name>",
		Aliases: []string{"remove"},
		Short:   "Remove a transaction from the current ledger",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			removed, err := a.ledgerService().Remove(name)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !removed {
				fmt.Fprintf(out, "No transaction called %q; nothing removed\n", name)
				return nil
			}
			a.record(change{command: "rm", snapshot: store.Current, name: name})
			fmt.Fprintf(out, "Removed %q\n", name)
			return nil
		},
	}
}

func newListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the transactions in the current ledger",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := a.ledgerService().List()
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.Frequency, e.Kind, e.Name, e.Amount)
			}
			return tw.Flush()
		},
	}
}
