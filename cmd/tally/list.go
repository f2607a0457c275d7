package main

import (
	"github.com/spf13/cobra"

	"github.com/Veraticus/tally/internal/cli"
)

func listCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List transactions",
		Long: `List transactions in the order they were recorded.

The index in the first column is the one 'tally remove' expects. With
--category only matching transactions are shown, together with their total.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, err := loadLedger(ledgerStore())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if category == "" {
				return cli.RenderTransactionTable(out, l.All())
			}

			filtered := l.ByCategory(category)
			if len(filtered) == 0 {
				printf(out, "No transactions found for category: %s\n", category)
				return nil
			}

			if err := cli.RenderTransactionTable(out, filtered); err != nil {
				return err
			}
			var total float64
			for _, t := range filtered {
				total += t.Amount()
			}
			printf(out, "\nCategory Total: $%s\n", cli.FormatMoney(total))
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "show only this category (exact match)")

	return cmd
}
