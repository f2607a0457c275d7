package main

import (
	"github.com/spf13/cobra"

	"github.com/Veraticus/tally/internal/cli"
	"github.com/Veraticus/tally/internal/tui/themes"
)

func summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show income, expenses and balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, err := loadLedger(ledgerStore())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printf(out, "%s\n", cli.FormatTitle("Financial Summary"))
			return cli.RenderSummary(out, l.Summarize())
		},
	}
}

func categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List categories in use with their totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, err := loadLedger(ledgerStore())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			summary := l.Summarize()
			if len(summary.ByCategory) == 0 {
				printf(out, "No categories yet. Add a transaction with 'tally add'.\n")
				return nil
			}

			for _, c := range summary.ByCategory {
				printf(out, "%s %-20s %s  (%d)\n",
					themes.GetCategoryIcon(c.Category),
					c.Category,
					cli.StyleAmount(c.Total, "$"+cli.FormatMoney(c.Total)),
					c.Count)
			}
			return nil
		},
	}
}
