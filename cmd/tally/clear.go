package main

import (
	"errors"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/tally/internal/cli"
)

func clearCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every transaction",
		Long: `Delete every transaction from the ledger.

This cannot be undone. Take a snapshot first with 'tally archive save' if
you may want the history back.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store := ledgerStore()
			l, err := loadLedger(store)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if l.Count() == 0 {
				printf(out, "No transactions found. Nothing to clear.\n")
				return nil
			}

			if !yes {
				printf(out, "This will delete %d transactions.\n", l.Count())
				printf(out, "%s", cli.FormatPrompt("Are you sure you want to continue? [y/N]: "))

				response, err := cli.NewLineReader(cmd.InOrStdin()).ReadLine(cmd.Context())
				if err != nil && !errors.Is(err, io.EOF) {
					return err
				}
				if !strings.EqualFold(strings.TrimSpace(response), "y") {
					printf(out, "Clear cancelled.\n")
					return nil
				}
			}

			l.Clear()
			if err := saveLedger(store, l); err != nil {
				return err
			}

			printf(out, "%s\n", cli.FormatSuccess("Cleared all transactions"))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")

	return cmd
}
