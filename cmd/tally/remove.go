package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Veraticus/tally/internal/cli"
	"github.com/Veraticus/tally/internal/common"
)

func removeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <index>",
		Aliases: []string{"rm"},
		Short:   "Delete a transaction by its list index",
		Example: `  tally list
  tally remove 3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := ledgerStore()
			l, err := loadLedger(store)
			if err != nil {
				return err
			}

			transactions := l.All()
			index, err := strconv.Atoi(args[0])
			if err != nil || index < 1 || index > len(transactions) {
				return common.NewUserError("Invalid transaction number.",
					fmt.Errorf("%w: %q (have %d transactions)", common.ErrInvalidInput, args[0], len(transactions)))
			}

			target := transactions[index-1]
			if !l.Remove(target) {
				return fmt.Errorf("transaction %d disappeared before removal", index)
			}

			if err := saveLedger(store, l); err != nil {
				return err
			}

			printf(cmd.OutOrStdout(), "%s\n  %s\n",
				cli.FormatSuccess("Transaction deleted successfully!"),
				cli.FormatTransactionLine(index, target, true))
			return nil
		},
	}
}
