package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/Veraticus/tally/internal/cli"
)

func menuCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Interactive console menu",
		Long: `Start the numbered console menu.

Changes stay in memory until you choose "Save Financial History". The
activity log is printed when you quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store := ledgerStore()
			l, err := loadLedger(store)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			handler := cli.NewInterruptHandler(out, "Run 'tally menu' to continue. Unsaved changes were discarded.")
			ctx, stop := handler.HandleInterrupts(cmd.Context())
			defer stop()

			menu := cli.NewMenu(cmd.InOrStdin(), out, store, cli.WithLedger(l))
			if err := menu.Run(ctx); err != nil {
				if errors.Is(err, cli.ErrInputCancelled) && handler.WasInterrupted() {
					return nil
				}
				return err
			}
			return nil
		},
	}
}
