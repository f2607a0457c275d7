package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/Veraticus/tally/internal/cli"
	"github.com/Veraticus/tally/internal/tui"
	"github.com/Veraticus/tally/internal/tui/themes"
)

func browseCmd() *cobra.Command {
	var (
		themeName string
		inline    bool
	)

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse transactions in a terminal table",
		Long: `Browse the ledger in a full-screen table.

Press / to filter by category, x to delete the selected transaction and ?
for help. Deletions are saved when you quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store := ledgerStore()
			l, err := loadLedger(store)
			if err != nil {
				return err
			}

			removed, err := tui.Run(cmd.Context(), l,
				tui.WithTheme(themes.GetTheme(themeName)),
				tui.WithAltScreen(!inline),
			)
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			if removed == 0 {
				return nil
			}

			if err := saveLedger(store, l); err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "%s\n",
				cli.FormatSuccess(pluralize(removed, "transaction")+" deleted, saved to "+store.Path()))
			return nil
		},
	}

	cmd.Flags().StringVar(&themeName, "theme", "default", "color theme (default, catppuccin-mocha)")
	cmd.Flags().BoolVar(&inline, "inline", false, "render in the current screen instead of the alternate screen")

	return cmd
}
