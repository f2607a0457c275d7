package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Veraticus/tally/internal/cli"
	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/config"
	"github.com/Veraticus/tally/internal/ledger"
	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/persistence"
	"github.com/Veraticus/tally/internal/service"
	"github.com/Veraticus/tally/internal/sheets"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the ledger",
	}

	cmd.AddCommand(exportSheetsCmd())
	cmd.AddCommand(exportJSONCmd())

	return cmd
}

func exportSheetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sheets",
		Short: "Write the ledger and summary to Google Sheets",
		Long: `Write the summary and every transaction to a Google Sheets spreadsheet.

Authenticate with a service account (sheets.service_account_path) or with
OAuth2 credentials (sheets.client_id, sheets.client_secret,
sheets.refresh_token). Without sheets.spreadsheet_id a new spreadsheet is
created.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadSheetsConfig()
			if err != nil {
				return common.NewUserError("Google Sheets is not configured.",
					fmt.Errorf("%w: %w", common.ErrMissingConfig, err))
			}

			l, err := loadLedger(ledgerStore())
			if err != nil {
				return err
			}

			writer, err := sheets.NewWriter(cmd.Context(), *cfg, slog.Default())
			if err != nil {
				return err
			}

			return runSheetsExport(cmd, writer, l.All(), l.Summarize())
		},
	}
}

func runSheetsExport(cmd *cobra.Command, writer service.ReportWriter, transactions []model.Transaction, summary ledger.Summary) error {
	id, err := writer.Write(cmd.Context(), transactions, summary)
	if err != nil {
		return fmt.Errorf("failed to export to Google Sheets: %w", err)
	}

	printf(cmd.OutOrStdout(), "%s\n  https://docs.google.com/spreadsheets/d/%s\n",
		cli.FormatSuccess("Exported "+pluralize(len(transactions), "transaction")+" to Google Sheets"), id)
	return nil
}

func exportJSONCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "json <path>",
		Short: "Copy the ledger to another JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := loadLedger(ledgerStore())
			if err != nil {
				return err
			}

			path := config.ExpandPath(args[0])
			if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
				return fmt.Errorf("failed to create directory: %w", err)
			}
			if err := persistence.Persist(l, path); err != nil {
				return common.NewUserError("Unable to write to file: "+path, err)
			}

			printf(cmd.OutOrStdout(), "%s\n", cli.FormatSuccess("Saved Financial History to "+path))
			return nil
		},
	}
}
