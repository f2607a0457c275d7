package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/tally/internal/cli"
	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/ledger"
)

func archiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Keep named snapshots of the ledger",
		Long: `Save, list, restore and delete snapshots of the ledger.

Snapshots live in a SQLite database next to the ledger file (see the
archive.path setting). Restoring a snapshot replaces the current ledger.`,
	}

	cmd.AddCommand(archiveSaveCmd())
	cmd.AddCommand(archiveListCmd())
	cmd.AddCommand(archiveRestoreCmd())
	cmd.AddCommand(archiveDeleteCmd())

	return cmd
}

func archiveSaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save [label]",
		Short: "Snapshot the current ledger",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			label := time.Now().Format("2006-01-02 15:04")
			if len(args) == 1 && strings.TrimSpace(args[0]) != "" {
				label = args[0]
			}

			l, err := loadLedger(ledgerStore())
			if err != nil {
				return err
			}

			archive, cleanup, err := openArchive(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			snap, err := archive.SaveSnapshot(cmd.Context(), label, l)
			if err != nil {
				return err
			}

			printf(cmd.OutOrStdout(), "%s\n", cli.FormatSuccess(fmt.Sprintf(
				"Saved snapshot %d (%s) with %s", snap.ID, snap.Label, pluralize(snap.Count, "transaction"))))
			return nil
		},
	}
}

func archiveListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List snapshots, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			archive, cleanup, err := openArchive(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			snapshots, err := archive.ListSnapshots(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(snapshots) == 0 {
				printf(out, "No snapshots yet. Create one with 'tally archive save'.\n")
				return nil
			}

			printf(out, "%s\n", cli.FormatTitle("Snapshots"))
			for _, s := range snapshots {
				printf(out, "%4d  %-24s  %s  %s\n",
					s.ID, s.Label, s.CreatedAt.Local().Format("2006-01-02 15:04"), pluralize(s.Count, "transaction"))
			}
			return nil
		},
	}
}

func archiveRestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <id>",
		Short: "Replace the ledger with a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseSnapshotID(args[0])
			if err != nil {
				return err
			}

			archive, cleanup, err := openArchive(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			l, err := archive.LoadSnapshot(cmd.Context(), id, ledger.WithObserver(activityLogger))
			if err != nil {
				return snapshotError(id, err)
			}

			store := ledgerStore()
			if err := saveLedger(store, l); err != nil {
				return err
			}

			printf(cmd.OutOrStdout(), "%s\n", cli.FormatSuccess(fmt.Sprintf(
				"Restored snapshot %d (%s) to %s", id, pluralize(l.Count(), "transaction"), store.Path())))
			return nil
		},
	}
}

func archiveDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseSnapshotID(args[0])
			if err != nil {
				return err
			}

			archive, cleanup, err := openArchive(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			if err := archive.DeleteSnapshot(cmd.Context(), id); err != nil {
				return snapshotError(id, err)
			}

			printf(cmd.OutOrStdout(), "%s\n", cli.FormatSuccess(fmt.Sprintf("Deleted snapshot %d", id)))
			return nil
		},
	}
}

func parseSnapshotID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id < 1 {
		return 0, common.NewUserError("Invalid snapshot id: "+arg, common.ErrInvalidInput)
	}
	return id, nil
}

func snapshotError(id int64, err error) error {
	if errors.Is(err, common.ErrNotFound) {
		return common.NewUserError(fmt.Sprintf("No snapshot with id %d.", id), err)
	}
	return err
}
