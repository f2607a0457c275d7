package main

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/Veraticus/tally/internal/cli"
	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/ledger"
	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/ofx"
)

// fileResult records what one statement contributed to an import.
type fileResult struct {
	Name       string
	Found      int
	Added      int
	Duplicates int
	Err        error
}

func importCmd() *cobra.Command {
	var (
		dryRun          bool
		allowDuplicates bool
	)

	cmd := &cobra.Command{
		Use:   "import [files or directories...]",
		Short: "Import transactions from OFX/QFX statements",
		Long: `Import transactions from OFX or QFX files exported from your bank.

Directories are searched recursively for .ofx and .qfx files. Transactions
already in the ledger are skipped unless --allow-duplicates is set, so
importing the same statement twice is harmless.`,
		Example: `  tally import ~/Downloads/checking_2025_03.qfx
  tally import ~/Downloads/statements/
  tally import --dry-run ~/Downloads/*.ofx`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := collectStatementFiles(args)
			if err != nil {
				return err
			}

			store := ledgerStore()
			l, err := loadLedger(store)
			if err != nil {
				return err
			}

			slog.Info("Importing statements", "file_count", len(files), "dry_run", dryRun)

			out := cmd.OutOrStdout()
			bar := newImportProgressBar(cmd.ErrOrStderr(), len(files))
			results := importStatements(cmd.Context(), l, files, !allowDuplicates, bar)
			if err := cmd.Context().Err(); err != nil {
				return err
			}

			added := 0
			printf(out, "\n%s File import summary:\n", cli.FolderIcon)
			for _, r := range results {
				if r.Err != nil {
					printf(out, "  - %s: %s\n", r.Name, cli.FormatError(r.Err.Error()))
					continue
				}
				printf(out, "  - %s: %d found, %d added, %d duplicates\n", r.Name, r.Found, r.Added, r.Duplicates)
				added += r.Added
			}

			if dryRun {
				printf(out, "%s\n", cli.FormatInfo("Dry run: "+pluralize(added, "transaction")+" would be added."))
				return nil
			}
			if added == 0 {
				printf(out, "%s\n", cli.FormatInfo("Nothing new to import."))
				return nil
			}

			if err := saveLedger(store, l); err != nil {
				return err
			}
			printf(out, "%s\n", cli.FormatSuccess("Imported "+pluralize(added, "transaction")+" into "+store.Path()))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "preview the import without saving")
	cmd.Flags().BoolVar(&allowDuplicates, "allow-duplicates", false, "add transactions even if the ledger already has them")

	return cmd
}

// collectStatementFiles expands args into statement files. Directories are
// walked recursively; other args are treated as glob patterns or plain paths.
func collectStatementFiles(args []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err == nil && info.IsDir() {
			var found []string
			walkErr := filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if !d.IsDir() && ofx.IsStatementFile(path) {
					found = append(found, path)
				}
				return nil
			})
			if walkErr != nil {
				return nil, fmt.Errorf("failed to scan %s: %w", arg, walkErr)
			}
			sort.Strings(found)
			for _, f := range found {
				add(f)
			}
			continue
		}
		if err == nil {
			add(arg)
			continue
		}

		matches, globErr := filepath.Glob(arg)
		if globErr != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", arg, globErr)
		}
		if len(matches) == 0 {
			slog.Warn("No files found matching pattern", "pattern", arg)
		}
		for _, m := range matches {
			add(m)
		}
	}

	if len(files) == 0 {
		return nil, common.NewUserError("No statement files found to import.", common.ErrNotFound)
	}
	return files, nil
}

// importStatements parses each file and appends its transactions to l. With
// skipDuplicates, a transaction is skipped while the ledger still holds an
// unmatched copy of it, so re-importing a statement adds nothing but two
// identical purchases in one new statement are both kept.
func importStatements(ctx context.Context, l *ledger.Ledger, files []string, skipDuplicates bool, bar *progressbar.ProgressBar) []fileResult {
	existing := make(map[importKey]int)
	if skipDuplicates {
		for _, t := range l.All() {
			existing[dedupKey(t)]++
		}
	}

	parser := ofx.NewParser()
	results := make([]fileResult, 0, len(files))
	for _, path := range files {
		if ctx.Err() != nil {
			break
		}

		result := fileResult{Name: filepath.Base(path)}
		transactions, err := parseStatement(ctx, parser, path)
		if err != nil {
			slog.Error("Failed to import statement", "file", path, "error", err)
			result.Err = err
		}

		result.Found = len(transactions)
		for _, t := range transactions {
			key := dedupKey(t)
			if existing[key] > 0 {
				existing[key]--
				result.Duplicates++
				continue
			}
			l.Add(t)
			result.Added++
		}
		results = append(results, result)

		if bar != nil {
			if err := bar.Add(1); err != nil {
				slog.Debug("Failed to update progress bar", "error", err)
			}
		}
	}
	return results
}

func parseStatement(ctx context.Context, parser *ofx.Parser, path string) ([]model.Transaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Warn("Failed to close statement", "file", path, "error", closeErr)
		}
	}()

	transactions, err := parser.ParseFile(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse: %w", err)
	}
	return transactions, nil
}

// importKey identifies a transaction for duplicate detection.
type importKey struct {
	amount      float64
	description string
	category    string
	date        string
}

func dedupKey(t model.Transaction) importKey {
	return importKey{
		amount:      t.Amount(),
		description: t.Description(),
		category:    t.Category(),
		date:        t.Date().Format(model.DateLayout),
	}
}

func newImportProgressBar(w io.Writer, total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[green][bold]Importing statements...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(w); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)
}
