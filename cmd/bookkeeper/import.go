package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/alwaysmad/bookkeeper/internal/cli"
	"github.com/alwaysmad/bookkeeper/internal/config"
	"github.com/alwaysmad/bookkeeper/internal/controller"
	"github.com/alwaysmad/bookkeeper/internal/ofx"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import expenses from an OFX/QFX statement",
		Long: `Import the debits of an OFX or QFX statement exported from your bank as expenses.

Credits are skipped. Entries already recorded with the same amount, date and
comment are skipped too, so importing the same file twice is harmless.

Examples:
  bookkeeper import ~/Downloads/checking_jan.qfx --category Groceries
  bookkeeper import statement.ofx --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, _ := cmd.Flags().GetString("category")
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			return runImport(cmd.Context(), appConfig, cmd.OutOrStdout(), args[0], category, dryRun)
		},
	}

	cmd.Flags().StringP("category", "c", "", "Category of the imported expenses (default: none)")
	cmd.Flags().BoolP("dry-run", "d", false, "Show what would be imported without saving")

	return cmd
}

func runImport(ctx context.Context, cfg config.Config, out io.Writer, path, categoryName string, dryRun bool) error {
	f, err := os.Open(config.ExpandPath(path))
	if err != nil {
		return fmt.Errorf("failed to open statement: %w", err)
	}
	defer f.Close()

	stmt, err := ofx.NewParser().ParseFile(ctx, f)
	if err != nil {
		return err
	}
	slog.Info("Parsed statement", "file", path, "debits", len(stmt.Entries), "credits_skipped", stmt.Credits)

	a, err := openApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	// Seeds a fresh database so the category can be resolved.
	if _, err := a.startHeadless(ctx); err != nil {
		return err
	}

	var categoryPK int64
	if categoryName != "" {
		category, err := controller.ResolveCategory(ctx, a.repos.Categories, categoryName)
		if err != nil {
			return err
		}
		categoryPK = category.PK
	}

	if dryRun {
		for _, entry := range stmt.Entries {
			fmt.Fprintf(out, "%s  %10s  %s\n", entry.Date.Format(cli.DateLayout), cli.FormatAmount(entry.Amount), entry.Comment())
		}
		_, err := fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("Dry run: %d expenses found, nothing saved", len(stmt.Entries))))
		return err
	}

	importer := ofx.NewImporter(a.repos.Expenses, nil)
	bar := cli.NewProgress(out, len(stmt.Entries), "Importing")
	importer.Progress = func() { _ = bar.Add(1) }

	result, err := importer.Import(ctx, stmt.Entries, categoryPK)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Imported %d expenses, skipped %d already recorded", result.Added, result.Duplicates)))
	return err
}
