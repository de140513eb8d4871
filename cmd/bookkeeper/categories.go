package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alwaysmad/bookkeeper/internal/cli"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"cat"},
		Short:   "Manage expense categories",
		Long:    `List, add and delete expense categories. Deleting a category moves its expenses to no category.`,
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(addCategoryCmd())
	cmd.AddCommand(deleteCategoryCmd())

	return cmd
}

func listCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withHeadless(cmd.Context(), func(view *cli.ConsoleView) error {
				categories := view.Snapshot().Categories
				if len(categories) == 0 {
					_, err := fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo("No categories. Use 'bookkeeper categories add' to create one."))
					return err
				}
				_, err := fmt.Fprintln(cmd.OutOrStdout(), cli.RenderCategories(categories))
				return err
			})
		},
	}
}

func addCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Create a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCategoryCommand(cmd.Context(), cmd.OutOrStdout(), cli.Command{
				Kind: cli.CommandAddCategory,
				Name: strings.TrimSpace(args[0]),
			})
		},
	}
}

func deleteCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <name>",
		Aliases: []string{"del", "rm"},
		Short:   "Delete a category",
		Long:    `Delete a category. Its expenses are kept and shown as uncategorized.`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCategoryCommand(cmd.Context(), cmd.OutOrStdout(), cli.Command{
				Kind: cli.CommandDeleteCategory,
				Name: strings.TrimSpace(args[0]),
			})
		},
	}
}

func runCategoryCommand(ctx context.Context, out io.Writer, command cli.Command) error {
	if command.Name == "" {
		return fmt.Errorf("%w: category name is empty", cli.ErrUsage)
	}
	return withHeadless(ctx, func(view *cli.ConsoleView) error {
		msg, err := view.Execute(ctx, command)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, cli.FormatSuccess(msg))
		return err
	})
}

// withHeadless opens the configured database, starts a bookkeeper behind a
// headless view and calls fn with it.
func withHeadless(ctx context.Context, fn func(*cli.ConsoleView) error) error {
	a, err := openApp(ctx, appConfig)
	if err != nil {
		return err
	}
	defer a.Close()

	view, err := a.startHeadless(ctx)
	if err != nil {
		return err
	}
	return fn(view)
}
