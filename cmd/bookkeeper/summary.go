package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alwaysmad/bookkeeper/internal/cli"
)

func summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print budgets, totals and expenses",
		Long:  `Print the budgets with what was spent against each, the day, week and month totals, and the expense list.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withHeadless(cmd.Context(), func(view *cli.ConsoleView) error {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), cli.RenderSnapshot(view.Snapshot()))
				return err
			})
		},
	}
}
