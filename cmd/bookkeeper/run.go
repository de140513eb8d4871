package main

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/alwaysmad/bookkeeper/internal/cli"
	"github.com/alwaysmad/bookkeeper/internal/config"
	"github.com/alwaysmad/bookkeeper/internal/controller"
	"github.com/alwaysmad/bookkeeper/internal/tui"
	"github.com/alwaysmad/bookkeeper/internal/tui/themes"
)

func runRoot(cmd *cobra.Command, _ []string) error {
	plain, _ := cmd.Flags().GetBool("plain")
	return runInteractive(cmd.Context(), appConfig, plain, os.Stdin, cmd.OutOrStdout())
}

// runInteractive opens the database and hands control to a view until the user quits.
func runInteractive(ctx context.Context, cfg config.Config, plain bool, in io.Reader, out io.Writer) error {
	a, err := openApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	var view controller.View
	if plain {
		view = cli.NewConsoleView(in, out, nil)
	} else {
		view = tui.New(
			tui.WithInput(in),
			tui.WithOutput(out),
			tui.WithTheme(themes.ByName(cfg.UI.Theme)),
		)
	}
	return a.bookkeeper(view).Run(ctx)
}
